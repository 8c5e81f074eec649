/************************************************************************************
 *
 * ember, a Go client library for a Discord-shaped chat-service gateway + REST API
 *
 * SPDX-License-Identifier: BSD-3-Clause
 *
 ************************************************************************************/

package ember

import (
	"bytes"
	"fmt"
	"io"
	"mime/multipart"
	"net/textproto"
	"strconv"
	"strings"
)

// File is a single attachment for Http.SendFiles.
type File struct {
	Name        string
	ContentType string
	Data        []byte
}

const contentTypeOctetStream = "application/octet-stream"

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

// createMultipartForm builds the multipart/form-data body send_files sends:
// a payload_json part carrying the CreateMessage JSON, followed by one
// files[n] part per attachment.
//
// Grounded on switchupcb-disgo's disgo.go createMultipartForm/
// createPayloadJSONForm/createFormFile.
func createMultipartForm(payloadJSON []byte, files []File) (contentType string, body []byte, err error) {
	form := bytes.NewBuffer(nil)
	w := multipart.NewWriter(form)

	payloadPart, err := createPayloadJSONPart(w)
	if err != nil {
		return "", nil, fmt.Errorf("ember: adding payload_json part: %w", err)
	}
	if _, err := payloadPart.Write(payloadJSON); err != nil {
		return "", nil, fmt.Errorf("ember: writing payload_json part: %w", err)
	}

	for i, file := range files {
		name := "files[" + strconv.Itoa(i) + "]"
		filePart, err := createFormFilePart(w, name, file.Name, file.ContentType)
		if err != nil {
			return "", nil, fmt.Errorf("ember: adding file %q part: %w", file.Name, err)
		}
		if _, err := filePart.Write(file.Data); err != nil {
			return "", nil, fmt.Errorf("ember: writing file %q data: %w", file.Name, err)
		}
	}

	if err := w.Close(); err != nil {
		return "", nil, fmt.Errorf("ember: closing multipart form: %w", err)
	}

	return w.FormDataContentType(), form.Bytes(), nil
}

func createPayloadJSONPart(w *multipart.Writer) (io.Writer, error) {
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", `form-data; name="payload_json"`)
	h.Set("Content-Type", "application/json")
	return w.CreatePart(h)
}

func createFormFilePart(w *multipart.Writer, name, filename, contentType string) (io.Writer, error) {
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition",
		fmt.Sprintf(`form-data; name="%s"; filename="%s"`, name, quoteEscaper.Replace(filename)))
	if contentType == "" {
		contentType = contentTypeOctetStream
	}
	h.Set("Content-Type", contentType)
	return w.CreatePart(h)
}
