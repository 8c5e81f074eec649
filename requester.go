/************************************************************************************
 *
 * ember, a Go client library for a Discord-shaped chat-service gateway + REST API
 *
 * SPDX-License-Identifier: BSD-3-Clause
 *
 ************************************************************************************/

package ember

import (
	"strconv"
	"time"

	"github.com/goccy/go-json"
	"github.com/rs/xid"
	"github.com/valyala/fasthttp"
)

const (
	apiVersion = "10"
	baseAPIURL = "https://discord.example/api/v" + apiVersion

	headerRateLimitLimit     = "X-RateLimit-Limit"
	headerRateLimitRemaining = "X-RateLimit-Remaining"
	headerRateLimitReset     = "X-RateLimit-Reset"
)

// requester performs a single REST round trip via fasthttp, the transport
// switchupcb/disgo uses for this surface, and hands 429/limit-header
// bookkeeping to RateLimiter.
//
// Grounded on original_source/src/http.rs and src/http/rate_limiter.rs for
// the algorithm; on switchupcb-disgo's disgo.go SendRequest for the
// fasthttp acquire/release request-response idiom.
type requester struct {
	client      *fasthttp.Client
	token       string
	baseURL     string
	rateLimiter *RateLimiter
	logger      Logger
}

func newRequester(token string, logger Logger) *requester {
	return &requester{
		client:      &fasthttp.Client{Name: "ember"},
		token:       token,
		baseURL:     baseAPIURL,
		rateLimiter: NewRateLimiter(),
		logger:      logger,
	}
}

// tooManyRequestsBody is the 429 JSON body shape.
type tooManyRequestsBody struct {
	RetryAfter float64 `json:"retry_after"`
}

// do issues method+endpoint with a JSON body (nil for no body) under the
// rate-limit protocol for route (nil for unbucketed routes), and returns
// the raw successful response body and status.
func (r *requester) do(method, endpoint string, body []byte, route *Route) ([]byte, int, error) {
	return r.doWithContentType(method, endpoint, body, "application/json", route)
}

// doWithContentType is do with an explicit request Content-Type, used by
// send_files for its multipart/form-data body.
func (r *requester) doWithContentType(method, endpoint string, body []byte, contentType string, route *Route) ([]byte, int, error) {
	correlationID := xid.New().String()
	log := r.logger.WithField("correlation_id", correlationID).WithField("endpoint", method+" "+endpoint)
	log.Debug("sending request")

	var respBody []byte
	var status int

	_, err := r.rateLimiter.Do(route, func() (requestResult, error) {
		req := fasthttp.AcquireRequest()
		resp := fasthttp.AcquireResponse()
		defer fasthttp.ReleaseRequest(req)
		defer fasthttp.ReleaseResponse(resp)

		req.Header.SetMethod(method)
		req.SetRequestURI(r.baseURL + endpoint)
		req.Header.Set("Authorization", r.token)
		req.Header.Set("User-Agent", "ember (https://github.com/vexragh/ember)")
		if body != nil {
			req.Header.SetContentType(contentType)
			req.SetBody(body)
		}

		if err := r.client.Do(req, resp); err != nil {
			log.Error("request failed: " + err.Error())
			return requestResult{}, ioErr(err)
		}

		status = resp.StatusCode()
		respBody = append([]byte(nil), resp.Body()...)

		if status == fasthttp.StatusTooManyRequests {
			var tmr tooManyRequestsBody
			retryAfter := time.Second
			if err := json.Unmarshal(respBody, &tmr); err == nil && tmr.RetryAfter > 0 {
				retryAfter = time.Duration(tmr.RetryAfter * float64(time.Second))
			}
			log.WithField("retry_after", retryAfter.String()).Debug("rate limited (429)")
			return requestResult{status: status, retry: true, retryAfter: retryAfter}, nil
		}

		return requestResult{
			status:       status,
			headerLimit:  parseUintHeader(resp.Header.Peek(headerRateLimitLimit)),
			headerRemain: parseUintHeader(resp.Header.Peek(headerRateLimitRemaining)),
			headerReset:  parseResetHeader(resp.Header.Peek(headerRateLimitReset)),
		}, nil
	})
	if err != nil {
		return nil, 0, err
	}

	if status < 200 || status >= 300 {
		log.WithField("status", status).Error("non-2xx response")
		return nil, status, httpErr(status, respBody, correlationID)
	}

	log.Debug("request succeeded")
	return respBody, status, nil
}

func parseUintHeader(raw []byte) *uint64 {
	if len(raw) == 0 {
		return nil
	}
	n, err := strconv.ParseUint(string(raw), 10, 64)
	if err != nil {
		return nil
	}
	return &n
}

func parseResetHeader(raw []byte) *time.Time {
	if len(raw) == 0 {
		return nil
	}
	f, err := strconv.ParseFloat(string(raw), 64)
	if err != nil {
		return nil
	}
	t := time.Unix(0, int64(f*float64(time.Second)))
	return &t
}
