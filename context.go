/************************************************************************************
 *
 * ember, a Go client library for a Discord-shaped chat-service gateway + REST API
 *
 * SPDX-License-Identifier: BSD-3-Clause
 *
 ************************************************************************************/

package ember

// Context is the sole object an embedder's callback sees. It bundles a
// reference to Http for issuing REST requests plus a handle to Gateway
// for presence updates. It holds only a shared, non-owning handle to
// Gateway — the same handle GatewayHandler holds — so there is no
// ownership cycle between Context and Gateway.
//
// Grounded on spec.md §9 ("Cyclic Context → Gateway vs. Gateway owns
// socket") and on the teacher's pattern of handing callbacks a thin
// facade rather than the whole client.
type Context struct {
	Http *Http
	gw   *Gateway
}

func newContext(http *Http, gw *Gateway) *Context {
	return &Context{Http: http, gw: gw}
}

// SetPresence updates this session's presence. Safe to call
// concurrently with the network actor; Gateway serializes all socket
// writes behind its own lock.
func (c *Context) SetPresence(status Status, activity *Activity) error {
	return c.gw.presenceUpdate(status, activity)
}
