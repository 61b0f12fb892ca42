//go:build js

package poller

import "net/http"

// newTransport returns the default transport, which is the only one backed
// by the browser's fetch API. A custom *http.Transport would try to dial
// sockets, which the browser does not allow.
func newTransport() http.RoundTripper {
	return http.DefaultTransport
}
