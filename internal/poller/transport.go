//go:build !js

package poller

import (
	"net/http"
	"time"
)

const (
	defaultMaxIdleConns        = 10
	defaultMaxIdleConnsPerHost = 4
	defaultIdleConnTimeout     = 60 * time.Second
)

// newTransport returns a pooled transport. Polls of a single source reuse
// one keep-alive connection.
func newTransport() http.RoundTripper {
	return &http.Transport{
		Proxy:               http.ProxyFromEnvironment,
		MaxIdleConns:        defaultMaxIdleConns,
		MaxIdleConnsPerHost: defaultMaxIdleConnsPerHost,
		IdleConnTimeout:     defaultIdleConnTimeout,
	}
}
