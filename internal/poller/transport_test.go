//go:build !js

package poller

import (
	"net/http"
	"testing"
)

// TestNewClient_PooledTransport verifies that native builds get their own
// keep-alive pool rather than the shared default transport.
func TestNewClient_PooledTransport(t *testing.T) {
	client := NewClientWithTransport(nil)

	transport, ok := client.httpClient.Transport.(*http.Transport)
	if !ok {
		t.Fatalf("Transport = %T, want *http.Transport", client.httpClient.Transport)
	}
	if transport == http.DefaultTransport {
		t.Error("native client should not share http.DefaultTransport")
	}
	if transport.MaxIdleConnsPerHost != defaultMaxIdleConnsPerHost {
		t.Errorf("MaxIdleConnsPerHost = %d, want %d", transport.MaxIdleConnsPerHost, defaultMaxIdleConnsPerHost)
	}
}
