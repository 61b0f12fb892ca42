// Package server provides the HTTP server for the climateboard dashboard.
//
// This package is internal to climateboard and handles all HTTP concerns:
//
//   - Dashboard serving: the embedded page with the two slot elements at "/"
//   - REST API: JSON snapshot of every slot at "/api/slots"
//   - Server-Sent Events: slot writes streamed at "/api/sse"
//   - Metrics: Prometheus exposition at "/metrics" when a gatherer is set
//
// The server supports graceful shutdown via context cancellation, with a
// 5-second timeout for in-flight requests.
package server
