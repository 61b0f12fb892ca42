// Package climateboard polls a temperature/humidity endpoint and keeps a
// live dashboard of the two values.
//
// Every cycle issues a GET to the source, decodes "temperature" and
// "humidity" from the JSON body and writes them into two display slots. A
// failed cycle (non-2xx status, unparseable body, unreachable source) writes
// the text "Error" into both slots and logs the cause; the next cycle runs
// regardless.
//
// # Quick Start
//
//	b, err := climateboard.New(
//	    climateboard.WithSource("http://192.168.1.40"),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
//	defer stop()
//
//	b.Start(ctx) // blocks until ctx is cancelled
//
// A source URL without a path is polled at /api/data. The first cycle runs
// immediately, then every 5 seconds unless [WithPollingInterval] says
// otherwise.
//
// # Displays
//
// The board always renders into its own page, served at http://localhost:<port>
// and streamed to browsers over Server-Sent Events. [WithDisplay] adds more
// targets, for example an MQTT mirror. Cycles are not de-duplicated: if a
// request outlives the interval, two cycles may be in flight and the one
// that finishes last wins.
//
// # Architecture
//
//   - reading: payload decoding and the HTTPStatusError / DecodeError kinds
//   - sensor: the /api/data endpoint with a mock sensor
//   - internal/poller: HTTP client, fetch-decode-render cycle, scheduler
//   - internal/display: slot page with pub/sub, DOM display for js builds
//   - internal/server: dashboard page, slot snapshot, SSE, /metrics
//   - internal/mirror: MQTT republishing of slot writes
//   - internal/metrics: Prometheus collectors
//   - dashboard: embedded web page
package climateboard
