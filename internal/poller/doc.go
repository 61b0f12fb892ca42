// Package poller fetches readings and renders them into display slots.
//
// This package is internal to climateboard. The main components are:
//
//   - [Client]: HTTP client wrapper with optional timeout and a body size limit
//   - [Poller]: one fetch-decode-render cycle against a fixed source
//   - [Scheduler]: runs the poller immediately, then on a fixed interval
//   - [Result]: informational record of one cycle
//
// A cycle never returns an error. Failures are written into the slots as
// [display.ErrorText] and logged.
package poller
