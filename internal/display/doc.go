// Package display holds the slots a poll cycle writes into.
//
// The main components are:
//
//   - [Display]: anything that accepts slot text writes
//   - [Page]: in-memory slots with pub/sub, served to the browser dashboard
//   - [Multi]: fan-out of one write to several displays
//   - DOM: writes straight into browser elements (js builds only)
//
// Slots are identified by name. A display resolves the name on every write;
// writers never hold a reference to the underlying element.
package display
