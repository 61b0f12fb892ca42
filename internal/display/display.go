package display

import "time"

// Slot identifiers used by the dashboard page.
const (
	SlotTemperature = "temperature"
	SlotHumidity    = "humidity"
)

const (
	// ErrorText is written into every slot when a cycle fails.
	ErrorText = "Error"

	// Placeholder is shown for slots that have not been written yet.
	Placeholder = "--"
)

// Display accepts text for named slots. Later writes replace earlier ones.
type Display interface {
	SetText(slot, text string)
}

// Update is the state of one slot after a write.
type Update struct {
	Slot      string    `json:"slot"`
	Text      string    `json:"text"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Feed exposes slot state to readers such as the dashboard server.
type Feed interface {
	// Snapshot returns the current state of every slot, ordered by name.
	Snapshot() []Update

	// Subscribe returns a channel that receives every subsequent write.
	Subscribe() <-chan Update

	// Unsubscribe removes a subscription and closes its channel.
	Unsubscribe(ch <-chan Update)
}

// Multi writes to each display in order.
type Multi []Display

// SetText implements [Display].
func (m Multi) SetText(slot, text string) {
	for _, d := range m {
		d.SetText(slot, text)
	}
}

// DisplayFunc adapts a function to [Display].
type DisplayFunc func(slot, text string)

// SetText implements [Display].
func (f DisplayFunc) SetText(slot, text string) {
	f(slot, text)
}
