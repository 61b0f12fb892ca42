//go:build js

package display

import "honnef.co/go/js/dom"

// DOM writes slot text into the browser document. Each slot name is the
// id of an element; the element is looked up on every write.
type DOM struct {
	doc dom.Document
}

// NewDOM returns a display bound to the current window's document.
func NewDOM() *DOM {
	return &DOM{doc: dom.GetWindow().Document()}
}

// SetText replaces the element's text content. Unknown ids are ignored.
func (d *DOM) SetText(slot, text string) {
	el := d.doc.GetElementByID(slot)
	if el == nil {
		return
	}
	el.SetTextContent(text)
}
