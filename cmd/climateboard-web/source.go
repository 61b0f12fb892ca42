// Command climateboard-web is the in-browser rendition of the dashboard. It
// is compiled with GopherJS and loaded by a page that holds elements with
// ids "temperature" and "humidity"; it polls /api/data on the page's own
// origin and writes straight into those elements.
package main

import (
	"net/url"

	"github.com/jpalmerr/climateboard/internal/poller"
)

// dataURL resolves the data path against the page location, keeping the
// page's scheme and host and dropping its path and query.
func dataURL(page string) (string, error) {
	base, err := url.Parse(page)
	if err != nil {
		return "", err
	}
	return base.ResolveReference(&url.URL{Path: poller.DefaultPath}).String(), nil
}
