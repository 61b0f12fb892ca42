// Package dashboard provides the embedded web page for climateboard.
//
// The page holds one element per slot (ids "temperature" and "humidity")
// and keeps them current from the server's /api/sse stream.
package dashboard

import "embed"

// Assets is an embedded filesystem containing the dashboard page.
//
//	assets/
//	  index.html    - page with inline CSS and the SSE client
//
//go:embed assets/*
var Assets embed.FS
