//go:build js

package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"

	"honnef.co/go/js/dom"

	"github.com/jpalmerr/climateboard/internal/display"
	"github.com/jpalmerr/climateboard/internal/poller"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))

	source, err := dataURL(dom.GetWindow().Location().Href)
	if err != nil {
		logger.Error("cannot resolve data URL", "error", err)
		return
	}

	// requests must go through the fetch-backed default transport
	client := poller.NewClientWithTransport(http.DefaultTransport)
	p := poller.NewPoller(poller.Config{URL: source}, client, display.NewDOM(), logger)
	scheduler := poller.NewScheduler(p, poller.DefaultInterval, logger)
	scheduler.Start(context.Background())

	// the page owns the lifetime; drain results so cycles never block
	for range scheduler.Results() {
	}
}
