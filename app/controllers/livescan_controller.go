package controllers

import (
	"bufio"
	"encoding/json"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/valyala/fasthttp"

	"github.com/qrplanet/qrplanet/internal/pkg/livescan"
	"github.com/qrplanet/qrplanet/internal/pkg/usercontext"
)

const liveScanBuffer = 16

// HandleLiveScans streams the current user's scan events as
// server-sent events. A client that stops reading is pruned by the
// registry and the stream ends.
func HandleLiveScans(c *fiber.Ctx) error {
	// Captured here: the fiber context is recycled before the stream
	// writer runs.
	userID := usercontext.GetUserID(c)

	c.Set(fiber.HeaderContentType, "text/event-stream")
	c.Set(fiber.HeaderCacheControl, "no-cache")
	c.Set(fiber.HeaderConnection, "keep-alive")

	c.Context().SetBodyStreamWriter(fasthttp.StreamWriter(func(w *bufio.Writer) {
		registry := livescan.Default()
		sub := registry.Subscribe(liveScanBuffer)
		defer registry.Unsubscribe(sub)

		keepalive := time.NewTicker(30 * time.Second)
		defer keepalive.Stop()

		for {
			select {
			case ev, ok := <-sub.Events():
				if !ok {
					return
				}
				if ev.OwnerID != userID {
					continue
				}
				data, err := json.Marshal(ev)
				if err != nil {
					continue
				}
				fmt.Fprintf(w, "data: %s\n\n", data)
				if err := w.Flush(); err != nil {
					return
				}
			case <-keepalive.C:
				fmt.Fprint(w, ": keepalive\n\n")
				if err := w.Flush(); err != nil {
					return
				}
			}
		}
	}))
	return nil
}
