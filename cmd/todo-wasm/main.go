//go:build js && wasm

// Command todo-wasm mounts the demo app into the browser page it is loaded
// by. The page must contain an element with id "root".
package main

import (
	"log/slog"

	"github.com/vango-dev/miniframe"
	"github.com/vango-dev/miniframe/internal/errors"
	"github.com/vango-dev/miniframe/internal/logging"
	"github.com/vango-dev/miniframe/internal/todo"
	"github.com/vango-dev/miniframe/pkg/dom/jsdom"
)

func main() {
	logger := logging.New(slog.LevelInfo, "text")

	if _, err := todo.Start(miniframe.Options{
		Document: jsdom.New(),
		Logger:   logger,
	}); err != nil {
		logger.Error("start failed", "code", errors.Classify(err), "error", err)
		return
	}

	// Event callbacks run on this program; keep it alive.
	select {}
}
