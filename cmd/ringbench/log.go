package main

import (
	"log/slog"
	"os"
)

var (
	levelVar = &slog.LevelVar{}
	logger   = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: levelVar}))
)

func setDebug(enabled bool) {
	if enabled {
		levelVar.Set(slog.LevelDebug)
		return
	}
	levelVar.Set(slog.LevelInfo)
}
