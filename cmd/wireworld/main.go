//go:build ebiten

package main

import (
	"errors"
	"flag"
	"log"
	"path/filepath"

	"github.com/hajimehoshi/ebiten/v2"
	"go.uber.org/zap"

	"wireworld/internal/app"
)

func main() {
	cfg := app.NewConfig()
	cfg.Bind(flag.CommandLine)
	flag.Parse()

	logger, err := app.NewLogger(cfg.Dev)
	if err != nil {
		log.Fatal(err)
	}
	defer logger.Sync()

	grid, resume, err := app.Load(cfg.Circuit, cfg.Resume)
	if err != nil {
		logger.Fatal("load circuit", zap.Error(err))
	}

	title := filepath.Base(cfg.Circuit)
	game := app.New(grid, resume, title, cfg, logger)
	defer game.Close()

	ebiten.SetWindowTitle("wireworld: " + title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	w, h := game.Layout(0, 0)
	ebiten.SetWindowSize(w, h)

	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
		logger.Fatal("run", zap.Error(err))
	}
}
