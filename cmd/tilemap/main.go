package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/kjkrol/goktile/internal/app"
	"github.com/kjkrol/goktile/internal/config"
	"github.com/kjkrol/goktile/internal/platform"
	"github.com/kjkrol/goktile/pkg/input"
)

func main() {
	cfg := config.DefaultConfig()
	configPath := config.BindFlags(flag.CommandLine, cfg)
	flag.Parse()

	cfg, err := config.Resolve(flag.CommandLine, cfg, *configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	log, err := config.NewLogger(cfg.Log)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	tiles, err := app.New(cfg, log)
	if err != nil {
		log.WithError(err).Fatal("failed to build tile map")
	}
	defer tiles.Close()

	device, err := platform.NewDevice()
	if err != nil {
		log.WithError(err).Fatal("failed to create device")
	}
	defer device.Close()

	game := platform.NewGame(tiles, device, input.NewBus(0), cfg.Window.PanSpeed)

	ebiten.SetWindowSize(cfg.Window.Width, cfg.Window.Height)
	ebiten.SetWindowTitle(cfg.Window.Title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
		log.WithError(err).Error("game loop stopped")
	}
}
