//go:build sdl && cgo

package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/kjkrol/goktile/internal/app"
	"github.com/kjkrol/goktile/internal/config"
	"github.com/kjkrol/goktile/internal/platform"
	"github.com/kjkrol/goktile/internal/renderer"
	"github.com/kjkrol/goktile/pkg/input"
	"github.com/sirupsen/logrus"
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

	window, err := platform.NewGLWindow(cfg.Window.Title, cfg.Window.Width, cfg.Window.Height)
	if err != nil {
		log.WithError(err).Fatal("failed to open window")
	}
	defer window.Close()

	tiles, err := app.New(cfg, log)
	if err != nil {
		log.WithError(err).Fatal("failed to build tile map")
	}

	device := renderer.NewDevice(window.Size())
	defer device.Close()

	bus := input.NewBus(0)
	bus.Subscribe(tiles.Handle)
	bus.Emit(input.Resize{Width: cfg.Window.Width, Height: cfg.Window.Height})

	frames := 0
	start := time.Now()
	for window.PollEvents(bus) {
		bus.Drain()
		if tiles.Quit() {
			break
		}
		tiles.Frame(device)
		device.SetScreenSize(window.Size())
		tiles.Draw(device)
		window.Swap()

		frames++
		if elapsed := time.Since(start); elapsed >= 5*time.Second {
			log.WithFields(logrus.Fields{
				"fps":     float64(frames) / elapsed.Seconds(),
				"targets": device.LiveTargets(),
			}).Debug("frame stats")
			frames = 0
			start = time.Now()
		}
	}
	tiles.Close()
}
