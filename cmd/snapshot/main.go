package main

import (
	"flag"
	"fmt"
	"image/png"
	"os"
	"time"

	"github.com/kjkrol/goktile/internal/app"
	"github.com/kjkrol/goktile/internal/config"
	"github.com/kjkrol/goktile/pkg/gfx"
	"github.com/kjkrol/goktile/pkg/input"
	"github.com/sirupsen/logrus"
)

// snapshot bakes the tile map headlessly on the software device and writes the
// viewport around a tile to a PNG file.
func main() {
	cfg := config.DefaultConfig()
	configPath := config.BindFlags(flag.CommandLine, cfg)
	out := flag.String("out", "snapshot.png", "output PNG path")
	tileX := flag.Int("x", -1, "tile to centre on, default map centre")
	tileY := flag.Int("y", -1, "tile to centre on, default map centre")
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

	tiles.Handle(input.Resize{Width: cfg.Window.Width, Height: cfg.Window.Height})
	cx, cy := *tileX, *tileY
	if cx < 0 || cy < 0 {
		cx, cy = cfg.Map.MapTilesWide()/2, cfg.Map.MapTilesHigh()/2
	}
	tiles.View.CenterOn(cx, cy)

	start := time.Now()
	device := gfx.NewSurfaceDevice(cfg.Window.Width, cfg.Window.Height)
	baked := tiles.Frame(device)
	tiles.Draw(device)

	f, err := os.Create(*out)
	if err != nil {
		log.WithError(err).Fatal("failed to create output")
	}
	defer f.Close()
	if err := png.Encode(f, device.Screen()); err != nil {
		log.WithError(err).Fatal("failed to encode snapshot")
	}
	log.WithFields(logrus.Fields{
		"out":     *out,
		"baked":   baked,
		"elapsed": time.Since(start),
	}).Info("snapshot written")
}
