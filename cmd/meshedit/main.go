package main

import (
	"fmt"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"go.uber.org/zap"

	"github.com/Faultbox/meshedit/internal/config"
	"github.com/Faultbox/meshedit/internal/logger"
)

func main() {
	config.ParseFlags()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("starting meshedit",
		zap.Int("width", cfg.Graphics.Width),
		zap.Int("height", cfg.Graphics.Height),
		zap.Bool("vsync", cfg.Graphics.VSync))

	ebiten.SetWindowSize(cfg.Graphics.Width, cfg.Graphics.Height)
	ebiten.SetWindowTitle("MeshEdit")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetVsyncEnabled(cfg.Graphics.VSync)
	if cfg.Graphics.FPSLimit > 0 {
		ebiten.SetTPS(cfg.Graphics.FPSLimit)
	}

	if err := ebiten.RunGame(NewEditor(cfg)); err != nil {
		logger.Fatal("editor exited", zap.Error(err))
	}
}
