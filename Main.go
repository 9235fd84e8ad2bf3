package main

import (
	"fmt"
	"os"

	"Draughts/game/config"
	"Draughts/game/network"
	"Draughts/game/obslog"

	"github.com/jessevdk/go-flags"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

type options struct {
	Config flags.Filename `short:"c" long:"config" description:"YAML or TOML config file"`
	Addr   string         `short:"a" long:"addr" description:"listen address, overrides config"`
}

func main() {
	cfg, err := setup(os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	log := obslog.L()
	defer log.Sync()

	reg := prometheus.NewRegistry()
	session, err := newSession(cfg, reg)
	if err != nil {
		log.Fatal("session", zap.Error(err))
	}

	r := newRouter(cfg, session, reg)
	log.Info("server starting",
		zap.String("addr", cfg.Addr),
		zap.String("game_id", session.ID),
		zap.String("black", cfg.BlackName),
		zap.String("white", cfg.WhiteName),
	)
	if err := r.Run(cfg.Addr); err != nil {
		log.Fatal("server failed", zap.Error(err))
	}
}

// setup parses flags, loads the config and installs the process logger.
// Errors are returned for the caller to print; no logger exists yet.
func setup(args []string) (*config.Config, error) {
	var opts options
	if _, err := flags.NewParser(&opts, flags.HelpFlag|flags.PassDoubleDash).ParseArgs(args); err != nil {
		return nil, err
	}

	cfg, err := config.Load(string(opts.Config))
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if opts.Addr != "" {
		cfg.Addr = opts.Addr
	}

	if err := obslog.Init(obslog.Options{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		File:   cfg.Log.File,
		Caller: cfg.Log.Caller,
	}); err != nil {
		return nil, fmt.Errorf("logger: %w", err)
	}
	return cfg, nil
}

func newSession(cfg *config.Config, reg prometheus.Registerer) (*network.GameSession, error) {
	return network.NewGameSession(network.SessionOptions{
		BlackName:       cfg.BlackName,
		WhiteName:       cfg.WhiteName,
		ReadBufferSize:  cfg.WebSocket.ReadBufferSize,
		WriteBufferSize: cfg.WebSocket.WriteBufferSize,
		AllowedOrigins:  cfg.WebSocket.AllowedOrigins,
		Metrics:         network.NewMetrics(reg),
		Logger:          obslog.L(),
	})
}
