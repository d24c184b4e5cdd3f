package main

import (
	"errors"
	"os"

	"git.sr.ht/~sircmpwn/getopt"
	"github.com/charmbracelet/log"

	"github.com/intio/tagwm/internal/config"
)

var version string

var (
	errorQuit      = errors.New("quit")
	errorAnotherWM = errors.New("another window manager is already running")
	errorXClosed   = errors.New("X connection closed")
	errorStopped   = errors.New("window manager stopped")
)

func newLogger(level log.Level) *log.Logger {
	return log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
		Prefix:          "tagwm",
	})
}

func main() {
	logger := newLogger(log.InfoLevel)
	opts, _, err := getopt.Getopts(os.Args, "c:l:v")
	if err != nil {
		logger.Fatal("usage: tagwm [-v] [-c config] [-l listen]", "err", err)
	}
	var (
		cfgPath    = config.DefaultPath()
		listenAddr string
		verbose    bool
	)
	for _, opt := range opts {
		switch opt.Option {
		case 'c':
			cfgPath = opt.Value
		case 'l':
			listenAddr = opt.Value
		case 'v':
			verbose = true
		}
	}

	cfg, err := config.LoadOrDefault(cfgPath)
	if err != nil {
		logger.Fatal("loading config", "err", err)
	}
	level, err := log.ParseLevel(cfg.Log)
	if err != nil {
		logger.Warn("bad log_level, using info", "level", cfg.Log)
		level = log.InfoLevel
	}
	if verbose {
		level = log.DebugLevel
	}
	logger.SetLevel(level)
	if version != "" {
		logger.Info("starting", "version", version)
	}
	if listenAddr == "" {
		listenAddr = cfg.Listen
	}

	wm, err := NewWM(cfg, logger)
	if err != nil {
		logger.Fatal("config", "err", err)
	}
	if err := wm.Init(); err != nil {
		logger.Fatal("init", "err", err)
	}
	if listenAddr != "" {
		api := NewAPIServer(wm, listenAddr)
		go api.Start()
	}

	err = wm.Run()
	wm.Deinit()
	if !errors.Is(err, errorQuit) {
		logger.Error("exiting", "err", err)
		os.Exit(1)
	}
}
