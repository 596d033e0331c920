package cmd

import (
	"fmt"
	"os"

	"github.com/longkey1/chatbot/internal/chatbot"
	"github.com/longkey1/chatbot/internal/config"
	"github.com/longkey1/chatbot/internal/gemini"
	"github.com/longkey1/chatbot/internal/logging"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// newLogger creates the diagnostics logger; --verbose forces debug level
func newLogger(cfg *config.Config) (*logrus.Logger, error) {
	level := cfg.LogLevel
	if verbose {
		level = "debug"
	}
	return logging.New(os.Stderr, level, cfg.LogFormat)
}

// newSession loads the configuration and wires a session to the configured endpoint
func newSession() (*chatbot.Session, *config.Config, error) {
	cfg, err := config.LoadConfig(viper.GetViper())
	if err != nil {
		return nil, nil, fmt.Errorf("loading config: %w", err)
	}

	logger, err := newLogger(cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("creating logger: %w", err)
	}

	endpoint, err := cfg.Endpoint()
	if err != nil {
		return nil, nil, err
	}

	client := gemini.NewClient(endpoint)
	client.SetLogger(logger)
	client.SetDebug(verbose)

	opts := chatbot.Options{
		IncludePlaceholder: cfg.IncludePlaceholder,
		SerializeRequests:  cfg.SerializeRequests,
		SurfaceErrors:      cfg.SurfaceErrors,
	}
	sess := chatbot.NewSession(client, opts, logger)

	if verbose {
		fmt.Fprintf(os.Stderr, "Session: %s\n", sess.GetShortID())
		fmt.Fprintf(os.Stderr, "Endpoint: %s\n", config.MaskURL(endpoint))
	}

	return sess, cfg, nil
}
