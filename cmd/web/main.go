package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/peterkuimelis/duelbot/internal/config"
	"github.com/peterkuimelis/duelbot/internal/web"
)

func main() {
	configFile := flag.String("config", "", "path to YAML config file")
	port := flag.Int("port", 0, "HTTP port to listen on (overrides config)")
	flag.Parse()

	cfg, err := config.Load(*configFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if *port != 0 {
		cfg.Web.Addr = fmt.Sprintf(":%d", *port)
	}
	logger, err := config.NewLogger(cfg.Log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := web.NewServer(cfg, logger)
	logger.Info("duelbot web listening", zap.String("addr", cfg.Web.Addr))
	if err := srv.ListenAndServe(ctx, cfg.Web.Addr); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
