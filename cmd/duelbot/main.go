package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"go.uber.org/zap"

	"github.com/peterkuimelis/duelbot/internal/bot"
	"github.com/peterkuimelis/duelbot/internal/config"
	"github.com/peterkuimelis/duelbot/internal/game"
	duelnet "github.com/peterkuimelis/duelbot/internal/net"
	"github.com/peterkuimelis/duelbot/internal/proto"
)

func main() {
	args := os.Args[1:]
	cmd := "play"
	if len(args) > 0 && !strings.HasPrefix(args[0], "-") {
		cmd, args = args[0], args[1:]
	}

	var err error
	switch cmd {
	case "play":
		err = runPlay(args)
	case "serve":
		err = runServe(args)
	case "replay":
		err = runReplay(args)
	case "help":
		printUsage()
		return
	default:
		printUsage()
		os.Exit(1)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Fprintln(os.Stderr, "Usage:")
	fmt.Fprintln(os.Stderr, "  duelbot [play] [--config FILE]")
	fmt.Fprintln(os.Stderr, "  duelbot serve [--config FILE] [--addr ADDR]")
	fmt.Fprintln(os.Stderr, "  duelbot replay [--addr ADDR] FILE")
	fmt.Fprintln(os.Stderr)
	fmt.Fprintln(os.Stderr, "Commands:")
	fmt.Fprintln(os.Stderr, "  play    Answer referee turns on stdin/stdout (default)")
	fmt.Fprintln(os.Stderr, "  serve   Answer referee connections over TCP")
	fmt.Fprintln(os.Stderr, "  replay  Send recorded turns to a running server and print the answers")
}

// setup loads the config and builds the process logger.
func setup(path string) (config.Config, *zap.Logger, error) {
	cfg, err := config.Load(path)
	if err != nil {
		return cfg, nil, err
	}
	logger, err := config.NewLogger(cfg.Log)
	if err != nil {
		return cfg, nil, err
	}
	return cfg, logger, nil
}

func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}

func runPlay(args []string) error {
	fs := flag.NewFlagSet("play", flag.ExitOnError)
	configFile := fs.String("config", "", "path to YAML config file")
	fs.Parse(args)

	cfg, logger, err := setup(*configFile)
	if err != nil {
		return err
	}
	defer logger.Sync()

	ctx, stop := signalContext()
	defer stop()
	context.AfterFunc(ctx, func() { os.Stdin.Close() })

	planner := game.NewPlanner(cfg.PlannerConfig(config.TraceLogger(cfg.Log, os.Stderr)))
	return bot.Run(ctx, os.Stdin, os.Stdout, bot.Options{
		Planner:    planner,
		Logger:     logger,
		TurnBudget: cfg.TurnBudget,
	})
}

func runServe(args []string) error {
	fs := flag.NewFlagSet("serve", flag.ExitOnError)
	configFile := fs.String("config", "", "path to YAML config file")
	addr := fs.String("addr", "", "TCP address to listen on (overrides config)")
	fs.Parse(args)

	cfg, logger, err := setup(*configFile)
	if err != nil {
		return err
	}
	defer logger.Sync()
	if *addr != "" {
		cfg.Serve.Addr = *addr
	}

	ctx, stop := signalContext()
	defer stop()

	srv := &duelnet.Server{Config: cfg, Logger: logger, TraceOut: os.Stderr}
	return srv.Run(ctx)
}

func runReplay(args []string) error {
	fs := flag.NewFlagSet("replay", flag.ExitOnError)
	addr := fs.String("addr", "localhost:9000", "server address to connect to")
	fs.Parse(args)
	if fs.NArg() != 1 {
		return errors.New("replay needs exactly one snapshot file")
	}

	f, err := os.Open(fs.Arg(0))
	if err != nil {
		return err
	}
	defer f.Close()

	var turns []game.Snapshot
	r := proto.NewReader(f)
	for {
		s, err := r.ReadSnapshot()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return fmt.Errorf("%s: %w", fs.Arg(0), err)
		}
		turns = append(turns, s)
	}

	ctx, stop := signalContext()
	defer stop()

	answers, err := duelnet.Replay(ctx, *addr, turns)
	for i, a := range answers {
		fmt.Printf("T%-2d %s\n", turns[i].Turn, a)
	}
	return err
}
