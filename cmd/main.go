package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"prodgen/api"
	"prodgen/config"
	"prodgen/pipeline"

	"github.com/alexflint/go-arg"
	"go.uber.org/zap"
)

const (
	ProgramName = "prodgen"
	Version     = "v0.1.0"
)

type serveCmd struct{}

type generateCmd struct {
	Prompt      string  `arg:"--prompt,required" help:"product name"`
	Description string  `arg:"--description,-d" help:"product description"`
	Variation   string  `arg:"--variation" help:"product variation, e.g. colour or size"`
	Pricing     float64 `arg:"--pricing" help:"product price"`
	Out         string  `arg:"--out,-o" default:"output.txt" help:"file the listing is written to"`
}

type args struct {
	Config   string       `arg:"--config,-c" help:"optional YAML config file, defaults to $CONFIG_PATH"`
	Serve    *serveCmd    `arg:"subcommand:serve" help:"start the HTTP API"`
	Generate *generateCmd `arg:"subcommand:generate" help:"generate one listing and write it to a file"`
}

func (args) Version() string {
	return fmt.Sprintf("%s %s", ProgramName, Version)
}

func main() {
	var args args

	p, err := arg.NewParser(arg.Config{Program: ProgramName}, &args)
	if err != nil {
		log.Fatalf("there was an error in the definition of the Go struct: %v", err)
	}
	p.MustParse(os.Args[1:])

	if p.Subcommand() == nil {
		p.WriteUsage(os.Stdout)
		os.Exit(0)
	}

	// =========
	// Config
	// =========
	cfg, err := config.Load(args.Config)
	if err != nil {
		if errors.Is(err, config.ErrMissingCredential) {
			log.Fatalf("Missing credentials: %v", err)
		}
		log.Fatalf("Failed to load config: %v", err)
	}

	// =========
	// Logging
	// =========
	logger, err := newLogger(cfg.LogLevel)
	if err != nil {
		log.Fatalf("failed to create logger: %v", err)
	}
	defer logger.Sync()

	// =========
	// Pipeline
	// =========
	generator, cleanup, err := newGenerator(cfg, logger)
	if err != nil {
		logger.Fatal("failed to build pipeline", zap.Error(err))
	}
	defer cleanup()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	switch cmd := p.Subcommand().(type) {
	case *serveCmd:
		err = serve(ctx, cfg, generator, logger)
	case *generateCmd:
		err = generate(ctx, cmd, generator, logger)
	default:
		p.FailSubcommand("unrecognized command", p.SubcommandNames()...)
	}
	if err != nil {
		logger.Error("command failed", zap.Error(err))
		cleanup()
		os.Exit(1)
	}
}

func serve(ctx context.Context, cfg *config.Config, generator *pipeline.Generator, logger *zap.Logger) error {
	// a request may run every attempt to completion before it is answered
	perAttempt := cfg.SearchTimeout + time.Duration(cfg.TopN)*cfg.FetchTimeout + cfg.ModelTimeout
	writeTimeout := time.Duration(cfg.MaxAttempts)*perAttempt + 10*time.Second

	srv := api.NewServer(api.ServerConfig{
		Port:         cfg.AppPort,
		CorsOrigins:  cfg.CorsOrigins,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: writeTimeout,
	}, generator, logger)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func generate(ctx context.Context, cmd *generateCmd, generator *pipeline.Generator, logger *zap.Logger) error {
	product := pipeline.ProductInput{
		Name:        strings.TrimSpace(cmd.Prompt),
		Description: cmd.Description,
		Variation:   cmd.Variation,
	}
	if cmd.Pricing != 0 {
		product.Pricing = &cmd.Pricing
	}

	input := product.String()
	fmt.Println("Processing Prompt:", input)

	out, err := generator.Generate(pipeline.WithRequestID(ctx, ""), input)
	if err != nil {
		return err
	}
	fmt.Println("Processed Prompt Result:", out)

	if err := writeListing(cmd.Out, out); err != nil {
		return err
	}
	logger.Info("listing written", zap.String("path", cmd.Out))
	return nil
}
