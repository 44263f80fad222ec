// Command restaurantctl seeds a sample restaurant into storage and prints
// what is stored.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/gczaar/BYT-RestaurantSystem/store"
)

func main() {
	os.Exit(realMain(os.Args[1:], os.Stdout, os.Stderr))
}

// realMain runs the command and returns the process exit code, so that
// deferred cleanup such as flushing the logger happens before exiting.
func realMain(args []string, stdout, stderr io.Writer) int {
	// .env is optional
	_ = godotenv.Load()

	cfg, err := parseConfig(args, stderr)
	if errors.Is(err, flag.ErrHelp) {
		return 0
	}
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 2
	}

	logger, err := newLogger(cfg.Debug)
	if err != nil {
		fmt.Fprintf(stderr, "failed to initialize logger: %v\n", err)
		return 1
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, stdout, logger); err != nil {
		logger.Errorw("command failed", "command", cfg.Command, "error", err)
		return 1
	}
	return 0
}

func newLogger(debug bool) (*zap.SugaredLogger, error) {
	var logger *zap.Logger
	var err error
	if debug {
		z := zap.NewDevelopmentConfig()
		z.OutputPaths = []string{"stderr"}
		logger, err = z.Build()
	} else {
		logger, err = zap.NewProduction()
	}
	if err != nil {
		return nil, err
	}
	return logger.Sugar(), nil
}

func run(ctx context.Context, cfg cliConfig, out io.Writer, logger *zap.SugaredLogger) error {
	var client store.DynamoAPI
	if cfg.Store.Backend == store.BackendDynamoDB {
		c, err := newDynamoClient(ctx, cfg)
		if err != nil {
			return err
		}
		client = c
	}

	s, err := store.Open(cfg.Store, client, logger)
	if err != nil {
		return err
	}

	switch cfg.Command {
	case "seed":
		return seed(ctx, s, out, logger)
	case "show":
		return show(ctx, s, out)
	default:
		return fmt.Errorf("unknown command %q: %w", cfg.Command, errUsage)
	}
}

func newDynamoClient(ctx context.Context, cfg cliConfig) (*dynamodb.Client, error) {
	var opts []func(*config.LoadOptions) error
	if cfg.AWSProfile != "" {
		opts = append(opts, config.WithSharedConfigProfile(cfg.AWSProfile))
	}
	awsCfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("load AWS config: %w", err)
	}
	return dynamodb.NewFromConfig(awsCfg, func(o *dynamodb.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
	}), nil
}
