package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/gczaar/BYT-RestaurantSystem/store"
)

type cliConfig struct {
	Store      store.Config
	AWSProfile string
	Endpoint   string
	Debug      bool
	Command    string
}

var errUsage = errors.New("usage: restaurantctl [flags] seed|show")

// parseConfig reads the environment, then flags. Flags win.
func parseConfig(args []string, stderr io.Writer) (cliConfig, error) {
	def := store.DefaultConfig()
	shards, err := envInt("RESTAURANT_SHARDS", def.NumShards)
	if err != nil {
		return cliConfig{}, err
	}

	var cfg cliConfig
	fs := flag.NewFlagSet("restaurantctl", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&cfg.Store.Backend, "backend", envOr("RESTAURANT_BACKEND", def.Backend), "storage backend: file or dynamodb")
	fs.StringVar(&cfg.Store.DataDir, "data-dir", envOr("RESTAURANT_DATA_DIR", def.DataDir), "snapshot directory for the file backend")
	fs.StringVar(&cfg.Store.Format, "format", envOr("RESTAURANT_FORMAT", def.Format), "snapshot format: yaml, json or bson")
	fs.StringVar(&cfg.Store.Table, "table", envOr("RESTAURANT_TABLE", def.Table), "DynamoDB table")
	fs.IntVar(&cfg.Store.NumShards, "shards", shards, "DynamoDB partition keys per extent")
	fs.StringVar(&cfg.AWSProfile, "aws-profile", os.Getenv("AWS_PROFILE"), "shared AWS config profile")
	fs.StringVar(&cfg.Endpoint, "endpoint", os.Getenv("RESTAURANT_DYNAMODB_ENDPOINT"), "DynamoDB endpoint override, e.g. DynamoDB Local")
	fs.BoolVar(&cfg.Debug, "debug", false, "development logging")

	if err := fs.Parse(args); err != nil {
		return cliConfig{}, err
	}
	if fs.NArg() != 1 {
		return cliConfig{}, errUsage
	}
	cfg.Command = fs.Arg(0)
	return cfg, nil
}

func envOr(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) (int, error) {
	v := envOr(key, "")
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return n, nil
}
