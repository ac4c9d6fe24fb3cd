package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"reelmate/internal/config"
	"reelmate/internal/serverrun"
)

func main() {
	configFlag := flag.String("config", "", "configuration file path")
	logLevel := flag.String("log-level", "", "override configured log level")
	flag.Parse()

	cfg, _, _, err := config.Load(*configFlag)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	if err := serverrun.Run(context.Background(), cfg, serverrun.Options{LogLevel: *logLevel}); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
