package main

import (
	"flag"
	"os"

	"github.com/focusflow/focusflow-server/internal/config"
	"github.com/focusflow/focusflow-server/internal/logger"
	"github.com/focusflow/focusflow-server/reportservice"
)

func main() {
	// Optional build-target flag override (local | cloud-dev | cloud)
	buildTarget := flag.String("build-target", "", "Override BUILD_TARGET (local, cloud-dev, cloud)")
	flag.Parse()

	if *buildTarget != "" {
		// Run() re-reads configuration; the override flows through the env.
		log := logger.New("focusflow-service")
		if err := os.Setenv("FOCUSFLOW_BUILD_TARGET", *buildTarget); err != nil {
			log.Fatal().Err(err).Msg("Failed to apply build-target override")
		}
		// Validate early so a bad flag fails before the server boots.
		cfg := &config.Config{BuildTarget: *buildTarget, DBDriver: "auto", SQLitePath: "focusflow.db", PostgresDSN: os.Getenv("FOCUSFLOW_POSTGRES_DSN")}
		if err := cfg.ResolveDefaults(); err != nil {
			log.Fatal().Err(err).Msg("Invalid build-target override")
		}
	}

	if err := reportservice.Run(); err != nil {
		os.Exit(1)
	}
}
