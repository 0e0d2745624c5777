package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/MKhiriev/eagle-pass/internal/logger"
	"github.com/MKhiriev/eagle-pass/internal/vaultctl"
	"github.com/MKhiriev/eagle-pass/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	log := logger.NewConsoleLogger("vaultctl")
	if err := logger.SetLevel(os.Getenv("VAULTCTL_LOG_LEVEL")); err != nil {
		log.Warn().Err(err).Msg("keeping default log level")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	app := vaultctl.NewApp(models.NewAppBuildInfo(buildVersion, buildDate, buildCommit), log)
	if err := app.RunContext(ctx, os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		stop()
		os.Exit(1)
	}
}
