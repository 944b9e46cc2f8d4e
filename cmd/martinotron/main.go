package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"martinotron/cmd/martinotron/commands"
	"martinotron/internal/components/telemetry"
	"martinotron/lib/osutil"
)

func main() {
	ctx, stop := osutil.SignalContext(context.Background())

	otel, err := telemetry.SetupFromEnv(ctx, "martinotron")
	if err != nil {
		stop()
		osutil.Fatal("failed to setup telemetry", err)
	}

	err = commands.ExecuteContext(ctx)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Second*5)
	if shutdownErr := otel.Shutdown(shutdownCtx); shutdownErr != nil {
		slog.Warn("failed to flush telemetry", "err", shutdownErr.Error())
	}
	cancel()
	stop()

	if err != nil {
		os.Exit(1)
	}
}
