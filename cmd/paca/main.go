// Command paca downloads GGUF models from a Hugging Face style registry
// into the llama.cpp cache directory.
//
// Configuration is read from flags, a YAML config file and the environment:
//   - MODEL_ENDPOINT / HF_ENDPOINT: registry base URL
//   - HF_TOKEN: bearer token for gated models
//   - PACA_CACHE_DIR: cache directory override
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/paca-cli/paca"
	"github.com/paca-cli/paca/cmd/paca/cmd"
)

// CLI exit codes.
const (
	ExitSuccess      = 0
	ExitGeneralError = 1
	ExitInvalidArgs  = 2
	ExitNotFound     = 3
	ExitNetworkError = 5
	ExitIntegrity    = 6
	ExitStorageError = 7
	ExitInterrupted  = 130
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := cmd.Execute(ctx)
	stop()

	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(exitCodeFromError(err))
	}
}

// exitCodeFromError maps error types to exit codes.
func exitCodeFromError(err error) int {
	if err == nil {
		return ExitSuccess
	}

	switch {
	case errors.Is(err, context.Canceled):
		return ExitInterrupted
	case errors.Is(err, cmd.ErrUsage), errors.Is(err, paca.ErrInvalidReference):
		return ExitInvalidArgs
	case errors.Is(err, paca.ErrNoArtifact):
		return ExitNotFound
	case errors.Is(err, paca.ErrManifestFetch),
		errors.Is(err, paca.ErrManifestParse),
		errors.Is(err, paca.ErrShardListing),
		errors.Is(err, paca.ErrDownload):
		return ExitNetworkError
	case errors.Is(err, paca.ErrIntegrity):
		return ExitIntegrity
	case errors.Is(err, paca.ErrCacheDir), errors.Is(err, paca.ErrFileWrite):
		return ExitStorageError
	default:
		return ExitGeneralError
	}
}
