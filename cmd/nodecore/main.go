// Command nodecore is a minimal demonstration entry point: it loads
// settings, builds a logger, and runs Genesis through Verify so an operator
// can confirm the core is wired correctly. It is not part of the
// specification's invariants.
package main

import (
	"context"
	"os"

	"github.com/icryptix/core/internal/config"
	"github.com/icryptix/core/internal/metrics"
	"github.com/icryptix/core/internal/ulogger"
	"github.com/icryptix/core/model"
)

func main() {
	settings := config.NewSettings()
	logger := ulogger.New("nodecore", settings.Logging.Level)

	metrics.Init()

	genesis := model.Genesis()

	ok, err := genesis.Verify(context.Background(), logger)
	if err != nil {
		logger.Errorf("genesis verification faulted: %v", err)
		os.Exit(1)
	}

	if !ok {
		logger.Errorf("genesis block failed validation")
		os.Exit(1)
	}

	hash, err := genesis.Hash()
	if err != nil {
		logger.Errorf("failed to hash genesis: %v", err)
		os.Exit(1)
	}

	logger.Infof("genesis verified ok, hash=%s", hash.String())
}
