// Command vybium-fib-stark proves and verifies the fixed Fibonacci-square
// STARK statement, logging stage timings and the resulting proof size.
package main

import (
	"os"
	"time"

	"github.com/rs/zerolog"

	vybiumfibstark "github.com/vybium/vybium-fib-stark/pkg/vybium-fib-stark"
)

func main() {
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).
		With().Timestamp().Logger()

	cfg := vybiumfibstark.DefaultConfig()

	start := time.Now()
	proof, err := vybiumfibstark.Prove(cfg, vybiumfibstark.Secret)
	if err != nil {
		logger.Fatal().Err(err).Msg("proof generation failed")
	}
	logger.Info().Dur("elapsed", time.Since(start)).Msg("proof generated")

	verifyStart := time.Now()
	if err := vybiumfibstark.Verify(cfg, proof); err != nil {
		logger.Fatal().Err(err).Msg("proof verification failed")
	}
	logger.Info().Dur("elapsed", time.Since(verifyStart)).Msg("proof verified")

	data, err := vybiumfibstark.Serialize(proof)
	if err != nil {
		logger.Fatal().Err(err).Msg("proof serialization failed")
	}

	logger.Info().
		Int("bytes", len(data)).
		Dur("total_elapsed", time.Since(start)).
		Msg("proof size")
}
