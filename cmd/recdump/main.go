package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/danmuck/recstream/internal/config"
	"github.com/danmuck/recstream/internal/logging"
	"github.com/danmuck/recstream/internal/stream"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	configPath := flag.String("config", "", "recdump config path (defaults apply when empty)")
	input := flag.String("in", "", "raw record stream to read")
	output := flag.String("out", "", "rewrite decoded records to this path")
	verifyFlag := flag.Bool("verify", false, "verify byte-identical round trip")
	diagnostics := flag.Bool("diagnostics", false, "warn about unknown sids in the sub-record range")
	metricsOut := flag.String("metrics", "", "write prometheus counters to this path after the run")
	flag.Parse()

	logging.ConfigureRuntime()

	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.LoadDumpConfig(*configPath)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to load recdump config")
		}
		cfg = loaded
		log.Info().Str("path", *configPath).Msg("loaded recdump config")
	}
	if enabled, ok := logging.DiagnosticsFromEnv(); ok {
		cfg.Diagnostics = enabled
	}
	if *diagnostics {
		cfg.Diagnostics = true
	}
	if *verifyFlag {
		cfg.VerifyRoundTrip = true
	}
	if *metricsOut != "" {
		cfg.MetricsOut = *metricsOut
	}
	if _, ok := logging.ParseLevel(os.Getenv(logging.EnvLogLevel)); !ok {
		zerolog.SetGlobalLevel(cfg.LogLevel)
	}

	if *input == "" {
		log.Fatal().Msg("-in is required")
	}
	data, err := os.ReadFile(*input)
	if err != nil {
		log.Fatal().Err(err).Str("path", *input).Msg("failed to read stream")
	}

	recs, sum, err := dump(data, cfg, os.Stdout)
	if err != nil {
		log.Fatal().Err(err).Str("path", *input).Msg("dump failed")
	}
	fmt.Println(sum.String())

	if *output != "" {
		f, err := os.Create(*output)
		if err != nil {
			log.Fatal().Err(err).Str("path", *output).Msg("failed to create output")
		}
		w := stream.NewWriter(f)
		if err := w.WriteAll(recs); err != nil {
			f.Close()
			log.Fatal().Err(err).Str("path", *output).Msg("rewrite failed")
		}
		if err := f.Close(); err != nil {
			log.Fatal().Err(err).Str("path", *output).Msg("rewrite failed")
		}
		log.Info().Str("path", *output).Int("records", w.Count()).Int64("bytes", w.BytesWritten()).Msg("stream rewritten")
	}

	if err := writeMetrics(cfg.MetricsOut); err != nil {
		log.Fatal().Err(err).Msg("metrics export failed")
	}
	if cfg.MetricsOut != "" {
		log.Info().Str("path", cfg.MetricsOut).Msg("metrics written")
	}
}
