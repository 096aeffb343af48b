// Command dataconverter converts documents and scans into CSV tables,
// either as an HTTP service or as a one-shot batch tool.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/romanch203/DataConverterPro/config"
	"github.com/romanch203/DataConverterPro/export"
	"github.com/romanch203/DataConverterPro/ocr"
	"github.com/romanch203/DataConverterPro/pipeline"
	"github.com/romanch203/DataConverterPro/server"
	"github.com/romanch203/DataConverterPro/store"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	var configPath string

	root := &cobra.Command{
		Use:           "dataconverter",
		Short:         "Reconstruct tables from documents and scans",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVarP(&configPath, "config", "c", "", "path to YAML config file")

	root.AddCommand(serveCmd(&configPath))
	root.AddCommand(convertCmd(&configPath))
	return root
}

// newLogger builds a zerolog logger at the configured level. The server
// writes JSON for ingestion; the batch command gets a console writer.
func newLogger(level string, console bool) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		lvl = zerolog.InfoLevel
	}

	var log zerolog.Logger
	if console {
		log = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
	} else {
		log = zerolog.New(os.Stderr)
	}
	return log.Level(lvl).With().Timestamp().Logger()
}

// newOCR tries to bring up the OCR engine. Builds without the ocr tag,
// or hosts without Tesseract, run with the raster path disabled.
func newOCR(log zerolog.Logger) pipeline.WordReader {
	client, err := ocr.New()
	if err != nil {
		log.Warn().Err(err).Msg("OCR unavailable, image inputs disabled")
		return nil
	}
	return client
}

func serveCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the conversion HTTP API",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(*configPath)
			if err != nil {
				return err
			}
			log := newLogger(cfg.LogLevel, false)

			words := newOCR(log)
			pipe, err := pipeline.New(cfg.Tables, log, words)
			if err != nil {
				return err
			}

			st, err := store.Open(cfg.Ledger)
			if err != nil {
				return err
			}
			defer st.Close()

			srv := &http.Server{
				Addr:              cfg.Server.Addr,
				Handler:           server.New(cfg.Server, log, pipe, st).Router(),
				ReadHeaderTimeout: 10 * time.Second,
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			errCh := make(chan error, 1)
			go func() {
				log.Info().Str("addr", cfg.Server.Addr).Msg("listening")
				errCh <- srv.ListenAndServe()
			}()

			select {
			case err := <-errCh:
				return err
			case <-ctx.Done():
			}

			log.Info().Msg("shutting down")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
			defer cancel()
			if err := srv.Shutdown(shutdownCtx); err != nil {
				return fmt.Errorf("shutdown: %w", err)
			}
			return nil
		},
	}
}

func convertCmd(configPath *string) *cobra.Command {
	var outDir string
	var workers int

	cmd := &cobra.Command{
		Use:   "convert FILE...",
		Short: "Convert files to CSV",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(*configPath)
			if err != nil {
				return err
			}
			log := newLogger(cfg.LogLevel, true)

			pipe, err := pipeline.New(cfg.Tables, log, newOCR(log))
			if err != nil {
				return err
			}

			items := make([]pipeline.BatchItem, 0, len(args))
			for _, path := range args {
				data, err := os.ReadFile(path)
				if err != nil {
					return fmt.Errorf("reading %s: %w", path, err)
				}
				items = append(items, pipeline.BatchItem{Filename: filepath.Base(path), Data: data})
			}

			if err := os.MkdirAll(outDir, 0o755); err != nil {
				return fmt.Errorf("creating output dir: %w", err)
			}

			if workers < 1 {
				workers = cfg.Server.Workers
			}
			results := pipe.ConvertBatch(cmd.Context(), items, workers)

			var failed int
			for _, res := range results {
				if res.Err != nil {
					failed++
					log.Error().Str("file", res.Filename).Err(res.Err).Msg("conversion failed")
					continue
				}

				base := res.Filename[:len(res.Filename)-len(filepath.Ext(res.Filename))]
				outPath := filepath.Join(outDir, base+".csv")
				f, err := os.Create(outPath)
				if err != nil {
					return fmt.Errorf("creating %s: %w", outPath, err)
				}
				if err := export.WriteCSV(f, res.Conv.Tables); err != nil {
					f.Close()
					return fmt.Errorf("writing %s: %w", outPath, err)
				}
				if err := f.Close(); err != nil {
					return err
				}

				sum := export.Summarize(res.Conv.Tables)
				log.Info().
					Str("file", res.Filename).
					Str("output", outPath).
					Int("tables", sum.TableCount).
					Int("rows", sum.RowCount).
					Float64("accuracy", res.Conv.Quality.AccuracyScore).
					Msg("converted")
			}

			if failed == len(results) {
				return errors.New("all conversions failed")
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&outDir, "out", "o", ".", "output directory for CSV files")
	cmd.Flags().IntVarP(&workers, "workers", "w", 0, "concurrent conversions (default from config)")
	return cmd
}
