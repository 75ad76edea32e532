package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/heartmarshall/sapl-backend/internal/adapter/postgres"
	"github.com/heartmarshall/sapl-backend/internal/adapter/postgres/protocol"
	"github.com/heartmarshall/sapl-backend/internal/app"
	"github.com/heartmarshall/sapl-backend/internal/config"
	"github.com/heartmarshall/sapl-backend/internal/export"
	"github.com/heartmarshall/sapl-backend/internal/service/consistency"
)

var (
	checkNames     []string
	outputFormat   string
	uploadS3       bool
	s3Bucket       string
	s3Key          string
	failOnFindings bool
	runTimeout     time.Duration
)

var errFindings = errors.New("consistency findings present")

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run consistency checks and print the findings",
	RunE: func(cmd *cobra.Command, _ []string) error {
		checks, err := parseChecks(checkNames)
		if err != nil {
			return err
		}
		if outputFormat != "table" && outputFormat != "jsonl" {
			return fmt.Errorf("unknown format %q (want table or jsonl)", outputFormat)
		}

		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		if s3Bucket != "" {
			cfg.Export.S3Bucket = s3Bucket
			uploadS3 = true
		}
		if uploadS3 && !cfg.Export.S3Enabled() {
			return errors.New("--s3 needs export.s3_bucket or --s3-bucket")
		}
		logger := app.NewLogger(cfg.Log)

		ctx, cancel := context.WithTimeout(cmd.Context(), runTimeout)
		defer cancel()

		pool, err := postgres.NewPool(ctx, cfg.Database)
		if err != nil {
			return fmt.Errorf("connect to database: %w", err)
		}
		defer pool.Close()

		svc := consistency.NewService(logger, protocol.New(pool), postgres.NewTxManager(pool, postgres.WithStatementTimeout(cfg.Database.StatementTimeout)))
		rep, err := svc.Run(ctx, checks...)
		if err != nil {
			return err
		}
		records := export.Records(rep)

		if err := render(cmd.OutOrStdout(), outputFormat, records); err != nil {
			return err
		}

		if uploadS3 {
			var buf bytes.Buffer
			if err := export.WriteJSONL(&buf, records); err != nil {
				return err
			}
			dest, err := export.NewS3Destination(ctx, cfg.Export)
			if err != nil {
				return err
			}
			key := s3Key
			if key == "" {
				key = export.Key(dest.Prefix(), time.Now())
			}
			loc, err := dest.Write(ctx, key, buf.Bytes())
			if err != nil {
				return err
			}
			logger.Info("audit snapshot uploaded", slog.String("location", loc), slog.Int("records", len(records)))
		}

		if failOnFindings && rep.Summary().Total() > 0 {
			return errFindings
		}
		return nil
	},
}

var checksCmd = &cobra.Command{
	Use:   "checks",
	Short: "List the available checks",
	Run: func(cmd *cobra.Command, _ []string) {
		for _, c := range consistency.AllChecks {
			fmt.Fprintln(cmd.OutOrStdout(), c)
		}
	},
}

func init() {
	runCmd.Flags().StringSliceVar(&checkNames, "check", nil, "check to run (repeatable; default all)")
	runCmd.Flags().StringVar(&outputFormat, "format", "table", "output format: table or jsonl")
	runCmd.Flags().BoolVar(&uploadS3, "s3", false, "upload a JSONL snapshot to the configured bucket")
	runCmd.Flags().StringVar(&s3Bucket, "s3-bucket", "", "bucket for the snapshot (implies --s3)")
	runCmd.Flags().StringVar(&s3Key, "s3-key", "", "object key (default <prefix><timestamp>.jsonl)")
	runCmd.Flags().BoolVar(&failOnFindings, "fail-on-findings", false, "exit non-zero when any finding is reported")
	runCmd.Flags().DurationVar(&runTimeout, "timeout", 5*time.Minute, "overall time limit")
}

// parseChecks validates check names against consistency.AllChecks.
func parseChecks(names []string) ([]consistency.Check, error) {
	out := make([]consistency.Check, 0, len(names))
	for _, n := range names {
		c := consistency.Check(n)
		found := false
		for _, known := range consistency.AllChecks {
			if c == known {
				found = true
				break
			}
		}
		if !found {
			return nil, fmt.Errorf("unknown check %q", n)
		}
		out = append(out, c)
	}
	return out, nil
}

func render(w io.Writer, format string, records []export.Record) error {
	if format == "jsonl" {
		return export.WriteJSONL(w, records)
	}
	return export.WriteTable(w, records)
}
