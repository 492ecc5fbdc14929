package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"invoicegen/internal/config"
	"invoicegen/internal/generator"
	"invoicegen/internal/logger"
	"invoicegen/internal/random"
	"invoicegen/internal/sheets"
	"invoicegen/internal/storage"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate invoice files over a date range and upload them",
	Long: `Loop over dates from --fromdate to --todate. For every date, generate a
random number of files (between --minfiles and --maxfiles). Every file holds
a random number of JSON invoice documents (between --mindocs and --maxdocs),
one per line. The size of a document is driven by its number of lines
(between --minlines and --maxlines).

Files are named after --pattern with these substitutions:
  ${date}          date as YYYYMMDD
  ${time}          current time as HHMMSS
  ${microseconds}  current microseconds, 6 digits
  ${timestamp}     date + current HHMMSS + microseconds
  ${number}        number of the file in the day, starting from 1
  ${uuid}          random UUID

A run summary is printed as JSON on stdout when all files are uploaded.

Environment variables:
  GOOGLE_APPLICATION_CREDENTIALS - Path to service account JSON file, OR
  GOOGLE_CREDENTIALS - Inline JSON credentials string
  GOOGLE_CLOUD_PROJECT - Default for --namespace
  GCS_OUTPUT_BUCKET - Default for --bucket
  INVOICEGEN_PATTERN - Default for --pattern`,
	Example: `  # One day, one file with one document
  invoicegen generate -s json -f 20240101 -t 20240101 -n my-project -b invoices -p '${date}_${number}.json'

  # A month of data, 2-5 files a day, 10-50 documents per file
  invoicegen generate -s json -f 2024-01-01 -t 2024-01-31 -x 2 -y 5 -k 10 -l 50 \
    -n my-project -b invoices -p 'invoices/${date}/${uuid}.json'

  # Reproducible run written to ./out instead of GCS
  invoicegen generate --profile january.yaml --sink local --output-dir ./out --seed 42

  # Append the run summary to a Google Sheet
  invoicegen generate --profile january.yaml --report-sheet 'https://docs.google.com/spreadsheets/d/<id>/edit'`,
	Args: cobra.NoArgs,
	RunE: runGenerate,
}

func init() {
	rootCmd.AddCommand(generateCmd)
	addGenerateFlags(generateCmd.Flags())
}

func addGenerateFlags(f *pflag.FlagSet) {
	defaults := generator.DefaultParams()
	f.StringP("scenario", "s", "", "Scenario (json) [mandatory]")
	f.StringP("fromdate", "f", "", "Start date in YYYYMMDD or YYYY-MM-DD format [mandatory]")
	f.StringP("todate", "t", "", "End date in YYYYMMDD or YYYY-MM-DD format [mandatory]")
	f.IntP("minfiles", "x", defaults.MinFiles, "Minimum number of files in one day")
	f.IntP("maxfiles", "y", defaults.MaxFiles, "Maximum number of files in one day")
	f.IntP("mindocs", "k", defaults.MinDocs, "Minimum number of documents in one file")
	f.IntP("maxdocs", "l", defaults.MaxDocs, "Maximum number of documents in one file")
	f.IntP("minlines", "v", defaults.MinLines, "Minimum number of lines in one document")
	f.IntP("maxlines", "w", defaults.MaxLines, "Maximum number of lines in one document")
	f.IntP("sleep", "e", defaults.SleepSeconds, "Sleep time in seconds between files")
	f.StringP("namespace", "n", "", "Namespace: GCS project billed for the upload [mandatory]")
	f.StringP("bucket", "b", "", "Name of target bucket [mandatory]")
	f.StringP("pattern", "p", "", "Object name pattern [mandatory]")
	f.String("loglevel", defaults.LogLevel, "Log level [DEBUG, INFO, WARNING, ERROR, CRITICAL]")
	f.Uint64("seed", 0, "Random seed for reproducible content (default: time based)")
	f.String("compression", defaults.Compression, "Content compression (none, lz4)")
	f.String("sink", defaults.Sink, "Upload destination (gcs, local)")
	f.String("output-dir", defaults.OutputDir, "Root directory for --sink local")
	f.String("profile", "", "YAML file with generate parameters")
	f.String("report-sheet", "", "Google Sheets URL to append the run summary to")
	f.String("report-tab", sheets.DefaultSheetName, "Sheet name for --report-sheet")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	log := logger.WithComponent("generate")

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	params, err := resolveParams(cmd.Flags(), cfg)
	if err != nil {
		return handleGenerateError(err, log)
	}
	if err := params.Validate(); err != nil {
		return handleGenerateError(err, log)
	}
	if err := logger.SetLevel(params.LogLevel); err != nil {
		return err
	}
	logParams(params, log)

	ctx, cancel := createGenerateContext(log)
	defer cancel()

	uploader, err := createUploader(ctx, params, log)
	if err != nil {
		return err
	}

	runner, err := generator.NewRunner(params, uploader)
	if err != nil {
		return handleGenerateError(err, log)
	}

	summary, err := runner.Run(ctx)
	if err != nil {
		return handleGenerateError(err, log)
	}

	data, err := json.Marshal(summary)
	if err != nil {
		return fmt.Errorf("failed to encode summary: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(data))

	if sheetURL, _ := cmd.Flags().GetString("report-sheet"); sheetURL != "" {
		tab, _ := cmd.Flags().GetString("report-tab")
		if err := writeReport(ctx, sheetURL, tab, summary); err != nil {
			log.Warn().Err(err).Msg("Failed to write run summary to Google Sheet")
		}
	}
	return nil
}

func writeReport(ctx context.Context, sheetURL, tab string, summary *generator.Summary) error {
	report, err := sheets.NewSheetsService(ctx, sheetURL)
	if err != nil {
		return err
	}
	return report.AppendSummary(ctx, tab, summary)
}

// resolveParams merges defaults, environment, profile and flags, in
// increasing order of precedence.
func resolveParams(flags *pflag.FlagSet, cfg *config.Config) (generator.Params, error) {
	p := generator.DefaultParams()
	p.Namespace = cfg.GoogleCloudProject
	p.Bucket = cfg.GCSOutputBucket
	p.Pattern = cfg.ObjectPattern
	p.Sink = cfg.Sink
	p.OutputDir = cfg.OutputDir

	var fromDate, toDate string

	if path, _ := flags.GetString("profile"); path != "" {
		profile, err := config.LoadProfile(path)
		if err != nil {
			return p, err
		}
		applyProfile(&p, profile, &fromDate, &toDate)
	}

	setString := func(name string, dst *string) {
		if flags.Changed(name) {
			*dst, _ = flags.GetString(name)
		}
	}
	setInt := func(name string, dst *int) {
		if flags.Changed(name) {
			*dst, _ = flags.GetInt(name)
		}
	}

	setString("scenario", &p.Scenario)
	setString("fromdate", &fromDate)
	setString("todate", &toDate)
	setInt("minfiles", &p.MinFiles)
	setInt("maxfiles", &p.MaxFiles)
	setInt("mindocs", &p.MinDocs)
	setInt("maxdocs", &p.MaxDocs)
	setInt("minlines", &p.MinLines)
	setInt("maxlines", &p.MaxLines)
	setInt("sleep", &p.SleepSeconds)
	setString("namespace", &p.Namespace)
	setString("bucket", &p.Bucket)
	setString("pattern", &p.Pattern)
	setString("loglevel", &p.LogLevel)
	setString("compression", &p.Compression)
	setString("sink", &p.Sink)
	setString("output-dir", &p.OutputDir)
	if flags.Changed("seed") {
		p.Seed, _ = flags.GetUint64("seed")
	}

	var err error
	if fromDate != "" {
		if p.FromDate, err = generator.ParseDate(fromDate); err != nil {
			return p, &generator.ParamError{Field: "fromdate", Value: fromDate, Message: err.Error()}
		}
	}
	if toDate != "" {
		if p.ToDate, err = generator.ParseDate(toDate); err != nil {
			return p, &generator.ParamError{Field: "todate", Value: toDate, Message: err.Error()}
		}
	}
	return p, nil
}

func applyProfile(p *generator.Params, prof *config.Profile, fromDate, toDate *string) {
	setString := func(src *string, dst *string) {
		if src != nil {
			*dst = *src
		}
	}
	setInt := func(src *int, dst *int) {
		if src != nil {
			*dst = *src
		}
	}

	setString(prof.Scenario, &p.Scenario)
	setString(prof.FromDate, fromDate)
	setString(prof.ToDate, toDate)
	setInt(prof.Files.Min, &p.MinFiles)
	setInt(prof.Files.Max, &p.MaxFiles)
	setInt(prof.Docs.Min, &p.MinDocs)
	setInt(prof.Docs.Max, &p.MaxDocs)
	setInt(prof.Lines.Min, &p.MinLines)
	setInt(prof.Lines.Max, &p.MaxLines)
	setInt(prof.Sleep, &p.SleepSeconds)
	setString(prof.Namespace, &p.Namespace)
	setString(prof.Bucket, &p.Bucket)
	setString(prof.Pattern, &p.Pattern)
	setString(prof.LogLevel, &p.LogLevel)
	setString(prof.Compression, &p.Compression)
	setString(prof.Sink, &p.Sink)
	setString(prof.OutputDir, &p.OutputDir)
	if prof.Seed != nil {
		p.Seed = *prof.Seed
	}
}

func logParams(p generator.Params, log zerolog.Logger) {
	log.Debug().
		Str("scenario", p.Scenario).
		Str("fromdate", p.FromDate.Format("20060102")).
		Str("todate", p.ToDate.Format("20060102")).
		Int("minfiles", p.MinFiles).
		Int("maxfiles", p.MaxFiles).
		Int("mindocs", p.MinDocs).
		Int("maxdocs", p.MaxDocs).
		Int("minlines", p.MinLines).
		Int("maxlines", p.MaxLines).
		Int("sleep", p.SleepSeconds).
		Str("namespace", p.Namespace).
		Str("bucket", p.Bucket).
		Str("pattern", p.Pattern).
		Str("loglevel", p.LogLevel).
		Str("compression", p.Compression).
		Str("sink", p.Sink).
		Msg("Generation parameters")
}

// createGenerateContext returns a context canceled on SIGINT or SIGTERM.
func createGenerateContext(log zerolog.Logger) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		select {
		case sig := <-sigChan:
			log.Info().
				Str("signal", sig.String()).
				Msg("Received interrupt signal, stopping generation")
			cancel()
		case <-ctx.Done():
		}
		signal.Stop(sigChan)
	}()

	return ctx, cancel
}

func createUploader(ctx context.Context, p generator.Params, log zerolog.Logger) (storage.Uploader, error) {
	if p.Sink == generator.SinkLocal {
		log.Debug().Str("dir", p.OutputDir).Msg("Writing files to local directory")
		return storage.NewLocalUploader(p.OutputDir), nil
	}

	uploader, err := storage.NewGCSUploader(ctx)
	if err != nil {
		if errors.Is(err, storage.ErrMissingCredentials) {
			log.Error().Err(err).Msg("Google Cloud credentials not configured")
			return nil, fmt.Errorf("missing Google Cloud credentials. Please set one of:\n" +
				"  GOOGLE_APPLICATION_CREDENTIALS=/path/to/service-account-key.json\n" +
				"  GOOGLE_CREDENTIALS='<json-credentials>'\n" +
				"or run: gcloud auth application-default login\n" +
				"Original error: %w", err)
		}
		log.Error().Err(err).Msg("Failed to create storage client")
		return nil, fmt.Errorf("failed to create storage client: %w", err)
	}

	log.Debug().Msg("Storage client created successfully")
	return uploader, nil
}

// handleGenerateError provides user-friendly error messages for generation failures
func handleGenerateError(err error, log zerolog.Logger) error {
	var paramErr *generator.ParamError
	var svcErr *storage.ServiceError

	switch {
	case errors.As(err, &paramErr):
		log.Error().Err(err).Msg("Invalid generation parameters")
		return fmt.Errorf("configuration error: %w\nRun 'invoicegen generate --help' for usage", err)
	case errors.Is(err, random.ErrInvalidRange):
		log.Error().Err(err).Msg("Generation failed")
		return fmt.Errorf("generation error: %w", err)
	case errors.As(err, &svcErr):
		switch svcErr.Status {
		case 401, 403:
			return fmt.Errorf("permission denied writing to bucket. Please ensure your service account can create objects in it: %w", err)
		case 404:
			return fmt.Errorf("bucket not found. Please check --bucket and --namespace: %w", err)
		}
		return fmt.Errorf("upload error: %w", err)
	case errors.Is(err, context.Canceled):
		return fmt.Errorf("generation was canceled: %w", err)
	default:
		log.Error().Err(err).Msg("Generation failed")
		return fmt.Errorf("generation failed: %w", err)
	}
}
