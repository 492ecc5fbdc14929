// Package generator runs the loop over dates, files and documents that
// produces and uploads invoice files.
package generator

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"invoicegen/internal/invoice"
	"invoicegen/internal/logger"
	"invoicegen/internal/naming"
	"invoicegen/internal/random"
	"invoicegen/internal/storage"
)

// Runner generates and uploads files sequentially: days in calendar order,
// files within a day in increasing number order.
type Runner struct {
	params    Params
	src       *random.Source
	assembler *invoice.Assembler
	resolver  *naming.Resolver
	uploader  storage.Uploader
	sleep     func(ctx context.Context, d time.Duration) error
	now       func() time.Time
	log       zerolog.Logger
}

// Option configures a Runner.
type Option func(*Runner)

// WithResolver replaces the object name resolver.
func WithResolver(r *naming.Resolver) Option {
	return func(rn *Runner) { rn.resolver = r }
}

// WithSleeper replaces the pause between files.
func WithSleeper(fn func(ctx context.Context, d time.Duration) error) Option {
	return func(rn *Runner) { rn.sleep = fn }
}

// WithClock replaces the clock used for the run start and end times.
func WithClock(now func() time.Time) Option {
	return func(rn *Runner) { rn.now = now }
}

// NewRunner validates params and prepares a run uploading to uploader.
func NewRunner(params Params, uploader storage.Uploader, opts ...Option) (*Runner, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	if uploader == nil {
		return nil, errors.New("generator: nil uploader")
	}

	seed := params.Seed
	if seed == 0 {
		seed = random.NewSeed()
	}
	src := random.New(seed)

	r := &Runner{
		params: params,
		src:    src,
		assembler: invoice.NewAssembler(src, invoice.NewBuilder(src), invoice.Bounds{
			MinDocs:  params.MinDocs,
			MaxDocs:  params.MaxDocs,
			MinLines: params.MinLines,
			MaxLines: params.MaxLines,
		}),
		resolver: naming.NewResolver(),
		uploader: uploader,
		sleep:    sleepContext,
		now:      time.Now,
		log:      logger.WithComponent("generator"),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r, nil
}

// Seed returns the seed of the run's random source.
func (r *Runner) Seed() uint64 {
	return r.src.Seed()
}

// Run executes the loop. Any generation or upload error stops the run
// immediately and no summary is returned.
func (r *Runner) Run(ctx context.Context) (*Summary, error) {
	p := r.params
	stats := Stats{Start: r.now()}

	r.log.Info().
		Str("from", p.FromDate.Format(time.DateOnly)).
		Str("to", p.ToDate.Format(time.DateOnly)).
		Int("days", p.Days()).
		Str("bucket", p.Bucket).
		Str("pattern", p.Pattern).
		Uint64("seed", r.src.Seed()).
		Msg("Starting generation")

	for date := p.FromDate; !date.After(p.ToDate); date = date.AddDate(0, 0, 1) {
		r.log.Debug().Str("date", date.Format("20060102")).Msg("Processing date")

		files, err := r.src.Integer(p.MinFiles, p.MaxFiles)
		if err != nil {
			return nil, invoice.WrapGenerationError("Run", err, "file count")
		}

		for n := 1; n <= files; n++ {
			if err := r.file(ctx, date, n, &stats); err != nil {
				return nil, err
			}
		}
		stats.Days++
	}

	stats.End = r.now()
	return NewSummary(p, stats), nil
}

func (r *Runner) file(ctx context.Context, date time.Time, number int, stats *Stats) error {
	p := r.params

	name := r.resolver.Resolve(p.Pattern, date, number)
	r.log.Debug().Str("file", name).Msg("Generating file")

	content, err := r.assembler.Assemble(date)
	if err != nil {
		return err
	}

	var uploaded int64
	switch p.Scenario {
	case ScenarioJSON:
		req := storage.NewJSONRequest(p.Namespace, p.Bucket, name, content.Body)
		if err := storage.Compress(req, p.Compression); err != nil {
			return fmt.Errorf("failed to compress %s: %w", name, err)
		}

		resp, err := r.uploader.PutObject(ctx, req)
		if err != nil {
			r.logUploadError(name, err)
			return fmt.Errorf("failed to write object %s: %w", name, err)
		}
		uploaded = req.ContentLength

		r.log.Info().
			Str("file", name).
			Str("location", resp.Location).
			Int("documents", content.Documents).
			Int("lines", content.Lines).
			Int("bytes", content.Bytes).
			Msg("File uploaded")
	}

	stats.addFile(content, uploaded)

	if err := r.sleep(ctx, time.Duration(p.SleepSeconds)*time.Second); err != nil {
		return fmt.Errorf("generation interrupted after %s: %w", name, err)
	}
	return nil
}

func (r *Runner) logUploadError(name string, err error) {
	var svcErr *storage.ServiceError
	if errors.As(err, &svcErr) {
		r.log.Error().
			Str("file", name).
			Int("status", svcErr.Status).
			Str("code", svcErr.Code).
			Str("message", svcErr.Message).
			Msg("Writing object failed")
		return
	}
	r.log.Error().Err(err).Str("file", name).Msg("Writing object failed")
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
