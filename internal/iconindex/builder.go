// Package iconindex reshapes extracted icon manifests into the key-ordered
// aggregate that is serialized as the icon cache document.
package iconindex

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"git.home.luguber.info/inful/iconcache/internal/discovery"
	"git.home.luguber.info/inful/iconcache/internal/dmi"
	"git.home.luguber.info/inful/iconcache/internal/logfields"
	"git.home.luguber.info/inful/iconcache/internal/metrics"
)

// Extractor returns the ordered state names of the icon file at path.
type Extractor interface {
	Extract(path string) (dmi.Manifest, error)
}

// ExtractorFunc adapts a function to the Extractor interface.
type ExtractorFunc func(path string) (dmi.Manifest, error)

// Extract calls f(path).
func (f ExtractorFunc) Extract(path string) (dmi.Manifest, error) { return f(path) }

// Result is the outcome of a Build.
type Result struct {
	Icons  *Aggregate
	Files  int // icon files indexed
	States int // state names across all entries, counted after deduplication
}

// Builder turns discovered icon files into an Aggregate.
type Builder struct {
	form      Form
	extractor Extractor
	workers   int
	recorder  metrics.Recorder
}

// Option configures a Builder.
type Option func(*Builder)

// WithExtractor replaces dmi.Extract, mainly for tests.
func WithExtractor(e Extractor) Option {
	return func(b *Builder) { b.extractor = e }
}

// WithWorkers sets how many files are extracted concurrently. Values below
// one mean one.
func WithWorkers(n int) Option {
	return func(b *Builder) {
		if n < 1 {
			n = 1
		}
		b.workers = n
	}
}

// WithRecorder injects a metrics recorder.
func WithRecorder(r metrics.Recorder) Option {
	return func(b *Builder) {
		if r != nil {
			b.recorder = r
		}
	}
}

// NewBuilder creates a Builder producing entries of the given form.
func NewBuilder(form Form, opts ...Option) *Builder {
	b := &Builder{
		form:      form,
		extractor: ExtractorFunc(dmi.Extract),
		workers:   1,
		recorder:  metrics.NoopRecorder{},
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Build extracts every file and merges the entries in input order. The first
// extraction failure aborts the build; no partial aggregate is returned.
// With more than one worker, extraction runs concurrently but the merge, and
// therefore duplicate detection and the result, is identical to a sequential run.
func (b *Builder) Build(ctx context.Context, files []discovery.IconFile) (*Result, error) {
	manifests := make([]dmi.Manifest, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(b.workers)
	for i, f := range files {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			// A slot may free up after a sibling failed.
			if err := gctx.Err(); err != nil {
				return err
			}
			start := time.Now()
			m, err := b.extractor.Extract(f.Path)
			if err != nil {
				b.recorder.ObserveExtractDuration(time.Since(start), metrics.ResultFailed)
				return fmt.Errorf("index %s: %w", f.RelativePath, err)
			}
			b.recorder.ObserveExtractDuration(time.Since(start), metrics.ResultSuccess)
			manifests[i] = m
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	res := &Result{Icons: NewAggregate()}
	for i, f := range files {
		entry := NewEntry(b.form, manifests[i])
		if err := res.Icons.Insert(f.RelativePath, entry); err != nil {
			return nil, fmt.Errorf("index %s: %w", f.Path, err)
		}
		res.Files++
		res.States += entry.Len()

		slog.Debug("Indexed icon file",
			logfields.File(f.RelativePath),
			logfields.States(entry.Len()))
	}
	b.recorder.AddIndexed(res.Files, res.States)

	slog.Info("Icon index built",
		logfields.Stage("index"),
		logfields.Count(res.Files),
		logfields.States(res.States),
		logfields.Form(b.form.String()),
		logfields.Workers(b.workers))
	return res, nil
}
