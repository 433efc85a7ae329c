package commands

import (
	"context"
	stdErrors "errors"
	"fmt"
	"log/slog"
	"time"

	"git.home.luguber.info/inful/iconcache/internal/discovery"
	"git.home.luguber.info/inful/iconcache/internal/dmi"
	"git.home.luguber.info/inful/iconcache/internal/errors"
	"git.home.luguber.info/inful/iconcache/internal/git"
	"git.home.luguber.info/inful/iconcache/internal/iconindex"
	"git.home.luguber.info/inful/iconcache/internal/logfields"
	"git.home.luguber.info/inful/iconcache/internal/metrics"
	"git.home.luguber.info/inful/iconcache/internal/output"
)

// Run scans the input tree, builds the icon cache and writes it to the
// output path. On success exactly two lines go to stdout: the totals and
// the output path.
func (c *CLI) Run(ctx context.Context) (err error) {
	if c.Jobs < 1 {
		return errors.ValidationFailed("jobs", "must be at least 1")
	}
	if checkErr := discovery.CheckRoot(c.Input); checkErr != nil {
		return errors.InputNotDirectory(c.Input, checkErr)
	}

	start := time.Now()
	var recorder metrics.Recorder = metrics.NoopRecorder{}
	var prom *metrics.PrometheusRecorder
	if c.MetricsFile != "" {
		prom = metrics.NewPrometheusRecorder(nil)
		recorder = prom
	}
	defer func() {
		recorder.ObserveRunDuration(time.Since(start))
		if err != nil {
			recorder.IncRunOutcome(metrics.OutcomeFailed)
		} else {
			recorder.IncRunOutcome(metrics.OutcomeSuccess)
		}
		if prom == nil {
			return
		}
		if werr := prom.WriteTextfile(c.MetricsFile); werr != nil {
			if err == nil {
				err = errors.MetricsError(c.MetricsFile, werr)
				return
			}
			slog.Warn("Failed to write metrics", logfields.Path(c.MetricsFile), logfields.Error(werr))
		}
	}()

	form := iconindex.FormFor(c.Assoc)
	slog.Info("Starting icon cache build",
		logfields.Path(c.Input),
		logfields.Form(form.String()),
		logfields.Workers(c.Jobs))

	files, err := discovery.Walk(c.Input)
	if err != nil {
		return errors.DiscoveryError(c.Input, err)
	}
	slog.Info("Icon files discovered", logfields.Stage("discover"), logfields.Count(len(files)))

	builder := iconindex.NewBuilder(form,
		iconindex.WithWorkers(c.Jobs),
		iconindex.WithRecorder(recorder))
	res, err := builder.Build(ctx, files)
	if err != nil {
		return classifyBuildError(err)
	}

	revision := ""
	if !c.NoRevision {
		revision, _ = git.Revision(c.Input)
	}
	recorder.SetRevisionPresent(revision != "")

	doc := iconindex.NewDocument(res.Icons, revision)
	if err := output.WriteJSON(c.Output, doc, c.Pretty); err != nil {
		return errors.OutputError(c.Output, err)
	}

	slog.Info("Icon cache written",
		logfields.Stage("emit"),
		logfields.Path(c.Output),
		logfields.Count(res.Files),
		logfields.States(res.States),
		logfields.Revision(revision),
		logfields.DurationMS(float64(time.Since(start).Microseconds())/1000))

	if _, err := fmt.Fprintf(c.out(), "found a total of %d icon states across %d dmi files\n", res.States, res.Files); err != nil {
		return errors.Wrap(err, errors.CategoryRuntime, errors.SeverityFatal, "failed to write to stdout")
	}
	if _, err := fmt.Fprintf(c.out(), "wrote to %s\n", c.Output); err != nil {
		return errors.Wrap(err, errors.CategoryRuntime, errors.SeverityFatal, "failed to write to stdout")
	}
	return nil
}

// classifyBuildError maps an indexing failure onto the CLI error categories.
func classifyBuildError(err error) error {
	switch {
	case stdErrors.Is(err, dmi.ErrOpen):
		return errors.IconReadError(err)
	case stdErrors.Is(err, dmi.ErrPNGStructure), stdErrors.Is(err, dmi.ErrChunkDecode):
		return errors.IconDecodeError(err)
	case stdErrors.Is(err, iconindex.ErrDuplicatePath):
		return errors.InternalError("somehow we have duplicate icon files", err)
	case stdErrors.Is(err, context.Canceled), stdErrors.Is(err, context.DeadlineExceeded):
		return errors.Wrap(err, errors.CategoryRuntime, errors.SeverityFatal, "icon cache build interrupted")
	default:
		return errors.InternalError("icon cache build failed", err)
	}
}
