package commands

import (
	"io"
	"log/slog"
	"os"

	"github.com/alecthomas/kong"
	"github.com/google/uuid"

	"git.home.luguber.info/inful/iconcache/internal/logfields"
)

// CLI definition & flags. The tool has a single action, so the root struct
// carries every flag and the Run method.
type CLI struct {
	Pretty bool   `short:"p" help:"Output prettified JSON"`
	Assoc  bool   `short:"a" help:"Use associative (\"state\" = TRUE) lists instead of plain lists"`
	Input  string `short:"i" required:"" type:"path" placeholder:"PATH" help:"Input directory to search for dmi files in"`
	Output string `short:"o" required:"" type:"path" placeholder:"PATH" help:"JSON file to write the resulting cache to"`

	Jobs        int    `short:"j" default:"1" help:"Number of dmi files to read concurrently"`
	NoRevision  bool   `name:"no-revision" help:"Do not look up the VCS revision of the input directory"`
	MetricsFile string `name:"metrics-file" type:"path" placeholder:"PATH" help:"Write run metrics in Prometheus textfile format"`

	Verbose bool             `short:"v" help:"Enable verbose logging"`
	Version kong.VersionFlag `name:"version" help:"Show version and exit"`

	// stdout receives the two result lines. Nil means os.Stdout.
	stdout io.Writer `kong:"-"`
	runID  string    `kong:"-"`
}

// AfterApply runs after flag parsing; setup logging once.
// nolint:unparam // AfterApply currently never returns an error.
func (c *CLI) AfterApply() error {
	c.setupLogging(os.Stderr)
	return nil
}

// setupLogging installs the default logger, tagged with a fresh run id.
func (c *CLI) setupLogging(w io.Writer) {
	level := slog.LevelInfo
	if c.Verbose {
		level = slog.LevelDebug
	}
	c.runID = uuid.NewString()
	logger := slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})).
		With(logfields.RunID(c.runID))
	slog.SetDefault(logger)
}

func (c *CLI) out() io.Writer {
	if c.stdout != nil {
		return c.stdout
	}
	return os.Stdout
}
