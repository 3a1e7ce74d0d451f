// Package commands implements the sitegraph command line.
package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/sitegraph/internal/config"
	"git.home.luguber.info/inful/sitegraph/internal/daemon"
	"git.home.luguber.info/inful/sitegraph/internal/foundation/errors"
	"git.home.luguber.info/inful/sitegraph/internal/sitemap"
	"git.home.luguber.info/inful/sitegraph/internal/version"
)

// Global carries state shared by every command.
type Global struct {
	Logger *slog.Logger
	Out    io.Writer
	Err    io.Writer
}

// CLI definition & global flags.
type CLI struct {
	Config  string           `short:"c" help:"Configuration file path" default:"sitegraph.yaml"`
	Verbose bool             `short:"v" help:"Enable verbose logging"`
	Version kong.VersionFlag `name:"version" help:"Show version and exit"`

	Init         InitCmd    `cmd:"" help:"Initialize a new configuration file"`
	Select       SelectCmd  `cmd:"" help:"Select the sitemap entries of one or more content types"`
	Terms        TermsCmd   `cmd:"" help:"Select the sitemap entries of a taxonomy"`
	Graph        GraphCmd   `cmd:"" help:"Print the structured-data graph of a page"`
	Cleanup      CleanupCmd `cmd:"" help:"Remove the bookkeeping actions of the scheduler group once"`
	Serve        ServeCmd   `cmd:"" help:"Serve the HTTP API until interrupted"`
	Daemon       DaemonCmd  `cmd:"" help:"Serve the HTTP API and reload when the configuration file changes"`
	PrintVersion VersionCmd `cmd:"" name:"version" help:"Print version information"`
}

// AfterApply runs after flag parsing; set up logging once. Commands that load a
// configuration replace the logger with one built from it.
func (c *CLI) AfterApply(g *Global) error {
	g.Logger = config.NewLogger(config.MonitoringLogging{Level: config.LogLevelInfo}, c.Verbose, g.Err)
	slog.SetDefault(g.Logger)
	return nil
}

// Execute parses args, runs the selected command and returns the process exit code.
func Execute(args []string, stdout, stderr io.Writer) int {
	var cli CLI
	global := &Global{Logger: slog.Default(), Out: stdout, Err: stderr}
	parser, err := kong.New(&cli,
		kong.Name("sitegraph"),
		kong.Description("Sitemap selection and schema.org graphs for a content database."),
		kong.Writers(stdout, stderr),
		kong.Vars{"version": version.String()},
		kong.Bind(global, &cli),
	)
	if err != nil {
		_, _ = fmt.Fprintln(stderr, "Error:", err)
		return 1
	}
	kctx, err := parser.Parse(args)
	if err != nil {
		_, _ = fmt.Fprintln(stderr, "Error:", err)
		return 2
	}
	if err := kctx.Run(); err != nil {
		adapter := errors.NewCLIErrorAdapter(cli.Verbose, global.Logger)
		adapter.Log(err)
		_, _ = fmt.Fprintln(stderr, adapter.FormatError(err))
		return adapter.ExitCodeFor(err)
	}
	return 0
}

// loadConfig loads the configuration and rebuilds the logger from it.
func (g *Global) loadConfig(root *CLI) (*config.Config, error) {
	cfg, err := config.Load(root.Config)
	if err != nil {
		return nil, err
	}
	g.Logger = config.NewLogger(cfg.Monitoring.Logging, root.Verbose, g.Err)
	slog.SetDefault(g.Logger)
	return cfg, nil
}

// openRuntime loads the configuration and opens the components it describes.
func (g *Global) openRuntime(root *CLI) (*daemon.Runtime, error) {
	cfg, err := g.loadConfig(root)
	if err != nil {
		return nil, err
	}
	return daemon.NewRuntime(cfg, nil, g.Logger)
}

func (g *Global) printJSON(v any) error {
	enc := json.NewEncoder(g.Out)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// WindowFlags are the selection options shared by select and terms.
type WindowFlags struct {
	Offset int    `help:"Window offset, applied when sitemap indexes are enabled"`
	Root   bool   `help:"Return the index fast path with ids only"`
	MaxAge string `name:"max-age" help:"Only rows modified within a duration (72h) or since an RFC 3339 time"`
}

func (f WindowFlags) options(now time.Time) (sitemap.Options, error) {
	if f.Offset < 0 {
		return sitemap.Options{}, errors.ValidationError("offset must be a non-negative integer").
			WithContext("offset", f.Offset).
			Build()
	}
	opts := sitemap.Options{Root: f.Root, Offset: f.Offset}
	if f.MaxAge != "" {
		t, err := sitemap.ParseMaxAge(f.MaxAge, now)
		if err != nil {
			return opts, err
		}
		opts.MaxAge = t
	}
	return opts, nil
}
