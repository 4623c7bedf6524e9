package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/go-playground/validator/v10"
	flag "github.com/spf13/pflag"
	"go.uber.org/zap"

	"gopher-gateway/internal/config"
	"gopher-gateway/internal/domain"
	"gopher-gateway/internal/gopher"
	"gopher-gateway/internal/library"
	"gopher-gateway/internal/link"
	"gopher-gateway/internal/menu"
	"gopher-gateway/internal/render/terminal"
)

var version = "1.0.0" //nolint:gochecknoglobals

type options struct {
	Search   string
	Timeout  int `validate:"min=1,max=300"`
	Raw      bool
	JSON     bool
	Verbose  bool
	Width    int `validate:"min=0"`
	Library  string
	Bookmark string
}

// run parses args, fetches the URL and writes the result to stdout.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	opts := options{}
	fs := flag.NewFlagSet("gopher", flag.ContinueOnError)
	fs.SetOutput(stderr)

	// ── request ──────────────────────────────────────────────────
	fs.StringVarP(&opts.Search, "search", "s", "", "Search query sent after the selector")
	fs.IntVarP(&opts.Timeout, "timeout", "t", config.DefaultTimeoutSeconds, "Idle timeout in seconds")

	// ── output ───────────────────────────────────────────────────
	fs.BoolVarP(&opts.Raw, "raw", "r", false, "Print the raw response")
	fs.BoolVarP(&opts.JSON, "json", "j", false, "Print the parsed content as JSON")
	fs.IntVarP(&opts.Width, "width", "w", 0, "Output width (auto-detect if 0)")
	fs.BoolVarP(&opts.Verbose, "verbose", "v", false, "Log transport details to stderr")

	// ── library ──────────────────────────────────────────────────
	fs.StringVar(&opts.Library, "library", "", "Record the visit in this library (.db for SQLite, JSON otherwise)")
	fs.StringVar(&opts.Bookmark, "bookmark", "", "Bookmark the URL under this title (requires --library)")

	var showVersion, showHelp bool
	fs.BoolVar(&showVersion, "version", false, "Print version and exit")
	fs.BoolVarP(&showHelp, "help", "h", false, "Show this help")

	fs.Usage = func() { printUsage(stderr, fs) }

	if err := fs.Parse(args); err != nil {
		return err
	}

	if showHelp || len(args) == 0 {
		printUsage(stderr, fs)
		return nil
	}
	if showVersion {
		fmt.Fprintf(stdout, "gopher %s\n", version)
		return nil
	}

	if err := validateOptions(opts); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return fmt.Errorf("exactly one gopher:// URL required (use --help for usage)")
	}
	url := fs.Arg(0)

	loc, err := link.Parse(url)
	if err != nil {
		return err
	}

	logger := zap.NewNop()
	if opts.Verbose {
		if logger, err = zap.NewDevelopment(); err != nil {
			return fmt.Errorf("failed to create logger: %w", err)
		}
		defer logger.Sync() //nolint:errcheck
	}

	client := gopher.NewClient(nil, time.Duration(opts.Timeout)*time.Second, logger)
	raw, err := client.Fetch(ctx, link.Request(loc, opts.Search))
	if err != nil {
		return err
	}

	content := menu.Parse(raw)

	if opts.Library != "" {
		if err := record(ctx, opts, url, loc, content, stderr, logger); err != nil {
			return err
		}
	}

	switch {
	case opts.Raw:
		_, err = io.WriteString(stdout, raw)
		return err
	case opts.JSON:
		enc := json.NewEncoder(stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(content)
	default:
		r := &terminal.Renderer{Width: opts.Width}
		return r.Render(stdout, url, content)
	}
}

func validateOptions(opts options) error {
	if opts.Raw && opts.JSON {
		return errors.New("--raw and --json are mutually exclusive")
	}
	if opts.Bookmark != "" && opts.Library == "" {
		return errors.New("--bookmark requires --library")
	}

	if err := validator.New().Struct(opts); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			return fmt.Errorf("invalid --%s: %s", flagName(verrs[0].Field()), verrs[0].Tag())
		}
		return err
	}
	return nil
}

func flagName(field string) string {
	switch field {
	case "Timeout":
		return "timeout"
	case "Width":
		return "width"
	default:
		return field
	}
}

// record stores the visit and optional bookmark in the local library.
func record(
	ctx context.Context,
	opts options,
	url string,
	loc domain.Location,
	content domain.ParsedContent,
	stderr io.Writer,
	logger *zap.Logger,
) error {
	backend := config.BackendFile
	if ext := filepath.Ext(opts.Library); ext == ".db" || ext == ".sqlite" {
		backend = config.BackendSQLite
	}

	store, err := library.OpenStore(ctx, config.LibraryConfig{Backend: backend, Path: opts.Library})
	if err != nil {
		return fmt.Errorf("failed to open library: %w", err)
	}
	defer store.Close()

	lib := library.New(store, config.DefaultMaxHistory, logger)
	if _, err := lib.RecordVisit(ctx, url, library.VisitTitle(loc, content.IsMenu)); err != nil {
		return fmt.Errorf("failed to record visit: %w", err)
	}

	if opts.Bookmark == "" {
		return nil
	}

	_, err = lib.AddBookmark(ctx, url, opts.Bookmark)
	switch {
	case errors.Is(err, library.ErrDuplicateBookmark):
		fmt.Fprintf(stderr, "gopher: %s is already bookmarked\n", url)
		return nil
	case err != nil:
		return fmt.Errorf("failed to add bookmark: %w", err)
	}
	return nil
}

func printUsage(w io.Writer, fs *flag.FlagSet) {
	fmt.Fprintf(w, `gopher v%s

Fetch a Gopher resource and print it as a menu or a document.

Usage:
  gopher [options] <gopher-url>

Options:
`, version)
	fs.SetOutput(w)
	fs.PrintDefaults()
	fmt.Fprintf(w, `
Examples:
  gopher gopher://gopher.floodgap.com
  gopher -s "gopher clients" gopher://gopher.floodgap.com/7/v2/vs
  gopher -j gopher://example.com/0/readme.txt
  gopher --library ~/.gopher.db --bookmark Floodgap gopher://gopher.floodgap.com
`)
}
