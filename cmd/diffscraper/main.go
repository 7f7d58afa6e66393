package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/diffscraper"
	"github.com/fwojciec/diffscraper/fs"
	"github.com/fwojciec/diffscraper/goquery"
	"github.com/fwojciec/diffscraper/html"
	dshttp "github.com/fwojciec/diffscraper/http"
	"github.com/fwojciec/diffscraper/infer"
	dsslog "github.com/fwojciec/diffscraper/slog"
	"github.com/fwojciec/diffscraper/sqlite"
	"github.com/fwojciec/diffscraper/text"
	"github.com/fwojciec/diffscraper/toml"
	"github.com/fwojciec/diffscraper/zstd"
	"github.com/joho/godotenv"
)

func main() {
	// Existing environment variables take precedence over .env entries.
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Database path. Set before calling Run().
	DBPath string

	// SQLite database used by the template registry.
	DB *sqlite.DB

	// Services for end-to-end testing.
	TemplateService diffscraper.TemplateService
	Fetcher         diffscraper.Fetcher
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		DBPath: defaultDBPath(),
	}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.DB != nil {
		return m.DB.Close()
	}
	return nil
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("diffscraper"),
		kong.Description("Infer templates from similar documents, compress them, and scrape fields."),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'diffscraper --help' to see available commands")
	}

	cmd := args[0]
	if cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	level := slog.LevelInfo
	if cli.Debug {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	var tokenizer diffscraper.Tokenizer = html.NewTokenizer()
	if cli.Tokenizer == "text" {
		tokenizer = text.NewTokenizer()
	}
	tokenizer = dsslog.NewLoggingTokenizer(tokenizer, logger)

	if cli.Rate <= 0 {
		return diffscraper.Errorf(diffscraper.EINVALID, "--rate must be positive")
	}
	limiter := dshttp.NewDomainLimiter(cli.Rate)
	fetcher := m.Fetcher
	if fetcher == nil {
		fetcher = dshttp.NewFetcher(dshttp.WithLimiter(limiter))
	}
	fetcher = dsslog.NewLoggingFetcher(fetcher, logger)
	defer fetcher.Close()

	codec, err := zstd.NewCodec()
	if err != nil {
		return fmt.Errorf("failed to create codec: %w", err)
	}
	defer codec.Close()

	deps.Logger = logger
	deps.Tokenizer = tokenizer
	deps.Generator = dsslog.NewLoggingGenerator(&infer.Engine{
		Tokenizer:   tokenizer,
		Concurrency: cli.Concurrency,
	}, logger)
	deps.Fetcher = fetcher
	deps.Loader = fs.NewLoader(fetcher)
	deps.Store = fs.NewStore()
	deps.Codec = dsslog.NewLoggingCodec(codec, logger)
	deps.Sitemaps = dsslog.NewLoggingSitemapService(dshttp.NewSitemapService(nil, limiter), logger)
	deps.Recipes = toml.NewRecipeLoader()
	deps.Text = goquery.NewTextConverter()
	deps.Concurrency = cli.Concurrency

	// The registry is only opened by commands that read or write it.
	if strings.HasPrefix(kongCtx.Command(), "templates") || cli.Generate.Save {
		if m.TemplateService == nil {
			if cli.DB != "" {
				m.DBPath = cli.DB
			}
			m.DB = sqlite.NewDB(m.DBPath)
			if err := m.DB.Open(); err != nil {
				fmt.Fprintf(stderr, "Hint: Set DIFFSCRAPER_DB to use a different database path\n")
				return fmt.Errorf("failed to open database at %q: %w", m.DBPath, err)
			}
			defer m.Close()
			m.TemplateService = sqlite.NewTemplateService(m.DB)
		}
		deps.Templates = dsslog.NewLoggingTemplateService(m.TemplateService, logger)
	}

	return kongCtx.Run(deps)
}

func defaultDBPath() string {
	if path := os.Getenv("DIFFSCRAPER_DB"); path != "" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "templates.db"
	}
	return filepath.Join(home, ".diffscraper", "templates.db")
}
