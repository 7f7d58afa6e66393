package main

import (
	"context"
	"io"
	"log/slog"

	"github.com/fwojciec/diffscraper"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx         context.Context
	Stdout      io.Writer
	Stderr      io.Writer
	Logger      *slog.Logger
	Tokenizer   diffscraper.Tokenizer
	Generator   diffscraper.Generator
	Fetcher     diffscraper.Fetcher
	Loader      diffscraper.DocumentLoader
	Store       diffscraper.ObjectStore
	Codec       diffscraper.Codec
	Sitemaps    diffscraper.SitemapService
	Templates   diffscraper.TemplateService
	Recipes     diffscraper.RecipeLoader
	Text        diffscraper.TextConverter
	Concurrency int
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	DB          string  `help:"Template registry database path" env:"DIFFSCRAPER_DB" placeholder:"PATH"`
	Concurrency int     `short:"c" default:"4" help:"Concurrent document limit"`
	Rate        float64 `default:"2" help:"Requests per second per host when fetching URLs"`
	Tokenizer   string  `enum:"html,text" default:"html" help:"Document tokenizer (html, text)"`
	Debug       bool    `help:"Enable debug logging"`

	Generate          GenerateCmd          `cmd:"" help:"Generate a template from similar documents"`
	Update            UpdateCmd            `cmd:"" help:"Regenerate a template with one more document"`
	Compress          CompressCmd          `cmd:"" help:"Compress documents against a template"`
	Decompress        DecompressCmd        `cmd:"" help:"Reconstruct documents from data files"`
	Suggest           SuggestCmd           `cmd:"" help:"Show data segments with suggested selectors"`
	PrintUnified      PrintUnifiedCmd      `cmd:"" name:"print-unified" help:"Show data and invariant segments interleaved"`
	PrintDataSegments PrintDataSegmentsCmd `cmd:"" name:"print-data-segments" help:"Show data segments"`
	PrintSkeleton     PrintSkeletonCmd     `cmd:"" name:"print-skeleton" help:"Print a recipe skeleton"`
	Scrape            ScrapeCmd            `cmd:"" help:"Scrape recipe fields from documents as JSON lines"`
	Templates         TemplatesCmd         `cmd:"" help:"Manage registered templates"`
}

// SourceFlags add discovered URLs to the documents named on the command
// line.
type SourceFlags struct {
	Sitemap   string   `help:"Add page URLs listed in the sitemaps of this site" placeholder:"URL"`
	LinksFrom string   `name:"links-from" help:"Add same-host links found on this page" placeholder:"URL"`
	Match     []string `short:"m" help:"Only add discovered URLs matching regex (repeatable)"`
	Exclude   []string `short:"x" help:"Skip discovered URLs matching regex (repeatable)"`
	Limit     int      `default:"0" help:"Maximum number of discovered URLs (0 for no limit)"`
}

// GenerateCmd is the "generate" subcommand.
type GenerateCmd struct {
	Output string   `arg:"" help:"Template output path"`
	Docs   []string `arg:"" optional:"" help:"Document paths or URLs"`
	SourceFlags
	Force bool   `short:"f" help:"Overwrite an existing template"`
	Save  bool   `help:"Register the template in the database"`
	Name  string `help:"Registry name (defaults to the output file name)"`
}

// UpdateCmd is the "update" subcommand.
type UpdateCmd struct {
	Output   string `arg:"" help:"Template output path"`
	Doc      string `arg:"" help:"Document path or URL"`
	Template string `short:"t" required:"" help:"Existing template path"`
	Force    bool   `short:"f" help:"Overwrite an existing template"`
}

// CompressCmd is the "compress" subcommand.
type CompressCmd struct {
	Docs []string `arg:"" optional:"" help:"Document paths or URLs"`
	SourceFlags
	Template  string `short:"t" required:"" help:"Template path"`
	OutputDir string `short:"o" name:"output-dir" default:"." help:"Directory for data files"`
	Force     bool   `short:"f" help:"Overwrite existing data files"`
}

// DecompressCmd is the "decompress" subcommand.
type DecompressCmd struct {
	Files     []string `arg:"" help:"Data files"`
	Template  string   `short:"t" required:"" help:"Template path"`
	OutputDir string   `short:"o" name:"output-dir" default:"." help:"Directory for reconstructed documents"`
	Force     bool     `short:"f" help:"Overwrite existing documents"`
}

// SegmentFlags select which data segments are shown.
type SegmentFlags struct {
	Template string `short:"t" help:"Template path (generated from the documents when omitted)"`
	Index    int    `short:"i" default:"-1" help:"Only show the data segment at this index"`
	Search   string `short:"s" help:"Only show data segments containing this text"`
}

// SuggestCmd is the "suggest" subcommand.
type SuggestCmd struct {
	Docs []string `arg:"" optional:"" help:"Document paths or URLs"`
	SourceFlags
	SegmentFlags
}

// PrintUnifiedCmd is the "print-unified" subcommand.
type PrintUnifiedCmd struct {
	Docs []string `arg:"" optional:"" help:"Document paths or URLs"`
	SourceFlags
	SegmentFlags
}

// PrintDataSegmentsCmd is the "print-data-segments" subcommand.
type PrintDataSegmentsCmd struct {
	Docs []string `arg:"" optional:"" help:"Document paths or URLs"`
	SourceFlags
	SegmentFlags
}

// PrintSkeletonCmd is the "print-skeleton" subcommand.
type PrintSkeletonCmd struct {
	Template string   `short:"t" default:"template.bin" help:"Template path recorded in the recipe"`
	Name     string   `short:"n" default:"scraper" help:"Recipe name"`
	Fields   []string `name:"field" help:"Field as NAME=SELECTOR [offset N] (repeatable)"`
}

// ScrapeCmd is the "scrape" subcommand.
type ScrapeCmd struct {
	Docs []string `arg:"" optional:"" help:"Document paths or URLs"`
	SourceFlags
	Recipe string `short:"r" required:"" help:"Recipe path"`
}

// TemplatesCmd groups the registry subcommands.
type TemplatesCmd struct {
	List TemplatesListCmd `cmd:"" help:"List registered templates"`
	Show TemplatesShowCmd `cmd:"" help:"Show a registered template"`
	Rm   TemplatesRmCmd   `cmd:"" help:"Remove a registered template"`
}

// TemplatesListCmd is the "templates list" subcommand.
type TemplatesListCmd struct {
	Name string `help:"Only list templates with this name"`
}

// TemplatesShowCmd is the "templates show" subcommand.
type TemplatesShowCmd struct {
	ID     string `arg:"" help:"Template ID"`
	Output string `short:"o" help:"Also write the template object to this path"`
	Force  bool   `short:"f" help:"Overwrite an existing output"`
}

// TemplatesRmCmd is the "templates rm" subcommand.
type TemplatesRmCmd struct {
	ID    string `arg:"" help:"Template ID"`
	Force bool   `help:"Confirm deletion"`
}
