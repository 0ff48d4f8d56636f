// Package main is the quill command line tool: it loads a document,
// optionally runs a Lua script against it, and writes the result.
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog"

	"github.com/dshills/quill/internal/composer"
	"github.com/dshills/quill/internal/config"
	"github.com/dshills/quill/internal/editor"
	"github.com/dshills/quill/internal/engine/attrtext"
	"github.com/dshills/quill/internal/engine/document"
	"github.com/dshills/quill/internal/engine/node"
	"github.com/dshills/quill/internal/script"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

type options struct {
	configPath string
	scriptPath string
	logLevel   string
}

func main() {
	os.Exit(run())
}

func run() int {
	opts := parseFlags()

	cfg, err := config.Load(opts.configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to load config: %v\n", err)
		return 1
	}

	level := cfg.Logging.Level
	if opts.logLevel != "" {
		level = opts.logLevel
	}
	log, err := newLogger(level)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	doc, err := loadDocument(flag.Arg(0), cfg.Editor)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to load document: %v\n", err)
		return 1
	}
	log.Debug().Int("nodes", doc.NodeCount()).Msg("document loaded")

	ed := editor.New(doc, composer.New(), editor.WithLogger(log))

	scriptPath := opts.scriptPath
	if scriptPath == "" {
		scriptPath = cfg.Script.Path
	}
	if scriptPath != "" {
		if !cfg.Script.Enabled {
			fmt.Fprintln(os.Stderr, "Error: scripting is disabled in the configuration")
			return 1
		}
		runner := script.NewRunner(ed)
		defer runner.Close()
		if err := runner.RunFile(scriptPath); err != nil {
			fmt.Fprintf(os.Stderr, "Error: script failed: %v\n", err)
			return 1
		}
		snap := ed.Metrics().Snapshot()
		log.Info().
			Uint64("executed", snap.Executed).
			Uint64("no_ops", snap.NoOps).
			Uint64("failures", snap.Failures).
			Msg("script finished")
	}

	writeDocument(os.Stdout, doc)
	return 0
}

func parseFlags() options {
	var opts options
	var showVersion bool

	flag.StringVar(&opts.configPath, "config", "quill.toml", "Path to configuration file")
	flag.StringVar(&opts.configPath, "c", "quill.toml", "Path to configuration file (shorthand)")
	flag.StringVar(&opts.scriptPath, "script", "", "Lua script to run against the document")
	flag.StringVar(&opts.scriptPath, "s", "", "Lua script to run against the document (shorthand)")
	flag.StringVar(&opts.logLevel, "log-level", "", "Log level (trace, debug, info, warn, error, off)")
	flag.BoolVar(&showVersion, "version", false, "Show version information")
	flag.BoolVar(&showVersion, "v", false, "Show version information (shorthand)")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Quill - rich text document engine\n\n")
		fmt.Fprintf(os.Stderr, "Usage: quill [options] [file]\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  quill document.txt              Parse and print a document\n")
		fmt.Fprintf(os.Stderr, "  quill -s edit.lua document.txt  Run a script against a document\n")
	}

	flag.Parse()

	if showVersion {
		fmt.Printf("Quill %s\n", version)
		fmt.Printf("Commit: %s\n", commit)
		fmt.Printf("Built: %s\n", date)
		os.Exit(0)
	}

	return opts
}

func newLogger(level string) (zerolog.Logger, error) {
	if level == "" {
		level = "info"
	}
	if level == "off" {
		return zerolog.Nop(), nil
	}
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		return zerolog.Logger{}, fmt.Errorf("invalid log level %q", level)
	}
	w := zerolog.ConsoleWriter{Out: os.Stderr}
	return zerolog.New(w).Level(lvl).With().Timestamp().Logger(), nil
}

// loadDocument builds a document from a plain text file: blank lines
// separate paragraphs and a line of "---" becomes a horizontal rule. No
// file argument yields a single empty paragraph.
func loadDocument(path string, cfg config.EditorConfig) (*document.Document, error) {
	if path == "" {
		return document.New(node.NewTextNode(attrtext.New(""), node.WithBlockType(cfg.DefaultBlockType)))
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var nodes []node.Node
	for _, block := range strings.Split(strings.ReplaceAll(string(data), "\r\n", "\n"), "\n\n") {
		block = strings.Trim(block, "\n")
		if block == "" {
			continue
		}
		if block == "---" {
			nodes = append(nodes, node.NewHorizontalRuleNode(node.WithRuleSelectable(cfg.RulesSelectable)))
			continue
		}
		nodes = append(nodes, node.NewTextNode(attrtext.New(block), node.WithBlockType(cfg.DefaultBlockType)))
	}
	if len(nodes) == 0 {
		nodes = append(nodes, node.NewTextNode(attrtext.New(""), node.WithBlockType(cfg.DefaultBlockType)))
	}
	return document.New(nodes...)
}

func writeDocument(w *os.File, doc *document.Document) {
	for i, n := range doc.Nodes() {
		if i > 0 {
			fmt.Fprintln(w)
		}
		if tn, ok := n.(node.TextBearing); ok {
			fmt.Fprintln(w, tn.Text().String())
		} else {
			fmt.Fprintln(w, "---")
		}
	}
}
