package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/go-kit/log"
	"github.com/go-kit/log/level"

	"github.com/mcncl/yamlify/internal/analyzer"
	"github.com/mcncl/yamlify/internal/config"
	"github.com/mcncl/yamlify/internal/errors"
	"github.com/mcncl/yamlify/internal/formatter"
	"github.com/mcncl/yamlify/internal/logging"
	"github.com/mcncl/yamlify/internal/models"
	"github.com/mcncl/yamlify/internal/output"
	"github.com/mcncl/yamlify/internal/parser"
	"github.com/mcncl/yamlify/internal/render"
	"github.com/mcncl/yamlify/internal/verify"
)

// CLI defines the command-line interface
var CLI struct {
	Input  string `arg:"" optional:"" help:"Path to input JSON file. If not specified, reads from stdin." type:"path"`
	Output string `arg:"" optional:"" help:"Path to output YAML file. If not specified, writes to stdout." type:"path"`

	Config        string `help:"Path to config file. If not specified, searches the current directory and its parents." short:"c" type:"path"`
	DocumentStart bool   `help:"Start the document with a --- marker." short:"s"`
	KeyCase       string `help:"Rewrite mapping keys (none, snake, camel, lower-camel, kebab). Fails if two keys of one object rewrite to the same key." placeholder:"CASE"`
	MaxDepth      *int   `help:"Maximum nesting depth of the input. 0 disables the limit." placeholder:"N"`
	Format        bool   `help:"Normalize the output with a full YAML encoder." short:"f"`
	Verify        bool   `help:"Check that the output reads back as the input." short:"V"`
	Debug         bool   `help:"Enable debug logging." short:"d"`
	Version       bool   `help:"Show version information." short:"v"`
	Interactive   bool   `help:"Run in interactive mode, allowing direct JSON input with Ctrl+D to process." short:"I"`
}

// Context holds the runtime context
type Context struct {
	Debug  bool
	Config *config.Config
	Logger log.Logger
}

// Version information
const (
	Version = "0.1.0"
)

func main() {
	cliParser := kong.Must(&CLI,
		kong.Name("yamlify"),
		kong.Description("A tool to convert JSON to block-style YAML"),
		kong.UsageOnError(),
	)

	// No arguments at all means the user wants to paste JSON
	if len(os.Args) == 1 {
		CLI.Interactive = true
	}

	if _, err := cliParser.Parse(os.Args[1:]); err != nil {
		// kong.UsageOnError has already printed the usage
		os.Exit(1)
	}

	if CLI.Version {
		fmt.Printf("yamlify version %s\n", Version)
		return
	}

	ctx, err := newContext()
	if err == nil {
		err = run(ctx)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", errors.UserFriendlyError(err))
		fmt.Fprintf(os.Stderr, "\nFor help, run: yamlify --help\n")
		os.Exit(1)
	}
}

// newContext resolves the configuration file and CLI flags into a Context
func newContext() (*Context, error) {
	configPath := CLI.Config
	if configPath == "" {
		configPath = config.FindConfigFile()
	}

	cfg, err := config.LoadConfigWithCLI(configPath, config.Overrides{
		DocumentStart: CLI.DocumentStart,
		KeyCase:       CLI.KeyCase,
		Format:        CLI.Format,
		Verify:        CLI.Verify,
		MaxDepth:      CLI.MaxDepth,
		Debug:         CLI.Debug,
	})
	if err != nil {
		return nil, errors.NewConfigError(fmt.Sprintf("failed to load configuration: %v", err), err)
	}

	logger := logging.New(os.Stderr, cfg.Dev.Debug)
	if configPath != "" {
		level.Debug(logger).Log("msg", "loaded config", "path", configPath)
	}

	return &Context{
		Debug:  cfg.Dev.Debug,
		Config: cfg,
		Logger: logger,
	}, nil
}

// run executes the main program logic
func run(ctx *Context) error {
	// 1. Parse JSON input
	doc, err := parseInput(ctx)
	if err != nil {
		// Error is already wrapped by the parser
		return err
	}

	// 2. Describe the document for debugging
	stats := analyzer.NewAnalyzer().Analyze(doc.Root)
	level.Debug(ctx.Logger).Log(append([]interface{}{"msg", "decoded JSON", "source", doc.Source}, stats.KeyVals()...)...)

	// 3. Render YAML
	opts := ctx.Config.RenderOptions()
	if err := opts.KeyCase.Check(doc.Root); err != nil {
		return errors.NewFormatError(fmt.Sprintf("--key-case %s would duplicate a key: %v", opts.KeyCase, err), err)
	}
	yamlText := render.NewRendererWithOptions(opts).Render(doc.Root)

	// 4. Normalize if requested
	if ctx.Config.Output.Format {
		yamlText, err = formatter.NewFormatter().Format(yamlText)
		if err != nil {
			return errors.NewFormatError("failed to format YAML", err)
		}
	}

	// 5. Check the result reads back as the input
	if ctx.Config.Output.Verify {
		if err := verify.NewVerifier(opts).Verify(doc.Root, yamlText); err != nil {
			return errors.NewVerifyError("output does not read back as the input", err)
		}
		level.Debug(ctx.Logger).Log("msg", "verified output")
	}

	// 6. Output the result
	return writeOutput(ctx, yamlText)
}

// parseInput reads JSON from file or stdin
func parseInput(ctx *Context) (models.Document, error) {
	p := parser.NewParserWithConfig(ctx.Config, nil)

	if CLI.Input != "" {
		return p.ParseFile(CLI.Input)
	}

	stdinInfo, err := os.Stdin.Stat()
	if err != nil {
		return models.Document{}, errors.NewInputError("failed to access stdin", err)
	}

	if (stdinInfo.Mode() & os.ModeCharDevice) != 0 {
		// Terminal is interactive (not piped)
		if CLI.Interactive {
			return readInteractiveInput(p)
		}
		return models.Document{}, errors.NewInputError("no input provided", errors.ErrNoInput)
	}

	jsonData, err := io.ReadAll(os.Stdin)
	if err != nil {
		return models.Document{}, errors.NewInputError("failed to read from stdin", err)
	}

	if len(jsonData) == 0 {
		return models.Document{}, errors.NewInputError("empty input received from stdin", errors.ErrEmptyInput)
	}

	doc, err := p.ParseString(string(jsonData))
	doc.Source = "stdin"
	return doc, err
}

// writeOutput writes the document to the output file or stdout
func writeOutput(ctx *Context, yamlText string) error {
	return output.NewSink(nil, os.Stdout, ctx.Logger).Write(CLI.Output, yamlText)
}

// readInteractiveInput lets users paste JSON and finish with Ctrl+D (EOF)
func readInteractiveInput(p *parser.Parser) (models.Document, error) {
	fmt.Fprintln(os.Stderr, "yamlify interactive mode")
	fmt.Fprintln(os.Stderr, "Paste your JSON below and press Ctrl+D (or Ctrl+Z on Windows) when done:")

	reader := bufio.NewReader(os.Stdin)
	var jsonBuilder strings.Builder

	for {
		line, err := reader.ReadString('\n')
		jsonBuilder.WriteString(line)
		if err == io.EOF {
			break
		}
		if err != nil {
			return models.Document{}, errors.NewInputError("error reading input", err)
		}
	}

	jsonData := jsonBuilder.String()
	if len(jsonData) == 0 {
		return models.Document{}, errors.NewInputError("empty input received", errors.ErrEmptyInput)
	}

	fmt.Fprintln(os.Stderr, "\nConverting...")
	doc, err := p.ParseString(jsonData)
	doc.Source = "stdin"
	return doc, err
}
