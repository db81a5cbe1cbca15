package parser

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	stderrors "errors" // Standard errors package

	"github.com/spf13/afero"

	"github.com/mcncl/yamlify/internal/config"
	"github.com/mcncl/yamlify/internal/errors" // Custom errors package
	"github.com/mcncl/yamlify/internal/models"
)

// Parser decodes JSON into order-preserving models.Value trees
type Parser struct {
	fs       afero.Fs
	maxDepth int
}

// NewParser creates a Parser reading from the OS filesystem with default limits
func NewParser() *Parser {
	return &Parser{
		fs:       afero.NewOsFs(),
		maxDepth: config.DefaultMaxDepth,
	}
}

// NewParserWithConfig creates a Parser using cfg's input limits and reading files from fs.
// A zero max depth disables the limit.
func NewParserWithConfig(cfg *config.Config, fs afero.Fs) *Parser {
	if fs == nil {
		fs = afero.NewOsFs()
	}
	return &Parser{
		fs:       fs,
		maxDepth: cfg.Input.MaxDepth,
	}
}

// Parse decodes JSON data from an io.Reader with default limits
func Parse(reader io.Reader) (models.Document, error) {
	return NewParser().Parse(reader)
}

// ParseString decodes JSON from a string with default limits
func ParseString(jsonString string) (models.Document, error) {
	return NewParser().ParseString(jsonString)
}

// ParseFile decodes JSON from a file path with default limits
func ParseFile(filePath string) (models.Document, error) {
	return NewParser().ParseFile(filePath)
}

// frame is a sequence or mapping that is still being decoded
type frame struct {
	mapping bool
	items   []models.Value
	pairs   []models.Pair
	key     string
	haveKey bool
}

func (f *frame) add(v models.Value) {
	if f.mapping {
		f.pairs = append(f.pairs, models.Pair{Key: f.key, Value: v})
		f.key, f.haveKey = "", false
		return
	}
	f.items = append(f.items, v)
}

func (f *frame) value() models.Value {
	if f.mapping {
		return models.Mapping(f.pairs...)
	}
	return models.Sequence(f.items...)
}

// Parse decodes a single JSON value from reader
func (p *Parser) Parse(reader io.Reader) (models.Document, error) {
	decoder := json.NewDecoder(reader)
	decoder.UseNumber() // Keep the verbatim text of numbers

	root, err := p.decodeValue(decoder)
	if err != nil {
		return models.Document{}, err
	}

	// Anything other than whitespace after the first value is an error
	if _, err := decoder.Token(); err == nil {
		return models.Document{}, errors.NewParsingError("multiple JSON values found at the root", errors.ErrMultipleJSON)
	} else if !stderrors.Is(err, io.EOF) {
		return models.Document{}, errors.NewParsingError("invalid trailing data after first JSON value", err)
	}

	return models.Document{Root: root}, nil
}

// decodeValue reads one complete value token by token. Nesting is tracked on
// an explicit stack so deeply nested input cannot exhaust the goroutine stack.
func (p *Parser) decodeValue(decoder *json.Decoder) (models.Value, error) {
	var stack []*frame
	started := false

	for {
		tok, err := decoder.Token()
		if err != nil {
			return models.Value{}, decodeError(err, started)
		}
		started = true

		var (
			value    models.Value
			complete bool
		)

		switch t := tok.(type) {
		case json.Delim:
			switch t {
			case '[', '{':
				if p.maxDepth > 0 && len(stack) >= p.maxDepth {
					return models.Value{}, errors.NewParsingError(
						fmt.Sprintf("nesting deeper than %d levels at offset %d", p.maxDepth, decoder.InputOffset()),
						errors.ErrMaxDepthExceeded,
					)
				}
				stack = append(stack, &frame{mapping: t == '{'})
				continue
			default: // ']' or '}'
				top := stack[len(stack)-1]
				stack = stack[:len(stack)-1]
				value, complete = top.value(), true
			}
		case string:
			if len(stack) > 0 {
				if top := stack[len(stack)-1]; top.mapping && !top.haveKey {
					top.key, top.haveKey = t, true
					continue
				}
			}
			value, complete = models.String(t), true
		case json.Number:
			value, complete = models.Number(t.String()), true
		case bool:
			value, complete = models.Bool(t), true
		case nil:
			value, complete = models.Null(), true
		default:
			return models.Value{}, errors.NewParsingError(fmt.Sprintf("unexpected JSON token %T", tok), errors.ErrInvalidJSON)
		}

		if !complete {
			continue
		}
		if len(stack) == 0 {
			return value, nil
		}
		stack[len(stack)-1].add(value)
	}
}

// decodeError maps decoder failures onto application errors
func decodeError(err error, started bool) error {
	if stderrors.Is(err, io.EOF) {
		if !started {
			return errors.NewParsingError("input is empty or contains only whitespace", errors.ErrEmptyInput)
		}
		// The stream ended inside an array or object
		return errors.NewParsingError("unexpected end of JSON input", io.ErrUnexpectedEOF)
	}
	if stderrors.Is(err, io.ErrUnexpectedEOF) {
		return errors.NewParsingError("unexpected end of JSON input", err)
	}

	var syntaxError *json.SyntaxError
	if stderrors.As(err, &syntaxError) {
		return errors.NewParsingError(
			fmt.Sprintf("JSON syntax error at offset %d", syntaxError.Offset),
			errors.ErrInvalidJSON,
		)
	}
	return errors.NewParsingError("failed to decode JSON", err)
}

// ParseString decodes JSON from a string
func (p *Parser) ParseString(jsonString string) (models.Document, error) {
	if strings.TrimSpace(jsonString) == "" {
		return models.Document{}, errors.NewInputError("input string is empty or consists only of whitespace", errors.ErrEmptyInput)
	}
	doc, err := p.Parse(strings.NewReader(jsonString))
	if err != nil {
		return models.Document{}, err
	}
	doc.Source = "string"
	return doc, nil
}

// ParseFile decodes JSON from a file path
func (p *Parser) ParseFile(filePath string) (models.Document, error) {
	if strings.TrimSpace(filePath) == "" {
		return models.Document{}, errors.NewInputError("file path is empty", errors.ErrInvalidFilePath)
	}
	file, err := p.fs.Open(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return models.Document{}, errors.NewInputError(
				fmt.Sprintf("file '%s' not found", filePath),
				errors.ErrFileNotFound,
			)
		}
		return models.Document{}, errors.NewInputError(
			fmt.Sprintf("failed to open file '%s'", filePath),
			err,
		)
	}
	defer func() {
		_ = file.Close()
	}()

	stat, err := file.Stat()
	if err != nil {
		return models.Document{}, errors.NewInputError(
			fmt.Sprintf("failed to get file stats for '%s'", filePath),
			err,
		)
	}
	if stat.IsDir() {
		return models.Document{}, errors.NewInputError(
			fmt.Sprintf("'%s' is a directory", filePath),
			errors.ErrInvalidFilePath,
		)
	}
	if stat.Size() == 0 {
		return models.Document{}, errors.NewInputError(
			fmt.Sprintf("input file '%s' is empty", filePath),
			errors.ErrFileEmpty,
		)
	}

	doc, err := p.Parse(file)
	if err != nil {
		return models.Document{}, err
	}
	doc.Source = filePath
	return doc, nil
}
