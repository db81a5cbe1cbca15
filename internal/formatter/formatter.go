package formatter

import (
	"bytes"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

const documentStart = "---\n"

// Formatter normalizes rendered YAML through a full YAML encoder
type Formatter struct {
	indent int
}

// NewFormatter creates a new Formatter instance
func NewFormatter() *Formatter {
	return &Formatter{indent: 2}
}

// Format parses doc and re-encodes it. A leading document start marker is
// kept, and the result ends in exactly one newline.
func (f *Formatter) Format(doc string) (string, error) {
	// Handle empty input
	if strings.TrimSpace(doc) == "" {
		return doc, nil
	}

	var node yaml.Node
	if err := yaml.Unmarshal([]byte(doc), &node); err != nil {
		return "", fmt.Errorf("failed to parse YAML: %w", err)
	}
	if isEmptyDocument(&node) {
		return doc, nil
	}

	var buf bytes.Buffer
	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(f.indent)
	if err := encoder.Encode(&node); err != nil {
		return "", fmt.Errorf("failed to encode YAML: %w", err)
	}
	if err := encoder.Close(); err != nil {
		return "", fmt.Errorf("failed to encode YAML: %w", err)
	}

	result := strings.TrimSpace(buf.String()) + "\n"
	if strings.HasPrefix(doc, documentStart) {
		result = documentStart + result
	}
	return result, nil
}

// isEmptyDocument reports whether node holds nothing but an implicit null,
// which the encoder would otherwise spell out as "null"
func isEmptyDocument(node *yaml.Node) bool {
	if node.Kind == 0 {
		return true
	}
	if node.Kind != yaml.DocumentNode || len(node.Content) != 1 {
		return false
	}
	root := node.Content[0]
	return root.Kind == yaml.ScalarNode && root.ShortTag() == "!!null" && root.Value == ""
}
