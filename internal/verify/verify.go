// Package verify checks that rendered YAML reads back as the JSON it came from.
//
// The renderer writes strings verbatim, so a string such as "true", "12" or
// "a: b" comes back from a YAML parser as something else. Verify decodes the
// output with a full YAML parser and reports the first place where the two
// trees disagree.
package verify

import (
	"fmt"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/mcncl/yamlify/internal/models"
	"github.com/mcncl/yamlify/internal/render"
)

// Mismatch describes the first difference between the source and the output
type Mismatch struct {
	Path string
	Want string
	Got  string
}

func (m *Mismatch) Error() string {
	return fmt.Sprintf("%s: want %s, got %s", m.Path, m.Want, m.Got)
}

// Verifier compares rendered YAML with its source value
type Verifier struct {
	keyCase render.KeyCase
}

// NewVerifier creates a Verifier for output rendered with opts
func NewVerifier(opts render.Options) *Verifier {
	return &Verifier{keyCase: opts.KeyCase}
}

// Verify parses rendered and compares it with source. It returns a *Mismatch
// when the trees differ and a plain error when rendered is not valid YAML.
func (v *Verifier) Verify(source models.Value, rendered string) error {
	var doc yaml.Node
	if err := yaml.Unmarshal([]byte(rendered), &doc); err != nil {
		return fmt.Errorf("output is not valid YAML: %w", err)
	}

	var root *yaml.Node
	if doc.Kind == yaml.DocumentNode && len(doc.Content) > 0 {
		root = doc.Content[0]
	}
	return v.compare("$", source, root)
}

func (v *Verifier) compare(path string, want models.Value, got *yaml.Node) error {
	if got == nil {
		if want.Kind() == models.KindNull {
			return nil
		}
		return &Mismatch{Path: path, Want: describeValue(want), Got: "nothing"}
	}

	mismatch := &Mismatch{Path: path, Want: describeValue(want), Got: describeNode(got)}

	switch want.Kind() {
	case models.KindNull:
		if !isScalar(got, "!!null") {
			return mismatch
		}
	case models.KindBool:
		b, err := strconv.ParseBool(got.Value)
		if !isScalar(got, "!!bool") || err != nil || b != want.AsBool() {
			return mismatch
		}
	case models.KindNumber:
		if !(isScalar(got, "!!int") || isScalar(got, "!!float")) || got.Value != want.Text() {
			return mismatch
		}
	case models.KindString:
		if !isScalar(got, "!!str") || got.Value != want.Text() {
			return mismatch
		}
	case models.KindSequence:
		if got.Kind != yaml.SequenceNode || len(got.Content) != want.Len() {
			return mismatch
		}
		for i, item := range want.Items() {
			if err := v.compare(fmt.Sprintf("%s[%d]", path, i), item, got.Content[i]); err != nil {
				return err
			}
		}
	case models.KindMapping:
		if got.Kind != yaml.MappingNode || len(got.Content) != 2*want.Len() {
			return mismatch
		}
		var err error
		i := 0
		want.Each(func(key string, value models.Value) bool {
			keyNode, valueNode := got.Content[2*i], got.Content[2*i+1]
			i++

			childPath := path + "." + key
			if expected := v.keyCase.Apply(key); keyNode.Value != expected {
				err = &Mismatch{Path: childPath, Want: fmt.Sprintf("key %q", expected), Got: fmt.Sprintf("key %q", keyNode.Value)}
				return false
			}
			err = v.compare(childPath, value, valueNode)
			return err == nil
		})
		return err
	}
	return nil
}

func isScalar(n *yaml.Node, tag string) bool {
	return n.Kind == yaml.ScalarNode && n.ShortTag() == tag
}

func describeValue(v models.Value) string {
	switch v.Kind() {
	case models.KindBool:
		return fmt.Sprintf("bool %t", v.AsBool())
	case models.KindNumber, models.KindString:
		return fmt.Sprintf("%s %q", v.Kind(), v.Text())
	case models.KindSequence, models.KindMapping:
		return fmt.Sprintf("%s of %d", v.Kind(), v.Len())
	default:
		return v.Kind().String()
	}
}

func describeNode(n *yaml.Node) string {
	switch n.Kind {
	case yaml.ScalarNode:
		return fmt.Sprintf("%s %q", n.ShortTag(), n.Value)
	case yaml.SequenceNode:
		return fmt.Sprintf("sequence of %d", len(n.Content))
	case yaml.MappingNode:
		return fmt.Sprintf("mapping of %d", len(n.Content)/2)
	case yaml.AliasNode:
		return "alias"
	default:
		return "document"
	}
}
