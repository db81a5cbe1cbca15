package formatter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcncl/yamlify/internal/parser"
	"github.com/mcncl/yamlify/internal/render"
	"github.com/mcncl/yamlify/internal/verify"
)

func TestIntegration_ParserRendererFormatter(t *testing.T) {
	// Test the full pipeline: Parser -> Renderer -> Formatter -> Verifier
	jsonInput := `{
		"user_id": 123,
		"username": "johndoe",
		"is_active": true,
		"profile": {
			"full_name": "John Doe",
			"email": "john.doe@example.com",
			"aliases": ["jd", "johnny"]
		},
		"groups": [{"name": "admins", "members": []}]
	}`

	doc, err := parser.ParseString(jsonInput)
	require.NoError(t, err)

	opts := render.Options{DocumentStart: true}
	rendered := render.NewRendererWithOptions(opts).Render(doc.Root)

	formatted, err := NewFormatter().Format(rendered)
	require.NoError(t, err)

	// The renderer already emits what the encoder would
	assert.Equal(t, rendered, formatted)
	assert.NoError(t, verify.NewVerifier(opts).Verify(doc.Root, formatted))
}

func TestIntegration_FormatterRejectsAmbiguousOutput(t *testing.T) {
	doc, err := parser.ParseString(`{"note": "key: value"}`)
	require.NoError(t, err)

	rendered := render.Render(doc.Root)
	assert.Equal(t, "note: key: value\n", rendered)

	_, err = NewFormatter().Format(rendered)
	assert.Error(t, err)
}
