package verify

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcncl/yamlify/internal/parser"
	"github.com/mcncl/yamlify/internal/render"
)

func TestVerify_RoundTrips(t *testing.T) {
	inputs := []string{
		`true`,
		`12`,
		`"test"`,
		`""`,
		`null`,
		`[]`,
		`{}`,
		`[1, false, "a potato"]`,
		`[["a", [2, 3]]]`,
		`{"a": {"b": 2, "c": 3}}`,
		`[{"a": 1, "c": 2}]`,
		`{"a": [{"key": 1}, "c"], "b": null, "d": [null, {}], "e": 1.50}`,
		`{"x": {"a": 1, "b": {"c": 1}}}`,
	}

	for _, input := range inputs {
		t.Run(input, func(t *testing.T) {
			doc, err := parser.ParseString(input)
			require.NoError(t, err)

			out := render.Render(doc.Root)
			assert.NoError(t, NewVerifier(render.Options{}).Verify(doc.Root, out), "output:\n%s", out)
		})
	}
}

func TestVerify_WithRenderOptions(t *testing.T) {
	doc, err := parser.ParseString(`{"userName": "x", "nested": {"zipCode": 1}}`)
	require.NoError(t, err)

	opts := render.Options{DocumentStart: true, KeyCase: render.KeyCaseSnake}
	out := render.NewRendererWithOptions(opts).Render(doc.Root)

	assert.NoError(t, NewVerifier(opts).Verify(doc.Root, out))

	err = NewVerifier(render.Options{}).Verify(doc.Root, out)
	var mismatch *Mismatch
	require.True(t, errors.As(err, &mismatch))
	assert.Equal(t, "$.userName", mismatch.Path)
	assert.Equal(t, `key "userName"`, mismatch.Want)
	assert.Equal(t, `key "user_name"`, mismatch.Got)
}

func TestVerify_ReportsTypeDrift(t *testing.T) {
	tests := []struct {
		name  string
		input string
		path  string
		want  string
		got   string
	}{
		{"boolean-looking string", `{"enabled": "true"}`, "$.enabled", `string "true"`, `!!bool "true"`},
		{"number-looking string", `["1", "007x", "12"]`, "$[0]", `string "1"`, `!!int "1"`},
		{"null-looking string", `{"a": [{"b": "null"}]}`, "$.a[0].b", `string "null"`, `!!null "null"`},
		{"whitespace string", `[" "]`, "$[0]", `string " "`, `!!null ""`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := parser.ParseString(tt.input)
			require.NoError(t, err)

			err = NewVerifier(render.Options{}).Verify(doc.Root, render.Render(doc.Root))
			var mismatch *Mismatch
			require.True(t, errors.As(err, &mismatch), "expected mismatch, got %v", err)
			assert.Equal(t, tt.path, mismatch.Path)
			assert.Equal(t, tt.want, mismatch.Want)
			assert.Equal(t, tt.got, mismatch.Got)
		})
	}
}

func TestVerify_InvalidYAML(t *testing.T) {
	doc, err := parser.ParseString(`{"a": "b: c"}`)
	require.NoError(t, err)

	err = NewVerifier(render.Options{}).Verify(doc.Root, render.Render(doc.Root))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "output is not valid YAML")

	var mismatch *Mismatch
	assert.False(t, errors.As(err, &mismatch))
}

func TestMismatch_Error(t *testing.T) {
	m := &Mismatch{Path: "$.a[1]", Want: `string "1"`, Got: `!!int "1"`}
	assert.Equal(t, `$.a[1]: want string "1", got !!int "1"`, m.Error())
}
