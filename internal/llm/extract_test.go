package llm

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStripFences(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
		ok       bool
	}{
		{name: "json fence", input: "```json\n{\"key\": \"value\"}\n```", expected: `{"key": "value"}`, ok: true},
		{name: "bare fence", input: "```\n[1, 2]\n```", expected: `[1, 2]`, ok: true},
		{name: "prose around fence", input: "Sure!\n```JSON\n{\"a\": 1}\n```\nHope this helps.", expected: `{"a": 1}`, ok: true},
		{name: "unterminated fence", input: "```json\n{\"a\": 1}", expected: `{"a": 1}`, ok: true},
		{name: "single line fence", input: "```json {\"a\": 1}```", expected: `{"a": 1}`, ok: true},
		{name: "fence marker inside body", input: "```json\n{\"a\": \"x```y\"}\n```\nthanks", expected: "{\"a\": \"x```y\"}", ok: true},
		{name: "no fence", input: `{"a": 1}`, expected: "", ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := StripFences(tt.input)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestRepairStructure(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "trailing comma in array", input: `[1, 2,]`, expected: `[1, 2]`},
		{name: "trailing comma in object", input: "{\"a\": 1,\n}", expected: "{\"a\": 1\n}"},
		{name: "missing comma between objects", input: `[{"a":1} {"b":2}]`, expected: `[{"a":1}, {"b":2}]`},
		{name: "missing comma between arrays", input: "[[1]\n[2]]", expected: "[[1],\n[2]]"},
		{name: "leading and trailing prose", input: `Result: {"a": 1} -- end`, expected: `{"a": 1}`},
		{name: "commas inside strings untouched", input: `{"a": "x,}", "b": "] ["}`, expected: `{"a": "x,}", "b": "] ["}`},
		{name: "escaped quote inside string", input: `{"a": "say \"hi,\"",}`, expected: `{"a": "say \"hi,\""}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, RepairStructure(tt.input))
		})
	}
}

func TestBalancedSpans(t *testing.T) {
	t.Run("largest span first", func(t *testing.T) {
		spans := BalancedSpans(`note {"a":1} and then {"b":{"c":[1,2,3]}} done`)
		require.Len(t, spans, 2)
		assert.Equal(t, `{"b":{"c":[1,2,3]}}`, spans[0])
		assert.Equal(t, `{"a":1}`, spans[1])
	})

	t.Run("braces in strings ignored", func(t *testing.T) {
		spans := BalancedSpans(`x {"a":"}{"} y`)
		require.Len(t, spans, 1)
		assert.Equal(t, `{"a":"}{"}`, spans[0])
	})

	t.Run("unbalanced open is skipped", func(t *testing.T) {
		spans := BalancedSpans(`{ broken [1,2]`)
		require.Len(t, spans, 1)
		assert.Equal(t, `[1,2]`, spans[0])
	})

	t.Run("mismatched closers", func(t *testing.T) {
		assert.Empty(t, BalancedSpans(`{]`))
	})
}

func TestExtract_Strategies(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		strategy string
		expected any
	}{
		{
			name:     "valid JSON parses directly",
			raw:      `{"a": 1}`,
			strategy: StrategyDirect,
			expected: map[string]any{"a": float64(1)},
		},
		{
			name:     "fenced JSON",
			raw:      "```json\n[\"x\"]\n```",
			strategy: StrategyStripFences,
			expected: []any{"x"},
		},
		{
			name:     "trailing comma",
			raw:      `[{"question_text":"Q1","question_type":"multiple_choice","category":"values"},]`,
			strategy: StrategyStructuralRepair,
			expected: []any{map[string]any{"question_text": "Q1", "question_type": "multiple_choice", "category": "values"}},
		},
		{
			name:     "two objects with prose between",
			raw:      `First {"a":1} then some words {"bb":22} end`,
			strategy: StrategyBracketScan,
			expected: map[string]any{"bb": float64(22)},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ext, err := Extract(tt.raw)
			require.NoError(t, err)
			assert.Equal(t, tt.strategy, ext.Strategy)
			assert.Equal(t, tt.expected, ext.Value)
		})
	}
}

func TestExtract_FencedWithProse(t *testing.T) {
	raw := "Here is your answer:\n```json\n[{\"question_text\":\"Q1\",\"question_type\":\"text\",\"category\":\"skills\",\"is_required\":true}]\n```"

	v, err := ExtractJSON(raw)

	require.NoError(t, err)
	expected := []any{map[string]any{
		"question_text": "Q1",
		"question_type": "text",
		"category":      "skills",
		"is_required":   true,
	}}
	assert.Equal(t, expected, v)
}

func TestExtract_RecoversEmbeddedValueExactly(t *testing.T) {
	values := []string{
		`{"career":"Data Scientist","roadmap":[{"step":"a","description":"b"}]}`,
		`[1,2,{"nested":{"deep":[true,false,null]}}]`,
		`{"text":"contains } and ] and , inside","n":-1.5e3}`,
		`{"quote":"he said \"go\", then left"}`,
		`[]`,
		`{"a":"x` + "```" + `y"}`,
		`{"snippet":"` + "```go\\nfmt.Println()\\n```" + `"}`,
	}
	prose := []struct{ before, after string }{
		{"", ""},
		{"Sure, here you go:\n", "\nLet me know if you need anything else."},
		{"Output below.\n\n", "\n\nNote: values are estimates (approx)."},
	}

	for i, value := range values {
		want, err := parse(value)
		require.NoError(t, err)

		for j, p := range prose {
			for _, tag := range []string{"", "json"} {
				raw := fmt.Sprintf("%s```%s\n%s\n```%s", p.before, tag, value, p.after)
				t.Run(fmt.Sprintf("value%d_prose%d_%s", i, j, tag), func(t *testing.T) {
					got, err := ExtractJSON(raw)
					require.NoError(t, err)
					assert.Equal(t, want, got)
				})
			}
		}
	}
}

func TestExtract_FenceInsideValueWithFencedProseAfter(t *testing.T) {
	raw := "Here:\n```json\n{\"a\":\"x```y\"}\n```\nSee also ```this```."

	ext, err := Extract(raw)

	require.NoError(t, err)
	assert.Equal(t, StrategyStructuralRepair, ext.Strategy)
	assert.Equal(t, map[string]any{"a": "x```y"}, ext.Value)
}

func TestExtract_FallsBackToRawTextAroundFences(t *testing.T) {
	raw := "{\"a\":1}\n```\nnote```"

	ext, err := Extract(raw)
	require.NoError(t, err)
	assert.Equal(t, StrategyStructuralRepair, ext.Strategy)
	assert.Equal(t, map[string]any{"a": float64(1)}, ext.Value)

	v, err := parseBracketScan(raw)
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"a": float64(1)}, v)
}

func TestExtract_NotJSON(t *testing.T) {
	for _, raw := range []string{"not json at all", "", "   ", "{ unclosed", "```\n```"} {
		t.Run(raw, func(t *testing.T) {
			_, err := Extract(raw)

			var notJSON *ModelOutputNotJSONError
			require.ErrorAs(t, err, &notJSON)
			assert.Equal(t, raw, notJSON.Raw)
			assert.Error(t, notJSON.Cause)
		})
	}
}

func TestExtract_Deterministic(t *testing.T) {
	raw := "prefix ```json\n{\"a\": [1, 2,],}\n``` suffix"

	first, err := Extract(raw)
	require.NoError(t, err)
	second, err := Extract(raw)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, map[string]any{"a": []any{float64(1), float64(2)}}, first.Value)
}
