package llm

import (
	"encoding/json"
	"errors"
	"sort"
	"strings"
)

// Strategy is one named attempt at turning model text into a JSON value.
type Strategy struct {
	Name string
	Run  func(raw string) (any, error)
}

// Strategy names, in the order Extract tries them.
const (
	StrategyDirect           = "direct"
	StrategyStripFences      = "strip-fences"
	StrategyStructuralRepair = "structural-repair"
	StrategyBracketScan      = "bracket-scan"
)

// Strategies is the escalation order used by Extract.
var Strategies = []Strategy{
	{Name: StrategyDirect, Run: parseDirect},
	{Name: StrategyStripFences, Run: parseStripped},
	{Name: StrategyStructuralRepair, Run: parseRepaired},
	{Name: StrategyBracketScan, Run: parseBracketScan},
}

var errNoCandidate = errors.New("no JSON candidate found")

// Extraction is a successfully parsed model output.
type Extraction struct {
	Value    any
	Strategy string
}

// Extract parses raw model text, trying each strategy until one succeeds.
// When all fail it returns a *ModelOutputNotJSONError carrying raw and the
// last parse error.
func Extract(raw string) (Extraction, error) {
	var lastErr error
	for _, s := range Strategies {
		v, err := s.Run(raw)
		if err == nil {
			return Extraction{Value: v, Strategy: s.Name}, nil
		}
		lastErr = err
	}
	return Extraction{}, &ModelOutputNotJSONError{Raw: raw, Cause: lastErr}
}

// ExtractJSON is Extract without the strategy name.
func ExtractJSON(raw string) (any, error) {
	ext, err := Extract(raw)
	if err != nil {
		return nil, err
	}
	return ext.Value, nil
}

func parse(text string) (any, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, errNoCandidate
	}
	var v any
	if err := json.Unmarshal([]byte(text), &v); err != nil {
		return nil, err
	}
	return v, nil
}

func parseDirect(raw string) (any, error) {
	return parse(raw)
}

func parseStripped(raw string) (any, error) {
	stripped, ok := StripFences(raw)
	if !ok {
		return nil, errNoCandidate
	}
	return parse(stripped)
}

func parseRepaired(raw string) (any, error) {
	var lastErr error
	for _, text := range candidates(raw) {
		v, err := parse(RepairStructure(text))
		if err == nil {
			return v, nil
		}
		lastErr = err
	}
	return nil, lastErr
}

func parseBracketScan(raw string) (any, error) {
	lastErr := errNoCandidate
	for _, text := range candidates(raw) {
		for _, span := range BalancedSpans(text) {
			v, err := parse(span)
			if err == nil {
				return v, nil
			}
			if v, err2 := parse(fixCommas(span)); err2 == nil {
				return v, nil
			}
			lastErr = err
		}
	}
	return nil, lastErr
}

// candidates is the fenced body, when there is one, followed by raw.
func candidates(raw string) []string {
	if stripped, ok := StripFences(raw); ok && stripped != raw {
		return []string{stripped, raw}
	}
	return []string{raw}
}

// StripFences returns the text between the first fence marker and the last
// one, without the language tag. Fence markers inside the body are kept. A
// lone opening fence yields the rest of the text. ok is false when text
// contains no fence.
func StripFences(text string) (string, bool) {
	const fence = "```"
	start := strings.Index(text, fence)
	if start < 0 {
		return "", false
	}
	body := text[start+len(fence):]

	// language tag runs to the end of the opening line
	if nl := strings.IndexByte(body, '\n'); nl >= 0 {
		tag := strings.TrimSpace(body[:nl])
		if isLanguageTag(tag) {
			body = body[nl+1:]
		}
	} else {
		body = strings.TrimLeftFunc(body, isTagRune)
	}

	if end := strings.LastIndex(body, fence); end >= 0 {
		body = body[:end]
	}
	return strings.TrimSpace(body), true
}

func isLanguageTag(tag string) bool {
	if len(tag) > 20 {
		return false
	}
	for _, r := range tag {
		if !isTagRune(r) {
			return false
		}
	}
	return true
}

func isTagRune(r rune) bool {
	return r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r >= '0' && r <= '9' || r == '-' || r == '_' || r == '+'
}

// RepairStructure trims prose around the outermost brackets and fixes comma
// noise outside string literals. It never edits string contents.
func RepairStructure(text string) string {
	return fixCommas(trimToBrackets(text))
}

func trimToBrackets(text string) string {
	start := strings.IndexAny(text, "{[")
	end := strings.LastIndexAny(text, "}]")
	if start < 0 || end < start {
		return strings.TrimSpace(text)
	}
	return text[start : end+1]
}

// fixCommas drops commas that precede a closing bracket and inserts a comma
// between a closing bracket and an opening bracket separated only by space.
func fixCommas(text string) string {
	var sb strings.Builder
	sb.Grow(len(text) + 8)

	inString := false
	escaped := false
	for i := 0; i < len(text); i++ {
		c := text[i]
		if inString {
			sb.WriteByte(c)
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}

		switch c {
		case '"':
			inString = true
			sb.WriteByte(c)
		case ',':
			if next := nextNonSpace(text, i+1); next == '}' || next == ']' {
				continue
			}
			sb.WriteByte(c)
		case '}', ']':
			sb.WriteByte(c)
			if next := nextNonSpace(text, i+1); next == '{' || next == '[' {
				sb.WriteByte(',')
			}
		default:
			sb.WriteByte(c)
		}
	}
	return sb.String()
}

func nextNonSpace(text string, from int) byte {
	for j := from; j < len(text); j++ {
		switch text[j] {
		case ' ', '\t', '\n', '\r':
			continue
		default:
			return text[j]
		}
	}
	return 0
}

// BalancedSpans returns every top-level balanced {...} or [...] span in
// text, longest first. Brackets inside string literals are ignored.
func BalancedSpans(text string) []string {
	var spans []string
	for i := 0; i < len(text); i++ {
		if text[i] != '{' && text[i] != '[' {
			continue
		}
		end := matchBracket(text, i)
		if end < 0 {
			continue
		}
		spans = append(spans, text[i:end+1])
		i = end
	}
	sort.SliceStable(spans, func(a, b int) bool { return len(spans[a]) > len(spans[b]) })
	return spans
}

// matchBracket returns the index closing the bracket at start, or -1.
func matchBracket(text string, start int) int {
	stack := make([]byte, 0, 8)
	inString := false
	escaped := false
	for i := start; i < len(text); i++ {
		c := text[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case '{':
			stack = append(stack, '}')
		case '[':
			stack = append(stack, ']')
		case '}', ']':
			if len(stack) == 0 || stack[len(stack)-1] != c {
				return -1
			}
			stack = stack[:len(stack)-1]
			if len(stack) == 0 {
				return i
			}
		}
	}
	return -1
}
