package evaluation

import (
	"encoding/json"
	"strings"
)

// Candidate is the not yet validated object recovered from a model response.
type Candidate map[string]any

// Shape recognizes the candidate a caller is looking for.
type Shape func(map[string]any) bool

// EvaluationShape matches objects carrying a criteria array.
func EvaluationShape(m map[string]any) bool {
	_, ok := m["criteria"].([]any)
	return ok
}

// ReplyShape matches objects carrying an examiner_reply string.
func ReplyShape(m map[string]any) bool {
	_, ok := m["examiner_reply"].(string)
	return ok
}

// Source tells which response shape a candidate was recovered from.
type Source int

const (
	SourceFallback Source = iota // nothing usable, defaults apply
	SourceDirect                 // the raw output already had the shape
	SourceNested                 // found under .response
	SourceOutput                 // found in an output/choices list
	SourceText                   // recovered from free text
)

func (s Source) String() string {
	switch s {
	case SourceDirect:
		return "direct"
	case SourceNested:
		return "nested"
	case SourceOutput:
		return "output"
	case SourceText:
		return "text"
	default:
		return "fallback"
	}
}

type extractor struct {
	source Source
	try    func(raw any, shape Shape) (map[string]any, bool)
}

// extractors run in order; the first success wins.
var extractors = []extractor{
	{SourceDirect, extractDirect},
	{SourceNested, extractNested},
	{SourceOutput, extractOutputList},
	{SourceText, extractRawText},
}

// ExtractCandidate recovers a candidate of the given shape from a raw model
// output: a decoded JSON value, raw bytes or plain text. When every strategy
// fails it returns an empty candidate and SourceFallback, never nil.
func ExtractCandidate(raw any, shape Shape) (Candidate, Source) {
	raw = decodeRaw(raw)
	for _, e := range extractors {
		if m, ok := e.try(raw, shape); ok {
			return Candidate(m), e.source
		}
	}
	return Candidate{}, SourceFallback
}

// decodeRaw turns byte input into a JSON value when possible, else text.
func decodeRaw(raw any) any {
	var data []byte
	switch x := raw.(type) {
	case []byte:
		data = x
	case json.RawMessage:
		data = x
	default:
		return raw
	}
	var v any
	if err := json.Unmarshal(data, &v); err == nil {
		return v
	}
	return string(data)
}

func extractDirect(raw any, shape Shape) (map[string]any, bool) {
	m, ok := raw.(map[string]any)
	if ok && shape(m) {
		return m, true
	}
	return nil, false
}

func extractNested(raw any, shape Shape) (map[string]any, bool) {
	m, ok := raw.(map[string]any)
	if !ok {
		return nil, false
	}
	switch inner := m["response"].(type) {
	case map[string]any:
		if shape(inner) {
			return inner, true
		}
	case string:
		if parsed, ok := parseStrict(inner); ok && shape(parsed) {
			return parsed, true
		}
	}
	return nil, false
}

// extractOutputList handles Responses-style "output" lists and
// chat-completion "choices" lists.
func extractOutputList(raw any, shape Shape) (map[string]any, bool) {
	m, ok := raw.(map[string]any)
	if !ok {
		return nil, false
	}

	for _, item := range asList(m["output"]) {
		if found, ok := fromContainer(item, "content", shape); ok {
			return found, true
		}
	}
	for _, choice := range asList(m["choices"]) {
		cm, ok := choice.(map[string]any)
		if !ok {
			continue
		}
		if found, ok := fromContainer(cm["message"], "content", shape); ok {
			return found, true
		}
	}
	return nil, false
}

// fromContainer checks item.parsed, then item[contentKey] as text or as a
// list of content blocks with their own parsed/text fields.
func fromContainer(item any, contentKey string, shape Shape) (map[string]any, bool) {
	im, ok := item.(map[string]any)
	if !ok {
		return nil, false
	}
	if parsed, ok := im["parsed"].(map[string]any); ok && shape(parsed) {
		return parsed, true
	}

	switch content := im[contentKey].(type) {
	case string:
		if parsed, ok := parseStrict(content); ok && shape(parsed) {
			return parsed, true
		}
	case []any:
		for _, block := range content {
			bm, ok := block.(map[string]any)
			if !ok {
				continue
			}
			if parsed, ok := bm["parsed"].(map[string]any); ok && shape(parsed) {
				return parsed, true
			}
			for _, key := range []string{"text", "output_text"} {
				text, ok := bm[key].(string)
				if !ok {
					continue
				}
				if parsed, ok := parseStrict(text); ok && shape(parsed) {
					return parsed, true
				}
			}
		}
	}
	return nil, false
}

// extractRawText is the last resort: gather every text fragment of the
// response and look for an embedded object.
func extractRawText(raw any, shape Shape) (map[string]any, bool) {
	text := collectText(raw)
	if strings.TrimSpace(text) == "" {
		return nil, false
	}
	if parsed, ok := parseLoose(text); ok && shape(parsed) {
		return parsed, true
	}
	return nil, false
}

// collectText concatenates the textual parts of a raw response.
func collectText(raw any) string {
	switch x := raw.(type) {
	case string:
		return x
	case map[string]any:
		var parts []string
		for _, key := range []string{"output_text", "text", "content", "response"} {
			if s, ok := x[key].(string); ok {
				parts = append(parts, s)
			}
		}
		for _, item := range asList(x["output"]) {
			parts = append(parts, blockTexts(item)...)
		}
		for _, choice := range asList(x["choices"]) {
			if cm, ok := choice.(map[string]any); ok {
				parts = append(parts, blockTexts(cm["message"])...)
			}
		}
		return strings.Join(parts, "\n")
	}
	return ""
}

func blockTexts(item any) []string {
	im, ok := item.(map[string]any)
	if !ok {
		return nil
	}
	var out []string
	switch content := im["content"].(type) {
	case string:
		out = append(out, content)
	case []any:
		for _, block := range content {
			if bm, ok := block.(map[string]any); ok {
				for _, key := range []string{"text", "output_text"} {
					if s, ok := bm[key].(string); ok {
						out = append(out, s)
					}
				}
			}
		}
	}
	return out
}

func asList(v any) []any {
	list, _ := v.([]any)
	return list
}

// parseStrict removes fences and reasoning blocks and parses the remainder.
func parseStrict(text string) (map[string]any, bool) {
	var m map[string]any
	if err := json.Unmarshal([]byte(strings.TrimSpace(stripReasoning(text))), &m); err != nil || m == nil {
		return nil, false
	}
	return m, true
}

// parseLoose tries parseStrict, then the span between the first '{' and the
// last '}', then the first balanced object.
func parseLoose(text string) (map[string]any, bool) {
	if m, ok := parseStrict(text); ok {
		return m, true
	}
	cleaned := stripReasoning(text)

	start := strings.Index(cleaned, "{")
	end := strings.LastIndex(cleaned, "}")
	if start >= 0 && end > start {
		var m map[string]any
		if err := json.Unmarshal([]byte(cleaned[start:end+1]), &m); err == nil && m != nil {
			return m, true
		}
	}

	if obj := extractJSON(cleaned); obj != "" {
		var m map[string]any
		if err := json.Unmarshal([]byte(obj), &m); err == nil && m != nil {
			return m, true
		}
	}
	return nil, false
}

// extractJSON finds the first balanced JSON object in a string.
// It handles nested braces correctly and skips braces inside quoted strings.
func extractJSON(s string) string {
	start := -1
	depth := 0
	inString := false
	escaped := false

	for i, ch := range s {
		if escaped {
			escaped = false
			continue
		}
		if ch == '\\' && inString {
			escaped = true
			continue
		}
		if ch == '"' {
			inString = !inString
			continue
		}
		if inString {
			continue
		}

		if ch == '{' {
			if depth == 0 {
				start = i
			}
			depth++
		} else if ch == '}' {
			if depth == 0 {
				continue
			}
			depth--
			if depth == 0 && start != -1 {
				return s[start : i+1]
			}
		}
	}
	return ""
}
