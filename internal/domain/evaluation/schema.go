package evaluation

// ResponseFormat is the JSON-schema hint sent with the chat request so that
// providers supporting structured output return the evaluation shape directly.
func (r Rubric) ResponseFormat() map[string]any {
	// One variant per criterion, so each name only admits its own scale.
	variants := make([]any, len(r.Criteria))
	for i, c := range r.Criteria {
		scale := make([]any, len(c.Allowed))
		for j, v := range c.Allowed {
			scale[j] = v
		}
		variants[i] = map[string]any{
			"type": "object",
			"properties": map[string]any{
				"name":          map[string]any{"type": "string", "enum": []any{c.Name}},
				"score":         map[string]any{"type": "number", "enum": scale},
				"justification": map[string]any{"type": "string"},
			},
			"required":             []string{"name", "score", "justification"},
			"additionalProperties": false,
		}
	}

	return jsonSchema("fsp_evaluation", map[string]any{
		"type": "object",
		"properties": map[string]any{
			"criteria": map[string]any{
				"type":     "array",
				"minItems": len(r.Criteria),
				"maxItems": len(r.Criteria),
				"items":    map[string]any{"anyOf": variants},
			},
			"total_score":     map[string]any{"type": "number"},
			"pass_assessment": map[string]any{"type": "string"},
			"recommendation":  map[string]any{"type": "string"},
			"summary":         map[string]any{"type": "string"},
		},
		"required":             []string{"criteria", "total_score", "pass_assessment", "recommendation", "summary"},
		"additionalProperties": false,
	})
}

// ReplyResponseFormat is the schema hint for examiner turns.
func ReplyResponseFormat() map[string]any {
	return jsonSchema("fsp_examiner_reply", map[string]any{
		"type": "object",
		"properties": map[string]any{
			"examiner_reply": map[string]any{"type": "string"},
		},
		"required":             []string{"examiner_reply"},
		"additionalProperties": false,
	})
}

func jsonSchema(name string, schema map[string]any) map[string]any {
	return map[string]any{
		"type": "json_schema",
		"json_schema": map[string]any{
			"name":   name,
			"strict": true,
			"schema": schema,
		},
	}
}
