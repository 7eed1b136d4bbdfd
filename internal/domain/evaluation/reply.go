package evaluation

const (
	maxReplyRunes = 1200

	fallbackReply = "Entschuldigung, das habe ich akustisch nicht verstanden. Könnten Sie das bitte wiederholen?"
)

// Reply is one examiner turn in a simulated conversation.
type Reply struct {
	ExaminerReply string `json:"examiner_reply"`
	Fallback      bool   `json:"fallback"`
}

// ExtractReply recovers and normalizes an examiner turn from raw model output.
// Plain prose without any JSON is accepted as the reply itself.
func ExtractReply(raw any) (Reply, Source) {
	c, src := ExtractCandidate(raw, ReplyShape)
	if src == SourceFallback {
		if text, ok := decodeRaw(raw).(string); ok {
			if r := NormalizeReply(Candidate{"examiner_reply": text}); !r.Fallback {
				return r, SourceText
			}
		}
	}
	return NormalizeReply(c), src
}

// NormalizeReply sanitizes the examiner_reply field or substitutes a request
// to repeat.
func NormalizeReply(c Candidate) Reply {
	text := textField(c, "examiner_reply", maxReplyRunes)
	if text == "" {
		return Reply{ExaminerReply: fallbackReply, Fallback: true}
	}
	return Reply{ExaminerReply: text}
}
