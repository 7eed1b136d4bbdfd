package evaluation

import (
	"fmt"
	"math"
	"strings"
)

const (
	maxJustificationRunes = 600
	maxTextRunes          = 1500

	fallbackJustification  = "Keine Begründung verfügbar."
	fallbackRecommendation = "Üben Sie die Gesprächsführung weiter und achten Sie auf eine klare Struktur " +
		"sowie korrekte Fachterminologie."
	fallbackSummary = "Die automatische Auswertung konnte keine ausführliche Zusammenfassung erstellen."
)

// Criterion is one scored dimension of an evaluation.
type Criterion struct {
	Name          string  `json:"name"`
	Score         float64 `json:"score"`
	Justification string  `json:"justification"`
}

// Evaluation is the fixed-shape result shown to the learner.
type Evaluation struct {
	Type           string      `json:"type"`
	Criteria       []Criterion `json:"criteria"`
	TotalScore     float64     `json:"total_score"`
	MaxScore       float64     `json:"max_score"`
	Passed         bool        `json:"passed"`
	PassAssessment string      `json:"pass_assessment"`
	Recommendation string      `json:"recommendation"`
	Summary        string      `json:"summary"`
}

// Evaluate extracts a candidate from raw model output and normalizes it.
func Evaluate(raw any, r Rubric) (Evaluation, Source) {
	c, src := ExtractCandidate(raw, EvaluationShape)
	return NormalizeEvaluation(c, r), src
}

// Default is the evaluation produced when the model output is unusable.
func Default(r Rubric) Evaluation {
	return NormalizeEvaluation(Candidate{}, r)
}

// NormalizeEvaluation forces c into r's schema. It never fails: criterion names
// come from the rubric by position, scores are snapped to the allowed scale,
// and missing text falls back to fixed sentences.
func NormalizeEvaluation(c Candidate, r Rubric) Evaluation {
	supplied := asList(c["criteria"])

	ev := Evaluation{
		Type:     r.Type,
		Criteria: make([]Criterion, len(r.Criteria)),
		MaxScore: r.MaxTotal,
	}

	sum := 0.0
	for i, crit := range r.Criteria {
		var entry map[string]any
		if i < len(supplied) {
			entry, _ = supplied[i].(map[string]any)
		}

		score := NormalizeScore(entry["score"], crit.Allowed)
		justification := textField(entry, "justification", maxJustificationRunes)
		if justification == "" {
			justification = fallbackJustification
		}

		ev.Criteria[i] = Criterion{
			Name:          crit.Name,
			Score:         score,
			Justification: justification,
		}
		sum += score
	}

	fromCriteria := round1(sum)
	total := fromCriteria
	if t, ok := ParseNumber(c["total_score"]); ok && math.Abs(t-fromCriteria) <= 0.5 {
		total = round1(t)
	}
	ev.TotalScore = math.Min(math.Max(total, 0), r.MaxTotal)
	ev.Passed = ev.TotalScore >= r.PassCutoff

	ev.PassAssessment = textField(c, "pass_assessment", maxTextRunes)
	if ev.PassAssessment == "" {
		ev.PassAssessment = passAssessment(ev.TotalScore, r)
	}
	ev.Recommendation = textField(c, "recommendation", maxTextRunes)
	if ev.Recommendation == "" {
		ev.Recommendation = fallbackRecommendation
	}
	ev.Summary = textField(c, "summary", maxTextRunes)
	if ev.Summary == "" {
		ev.Summary = fallbackSummary
	}

	return ev
}

func passAssessment(total float64, r Rubric) string {
	points := fmt.Sprintf("%s von %s Punkten", formatPoints(total), formatPoints(r.MaxTotal))
	if total >= r.PassCutoff {
		return "Voraussichtlich bestanden (" + points + ")."
	}
	return fmt.Sprintf("Voraussichtlich nicht bestanden (%s, benötigt: %s).", points, formatPoints(r.PassCutoff))
}

// formatPoints renders 12.5 as "12,5" and 12 as "12".
func formatPoints(f float64) string {
	s := strings.TrimSuffix(fmt.Sprintf("%.1f", f), ".0")
	return strings.Replace(s, ".", ",", 1)
}

func textField(m map[string]any, key string, maxRunes int) string {
	s, ok := m[key].(string)
	if !ok {
		return ""
	}
	return Sanitize(s, maxRunes)
}
