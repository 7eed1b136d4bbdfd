package evaluation

import (
	"regexp"
	"strings"
)

var (
	thinkBlock    = regexp.MustCompile(`(?is)<think>.*?</think>`)
	thinkOpen     = regexp.MustCompile(`(?is)<think>.*$`)
	fenceLine     = regexp.MustCompile("(?m)^\\s*```[a-zA-Z0-9_-]*\\s*$")
	inlineSpace   = regexp.MustCompile(`[ \t\f\v]+`)
	manyNewlines  = regexp.MustCompile(`\n{3,}`)
	promptLeakage = []*regexp.Regexp{
		regexp.MustCompile(`(?i)^\s*(system|assistant|developer|user)\s*:`),
		regexp.MustCompile(`(?i)^\s*system\s*-?\s*prompt\s*[:=]`),
		regexp.MustCompile(`(?i)\b(mein(e[mnrs]?)?|my|unser(e[mnrs]?)?|our)\s+system\s*-?\s*prompt`),
		regexp.MustCompile(`(?i)^\s*(anweisung|anweisungen|instruktion(en)?|instructions?)\s*:`),
		regexp.MustCompile(`(?i)\bas an ai\b`),
		regexp.MustCompile(`(?i)\bals (eine )?KI\b`),
		regexp.MustCompile(`(?i)\bich bin ein (sprach)?modell\b`),
		regexp.MustCompile(`(?i)\b(ignore|ignoriere) (all |alle )?(previous|vorherigen)\b`),
	}
)

// stripReasoning removes <think> blocks (closed or left open) and code fences.
func stripReasoning(s string) string {
	s = thinkBlock.ReplaceAllString(s, "")
	s = thinkOpen.ReplaceAllString(s, "")
	return fenceLine.ReplaceAllString(s, "")
}

// Sanitize cleans model text before it is shown to the learner: reasoning
// blocks, code fences and lines that echo the prompt are dropped, whitespace
// is collapsed and the result is capped at maxRunes (0 = no cap).
func Sanitize(text string, maxRunes int) string {
	text = stripReasoning(strings.ReplaceAll(text, "\r\n", "\n"))

	lines := strings.Split(text, "\n")
	kept := lines[:0]
	for _, line := range lines {
		if leaksPrompt(line) {
			continue
		}
		kept = append(kept, strings.TrimSpace(inlineSpace.ReplaceAllString(line, " ")))
	}
	text = strings.TrimSpace(manyNewlines.ReplaceAllString(strings.Join(kept, "\n"), "\n\n"))

	return truncateRunes(text, maxRunes)
}

func leaksPrompt(line string) bool {
	for _, re := range promptLeakage {
		if re.MatchString(line) {
			return true
		}
	}
	return false
}

func truncateRunes(s string, maxRunes int) string {
	if maxRunes <= 0 {
		return s
	}
	runes := []rune(s)
	if len(runes) <= maxRunes {
		return s
	}
	return strings.TrimSpace(string(runes[:maxRunes]))
}
