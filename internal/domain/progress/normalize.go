package progress

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
	"time"
)

// UnknownIntroducedDate stands in for the first-attempt day of legacy
// records that never stored one.
const UnknownIntroducedDate = "1970-01-01"

// Normalize builds a CardProgress from a loosely typed stored record.
//
// Older clients wrote "seen"/"right"/"wrong" counters and "last" or
// "lastCorrect" instead of "lastResult"; those are mapped onto the current
// fields. Counters are clamped to be non-negative, the streak to [0, MaxStreak].
func Normalize(raw map[string]any) CardProgress {
	var p CardProgress

	correct, ok := intField(raw, "correct")
	if !ok {
		correct, _ = intField(raw, "right")
	}
	p.Correct = max(correct, 0)

	attempts, ok := intField(raw, "attempts")
	if !ok {
		if seen, ok := intField(raw, "seen"); ok {
			attempts = seen
		} else if wrong, ok := intField(raw, "wrong"); ok {
			attempts = p.Correct + max(wrong, 0)
		}
	}
	p.Attempts = max(attempts, p.Correct)

	p.IntroducedDate = dateField(raw, "introducedDate")
	p.LastDate = dateField(raw, "lastDate")

	if b, ok := boolField(raw, "introduced"); ok {
		p.Introduced = b
	}
	if p.Attempts > 0 || p.IntroducedDate != "" {
		p.Introduced = true
	}
	// An introduced card must keep a date, or its next attempt would be
	// counted as an introduction today.
	if p.Introduced && p.IntroducedDate == "" {
		p.IntroducedDate = p.LastDate
		if p.IntroducedDate == "" {
			p.IntroducedDate = UnknownIntroducedDate
		}
	}

	for _, key := range []string{"lastResult", "last", "lastCorrect"} {
		if b, ok := boolField(raw, key); ok {
			p.LastResult = &b
			break
		}
	}

	streak, _ := intField(raw, "streak")
	p.Streak = min(max(streak, 0), MaxStreak)
	if p.LastWrong() {
		p.Streak = 0
	}

	if p.Streak >= MaxStreak {
		p.DiamondSince = dateField(raw, "diamondSince")
		if p.DiamondSince == "" {
			p.DiamondSince = p.LastDate
		}
	}

	return p
}

func intField(raw map[string]any, key string) (int, bool) {
	v, ok := raw[key]
	if !ok || v == nil {
		return 0, false
	}
	var f float64
	switch x := v.(type) {
	case float64:
		f = x
	case int:
		f = float64(x)
	case json.Number:
		parsed, err := x.Float64()
		if err != nil {
			return 0, false
		}
		f = parsed
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(x), 64)
		if err != nil {
			return 0, false
		}
		f = parsed
	default:
		return 0, false
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return int(math.Floor(f)), true
}

func boolField(raw map[string]any, key string) (bool, bool) {
	v, ok := raw[key]
	if !ok || v == nil {
		return false, false
	}
	switch x := v.(type) {
	case bool:
		return x, true
	case float64:
		return x != 0, true
	case string:
		b, err := strconv.ParseBool(strings.TrimSpace(x))
		if err != nil {
			return false, false
		}
		return b, true
	}
	return false, false
}

// dateField accepts "YYYY-MM-DD" or any RFC 3339 timestamp and returns the day.
func dateField(raw map[string]any, key string) string {
	s, ok := raw[key].(string)
	if !ok {
		return ""
	}
	s = strings.TrimSpace(s)
	if _, err := time.Parse(DateLayout, s); err == nil {
		return s
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.Format(DateLayout)
	}
	return ""
}
