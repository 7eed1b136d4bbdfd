package progress

import (
	"encoding/json"
	"time"
)

const (
	// MaxStreak is the streak cap. A card at the cap is a "diamond".
	MaxStreak = 7

	// DateLayout is the calendar-day format used for every date field.
	DateLayout = "2006-01-02"
)

// CardProgress tracks one learner's history with one flashcard.
//
// Invariant: a false LastResult implies Streak == 0.
type CardProgress struct {
	Attempts       int    `json:"attempts"`
	Correct        int    `json:"correct"`
	Introduced     bool   `json:"introduced"`
	IntroducedDate string `json:"introducedDate"`
	Streak         int    `json:"streak"`
	LastResult     *bool  `json:"lastResult"`
	LastDate       string `json:"lastDate"`
	DiamondSince   string `json:"diamondSince"`
}

// Day formats t as a calendar day in loc.
func Day(t time.Time, loc *time.Location) string {
	if loc == nil {
		loc = time.UTC
	}
	return t.In(loc).Format(DateLayout)
}

// Record applies one attempt made on the given day.
func (p *CardProgress) Record(correct bool, today string) {
	p.Attempts++
	if correct {
		p.Correct++
	}

	p.Introduced = true
	if p.IntroducedDate == "" {
		p.IntroducedDate = today
	}

	result := correct
	p.LastResult = &result
	p.LastDate = today

	if correct {
		p.Streak = min(p.Streak+1, MaxStreak)
		if p.Streak >= MaxStreak {
			p.DiamondSince = today
		}
		return
	}
	p.Streak = 0
	p.DiamondSince = ""
}

// IsDiamond reports whether the streak has reached the cap.
func (p CardProgress) IsDiamond() bool {
	return p.Streak >= MaxStreak
}

// LastWrong reports whether the most recent attempt was answered incorrectly.
func (p CardProgress) LastWrong() bool {
	return p.LastResult != nil && !*p.LastResult
}

// LastRight reports whether the most recent attempt was answered correctly.
func (p CardProgress) LastRight() bool {
	return p.LastResult != nil && *p.LastResult
}

// UnmarshalJSON decodes leniently: unknown shapes, wrong field types and legacy
// field names are coerced by Normalize instead of failing.
func (p *CardProgress) UnmarshalJSON(data []byte) error {
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		*p = CardProgress{}
		return nil
	}
	*p = Normalize(raw)
	return nil
}

// DecodeAll decodes a stored cardID → progress map. Anything unreadable
// yields an empty map; individual bad entries are normalized.
func DecodeAll(data []byte) map[string]*CardProgress {
	out := make(map[string]*CardProgress)
	if len(data) == 0 {
		return out
	}
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return out
	}
	for cardID, entry := range raw {
		var p CardProgress
		_ = p.UnmarshalJSON(entry)
		out[cardID] = &p
	}
	return out
}

// CountIntroducedOn counts records whose first attempt fell on day.
func CountIntroducedOn(records map[string]*CardProgress, day string) int {
	n := 0
	for _, p := range records {
		if p != nil && p.IntroducedDate == day {
			n++
		}
	}
	return n
}

// Clone returns a copy that shares no memory with p.
func (p CardProgress) Clone() CardProgress {
	if p.LastResult != nil {
		r := *p.LastResult
		p.LastResult = &r
	}
	return p
}
