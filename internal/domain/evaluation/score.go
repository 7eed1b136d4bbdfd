package evaluation

import (
	"encoding/json"
	"math"
	"regexp"
	"strconv"
	"strings"
)

var leadingNumber = regexp.MustCompile(`^[+-]?(?:\d+(?:[.,]\d*)?|[.,]\d+)(?:[eE][+-]?\d+)?`)

// ParseNumber reads a number from a loosely typed value. Strings may use a
// comma as decimal separator and carry trailing text ("1,5 Punkte").
func ParseNumber(v any) (float64, bool) {
	var f float64
	switch x := v.(type) {
	case float64:
		f = x
	case float32:
		f = float64(x)
	case int:
		f = float64(x)
	case int64:
		f = float64(x)
	case json.Number:
		return ParseNumber(x.String())
	case string:
		m := leadingNumber.FindString(strings.TrimSpace(x))
		if m == "" {
			return 0, false
		}
		parsed, err := strconv.ParseFloat(strings.Replace(m, ",", ".", 1), 64)
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
	return f, true
}

// NormalizeScore snaps raw to the nearest allowed value. Ties keep the
// earlier (lower) option. Unparseable input yields the smallest allowed value.
func NormalizeScore(raw any, allowed []float64) float64 {
	if len(allowed) == 0 {
		allowed = DefaultScale
	}

	v, ok := ParseNumber(raw)
	if !ok {
		lowest := allowed[0]
		for _, a := range allowed[1:] {
			lowest = math.Min(lowest, a)
		}
		return lowest
	}

	best := allowed[0]
	bestDist := math.Abs(v - best)
	for _, a := range allowed[1:] {
		if d := math.Abs(v - a); d < bestDist {
			best, bestDist = a, d
		}
	}
	return best
}

func round1(f float64) float64 {
	return math.Round(f*10) / 10
}
