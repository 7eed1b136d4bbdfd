package progress

import "encoding/json"

// DailyStats aggregates all attempts made on one calendar day.
type DailyStats struct {
	Attempts int `json:"attempts"`
	Correct  int `json:"correct"`
	Wrong    int `json:"wrong"`
}

// Daily maps a calendar day to its aggregate.
type Daily map[string]DailyStats

// Record counts one attempt on day.
func (d Daily) Record(day string, correct bool) DailyStats {
	s := d[day]
	s.Attempts++
	if correct {
		s.Correct++
	} else {
		s.Wrong++
	}
	d[day] = s
	return s
}

// DecodeDaily reads a stored Daily map; unreadable data yields an empty map.
func DecodeDaily(data []byte) Daily {
	d := make(Daily)
	if len(data) == 0 {
		return d
	}
	if err := json.Unmarshal(data, &d); err != nil {
		return make(Daily)
	}
	return d
}
