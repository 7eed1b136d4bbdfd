package card

import "errors"

// AllCategories is the category filter that matches every card.
const AllCategories = "all"

// Card is a single flashcard. Options are the multiple-choice answers shown in
// quiz mode; Answer holds the correct one.
type Card struct {
	ID          string   `json:"id"`
	Category    string   `json:"category"`
	Question    string   `json:"question"`
	Answer      string   `json:"answer"`
	Options     []string `json:"options,omitempty"`
	Explanation string   `json:"explanation,omitempty"`
}

func (c *Card) Validate() error {
	if c.ID == "" {
		return errors.New("card id cannot be empty")
	}
	if c.Question == "" {
		return errors.New("card question cannot be empty")
	}
	if c.Answer == "" {
		return errors.New("card answer cannot be empty")
	}
	return nil
}

// MatchesCategory reports whether the card passes a category filter.
// An empty filter or AllCategories matches every card.
func (c Card) MatchesCategory(category string) bool {
	if category == "" || category == AllCategories {
		return true
	}
	return c.Category == category
}
