package feedback

import (
	"encoding/json"
	"slices"
)

// Category is one of the four closed feedback sentiments. It is selected
// once at wizard start and immutable thereafter.
type Category string

// Valid feedback categories.
const (
	CategoryLoved  Category = "loved"
	CategoryLiked  Category = "liked"
	CategoryBetter Category = "better"
	CategoryPoor   Category = "poor"
)

// defaultRating is stored when a rating is derived from an unrecognized
// category value.
const defaultRating = 3

var categories = []Category{
	CategoryLoved,
	CategoryLiked,
	CategoryBetter,
	CategoryPoor,
}

var ratings = map[Category]int{
	CategoryPoor:   1,
	CategoryBetter: 2,
	CategoryLiked:  4,
	CategoryLoved:  5,
}

// Categories returns the closed set of valid categories.
func Categories() []Category {
	return categories
}

// ParseCategory validates a string as a known category. Returns
// ErrInvalidCategory for anything outside the closed set.
func ParseCategory(s string) (Category, error) {
	c := Category(s)
	if !slices.Contains(categories, c) {
		return "", ErrInvalidCategory
	}
	return c, nil
}

// Positive reports whether the category belongs to the positive subset
// ({loved, liked}); the remainder form the constructive subset.
func (c Category) Positive() bool {
	return c == CategoryLoved || c == CategoryLiked
}

// Rating projects the category onto the fixed 1-5 rating scale:
// poor=1, better=2, liked=4, loved=5. Unrecognized values map to 3.
func (c Category) Rating() int {
	if r, ok := ratings[c]; ok {
		return r
	}
	return defaultRating
}

// UnmarshalJSON validates that the decoded string is a known category.
func (c *Category) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	parsed, err := ParseCategory(raw)
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}
