package domain

// TagCount is one row of a tag-frequency distribution: how many entries
// carry a tag with this name.
type TagCount struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// TrendPoint is one day of the community posting trend. Days with zero
// entries are absent from trend results rather than zero-filled.
type TrendPoint struct {
	Date  string `json:"date"` // UTC calendar date, YYYY-MM-DD
	Count int    `json:"count"`
}
