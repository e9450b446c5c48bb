// Package recipe holds the normalized recipe shape and the picker that
// serves one random recipe at a time from an in-memory pool.
package recipe

// Recipe is the normalized view of a single search hit. Title and URL are
// always non-empty after normalization; Image and Source may be empty.
type Recipe struct {
	Title  string
	Image  string
	URL    string
	Source string
}
