package tui

import "potluck/recipe"

// poolBuiltMsg carries the result of one search's paginated fetch. gen ties
// the result back to the search that dispatched it; results from superseded
// searches are dropped on arrival.
type poolBuiltMsg struct {
	gen  int
	pool []recipe.Recipe
	err  error
}

// pageFetchedMsg reports per-page progress while a search is in flight.
type pageFetchedMsg struct {
	page int
	hits int
}
