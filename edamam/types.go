package edamam

import "potluck/recipe"

// searchResponse is the slice of the Edamam v2 payload this client consumes.
type searchResponse struct {
	Hits  []Hit `json:"hits"`
	Links struct {
		Next struct {
			Href string `json:"href"`
		} `json:"next"`
	} `json:"_links"`
}

// Hit is a single raw search hit. The recipe payload is API-defined and
// may be absent entirely.
type Hit struct {
	Recipe *rawRecipe `json:"recipe"`
}

type rawRecipe struct {
	Label  string `json:"label"`
	Image  string `json:"image"`
	URL    string `json:"url"`
	Source string `json:"source"`
}

// Normalize maps a raw hit to the internal recipe shape. It is total over
// any hit the API can return: missing fields get defaults, and the only
// rejection is an absent recipe payload.
func (h Hit) Normalize() (recipe.Recipe, bool) {
	if h.Recipe == nil {
		return recipe.Recipe{}, false
	}
	r := recipe.Recipe{
		Title:  h.Recipe.Label,
		Image:  h.Recipe.Image,
		URL:    h.Recipe.URL,
		Source: h.Recipe.Source,
	}
	if r.Title == "" {
		r.Title = "Untitled"
	}
	if r.URL == "" {
		r.URL = "#"
	}
	return r, true
}
