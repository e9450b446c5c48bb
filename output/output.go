// Package output renders recipe cards as markdown for the terminal.
package output

import (
	"fmt"
	"strings"

	"charm.land/glamour/v2"

	"potluck/recipe"
)

// CardMarkdown builds the markdown card for a single recipe: title, image
// (or a "No image" placeholder), the outbound link, and the source
// attribution when present.
func CardMarkdown(r recipe.Recipe) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", r.Title)
	if r.Image != "" {
		fmt.Fprintf(&b, "![%s](%s)\n\n", r.Title, r.Image)
	} else {
		b.WriteString("*No image*\n\n")
	}
	fmt.Fprintf(&b, "[View full recipe](%s)\n", r.URL)
	if r.Source != "" {
		fmt.Fprintf(&b, "\nfrom %s\n", r.Source)
	}
	return b.String()
}

// RenderTerminal renders the recipe card for plain stdout output.
func RenderTerminal(r recipe.Recipe, wordWrap int) (string, error) {
	renderer, err := glamour.NewTermRenderer(
		glamour.WithEnvironmentConfig(),
		glamour.WithWordWrap(wordWrap),
	)
	if err != nil {
		return "", fmt.Errorf("failed to create renderer: %w", err)
	}
	out, err := renderer.Render(CardMarkdown(r))
	if err != nil {
		return "", fmt.Errorf("failed to render recipe card: %w", err)
	}
	return out, nil
}
