package cmd

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"potluck/config"
	"potluck/edamam"
	"potluck/tui"
)

type flags struct {
	Query    string
	PoolSize int
	MaxPages int
	WordWrap int
	Timeout  time.Duration
}

func NewRootCmd() *cobra.Command {
	f := &flags{}

	cmd := &cobra.Command{
		Use:   "potluck",
		Short: "Serve a random recipe from an Edamam search",
		Long: "Searches the Edamam recipe database, pools the paginated results in memory,\n" +
			"and serves one uniformly random recipe at a time. Re-rolling never refetches.\n\n" +
			"Requires EDAMAM_APP_ID and EDAMAM_APP_KEY in the environment;\n" +
			"EDAMAM_ACCOUNT_USER is attached as a request header when set.",
		Example: `  # Random recipe for the default query
  potluck

  # Random salad recipe
  potluck -q salad

  # Smaller pool, snappier searches
  potluck -q "weeknight pasta" --pool-size 40 --max-pages 2`,
		RunE: func(c *cobra.Command, args []string) error {
			return run(c.Context(), f)
		},
	}

	cmd.Flags().StringVarP(&f.Query, "query", "q", "chicken", "Initial search query")
	cmd.Flags().IntVar(&f.PoolSize, "pool-size", 80, "Stop fetching once this many hits are pooled")
	cmd.Flags().IntVar(&f.MaxPages, "max-pages", 5, "Maximum result pages to fetch per search")
	cmd.Flags().IntVarP(&f.WordWrap, "word-wrap", "w", 80, "Word wrap width for the recipe card")
	cmd.Flags().DurationVar(&f.Timeout, "timeout", 15*time.Second, "Per-request timeout")

	return cmd
}

func run(ctx context.Context, f *flags) error {
	creds := config.FromEnv()
	if err := creds.Validate(); err != nil {
		return err
	}

	opts := tui.Options{
		Edamam: edamam.Options{
			Credentials: creds,
			MaxPages:    f.MaxPages,
			PoolSize:    f.PoolSize,
			Timeout:     f.Timeout,
		},
		Query:    f.Query,
		WordWrap: f.WordWrap,
	}

	return tui.Run(ctx, opts)
}
