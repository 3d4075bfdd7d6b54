package main

import (
	"fmt"

	"github.com/fwojciec/docbot"
)

// Run executes the search command.
func (c *SearchCmd) Run(deps *Dependencies) error {
	results, err := deps.Searcher.Search(deps.Ctx, c.Query, c.K)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", docbot.ErrorMessage(err))
		return err
	}

	if len(results) == 0 {
		fmt.Fprintln(deps.Stdout, "No relevant content found.")
		return nil
	}

	for i, r := range results {
		title := r.Title
		if title == "" {
			title = r.URL
		}
		fmt.Fprintf(deps.Stdout, "%d. [%.4f] %s\n", i+1, r.Score, title)
		fmt.Fprintf(deps.Stdout, "   %s\n", r.URL)
		fmt.Fprintf(deps.Stdout, "   %s\n\n", docbot.Excerpt(r.Text, 200))
	}
	return nil
}
