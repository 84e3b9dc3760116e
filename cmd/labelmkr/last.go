package main

import (
	"fmt"

	"github.com/fwojciec/labelmkr"
)

// Run executes the last command.
func (c *LastCmd) Run(deps *Dependencies) error {
	if err := checkOutput(c.Format, c.Output); err != nil {
		return fail(deps, err)
	}
	only, err := labelmkr.ParseSelection(c.Only)
	if err != nil {
		return fail(deps, err)
	}

	profile, err := findProfile(deps, c.Profile)
	if err != nil {
		return fail(deps, err)
	}

	results, err := deps.Results.FindResults(deps.Ctx, labelmkr.ResultFilter{ProfileID: &profile.ID})
	if err != nil {
		return fail(deps, err)
	}

	// Results arrive newest first; keep the first seen per URL.
	seen := make(map[string]bool)
	var pages []pageOutput
	for _, r := range results {
		if seen[r.SourceURL] {
			continue
		}
		seen[r.SourceURL] = true
		createdAt := r.CreatedAt
		pages = append(pages, pageOutput{
			URL:       r.SourceURL,
			Records:   only.Filter(r.Records),
			Hash:      r.Hash,
			FetchedAt: &createdAt,
		})
	}

	if len(pages) == 0 {
		fmt.Fprintf(deps.Stdout, "No stored results for profile %q. Use 'labelmkr labels --profile %s URL' to collect some.\n", profile.Name, profile.Name)
		return nil
	}
	if emptyPages(pages) && c.Format != formatJSON {
		fmt.Fprintln(deps.Stdout, noMatches)
		return nil
	}
	if err := emitPages(deps, c.Format, c.Output, pages); err != nil {
		return fail(deps, err)
	}
	return nil
}
