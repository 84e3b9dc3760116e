package main

import (
	"fmt"

	"github.com/fwojciec/labelmkr"
	"github.com/fwojciec/labelmkr/collect"
)

// Run executes the labels command.
func (c *LabelsCmd) Run(deps *Dependencies) error {
	if err := checkOutput(c.Format, c.Output); err != nil {
		return fail(deps, err)
	}
	only, err := labelmkr.ParseSelection(c.Only)
	if err != nil {
		return fail(deps, err)
	}

	var profile *labelmkr.Profile
	var pairing labelmkr.Pairing
	switch {
	case c.Profile != "":
		p, err := findProfile(deps, c.Profile)
		if err != nil {
			return fail(deps, err)
		}
		profile, pairing = p, p.Pairing
	case c.Code == "" && c.Label == "":
		return fail(deps, labelmkr.Errorf(labelmkr.EINVALID, "either --profile or --code and --label required"))
	default:
		p, err := pairingFromFlags(c.Code, c.CodeSource, c.CodeAttr, c.Label, c.LabelSource, c.LabelAttr)
		if err != nil {
			return fail(deps, err)
		}
		pairing = p
	}

	batch, err := deps.Collector.Collect(deps.Ctx, c.URLs, pairing, c.progress(deps))
	if err != nil {
		return fail(deps, err)
	}

	pages := make([]pageOutput, len(batch.Pages))
	for i, page := range batch.Pages {
		pages[i] = pageOutput{
			URL:     page.URL,
			Records: only.Filter(page.Records),
			Dropped: page.Dropped,
			Hash:    page.Hash,
		}
		if page.Err != nil {
			pages[i].Error = describe(page.Err)
			continue
		}
		if profile != nil {
			unchanged, err := c.store(deps, profile, page)
			if err != nil {
				return fail(deps, err)
			}
			pages[i].Unchanged = unchanged
		}
	}

	if emptyPages(pages) && c.Format != formatJSON {
		fmt.Fprintln(deps.Stdout, noMatches)
		return nil
	}
	if err := emitPages(deps, c.Format, c.Output, pages); err != nil {
		return fail(deps, err)
	}

	fmt.Fprintf(deps.Stderr, "Collected %d records from %d pages\n", batch.Records(), len(pages)-batch.Failed())
	if failed := batch.Failed(); failed > 0 {
		warnColor.Fprintf(deps.Stderr, "%d of %d pages failed\n", failed, len(pages))
		if failed == len(pages) {
			return fmt.Errorf("all %d pages failed", failed)
		}
	}
	return nil
}

// store compares page with the latest stored result for the same URL and
// saves it when saving is enabled. It reports whether the records are
// unchanged since that result.
func (c *LabelsCmd) store(deps *Dependencies, profile *labelmkr.Profile, page collect.Page) (bool, error) {
	previous, err := deps.Results.FindResults(deps.Ctx, labelmkr.ResultFilter{
		ProfileID: &profile.ID,
		SourceURL: &page.URL,
		Limit:     1,
	})
	if err != nil {
		return false, err
	}
	unchanged := len(previous) > 0 && previous[0].Hash == page.Hash

	if !c.Save {
		return unchanged, nil
	}
	err = deps.Results.CreateResult(deps.Ctx, &labelmkr.Result{
		ProfileID: profile.ID,
		SourceURL: page.URL,
		Records:   page.Records,
		Hash:      page.Hash,
	})
	return unchanged, err
}

// progress reports each finished page on stderr.
func (c *LabelsCmd) progress(deps *Dependencies) collect.ProgressFunc {
	return func(e collect.ProgressEvent) {
		switch e.Type {
		case collect.ProgressCompleted:
			fmt.Fprintf(deps.Stderr, "[%d/%d] %s (%d records, %s)\n",
				e.Completed, e.Total, collect.TruncateURL(e.URL, 60), e.Records, collect.FormatBytes(e.Bytes))
		case collect.ProgressFailed:
			fmt.Fprintf(deps.Stderr, "[%d/%d] %s %s %s\n", e.Completed, e.Total, collect.TruncateURL(e.URL, 60), warnColor.Sprint("failed:"), describe(e.Error))
		}
	}
}
