package main

import (
	"fmt"

	"github.com/fwojciec/labelmkr"
)

// Run executes the extract command.
func (c *ExtractCmd) Run(deps *Dependencies) error {
	source, err := labelmkr.ParseSource(c.Source)
	if err != nil {
		return fail(deps, err)
	}

	doc, err := deps.load(c.URL)
	if err != nil {
		return fail(deps, err)
	}

	items, err := labelmkr.Extract(doc, c.Locator, labelmkr.Rule{Source: source, AttrName: c.Attr})
	if err != nil {
		return fail(deps, err)
	}

	if len(items) == 0 && c.Format != formatJSON {
		fmt.Fprintln(deps.Stdout, noMatches)
		return nil
	}
	return writeItems(deps.Stdout, c.Format, items)
}
