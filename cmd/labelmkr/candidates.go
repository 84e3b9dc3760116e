package main

import (
	"fmt"
	"strconv"

	"github.com/fwojciec/labelmkr"
	"github.com/olekukonko/tablewriter"
)

// Run executes the candidates command.
func (c *CandidatesCmd) Run(deps *Dependencies) error {
	doc, err := deps.load(c.URL)
	if err != nil {
		return fail(deps, err)
	}

	picked, err := doc.Query(c.Pick)
	if err != nil {
		return fail(deps, err)
	}
	if len(picked) == 0 {
		fmt.Fprintln(deps.Stdout, noMatches)
		return nil
	}
	if c.Nth < 1 || c.Nth > len(picked) {
		return fail(deps, labelmkr.Errorf(labelmkr.EINVALID,
			"--nth %d out of range: %q matches %d elements", c.Nth, c.Pick, len(picked)))
	}

	candidates := labelmkr.Candidates(picked[c.Nth-1])

	if c.Index != "" {
		index, err := strconv.Atoi(c.Index)
		if err != nil {
			return fail(deps, labelmkr.Errorf(labelmkr.EINVALID, "--index must be an integer, got %q", c.Index))
		}
		candidate, ok := labelmkr.CandidateAt(candidates, index)
		if !ok {
			fmt.Fprintln(deps.Stdout, labelmkr.CandidatePlaceholder)
			return nil
		}
		fmt.Fprintln(deps.Stdout, candidate.Text)
		return nil
	}

	table := tablewriter.NewWriter(deps.Stdout)
	table.SetHeader([]string{"#", "Tier", "Selector", "Matches"})
	table.SetAutoWrapText(false)
	for i, candidate := range candidates {
		matches := "?"
		if nodes, err := doc.Query(candidate.Text); err == nil {
			matches = strconv.Itoa(len(nodes))
		} else {
			deps.Logger.Warn("candidate does not parse", "selector", candidate.Text, "err", err)
		}
		table.Append([]string{strconv.Itoa(i), string(candidate.Tier), candidate.Text, matches})
	}
	table.Render()
	return nil
}
