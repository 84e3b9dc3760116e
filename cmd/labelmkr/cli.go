package main

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/fwojciec/labelmkr"
	"github.com/fwojciec/labelmkr/collect"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx       context.Context
	Stdout    io.Writer
	Stderr    io.Writer
	Logger    *slog.Logger
	Fetcher   labelmkr.Fetcher
	Parser    labelmkr.Parser
	Profiles  labelmkr.ProfileService
	Results   labelmkr.ResultService
	Collector *collect.Collector
}

// load fetches url and parses the snapshot.
func (d *Dependencies) load(url string) (labelmkr.Document, error) {
	html, err := d.Fetcher.Fetch(d.Ctx, url)
	if err != nil {
		return nil, err
	}
	return d.Parser.Parse(html)
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Verbose     bool          `short:"v" help:"Log fetches and queries to stderr"`
	Static      bool          `short:"s" help:"Fetch pages with plain HTTP instead of headless Chrome"`
	Timeout     time.Duration `default:"30s" help:"Timeout for each page fetch"`
	RenderDelay time.Duration `name:"render-delay" help:"Extra wait after page load before snapshotting (browser only)"`
	DB          string        `name:"db" env:"LABELMKR_DB" help:"SQLite database path"`

	Candidates CandidatesCmd `cmd:"" help:"List selector candidates for an element"`
	Extract    ExtractCmd    `cmd:"" help:"Extract values matched by a selector"`
	Labels     LabelsCmd     `cmd:"" help:"Pair code and label values on one or more pages"`
	Profile    ProfileCmd    `cmd:"" help:"Manage saved selector profiles"`
	Last       LastCmd       `cmd:"" help:"Show the most recent stored results of a profile"`
}

// CandidatesCmd is the "candidates" subcommand.
type CandidatesCmd struct {
	URL   string `arg:"" help:"Page URL"`
	Pick  string `arg:"" help:"Selector locating the element to describe"`
	Nth   int    `default:"1" help:"Which match of the pick selector to describe (1-based)"`
	Index string `help:"Print only the candidate at this index, cycling through the list"`
}

// ExtractCmd is the "extract" subcommand.
type ExtractCmd struct {
	URL     string `arg:"" help:"Page URL"`
	Locator string `arg:"" help:"Selector to resolve"`
	Source  string `default:"text" enum:"text,href,src,value,data-label,data-id,aria-label,title,attr" help:"Value source"`
	Attr    string `help:"Attribute name when --source=attr"`
	Format  string `short:"f" default:"text" enum:"text,table,json" help:"Output format"`
}

// LabelsCmd is the "labels" subcommand.
type LabelsCmd struct {
	URLs []string `arg:"" name:"url" help:"Page URLs"`

	Profile     string `short:"p" help:"Use a saved profile" xor:"pairing"`
	Code        string `help:"Code selector" xor:"pairing"`
	Label       string `help:"Label selector"`
	CodeSource  string `default:"text" enum:"text,href,src,value,data-label,data-id,aria-label,title,attr" help:"Code value source"`
	CodeAttr    string `help:"Code attribute when --code-source=attr"`
	LabelSource string `default:"text" enum:"text,href,src,value,data-label,data-id,aria-label,title,attr" help:"Label value source"`
	LabelAttr   string `help:"Label attribute when --label-source=attr"`

	Save        bool    `default:"true" negatable:"" help:"Store results when using a profile"`
	Format      string  `short:"f" default:"text" enum:"text,table,json,csv,xlsx" help:"Output format"`
	Output      string  `short:"o" help:"Write output to a file instead of stdout (required for xlsx)"`
	Only        string  `help:"Output only these record ordinals, e.g. 1,3-5"`
	Concurrency int     `short:"c" default:"4" help:"Pages fetched at once"`
	RPS         float64 `name:"rps" default:"1" help:"Requests per second per host (0 disables)"`
	Robots      bool    `help:"Skip pages disallowed by the site's robots.txt"`
	Snapshots   string  `help:"Directory to keep fetched HTML snapshots in"`
}

// ProfileCmd groups the profile subcommands.
type ProfileCmd struct {
	Save   ProfileSaveCmd   `cmd:"" help:"Create or replace a profile"`
	List   ProfileListCmd   `cmd:"" help:"List profiles"`
	Show   ProfileShowCmd   `cmd:"" help:"Show a profile"`
	Delete ProfileDeleteCmd `cmd:"" help:"Delete a profile and its stored results"`
	Export ProfileExportCmd `cmd:"" help:"Write a profile as JSON or YAML"`
	Import ProfileImportCmd `cmd:"" help:"Read a profile from a JSON or YAML file"`
}

// ProfileSaveCmd is the "profile save" subcommand.
type ProfileSaveCmd struct {
	Name        string `arg:"" help:"Profile name"`
	Code        string `required:"" help:"Code selector"`
	Label       string `required:"" help:"Label selector"`
	CodeSource  string `default:"text" enum:"text,href,src,value,data-label,data-id,aria-label,title,attr" help:"Code value source"`
	CodeAttr    string `help:"Code attribute when --code-source=attr"`
	LabelSource string `default:"text" enum:"text,href,src,value,data-label,data-id,aria-label,title,attr" help:"Label value source"`
	LabelAttr   string `help:"Label attribute when --label-source=attr"`
}

// ProfileListCmd is the "profile list" subcommand.
type ProfileListCmd struct{}

// ProfileShowCmd is the "profile show" subcommand.
type ProfileShowCmd struct {
	Name string `arg:"" help:"Profile name"`
}

// ProfileDeleteCmd is the "profile delete" subcommand.
type ProfileDeleteCmd struct {
	Name  string `arg:"" help:"Profile name"`
	Force bool   `help:"Confirm deletion"`
}

// ProfileExportCmd is the "profile export" subcommand.
type ProfileExportCmd struct {
	Name   string `arg:"" help:"Profile name"`
	Output string `short:"o" help:"Write to a file instead of stdout; .yaml or .yml selects YAML"`
	Format string `short:"f" default:"json" enum:"json,yaml" help:"Format when writing to stdout"`
}

// ProfileImportCmd is the "profile import" subcommand.
type ProfileImportCmd struct {
	File  string `arg:"" type:"existingfile" help:"Profile JSON or YAML file"`
	Name  string `help:"Override the profile name from the file"`
	Force bool   `help:"Replace an existing profile with the same name"`
}

// LastCmd is the "last" subcommand.
type LastCmd struct {
	Profile string `arg:"" help:"Profile name"`
	Format  string `short:"f" default:"text" enum:"text,table,json,csv,xlsx" help:"Output format"`
	Output  string `short:"o" help:"Write output to a file instead of stdout (required for xlsx)"`
	Only    string `help:"Output only these record ordinals, e.g. 1,3-5"`
}
