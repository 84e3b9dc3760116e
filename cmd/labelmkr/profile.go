package main

import (
	"fmt"
	"strconv"

	"github.com/fwojciec/labelmkr"
	"github.com/fwojciec/labelmkr/fs"
	"github.com/olekukonko/tablewriter"
)

// Run executes the profile save command. An existing profile with the same
// name is replaced.
func (c *ProfileSaveCmd) Run(deps *Dependencies) error {
	pairing, err := pairingFromFlags(c.Code, c.CodeSource, c.CodeAttr, c.Label, c.LabelSource, c.LabelAttr)
	if err != nil {
		return fail(deps, err)
	}

	if err := upsertProfile(deps, &labelmkr.Profile{Name: c.Name, Pairing: pairing}, true); err != nil {
		return fail(deps, err)
	}

	fmt.Fprintf(deps.Stdout, "Saved profile %q\n", c.Name)
	return nil
}

// upsertProfile creates profile, or replaces the pairing of an existing
// profile with the same name when replace is set.
func upsertProfile(deps *Dependencies, profile *labelmkr.Profile, replace bool) error {
	existing, err := deps.Profiles.FindProfiles(deps.Ctx, labelmkr.ProfileFilter{Name: &profile.Name})
	if err != nil {
		return err
	}
	if len(existing) == 0 {
		return deps.Profiles.CreateProfile(deps.Ctx, profile)
	}
	if !replace {
		return labelmkr.Errorf(labelmkr.EINVALID, "profile %q already exists. Use --force to replace it", profile.Name)
	}
	_, err = deps.Profiles.UpdateProfile(deps.Ctx, existing[0].ID, labelmkr.ProfileUpdate{Pairing: &profile.Pairing})
	return err
}

// Run executes the profile list command.
func (c *ProfileListCmd) Run(deps *Dependencies) error {
	profiles, err := deps.Profiles.FindProfiles(deps.Ctx, labelmkr.ProfileFilter{})
	if err != nil {
		return fail(deps, err)
	}

	if len(profiles) == 0 {
		fmt.Fprintln(deps.Stdout, "No profiles found. Use 'labelmkr profile save' to create one.")
		return nil
	}

	table := tablewriter.NewWriter(deps.Stdout)
	table.SetHeader([]string{"Name", "Code", "Label", "Updated"})
	table.SetAutoWrapText(false)
	for _, p := range profiles {
		table.Append([]string{
			p.Name,
			describeRule(p.Pairing.CodeLocator, p.Pairing.CodeRule),
			describeRule(p.Pairing.LabelLocator, p.Pairing.LabelRule),
			p.UpdatedAt.Local().Format("2006-01-02 15:04"),
		})
	}
	table.Render()
	return nil
}

// describeRule renders a locator with its source, omitting the default.
func describeRule(locator string, rule labelmkr.Rule) string {
	switch {
	case rule.Source == labelmkr.SourceAttr:
		return locator + " @" + rule.AttrName
	case rule.Source != "" && rule.Source != labelmkr.SourceText:
		return locator + " @" + string(rule.Source)
	}
	return locator
}

// Run executes the profile show command.
func (c *ProfileShowCmd) Run(deps *Dependencies) error {
	profile, err := findProfile(deps, c.Name)
	if err != nil {
		return fail(deps, err)
	}

	p := profile.Pairing
	fields := [][2]string{
		{"Name", profile.Name},
		{"ID", profile.ID},
		{"Code selector", p.CodeLocator},
		{"Code source", sourceLabel(p.CodeRule)},
		{"Label selector", p.LabelLocator},
		{"Label source", sourceLabel(p.LabelRule)},
		{"Created", profile.CreatedAt.Local().Format("2006-01-02 15:04:05")},
		{"Updated", profile.UpdatedAt.Local().Format("2006-01-02 15:04:05")},
	}

	if deps.Results != nil {
		results, err := deps.Results.FindResults(deps.Ctx, labelmkr.ResultFilter{ProfileID: &profile.ID})
		if err != nil {
			return fail(deps, err)
		}
		fields = append(fields, [2]string{"Stored results", strconv.Itoa(len(results))})
	}

	for _, f := range fields {
		fmt.Fprintf(deps.Stdout, "%-16s%s\n", f[0]+":", f[1])
	}
	return nil
}

func sourceLabel(rule labelmkr.Rule) string {
	if rule.Source == labelmkr.SourceAttr {
		return fmt.Sprintf("attr (%s)", rule.AttrName)
	}
	if rule.Source == "" {
		return string(labelmkr.SourceText)
	}
	return string(rule.Source)
}

// Run executes the profile delete command.
func (c *ProfileDeleteCmd) Run(deps *Dependencies) error {
	if !c.Force {
		return fail(deps, labelmkr.Errorf(labelmkr.EINVALID, "use --force to confirm deletion"))
	}

	profile, err := findProfile(deps, c.Name)
	if err != nil {
		return fail(deps, err)
	}

	if err := deps.Profiles.DeleteProfile(deps.Ctx, profile.ID); err != nil {
		return fail(deps, err)
	}

	fmt.Fprintf(deps.Stdout, "Deleted profile %q\n", profile.Name)
	return nil
}

// Run executes the profile export command.
func (c *ProfileExportCmd) Run(deps *Dependencies) error {
	profile, err := findProfile(deps, c.Name)
	if err != nil {
		return fail(deps, err)
	}

	if c.Output == "" {
		if c.Format == "yaml" {
			return fs.WriteProfileYAML(deps.Stdout, profile)
		}
		return fs.WriteProfile(deps.Stdout, profile)
	}
	if err := fs.WriteProfileFile(c.Output, profile); err != nil {
		return fail(deps, err)
	}
	fmt.Fprintf(deps.Stdout, "Exported profile %q to %s\n", profile.Name, c.Output)
	return nil
}

// Run executes the profile import command.
func (c *ProfileImportCmd) Run(deps *Dependencies) error {
	profile, err := fs.ReadProfileFile(c.File)
	if err != nil {
		return fail(deps, err)
	}
	if c.Name != "" {
		profile.Name = c.Name
	}

	if err := upsertProfile(deps, profile, c.Force); err != nil {
		return fail(deps, err)
	}

	fmt.Fprintf(deps.Stdout, "Imported profile %q\n", profile.Name)
	return nil
}
