package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/fwojciec/labelmkr"
)

// Colors for stderr messages. color disables them when stdout is not a
// terminal or NO_COLOR is set.
var (
	errorColor = color.New(color.FgHiRed, color.Bold)
	warnColor  = color.New(color.FgYellow)
)

// describe returns a message for err suitable for a terminal. Errors from
// outside the application (network, filesystem) keep their own text.
func describe(err error) string {
	if labelmkr.ErrorCode(err) == labelmkr.EINTERNAL {
		return err.Error()
	}
	return labelmkr.ErrorMessage(err)
}

// fail prints err to stderr and returns it.
func fail(deps *Dependencies, err error) error {
	fmt.Fprintf(deps.Stderr, "%s %s\n", errorColor.Sprint("error:"), describe(err))
	return err
}

// findProfile looks a profile up by name.
func findProfile(deps *Dependencies, name string) (*labelmkr.Profile, error) {
	profiles, err := deps.Profiles.FindProfiles(deps.Ctx, labelmkr.ProfileFilter{Name: &name})
	if err != nil {
		return nil, err
	}
	if len(profiles) == 0 {
		return nil, labelmkr.Errorf(labelmkr.ENOTFOUND, "profile %q not found. Use 'labelmkr profile list' to see saved profiles", name)
	}
	return profiles[0], nil
}

// pairingFromFlags builds a pairing from selector and source flags.
func pairingFromFlags(code, codeSource, codeAttr, label, labelSource, labelAttr string) (labelmkr.Pairing, error) {
	cs, err := labelmkr.ParseSource(codeSource)
	if err != nil {
		return labelmkr.Pairing{}, err
	}
	ls, err := labelmkr.ParseSource(labelSource)
	if err != nil {
		return labelmkr.Pairing{}, err
	}
	p := labelmkr.Pairing{
		CodeLocator:  code,
		CodeRule:     labelmkr.Rule{Source: cs, AttrName: codeAttr},
		LabelLocator: label,
		LabelRule:    labelmkr.Rule{Source: ls, AttrName: labelAttr},
	}
	if err := p.Validate(); err != nil {
		return labelmkr.Pairing{}, err
	}
	return p, nil
}
