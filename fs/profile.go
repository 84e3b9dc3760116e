package fs

import (
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/fwojciec/labelmkr"
	"gopkg.in/yaml.v3"
)

// profileFile is the on-disk export format. It carries only the portable
// parts of a profile; IDs and timestamps belong to the database.
type profileFile struct {
	Name          string `json:"name" yaml:"name"`
	CodeSelector  string `json:"codeSelector" yaml:"codeSelector"`
	CodeSource    string `json:"codeSource,omitempty" yaml:"codeSource,omitempty"`
	CodeAttr      string `json:"codeAttr,omitempty" yaml:"codeAttr,omitempty"`
	LabelSelector string `json:"labelSelector" yaml:"labelSelector"`
	LabelSource   string `json:"labelSource,omitempty" yaml:"labelSource,omitempty"`
	LabelAttr     string `json:"labelAttr,omitempty" yaml:"labelAttr,omitempty"`

	// Settings exported by the browser extension name the code side "qr"
	// and the label side "title". Read only.
	QRSelector    string `json:"qrSelector,omitempty" yaml:"qrSelector,omitempty"`
	QRSource      string `json:"qrSource,omitempty" yaml:"qrSource,omitempty"`
	QRAttr        string `json:"qrAttr,omitempty" yaml:"qrAttr,omitempty"`
	TitleSelector string `json:"titleSelector,omitempty" yaml:"titleSelector,omitempty"`
	TitleSource   string `json:"titleSource,omitempty" yaml:"titleSource,omitempty"`
	TitleAttr     string `json:"titleAttr,omitempty" yaml:"titleAttr,omitempty"`
}

func newProfileFile(profile *labelmkr.Profile) profileFile {
	p := profile.Pairing
	return profileFile{
		Name:          profile.Name,
		CodeSelector:  p.CodeLocator,
		CodeSource:    string(p.CodeRule.Source),
		CodeAttr:      p.CodeRule.AttrName,
		LabelSelector: p.LabelLocator,
		LabelSource:   string(p.LabelRule.Source),
		LabelAttr:     p.LabelRule.AttrName,
	}
}

// profile converts f to a validated profile. Missing sources default to
// text; unknown sources are rejected. Extension settings keys fill in
// whatever the native keys leave empty. A file without a name yields a
// profile with an empty Name for the caller to fill.
func (f profileFile) profile() (*labelmkr.Profile, error) {
	f = f.withAliases()

	codeSource, err := labelmkr.ParseSource(f.CodeSource)
	if err != nil {
		return nil, err
	}
	labelSource, err := labelmkr.ParseSource(f.LabelSource)
	if err != nil {
		return nil, err
	}

	profile := &labelmkr.Profile{
		Name: f.Name,
		Pairing: labelmkr.Pairing{
			CodeLocator:  f.CodeSelector,
			CodeRule:     labelmkr.Rule{Source: codeSource, AttrName: f.CodeAttr},
			LabelLocator: f.LabelSelector,
			LabelRule:    labelmkr.Rule{Source: labelSource, AttrName: f.LabelAttr},
		},
	}
	if profile.Name == "" {
		err = profile.Pairing.Validate()
	} else {
		err = profile.Validate()
	}
	if err != nil {
		return nil, err
	}
	return profile, nil
}

func (f profileFile) withAliases() profileFile {
	fill := func(dst *string, src string) {
		if *dst == "" {
			*dst = src
		}
	}
	fill(&f.CodeSelector, f.QRSelector)
	fill(&f.CodeSource, f.QRSource)
	fill(&f.CodeAttr, f.QRAttr)
	fill(&f.LabelSelector, f.TitleSelector)
	fill(&f.LabelSource, f.TitleSource)
	fill(&f.LabelAttr, f.TitleAttr)
	return f
}

// WriteProfile encodes the portable fields of profile as indented JSON.
func WriteProfile(w io.Writer, profile *labelmkr.Profile) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(newProfileFile(profile))
}

// ReadProfile decodes a profile written by WriteProfile.
func ReadProfile(r io.Reader) (*labelmkr.Profile, error) {
	var f profileFile
	if err := json.NewDecoder(r).Decode(&f); err != nil {
		return nil, labelmkr.Errorf(labelmkr.EINVALID, "invalid profile file: %v", err)
	}
	return f.profile()
}

// WriteProfileYAML encodes the portable fields of profile as YAML.
func WriteProfileYAML(w io.Writer, profile *labelmkr.Profile) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(newProfileFile(profile)); err != nil {
		return err
	}
	return enc.Close()
}

// ReadProfileYAML decodes a profile written by WriteProfileYAML.
func ReadProfileYAML(r io.Reader) (*labelmkr.Profile, error) {
	var f profileFile
	if err := yaml.NewDecoder(r).Decode(&f); err != nil {
		return nil, labelmkr.Errorf(labelmkr.EINVALID, "invalid profile file: %v", err)
	}
	return f.profile()
}

// IsYAML reports whether path has a .yaml or .yml extension.
func IsYAML(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return true
	}
	return false
}

// WriteProfileFile writes profile to path through a temporary file, so a
// failed export never leaves a truncated file behind. Paths ending in .yaml
// or .yml get YAML, everything else JSON.
func WriteProfileFile(path string, profile *labelmkr.Profile) (err error) {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".profile-*")
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			tmp.Close()
			os.Remove(tmp.Name())
		}
	}()

	write := WriteProfile
	if IsYAML(path) {
		write = WriteProfileYAML
	}
	if err = write(tmp, profile); err != nil {
		return err
	}
	if err = tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}

// ReadProfileFile reads a profile export from path, choosing the decoder
// by extension like WriteProfileFile. A file without a name is named after
// the file.
func ReadProfileFile(path string) (*labelmkr.Profile, error) {
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return nil, labelmkr.Errorf(labelmkr.ENOTFOUND, "profile file not found: %s", path)
	}
	if err != nil {
		return nil, err
	}
	defer f.Close()

	read := ReadProfile
	if IsYAML(path) {
		read = ReadProfileYAML
	}
	profile, err := read(f)
	if err != nil {
		return nil, err
	}
	if profile.Name == "" {
		base := filepath.Base(path)
		profile.Name = strings.TrimSuffix(base, filepath.Ext(base))
	}
	return profile, nil
}
