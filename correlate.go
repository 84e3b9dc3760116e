package labelmkr

import "strings"

// Record pairs a code value with the label value found at the same position.
type Record struct {
	Code    string `json:"codeValue"`
	Label   string `json:"labelValue"`
	Ordinal int    `json:"ordinal"`
}

// Correlate zips code and label items positionally. The code list governs
// the record count: a code without a label gets an empty Label, and labels
// beyond the last code are discarded. Ordinals are 1-based.
func Correlate(code, labels []Item) []Record {
	records := make([]Record, len(code))
	for i, c := range code {
		var label string
		if i < len(labels) {
			label = labels[i].Value
		}
		records[i] = Record{
			Code:    c.Value,
			Label:   label,
			Ordinal: i + 1,
		}
	}
	return records
}

// Dropped returns how many label items Correlate discards.
func Dropped(code, labels []Item) int {
	return max(len(labels)-len(code), 0)
}

// Pairing holds the two locators and rules that produce label records.
type Pairing struct {
	CodeLocator  string `json:"codeSelector"`
	CodeRule     Rule   `json:"codeRule"`
	LabelLocator string `json:"labelSelector"`
	LabelRule    Rule   `json:"labelRule"`
}

// Validate returns an error if either locator is blank.
func (p *Pairing) Validate() error {
	if strings.TrimSpace(p.CodeLocator) == "" {
		return Errorf(EINVALID, "code selector required")
	}
	if strings.TrimSpace(p.LabelLocator) == "" {
		return Errorf(EINVALID, "label selector required")
	}
	return nil
}

// Resolve extracts both value lists from doc and correlates them.
// It returns the records and the number of discarded label items.
// A *LocatorSyntaxError from either locator is returned with no records.
func Resolve(doc Document, p Pairing) ([]Record, int, error) {
	if err := p.Validate(); err != nil {
		return nil, 0, err
	}

	code, err := Extract(doc, p.CodeLocator, p.CodeRule)
	if err != nil {
		return nil, 0, err
	}
	labels, err := Extract(doc, p.LabelLocator, p.LabelRule)
	if err != nil {
		return nil, 0, err
	}

	return Correlate(code, labels), Dropped(code, labels), nil
}
