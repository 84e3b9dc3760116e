package labelmkr

import (
	"strconv"
	"strings"
)

// Source names the property of a matched node that becomes its value.
type Source string

// Supported extraction sources.
const (
	SourceText      Source = "text"
	SourceHref      Source = "href"
	SourceSrc       Source = "src"
	SourceValue     Source = "value"
	SourceDataLabel Source = "data-label"
	SourceDataID    Source = "data-id"
	SourceAriaLabel Source = "aria-label"
	SourceTitle     Source = "title"
	SourceAttr      Source = "attr"
)

// Sources lists every supported source in display order.
var Sources = []Source{
	SourceText,
	SourceHref,
	SourceSrc,
	SourceValue,
	SourceDataLabel,
	SourceDataID,
	SourceAriaLabel,
	SourceTitle,
	SourceAttr,
}

// ParseSource converts a source name to a Source.
// An empty name means SourceText.
func ParseSource(name string) (Source, error) {
	if name == "" {
		return SourceText, nil
	}
	for _, s := range Sources {
		if string(s) == name {
			return s, nil
		}
	}
	return "", Errorf(EINVALID, "unknown source %q", name)
}

// Rule describes how to turn a matched node into a string value.
type Rule struct {
	Source Source `json:"source"`

	// AttrName is the attribute read when Source is SourceAttr.
	// An empty AttrName yields empty values.
	AttrName string `json:"attr,omitempty"`
}

// Item is one extracted value.
type Item struct {
	// Value is trimmed of leading and trailing whitespace.
	Value string `json:"value"`

	// Position is a display tag ("#1", "#2", ...). Correlation ignores it.
	Position string `json:"position"`
}

// Value extracts the value of n according to rule. Missing attributes
// yield empty string. Unknown sources fall back to text content.
func Value(n Node, rule Rule) string {
	if n == nil {
		return ""
	}

	switch rule.Source {
	case SourceHref, SourceSrc, SourceValue, SourceDataLabel, SourceDataID, SourceAriaLabel, SourceTitle:
		return attrValue(n, string(rule.Source))
	case SourceAttr:
		if rule.AttrName == "" {
			return ""
		}
		return attrValue(n, rule.AttrName)
	default:
		return strings.TrimSpace(n.Text())
	}
}

func attrValue(n Node, name string) string {
	v, _ := n.Attr(name)
	return strings.TrimSpace(v)
}

// Extract resolves locator against doc and extracts one item per match, in
// document order. A locator matching nothing returns an empty slice. An
// unparsable locator returns the document's *LocatorSyntaxError and no items.
func Extract(doc Document, locator string, rule Rule) ([]Item, error) {
	nodes, err := doc.Query(locator)
	if err != nil {
		return nil, err
	}

	items := make([]Item, len(nodes))
	for i, n := range nodes {
		items[i] = Item{
			Value:    Value(n, rule),
			Position: "#" + strconv.Itoa(i+1),
		}
	}
	return items, nil
}
