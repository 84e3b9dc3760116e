package labelmkr

import (
	"slices"
	"strconv"
	"strings"
)

// Tier identifies the strategy that produced a candidate selector.
type Tier string

// Candidate tiers in generation order.
const (
	TierID             Tier = "id"
	TierDataRole       Tier = "data-role"
	TierDataTestID     Tier = "data-testid"
	TierSingleClass    Tier = "single-class"
	TierDoubleClass    Tier = "double-class"
	TierStructuralPath Tier = "structural-path"
)

// CandidatePlaceholder is shown in place of a candidate when a node yields none.
const CandidatePlaceholder = "(no selector)"

// pathSeparator joins structural path segments root to leaf.
const pathSeparator = " > "

// reserved lists the characters Escape prefixes with a backslash.
const reserved = " !\"#$%&'()*+,./:;<=>?@[\\]^`{|}~"

// Candidate is one synthesized locator. Its priority is its position in the
// list returned by Candidates.
type Candidate struct {
	Text string `json:"text"`
	Tier Tier   `json:"tier"`
}

// Escape makes raw safe to embed as an identifier or quoted attribute value
// inside a locator by prefixing every reserved character with a backslash.
// A leading digit, or a digit after a leading "-", cannot start an
// identifier and is written as a code point escape ("2col" becomes
// `\32 col`). A lone "-" becomes `\-`.
func Escape(raw string) string {
	if !strings.ContainsAny(raw, reserved) && !needsLeadEscape(raw) {
		return raw
	}

	var b strings.Builder
	b.Grow(len(raw) + 8)
	for i, r := range raw {
		switch {
		case strings.ContainsRune(reserved, r):
			b.WriteByte('\\')
			b.WriteRune(r)
		case isDigit(r) && (i == 0 || (i == 1 && raw[0] == '-')):
			b.WriteByte('\\')
			b.WriteString(strconv.FormatInt(int64(r), 16))
			b.WriteByte(' ')
		case r == '-' && raw == "-":
			b.WriteString(`\-`)
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

func needsLeadEscape(raw string) bool {
	switch {
	case raw == "-":
		return true
	case raw == "":
		return false
	case isDigit(rune(raw[0])):
		return true
	default:
		return raw[0] == '-' && len(raw) > 1 && isDigit(rune(raw[1]))
	}
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

// BuildPath returns the structural path locator for n: one segment per
// ancestor level, from just below the document's root container down to n,
// joined with " > ". Each segment is the tag, every class chained as
// ".class", and ":nth-of-type(k)" when the parent has more than one child
// with the same tag. Returns empty string for a non-element.
//
// The path is best-effort unique; ids are not special-cased.
func BuildPath(n Node) string {
	if n == nil || n.Tag() == "" {
		return ""
	}

	var segments []string
	for cur := n; cur != nil && cur.Tag() != "" && !cur.IsRoot(); cur = cur.Parent() {
		segments = append(segments, pathSegment(cur))
	}
	slices.Reverse(segments)

	return strings.Join(segments, pathSeparator)
}

func pathSegment(n Node) string {
	var b strings.Builder
	b.WriteString(Escape(n.Tag()))
	for _, class := range n.Classes() {
		b.WriteByte('.')
		b.WriteString(Escape(class))
	}
	if rank, count := n.SiblingPosition(); count > 1 {
		b.WriteString(":nth-of-type(")
		b.WriteString(strconv.Itoa(rank))
		b.WriteByte(')')
	}
	return b.String()
}

// Candidates returns the deduplicated candidate locators for n, highest
// confidence first:
//
//	tag#id
//	tag[data-role="..."]
//	tag[data-testid="..."]
//	tag.first
//	tag.first.second
//	structural path (always)
//
// Strategies whose attribute is missing are skipped. Returns nil for a
// non-element.
func Candidates(n Node) []Candidate {
	if n == nil || n.Tag() == "" {
		return nil
	}

	tag := n.Tag()
	list := make([]Candidate, 0, 6)

	if id := n.ID(); id != "" {
		list = append(list, Candidate{Text: tag + "#" + Escape(id), Tier: TierID})
	}
	if role, _ := n.Attr("data-role"); role != "" {
		list = append(list, Candidate{Text: attrSelector(tag, "data-role", role), Tier: TierDataRole})
	}
	if testID, _ := n.Attr("data-testid"); testID != "" {
		list = append(list, Candidate{Text: attrSelector(tag, "data-testid", testID), Tier: TierDataTestID})
	}

	classes := n.Classes()
	if len(classes) >= 1 {
		list = append(list, Candidate{Text: tag + "." + Escape(classes[0]), Tier: TierSingleClass})
	}
	if len(classes) >= 2 {
		list = append(list, Candidate{
			Text: tag + "." + Escape(classes[0]) + "." + Escape(classes[1]),
			Tier: TierDoubleClass,
		})
	}

	// The root container itself has no path below it; its tag stands in.
	path := BuildPath(n)
	if path == "" {
		path = Escape(tag)
	}
	list = append(list, Candidate{Text: path, Tier: TierStructuralPath})

	return dedupeCandidates(list)
}

func attrSelector(tag, name, value string) string {
	return tag + "[" + name + `="` + Escape(value) + `"]`
}

// dedupeCandidates keeps the first occurrence of each distinct text.
func dedupeCandidates(list []Candidate) []Candidate {
	seen := make(map[string]bool, len(list))
	out := list[:0]
	for _, c := range list {
		if seen[c.Text] {
			continue
		}
		seen[c.Text] = true
		out = append(out, c)
	}
	return out
}

// CandidateAt returns list[index mod len(list)] for cycling through
// alternatives. Negative indexes wrap from the end. Returns false when the
// list is empty; callers display CandidatePlaceholder instead.
func CandidateAt(list []Candidate, index int) (Candidate, bool) {
	if len(list) == 0 {
		return Candidate{}, false
	}
	i := index % len(list)
	if i < 0 {
		i += len(list)
	}
	return list[i], true
}
