package labelmkr_test

import (
	"strings"
	"testing"

	"github.com/fwojciec/labelmkr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEscape(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		raw  string
		want string
	}{
		{name: "empty string", raw: "", want: ""},
		{name: "plain identifier", raw: "product-code_1", want: "product-code_1"},
		{name: "space", raw: "a b", want: `a\ b`},
		{name: "colon and dot", raw: "x:y.z", want: `x\:y\.z`},
		{name: "brackets", raw: "items[0]", want: `items\[0\]`},
		{name: "quotes", raw: `say "hi"`, want: `say\ \"hi\"`},
		{name: "backslash", raw: `a\b`, want: `a\\b`},
		{name: "non-ascii untouched", raw: "größe", want: "größe"},
		{name: "leading digit", raw: "2col", want: `\32 col`},
		{name: "digit only", raw: "42", want: `\34 2`},
		{name: "dash then digit", raw: "-3x", want: `-\33 x`},
		{name: "lone dash", raw: "-", want: `\-`},
		{name: "inner digits untouched", raw: "col-2", want: "col-2"},
		{name: "leading digit with reserved", raw: "1:2", want: `\31 \:2`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, labelmkr.Escape(tt.raw))
		})
	}
}

func TestEscape_LeavesNoUnescapedReservedCharacter(t *testing.T) {
	t.Parallel()

	reserved := " !\"#$%&'()*+,./:;<=>?@[\\]^`{|}~"
	inputs := []string{
		reserved,
		"a" + reserved + "z",
		`\\already\ escaped`,
		"#id.class > span:nth-of-type(2)",
		"2col",
		"-9 lives",
	}

	for _, raw := range inputs {
		out := labelmkr.Escape(raw)
		runes := []rune(out)
		for i := 0; i < len(runes); i++ {
			if runes[i] == '\\' {
				i++
				require.Less(t, i, len(runes), "dangling backslash in %q", out)
				if isHex(runes[i]) {
					// Code point escape: hex digits and one terminating space.
					for i+1 < len(runes) && isHex(runes[i+1]) {
						i++
					}
					require.Less(t, i+1, len(runes), "unterminated code point in %q", out)
					i++
					assert.Equal(t, ' ', runes[i], "code point escape in %q", out)
				}
				continue
			}
			assert.NotContains(t, reserved, string(runes[i]), "unescaped %q in %q", runes[i], out)
		}
	}
}

func isHex(r rune) bool {
	return strings.ContainsRune("0123456789abcdefABCDEF", r)
}

func TestBuildPath(t *testing.T) {
	t.Parallel()

	t.Run("adds nth-of-type for same-tag siblings", func(t *testing.T) {
		t.Parallel()

		second := el("li", nil)
		body(el("ul", nil, el("li", nil), second, el("li", nil)))

		assert.Equal(t, "ul > li:nth-of-type(2)", labelmkr.BuildPath(second))
	})

	t.Run("omits nth-of-type for an only child of its tag", func(t *testing.T) {
		t.Parallel()

		span := el("span", nil)
		body(el("div", nil, span, el("em", nil)))

		assert.Equal(t, "div > span", labelmkr.BuildPath(span))
	})

	t.Run("chains every escaped class", func(t *testing.T) {
		t.Parallel()

		n := el("a", []string{"class=btn md:large primary"})
		body(el("nav", nil, n))

		assert.Equal(t, `nav > a.btn.md\:large.primary`, labelmkr.BuildPath(n))
	})

	t.Run("scopes sibling rank to the immediate parent", func(t *testing.T) {
		t.Parallel()

		root, first := rowsFixture()
		require.NotNil(t, root)

		assert.Equal(t,
			"div.row:nth-of-type(1) > span.code:nth-of-type(1)",
			labelmkr.BuildPath(first))

		label := root.children[2].children[1]
		assert.Equal(t,
			"div.row:nth-of-type(3) > span.label:nth-of-type(2)",
			labelmkr.BuildPath(label))
	})

	t.Run("escapes classes that start with a digit", func(t *testing.T) {
		t.Parallel()

		n := el("li", []string{"class=2col item"})
		body(el("ul", nil, n))

		assert.Equal(t, `ul > li.\32 col.item`, labelmkr.BuildPath(n))
	})

	t.Run("does not special-case ids", func(t *testing.T) {
		t.Parallel()

		n := el("p", []string{"id=intro", "class=lead"})
		body(el("main", nil, n))

		assert.Equal(t, "main > p.lead", labelmkr.BuildPath(n))
	})

	t.Run("walks to the top when there is no root container", func(t *testing.T) {
		t.Parallel()

		n := el("td", nil)
		el("table", nil, el("tr", nil, n))

		assert.Equal(t, "table > tr > td", labelmkr.BuildPath(n))
	})

	t.Run("returns empty string for the root container", func(t *testing.T) {
		t.Parallel()

		assert.Empty(t, labelmkr.BuildPath(body()))
	})

	t.Run("returns empty string for non-elements", func(t *testing.T) {
		t.Parallel()

		assert.Empty(t, labelmkr.BuildPath(nil))
		assert.Empty(t, labelmkr.BuildPath(el("", nil)))
	})
}

func TestCandidates(t *testing.T) {
	t.Parallel()

	t.Run("lists every strategy in generation order", func(t *testing.T) {
		t.Parallel()

		n := el("button", []string{
			"id=buy now",
			"data-role=cta",
			"data-testid=buy-btn",
			"class=btn primary large",
		})
		body(el("form", nil, n))

		got := labelmkr.Candidates(n)

		assert.Equal(t, []labelmkr.Candidate{
			{Text: `button#buy\ now`, Tier: labelmkr.TierID},
			{Text: `button[data-role="cta"]`, Tier: labelmkr.TierDataRole},
			{Text: `button[data-testid="buy-btn"]`, Tier: labelmkr.TierDataTestID},
			{Text: "button.btn", Tier: labelmkr.TierSingleClass},
			{Text: "button.btn.primary", Tier: labelmkr.TierDoubleClass},
			{Text: "form > button.btn.primary.large", Tier: labelmkr.TierStructuralPath},
		}, got)
	})

	t.Run("puts the id candidate first", func(t *testing.T) {
		t.Parallel()

		ids := []string{"main", "a:b", "x.y z", "#hash"}
		for _, id := range ids {
			n := el("section", []string{"id=" + id, "class=wide"})
			body(n)

			got := labelmkr.Candidates(n)

			require.NotEmpty(t, got)
			assert.Equal(t, "section#"+labelmkr.Escape(id), got[0].Text)
		}
	})

	t.Run("escapes attribute values", func(t *testing.T) {
		t.Parallel()

		n := el("div", []string{`data-role=say "hi"`})
		body(n)

		got := labelmkr.Candidates(n)

		require.NotEmpty(t, got)
		assert.Equal(t, `div[data-role="say\ \"hi\""]`, got[0].Text)
	})

	t.Run("skips empty attributes", func(t *testing.T) {
		t.Parallel()

		n := el("div", []string{"id=", "data-role=", "data-testid="})
		body(el("main", nil, n))

		got := labelmkr.Candidates(n)

		assert.Equal(t, []labelmkr.Candidate{
			{Text: "main > div", Tier: labelmkr.TierStructuralPath},
		}, got)
	})

	t.Run("collapses duplicates keeping the first", func(t *testing.T) {
		t.Parallel()

		n := el("div", []string{"class=card"})
		body(n)

		got := labelmkr.Candidates(n)

		assert.Equal(t, []labelmkr.Candidate{
			{Text: "div.card", Tier: labelmkr.TierSingleClass},
		}, got)
	})

	t.Run("never returns duplicates and stays within bounds", func(t *testing.T) {
		t.Parallel()

		root, _ := rowsFixture()
		var walk func(n *fakeNode)
		walk = func(n *fakeNode) {
			got := labelmkr.Candidates(n)
			assert.GreaterOrEqual(t, len(got), 1)
			assert.LessOrEqual(t, len(got), 6)

			seen := make(map[string]bool)
			for _, c := range got {
				assert.False(t, seen[c.Text], "duplicate %q", c.Text)
				seen[c.Text] = true
			}
			for _, c := range n.children {
				walk(c)
			}
		}
		walk(root)
	})

	t.Run("ends with the structural path", func(t *testing.T) {
		t.Parallel()

		_, first := rowsFixture()

		got := labelmkr.Candidates(first)

		require.Len(t, got, 2)
		assert.Equal(t, "span.code", got[0].Text)
		last := got[len(got)-1]
		assert.Equal(t, labelmkr.TierStructuralPath, last.Tier)
		assert.True(t, strings.HasSuffix(last.Text, "span.code:nth-of-type(1)"), last.Text)
	})

	t.Run("falls back to the tag for the root container", func(t *testing.T) {
		t.Parallel()

		got := labelmkr.Candidates(body())

		assert.Equal(t, []labelmkr.Candidate{
			{Text: "body", Tier: labelmkr.TierStructuralPath},
		}, got)
	})

	t.Run("returns nothing for non-elements", func(t *testing.T) {
		t.Parallel()

		assert.Empty(t, labelmkr.Candidates(nil))
		assert.Empty(t, labelmkr.Candidates(el("", nil)))
	})
}

func TestCandidateAt(t *testing.T) {
	t.Parallel()

	list := []labelmkr.Candidate{
		{Text: "a#x", Tier: labelmkr.TierID},
		{Text: "a.y", Tier: labelmkr.TierSingleClass},
		{Text: "nav > a.y", Tier: labelmkr.TierStructuralPath},
	}

	t.Run("cycles with modulo", func(t *testing.T) {
		t.Parallel()

		for i, want := range []string{"a#x", "a.y", "nav > a.y", "a#x", "a.y"} {
			got, ok := labelmkr.CandidateAt(list, i)
			require.True(t, ok)
			assert.Equal(t, want, got.Text)
		}
	})

	t.Run("wraps negative indexes", func(t *testing.T) {
		t.Parallel()

		got, ok := labelmkr.CandidateAt(list, -1)

		require.True(t, ok)
		assert.Equal(t, "nav > a.y", got.Text)
	})

	t.Run("reports empty lists", func(t *testing.T) {
		t.Parallel()

		_, ok := labelmkr.CandidateAt(nil, 3)

		assert.False(t, ok)
	})
}
