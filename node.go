package labelmkr

// Node is a read-only view of one element in a document tree.
// The selector engine operates only through this interface, so any document
// implementation (a parsed HTML snapshot, an in-memory fixture) can back it.
//
// A Node is a non-owning handle into the document it came from and must not
// be used after that document is discarded.
type Node interface {
	// Tag returns the lowercased element name. Empty for non-elements.
	Tag() string

	// ID returns the id attribute, or empty string.
	ID() string

	// Classes returns the class list in document order.
	Classes() []string

	// Attr looks up an attribute by name.
	// Absent and empty attributes are treated identically by extraction.
	Attr(name string) (string, bool)

	// Parent returns the parent element, or nil at the top of the tree.
	Parent() Node

	// IsRoot reports whether the node is the document's designated root
	// container. Structural paths stop below it.
	IsRoot() bool

	// SiblingPosition returns the node's 1-based rank among the element
	// siblings sharing its tag under the same parent, and how many such
	// siblings there are (including the node itself).
	SiblingPosition() (rank, count int)

	// Text returns the node's rendered text content, untrimmed.
	Text() string
}

// Document resolves locators against a document snapshot.
type Document interface {
	// Query returns every node matching locator, in document (depth-first,
	// pre-order) order. Zero matches is an empty slice, not an error.
	// Returns a *LocatorSyntaxError if locator cannot be parsed.
	// Query never mutates the document.
	Query(locator string) ([]Node, error)
}

// Parser builds a queryable Document from HTML.
type Parser interface {
	Parse(html string) (Document, error)
}
