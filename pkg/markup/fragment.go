// Package markup exposes the small set of document operations the entry
// parser relies on, so parsing does not depend on a particular HTML library.
package markup

// Query selects elements by tag name and, optionally, by class. NotClass
// excludes elements carrying that class.
type Query struct {
	Tag      string
	Class    string
	NotClass string
}

// Tag is shorthand for a query matching every element with the given tag.
func Tag(tag string) Query {
	return Query{Tag: tag}
}

// Fragment is a node of a parsed document together with its descendants.
type Fragment interface {
	// Find returns the first descendant matching q in document order.
	Find(q Query) (Fragment, bool)

	// FindAll returns every descendant matching q in document order.
	FindAll(q Query) []Fragment

	// FindWithin returns, without duplicates, every descendant matching inner
	// that lies inside some descendant matching outer.
	FindWithin(outer, inner Query) []Fragment

	// Text returns the concatenated text of the fragment.
	Text() string

	// TextRuns returns each descendant text node, trimmed, skipping blank ones.
	TextRuns() []string

	// TextAfter returns, for each descendant with the given tag, the trimmed
	// text node that immediately follows it. Elements followed by anything
	// other than a text node yield "".
	TextAfter(tag string) []string
}
