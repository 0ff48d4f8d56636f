package attrtext

// Attribution is a named style or semantic tag applied over a character
// range (bold, link, heading level, and so on).
type Attribution interface {
	// ID names the attribution kind. Two attributions with different IDs
	// never coalesce.
	ID() string

	// Equal reports whether two attributions are interchangeable for span
	// merging. Attributions that carry payload (e.g. link URLs) compare
	// their payload as well as their ID.
	Equal(other Attribution) bool
}

// Name is a payload-free attribution identified purely by its name.
type Name string

// ID implements Attribution.
func (n Name) ID() string { return string(n) }

// Equal implements Attribution.
func (n Name) Equal(other Attribution) bool {
	m, ok := other.(Name)
	return ok && m == n
}

// Common text style attributions.
var (
	Bold          = Name("bold")
	Italics       = Name("italics")
	Underline     = Name("underline")
	Strikethrough = Name("strikethrough")
	Code          = Name("code")
)

// Link is an attribution carrying a destination URL. Two link spans merge
// only when their URLs match.
type Link struct {
	URL string
}

// ID implements Attribution.
func (l Link) ID() string { return "link" }

// Equal implements Attribution.
func (l Link) Equal(other Attribution) bool {
	m, ok := other.(Link)
	return ok && m.URL == l.URL
}
