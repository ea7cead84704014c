package domain

// AcceptedExtension is the only file extension the loader accepts.
// The match is a case-sensitive suffix check on the declared file name.
const AcceptedExtension = ".txt"

// Document represents a loaded book.
// It is created once per successful load and never mutated; a subsequent
// successful load replaces it wholesale.
type Document struct {
	// Name is the declared file name, used for display and announcements.
	Name string

	// Content is the decoded text, verbatim. No trimming or normalisation
	// is applied on load.
	Content string
}
