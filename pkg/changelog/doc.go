// Package changelog models chronological release-notes documents: a title,
// an optional table-of-contents directive, and dated version headings each
// followed by categorized bullet lists. It provides a permissive parser, a
// canonical writer, and query operations over the parsed records.
//
// The document is append-only: published release records are never edited
// or removed, new ones are prepended. [Changelog.Prepend] enforces that
// convention; everything else about a document's health is the concern of
// the lint package.
package changelog
