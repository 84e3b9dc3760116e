// Package labelmkr derives reusable CSS locators from elements in a rendered
// page and re-queries them to extract parallel code/label value lists for
// printable labels.
//
// This package contains domain types, interfaces and the pure selector
// engine, following Ben Johnson's Standard Package Layout. Implementations
// live in subdirectories named after their primary dependency (e.g.,
// goquery/, rod/, sqlite/).
package labelmkr
