// Package header renders license headers from a template and decides
// whether a file already carries a compliant one.
//
// Rendering is deterministic: the same template, properties, and comment
// style always produce byte-identical output. Detection tolerates benign
// variance only: line-ending style, trailing whitespace, and year ranges
// stamped by earlier tooling.
package header
