// Package parser extracts attendance entries from loosely structured roster
// text, such as a table pasted from a spreadsheet or a document.
//
// Each line is tokenized on tabs and on runs of two or more spaces. A course
// code is resolved by an ordered list of CodeMatchers: an exact token match
// first, then a substring match over the whole line. A status is resolved the
// same way, falling back to Present when the line carries no status at all.
// Lines without a resolvable course code are dropped.
package parser
