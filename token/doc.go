// Package token provides the lexemes most grammars need, written as ordinary
// parse rules: fixed literals, identifiers and keywords, numbers and quoted
// strings.
//
// Every lexeme skips leading whitespace according to the stream's mode and
// then scans its content with whitespace preserved, so "a b" is never read
// as one identifier.
package token
