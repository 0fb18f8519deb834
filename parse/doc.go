// Package parse is the engine for hand-written, scannerless recursive-descent
// parsers.
//
// A grammar is a set of Rule values, plain functions that consume a prefix of
// a Stream. Rules fail in one of two ways. A mismatch says the rule does not
// apply at this position; it is a control-flow signal and the caller may try
// another alternative or treat the rule as absent. Any other error says the
// input is malformed once a rule has been committed to, and ends the parse.
//
// Rules never restore the stream themselves. They are run through the
// driver functions, which take care of backtracking:
//
//	Parse     runs a rule and returns whatever it returns.
//	TryParse  restores the stream on a mismatch and reports absence.
//	Require   turns a mismatch into a hard error, for positions where the
//	          enclosing rule is already committed.
//
// Combinators such as Optional, Many, PunctuatedBy, SeparatedBy and
// Sequence2 are ordinary rules built on these three.
//
// By convention a rule skips whitespace before its content and never after
// it. The matching primitives of Stream (PeekChar, TakeWhile, TakeStr, AtEnd
// and friends) do the skipping, so a checkpoint taken before them still
// includes the whitespace. Whitespace can be made significant for a nested
// parse with Stream.WhitespaceScope or WithWhitespace.
//
// Rules nest as deep as the grammar recurses. The stream stops a parse with
// a hard error wrapping ErrStackLimitExceeded once nesting passes its
// maximum depth; left-recursive grammars are reported this way rather than
// overflowing the goroutine stack.
package parse
