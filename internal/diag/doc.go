// Package diag defines the diagnostic model shared by the lexer, parser,
// checker and interpreter.
//
// Phases never return Go errors for problems in a script. They report through
// a Reporter and keep going; the driver collects everything into a Bag, sorts
// it and decides whether execution may start (it may only when the bag holds
// no errors; lexer warnings never block).
//
// Diagnostic is the central record:
//
//   - Severity: Info, Warning or Error.
//   - Code: numeric identifier with a stable string form (LEX1001, SEM3004, ...).
//   - Message: the user-facing text.
//   - Primary: byte span of the offending source.
//   - Notes: secondary spans, used for "did you mean" hints and previous declarations.
//   - Fixes: suggested replacements; only printed, never applied.
//
// Problem is the flattened display view (severity, row/col/length, message)
// ordered by row then column.
package diag
