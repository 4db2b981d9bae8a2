// Package token defines the lexical vocabulary of PixelWallE scripts.
// Invariants:
//   - Token.Span covers the exact source bytes of the token, quotes included.
//   - Token.Text is the token text with string quotes removed.
//   - Newlines are significant and produce NewLine tokens.
//   - The stream always ends with a single EOF token whose Text is "$".
package token
