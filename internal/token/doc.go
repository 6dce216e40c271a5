// Package token defines lexical token kinds for the OpenQASM 3 front end.
// Invariants:
//   - Token.Text is a slice of the original source (no copies), except for
//     identifiers, which are NFC-normalized by the lexer.
//   - Token.Span covers the token text exactly.
//   - Comments never reach the token stream.
//   - Scalar type names (int, float, bit, ...) are keywords, because the
//     grammar uses them to start declarations.
package token
