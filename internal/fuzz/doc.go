// Package fuzztests holds fuzz harnesses for the qasmc pipeline: bytes go
// through the lexer, the parser and finally switch validation and
// unrolling. Any panic or hang is a bug; diagnostics are expected.
//
// Зависимости: internal/source, internal/lexer, internal/parser,
// internal/driver.
package fuzztests
