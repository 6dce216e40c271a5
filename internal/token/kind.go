package token

// Kind represents the category of a source token.
type Kind uint8

const (
	// Invalid indicates an erroneous token.
	Invalid Kind = iota
	// EOF marks the end of the source input.
	EOF

	// Ident represents an identifier token.
	Ident
	// IntLit is an integer literal (decimal, hex, octal or binary).
	IntLit
	// FloatLit is a floating point literal.
	FloatLit
	// StringLit is a double- or single-quoted string (used by include).
	StringLit

	KwOpenQASM // OPENQASM
	KwInclude  // include
	KwQubit    // qubit
	KwQreg     // qreg
	KwBit      // bit
	KwCreg     // creg
	KwInt      // int
	KwUint     // uint
	KwFloat    // float
	KwBool     // bool
	KwAngle    // angle
	KwConst    // const
	KwArray    // array
	KwGate     // gate
	KwDef      // def
	KwReturn   // return
	KwSwitch   // switch
	KwCase     // case
	KwDefault  // default
	KwMeasure  // measure
	KwReset    // reset
	KwBarrier  // barrier
	KwTrue     // true
	KwFalse    // false
	KwIf       // if
	KwElse     // else
	KwFor      // for
	KwWhile    // while
	KwIn       // in
	KwBreak    // break
	KwContinue // continue

	Plus          // +
	Minus         // -
	Star          // *
	StarStar      // **
	Slash         // /
	Percent       // %
	Assign        // =
	PlusAssign    // +=
	MinusAssign   // -=
	StarAssign    // *=
	SlashAssign   // /=
	PercentAssign // %=
	AmpAssign     // &=
	PipeAssign    // |=
	CaretAssign   // ^=
	ShlAssign     // <<=
	ShrAssign     // >>=
	EqEq          // ==
	Bang          // !
	BangEq        // !=
	Tilde         // ~
	Lt            // <
	LtEq          // <=
	Gt            // >
	GtEq          // >=
	Shl           // <<
	Shr           // >>
	Amp           // &
	Pipe          // |
	Caret         // ^
	AndAnd        // &&
	OrOr          // ||
	Arrow         // ->
	Colon         // :
	Semicolon     // ;
	Comma         // ,
	Dot           // .
	LParen        // (
	RParen        // )
	LBrace        // {
	RBrace        // }
	LBracket      // [
	RBracket      // ]
	At            // @
)

var kindNames = [...]string{
	Invalid:       "Invalid",
	EOF:           "EOF",
	Ident:         "Ident",
	IntLit:        "IntLit",
	FloatLit:      "FloatLit",
	StringLit:     "StringLit",
	KwOpenQASM:    "OPENQASM",
	KwInclude:     "include",
	KwQubit:       "qubit",
	KwQreg:        "qreg",
	KwBit:         "bit",
	KwCreg:        "creg",
	KwInt:         "int",
	KwUint:        "uint",
	KwFloat:       "float",
	KwBool:        "bool",
	KwAngle:       "angle",
	KwConst:       "const",
	KwArray:       "array",
	KwGate:        "gate",
	KwDef:         "def",
	KwReturn:      "return",
	KwSwitch:      "switch",
	KwCase:        "case",
	KwDefault:     "default",
	KwMeasure:     "measure",
	KwReset:       "reset",
	KwBarrier:     "barrier",
	KwTrue:        "true",
	KwFalse:       "false",
	KwIf:          "if",
	KwElse:        "else",
	KwFor:         "for",
	KwWhile:       "while",
	KwIn:          "in",
	KwBreak:       "break",
	KwContinue:    "continue",
	Plus:          "+",
	Minus:         "-",
	Star:          "*",
	StarStar:      "**",
	Slash:         "/",
	Percent:       "%",
	Assign:        "=",
	PlusAssign:    "+=",
	MinusAssign:   "-=",
	StarAssign:    "*=",
	SlashAssign:   "/=",
	PercentAssign: "%=",
	AmpAssign:     "&=",
	PipeAssign:    "|=",
	CaretAssign:   "^=",
	ShlAssign:     "<<=",
	ShrAssign:     ">>=",
	EqEq:          "==",
	Bang:          "!",
	BangEq:        "!=",
	Tilde:         "~",
	Lt:            "<",
	LtEq:          "<=",
	Gt:            ">",
	GtEq:          ">=",
	Shl:           "<<",
	Shr:           ">>",
	Amp:           "&",
	Pipe:          "|",
	Caret:         "^",
	AndAnd:        "&&",
	OrOr:          "||",
	Arrow:         "->",
	Colon:         ":",
	Semicolon:     ";",
	Comma:         ",",
	Dot:           ".",
	LParen:        "(",
	RParen:        ")",
	LBrace:        "{",
	RBrace:        "}",
	LBracket:      "[",
	RBracket:      "]",
	At:            "@",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) && kindNames[k] != "" {
		return kindNames[k]
	}
	return "Unknown"
}
