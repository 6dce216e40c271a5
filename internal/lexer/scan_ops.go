package lexer

import (
	"qasmc/internal/diag"
	"qasmc/internal/token"
)

// multiCharOps is ordered longest first so that "<<=" wins over "<<" and "<".
var multiCharOps = []struct {
	text string
	kind token.Kind
}{
	{"<<=", token.ShlAssign},
	{">>=", token.ShrAssign},
	{"**", token.StarStar},
	{"->", token.Arrow},
	{"&&", token.AndAnd},
	{"||", token.OrOr},
	{"==", token.EqEq},
	{"!=", token.BangEq},
	{"<=", token.LtEq},
	{">=", token.GtEq},
	{"<<", token.Shl},
	{">>", token.Shr},
	{"+=", token.PlusAssign},
	{"-=", token.MinusAssign},
	{"*=", token.StarAssign},
	{"/=", token.SlashAssign},
	{"%=", token.PercentAssign},
	{"&=", token.AmpAssign},
	{"|=", token.PipeAssign},
	{"^=", token.CaretAssign},
}

var singleCharOps = [256]token.Kind{
	'+': token.Plus,
	'-': token.Minus,
	'*': token.Star,
	'/': token.Slash,
	'%': token.Percent,
	'=': token.Assign,
	'!': token.Bang,
	'~': token.Tilde,
	'<': token.Lt,
	'>': token.Gt,
	'&': token.Amp,
	'|': token.Pipe,
	'^': token.Caret,
	':': token.Colon,
	';': token.Semicolon,
	',': token.Comma,
	'.': token.Dot,
	'(': token.LParen,
	')': token.RParen,
	'{': token.LBrace,
	'}': token.RBrace,
	'[': token.LBracket,
	']': token.RBracket,
	'@': token.At,
}

func (lx *Lexer) scanOperatorOrPunct() token.Token {
	start := lx.cursor.Mark()
	emit := func(k token.Kind) token.Token {
		sp := lx.cursor.SpanFrom(start)
		return token.Token{Kind: k, Span: sp, Text: string(lx.file.Content[sp.Start:sp.End])}
	}

	for _, op := range multiCharOps {
		if lx.tryText(op.text) {
			return emit(op.kind)
		}
	}
	if k := singleCharOps[lx.cursor.Peek()]; k != token.Invalid {
		lx.cursor.Bump()
		return emit(k)
	}

	// неизвестный символ: съедаем целую руну, чтобы не резать UTF-8
	lx.bumpRune()
	sp := lx.cursor.SpanFrom(start)
	lx.errLex(diag.LexUnknownChar, sp, "unknown character")
	return emit(token.Invalid)
}
