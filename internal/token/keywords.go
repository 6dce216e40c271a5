package token

var keywords = map[string]Kind{
	"OPENQASM": KwOpenQASM,
	"include":  KwInclude,
	"qubit":    KwQubit,
	"qreg":     KwQreg,
	"bit":      KwBit,
	"creg":     KwCreg,
	"int":      KwInt,
	"uint":     KwUint,
	"float":    KwFloat,
	"bool":     KwBool,
	"angle":    KwAngle,
	"const":    KwConst,
	"array":    KwArray,
	"gate":     KwGate,
	"def":      KwDef,
	"return":   KwReturn,
	"switch":   KwSwitch,
	"case":     KwCase,
	"default":  KwDefault,
	"measure":  KwMeasure,
	"reset":    KwReset,
	"barrier":  KwBarrier,
	"true":     KwTrue,
	"false":    KwFalse,
	"if":       KwIf,
	"else":     KwElse,
	"for":      KwFor,
	"while":    KwWhile,
	"in":       KwIn,
	"break":    KwBreak,
	"continue": KwContinue,
}

// LookupKeyword возвращает тип и bool если это ключевое слово.
// Ключевые слова регистрозависимые.
func LookupKeyword(ident string) (Kind, bool) {
	k, ok := keywords[ident]
	return k, ok
}
