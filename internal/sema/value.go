package sema

import (
	"math"
	"strconv"
	"strings"

	"qasmc/internal/ast"
	"qasmc/internal/types"
)

func parseIntLiteral(text string) (int64, error) {
	lower := strings.ToLower(text)
	if strings.HasPrefix(lower, "0x") || strings.HasPrefix(lower, "0b") || strings.HasPrefix(lower, "0o") {
		return strconv.ParseInt(text, 0, 64)
	}
	return strconv.ParseInt(text, 10, 64)
}

// literalValue converts a literal node into its value; ok is false for
// malformed text and for string literals.
func literalValue(lit *ast.ExprLiteralData, text string) (Value, bool) {
	switch lit.Kind {
	case ast.ExprLitInt:
		n, err := parseIntLiteral(text)
		if err != nil {
			return Value{}, false
		}
		return types.IntValue(n), true
	case ast.ExprLitFloat:
		f, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return Value{}, false
		}
		return types.FloatValue(f), true
	case ast.ExprLitTrue:
		return types.BoolValue(true), true
	case ast.ExprLitFalse:
		return types.BoolValue(false), true
	default:
		return Value{}, false
	}
}

func literalTypeName(kind ast.ExprLitKind) string {
	switch kind {
	case ast.ExprLitInt:
		return "int"
	case ast.ExprLitFloat:
		return "float"
	case ast.ExprLitTrue, ast.ExprLitFalse:
		return "bool"
	default:
		return "string"
	}
}

// formatFloat keeps a decimal point so the text re-lexes as a float.
func formatFloat(f float64) string {
	s := strconv.FormatFloat(f, 'g', -1, 64)
	if math.IsInf(f, 0) || math.IsNaN(f) {
		return s
	}
	if !strings.ContainsAny(s, ".e") {
		s += ".0"
	}
	return s
}

type foldErr struct {
	kind ErrorKind
	msg  string
}

// foldInt applies a binary operator to integers. Comparisons and logical
// operators yield 0 or 1.
func foldInt(op ast.ExprBinaryOp, a, b int64) (int64, *foldErr) {
	switch op {
	case ast.ExprBinaryAdd:
		return a + b, nil
	case ast.ExprBinarySub:
		return a - b, nil
	case ast.ExprBinaryMul:
		return a * b, nil
	case ast.ExprBinaryDiv:
		if b == 0 {
			return 0, &foldErr{KindNotConstant, "Division by zero"}
		}
		return a / b, nil
	case ast.ExprBinaryMod:
		if b == 0 {
			return 0, &foldErr{KindNotConstant, "Division by zero"}
		}
		return a % b, nil
	case ast.ExprBinaryPow:
		if b < 0 {
			return 0, &foldErr{KindNotConstant, "Negative exponent in integer power"}
		}
		return intPow(a, b), nil
	case ast.ExprBinaryBitAnd:
		return a & b, nil
	case ast.ExprBinaryBitOr:
		return a | b, nil
	case ast.ExprBinaryBitXor:
		return a ^ b, nil
	case ast.ExprBinaryShiftLeft, ast.ExprBinaryShiftRight:
		if b < 0 || b >= 64 {
			return 0, &foldErr{KindTypeMismatch, "Invalid shift amount " + strconv.FormatInt(b, 10)}
		}
		if op == ast.ExprBinaryShiftLeft {
			return a << uint(b), nil
		}
		return a >> uint(b), nil
	case ast.ExprBinaryLogicalAnd:
		return boolInt(a != 0 && b != 0), nil
	case ast.ExprBinaryLogicalOr:
		return boolInt(a != 0 || b != 0), nil
	case ast.ExprBinaryEq:
		return boolInt(a == b), nil
	case ast.ExprBinaryNotEq:
		return boolInt(a != b), nil
	case ast.ExprBinaryLess:
		return boolInt(a < b), nil
	case ast.ExprBinaryLessEq:
		return boolInt(a <= b), nil
	case ast.ExprBinaryGreater:
		return boolInt(a > b), nil
	case ast.ExprBinaryGreaterEq:
		return boolInt(a >= b), nil
	default:
		return 0, &foldErr{KindTypeMismatch, "Unsupported operator " + op.String()}
	}
}

func foldFloat(op ast.ExprBinaryOp, a, b float64) (Value, *foldErr) {
	switch op {
	case ast.ExprBinaryAdd:
		return types.FloatValue(a + b), nil
	case ast.ExprBinarySub:
		return types.FloatValue(a - b), nil
	case ast.ExprBinaryMul:
		return types.FloatValue(a * b), nil
	case ast.ExprBinaryDiv:
		if b == 0 {
			return Value{}, &foldErr{KindNotConstant, "Division by zero"}
		}
		return types.FloatValue(a / b), nil
	case ast.ExprBinaryMod:
		if b == 0 {
			return Value{}, &foldErr{KindNotConstant, "Division by zero"}
		}
		return types.FloatValue(math.Mod(a, b)), nil
	case ast.ExprBinaryPow:
		return types.FloatValue(math.Pow(a, b)), nil
	case ast.ExprBinaryLogicalAnd:
		return types.BoolValue(a != 0 && b != 0), nil
	case ast.ExprBinaryLogicalOr:
		return types.BoolValue(a != 0 || b != 0), nil
	case ast.ExprBinaryEq:
		return types.BoolValue(a == b), nil
	case ast.ExprBinaryNotEq:
		return types.BoolValue(a != b), nil
	case ast.ExprBinaryLess:
		return types.BoolValue(a < b), nil
	case ast.ExprBinaryLessEq:
		return types.BoolValue(a <= b), nil
	case ast.ExprBinaryGreater:
		return types.BoolValue(a > b), nil
	case ast.ExprBinaryGreaterEq:
		return types.BoolValue(a >= b), nil
	default:
		return Value{}, &foldErr{KindTypeMismatch, "Operator " + op.String() + " requires integer operands"}
	}
}

func intPow(base, exp int64) int64 {
	result := int64(1)
	for exp > 0 {
		if exp&1 == 1 {
			result *= base
		}
		base *= base
		exp >>= 1
	}
	return result
}

func boolInt(b bool) int64 {
	if b {
		return 1
	}
	return 0
}
