package ast

import (
	"qasmc/internal/source"
)

type StmtKind uint8

const (
	StmtVersion StmtKind = iota
	StmtInclude
	StmtQubitDecl
	StmtClassicalDecl
	StmtAssign
	StmtMeasure
	StmtGateCall
	StmtReset
	StmtBarrier
	StmtGateDef
	StmtDef
	StmtReturn
	StmtExpr
	StmtSwitch
)

func (k StmtKind) String() string {
	switch k {
	case StmtVersion:
		return "Version"
	case StmtInclude:
		return "Include"
	case StmtQubitDecl:
		return "QubitDecl"
	case StmtClassicalDecl:
		return "ClassicalDecl"
	case StmtAssign:
		return "Assign"
	case StmtMeasure:
		return "Measure"
	case StmtGateCall:
		return "GateCall"
	case StmtReset:
		return "Reset"
	case StmtBarrier:
		return "Barrier"
	case StmtGateDef:
		return "GateDef"
	case StmtDef:
		return "Def"
	case StmtReturn:
		return "Return"
	case StmtExpr:
		return "Expr"
	case StmtSwitch:
		return "Switch"
	default:
		return "Unknown"
	}
}

type Stmt struct {
	Kind    StmtKind
	Span    source.Span
	Payload PayloadID
}

type VersionStmt struct {
	Version source.StringID
}

type IncludeStmt struct {
	Path source.StringID // без кавычек
}

// QubitDeclStmt covers both `qubit[n] q;` and the legacy `qreg q[n];`.
type QubitDeclStmt struct {
	Name     source.StringID
	NameSpan source.Span
	Size     ExprID // NoExprID для одиночного кубита
	Legacy   bool
}

// ClassicalDeclStmt covers scalar, bit register and array declarations,
// optionally const and optionally initialised.
type ClassicalDeclStmt struct {
	Type     TypeSpec
	Name     source.StringID
	NameSpan source.Span
	Init     ExprID
	Const    bool
	Legacy   bool // creg
}

// AssignOp mirrors the assignment token; AssignSet is plain `=`.
type AssignOp uint8

const (
	AssignSet AssignOp = iota
	AssignAdd
	AssignSub
	AssignMul
	AssignDiv
	AssignMod
	AssignBitAnd
	AssignBitOr
	AssignBitXor
	AssignShl
	AssignShr
)

func (op AssignOp) String() string {
	switch op {
	case AssignSet:
		return "="
	case AssignAdd:
		return "+="
	case AssignSub:
		return "-="
	case AssignMul:
		return "*="
	case AssignDiv:
		return "/="
	case AssignMod:
		return "%="
	case AssignBitAnd:
		return "&="
	case AssignBitOr:
		return "|="
	case AssignBitXor:
		return "^="
	case AssignShl:
		return "<<="
	case AssignShr:
		return ">>="
	default:
		return "?="
	}
}

// Binary returns the arithmetic operator of a compound assignment.
func (op AssignOp) Binary() (ExprBinaryOp, bool) {
	switch op {
	case AssignAdd:
		return ExprBinaryAdd, true
	case AssignSub:
		return ExprBinarySub, true
	case AssignMul:
		return ExprBinaryMul, true
	case AssignDiv:
		return ExprBinaryDiv, true
	case AssignMod:
		return ExprBinaryMod, true
	case AssignBitAnd:
		return ExprBinaryBitAnd, true
	case AssignBitOr:
		return ExprBinaryBitOr, true
	case AssignBitXor:
		return ExprBinaryBitXor, true
	case AssignShl:
		return ExprBinaryShiftLeft, true
	case AssignShr:
		return ExprBinaryShiftRight, true
	default:
		return 0, false
	}
}

type AssignStmt struct {
	Target ExprID // ident или index
	Op     AssignOp
	Value  ExprID
}

// MeasureStmt is `measure q;` or `measure q -> c;`.
type MeasureStmt struct {
	Source ExprID
	Target ExprID
}

type GateCallStmt struct {
	Name     source.StringID
	NameSpan source.Span
	Params   []ExprID
	Operands []ExprID
}

type ResetStmt struct {
	Operand ExprID
}

type BarrierStmt struct {
	Operands []ExprID
}

type GateDefStmt struct {
	Name     source.StringID
	NameSpan source.Span
	Params   []source.StringID
	Qubits   []source.StringID
	Body     []StmtID
}

type DefParam struct {
	Name source.StringID
	Type TypeSpec
	Span source.Span
}

type DefStmt struct {
	Name     source.StringID
	NameSpan source.Span
	Params   []DefParam
	Return   TypeSpec // Kind == TypeSpecNone если нет `-> T`
	Body     []StmtID
}

type ReturnStmt struct {
	Value ExprID
}

type ExprStmt struct {
	Expr ExprID
}

// SwitchCase is one `case a, b { ... }` clause.
type SwitchCase struct {
	Labels []ExprID
	Body   []StmtID
	Span   source.Span
}

// SwitchStmt keeps the default clause apart from the numbered ones.
type SwitchStmt struct {
	Keyword     source.Span
	Target      ExprID
	Cases       []SwitchCase
	HasDefault  bool
	Default     []StmtID
	DefaultSpan source.Span
}
