package ast

import (
	"qasmc/internal/source"
)

// Stmts manages allocation of statements.
type Stmts struct {
	Arena     *Arena[Stmt]
	Versions  *Arena[VersionStmt]
	Includes  *Arena[IncludeStmt]
	Qubits    *Arena[QubitDeclStmt]
	Decls     *Arena[ClassicalDeclStmt]
	Assigns   *Arena[AssignStmt]
	Measures  *Arena[MeasureStmt]
	GateCalls *Arena[GateCallStmt]
	Resets    *Arena[ResetStmt]
	Barriers  *Arena[BarrierStmt]
	GateDefs  *Arena[GateDefStmt]
	Defs      *Arena[DefStmt]
	Returns   *Arena[ReturnStmt]
	Exprs     *Arena[ExprStmt]
	Switches  *Arena[SwitchStmt]
}

func NewStmts(capHint uint) *Stmts {
	if capHint == 0 {
		capHint = 1 << 8
	}
	small := capHint / 8
	return &Stmts{
		Arena:     NewArena[Stmt](capHint),
		Versions:  NewArena[VersionStmt](1),
		Includes:  NewArena[IncludeStmt](small),
		Qubits:    NewArena[QubitDeclStmt](small),
		Decls:     NewArena[ClassicalDeclStmt](capHint / 2),
		Assigns:   NewArena[AssignStmt](capHint / 2),
		Measures:  NewArena[MeasureStmt](small),
		GateCalls: NewArena[GateCallStmt](capHint),
		Resets:    NewArena[ResetStmt](small),
		Barriers:  NewArena[BarrierStmt](small),
		GateDefs:  NewArena[GateDefStmt](small),
		Defs:      NewArena[DefStmt](small),
		Returns:   NewArena[ReturnStmt](small),
		Exprs:     NewArena[ExprStmt](small),
		Switches:  NewArena[SwitchStmt](small),
	}
}

func (s *Stmts) new(kind StmtKind, span source.Span, payload uint32) StmtID {
	return StmtID(s.Arena.Allocate(Stmt{
		Kind:    kind,
		Span:    span,
		Payload: PayloadID(payload),
	}))
}

func (s *Stmts) Get(id StmtID) *Stmt {
	return s.Arena.Get(uint32(id))
}

func (s *Stmts) payload(id StmtID, kind StmtKind) (uint32, bool) {
	st := s.Get(id)
	if st == nil || st.Kind != kind {
		return 0, false
	}
	return uint32(st.Payload), true
}

func (s *Stmts) NewVersion(span source.Span, version source.StringID) StmtID {
	return s.new(StmtVersion, span, s.Versions.Allocate(VersionStmt{Version: version}))
}

func (s *Stmts) Version(id StmtID) (*VersionStmt, bool) {
	p, ok := s.payload(id, StmtVersion)
	if !ok {
		return nil, false
	}
	return s.Versions.Get(p), true
}

func (s *Stmts) NewInclude(span source.Span, path source.StringID) StmtID {
	return s.new(StmtInclude, span, s.Includes.Allocate(IncludeStmt{Path: path}))
}

func (s *Stmts) Include(id StmtID) (*IncludeStmt, bool) {
	p, ok := s.payload(id, StmtInclude)
	if !ok {
		return nil, false
	}
	return s.Includes.Get(p), true
}

func (s *Stmts) NewQubitDecl(span source.Span, data QubitDeclStmt) StmtID {
	return s.new(StmtQubitDecl, span, s.Qubits.Allocate(data))
}

func (s *Stmts) QubitDecl(id StmtID) (*QubitDeclStmt, bool) {
	p, ok := s.payload(id, StmtQubitDecl)
	if !ok {
		return nil, false
	}
	return s.Qubits.Get(p), true
}

func (s *Stmts) NewClassicalDecl(span source.Span, data ClassicalDeclStmt) StmtID {
	data.Type.Dims = append([]ExprID(nil), data.Type.Dims...)
	return s.new(StmtClassicalDecl, span, s.Decls.Allocate(data))
}

func (s *Stmts) ClassicalDecl(id StmtID) (*ClassicalDeclStmt, bool) {
	p, ok := s.payload(id, StmtClassicalDecl)
	if !ok {
		return nil, false
	}
	return s.Decls.Get(p), true
}

func (s *Stmts) NewAssign(span source.Span, target ExprID, op AssignOp, value ExprID) StmtID {
	return s.new(StmtAssign, span, s.Assigns.Allocate(AssignStmt{Target: target, Op: op, Value: value}))
}

func (s *Stmts) Assign(id StmtID) (*AssignStmt, bool) {
	p, ok := s.payload(id, StmtAssign)
	if !ok {
		return nil, false
	}
	return s.Assigns.Get(p), true
}

func (s *Stmts) NewMeasure(span source.Span, src, target ExprID) StmtID {
	return s.new(StmtMeasure, span, s.Measures.Allocate(MeasureStmt{Source: src, Target: target}))
}

func (s *Stmts) Measure(id StmtID) (*MeasureStmt, bool) {
	p, ok := s.payload(id, StmtMeasure)
	if !ok {
		return nil, false
	}
	return s.Measures.Get(p), true
}

func (s *Stmts) NewGateCall(span source.Span, name source.StringID, nameSpan source.Span, params, operands []ExprID) StmtID {
	return s.new(StmtGateCall, span, s.GateCalls.Allocate(GateCallStmt{
		Name:     name,
		NameSpan: nameSpan,
		Params:   append([]ExprID(nil), params...),
		Operands: append([]ExprID(nil), operands...),
	}))
}

func (s *Stmts) GateCall(id StmtID) (*GateCallStmt, bool) {
	p, ok := s.payload(id, StmtGateCall)
	if !ok {
		return nil, false
	}
	return s.GateCalls.Get(p), true
}

func (s *Stmts) NewReset(span source.Span, operand ExprID) StmtID {
	return s.new(StmtReset, span, s.Resets.Allocate(ResetStmt{Operand: operand}))
}

func (s *Stmts) Reset(id StmtID) (*ResetStmt, bool) {
	p, ok := s.payload(id, StmtReset)
	if !ok {
		return nil, false
	}
	return s.Resets.Get(p), true
}

func (s *Stmts) NewBarrier(span source.Span, operands []ExprID) StmtID {
	return s.new(StmtBarrier, span, s.Barriers.Allocate(BarrierStmt{Operands: append([]ExprID(nil), operands...)}))
}

func (s *Stmts) Barrier(id StmtID) (*BarrierStmt, bool) {
	p, ok := s.payload(id, StmtBarrier)
	if !ok {
		return nil, false
	}
	return s.Barriers.Get(p), true
}

func (s *Stmts) NewGateDef(span source.Span, data GateDefStmt) StmtID {
	return s.new(StmtGateDef, span, s.GateDefs.Allocate(data))
}

func (s *Stmts) GateDef(id StmtID) (*GateDefStmt, bool) {
	p, ok := s.payload(id, StmtGateDef)
	if !ok {
		return nil, false
	}
	return s.GateDefs.Get(p), true
}

func (s *Stmts) NewDef(span source.Span, data DefStmt) StmtID {
	return s.new(StmtDef, span, s.Defs.Allocate(data))
}

func (s *Stmts) Def(id StmtID) (*DefStmt, bool) {
	p, ok := s.payload(id, StmtDef)
	if !ok {
		return nil, false
	}
	return s.Defs.Get(p), true
}

func (s *Stmts) NewReturn(span source.Span, value ExprID) StmtID {
	return s.new(StmtReturn, span, s.Returns.Allocate(ReturnStmt{Value: value}))
}

func (s *Stmts) Return(id StmtID) (*ReturnStmt, bool) {
	p, ok := s.payload(id, StmtReturn)
	if !ok {
		return nil, false
	}
	return s.Returns.Get(p), true
}

func (s *Stmts) NewExpr(span source.Span, expr ExprID) StmtID {
	return s.new(StmtExpr, span, s.Exprs.Allocate(ExprStmt{Expr: expr}))
}

func (s *Stmts) Expr(id StmtID) (*ExprStmt, bool) {
	p, ok := s.payload(id, StmtExpr)
	if !ok {
		return nil, false
	}
	return s.Exprs.Get(p), true
}

func (s *Stmts) NewSwitch(span source.Span, data SwitchStmt) StmtID {
	return s.new(StmtSwitch, span, s.Switches.Allocate(data))
}

func (s *Stmts) Switch(id StmtID) (*SwitchStmt, bool) {
	p, ok := s.payload(id, StmtSwitch)
	if !ok {
		return nil, false
	}
	return s.Switches.Get(p), true
}
