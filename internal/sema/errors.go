package sema

import (
	"errors"
	"fmt"

	"qasmc/internal/diag"
	"qasmc/internal/source"
)

// ErrorKind classifies a ValidationError.
type ErrorKind uint8

const (
	KindSwitchTargetType ErrorKind = iota + 1
	KindCaseLabelType
	KindNotConstant
	KindDuplicateCase
	KindEmptySwitch
	KindUnsupportedStatement
	KindRedeclaration
	KindUndeclaredIdentifier
	KindImmutableAssignment
	KindTypeMismatch
	KindIndexOutOfRange
	KindArity
	KindInvalidScope
	KindInlineDepth
	KindUnknownGate
)

var (
	ErrSwitchTargetType     = errors.New("switch target type")
	ErrCaseLabelType        = errors.New("case label type")
	ErrNotConstant          = errors.New("not constant")
	ErrDuplicateCase        = errors.New("duplicate case")
	ErrEmptySwitch          = errors.New("empty switch")
	ErrUnsupportedStatement = errors.New("unsupported statement")
	ErrRedeclaration        = errors.New("redeclaration")
	ErrUndeclared           = errors.New("undeclared identifier")
	ErrImmutableAssignment  = errors.New("immutable assignment")
	ErrTypeMismatch         = errors.New("type mismatch")
	ErrIndexOutOfRange      = errors.New("index out of range")
	ErrArity                = errors.New("arity")
	ErrInvalidScope         = errors.New("invalid scope")
	ErrInlineDepth          = errors.New("inline depth")
	ErrUnknownGate          = errors.New("unknown gate")
)

var kindInfo = map[ErrorKind]struct {
	sentinel error
	code     diag.Code
}{
	KindSwitchTargetType:     {ErrSwitchTargetType, diag.SemaSwitchTargetType},
	KindCaseLabelType:        {ErrCaseLabelType, diag.SemaCaseLabelType},
	KindNotConstant:          {ErrNotConstant, diag.SemaNotConstant},
	KindDuplicateCase:        {ErrDuplicateCase, diag.SemaDuplicateCase},
	KindEmptySwitch:          {ErrEmptySwitch, diag.SemaEmptySwitch},
	KindUnsupportedStatement: {ErrUnsupportedStatement, diag.SemaUnsupportedStatement},
	KindRedeclaration:        {ErrRedeclaration, diag.SemaRedeclaration},
	KindUndeclaredIdentifier: {ErrUndeclared, diag.SemaUndeclared},
	KindImmutableAssignment:  {ErrImmutableAssignment, diag.SemaImmutableAssignment},
	KindTypeMismatch:         {ErrTypeMismatch, diag.SemaTypeMismatch},
	KindIndexOutOfRange:      {ErrIndexOutOfRange, diag.SemaIndexOutOfRange},
	KindArity:                {ErrArity, diag.SemaArity},
	KindInvalidScope:         {ErrInvalidScope, diag.SemaInvalidScope},
	KindInlineDepth:          {ErrInlineDepth, diag.SemaInlineDepth},
	KindUnknownGate:          {ErrUnknownGate, diag.SemaUnknownGate},
}

// Code maps the kind onto its diagnostic code.
func (k ErrorKind) Code() diag.Code {
	if info, ok := kindInfo[k]; ok {
		return info.code
	}
	return diag.SemaError
}

func (k ErrorKind) String() string {
	if info, ok := kindInfo[k]; ok {
		return info.sentinel.Error()
	}
	return "semantic error"
}

// ValidationError is the single failure type of the pass. Line is 1-based,
// Column is 0-based.
type ValidationError struct {
	kind    ErrorKind
	Message string
	Line    uint32
	Column  uint32
	Span    source.Span
	Snippet string
	Diag    diag.Diagnostic
}

func (e *ValidationError) Kind() ErrorKind { return e.kind }

func (e *ValidationError) Error() string {
	loc := "Error in QASM file"
	if e.Line != 0 {
		loc = fmt.Sprintf("Error at line %d, column %d in QASM file", e.Line, e.Column)
	}
	if e.Snippet == "" {
		return loc + "\n" + e.Message
	}
	return loc + "\n\n >>>>>> " + e.Snippet + "\n" + e.Message
}

// Unwrap exposes the per-kind sentinel so errors.Is works on kinds.
func (e *ValidationError) Unwrap() error {
	if info, ok := kindInfo[e.kind]; ok {
		return info.sentinel
	}
	return nil
}

// AsValidationError unwraps err into a *ValidationError.
func AsValidationError(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}
