package diag

import (
	"fmt"
)

type Code uint16

const (
	// Неизвестная ошибка
	UnknownCode Code = 0

	// Лексические
	LexInfo                     Code = 1000
	LexUnknownChar              Code = 1001
	LexUnterminatedString       Code = 1002
	LexUnterminatedBlockComment Code = 1003
	LexBadNumber                Code = 1004

	// Парсерные
	SynInfo               Code = 2000
	SynUnexpectedToken    Code = 2001
	SynUnclosedParen      Code = 2006
	SynUnclosedBrace      Code = 2007
	SynUnclosedBracket    Code = 2008
	SynExpectSemicolon    Code = 2012
	SynUnsupported        Code = 2030
	SynUnexpectedTopLevel Code = 2101
	SynExpectIdentifier   Code = 2102
	SynExpectRightBracket Code = 2201
	SynExpectType         Code = 2202
	SynExpectExpression   Code = 2203
	SynBadVersion         Code = 2300
	SynExpectCase         Code = 2301
	SynDuplicateDefault   Code = 2302

	// Семантические
	SemaInfo                 Code = 3000
	SemaError                Code = 3001
	SemaRedeclaration        Code = 3002
	SemaUndeclared           Code = 3005
	SemaTypeMismatch         Code = 3017
	SemaSwitchTargetType     Code = 3100
	SemaCaseLabelType        Code = 3101
	SemaNotConstant          Code = 3102
	SemaDuplicateCase        Code = 3103
	SemaEmptySwitch          Code = 3104
	SemaUnsupportedStatement Code = 3105
	SemaImmutableAssignment  Code = 3106
	SemaIndexOutOfRange      Code = 3107
	SemaArity                Code = 3108
	SemaInvalidScope         Code = 3109
	SemaInlineDepth          Code = 3110
	SemaUnknownGate          Code = 3111

	IOLoadFileError Code = 4001

	ObsInfo    Code = 6000
	ObsTimings Code = 6001
)

var (
	codeDescription = map[Code]string{
		UnknownCode:                 "Unknown error",
		LexInfo:                     "Lexical information",
		LexUnknownChar:              "Unknown character",
		LexUnterminatedString:       "Unterminated string",
		LexUnterminatedBlockComment: "Unterminated block comment",
		LexBadNumber:                "Bad number",
		SynInfo:                     "Syntax information",
		SynUnexpectedToken:          "Unexpected token",
		SynUnclosedParen:            "Unclosed parenthesis",
		SynUnclosedBrace:            "Unclosed brace",
		SynUnclosedBracket:          "Unclosed bracket",
		SynExpectSemicolon:          "Missing semicolon",
		SynUnsupported:              "Unsupported construct",
		SynUnexpectedTopLevel:       "Unexpected top-level construct",
		SynExpectIdentifier:         "Expected identifier",
		SynExpectRightBracket:       "Expected right bracket",
		SynExpectType:               "Expected type",
		SynExpectExpression:         "Expected expression",
		SynBadVersion:               "Invalid OPENQASM version",
		SynExpectCase:               "Expected case or default",
		SynDuplicateDefault:         "Duplicate default clause",
		SemaInfo:                    "Semantic information",
		SemaError:                   "Semantic error",
		SemaRedeclaration:           "Re-declaration of symbol",
		SemaUndeclared:              "Undeclared identifier",
		SemaTypeMismatch:            "Type mismatch",
		SemaSwitchTargetType:        "Invalid switch target type",
		SemaCaseLabelType:           "Invalid case label type",
		SemaNotConstant:             "Expression is not constant",
		SemaDuplicateCase:           "Duplicate case value",
		SemaEmptySwitch:             "Switch without cases",
		SemaUnsupportedStatement:    "Unsupported statement in case block",
		SemaImmutableAssignment:     "Assignment to constant",
		SemaIndexOutOfRange:         "Index out of range",
		SemaArity:                   "Wrong number of arguments",
		SemaInvalidScope:            "Declaration not allowed in this scope",
		SemaInlineDepth:             "Inline depth exceeded",
		SemaUnknownGate:             "Unknown gate or subroutine",
		IOLoadFileError:             "I/O load file error",
		ObsInfo:                     "Observability information",
		ObsTimings:                  "Pipeline timings",
	}
)

func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("LEX%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("SYN%04d", ic)
	case ic >= 3000 && ic < 4000:
		return fmt.Sprintf("SEM%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("IO%04d", ic)
	case ic >= 6000 && ic < 7000:
		return fmt.Sprintf("OBS%04d", ic)
	}
	return "E0000"
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[UnknownCode]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}
