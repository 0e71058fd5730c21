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
	LexUnterminatedRegexp       Code = 1005
	LexBadEscape                Code = 1006

	// Парсерные
	SynInfo              Code = 2000
	SynUnexpectedToken   Code = 2001
	SynExpectSemicolon   Code = 2002
	SynExpectIdentifier  Code = 2003
	SynExpectExpression  Code = 2004
	SynUnclosedParen     Code = 2005
	SynUnclosedBrace     Code = 2006
	SynUnclosedBracket   Code = 2007
	SynInvalidAssignment Code = 2008
	SynBadForHeader      Code = 2009
	SynUnsupported       Code = 2010

	// CommonJS rewriting
	CjsInfo                     Code = 3000
	CjsUnknownRequireEnsure     Code = 3001
	CjsSuspiciousExportsAssign  Code = 3002
	CjsModuleLoadWarning        Code = 3003
	CjsUnresolvedTypeAnnotation Code = 3004

	// I/O
	IOLoadFileError  Code = 4000
	IOWriteFileError Code = 4001

	// Project / configuration
	ProjInfo          Code = 5000
	ProjBadConfig     Code = 5001
	ProjNoInputs      Code = 5002
	ProjDuplicateName Code = 5003
	ProjImportCycle   Code = 5004

	// Observability
	ObsInfo    Code = 6000
	ObsTimings Code = 6001
)

var (
	codeDescription = map[Code]string{
		UnknownCode:                 "Unknown error",
		LexInfo:                     "Lexical information",
		LexUnknownChar:              "Unknown character",
		LexUnterminatedString:       "Unterminated string literal",
		LexUnterminatedBlockComment: "Unterminated block comment",
		LexBadNumber:                "Invalid numeric literal",
		LexUnterminatedRegexp:       "Unterminated regular expression literal",
		LexBadEscape:                "Invalid escape sequence",
		SynInfo:                     "Syntax information",
		SynUnexpectedToken:          "Unexpected token",
		SynExpectSemicolon:          "Missing semicolon",
		SynExpectIdentifier:         "Expected identifier",
		SynExpectExpression:         "Expected expression",
		SynUnclosedParen:            "Unclosed parenthesis",
		SynUnclosedBrace:            "Unclosed brace",
		SynUnclosedBracket:          "Unclosed bracket",
		SynInvalidAssignment:        "Invalid assignment target",
		SynBadForHeader:             "Malformed for statement header",
		SynUnsupported:              "Unsupported syntax",
		CjsInfo:                     "CommonJS information",
		CjsUnknownRequireEnsure:     "Unrecognized require.ensure call",
		CjsSuspiciousExportsAssign:  "Suspicious re-assignment of \"exports\" variable",
		CjsModuleLoadWarning:        "Failed to load module",
		CjsUnresolvedTypeAnnotation: "Type annotation refers to an unknown module",
		IOLoadFileError:             "I/O load file error",
		IOWriteFileError:            "I/O write file error",
		ProjInfo:                    "Project information",
		ProjBadConfig:               "Invalid project configuration",
		ProjNoInputs:                "No input files",
		ProjDuplicateName:           "Two inputs map to the same module name",
		ProjImportCycle:             "Modules require each other in a cycle",
		ObsInfo:                     "Observability information",
		ObsTimings:                  "Pipeline timings",
	}

	// Stable names used by tooling that predates the numeric scheme.
	codeName = map[Code]string{
		CjsUnknownRequireEnsure:    "JSC_COMMONJS_UNKNOWN_REQUIRE_ENSURE_ERROR",
		CjsSuspiciousExportsAssign: "JSC_COMMONJS_SUSPICIOUS_EXPORTS_ASSIGNMENT",
		CjsModuleLoadWarning:       "JSC_JS_MODULE_LOAD_WARNING",
	}
)

func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("LEX%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("SYN%04d", ic)
	case ic >= 3000 && ic < 4000:
		return fmt.Sprintf("CJS%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("IO%04d", ic)
	case ic >= 5000 && ic < 6000:
		return fmt.Sprintf("PRJ%04d", ic)
	case ic >= 6000 && ic < 7000:
		return fmt.Sprintf("OBS%04d", ic)
	}
	return "E0000"
}

// Name returns the symbolic name of the code, falling back to ID.
func (c Code) Name() string {
	if n, ok := codeName[c]; ok {
		return n
	}
	return c.ID()
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[Code(0)]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}
