package diag

import (
	"fmt"

	"cjsflat/internal/source"
)

func New(sev Severity, code Code, primary source.Span, msg string) Diagnostic {
	return Diagnostic{
		Severity: sev,
		Code:     code,
		Primary:  primary,
		Message:  msg,
	}
}

func NewError(code Code, primary source.Span, msg string) Diagnostic {
	return New(SevError, code, primary, msg)
}

// NewWarningf formats the message from a template, the way the rewriter
// reports module paths and callee names.
func NewWarningf(code Code, primary source.Span, format string, args ...any) Diagnostic {
	return New(SevWarning, code, primary, fmt.Sprintf(format, args...))
}

func (d Diagnostic) WithNote(sp source.Span, msg string) Diagnostic {
	d.Notes = append(d.Notes, Note{Span: sp, Msg: msg})
	return d
}
