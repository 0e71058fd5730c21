package jsdoc

import "strings"

// TypeExpr is a type expression split into literal text and name references.
type TypeExpr struct {
	Parts []TypePart
}

// TypePart is a run of type-expression text. Name parts may be renamed.
type TypePart struct {
	Text string
	Name bool
}

// String reassembles the expression.
func (t *TypeExpr) String() string {
	var b strings.Builder
	for _, p := range t.Parts {
		b.WriteString(p.Text)
	}
	return b.String()
}

// Names returns pointers to every name part, in source order.
func (t *TypeExpr) Names() []*TypePart {
	if t == nil {
		return nil
	}
	var out []*TypePart
	for k := range t.Parts {
		if t.Parts[k].Name {
			out = append(out, &t.Parts[k])
		}
	}
	return out
}

// Clone returns a deep copy; nil stays nil.
func (t *TypeExpr) Clone() *TypeExpr {
	if t == nil {
		return nil
	}
	return &TypeExpr{Parts: append([]TypePart(nil), t.Parts...)}
}

func isTypeNameByte(b byte) bool {
	return b == '_' || b == '$' || b == '.' || b == '/' || b == '-' || b == '@' ||
		(b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') || (b >= '0' && b <= '9') || b >= 0x80
}

// ParseType splits a type expression. Record keys ("a" in {a: T}), the
// function keyword and the this:/new: prefixes of function types are not names.
func ParseType(text string) *TypeExpr {
	t := &TypeExpr{}
	i := 0
	for i < len(text) {
		start := i
		if !isTypeNameByte(text[i]) {
			for i < len(text) && !isTypeNameByte(text[i]) {
				i++
			}
			t.Parts = append(t.Parts, TypePart{Text: text[start:i]})
			continue
		}
		for i < len(text) && isTypeNameByte(text[i]) {
			i++
		}
		word := text[start:i]
		rest := strings.TrimLeft(text[i:], " ")
		name := true
		switch {
		case strings.HasPrefix(rest, ":"):
			name = false
		case word == "function" && strings.HasPrefix(rest, "("):
			name = false
		case word == "..." || strings.Trim(word, ".") == "":
			name = false
		}
		if strings.HasPrefix(word, "...") && len(word) > 3 {
			t.Parts = append(t.Parts, TypePart{Text: "..."})
			word = word[3:]
		}
		t.Parts = append(t.Parts, TypePart{Text: word, Name: name})
	}
	return t
}
