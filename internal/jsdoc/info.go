package jsdoc

import (
	"strings"
)

// Info is the parsed form of a /** ... */ comment attached to a node.
type Info struct {
	Description string
	Tags        []Tag
}

// Tag is a single @tag with an optional {type} and trailing text.
type Tag struct {
	Name string
	Type *TypeExpr
	Text string
}

// NewConst returns an Info carrying only @const.
func NewConst() *Info {
	return &Info{Tags: []Tag{{Name: "const"}}}
}

// IsConst reports whether the comment declares a constant.
func (i *Info) IsConst() bool {
	if i == nil {
		return false
	}
	for _, t := range i.Tags {
		if t.Name == "const" || t.Name == "define" {
			return true
		}
	}
	return false
}

// MarkConst adds @const unless already present.
func (i *Info) MarkConst() {
	if i.IsConst() {
		return
	}
	i.Tags = append(i.Tags, Tag{Name: "const"})
}

// Types returns every type expression in tag order.
func (i *Info) Types() []*TypeExpr {
	if i == nil {
		return nil
	}
	var out []*TypeExpr
	for k := range i.Tags {
		if i.Tags[k].Type != nil {
			out = append(out, i.Tags[k].Type)
		}
	}
	return out
}

// Clone returns a deep copy.
func (i *Info) Clone() *Info {
	if i == nil {
		return nil
	}
	c := &Info{Description: i.Description, Tags: make([]Tag, len(i.Tags))}
	for k, t := range i.Tags {
		c.Tags[k] = Tag{Name: t.Name, Text: t.Text, Type: t.Type.Clone()}
	}
	return c
}

// String renders the comment on a single line, e.g. "/** @const */".
func (i *Info) String() string {
	if i == nil {
		return ""
	}
	var b strings.Builder
	b.WriteString("/**")
	if i.Description != "" {
		b.WriteByte(' ')
		b.WriteString(i.Description)
	}
	for _, t := range i.Tags {
		b.WriteString(" @")
		b.WriteString(t.Name)
		if t.Type != nil {
			b.WriteString(" {")
			b.WriteString(t.Type.String())
			b.WriteByte('}')
		}
		if t.Text != "" {
			b.WriteByte(' ')
			b.WriteString(t.Text)
		}
	}
	b.WriteString(" */")
	return b.String()
}
