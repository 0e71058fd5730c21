package jsdoc

import (
	"reflect"
	"testing"
)

func TestParseConst(t *testing.T) {
	info := Parse("/** @const */")
	if !info.IsConst() {
		t.Fatalf("got %+v", info)
	}
	if got := info.String(); got != "/** @const */" {
		t.Errorf("String() = %q", got)
	}
	if Parse("/* @const */") != nil {
		t.Error("plain block comment parsed as JSDoc")
	}
}

func TestParseMultilineTags(t *testing.T) {
	info := Parse(`/**
 * Adds two values.
 * @param {number} a first
 * @param {!Array<string>|null} b
 * @return {./lib/a.Widget}
 */`)
	if info.Description != "Adds two values." {
		t.Errorf("description = %q", info.Description)
	}
	if len(info.Tags) != 3 {
		t.Fatalf("tags = %+v", info.Tags)
	}
	if info.Tags[0].Name != "param" || info.Tags[0].Text != "a first" {
		t.Errorf("tag 0 = %+v", info.Tags[0])
	}
	if got := info.Tags[1].Type.String(); got != "!Array<string>|null" {
		t.Errorf("type 1 = %q", got)
	}
	want := "/** Adds two values. @param {number} a first @param {!Array<string>|null} b @return {./lib/a.Widget} */"
	if got := info.String(); got != want {
		t.Errorf("String() = %q", got)
	}
}

func TestTypeNames(t *testing.T) {
	tests := []struct {
		in    string
		names []string
	}{
		{"foo.Bar", []string{"foo.Bar"}},
		{"!Array<./a.Item>", []string{"Array", "./a.Item"}},
		{"function(this:Foo, number): string", []string{"Foo", "number", "string"}},
		{"{key: Value, other: ?Thing}", []string{"Value", "Thing"}},
		{"...Rest", []string{"Rest"}},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			te := ParseType(tt.in)
			var got []string
			for _, n := range te.Names() {
				got = append(got, n.Text)
			}
			if !reflect.DeepEqual(got, tt.names) {
				t.Errorf("names = %q, want %q", got, tt.names)
			}
			if te.String() != tt.in {
				t.Errorf("round trip = %q", te.String())
			}
		})
	}
}

func TestRenameAndClone(t *testing.T) {
	info := Parse("/** @type {Foo|Bar} */")
	clone := info.Clone()
	for _, n := range info.Types()[0].Names() {
		n.Text = "module$x.default." + n.Text
	}
	if got := info.String(); got != "/** @type {module$x.default.Foo|module$x.default.Bar} */" {
		t.Errorf("renamed = %q", got)
	}
	if got := clone.String(); got != "/** @type {Foo|Bar} */" {
		t.Errorf("clone changed: %q", got)
	}
	clone.MarkConst()
	clone.MarkConst()
	if len(clone.Tags) != 2 || !clone.IsConst() {
		t.Errorf("MarkConst: %+v", clone.Tags)
	}
}
