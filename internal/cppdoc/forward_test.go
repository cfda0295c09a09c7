package cppdoc

import "testing"

func TestInsertForwardDeclaration_Simple(t *testing.T) {
	d := newTestDoc(t, "foo.h", "#include <vector>\n")
	if !d.InsertForwardDeclaration("class Foo") {
		t.Fatal("expected InsertForwardDeclaration to succeed")
	}
	if d.Text() != "#include <vector>\n\nclass Foo;\n" {
		t.Errorf("unexpected text:\n%s", d.Text())
	}
}

func TestInsertForwardDeclaration_Namespaced(t *testing.T) {
	d := newTestDoc(t, "foo.h", "#include <vector>\n")
	if !d.InsertForwardDeclaration("class Foo::Bar") {
		t.Fatal("expected InsertForwardDeclaration to succeed")
	}
	want := `#include <vector>

namespace Foo {
class Bar;
}
`
	if d.Text() != want {
		t.Errorf("expected the declaration nested in its namespace:\n%s", d.Text())
	}
}

func TestInsertForwardDeclaration_NestedNamespaces(t *testing.T) {
	d := newTestDoc(t, "foo.h", "#include <vector>\n")
	if !d.InsertForwardDeclaration("struct A::B::C") {
		t.Fatal("expected InsertForwardDeclaration to succeed")
	}
	want := `#include <vector>

namespace A {
namespace B {
struct C;
}
}
`
	if d.Text() != want {
		t.Errorf("expected one namespace block per scope:\n%s", d.Text())
	}
}

func TestInsertForwardDeclaration_AfterLastInclude(t *testing.T) {
	d := newTestDoc(t, "foo.h", "#include <a>\n#include <b>\n\nint x;\n")
	if !d.InsertForwardDeclaration("class Foo") {
		t.Fatal("expected InsertForwardDeclaration to succeed")
	}
	want := `#include <a>
#include <b>

class Foo;

int x;
`
	if d.Text() != want {
		t.Errorf("expected the declaration below the last include:\n%s", d.Text())
	}
}

func TestInsertForwardDeclaration_AlreadyDeclared(t *testing.T) {
	fixture := "#include <vector>\n\nclass Foo;\n"
	d := newTestDoc(t, "foo.h", fixture)
	if !d.InsertForwardDeclaration("class Foo") {
		t.Fatal("expected InsertForwardDeclaration to report success")
	}
	if d.Text() != fixture {
		t.Errorf("expected the text to stay unchanged:\n%s", d.Text())
	}
	if d.Dirty() {
		t.Error("expected no edit for an already declared name")
	}
}

func TestInsertForwardDeclaration_NotAHeader(t *testing.T) {
	d := newTestDoc(t, "foo.cpp", "#include <vector>\n")
	if d.InsertForwardDeclaration("class Foo") {
		t.Error("expected InsertForwardDeclaration to refuse a source file")
	}
}

func TestInsertForwardDeclaration_Malformed(t *testing.T) {
	d := newTestDoc(t, "foo.h", "#include <vector>\n")
	for _, decl := range []string{"Foo", "enum Foo", "class", "class "} {
		if d.InsertForwardDeclaration(decl) {
			t.Errorf("expected InsertForwardDeclaration(%q) to fail", decl)
		}
	}
	if d.Text() != "#include <vector>\n" {
		t.Errorf("expected the text to stay unchanged:\n%s", d.Text())
	}
}

func TestInsertForwardDeclaration_NoInclude(t *testing.T) {
	d := newTestDoc(t, "foo.h", "class A;\n")
	if d.InsertForwardDeclaration("class Foo") {
		t.Error("expected InsertForwardDeclaration to fail without an include anchor")
	}
	if d.Text() != "class A;\n" {
		t.Errorf("expected the text to stay unchanged:\n%s", d.Text())
	}
}
