package cppdoc

import (
	"context"
	"errors"
	"strings"
	"testing"

	"graft/internal/syntax"
)

func TestQueryMethodDefinition_Scoped(t *testing.T) {
	d := newTestDoc(t, "shape.cpp", classFixture)
	matches, err := d.QueryMethodDefinition(context.Background(), "Shape", "area")
	if err != nil {
		t.Fatalf("QueryMethodDefinition failed: %v", err)
	}
	if len(matches) != 1 {
		t.Fatalf("expected 1 match, got %d", len(matches))
	}
	m := matches[0]
	if m.Scope != "Shape" || m.Name != "area" {
		t.Errorf("expected Shape::area, got %s::%s", m.Scope, m.Name)
	}
	if m.ReturnType != "double" {
		t.Errorf("expected return type double, got %s", m.ReturnType)
	}
	if m.Body.IsEmpty() {
		t.Error("expected a body range for a definition")
	}
	if len(m.Parameters) != 0 {
		t.Errorf("expected no parameters, got %d", len(m.Parameters))
	}
	if got := d.TextRange(m.Range); got != "double Shape::area() const {\n    return 0;\n}" {
		t.Errorf("unexpected definition range: %q", got)
	}
}

func TestQueryMethodDefinition_FreeFunction(t *testing.T) {
	d := newTestDoc(t, "shape.cpp", classFixture)
	matches, err := d.QueryMethodDefinition(context.Background(), "", "twice")
	if err != nil {
		t.Fatalf("QueryMethodDefinition failed: %v", err)
	}
	if len(matches) != 1 {
		t.Fatalf("expected 1 match, got %d", len(matches))
	}
	m := matches[0]
	if m.Scope != "" || m.Name != "twice" {
		t.Errorf("expected the free function twice, got %s::%s", m.Scope, m.Name)
	}
	if len(m.Parameters) != 1 || m.Parameters[0].Text != "double x" {
		t.Errorf("expected one parameter \"double x\", got %v", m.Parameters)
	}
}

func TestQueryMethodDeclaration(t *testing.T) {
	d := newTestDoc(t, "shape.cpp", classFixture)
	matches, err := d.QueryMethodDeclaration(context.Background(), "Shape", "area")
	if err != nil {
		t.Fatalf("QueryMethodDeclaration failed: %v", err)
	}
	if len(matches) != 1 {
		t.Fatalf("expected 1 match, got %d", len(matches))
	}
	m := matches[0]
	if got := d.TextRange(m.Range); got != "virtual double area() const;" {
		t.Errorf("unexpected declaration range: %q", got)
	}
	if !m.Body.IsEmpty() {
		t.Error("expected no body range for a declaration")
	}
}

func TestQueryClassDefinition(t *testing.T) {
	d := newTestDoc(t, "shape.cpp", classFixture)
	match, err := d.QueryClassDefinition(context.Background(), "Shape")
	if err != nil {
		t.Fatalf("QueryClassDefinition failed: %v", err)
	}
	if !match.Found() {
		t.Fatal("expected to find class Shape")
	}
	if match.ClassName != "Shape" {
		t.Errorf("expected class name Shape, got %s", match.ClassName)
	}
	body := d.TextRange(match.Body.Range)
	if !strings.HasPrefix(body, "{") || !strings.HasSuffix(body, "}") {
		t.Errorf("expected the body range to span the braces, got %q", body)
	}
	if !strings.HasPrefix(d.TextRange(match.Range), "class Shape") {
		t.Errorf("unexpected class range: %q", d.TextRange(match.Range))
	}
}

func TestQueryClassDefinition_Struct(t *testing.T) {
	d := newTestDoc(t, "point.h", "struct Point {\n    int x;\n    int y;\n};\n")
	match, err := d.QueryClassDefinition(context.Background(), "Point")
	if err != nil {
		t.Fatalf("QueryClassDefinition failed: %v", err)
	}
	if !match.Found() {
		t.Fatal("expected to find struct Point")
	}
	if match.ClassName != "Point" {
		t.Errorf("expected class name Point, got %s", match.ClassName)
	}
}

func TestQueryClassDefinition_Unknown(t *testing.T) {
	d := newTestDoc(t, "shape.cpp", classFixture)
	match, err := d.QueryClassDefinition(context.Background(), "Circle")
	if err != nil {
		t.Fatalf("QueryClassDefinition failed: %v", err)
	}
	if match.Found() {
		t.Errorf("expected no match for Circle, got %v", match)
	}
}

func TestQueryMember(t *testing.T) {
	d := newTestDoc(t, "shape.cpp", classFixture)
	match, err := d.QueryMember(context.Background(), "Shape", "m_sides")
	if err != nil {
		t.Fatalf("QueryMember failed: %v", err)
	}
	if !match.Found() {
		t.Fatal("expected to find m_sides")
	}
	if match.Type != "int" {
		t.Errorf("expected type int, got %s", match.Type)
	}
	if got := d.TextRange(match.Range); got != "int m_sides;" {
		t.Errorf("unexpected member range: %q", got)
	}
}

func TestQueryMember_Pointer(t *testing.T) {
	d := newTestDoc(t, "holder.h", "class Holder {\nprivate:\n    QString *m_name;\n};\n")
	match, err := d.QueryMember(context.Background(), "Holder", "m_name")
	if err != nil {
		t.Fatalf("QueryMember failed: %v", err)
	}
	if !match.Found() {
		t.Fatal("expected to find the pointer member")
	}
	if match.Type != "QString" {
		t.Errorf("expected type QString, got %s", match.Type)
	}
}

func TestQueryMember_Unknown(t *testing.T) {
	d := newTestDoc(t, "shape.cpp", classFixture)
	match, err := d.QueryMember(context.Background(), "Shape", "m_missing")
	if err != nil {
		t.Fatalf("QueryMember failed: %v", err)
	}
	if match.Found() {
		t.Errorf("expected no match, got %v", match)
	}
}

func TestQueryFunctionCall(t *testing.T) {
	d := newTestDoc(t, "calls.cpp", `void driver() {
    setup();
    obj.run(1, 2);
    run(3);
}
`)
	matches, err := d.QueryFunctionCall(context.Background(), "run")
	if err != nil {
		t.Fatalf("QueryFunctionCall failed: %v", err)
	}
	if len(matches) != 2 {
		t.Fatalf("expected 2 calls, got %d", len(matches))
	}
	if len(matches[0].Arguments) != 2 {
		t.Fatalf("expected 2 arguments, got %d", len(matches[0].Arguments))
	}
	if matches[0].Arguments[0].Text != "1" || matches[0].Arguments[1].Text != "2" {
		t.Errorf("unexpected arguments: %v", matches[0].Arguments)
	}
	if len(matches[1].Arguments) != 1 || matches[1].Arguments[0].Text != "3" {
		t.Errorf("unexpected arguments: %v", matches[1].Arguments)
	}

	matches, err = d.QueryFunctionCall(context.Background(), "setup")
	if err != nil {
		t.Fatalf("QueryFunctionCall failed: %v", err)
	}
	if len(matches) != 1 {
		t.Fatalf("expected 1 call, got %d", len(matches))
	}
	if len(matches[0].Arguments) != 0 {
		t.Errorf("expected no arguments, got %v", matches[0].Arguments)
	}
}

func TestQuery_Raw(t *testing.T) {
	d := newTestDoc(t, "shape.cpp", classFixture)
	matches, err := d.Query(context.Background(), `(function_definition) @def`)
	if err != nil {
		t.Fatalf("Query failed: %v", err)
	}
	if len(matches) != 2 {
		t.Errorf("expected 2 function definitions, got %d", len(matches))
	}
}

func TestQuery_Invalid(t *testing.T) {
	d := newTestDoc(t, "shape.cpp", classFixture)
	if _, err := d.Query(context.Background(), "((("); !errors.Is(err, syntax.ErrInvalidQuery) {
		t.Errorf("expected ErrInvalidQuery, got %v", err)
	}
}

func TestQueryInRange_LimitsMatches(t *testing.T) {
	d := newTestDoc(t, "shape.cpp", classFixture)
	class, err := d.QueryClassDefinition(context.Background(), "Shape")
	if err != nil {
		t.Fatalf("QueryClassDefinition failed: %v", err)
	}
	if !class.Found() {
		t.Fatal("expected to find class Shape")
	}

	matches, err := d.QueryInRange(context.Background(), `(field_declaration) @f`, class.Body.Range)
	if err != nil {
		t.Fatalf("QueryInRange failed: %v", err)
	}
	if len(matches) != 2 {
		t.Errorf("expected 2 field declarations inside the class, got %d", len(matches))
	}

	matches, err = d.QueryInRange(context.Background(), `(function_definition) @f`, class.Body.Range)
	if err != nil {
		t.Fatalf("QueryInRange failed: %v", err)
	}
	if len(matches) != 0 {
		t.Errorf("expected no function definitions inside the class body, got %d", len(matches))
	}
}
