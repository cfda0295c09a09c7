package cppdoc

import (
	"context"
	"testing"

	"graft/internal/text"
)

const classFixture = `class Shape {
public:
    Shape();
    virtual double area() const;

private:
    int m_sides;
};

double twice(double x) {
    return x * 2;
}

double Shape::area() const {
    return 0;
}
`

func TestSymbols(t *testing.T) {
	d := newTestDoc(t, "shape.cpp", classFixture)
	syms, err := d.Symbols(context.Background())
	if err != nil {
		t.Fatalf("Symbols failed: %v", err)
	}

	want := []struct {
		name string
		kind SymbolKind
	}{
		{"Shape", SymbolClass},
		{"Shape::area", SymbolMethod},
		{"Shape::m_sides", SymbolMember},
		{"twice", SymbolFunction},
		{"Shape::area", SymbolMethod},
	}
	if len(syms) != len(want) {
		t.Fatalf("expected %d symbols, got %d: %v", len(want), len(syms), syms)
	}
	for i, w := range want {
		if syms[i].Name != w.name || syms[i].Kind != w.kind {
			t.Errorf("symbol %d: expected %s (%s), got %s (%s)",
				i, w.name, w.kind, syms[i].Name, syms[i].Kind)
		}
	}
}

func TestSymbols_Signatures(t *testing.T) {
	d := newTestDoc(t, "shape.cpp", classFixture)
	syms, err := d.Symbols(context.Background())
	if err != nil {
		t.Fatalf("Symbols failed: %v", err)
	}

	bySig := map[string]string{}
	for _, s := range syms {
		if s.IsFunction() {
			bySig[s.Name+" "+s.Signature] = s.ReturnType
		}
	}
	if _, ok := bySig["twice double (double)"]; !ok {
		t.Errorf("expected twice with signature double (double), got %v", bySig)
	}
	if _, ok := bySig["Shape::area double ()"]; !ok {
		t.Errorf("expected Shape::area with signature double (), got %v", bySig)
	}
}

func TestSymbols_InlineMethod(t *testing.T) {
	d := newTestDoc(t, "counter.h", `class Counter {
public:
    int value() const { return m_value; }

private:
    int m_value;
};
`)
	syms, err := d.Symbols(context.Background())
	if err != nil {
		t.Fatalf("Symbols failed: %v", err)
	}
	if len(syms) != 3 {
		t.Fatalf("expected 3 symbols, got %d: %v", len(syms), syms)
	}

	sym, err := d.FindSymbol(context.Background(), "Counter::value")
	if err != nil {
		t.Fatalf("FindSymbol failed: %v", err)
	}
	if sym == nil {
		t.Fatal("expected to find Counter::value")
	}
	if sym.Kind != SymbolMethod {
		t.Errorf("expected a method symbol, got %s", sym.Kind)
	}

	plain, err := d.FindSymbol(context.Background(), "value")
	if err != nil {
		t.Fatalf("FindSymbol failed: %v", err)
	}
	if plain != nil {
		t.Errorf("expected the unqualified duplicate to be dropped, got %v", plain)
	}
}

func TestFindSymbol_Unknown(t *testing.T) {
	d := newTestDoc(t, "shape.cpp", classFixture)
	sym, err := d.FindSymbol(context.Background(), "nothere")
	if err != nil {
		t.Fatalf("FindSymbol failed: %v", err)
	}
	if sym != nil {
		t.Errorf("expected nil for an unknown name, got %v", sym)
	}
}

func TestCurrentFunction(t *testing.T) {
	d := newTestDoc(t, "shape.cpp", classFixture)

	sym, err := d.CurrentFunction(context.Background(), text.NewCursor(130))
	if err != nil {
		t.Fatalf("CurrentFunction failed: %v", err)
	}
	if sym == nil || sym.Name != "twice" {
		t.Errorf("expected twice at offset 130, got %v", sym)
	}

	sym, err = d.CurrentFunction(context.Background(), text.NewCursor(180))
	if err != nil {
		t.Fatalf("CurrentFunction failed: %v", err)
	}
	if sym == nil || sym.Name != "Shape::area" {
		t.Errorf("expected Shape::area at offset 180, got %v", sym)
	}

	sym, err = d.CurrentFunction(context.Background(), text.NewCursor(85))
	if err != nil {
		t.Fatalf("CurrentFunction failed: %v", err)
	}
	if sym != nil {
		t.Errorf("expected no function on the member line, got %v", sym)
	}
}

func TestCurrentSymbol_Innermost(t *testing.T) {
	d := newTestDoc(t, "shape.cpp", classFixture)
	sym, err := d.CurrentSymbol(context.Background(), text.NewCursor(85))
	if err != nil {
		t.Fatalf("CurrentSymbol failed: %v", err)
	}
	if sym == nil || sym.Name != "Shape::m_sides" {
		t.Errorf("expected the member inside the class, got %v", sym)
	}
	if sym != nil && sym.Kind != SymbolMember {
		t.Errorf("expected a member symbol, got %s", sym.Kind)
	}
}
