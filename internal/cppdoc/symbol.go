package cppdoc

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"graft/internal/syntax"
	"graft/internal/text"
)

// SymbolKind classifies a symbol.
type SymbolKind int

const (
	SymbolFunction SymbolKind = iota
	SymbolMethod
	SymbolClass
	SymbolMember
)

func (k SymbolKind) String() string {
	switch k {
	case SymbolFunction:
		return "function"
	case SymbolMethod:
		return "method"
	case SymbolClass:
		return "class"
	case SymbolMember:
		return "member"
	}
	return "unknown"
}

// Symbol is one named entity of the document. Methods and members
// carry their class scope in the name, for example "MyClass::run".
type Symbol struct {
	Name       string
	Kind       SymbolKind
	Range      text.Range
	Signature  string
	ReturnType string
}

// IsFunction reports whether the symbol is a free function or method.
func (s Symbol) IsFunction() bool {
	return s.Kind == SymbolFunction || s.Kind == SymbolMethod
}

// signatureOf renders a comparable description of a function from its
// return type and parameter types, for example "int (QString, bool)".
func signatureOf(returnType string, params []syntax.Capture) string {
	types := make([]string, 0, len(params))
	for _, p := range params {
		types = append(types, p.Text)
	}
	return strings.TrimSpace(returnType + " (" + strings.Join(types, ", ") + ")")
}

// functionDeclaratorPattern matches a function declarator around the
// given name node, covering plain, pointer and reference returns, and
// captures each parameter type.
func functionDeclaratorPattern(nameNode string) string {
	inner := fmt.Sprintf(`(function_declarator
      declarator: %s
      parameters: (parameter_list
        [(parameter_declaration type: (_) @parameterType)
         (optional_parameter_declaration type: (_) @parameterType)]*))`, nameNode)
	return fmt.Sprintf(`[%s
    (pointer_declarator declarator: %s)
    (reference_declarator %s)]`, inner, inner, inner)
}

var (
	symbolFunctionDefinitions = fmt.Sprintf(`(function_definition
  type: (_)? @returnType
  declarator: %s) @definition`, functionDeclaratorPattern(`(_) @name`))

	symbolMethodDeclarations = fmt.Sprintf(`(class_specifier
  name: (_) @className
  body: (field_declaration_list
    (field_declaration
      type: (_)? @returnType
      declarator: %s) @declaration))`, functionDeclaratorPattern(`(field_identifier) @name`))

	symbolInlineMethodDefinitions = fmt.Sprintf(`(class_specifier
  name: (_) @className
  body: (field_declaration_list
    (function_definition
      type: (_)? @returnType
      declarator: %s) @definition))`, functionDeclaratorPattern(`(field_identifier) @name`))

	symbolFreeDeclarations = fmt.Sprintf(`(translation_unit
  (declaration
    type: (_)? @returnType
    declarator: %s) @declaration)`, functionDeclaratorPattern(`(_) @name`))
)

const symbolClasses = `[(class_specifier name: (_) @name body: (_))
 (struct_specifier name: (_) @name body: (_))] @definition`

const symbolMembers = `(class_specifier
  name: (_) @className
  body: (field_declaration_list
    (field_declaration
      type: (_) @type
      declarator: [(field_identifier) @name
                   (pointer_declarator (field_identifier) @name)
                   (reference_declarator (field_identifier) @name)
                   (array_declarator declarator: (field_identifier) @name)]) @declaration))`

// functionSymbol builds a function or method symbol from one query
// match. className qualifies the name when the match came from inside
// a class body.
func functionSymbol(m syntax.Match, rangeCapture, className string) *Symbol {
	nameCap, ok := m.Get("name")
	if !ok {
		return nil
	}
	spanCap, ok := m.Get(rangeCapture)
	if !ok {
		return nil
	}
	name := nameCap.Text
	if className != "" {
		name = className + "::" + name
	}
	returnType := ""
	if c, ok := m.Get("returnType"); ok {
		returnType = c.Text
	}
	kind := SymbolFunction
	if strings.Contains(name, "::") {
		kind = SymbolMethod
	}
	return &Symbol{
		Name:       name,
		Kind:       kind,
		Range:      spanCap.Range,
		Signature:  signatureOf(returnType, m.GetAll("parameterType")),
		ReturnType: returnType,
	}
}

func className(m syntax.Match) string {
	if c, ok := m.Get("className"); ok {
		return c.Text
	}
	return ""
}

// Symbols returns the functions, methods, classes and data members of
// the document, ordered by position.
func (d *Document) Symbols(ctx context.Context) ([]Symbol, error) {
	var symbols []Symbol

	matches, err := d.query(ctx, symbolFunctionDefinitions)
	if err != nil {
		return nil, err
	}
	for _, m := range matches {
		if sym := functionSymbol(m, "definition", ""); sym != nil {
			symbols = append(symbols, *sym)
		}
	}

	matches, err = d.query(ctx, symbolInlineMethodDefinitions)
	if err != nil {
		return nil, err
	}
	for _, m := range matches {
		if sym := functionSymbol(m, "definition", className(m)); sym != nil {
			symbols = append(symbols, *sym)
		}
	}

	matches, err = d.query(ctx, symbolMethodDeclarations)
	if err != nil {
		return nil, err
	}
	for _, m := range matches {
		if sym := functionSymbol(m, "declaration", className(m)); sym != nil {
			symbols = append(symbols, *sym)
		}
	}

	matches, err = d.query(ctx, symbolFreeDeclarations)
	if err != nil {
		return nil, err
	}
	for _, m := range matches {
		if sym := functionSymbol(m, "declaration", ""); sym != nil {
			symbols = append(symbols, *sym)
		}
	}

	matches, err = d.query(ctx, symbolClasses)
	if err != nil {
		return nil, err
	}
	for _, m := range matches {
		nameCap, ok := m.Get("name")
		if !ok {
			continue
		}
		spanCap, ok := m.Get("definition")
		if !ok {
			continue
		}
		symbols = append(symbols, Symbol{
			Name:  nameCap.Text,
			Kind:  SymbolClass,
			Range: spanCap.Range,
		})
	}

	matches, err = d.query(ctx, symbolMembers)
	if err != nil {
		return nil, err
	}
	for _, m := range matches {
		nameCap, ok := m.Get("name")
		if !ok {
			continue
		}
		spanCap, ok := m.Get("declaration")
		if !ok {
			continue
		}
		memberType := ""
		if c, ok := m.Get("type"); ok {
			memberType = c.Text
		}
		name := nameCap.Text
		if cls := className(m); cls != "" {
			name = cls + "::" + name
		}
		symbols = append(symbols, Symbol{
			Name:       name,
			Kind:       SymbolMember,
			Range:      spanCap.Range,
			ReturnType: memberType,
		})
	}

	sort.SliceStable(symbols, func(i, j int) bool {
		if symbols[i].Range.Start != symbols[j].Range.Start {
			return symbols[i].Range.Start < symbols[j].Range.Start
		}
		if symbols[i].Range.End != symbols[j].Range.End {
			return symbols[i].Range.End < symbols[j].Range.End
		}
		return strings.Contains(symbols[i].Name, "::") && !strings.Contains(symbols[j].Name, "::")
	})

	// Inline method definitions match both the plain and the
	// class-scoped query. Keep one symbol per range, the qualified
	// name sorting first.
	deduped := symbols[:0]
	for i, s := range symbols {
		if i > 0 && s.Range == symbols[i-1].Range {
			continue
		}
		deduped = append(deduped, s)
	}
	return deduped, nil
}

// FindSymbol returns the first symbol with exactly the given name, or
// nil when the document has none.
func (d *Document) FindSymbol(ctx context.Context, name string) (*Symbol, error) {
	symbols, err := d.Symbols(ctx)
	if err != nil {
		return nil, err
	}
	for i := range symbols {
		if symbols[i].Name == name {
			return &symbols[i], nil
		}
	}
	return nil, nil
}

// CurrentSymbol returns the innermost symbol containing the cursor of
// sel, or nil.
func (d *Document) CurrentSymbol(ctx context.Context, sel text.Selection) (*Symbol, error) {
	return d.currentSymbol(ctx, sel, func(Symbol) bool { return true })
}

// CurrentFunction returns the innermost function or method containing
// the cursor of sel, or nil.
func (d *Document) CurrentFunction(ctx context.Context, sel text.Selection) (*Symbol, error) {
	return d.currentSymbol(ctx, sel, Symbol.IsFunction)
}

func (d *Document) currentSymbol(ctx context.Context, sel text.Selection, keep func(Symbol) bool) (*Symbol, error) {
	symbols, err := d.Symbols(ctx)
	if err != nil {
		return nil, err
	}
	cursor := sel.Cursor()
	var best *Symbol
	for i := range symbols {
		s := symbols[i]
		if !keep(s) || !s.Range.Contains(cursor) {
			continue
		}
		if best == nil || s.Range.End-s.Range.Start < best.Range.End-best.Range.Start {
			best = &symbols[i]
		}
	}
	return best, nil
}
