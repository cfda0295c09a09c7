package cppdoc

import (
	"context"
	"fmt"

	"graft/internal/syntax"
	"graft/internal/text"
)

// Query runs a raw tree query over the whole document. Equality
// predicates (#eq? @capture "text") are honored.
func (d *Document) Query(ctx context.Context, pattern string) ([]syntax.Match, error) {
	return d.query(ctx, pattern)
}

// QueryInRange runs a raw tree query, keeping only the matches fully
// contained in r.
func (d *Document) QueryInRange(ctx context.Context, pattern string, r text.Range) ([]syntax.Match, error) {
	return d.queryInRange(ctx, pattern, r)
}

// methodDefinitionQuery builds the query for definitions of
// scope::name, or of the free function name when scope is empty.
func methodDefinitionQuery(scope, name string) string {
	declarator := fmt.Sprintf(`(identifier) @name (#eq? @name "%s")`, name)
	if scope != "" {
		declarator = fmt.Sprintf(`(qualified_identifier scope: (_) @scope (#eq? @scope "%s") %s)`, scope, declarator)
	}
	return fmt.Sprintf(`(function_definition
  type: (_)? @returnType
  declarator: (function_declarator
    declarator: %s
    parameters: (parameter_list (parameter_declaration)* @parameters) @parameter-list)
  body: (compound_statement) @body) @definition`, declarator)
}

func newMethodMatch(m syntax.Match) MethodMatch {
	mm := MethodMatch{Parameters: m.GetAll("parameters")}
	if c, ok := m.Get("scope"); ok {
		mm.Scope = c.Text
	}
	if c, ok := m.Get("name"); ok {
		mm.Name = c.Text
	}
	if c, ok := m.Get("returnType"); ok {
		mm.ReturnType = c.Text
	}
	if c, ok := m.Get("parameter-list"); ok {
		mm.ParameterList = c.Range
	}
	if c, ok := m.Get("body"); ok {
		mm.Body = c.Range
	}
	if c, ok := m.Get("definition"); ok {
		mm.Range = c.Range
	} else if c, ok := m.Get("declaration"); ok {
		mm.Range = c.Range
	}
	return mm
}

// QueryMethodDefinition returns every definition of scope::name in the
// document. An empty scope matches free functions.
func (d *Document) QueryMethodDefinition(ctx context.Context, scope, name string) ([]MethodMatch, error) {
	matches, err := d.query(ctx, methodDefinitionQuery(scope, name))
	if err != nil {
		return nil, err
	}
	defs := make([]MethodMatch, 0, len(matches))
	for _, m := range matches {
		defs = append(defs, newMethodMatch(m))
	}
	return defs, nil
}

// QueryMethodDeclaration returns the declarations of the given method
// inside the body of className.
func (d *Document) QueryMethodDeclaration(ctx context.Context, className, name string) ([]MethodMatch, error) {
	pattern := fmt.Sprintf(`(class_specifier
  name: (_) @className (#eq? @className "%s")
  body: (field_declaration_list
    (field_declaration
      type: (_) @returnType
      declarator: (function_declarator
        declarator: (field_identifier) @name (#eq? @name "%s")
        parameters: (parameter_list (parameter_declaration)* @parameters) @parameter-list)) @declaration))`, className, name)
	matches, err := d.query(ctx, pattern)
	if err != nil {
		return nil, err
	}
	decls := make([]MethodMatch, 0, len(matches))
	for _, m := range matches {
		decls = append(decls, newMethodMatch(m))
	}
	return decls, nil
}

// QueryClassDefinition returns the class or struct specifier with the
// given name. The zero value means not found.
func (d *Document) QueryClassDefinition(ctx context.Context, className string) (ClassBodyMatch, error) {
	pattern := fmt.Sprintf(`([(class_specifier name: (_) @className body: (_) @classBody)
  (struct_specifier name: (_) @className body: (_) @classBody)] @class
 (#eq? @className "%s"))`, className)
	matches, err := d.query(ctx, pattern)
	if err != nil {
		return ClassBodyMatch{}, err
	}
	if len(matches) == 0 {
		return ClassBodyMatch{}, nil
	}
	m := matches[0]
	result := ClassBodyMatch{}
	if c, ok := m.Get("className"); ok {
		result.ClassName = c.Text
	}
	if c, ok := m.Get("class"); ok {
		result.Range = c.Range
	}
	if c, ok := m.Get("classBody"); ok {
		result.Body = NewRangeMark("classBody", c.Range)
	}
	return result, nil
}

// QueryMember returns the declaration of the given data member inside
// className. The zero value means not found.
func (d *Document) QueryMember(ctx context.Context, className, memberName string) (MemberMatch, error) {
	pattern := fmt.Sprintf(`(class_specifier
  name: (_) @className (#eq? @className "%s")
  body: (field_declaration_list
    (field_declaration
      type: (_) @type
      declarator: [(field_identifier) @name
                   (pointer_declarator (field_identifier) @name)
                   (reference_declarator (field_identifier) @name)]
      (#eq? @name "%s")) @member))`, className, memberName)
	matches, err := d.query(ctx, pattern)
	if err != nil {
		return MemberMatch{}, err
	}
	if len(matches) == 0 {
		return MemberMatch{}, nil
	}
	m := matches[0]
	result := MemberMatch{ClassName: className}
	if c, ok := m.Get("name"); ok {
		result.Name = c.Text
	}
	if c, ok := m.Get("type"); ok {
		result.Type = c.Text
	}
	if c, ok := m.Get("member"); ok {
		result.Range = c.Range
	}
	return result, nil
}

// QueryFunctionCall returns every call of the given function or
// method, with the individual arguments captured.
func (d *Document) QueryFunctionCall(ctx context.Context, name string) ([]FunctionCallMatch, error) {
	pattern := fmt.Sprintf(`((call_expression
  function: [(identifier) @name
             (field_expression field: (field_identifier) @name)]
  arguments: (argument_list ((_) @argument ("," (_) @argument)*)?)) @call
 (#eq? @name "%s"))`, name)
	matches, err := d.query(ctx, pattern)
	if err != nil {
		return nil, err
	}
	calls := make([]FunctionCallMatch, 0, len(matches))
	for _, m := range matches {
		call := FunctionCallMatch{Arguments: m.GetAll("argument")}
		if c, ok := m.Get("name"); ok {
			call.Name = c.Text
		}
		if c, ok := m.Get("call"); ok {
			call.Range = c.Range
		}
		calls = append(calls, call)
	}
	return calls, nil
}
