package cppdoc

import (
	"context"
	"fmt"
	"strings"

	"graft/internal/text"
)

// AccessSpecifier is a C++ member access level.
type AccessSpecifier int

const (
	AccessPublic AccessSpecifier = iota
	AccessProtected
	AccessPrivate
)

func (a AccessSpecifier) String() string {
	switch a {
	case AccessPublic:
		return "public"
	case AccessProtected:
		return "protected"
	case AccessPrivate:
		return "private"
	}
	return "unknown"
}

// ParseAccessSpecifier converts "public", "protected" or "private"
// into the matching specifier.
func ParseAccessSpecifier(s string) (AccessSpecifier, error) {
	switch strings.ToLower(s) {
	case "public":
		return AccessPublic, nil
	case "protected":
		return AccessProtected, nil
	case "private":
		return AccessPrivate, nil
	}
	return AccessPublic, fmt.Errorf("%w: %q", ErrUnknownAccessSpecifier, s)
}

// findClassBody returns a mark over the body of the given class,
// braces included.
func (d *Document) findClassBody(ctx context.Context, className string) (RangeMark, error) {
	pattern := fmt.Sprintf(`(class_specifier
  name: (_) @className (#eq? @className "%s")
  body: (_) @classBody)`, className)
	matches, err := d.query(ctx, pattern)
	if err != nil {
		return RangeMark{}, err
	}
	if len(matches) == 0 {
		return RangeMark{}, nil
	}
	if c, ok := matches[0].Get("classBody"); ok {
		return NewRangeMark("classBody", c.Range), nil
	}
	return RangeMark{}, nil
}

// AddMember adds a data member declaration to the given access section
// of a class, for example AddMember(ctx, "int m_count", "MyClass",
// AccessPrivate). The member lands after the last entry of the
// section; a missing section is created at the end of the class body.
func (d *Document) AddMember(ctx context.Context, member, className string, specifier AccessSpecifier) bool {
	d.addMemberOrMethod(ctx, member, className, specifier)
	return true
}

// AddMethodDeclaration adds a method declaration to the given access
// section of a class, following the same placement rules as AddMember.
func (d *Document) AddMethodDeclaration(ctx context.Context, declaration, className string, specifier AccessSpecifier) bool {
	d.addMemberOrMethod(ctx, declaration, className, specifier)
	return true
}

func (d *Document) addMemberOrMethod(ctx context.Context, member, className string, specifier AccessSpecifier) bool {
	memberText := member + ";"

	classBody, err := d.findClassBody(ctx, className)
	if err != nil {
		log.Errorf("adding %s: %s", member, err)
		return false
	}
	if !classBody.IsValid() {
		log.Errorf("can't find class '%s' in %s", className, d.path)
		return false
	}

	pattern := fmt.Sprintf(`(field_declaration_list
  (access_specifier "%s") @access
  .
  [(declaration) (comment) (field_declaration)]* @field)`, specifier)
	matches, err := d.queryInRange(ctx, pattern, classBody.Range)
	if err != nil {
		log.Errorf("adding %s: %s", member, err)
		return false
	}

	if len(matches) == 0 {
		return d.addSpecifierSection(ctx, memberText, specifier, classBody)
	}

	last := matches[len(matches)-1]
	var pos text.ByteOffset
	if fields := last.GetAll("field"); len(fields) > 0 {
		pos = fields[len(fields)-1].Range.End
	} else if access, ok := last.Get("access"); ok {
		// Empty section: append right after the specifier. The ":"
		// is a separate token after the access_specifier node.
		pos = access.Range.End
		for {
			b, ok := d.buffer.ByteAt(pos)
			if ok && (b == ' ' || b == '\t') {
				pos++
				continue
			}
			if ok && b == ':' {
				pos++
			}
			break
		}
	} else {
		log.Errorf("can't find a position in class '%s' to add %s", className, member)
		return false
	}

	insertion := "\n" + d.buffer.IndentationAt(pos) + memberText
	d.beginEdit("add member", text.NewCursor(pos))
	if err := d.insertAt(pos, insertion); err != nil {
		d.cancelEdit()
		return false
	}
	d.endEdit(text.NewCursor(pos + len(insertion)))
	return true
}

// addSpecifierSection creates a new access section at the end of the
// class body and puts the member into it.
func (d *Document) addSpecifierSection(ctx context.Context, memberText string, specifier AccessSpecifier, classBody RangeMark) bool {
	matches, err := d.queryInRange(ctx, `(field_declaration_list (_) @pos)`, classBody.Range)
	if err != nil {
		log.Errorf("adding a %s: section: %s", specifier, err)
		return false
	}
	if len(matches) == 0 {
		log.Errorf("can't find a position to add a %s: section", specifier)
		return false
	}
	c, ok := matches[len(matches)-1].Get("pos")
	if !ok {
		log.Errorf("can't find a position to add a %s: section", specifier)
		return false
	}

	pos := c.Range.End
	insertion := fmt.Sprintf("\n\n%s:\n%s%s", specifier, d.buffer.IndentationAt(pos), memberText)
	d.beginEdit("add member", text.NewCursor(pos))
	if err := d.insertAt(pos, insertion); err != nil {
		d.cancelEdit()
		return false
	}
	d.endEdit(text.NewCursor(pos + len(insertion)))
	return true
}
