package css

import (
	"strings"
)

// String renders the stylesheet with one declaration per line.
func (s *Stylesheet) String() string {
	var b strings.Builder
	for i, rule := range s.Rules {
		if i > 0 {
			b.WriteString("\n")
		}
		writeRule(&b, rule, 0)
	}
	return b.String()
}

// Compact renders the stylesheet without optional whitespace, e.g. `a{color:red}`.
func (s *Stylesheet) Compact() string {
	var b strings.Builder
	for _, rule := range s.Rules {
		writeCompact(&b, rule)
	}
	return b.String()
}

// String renders a single rule.
func (r *Rule) String() string {
	var b strings.Builder
	writeRule(&b, r, 0)
	return b.String()
}

// DeclarationsString renders declarations as `prop: value;` pairs.
func (r *Rule) DeclarationsString() string {
	var b strings.Builder
	for _, d := range r.Declarations {
		b.WriteString(d.String())
	}
	return b.String()
}

// String renders the declaration as `prop: value;`.
func (d *Declaration) String() string {
	return d.Property + ": " + d.value(" ") + ";"
}

func (d *Declaration) value(sep string) string {
	if d.Important {
		return d.Value + sep + "!important"
	}
	return d.Value
}

func header(r *Rule) string {
	if r.Kind == AtRule {
		if r.Prelude == "" {
			return r.Name
		}
		return r.Name + " " + r.Prelude
	}
	return r.Selector
}

func writeRule(b *strings.Builder, r *Rule, depth int) {
	indent := strings.Repeat("  ", depth)
	b.WriteString(indent)
	b.WriteString(header(r))

	if r.Kind == AtRule && len(r.Rules) == 0 && len(r.Declarations) == 0 {
		b.WriteString(";\n")
		return
	}

	b.WriteString(" {\n")
	for _, d := range r.Declarations {
		b.WriteString(indent + "  " + d.String() + "\n")
	}
	for _, child := range r.Rules {
		writeRule(b, child, depth+1)
	}
	b.WriteString(indent + "}\n")
}

func writeCompact(b *strings.Builder, r *Rule) {
	b.WriteString(header(r))
	if r.Kind == AtRule && len(r.Rules) == 0 && len(r.Declarations) == 0 {
		b.WriteString(";")
		return
	}

	b.WriteString("{")
	for i, d := range r.Declarations {
		if i > 0 {
			b.WriteString(";")
		}
		b.WriteString(d.Property + ":" + d.value(""))
	}
	for _, child := range r.Rules {
		writeCompact(b, child)
	}
	b.WriteString("}")
}
