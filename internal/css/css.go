// Package css holds the mutable rule tree that theme processing rewrites in place.
package css

// Kind distinguishes qualified (selector) rules from at-rules.
type Kind int

const (
	// QualifiedRule is a selector rule such as `a { color: red }`.
	QualifiedRule Kind = iota
	// AtRule is a rule such as `@media (...) { ... }`.
	AtRule
)

// Source describes where a stylesheet came from.
type Source struct {
	File string
}

// Declaration is a single property/value pair.
type Declaration struct {
	Property  string
	Value     string
	Important bool
}

// Clone returns a copy of the declaration.
func (d *Declaration) Clone() *Declaration {
	c := *d
	return &c
}

// Rule is a node of the rule tree.
type Rule struct {
	Kind         Kind
	Selector     string
	Name         string
	Prelude      string
	Declarations []*Declaration
	Rules        []*Rule
}

// NewRule builds a qualified rule.
func NewRule(selector string, decls ...*Declaration) *Rule {
	return &Rule{Kind: QualifiedRule, Selector: selector, Declarations: decls}
}

// Decl builds a declaration.
func Decl(property, value string) *Declaration {
	return &Declaration{Property: property, Value: value}
}

// CloneEmpty copies a rule's header with no declarations or children.
func (r *Rule) CloneEmpty(selector string) *Rule {
	return &Rule{Kind: r.Kind, Selector: selector, Name: r.Name, Prelude: r.Prelude}
}

// Append adds declarations to the rule.
func (r *Rule) Append(decls ...*Declaration) {
	r.Declarations = append(r.Declarations, decls...)
}

// RemoveDeclaration drops decl from the rule, if present.
func (r *Rule) RemoveDeclaration(decl *Declaration) {
	for i, d := range r.Declarations {
		if d == decl {
			r.Declarations = append(r.Declarations[:i], r.Declarations[i+1:]...)
			return
		}
	}
}

// Warning is a non-fatal diagnostic raised while processing.
type Warning struct {
	Message  string
	Selector string
	Property string
}

// Stylesheet is the root of a rule tree.
type Stylesheet struct {
	Source   Source
	Rules    []*Rule
	Warnings []Warning

	processed bool
}

// Processed reports whether themes were already applied to this stylesheet.
func (s *Stylesheet) Processed() bool {
	return s.processed
}

// MarkProcessed flags the stylesheet so later runs leave it untouched.
func (s *Stylesheet) MarkProcessed() {
	s.processed = true
}

// Warn records a warning.
func (s *Stylesheet) Warn(w Warning) {
	s.Warnings = append(s.Warnings, w)
}

// Append adds rules to parent, or to the top level when parent is nil.
func (s *Stylesheet) Append(parent *Rule, rules ...*Rule) {
	if parent == nil {
		s.Rules = append(s.Rules, rules...)
		return
	}
	parent.Rules = append(parent.Rules, rules...)
}

// WalkRules visits every qualified rule depth-first, including those nested in
// at-rules. parent is the enclosing at-rule, or nil at the top level. The walk
// stops at the first error.
func (s *Stylesheet) WalkRules(fn func(rule, parent *Rule) error) error {
	return walk(s.Rules, nil, fn)
}

func walk(rules []*Rule, parent *Rule, fn func(rule, parent *Rule) error) error {
	for _, rule := range rules {
		if rule.Kind == AtRule {
			if err := walk(rule.Rules, rule, fn); err != nil {
				return err
			}
			continue
		}
		if err := fn(rule, parent); err != nil {
			return err
		}
	}
	return nil
}
