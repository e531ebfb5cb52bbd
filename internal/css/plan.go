package css

type editKind int

const (
	editSelector editKind = iota
	editValue
	editRemove
	editAppend
	editWarn
)

type edit struct {
	kind    editKind
	rule    *Rule
	decl    *Declaration
	text    string
	rules   []*Rule
	warning Warning
}

// Plan records changes to a stylesheet. Nothing is modified until Apply, which
// performs them in recording order.
type Plan struct {
	edits     []edit
	selectors map[*Rule]string
}

// SetSelector replaces the selector of rule.
func (p *Plan) SetSelector(rule *Rule, selector string) {
	if p.selectors == nil {
		p.selectors = make(map[*Rule]string)
	}
	p.selectors[rule] = selector
	p.edits = append(p.edits, edit{kind: editSelector, rule: rule, text: selector})
}

// Selector returns the selector rule will have once the plan is applied.
func (p *Plan) Selector(rule *Rule) string {
	if selector, ok := p.selectors[rule]; ok {
		return selector
	}
	return rule.Selector
}

// SetValue replaces the value of decl.
func (p *Plan) SetValue(decl *Declaration, value string) {
	p.edits = append(p.edits, edit{kind: editValue, decl: decl, text: value})
}

// Remove drops decl from rule.
func (p *Plan) Remove(rule *Rule, decl *Declaration) {
	p.edits = append(p.edits, edit{kind: editRemove, rule: rule, decl: decl})
}

// Append adds rules to parent, or to the top level when parent is nil.
func (p *Plan) Append(parent *Rule, rules ...*Rule) {
	if len(rules) == 0 {
		return
	}
	p.edits = append(p.edits, edit{kind: editAppend, rule: parent, rules: rules})
}

// Warn records a warning.
func (p *Plan) Warn(w Warning) {
	p.edits = append(p.edits, edit{kind: editWarn, warning: w})
}

// Len returns the number of recorded changes.
func (p *Plan) Len() int {
	return len(p.edits)
}

// Apply performs every recorded change on s.
func (p *Plan) Apply(s *Stylesheet) {
	for _, e := range p.edits {
		switch e.kind {
		case editSelector:
			e.rule.Selector = e.text
		case editValue:
			e.decl.Value = e.text
		case editRemove:
			e.rule.RemoveDeclaration(e.decl)
		case editAppend:
			s.Append(e.rule, e.rules...)
		case editWarn:
			s.Warn(e.warning)
		}
	}
	p.edits = nil
	p.selectors = nil
}
