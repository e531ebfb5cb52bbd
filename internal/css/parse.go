package css

import (
	"fmt"
	"strings"

	douceur "github.com/aymerick/douceur/css"
	"github.com/aymerick/douceur/parser"
)

// Parse builds a rule tree from stylesheet text.
func Parse(text string, source Source) (*Stylesheet, error) {
	sheet := &Stylesheet{Source: source}
	if strings.TrimSpace(text) == "" {
		return sheet, nil
	}

	parsed, err := parser.Parse(text)
	if err != nil {
		if source.File != "" {
			return nil, fmt.Errorf("parse stylesheet %s: %w", source.File, err)
		}
		return nil, fmt.Errorf("parse stylesheet: %w", err)
	}

	sheet.Rules = convertRules(parsed.Rules)
	return sheet, nil
}

func convertRules(list []*douceur.Rule) []*Rule {
	out := make([]*Rule, 0, len(list))
	for _, rule := range list {
		if rule == nil {
			continue
		}
		out = append(out, convertRule(rule))
	}
	return out
}

func convertRule(rule *douceur.Rule) *Rule {
	converted := &Rule{Declarations: convertDeclarations(rule.Declarations)}

	if rule.Kind == douceur.AtRule {
		converted.Kind = AtRule
		converted.Name = rule.Name
		converted.Prelude = strings.TrimSpace(rule.Prelude)
		if rule.EmbedsRules() {
			converted.Rules = convertRules(rule.Rules)
		}
		return converted
	}

	converted.Kind = QualifiedRule
	if len(rule.Selectors) > 0 {
		converted.Selector = strings.Join(rule.Selectors, ", ")
	} else {
		converted.Selector = strings.TrimSpace(rule.Prelude)
	}
	return converted
}

func convertDeclarations(list []*douceur.Declaration) []*Declaration {
	out := make([]*Declaration, 0, len(list))
	for _, decl := range list {
		if decl == nil {
			continue
		}
		out = append(out, &Declaration{
			Property:  strings.TrimSpace(decl.Property),
			Value:     strings.TrimSpace(decl.Value),
			Important: decl.Important,
		})
	}
	return out
}
