package md

import (
	"fmt"
	"log/slog"

	"github.com/google/cel-go/cel"
	"github.com/k1LoW/errors"
	"github.com/k1LoW/slidefmt"
)

var ErrInvalidRule = errors.New("invalid layout rule")

// Rule sets the layout of every section whose If expression evaluates to true.
//
// If is a CEL expression over the section variables:
//
//	index    int     0-based section index
//	level    int     heading level, 1 for untitled sections
//	title    string  heading text
//	length   int     content length in characters
//	hasCode  bool
//	hasImage bool
type Rule struct {
	If     string `json:"if" yaml:"if"`
	Layout string `json:"layout" yaml:"layout"`
}

type rule struct {
	expr    string
	layout  slidefmt.Layout
	program cel.Program
}

func newRuleEnv() (*cel.Env, error) {
	return cel.NewEnv(
		cel.Variable("index", cel.IntType),
		cel.Variable("level", cel.IntType),
		cel.Variable("title", cel.StringType),
		cel.Variable("length", cel.IntType),
		cel.Variable("hasCode", cel.BoolType),
		cel.Variable("hasImage", cel.BoolType),
	)
}

func compileRules(rules []Rule) ([]*rule, error) {
	env, err := newRuleEnv()
	if err != nil {
		return nil, fmt.Errorf("failed to create CEL environment: %w", err)
	}
	compiled := make([]*rule, 0, len(rules))
	for _, r := range rules {
		layout, ok := slidefmt.LookupLayout(r.Layout)
		if !ok {
			return nil, fmt.Errorf("%w: unknown layout %q", ErrInvalidRule, r.Layout)
		}
		ast, issues := env.Compile(r.If)
		if issues != nil && issues.Err() != nil {
			return nil, fmt.Errorf("%w: %q: %v", ErrInvalidRule, r.If, issues.Err())
		}
		if !ast.OutputType().IsExactType(cel.BoolType) {
			return nil, fmt.Errorf("%w: %q must evaluate to bool", ErrInvalidRule, r.If)
		}
		prg, err := env.Program(ast)
		if err != nil {
			return nil, fmt.Errorf("%w: %q: %v", ErrInvalidRule, r.If, err)
		}
		compiled = append(compiled, &rule{
			expr:    r.If,
			layout:  layout,
			program: prg,
		})
	}
	return compiled, nil
}

// evalRules returns the layout of the first matching rule.
func (c *Converter) evalRules(index int, s *section) (slidefmt.Layout, bool) {
	if len(c.programs) == 0 {
		return slidefmt.LayoutUnspecified, false
	}
	vars := map[string]any{
		"index":    index,
		"level":    s.level,
		"title":    s.title,
		"length":   s.length(),
		"hasCode":  s.hasCode,
		"hasImage": s.hasImage,
	}
	for _, r := range c.programs {
		out, _, err := r.program.Eval(vars)
		if err != nil {
			c.logger.Warn("failed to evaluate layout rule", slog.String("rule", r.expr), slog.String("error", err.Error()))
			continue
		}
		if matched, ok := out.Value().(bool); ok && matched {
			return r.layout, true
		}
	}
	return slidefmt.LayoutUnspecified, false
}
