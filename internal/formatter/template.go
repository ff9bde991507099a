// Package formatter provides template parsing, variable resolution, and preset management
// for rendering one-line status output from customizable templates.
package formatter

import (
	"fmt"
	"regexp"
	"strings"
)

// TemplateEngine provides template parsing and variable substitution.
type TemplateEngine interface {
	// Parse returns a list of variables found in the template.
	Parse(template string) ([]string, error)

	// Substitute replaces variables in the template with values from the context.
	Substitute(template string, ctx VariableContext) (string, error)

	// ValidateTemplate checks delimiters and variable names.
	ValidateTemplate(template string) error
}

// templateEngine implements TemplateEngine interface.
type templateEngine struct {
	variablePattern *regexp.Regexp
	resolver        VariableResolver
}

// NewTemplateEngine creates a new template engine instance.
func NewTemplateEngine() TemplateEngine {
	return &templateEngine{
		variablePattern: regexp.MustCompile(`\$\{([a-z0-9-]+)\}`),
		resolver:        NewVariableResolver(),
	}
}

// Parse identifies all variables in a template string using ${variable-name} syntax.
// Returns a list of variable names found, without duplicates.
func (te *templateEngine) Parse(template string) ([]string, error) {
	variables := []string{}
	if template == "" {
		return variables, nil
	}

	seen := make(map[string]bool)
	for _, match := range te.variablePattern.FindAllStringSubmatch(template, -1) {
		if !seen[match[1]] {
			variables = append(variables, match[1])
			seen[match[1]] = true
		}
	}
	return variables, nil
}

// Substitute replaces all variables in the template with values from the context.
// Unknown variables are an error.
func (te *templateEngine) Substitute(template string, ctx VariableContext) (string, error) {
	if template == "" {
		return "", nil
	}

	var firstErr error
	result := te.variablePattern.ReplaceAllStringFunc(template, func(m string) string {
		name := te.variablePattern.FindStringSubmatch(m)[1]
		value, err := te.resolver.Resolve(name, ctx)
		if err != nil && firstErr == nil {
			firstErr = err
		}
		return value
	})
	if firstErr != nil {
		return "", firstErr
	}
	return result, nil
}

// ValidateTemplate checks that every ${ is closed and names a known variable.
func (te *templateEngine) ValidateTemplate(template string) error {
	if template == "" {
		return nil
	}

	openCount := strings.Count(template, "${")
	matches := te.variablePattern.FindAllStringSubmatch(template, -1)
	if openCount != len(matches) {
		return fmt.Errorf("mismatched variable delimiters: %d opens, %d valid variables", openCount, len(matches))
	}
	for _, m := range matches {
		if !IsKnownVariable(m[1]) {
			return fmt.Errorf("unknown variable: %s (available: %s)", m[1], strings.Join(Variables(), ", "))
		}
	}
	return nil
}

// Render validates and substitutes template in one step.
func Render(template string, ctx VariableContext) (string, error) {
	te := NewTemplateEngine()
	if err := te.ValidateTemplate(template); err != nil {
		return "", err
	}
	return te.Substitute(template, ctx)
}
