package regex

import (
	"regexp"
	"strings"

	"github.com/dlclark/regexp2"
	"gitlab.com/tozd/go/errors"

	"github.com/omegaatt36/batchren/internal/domain"
	"github.com/omegaatt36/batchren/internal/port"
)

// shortcuts maps user-friendly shortcut tokens to regex patterns.
var shortcuts = map[string]string{
	"[serial]": `(\d+)`,
	"[number]": `(\d+)`,
	"[any]":    `(.*)`,
	"[word]":   `(\w+)`,
	"[alpha]":  `([a-zA-Z]+)`,
}

// ExpandShortcuts replaces shortcut tokens in pattern with their regex form.
func ExpandShortcuts(pattern string) string {
	result := pattern
	for shortcut, regex := range shortcuts {
		result = strings.ReplaceAll(result, shortcut, regex)
	}
	return result
}

// Engine implements port.PatternCompiler using Go's RE2 regexp package.
type Engine struct {
	Shortcuts bool
}

func (e *Engine) Compile(pattern string) (domain.Replacer, error) {
	if e.Shortcuts {
		pattern = ExpandShortcuts(pattern)
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, errors.Errorf("%w: %s", domain.ErrInvalidPattern, err)
	}
	return re2Replacer{re: re}, nil
}

type re2Replacer struct {
	re *regexp.Regexp
}

func (r re2Replacer) ReplaceAll(name, replacement string) string {
	return r.re.ReplaceAllString(name, replacement)
}

// DotNetEngine implements port.PatternCompiler with .NET regex semantics,
// including lookarounds and $1-style substitutions.
type DotNetEngine struct {
	Shortcuts bool
}

func (e *DotNetEngine) Compile(pattern string) (domain.Replacer, error) {
	if e.Shortcuts {
		pattern = ExpandShortcuts(pattern)
	}
	re, err := regexp2.Compile(pattern, regexp2.None)
	if err != nil {
		return nil, errors.Errorf("%w: %s", domain.ErrInvalidPattern, err)
	}
	return dotNetReplacer{re: re}, nil
}

type dotNetReplacer struct {
	re *regexp2.Regexp
}

// ReplaceAll keeps name when regexp2 reports an error; with no match
// timeout configured it has no other failure mode.
func (r dotNetReplacer) ReplaceAll(name, replacement string) string {
	out, err := r.re.Replace(name, replacement, -1, -1)
	if err != nil {
		return name
	}
	return out
}

// New returns the compiler registered under name ("re2" or "dotnet").
func New(name string, shortcuts bool) (port.PatternCompiler, error) {
	switch name {
	case "", "re2":
		return &Engine{Shortcuts: shortcuts}, nil
	case "dotnet":
		return &DotNetEngine{Shortcuts: shortcuts}, nil
	default:
		return nil, errors.Errorf("%w: unknown pattern engine %q", domain.ErrInvalidConfig, name)
	}
}
