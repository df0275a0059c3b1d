package source

import (
	"regexp"
	"strings"
)

// Symbol is a named declaration within a source file.
type Symbol struct {
	Name string
	Kind string // "func", "method", "type", "class"
	Line int    // 1-based
}

type symbolPattern struct {
	re   *regexp.Regexp
	kind string
}

var (
	goPatterns = []symbolPattern{
		{regexp.MustCompile(`^func\s+\([^)]*\)\s*(\w+)`), "method"},
		{regexp.MustCompile(`^func\s+(\w+)`), "func"},
		{regexp.MustCompile(`^type\s+(\w+)`), "type"},
	}
	jsPatterns = []symbolPattern{
		{regexp.MustCompile(`^\s*(?:export\s+)?(?:default\s+)?(?:async\s+)?function\s*\*?\s*(\w+)`), "func"},
		{regexp.MustCompile(`^\s*(?:export\s+)?(?:default\s+)?class\s+(\w+)`), "class"},
		{regexp.MustCompile(`^\s*(?:export\s+)?(?:const|let|var)\s+(\w+)\s*=\s*(?:async\s+)?(?:function|\([^)]*\)\s*=>|\w+\s*=>)`), "func"},
	}
	pyPatterns = []symbolPattern{
		{regexp.MustCompile(`^\s*(?:async\s+)?def\s+(\w+)`), "func"},
		{regexp.MustCompile(`^\s*class\s+(\w+)`), "class"},
	}
)

func patternsFor(ext string) []symbolPattern {
	switch strings.ToLower(ext) {
	case ".go":
		return goPatterns
	case ".js", ".jsx", ".mjs", ".ts", ".tsx":
		return jsPatterns
	case ".py":
		return pyPatterns
	default:
		return nil
	}
}

// Symbols extracts top-level declarations from content. Unknown extensions
// yield no symbols.
func Symbols(content, ext string) []Symbol {
	patterns := patternsFor(ext)
	if len(patterns) == 0 {
		return nil
	}
	var out []Symbol
	for i, line := range strings.Split(content, "\n") {
		for _, p := range patterns {
			if m := p.re.FindStringSubmatch(line); m != nil {
				out = append(out, Symbol{Name: m[1], Kind: p.kind, Line: i + 1})
				break
			}
		}
	}
	return out
}
