package markdown

import (
	"fmt"
	"path"
	"regexp"
	"strings"
)

// compileGlob turns an exclude pattern into a case-insensitive regexp.
// `*` matches any run of non-separator characters, `**` any run including
// separators; everything else is literal.
func compileGlob(pattern string) (*regexp.Regexp, error) {
	var sb strings.Builder
	sb.WriteString("(?i)^")
	for i := 0; i < len(pattern); i++ {
		if pattern[i] == '*' {
			if i+1 < len(pattern) && pattern[i+1] == '*' {
				sb.WriteString(".*")
				i++
			} else {
				sb.WriteString("[^/]*")
			}
			continue
		}
		sb.WriteString(regexp.QuoteMeta(pattern[i : i+1]))
	}
	sb.WriteString("$")

	re, err := regexp.Compile(sb.String())
	if err != nil {
		return nil, fmt.Errorf("invalid exclude pattern %q: %w", pattern, err)
	}
	return re, nil
}

// excluder matches relative paths against a set of exclude patterns. A
// pattern can hit either the whole slash-separated relative path or just
// the basename.
type excluder struct {
	patterns []*regexp.Regexp
}

func newExcluder(patterns []string) (*excluder, error) {
	e := &excluder{}
	for _, pattern := range patterns {
		re, err := compileGlob(pattern)
		if err != nil {
			return nil, err
		}
		e.patterns = append(e.patterns, re)
	}
	return e, nil
}

func (e *excluder) Match(relPath string) bool {
	base := path.Base(relPath)
	for _, re := range e.patterns {
		if re.MatchString(relPath) || re.MatchString(base) {
			return true
		}
	}
	return false
}
