package markdown

import (
	"fmt"
	"regexp"
	"strings"
)

var fenceRE = regexp.MustCompile("(?s)```.*?```")

// protectFences replaces every fenced code block with an opaque placeholder
// token so the translation provider cannot alter code. The returned blocks
// restore the original text.
func protectFences(text string) (string, []string) {
	var blocks []string
	protected := fenceRE.ReplaceAllStringFunc(text, func(block string) string {
		token := fenceToken(len(blocks))
		blocks = append(blocks, block)
		return token
	})
	return protected, blocks
}

// restoreFences substitutes the placeholder tokens back with their original
// block text verbatim.
func restoreFences(text string, blocks []string) string {
	for i, block := range blocks {
		text = strings.Replace(text, fenceToken(i), block, 1)
	}
	return text
}

func fenceToken(i int) string {
	return fmt.Sprintf("__CODE_BLOCK_%d__", i)
}
