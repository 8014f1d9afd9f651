// Package content parses the free-text content store: blocks separated by
// "---" lines, each headed by a bracketed key such as "[Theme > Item]".
package content

import (
	"regexp"
	"strings"

	"progress-board/internal/model"
)

// Delimiter separates blocks. It must stand alone on its line.
const Delimiter = "---"

var headerRe = regexp.MustCompile(`^\s*\[(.+)\]\s*$`)

// ParseBlocks maps each block header to its trimmed body.
//
// Headers are kept verbatim (trimmed only); they are not normalized. A block
// without a header is dropped, and a header seen again later replaces the
// earlier body.
func ParseBlocks(text string) model.ContentMap {
	out := model.ContentMap{}
	for _, block := range splitBlocks(text) {
		key, body, ok := parseBlock(block)
		if !ok {
			continue
		}
		out[key] = body
	}
	return out
}

func splitBlocks(text string) [][]string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")

	var blocks [][]string
	var cur []string
	for _, line := range strings.Split(text, "\n") {
		if line == Delimiter {
			blocks = append(blocks, cur)
			cur = nil
			continue
		}
		cur = append(cur, line)
	}
	return append(blocks, cur)
}

func parseBlock(lines []string) (key string, body string, ok bool) {
	for i, line := range lines {
		m := headerRe.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		key = strings.TrimSpace(m[1])
		if key == "" {
			continue
		}
		return key, strings.TrimSpace(strings.Join(lines[i+1:], "\n")), true
	}
	return "", "", false
}
