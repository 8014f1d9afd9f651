// Package ident derives the string keys that join the outline, the content
// blocks and the status store. None of the three sources share a real id; a
// node is addressed only by its normalized path.
package ident

import (
	"strings"
	"unicode"
)

// Separator joins a theme name and an item name into a hierarchy path.
const Separator = " > "

// Normalize turns a raw hierarchy path into a comparison-safe key.
//
// It lower-cases, drops every rune that is not a letter, a number, whitespace,
// '>' or '-', puts exactly one space on each side of every '>' and collapses
// whitespace runs. The result never has leading or trailing whitespace.
//
// Normalize is idempotent, and normalizing a composed path gives the same key
// as composing normalized parts:
//
//	Normalize(t + " > " + i) == Normalize(Normalize(t) + " > " + Normalize(i))
func Normalize(path string) string {
	if path == "" {
		return ""
	}

	var b strings.Builder
	b.Grow(len(path))
	for _, r := range strings.ToLower(path) {
		switch {
		case unicode.IsSpace(r):
			b.WriteByte(' ')
		case unicode.IsLetter(r), unicode.IsNumber(r), r == '>', r == '-':
			b.WriteRune(r)
		}
	}

	segs := strings.Split(b.String(), ">")
	for i, s := range segs {
		segs[i] = strings.TrimSpace(s)
	}
	// Empty segments ("a >> b") leave double spaces behind; Fields folds them.
	return strings.Join(strings.Fields(strings.Join(segs, Separator)), " ")
}

// Path is the raw, non-normalized path of a node. Content blocks are keyed by
// this form verbatim. An empty item name yields the theme path.
func Path(theme, item string) string {
	if item == "" {
		return theme
	}
	return theme + Separator + item
}

// ThemeKey is the status key of a theme.
func ThemeKey(theme string) string {
	return Normalize(theme)
}

// ItemKey is the status key of an item nested under theme.
func ItemKey(theme, item string) string {
	return Normalize(theme + Separator + item)
}
