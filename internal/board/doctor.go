package board

import (
	"sort"

	"progress-board/internal/ident"
	"progress-board/internal/model"

	"github.com/sahilm/fuzzy"
)

// Lookup returns every node whose key equals the normalized form of path.
// More than one node can share a key.
func (b *Board) Lookup(path string) []Node {
	key := ident.Normalize(path)
	if key == "" {
		return nil
	}
	var out []Node
	for _, n := range b.Nodes() {
		if n.Key == key {
			out = append(out, n)
		}
	}
	return out
}

// Suggest returns up to limit node paths resembling path, best first.
func (b *Board) Suggest(path string, limit int) []string {
	nodes := b.Nodes()
	paths := make([]string, 0, len(nodes))
	for _, n := range nodes {
		paths = append(paths, n.Path)
	}
	matches := fuzzy.Find(path, paths)
	out := []string{}
	for _, m := range matches {
		if len(out) >= limit {
			break
		}
		out = append(out, m.Str)
	}
	return out
}

// Orphans lists stored keys that no node produces, sorted. Renaming a theme or
// an item in the outline leaves its old status here.
func (b *Board) Orphans(statuses model.StatusStore) []string {
	live := map[string]bool{}
	for _, n := range b.Nodes() {
		live[n.Key] = true
	}
	out := []string{}
	for k := range statuses {
		if !live[k] {
			out = append(out, k)
		}
	}
	sort.Strings(out)
	return out
}

// Duplicate is a key produced by more than one node.
type Duplicate struct {
	Key   string   `json:"key"`
	Paths []string `json:"paths"`
}

// Duplicates lists colliding keys in first-seen order. Colliding nodes share
// one status.
func (b *Board) Duplicates() []Duplicate {
	byKey := map[string][]string{}
	var order []string
	for _, n := range b.Nodes() {
		if _, ok := byKey[n.Key]; !ok {
			order = append(order, n.Key)
		}
		byKey[n.Key] = append(byKey[n.Key], n.Path)
	}
	out := []Duplicate{}
	for _, k := range order {
		if len(byKey[k]) > 1 {
			out = append(out, Duplicate{Key: k, Paths: byKey[k]})
		}
	}
	return out
}
