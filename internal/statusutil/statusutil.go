package statusutil

import (
	"fmt"
	"strings"

	"progress-board/internal/model"
)

const (
	LocaleFR = "fr"
	LocaleEN = "en"
)

var labels = map[string]map[model.Status]string{
	LocaleFR: {
		model.StatusTodo:  "À faire",
		model.StatusDoing: "En cours",
		model.StatusDone:  "Fait",
	},
	LocaleEN: {
		model.StatusTodo:  "To do",
		model.StatusDoing: "In progress",
		model.StatusDone:  "Done",
	},
}

// ValidLocale reports whether labels exist for locale.
func ValidLocale(locale string) bool {
	_, ok := labels[strings.ToLower(strings.TrimSpace(locale))]
	return ok
}

// Parse accepts a status literal or any locale's label, case-insensitively.
func Parse(s string) (model.Status, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return "", fmt.Errorf("invalid status: empty")
	}
	if st := model.Status(s); st.Valid() {
		return st, nil
	}
	for _, byStatus := range labels {
		for st, label := range byStatus {
			if strings.ToLower(label) == s {
				return st, nil
			}
		}
	}
	return "", fmt.Errorf("invalid status: %q (want todo|doing|done)", s)
}

// Label returns the display label of st. Unknown locales fall back to French,
// unknown statuses read as todo.
func Label(st model.Status, locale string) string {
	byStatus, ok := labels[strings.ToLower(strings.TrimSpace(locale))]
	if !ok {
		byStatus = labels[LocaleFR]
	}
	if !st.Valid() {
		st = model.StatusTodo
	}
	return byStatus[st]
}

// PercentLabel is the stats row label for the completion percentage.
func PercentLabel(locale string) string {
	return "% " + Label(model.StatusDone, locale)
}

// Next cycles todo -> doing -> done -> todo.
func Next(st model.Status) model.Status {
	switch st {
	case model.StatusTodo:
		return model.StatusDoing
	case model.StatusDoing:
		return model.StatusDone
	default:
		return model.StatusTodo
	}
}

func Glyph(st model.Status) string {
	switch st {
	case model.StatusDone:
		return "[x]"
	case model.StatusDoing:
		return "[~]"
	default:
		return "[ ]"
	}
}

var emptyContent = map[string]string{
	LocaleFR: "— (Aucun contenu pour le moment)",
	LocaleEN: "— (No content yet)",
}

// EmptyContent is the placeholder shown for a node without a content block.
func EmptyContent(locale string) string {
	if s, ok := emptyContent[strings.ToLower(strings.TrimSpace(locale))]; ok {
		return s
	}
	return emptyContent[LocaleFR]
}
