package model

type Status string

const (
	StatusTodo  Status = "todo"
	StatusDoing Status = "doing"
	StatusDone  Status = "done"
)

// Statuses lists the three states in display order.
var Statuses = []Status{StatusTodo, StatusDoing, StatusDone}

func (s Status) Valid() bool {
	switch s {
	case StatusTodo, StatusDoing, StatusDone:
		return true
	default:
		return false
	}
}

// Theme is a top-level outline node. Its identity is derived from Name; it has
// no stored id.
type Theme struct {
	Name  string `json:"name"`
	Items []Item `json:"items"`
}

// Item is a second-level outline node, owned by exactly one Theme.
type Item struct {
	Name string `json:"name"`
}

// ContentMap maps a block header, as authored, to its trimmed body.
type ContentMap map[string]string

// Content returns the body stored under key, or "" when absent.
func (c ContentMap) Content(key string) string {
	if c == nil {
		return ""
	}
	return c[key]
}

// StatusStore maps a normalized node key to its status. A missing key means todo.
type StatusStore map[string]Status

// Get returns the status stored under key. Absent keys and values outside the
// three known states read as todo.
func (s StatusStore) Get(key string) Status {
	if s == nil {
		return StatusTodo
	}
	st, ok := s[key]
	if !ok || !st.Valid() {
		return StatusTodo
	}
	return st
}

func (s StatusStore) Clone() StatusStore {
	out := make(StatusStore, len(s))
	for k, v := range s {
		out[k] = v
	}
	return out
}

// Stats is derived on every render and never persisted.
type Stats struct {
	Total int `json:"total"`
	Done  int `json:"done"`
	Doing int `json:"doing"`
	Todo  int `json:"todo"`
}

// Page is a document served by the remote keyed-content service.
type Page struct {
	Slug  string `json:"slug"`
	Title string `json:"title"`
	Body  string `json:"body"`
}
