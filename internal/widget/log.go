package widget

// Role identifies the author of a chat bubble.
type Role string

const (
	RoleUser Role = "user"
	RoleBot  Role = "bot"
)

// Bubble is one entry in the visible message log. Pending marks a loading
// indicator awaiting its reply; Failed marks the generic failure bubble shown
// in place of a reply after a network error.
type Bubble struct {
	ID      string
	Role    Role
	Content string
	Pending bool
	Failed  bool
}

// Log holds the visible conversation in display order. It is mutated only
// from the single UI-bound control flow, so it carries no lock.
type Log struct {
	bubbles []Bubble
}

// NewLog creates an empty message log.
func NewLog() *Log {
	return &Log{bubbles: make([]Bubble, 0, 16)}
}

// Append adds a bubble at the end of the log.
func (l *Log) Append(b Bubble) {
	l.bubbles = append(l.bubbles, b)
}

// RemoveByID removes the bubble with the given id, reporting whether it was
// present. Each loading indicator is removed exactly once through here.
func (l *Log) RemoveByID(id string) bool {
	for i, b := range l.bubbles {
		if b.ID == id {
			l.bubbles = append(l.bubbles[:i], l.bubbles[i+1:]...)
			return true
		}
	}
	return false
}

// Clear empties the log. History replay uses this to drop the default
// greeting before replaying a transcript.
func (l *Log) Clear() {
	l.bubbles = l.bubbles[:0]
}

// Bubbles returns a copy of the log in display order.
func (l *Log) Bubbles() []Bubble {
	return append([]Bubble(nil), l.bubbles...)
}

// Len returns the number of bubbles.
func (l *Log) Len() int {
	return len(l.bubbles)
}
