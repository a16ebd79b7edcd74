package docx

// OutlineTracker clamps bookmark nesting so a heading can never sit more
// than one level deeper than the heading before it. Readers reject outline
// trees that skip levels, so a source jumping from level 0 to level 2 is
// pulled back to level 1.
type OutlineTracker struct {
	last int
}

// NewOutlineTracker starts with no preceding heading.
func NewOutlineTracker() *OutlineTracker {
	return &OutlineTracker{last: -1}
}

// Clamp returns the level to use for a heading proposed at the given level
// and records it as the new predecessor.
func (t *OutlineTracker) Clamp(level int) int {
	if level < 0 {
		level = 0
	}
	if level > t.last+1 {
		level = t.last + 1
	}
	t.last = level
	return level
}
