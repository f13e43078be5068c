package emacs

import "fmt"

// RecenterPosition is the next place C-l puts the cursor line.
type RecenterPosition int

const (
	RecenterMiddle RecenterPosition = iota
	RecenterTop
	RecenterBottom
)

func (p RecenterPosition) String() string {
	switch p {
	case RecenterMiddle:
		return "middle"
	case RecenterTop:
		return "top"
	case RecenterBottom:
		return "bottom"
	}
	return fmt.Sprintf("RecenterPosition(%d)", int(p))
}

func (p RecenterPosition) next() RecenterPosition {
	return (p + 1) % 3
}

// Recenter scrolls the cursor line to the middle, then the top, then the
// bottom of the viewport on consecutive calls. Any selection change restarts
// the cycle at the middle.
func (c *EditController) Recenter() {
	switch c.recenter {
	case RecenterMiddle:
		c.editor.RevealCenter()
	case RecenterTop:
		c.editor.RevealTop()
	case RecenterBottom:
		// With the cursor line at the top, one page up leaves it at the bottom
		c.editor.ScrollPageUp()
	}

	c.recenter = c.recenter.next()
}
