package core

import "fmt"

type Direction int

const (
	Backward Direction = iota
	Forward
)

// Granularity is the unit a motion moves by.
type Granularity int

const (
	ByCharacter        Granularity = iota // One character, crossing line ends
	ByWord                                // Word boundaries
	ByLine                                // Logical lines, keeping the sticky column
	ByPage                                // Viewport height in lines
	ByLineBoundary                        // Start or end of the logical line
	ByWrappedLineStart                    // Start of the visual row when lines wrap at AvailableWidth
	ByDocumentBoundary                    // Start or end of the buffer
)

func (g Granularity) String() string {
	switch g {
	case ByCharacter:
		return "character"
	case ByWord:
		return "word"
	case ByLine:
		return "line"
	case ByPage:
		return "page"
	case ByLineBoundary:
		return "line-boundary"
	case ByWrappedLineStart:
		return "wrapped-line-start"
	case ByDocumentBoundary:
		return "document-boundary"
	}
	return fmt.Sprintf("granularity(%d)", int(g))
}

type Motion struct {
	Direction Direction
	By        Granularity
}

var (
	MotionLeft             = Motion{Backward, ByCharacter}
	MotionRight            = Motion{Forward, ByCharacter}
	MotionUp               = Motion{Backward, ByLine}
	MotionDown             = Motion{Forward, ByLine}
	MotionLineStart        = Motion{Backward, ByLineBoundary}
	MotionLineEnd          = Motion{Forward, ByLineBoundary}
	MotionWrappedLineStart = Motion{Backward, ByWrappedLineStart}
	MotionWordLeft         = Motion{Backward, ByWord}
	MotionWordRight        = Motion{Forward, ByWord}
	MotionPageUp           = Motion{Backward, ByPage}
	MotionPageDown         = Motion{Forward, ByPage}
	MotionTop              = Motion{Backward, ByDocumentBoundary}
	MotionBottom           = Motion{Forward, ByDocumentBoundary}
)

// apply moves cursor by m. Hitting the edge of a line or the buffer yields a
// boundary error and leaves the cursor where it stopped.
func (m Motion) apply(cursor *Cursor, buffer Buffer, state State) error {
	forward := m.Direction == Forward

	switch m.By {
	case ByCharacter:
		if forward {
			return cursor.MoveRightOrDown(buffer, 1)
		}
		return cursor.MoveLeftOrUp(buffer, 1)

	case ByWord:
		if forward {
			return cursor.MoveWordForward(buffer, 1)
		}
		return cursor.MoveWordBackward(buffer, 1)

	case ByLine:
		if forward {
			return cursor.MoveDown(buffer, 1)
		}
		return cursor.MoveUp(buffer, 1)

	case ByPage:
		page := max(state.ViewportHeight, 1)
		if forward {
			return cursor.MoveDown(buffer, page)
		}
		return cursor.MoveUp(buffer, page)

	case ByLineBoundary:
		if forward {
			cursor.MoveToAfterLineEnd(buffer)
		} else {
			cursor.MoveToLineStart()
		}
		return nil

	case ByWrappedLineStart:
		width := state.AvailableWidth
		if width <= 0 || forward {
			cursor.MoveToLineStart()
			return nil
		}
		cursor.Position.Col = (cursor.Position.Col / width) * width
		cursor.Preferred = cursor.Position.Col
		return nil

	case ByDocumentBoundary:
		if forward {
			cursor.MoveToBufferEnd(buffer)
		} else {
			cursor.MoveToBufferStart()
		}
		return nil
	}

	return fmt.Errorf("%w: %s", ErrInvalidMotion, m.By)
}
