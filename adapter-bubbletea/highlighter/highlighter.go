package highlighter

import (
	"strings"
	"sync"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/charmbracelet/lipgloss"
)

// Highlighter handles syntax highlighting for the editor
type Highlighter struct {
	lexer      chroma.Lexer
	style      *chroma.Style
	content    string                  // Content the cache was built from
	lines      map[int][]TokenPosition // Tokens by line number
	styleCache map[chroma.TokenType]lipgloss.Style
	mu         sync.RWMutex
}

// TokenPosition is a token together with the rune columns it covers in its line
type TokenPosition struct {
	Type     chroma.TokenType
	Value    string
	StartCol int
	EndCol   int
}

// New creates a new syntax highlighter. Unknown languages fall back to plain
// text and unknown themes to chroma's default style.
func New(language string, theme string) *Highlighter {
	lexer := lexers.Get(language)
	if lexer == nil {
		lexer = lexers.Fallback
	}

	return &Highlighter{
		lexer:      chroma.Coalesce(lexer),
		style:      styles.Get(theme),
		lines:      make(map[int][]TokenPosition),
		styleCache: make(map[chroma.TokenType]lipgloss.Style),
	}
}

// Refresh re-tokenizes lines when they differ from the last tokenized content.
// It reports whether tokenizing happened.
func (h *Highlighter) Refresh(lines []string) bool {
	content := strings.Join(lines, "\n")

	h.mu.RLock()
	unchanged := content == h.content && len(h.lines) > 0
	h.mu.RUnlock()

	if unchanged {
		return false
	}

	h.tokenize(content)
	return true
}

// InvalidateCache drops all cached tokens
func (h *Highlighter) InvalidateCache() {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.content = ""
	h.lines = make(map[int][]TokenPosition)
}

// tokenize runs the lexer over the whole content; multi-line constructs
// (block comments, markdown fences) need the full text.
func (h *Highlighter) tokenize(content string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.content = content
	h.lines = make(map[int][]TokenPosition)

	iterator, err := h.lexer.Tokenise(nil, content)
	if err != nil {
		return
	}

	row, col := 0, 0
	add := func(tokenType chroma.TokenType, value string) {
		if value == "" {
			return
		}
		width := len([]rune(value))
		h.lines[row] = append(h.lines[row], TokenPosition{
			Type:     tokenType,
			Value:    value,
			StartCol: col,
			EndCol:   col + width,
		})
		col += width
	}

	for _, token := range iterator.Tokens() {
		value := token.Value
		for {
			before, after, found := strings.Cut(value, "\n")
			add(token.Type, before)
			if !found {
				break
			}
			row++
			col = 0
			value = after
		}
	}
}

// TokensForLine returns the cached tokens of a line
func (h *Highlighter) TokensForLine(row int) []TokenPosition {
	h.mu.RLock()
	defer h.mu.RUnlock()

	return h.lines[row]
}

// StyleFor converts a chroma token type to a lipgloss style
func (h *Highlighter) StyleFor(tokenType chroma.TokenType) lipgloss.Style {
	h.mu.RLock()
	style, ok := h.styleCache[tokenType]
	h.mu.RUnlock()
	if ok {
		return style
	}

	entry := h.style.Get(tokenType)

	style = lipgloss.NewStyle()
	if entry.Colour.IsSet() {
		style = style.Foreground(lipgloss.Color(entry.Colour.String()))
	}
	if entry.Bold == chroma.Yes {
		style = style.Bold(true)
	}
	if entry.Italic == chroma.Yes {
		style = style.Italic(true)
	}
	if entry.Underline == chroma.Yes {
		style = style.Underline(true)
	}

	h.mu.Lock()
	h.styleCache[tokenType] = style
	h.mu.Unlock()

	return style
}

// TokenAt finds the token covering col.
func TokenAt(tokens []TokenPosition, col int) (TokenPosition, bool) {
	for _, token := range tokens {
		if col >= token.StartCol && col < token.EndCol {
			return token, true
		}
	}
	return TokenPosition{}, false
}
