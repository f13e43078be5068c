package adapter_bubbletea

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/ionut-t/goemacs/adapter-bubbletea/highlighter"
	"github.com/ionut-t/goemacs/core"
	"github.com/ionut-t/goemacs/emacs"
)

type Theme struct {
	CursorStyle            lipgloss.Style
	MarkStyle              lipgloss.Style
	StatusLineStyle        lipgloss.Style
	EchoAreaStyle          lipgloss.Style
	MessageStyle           lipgloss.Style
	ErrorStyle             lipgloss.Style
	LineNumberStyle        lipgloss.Style
	CurrentLineNumberStyle lipgloss.Style
	SelectionStyle         lipgloss.Style
	PlaceholderStyle       lipgloss.Style
}

var DefaultTheme = Theme{
	CursorStyle:            lipgloss.NewStyle().Background(lipgloss.Color("252")).Foreground(lipgloss.Color("0")),
	MarkStyle:              lipgloss.NewStyle().Background(lipgloss.Color("127")).Foreground(lipgloss.Color("255")),
	StatusLineStyle:        lipgloss.NewStyle().Background(lipgloss.Color("236")).Foreground(lipgloss.Color("255")),
	EchoAreaStyle:          lipgloss.NewStyle().Background(lipgloss.Color("235")).Foreground(lipgloss.Color("255")),
	MessageStyle:           lipgloss.NewStyle().Foreground(lipgloss.Color("34")),
	ErrorStyle:             lipgloss.NewStyle().Foreground(lipgloss.Color("208")),
	LineNumberStyle:        lipgloss.NewStyle().Foreground(lipgloss.Color("240")).Align(lipgloss.Right),
	CurrentLineNumberStyle: lipgloss.NewStyle().Foreground(lipgloss.Color("252")).Align(lipgloss.Right),
	SelectionStyle:         lipgloss.NewStyle().Background(lipgloss.Color("237")),
	PlaceholderStyle:       lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
}

const messageDuration = 3 * time.Second

type Model struct {
	editor           core.Editor
	emulator         *emacs.Emulator
	viewport         viewport.Model
	width            int
	height           int
	showLineNumbers  bool
	showStatusLine   bool
	theme            Theme
	StatusLineFunc   func() string
	fileName         string
	err              error
	message          string
	isFocused        bool
	placeholder      string
	clearMsgCancel   context.CancelFunc
	highlighter      *highlighter.Highlighter
	language         string
	highlighterTheme string
}

// --- Messages sent to the consumer ---

type ErrorMsg struct {
	ID    core.ErrorId
	Error error
}

type SaveMsg struct {
	Content string
}

type QuitMsg struct{}

// KillMsg reports a kill or cut. Content is the whole clipboard entry, which
// includes earlier kills when Appended is set.
type KillMsg struct {
	Content  string
	Appended bool
}

type CopyMsg struct {
	Content string
}

type YankMsg struct {
	Content string
}

type UndoMsg struct{}

// --- Internal messages ---

type messageMsg struct {
	Text string
}

type clearMsg struct{}

// signalMsg carries the message translated from an editor signal, so Update
// can forward it and start listening for the next one.
type signalMsg struct {
	msg tea.Msg
}

func New(width, height int) Model {
	return NewWithClipboard(&systemClipboard{}, width, height)
}

// NewWithClipboard creates a model whose kills and yanks go through clipboard.
func NewWithClipboard(clipboard core.Clipboard, width, height int) Model {
	ed := core.New(clipboard)

	m := Model{
		editor:          ed,
		emulator:        emacs.New(ed),
		viewport:        viewport.New(width, max(height-2, 1)),
		showLineNumbers: true,
		showStatusLine:  true,
		theme:           DefaultTheme,
	}

	m.SetSize(width, height)

	return m
}

// SetSize sets the outer size; the status line and echo area take two rows.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.viewport.Width = width
	m.viewport.Height = max(height-2, 1)

	m.syncLayout()
}

// syncLayout pushes the text area size into the editor state.
func (m *Model) syncLayout() {
	availableWidth := max(m.viewport.Width-m.lineNumberWidth(), 1)

	state := m.editor.GetState()
	state.ViewportWidth = m.viewport.Width
	state.ViewportHeight = m.viewport.Height
	state.AvailableWidth = availableWidth
	m.editor.SetState(state)
}

// SetBytes replaces the document. The emacs state resets as for a new buffer.
func (m *Model) SetBytes(content []byte) {
	m.editor.SetContent(content)
	m.editor.FlushEvents()
	m.syncLayout()
	m.render()
}

func (m *Model) SetContent(content string) {
	m.SetBytes([]byte(content))
}

// SetFileName sets the name shown on the status line.
func (m *Model) SetFileName(name string) {
	m.fileName = name
}

func (m *Model) WithTheme(theme Theme) {
	m.theme = theme
}

// SetLanguage sets the programming language for syntax highlighting.
//
// If the language is empty, syntax highlighting will be disabled.
//
// The theme parameter allows specifying a Chroma theme for the syntax highlighter.
// For a full list of available themes, see: https://github.com/alecthomas/chroma/blob/master/styles
func (m *Model) SetLanguage(language string, theme string) {
	if m.language == language && m.highlighterTheme == theme {
		return
	}

	m.language = language
	m.highlighterTheme = theme
	if language == "" {
		m.highlighter = nil
		return
	}

	m.highlighter = highlighter.New(language, theme)
}

// DispatchMessage shows message in the echo area for duration.
func (m *Model) DispatchMessage(message string, duration time.Duration) tea.Cmd {
	m.message = message
	m.err = nil

	return m.dispatchClearMsg(duration)
}

// DispatchError shows err in the echo area for duration.
func (m *Model) DispatchError(err error, duration time.Duration) tea.Cmd {
	m.err = err
	m.message = ""

	return m.dispatchClearMsg(duration)
}

func (m *Model) dispatchClearMsg(duration time.Duration) tea.Cmd {
	if m.clearMsgCancel != nil {
		m.clearMsgCancel()
	}

	ctx, cancel := context.WithTimeout(context.Background(), duration)
	m.clearMsgCancel = cancel

	return func() tea.Msg {
		defer cancel()
		<-ctx.Done()
		if ctx.Err() == context.DeadlineExceeded {
			return clearMsg{}
		}
		return nil
	}
}

func (m *Model) clearEchoArea() {
	m.message = ""
	m.err = nil
	if m.clearMsgCancel != nil {
		m.clearMsgCancel()
		m.clearMsgCancel = nil
	}
}

func (m *Model) HideLineNumbers(hide bool) {
	m.showLineNumbers = !hide
	m.syncLayout()
}

func (m *Model) HideStatusLine(hide bool) {
	m.showStatusLine = !hide
}

func (m *Model) SetReadOnly(readOnly bool) {
	m.editor.SetReadOnly(readOnly)
}

// SetMaxHistory sets the maximum number of undo entries. The default is 1000.
func (m *Model) SetMaxHistory(max uint32) {
	m.editor.SetMaxHistory(max)
}

// GetSavedContent returns the content as of the last save.
func (m *Model) GetSavedContent() string {
	return m.editor.GetBuffer().GetSavedContent()
}

func (m *Model) GetCurrentContent() string {
	return m.editor.GetBuffer().GetCurrentContent()
}

func (m *Model) HasChanges() bool {
	return m.editor.GetBuffer().IsModified()
}

func (m *Model) GetEditor() core.Editor {
	return m.editor
}

func (m *Model) GetEmulator() *emacs.Emulator {
	return m.emulator
}

func (m *Model) Focus() {
	m.isFocused = true
}

func (m *Model) Blur() {
	m.isFocused = false
}

func (m *Model) IsFocused() bool {
	return m.isFocused
}

func (m *Model) SetPlaceholder(placeholder string) {
	m.placeholder = placeholder
}

func (m *Model) IsEmpty() bool {
	return m.editor.GetBuffer().IsEmpty()
}

func (m Model) Init() tea.Cmd {
	return m.listenForEditorUpdate()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if !m.isFocused {
			break
		}

		// Like the echo area, messages last until the next key
		m.clearEchoArea()

		var err error
		if msg.Type == tea.KeyRunes && !msg.Alt && len(msg.Runes) > 1 {
			err = m.emulator.InsertText(string(msg.Runes))
		} else {
			err = m.emulator.HandleKey(convertBubbleKey(msg))
		}

		// Other failures arrive as error signals
		if errors.Is(err, emacs.ErrUnknownCommand) {
			cmds = append(cmds, m.DispatchError(err, messageDuration))
		}

	case signalMsg:
		inner := msg.msg
		cmds = append(cmds, m.listenForEditorUpdate(), func() tea.Msg { return inner })

	case messageMsg:
		cmds = append(cmds, m.DispatchMessage(msg.Text, messageDuration))

	case ErrorMsg:
		cmds = append(cmds, m.DispatchError(msg.Error, messageDuration))

	case clearMsg:
		m.message = ""
		m.err = nil
		m.clearMsgCancel = nil
	}

	m.syncLayout()
	m.render()

	return m, tea.Batch(cmds...)
}

func (m Model) View() string {
	content := m.viewport.View()

	if !m.showStatusLine {
		return content
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		content,
		m.getStatusLine(),
		m.getEchoArea(),
	)
}

// getStatusLine renders an Emacs style mode line: modified flag, buffer
// name, pending prefix or mark, position.
func (m *Model) getStatusLine() string {
	if m.StatusLineFunc != nil {
		return m.StatusLineFunc()
	}

	state := m.editor.GetState()
	buffer := m.editor.GetBuffer()

	flag := "--"
	switch {
	case state.ReadOnly:
		flag = "%%"
	case buffer.IsModified():
		flag = "**"
	}

	left := m.theme.StatusLineStyle.Render(fmt.Sprintf(" -:%s- %s ", flag, m.fileName))
	if state.StatusLine != "" {
		left += m.theme.MarkStyle.Render(" " + state.StatusLine + " ")
	}

	cursor := buffer.GetCursor()
	position := fmt.Sprintf("L%d C%d ", cursor.Position.Row+1, cursor.Position.Col)

	gap := strings.Repeat(" ", max(0, m.width-lipgloss.Width(left)-lipgloss.Width(position)))

	return left + m.theme.StatusLineStyle.Render(gap+position)
}

func (m *Model) getEchoArea() string {
	var line string

	switch {
	case m.err != nil:
		line = m.theme.ErrorStyle.
			Background(m.theme.EchoAreaStyle.GetBackground()).
			Render(truncate(m.err.Error(), m.width))
	case m.message != "":
		line = m.theme.MessageStyle.
			Background(m.theme.EchoAreaStyle.GetBackground()).
			Render(truncate(m.message, m.width))
	}

	if padding := m.width - lipgloss.Width(line); padding > 0 {
		line += m.theme.EchoAreaStyle.Render(strings.Repeat(" ", padding))
	}

	return line
}

func (m *Model) listenForEditorUpdate() tea.Cmd {
	return func() tea.Msg {
		signal := <-m.editor.GetUpdateSignalChan()

		return signalMsg{msg: translateSignal(signal)}
	}
}

// translateSignal maps editor signals to tea messages
func translateSignal(signal core.Signal) tea.Msg {
	switch signal := signal.(type) {
	case core.ErrorSignal:
		id, err := signal.Value()
		return ErrorMsg{ID: id, Error: err}

	case core.MessageSignal:
		_, message := signal.Value()
		return messageMsg{Text: message}

	case core.KillSignal:
		content, appended := signal.Value()
		return KillMsg{Content: content, Appended: appended}

	case core.CopySignal:
		return CopyMsg{Content: signal.Value()}

	case core.YankSignal:
		return YankMsg{Content: signal.Value()}

	case core.SaveSignal:
		return SaveMsg{Content: signal.Value()}

	case core.UndoSignal:
		return UndoMsg{}

	case core.QuitSignal:
		return QuitMsg{}
	}

	return nil
}
