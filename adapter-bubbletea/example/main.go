package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	editor "github.com/ionut-t/goemacs/adapter-bubbletea"
)

const messageDuration = 3 * time.Second

type Model struct {
	editor editor.Model
	file   string
}

func (m Model) Init() tea.Cmd {
	return m.editor.Init()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.editor.SetSize(msg.Width-4, msg.Height-2)

	case editor.KillMsg:
		verb := "killed"
		if msg.Appended {
			verb = "appended to kill"
		}
		return m, m.editor.DispatchMessage(fmt.Sprintf("%d bytes %s", len(msg.Content), verb), messageDuration)

	case editor.SaveMsg:
		filePath := m.file
		if strings.HasPrefix(filePath, "~/") {
			homeDir, err := os.UserHomeDir()
			if err != nil {
				return m, m.editor.DispatchError(err, messageDuration)
			}
			filePath = filepath.Join(homeDir, filePath[2:])
		}

		if err := os.WriteFile(filePath, []byte(msg.Content), 0644); err != nil {
			return m, m.editor.DispatchError(err, messageDuration)
		}

		return m, m.editor.DispatchMessage(fmt.Sprintf("Wrote %s", m.file), messageDuration)

	case editor.QuitMsg:
		return m, tea.Quit
	}

	editorModel, cmd := m.editor.Update(msg)
	m.editor = editorModel.(editor.Model)

	return m, cmd
}

func (m Model) View() string {
	return lipgloss.NewStyle().
		Border(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1).
		Render(m.editor.View())
}

// languageFor guesses the chroma lexer from the file extension.
func languageFor(file string) string {
	ext := strings.TrimPrefix(filepath.Ext(file), ".")
	if ext == "md" {
		return "markdown"
	}
	return ext
}

func main() {
	file := "scratch.txt"
	if len(os.Args) > 1 {
		file = os.Args[1]
	}

	cfg := defaultConfig()
	if path, err := configPath(); err == nil {
		if cfg, err = loadConfig(path); err != nil {
			log.Println(err)
		}
	}

	textEditor := editor.New(80, 20)
	textEditor.Focus()
	textEditor.SetFileName(filepath.Base(file))
	textEditor.HideLineNumbers(!cfg.ShowLineNumbers())
	textEditor.SetReadOnly(cfg.ReadOnly)
	textEditor.SetMaxHistory(cfg.History)

	language := cfg.Language
	if language == "" {
		language = languageFor(file)
	}
	textEditor.SetLanguage(language, cfg.Theme)

	keymap := textEditor.GetEmulator().Keymap()
	for sequence, command := range cfg.Bindings {
		if err := keymap.Bind(sequence, command); err != nil {
			log.Printf("ignoring binding %q: %v", sequence, err)
		}
	}

	if content, err := os.ReadFile(file); err == nil {
		textEditor.SetBytes(content)
	}

	m := Model{
		editor: textEditor,
		file:   file,
	}

	p := tea.NewProgram(m, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		log.Fatalf("Error running Bubble Tea program: %v", err)
	}
}
