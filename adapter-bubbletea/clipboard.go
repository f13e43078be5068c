package adapter_bubbletea

import (
	"log"

	"github.com/atotto/clipboard"
)

// systemClipboard implements core.Clipboard on top of the OS clipboard.
// When no clipboard utility is available it keeps the text in memory, so
// kill and yank still work inside the editor.
type systemClipboard struct {
	fallback    string
	unsupported bool
}

func (c *systemClipboard) Write(text string) error {
	c.fallback = text
	if c.unsupported || clipboard.Unsupported {
		return nil
	}

	if err := clipboard.WriteAll(text); err != nil {
		log.Println("clipboard unavailable, keeping kills in memory:", err)
		c.unsupported = true
	}
	return nil
}

func (c *systemClipboard) Read() (string, error) {
	if c.unsupported || clipboard.Unsupported {
		return c.fallback, nil
	}

	text, err := clipboard.ReadAll()
	if err != nil {
		log.Println("clipboard unavailable, yanking from memory:", err)
		c.unsupported = true
		return c.fallback, nil
	}
	return text, nil
}
