package emacs

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/ionut-t/goemacs/core"
)

// DefaultBindings maps key sequences in Emacs notation to command names.
func DefaultBindings() map[string]string {
	return map[string]string{
		// Motions
		"C-f":     "emacs.cursorRight",
		"<right>": "emacs.cursorRight",
		"C-b":     "emacs.cursorLeft",
		"<left>":  "emacs.cursorLeft",
		"C-n":     "emacs.cursorDown",
		"<down>":  "emacs.cursorDown",
		"C-p":     "emacs.cursorUp",
		"<up>":    "emacs.cursorUp",
		"C-a":     "emacs.cursorHome",
		"<home>":  "emacs.cursorHome",
		"C-e":     "emacs.cursorEnd",
		"<end>":   "emacs.cursorEnd",
		"M-f":     "emacs.cursorWordRight",
		"M-b":     "emacs.cursorWordLeft",
		"C-v":     "emacs.cursorPageDown",
		"<next>":  "emacs.cursorPageDown",
		"M-v":     "emacs.cursorPageUp",
		"<prior>": "emacs.cursorPageUp",
		"M-<":     "emacs.cursorTop",
		"M->":     "emacs.cursorBottom",

		// Mark
		"C-SPC": "C-SPC",
		"C-g":   "C-g",

		// Edit
		"C-k":             "C-k",
		"C-w":             "C-w",
		"M-w":             "M-w",
		"C-y":             "C-y",
		"C-x C-o":         "C-x_C-o",
		"C-x u":           "C-x_u",
		"C-/":             "C-/",
		"C-_":             "C-/",
		"C-j":             "C-j",
		"C-S-<backspace>": "C-S_bs",
		"RET":             "RET",
		"TAB":             "TAB",
		"<backspace>":     "DEL",
		"C-d":             "C-d",
		"<delete>":        "C-d",

		// Navigation
		"C-l": "C-l",

		// Files
		"C-x C-s": "C-x_C-s",
		"C-x C-c": "C-x_C-c",
	}
}

// Keymap resolves key presses, including prefix sequences such as C-x C-o,
// to command names.
type Keymap struct {
	bindings map[string]string
	prefixes map[string]bool
	pending  []string
	last     string
}

func NewKeymap() *Keymap {
	k := &Keymap{}
	k.Load(DefaultBindings())
	return k
}

// Load replaces every binding. Invalid sequences are skipped and reported.
func (k *Keymap) Load(bindings map[string]string) error {
	k.bindings = make(map[string]string, len(bindings))
	k.pending = nil

	var invalid []string
	for sequence, command := range bindings {
		normalized, err := normalizeSequence(sequence)
		if err != nil {
			invalid = append(invalid, sequence)
			continue
		}
		k.bindings[normalized] = command
	}
	k.rebuildPrefixes()

	if len(invalid) > 0 {
		slices.Sort(invalid)
		return fmt.Errorf("%w: %s", core.ErrInvalidKey, strings.Join(invalid, ", "))
	}
	return nil
}

// Bind maps sequence to command, replacing any previous binding.
func (k *Keymap) Bind(sequence, command string) error {
	normalized, err := normalizeSequence(sequence)
	if err != nil {
		return err
	}

	k.bindings[normalized] = command
	k.rebuildPrefixes()
	return nil
}

func (k *Keymap) Unbind(sequence string) error {
	normalized, err := normalizeSequence(sequence)
	if err != nil {
		return err
	}

	delete(k.bindings, normalized)
	k.rebuildPrefixes()
	return nil
}

// Lookup returns the command bound to a complete sequence.
func (k *Keymap) Lookup(sequence string) (string, bool) {
	normalized, err := normalizeSequence(sequence)
	if err != nil {
		return "", false
	}

	command, ok := k.bindings[normalized]
	return command, ok
}

// Bindings returns the bound sequences in sorted order.
func (k *Keymap) Bindings() []string {
	return slices.Sorted(maps.Keys(k.bindings))
}

// Resolve feeds one key press into the keymap. It reports pending while a
// prefix is being typed and ok once a bound sequence completes. C-g always
// aborts a pending prefix.
func (k *Keymap) Resolve(key core.KeyEvent) (command string, pending bool, ok bool) {
	name := key.String()

	if len(k.pending) > 0 && name == "C-g" {
		k.Reset()
		k.last = name
		command, ok = k.bindings[name]
		return command, false, ok
	}

	sequence := strings.Join(append(slices.Clone(k.pending), name), " ")
	k.last = sequence

	if k.prefixes[sequence] {
		k.pending = append(k.pending, name)
		return "", true, false
	}

	k.Reset()
	command, ok = k.bindings[sequence]
	return command, false, ok
}

// Pending returns the prefix typed so far, e.g. "C-x".
func (k *Keymap) Pending() string {
	return strings.Join(k.pending, " ")
}

// LastSequence returns the sequence the latest Resolve call looked at.
func (k *Keymap) LastSequence() string {
	return k.last
}

// Reset drops a pending prefix.
func (k *Keymap) Reset() {
	k.pending = nil
}

func (k *Keymap) rebuildPrefixes() {
	k.prefixes = make(map[string]bool)
	for sequence := range k.bindings {
		keys := strings.Fields(sequence)
		for i := 1; i < len(keys); i++ {
			k.prefixes[strings.Join(keys[:i], " ")] = true
		}
	}
}

// normalizeSequence parses sequence and renders it back in canonical form.
func normalizeSequence(sequence string) (string, error) {
	keys, err := core.ParseKeySequence(sequence)
	if err != nil {
		return "", err
	}

	names := make([]string, len(keys))
	for i, key := range keys {
		names[i] = key.String()
	}
	return strings.Join(names, " "), nil
}
