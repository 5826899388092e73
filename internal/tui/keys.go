package tui

import (
	"strconv"

	tea "github.com/charmbracelet/bubbletea"
)

// KeyAction represents an action triggered by a key press.
type KeyAction int

const (
	ActionNone KeyAction = iota
	ActionQuit
	ActionNarrower
	ActionWider
	ActionResetWidth
	ActionLineDown
	ActionLineUp
	ActionPageDown
	ActionPageUp
	ActionHalfPageDown
	ActionHalfPageUp
	ActionGoToTop
	ActionGoToBottom
)

// KeyHandler maps keys to actions and collects a numeric count prefix,
// so "5>" widens five steps at once.
type KeyHandler struct {
	keyBuffer string
}

// NewKeyHandler creates a new key handler.
func NewKeyHandler() *KeyHandler {
	return &KeyHandler{}
}

// Handle processes a key message and returns the action with its count.
// A leading "0" is not a count: it resets the width.
func (k *KeyHandler) Handle(msg tea.KeyMsg) (KeyAction, int) {
	key := msg.String()
	if isNumericKey(key) && (key != "0" || k.keyBuffer != "") {
		k.keyBuffer += key
		return ActionNone, 0
	}

	count := 1
	if n, err := strconv.Atoi(k.keyBuffer); err == nil && n > 0 {
		count = n
	}
	k.keyBuffer = ""
	return keyToAction(key), count
}

// KeyBuffer returns the pending count.
func (k *KeyHandler) KeyBuffer() string {
	return k.keyBuffer
}

func keyToAction(key string) KeyAction {
	switch key {
	case "ctrl+c", "q", "esc":
		return ActionQuit
	case "<", "H":
		return ActionNarrower
	case ">", "L":
		return ActionWider
	case "0":
		return ActionResetWidth
	case "j", "down", "ctrl+e":
		return ActionLineDown
	case "k", "up", "ctrl+y":
		return ActionLineUp
	case "pgdown", " ", "f":
		return ActionPageDown
	case "pgup", "b":
		return ActionPageUp
	case "J", "ctrl+d":
		return ActionHalfPageDown
	case "K", "ctrl+u":
		return ActionHalfPageUp
	case "g", "home":
		return ActionGoToTop
	case "G", "end":
		return ActionGoToBottom
	default:
		return ActionNone
	}
}

func isNumericKey(key string) bool {
	return len(key) == 1 && key >= "0" && key <= "9"
}
