package ui

import (
	"fmt"

	"vista/internal/board"
)

// undoAction restores one board to the state it had before an intent.
type undoAction struct {
	label  string
	board  string
	before board.State
	after  board.State
}

type undoAppliedMsg struct {
	err       error
	action    undoAction
	direction string // undo, redo
}

func (m *Model) pushUndoAction(action undoAction) {
	m.undoStack = append(m.undoStack, action)
	m.redoStack = nil
}

// applyIntent runs in on the current board and records an undo step when
// the state changed.
func (m *Model) applyIntent(t *BoardModel, in board.Intent) bool {
	before := t.State()
	if !t.Apply(in) {
		return false
	}
	m.pushUndoAction(undoAction{
		label:  in.Kind.String(),
		board:  t.Board().Name(),
		before: before,
		after:  t.State(),
	})
	return true
}

func (m *Model) undo() undoAppliedMsg {
	action := m.undoStack[len(m.undoStack)-1]
	m.undoStack = m.undoStack[:len(m.undoStack)-1]
	t := m.boardModel(action.board)
	if t == nil {
		return undoAppliedMsg{err: fmt.Errorf("board %q is not loaded", action.board), action: action, direction: "undo"}
	}
	t.SetState(action.before)
	return undoAppliedMsg{action: action, direction: "undo"}
}

func (m *Model) redo() undoAppliedMsg {
	action := m.redoStack[len(m.redoStack)-1]
	m.redoStack = m.redoStack[:len(m.redoStack)-1]
	t := m.boardModel(action.board)
	if t == nil {
		return undoAppliedMsg{err: fmt.Errorf("board %q is not loaded", action.board), action: action, direction: "redo"}
	}
	t.SetState(action.after)
	return undoAppliedMsg{action: action, direction: "redo"}
}

func (m *Model) applyUndoResult(msg undoAppliedMsg) {
	if msg.err != nil {
		m.error = fmt.Sprintf("%s failed: %v", msg.direction, msg.err)
		return
	}

	if msg.direction == "undo" {
		m.redoStack = append(m.redoStack, msg.action)
		m.info = fmt.Sprintf("Undid: %s on %s", msg.action.label, msg.action.board)
	} else {
		m.undoStack = append(m.undoStack, msg.action)
		m.info = fmt.Sprintf("Redid: %s on %s", msg.action.label, msg.action.board)
	}
	m.error = ""
}
