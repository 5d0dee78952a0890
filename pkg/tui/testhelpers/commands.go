package testhelpers

import (
	"reflect"

	tea "github.com/charmbracelet/bubbletea"
)

// RunCmd executes cmd the way the bubbletea runtime would, expanding
// batches and sequences, and returns every message produced. Commands
// that wait on a timer, like cursor blinks, block until it fires.
func RunCmd(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}

	msg := cmd()
	switch msg := msg.(type) {
	case nil:
		return nil
	case tea.BatchMsg:
		var out []tea.Msg
		for _, c := range msg {
			out = append(out, RunCmd(c)...)
		}
		return out
	default:
		if isSequence(msg) {
			var out []tea.Msg
			for _, c := range sequenceCmds(msg) {
				out = append(out, RunCmd(c)...)
			}
			return out
		}
		return []tea.Msg{msg}
	}
}

// sequenceMsg is unexported in bubbletea; recognise it by shape
func isSequence(msg tea.Msg) bool {
	v := reflect.ValueOf(msg)
	return v.Kind() == reflect.Slice && v.Type().Elem() == reflect.TypeOf(tea.Cmd(nil))
}

func sequenceCmds(msg tea.Msg) []tea.Cmd {
	v := reflect.ValueOf(msg)
	cmds := make([]tea.Cmd, v.Len())
	for i := range cmds {
		cmds[i] = v.Index(i).Interface().(tea.Cmd)
	}
	return cmds
}

// FindMsg returns the first message of type T
func FindMsg[T tea.Msg](msgs []tea.Msg) (T, bool) {
	for _, msg := range msgs {
		if m, ok := msg.(T); ok {
			return m, true
		}
	}
	var zero T
	return zero, false
}
