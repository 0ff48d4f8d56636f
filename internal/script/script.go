// Package script exposes the editing engine to Lua. Scripts drive the
// editor through a `quill` module table; each binding wraps one editor
// operation and returns its status string.
//
// gopher-lua's LState is not goroutine-safe and neither is the editor,
// so a Runner must stay on one goroutine for its whole lifetime.
package script

import (
	"errors"
	"fmt"

	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/quill/internal/editor"
	"github.com/dshills/quill/internal/engine/attrtext"
	"github.com/dshills/quill/internal/engine/document"
	"github.com/dshills/quill/internal/engine/node"
)

// ErrRunnerClosed is returned when using a closed runner.
var ErrRunnerClosed = errors.New("script runner is closed")

// Runner owns a Lua state bound to one editor session.
type Runner struct {
	L      *lua.LState
	ed     *editor.Editor
	closed bool
}

// NewRunner creates a runner and registers the quill module on a fresh
// Lua state.
func NewRunner(ed *editor.Editor) *Runner {
	r := &Runner{
		L:  lua.NewState(),
		ed: ed,
	}
	r.register()
	return r
}

// Close releases the Lua state. The runner is unusable afterwards.
func (r *Runner) Close() {
	if r.closed {
		return
	}
	r.closed = true
	r.L.Close()
}

// RunString executes Lua source code.
func (r *Runner) RunString(src string) error {
	if r.closed {
		return ErrRunnerClosed
	}
	return r.L.DoString(src)
}

// RunFile executes a Lua script from disk.
func (r *Runner) RunFile(path string) error {
	if r.closed {
		return ErrRunnerClosed
	}
	return r.L.DoFile(path)
}

func (r *Runner) register() {
	mod := r.L.NewTable()

	r.L.SetField(mod, "insert_text", r.L.NewFunction(func(L *lua.LState) int {
		text := L.CheckString(1)
		return pushResult(L, r.ed.InsertText(text))
	}))

	r.L.SetField(mod, "split_block", r.L.NewFunction(func(L *lua.LState) int {
		return pushResult(L, r.ed.SplitBlock())
	}))

	r.L.SetField(mod, "delete_upstream", r.L.NewFunction(func(L *lua.LState) int {
		return pushResult(L, r.ed.DeleteUpstream())
	}))

	r.L.SetField(mod, "delete_downstream", r.L.NewFunction(func(L *lua.LState) int {
		return pushResult(L, r.ed.DeleteDownstream())
	}))

	r.L.SetField(mod, "move_caret", r.L.NewFunction(func(L *lua.LState) int {
		dir, err := parseDirection(L.CheckString(1))
		if err != nil {
			L.RaiseError("%v", err)
			return 0
		}
		gran := editor.GranCharacter
		if L.GetTop() >= 2 {
			gran, err = parseGranularity(L.CheckString(2))
			if err != nil {
				L.RaiseError("%v", err)
				return 0
			}
		}
		expand := false
		if L.GetTop() >= 3 {
			expand = L.CheckBool(3)
		}
		return pushResult(L, r.ed.MoveCaret(dir, gran, expand))
	}))

	r.L.SetField(mod, "place_caret", r.L.NewFunction(func(L *lua.LState) int {
		index := L.CheckInt(1)
		offset := L.CheckInt(2)
		doc := r.ed.Context().Document
		n := doc.GetNodeAt(index)
		if n == nil {
			L.RaiseError("no node at index %d", index)
			return 0
		}
		tn, ok := n.(node.TextBearing)
		if !ok {
			L.RaiseError("node at index %d is not a text node", index)
			return 0
		}
		pos := documentTextPosition(tn, offset)
		return pushResult(L, r.ed.PlaceCaret(pos))
	}))

	r.L.SetField(mod, "select_all", r.L.NewFunction(func(L *lua.LState) int {
		return pushResult(L, r.ed.SelectAll())
	}))

	r.L.SetField(mod, "toggle_attribution", r.L.NewFunction(func(L *lua.LState) int {
		attr, err := parseAttribution(L.CheckString(1))
		if err != nil {
			L.RaiseError("%v", err)
			return 0
		}
		return pushResult(L, r.ed.ToggleAttributions(attr))
	}))

	r.L.SetField(mod, "node_count", r.L.NewFunction(func(L *lua.LState) int {
		L.Push(lua.LNumber(r.ed.Context().Document.NodeCount()))
		return 1
	}))

	r.L.SetField(mod, "node_text", r.L.NewFunction(func(L *lua.LState) int {
		index := L.CheckInt(1)
		n := r.ed.Context().Document.GetNodeAt(index)
		if n == nil {
			L.Push(lua.LNil)
			return 1
		}
		if tn, ok := n.(node.TextBearing); ok {
			L.Push(lua.LString(tn.Text().String()))
		} else {
			L.Push(lua.LString(""))
		}
		return 1
	}))

	r.L.SetField(mod, "text", r.L.NewFunction(func(L *lua.LState) int {
		L.Push(lua.LString(documentPlainText(r.ed)))
		return 1
	}))

	r.L.SetGlobal("quill", mod)
}

// pushResult pushes the operation's status string, plus the error message
// for failed operations.
func pushResult(L *lua.LState, res editor.Result) int {
	L.Push(lua.LString(res.Status.String()))
	if res.IsError() && res.Err != nil {
		L.Push(lua.LString(res.Err.Error()))
		return 2
	}
	return 1
}

func parseDirection(s string) (editor.Direction, error) {
	switch s {
	case "left":
		return editor.MoveLeft, nil
	case "right":
		return editor.MoveRight, nil
	case "up":
		return editor.MoveUp, nil
	case "down":
		return editor.MoveDown, nil
	default:
		return 0, fmt.Errorf("unknown direction %q", s)
	}
}

func parseGranularity(s string) (editor.Granularity, error) {
	switch s {
	case "character":
		return editor.GranCharacter, nil
	case "word":
		return editor.GranWord, nil
	case "line":
		return editor.GranLine, nil
	default:
		return 0, fmt.Errorf("unknown granularity %q", s)
	}
}

func parseAttribution(s string) (attrtext.Attribution, error) {
	switch s {
	case "bold":
		return attrtext.Bold, nil
	case "italics":
		return attrtext.Italics, nil
	case "underline":
		return attrtext.Underline, nil
	case "strikethrough":
		return attrtext.Strikethrough, nil
	case "code":
		return attrtext.Code, nil
	default:
		return nil, fmt.Errorf("unknown attribution %q", s)
	}
}

func documentTextPosition(tn node.TextBearing, offset int) document.Position {
	return document.NewPosition(tn.ID(), node.TextPosition{Offset: offset, Affinity: node.AffinityDownstream})
}

func documentPlainText(ed *editor.Editor) string {
	doc := ed.Context().Document
	out := ""
	for i, n := range doc.Nodes() {
		if i > 0 {
			out += "\n"
		}
		if tn, ok := n.(node.TextBearing); ok {
			out += tn.Text().String()
		}
	}
	return out
}
