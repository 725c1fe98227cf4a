// Package scripting runs the custom-script filter predicates inside a
// sandboxed GopherLua state. Scripts get read-only snapshots of the roll
// context and must evaluate to a boolean; anything else fails closed.
package scripting

import (
	"context"
	"fmt"
	"strings"
	"sync/atomic"

	lua "github.com/yuin/gopher-lua"
)

// DefaultInstructionLimit caps Lua opcodes per evaluation when no limit is
// configured.
const DefaultInstructionLimit = 100_000

// Runner evaluates boolean filter scripts. When disabled, every script
// passes without any Lua running — the operator safety switch.
type Runner struct {
	enabled   bool
	instLimit int
}

// NewRunner creates a Runner. instLimit <= 0 uses DefaultInstructionLimit.
func NewRunner(enabled bool, instLimit int) *Runner {
	if instLimit <= 0 {
		instLimit = DefaultInstructionLimit
	}
	return &Runner{enabled: enabled, instLimit: instLimit}
}

// Enabled reports whether scripts execute at all.
func (r *Runner) Enabled() bool {
	return r.enabled
}

// EvaluateBool runs script with env exposed as read-only globals and
// returns its boolean result. Scripts may be bare expressions ("actor.hp
// > 10") or chunks ending in a return statement. Scripting disabled means
// an unconditional pass.
func (r *Runner) EvaluateBool(script string, env map[string]any) (bool, error) {
	if !r.enabled {
		return true, nil
	}
	script = strings.TrimSpace(script)
	if script == "" {
		return true, nil
	}

	L := r.newState()
	defer L.Close()

	for name, value := range env {
		L.SetGlobal(name, toLValue(L, value))
	}

	chunk := script
	if !strings.Contains(script, "return") {
		chunk = "return " + script
	}
	if err := L.DoString(chunk); err != nil {
		return false, fmt.Errorf("script evaluation failed: %w", err)
	}

	ret := L.Get(-1)
	return lua.LVAsBool(ret), nil
}

// newState builds a fresh LState with only safe stdlib loaded, dangerous
// globals stripped, and an opcode budget enforced through the state's
// context.
func (r *Runner) newState() *lua.LState {
	L := lua.NewState(lua.Options{SkipOpenLibs: true})

	lua.OpenBase(L)
	lua.OpenTable(L)
	lua.OpenString(L)
	lua.OpenMath(L)

	for _, name := range []string{"dofile", "loadfile", "load", "collectgarbage", "require", "print"} {
		L.SetGlobal(name, lua.LNil)
	}

	ctx, _ := newCountingContext(r.instLimit)
	L.SetContext(ctx)
	return L
}

// countingContext cancels itself after Done() has been called limit times.
// GopherLua polls Done() once per opcode, which turns this into an exact
// instruction budget.
type countingContext struct {
	context.Context
	cancel    context.CancelFunc
	remaining *atomic.Int64
}

func (c *countingContext) Done() <-chan struct{} {
	if c.remaining.Add(-1) <= 0 {
		c.cancel()
	}
	return c.Context.Done()
}

func newCountingContext(limit int) (context.Context, context.CancelFunc) {
	base, cancel := context.WithCancel(context.Background())
	rem := &atomic.Int64{}
	rem.Store(int64(limit))
	return &countingContext{Context: base, cancel: cancel, remaining: rem}, cancel
}

// toLValue converts a Go snapshot value into a Lua value. Maps and slices
// become tables; unsupported types render as strings.
func toLValue(L *lua.LState, v any) lua.LValue {
	switch value := v.(type) {
	case nil:
		return lua.LNil
	case bool:
		return lua.LBool(value)
	case int:
		return lua.LNumber(value)
	case int64:
		return lua.LNumber(value)
	case float64:
		return lua.LNumber(value)
	case string:
		return lua.LString(value)
	case map[string]any:
		table := L.NewTable()
		for k, item := range value {
			table.RawSetString(k, toLValue(L, item))
		}
		return table
	case []string:
		table := L.NewTable()
		for _, item := range value {
			table.Append(lua.LString(item))
		}
		return table
	case []any:
		table := L.NewTable()
		for _, item := range value {
			table.Append(toLValue(L, item))
		}
		return table
	default:
		return lua.LString(fmt.Sprintf("%v", value))
	}
}
