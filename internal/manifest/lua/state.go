// Package lua evaluates Lua plugin-spec files in a restricted environment.
//
// Manifest files are plain Lua chunks that return an array of descriptor
// tables. Evaluation happens in a sandboxed state: only the base, table,
// string, and math libraries are opened, and the chunk-loading globals
// (dofile, loadfile, load, loadstring) are removed so a spec file cannot
// pull in arbitrary code. Spec files are data, not programs.
package lua

import (
	"context"
	"fmt"
	"sync"
	"time"

	glua "github.com/yuin/gopher-lua"
)

// DefaultEvalTimeout bounds a single spec evaluation. Spec files are
// declarative; anything that runs this long is looping.
const DefaultEvalTimeout = 5 * time.Second

// State wraps a gopher-lua LState configured for spec evaluation.
//
// gopher-lua's LState is not goroutine-safe. The mutex serializes access
// from Go; Lua execution itself is single-threaded.
type State struct {
	L *glua.LState

	mu      sync.Mutex
	timeout time.Duration
	closed  bool
}

// StateOption configures a State.
type StateOption func(*State)

// WithEvalTimeout sets the per-evaluation timeout.
func WithEvalTimeout(d time.Duration) StateOption {
	return func(s *State) {
		s.timeout = d
	}
}

// NewState creates a sandboxed Lua state for spec evaluation.
func NewState(opts ...StateOption) (*State, error) {
	s := &State{timeout: DefaultEvalTimeout}
	for _, opt := range opts {
		opt(s)
	}

	L := glua.NewState(glua.Options{
		SkipOpenLibs: true, // opened selectively below
	})
	s.L = L

	openSafeLibraries(L)
	removeChunkLoaders(L)

	return s, nil
}

// openSafeLibraries opens only the Lua libraries a spec file may use.
func openSafeLibraries(L *glua.LState) {
	glua.OpenBase(L)
	glua.OpenTable(L)
	glua.OpenString(L)
	glua.OpenMath(L)

	// Intentionally not opened: io, os, debug, package, channel.
}

// removeChunkLoaders strips the globals that load code from disk or strings.
func removeChunkLoaders(L *glua.LState) {
	for _, name := range []string{"dofile", "loadfile", "load", "loadstring"} {
		L.SetGlobal(name, glua.LNil)
	}
}

// EvalFile executes a spec file and returns the table it returns.
// The context bounds evaluation time in addition to the state's timeout.
func (s *State) EvalFile(ctx context.Context, path string) (*glua.LTable, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil, ErrStateClosed
	}

	return s.eval(ctx, func() error { return s.L.DoFile(path) })
}

// EvalString executes a spec chunk from a string and returns the table it
// returns. Primarily for tests.
func (s *State) EvalString(ctx context.Context, code string) (*glua.LTable, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil, ErrStateClosed
	}

	return s.eval(ctx, func() error { return s.L.DoString(code) })
}

// eval runs fn with timeout and panic recovery, then collects the chunk's
// return value from the stack. Callers must hold s.mu.
func (s *State) eval(ctx context.Context, fn func() error) (tbl *glua.LTable, err error) {
	if ctx == nil {
		ctx = context.Background()
	}
	evalCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	s.L.SetContext(evalCtx)
	defer s.L.RemoveContext()

	top := s.L.GetTop()

	defer func() {
		if r := recover(); r != nil {
			tbl = nil
			err = fmt.Errorf("lua panic: %v", r)
		}
	}()

	if err := fn(); err != nil {
		return nil, err
	}

	// DoFile/DoString leave the chunk's return values on the stack. The
	// last value is the spec table; leading returns are discarded.
	nret := s.L.GetTop() - top
	if nret <= 0 {
		return nil, ErrNoResult
	}
	ret := s.L.Get(-1)
	s.L.Pop(nret)

	t, ok := ret.(*glua.LTable)
	if !ok {
		return nil, fmt.Errorf("%w: got %s", ErrNotTable, ret.Type())
	}
	return t, nil
}

// IsClosed returns true if the state has been closed.
func (s *State) IsClosed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}

// Close releases the underlying Lua state.
func (s *State) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}
	s.L.Close()
	s.closed = true
	return nil
}
