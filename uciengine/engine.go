// Package uciengine drives a UCI chess engine subprocess through its
// handshake and search lifecycle (§4.11, C11): a small state machine, two
// message queues (commands going to the engine, replies coming back), and
// a single goroutine that owns all I/O with the child, multiplexed via
// event.Waiter so the rest of the program never blocks on the engine
// directly.
package uciengine

import (
	"bufio"
	"fmt"
	"sync"
	"time"

	"golang.org/x/xerrors"

	"github.com/rookwing/chesscore/event"
	"github.com/rookwing/chesscore/process"
)

// DebugFunc receives every line exchanged with the engine, tagged toEngine
// true for outgoing lines. It is stored as a (func, context) pair per the
// original design: ctx is passed back on every call instead of relying on
// a closure capturing mutable state, so callers can swap the function
// without losing its associated context.
type DebugFunc func(ctx interface{}, toEngine bool, line string)

// Engine drives one UCI engine subprocess.
type Engine struct {
	mu    sync.Mutex
	state State
	proc  *process.Process

	toEngine   *MessageQueue
	fromEngine *MessageQueue
	quitEvt    *event.Event
	waiter     *event.Waiter

	options map[string]Option
	pending []ToEngineMessage // setoption requests queued before uciok

	discardNextBestMove bool

	debugFn  DebugFunc
	debugCtx interface{}

	loopDone chan struct{}
}

// Load starts exe and spins up the driver's background I/O loop. The
// engine begins in the Loaded state; call Handshake to move to Idle.
func Load(name, exe, workdir string) (*Engine, error) {
	proc, err := process.Load(name, exe, workdir)
	if err != nil {
		return nil, xerrors.Errorf("uciengine: load %s: %w", name, err)
	}
	toEngine, err := NewMessageQueue()
	if err != nil {
		return nil, xerrors.Errorf("uciengine: %w", err)
	}
	fromEngine, err := NewMessageQueue()
	if err != nil {
		return nil, xerrors.Errorf("uciengine: %w", err)
	}
	quitEvt, err := event.NewManualResetEvent()
	if err != nil {
		return nil, xerrors.Errorf("uciengine: %w", err)
	}

	e := &Engine{
		state:      Loaded,
		proc:       proc,
		toEngine:   toEngine,
		fromEngine: fromEngine,
		quitEvt:    quitEvt,
		waiter:     event.NewWaiter(),
		options:    make(map[string]Option),
		loopDone:   make(chan struct{}),
	}
	go e.ioLoop()
	return e, nil
}

// SetDebugFunc installs a (func, context) debug hook; pass nil to disable.
func (e *Engine) SetDebugFunc(fn DebugFunc, ctx interface{}) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.debugFn = fn
	e.debugCtx = ctx
}

func (e *Engine) debug(toEngine bool, line string) {
	e.mu.Lock()
	fn, ctx := e.debugFn, e.debugCtx
	e.mu.Unlock()
	if fn != nil {
		fn(ctx, toEngine, line)
	}
}

// State returns the engine's current lifecycle state.
func (e *Engine) State() State {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state
}

func (e *Engine) setState(s State) {
	e.mu.Lock()
	e.state = s
	e.mu.Unlock()
}

// Options returns the set of options the engine advertised after the
// "uci" handshake.
func (e *Engine) Options() map[string]Option {
	e.mu.Lock()
	defer e.mu.Unlock()
	out := make(map[string]Option, len(e.options))
	for k, v := range e.options {
		out[k] = v
	}
	return out
}

// Handshake sends "uci" and blocks (via FromEngine) until uciok or
// timeout. On success the engine moves to Idle and any options queued via
// SetOption before the handshake completed are flushed.
func (e *Engine) Handshake(timeout time.Duration) error {
	if e.State() != Loaded {
		return stateError("handshake", e.State())
	}
	e.toEngine.Push(ToEngineMessage{Tag: ToEngineUCI})
	deadline := time.Now().Add(timeout)
	for {
		msg, ok := e.fromEngine.Pop()
		if ok {
			fm := msg.(FromEngineMessage)
			switch fm.Tag {
			case FromEngineOption:
				e.mu.Lock()
				e.options[fm.Option.Name] = fm.Option
				e.mu.Unlock()
			case FromEngineUCIOk:
				e.setState(Idle)
				e.flushPending()
				return nil
			}
			continue
		}
		if time.Now().After(deadline) {
			return fmt.Errorf("uciengine: handshake timed out")
		}
		time.Sleep(time.Millisecond)
	}
}

// SetOption queues (or, once past the handshake, immediately sends) a
// setoption command. Requests made before uciok are held in pending and
// flushed in order once the handshake completes, matching engines that
// reject setoption before they've finished declaring their options.
func (e *Engine) SetOption(name, value string) {
	msg := ToEngineMessage{Tag: ToEngineSetOption, OptionName: name, OptionValue: value}
	if e.State() == Loaded {
		e.mu.Lock()
		e.pending = append(e.pending, msg)
		e.mu.Unlock()
		return
	}
	e.toEngine.Push(msg)
}

func (e *Engine) flushPending() {
	e.mu.Lock()
	pending := e.pending
	e.pending = nil
	e.mu.Unlock()
	for _, msg := range pending {
		e.toEngine.Push(msg)
	}
}

// NewGame sends ucinewgame; valid from Idle.
func (e *Engine) NewGame() error {
	if s := e.State(); s != Idle {
		return stateError("ucinewgame", s)
	}
	e.toEngine.Push(ToEngineMessage{Tag: ToEngineNewGame})
	return nil
}

// IsReady sends isready in any state. It does not change the engine's
// state; the readyok reply is delivered through FromEngine.
func (e *Engine) IsReady() error {
	e.toEngine.Push(ToEngineMessage{Tag: ToEngineIsReady})
	return nil
}

// SetPosition sends a position command.
func (e *Engine) SetPosition(fen string, moves []string) error {
	if s := e.State(); s != Idle && s != Ready {
		return stateError("position", s)
	}
	e.toEngine.Push(ToEngineMessage{Tag: ToEnginePosition, FEN: fen, Moves: moves})
	e.setState(Ready)
	return nil
}

// Go starts a search; valid from Ready, transitions to Thinking.
func (e *Engine) Go(params GoParams) error {
	if s := e.State(); s != Ready {
		return stateError("go", s)
	}
	e.toEngine.Push(ToEngineMessage{Tag: ToEngineGo, GoParams: params})
	e.setState(Thinking)
	return nil
}

// Stop requests the engine abandon its search early. If discardBestMove
// is true, the I/O loop drops the next bestmove message instead of
// publishing it to FromEngine — for stopping a search whose result the
// caller no longer wants (e.g. aborted because the position changed).
func (e *Engine) Stop(discardBestMove bool) error {
	if s := e.State(); s != Thinking {
		return stateError("stop", s)
	}
	if discardBestMove {
		e.mu.Lock()
		e.discardNextBestMove = true
		e.mu.Unlock()
	}
	e.toEngine.Push(ToEngineMessage{Tag: ToEngineStop})
	return nil
}

// FromEngine returns the next parsed message from the engine, if any.
func (e *Engine) FromEngine() (FromEngineMessage, bool) {
	msg, ok := e.fromEngine.Pop()
	if !ok {
		return FromEngineMessage{}, false
	}
	return msg.(FromEngineMessage), true
}

// Unload signals the I/O loop to quit, sends a UCI "quit", and waits
// (bounded by timeout) for the child process to exit. Valid from any
// state, per the state machine's unconditional unload transition.
func (e *Engine) Unload(timeout time.Duration) error {
	e.toEngine.Push(ToEngineMessage{Tag: ToEngineQuit})
	_ = e.quitEvt.Set()
	<-e.loopDone
	e.setState(Unloaded)
	return e.proc.Unload(timeout)
}

// ioLoop is the single goroutine that owns all engine I/O. It blocks on
// the engine's stdout, the outgoing queue's event, and the quit event via
// a Waiter, dispatching whichever source becomes ready.
func (e *Engine) ioLoop() {
	defer close(e.loopDone)
	scanner := bufio.NewScanner(e.proc.Stdout())
	events := []*event.Event{e.proc.StdoutEvent(), e.toEngine.Event(), e.quitEvt}

	for {
		idx, result, err := e.waiter.Wait(events, 1000)
		if err != nil {
			return
		}
		if result == event.WaitTimeout {
			continue
		}
		switch idx {
		case 0: // stdout readable (or hung up)
			if result == event.WaitHangup {
				return
			}
			for scanner.Scan() {
				line := scanner.Text()
				e.debug(false, line)
				fm := ParseFromEngine(line)
				if fm.Tag == FromEngineBestMove {
					e.mu.Lock()
					discard := e.discardNextBestMove
					e.discardNextBestMove = false
					e.mu.Unlock()
					e.setState(Idle)
					if discard {
						continue
					}
				}
				e.fromEngine.Push(fm)
				break // one line per wake; re-poll to stay fair to other sources
			}
		case 1: // outgoing command queued
			for _, raw := range e.toEngine.DrainAll() {
				msg := raw.(ToEngineMessage)
				if msg.Tag == ToEngineQuit {
					line := msg.Encode()
					e.debug(true, line)
					fmt.Fprintln(e.proc.Stdin(), line)
					return
				}
				line := msg.Encode()
				e.debug(true, line)
				fmt.Fprintln(e.proc.Stdin(), line)
			}
		case 2: // quit requested
			line := ToEngineMessage{Tag: ToEngineQuit}.Encode()
			e.debug(true, line)
			fmt.Fprintln(e.proc.Stdin(), line)
			return
		}
	}
}
