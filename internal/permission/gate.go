package permission

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"parrot/internal/filter"
)

// PollInterval is how often a denied interception privilege is re-checked.
const PollInterval = time.Second

// GateState is the state of the filter gate.
type GateState int

const (
	// Checking is the initial privilege query.
	Checking GateState = iota
	// Installed means the filter is active.
	Installed
	// Polling means the privilege is missing and is re-checked periodically.
	Polling
	// AwaitingRestart is terminal: the privilege appeared and the process
	// relaunch has been requested.
	AwaitingRestart
)

func (s GateState) String() string {
	switch s {
	case Checking:
		return "checking"
	case Installed:
		return "installed"
	case Polling:
		return "polling"
	case AwaitingRestart:
		return "awaiting restart"
	default:
		return "unknown"
	}
}

// Relauncher replaces the running process with a fresh instance.
type Relauncher interface {
	Relaunch() error
}

// GateOptions configures a Gate. Check, Tap, Handler and Relauncher are
// required.
type GateOptions struct {
	Check      func() Status
	Tap        filter.Tap
	Handler    filter.Handler
	Relauncher Relauncher
	Interval   time.Duration

	// OnState is called on every transition.
	OnState func(GateState)
	// OnUnavailable is called once when the filter cannot be installed.
	OnUnavailable func(error)
}

// Gate installs the filter only when the interception privilege is held and
// otherwise polls for it, ending in a process relaunch.
type Gate struct {
	opts GateOptions

	mu    sync.Mutex
	state GateState
}

// NewGate creates a gate in the Checking state.
func NewGate(opts GateOptions) *Gate {
	if opts.Interval <= 0 {
		opts.Interval = PollInterval
	}
	return &Gate{opts: opts}
}

// State returns the current gate state.
func (g *Gate) State() GateState {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.state
}

// Run performs the initial check and either installs the filter and returns,
// or polls until the privilege is granted and requests a relaunch. It returns
// ctx.Err() if cancelled while polling.
func (g *Gate) Run(ctx context.Context) error {
	g.setState(Checking)

	if g.opts.Check() == Granted {
		err := g.opts.Tap.Install(g.opts.Handler)
		if err == nil {
			g.setState(Installed)
			return nil
		}
		// Already granted: a relaunch cannot fix this.
		err = fmt.Errorf("%w: %w", filter.ErrFilterUnavailable, err)
		g.unavailable(err)
		return err
	}

	g.unavailable(filter.ErrFilterUnavailable)
	g.setState(Polling)

	ticker := time.NewTicker(g.opts.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if g.opts.Check() != Granted {
				continue
			}
			log.Printf("permission: %s granted, relaunching", InputInterception)
			g.setState(AwaitingRestart)
			if err := g.opts.Relauncher.Relaunch(); err != nil {
				return fmt.Errorf("relaunch: %w", err)
			}
			return nil
		}
	}
}

func (g *Gate) unavailable(err error) {
	log.Printf("permission: %v", err)
	if g.opts.OnUnavailable != nil {
		g.opts.OnUnavailable(err)
	}
}

func (g *Gate) setState(s GateState) {
	g.mu.Lock()
	g.state = s
	g.mu.Unlock()

	log.Printf("permission: gate %s", s)
	if g.opts.OnState != nil {
		g.opts.OnState(s)
	}
}
