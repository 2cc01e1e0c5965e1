// Package engine is the push-to-talk state machine. It owns the single
// recording session and is driven by chord signals from the input filter.
//
// All state lives on the goroutine running Run. Signals, delayed tasks and
// playback completions are delivered to it as messages, so nothing here needs
// a lock except the published state mirror.
package engine

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"parrot/internal/audio/wavfile"
	"parrot/internal/filter"
)

const (
	// DefaultPlaybackDelay is the wait between release and playback.
	DefaultPlaybackDelay = 500 * time.Millisecond
	// CleanupDelay is the wait between end of playback and deleting the artifact.
	CleanupDelay = 500 * time.Millisecond
)

var (
	// ErrCaptureFailed wraps every capture-side failure.
	ErrCaptureFailed = errors.New("capture failed")
	// ErrPlaybackFailed wraps every playback-side failure.
	ErrPlaybackFailed = errors.New("playback failed")
)

// State is the engine state.
type State int32

const (
	Idle State = iota
	Recording
	Playing
)

func (s State) String() string {
	switch s {
	case Recording:
		return "recording"
	case Playing:
		return "playing"
	default:
		return "idle"
	}
}

// Capture is an open capture stream.
type Capture interface {
	// Stop ends capture and finalizes the artifact.
	Stop() (wavfile.Artifact, error)
	// Abort ends capture and discards whatever was recorded.
	Abort()
}

// Capturer opens capture streams on an input device.
type Capturer interface {
	Open(device string, format wavfile.Format) (Capture, error)
}

// Playback is a running playback.
type Playback interface {
	Duration() time.Duration
	// Done delivers exactly one value when playback ends, nil on success.
	Done() <-chan error
	Stop()
}

// Player starts playback of an artifact.
type Player interface {
	Play(ctx context.Context, artifact wavfile.Artifact) (Playback, error)
}

// Sink receives engine notifications. Calls are made from the engine
// goroutine and must not block for long.
type Sink interface {
	StateChanged(state State)
	CaptureFailed(err error)
	PlaybackFailed(err error)
}

// SignalSource is where chord signals come from.
type SignalSource interface {
	Ready() <-chan struct{}
	Drain() []filter.Signal
}

// Options configures an Engine. Capturer, Player and Sink are required.
type Options struct {
	Capturer Capturer
	Player   Player
	Sink     Sink
	Format   wavfile.Format

	// Device returns the input device name, "" for the default device.
	Device func() string
	// PlaybackDelay is read when the chord is released.
	PlaybackDelay func() time.Duration
	// CleanupDelay defaults to CleanupDelay.
	CleanupDelay time.Duration
	// Microphone returns a non-nil error while capture is not permitted.
	Microphone func() error
}

// Engine runs the Idle → Recording → Idle → Playing → Idle cycle.
type Engine struct {
	opts    Options
	signals SignalSource
	inbox   chan message
	state   atomic.Int32

	// owned by the Run goroutine
	session *session
}

type session struct {
	id        uuid.UUID
	createdAt time.Time
	ctx       context.Context
	cancel    context.CancelFunc
	capture   Capture
	artifact  wavfile.Artifact
	playback  Playback
	timer     *time.Timer
}

type messageKind int

const (
	msgPlay messageKind = iota
	msgPlaybackDone
	msgCleanup
)

type message struct {
	kind      messageKind
	sessionID uuid.UUID
	err       error
}

// New creates an engine reading signals from src.
func New(src SignalSource, opts Options) *Engine {
	if opts.Format == (wavfile.Format{}) {
		opts.Format = wavfile.DefaultFormat
	}
	if opts.CleanupDelay <= 0 {
		opts.CleanupDelay = CleanupDelay
	}
	if opts.PlaybackDelay == nil {
		opts.PlaybackDelay = func() time.Duration { return DefaultPlaybackDelay }
	}
	if opts.Device == nil {
		opts.Device = func() string { return "" }
	}
	return &Engine{
		opts:    opts,
		signals: src,
		inbox:   make(chan message, 8),
	}
}

// State returns the current state. Safe from any goroutine.
func (e *Engine) State() State {
	return State(e.state.Load())
}

// Run processes signals and scheduled tasks until ctx is done, then releases
// any open capture or playback and deletes the artifact.
func (e *Engine) Run(ctx context.Context) {
	defer e.shutdown()

	for {
		select {
		case <-ctx.Done():
			return
		case <-e.signals.Ready():
			for _, sig := range e.signals.Drain() {
				e.apply(sig)
			}
		case msg := <-e.inbox:
			e.handle(msg)
		}
	}
}

func (e *Engine) apply(sig filter.Signal) {
	switch sig.Kind {
	case filter.ChordPressed:
		e.onPressed()
	case filter.ChordReleased:
		e.onReleased()
	}
}

func (e *Engine) onPressed() {
	if e.State() != Idle || e.session != nil {
		log.Printf("engine: press ignored in state %s", e.State())
		return
	}

	if e.opts.Microphone != nil {
		if err := e.opts.Microphone(); err != nil {
			e.captureFailed(err)
			return
		}
	}

	capture, err := e.opts.Capturer.Open(e.opts.Device(), e.opts.Format)
	if err != nil {
		e.captureFailed(err)
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	e.session = &session{
		id:        uuid.New(),
		createdAt: time.Now(),
		ctx:       ctx,
		cancel:    cancel,
		capture:   capture,
	}
	log.Printf("engine: session %s recording", e.session.id)
	e.setState(Recording)
}

func (e *Engine) onReleased() {
	if e.State() != Recording || e.session == nil {
		return
	}
	s := e.session

	artifact, err := s.capture.Stop()
	s.capture = nil
	if err != nil {
		_ = artifact.Remove()
		e.endSession()
		e.captureFailed(err)
		return
	}
	s.artifact = artifact

	delay := max(e.opts.PlaybackDelay(), 0)
	log.Printf("engine: session %s captured %v, playback in %v", s.id, artifact.Duration, delay)
	e.setState(Idle)
	e.schedule(s, delay, msgPlay)
}

func (e *Engine) handle(msg message) {
	s := e.session
	if s == nil || s.id != msg.sessionID {
		return
	}

	switch msg.kind {
	case msgPlay:
		e.startPlayback(s)
	case msgPlaybackDone:
		s.playback = nil
		if msg.err != nil {
			e.playbackFailed(s, msg.err)
			return
		}
		e.schedule(s, e.opts.CleanupDelay, msgCleanup)
	case msgCleanup:
		if err := s.artifact.Remove(); err != nil {
			log.Printf("engine: %v", err)
		}
		log.Printf("engine: session %s done after %v", s.id, time.Since(s.createdAt).Round(time.Millisecond))
		e.endSession()
		e.setState(Idle)
	}
}

func (e *Engine) startPlayback(s *session) {
	if !s.artifact.Exists() {
		e.playbackFailed(s, fmt.Errorf("artifact %q is missing", s.artifact.Path))
		return
	}

	pb, err := e.opts.Player.Play(s.ctx, s.artifact)
	if err != nil {
		e.playbackFailed(s, err)
		return
	}
	s.playback = pb
	log.Printf("engine: session %s playing %v", s.id, pb.Duration())
	e.setState(Playing)

	id := s.id
	go func() {
		var err error
		select {
		case err = <-pb.Done():
		case <-s.ctx.Done():
			return
		}
		select {
		case e.inbox <- message{kind: msgPlaybackDone, sessionID: id, err: err}:
		case <-s.ctx.Done():
		}
	}()
}

// schedule delivers kind to the loop after d unless the session ends first.
func (e *Engine) schedule(s *session, d time.Duration, kind messageKind) {
	id := s.id
	s.timer = time.AfterFunc(d, func() {
		select {
		case e.inbox <- message{kind: kind, sessionID: id}:
		case <-s.ctx.Done():
		}
	})
}

func (e *Engine) captureFailed(err error) {
	err = fmt.Errorf("%w: %w", ErrCaptureFailed, err)
	log.Printf("engine: %v", err)
	e.setState(Idle)
	e.opts.Sink.CaptureFailed(err)
}

func (e *Engine) playbackFailed(s *session, err error) {
	err = fmt.Errorf("%w: %w", ErrPlaybackFailed, err)
	log.Printf("engine: session %s: %v", s.id, err)
	if s.artifact.Exists() {
		if rmErr := s.artifact.Remove(); rmErr != nil {
			log.Printf("engine: %v", rmErr)
		}
	}
	e.endSession()
	e.setState(Idle)
	e.opts.Sink.PlaybackFailed(err)
}

// endSession cancels the session's pending tasks as a unit.
func (e *Engine) endSession() {
	s := e.session
	if s == nil {
		return
	}
	if s.timer != nil {
		s.timer.Stop()
	}
	s.cancel()
	e.session = nil
}

func (e *Engine) shutdown() {
	s := e.session
	if s == nil {
		return
	}
	log.Printf("engine: releasing session %s on shutdown", s.id)
	if s.capture != nil {
		s.capture.Abort()
	}
	if s.playback != nil {
		s.playback.Stop()
	}
	_ = s.artifact.Remove()
	e.endSession()
	e.setState(Idle)
}

func (e *Engine) setState(s State) {
	if State(e.state.Swap(int32(s))) == s {
		return
	}
	e.opts.Sink.StateChanged(s)
}
