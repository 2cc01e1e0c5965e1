// Package workerutil runs long-lived background workers with panic recovery.
package workerutil

import (
	"context"
	"log"
	"runtime/debug"
	"sync"
	"time"
)

const (
	defaultInitialBackoff = 100 * time.Millisecond
	defaultMaxBackoff     = 5 * time.Second
	defaultMaxRetries     = 10
)

// Options configures Run. Zero values select the defaults.
type Options struct {
	InitialBackoff time.Duration
	MaxBackoff     time.Duration
	// MaxRetries counts runs of fn, so 1 means no restart.
	MaxRetries int

	// OnPanic is called after each recovered panic with a 1-based attempt.
	OnPanic func(worker string, attempt int)
	// OnFatal is called once retries are exhausted.
	OnFatal func(worker string, maxRetries int)
}

func (o Options) withDefaults() Options {
	if o.InitialBackoff <= 0 {
		o.InitialBackoff = defaultInitialBackoff
	}
	if o.MaxBackoff <= 0 {
		o.MaxBackoff = defaultMaxBackoff
	}
	if o.MaxRetries <= 0 {
		o.MaxRetries = defaultMaxRetries
	}
	o.MaxBackoff = max(o.MaxBackoff, o.InitialBackoff)
	return o
}

// Run starts fn in a goroutine tracked by wg. A panic in fn is logged with its
// stack and fn is restarted after an exponential backoff. A normal return or a
// cancelled ctx ends the worker.
func Run(ctx context.Context, name string, wg *sync.WaitGroup, fn func(ctx context.Context), opts Options) {
	opts = opts.withDefaults()
	wg.Add(1)
	go func() {
		defer wg.Done()
		loop(ctx, name, fn, opts)
	}()
}

func loop(ctx context.Context, name string, fn func(ctx context.Context), opts Options) {
	delay := opts.InitialBackoff

	for attempt := 1; attempt <= opts.MaxRetries; attempt++ {
		if !runOnce(ctx, name, fn) || ctx.Err() != nil {
			return
		}

		log.Printf("worker %s: restarting in %v (attempt %d)", name, delay, attempt)
		if opts.OnPanic != nil {
			opts.OnPanic(name, attempt)
		}
		if attempt == opts.MaxRetries {
			break
		}

		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return
		case <-timer.C:
		}
		delay = nextBackoff(delay, opts.MaxBackoff)
	}

	log.Printf("worker %s: giving up after %d attempts", name, opts.MaxRetries)
	if opts.OnFatal != nil {
		opts.OnFatal(name, opts.MaxRetries)
	}
}

// runOnce reports whether fn panicked.
func runOnce(ctx context.Context, name string, fn func(ctx context.Context)) (panicked bool) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("worker %s: panic: %v\n%s", name, r, debug.Stack())
			panicked = true
		}
	}()
	fn(ctx)
	return false
}

// nextBackoff doubles current up to limit.
func nextBackoff(current, limit time.Duration) time.Duration {
	if current <= 0 {
		return defaultInitialBackoff
	}
	next := current * 2
	if next > limit || next < current {
		return limit
	}
	return next
}
