package runloop

import (
	"context"
	"sync"
)

// Loop runs posted functions one at a time on the goroutine that calls Run.
// Everything that touches presenter, store or bus state goes through it; slow
// work started with Go runs elsewhere and comes back as a posted continuation.
type Loop struct {
	mu      sync.Mutex
	queue   []func()
	pending int
	busy    bool
	idle    chan struct{}
	isIdle  bool
	wake    chan struct{}
}

func New() *Loop {
	idle := make(chan struct{})
	close(idle)
	return &Loop{
		idle:   idle,
		isIdle: true,
		wake:   make(chan struct{}, 1),
	}
}

// Post queues fn to run on the loop.
func (l *Loop) Post(fn func()) {
	if fn == nil {
		return
	}
	l.mu.Lock()
	l.queue = append(l.queue, fn)
	l.updateIdleLocked()
	l.mu.Unlock()
	l.signal()
}

// Go runs work on its own goroutine. The function it returns, if any, is
// posted back to the loop. The loop counts the call as in flight until then.
func (l *Loop) Go(ctx context.Context, work func(context.Context) func()) {
	l.mu.Lock()
	l.pending++
	l.updateIdleLocked()
	l.mu.Unlock()

	go func() {
		var next func()
		defer func() {
			l.mu.Lock()
			l.pending--
			if next != nil {
				l.queue = append(l.queue, next)
			}
			l.updateIdleLocked()
			l.mu.Unlock()
			l.signal()
		}()
		next = work(ctx)
	}()
}

type outcome struct {
	err       error
	recovered any
	panicked  bool
}

// Do runs fn on the loop and waits for it. A panic inside fn is raised again
// on the caller's goroutine.
func (l *Loop) Do(ctx context.Context, fn func() error) error {
	done := make(chan outcome, 1)
	l.Post(func() {
		defer func() {
			if r := recover(); r != nil {
				done <- outcome{recovered: r, panicked: true}
			}
		}()
		done <- outcome{err: fn()}
	})

	select {
	case out := <-done:
		if out.panicked {
			panic(out.recovered)
		}
		return out.err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Run executes queued functions until ctx is done.
func (l *Loop) Run(ctx context.Context) error {
	for {
		l.mu.Lock()
		if len(l.queue) > 0 {
			fn := l.queue[0]
			l.queue[0] = nil
			l.queue = l.queue[1:]
			l.busy = true
			l.updateIdleLocked()
			l.mu.Unlock()

			fn()

			l.mu.Lock()
			l.busy = false
			l.updateIdleLocked()
			l.mu.Unlock()
			continue
		}
		l.mu.Unlock()

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-l.wake:
		}
	}
}

// Settle blocks until nothing is queued, running or in flight. It needs Run to
// be active on another goroutine.
func (l *Loop) Settle(ctx context.Context) error {
	for {
		l.mu.Lock()
		if l.isIdle {
			l.mu.Unlock()
			return nil
		}
		idle := l.idle
		l.mu.Unlock()

		select {
		case <-idle:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

func (l *Loop) updateIdleLocked() {
	idle := len(l.queue) == 0 && l.pending == 0 && !l.busy
	switch {
	case idle && !l.isIdle:
		close(l.idle)
		l.isIdle = true
	case !idle && l.isIdle:
		l.idle = make(chan struct{})
		l.isIdle = false
	}
}

func (l *Loop) signal() {
	select {
	case l.wake <- struct{}{}:
	default:
	}
}
