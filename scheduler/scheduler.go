// Package scheduler runs a fixed pool of workers draining a shared window
// queue, each worker owning its own graph state end to end and publishing
// finished variants to a shared store. The queue and result channel are
// plain buffered Go channels: the reference implementation reaches for a
// lock-free MPMC queue library for this, but nothing in this module's
// dependency stack provides one, so a buffered channel -- the idiomatic Go
// substitute the teacher itself reaches for in its own worker pools --
// plays the same role.
package scheduler

import (
	"log"
	"sync"
	"time"

	"github.com/dasnellings/lancetgo/errs"
	"github.com/dasnellings/lancetgo/store"
	"github.com/dasnellings/lancetgo/transcript"
	"github.com/dasnellings/lancetgo/window"
)

// Result mirrors window.Result across the output channel boundary.
type Result = window.Result

// Scheduler owns the window queue, result channel, and worker count for one
// run.
type Scheduler struct {
	Threads   int
	Processor *window.Processor
	Store     store.VariantStore

	windowQ chan *window.RefWindow
	resultQ chan Result
}

// New builds a scheduler with a bounded window queue and result channel.
func New(threads int, proc *window.Processor, st store.VariantStore) *Scheduler {
	return &Scheduler{
		Threads:   threads,
		Processor: proc,
		Store:     st,
		windowQ:   make(chan *window.RefWindow, threads*4),
		resultQ:   make(chan Result, threads*4),
	}
}

// Enqueue submits w for processing. Callers must call Close once every
// window has been submitted.
func (s *Scheduler) Enqueue(w *window.RefWindow) { s.windowQ <- w }

// Close signals that no further windows will be enqueued.
func (s *Scheduler) Close() { close(s.windowQ) }

// Results returns the channel workers publish WindowResults to as each
// window finishes, closed once every worker has exited.
func (s *Scheduler) Results() <-chan Result { return s.resultQ }

// Run starts Threads workers and returns without waiting for them; once
// the window queue is closed and drained and every worker has exited, the
// result channel is closed.
func (s *Scheduler) Run() {
	var wg sync.WaitGroup
	for i := 0; i < s.Threads; i++ {
		wg.Add(1)
		go s.worker(&wg)
	}

	go func() {
		wg.Wait()
		close(s.resultQ)
	}()
}

func (s *Scheduler) worker(wg *sync.WaitGroup) {
	defer wg.Done()
	tok := s.Store.NewProducerToken()
	var buf []transcript.Transcript

	for w := range s.windowQ {
		start := time.Now()

		func() {
			defer func() {
				if r := recover(); r != nil {
					log.Printf("dropping window %s after graph invariant violation: %v", w.RegionString(), errs.AsError(r))
					buf = buf[:0]
				}
			}()

			err := s.Processor.ProcessWindow(w, func(t transcript.Transcript) {
				buf = append(buf, t)
			})
			if err != nil {
				log.Printf("dropping window %s: %v", w.RegionString(), err)
				buf = buf[:0]
				return
			}
		}()

		if len(buf) > 0 {
			if !s.Store.TryFlush(tok, buf) {
				s.Store.ForceFlush(tok, buf)
			}
			buf = nil
		}

		s.resultQ <- Result{WindowIdx: w.Idx, RuntimeNS: time.Since(start).Nanoseconds()}
	}

	if len(buf) > 0 {
		s.Store.ForceFlush(tok, buf)
	}
}
