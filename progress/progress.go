// SPDX-License-Identifier: MIT

package progress

import (
	"sync"

	"github.com/sbwhitecap/tqdm"
	"github.com/sbwhitecap/tqdm/iterators"
)

// Sink opens progress handles for named phases.
type Sink interface {
	// Start opens a phase expecting total units of work.
	Start(total int, desc string) Handle
}

// Handle receives updates for one phase.
type Handle interface {
	// Update records n finished units.
	Update(n int)
	// Close ends the phase.
	Close() error
}

// Nop is a Sink that discards all progress.
var Nop Sink = nopSink{}

type nopSink struct{}

func (nopSink) Start(int, string) Handle { return nopHandle{} }

type nopHandle struct{}

func (nopHandle) Update(int)   {}
func (nopHandle) Close() error { return nil }

// Tqdm renders a terminal progress bar per phase.
type Tqdm struct{}

// Start launches the bar. The bar advances one step per unit received
// through Update and never past total.
func (Tqdm) Start(total int, desc string) Handle {
	h := &tqdmHandle{
		ticks: make(chan struct{}),
		done:  make(chan struct{}),
		total: total,
	}
	go func() {
		defer close(h.done)
		h.err = tqdm.With(iterators.Interval(0, total), desc, func(interface{}) (brk bool) {
			_, ok := <-h.ticks

			return !ok
		})
	}()

	return h
}

type tqdmHandle struct {
	ticks chan struct{}
	done  chan struct{}
	total int
	sent  int
	err   error
	once  sync.Once
}

func (h *tqdmHandle) Update(n int) {
	for ; n > 0 && h.sent < h.total; n-- {
		h.ticks <- struct{}{}
		h.sent++
	}
}

func (h *tqdmHandle) Close() error {
	h.once.Do(func() { close(h.ticks) })
	<-h.done

	return h.err
}

// Recorder tallies phases in memory. Safe for concurrent use.
type Recorder struct {
	mu     sync.Mutex
	phases []*Phase
}

// Phase is one recorded phase.
type Phase struct {
	Desc    string
	Total   int
	Done    int
	Updates int
	Closed  bool
}

// Start records a new phase.
func (r *Recorder) Start(total int, desc string) Handle {
	r.mu.Lock()
	defer r.mu.Unlock()
	p := &Phase{Desc: desc, Total: total}
	r.phases = append(r.phases, p)

	return &recordHandle{r: r, p: p}
}

// Phases returns a snapshot of all phases in start order.
func (r *Recorder) Phases() []Phase {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Phase, len(r.phases))
	for i, p := range r.phases {
		out[i] = *p
	}

	return out
}

// Phase returns the first phase named desc.
func (r *Recorder) Phase(desc string) (Phase, bool) {
	for _, p := range r.Phases() {
		if p.Desc == desc {
			return p, true
		}
	}

	return Phase{}, false
}

type recordHandle struct {
	r *Recorder
	p *Phase
}

func (h *recordHandle) Update(n int) {
	h.r.mu.Lock()
	defer h.r.mu.Unlock()
	h.p.Done += n
	h.p.Updates++
}

func (h *recordHandle) Close() error {
	h.r.mu.Lock()
	defer h.r.mu.Unlock()
	h.p.Closed = true

	return nil
}
