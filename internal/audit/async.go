package audit

import (
	"sync"
	"sync/atomic"
)

// Async decorates a Recorder with a bounded queue and a single
// worker goroutine. Record never blocks: when the queue is full the
// entry is dropped and counted. Auditing must never slow down or
// fail the operation it describes.
type Async struct {
	sink    Recorder
	queue   chan Entry
	done    chan struct{}
	dropped atomic.Int64
	once    sync.Once
}

// NewAsync starts the worker. queueSize bounds in-flight entries.
func NewAsync(sink Recorder, queueSize int) *Async {
	if queueSize < 1 {
		queueSize = 1
	}
	a := &Async{
		sink:  sink,
		queue: make(chan Entry, queueSize),
		done:  make(chan struct{}),
	}
	go a.run()
	return a
}

func (a *Async) run() {
	defer close(a.done)
	for e := range a.queue {
		a.sink.Record(e)
	}
}

// Record stamps and enqueues the entry, dropping it when the queue
// is full.
func (a *Async) Record(e Entry) {
	stamp(&e)
	select {
	case a.queue <- e:
	default:
		a.dropped.Add(1)
	}
}

// Dropped returns how many entries were discarded on a full queue.
func (a *Async) Dropped() int64 {
	return a.dropped.Load()
}

// Close drains the queue and stops the worker. Record calls after
// Close panic; stop producers first.
func (a *Async) Close() {
	a.once.Do(func() {
		close(a.queue)
		<-a.done
	})
}
