package cache

import (
	"sync"

	"go.trai.ch/tome/internal/core/ports"
)

const persistQueueSize = 256

type opKind uint8

const (
	opWrite opKind = iota
	opDelete
	opClear
	opFlush
)

type persistOp struct {
	kind   opKind
	source string
	data   []byte
	done   chan struct{}
}

// persister applies disk writes and deletes on a single goroutine, in the
// order they were queued.
type persister struct {
	disk   *diskStore
	logger ports.Logger

	mu     sync.RWMutex
	closed bool
	ops    chan persistOp
	exited chan struct{}
}

func newPersister(disk *diskStore, logger ports.Logger) *persister {
	p := &persister{
		disk:   disk,
		logger: logger,
		ops:    make(chan persistOp, persistQueueSize),
		exited: make(chan struct{}),
	}
	go p.run()
	return p
}

func (p *persister) run() {
	defer close(p.exited)
	for op := range p.ops {
		p.apply(op)
	}
}

func (p *persister) apply(op persistOp) {
	var err error
	switch op.kind {
	case opWrite:
		err = p.disk.write(op.source, op.data)
	case opDelete:
		err = p.disk.remove(op.source)
	case opClear:
		err = p.disk.clear()
	case opFlush:
		close(op.done)
		return
	}
	if err != nil && p.logger != nil {
		p.logger.Warn("cache persistence: " + err.Error())
	}
}

// enqueue hands op to the persister goroutine. It reports false after close.
func (p *persister) enqueue(op persistOp) bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.closed {
		return false
	}
	p.ops <- op
	return true
}

func (p *persister) write(source string, data []byte) {
	p.enqueue(persistOp{kind: opWrite, source: source, data: data})
}

func (p *persister) delete(source string) {
	p.enqueue(persistOp{kind: opDelete, source: source})
}

func (p *persister) clear() {
	p.enqueue(persistOp{kind: opClear})
}

// flush blocks until every operation queued before it has been applied.
func (p *persister) flush() {
	done := make(chan struct{})
	if !p.enqueue(persistOp{kind: opFlush, done: done}) {
		return
	}
	<-done
}

// close drains the queue and stops the goroutine.
func (p *persister) close() {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return
	}
	p.closed = true
	close(p.ops)
	p.mu.Unlock()
	<-p.exited
}
