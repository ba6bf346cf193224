package builder

import (
	"context"
	"fmt"

	"go.trai.ch/tome/internal/core/domain"
	"go.trai.ch/tome/internal/core/ports"
	"go.trai.ch/zerr"
)

// outcome is the result of processing one file.
type outcome struct {
	file   domain.InternedString
	doc    *domain.Document
	cached bool
	diags  []domain.Diagnostic
	err    error
}

type workFunc func(ctx context.Context, file string) outcome

// schedule processes every file of graph with at most jobs concurrent workers.
// A file starts only after all of its dependencies completed. The first failure
// cancels the remaining work; in-flight workers are drained before it is returned.
func schedule(ctx context.Context, graph *domain.DependencyGraph, jobs int, work workFunc) ([]outcome, error) {
	if jobs <= 0 {
		return nil, zerr.With(zerr.Wrap(domain.ErrInvalidParallelism, "scheduler"), "jobs", jobs)
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	state := newRunState(ctx, graph, jobs, work)
	for !state.isDone() {
		state.schedule()

		if state.isDone() {
			break
		}

		if state.ctx.Err() != nil && state.active == 0 {
			break
		}

		res := <-state.results
		state.handleResult(res, cancel)
	}

	if state.err != nil {
		return nil, state.err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return state.done, nil
}

type runState struct {
	graph    *domain.DependencyGraph
	inDegree map[domain.InternedString]int
	ready    []domain.InternedString
	active   int
	results  chan outcome
	done     []outcome
	err      error
	ctx      context.Context
	jobs     int
	work     workFunc
}

func newRunState(ctx context.Context, graph *domain.DependencyGraph, jobs int, work workFunc) *runState {
	inDegree := make(map[domain.InternedString]int, graph.Len())
	var ready []domain.InternedString
	for file := range graph.Walk() {
		inDegree[file] = len(graph.Dependencies(file))
		if inDegree[file] == 0 {
			ready = append(ready, file)
		}
	}

	return &runState{
		graph:    graph,
		inDegree: inDegree,
		ready:    ready,
		results:  make(chan outcome, jobs),
		done:     make([]outcome, 0, graph.Len()),
		ctx:      ctx,
		jobs:     jobs,
		work:     work,
	}
}

func (s *runState) isDone() bool {
	return s.active == 0 && len(s.ready) == 0
}

func (s *runState) schedule() {
	for len(s.ready) > 0 && s.active < s.jobs && s.ctx.Err() == nil {
		file := s.ready[0]
		s.ready = s.ready[1:]
		s.active++

		go func(f domain.InternedString) {
			res := s.work(s.ctx, f.String())
			res.file = f
			s.results <- res
		}(file)
	}
}

func (s *runState) handleResult(res outcome, cancel context.CancelFunc) {
	s.active--
	if res.err != nil {
		if s.err == nil {
			s.err = &processingError{path: res.file.String(), cause: res.err}
			cancel()
		}
		return
	}
	if s.err != nil {
		return
	}

	s.done = append(s.done, res)
	for _, dependent := range s.graph.Dependents(res.file) {
		s.inDegree[dependent]--
		if s.inDegree[dependent] == 0 {
			s.ready = append(s.ready, dependent)
		}
	}
}

// recordOutcome reports res to the document metrics.
func recordOutcome(m ports.MetricsRecorder, res outcome) {
	switch {
	case res.err != nil:
		m.IncDocument(ports.OutcomeFailed)
	case res.cached:
		m.IncDocument(ports.OutcomeCached)
	default:
		m.IncDocument(ports.OutcomeParsed)
	}
}

// processingError marks a failed document as domain.ErrProcessingFailed while
// keeping the cause chain intact.
type processingError struct {
	path  string
	cause error
}

func (e *processingError) Error() string {
	return fmt.Sprintf("%s: %s: %s", domain.ErrProcessingFailed.Error(), e.path, e.cause.Error())
}

// Message returns the message without the cause chain.
func (e *processingError) Message() string {
	return domain.ErrProcessingFailed.Error()
}

// Metadata returns the failed path.
func (e *processingError) Metadata() map[string]any {
	return map[string]any{"path": e.path}
}

func (e *processingError) Unwrap() error {
	return e.cause
}

func (e *processingError) Is(target error) bool {
	return target == domain.ErrProcessingFailed
}
