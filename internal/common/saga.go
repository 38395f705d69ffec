package common

import (
	"context"

	"github.com/riple-app/backend/pkg/xcontext"
)

// Saga runs a sequence of remote writes that cannot share a transaction.
// When a step fails, the compensations of every completed step run in
// reverse order, so no partial result is left behind.
type Saga struct {
	steps []sagaStep
}

type sagaStep struct {
	do         func(context.Context) error
	compensate func(context.Context) error
}

func NewSaga() *Saga {
	return &Saga{}
}

// Step appends an action with its undo. A nil compensate means the step
// needs no cleanup.
func (s *Saga) Step(do, compensate func(context.Context) error) *Saga {
	s.steps = append(s.steps, sagaStep{do: do, compensate: compensate})
	return s
}

// Run executes the steps in order and returns the first failure after
// compensating. Compensation failures are logged, not returned: the
// original error is the one the caller must see.
func (s *Saga) Run(ctx context.Context) error {
	for i, step := range s.steps {
		err := step.do(ctx)
		if err == nil {
			continue
		}

		for j := i - 1; j >= 0; j-- {
			if s.steps[j].compensate == nil {
				continue
			}

			if cerr := s.steps[j].compensate(ctx); cerr != nil {
				xcontext.Logger(ctx).Errorf("Cannot compensate step %d: %v", j, cerr)
			}
		}

		return err
	}

	return nil
}
