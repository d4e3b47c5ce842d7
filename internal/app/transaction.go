// internal/app/transaction.go
package app

import (
	"errors"
	"fmt"
)

// ErrTransactionFailed wraps the error of the step that broke a
// transaction. By the time a caller sees it every previously applied step
// has been rolled back; partial effects never survive.
var ErrTransactionFailed = errors.New("app: transaction failed")

// ErrRejected is the expected-failure result of a mutation: wrong tile
// type, occupied or empty tile, team at capacity. It carries no stack of
// causes because it is a normal gameplay outcome.
var ErrRejected = errors.New("app: operation rejected")

// Step is one unit of work inside a transaction. Apply performs the
// mutation; Rollback must restore exactly the state Apply found. Rollback
// is only invoked after a successful Apply.
type Step struct {
	Name     string
	Apply    func() error
	Rollback func()
}

// Tx executes an ordered list of steps with all-or-nothing semantics.
// Steps may be appended while the transaction runs, which lets skill
// hooks extend the operation that triggered them.
type Tx struct {
	steps []Step
}

// NewTx returns an empty transaction.
func NewTx() *Tx {
	return &Tx{}
}

// Append adds a step to the end of the transaction.
func (tx *Tx) Append(name string, apply func() error, rollback func()) {
	tx.steps = append(tx.steps, Step{Name: name, Apply: apply, Rollback: rollback})
}

// Run applies the steps in order. On the first failure it rolls the
// already applied steps back in reverse order and reports the failure;
// the board then looks exactly as it did before Run.
func (tx *Tx) Run() error {
	for i := 0; i < len(tx.steps); i++ {
		if err := tx.steps[i].Apply(); err != nil {
			for j := i - 1; j >= 0; j-- {
				if tx.steps[j].Rollback != nil {
					tx.steps[j].Rollback()
				}
			}
			return fmt.Errorf("%w: step %q: %v", ErrTransactionFailed, tx.steps[i].Name, err)
		}
	}
	return nil
}
