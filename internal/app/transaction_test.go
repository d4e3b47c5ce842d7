// internal/app/transaction_test.go
package app

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTxRunsStepsInOrder(t *testing.T) {
	var order []string
	tx := NewTx()
	tx.Append("first", func() error { order = append(order, "first"); return nil }, nil)
	tx.Append("second", func() error { order = append(order, "second"); return nil }, nil)

	require.NoError(t, tx.Run())
	require.Equal(t, []string{"first", "second"}, order)
}

func TestTxRollsBackInReverse(t *testing.T) {
	var log []string
	tx := NewTx()
	tx.Append("a",
		func() error { log = append(log, "apply-a"); return nil },
		func() { log = append(log, "rollback-a") },
	)
	tx.Append("b",
		func() error { log = append(log, "apply-b"); return nil },
		func() { log = append(log, "rollback-b") },
	)
	tx.Append("c",
		func() error { return errors.New("boom") },
		func() { t.Fatal("rollback of the failed step must not run") },
	)

	err := tx.Run()
	require.ErrorIs(t, err, ErrTransactionFailed)
	require.Equal(t, []string{"apply-a", "apply-b", "rollback-b", "rollback-a"}, log)
}

func TestTxAppendDuringRun(t *testing.T) {
	var ran bool
	tx := NewTx()
	tx.Append("outer", func() error {
		tx.Append("appended", func() error { ran = true; return nil }, nil)
		return nil
	}, nil)

	require.NoError(t, tx.Run())
	require.True(t, ran)
}

func TestTxErrorNamesTheStep(t *testing.T) {
	tx := NewTx()
	tx.Append("doomed", func() error { return ErrRejected }, nil)
	err := tx.Run()
	require.ErrorIs(t, err, ErrTransactionFailed)
	require.Contains(t, err.Error(), "doomed")
}
