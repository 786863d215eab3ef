package txmanager

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AppointmentService/pkg/dbmetrics"
)

type fakeTx struct {
	commitErr error
	commits   int
	rollbacks int
}

func (t *fakeTx) ExecContext(context.Context, string, ...interface{}) (sql.Result, error) {
	return nil, nil
}

func (t *fakeTx) QueryContext(context.Context, string, ...interface{}) (*sql.Rows, error) {
	return nil, nil
}

func (t *fakeTx) QueryRowContext(context.Context, string, ...interface{}) *sql.Row {
	return nil
}

func (t *fakeTx) Commit() error {
	t.commits++
	return t.commitErr
}

func (t *fakeTx) Rollback() error {
	t.rollbacks++
	return nil
}

type fakeTxBeginner struct {
	tx            *fakeTx
	beginAttempts int
}

func (db *fakeTxBeginner) BeginTx(_ context.Context, _ *sql.TxOptions) (dbmetrics.TxExecutor, error) {
	db.beginAttempts++
	return db.tx, nil
}

func TestTransactionManager_DoSerializable_Success(t *testing.T) {
	db := &fakeTxBeginner{tx: &fakeTx{}}
	m := NewTransactionManager(db)

	var sawExecutor bool
	err := m.DoSerializable(context.Background(), func(ctx context.Context) error {
		sawExecutor = dbmetrics.IsInTransaction(ctx)
		return nil
	})

	require.NoError(t, err)
	assert.True(t, sawExecutor)
	assert.Equal(t, 1, db.beginAttempts)
	assert.Equal(t, 1, db.tx.commits)
	assert.Zero(t, db.tx.rollbacks)
}

func TestTransactionManager_DoSerializable_RetriesCommitConflict(t *testing.T) {
	// Конфликт сериализации на фиксации: транзакция повторяется до лимита,
	// ошибка драйвера остаётся в цепочке возвращённой ошибки
	db := &fakeTxBeginner{tx: &fakeTx{commitErr: &pq.Error{Code: "40001"}}}
	m := NewTransactionManager(db)

	err := m.DoSerializable(context.Background(), func(ctx context.Context) error {
		return nil
	})

	require.Error(t, err)
	assert.Equal(t, maxSerializableRetries, db.beginAttempts)
	assert.ErrorIs(t, err, ErrTxFailed)

	var pqErr *pq.Error
	require.ErrorAs(t, err, &pqErr)
	assert.Equal(t, pq.ErrorCode("40001"), pqErr.Code)
}

func TestTransactionManager_DoSerializable_RetriesWrappedQueryConflict(t *testing.T) {
	// Репозитории оборачивают ошибку драйвера через %w - конфликт на чтении
	// внутри транзакции тоже распознаётся и повторяется
	sentinel := errors.New("repository: failed to execute query")
	wrapped := fmt.Errorf("%w: execute query: %w", sentinel, &pq.Error{Code: "40001"})

	db := &fakeTxBeginner{tx: &fakeTx{}}
	m := NewTransactionManager(db)

	attempts := 0
	err := m.DoSerializable(context.Background(), func(ctx context.Context) error {
		attempts++
		return wrapped
	})

	require.Error(t, err)
	assert.Equal(t, maxSerializableRetries, attempts)
	assert.ErrorIs(t, err, sentinel)
	assert.Equal(t, maxSerializableRetries, db.tx.rollbacks)
}

func TestTransactionManager_DoSerializable_NoRetryOnOtherErrors(t *testing.T) {
	db := &fakeTxBeginner{tx: &fakeTx{}}
	m := NewTransactionManager(db)

	boom := errors.New("boom")
	err := m.DoSerializable(context.Background(), func(ctx context.Context) error {
		return boom
	})

	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 1, db.beginAttempts)
	assert.Equal(t, 1, db.tx.rollbacks)
	assert.Zero(t, db.tx.commits)
}
