//go:build unit

package uow_test

import (
	"context"
	"errors"
	"testing"

	"bodyshop/internal/infra/uow"
	"bodyshop/internal/usecase/shared"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeTx struct {
	pgx.Tx
	committed  bool
	rolledBack bool
	commitErr  error
}

func (f *fakeTx) Commit(context.Context) error {
	if f.commitErr != nil {
		return f.commitErr
	}
	f.committed = true
	return nil
}

func (f *fakeTx) Rollback(context.Context) error {
	if f.committed {
		return pgx.ErrTxClosed
	}
	f.rolledBack = true
	return nil
}

type fakePool struct {
	pgx.Tx // satisfies db.DBTX; never called here
	begun  []pgx.TxOptions
	txs    []*fakeTx
}

func (p *fakePool) BeginTx(_ context.Context, opts pgx.TxOptions) (pgx.Tx, error) {
	p.begun = append(p.begun, opts)
	tx := &fakeTx{}
	p.txs = append(p.txs, tx)
	return tx, nil
}

var serializationFailure = &pgconn.PgError{Code: "40001"}

func TestWithin_CommitsOnSuccess(t *testing.T) {
	pool := &fakePool{}
	u := uow.NewPostgresUoW(pool)

	err := u.Within(context.Background(), func(_ context.Context, tx shared.Tx) error {
		assert.NotNil(t, tx.Bookings())
		assert.Same(t, tx.Bookings(), tx.Bookings())
		assert.Same(t, tx.Idempotency(), tx.Idempotency())
		return nil
	})

	require.NoError(t, err)
	require.Len(t, pool.txs, 1)
	assert.True(t, pool.txs[0].committed)
	assert.Equal(t, pgx.ReadCommitted, pool.begun[0].IsoLevel)
}

func TestWithin_RollsBackAndDoesNotRetry(t *testing.T) {
	pool := &fakePool{}
	u := uow.NewPostgresUoW(pool)

	calls := 0
	err := u.Within(context.Background(), func(context.Context, shared.Tx) error {
		calls++
		return serializationFailure
	})

	require.Error(t, err)
	assert.Equal(t, 1, calls)
	assert.True(t, pool.txs[0].rolledBack)
}

func TestWithinSerializable_RetriesRetryableErrors(t *testing.T) {
	pool := &fakePool{}
	u := uow.NewPostgresUoW(pool)

	calls := 0
	err := u.WithinSerializable(context.Background(), func(context.Context, shared.Tx) error {
		calls++
		if calls < 3 {
			return serializationFailure
		}
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 3, calls)
	for _, opts := range pool.begun {
		assert.Equal(t, pgx.Serializable, opts.IsoLevel)
	}
	assert.True(t, pool.txs[2].committed)
}

func TestWithinSerializable_StopsOnOtherErrors(t *testing.T) {
	pool := &fakePool{}
	u := uow.NewPostgresUoW(pool)
	boom := errors.New("boom")

	calls := 0
	err := u.WithinSerializable(context.Background(), func(context.Context, shared.Tx) error {
		calls++
		return boom
	})

	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 1, calls)
}

func TestWithinSerializable_GivesUp(t *testing.T) {
	pool := &fakePool{}
	u := uow.NewPostgresUoW(pool)

	calls := 0
	err := u.WithinSerializable(context.Background(), func(context.Context, shared.Tx) error {
		calls++
		return serializationFailure
	})

	require.Error(t, err)
	assert.Equal(t, 4, calls)
	var pgErr *pgconn.PgError
	assert.True(t, errors.As(err, &pgErr))
}
