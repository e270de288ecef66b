package db

import (
	"context"
	"errors"
	"testing"

	pgxmock "github.com/pashagolub/pgxmock/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockPool(t *testing.T) pgxmock.PgxPoolIface {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return mock
}

func TestTxManager_RunInTx(t *testing.T) {
	errBoom := errors.New("boom")

	tests := []struct {
		name    string
		setup   func(mock pgxmock.PgxPoolIface)
		fn      func(ctx context.Context) error
		wantErr error
	}{
		{
			name: "commit_on_success",
			setup: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectBegin()
				mock.ExpectCommit()
			},
			fn: func(ctx context.Context) error {
				_, ok := TxFromCtx(ctx)
				if !ok {
					return errors.New("tx missing from context")
				}
				return nil
			},
		},
		{
			name: "rollback_on_error",
			setup: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectBegin()
				mock.ExpectRollback()
			},
			fn:      func(ctx context.Context) error { return errBoom },
			wantErr: errBoom,
		},
		{
			name: "begin_failure",
			setup: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectBegin().WillReturnError(errBoom)
			},
			fn:      func(ctx context.Context) error { return nil },
			wantErr: errBoom,
		},
		{
			name: "commit_failure",
			setup: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectBegin()
				mock.ExpectCommit().WillReturnError(errBoom)
			},
			fn:      func(ctx context.Context) error { return nil },
			wantErr: errBoom,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			mock := newMockPool(t)
			tc.setup(mock)

			err := NewTxManager(mock).RunInTx(context.Background(), tc.fn)
			if tc.wantErr != nil {
				require.ErrorIs(t, err, tc.wantErr)
			} else {
				require.NoError(t, err)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestTxManager_RollbackOnPanic(t *testing.T) {
	mock := newMockPool(t)
	mock.ExpectBegin()
	mock.ExpectRollback()

	assert.Panics(t, func() {
		_ = NewTxManager(mock).RunInTx(context.Background(), func(ctx context.Context) error {
			panic("kaboom")
		})
	})
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestQuerierFromCtx(t *testing.T) {
	mock := newMockPool(t)

	assert.Equal(t, Querier(mock), QuerierFromCtx(context.Background(), mock))

	mock.ExpectBegin()
	tx, err := mock.Begin(context.Background())
	require.NoError(t, err)
	assert.Equal(t, Querier(tx), QuerierFromCtx(withTx(context.Background(), tx), mock))
}
