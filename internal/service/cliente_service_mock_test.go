package service

import (
	"context"
	"errors"
	"testing"
	"time"

	dom "Clientes/internal/domain"
	"Clientes/internal/query"
	"Clientes/internal/repo"
	"Clientes/internal/repo/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newMockService(t *testing.T) (*ClienteService, *mocks.MockClienteRepo) {
	t.Helper()
	ctrl := gomock.NewController(t)
	m := mocks.NewMockClienteRepo(ctrl)
	return NewClienteService(m, nil), m
}

func TestCreate_UniqueIndexRaceIsDuplicate(t *testing.T) {
	svc, m := newMockService(t)
	ctx := context.Background()

	m.EXPECT().FindOne(ctx, query.ByDNI("111")).Return(dom.Cliente{}, false, nil)
	m.EXPECT().Insert(ctx, gomock.Any()).Return(dom.Cliente{}, repo.ErrDuplicateKey)

	_, err := svc.Create(ctx, map[string]any{"dni": "111"})
	assert.ErrorIs(t, err, ErrDuplicateKey)
}

func TestCreate_StoreErrorPropagatesUnchanged(t *testing.T) {
	svc, m := newMockService(t)
	ctx := context.Background()
	storeErr := &repo.StoreError{Op: "find one", Err: errors.New("connection refused")}

	m.EXPECT().FindOne(ctx, gomock.Any()).Return(dom.Cliente{}, false, storeErr)

	_, err := svc.Create(ctx, map[string]any{"dni": "111"})
	require.Error(t, err)
	assert.Same(t, storeErr, err)
}

func TestUpdate_StoreErrorPropagates(t *testing.T) {
	svc, m := newMockService(t)
	ctx := context.Background()
	storeErr := &repo.StoreError{Op: "update", Err: errors.New("timeout")}

	m.EXPECT().UpdateFields(ctx, "111", dom.Patch{"name": "Ana"}).Return(int64(0), storeErr)

	err := svc.Update(ctx, "111", map[string]any{"name": "Ana"})
	var se *repo.StoreError
	assert.True(t, errors.As(err, &se))
	assert.NotErrorIs(t, err, ErrNotFound)
}

func TestUpdate_UniqueIndexRaceIsDuplicate(t *testing.T) {
	svc, m := newMockService(t)
	ctx := context.Background()

	m.EXPECT().FindOne(ctx, query.ByDNI("222")).Return(dom.Cliente{}, false, nil)
	m.EXPECT().UpdateFields(ctx, "111", gomock.Any()).Return(int64(0), repo.ErrDuplicateKey)

	assert.ErrorIs(t, svc.Update(ctx, "111", map[string]any{"dni": "222"}), ErrDuplicateKey)
}

func TestReactivate_NoModificationIsFailure(t *testing.T) {
	svc, m := newMockService(t)
	ctx := context.Background()
	deleted := time.Now()

	gomock.InOrder(
		m.EXPECT().FindOne(ctx, query.ByDNI("111")).Return(dom.Cliente{DNI: "111", DeletedAt: &deleted}, true, nil),
		m.EXPECT().SetDeletedAt(ctx, "111", nil).Return(repo.UpdateResult{Matched: 1}, nil),
	)

	assert.ErrorIs(t, svc.Reactivate(ctx, "111"), ErrReactivationFailed)
}

func TestDelete_PassesTimestamp(t *testing.T) {
	ctrl := gomock.NewController(t)
	m := mocks.NewMockClienteRepo(ctrl)
	now := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	svc := NewClienteService(m, nil, WithClock(func() time.Time { return now }))
	ctx := context.Background()

	m.EXPECT().SetDeletedAt(ctx, "111", gomock.Any()).DoAndReturn(
		func(_ context.Context, _ string, at *time.Time) (repo.UpdateResult, error) {
			require.NotNil(t, at)
			assert.Equal(t, now, *at)
			return repo.UpdateResult{Matched: 1, Modified: 1}, nil
		})

	assert.NoError(t, svc.Delete(ctx, "111"))
}

func TestList_StoreError(t *testing.T) {
	svc, m := newMockService(t)
	ctx := context.Background()

	m.EXPECT().FindMany(ctx, query.Active(), int64(0), int64(10)).
		Return(nil, &repo.StoreError{Op: "find", Err: errors.New("down")})

	_, err := svc.List(ctx, query.ParseListParams("", "", ""))
	var se *repo.StoreError
	assert.True(t, errors.As(err, &se))
}
