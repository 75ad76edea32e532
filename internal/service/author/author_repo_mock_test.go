package author

import (
	"context"
	"sync"

	"github.com/heartmarshall/sapl-backend/internal/domain"
)

var _ authorRepo = &authorRepoMock{}

type authorRepoMock struct {
	GetByIDsFunc         func(ctx context.Context, ids []int64) ([]domain.Author, error)
	ListPageFunc         func(ctx context.Context, limit, offset int) ([]domain.Author, int, error)
	ParliamentariansFunc func(ctx context.Context, ids []int64) ([]domain.Parliamentarian, error)
	CommitteesFunc       func(ctx context.Context, ids []int64) ([]domain.Committee, error)
	CollectivesFunc      func(ctx context.Context, kind domain.ContentType, ids []int64) ([]domain.Collective, error)

	calls struct {
		Parliamentarians [][]int64
		Collectives      []domain.ContentType
	}
	lock sync.RWMutex
}

func (mock *authorRepoMock) GetByIDs(ctx context.Context, ids []int64) ([]domain.Author, error) {
	if mock.GetByIDsFunc == nil {
		panic("authorRepoMock.GetByIDsFunc: method is nil but authorRepo.GetByIDs was just called")
	}
	return mock.GetByIDsFunc(ctx, ids)
}

func (mock *authorRepoMock) ListPage(ctx context.Context, limit, offset int) ([]domain.Author, int, error) {
	if mock.ListPageFunc == nil {
		panic("authorRepoMock.ListPageFunc: method is nil but authorRepo.ListPage was just called")
	}
	return mock.ListPageFunc(ctx, limit, offset)
}

func (mock *authorRepoMock) Parliamentarians(ctx context.Context, ids []int64) ([]domain.Parliamentarian, error) {
	if mock.ParliamentariansFunc == nil {
		panic("authorRepoMock.ParliamentariansFunc: method is nil but authorRepo.Parliamentarians was just called")
	}
	mock.lock.Lock()
	mock.calls.Parliamentarians = append(mock.calls.Parliamentarians, ids)
	mock.lock.Unlock()
	return mock.ParliamentariansFunc(ctx, ids)
}

func (mock *authorRepoMock) ParliamentariansCalls() [][]int64 {
	mock.lock.RLock()
	defer mock.lock.RUnlock()
	return mock.calls.Parliamentarians
}

func (mock *authorRepoMock) Committees(ctx context.Context, ids []int64) ([]domain.Committee, error) {
	if mock.CommitteesFunc == nil {
		panic("authorRepoMock.CommitteesFunc: method is nil but authorRepo.Committees was just called")
	}
	return mock.CommitteesFunc(ctx, ids)
}

func (mock *authorRepoMock) Collectives(ctx context.Context, kind domain.ContentType, ids []int64) ([]domain.Collective, error) {
	if mock.CollectivesFunc == nil {
		panic("authorRepoMock.CollectivesFunc: method is nil but authorRepo.Collectives was just called")
	}
	mock.lock.Lock()
	mock.calls.Collectives = append(mock.calls.Collectives, kind)
	mock.lock.Unlock()
	return mock.CollectivesFunc(ctx, kind, ids)
}
