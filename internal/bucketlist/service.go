package bucketlist

import (
	"context"
	"errors"
)

var (
	ErrBucketListNotFound = errors.New("bucketlist not found")
	ErrNoResult           = errors.New("No result found")
)

type Service interface {
	Create(ctx context.Context, ownerID int, name string) (*BucketList, error)
	List(ctx context.Context, ownerID int, f Filter) ([]BucketList, int, error)
	Get(ctx context.Context, id, ownerID int) (*BucketList, error)
	Rename(ctx context.Context, id, ownerID int, name string) (*BucketList, error)
	Delete(ctx context.Context, id, ownerID int) error
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) Create(ctx context.Context, ownerID int, name string) (*BucketList, error) {
	list := &BucketList{
		Name:      name,
		CreatedBy: ownerID,
	}
	return s.repo.Create(ctx, list)
}

// List returns the requested page and the total match count. A search with
// zero matches is ErrNoResult; "owns no lists" is left to the caller to
// distinguish via total == 0.
func (s *service) List(ctx context.Context, ownerID int, f Filter) ([]BucketList, int, error) {
	lists, total, err := s.repo.ListByOwner(ctx, ownerID, f)
	if err != nil {
		return nil, 0, err
	}
	if total == 0 && f.Query != "" {
		return nil, 0, ErrNoResult
	}
	return lists, total, nil
}

func (s *service) Get(ctx context.Context, id, ownerID int) (*BucketList, error) {
	return s.repo.GetOwned(ctx, id, ownerID)
}

// Rename updates the list's name. Nonexistent and not-owned are deliberately
// the same error so ids belonging to other users are not discoverable.
func (s *service) Rename(ctx context.Context, id, ownerID int, name string) (*BucketList, error) {
	list, err := s.repo.GetOwned(ctx, id, ownerID)
	if err != nil {
		return nil, err
	}

	list.Name = name
	if err := s.repo.Update(ctx, list); err != nil {
		return nil, err
	}
	return list, nil
}

func (s *service) Delete(ctx context.Context, id, ownerID int) error {
	return s.repo.DeleteWithItems(ctx, id, ownerID)
}
