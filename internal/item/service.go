package item

import (
	"context"

	"github.com/andela-oeyiowuawi/Bucketlist/internal/bucketlist"
)

// Service scopes every item operation to a parent bucketlist that must be
// owned by the acting user. Ownership is transitive: the parent's owner is
// the only user who can touch its items.
type Service interface {
	Create(ctx context.Context, ownerID, bucketListID int, name string, done bool) (*Item, error)
	List(ctx context.Context, ownerID, bucketListID int) ([]Item, error)
	Get(ctx context.Context, ownerID, bucketListID, id int) (*Item, error)
	Update(ctx context.Context, ownerID, bucketListID, id int, name string, done bool) (*Item, error)
	Delete(ctx context.Context, ownerID, bucketListID, id int) error
}

type service struct {
	repo  Repository
	lists bucketlist.Repository
}

func NewService(repo Repository, lists bucketlist.Repository) Service {
	return &service{
		repo:  repo,
		lists: lists,
	}
}

func (s *service) Create(ctx context.Context, ownerID, bucketListID int, name string, done bool) (*Item, error) {
	if _, err := s.lists.GetOwned(ctx, bucketListID, ownerID); err != nil {
		return nil, err
	}

	it := &Item{
		Name:         name,
		Done:         done,
		BucketListID: bucketListID,
	}
	return s.repo.Create(ctx, it)
}

func (s *service) List(ctx context.Context, ownerID, bucketListID int) ([]Item, error) {
	if _, err := s.lists.GetOwned(ctx, bucketListID, ownerID); err != nil {
		return nil, err
	}
	return s.repo.ListByBucketList(ctx, bucketListID)
}

func (s *service) Get(ctx context.Context, ownerID, bucketListID, id int) (*Item, error) {
	if _, err := s.lists.GetOwned(ctx, bucketListID, ownerID); err != nil {
		return nil, err
	}
	return s.repo.GetInBucketList(ctx, id, bucketListID)
}

func (s *service) Update(ctx context.Context, ownerID, bucketListID, id int, name string, done bool) (*Item, error) {
	if _, err := s.lists.GetOwned(ctx, bucketListID, ownerID); err != nil {
		return nil, err
	}

	it, err := s.repo.GetInBucketList(ctx, id, bucketListID)
	if err != nil {
		return nil, err
	}

	it.Name = name
	it.Done = done
	if err := s.repo.Update(ctx, it); err != nil {
		return nil, err
	}
	return it, nil
}

func (s *service) Delete(ctx context.Context, ownerID, bucketListID, id int) error {
	if _, err := s.lists.GetOwned(ctx, bucketListID, ownerID); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id, bucketListID)
}
