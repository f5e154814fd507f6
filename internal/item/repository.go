package item

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/uptrace/bun"
)

var ErrItemNotFound = errors.New("item not found")

type Repository interface {
	Create(ctx context.Context, item *Item) (*Item, error)
	ListByBucketList(ctx context.Context, bucketListID int) ([]Item, error)
	GetInBucketList(ctx context.Context, id, bucketListID int) (*Item, error)
	Update(ctx context.Context, item *Item) error
	Delete(ctx context.Context, id, bucketListID int) error
}

type repository struct {
	db *bun.DB
}

func NewRepository(db *bun.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, item *Item) (*Item, error) {
	_, err := r.db.NewInsert().Model(item).Returning("*").Exec(ctx)
	if err != nil {
		return nil, err
	}
	return item, nil
}

func (r *repository) ListByBucketList(ctx context.Context, bucketListID int) ([]Item, error) {
	var items []Item
	err := r.db.NewSelect().
		Model(&items).
		Where("bucket_list_id = ?", bucketListID).
		Order("id ASC").
		Scan(ctx)
	return items, err
}

func (r *repository) GetInBucketList(ctx context.Context, id, bucketListID int) (*Item, error) {
	it := new(Item)
	err := r.db.NewSelect().
		Model(it).
		Where("id = ? AND bucket_list_id = ?", id, bucketListID).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrItemNotFound
		}
		return nil, err
	}
	return it, nil
}

func (r *repository) Update(ctx context.Context, item *Item) error {
	item.UpdatedAt = time.Now()
	result, err := r.db.NewUpdate().
		Model(item).
		Column("name", "done", "updated_at").
		WherePK().
		Exec(ctx)
	if err != nil {
		return err
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrItemNotFound
	}
	return nil
}

func (r *repository) Delete(ctx context.Context, id, bucketListID int) error {
	result, err := r.db.NewDelete().
		Model((*Item)(nil)).
		Where("id = ? AND bucket_list_id = ?", id, bucketListID).
		Exec(ctx)
	if err != nil {
		return err
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrItemNotFound
	}
	return nil
}
