package bucketlist

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/uptrace/bun"
)

type Repository interface {
	Create(ctx context.Context, list *BucketList) (*BucketList, error)
	ListByOwner(ctx context.Context, ownerID int, f Filter) ([]BucketList, int, error)
	GetOwned(ctx context.Context, id, ownerID int) (*BucketList, error)
	Update(ctx context.Context, list *BucketList) error
	DeleteWithItems(ctx context.Context, id, ownerID int) error
}

type repository struct {
	db *bun.DB
}

func NewRepository(db *bun.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, list *BucketList) (*BucketList, error) {
	_, err := r.db.NewInsert().Model(list).Returning("*").Exec(ctx)
	if err != nil {
		return nil, err
	}
	return list, nil
}

// ListByOwner returns one page of the owner's bucketlists plus the total
// match count before pagination, so callers can tell "no lists at all" from
// "page past the end". Matching is case-insensitive substring on name.
func (r *repository) ListByOwner(ctx context.Context, ownerID int, f Filter) ([]BucketList, int, error) {
	var lists []BucketList

	q := r.db.NewSelect().
		Model(&lists).
		Where("created_by = ?", ownerID)

	if f.Query != "" {
		q = q.Where("name ILIKE ?", "%"+f.Query+"%")
	}

	total, err := q.
		Order("id ASC").
		Limit(f.Limit).
		Offset(f.Offset()).
		ScanAndCount(ctx)
	if err != nil {
		return nil, 0, err
	}
	return lists, total, nil
}

func (r *repository) GetOwned(ctx context.Context, id, ownerID int) (*BucketList, error) {
	list := new(BucketList)
	err := r.db.NewSelect().
		Model(list).
		Where("id = ? AND created_by = ?", id, ownerID).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrBucketListNotFound
		}
		return nil, err
	}
	return list, nil
}

func (r *repository) Update(ctx context.Context, list *BucketList) error {
	list.UpdatedAt = time.Now()
	result, err := r.db.NewUpdate().
		Model(list).
		Column("name", "updated_at").
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
		return ErrBucketListNotFound
	}
	return nil
}

// DeleteWithItems removes an owned bucketlist and all of its items in one
// transaction, so a crash mid-delete can never leave orphaned items.
func (r *repository) DeleteWithItems(ctx context.Context, id, ownerID int) error {
	return r.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		list := new(BucketList)
		err := tx.NewSelect().
			Model(list).
			Where("id = ? AND created_by = ?", id, ownerID).
			Scan(ctx)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return ErrBucketListNotFound
			}
			return err
		}

		if _, err := tx.ExecContext(ctx, "DELETE FROM items WHERE bucket_list_id = ?", id); err != nil {
			return err
		}

		_, err = tx.NewDelete().
			Model((*BucketList)(nil)).
			Where("id = ?", id).
			Exec(ctx)
		return err
	})
}
