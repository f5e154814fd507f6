package item

import (
	"time"

	"github.com/uptrace/bun"
)

// Item belongs to exactly one bucketlist; the parent reference never changes.
type Item struct {
	bun.BaseModel `bun:"table:items,alias:i"`

	ID           int       `bun:"id,pk,autoincrement" json:"id"`
	Name         string    `bun:"name,notnull" json:"name"`
	Done         bool      `bun:"done,notnull,default:false" json:"done"`
	BucketListID int       `bun:"bucket_list_id,notnull" json:"bucket_list_id"`
	CreatedAt    time.Time `bun:"created_at,notnull,default:current_timestamp" json:"created_at"`
	UpdatedAt    time.Time `bun:"updated_at,notnull,default:current_timestamp" json:"updated_at"`
}

// UpsertRequest is the request body for creating or updating an item
type UpsertRequest struct {
	Name string `json:"name" validate:"required,notblank"`
	Done bool   `json:"done"`
}
