package bucketlist

import (
	"time"

	"github.com/uptrace/bun"
)

// BucketList is owned by the user referenced in created_by. The owner never
// changes after creation.
type BucketList struct {
	bun.BaseModel `bun:"table:bucket_lists,alias:bl"`

	ID        int       `bun:"id,pk,autoincrement" json:"id"`
	Name      string    `bun:"name,notnull" json:"name"`
	CreatedBy int       `bun:"created_by,notnull" json:"created_by"`
	CreatedAt time.Time `bun:"created_at,notnull,default:current_timestamp" json:"created_at"`
	UpdatedAt time.Time `bun:"updated_at,notnull,default:current_timestamp" json:"updated_at"`
}

// UpsertRequest is the request body for creating or renaming a bucketlist
type UpsertRequest struct {
	Name string `json:"name" validate:"required,notblank"`
}
