package event

import "time"

// Event types published to the activity stream
const (
	TypeUserSignedUp      = "user.signed_up"
	TypeBucketListCreated = "bucketlist.created"
	TypeBucketListDeleted = "bucketlist.deleted"
	TypeItemDone          = "item.done"
)

// Event is the JSON payload published for account and bucketlist activity
type Event struct {
	Type         string    `json:"type"`
	UserID       int       `json:"user_id"`
	BucketListID int       `json:"bucket_list_id,omitempty"`
	ItemID       int       `json:"item_id,omitempty"`
	Name         string    `json:"name,omitempty"`
	OccurredAt   time.Time `json:"occurred_at"`
}
