package contracts

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
)

// Record is one document of the keyed record store.
type Record struct {
	Path      string
	Data      bson.Raw
	UpdatedAt time.Time
}

func (r Record) Decode(v interface{}) error {
	return bson.Unmarshal(r.Data, v)
}

// Snapshot is the state of a subscribed path at one point in time: the
// record at the path itself, if any, and its direct children.
type Snapshot struct {
	Path     string
	Record   *Record
	Children []Record
}

type RecordStore interface {
	// Get returns nil when nothing is stored at path.
	Get(ctx context.Context, path string) (*Record, error)
	Set(ctx context.Context, path string, value interface{}) error
	Update(ctx context.Context, path string, fields map[string]interface{}) error
	// UpdateIf applies fields only while field still holds expected.
	UpdateIf(ctx context.Context, path, field string, expected interface{}, fields map[string]interface{}) error
	// Remove deletes the record at path and everything stored beneath it.
	Remove(ctx context.Context, path string) error
	List(ctx context.Context, parent string) ([]Record, error)
	Subscribe(ctx context.Context, path string) (<-chan Snapshot, func(), error)
}

// ChangeEvent announces that the record at Path was written or removed.
type ChangeEvent struct {
	Path      string    `json:"path"`
	Removed   bool      `json:"removed"`
	ChangedAt time.Time `json:"changedAt"`
}

type ChangeFeed interface {
	Publish(ctx context.Context, event ChangeEvent) error
	// Listen delivers events for path and every path beneath it until the
	// returned cancel func is called or ctx is done.
	Listen(ctx context.Context, path string) (<-chan ChangeEvent, func(), error)
}
