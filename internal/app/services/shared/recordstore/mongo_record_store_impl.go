package recordstore

import (
	"bitecare-service/internal/app/contracts"
	"bitecare-service/internal/pkg/constvars"
	"bitecare-service/internal/pkg/exceptions"
	"context"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

// recordDocument is how every record is laid out in the collection. The
// path is the primary key; parent indexes the children of a path.
type recordDocument struct {
	Path      string    `bson:"_id"`
	Parent    string    `bson:"parent"`
	Data      bson.Raw  `bson:"data"`
	UpdatedAt time.Time `bson:"updatedAt"`
}

func (d recordDocument) toRecord() contracts.Record {
	return contracts.Record{
		Path:      d.Path,
		Data:      d.Data,
		UpdatedAt: d.UpdatedAt,
	}
}

type mongoRecordStore struct {
	Collection *mongo.Collection
	Feed       contracts.ChangeFeed
	Log        *zap.Logger
}

func NewMongoRecordStore(db *mongo.Client, dbName string, feed contracts.ChangeFeed, logger *zap.Logger) contracts.RecordStore {
	return &mongoRecordStore{
		Collection: db.Database(dbName).Collection(constvars.MongoCollectionRecords),
		Feed:       feed,
		Log:        logger,
	}
}

// EnsureIndexes creates the parent index used by List.
func EnsureIndexes(ctx context.Context, db *mongo.Client, dbName string) error {
	collection := db.Database(dbName).Collection(constvars.MongoCollectionRecords)
	_, err := collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "parent", Value: 1}},
	})
	return err
}

func (s *mongoRecordStore) Get(ctx context.Context, path string) (*contracts.Record, error) {
	var doc recordDocument
	err := s.Collection.FindOne(ctx, bson.M{"_id": path}).Decode(&doc)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, exceptions.ErrStoreRead(err, path)
	}
	record := doc.toRecord()
	return &record, nil
}

func (s *mongoRecordStore) Set(ctx context.Context, path string, value interface{}) error {
	data, err := bson.Marshal(value)
	if err != nil {
		return exceptions.ErrStoreWrite(err, path)
	}

	doc := recordDocument{
		Path:      path,
		Parent:    ParentPath(path),
		Data:      data,
		UpdatedAt: time.Now(),
	}
	_, err = s.Collection.ReplaceOne(ctx, bson.M{"_id": path}, doc, options.Replace().SetUpsert(true))
	if err != nil {
		return exceptions.ErrStoreWrite(err, path)
	}

	s.announce(ctx, path, false)
	return nil
}

func (s *mongoRecordStore) Update(ctx context.Context, path string, fields map[string]interface{}) error {
	now := time.Now()
	update := bson.M{
		"$set":         dataFields(fields, now),
		"$setOnInsert": bson.M{"parent": ParentPath(path)},
	}
	_, err := s.Collection.UpdateOne(ctx, bson.M{"_id": path}, update, options.Update().SetUpsert(true))
	if err != nil {
		return exceptions.ErrStoreWrite(err, path)
	}

	s.announce(ctx, path, false)
	return nil
}

func (s *mongoRecordStore) UpdateIf(ctx context.Context, path, field string, expected interface{}, fields map[string]interface{}) error {
	update := bson.M{"$set": dataFields(fields, time.Now())}

	result, err := s.Collection.UpdateOne(ctx, conditionalFilter(path, field, expected), update)
	if err != nil {
		return exceptions.ErrStoreWrite(err, path)
	}
	if result.MatchedCount == 0 {
		existing, err := s.Get(ctx, path)
		if err != nil {
			return err
		}
		return unmatchedUpdateError(path, existing)
	}

	s.announce(ctx, path, false)
	return nil
}

func (s *mongoRecordStore) Remove(ctx context.Context, path string) error {
	_, err := s.Collection.DeleteMany(ctx, subtreeFilter(path))
	if err != nil {
		return exceptions.ErrStoreRemove(err, path)
	}

	s.announce(ctx, path, true)
	return nil
}

func (s *mongoRecordStore) List(ctx context.Context, parent string) ([]contracts.Record, error) {
	cursor, err := s.Collection.Find(ctx, bson.M{"parent": parent}, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	defer cursor.Close(ctx)

	var records []contracts.Record
	for cursor.Next(ctx) {
		var doc recordDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, exceptions.ErrMongoDBDecodeDocument(err)
		}
		records = append(records, doc.toRecord())
	}
	if err := cursor.Err(); err != nil {
		return nil, exceptions.ErrMongoDBIterateDocuments(err)
	}
	return records, nil
}

// Subscribe emits the current snapshot of path right away and a fresh one
// after every change at or beneath it. The channel closes once cancel is
// called or ctx is done.
func (s *mongoRecordStore) Subscribe(ctx context.Context, path string) (<-chan contracts.Snapshot, func(), error) {
	events, stopListening, err := s.Feed.Listen(ctx, path)
	if err != nil {
		return nil, nil, exceptions.ErrStoreSubscribe(err, path)
	}

	stop := make(chan struct{})
	var once sync.Once
	cancel := func() {
		once.Do(func() {
			close(stop)
			stopListening()
		})
	}

	out := make(chan contracts.Snapshot, 1)
	go func() {
		defer close(out)
		defer cancel()

		if !s.emit(ctx, path, out, stop) {
			return
		}
		for {
			select {
			case <-ctx.Done():
				return
			case <-stop:
				return
			case _, ok := <-events:
				if !ok {
					return
				}
				if !s.emit(ctx, path, out, stop) {
					return
				}
			}
		}
	}()

	return out, cancel, nil
}

func (s *mongoRecordStore) emit(ctx context.Context, path string, out chan<- contracts.Snapshot, stop <-chan struct{}) bool {
	snapshot, err := s.snapshot(ctx, path)
	if err != nil {
		s.Log.Error("mongoRecordStore.Subscribe error building snapshot",
			zap.String(constvars.LoggingStorePathKey, path),
			zap.Error(err),
		)
		// keep the subscription alive; the next change retries
		return ctx.Err() == nil
	}
	select {
	case out <- snapshot:
		return true
	case <-ctx.Done():
		return false
	case <-stop:
		return false
	}
}

func (s *mongoRecordStore) snapshot(ctx context.Context, path string) (contracts.Snapshot, error) {
	record, err := s.Get(ctx, path)
	if err != nil {
		return contracts.Snapshot{}, err
	}
	children, err := s.List(ctx, path)
	if err != nil {
		return contracts.Snapshot{}, err
	}
	return contracts.Snapshot{Path: path, Record: record, Children: children}, nil
}

// announce publishes a change event. Publish failures are logged; the write
// stands.
func (s *mongoRecordStore) announce(ctx context.Context, path string, removed bool) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	err := s.Feed.Publish(ctx, contracts.ChangeEvent{
		Path:      path,
		Removed:   removed,
		ChangedAt: time.Now(),
	})
	if err != nil {
		s.Log.Warn("mongoRecordStore error publishing change event",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingStorePathKey, path),
			zap.Error(err),
		)
	}
}
