package recordstore

import (
	"bitecare-service/internal/app/contracts"
	"bitecare-service/internal/pkg/constvars"
	"bitecare-service/internal/pkg/exceptions"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// conditionalFilter matches the record at path only while data.field still
// holds expected.
func conditionalFilter(path, field string, expected interface{}) bson.M {
	return bson.M{
		"_id":           path,
		"data." + field: expected,
	}
}

// subtreeFilter matches the record at path and every record beneath it, but
// not siblings sharing its prefix.
func subtreeFilter(path string) bson.M {
	return bson.M{
		"$or": []bson.M{
			{"_id": path},
			{"_id": primitive.Regex{Pattern: "^" + regexp.QuoteMeta(path+constvars.StorePathSeparator)}},
		},
	}
}

// unmatchedUpdateError tells a missing record apart from one whose guarded
// field has moved on.
func unmatchedUpdateError(path string, existing *contracts.Record) error {
	if existing == nil {
		return exceptions.ErrRecordNotFound(path)
	}
	return exceptions.ErrConcurrentUpdate(path)
}

func dataFields(fields map[string]interface{}, now time.Time) bson.M {
	set := bson.M{"updatedAt": now}
	for key, value := range fields {
		set["data."+key] = value
	}
	return set
}
