package recordstore

import (
	"bitecare-service/internal/app/contracts"
	"bitecare-service/internal/pkg/exceptions"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestFilters(t *testing.T) {
	t.Run("conditional filter guards the data field", func(t *testing.T) {
		filter := conditionalFilter("appointments/p1/a1", "status", "Pending")

		assert.Equal(t, bson.M{
			"_id":         "appointments/p1/a1",
			"data.status": "Pending",
		}, filter)
	})

	t.Run("subtree filter covers the path and its descendants only", func(t *testing.T) {
		filter := subtreeFilter("users/walkin_1.x")

		clauses, ok := filter["$or"].([]bson.M)
		require.True(t, ok)
		require.Len(t, clauses, 2)
		assert.Equal(t, "users/walkin_1.x", clauses[0]["_id"])

		pattern, ok := clauses[1]["_id"].(primitive.Regex)
		require.True(t, ok)
		re := regexp.MustCompile(pattern.Pattern)
		assert.True(t, re.MatchString("users/walkin_1.x/medicalHistory"))
		assert.False(t, re.MatchString("users/walkin_1.x"))
		assert.False(t, re.MatchString("users/walkin_1.xy/medicalHistory"))
		assert.False(t, re.MatchString("users/walkin_1Ax/medicalHistory"))
	})

	t.Run("unmatched update on a missing record", func(t *testing.T) {
		err := unmatchedUpdateError("appointments/p1/a9", nil)

		assert.ErrorIs(t, err, exceptions.ErrKindNotFound)
	})

	t.Run("unmatched update on a changed record", func(t *testing.T) {
		err := unmatchedUpdateError("appointments/p1/a1", &contracts.Record{Path: "appointments/p1/a1"})

		assert.ErrorIs(t, err, exceptions.ErrKindConcurrentUpdate)
	})

	t.Run("data fields are nested under data", func(t *testing.T) {
		now := time.Date(2024, time.June, 10, 9, 0, 0, 0, time.UTC)

		set := dataFields(map[string]interface{}{"status": "Confirmed"}, now)

		assert.Equal(t, bson.M{"updatedAt": now, "data.status": "Confirmed"}, set)
	})
}
