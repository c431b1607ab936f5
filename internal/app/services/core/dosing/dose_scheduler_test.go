package dosing

import (
	"bitecare-service/internal/app/models"
	"bitecare-service/internal/pkg/exceptions"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNextDose(t *testing.T) {
	scheduler := NewDoseScheduler()

	cases := []struct {
		name       string
		evaluation string
		expected   models.DoseLabel
	}{
		{"same day", "2024-01-01", DoseOne},
		{"one day late", "2024-01-02", DoseOneLate},
		{"two days late", "2024-01-03", DoseOneLate},
		{"day 3", "2024-01-04", DoseTwo},
		{"day 6", "2024-01-07", DoseTwo},
		{"day 7", "2024-01-08", DoseThree},
		{"day 13", "2024-01-14", DoseThree},
		{"day 14", "2024-01-15", DoseFour},
		{"day 27", "2024-01-28", DoseFour},
		{"day 28", "2024-01-29", DoseFive},
		{"day 31", "2024-02-01", DoseFive},
		{"a year later", "2025-01-01", DoseFive},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			label, err := scheduler.NextDose("2024-01-01", tc.evaluation)
			require.NoError(t, err)
			assert.Equal(t, tc.expected, label)
		})
	}

	t.Run("incident after evaluation", func(t *testing.T) {
		_, err := scheduler.NextDose("2024-01-02", "2024-01-01")
		require.Error(t, err)
		assert.True(t, errors.Is(err, exceptions.ErrKindValidation))
	})

	t.Run("malformed date", func(t *testing.T) {
		_, err := scheduler.NextDose("01/01/2024", "2024-01-01")
		assert.Error(t, err)
	})
}

func TestNextDoseIsMonotonic(t *testing.T) {
	incident := time.Date(2024, time.March, 1, 0, 0, 0, 0, time.Local)
	rank := map[models.DoseLabel]int{
		DoseOne: 0, DoseOneLate: 1, DoseTwo: 2, DoseThree: 3, DoseFour: 4, DoseFive: 5,
	}

	previous := -1
	for day := 0; day <= 60; day++ {
		label, err := NextDose(incident, incident.AddDate(0, 0, day))
		require.NoError(t, err)
		assert.GreaterOrEqual(t, rank[label], previous, "day %d", day)
		previous = rank[label]
	}
}

func TestNextDoseIgnoresTimeOfDayAndZone(t *testing.T) {
	manila := time.FixedZone("UTC+8", 8*60*60)
	newYork := time.FixedZone("UTC-5", -5*60*60)

	t.Run("late evening incident, early morning evaluation", func(t *testing.T) {
		incident := time.Date(2024, time.January, 1, 23, 59, 0, 0, manila)
		evaluation := time.Date(2024, time.January, 4, 0, 1, 0, 0, manila)
		label, err := NextDose(incident, evaluation)
		require.NoError(t, err)
		assert.Equal(t, DoseTwo, label)
	})

	t.Run("dates read in different zones", func(t *testing.T) {
		incident := time.Date(2024, time.January, 1, 8, 0, 0, 0, manila)
		evaluation := time.Date(2024, time.January, 1, 20, 0, 0, 0, newYork)
		label, err := NextDose(incident, evaluation)
		require.NoError(t, err)
		assert.Equal(t, DoseOne, label)
	})

	t.Run("across a DST change", func(t *testing.T) {
		loc, err := time.LoadLocation("America/New_York")
		if err != nil {
			t.Skip("tzdata unavailable")
		}
		incident := time.Date(2024, time.March, 3, 0, 0, 0, 0, loc)
		evaluation := time.Date(2024, time.March, 10, 0, 0, 0, 0, loc)
		label, err := NextDose(incident, evaluation)
		require.NoError(t, err)
		assert.Equal(t, DoseThree, label)
	})
}

func TestSchedule(t *testing.T) {
	doses, err := NewDoseScheduler().Schedule("2024-01-30")
	require.NoError(t, err)
	require.Len(t, doses, 5)

	expected := []string{"2024-01-30", "2024-02-02", "2024-02-06", "2024-02-13", "2024-02-27"}
	for i, dose := range doses {
		assert.Equal(t, i+1, dose.Number)
		assert.Equal(t, expected[i], dose.DueDate)
	}
	assert.Equal(t, DoseFive, doses[4].Label)
}
