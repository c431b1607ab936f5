package dosing

import (
	"bitecare-service/internal/app/contracts"
	"bitecare-service/internal/app/models"
	"bitecare-service/internal/pkg/exceptions"
	"bitecare-service/internal/pkg/utils"
	"time"
)

const (
	DoseOne     models.DoseLabel = "Dose 1 (Day 0)"
	DoseOneLate models.DoseLabel = "Dose 1 (Day 0) - Late"
	DoseTwo     models.DoseLabel = "Dose 2 (Day 3)"
	DoseThree   models.DoseLabel = "Dose 3 (Day 7)"
	DoseFour    models.DoseLabel = "Dose 4 (Day 14)"
	DoseFive    models.DoseLabel = "Dose 5 (Day 28)"
)

// doseWindow covers the half-open day range [offset, next dose's offset).
type doseWindow struct {
	number int
	offset int
	label  models.DoseLabel
}

// Sorted by offset. The last window is open-ended.
var regimen = []doseWindow{
	{number: 1, offset: 0, label: DoseOne},
	{number: 2, offset: 3, label: DoseTwo},
	{number: 3, offset: 7, label: DoseThree},
	{number: 4, offset: 14, label: DoseFour},
	{number: 5, offset: 28, label: DoseFive},
}

type doseScheduler struct{}

func NewDoseScheduler() contracts.DoseScheduler {
	return &doseScheduler{}
}

// NextDose takes two YYYY-MM-DD dates.
func (s *doseScheduler) NextDose(incidentDate, evaluationDate string) (models.DoseLabel, error) {
	incident, err := utils.ParseDate(incidentDate)
	if err != nil {
		return "", exceptions.ErrCannotParseTime(err)
	}
	evaluation, err := utils.ParseDate(evaluationDate)
	if err != nil {
		return "", exceptions.ErrCannotParseTime(err)
	}
	return NextDose(incident, evaluation)
}

func (s *doseScheduler) Schedule(incidentDate string) ([]models.ScheduledDose, error) {
	incident, err := utils.ParseDate(incidentDate)
	if err != nil {
		return nil, exceptions.ErrCannotParseTime(err)
	}
	return Schedule(incident), nil
}

// NextDose maps the calendar days elapsed since the incident onto the
// regimen. Only the calendar dates of both arguments are compared.
func NextDose(incident, evaluation time.Time) (models.DoseLabel, error) {
	daysDiff := utils.CalendarDaysBetween(incident, evaluation)
	if daysDiff < 0 {
		return "", exceptions.ErrIncidentInFuture(utils.FormatDate(incident), utils.FormatDate(evaluation))
	}

	current := regimen[0]
	for _, window := range regimen {
		if daysDiff < window.offset {
			break
		}
		current = window
	}

	if current.number == 1 && daysDiff > 0 {
		return DoseOneLate, nil
	}
	return current.label, nil
}

// Schedule lists every dose of the regimen with its due date.
func Schedule(incident time.Time) []models.ScheduledDose {
	start := utils.StartOfDay(incident)
	doses := make([]models.ScheduledDose, 0, len(regimen))
	for _, window := range regimen {
		doses = append(doses, models.ScheduledDose{
			Number:    window.number,
			Label:     window.label,
			DayOffset: window.offset,
			DueDate:   utils.FormatDate(start.AddDate(0, 0, window.offset)),
		})
	}
	return doses
}
