package models

// ScheduledDose is one entry of the PEP schedule anchored on an incident.
type ScheduledDose struct {
	Number    int       `json:"number"`
	Label     DoseLabel `json:"label"`
	DayOffset int       `json:"dayOffset"`
	DueDate   string    `json:"dueDate"`
}
