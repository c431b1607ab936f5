package models

import "time"

type PersonName struct {
	First  string `json:"first" bson:"first" validate:"required,max=100"`
	Middle string `json:"middle,omitempty" bson:"middle,omitempty" validate:"max=100"`
	Last   string `json:"last" bson:"last" validate:"required,max=100"`
	Suffix string `json:"suffix,omitempty" bson:"suffix,omitempty" validate:"max=20"`
}

type Address struct {
	Street     string `json:"street" bson:"street" validate:"required"`
	Barangay   string `json:"barangay,omitempty" bson:"barangay,omitempty"`
	City       string `json:"city" bson:"city" validate:"required"`
	Province   string `json:"province" bson:"province" validate:"required"`
	PostalCode string `json:"postalCode,omitempty" bson:"postalCode,omitempty"`
}

type ContactInfo struct {
	Mobile string `json:"mobile" bson:"mobile" validate:"required,phone_number"`
	Email  string `json:"email,omitempty" bson:"email,omitempty" validate:"omitempty,email"`
}

type EmergencyContact struct {
	Name         string `json:"name" bson:"name" validate:"required"`
	Relationship string `json:"relationship" bson:"relationship" validate:"required"`
	Mobile       string `json:"mobile" bson:"mobile" validate:"required,phone_number"`
}

type Consent struct {
	DataPrivacy bool `json:"dataPrivacy" bson:"dataPrivacy" validate:"eq=true"`
	Treatment   bool `json:"treatment" bson:"treatment" validate:"eq=true"`
}

type MedicalHistory struct {
	Allergies            string    `json:"allergies,omitempty" bson:"allergies,omitempty"`
	HasPriorVaccination  bool      `json:"hasPriorVaccination" bson:"hasPriorVaccination"`
	PriorVaccinationDate string    `json:"priorVaccinationDate,omitempty" bson:"priorVaccinationDate,omitempty"`
	UpdatedAt            time.Time `json:"updatedAt" bson:"updatedAt"`
}

type Patient struct {
	ID               string           `json:"id" bson:"id"`
	PatientCode      string           `json:"patientCode" bson:"patientCode"`
	Name             PersonName       `json:"name" bson:"name"`
	DateOfBirth      string           `json:"dateOfBirth" bson:"dateOfBirth"`
	Sex              string           `json:"sex" bson:"sex"`
	Address          Address          `json:"address" bson:"address"`
	Contact          ContactInfo      `json:"contact" bson:"contact"`
	EmergencyContact EmergencyContact `json:"emergencyContact" bson:"emergencyContact"`
	Consent          Consent          `json:"consent" bson:"consent"`
	AccountType      string           `json:"accountType" bson:"accountType"`
	HasAuthAccount   bool             `json:"hasAuthAccount" bson:"hasAuthAccount"`
	CreatedBy        string           `json:"createdBy,omitempty" bson:"createdBy,omitempty"`
	CreatedAt        time.Time        `json:"createdAt" bson:"createdAt"`

	// Stored under its own path, loaded alongside the patient.
	MedicalHistory *MedicalHistory `json:"medicalHistory,omitempty" bson:"-"`
}
