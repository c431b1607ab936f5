package utils

import (
	"bitecare-service/internal/pkg/constvars"
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"
	"time"
)

const (
	digitCharset        = "0123456789"
	alphanumericCharset = "abcdefghijklmnopqrstuvwxyz0123456789"
)

// GenerateAppointmentCode returns APT-{YYYYMMDD}-{4 digits}.
func GenerateAppointmentCode(now time.Time) (string, error) {
	return generateDatedCode(constvars.AppointmentCodePrefix, now)
}

// GeneratePatientCode returns P-{YYYYMMDD}-{4 digits}.
func GeneratePatientCode(now time.Time) (string, error) {
	return generateDatedCode(constvars.PatientCodePrefix, now)
}

// GenerateWalkInPatientID returns walkin_{epochMillis}_{9 chars}.
func GenerateWalkInPatientID(now time.Time) (string, error) {
	suffix, err := randomString(alphanumericCharset, constvars.WalkInRandomLength)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s%d_%s", constvars.WalkInPatientIDPrefix, now.UnixMilli(), suffix), nil
}

// IsProvisionalPatientID reports whether patientID was issued to a walk-in.
func IsProvisionalPatientID(patientID string) bool {
	return strings.HasPrefix(patientID, constvars.WalkInPatientIDPrefix)
}

func generateDatedCode(prefix string, now time.Time) (string, error) {
	digits, err := randomString(digitCharset, constvars.CodeRandomDigits)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s-%s-%s", prefix, now.Format(constvars.CompactDateLayout), digits), nil
}

func randomString(charset string, length int) (string, error) {
	max := big.NewInt(int64(len(charset)))

	out := make([]byte, length)
	for i := range out {
		num, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		out[i] = charset[num.Int64()]
	}

	return string(out), nil
}
