package provisioning

import (
	"bitecare-service/internal/app/models"
	"bitecare-service/internal/pkg/constvars"
	"bitecare-service/internal/pkg/exceptions"
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type MockPatientRepository struct {
	mock.Mock
}

func (m *MockPatientRepository) Create(ctx context.Context, patient *models.Patient) error {
	args := m.Called(ctx, patient)
	return args.Error(0)
}

func (m *MockPatientRepository) FindByID(ctx context.Context, patientID string) (*models.Patient, error) {
	args := m.Called(ctx, patientID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Patient), args.Error(1)
}

func (m *MockPatientRepository) FindAll(ctx context.Context) ([]models.Patient, error) {
	args := m.Called(ctx)
	return args.Get(0).([]models.Patient), args.Error(1)
}

func (m *MockPatientRepository) Delete(ctx context.Context, patientID string) error {
	args := m.Called(ctx, patientID)
	return args.Error(0)
}

func (m *MockPatientRepository) MergeMedicalHistory(ctx context.Context, patientID string, history *models.MedicalHistory) error {
	args := m.Called(ctx, patientID, history)
	return args.Error(0)
}

var walkInIDPattern = regexp.MustCompile(`^walkin_\d+_[a-z0-9]{9}$`)

func walkInForm() *models.RegistrationForm {
	return &models.RegistrationForm{
		AppointmentType: models.AppointmentTypeIncident,
		Personal: &models.PersonalDetails{
			Name:        models.PersonName{First: "Ana", Last: "Reyes"},
			DateOfBirth: "2001-02-03",
			Sex:         "Female",
			Contact:     models.ContactInfo{Mobile: "+639171234567"},
			Consent:     models.Consent{DataPrivacy: true, Treatment: true},
		},
	}
}

func TestProvision(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, time.June, 10, 9, 30, 0, 0, time.Local)

	t.Run("writes a walk-in patient", func(t *testing.T) {
		repo := new(MockPatientRepository)
		var written *models.Patient
		repo.On("Create", ctx, mock.AnythingOfType("*models.Patient")).
			Run(func(args mock.Arguments) { written = args.Get(1).(*models.Patient) }).
			Return(nil)

		svc := NewProvisioningService(repo, zap.NewNop()).(*provisioningService)
		svc.Now = func() time.Time { return now }

		patientID, err := svc.Provision(ctx, walkInForm(), "staff-7")
		require.NoError(t, err)
		assert.Regexp(t, walkInIDPattern, patientID)

		require.NotNil(t, written)
		assert.Equal(t, patientID, written.ID)
		assert.Equal(t, constvars.AccountTypeWalkIn, written.AccountType)
		assert.False(t, written.HasAuthAccount)
		assert.Equal(t, "staff-7", written.CreatedBy)
		assert.Equal(t, "Ana", written.Name.First)
		assert.Regexp(t, `^P-20240610-\d{4}$`, written.PatientCode)
	})

	t.Run("fresh id per call", func(t *testing.T) {
		repo := new(MockPatientRepository)
		repo.On("Create", ctx, mock.Anything).Return(nil)
		svc := NewProvisioningService(repo, zap.NewNop())

		first, err := svc.Provision(ctx, walkInForm(), "staff-7")
		require.NoError(t, err)
		second, err := svc.Provision(ctx, walkInForm(), "staff-7")
		require.NoError(t, err)
		assert.NotEqual(t, first, second)
	})

	t.Run("store failure is a provisioning error", func(t *testing.T) {
		repo := new(MockPatientRepository)
		repo.On("Create", ctx, mock.Anything).Return(exceptions.ErrStoreWrite(errors.New("unavailable"), "users/x"))

		_, err := NewProvisioningService(repo, zap.NewNop()).Provision(ctx, walkInForm(), "staff-7")
		require.Error(t, err)
		assert.True(t, errors.Is(err, exceptions.ErrKindProvisioning))
	})

	t.Run("missing personal details", func(t *testing.T) {
		repo := new(MockPatientRepository)
		_, err := NewProvisioningService(repo, zap.NewNop()).Provision(ctx, &models.RegistrationForm{}, "staff-7")
		assert.True(t, errors.Is(err, exceptions.ErrKindProvisioning))
		repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})
}

func TestDiscard(t *testing.T) {
	ctx := context.Background()

	t.Run("removes provisional patient", func(t *testing.T) {
		repo := new(MockPatientRepository)
		repo.On("Delete", ctx, "walkin_1717000000000_abc123xyz").Return(nil)

		err := NewProvisioningService(repo, zap.NewNop()).Discard(ctx, "walkin_1717000000000_abc123xyz")
		assert.NoError(t, err)
		repo.AssertExpectations(t)
	})

	t.Run("refuses registered patient", func(t *testing.T) {
		repo := new(MockPatientRepository)
		err := NewProvisioningService(repo, zap.NewNop()).Discard(ctx, "uid-42")
		assert.Error(t, err)
		repo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})
}
