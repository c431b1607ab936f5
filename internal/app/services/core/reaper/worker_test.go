package reaper

import (
	"bitecare-service/internal/app/config"
	"bitecare-service/internal/app/models"
	"bitecare-service/internal/pkg/constvars"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type MockLockerService struct {
	mock.Mock
}

func (m *MockLockerService) TryLock(ctx context.Context, key string, expiration time.Duration) (bool, string, error) {
	args := m.Called(ctx, key, expiration)
	return args.Bool(0), args.String(1), args.Error(2)
}

func (m *MockLockerService) Unlock(ctx context.Context, key, lockValue string) error {
	args := m.Called(ctx, key, lockValue)
	return args.Error(0)
}

func (m *MockLockerService) Refresh(ctx context.Context, key, lockValue string, expiration time.Duration) error {
	args := m.Called(ctx, key, lockValue, expiration)
	return args.Error(0)
}

type MockPatientRepository struct {
	mock.Mock
}

func (m *MockPatientRepository) Create(ctx context.Context, patient *models.Patient) error {
	return m.Called(ctx, patient).Error(0)
}

func (m *MockPatientRepository) FindByID(ctx context.Context, patientID string) (*models.Patient, error) {
	args := m.Called(ctx, patientID)
	return args.Get(0).(*models.Patient), args.Error(1)
}

func (m *MockPatientRepository) FindAll(ctx context.Context) ([]models.Patient, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Patient), args.Error(1)
}

func (m *MockPatientRepository) Delete(ctx context.Context, patientID string) error {
	return m.Called(ctx, patientID).Error(0)
}

func (m *MockPatientRepository) MergeMedicalHistory(ctx context.Context, patientID string, history *models.MedicalHistory) error {
	return m.Called(ctx, patientID, history).Error(0)
}

type MockAppointmentRepository struct {
	mock.Mock
}

func (m *MockAppointmentRepository) Create(ctx context.Context, appointment *models.Appointment) (string, error) {
	args := m.Called(ctx, appointment)
	return args.String(0), args.Error(1)
}

func (m *MockAppointmentRepository) FindByID(ctx context.Context, patientID, appointmentID string) (*models.Appointment, error) {
	args := m.Called(ctx, patientID, appointmentID)
	return args.Get(0).(*models.Appointment), args.Error(1)
}

func (m *MockAppointmentRepository) FindAllByPatient(ctx context.Context, patientID string) ([]models.Appointment, error) {
	args := m.Called(ctx, patientID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Appointment), args.Error(1)
}

func (m *MockAppointmentRepository) UpdateIfStatus(ctx context.Context, patientID, appointmentID string, expected models.AppointmentStatus, fields map[string]interface{}) error {
	return m.Called(ctx, patientID, appointmentID, expected, fields).Error(0)
}

func (m *MockAppointmentRepository) Subscribe(ctx context.Context, patientID string) (<-chan []models.Appointment, func(), error) {
	args := m.Called(ctx, patientID)
	return args.Get(0).(<-chan []models.Appointment), args.Get(1).(func()), args.Error(2)
}

type MockProvisioningService struct {
	mock.Mock
}

func (m *MockProvisioningService) Provision(ctx context.Context, form *models.RegistrationForm, actingStaffID string) (string, error) {
	args := m.Called(ctx, form, actingStaffID)
	return args.String(0), args.Error(1)
}

func (m *MockProvisioningService) Discard(ctx context.Context, patientID string) error {
	return m.Called(ctx, patientID).Error(0)
}

var sweepTime = time.Date(2024, time.June, 10, 12, 0, 0, 0, time.UTC)

func newTestWorker(locker *MockLockerService, patients *MockPatientRepository, appointments *MockAppointmentRepository, provisioning *MockProvisioningService) *Worker {
	cfg := &config.InternalConfig{
		Reaper: config.AppReaper{
			Enabled:                true,
			CronSpec:               "@hourly",
			GracePeriodInMinutes:   60,
			LeaderLockTTLInSeconds: 300,
		},
	}
	w := NewWorker(zap.NewNop(), cfg, locker, patients, appointments, provisioning)
	w.now = func() time.Time { return sweepTime }
	return w
}

func TestRunOnce(t *testing.T) {
	ctx := context.Background()

	t.Run("discards only stale provisional patients without appointments", func(t *testing.T) {
		locker := new(MockLockerService)
		patients := new(MockPatientRepository)
		appointments := new(MockAppointmentRepository)
		provisioning := new(MockProvisioningService)

		locker.On("TryLock", mock.Anything, constvars.ReaperLeaderLockKey, 300*time.Second).Return(true, "token", nil)
		locker.On("Unlock", mock.Anything, constvars.ReaperLeaderLockKey, "token").Return(nil)
		locker.On("Refresh", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil).Maybe()

		patients.On("FindAll", mock.Anything).Return([]models.Patient{
			{ID: "walkin_1717990000000_orphanaaa", CreatedAt: sweepTime.Add(-3 * time.Hour)},
			{ID: "walkin_1717990000000_bookedbbb", CreatedAt: sweepTime.Add(-3 * time.Hour)},
			{ID: "walkin_1718020000000_freshcccc", CreatedAt: sweepTime.Add(-10 * time.Minute)},
			{ID: "patient-1", CreatedAt: sweepTime.Add(-48 * time.Hour)},
		}, nil)
		appointments.On("FindAllByPatient", mock.Anything, "walkin_1717990000000_orphanaaa").Return([]models.Appointment{}, nil)
		appointments.On("FindAllByPatient", mock.Anything, "walkin_1717990000000_bookedbbb").Return([]models.Appointment{{ID: "apt-1"}}, nil)
		provisioning.On("Discard", mock.Anything, "walkin_1717990000000_orphanaaa").Return(nil)

		removed := newTestWorker(locker, patients, appointments, provisioning).runOnce(ctx)

		assert.Equal(t, 1, removed)
		provisioning.AssertNumberOfCalls(t, "Discard", 1)
		appointments.AssertNotCalled(t, "FindAllByPatient", mock.Anything, "walkin_1718020000000_freshcccc")
		appointments.AssertNotCalled(t, "FindAllByPatient", mock.Anything, "patient-1")
		locker.AssertCalled(t, "Unlock", mock.Anything, constvars.ReaperLeaderLockKey, "token")
	})

	t.Run("skips the sweep when another instance leads", func(t *testing.T) {
		locker := new(MockLockerService)
		patients := new(MockPatientRepository)
		locker.On("TryLock", mock.Anything, constvars.ReaperLeaderLockKey, 300*time.Second).Return(false, "", nil)

		removed := newTestWorker(locker, patients, new(MockAppointmentRepository), new(MockProvisioningService)).runOnce(ctx)

		assert.Zero(t, removed)
		patients.AssertNotCalled(t, "FindAll", mock.Anything)
	})

	t.Run("non-positive leader lock ttl falls back", func(t *testing.T) {
		locker := new(MockLockerService)
		patients := new(MockPatientRepository)
		locker.On("TryLock", mock.Anything, constvars.ReaperLeaderLockKey, 5*time.Minute).Return(true, "token", nil)
		locker.On("Unlock", mock.Anything, constvars.ReaperLeaderLockKey, "token").Return(nil)
		locker.On("Refresh", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil).Maybe()
		patients.On("FindAll", mock.Anything).Return([]models.Patient{}, nil)

		w := newTestWorker(locker, patients, new(MockAppointmentRepository), new(MockProvisioningService))
		w.cfg.Reaper.LeaderLockTTLInSeconds = 0

		require.NotPanics(t, func() { w.runOnce(ctx) })
		locker.AssertExpectations(t)
	})

	t.Run("failed discard is left for the next sweep", func(t *testing.T) {
		locker := new(MockLockerService)
		patients := new(MockPatientRepository)
		appointments := new(MockAppointmentRepository)
		provisioning := new(MockProvisioningService)

		locker.On("TryLock", mock.Anything, constvars.ReaperLeaderLockKey, 300*time.Second).Return(true, "token", nil)
		locker.On("Unlock", mock.Anything, constvars.ReaperLeaderLockKey, "token").Return(nil)
		locker.On("Refresh", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil).Maybe()
		patients.On("FindAll", mock.Anything).Return([]models.Patient{
			{ID: "walkin_1717990000000_orphanaaa", CreatedAt: sweepTime.Add(-3 * time.Hour)},
		}, nil)
		appointments.On("FindAllByPatient", mock.Anything, "walkin_1717990000000_orphanaaa").Return([]models.Appointment{}, nil)
		provisioning.On("Discard", mock.Anything, "walkin_1717990000000_orphanaaa").Return(errors.New("store down"))

		removed := newTestWorker(locker, patients, appointments, provisioning).runOnce(ctx)
		assert.Zero(t, removed)
	})
}

func TestStartStop(t *testing.T) {
	w := newTestWorker(new(MockLockerService), new(MockPatientRepository), new(MockAppointmentRepository), new(MockProvisioningService))
	w.cfg.Reaper.CronSpec = "not a cron spec"

	w.Start(context.Background())
	assert.NotNil(t, w.cron)
	assert.Len(t, w.cron.Entries(), 1)

	w.Stop()
	w.Stop()
}
