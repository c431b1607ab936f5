package appointments

import (
	"bitecare-service/internal/app/contracts"
	"bitecare-service/internal/app/models"
	"bitecare-service/internal/pkg/exceptions"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

type MockRecordStore struct {
	mock.Mock
}

func (m *MockRecordStore) Get(ctx context.Context, path string) (*contracts.Record, error) {
	args := m.Called(ctx, path)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*contracts.Record), args.Error(1)
}

func (m *MockRecordStore) Set(ctx context.Context, path string, value interface{}) error {
	return m.Called(ctx, path, value).Error(0)
}

func (m *MockRecordStore) Update(ctx context.Context, path string, fields map[string]interface{}) error {
	return m.Called(ctx, path, fields).Error(0)
}

func (m *MockRecordStore) UpdateIf(ctx context.Context, path, field string, expected interface{}, fields map[string]interface{}) error {
	return m.Called(ctx, path, field, expected, fields).Error(0)
}

func (m *MockRecordStore) Remove(ctx context.Context, path string) error {
	return m.Called(ctx, path).Error(0)
}

func (m *MockRecordStore) List(ctx context.Context, parent string) ([]contracts.Record, error) {
	args := m.Called(ctx, parent)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]contracts.Record), args.Error(1)
}

func (m *MockRecordStore) Subscribe(ctx context.Context, path string) (<-chan contracts.Snapshot, func(), error) {
	args := m.Called(ctx, path)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).(<-chan contracts.Snapshot), args.Get(1).(func()), args.Error(2)
}

func appointmentRecord(t *testing.T, appointment models.Appointment) contracts.Record {
	t.Helper()
	raw, err := bson.Marshal(appointment)
	require.NoError(t, err)
	return contracts.Record{
		Path: appointmentPath(appointment.PatientID, appointment.ID),
		Data: raw,
	}
}

func TestAppointmentRepository(t *testing.T) {
	ctx := context.Background()

	t.Run("create keys the appointment under its patient", func(t *testing.T) {
		store := new(MockRecordStore)
		var path string
		store.On("Set", ctx, mock.AnythingOfType("string"), mock.AnythingOfType("*models.Appointment")).
			Run(func(args mock.Arguments) { path = args.String(1) }).
			Return(nil)

		appointment := &models.Appointment{PatientID: "patient-1", Type: models.AppointmentTypeIncident}
		appointmentID, err := NewAppointmentRepository(store, zap.NewNop()).Create(ctx, appointment)

		require.NoError(t, err)
		assert.True(t, primitive.IsValidObjectID(appointmentID))
		assert.Equal(t, appointmentID, appointment.ID)
		assert.Equal(t, "appointments/patient-1/"+appointmentID, path)
	})

	t.Run("failed create leaves the id empty", func(t *testing.T) {
		store := new(MockRecordStore)
		store.On("Set", ctx, mock.Anything, mock.Anything).Return(exceptions.ErrStoreWrite(errors.New("down"), "appointments/patient-1"))

		appointment := &models.Appointment{PatientID: "patient-1"}
		_, err := NewAppointmentRepository(store, zap.NewNop()).Create(ctx, appointment)

		assert.ErrorIs(t, err, exceptions.ErrKindStoreWrite)
		assert.Empty(t, appointment.ID)
	})

	t.Run("find by id decodes the record", func(t *testing.T) {
		store := new(MockRecordStore)
		record := appointmentRecord(t, models.Appointment{ID: "apt-1", PatientID: "patient-1", Status: models.AppointmentStatusConfirmed})
		store.On("Get", ctx, "appointments/patient-1/apt-1").Return(&record, nil)

		appointment, err := NewAppointmentRepository(store, zap.NewNop()).FindByID(ctx, "patient-1", "apt-1")

		require.NoError(t, err)
		assert.Equal(t, models.AppointmentStatusConfirmed, appointment.Status)
	})

	t.Run("find by id on a missing record", func(t *testing.T) {
		store := new(MockRecordStore)
		store.On("Get", ctx, "appointments/patient-1/apt-9").Return(nil, nil)

		_, err := NewAppointmentRepository(store, zap.NewNop()).FindByID(ctx, "patient-1", "apt-9")

		assert.ErrorIs(t, err, exceptions.ErrKindNotFound)
	})

	t.Run("find all by patient lists children", func(t *testing.T) {
		store := new(MockRecordStore)
		store.On("List", ctx, "appointments/patient-1").Return([]contracts.Record{
			appointmentRecord(t, models.Appointment{ID: "apt-1", PatientID: "patient-1"}),
			appointmentRecord(t, models.Appointment{ID: "apt-2", PatientID: "patient-1"}),
		}, nil)

		appointments, err := NewAppointmentRepository(store, zap.NewNop()).FindAllByPatient(ctx, "patient-1")

		require.NoError(t, err)
		require.Len(t, appointments, 2)
		assert.Equal(t, "apt-2", appointments[1].ID)
	})

	t.Run("conditional update guards on status", func(t *testing.T) {
		store := new(MockRecordStore)
		fields := map[string]interface{}{"status": "Confirmed"}
		store.On("UpdateIf", ctx, "appointments/patient-1/apt-1", "status", "Pending", fields).Return(nil)

		err := NewAppointmentRepository(store, zap.NewNop()).UpdateIfStatus(ctx, "patient-1", "apt-1", models.AppointmentStatusPending, fields)

		require.NoError(t, err)
		store.AssertExpectations(t)
	})

	t.Run("conditional update on a missing record", func(t *testing.T) {
		store := new(MockRecordStore)
		store.On("UpdateIf", ctx, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
			Return(exceptions.ErrRecordNotFound("appointments/patient-1/apt-9"))

		err := NewAppointmentRepository(store, zap.NewNop()).UpdateIfStatus(ctx, "patient-1", "apt-9", models.AppointmentStatusPending, nil)

		require.Error(t, err)
		customErr, ok := exceptions.As(err)
		require.True(t, ok)
		assert.Equal(t, "appointment not found", customErr.ClientMessage)
	})

	t.Run("subscribe maps snapshots to appointment lists", func(t *testing.T) {
		store := new(MockRecordStore)
		snapshots := make(chan contracts.Snapshot, 2)
		snapshots <- contracts.Snapshot{Path: "appointments/patient-1"}
		snapshots <- contracts.Snapshot{
			Path: "appointments/patient-1",
			Children: []contracts.Record{
				appointmentRecord(t, models.Appointment{ID: "apt-1", PatientID: "patient-1"}),
			},
		}
		storeStopped := 0
		store.On("Subscribe", ctx, "appointments/patient-1").
			Return((<-chan contracts.Snapshot)(snapshots), func() {
				storeStopped++
				close(snapshots)
			}, nil)

		updates, cancel, err := NewAppointmentRepository(store, zap.NewNop()).Subscribe(ctx, "patient-1")
		require.NoError(t, err)

		assert.Empty(t, <-updates)
		second := <-updates
		require.Len(t, second, 1)
		assert.Equal(t, "apt-1", second[0].ID)

		cancel()
		cancel()
		for range updates {
		}
		assert.Equal(t, 1, storeStopped)
	})
}
