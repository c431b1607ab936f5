package patients

import (
	"bitecare-service/internal/app/contracts"
	"bitecare-service/internal/app/models"
	"bitecare-service/internal/pkg/exceptions"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
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
	return args.Get(0).(<-chan contracts.Snapshot), args.Get(1).(func()), args.Error(2)
}

func record(t *testing.T, path string, value interface{}) *contracts.Record {
	t.Helper()
	raw, err := bson.Marshal(value)
	require.NoError(t, err)
	return &contracts.Record{Path: path, Data: raw}
}

func TestPatientRepository(t *testing.T) {
	ctx := context.Background()

	t.Run("create writes under users", func(t *testing.T) {
		store := new(MockRecordStore)
		patient := &models.Patient{ID: "walkin_1718000000000_abcdefghi", AccountType: "walkin"}
		store.On("Set", ctx, "users/walkin_1718000000000_abcdefghi", patient).Return(nil)

		require.NoError(t, NewPatientRepository(store, zap.NewNop()).Create(ctx, patient))
		store.AssertExpectations(t)
	})

	t.Run("find by id attaches medical history", func(t *testing.T) {
		store := new(MockRecordStore)
		store.On("Get", ctx, "users/patient-1").Return(record(t, "users/patient-1", models.Patient{ID: "patient-1", PatientCode: "P-20240610-0001"}), nil)
		store.On("Get", ctx, "users/patient-1/medicalHistory").Return(record(t, "users/patient-1/medicalHistory", models.MedicalHistory{Allergies: "Penicillin"}), nil)

		patient, err := NewPatientRepository(store, zap.NewNop()).FindByID(ctx, "patient-1")

		require.NoError(t, err)
		assert.Equal(t, "P-20240610-0001", patient.PatientCode)
		require.NotNil(t, patient.MedicalHistory)
		assert.Equal(t, "Penicillin", patient.MedicalHistory.Allergies)
	})

	t.Run("find by id without history", func(t *testing.T) {
		store := new(MockRecordStore)
		store.On("Get", ctx, "users/patient-1").Return(record(t, "users/patient-1", models.Patient{ID: "patient-1"}), nil)
		store.On("Get", ctx, "users/patient-1/medicalHistory").Return(nil, nil)

		patient, err := NewPatientRepository(store, zap.NewNop()).FindByID(ctx, "patient-1")

		require.NoError(t, err)
		assert.Nil(t, patient.MedicalHistory)
	})

	t.Run("missing patient", func(t *testing.T) {
		store := new(MockRecordStore)
		store.On("Get", ctx, "users/ghost").Return(nil, nil)

		_, err := NewPatientRepository(store, zap.NewNop()).FindByID(ctx, "ghost")

		assert.ErrorIs(t, err, exceptions.ErrKindNotFound)
	})

	t.Run("delete removes the subtree", func(t *testing.T) {
		store := new(MockRecordStore)
		store.On("Remove", ctx, "users/walkin_1718000000000_abcdefghi").Return(nil)

		require.NoError(t, NewPatientRepository(store, zap.NewNop()).Delete(ctx, "walkin_1718000000000_abcdefghi"))
		store.AssertExpectations(t)
	})

	t.Run("merge writes only carried fields", func(t *testing.T) {
		store := new(MockRecordStore)
		updatedAt := time.Date(2024, time.June, 10, 9, 0, 0, 0, time.UTC)
		store.On("Update", ctx, "users/patient-1/medicalHistory", map[string]interface{}{
			"hasPriorVaccination": false,
			"updatedAt":           updatedAt,
			"allergies":           "Penicillin",
		}).Return(nil)

		err := NewPatientRepository(store, zap.NewNop()).MergeMedicalHistory(ctx, "patient-1", &models.MedicalHistory{
			Allergies: "Penicillin",
			UpdatedAt: updatedAt,
		})

		require.NoError(t, err)
		store.AssertExpectations(t)
	})
}
