package core

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/GymVisa/gymvisa-admin-dashboard/internal/models"
)

// MockImageStore is a mock implementation of db.ImageStore.
type MockImageStore struct {
	mock.Mock
}

func (m *MockImageStore) UploadGymImage(ctx context.Context, gymID string, slot int, contentType string, data io.Reader) (string, error) {
	args := m.Called(ctx, gymID, slot, contentType, data)
	return args.String(0), args.Error(1)
}

func TestCreateGym(t *testing.T) {
	gymRepo := new(MockGymRepository)
	svc := NewGymService(gymRepo, new(MockImageStore), noopAudit{}, zap.NewNop())

	var created *models.Gym
	gymRepo.On("Create", mock.Anything, mock.AnythingOfType("*models.Gym")).
		Run(func(args mock.Arguments) {
			created = args.Get(1).(*models.Gym)
		}).Return(nil)

	gym, err := svc.CreateGym(context.Background(), models.UpsertGymRequest{
		Name: "Iron Temple",
		City: "Lahore",
	})
	require.NoError(t, err)
	require.NotNil(t, created)

	assert.NotEmpty(t, gym.GymID)
	assert.Equal(t, "Iron Temple", gym.Name)

	// A new gym is scannable immediately and opens with the default week.
	assert.True(t, strings.HasPrefix(gym.QRCodeURL, "data:image/png;base64,"))
	require.NotNil(t, gym.OperatingHours)
	assert.True(t, gym.OperatingHours.Unified)
	assert.Equal(t, "06:00", gym.OperatingHours.Male["monday"].Open)
}

func TestCreateGymNormalizesUnifiedHours(t *testing.T) {
	gymRepo := new(MockGymRepository)
	svc := NewGymService(gymRepo, new(MockImageStore), noopAudit{}, zap.NewNop())

	gymRepo.On("Create", mock.Anything, mock.Anything).Return(nil)

	hours := models.DefaultOperatingHours()
	hours.Female["monday"] = models.DayHours{Open: "10:00", Close: "12:00"}

	gym, err := svc.CreateGym(context.Background(), models.UpsertGymRequest{
		Name:           "Pulse Gym",
		OperatingHours: hours,
	})
	require.NoError(t, err)

	// Unified schedules are stored with male copied over female.
	assert.Equal(t, gym.OperatingHours.Male["monday"], gym.OperatingHours.Female["monday"])
	assert.True(t, gym.OperatingHours.SchedulesMatch())
}

func TestUpdateGymPreservesImagesAndCode(t *testing.T) {
	gymRepo := new(MockGymRepository)
	svc := NewGymService(gymRepo, new(MockImageStore), noopAudit{}, zap.NewNop())

	gymRepo.On("GetByID", mock.Anything, "g1").Return(&models.Gym{
		GymID:     "g1",
		Name:      "Old Name",
		ImageURL1: "https://img/1",
		ImageURL2: "https://img/2",
		QRCodeURL: "data:image/png;base64,abc",
	}, nil)
	gymRepo.On("Set", mock.Anything, mock.AnythingOfType("*models.Gym")).Return(nil)

	gym, err := svc.UpdateGym(context.Background(), "g1", models.UpsertGymRequest{Name: "New Name"})
	require.NoError(t, err)

	assert.Equal(t, "New Name", gym.Name)
	assert.Equal(t, "https://img/1", gym.ImageURL1)
	assert.Equal(t, "https://img/2", gym.ImageURL2)
	assert.Equal(t, "data:image/png;base64,abc", gym.QRCodeURL)
}

func TestAccessCodeGeneratesWhenMissing(t *testing.T) {
	gymRepo := new(MockGymRepository)
	svc := NewGymService(gymRepo, new(MockImageStore), noopAudit{}, zap.NewNop())

	gymRepo.On("GetByID", mock.Anything, "g1").Return(&models.Gym{GymID: "g1"}, nil)
	gymRepo.On("Update", mock.Anything, "g1", mock.MatchedBy(func(fields map[string]interface{}) bool {
		code, ok := fields["qrCodeUrl"].(string)
		return ok && strings.HasPrefix(code, "data:image/png;base64,")
	})).Return(nil).Once()

	code, err := svc.AccessCode(context.Background(), "g1")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(code, "data:image/png;base64,"))
	gymRepo.AssertExpectations(t)
}

func TestAccessCodeReturnsStored(t *testing.T) {
	gymRepo := new(MockGymRepository)
	svc := NewGymService(gymRepo, new(MockImageStore), noopAudit{}, zap.NewNop())

	gymRepo.On("GetByID", mock.Anything, "g1").
		Return(&models.Gym{GymID: "g1", QRCodeURL: "data:image/png;base64,stored"}, nil)

	code, err := svc.AccessCode(context.Background(), "g1")
	require.NoError(t, err)
	assert.Equal(t, "data:image/png;base64,stored", code)
	gymRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
}

func TestUploadImageRecordsSlotURL(t *testing.T) {
	gymRepo := new(MockGymRepository)
	images := new(MockImageStore)
	svc := NewGymService(gymRepo, images, noopAudit{}, zap.NewNop())

	gymRepo.On("GetByID", mock.Anything, "g1").Return(&models.Gym{GymID: "g1"}, nil)
	images.On("UploadGymImage", mock.Anything, "g1", 2, "image/jpeg", mock.Anything).
		Return("https://storage/gyms/g1/image2", nil)
	gymRepo.On("Update", mock.Anything, "g1", map[string]interface{}{
		"imageUrl2": "https://storage/gyms/g1/image2",
	}).Return(nil).Once()

	url, err := svc.UploadImage(context.Background(), "g1", 2, "image/jpeg", strings.NewReader("jpeg-bytes"))
	require.NoError(t, err)
	assert.Equal(t, "https://storage/gyms/g1/image2", url)
	gymRepo.AssertExpectations(t)
}

func TestUpdateHoursDayEdit(t *testing.T) {
	gymRepo := new(MockGymRepository)
	svc := NewGymService(gymRepo, new(MockImageStore), noopAudit{}, zap.NewNop())

	gymRepo.On("GetByID", mock.Anything, "g1").Return(&models.Gym{
		GymID:          "g1",
		OperatingHours: models.DefaultOperatingHours(),
	}, nil)

	var stored *models.OperatingHours
	gymRepo.On("Update", mock.Anything, "g1", mock.MatchedBy(func(fields map[string]interface{}) bool {
		hours, ok := fields["operatingHours"].(*models.OperatingHours)
		if ok {
			stored = hours
		}
		return ok
	})).Return(nil)

	gym, err := svc.UpdateHours(context.Background(), "g1", models.UpdateHoursRequest{
		Gender: "male",
		Day:    "friday",
		Hours:  &models.DayHours{Open: "08:00", Close: "20:00"},
	})
	require.NoError(t, err)
	require.NotNil(t, stored)

	// Unified mode mirrors the edit, so both sections change and the
	// schedules still match.
	assert.Equal(t, "08:00", stored.Male["friday"].Open)
	assert.Equal(t, "08:00", stored.Female["friday"].Open)
	assert.True(t, stored.Unified)
	assert.Same(t, stored, gym.OperatingHours)
}

func TestUpdateHoursDivergenceDropsUnified(t *testing.T) {
	gymRepo := new(MockGymRepository)
	svc := NewGymService(gymRepo, new(MockImageStore), noopAudit{}, zap.NewNop())

	hours := models.DefaultOperatingHours()
	hours.Unified = false
	hours.Female["friday"] = models.DayHours{Open: "09:00", Close: "18:00"}
	hours.Unified = true // stored schedules already diverge on friday

	gymRepo.On("GetByID", mock.Anything, "g1").Return(&models.Gym{
		GymID:          "g1",
		OperatingHours: hours,
	}, nil)

	var stored *models.OperatingHours
	gymRepo.On("Update", mock.Anything, "g1", mock.MatchedBy(func(fields map[string]interface{}) bool {
		oh, ok := fields["operatingHours"].(*models.OperatingHours)
		if ok {
			stored = oh
		}
		return ok
	})).Return(nil)

	_, err := svc.UpdateHours(context.Background(), "g1", models.UpdateHoursRequest{
		Gender: "male",
		Day:    "monday",
		Hours:  &models.DayHours{Open: "07:00", Close: "22:00"},
	})
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.False(t, stored.Unified)
}

func TestUpdateHoursToggleUnifiedCopiesMale(t *testing.T) {
	gymRepo := new(MockGymRepository)
	svc := NewGymService(gymRepo, new(MockImageStore), noopAudit{}, zap.NewNop())

	hours := models.DefaultOperatingHours()
	hours.Unified = false
	hours.Female["friday"] = models.DayHours{Closed: true}

	gymRepo.On("GetByID", mock.Anything, "g1").Return(&models.Gym{
		GymID:          "g1",
		OperatingHours: hours,
	}, nil)

	var stored *models.OperatingHours
	gymRepo.On("Update", mock.Anything, "g1", mock.MatchedBy(func(fields map[string]interface{}) bool {
		oh, ok := fields["operatingHours"].(*models.OperatingHours)
		if ok {
			stored = oh
		}
		return ok
	})).Return(nil)

	on := true
	_, err := svc.UpdateHours(context.Background(), "g1", models.UpdateHoursRequest{Unified: &on})
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.True(t, stored.Unified)
	assert.False(t, stored.Female["friday"].Closed)
	assert.True(t, stored.SchedulesMatch())
}

func TestUpdateHoursRejectsBadEdits(t *testing.T) {
	gymRepo := new(MockGymRepository)
	svc := NewGymService(gymRepo, new(MockImageStore), noopAudit{}, zap.NewNop())

	gymRepo.On("GetByID", mock.Anything, "g1").Return(&models.Gym{
		GymID:          "g1",
		OperatingHours: models.DefaultOperatingHours(),
	}, nil)

	cases := []struct {
		name string
		req  models.UpdateHoursRequest
	}{
		{"unknown gender", models.UpdateHoursRequest{Gender: "other", Day: "monday", Hours: &models.DayHours{}}},
		{"unknown day", models.UpdateHoursRequest{Gender: "male", Day: "someday", Hours: &models.DayHours{}}},
		{"empty request", models.UpdateHoursRequest{}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.UpdateHours(context.Background(), "g1", tc.req)
			assert.ErrorIs(t, err, ErrInvalidHoursEdit)
		})
	}
	gymRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
}
