package core

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/GymVisa/gymvisa-admin-dashboard/internal/db"
	"github.com/GymVisa/gymvisa-admin-dashboard/internal/models"
)

// GymService manages partner gym records, their image slots, and their
// scannable access codes.
type GymService interface {
	ListGyms(ctx context.Context) ([]*models.Gym, error)
	GetGym(ctx context.Context, gymID string) (*models.Gym, error)
	CreateGym(ctx context.Context, req models.UpsertGymRequest) (*models.Gym, error)
	UpdateGym(ctx context.Context, gymID string, req models.UpsertGymRequest) (*models.Gym, error)
	UpdateHours(ctx context.Context, gymID string, req models.UpdateHoursRequest) (*models.Gym, error)
	DeleteGym(ctx context.Context, gymID string) error
	AccessCode(ctx context.Context, gymID string) (string, error)
	RegenerateAccessCode(ctx context.Context, gymID string) (string, error)
	UploadImage(ctx context.Context, gymID string, slot int, contentType string, data io.Reader) (string, error)
}

type gymService struct {
	gymRepo db.GymRepository
	images  db.ImageStore
	audit   AuditService
	logger  *zap.Logger
}

// NewGymService creates a GymService.
func NewGymService(gymRepo db.GymRepository, images db.ImageStore, audit AuditService, logger *zap.Logger) GymService {
	return &gymService{gymRepo: gymRepo, images: images, audit: audit, logger: logger}
}

func (s *gymService) ListGyms(ctx context.Context) ([]*models.Gym, error) {
	return s.gymRepo.List(ctx)
}

func (s *gymService) GetGym(ctx context.Context, gymID string) (*models.Gym, error) {
	gym, err := s.gymRepo.GetByID(ctx, gymID)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrGymNotFound, gymID)
		}
		return nil, err
	}
	return gym, nil
}

// CreateGym assigns a fresh gym ID, seeds missing operating hours with the
// default week, and generates the access code up front so a new gym is
// scannable the moment it appears in the app.
func (s *gymService) CreateGym(ctx context.Context, req models.UpsertGymRequest) (*models.Gym, error) {
	gym := gymFromRequest(uuid.NewString(), req)

	code, err := AccessCodeDataURL(gym.GymID)
	if err != nil {
		return nil, err
	}
	gym.QRCodeURL = code

	if err := s.gymRepo.Create(ctx, gym); err != nil {
		return nil, fmt.Errorf("failed to create gym %q: %w", req.Name, err)
	}

	s.audit.Record(ctx, "gym.create", adminActor(ctx), gym.GymID, gym.Name)
	return gym, nil
}

// UpdateGym replaces the editable fields wholesale while preserving the
// stored images and access code, which have their own endpoints.
func (s *gymService) UpdateGym(ctx context.Context, gymID string, req models.UpsertGymRequest) (*models.Gym, error) {
	existing, err := s.GetGym(ctx, gymID)
	if err != nil {
		return nil, err
	}

	gym := gymFromRequest(gymID, req)
	gym.ImageURL1 = existing.ImageURL1
	gym.ImageURL2 = existing.ImageURL2
	gym.QRCodeURL = existing.QRCodeURL

	if err := s.gymRepo.Set(ctx, gym); err != nil {
		return nil, fmt.Errorf("failed to update gym %s: %w", gymID, err)
	}

	s.audit.Record(ctx, "gym.update", adminActor(ctx), gymID, gym.Name)
	return gym, nil
}

// UpdateHours applies a targeted schedule edit without touching the rest
// of the gym document. A unified toggle copies the male week over the
// female one when switching on; a day edit under unified mode is mirrored
// to both sections, and unified drops to false if the schedules diverge.
func (s *gymService) UpdateHours(ctx context.Context, gymID string, req models.UpdateHoursRequest) (*models.Gym, error) {
	gym, err := s.GetGym(ctx, gymID)
	if err != nil {
		return nil, err
	}

	hours := gym.OperatingHours
	if hours == nil {
		hours = models.DefaultOperatingHours()
	}
	if hours.Male == nil {
		hours.Male = make(map[string]models.DayHours)
	}
	if hours.Female == nil {
		hours.Female = make(map[string]models.DayHours)
	}

	var detail string
	switch {
	case req.Unified != nil:
		hours.ToggleUnified(*req.Unified)
		detail = fmt.Sprintf("unified=%t", *req.Unified)
	case req.Hours != nil:
		if req.Gender != "male" && req.Gender != "female" {
			return nil, fmt.Errorf("%w: unknown gender %q", ErrInvalidHoursEdit, req.Gender)
		}
		if !validDay(req.Day) {
			return nil, fmt.Errorf("%w: unknown day %q", ErrInvalidHoursEdit, req.Day)
		}
		hours.ApplyDayEdit(req.Gender, req.Day, *req.Hours)
		detail = fmt.Sprintf("%s/%s", req.Gender, req.Day)
	default:
		return nil, fmt.Errorf("%w: nothing to apply", ErrInvalidHoursEdit)
	}

	if err := s.gymRepo.Update(ctx, gymID, map[string]interface{}{"operatingHours": hours}); err != nil {
		return nil, fmt.Errorf("failed to update hours for gym %s: %w", gymID, err)
	}
	gym.OperatingHours = hours

	s.audit.Record(ctx, "gym.update_hours", adminActor(ctx), gymID, detail)
	return gym, nil
}

func validDay(day string) bool {
	for _, d := range models.DaysOfWeek {
		if d == day {
			return true
		}
	}
	return false
}

func (s *gymService) DeleteGym(ctx context.Context, gymID string) error {
	if _, err := s.GetGym(ctx, gymID); err != nil {
		return err
	}
	if err := s.gymRepo.Delete(ctx, gymID); err != nil {
		return fmt.Errorf("failed to delete gym %s: %w", gymID, err)
	}
	s.audit.Record(ctx, "gym.delete", adminActor(ctx), gymID, "")
	return nil
}

// AccessCode returns the gym's stored access code, generating and
// persisting one first for gyms created before codes were stored.
func (s *gymService) AccessCode(ctx context.Context, gymID string) (string, error) {
	gym, err := s.GetGym(ctx, gymID)
	if err != nil {
		return "", err
	}
	if gym.QRCodeURL != "" {
		return gym.QRCodeURL, nil
	}
	return s.generateAndStoreCode(ctx, gymID)
}

// RegenerateAccessCode renders a fresh code and overwrites the stored one.
// The payload only depends on the gym ID, so scanners keep working across
// regenerations; last write wins.
func (s *gymService) RegenerateAccessCode(ctx context.Context, gymID string) (string, error) {
	if _, err := s.GetGym(ctx, gymID); err != nil {
		return "", err
	}
	code, err := s.generateAndStoreCode(ctx, gymID)
	if err != nil {
		return "", err
	}
	s.audit.Record(ctx, "gym.regenerate_access_code", adminActor(ctx), gymID, "")
	return code, nil
}

func (s *gymService) generateAndStoreCode(ctx context.Context, gymID string) (string, error) {
	code, err := AccessCodeDataURL(gymID)
	if err != nil {
		return "", err
	}
	if err := s.gymRepo.Update(ctx, gymID, map[string]interface{}{"qrCodeUrl": code}); err != nil {
		return "", fmt.Errorf("failed to store access code for gym %s: %w", gymID, err)
	}
	return code, nil
}

// UploadImage stores the image in the given slot (1 or 2) and records the
// resulting download URL on the gym document.
func (s *gymService) UploadImage(ctx context.Context, gymID string, slot int, contentType string, data io.Reader) (string, error) {
	if _, err := s.GetGym(ctx, gymID); err != nil {
		return "", err
	}

	url, err := s.images.UploadGymImage(ctx, gymID, slot, contentType, data)
	if err != nil {
		return "", err
	}

	field := fmt.Sprintf("imageUrl%d", slot)
	if err := s.gymRepo.Update(ctx, gymID, map[string]interface{}{field: url}); err != nil {
		return "", fmt.Errorf("failed to record %s for gym %s: %w", field, gymID, err)
	}

	s.audit.Record(ctx, "gym.upload_image", adminActor(ctx), gymID, field)
	return url, nil
}

// gymFromRequest builds a Gym document from an upsert payload, normalizing
// the operating hours so the unified invariant holds in storage.
func gymFromRequest(gymID string, req models.UpsertGymRequest) *models.Gym {
	hours := req.OperatingHours
	if hours == nil {
		hours = models.DefaultOperatingHours()
	} else {
		if hours.Male == nil {
			hours.Male = make(map[string]models.DayHours)
		}
		if hours.Female == nil {
			hours.Female = make(map[string]models.DayHours)
		}
		if hours.Unified {
			hours.CopyMaleToFemale()
		}
	}

	return &models.Gym{
		GymID:           gymID,
		Name:            req.Name,
		Address:         req.Address,
		City:            req.City,
		Country:         req.Country,
		Description:     req.Description,
		Email:           req.Email,
		PhoneNo:         req.PhoneNo,
		GoogleMapsLink:  req.GoogleMapsLink,
		CreditsPerVisit: req.CreditsPerVisit,
		Subscription:    req.Subscription,
		OperatingHours:  hours,
	}
}
