package core

import (
	"context"
	"fmt"

	"firebase.google.com/go/v4/messaging"
	"go.uber.org/zap"

	"github.com/GymVisa/gymvisa-admin-dashboard/internal/db"
	"github.com/GymVisa/gymvisa-admin-dashboard/internal/models"
)

// androidChannelID is the notification channel the mobile app registers.
const androidChannelID = "gymvisa_notifications"

// TokenResult is the delivery outcome for one device token.
type TokenResult struct {
	Token   string `json:"token"`
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
	// Stale marks tokens the push service no longer recognizes. They are
	// reported but not pruned from profiles here.
	Stale bool `json:"stale,omitempty"`
}

// DispatchReport summarizes one push dispatch across all target tokens.
type DispatchReport struct {
	Successful int           `json:"successful"`
	Failed     int           `json:"failed"`
	Details    []TokenResult `json:"details"`
}

// NotificationService sends push notifications to member devices.
type NotificationService interface {
	Send(ctx context.Context, req models.SendNotificationRequest) (*DispatchReport, error)
	Recipients(ctx context.Context) ([]*models.User, error)
}

type notificationService struct {
	client   *messaging.Client
	userRepo db.UserRepository
	audit    AuditService
	logger   *zap.Logger
}

// NewNotificationService creates a NotificationService.
func NewNotificationService(client *messaging.Client, userRepo db.UserRepository, audit AuditService, logger *zap.Logger) NotificationService {
	return &notificationService{client: client, userRepo: userRepo, audit: audit, logger: logger}
}

// Send dispatches the notification to each token individually so one bad
// token never sinks the batch. Every token gets a result entry; the report
// totals always add up to the token count.
func (s *notificationService) Send(ctx context.Context, req models.SendNotificationRequest) (*DispatchReport, error) {
	if len(req.Tokens) == 0 {
		return nil, fmt.Errorf("no device tokens provided")
	}

	report := &DispatchReport{Details: make([]TokenResult, 0, len(req.Tokens))}
	for _, token := range req.Tokens {
		result := TokenResult{Token: token}
		if _, err := s.client.Send(ctx, buildMessage(token, req.Notification)); err != nil {
			result.Error = err.Error()
			result.Stale = messaging.IsUnregistered(err)
			report.Failed++
			s.logger.Warn("Push send failed",
				zap.String("token", token), zap.Bool("stale", result.Stale), zap.Error(err))
		} else {
			result.Success = true
			report.Successful++
		}
		report.Details = append(report.Details, result)
	}

	s.audit.Record(ctx, "notification.send", adminActor(ctx), req.Notification.Title,
		fmt.Sprintf("successful=%d failed=%d", report.Successful, report.Failed))
	return report, nil
}

// Recipients lists the users that can currently receive a push, i.e. those
// with a registered device token.
func (s *notificationService) Recipients(ctx context.Context) ([]*models.User, error) {
	users, err := s.userRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	recipients := make([]*models.User, 0, len(users))
	for _, user := range users {
		if user.HasFCMToken() {
			recipients = append(recipients, user)
		}
	}
	return recipients, nil
}

// buildMessage assembles the platform config the mobile app expects:
// high-priority delivery on the app's channel for Android, default sound
// and a badge for iOS, and the Flutter click action in the data payload.
func buildMessage(token string, payload models.NotificationPayload) *messaging.Message {
	data := make(map[string]string, len(payload.Data)+2)
	for k, v := range payload.Data {
		data[k] = v
	}
	data["click_action"] = "FLUTTER_NOTIFICATION_CLICK"
	data["sound"] = "default"

	badge := 1
	return &messaging.Message{
		Token: token,
		Notification: &messaging.Notification{
			Title:    payload.Title,
			Body:     payload.Body,
			ImageURL: payload.ImageURL,
		},
		Data: data,
		Android: &messaging.AndroidConfig{
			Priority: "high",
			Notification: &messaging.AndroidNotification{
				ChannelID: androidChannelID,
				Sound:     "default",
			},
		},
		APNS: &messaging.APNSConfig{
			Payload: &messaging.APNSPayload{
				Aps: &messaging.Aps{
					Sound: "default",
					Badge: &badge,
				},
			},
		},
	}
}
