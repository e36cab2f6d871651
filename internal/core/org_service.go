package core

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"time"

	"firebase.google.com/go/v4/auth"
	"go.uber.org/zap"

	"github.com/GymVisa/gymvisa-admin-dashboard/internal/db"
	"github.com/GymVisa/gymvisa-admin-dashboard/internal/mailer"
	"github.com/GymVisa/gymvisa-admin-dashboard/internal/models"
)

// OrgUserCredential is one successfully created member with the password
// that was generated for them. Returned once; not stored.
type OrgUserCredential struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	UID      string `json:"uid"`
}

// EmailReport summarizes the credential-email sweep that follows a bulk
// creation. Email failures are reported here, separate from creation
// failures, and never undo a created account.
type EmailReport struct {
	EmailsSent   int      `json:"emailsSent"`
	EmailsFailed int      `json:"emailsFailed"`
	EmailErrors  []string `json:"emailErrors,omitempty"`
}

// OrgCreationReport is the mixed outcome of a bulk creation. A half-
// completed batch is a valid end state; both sides are always returned.
type OrgCreationReport struct {
	Results      []OrgUserCredential `json:"results"`
	Errors       []string            `json:"errors,omitempty"`
	EmailResults EmailReport         `json:"emailResults"`
}

// DeletedOrgUser identifies one removed member.
type DeletedOrgUser struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}

// OrgDeletionReport is the mixed outcome of an organization delete.
type OrgDeletionReport struct {
	DeletedUsers []DeletedOrgUser `json:"deletedUsers"`
	Errors       []string         `json:"errors,omitempty"`
}

// OrganizationService manages the derived organization views and the two
// bulk flows. Organizations have no storage of their own: they exist as
// long as at least one User carries the label.
type OrganizationService interface {
	ListOrganizations(ctx context.Context) ([]OrganizationGroup, error)
	OrganizationUsers(ctx context.Context, name string) ([]*models.User, error)
	CreateOrgUsers(ctx context.Context, req models.CreateOrgUsersRequest) (*OrgCreationReport, error)
	DeleteOrganization(ctx context.Context, name string) (*OrgDeletionReport, error)
}

type organizationService struct {
	userRepo   db.UserRepository
	authClient AuthClient
	mail       mailer.Mailer // nil disables credential emails
	audit      AuditService
	logger     *zap.Logger
}

// NewOrganizationService creates an OrganizationService. The mailer is
// optional; without it bulk creations report every email as failed-to-send
// so the admin knows to distribute credentials manually.
func NewOrganizationService(
	userRepo db.UserRepository,
	authClient AuthClient,
	mail mailer.Mailer,
	audit AuditService,
	logger *zap.Logger,
) OrganizationService {
	return &organizationService{
		userRepo:   userRepo,
		authClient: authClient,
		mail:       mail,
		audit:      audit,
		logger:     logger,
	}
}

// ListOrganizations recomputes the organization roll-up from the full user
// collection. The member slices are stripped; the list view only needs
// the counts.
func (s *organizationService) ListOrganizations(ctx context.Context) ([]OrganizationGroup, error) {
	users, err := s.userRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load users for organization grouping: %w", err)
	}
	groups := GroupByOrganization(users)
	for i := range groups {
		groups[i].Users = nil
	}
	return groups, nil
}

// OrganizationUsers lists the members of one organization. An organization
// with zero members does not exist.
func (s *organizationService) OrganizationUsers(ctx context.Context, name string) ([]*models.User, error) {
	if name == "" {
		return nil, errors.New("organization name is required")
	}
	users, err := s.userRepo.ListByOrganization(ctx, name)
	if err != nil {
		return nil, err
	}
	if len(users) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrOrganizationNotFound, name)
	}
	return users, nil
}

// CreateOrgUsers processes each entry independently: a failure on one user
// never aborts the rest. Created members get an organization-derived
// password (see orgPassword) and a credential email afterwards; creation
// and email outcomes are reported separately. ErrNoOrgUsersCreated is
// returned only when every entry failed.
func (s *organizationService) CreateOrgUsers(ctx context.Context, req models.CreateOrgUsersRequest) (*OrgCreationReport, error) {
	report := &OrgCreationReport{}
	var emailTargets []mailer.Credentials

	for _, entry := range req.Users {
		if entry.Email == "" || entry.Name == "" {
			report.Errors = append(report.Errors,
				fmt.Sprintf("User missing email or name: %s", orUnknown(entry.Email)))
			continue
		}

		password, err := orgPassword(req.OrgName)
		if err != nil {
			report.Errors = append(report.Errors,
				fmt.Sprintf("Failed to create user %s: %v", entry.Email, err))
			continue
		}

		record, err := s.authClient.CreateUser(ctx, (&auth.UserToCreate{}).
			Email(entry.Email).
			Password(password).
			DisplayName(entry.Name))
		if err != nil {
			report.Errors = append(report.Errors,
				fmt.Sprintf("Failed to create user %s: %v", entry.Email, err))
			continue
		}

		now := time.Now().UTC()
		user := &models.User{
			UserID:                record.UID,
			Name:                  entry.Name,
			Email:                 entry.Email,
			PhoneNo:               entry.PhoneNo,
			Gender:                entry.Gender,
			Subscription:          models.SubscriptionNone,
			SubscriptionStartDate: now,
			SubscriptionEndDate:   now,
			Verified:              true,
			Organization:          req.OrgName,
		}
		if err := s.userRepo.Create(ctx, user); err != nil {
			report.Errors = append(report.Errors,
				fmt.Sprintf("Failed to create user %s: %v", entry.Email, err))
			if delErr := s.authClient.DeleteUser(ctx, record.UID); delErr != nil {
				s.logger.Error("Failed to roll back auth user after profile write failure",
					zap.String("uid", record.UID), zap.Error(delErr))
			}
			continue
		}

		report.Results = append(report.Results, OrgUserCredential{
			Email:    entry.Email,
			Password: password,
			UID:      record.UID,
		})
		emailTargets = append(emailTargets, mailer.Credentials{
			Email:            entry.Email,
			Password:         password,
			Name:             entry.Name,
			OrganizationName: req.OrgName,
		})
	}

	if len(report.Results) == 0 {
		return report, fmt.Errorf("%w for organization %q", ErrNoOrgUsersCreated, req.OrgName)
	}

	report.EmailResults = s.sendCredentialEmails(emailTargets)

	s.audit.Record(ctx, "organization.create_users", adminActor(ctx), req.OrgName,
		fmt.Sprintf("created=%d failed=%d", len(report.Results), len(report.Errors)))
	return report, nil
}

func (s *organizationService) sendCredentialEmails(targets []mailer.Credentials) EmailReport {
	var report EmailReport
	for _, creds := range targets {
		if s.mail == nil {
			report.EmailsFailed++
			report.EmailErrors = append(report.EmailErrors,
				fmt.Sprintf("No mailer configured; credentials for %s not sent", creds.Email))
			continue
		}
		if err := s.mail.SendCredentials(creds); err != nil {
			s.logger.Warn("Credential email failed", zap.String("email", creds.Email), zap.Error(err))
			report.EmailsFailed++
			report.EmailErrors = append(report.EmailErrors, err.Error())
			continue
		}
		report.EmailsSent++
	}
	return report
}

// DeleteOrganization deletes every user carrying the organization label,
// from the auth service and the document store, one at a time. Partial
// failure is reported, not retried. ErrOrganizationNotFound when zero
// users match; ErrNoOrgUsersDeleted when users matched but none could be
// removed.
func (s *organizationService) DeleteOrganization(ctx context.Context, name string) (*OrgDeletionReport, error) {
	users, err := s.userRepo.ListByOrganization(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("failed to look up users for organization %q: %w", name, err)
	}
	if len(users) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrOrganizationNotFound, name)
	}

	report := &OrgDeletionReport{}
	for _, user := range users {
		if err := s.authClient.DeleteUser(ctx, user.UserID); err != nil && !auth.IsUserNotFound(err) {
			report.Errors = append(report.Errors,
				fmt.Sprintf("Failed to delete user %s: %v", user.Email, err))
			continue
		}
		if err := s.userRepo.Delete(ctx, user.UserID); err != nil {
			report.Errors = append(report.Errors,
				fmt.Sprintf("Failed to delete user %s: %v", user.Email, err))
			continue
		}
		report.DeletedUsers = append(report.DeletedUsers, DeletedOrgUser{
			Email: user.Email,
			Name:  user.Name,
		})
	}

	if len(report.DeletedUsers) == 0 {
		return report, fmt.Errorf("%w for organization %q", ErrNoOrgUsersDeleted, name)
	}

	s.audit.Record(ctx, "organization.delete", adminActor(ctx), name,
		fmt.Sprintf("deleted=%d failed=%d", len(report.DeletedUsers), len(report.Errors)))
	return report, nil
}

// orgPassword derives a member password from the organization name plus a
// random 3-digit suffix, e.g. "acmefitness417". The onboarding emails
// document this scheme, so it cannot change without coordinating with the
// copy in mailer. Weak by construction; not to be reused outside bulk
// organization onboarding.
func orgPassword(orgName string) (string, error) {
	base := strings.ToLower(strings.Join(strings.Fields(orgName), ""))
	n, err := rand.Int(rand.Reader, big.NewInt(900))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s%d", base, 100+n.Int64()), nil
}

func orUnknown(s string) string {
	if s == "" {
		return "unknown"
	}
	return s
}
