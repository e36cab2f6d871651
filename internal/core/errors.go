package core

import "errors"

// Sentinel errors surfaced to the API layer, which maps them to HTTP
// statuses. Wrapped with %w throughout so errors.Is works across layers.
var (
	ErrUserNotFound         = errors.New("user not found")
	ErrDuplicateEmail       = errors.New("email already exists")
	ErrInvalidEmail         = errors.New("invalid email format")
	ErrWeakPassword         = errors.New("password is too weak")
	ErrGymNotFound          = errors.New("gym not found")
	ErrInvalidHoursEdit     = errors.New("invalid operating hours edit")
	ErrPlanNotFound         = errors.New("subscription plan not found")
	ErrOrganizationNotFound = errors.New("no users found for this organization")
	ErrNoOrgUsersCreated    = errors.New("no users were created")
	ErrNoOrgUsersDeleted    = errors.New("no users were deleted")
	ErrPayoutNotFound       = errors.New("payout request not found")
	ErrPayoutNotPending     = errors.New("payout request has already been actioned")
)
