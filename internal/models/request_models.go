package models

// Request payloads bound by the API layer. Validation beyond "required"
// happens in the services so the same checks apply regardless of transport.

// CreateUserRequest is the body of POST /api/v1/users.
type CreateUserRequest struct {
	Email        string `json:"email" binding:"required"`
	Password     string `json:"password" binding:"required"`
	Name         string `json:"name" binding:"required"`
	PhoneNo      string `json:"phoneNo"`
	Gender       string `json:"gender"`
	Organization string `json:"organization"`
}

// OrgUserEntry is one member in a bulk organization onboarding request.
type OrgUserEntry struct {
	Email   string `json:"email"`
	Name    string `json:"name"`
	PhoneNo string `json:"phoneNo"`
	Gender  string `json:"gender"`
}

// CreateOrgUsersRequest is the body of POST /api/v1/organizations/users.
type CreateOrgUsersRequest struct {
	OrgName string         `json:"orgName" binding:"required"`
	Users   []OrgUserEntry `json:"users" binding:"required"`
}

// DeleteOrganizationRequest is the body of DELETE /api/v1/organizations.
type DeleteOrganizationRequest struct {
	OrganizationName string `json:"organizationName" binding:"required"`
}

// ResetPasswordRequest is the body of POST /api/v1/reset-password.
type ResetPasswordRequest struct {
	Email string `json:"email" binding:"required"`
}

// NotificationPayload is the message content for a push dispatch.
type NotificationPayload struct {
	Title    string            `json:"title" binding:"required"`
	Body     string            `json:"body" binding:"required"`
	Data     map[string]string `json:"data"`
	ImageURL string            `json:"imageUrl"`
}

// SendNotificationRequest is the body of POST /api/v1/send-notification.
type SendNotificationRequest struct {
	Tokens       []string            `json:"tokens" binding:"required"`
	Notification NotificationPayload `json:"notification" binding:"required"`
}

// UpdateUserRequest carries the admin-editable profile fields. Pointer
// fields distinguish "not sent" from an explicit zero value.
type UpdateUserRequest struct {
	Name                  *string `json:"Name"`
	PhoneNo               *string `json:"PhoneNo"`
	Gender                *string `json:"Gender"`
	Subscription          *string `json:"Subscription"`
	SubscriptionEndDate   *string `json:"SubscriptionEndDate"` // YYYY-MM-DD
	SubscriptionStartDate *string `json:"SubscriptionStartDate"`
	IsUserFreezed         *bool   `json:"isUserFreezed"`
	Organization          *string `json:"Organization"`
}

// UpsertGymRequest is the body of POST /api/v1/gyms and PUT /api/v1/gyms/:id.
type UpsertGymRequest struct {
	Name            string          `json:"name" binding:"required"`
	Address         string          `json:"address"`
	City            string          `json:"city"`
	Country         string          `json:"country"`
	Description     string          `json:"description"`
	Email           string          `json:"email"`
	PhoneNo         string          `json:"phoneNo"`
	GoogleMapsLink  string          `json:"googleMapsLink"`
	CreditsPerVisit int             `json:"creditsPerVisit"`
	Subscription    string          `json:"subscription"`
	OperatingHours  *OperatingHours `json:"operatingHours"`
}

// UpdateHoursRequest is the body of PATCH /api/v1/gyms/:id/hours. Either
// Unified toggles unified mode, or Gender+Day+Hours edit a single day;
// sending both applies the toggle and ignores the day edit.
type UpdateHoursRequest struct {
	Unified *bool     `json:"unified"`
	Gender  string    `json:"gender"`
	Day     string    `json:"day"`
	Hours   *DayHours `json:"hours"`
}

// UpdateSubscriptionPlanRequest edits the two mutable plan fields.
type UpdateSubscriptionPlanRequest struct {
	Price            *string `json:"price"`
	SubscriptionDays *string `json:"SubscriptionDays"`
}
