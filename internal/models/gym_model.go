package models

// DaysOfWeek lists the operating-hours keys in display order.
var DaysOfWeek = []string{"monday", "tuesday", "wednesday", "thursday", "friday", "saturday", "sunday"}

// DayHours is one day's schedule for one gender section.
type DayHours struct {
	Open   string `json:"open" firestore:"open"`
	Close  string `json:"close" firestore:"close"`
	Closed bool   `json:"closed" firestore:"closed"`
}

// OperatingHours holds the weekly schedule. When Unified is true the male
// and female schedules must be identical for every day; the gym service is
// responsible for keeping that invariant.
type OperatingHours struct {
	Unified bool                `json:"unified" firestore:"unified"`
	Male    map[string]DayHours `json:"male" firestore:"male"`
	Female  map[string]DayHours `json:"female" firestore:"female"`
}

// SchedulesMatch reports whether male and female hours agree for every day of the week.
func (oh *OperatingHours) SchedulesMatch() bool {
	for _, day := range DaysOfWeek {
		if oh.Male[day] != oh.Female[day] {
			return false
		}
	}
	return true
}

// CopyMaleToFemale overwrites the female schedule with the male one.
// Used when unified mode is switched on.
func (oh *OperatingHours) CopyMaleToFemale() {
	female := make(map[string]DayHours, len(oh.Male))
	for day, hours := range oh.Male {
		female[day] = hours
	}
	oh.Female = female
}

// ApplyDayEdit sets one day's hours for one gender section. While unified
// mode is on the edit is mirrored to the other section so both schedules
// stay identical; Unified then remains true only if every day still
// matches, otherwise it drops to false.
func (oh *OperatingHours) ApplyDayEdit(gender, day string, hours DayHours) {
	target, other := oh.Male, oh.Female
	if gender == "female" {
		target, other = oh.Female, oh.Male
	}
	target[day] = hours
	if oh.Unified {
		other[day] = hours
	}
	if oh.Unified {
		oh.Unified = oh.SchedulesMatch()
	}
}

// ToggleUnified switches unified mode. Turning it on copies the male
// schedule over the female one; turning it off keeps both as they are.
func (oh *OperatingHours) ToggleUnified(on bool) {
	if on {
		oh.CopyMaleToFemale()
	}
	oh.Unified = on
}

// DefaultOperatingHours returns a unified 06:00-23:00 week, the same default
// the dashboard seeds new gyms with.
func DefaultOperatingHours() *OperatingHours {
	oh := &OperatingHours{
		Unified: true,
		Male:    make(map[string]DayHours, len(DaysOfWeek)),
	}
	for _, day := range DaysOfWeek {
		oh.Male[day] = DayHours{Open: "06:00", Close: "23:00"}
	}
	oh.CopyMaleToFemale()
	return oh
}

// Gym represents a document in the "Gyms" collection.
type Gym struct {
	GymID           string          `json:"gymID" firestore:"gymID"`
	Name            string          `json:"name" firestore:"name"`
	Address         string          `json:"address" firestore:"address"`
	City            string          `json:"city" firestore:"city"`
	Country         string          `json:"country" firestore:"country"`
	Description     string          `json:"description" firestore:"description"`
	Email           string          `json:"email" firestore:"email"`
	PhoneNo         string          `json:"phoneNo" firestore:"phoneNo"`
	ImageURL1       string          `json:"imageUrl1" firestore:"imageUrl1"`
	ImageURL2       string          `json:"imageUrl2" firestore:"imageUrl2"`
	GoogleMapsLink  string          `json:"googleMapsLink" firestore:"googleMapsLink"`
	CreditsPerVisit int             `json:"creditsPerVisit" firestore:"creditsPerVisit"`
	QRCodeURL       string          `json:"qrCodeUrl" firestore:"qrCodeUrl"`
	Subscription    string          `json:"subscription" firestore:"subscription"`
	OperatingHours  *OperatingHours `json:"operatingHours,omitempty" firestore:"operatingHours,omitempty"`
}
