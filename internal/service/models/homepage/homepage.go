package homepage

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrDuplicateGroup     = errors.New("special group name already exists")
	ErrCompanyInfoMissing = errors.New("company info not configured")
)

// SpecialGroup is a homepage grouping of menu items (e.g. "Chef's picks").
// Group names are unique.
type SpecialGroup struct {
	GroupID          uuid.UUID `json:"groupId"`
	GroupName        string    `json:"groupName"`
	GroupDescription string    `json:"groupDescription"`
}

// SpecialEvent is a promoted restaurant event shown on the homepage.
type SpecialEvent struct {
	EventID     uuid.UUID `json:"eventId"`
	EventName   string    `json:"eventName"`
	EventDate   time.Time `json:"eventDate"`
	Location    string    `json:"location"`
	Description string    `json:"description"`
	ImageURL    string    `json:"imageUrl,omitempty"`
}

// CompanyInfo is the single company profile shown on the homepage.
type CompanyInfo struct {
	CompanyID   uuid.UUID `json:"companyId"`
	Name        string    `json:"name"`
	LogoURL     string    `json:"logoUrl"`
	Address     string    `json:"address"`
	PhoneNumber string    `json:"phoneNumber"`
	Email       string    `json:"email"`
	Website     string    `json:"website,omitempty"`
}
