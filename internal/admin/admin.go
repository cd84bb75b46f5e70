package admin

import "time"

// Registration status identifiers from the registration_statuses reference
// table. The set is closed: transition requests outside it are rejected
// before any row is touched.
const (
	StatusSubmitted int64 = 1
	StatusPending   int64 = 2
	StatusApproved  int64 = 3
	StatusRejected  int64 = 4
)

// Subscription type identifiers. Lifetime subscriptions have no end date;
// yearly ones run 365 days from approval.
const (
	SubscriptionLifetime int64 = 1
	SubscriptionYearly   int64 = 2
)

const yearlySubscriptionDays = 365

var statusNames = map[int64]string{
	StatusSubmitted: "Submitted",
	StatusPending:   "Pending",
	StatusApproved:  "Approved",
	StatusRejected:  "Rejected",
}

func IsValidStatus(statusID int64) bool {
	_, ok := statusNames[statusID]
	return ok
}

func StatusName(statusID int64) string {
	if name, ok := statusNames[statusID]; ok {
		return name
	}
	return "Unknown"
}

// TransitionResult is the structured outcome of a lifecycle transition.
// The subscription window is only populated on the approve branch.
type TransitionResult struct {
	Message               string
	SubscriptionStartDate *time.Time
	SubscriptionEndDate   *time.Time
}

// UserListItem is the admin projection of a user row joined with the
// department and subscription-type reference tables.
type UserListItem struct {
	UserID               int64     `json:"userId"`
	FirstName            string    `json:"firstName"`
	LastName             string    `json:"lastName"`
	Email                string    `json:"email"`
	PhoneNumber          string    `json:"phoneNumber"`
	RoleID               int64     `json:"roleId"`
	RegistrationStatusID int64     `json:"registrationStatus"`
	IsActive             bool      `json:"isActive"`
	CreatedAt            time.Time `json:"createdAt"`
	DepartmentID         int64     `json:"departmentId"`
	DepartmentName       string    `json:"departmentName"`
	SubscriptionTypeID   int64     `json:"subscriptionTypeId"`
	SubscriptionTypeName string    `json:"subscriptionTypeName"`
}
