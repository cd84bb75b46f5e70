package user

import "time"

type User struct {
	ID                   int64     `gorm:"primaryKey"`
	FirstName            string    `gorm:"column:first_name;not null"`
	LastName             string    `gorm:"column:last_name;not null"`
	Email                string    `gorm:"column:email;uniqueIndex;not null"`
	PasswordHash         string    `gorm:"column:password_hash;not null"`
	PhoneNumber          string    `gorm:"column:phone_number"`
	DepartmentID         int64     `gorm:"column:department_id"`
	RoleID               int64     `gorm:"column:role_id;not null"`
	SubscriptionTypeID   int64     `gorm:"column:subscription_type_id"`
	RegistrationStatusID int64     `gorm:"column:registration_status_id;not null"`
	IsActive             bool      `gorm:"column:is_active;default:true"`
	CreatedAt            time.Time `gorm:"column:created_at"`
	UpdatedAt            time.Time `gorm:"column:updated_at"`
}

func (User) TableName() string {
	return "users"
}

// RegistrationStatus is the reference row behind the approval state enum.
type RegistrationStatus struct {
	ID         int64  `gorm:"primaryKey"`
	StatusName string `gorm:"column:status_name;not null"`
}

func (RegistrationStatus) TableName() string {
	return "registration_statuses"
}
