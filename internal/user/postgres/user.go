package postgres

import (
	"gorm.io/gorm"

	"github.com/frahmantamala/membership-management/internal/user"
)

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

const profileSelect = `users.id AS user_id,
	users.first_name,
	users.last_name,
	users.email,
	users.phone_number,
	users.role_id,
	users.registration_status_id,
	users.is_active,
	users.created_at,
	departments.department_name,
	subscription_types.subscription_type_name`

func (r *Repository) profileQuery() *gorm.DB {
	return r.db.
		Table("users").
		Select(profileSelect).
		Joins("LEFT JOIN departments ON departments.id = users.department_id").
		Joins("LEFT JOIN subscription_types ON subscription_types.id = users.subscription_type_id")
}

func (r *Repository) GetProfileByID(userID int64) (*user.Profile, error) {
	var profile user.Profile
	err := r.profileQuery().Where("users.id = ?", userID).Take(&profile).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &profile, nil
}

func (r *Repository) GetProfileByEmail(email string) (*user.Profile, error) {
	var profile user.Profile
	err := r.profileQuery().Where("users.email = ?", email).Take(&profile).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &profile, nil
}
