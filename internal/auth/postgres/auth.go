package postgres

import (
	userDatamodel "github.com/frahmantamala/membership-management/internal/core/datamodel/user"
	"gorm.io/gorm"
)

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// GetActiveUserByEmail returns nil without error when no active user holds
// the address; the service treats that the same as a bad password.
func (r *Repository) GetActiveUserByEmail(email string) (*userDatamodel.User, error) {
	var user userDatamodel.User
	err := r.db.Where("email = ? AND is_active = ?", email, true).First(&user).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}
