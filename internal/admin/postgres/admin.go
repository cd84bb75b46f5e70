package postgres

import (
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/frahmantamala/membership-management/internal/admin"
	paymentDatamodel "github.com/frahmantamala/membership-management/internal/core/datamodel/payment"
	userDatamodel "github.com/frahmantamala/membership-management/internal/core/datamodel/user"
)

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithinTransaction runs fn against a repository bound to a database
// transaction. Returning an error from fn rolls everything back.
func (r *Repository) WithinTransaction(fn func(tx admin.Repository) error) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		return fn(&Repository{db: tx})
	})
}

// GetUserForUpdate loads the user row with a FOR UPDATE lock. Only valid
// inside WithinTransaction.
func (r *Repository) GetUserForUpdate(userID int64) (*userDatamodel.User, error) {
	var user userDatamodel.User
	err := r.db.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", userID).
		First(&user).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

// GetLatestPaymentForUpdate locks the user's most recent payment row.
// Only valid inside WithinTransaction.
func (r *Repository) GetLatestPaymentForUpdate(userID int64) (*paymentDatamodel.Payment, error) {
	var payment paymentDatamodel.Payment
	err := r.db.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		First(&payment).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &payment, nil
}

func (r *Repository) UpdateRegistrationStatus(userID int64, statusID int64) error {
	return r.db.Model(&userDatamodel.User{}).
		Where("id = ?", userID).
		Updates(map[string]interface{}{
			"registration_status_id": statusID,
			"updated_at":             time.Now(),
		}).Error
}

func (r *Repository) SetSubscriptionWindow(paymentID int64, start, end *time.Time) error {
	return r.db.Model(&paymentDatamodel.Payment{}).
		Where("id = ?", paymentID).
		Updates(map[string]interface{}{
			"subscription_start_date": start,
			"subscription_end_date":   end,
		}).Error
}

func (r *Repository) GetUser(userID int64) (*userDatamodel.User, error) {
	var user userDatamodel.User
	err := r.db.Where("id = ?", userID).First(&user).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

func (r *Repository) UpdateUserFields(userID int64, fields map[string]interface{}) (int64, error) {
	fields["updated_at"] = time.Now()
	result := r.db.Model(&userDatamodel.User{}).
		Where("id = ?", userID).
		Updates(fields)
	return result.RowsAffected, result.Error
}

func (r *Repository) SetActive(userID int64, active bool) error {
	return r.db.Model(&userDatamodel.User{}).
		Where("id = ?", userID).
		Updates(map[string]interface{}{
			"is_active":  active,
			"updated_at": time.Now(),
		}).Error
}

// ListUsers joins the department and subscription-type reference tables so
// the admin view carries names, not just foreign keys.
func (r *Repository) ListUsers() ([]admin.UserListItem, error) {
	var items []admin.UserListItem
	err := r.db.
		Table("users").
		Select(`users.id AS user_id,
			users.first_name,
			users.last_name,
			users.email,
			users.phone_number,
			users.role_id,
			users.registration_status_id,
			users.is_active,
			users.created_at,
			users.department_id,
			departments.department_name,
			users.subscription_type_id,
			subscription_types.subscription_type_name`).
		Joins("LEFT JOIN departments ON departments.id = users.department_id").
		Joins("LEFT JOIN subscription_types ON subscription_types.id = users.subscription_type_id").
		Order("users.created_at DESC").
		Scan(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}
