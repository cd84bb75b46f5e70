package postgres

import (
	"gorm.io/gorm"

	paymentDatamodel "github.com/frahmantamala/membership-management/internal/core/datamodel/payment"
	userDatamodel "github.com/frahmantamala/membership-management/internal/core/datamodel/user"
)

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) GetUserByEmail(email string) (*userDatamodel.User, error) {
	var user userDatamodel.User
	err := r.db.Where("email = ?", email).First(&user).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

// CreateUserWithPayment inserts the user and its first payment row in one
// transaction. The payment's UserID is filled from the generated user id.
func (r *Repository) CreateUserWithPayment(user *userDatamodel.User, payment *paymentDatamodel.Payment) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(user).Error; err != nil {
			return err
		}
		payment.UserID = user.ID
		return tx.Create(payment).Error
	})
}
