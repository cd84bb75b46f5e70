package postgres

import (
	"time"

	"gorm.io/gorm"

	otpDatamodel "github.com/frahmantamala/membership-management/internal/core/datamodel/otp"
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

func (r *Repository) GetUserByID(userID int64) (*userDatamodel.User, error) {
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

func (r *Repository) CreateOTP(record *otpDatamodel.PasswordResetOTP) error {
	return r.db.Create(record).Error
}

func (r *Repository) GetUnusedOTP(userID int64, code string) (*otpDatamodel.PasswordResetOTP, error) {
	var record otpDatamodel.PasswordResetOTP
	err := r.db.
		Where("user_id = ? AND otp_code = ? AND is_used = ?", userID, code, false).
		Order("created_at DESC").
		First(&record).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &record, nil
}

// ConsumeOTP burns a code with a conditional update so two concurrent
// verifications cannot both succeed on the same row.
func (r *Repository) ConsumeOTP(otpID int64) (int64, error) {
	result := r.db.Model(&otpDatamodel.PasswordResetOTP{}).
		Where("id = ? AND is_used = ?", otpID, false).
		Update("is_used", true)
	return result.RowsAffected, result.Error
}

func (r *Repository) UpdatePassword(userID int64, passwordHash string) error {
	return r.db.Model(&userDatamodel.User{}).
		Where("id = ?", userID).
		Updates(map[string]interface{}{
			"password_hash": passwordHash,
			"updated_at":    time.Now(),
		}).Error
}
