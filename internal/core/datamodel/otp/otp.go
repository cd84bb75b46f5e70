package otp

import "time"

type PasswordResetOTP struct {
	ID         int64     `gorm:"primaryKey"`
	UserID     int64     `gorm:"column:user_id;not null;index"`
	OTPCode    string    `gorm:"column:otp_code;not null"`
	ExpiryTime time.Time `gorm:"column:expiry_time;not null"`
	IsUsed     bool      `gorm:"column:is_used;default:false"`
	CreatedAt  time.Time `gorm:"column:created_at"`
}

func (PasswordResetOTP) TableName() string {
	return "password_reset_otps"
}
