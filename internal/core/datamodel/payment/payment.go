package payment

import "time"

// Payment records one subscription purchase per row. The newest row by
// created_at is the authoritative payment for a user; the lifecycle engine
// only ever touches that one.
type Payment struct {
	ID                    int64      `gorm:"primaryKey"`
	UserID                int64      `gorm:"column:user_id;not null;index"`
	SubscriptionTypeID    int64      `gorm:"column:subscription_type_id;not null"`
	TransactionID         *string    `gorm:"column:transaction_id"`
	PaymentEvidence       *string    `gorm:"column:payment_evidence"`
	SubscriptionStartDate *time.Time `gorm:"column:subscription_start_date"`
	SubscriptionEndDate   *time.Time `gorm:"column:subscription_end_date"`
	IsActive              bool       `gorm:"column:is_active;default:true"`
	CreatedAt             time.Time  `gorm:"column:created_at"`
}

func (Payment) TableName() string {
	return "user_payments"
}
