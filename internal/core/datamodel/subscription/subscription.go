package subscription

type SubscriptionType struct {
	ID       int64   `gorm:"primaryKey"`
	Name     string  `gorm:"column:subscription_type_name;not null"`
	Price    float64 `gorm:"column:price"`
	IsActive bool    `gorm:"column:is_active;default:true"`
}

func (SubscriptionType) TableName() string {
	return "subscription_types"
}
