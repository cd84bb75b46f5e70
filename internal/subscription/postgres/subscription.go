package postgres

import (
	"gorm.io/gorm"

	subscriptionDatamodel "github.com/frahmantamala/membership-management/internal/core/datamodel/subscription"
	"github.com/frahmantamala/membership-management/internal/subscription"
)

type SubscriptionTypeRepository struct {
	db *gorm.DB
}

func NewSubscriptionTypeRepository(db *gorm.DB) subscription.RepositoryAPI {
	return &SubscriptionTypeRepository{db: db}
}

func (r *SubscriptionTypeRepository) GetAll() ([]*subscriptionDatamodel.SubscriptionType, error) {
	var types []*subscriptionDatamodel.SubscriptionType
	err := r.db.Order("id ASC").Find(&types).Error
	return types, err
}
