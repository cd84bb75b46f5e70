package subscription

// SubscriptionTypeResponse is the public projection of a subscription-type
// row, including the price shown on the registration form.
type SubscriptionTypeResponse struct {
	ID    int64   `json:"id"`
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

type SubscriptionTypesResponse struct {
	SubscriptionTypes []SubscriptionTypeResponse `json:"subscriptionTypes"`
}
