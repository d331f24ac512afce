package order

// QueryOrdersModel represents filter parameters for querying orders.
type QueryOrdersModel struct {
	Ids         []int64 `json:"ids,omitempty"`
	CustomerIds []int64 `json:"customerIds,omitempty"`
	Statuses    []Status `json:"statuses,omitempty"`
	Limit       int     `json:"limit,omitempty"`
	Offset      int     `json:"offset,omitempty"`
}

// UpdateOrderModel carries the fields a restaurant-side update may change.
// Nil fields are left untouched.
type UpdateOrderModel struct {
	Status          *Status
	PrepTimeMinutes *int
}
