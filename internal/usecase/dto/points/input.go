package pointsdto

type CreateRewardInput struct {
	Name       string
	PointsCost int64
	IsActive   bool
}

// UpdateRewardInput leaves nil fields untouched.
type UpdateRewardInput struct {
	Name       *string
	PointsCost *int64
	IsActive   *bool
}
