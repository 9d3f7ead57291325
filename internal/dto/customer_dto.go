package dto

type CreateCustomerRequest struct {
	LastName  string  `json:"last_name"  validate:"required,min=1,max=100"`
	FirstName string  `json:"first_name" validate:"required,min=1,max=100"`
	Phone     *string `json:"phone"      validate:"omitempty,max=20"`
	Email     *string `json:"email"      validate:"omitempty,email"`
	Address   *string `json:"address"    validate:"omitempty,max=200"`
}

type UpdateCustomerRequest struct {
	LastName  *string `json:"last_name"  validate:"omitempty,min=1,max=100"`
	FirstName *string `json:"first_name" validate:"omitempty,min=1,max=100"`
	Phone     *string `json:"phone"      validate:"omitempty,max=20"`
	Email     *string `json:"email"      validate:"omitempty,email"`
	Address   *string `json:"address"    validate:"omitempty,max=200"`
}

type CustomerResponse struct {
	ID        string  `json:"id"`
	LastName  string  `json:"last_name"`
	FirstName string  `json:"first_name"`
	Phone     *string `json:"phone"`
	Email     *string `json:"email"`
	Address   *string `json:"address"`
}
