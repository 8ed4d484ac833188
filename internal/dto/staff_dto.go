package dto

type CreateStaffRequest struct {
	Name string `json:"name" validate:"required"`
	Role string `json:"role" validate:"required,oneof=runner frontDesk admin"`
}

type UpdateStaffRequest struct {
	Name string `json:"name" validate:"omitempty"`
	Role string `json:"role" validate:"omitempty,oneof=runner frontDesk admin"`
}

type StaffResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Role string `json:"role"`
}
