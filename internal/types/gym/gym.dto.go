package gym

type CreateGymRequest struct {
	Name        string   `json:"name" validate:"required"`
	Address     string   `json:"address" validate:"required"`
	Contact     string   `json:"contact" validate:"required"`
	Description string   `json:"description"`
	Capacity    int      `json:"capacity" validate:"required,min=1"`
	Equipment   []string `json:"equipment"`
	Activities  []string `json:"activities"`
}

type UpdateGymRequest struct {
	Name        string   `json:"name,omitempty"`
	Address     string   `json:"address,omitempty"`
	Contact     string   `json:"contact,omitempty"`
	Description string   `json:"description,omitempty"`
	Capacity    int      `json:"capacity,omitempty" validate:"omitempty,min=1"`
	Equipment   []string `json:"equipment,omitempty"`
	Activities  []string `json:"activities,omitempty"`
}

type ReviewRequest struct {
	Approved *bool `json:"approved" validate:"required"`
}

type ReviewResult struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Gym     Gym    `json:"gym"`
}

func (r CreateGymRequest) Details() Details {
	return Details(r)
}

func (r UpdateGymRequest) Details() Details {
	return Details(r)
}
