package exercise

type CreateExerciseTypeRequest struct {
	Name          string     `json:"name" validate:"required"`
	Description   string     `json:"description" validate:"required"`
	TargetMuscles []string   `json:"targetMuscles" validate:"required,min=1"`
	Difficulty    Difficulty `json:"difficulty" validate:"required,oneof=beginner intermediate advanced"`
}

type UpdateExerciseTypeRequest struct {
	Name          string     `json:"name,omitempty"`
	Description   string     `json:"description,omitempty"`
	TargetMuscles []string   `json:"targetMuscles,omitempty"`
	Difficulty    Difficulty `json:"difficulty,omitempty" validate:"omitempty,oneof=beginner intermediate advanced"`
}

type ListFilter struct {
	Difficulty   Difficulty
	TargetMuscle string
}

func (r CreateExerciseTypeRequest) Definition() Definition { return Definition(r) }
func (r UpdateExerciseTypeRequest) Definition() Definition { return Definition(r) }
