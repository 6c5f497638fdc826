package dto

// ReactRequest - тело POST /reactions и POST /reactions/toggle.
// Type - указатель: поле обязательно, но пустая строка - допустимый тип.
// UserID позволяет действовать от имени другого пользователя (только для своей же учётки или роли service).
type ReactRequest struct {
	Type   *string `json:"type" validate:"required,reaction_type"`
	UserID *int64  `json:"user_id,omitempty" validate:"omitempty,gt=0"`
}
