package models

// TaskDraft — входные данные для создания задания.
type TaskDraft struct {
	Title         string  `json:"title" validate:"required"`
	Description   string  `json:"description" validate:"required"`
	Price         float64 `json:"price" validate:"required,gt=0"`
	Category      string  `json:"category" validate:"required"`
	Location      string  `json:"location" validate:"required"`
	ExecutionDate string  `json:"execution_date" validate:"required"`
}

// UserDraft — входные данные для административного создания профиля
// пользователя без учётных данных.
type UserDraft struct {
	Name            string  `json:"name" validate:"required"`
	Email           string  `json:"email" validate:"required,email"`
	Role            string  `json:"role" validate:"required,oneof=client worker"`
	Phone           *string `json:"phone"`
	Bio             *string `json:"bio"`
	Specializations *string `json:"specializations"`
}
