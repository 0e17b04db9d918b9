package models

// ProfileStats — агрегированная статистика пользователя.
type ProfileStats struct {
	CompletedTasks int     `json:"completedTasks"`
	CompletedWorks int     `json:"completedWorks"`
	TotalEarned    float64 `json:"totalEarned"`
}

// WorkHistoryItem — выполненное задание с оценкой из отзыва.
type WorkHistoryItem struct {
	Task    string  `json:"task"`
	Price   float64 `json:"price"`
	Date    string  `json:"date"`
	Rating  float64 `json:"rating"`
	Comment *string `json:"comment"`
}

// Profile — полный профиль пользователя: данные учётной записи,
// статистика и история последних выполненных работ.
type Profile struct {
	ID              int               `json:"id"`
	Name            string            `json:"name"`
	Email           string            `json:"email"`
	Phone           *string           `json:"phone"`
	Role            string            `json:"role"`
	Rating          float64           `json:"rating"`
	Avatar          *string           `json:"avatar"`
	Bio             *string           `json:"bio"`
	Specializations []string          `json:"specializations"`
	MemberSince     string            `json:"memberSince"`
	Stats           ProfileStats      `json:"stats"`
	WorkHistory     []WorkHistoryItem `json:"workHistory"`
}
