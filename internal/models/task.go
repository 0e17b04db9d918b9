package models

import "time"

// Task представляет задание, размещённое заказчиком.
type Task struct {
	ID            int        // Уникальный идентификатор задания
	Title         string     // Заголовок
	Description   string     // Описание работ
	Price         float64    // Предлагаемая цена
	Category      string     // Категория задания
	Location      string     // Место выполнения
	ExecutionDate *time.Time // Желаемая дата выполнения
	Status        string     // Статус: open, in_progress, completed и т.д.
	AuthorID      int        // Автор задания (заказчик)
	WorkerID      *int       // Исполнитель, если назначен
}

// TaskAuthor — данные автора в списке заданий.
type TaskAuthor struct {
	Name   string  `json:"name"`
	Rating float64 `json:"rating"`
	Avatar *string `json:"avatar"`
}

// TaskSummary — элемент списка заданий вместе с автором
// и количеством откликов.
type TaskSummary struct {
	ID          int        `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Price       float64    `json:"price"`
	Category    string     `json:"category"`
	Location    string     `json:"location"`
	Date        string     `json:"date"`
	Status      string     `json:"status"`
	Author      TaskAuthor `json:"author"`
	Responses   int        `json:"responses"`
}

// TaskFilter — параметры фильтрации списка заданий.
type TaskFilter struct {
	Category string
	Status   string
}

// TaskCreatedEvent — событие о новом задании для очереди уведомлений.
type TaskCreatedEvent struct {
	TaskID   int     `json:"task_id"`
	Title    string  `json:"title"`
	Category string  `json:"category"`
	Price    float64 `json:"price"`
	AuthorID int     `json:"author_id"`
}
