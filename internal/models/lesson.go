package models

// Lesson представляет урок внутри курса.
// Владелец урока не обязан совпадать с владельцем курса.
type Lesson struct {
	ID          int      `json:"id"`
	OwnerUID    string   `json:"owner_uid"` // Владелец (создатель) урока
	CourseID    int      `json:"course"`    // Курс, к которому относится урок
	Title       string   `json:"title"`
	Description string   `json:"description"`
	PreviewURL  string   `json:"preview,omitempty"`
	VideoURL    string   `json:"video_url,omitempty"` // Ссылка на видео, только youtube
	Price       *float64 `json:"price,omitempty"`
}

// DummyLesson используется для приёма данных урока из JSON-запроса.
// Поле course задаётся вызывающим и не сверяется с владельцем при создании.
type DummyLesson struct {
	CourseID    int      `json:"course" validate:"required,gt=0"`
	Title       string   `json:"title" validate:"required,max=255"`
	Description string   `json:"description"`
	PreviewURL  string   `json:"preview"`
	VideoURL    string   `json:"video_url"`
	Price       *float64 `json:"price" validate:"omitempty,gt=0"`
}
