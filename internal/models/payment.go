package models

import "time"

// Способы оплаты.
const (
	MethodCash     = "cash"     // Наличные
	MethodTransfer = "transfer" // Перевод на счёт
	MethodStripe   = "stripe"   // Оплата через внешний провайдер
)

// PaymentStatusPending — статус платежа до подтверждения провайдером.
const PaymentStatusPending = "pending"

// Payment — запись о платеже пользователя за курс или урок.
// Для платежей через провайдер заполняются идентификаторы продукта,
// цены и сессии, а также ссылка на оплату.
type Payment struct {
	ID              int       `json:"id"`
	UserUID         string    `json:"user_uid"`
	CourseID        *int      `json:"course,omitempty"` // Курс или урок, но не оба сразу
	LessonID        *int      `json:"lesson,omitempty"`
	Amount          float64   `json:"amount"`
	Method          string    `json:"method"`
	StripeProductID string    `json:"stripe_product_id,omitempty"`
	StripePriceID   string    `json:"stripe_price_id,omitempty"`
	StripeSessionID string    `json:"stripe_session_id,omitempty"`
	CheckoutURL     string    `json:"checkout_url,omitempty"`
	Status          string    `json:"status"`
	CreatedAt       time.Time `json:"date"`
}

// DummyCheckout используется для приёма запроса на создание платёжной сессии.
// Должно быть заполнено ровно одно из полей course или lesson.
type DummyCheckout struct {
	CourseID   *int     `json:"course"`
	LessonID   *int     `json:"lesson"`
	Amount     *float64 `json:"amount"`   // Сумма; при отсутствии берётся цена объекта
	Currency   string   `json:"currency"` // По умолчанию usd
	SuccessURL string   `json:"success_url"`
	CancelURL  string   `json:"cancel_url"`
}

// PaymentFilter — фильтры списка платежей.
type PaymentFilter struct {
	CourseID *int
	LessonID *int
	Method   string
}
