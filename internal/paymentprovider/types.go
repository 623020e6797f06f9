package paymentprovider

// Product представляет продукт в платёжном сервисе.
type Product struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// Price представляет цену продукта в минорных единицах валюты.
type Price struct {
	ID         string `json:"id"`
	ProductID  string `json:"product"`
	UnitAmount int64  `json:"unit_amount"`
	Currency   string `json:"currency"`
}

// CheckoutSession представляет сессию оплаты. URL ведёт на платёжную
// страницу, куда перенаправляется пользователь.
type CheckoutSession struct {
	ID  string `json:"id"`
	URL string `json:"url"`
}

// apiError представляет тело ошибки платёжного сервиса.
type apiError struct {
	Error struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	} `json:"error"`
}
