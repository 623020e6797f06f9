// Package paymentprovider содержит клиент внешнего платёжного сервиса
// со Stripe-совместимым API: продукт, цена и сессия оплаты создаются
// тремя последовательными запросами.
package paymentprovider

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// Client выполняет запросы к платёжному сервису.
type Client struct {
	secretKey  string
	apiURL     string
	httpClient *http.Client
}

// NewClient создаёт новый клиент платёжного сервиса.
func NewClient(secretKey, apiURL string) *Client {
	return &Client{
		secretKey:  secretKey,
		apiURL:     apiURL,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

func (c *Client) newRequest(ctx context.Context, path string, form url.Values) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.apiURL+path, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.secretKey)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req, nil
}

func (c *Client) do(req *http.Request, result any) error {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		var apiErr apiError
		if err := json.Unmarshal(body, &apiErr); err == nil && apiErr.Error.Message != "" {
			return fmt.Errorf("payment provider: %s: %s", resp.Status, apiErr.Error.Message)
		}
		return fmt.Errorf("payment provider: unexpected status %s", resp.Status)
	}

	return json.NewDecoder(resp.Body).Decode(result)
}

// CreateProduct создаёт продукт, соответствующий оплачиваемому курсу или уроку.
func (c *Client) CreateProduct(ctx context.Context, name, description string) (*Product, error) {
	const op = "paymentprovider.CreateProduct"
	form := url.Values{}
	form.Set("name", name)
	if description != "" {
		form.Set("description", description)
	}

	req, err := c.newRequest(ctx, "/products", form)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	var product Product
	if err := c.do(req, &product); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &product, nil
}

// CreatePrice создаёт цену продукта. Сумма передаётся в минорных
// единицах валюты (копейки, центы).
func (c *Client) CreatePrice(ctx context.Context, productID string, unitAmount int64, currency string) (*Price, error) {
	const op = "paymentprovider.CreatePrice"
	form := url.Values{}
	form.Set("product", productID)
	form.Set("unit_amount", strconv.FormatInt(unitAmount, 10))
	form.Set("currency", currency)

	req, err := c.newRequest(ctx, "/prices", form)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	var price Price
	if err := c.do(req, &price); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &price, nil
}

// CreateCheckoutSession создаёт сессию оплаты по цене и возвращает
// ссылку на платёжную страницу.
func (c *Client) CreateCheckoutSession(ctx context.Context, priceID, successURL, cancelURL, customerEmail string) (*CheckoutSession, error) {
	const op = "paymentprovider.CreateCheckoutSession"
	form := url.Values{}
	form.Set("mode", "payment")
	form.Set("line_items[0][price]", priceID)
	form.Set("line_items[0][quantity]", "1")
	form.Set("success_url", successURL)
	form.Set("cancel_url", cancelURL)
	if customerEmail != "" {
		form.Set("customer_email", customerEmail)
	}

	req, err := c.newRequest(ctx, "/checkout/sessions", form)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	var session CheckoutSession
	if err := c.do(req, &session); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &session, nil
}
