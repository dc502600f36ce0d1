package dto

import "time"

type Customer struct {
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Address1 string `json:"address1"`
	Postcode string `json:"postcode"`
	City     string `json:"city"`
	Country  string `json:"country"`
}

type CreateOrderRequest struct {
	ProductID      string    `json:"productId"`
	ProductName    string    `json:"productName"`
	AmountCents    int64     `json:"amountCents"`
	IdempotencyKey string    `json:"idempotencyKey"`
	Customer       *Customer `json:"customer"`
}

type CreateOrderResponse struct {
	OrderID string `json:"orderId"`
}

type CreateCheckoutRequest struct {
	OrderID string `json:"orderId"`
}

type CreateCheckoutResponse struct {
	CheckoutURL string `json:"checkoutUrl"`
}

type CallRequestBody struct {
	Phone  string `json:"phone"`
	Source string `json:"source"`
}

type CallRequestResponse struct {
	OK        bool `json:"ok"`
	Duplicate bool `json:"duplicate,omitempty"`
}

type SweepResponse struct {
	Processed int       `json:"processed"`
	Sent      int       `json:"sent"`
	Skipped   int       `json:"skipped"`
	Cutoff    time.Time `json:"cutoff"`
}
