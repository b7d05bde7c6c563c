package dto

// CreateOrderRequest body for POST /payments/create-order. Amount is in
// whole currency units; the gateway receives it in paise.
type CreateOrderRequest struct {
	Amount int64 `json:"amount"`
}

// OrderResponse is the gateway order handle returned verbatim to the caller.
type OrderResponse struct {
	OrderID  string `json:"id"`
	Amount   int64  `json:"amount"` // paise
	Currency string `json:"currency"`
	Receipt  string `json:"receipt"`
}
