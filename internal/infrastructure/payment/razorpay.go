package payment

import (
	"context"
	"fmt"

	razorpay "github.com/razorpay/razorpay-go"

	"github.com/gharkeseva/gharseva-api/internal/application/dto"
	appPayment "github.com/gharkeseva/gharseva-api/internal/application/payment"
	"github.com/gharkeseva/gharseva-api/pkg/config"
)

var _ appPayment.Gateway = (*RazorpayGateway)(nil)

// RazorpayGateway creates payment orders through the Razorpay API.
type RazorpayGateway struct {
	client *razorpay.Client
}

// NewRazorpayGateway builds the gateway from configured credentials.
func NewRazorpayGateway(cfg config.RazorpayConfig) *RazorpayGateway {
	return &RazorpayGateway{client: razorpay.NewClient(cfg.KeyID, cfg.KeySecret)}
}

// CreateOrder registers an order with the gateway and returns its handle.
// The SDK call does not take a context, so it runs in a goroutine and the
// result is dropped if ctx expires first.
func (g *RazorpayGateway) CreateOrder(ctx context.Context, amountPaise int64, currency, receipt string) (*dto.OrderResponse, error) {
	data := map[string]interface{}{
		"amount":   amountPaise,
		"currency": currency,
		"receipt":  receipt,
	}

	type result struct {
		order *dto.OrderResponse
		err   error
	}
	done := make(chan result, 1)
	go func() {
		body, err := g.client.Order.Create(data, nil)
		if err != nil {
			done <- result{err: err}
			return
		}
		id, _ := body["id"].(string)
		if id == "" {
			done <- result{err: fmt.Errorf("gateway response missing order id")}
			return
		}
		done <- result{order: &dto.OrderResponse{
			OrderID:  id,
			Amount:   amountPaise,
			Currency: currency,
			Receipt:  receipt,
		}}
	}()

	select {
	case r := <-done:
		if r.err != nil {
			return nil, fmt.Errorf("create gateway order: %w", r.err)
		}
		return r.order, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}
