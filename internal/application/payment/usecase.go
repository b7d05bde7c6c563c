package payment

import (
	"context"
	"fmt"
	"time"

	"github.com/gharkeseva/gharseva-api/internal/application/dto"
	"github.com/gharkeseva/gharseva-api/internal/domain"
)

// timeNowUnixMilli is a hook so tests can pin the receipt suffix.
var timeNowUnixMilli = func() int64 { return time.Now().UnixMilli() }

// Gateway is the payment collaborator: given an amount in paise it returns
// an order handle the caller uses to pay. Order creation failure is a
// critical dependency failure and propagates.
type Gateway interface {
	CreateOrder(ctx context.Context, amountPaise int64, currency, receipt string) (*dto.OrderResponse, error)
}

// UseCase payment-order creation.
type UseCase struct {
	gateway Gateway
}

// NewUseCase builds the payment usecase.
func NewUseCase(gateway Gateway) *UseCase {
	return &UseCase{gateway: gateway}
}

// CreateOrder converts the amount to paise and asks the gateway for an
// order. The handle is returned verbatim; payment completion is not
// verified here.
func (uc *UseCase) CreateOrder(ctx context.Context, in dto.CreateOrderRequest) (*dto.OrderResponse, error) {
	if in.Amount <= 0 {
		return nil, domain.ErrValidation
	}
	if uc.gateway == nil {
		return nil, domain.ErrDependency
	}
	receipt := fmt.Sprintf("receipt_%d", timeNowUnixMilli())
	order, err := uc.gateway.CreateOrder(ctx, in.Amount*100, "INR", receipt)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrDependency, err)
	}
	return order, nil
}
