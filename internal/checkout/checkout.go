package checkout

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/google/uuid"

	"tillfront/internal/cart"
	"tillfront/internal/events"
	"tillfront/internal/model"
)

// ErrEmptyCart rejects a checkout before any network call is made.
var ErrEmptyCart = errors.New("cart empty")

// BillPoster is the bill-creation side of the API client.
type BillPoster interface {
	CreateBill(ctx context.Context, req model.BillRequest) (model.Bill, error)
}

// Request carries the operator-entered checkout fields.
type Request struct {
	CustomerName       string
	CustomerPhone      string
	CustomerEmail      string
	BilledBy           string
	PaymentMethod      string
	DiscountPercentage float64
}

// Service turns the current cart into a posted bill. On success the cart
// is cleared and a sale event is appended; event failures are logged,
// not fatal (the bill is already persisted server-side).
type Service struct {
	cart     *cart.Store
	api      BillPoster
	events   events.Writer
	terminal string
}

func New(c *cart.Store, api BillPoster, ev events.Writer, terminal string) *Service {
	return &Service{cart: c, api: api, events: ev, terminal: terminal}
}

// Checkout validates the cart, posts the bill, clears the cart, and
// publishes the sale event. A cart with no total quantity is rejected
// with ErrEmptyCart and nothing leaves the process.
func (s *Service) Checkout(ctx context.Context, req Request) (model.Bill, error) {
	if s.cart.TotalItems() == 0 {
		return model.Bill{}, ErrEmptyCart
	}

	items := s.cart.Items()
	lines := make([]model.BillRequestItem, 0, len(items))
	for _, it := range items {
		lines = append(lines, model.BillRequestItem{
			ProductID:  it.ID,
			Quantity:   it.Quantity,
			UnitPrice:  it.Price,
			TotalPrice: it.LineTotal(),
		})
	}

	billReq := model.BillRequest{
		IdempotencyKey:     uuid.NewString(),
		CustomerName:       req.CustomerName,
		CustomerPhone:      req.CustomerPhone,
		CustomerEmail:      req.CustomerEmail,
		BilledBy:           req.BilledBy,
		PaymentMethod:      req.PaymentMethod,
		DiscountPercentage: req.DiscountPercentage,
		Items:              lines,
	}

	bill, err := s.api.CreateBill(ctx, billReq)
	if err != nil {
		return model.Bill{}, fmt.Errorf("create bill: %w", err)
	}

	total := s.cart.TotalValue()
	count := s.cart.TotalItems()
	s.cart.Clear()

	if s.events != nil {
		if err := s.events.Append(events.NewSaleEvent(bill.ID, s.terminal, total, count)); err != nil {
			log.Printf("checkout: sale event append: %v", err)
		}
	}
	return bill, nil
}
