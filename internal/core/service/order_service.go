package service

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/rs/zerolog"

	"github.com/bikeshop/shop-api/internal/core/domain"
	"github.com/bikeshop/shop-api/internal/core/ports"
)

type OrderService struct {
	orders   ports.OrderRepository
	products ports.ProductRepository
	events   ports.EventSink
	log      zerolog.Logger
}

func NewOrderService(orders ports.OrderRepository, products ports.ProductRepository, events ports.EventSink, log zerolog.Logger) *OrderService {
	return &OrderService{orders: orders, products: products, events: sinkOrNop(events), log: log}
}

// Create places an order for customerID. Every referenced product must exist;
// the total is the sum of their discounted prices, repeated IDs counted each time.
func (s *OrderService) Create(ctx context.Context, customerID string, productIDs []string) (*domain.Order, error) {
	if err := checkID(customerID); err != nil {
		return nil, err
	}
	total, err := s.priceOf(ctx, productIDs)
	if err != nil {
		return nil, err
	}

	order := &domain.Order{
		ID:         newID(),
		ProductIDs: append([]string(nil), productIDs...),
		TotalPrice: total,
		CustomerID: customerID,
		CreatedAt:  time.Now().UTC(),
	}
	if err := s.orders.Create(ctx, order); err != nil {
		return nil, err
	}

	s.log.Info().Str("order_id", order.ID).Str("customer_id", customerID).Uint32("total_price", total).Msg("order created")
	s.events.Emit(domain.NewEvent(domain.EventOrderCreated, order.ID, order))
	return order, nil
}

func (s *OrderService) Get(ctx context.Context, id, callerID string, callerRole domain.Role) (*domain.Order, error) {
	if err := checkID(id); err != nil {
		return nil, err
	}
	order, err := s.orders.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	// other customers' orders are reported as missing
	if callerRole != domain.RoleAdmin && order.CustomerID != callerID {
		return nil, domain.NotFound("Order")
	}
	return order, nil
}

func (s *OrderService) List(ctx context.Context) ([]domain.Order, error) {
	return s.orders.List(ctx)
}

func (s *OrderService) ListByCustomer(ctx context.Context, customerID string) ([]domain.Order, error) {
	if err := checkID(customerID); err != nil {
		return nil, err
	}
	return s.orders.ListByCustomer(ctx, customerID)
}

func (s *OrderService) Update(ctx context.Context, id string, in ports.UpdateOrderInput) error {
	if err := checkID(id); err != nil {
		return err
	}

	var patch domain.OrderPatch
	if in.ProductIDs != nil {
		total, err := s.priceOf(ctx, in.ProductIDs)
		if err != nil {
			return err
		}
		ids := append([]string(nil), in.ProductIDs...)
		patch.ProductIDs = &ids
		patch.TotalPrice = &total
	}
	if in.TotalPrice != nil {
		patch.TotalPrice = in.TotalPrice
	}

	if patch.ProductIDs == nil && patch.TotalPrice == nil {
		_, err := s.orders.FindByID(ctx, id)
		return err
	}
	if err := s.orders.Update(ctx, id, patch); err != nil {
		return err
	}

	s.log.Info().Str("order_id", id).Msg("order updated")
	s.events.Emit(domain.NewEvent(domain.EventOrderUpdated, id, nil))
	return nil
}

func (s *OrderService) Delete(ctx context.Context, id string) error {
	if err := checkID(id); err != nil {
		return err
	}
	if err := s.orders.Delete(ctx, id); err != nil {
		return err
	}
	s.log.Info().Str("order_id", id).Msg("order deleted")
	s.events.Emit(domain.NewEvent(domain.EventOrderDeleted, id, nil))
	return nil
}

func (s *OrderService) priceOf(ctx context.Context, productIDs []string) (uint32, error) {
	if len(productIDs) == 0 {
		return 0, domain.NotFound("Products")
	}

	unique := make([]string, 0, len(productIDs))
	seen := make(map[string]struct{}, len(productIDs))
	for _, id := range productIDs {
		if err := checkID(id); err != nil {
			return 0, err
		}
		if _, dup := seen[id]; !dup {
			seen[id] = struct{}{}
			unique = append(unique, id)
		}
	}

	found, err := s.products.FindByIDs(ctx, unique)
	if err != nil {
		return 0, err
	}
	if len(found) != len(unique) {
		return 0, domain.NotFound("Products")
	}

	prices := make(map[string]uint64, len(found))
	for _, p := range found {
		prices[p.ID] = uint64(p.DiscountedPrice())
	}
	var total uint64
	for _, id := range productIDs {
		total += prices[id]
		if total > math.MaxUint32 {
			return 0, fmt.Errorf("%w: total price exceeds %d", domain.ErrInvalidOrder, uint32(math.MaxUint32))
		}
	}
	return uint32(total), nil
}
