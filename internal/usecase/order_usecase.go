package usecase

import (
	"context"
	"fmt"
	"sync"

	"github.com/yourusername/bazaar-admin/internal/domain/entity"
	"github.com/yourusername/bazaar-admin/internal/domain/repository"
)

// OrderUseCase order listing and fulfilment transitions
type OrderUseCase interface {
	List(ctx context.Context, session entity.Session, limit int) ([]entity.Order, error)
	Get(ctx context.Context, session entity.Session, id string) (*entity.Order, error)

	// Advance moves the order one step forward, Cancel moves it to cancelled.
	// Both read the current status from the backend first and refuse to run
	// while another transition of the same order is outstanding.
	Advance(ctx context.Context, session entity.Session, id string) (*entity.Order, error)
	Cancel(ctx context.Context, session entity.Session, id string) (*entity.Order, error)

	// NewStepper binds a stepper to an order already on screen
	NewStepper(order entity.Order) *Stepper
}

type orderUseCase struct {
	orders repository.OrderAPI
	audit  repository.AuditRepository

	mu       sync.Mutex
	inflight map[string]struct{}
}

// NewOrderUseCase creates the order use case
func NewOrderUseCase(orders repository.OrderAPI, audit repository.AuditRepository) OrderUseCase {
	return &orderUseCase{
		orders:   orders,
		audit:    audit,
		inflight: make(map[string]struct{}),
	}
}

func (u *orderUseCase) List(ctx context.Context, session entity.Session, limit int) ([]entity.Order, error) {
	return u.orders.ListOrders(ctx, session, limit)
}

func (u *orderUseCase) Get(ctx context.Context, session entity.Session, id string) (*entity.Order, error) {
	return u.orders.GetOrder(ctx, session, id)
}

func (u *orderUseCase) NewStepper(order entity.Order) *Stepper {
	return &Stepper{orders: u.orders, audit: u.audit, order: order}
}

func (u *orderUseCase) Advance(ctx context.Context, session entity.Session, id string) (*entity.Order, error) {
	return u.transition(ctx, session, id, (*Stepper).Advance)
}

func (u *orderUseCase) Cancel(ctx context.Context, session entity.Session, id string) (*entity.Order, error) {
	return u.transition(ctx, session, id, (*Stepper).Cancel)
}

func (u *orderUseCase) transition(
	ctx context.Context,
	session entity.Session,
	id string,
	step func(*Stepper, context.Context, entity.Session) (entity.OrderStatus, error),
) (*entity.Order, error) {
	if !u.begin(id) {
		return nil, fmt.Errorf("%w: order %s", entity.ErrTransitionInProgress, id)
	}
	defer u.end(id)

	order, err := u.orders.GetOrder(ctx, session, id)
	if err != nil {
		return nil, err
	}

	stepper := u.NewStepper(*order)
	if _, err := step(stepper, ctx, session); err != nil {
		return nil, err
	}

	updated := stepper.Order()
	return &updated, nil
}

func (u *orderUseCase) begin(id string) bool {
	u.mu.Lock()
	defer u.mu.Unlock()

	if _, busy := u.inflight[id]; busy {
		return false
	}
	u.inflight[id] = struct{}{}
	return true
}

func (u *orderUseCase) end(id string) {
	u.mu.Lock()
	defer u.mu.Unlock()

	delete(u.inflight, id)
}

// Stepper holds one displayed order and applies status transitions to it.
// The local status changes only after the backend confirms the update.
type Stepper struct {
	orders repository.OrderAPI
	audit  repository.AuditRepository

	mu       sync.Mutex
	order    entity.Order
	updating bool
}

// Order snapshot of the displayed order
func (s *Stepper) Order() entity.Order {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.order
}

// Updating reports whether a transition is outstanding
func (s *Stepper) Updating() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.updating
}

// Advance moves to the next status in the sequence
func (s *Stepper) Advance(ctx context.Context, session entity.Session) (entity.OrderStatus, error) {
	return s.apply(ctx, session, ActionOrderAdvance, entity.OrderStatus.Advance)
}

// Cancel moves to cancelled from any non-terminal status
func (s *Stepper) Cancel(ctx context.Context, session entity.Session) (entity.OrderStatus, error) {
	return s.apply(ctx, session, ActionOrderCancel, entity.OrderStatus.Cancel)
}

func (s *Stepper) apply(
	ctx context.Context,
	session entity.Session,
	action string,
	next func(entity.OrderStatus) (entity.OrderStatus, error),
) (entity.OrderStatus, error) {
	s.mu.Lock()
	if s.updating {
		current := s.order.Status
		s.mu.Unlock()
		return current, fmt.Errorf("%w: order %s", entity.ErrTransitionInProgress, s.order.ID)
	}
	from := s.order.Status
	to, err := next(from)
	if err != nil {
		s.mu.Unlock()
		return from, err
	}
	id := s.order.ID
	s.updating = true
	s.mu.Unlock()

	err = s.orders.UpdateOrderStatus(ctx, session, id, to)

	s.mu.Lock()
	s.updating = false
	if err == nil {
		s.order.Status = to
	}
	s.mu.Unlock()

	if err != nil {
		return from, err
	}

	recordAction(ctx, s.audit, session.UserID, action, fmt.Sprintf("Order %s: %s -> %s", id, from, to))
	return to, nil
}
