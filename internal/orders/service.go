package orders

import (
	"context"
	"log"

	"github.com/Deoshabh/weBazaar-sub000/internal/coupon"
	"github.com/Deoshabh/weBazaar-sub000/internal/payments"
	"github.com/google/uuid"
)

// Store is the persistence surface of the coordinator. *Repo is the
// pgx implementation; tests supply an in-memory one.
type Store interface {
	CartLines(ctx context.Context, userID string) ([]CartLine, error)
	CreateFromCart(ctx context.Context, d Draft) (*Order, error)
	Get(ctx context.Context, id string) (*Order, error)
	ListByUser(ctx context.Context, userID string) ([]Order, error)
	Transition(ctx context.Context, id string, to Status) (*Order, error)
	MarkPaid(ctx context.Context, id, transactionID string) (*Order, error)
	SetRazorpayOrder(ctx context.Context, id, razorpayOrderID string) error
}

type CouponValidator interface {
	Validate(ctx context.Context, code string, subtotalCents int64, userID string) (coupon.Result, error)
}

// Cache covers the post-commit, best-effort cache effects.
type Cache interface {
	InvalidateProducts(ctx context.Context) error
	SetOrderStatus(ctx context.Context, orderID, status string)
}

type Events interface {
	Emit(eventType, orderID string, payload any)
}

type Gateway interface {
	CreateOrder(ctx context.Context, amountPaise int64, receipt string) (payments.GatewayOrder, error)
	VerifySignature(gatewayOrderID, paymentID, signature string) bool
}

type Service struct {
	Store   Store
	Coupons CouponValidator
	Cache   Cache
	Events  Events
	Gateway Gateway
	Pricing Pricing
}

type PlaceInput struct {
	ShippingAddress Address `json:"shippingAddress"`
	PaymentMethod   string  `json:"paymentMethod"`
	CouponCode      string  `json:"couponCode"`
}

type VerifyInput struct {
	RazorpayOrderID   string `json:"razorpay_order_id"`
	RazorpayPaymentID string `json:"razorpay_payment_id"`
	RazorpaySignature string `json:"razorpay_signature"`
}

// Place converts the user's cart into an order: validate address and
// cart, price it, validate the coupon, then hand a draft to the atomic
// section. Either the order, the stock decrements, the coupon
// redemption and the cart clear all land together, or none do.
func (s *Service) Place(ctx context.Context, userID string, in PlaceInput) (*Order, error) {
	method := PaymentMethod(in.PaymentMethod)
	if method == "" {
		method = PaymentCOD
	}
	if method != PaymentCOD && method != PaymentRazorpay {
		return nil, ErrBadPaymentMethod
	}

	addr := in.ShippingAddress
	if err := addr.Normalize(); err != nil {
		return nil, err
	}

	lines, err := s.Store.CartLines(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(lines) == 0 {
		return nil, ErrEmptyCart
	}

	items := make([]Item, 0, len(lines))
	for _, l := range lines {
		if !l.Active {
			return nil, &ProductUnavailableError{ProductID: l.ProductID}
		}
		if l.ProductStock <= 0 {
			return nil, &InsufficientStockError{ProductID: l.ProductID, Size: l.Size}
		}
		items = append(items, Item{
			ProductID:  l.ProductID,
			Name:       l.Name,
			Size:       l.Size,
			Color:      l.Color,
			Quantity:   l.Quantity,
			PriceCents: l.PriceCents,
		})
	}

	subtotal := Subtotal(items)

	var applied *AppliedCoupon
	var discount int64
	if in.CouponCode != "" {
		res, err := s.Coupons.Validate(ctx, in.CouponCode, subtotal, userID)
		if err != nil {
			return nil, err
		}
		if !res.Valid {
			return nil, &CouponInvalidError{Reason: res.Message}
		}
		discount = res.DiscountCents
		applied = &AppliedCoupon{
			Code:          res.Coupon.Code,
			Type:          string(res.Coupon.Type),
			Value:         res.Coupon.Value,
			DiscountCents: discount,
		}
	}

	shipping := s.Pricing.ShippingCents(subtotal)
	total := subtotal + shipping - discount

	status := StatusConfirmed
	if method == PaymentRazorpay {
		status = StatusPendingPayment
	}

	order, err := s.Store.CreateFromCart(ctx, Draft{
		ID:            uuid.NewString(),
		OrderID:       NewOrderID(),
		UserID:        userID,
		Items:         items,
		SubtotalCents: subtotal,
		ShippingCents: shipping,
		DiscountCents: discount,
		TotalCents:    total,
		Coupon:        applied,
		Address:       addr,
		PaymentMethod: method,
		Status:        status,
	})
	if err != nil {
		return nil, err
	}

	s.afterStockMove(ctx, order)
	if s.Events != nil {
		s.Events.Emit(EventOrderCreated, order.ID, OrderCreatedPayload{
			OrderID:       order.ID,
			PublicOrderID: order.OrderID,
			UserID:        order.UserID,
			TotalCents:    order.TotalCents,
			ItemCount:     order.TotalItems(),
			PaymentMethod: string(order.Payment.Method),
		})
	}
	return order, nil
}

func (s *Service) Get(ctx context.Context, userID string, admin bool, id string) (*Order, error) {
	o, err := s.Store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !admin && o.UserID != userID {
		return nil, ErrNotOwner
	}
	return o, nil
}

func (s *Service) List(ctx context.Context, userID string) ([]Order, error) {
	return s.Store.ListByUser(ctx, userID)
}

// Cancel releases the order's reservation if the status still allows
// it. Non-admin callers get not-found for other users' orders so
// existence is not leaked.
func (s *Service) Cancel(ctx context.Context, userID string, admin bool, id string) (*Order, error) {
	o, err := s.Store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !admin && o.UserID != userID {
		return nil, ErrOrderNotFound
	}

	order, err := s.Store.Transition(ctx, id, StatusCancelled)
	if err != nil {
		return nil, err
	}

	s.afterStockMove(ctx, order)
	if s.Events != nil {
		reason := ReasonUserCancelled
		if admin {
			reason = ReasonAdminCancelled
		}
		s.Events.Emit(EventOrderCancelled, order.ID, OrderCancelledPayload{OrderID: order.ID, Reason: reason})
	}
	return order, nil
}

// UpdateStatus is the admin path through the transition table.
func (s *Service) UpdateStatus(ctx context.Context, id string, to Status) (*Order, error) {
	if !ValidStatus(to) {
		return nil, &InvalidTransitionError{To: to}
	}
	order, err := s.Store.Transition(ctx, id, to)
	if err != nil {
		return nil, err
	}
	if to == StatusCancelled {
		s.afterStockMove(ctx, order)
		if s.Events != nil {
			s.Events.Emit(EventOrderCancelled, order.ID, OrderCancelledPayload{OrderID: order.ID, Reason: ReasonAdminCancelled})
		}
	} else if s.Cache != nil {
		s.Cache.SetOrderStatus(ctx, order.ID, string(order.Status))
	}
	return order, nil
}

// StartPayment creates the gateway order for an existing pending
// razorpay order. Amounts are already stored in cents, which for INR is
// exactly the paise the gateway wants.
func (s *Service) StartPayment(ctx context.Context, userID string, admin bool, id string) (payments.GatewayOrder, error) {
	o, err := s.Get(ctx, userID, admin, id)
	if err != nil {
		return payments.GatewayOrder{}, err
	}
	if o.Payment.Method != PaymentRazorpay {
		return payments.GatewayOrder{}, ErrWrongPaymentMethod
	}
	if o.Payment.Status == PaymentPaid {
		return payments.GatewayOrder{}, ErrAlreadyPaid
	}

	gw, err := s.Gateway.CreateOrder(ctx, o.TotalCents, "order_"+o.ID)
	if err != nil {
		return payments.GatewayOrder{}, err
	}
	if err := s.Store.SetRazorpayOrder(ctx, o.ID, gw.ID); err != nil {
		return payments.GatewayOrder{}, err
	}
	return gw, nil
}

// VerifyPayment checks the gateway signature and flips payment to paid.
// Inventory is never touched here; the reservation happened at creation.
func (s *Service) VerifyPayment(ctx context.Context, userID string, admin bool, id string, in VerifyInput) (*Order, error) {
	o, err := s.Get(ctx, userID, admin, id)
	if err != nil {
		return nil, err
	}
	if !s.Gateway.VerifySignature(in.RazorpayOrderID, in.RazorpayPaymentID, in.RazorpaySignature) {
		return nil, ErrSignatureMismatch
	}

	order, err := s.Store.MarkPaid(ctx, o.ID, in.RazorpayPaymentID)
	if err != nil {
		return nil, err
	}
	if s.Cache != nil {
		s.Cache.SetOrderStatus(ctx, order.ID, string(order.Status))
	}
	if s.Events != nil {
		s.Events.Emit(EventPaymentCaptured, order.ID, PaymentCapturedPayload{
			OrderID:       order.ID,
			TransactionID: order.Payment.TransactionID,
			AmountCents:   order.TotalCents,
		})
	}
	return order, nil
}

// afterStockMove runs the best-effort post-commit cache effects. A
// failure is logged and never surfaced to the buyer.
func (s *Service) afterStockMove(ctx context.Context, o *Order) {
	if s.Cache == nil {
		return
	}
	if err := s.Cache.InvalidateProducts(ctx); err != nil {
		log.Printf("product cache invalidation failed: %v", err)
	}
	s.Cache.SetOrderStatus(ctx, o.ID, string(o.Status))
}
