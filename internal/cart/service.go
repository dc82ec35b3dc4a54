package cart

import (
	"context"
	"errors"

	"github.com/Deoshabh/weBazaar-sub000/internal/catalog"
	"github.com/Deoshabh/weBazaar-sub000/internal/orders"
)

type Catalog interface {
	Get(ctx context.Context, id string) (*catalog.Product, error)
	SizeStock(ctx context.Context, productID, size string) (int, bool, error)
}

type Store interface {
	Items(ctx context.Context, userID string) ([]Item, error)
	Quantity(ctx context.Context, userID, productID, size, color string) (int, error)
	Add(ctx context.Context, userID, productID, size, color string, qty int) error
	SetQuantity(ctx context.Context, userID, productID, size string, qty int) (bool, error)
	Remove(ctx context.Context, userID, productID, size string) error
	Clear(ctx context.Context, userID string) error
}

// Service validates cart mutations against live inventory. These checks
// are advisory UX; the checkout transaction re-checks with conditional
// updates and is the authority.
type Service struct {
	Store   Store
	Catalog Catalog
}

func (s *Service) Get(ctx context.Context, userID string) (Summary, error) {
	items, err := s.Store.Items(ctx, userID)
	if err != nil {
		return Summary{}, err
	}
	return Summarize(items), nil
}

func (s *Service) Add(ctx context.Context, userID, productID, size, color string, qty int) (Summary, error) {
	if qty < 1 {
		return Summary{}, ErrBadQuantity
	}
	p, err := s.Catalog.Get(ctx, productID)
	if errors.Is(err, catalog.ErrNotFound) {
		return Summary{}, &orders.ProductUnavailableError{ProductID: productID}
	}
	if err != nil {
		return Summary{}, err
	}
	if !p.IsActive {
		return Summary{}, &orders.ProductUnavailableError{ProductID: productID}
	}

	stock, exists, err := s.Catalog.SizeStock(ctx, productID, size)
	if err != nil {
		return Summary{}, err
	}
	if !exists {
		return Summary{}, &SizeUnavailableError{Size: size}
	}

	existing, err := s.Store.Quantity(ctx, userID, productID, size, color)
	if err != nil {
		return Summary{}, err
	}
	if stock < existing+qty {
		return Summary{}, &orders.InsufficientStockError{ProductID: productID, Size: size}
	}

	if err := s.Store.Add(ctx, userID, productID, size, color, qty); err != nil {
		return Summary{}, err
	}
	return s.Get(ctx, userID)
}

// SetQuantity replaces a line's quantity; zero removes the line.
func (s *Service) SetQuantity(ctx context.Context, userID, productID, size string, qty int) (Summary, error) {
	if qty < 0 {
		return Summary{}, ErrBadQuantity
	}
	if qty == 0 {
		if err := s.Store.Remove(ctx, userID, productID, size); err != nil {
			return Summary{}, err
		}
		return s.Get(ctx, userID)
	}

	stock, exists, err := s.Catalog.SizeStock(ctx, productID, size)
	if err != nil {
		return Summary{}, err
	}
	if !exists {
		return Summary{}, &SizeUnavailableError{Size: size}
	}
	if stock < qty {
		return Summary{}, &orders.InsufficientStockError{ProductID: productID, Size: size}
	}

	updated, err := s.Store.SetQuantity(ctx, userID, productID, size, qty)
	if err != nil {
		return Summary{}, err
	}
	if !updated {
		return Summary{}, ErrItemNotFound
	}
	return s.Get(ctx, userID)
}

func (s *Service) Remove(ctx context.Context, userID, productID, size string) (Summary, error) {
	if err := s.Store.Remove(ctx, userID, productID, size); err != nil {
		return Summary{}, err
	}
	return s.Get(ctx, userID)
}

func (s *Service) Clear(ctx context.Context, userID string) (Summary, error) {
	if err := s.Store.Clear(ctx, userID); err != nil {
		return Summary{}, err
	}
	return s.Get(ctx, userID)
}
