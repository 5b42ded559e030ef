package cart

import (
	"context"
	"errors"
	"strings"

	"foodloss-backend/domain"
	"foodloss-backend/entities"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type (
	CartService interface {
		AddItem(ctx context.Context, identity domain.Identity, req domain.AddCartItemRequest) (domain.CartItemResponse, error)
		ListItems(ctx context.Context, identity domain.Identity) ([]domain.CartItemResponse, error)
		RemoveItem(ctx context.Context, identity domain.Identity, id string) error
		Clear(ctx context.Context, identity domain.Identity) error
		ListOrders(ctx context.Context, identity domain.Identity) ([]domain.OrderResponse, error)
	}

	cartService struct {
		cartRepository CartRepository
	}
)

func NewCartService(cartRepository CartRepository) CartService {
	return &cartService{cartRepository: cartRepository}
}

func toCartItemResponse(item *entities.CartItem) domain.CartItemResponse {
	return domain.CartItemResponse{
		ID:        item.ID.String(),
		ItemName:  item.ItemName,
		Quantity:  item.Quantity,
		CreatedAt: item.CreatedAt,
	}
}

// AddItem merges quantities when the caller already has an item with the same name.
func (s *cartService) AddItem(ctx context.Context, identity domain.Identity, req domain.AddCartItemRequest) (domain.CartItemResponse, error) {
	userID, err := uuid.Parse(identity.UserID)
	if err != nil {
		return domain.CartItemResponse{}, domain.ErrParseUUID
	}
	name := strings.TrimSpace(req.ItemName)
	if name == "" {
		return domain.CartItemResponse{}, domain.ErrNameRequired
	}
	if req.Quantity < 1 {
		return domain.CartItemResponse{}, domain.ErrInvalidQuantity
	}

	item, err := s.cartRepository.FindItemByName(ctx, identity.UserID, name)
	switch {
	case err == nil:
		item.Quantity += req.Quantity
		if err := s.cartRepository.SaveItem(ctx, item); err != nil {
			return domain.CartItemResponse{}, err
		}
	case errors.Is(err, gorm.ErrRecordNotFound):
		item = &entities.CartItem{UserID: userID, ItemName: name, Quantity: req.Quantity}
		if err := s.cartRepository.CreateItem(ctx, item); err != nil {
			return domain.CartItemResponse{}, err
		}
	default:
		return domain.CartItemResponse{}, err
	}
	return toCartItemResponse(item), nil
}

func (s *cartService) ListItems(ctx context.Context, identity domain.Identity) ([]domain.CartItemResponse, error) {
	items, err := s.cartRepository.ListItems(ctx, identity.UserID)
	if err != nil {
		return nil, err
	}
	res := make([]domain.CartItemResponse, 0, len(items))
	for i := range items {
		res = append(res, toCartItemResponse(&items[i]))
	}
	return res, nil
}

func (s *cartService) RemoveItem(ctx context.Context, identity domain.Identity, id string) error {
	if err := s.cartRepository.DeleteItem(ctx, identity.UserID, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrCartItemNotFound
		}
		return err
	}
	return nil
}

func (s *cartService) Clear(ctx context.Context, identity domain.Identity) error {
	_, err := s.cartRepository.Clear(ctx, identity.UserID)
	return err
}

func (s *cartService) ListOrders(ctx context.Context, identity domain.Identity) ([]domain.OrderResponse, error) {
	orders, err := s.cartRepository.ListOrders(ctx, identity.UserID)
	if err != nil {
		return nil, err
	}
	res := make([]domain.OrderResponse, 0, len(orders))
	for _, o := range orders {
		res = append(res, domain.OrderResponse{
			ID:        o.ID.String(),
			Status:    string(o.Status),
			CreatedAt: o.CreatedAt,
		})
	}
	return res, nil
}
