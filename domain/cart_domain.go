package domain

import (
	"errors"
	"time"
)

var (
	MessageSuccessGetCart        = "カートを取得しました"
	MessageSuccessAddCartItem    = "カートに追加しました"
	MessageSuccessRemoveCartItem = "カートから削除しました"
	MessageSuccessClearCart      = "カートを空にしました"
	MessageSuccessGetOrders      = "注文一覧を取得しました"

	MessageFailedGetCart        = "カートの取得に失敗しました"
	MessageFailedAddCartItem    = "カートへの追加に失敗しました"
	MessageFailedRemoveCartItem = "カートからの削除に失敗しました"
	MessageFailedClearCart      = "カートを空にできませんでした"
	MessageFailedGetOrders      = "注文一覧の取得に失敗しました"

	ErrCartItemNotFound = errors.New("カートの商品が見つかりません")
)

type (
	AddCartItemRequest struct {
		ItemName string `json:"item_name" validate:"required,max=255"`
		Quantity int    `json:"quantity" validate:"required,min=1"`
	}

	CartItemResponse struct {
		ID        string    `json:"id"`
		ItemName  string    `json:"item_name"`
		Quantity  int       `json:"quantity"`
		CreatedAt time.Time `json:"created_at"`
	}

	OrderResponse struct {
		ID        string    `json:"id"`
		Status    string    `json:"status"`
		CreatedAt time.Time `json:"created_at"`
	}
)
