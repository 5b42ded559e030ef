package domain

import (
	"errors"
	"mime/multipart"
	"time"

	"github.com/shopspring/decimal"
)

var (
	MessageSuccessAddFood          = "出品を登録しました"
	MessageSuccessUpdateFood       = "出品を更新しました"
	MessageSuccessDeleteFood       = "出品を削除しました"
	MessageSuccessGetFoods         = "出品一覧を取得しました"
	MessageSuccessUploadFoodImage  = "商品画像をアップロードしました"
	MessageSuccessChangeFoodStatus = "出品状態を更新しました"
	MessageSuccessCountFoods       = "出品数を取得しました"

	MessageFailedAddFood          = "出品の登録に失敗しました"
	MessageFailedUpdateFood       = "出品の更新に失敗しました"
	MessageFailedDeleteFood       = "出品の削除に失敗しました"
	MessageFailedGetFoods         = "出品一覧の取得に失敗しました"
	MessageFailedUploadFoodImage  = "商品画像のアップロードに失敗しました"
	MessageFailedChangeFoodStatus = "出品状態の更新に失敗しました"
	MessageFailedCountFoods       = "出品数の取得に失敗しました"

	ErrFoodNotFound           = errors.New("出品が見つかりません")
	ErrInvalidPrice           = errors.New("価格は0以上で入力してください")
	ErrPriceAboveOriginal     = errors.New("販売価格は定価以下で入力してください")
	ErrInvalidPriceRange      = errors.New("min_price と max_price は両方必須で、min_price は max_price 以下にしてください")
	ErrInvalidQuantity        = errors.New("数量が正しくありません")
	ErrInvalidExpiryDate      = errors.New("賞味期限が正しくありません")
	ErrInvalidFoodStatus      = errors.New("出品状態が正しくありません")
	ErrInvalidStatusChange    = errors.New("この出品状態には変更できません")
	ErrUnauthorizedFoodAccess = errors.New("この出品を操作する権限がありません")
)

type (
	CreateFoodRequest struct {
		CategoryID    string          `json:"category_id" validate:"omitempty,uuid"`
		Name          string          `json:"name" validate:"required"`
		Description   string          `json:"description" validate:"max=1000"`
		OriginalPrice decimal.Decimal `json:"original_price"`
		CurrentPrice  decimal.Decimal `json:"current_price"`
		Quantity      int             `json:"quantity" validate:"min=0"`
		ExpiryDate    time.Time       `json:"expiry_date" validate:"required"`
		Tags          []string        `json:"tags" validate:"omitempty,dive,required,max=64"`
	}

	UpdateFoodRequest struct {
		CategoryID    Optional[string]          `json:"category_id"`
		Name          Optional[string]          `json:"name"`
		Description   Optional[string]          `json:"description"`
		OriginalPrice Optional[decimal.Decimal] `json:"original_price"`
		CurrentPrice  Optional[decimal.Decimal] `json:"current_price"`
		Quantity      Optional[int]             `json:"quantity"`
		ExpiryDate    Optional[time.Time]       `json:"expiry_date"`
		Tags          Optional[[]string]        `json:"tags"`
		IsActive      Optional[bool]            `json:"is_active"`
	}

	ChangeFoodStatusRequest struct {
		Status string `json:"status" validate:"required,oneof=AVAILABLE RESERVED SOLD_OUT EXPIRED"`
	}

	UploadFoodImageRequest struct {
		Image *multipart.FileHeader `form:"image" validate:"required"`
	}

	// FoodFilter combines catalog conditions; nil or empty fields are ignored.
	FoodFilter struct {
		StoreID    string
		CategoryID string
		Status     string
		MinPrice   *decimal.Decimal
		MaxPrice   *decimal.Decimal
		Tag        string
		Keyword    string
	}

	FoodResponse struct {
		ID            string    `json:"id"`
		StoreID       string    `json:"store_id"`
		CategoryID    *string   `json:"category_id"`
		Name          string    `json:"name"`
		Description   string    `json:"description"`
		OriginalPrice string    `json:"original_price"`
		CurrentPrice  string    `json:"current_price"`
		Quantity      int       `json:"quantity"`
		ExpiryDate    time.Time `json:"expiry_date"`
		ImageURL      string    `json:"image_url,omitempty"`
		Status        string    `json:"status"`
		Tags          []string  `json:"tags"`
		PostedAt      time.Time `json:"posted_at"`
		IsActive      bool      `json:"is_active"`
		CreatedAt     time.Time `json:"created_at"`
		UpdatedAt     time.Time `json:"updated_at"`
	}

	FoodListResponse struct {
		Items      []FoodResponse     `json:"items"`
		Pagination PaginationResponse `json:"pagination"`
	}

	FoodCountResponse struct {
		StoreID string `json:"store_id"`
		Count   int64  `json:"count"`
	}

	SweepResult struct {
		Expired int64     `json:"expired"`
		At      time.Time `json:"at"`
	}
)
