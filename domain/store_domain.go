package domain

import (
	"errors"
	"mime/multipart"
	"time"
)

var (
	MessageSuccessRegisterStore    = "店舗を登録しました"
	MessageSuccessGetStores        = "店舗一覧を取得しました"
	MessageSuccessUpdateStore      = "店舗を更新しました"
	MessageSuccessDeleteStore      = "店舗を削除しました"
	MessageSuccessUploadStoreImage = "店舗画像をアップロードしました"

	MessageFailedRegisterStore    = "店舗の登録に失敗しました"
	MessageFailedGetStores        = "店舗の取得に失敗しました"
	MessageFailedUpdateStore      = "店舗の更新に失敗しました"
	MessageFailedDeleteStore      = "店舗の削除に失敗しました"
	MessageFailedUploadStoreImage = "店舗画像のアップロードに失敗しました"

	ErrStoreNotFound           = errors.New("店舗が見つかりません")
	ErrStoreAlreadyExists      = errors.New("このユーザーは既に店舗を登録しています")
	ErrUnauthorizedStoreAccess = errors.New("この店舗を操作する権限がありません")
)

type (
	DayHours struct {
		OpenTime  string `json:"open_time" validate:"omitempty,datetime=15:04"`
		CloseTime string `json:"close_time" validate:"omitempty,datetime=15:04"`
		IsOpen    bool   `json:"is_open"`
	}

	RegisterStoreRequest struct {
		Name          string              `json:"name" validate:"required"`
		Description   string              `json:"description" validate:"max=1000"`
		Address       string              `json:"address" validate:"max=500"`
		PhoneNumber   string              `json:"phone_number"`
		Website       string              `json:"website" validate:"omitempty,url,max=500"`
		BusinessHours map[string]DayHours `json:"business_hours" validate:"omitempty,dive"`
		Categories    []string            `json:"categories"`
	}

	UpdateStoreRequest struct {
		Name          Optional[string]              `json:"name"`
		Description   Optional[string]              `json:"description"`
		Address       Optional[string]              `json:"address"`
		PhoneNumber   Optional[string]              `json:"phone_number"`
		Website       Optional[string]              `json:"website"`
		BusinessHours Optional[map[string]DayHours] `json:"business_hours"`
		Categories    Optional[[]string]            `json:"categories"`
		IsActive      Optional[bool]                `json:"is_active"`
	}

	UploadStoreImageRequest struct {
		Image *multipart.FileHeader `form:"image" validate:"required"`
	}

	StoreResponse struct {
		ID            string              `json:"id"`
		UserID        string              `json:"user_id"`
		Name          string              `json:"name"`
		Description   string              `json:"description"`
		Address       string              `json:"address"`
		ImageURL      string              `json:"image_url,omitempty"`
		PhoneNumber   string              `json:"phone_number"`
		Website       string              `json:"website"`
		BusinessHours map[string]DayHours `json:"business_hours"`
		Categories    []string            `json:"categories"`
		IsActive      bool                `json:"is_active"`
		IsVerified    bool                `json:"is_verified"`
		CreatedAt     time.Time           `json:"created_at"`
	}

	StoreListResponse struct {
		Items      []StoreResponse    `json:"items"`
		Pagination PaginationResponse `json:"pagination"`
	}
)
