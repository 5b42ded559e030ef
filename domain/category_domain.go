package domain

import "errors"

var (
	MessageSuccessGetCategories  = "カテゴリーを取得しました"
	MessageSuccessCreateCategory = "カテゴリーを作成しました"
	MessageSuccessUpdateCategory = "カテゴリーを更新しました"

	MessageFailedGetCategories  = "カテゴリーの取得に失敗しました"
	MessageFailedCreateCategory = "カテゴリーの作成に失敗しました"
	MessageFailedUpdateCategory = "カテゴリーの更新に失敗しました"

	ErrCategoryNotFound      = errors.New("カテゴリーが見つかりません")
	ErrCategoryAlreadyExists = errors.New("このカテゴリー名は既に使用されています")
)

type (
	CreateCategoryRequest struct {
		Name         string `json:"name" validate:"required,max=100"`
		Description  string `json:"description" validate:"max=500"`
		IconURL      string `json:"icon_url" validate:"omitempty,url,max=500"`
		DisplayOrder int    `json:"display_order" validate:"min=0"`
	}

	UpdateCategoryRequest struct {
		Name         Optional[string] `json:"name"`
		Description  Optional[string] `json:"description"`
		IconURL      Optional[string] `json:"icon_url"`
		DisplayOrder Optional[int]    `json:"display_order"`
		IsActive     Optional[bool]   `json:"is_active"`
	}

	CategoryResponse struct {
		ID           string `json:"id"`
		Name         string `json:"name"`
		Description  string `json:"description"`
		IconURL      string `json:"icon_url,omitempty"`
		DisplayOrder int    `json:"display_order"`
		IsActive     bool   `json:"is_active"`
	}
)
