package domain

import (
	"errors"
	"time"
)

var (
	MessageFailedBodyRequest    = "リクエストの形式が正しくありません"
	MessageFailedProcessRequest = "リクエストを処理できませんでした"
	MessageFailedGetToken       = "トークンを取得できませんでした"
	MessageFailedTokenInvalid   = "トークンが無効です"
	MesaageUserNotAllowed       = "この操作は許可されていません"
	MessageValidationFailed     = "入力内容に誤りがあります"

	ErrParseUUID      = errors.New("IDの形式が正しくありません")
	ErrUserNotAllowed = errors.New("この操作は許可されていません")
	ErrTokenNotFound  = errors.New("トークンが見つかりません")
	ErrTokenExpired   = errors.New("トークンの有効期限が切れています")
	ErrTokenInvalid   = errors.New("トークンが無効です")
	ErrTokenRevoked   = errors.New("トークンは失効しています")
	ErrForbidden      = errors.New("権限がありません")
	ErrInvalidFile    = errors.New("ファイルが不正です")
)

// Identity is the caller as proven by a verified bearer token.
// It is resolved once by the auth middleware and handed to services explicitly.
type Identity struct {
	UserID    string
	Email     string
	Role      string
	TokenID   string
	ExpiresAt time.Time
}

func (i Identity) HasRole(roles ...string) bool {
	for _, r := range roles {
		if i.Role == r {
			return true
		}
	}
	return false
}

const (
	DefaultPageLimit = 20
	MaxPageLimit     = 100
)

type (
	Pagination struct {
		Page  int
		Limit int
	}

	PaginationResponse struct {
		Page       int   `json:"page"`
		Limit      int   `json:"limit"`
		Total      int64 `json:"total"`
		TotalPages int64 `json:"total_pages"`
	}
)

func NewPagination(page, limit int) Pagination {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = DefaultPageLimit
	}
	if limit > MaxPageLimit {
		limit = MaxPageLimit
	}
	return Pagination{Page: page, Limit: limit}
}

func (p Pagination) Offset() int {
	return (p.Page - 1) * p.Limit
}

func (p Pagination) Response(total int64) PaginationResponse {
	return PaginationResponse{
		Page:       p.Page,
		Limit:      p.Limit,
		Total:      total,
		TotalPages: (total + int64(p.Limit) - 1) / int64(p.Limit),
	}
}
