package domain

import (
	"errors"
	"mime/multipart"
	"time"
)

const (
	RoleUser  = "USER"
	RoleStore = "STORE"
	RoleAdmin = "ADMIN"
)

var (
	MessageSuccessLogin            = "ログインしました"
	MessageSuccessRegister         = "登録が完了しました"
	MessageSuccessSendVerifyEmail  = "確認メールを送信しました"
	MessageSuccessVerifyEmail      = "メールアドレスを確認しました"
	MessageSuccessUploadAvatar     = "アバターをアップロードしました"
	MessageSuccessUpdateUserActive = "ユーザーの状態を更新しました"
	MessageFailedLogin             = "ログインに失敗しました"
	MessageFailedRegister          = "登録に失敗しました"
	MessageFailedGetUser           = "ユーザー情報の取得に失敗しました"
	MessageFailedUpdateProfile     = "プロフィールの更新に失敗しました"
	MessageFailedLogout            = "ログアウトに失敗しました"
	MessageFailedSendVerifyEmail   = "確認メールの送信に失敗しました"
	MessageFailedVerifyEmail       = "メールアドレスの確認に失敗しました"
	MessageFailedUploadAvatar      = "アバターのアップロードに失敗しました"
	MessageFailedUpdateUserActive  = "ユーザーの状態の更新に失敗しました"

	ErrUserNotFound         = errors.New("ユーザーが見つかりません")
	ErrInvalidCredentials   = errors.New("パスワードが一致しません")
	ErrEmailAlreadyUsed     = errors.New("このメールアドレスは既に使用されています")
	ErrInvalidRole          = errors.New("ユーザー種別が不正です")
	ErrNameRequired         = errors.New("名前は必須です")
	ErrInvalidNotification  = errors.New("通知設定はJSON形式で入力してください")
	ErrEmailAlreadyVerified = errors.New("メールアドレスは既に確認済みです")
	ErrPasswordTooLong      = errors.New("パスワードは72バイト以内で入力してください")
)

type (
	LoginRequest struct {
		Email    string `json:"email" validate:"required,email"`
		Password string `json:"password" validate:"required"`
	}

	RegisterRequest struct {
		Email    string `json:"email" validate:"required,email"`
		Password string `json:"password" validate:"required,min=6,max=72"`
		Name     string `json:"name" validate:"required"`
		Role     string `json:"role" validate:"required"`
	}

	// UpdateProfileRequest applies only the fields present in the body.
	// phone_number, avatar and notification_settings may be sent as null to clear them.
	UpdateProfileRequest struct {
		Name                 Optional[string] `json:"name"`
		Email                Optional[string] `json:"email" validate:"omitempty,email"`
		PhoneNumber          Optional[string] `json:"phoneNumber"`
		Avatar               Optional[string] `json:"avatar"`
		NotificationSettings Optional[string] `json:"notificationSettings"`
	}

	UploadAvatarRequest struct {
		Image *multipart.FileHeader `form:"image" validate:"required"`
	}

	SetUserActiveRequest struct {
		IsActive *bool `json:"is_active" validate:"required"`
	}

	UserResponse struct {
		ID                   string     `json:"id"`
		Email                string     `json:"email"`
		Name                 string     `json:"name"`
		Role                 string     `json:"role"`
		Avatar               *string    `json:"avatar"`
		PhoneNumber          *string    `json:"phoneNumber"`
		NotificationSettings *string    `json:"notificationSettings"`
		IsActive             bool       `json:"isActive"`
		EmailVerified        bool       `json:"emailVerified"`
		LastLogin            *time.Time `json:"lastLogin"`
		CreatedAt            time.Time  `json:"createdAt"`
		UpdatedAt            time.Time  `json:"updatedAt"`
	}

	AuthResponse struct {
		Token   string       `json:"token"`
		User    UserResponse `json:"user"`
		Message string       `json:"message,omitempty"`
	}
)
