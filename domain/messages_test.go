package domain

import (
	"testing"
	"unicode"

	"github.com/stretchr/testify/assert"
)

func japanese(s string) bool {
	for _, r := range s {
		if unicode.In(r, unicode.Hiragana, unicode.Katakana, unicode.Han) {
			return true
		}
	}
	return false
}

func TestClientMessagesShareOneLocale(t *testing.T) {
	messages := []string{
		MessageFailedBodyRequest, MessageFailedProcessRequest, MessageFailedGetToken,
		MessageFailedTokenInvalid, MesaageUserNotAllowed, MessageValidationFailed,
		MessageSuccessLogin, MessageSuccessRegister, MessageSuccessSendVerifyEmail,
		MessageSuccessVerifyEmail, MessageFailedLogin, MessageFailedRegister, MessageFailedUpdateProfile,
		MessageSuccessAddFood, MessageSuccessGetFoods, MessageFailedGetFoods, MessageFailedChangeFoodStatus,
		MessageSuccessRegisterStore, MessageFailedGetStores,
		MessageSuccessGetCategories, MessageFailedCreateCategory,
		MessageSuccessGetCart, MessageFailedGetOrders,
		MessageSuccessHealth, MessageFailedHealth,
	}
	for _, m := range messages {
		assert.True(t, japanese(m), m)
	}

	errs := []error{
		ErrParseUUID, ErrUserNotAllowed, ErrTokenNotFound, ErrTokenExpired, ErrTokenInvalid,
		ErrTokenRevoked, ErrForbidden, ErrInvalidFile,
		ErrUserNotFound, ErrInvalidCredentials, ErrEmailAlreadyUsed, ErrInvalidNotification,
		ErrEmailAlreadyVerified, ErrPasswordTooLong,
		ErrFoodNotFound, ErrInvalidPrice, ErrPriceAboveOriginal, ErrInvalidPriceRange, ErrInvalidStatusChange,
		ErrStoreNotFound, ErrStoreAlreadyExists, ErrCategoryNotFound, ErrCategoryAlreadyExists,
		ErrCartItemNotFound,
	}
	for _, err := range errs {
		assert.True(t, japanese(err.Error()), err.Error())
	}
}
