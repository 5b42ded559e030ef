package utils

import (
	"errors"
	"reflect"
	"strings"

	"foodloss-backend/domain"

	"github.com/go-playground/locales/ja"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	jaTranslations "github.com/go-playground/validator/v10/translations/ja"
)

var (
	Validate   *validator.Validate
	Translator ut.Translator
)

// fieldMessages override the generic translations for the account forms.
var fieldMessages = map[string]string{
	"email.required":    "メールアドレスは必須です",
	"email.email":       "有効なメールアドレスを入力してください",
	"password.required": "パスワードは必須です",
	"password.min":      "パスワードは6文字以上で入力してください",
	"password.max":      "パスワードは72バイト以内で入力してください",
	"name.required":     "名前は必須です",
	"role.required":     "ユーザー種別は必須です",
}

func InitValidator() {
	if Validate != nil {
		return
	}
	v := validator.New()

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})

	// Optional fields validate as their inner value; absent or null reads as empty.
	v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if o, ok := field.Interface().(domain.Optional[string]); ok && o.Set() {
			return o.Value
		}
		return ""
	}, domain.Optional[string]{})

	jaLocale := ja.New()
	uni := ut.New(jaLocale, jaLocale)
	trans, _ := uni.GetTranslator("ja")
	if err := jaTranslations.RegisterDefaultTranslations(v, trans); err != nil {
		panic(err)
	}

	Validate = v
	Translator = trans
}

// ValidationMessages turns validator errors into field -> Japanese message.
// It returns nil for errors that did not come from the validator.
func ValidationMessages(err error) map[string]string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil
	}
	out := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		key := fe.Field() + "." + fe.Tag()
		if msg, ok := fieldMessages[key]; ok {
			out[fe.Field()] = msg
			continue
		}
		if Translator != nil {
			out[fe.Field()] = fe.Translate(Translator)
		} else {
			out[fe.Field()] = fe.Error()
		}
	}
	return out
}
