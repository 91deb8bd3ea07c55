package services

import (
	"errors"
	"strconv"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// maxbytes=N bounds the UTF-8 length; bcrypt rejects passwords over 72 bytes
	v.RegisterValidation("maxbytes", func(fl validator.FieldLevel) bool {
		limit, err := strconv.Atoi(fl.Param())
		if err != nil {
			return false
		}
		return len(fl.Field().String()) <= limit
	})
	return v
}

// fieldMessages maps "Struct.Field.tag" to the message shown to the user
var fieldMessages = map[string]string{
	"SignupRequest.Name.required":           "Tüm alanlar gereklidir",
	"SignupRequest.Email.required":          "Tüm alanlar gereklidir",
	"SignupRequest.Password.required":       "Tüm alanlar gereklidir",
	"SignupRequest.Email.email":             "Geçerli bir e-posta adresi giriniz",
	"SignupRequest.Password.min":            "Şifre en az 8 karakter olmalıdır",
	"SignupRequest.Password.maxbytes":       MsgPasswordTooLong,
	"SignupRequest.ConfirmPassword.eqfield": "Şifreler eşleşmiyor",
	"SignupRequest.Bio.max":                 "Bio maksimum 500 karakter olmalıdır",
	"SigninRequest.Email.required":          MsgLoginRequired,
	"SigninRequest.Password.required":       MsgLoginRequired,

	"ChangePasswordRequest.CurrentPassword.required": "Tüm şifre alanları gereklidir",
	"ChangePasswordRequest.NewPassword.required":     "Tüm şifre alanları gereklidir",
	"ChangePasswordRequest.ConfirmPassword.required": "Tüm şifre alanları gereklidir",
	"ChangePasswordRequest.NewPassword.min":          "Yeni şifre en az 8 karakter olmalıdır",
	"ChangePasswordRequest.NewPassword.maxbytes":     MsgPasswordTooLong,
	"ChangePasswordRequest.ConfirmPassword.eqfield":  "Yeni şifreler eşleşmiyor",

	"ProfileUpdateRequest.Name.min":        "Ad en az 2 karakter olmalıdır",
	"ProfileUpdateRequest.Bio.max":         "Bio maksimum 500 karakter olmalıdır",
	"ProfileUpdateRequest.ProfileLink.max": "Profil linki en fazla 64 karakter olabilir",

	"ConnectionRequest.ReceiverID.required":     MsgUserNotFound,
	"ConnectionRequest.Message.max":             "Bağlantı mesajı en fazla 300 karakter olabilir",
	"ConnectionResponseRequest.Action.required": MsgInvalidResponse,
	"ConnectionResponseRequest.Action.oneof":    MsgInvalidResponse,

	"SendMessageRequest.Content.required":       MsgMessageRequired,
	"SendMessageRequest.Content.max":            MsgMessageTooLong,
	"NotificationUpdateRequest.Action.required": MsgInvalidNotificationOp,
	"NotificationUpdateRequest.Action.oneof":    MsgInvalidNotificationOp,
}

// validateStruct runs the struct tags and reports the first failure as a validation error
func validateStruct(in interface{}) error {
	err := validate.Struct(in)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return internalError(err)
	}

	first := fieldErrs[0]
	if msg, ok := fieldMessages[first.StructNamespace()+"."+first.Tag()]; ok {
		return validationError(msg)
	}
	return validationError(MsgInvalidInput)
}
