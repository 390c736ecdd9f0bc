package dto

import (
	"fmt"
	"reflect"
	"sync"
	"unicode"

	"github.com/SscSPs/community_currency/internal/core/domain"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// MaxIdentityLength bounds the length of an identity string.
const MaxIdentityLength = 128

var registerOnce sync.Once

// RegisterBindingValidators adds the "identity" and "int128" tags to gin's
// binding validator. It is safe to call more than once.
func RegisterBindingValidators() error {
	var err error
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			err = fmt.Errorf("unexpected binding validator engine %T", binding.Validator.Engine())
			return
		}
		err = RegisterValidators(v)
	})
	return err
}

// RegisterValidators adds the custom tags to v. Decimal fields are validated
// through their canonical string form.
func RegisterValidators(v *validator.Validate) error {
	v.RegisterCustomTypeFunc(decimalValue, decimal.Decimal{})
	if err := v.RegisterValidation("identity", validateIdentity); err != nil {
		return err
	}
	return v.RegisterValidation("int128", validateInt128)
}

func validateIdentity(fl validator.FieldLevel) bool {
	return IsValidIdentity(fl.Field().String())
}

func decimalValue(field reflect.Value) any {
	if d, ok := field.Interface().(decimal.Decimal); ok {
		return d.String()
	}
	return nil
}

func validateInt128(fl validator.FieldLevel) bool {
	_, err := domain.ParseAmount(fl.Field().String())
	return err == nil
}

// IsValidIdentity reports whether s can name a principal: non-empty, bounded
// and free of whitespace and control characters.
func IsValidIdentity(s string) bool {
	if s == "" || len(s) > MaxIdentityLength {
		return false
	}
	for _, r := range s {
		if unicode.IsSpace(r) || !unicode.IsPrint(r) {
			return false
		}
	}
	return true
}
