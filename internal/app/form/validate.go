package form

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"unicode"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/ikkim/catalog-admin/internal/app/model"
	"github.com/shopspring/decimal"
)

var (
	couponCodePattern = regexp.MustCompile(`^[A-Z0-9_-]{3,32}$`)
	slugPattern       = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)
	hundred           = decimal.NewFromInt(100)
)

// validate is gin's binding engine, so ShouldBindJSON and the Validate
// functions apply the same `binding` tags
var validate = engine()

func engine() *validator.Validate {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		v = validator.New()
		v.SetTagName("binding")
	}

	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		switch name {
		case "-":
			return ""
		case "":
			return f.Name
		}
		return name
	})
	v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if d, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := d.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})

	mustRegister(v, "notblank", func(fl validator.FieldLevel) bool {
		return !blank(fl.Field().String())
	})
	mustRegister(v, "couponcode", func(fl validator.FieldLevel) bool {
		return couponCodePattern.MatchString(NormalizeCouponCode(fl.Field().String()))
	})
	mustRegister(v, "slug", func(fl validator.FieldLevel) bool {
		return slugPattern.MatchString(fl.Field().String())
	})

	v.RegisterStructValidation(couponRules, CouponForm{})
	v.RegisterStructValidation(productRules, ProductForm{})
	return v
}

func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic(fmt.Sprintf("form: register %s: %v", tag, err))
	}
}

func couponRules(sl validator.StructLevel) {
	f := sl.Current().Interface().(CouponForm)
	if f.DiscountType == model.DiscountPercentage && f.DiscountValue.GreaterThan(hundred) {
		sl.ReportError(f.DiscountValue, "discountValue", "DiscountValue", "percentcap", "100")
	}
	if f.HasUsageLimit && f.UsageLimit != nil && *f.UsageLimit < 1 {
		sl.ReportError(f.UsageLimit, "usageLimit", "UsageLimit", "min", "1")
	}
}

func productRules(sl validator.StructLevel) {
	f := sl.Current().Interface().(ProductForm)
	if f.ComparePrice != nil && !f.ComparePrice.IsZero() && f.ComparePrice.LessThan(f.BasePrice) {
		sl.ReportError(f.ComparePrice, "comparePrice", "ComparePrice", "gtebase", "")
	}
}

// check runs the binding tags of s and collects the failures by field path
func check(s interface{}) FieldErrors {
	errs := FieldErrors{}
	errs.merge(validate.Struct(s), "")
	return errs
}

// checkVar validates a single value, reporting every failure under field
func checkVar(field string, value interface{}, tag string) FieldErrors {
	errs := FieldErrors{}
	errs.merge(validate.Var(value, tag), field)
	return errs
}

// FromBindingError converts the validation failures of a gin bind into field
// errors. ok is false when err is not a validation failure, e.g. malformed JSON.
func FromBindingError(err error) (FieldErrors, bool) {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil, false
	}
	errs := FieldErrors{}
	errs.merge(verrs, "")
	return errs, true
}

func (fe FieldErrors) merge(err error, field string) {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return
	}
	for _, e := range verrs {
		path := field
		if path == "" {
			path = fieldPath(e)
		}
		fe.Add(path, message(e, path))
	}
}

// fieldPath drops the root struct name: "ProductForm.skus[0].stock" -> "skus[0].stock"
func fieldPath(e validator.FieldError) string {
	ns := e.Namespace()
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		return ns[i+1:]
	}
	if ns != "" {
		return ns
	}
	return e.Field()
}

func message(e validator.FieldError, path string) string {
	name := label(e.Field())
	if name == "" {
		name = label(path)
	}

	switch e.Tag() {
	case "required", "notblank", "required_if":
		return name + " is required"
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", name, strings.ReplaceAll(e.Param(), " ", ", "))
	case "min":
		return bound(e, name, "at least")
	case "max":
		return bound(e, name, "at most")
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", name, e.Param())
	case "gte":
		if e.Param() == "0" {
			return name + " cannot be negative"
		}
		return fmt.Sprintf("%s must be at least %s", name, e.Param())
	case "couponcode":
		return "Code must be 3-32 characters of A-Z, 0-9, _ or -"
	case "slug":
		return "Slug may only contain lowercase letters, numbers and hyphens"
	case "http_url":
		return name + " must be a valid http(s) URL"
	case "percentcap":
		return "Percentage discount cannot exceed 100"
	case "gtebase":
		return "Compare price must be at least the base price"
	}
	return name + " is invalid"
}

func bound(e validator.FieldError, name, dir string) string {
	switch e.Kind() {
	case reflect.String:
		return fmt.Sprintf("%s must be %s %s characters", name, dir, e.Param())
	case reflect.Slice, reflect.Array, reflect.Map:
		return fmt.Sprintf("%s must contain %s %s items", name, dir, e.Param())
	}
	return fmt.Sprintf("%s must be %s %s", name, dir, e.Param())
}

// label turns a json field name into words: "discountValue" -> "Discount value"
func label(field string) string {
	if i := strings.LastIndexByte(field, '.'); i >= 0 {
		field = field[i+1:]
	}
	if i := strings.IndexByte(field, '['); i >= 0 {
		field = field[:i]
	}
	var b strings.Builder
	for i, r := range field {
		switch {
		case i == 0:
			b.WriteRune(unicode.ToUpper(r))
		case unicode.IsUpper(r):
			b.WriteByte(' ')
			b.WriteRune(unicode.ToLower(r))
		default:
			b.WriteRune(r)
		}
	}
	out := b.String()
	for word, acronym := range acronyms {
		if strings.HasPrefix(out, word) {
			return acronym + out[len(word):]
		}
	}
	return out
}

var acronyms = map[string]string{"Sku": "SKU", "Ids": "IDs"}
