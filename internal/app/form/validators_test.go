package form

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/ikkim/catalog-admin/internal/app/model"
	"github.com/ikkim/catalog-admin/internal/catalog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateCoupon(t *testing.T) {
	limit := 0
	tests := []struct {
		name      string
		form      CouponForm
		wantField string
	}{
		{
			name:      "valid percentage",
			form:      CouponForm{Code: " summer10 ", Name: "Summer", DiscountType: model.DiscountPercentage, DiscountValue: decimal.NewFromInt(10)},
			wantField: "",
		},
		{
			name:      "missing code",
			form:      CouponForm{Name: "x", DiscountType: model.DiscountFixed, DiscountValue: decimal.NewFromInt(5)},
			wantField: "code",
		},
		{
			name:      "code with spaces",
			form:      CouponForm{Code: "BAD CODE", Name: "x", DiscountType: model.DiscountFixed, DiscountValue: decimal.NewFromInt(5)},
			wantField: "code",
		},
		{
			name:      "percentage over 100",
			form:      CouponForm{Code: "BIG", Name: "x", DiscountType: model.DiscountPercentage, DiscountValue: decimal.NewFromInt(150)},
			wantField: "discountValue",
		},
		{
			name:      "zero value",
			form:      CouponForm{Code: "ZERO", Name: "x", DiscountType: model.DiscountFixed},
			wantField: "discountValue",
		},
		{
			name:      "unknown type",
			form:      CouponForm{Code: "ODD", Name: "x", DiscountType: "bogo", DiscountValue: decimal.NewFromInt(1)},
			wantField: "discountType",
		},
		{
			name:      "expiry toggle without date",
			form:      CouponForm{Code: "EXP", Name: "x", DiscountType: model.DiscountFixed, DiscountValue: decimal.NewFromInt(1), HasExpiry: true},
			wantField: "expiryDate",
		},
		{
			name:      "usage limit below one",
			form:      CouponForm{Code: "LIM", Name: "x", DiscountType: model.DiscountFixed, DiscountValue: decimal.NewFromInt(1), HasUsageLimit: true, UsageLimit: &limit},
			wantField: "usageLimit",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := ValidateCoupon(tt.form)
			if tt.wantField == "" {
				assert.Empty(t, errs)
				return
			}
			assert.True(t, errs.Has(tt.wantField), "errors: %v", errs)
		})
	}
}

func TestCouponForm_Coupon(t *testing.T) {
	expiry := time.Date(2026, 12, 31, 0, 0, 0, 0, time.UTC)
	limit := 5
	max := decimal.NewFromInt(20)
	f := CouponForm{
		Code: "winter", Name: " Winter ", DiscountType: model.DiscountFixed, DiscountValue: decimal.NewFromInt(5),
		HasExpiry: false, ExpiryDate: &expiry, HasUsageLimit: true, UsageLimit: &limit, MaximumDiscountAmount: &max,
	}

	c := f.Coupon("c1")
	assert.Equal(t, "WINTER", c.Code)
	assert.Equal(t, "Winter", c.Name)
	assert.Nil(t, c.ExpiryDate)
	assert.Equal(t, &limit, c.UsageLimit)
	assert.Nil(t, c.MaximumDiscountAmount)
}

func TestValidateVariant(t *testing.T) {
	errs := ValidateVariant(VariantForm{
		Name:        "Size",
		DisplayType: model.DisplayButton,
		Options:     []model.Option{{Value: "S"}, {Value: "M"}, {Value: " s "}, {Value: ""}},
	})
	assert.Equal(t, "Duplicate of option 1", errs["options[2].value"])
	assert.True(t, errs.Has("options[3].value"))
	assert.False(t, errs.Has("name"))

	errs = ValidateVariant(VariantForm{DisplayType: "carousel"})
	assert.True(t, errs.Has("name"))
	assert.True(t, errs.Has("displayType"))
	assert.True(t, errs.Has("options"))
}

func TestVariantForm_Variant(t *testing.T) {
	v := VariantForm{Name: " Size ", Options: []model.Option{{ID: "o1", Value: " S "}}}.Variant("v1")
	assert.Equal(t, "Size", v.Name)
	assert.Equal(t, model.DisplayDropdown, v.DisplayType)
	assert.True(t, v.IsActive)
	assert.Equal(t, "S", v.Options[0].Value)
}

func TestValidateBrand(t *testing.T) {
	assert.Empty(t, ValidateBrand(TaxonomyForm{Name: "Acme", Website: "https://acme.example"}.Normalize()))

	errs := ValidateBrand(TaxonomyForm{Name: "Acme", Website: "acme.example"}.Normalize())
	assert.True(t, errs.Has("website"))

	errs = ValidateBrand(TaxonomyForm{Name: "Acme", Website: "ftp://acme.example"}.Normalize())
	assert.True(t, errs.Has("website"))
}

func TestValidateCategory(t *testing.T) {
	errs := ValidateCategory(TaxonomyForm{Name: "Shoes", Slug: "Shoes!", Parent: "cat-1"}, "cat-1")
	assert.True(t, errs.Has("slug"))
	assert.True(t, errs.Has("parent"))

	assert.True(t, ValidateTag(TaxonomyForm{}).Has("name"))
	assert.Empty(t, ValidateCollection(TaxonomyForm{Name: "Summer Edit"}.Normalize()))
}

func TestTaxonomyForm_Normalize(t *testing.T) {
	f := TaxonomyForm{Name: "  Summer Sale 2026! "}.Normalize()
	assert.Equal(t, "Summer Sale 2026!", f.Name)
	assert.Equal(t, "summer-sale-2026", f.Slug)

	inactive := false
	c := TaxonomyForm{Name: "Shoes", Parent: "root", IsActive: &inactive}.Category("c1")
	assert.False(t, c.IsActive)
	assert.Equal(t, "root", c.Parent.ID)
}

func TestSlugify(t *testing.T) {
	assert.Equal(t, "men-s-t-shirts", Slugify("Men's T-Shirts"))
	assert.Equal(t, "a-b", Slugify("--a  b--"))
	assert.Equal(t, "", Slugify("!!!"))
}

func TestValidateAdjustment(t *testing.T) {
	assert.Empty(t, ValidateAdjustment(catalog.Adjustment{Direction: catalog.Decrease, Amount: 3, Reason: catalog.ReasonDamaged}))

	errs := ValidateAdjustment(catalog.Adjustment{Direction: "up", Amount: 0})
	assert.True(t, errs.Has("direction"))
	assert.True(t, errs.Has("amount"))
	assert.True(t, errs.Has("reason"))
}

func TestValidateBulkIDs(t *testing.T) {
	assert.True(t, ValidateBulkIDs(nil).Has("ids"))
	assert.True(t, ValidateBulkIDs([]string{"a", " "}).Has("ids"))
	assert.Empty(t, ValidateBulkIDs([]string{"a", "b"}))

	many := make([]string, 101)
	for i := range many {
		many[i] = "id"
	}
	assert.True(t, ValidateBulkIDs(many).Has("ids"))
}

func TestValidationError_Message(t *testing.T) {
	err := FieldErrors{"title": "Title is required", "basePrice": "Price must be greater than 0"}.Err()
	assert.EqualError(t, err, "validation failed: basePrice: Price must be greater than 0; title: Title is required")
}

func TestFieldMessages(t *testing.T) {
	errs := ValidateCoupon(CouponForm{Code: "x", DiscountType: "bogo", HasExpiry: true})
	assert.Equal(t, "Code must be 3-32 characters of A-Z, 0-9, _ or -", errs["code"])
	assert.Equal(t, "Name is required", errs["name"])
	assert.Equal(t, "Discount type must be one of: percentage, fixed", errs["discountType"])
	assert.Equal(t, "Discount value must be greater than 0", errs["discountValue"])
	assert.Equal(t, "Expiry date is required", errs["expiryDate"])

	errs = ValidateCoupon(CouponForm{Code: "BIG", Name: "x", DiscountType: model.DiscountPercentage, DiscountValue: decimal.NewFromInt(150)})
	assert.Equal(t, FieldErrors{"discountValue": "Percentage discount cannot exceed 100"}, errs)

	errs = ValidateAdjustment(catalog.Adjustment{Direction: catalog.Increase, Amount: 0, Note: strings.Repeat("n", 501)})
	assert.Equal(t, "Amount must be at least 1", errs["amount"])
	assert.Equal(t, "Reason is required", errs["reason"])
	assert.Equal(t, "Note must be at most 500 characters", errs["note"])

	errs = ValidateBrand(TaxonomyForm{Name: "Acme", Slug: "Acme Co", Website: "acme.example"})
	assert.Equal(t, "Slug may only contain lowercase letters, numbers and hyphens", errs["slug"])
	assert.Equal(t, "Website must be a valid http(s) URL", errs["website"])

	assert.Equal(t, "IDs must contain at most 100 items", ValidateBulkIDs(make([]string, 101))["ids"])
}

func TestFromBindingError(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodPost, "/coupons",
		strings.NewReader(`{"code":"SUMMER10","name":"Summer","discountType":"percentage","discountValue":150}`))
	c.Request.Header.Set("Content-Type", "application/json")

	var f CouponForm
	err := c.ShouldBindJSON(&f)
	require.Error(t, err)

	errs, ok := FromBindingError(err)
	require.True(t, ok)
	assert.Equal(t, FieldErrors{"discountValue": "Percentage discount cannot exceed 100"}, errs)

	_, ok = FromBindingError(errors.New("unexpected EOF"))
	assert.False(t, ok)
}
