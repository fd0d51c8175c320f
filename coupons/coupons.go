package coupons

import (
	"time"

	"github.com/jrsteele09/loyalty-admin/formctl"
	"github.com/jrsteele09/loyalty-admin/gateway"
	"github.com/jrsteele09/loyalty-admin/internal/utils"
	"github.com/jrsteele09/loyalty-admin/listctl"
	"github.com/jrsteele09/loyalty-admin/notify"
	"github.com/jrsteele09/loyalty-admin/query"
	"github.com/jrsteele09/loyalty-admin/resource"
)

const Path = "/api/coupons"

// DiscountType determines how a coupon's value is applied.
type DiscountType string

const (
	Percentage DiscountType = "percentage"
	Fixed      DiscountType = "fixed"
)

// Coupon is a discount code with usage limits, expiration, and an
// activation state.
type Coupon struct {
	ID            string       `json:"id,omitempty"`
	Code          string       `json:"code"`                // Redemption code shown to customers
	Description   string       `json:"description,omitempty"`
	DiscountType  DiscountType `json:"discountType"`
	DiscountValue float64      `json:"discountValue"`       // Percent or fixed amount per DiscountType
	UsageLimit    int          `json:"usageLimit"`          // 0 means unlimited
	UsedCount     int          `json:"usedCount,omitempty"` // Server-maintained
	ExpiresAt     *time.Time   `json:"expiresAt,omitempty"`
	Active        bool         `json:"active"`
}

// Exhausted reports whether the coupon has hit its usage limit.
func (c Coupon) Exhausted() bool {
	return c.UsageLimit > 0 && c.UsedCount >= c.UsageLimit
}

// Expired reports whether the coupon is past its expiry at the given time.
func (c Coupon) Expired(now time.Time) bool {
	return c.ExpiresAt != nil && c.ExpiresAt.Before(now)
}

func NewResource(gw *gateway.Client) resource.Resource[Coupon] {
	return resource.New[Coupon](gw, Path)
}

// NewController builds the coupon list controller over the standard CRUD
// surface, toggle and bulk activation included.
func NewController(gw *gateway.Client, gate listctl.Gate, notices *notify.Channel, pageSize int) (*listctl.Controller[Coupon], error) {
	return listctl.New(NewResource(gw).Endpoints(), gate, notices, query.NewState(pageSize),
		listctl.WithNoun[Coupon]("Coupon"))
}

// Template drives the coupon create/edit form.
func Template() formctl.Template[Coupon] {
	return formctl.Template[Coupon]{
		Empty: func() Coupon {
			return Coupon{DiscountType: Percentage, Active: true}
		},
		ID: func(c Coupon) string { return c.ID },
		Fields: func(c Coupon) map[string]string {
			fields := map[string]string{
				"code":         c.Code,
				"description":  c.Description,
				"discountType": string(c.DiscountType),
			}
			if expires := utils.Value(c.ExpiresAt); !expires.IsZero() {
				fields["expiresAt"] = expires.Format(time.RFC3339)
			}
			return fields
		},
		Apply: func(c *Coupon, name, value string) error {
			switch name {
			case "code":
				c.Code = value
			case "description":
				c.Description = value
			case "discountType":
				c.DiscountType = DiscountType(value)
			case "discountValue":
				c.DiscountValue = utils.ToFloat(value)
			case "usageLimit":
				c.UsageLimit = utils.ToInt(value)
			case "active":
				c.Active = utils.ToBool(value)
			case "expiresAt":
				if t, err := time.Parse(time.RFC3339, value); err == nil {
					c.ExpiresAt = utils.Ptr(t)
				} else {
					c.ExpiresAt = nil
				}
			}
			return nil
		},
		Required: []string{"code", "discountType"},
	}
}
