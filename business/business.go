// Package business holds the two one-per-business documents the dashboard
// manages: the profile and the visual theme. Both go through the singleton
// controller (fetch/update, no pagination).
package business

import (
	"context"
	"io"

	"github.com/jrsteele09/loyalty-admin/gateway"
	"github.com/jrsteele09/loyalty-admin/listctl"
	"github.com/jrsteele09/loyalty-admin/notify"
	"github.com/jrsteele09/loyalty-admin/resource"
)

const (
	ProfilePath = "/api/business"
	ThemePath   = "/api/business/theme"
	LogoPath    = "/api/business/logo"
)

// Profile is the business's public-facing details.
type Profile struct {
	ID      string `json:"id,omitempty"`
	Name    string `json:"name"`
	Email   string `json:"email,omitempty"`
	Phone   string `json:"phone,omitempty"`
	Address string `json:"address,omitempty"`
	LogoURL string `json:"logoUrl,omitempty"` // Set by the backend after an upload
}

// Theme is the dashboard's visual palette.
type Theme struct {
	PrimaryColor    string `json:"primaryColor"`
	SecondaryColor  string `json:"secondaryColor"`
	AccentColor     string `json:"accentColor,omitempty"`
	BackgroundColor string `json:"backgroundColor,omitempty"`
	TextColor       string `json:"textColor,omitempty"`
}

func NewProfileController(gw *gateway.Client, gate listctl.Gate, notices *notify.Channel) (*listctl.SingletonController[Profile], error) {
	endpoints := resource.NewSingleton[Profile](gw, ProfilePath).Endpoints()
	return listctl.NewSingleton(endpoints, gate, notices,
		listctl.WithSingletonNoun[Profile]("Business profile"))
}

func NewThemeController(gw *gateway.Client, gate listctl.Gate, notices *notify.Channel) (*listctl.SingletonController[Theme], error) {
	endpoints := resource.NewSingleton[Theme](gw, ThemePath).Endpoints()
	return listctl.NewSingleton(endpoints, gate, notices,
		listctl.WithSingletonNoun[Theme]("Theme"))
}

// UploadLogo sends the logo file to the backend, which owns the storage and
// responds with the stored URL on the refetched profile.
func UploadLogo(ctx context.Context, gw *gateway.Client, filename, contentType string, data io.Reader) error {
	_, err := gw.Upload(ctx, LogoPath, "logo", filename, contentType, data)
	return err
}
