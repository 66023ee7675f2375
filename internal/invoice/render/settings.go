package render

import (
	"context"
	"log"

	"tillfront/internal/model"
)

// DefaultShopSettings is the fixed fallback identity used when the
// settings endpoint is unreachable. Rendering never blocks on missing
// shop metadata.
var DefaultShopSettings = model.ShopSettings{
	Name:    "Retail Store",
	Address: "123 Main Street",
	Phone:   "000-000-0000",
	TaxID:   "N/A",
}

// SettingsGetter is the shop-settings side of the API client.
type SettingsGetter interface {
	GetShopSettings(ctx context.Context) (model.ShopSettings, error)
}

// LoadShopSettings fetches the shop identity, substituting the default
// on any failure.
func LoadShopSettings(ctx context.Context, g SettingsGetter) model.ShopSettings {
	s, err := g.GetShopSettings(ctx)
	if err != nil {
		log.Printf("render: shop settings unavailable, using default: %v", err)
		return DefaultShopSettings
	}
	if s.Name == "" {
		return DefaultShopSettings
	}
	return s
}
