package domain

import (
	"encoding/json"
	"strings"
	"time"
)

// Product is a read-only catalog entry. Prices are stored in the
// smallest currency unit.
type Product struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	Slug           string    `json:"slug"`
	Description    string    `json:"description"`
	Price          int64     `json:"price"`
	CancelledPrice int64     `json:"cancelled_price,omitempty"`
	Images         []string  `json:"images"`
	Category       string    `json:"category"`
	IsLatest       bool      `json:"is_latest"`
	Materials      string    `json:"materials,omitempty"`
	Packaging      string    `json:"packaging,omitempty"`
	Shipping       string    `json:"shipping,omitempty"`
	ProductInfo    string    `json:"product_info,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// NormalizeImages flattens the catalog's image column into a plain list
// of URLs. Seed data is inconsistent: the column may hold a single URL
// string, a JSON array of URL strings, or a JSON array of objects with a
// "url" key. Anything unparseable normalizes to an empty list so that
// downstream code never branches on image shape again.
func NormalizeImages(raw []byte) []string {
	if len(raw) == 0 {
		return []string{}
	}

	var single string
	if err := json.Unmarshal(raw, &single); err == nil {
		return splitNonEmpty(single)
	}

	var list []string
	if err := json.Unmarshal(raw, &list); err == nil {
		out := make([]string, 0, len(list))
		for _, u := range list {
			if u = strings.TrimSpace(u); u != "" {
				out = append(out, u)
			}
		}
		return out
	}

	var objs []struct {
		URL string `json:"url"`
	}
	if err := json.Unmarshal(raw, &objs); err == nil {
		out := make([]string, 0, len(objs))
		for _, o := range objs {
			if u := strings.TrimSpace(o.URL); u != "" {
				out = append(out, u)
			}
		}
		return out
	}

	return []string{}
}

func splitNonEmpty(s string) []string {
	if s = strings.TrimSpace(s); s == "" {
		return []string{}
	}
	return []string{s}
}
