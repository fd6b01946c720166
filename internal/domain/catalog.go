package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Catalog status constants.
const (
	StatusActive = "active"
)

// DefaultColorHex is used for color names missing from ColorHex.
const DefaultColorHex = "#CCCCCC"

// ColorHex maps the storefront's color names to display hex codes.
var ColorHex = map[string]string{
	"Trắng":      "#FFFFFF",
	"Đen":        "#000000",
	"Xám":        "#6B7280",
	"Xanh Dương": "#1E40AF",
	"Xanh Navy":  "#1E3A8A",
	"Navy":       "#1E3A8A",
	"Be":         "#D4B59E",
	"Kem":        "#F5E6D3",
	"Đỏ":         "#DC2626",
	"Hồng":       "#EC4899",
	"Xanh Lá":    "#059669",
	"Nâu":        "#92400E",
}

// DefaultSizes is the size ladder inserted into an empty sizes table.
var DefaultSizes = []Size{
	{Name: "XS", SortOrder: 1},
	{Name: "S", SortOrder: 2},
	{Name: "M", SortOrder: 3},
	{Name: "L", SortOrder: 4},
	{Name: "XL", SortOrder: 5},
	{Name: "XXL", SortOrder: 6},
}

// Variant stock bounds.
const (
	MinTotalStock    = 30
	MaxTotalStock    = 60
	MaxReservedStock = 2
	ReorderPoint     = 10
)

// costRatio is the share of the selling price recorded as cost price.
var costRatio = decimal.NewFromFloat(0.7)

// Category is a product category keyed by its slug.
type Category struct {
	ID     int64
	Name   string
	Slug   string
	Status string
}

// Size is an entry in the size ladder.
type Size struct {
	ID        int64
	Name      string
	SortOrder int
}

// Color carries the id assigned by the source data.
type Color struct {
	ID      int64
	Name    string
	HexCode string
}

// Product is a catalog product as inserted by the seeder.
type Product struct {
	ID           int64
	CategoryID   int64
	Name         string
	Slug         string
	Description  string
	CostPrice    decimal.Decimal
	SellingPrice decimal.Decimal
	Status       string
	ThumbnailURL *string
	Images       []string
	ColorIDs     []int64
}

// Variant is one (product, size, color) combination.
type Variant struct {
	ID            int64
	ProductID     int64
	SizeID        int64
	ColorID       int64
	SKU           string
	TotalStock    int
	ReservedStock int
	ReorderPoint  int
	Status        string
}

// Image belongs to a variant; exactly the first image of each variant is main.
type Image struct {
	VariantID int64
	URL       string
	IsMain    bool
}

// HexFor returns the hex code for a color name.
func HexFor(name string) string {
	if hex, ok := ColorHex[name]; ok {
		return hex
	}
	return DefaultColorHex
}

// CostPrice returns 70% of the selling price.
func CostPrice(selling decimal.Decimal) decimal.Decimal {
	return selling.Mul(costRatio)
}

// Thumbnail returns the first image or nil when there are none.
func Thumbnail(images []string) *string {
	if len(images) == 0 {
		return nil
	}
	first := images[0]
	return &first
}

// BuildSKU formats the variant SKU SW-{product}-S{size}-C{color}-{idx}.
func BuildSKU(productID, sizeID, colorID int64, idx int) string {
	return fmt.Sprintf("SW-%d-S%d-C%d-%d", productID, sizeID, colorID, idx)
}

// PickSize returns the size every variant is created with: the second size
// by sort order, or the only size when there is one. ok is false when the
// ladder is empty.
func PickSize(sizeIDs []int64) (id int64, ok bool) {
	switch len(sizeIDs) {
	case 0:
		return 0, false
	case 1:
		return sizeIDs[0], true
	default:
		return sizeIDs[1], true
	}
}

// PartitionImages splits images across colors. Each color gets a contiguous
// share of max(1, len(images)/colors) images; trailing images that do not fill
// a share are dropped, and a color whose share is empty falls back to the
// first image. Returns one slice per color.
func PartitionImages(images []string, colors int) [][]string {
	if colors <= 0 {
		return nil
	}

	share := max(1, len(images)/colors)
	parts := make([][]string, colors)
	for i := range parts {
		start := min(i*share, len(images))
		end := min(start+share, len(images))
		part := images[start:end]
		if len(part) == 0 && len(images) > 0 {
			part = images[:1]
		}
		parts[i] = part
	}
	return parts
}

// ImagesFor builds the image rows of one variant from its partition.
func ImagesFor(variantID int64, urls []string) []Image {
	out := make([]Image, 0, len(urls))
	for i, u := range urls {
		out = append(out, Image{VariantID: variantID, URL: u, IsMain: i == 0})
	}
	return out
}
