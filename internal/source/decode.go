package source

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// CategoryRow is a row of the Categories sheet.
type CategoryRow struct {
	Name string
}

// ColorRow is a row of the Colors sheet.
type ColorRow struct {
	ID   int64
	Name string
}

// ProductRow is a row of the Products sheet.
type ProductRow struct {
	Name         string
	Description  string
	SellingPrice decimal.Decimal
	CategoryID   int64
	Images       []string
	ColorIDs     []int64
}

// Categories decodes category rows. Rows without a name are skipped.
func Categories(records []Record) []CategoryRow {
	out := make([]CategoryRow, 0, len(records))
	for _, r := range records {
		name := r.Get("name")
		if name == "" {
			continue
		}
		out = append(out, CategoryRow{Name: name})
	}
	return out
}

// Colors decodes color rows.
func Colors(records []Record) ([]ColorRow, error) {
	out := make([]ColorRow, 0, len(records))
	for i, r := range records {
		id, err := parseInt(r.Get("id"))
		if err != nil {
			return nil, fmt.Errorf("colors %s: id: %w", r.Origin(i), err)
		}
		out = append(out, ColorRow{ID: id, Name: r.Get("name")})
	}
	return out, nil
}

// Products decodes product rows.
func Products(records []Record) ([]ProductRow, error) {
	out := make([]ProductRow, 0, len(records))
	for i, r := range records {
		price, err := decimal.NewFromString(r.Get("selling_price"))
		if err != nil {
			return nil, fmt.Errorf("products %s: selling_price: %w", r.Origin(i), err)
		}
		categoryID, err := parseInt(r.Get("category_id"))
		if err != nil {
			return nil, fmt.Errorf("products %s: category_id: %w", r.Origin(i), err)
		}
		colorIDs, err := parseIntList(r.Get("color_ids"))
		if err != nil {
			return nil, fmt.Errorf("products %s: color_ids: %w", r.Origin(i), err)
		}
		out = append(out, ProductRow{
			Name:         r.Get("name"),
			Description:  r.Get("description"),
			SellingPrice: price,
			CategoryID:   categoryID,
			Images:       splitList(r.Get("images")),
			ColorIDs:     colorIDs,
		})
	}
	return out, nil
}

// parseInt accepts integral numbers, including the "3.0" form spreadsheets
// produce for numeric cells.
func parseInt(s string) (int64, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("%q is not a number", s)
	}
	if !d.Equal(d.Truncate(0)) {
		return 0, fmt.Errorf("%q is not an integer", s)
	}
	return d.IntPart(), nil
}

func parseIntList(s string) ([]int64, error) {
	parts := splitList(s)
	if len(parts) == 0 {
		return nil, fmt.Errorf("empty list")
	}
	out := make([]int64, 0, len(parts))
	for _, p := range parts {
		v, err := parseInt(p)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

func splitList(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	raw := strings.Split(s, ",")
	out := make([]string, 0, len(raw))
	for _, p := range raw {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
