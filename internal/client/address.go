package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/utafrali/EcommerceGo/seeder/internal/domain"
	"github.com/utafrali/EcommerceGo/seeder/pkg/httpclient"
)

const addressService = "address"

// nameKeys are probed in order for a region's display name. Different
// deployments of the address service disagree on the field.
var nameKeys = []string{"full_name", "name", "fullName", "province_name", "provinceName"}

// AddressClient reads the administrative-division directory.
type AddressClient struct {
	baseURL string
	http    httpclient.Doer
}

// NewAddressClient creates an address client rooted at baseURL.
func NewAddressClient(baseURL string, doer httpclient.Doer) *AddressClient {
	return &AddressClient{baseURL: strings.TrimRight(baseURL, "/"), http: doer}
}

// Provinces lists every province.
func (c *AddressClient) Provinces(ctx context.Context) ([]domain.Region, error) {
	return c.regions(ctx, "/api/v1/address/provinces", 0)
}

// Districts lists the districts of a province.
func (c *AddressClient) Districts(ctx context.Context, provinceCode int64) ([]domain.Region, error) {
	return c.regions(ctx, "/api/v1/address/districts", provinceCode)
}

// Wards lists the wards of a province.
func (c *AddressClient) Wards(ctx context.Context, provinceCode int64) ([]domain.Region, error) {
	return c.regions(ctx, "/api/v1/address/wards", provinceCode)
}

func (c *AddressClient) regions(ctx context.Context, path string, provinceCode int64) ([]domain.Region, error) {
	u := c.baseURL + path
	if provinceCode != 0 {
		u += "?" + url.Values{"province_code": {strconv.FormatInt(provinceCode, 10)}}.Encode()
	}

	var raw json.RawMessage
	if err := httpclient.DoJSON(ctx, c.http, httpclient.JSONRequest{
		Method:  http.MethodGet,
		URL:     u,
		Service: addressService,
	}, &raw); err != nil {
		return nil, err
	}
	return decodeRegions(raw)
}

// decodeRegions accepts a bare array or a {"data": [...]} envelope.
func decodeRegions(raw json.RawMessage) ([]domain.Region, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) > 0 && raw[0] == '{' {
		var env struct {
			Data json.RawMessage `json:"data"`
		}
		if err := json.Unmarshal(raw, &env); err != nil {
			return nil, fmt.Errorf("decode %s envelope: %w", addressService, err)
		}
		raw = bytes.TrimSpace(env.Data)
	}
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil, nil
	}

	var items []map[string]any
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, fmt.Errorf("decode %s list: %w", addressService, err)
	}

	regions := make([]domain.Region, 0, len(items))
	for _, it := range items {
		regions = append(regions, domain.Region{Code: regionCode(it["code"]), Name: displayName(it)})
	}
	return regions, nil
}

func displayName(item map[string]any) string {
	for _, k := range nameKeys {
		if s, ok := item[k].(string); ok && s != "" {
			return s
		}
	}
	return ""
}

func regionCode(v any) int64 {
	switch c := v.(type) {
	case float64:
		return int64(c)
	case string:
		n, _ := strconv.ParseInt(c, 10, 64)
		return n
	default:
		return 0
	}
}
