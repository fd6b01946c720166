package client

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/utafrali/EcommerceGo/seeder/internal/domain"
	apperrors "github.com/utafrali/EcommerceGo/seeder/pkg/errors"
	"github.com/utafrali/EcommerceGo/seeder/pkg/httpclient"
)

func newDoer() *httpclient.Client {
	return httpclient.New(httpclient.Config{Timeout: 2 * time.Second, MaxConnsPerHost: 2, UserAgent: "seeder-test"})
}

// ─── Auth ───────────────────────────────────────────────────────────────────

func TestAuthClient_AdminLogin(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/v1/admin/auth/login", r.URL.Path)
		var body credentials
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, credentials{Email: "admin@shop.vn", Password: "s3cret"}, body)

		w.WriteHeader(http.StatusCreated)
		_, _ = io.WriteString(w, `{"access_token":"admin-token","token_type":"bearer"}`)
	}))
	defer srv.Close()

	token, err := NewAuthClient(srv.URL+"/", newDoer()).AdminLogin(context.Background(), "admin@shop.vn", "s3cret")
	require.NoError(t, err)
	assert.Equal(t, "admin-token", token)
}

func TestAuthClient_CustomerLogin_Rejected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/auth/login", r.URL.Path)
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = io.WriteString(w, `{"message":"Invalid credentials","error":"Unauthorized"}`)
	}))
	defer srv.Close()

	_, err := NewAuthClient(srv.URL, newDoer()).CustomerLogin(context.Background(), "an@example.com", "password123")
	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrUnauthorized)
}

func TestAuthClient_MissingToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"user":{"id":1}}`)
	}))
	defer srv.Close()

	_, err := NewAuthClient(srv.URL, newDoer()).CustomerLogin(context.Background(), "an@example.com", "password123")
	assert.ErrorIs(t, err, ErrNoToken)
}

// ─── Address ────────────────────────────────────────────────────────────────

func TestAddressClient_Provinces(t *testing.T) {
	tests := []struct {
		name string
		body string
		want []domain.Region
	}{
		{
			name: "bare array with full_name",
			body: `[{"code":1,"full_name":"Thành phố Hà Nội","name":"Hà Nội"},{"code":79,"full_name":"Thành phố Hồ Chí Minh"}]`,
			want: []domain.Region{{Code: 1, Name: "Thành phố Hà Nội"}, {Code: 79, Name: "Thành phố Hồ Chí Minh"}},
		},
		{
			name: "data envelope with camelCase names",
			body: `{"data":[{"code":"48","fullName":"Đà Nẵng"},{"code":31,"provinceName":"Hải Phòng"}]}`,
			want: []domain.Region{{Code: 48, Name: "Đà Nẵng"}, {Code: 31, Name: "Hải Phòng"}},
		},
		{
			name: "no recognised name",
			body: `[{"code":92,"label":"Cần Thơ"}]`,
			want: []domain.Region{{Code: 92, Name: ""}},
		},
		{
			name: "empty envelope",
			body: `{"data":null}`,
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "/api/v1/address/provinces", r.URL.Path)
				_, _ = io.WriteString(w, tt.body)
			}))
			defer srv.Close()

			got, err := NewAddressClient(srv.URL, newDoer()).Provinces(context.Background())
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestAddressClient_DistrictsAndWards(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "79", r.URL.Query().Get("province_code"))
		switch r.URL.Path {
		case "/api/v1/address/districts":
			_, _ = io.WriteString(w, `[{"code":760,"name":"Quận 1"}]`)
		case "/api/v1/address/wards":
			_, _ = io.WriteString(w, `[{"code":26734,"name":"Phường Bến Nghé"}]`)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	c := NewAddressClient(srv.URL, newDoer())
	districts, err := c.Districts(context.Background(), 79)
	require.NoError(t, err)
	assert.Equal(t, []domain.Region{{Code: 760, Name: "Quận 1"}}, districts)

	wards, err := c.Wards(context.Background(), 79)
	require.NoError(t, err)
	assert.Equal(t, []domain.Region{{Code: 26734, Name: "Phường Bến Nghé"}}, wards)
}

func TestAddressClient_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, err := NewAddressClient(srv.URL, newDoer()).Provinces(context.Background())
	assert.ErrorIs(t, err, apperrors.ErrServiceUnavail)
}

// ─── Reviews ────────────────────────────────────────────────────────────────

func TestReviewClient_Create(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/reviews", r.URL.Path)
		assert.Equal(t, "Bearer cust-token", r.Header.Get("Authorization"))

		var body createReviewRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, createReviewRequest{VariantID: 10, OrderID: 55, Rating: 4, Comment: "Ổn"}, body)
		w.WriteHeader(http.StatusCreated)
	}))
	defer srv.Close()

	err := NewReviewClient(srv.URL, newDoer()).Create(context.Background(), "cust-token",
		domain.Review{VariantID: 10, OrderID: 55, Rating: 4, Comment: "Ổn", CustomerID: 1})
	require.NoError(t, err)
}

func TestReviewClient_CreateRejected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		_, _ = io.WriteString(w, `{"error":{"code":"REVIEW_EXISTS","message":"already reviewed"}}`)
	}))
	defer srv.Close()

	err := NewReviewClient(srv.URL, newDoer()).Create(context.Background(), "t", domain.Review{})
	require.Error(t, err)

	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, "REVIEW_EXISTS", appErr.Code)
	assert.Equal(t, http.StatusConflict, appErr.Status)
}

func TestReviewClient_BreakerOpensOnServerErrors(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	cfg := httpclient.DefaultCircuitBreakerConfig("reviews-test")
	cfg.MinRequests = 2
	cb := httpclient.NewCircuitBreakerClient(newDoer(), cfg, slog.New(slog.NewTextHandler(io.Discard, nil)))
	c := NewReviewClient(srv.URL, cb)

	for range 2 {
		require.Error(t, c.Create(context.Background(), "t", domain.Review{}))
	}
	err := c.Create(context.Background(), "t", domain.Review{})
	assert.ErrorIs(t, err, httpclient.ErrCircuitOpen)
	assert.Equal(t, 2, calls)
}
