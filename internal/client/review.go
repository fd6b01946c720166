package client

import (
	"context"
	"net/http"
	"strings"

	"github.com/utafrali/EcommerceGo/seeder/internal/domain"
	"github.com/utafrali/EcommerceGo/seeder/pkg/httpclient"
)

const reviewService = "reviews"

type createReviewRequest struct {
	VariantID int64  `json:"variant_id"`
	OrderID   int64  `json:"order_id"`
	Rating    int    `json:"rating"`
	Comment   string `json:"comment"`
}

// ReviewClient submits reviews on behalf of signed-in customers.
type ReviewClient struct {
	baseURL string
	http    httpclient.Doer
}

// NewReviewClient creates a review client rooted at baseURL. Pass a
// circuit-breaker-wrapped doer so a failing API is skipped quickly.
func NewReviewClient(baseURL string, doer httpclient.Doer) *ReviewClient {
	return &ReviewClient{baseURL: strings.TrimRight(baseURL, "/"), http: doer}
}

// Create posts a review. Any non-2xx status is returned as an error.
func (c *ReviewClient) Create(ctx context.Context, token string, rv domain.Review) error {
	return httpclient.DoJSON(ctx, c.http, httpclient.JSONRequest{
		Method: http.MethodPost,
		URL:    c.baseURL + "/reviews",
		Bearer: token,
		Body: createReviewRequest{
			VariantID: rv.VariantID,
			OrderID:   rv.OrderID,
			Rating:    rv.Rating,
			Comment:   rv.Comment,
		},
		Service: reviewService,
	}, nil)
}
