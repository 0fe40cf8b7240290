package service

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(req *http.Request) (*http.Response, error) {
	return f(req)
}

func stripeStub(status int, body string, capture *http.Request) *http.Client {
	return &http.Client{
		Transport: roundTripFunc(func(req *http.Request) (*http.Response, error) {
			if capture != nil {
				*capture = *req
			}
			return &http.Response{
				StatusCode: status,
				Body:       io.NopCloser(strings.NewReader(body)),
				Header:     make(http.Header),
			}, nil
		}),
	}
}

func TestCreateCheckoutSession_ReturnsURL(t *testing.T) {
	var captured http.Request
	s := NewBillingService(
		WithStripeCredentials("sk_test_123", "price_123"),
		WithBillingBaseURL("https://ronbun.example"),
		WithBillingHTTPClient(stripeStub(http.StatusOK,
			`{"id":"cs_test_1","url":"https://checkout.stripe.com/pay/cs_test_1"}`,
			&captured)),
	)

	url, err := s.CreateCheckoutSession(context.Background(), "student@example.com", "")
	require.NoError(t, err)
	assert.Equal(t, "https://checkout.stripe.com/pay/cs_test_1", url)
	assert.Equal(t, "Bearer sk_test_123", captured.Header.Get("Authorization"))
	assert.Equal(t, http.MethodPost, captured.Method)
}

func TestCreateCheckoutSession_RequiresKey(t *testing.T) {
	s := NewBillingService()
	_, err := s.CreateCheckoutSession(context.Background(), "student@example.com", "")
	assert.ErrorIs(t, err, ErrStripeNotConfigured)
}

func TestCreateCheckoutSession_RequiresEmail(t *testing.T) {
	s := NewBillingService(WithStripeCredentials("sk_test_123", "price_123"))
	_, err := s.CreateCheckoutSession(context.Background(), "", "")
	assert.Error(t, err)
}

func TestCreateCheckoutSession_StripeError(t *testing.T) {
	s := NewBillingService(
		WithStripeCredentials("sk_test_123", "price_123"),
		WithBillingHTTPClient(stripeStub(http.StatusBadRequest,
			`{"error":{"message":"No such price: price_123"}}`, nil)),
	)

	_, err := s.CreateCheckoutSession(context.Background(), "student@example.com", "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "No such price")
}

func TestVerifyCheckoutSession_Paid(t *testing.T) {
	s := NewBillingService(
		WithStripeCredentials("sk_test_123", "price_123"),
		WithBillingHTTPClient(stripeStub(http.StatusOK,
			`{"id":"cs_test_1","payment_status":"paid","customer_details":{"email":"student@example.com"}}`, nil)),
	)

	email, err := s.VerifyCheckoutSession(context.Background(), "cs_test_1")
	require.NoError(t, err)
	assert.Equal(t, "student@example.com", email)
}

func TestVerifyCheckoutSession_Unpaid(t *testing.T) {
	s := NewBillingService(
		WithStripeCredentials("sk_test_123", "price_123"),
		WithBillingHTTPClient(stripeStub(http.StatusOK,
			`{"id":"cs_test_1","payment_status":"unpaid"}`, nil)),
	)

	_, err := s.VerifyCheckoutSession(context.Background(), "cs_test_1")
	assert.ErrorIs(t, err, ErrPaymentIncomplete)
}

func TestVerifyCheckoutSession_EmailFallbackChain(t *testing.T) {
	// customer_details is empty; the metadata email is the last resort
	s := NewBillingService(
		WithStripeCredentials("sk_test_123", "price_123"),
		WithBillingHTTPClient(stripeStub(http.StatusOK,
			`{"id":"cs_test_1","payment_status":"paid","metadata":{"email":"meta@example.com"}}`, nil)),
	)

	email, err := s.VerifyCheckoutSession(context.Background(), "cs_test_1")
	require.NoError(t, err)
	assert.Equal(t, "meta@example.com", email)
}

func TestVerifyCheckoutSession_NoEmail(t *testing.T) {
	s := NewBillingService(
		WithStripeCredentials("sk_test_123", "price_123"),
		WithBillingHTTPClient(stripeStub(http.StatusOK,
			`{"id":"cs_test_1","payment_status":"paid"}`, nil)),
	)

	_, err := s.VerifyCheckoutSession(context.Background(), "cs_test_1")
	assert.ErrorIs(t, err, ErrNoCheckoutEmail)
}

func TestVerifyCheckoutSession_NetworkError(t *testing.T) {
	s := NewBillingService(
		WithStripeCredentials("sk_test_123", "price_123"),
		WithBillingHTTPClient(&http.Client{
			Transport: roundTripFunc(func(*http.Request) (*http.Response, error) {
				return nil, errors.New("connection refused")
			}),
		}),
	)

	_, err := s.VerifyCheckoutSession(context.Background(), "cs_test_1")
	assert.Error(t, err)
}
