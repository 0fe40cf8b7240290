package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/kimuponpon0312-alt/ronbun/models"
	"github.com/kimuponpon0312-alt/ronbun/repository"
)

const stripeAPIBase = "https://api.stripe.com/v1"

var (
	ErrStripeNotConfigured = errors.New("stripe secret key not configured")
	ErrPaymentIncomplete   = errors.New("checkout session is not paid")
	ErrNoCheckoutEmail     = errors.New("checkout session carries no email")
)

// BillingService drives the Stripe Checkout upgrade flow and records
// verified subscriptions.
type BillingService struct {
	secretKey        string
	priceID          string
	baseURL          string
	httpClient       *http.Client
	subscriptionRepo *repository.SubscriptionRepository
	userRepo         *repository.UserRepository
}

// BillingServiceOption is a functional option for BillingService
type BillingServiceOption func(*BillingService)

// WithStripeCredentials sets the Stripe secret key and price ID
func WithStripeCredentials(secretKey, priceID string) BillingServiceOption {
	return func(s *BillingService) {
		s.secretKey = secretKey
		s.priceID = priceID
	}
}

// WithBillingBaseURL sets the public origin used for redirect URLs
func WithBillingBaseURL(baseURL string) BillingServiceOption {
	return func(s *BillingService) {
		s.baseURL = baseURL
	}
}

// WithBillingSubscriptionRepository sets the subscription repository
func WithBillingSubscriptionRepository(repo *repository.SubscriptionRepository) BillingServiceOption {
	return func(s *BillingService) {
		s.subscriptionRepo = repo
	}
}

// WithBillingUserRepository sets the user repository for plan upgrades
func WithBillingUserRepository(repo *repository.UserRepository) BillingServiceOption {
	return func(s *BillingService) {
		s.userRepo = repo
	}
}

// WithBillingHTTPClient replaces the HTTP client. Used in tests.
func WithBillingHTTPClient(client *http.Client) BillingServiceOption {
	return func(s *BillingService) {
		s.httpClient = client
	}
}

// NewBillingService creates a new billing service
func NewBillingService(opts ...BillingServiceOption) *BillingService {
	s := &BillingService{
		baseURL:    "http://localhost:3000",
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// checkoutSession is the subset of Stripe's session object we read
type checkoutSession struct {
	ID              string `json:"id"`
	URL             string `json:"url"`
	PaymentStatus   string `json:"payment_status"`
	CustomerEmail   string `json:"customer_email"`
	CustomerDetails struct {
		Email string `json:"email"`
	} `json:"customer_details"`
	Metadata map[string]string `json:"metadata"`
}

type stripeError struct {
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
}

// CreateCheckoutSession creates a Stripe Checkout session for the
// subscription upgrade and returns the hosted payment URL.
func (s *BillingService) CreateCheckoutSession(ctx context.Context, email, userID string) (string, error) {
	if s.secretKey == "" {
		return "", ErrStripeNotConfigured
	}
	if email == "" {
		return "", errors.New("email is required for checkout")
	}

	form := url.Values{}
	form.Set("mode", "subscription")
	form.Set("payment_method_types[0]", "card")
	form.Set("line_items[0][price]", s.priceID)
	form.Set("line_items[0][quantity]", "1")
	form.Set("success_url", s.baseURL+"/checkout/success?session_id={CHECKOUT_SESSION_ID}")
	form.Set("cancel_url", s.baseURL+"/")
	form.Set("customer_email", email)
	form.Set("metadata[email]", email)
	if userID != "" {
		form.Set("client_reference_id", userID)
		form.Set("metadata[userId]", userID)
	}

	session, err := s.stripeCall(ctx, http.MethodPost, "/checkout/sessions", form)
	if err != nil {
		return "", err
	}
	if session.URL == "" {
		return "", errors.New("stripe returned no checkout URL")
	}
	return session.URL, nil
}

// VerifyCheckoutSession retrieves a session from Stripe, confirms the
// payment completed, records the subscription as active, and upgrades
// the user's plan when the user record exists.
func (s *BillingService) VerifyCheckoutSession(ctx context.Context, sessionID string) (string, error) {
	if s.secretKey == "" {
		return "", ErrStripeNotConfigured
	}
	if sessionID == "" {
		return "", errors.New("session_id is required")
	}

	session, err := s.stripeCall(ctx, http.MethodGet, "/checkout/sessions/"+url.PathEscape(sessionID), nil)
	if err != nil {
		return "", err
	}

	if session.PaymentStatus != "paid" {
		log.Printf("[VerifyCheckoutSession] payment not complete: %s", session.PaymentStatus)
		return "", ErrPaymentIncomplete
	}

	email := session.CustomerDetails.Email
	if email == "" {
		email = session.CustomerEmail
	}
	if email == "" {
		email = session.Metadata["email"]
	}
	if email == "" {
		return "", ErrNoCheckoutEmail
	}

	if s.subscriptionRepo != nil {
		sub := &models.Subscription{
			Email:           email,
			StripeSessionID: session.ID,
			Status:          models.SubscriptionActive,
		}
		if err := s.subscriptionRepo.Upsert(ctx, sub); err != nil {
			return "", fmt.Errorf("failed to record subscription: %w", err)
		}
	}

	if s.userRepo != nil {
		if err := s.userRepo.UpdatePlan(ctx, email, models.PlanPro); err != nil {
			// The subscription row is authoritative; a missing user
			// record only loses the cosmetic plan label
			log.Printf("[VerifyCheckoutSession] failed to update plan for %s: %v", email, err)
		}
	}

	return email, nil
}

// stripeCall issues one authenticated request against the Stripe API
func (s *BillingService) stripeCall(ctx context.Context, method, path string, form url.Values) (*checkoutSession, error) {
	var body io.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	}

	req, err := http.NewRequestWithContext(ctx, method, stripeAPIBase+path, body)
	if err != nil {
		return nil, fmt.Errorf("failed to build stripe request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+s.secretKey)
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("stripe request failed: %w", err)
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read stripe response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var apiErr stripeError
		if err := json.Unmarshal(bodyBytes, &apiErr); err == nil && apiErr.Error.Message != "" {
			return nil, fmt.Errorf("stripe error: %s", apiErr.Error.Message)
		}
		return nil, fmt.Errorf("stripe error: status %d", resp.StatusCode)
	}

	var session checkoutSession
	if err := json.Unmarshal(bodyBytes, &session); err != nil {
		return nil, fmt.Errorf("failed to decode stripe response: %w", err)
	}
	return &session, nil
}
