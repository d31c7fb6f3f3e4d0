package payment

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"
)

var ErrIntentNotFound = errors.New("payment intent not found")

// Gateway confirms intents against the payment provider's HTTP API.
type Gateway struct {
	baseURL string
	secret  string
	client  *http.Client
}

func NewGateway(baseURL, secret string) *Gateway {
	return &Gateway{
		baseURL: baseURL,
		secret:  secret,
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

func (g *Gateway) ConfirmPayment(ctx context.Context, intentID string) (*Confirmation, error) {
	url := fmt.Sprintf("%s/v1/intents/%s/confirm", g.baseURL, intentID)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+g.secret)
	req.Header.Set("Accept", "application/json")

	resp, err := g.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("payment provider unreachable: %w", err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound:
		return nil, ErrIntentNotFound
	default:
		return nil, fmt.Errorf("payment provider returned status %d", resp.StatusCode)
	}

	var conf Confirmation
	if err := json.NewDecoder(resp.Body).Decode(&conf); err != nil {
		return nil, fmt.Errorf("bad payment provider response: %w", err)
	}

	return &conf, nil
}
