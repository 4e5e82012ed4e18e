package lookup

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"FitTrack/internal/model"
)

// Credential is one app-id/app-key pair for the nutrition API.
type Credential struct {
	AppID  string
	AppKey string
}

// Client talks to the Nutritionix track API. Credentials are an ordered
// list: a request that comes back 401 or 429 is retried with the next
// pair, so a quota-exhausted key falls through to the spare.
type Client struct {
	BaseURL     string
	Credentials []Credential
	Client      *http.Client
}

// NewClient creates a client with the given credential order.
func NewClient(baseURL string, creds []Credential) *Client {
	return &Client{
		BaseURL:     baseURL,
		Credentials: creds,
		Client:      &http.Client{Timeout: 30 * time.Second},
	}
}

// quotaStatus reports whether a response status means "try the next
// credential pair" rather than "fail".
func quotaStatus(code int) bool {
	return code == http.StatusUnauthorized || code == http.StatusTooManyRequests
}

func (c *Client) do(ctx context.Context, method, path string, payload []byte) ([]byte, error) {
	if len(c.Credentials) == 0 {
		return nil, fmt.Errorf("nutrition lookup: no credentials configured")
	}

	var lastErr error
	for i, cred := range c.Credentials {
		var bodyReader io.Reader
		if payload != nil {
			bodyReader = bytes.NewReader(payload)
		}
		req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, bodyReader)
		if err != nil {
			return nil, fmt.Errorf("create request: %w", err)
		}
		req.Header.Set("x-app-id", cred.AppID)
		req.Header.Set("x-app-key", cred.AppKey)
		req.Header.Set("Content-Type", "application/json")

		resp, err := c.Client.Do(req)
		if err != nil {
			return nil, fmt.Errorf("nutrition lookup %s: %w", path, err)
		}
		body, err := io.ReadAll(resp.Body)
		resp.Body.Close()
		if err != nil {
			return nil, fmt.Errorf("nutrition lookup %s: read body: %w", path, err)
		}

		if quotaStatus(resp.StatusCode) {
			lastErr = fmt.Errorf("nutrition lookup %s: status %d with credential %d", path, resp.StatusCode, i+1)
			if i+1 < len(c.Credentials) {
				log.Printf("[WARN] nutrition API quota hit on credential %d, trying next", i+1)
			}
			continue
		}
		if resp.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("nutrition lookup %s: status %d, body: %s", path, resp.StatusCode, string(body))
		}
		return body, nil
	}
	return nil, fmt.Errorf("all nutrition API credentials exhausted: %w", lastErr)
}

// Search runs an instant search and returns common and branded hits.
func (c *Client) Search(ctx context.Context, query string) (*SearchResult, error) {
	payload, err := json.Marshal(map[string]string{"query": query})
	if err != nil {
		return nil, fmt.Errorf("marshal search payload: %w", err)
	}
	body, err := c.do(ctx, http.MethodPost, "/search/instant", payload)
	if err != nil {
		return nil, err
	}
	var result SearchResult
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("decode search response: %w", err)
	}
	return &result, nil
}

// BrandedDetails fetches full nutrients for a branded item by its nix
// item id.
func (c *Client) BrandedDetails(ctx context.Context, nixItemID string) (model.FoodEntry, error) {
	path := "/search/item?nix_item_id=" + url.QueryEscape(nixItemID)
	body, err := c.do(ctx, http.MethodGet, path, nil)
	if err != nil {
		return model.FoodEntry{}, err
	}
	return decodeSingleFood(body)
}

// CommonDetails fetches full nutrients for a common food by name via
// the natural-language nutrient endpoint.
func (c *Client) CommonDetails(ctx context.Context, foodName string) (model.FoodEntry, error) {
	payload, err := json.Marshal(map[string]string{"query": foodName})
	if err != nil {
		return model.FoodEntry{}, fmt.Errorf("marshal nutrients payload: %w", err)
	}
	body, err := c.do(ctx, http.MethodPost, "/natural/nutrients", payload)
	if err != nil {
		return model.FoodEntry{}, err
	}
	return decodeSingleFood(body)
}

func decodeSingleFood(body []byte) (model.FoodEntry, error) {
	var resp foodsResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return model.FoodEntry{}, fmt.Errorf("decode food response: %w", err)
	}
	if len(resp.Foods) == 0 {
		return model.FoodEntry{}, fmt.Errorf("nutrition lookup: no foods in response")
	}
	return resp.Foods[0].toEntry(), nil
}

// ParseExercise submits a natural-language exercise description
// ("running for 30 minutes") together with profile context and returns
// one entry per exercise the API recognized. The caller assigns IDs and
// timestamps.
func (c *Client) ParseExercise(ctx context.Context, query string, profile model.UserProfile) ([]model.ExerciseEntry, error) {
	payload, err := json.Marshal(map[string]any{
		"query":     query,
		"gender":    strings.ToLower(profile.Gender),
		"weight_kg": profile.Weight * 0.45359237,
		"height_cm": profile.Height * 2.54,
		"age":       profile.Age,
	})
	if err != nil {
		return nil, fmt.Errorf("marshal exercise payload: %w", err)
	}
	body, err := c.do(ctx, http.MethodPost, "/natural/exercise", payload)
	if err != nil {
		return nil, err
	}
	var resp exerciseResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("decode exercise response: %w", err)
	}
	entries := make([]model.ExerciseEntry, 0, len(resp.Exercises))
	for _, ex := range resp.Exercises {
		entries = append(entries, model.ExerciseEntry{
			Name:        ex.Name,
			DurationMin: ex.DurationMin,
			Calories:    ex.Calories,
		})
	}
	return entries, nil
}
