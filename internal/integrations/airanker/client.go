package airanker

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Client клиент внешнего сервиса оценки пригодности площадок
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента
func NewClient(baseURL, apiKey string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// Rank отправляет кандидатов на ранжирование
func (c *Client) Rank(ctx context.Context, rankReq RankRequest) (*RankResponse, error) {
	url := fmt.Sprintf("%s/v1/rank", c.baseURL)

	body, err := json.Marshal(rankReq)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to encode request: %v", ErrInternal, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(respBody))
	}

	var ranked RankResponse
	if err := json.NewDecoder(resp.Body).Decode(&ranked); err != nil {
		return nil, fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}

	known := make(map[string]bool, len(rankReq.Candidates))
	for _, cand := range rankReq.Candidates {
		known[cand.ID] = true
	}
	for _, r := range ranked.Ranked {
		if !known[r.VenueID] {
			return nil, fmt.Errorf("%w: unknown venue %q in ranking", ErrInvalidResponse, r.VenueID)
		}
	}

	return &ranked, nil
}

// RankWithGracefulDegradation ранжирует кандидатов, а при любой ошибке возвращает ErrServiceDegraded
func (c *Client) RankWithGracefulDegradation(ctx context.Context, rankReq RankRequest) (*RankResponse, error) {
	c.log.Info("Ranking %d venues for event=%q", len(rankReq.Candidates), rankReq.EventName)

	ranked, err := c.Rank(ctx, rankReq)
	if err != nil {
		c.log.Error("AI ranker unavailable, applying graceful degradation for event=%q: %v", rankReq.EventName, err)
		return nil, fmt.Errorf("%w: %v", ErrServiceDegraded, err)
	}

	c.log.Info("AI ranker returned %d of %d venues for event=%q", len(ranked.Ranked), len(rankReq.Candidates), rankReq.EventName)
	return ranked, nil
}
