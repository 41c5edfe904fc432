package services

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/yungbote/courseview-backend/internal/platform/envutil"
	"github.com/yungbote/courseview-backend/internal/platform/logger"
)

type LessonClientConfig struct {
	BaseURL string
	Timeout time.Duration
}

func LessonClientConfigFromEnv() LessonClientConfig {
	timeoutSec := envutil.Int("LESSON_UPSTREAM_TIMEOUT_SECONDS", 10)
	return LessonClientConfig{
		BaseURL: envutil.Str("LESSON_UPSTREAM_URL", ""),
		Timeout: time.Duration(timeoutSec) * time.Second,
	}
}

// NewLessonHTTPClient talks to the external academic system's lesson API. The
// user's upstream token is forwarded as a bearer credential; it is never
// stored.
func NewLessonHTTPClient(baseLog *logger.Logger, cfg LessonClientConfig) (LessonClient, error) {
	cfg.BaseURL = strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("missing LESSON_UPSTREAM_URL")
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	return &lessonHTTPClient{
		log:        baseLog.With("client", "LessonClient"),
		baseURL:    cfg.BaseURL,
		httpClient: &http.Client{Timeout: cfg.Timeout},
	}, nil
}

type lessonHTTPClient struct {
	log        *logger.Logger
	baseURL    string
	httpClient *http.Client
}

type lessonListResponse struct {
	Lessons []LessonEntry `json:"lessons"`
}

func (c *lessonHTTPClient) GetLessons(ctx context.Context, token, term string) ([]LessonEntry, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/v1/lessons/"+url.PathEscape(term), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("lesson upstream: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("lesson upstream http %d: %s", resp.StatusCode, strings.TrimSpace(string(raw)))
	}

	var payload lessonListResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("lesson upstream decode: %w", err)
	}
	return payload.Lessons, nil
}
