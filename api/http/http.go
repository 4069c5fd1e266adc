package http

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/IlliquidAsset/deepcoder/api"
)

const (
	contentType              = "application/json"
	errFailedToRead          = "failed to read response: %w"
	errFailedToCreateRequest = "failed to create request: %w"
	errFailedToMakeRequest   = "failed to make request: %w"
	headerAuthorization      = "Authorization"
	headerContentType        = "Content-Type"
	headerUserAgent          = "User-Agent"

	DefaultTimeout   = 120 * time.Second
	DefaultUserAgent = "deepcoder"
)

//go:generate mockgen -destination=../../model/callermocks_test.go -package=model_test github.com/IlliquidAsset/deepcoder/api/http Caller
type Caller interface {
	Post(ctx context.Context, url string, body []byte, headers map[string]string) ([]byte, error)
}

// StatusError is returned for non-2xx responses. The response body is
// returned alongside it.
type StatusError struct {
	Code    int
	Message string
}

func (e StatusError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("http status: %d", e.Code)
	}
	return fmt.Sprintf("http status %d: %s", e.Code, e.Message)
}

type Options struct {
	Timeout       time.Duration
	SkipTLSVerify bool
	UserAgent     string
}

type RestCaller struct {
	client    *http.Client
	userAgent string
}

var _ Caller = &RestCaller{}

func New(opts Options) *RestCaller {
	client := &http.Client{Timeout: opts.Timeout}
	if client.Timeout == 0 {
		client.Timeout = DefaultTimeout
	}
	if opts.SkipTLSVerify {
		client.Transport = &http.Transport{
			TLSClientConfig: &tls.Config{InsecureSkipVerify: true},
		}
	}

	ua := opts.UserAgent
	if ua == "" {
		ua = DefaultUserAgent
	}

	return &RestCaller{client: client, userAgent: ua}
}

// BearerHeaders is the usual header set for an OpenAI-compatible endpoint.
func BearerHeaders(apiKey string) map[string]string {
	if apiKey == "" {
		return map[string]string{}
	}
	return map[string]string{headerAuthorization: "Bearer " + apiKey}
}

func (r *RestCaller) Post(ctx context.Context, url string, body []byte, headers map[string]string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(body))
	if err != nil {
		return nil, fmt.Errorf(errFailedToCreateRequest, err)
	}

	req.Header.Set(headerContentType, contentType)
	req.Header.Set(headerUserAgent, r.userAgent)
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf(errFailedToMakeRequest, err)
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf(errFailedToRead, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return payload, StatusError{Code: resp.StatusCode, Message: errorMessage(payload)}
	}

	return payload, nil
}

func errorMessage(payload []byte) string {
	var errorData api.ErrorResponse
	if err := json.Unmarshal(payload, &errorData); err == nil && errorData.Error.Message != "" {
		return errorData.Error.Message
	}
	return strings.TrimSpace(string(payload))
}
