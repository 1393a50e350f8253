package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/nevrodda11/torny-aws-api/constants"
	"github.com/valyala/fasthttp"
)

// CloudflareConfig holds the account and credentials for the Images and Stream APIs.
type CloudflareConfig struct {
	AccountID         string
	APIToken          string
	StreamToken       string
	APIBaseURL        string
	ImagesDeliveryURL string
}

type cloudflareError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type cloudflareEnvelope[T any] struct {
	Success bool              `json:"success"`
	Errors  []cloudflareError `json:"errors"`
	Result  T                 `json:"result"`
}

func newFastHTTPClient() *fasthttp.Client {
	return &fasthttp.Client{
		MaxConnsPerHost:     100,
		ReadTimeout:         constants.ExternalAPITimeout,
		WriteTimeout:        constants.ExternalAPITimeout,
		MaxIdleConnDuration: 1 * time.Minute,
	}
}

func doFast(ctx context.Context, client *fasthttp.Client, req *fasthttp.Request, resp *fasthttp.Response) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if deadline, ok := ctx.Deadline(); ok {
		return client.DoDeadline(req, resp, deadline)
	}
	return client.DoTimeout(req, resp, constants.ExternalAPITimeout)
}

// decodeEnvelope unmarshals a Cloudflare API response and turns unsuccessful envelopes into errors.
func decodeEnvelope[T any](status int, body []byte) (*T, error) {
	var env cloudflareEnvelope[T]
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, fmt.Errorf("cloudflare API returned %d with undecodable body: %w", status, err)
	}
	if status < 200 || status >= 300 || !env.Success {
		msgs := make([]string, 0, len(env.Errors))
		for _, e := range env.Errors {
			msgs = append(msgs, fmt.Sprintf("%d: %s", e.Code, e.Message))
		}
		return nil, fmt.Errorf("cloudflare API error (status %d): %s", status, strings.Join(msgs, "; "))
	}
	return &env.Result, nil
}
