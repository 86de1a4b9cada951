package genie

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog"

	domain "genie-gateway/internal/domain/genie"
	"genie-gateway/internal/infrastructure/metrics"
	"genie-gateway/internal/utils/platformerrors"
)

// Client is a pass-through HTTP wrapper over the Databricks Genie
// Conversation API. Tokens vary per request and are attached per call.
type Client struct {
	http *resty.Client
	log  zerolog.Logger
}

var _ domain.API = (*Client)(nil)

// NewClient wires the resty client against the workspace Genie API base.
func NewClient(workspaceURL string, timeout time.Duration, log zerolog.Logger) *Client {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	httpClient := resty.New().
		SetBaseURL(workspaceURL + "/api/2.0/genie").
		SetTimeout(timeout).
		SetHeader("Content-Type", "application/json")

	return &Client{
		http: httpClient,
		log:  log.With().Str("component", "genie-client").Logger(),
	}
}

func (c *Client) CreateConversation(ctx context.Context, token, spaceID string) (*domain.Conversation, error) {
	var conversation domain.Conversation
	path := fmt.Sprintf("/spaces/%s/conversations", url.PathEscape(spaceID))

	resp, err := c.execute(ctx, "create_conversation", func() (*resty.Response, error) {
		return c.http.R().
			SetContext(ctx).
			SetAuthToken(token).
			SetBody(map[string]any{}).
			SetResult(&conversation).
			Post(path)
	})
	if err != nil {
		return nil, err
	}
	if upstreamErr := c.upstreamError(ctx, resp, "create conversation"); upstreamErr != nil {
		return nil, upstreamErr
	}

	c.log.Info().Str("conversation_id", conversation.ID).Msg("created conversation")
	return &conversation, nil
}

func (c *Client) GetConversation(ctx context.Context, token, spaceID, conversationID string) (*domain.Conversation, error) {
	var conversation domain.Conversation
	path := fmt.Sprintf("/spaces/%s/conversations/%s",
		url.PathEscape(spaceID), url.PathEscape(conversationID))

	resp, err := c.execute(ctx, "get_conversation", func() (*resty.Response, error) {
		return c.http.R().
			SetContext(ctx).
			SetAuthToken(token).
			SetResult(&conversation).
			Get(path)
	})
	if err != nil {
		return nil, err
	}
	if upstreamErr := c.upstreamError(ctx, resp, "get conversation"); upstreamErr != nil {
		return nil, upstreamErr
	}
	return &conversation, nil
}

func (c *Client) CreateMessage(ctx context.Context, token, spaceID, conversationID, content string) (*domain.Message, error) {
	var message domain.Message
	path := fmt.Sprintf("/spaces/%s/conversations/%s/messages",
		url.PathEscape(spaceID), url.PathEscape(conversationID))

	resp, err := c.execute(ctx, "create_message", func() (*resty.Response, error) {
		return c.http.R().
			SetContext(ctx).
			SetAuthToken(token).
			SetBody(map[string]string{"content": content}).
			SetResult(&message).
			Post(path)
	})
	if err != nil {
		return nil, err
	}
	if upstreamErr := c.upstreamError(ctx, resp, "create message"); upstreamErr != nil {
		return nil, upstreamErr
	}

	c.log.Info().Str("message_id", message.ID).Msg("created message")
	return &message, nil
}

func (c *Client) GetMessage(ctx context.Context, token, spaceID, conversationID, messageID string) (*domain.Message, error) {
	var message domain.Message
	path := fmt.Sprintf("/spaces/%s/conversations/%s/messages/%s",
		url.PathEscape(spaceID), url.PathEscape(conversationID), url.PathEscape(messageID))

	resp, err := c.execute(ctx, "get_message", func() (*resty.Response, error) {
		return c.http.R().
			SetContext(ctx).
			SetAuthToken(token).
			SetResult(&message).
			Get(path)
	})
	if err != nil {
		return nil, err
	}
	if upstreamErr := c.upstreamError(ctx, resp, "get message"); upstreamErr != nil {
		return nil, upstreamErr
	}
	return &message, nil
}

func (c *Client) ListMessages(ctx context.Context, token, spaceID, conversationID string) ([]domain.Message, error) {
	var payload struct {
		Messages []domain.Message `json:"messages"`
	}
	path := fmt.Sprintf("/spaces/%s/conversations/%s/messages",
		url.PathEscape(spaceID), url.PathEscape(conversationID))

	resp, err := c.execute(ctx, "list_messages", func() (*resty.Response, error) {
		return c.http.R().
			SetContext(ctx).
			SetAuthToken(token).
			SetResult(&payload).
			Get(path)
	})
	if err != nil {
		return nil, err
	}
	if upstreamErr := c.upstreamError(ctx, resp, "list messages"); upstreamErr != nil {
		return nil, upstreamErr
	}

	c.log.Debug().Int("count", len(payload.Messages)).Msg("retrieved messages")
	return payload.Messages, nil
}

func (c *Client) GetQueryResult(ctx context.Context, token, spaceID, conversationID, messageID string) (map[string]any, error) {
	var result map[string]any
	path := fmt.Sprintf("/spaces/%s/conversations/%s/messages/%s/query-result",
		url.PathEscape(spaceID), url.PathEscape(conversationID), url.PathEscape(messageID))

	resp, err := c.execute(ctx, "get_query_result", func() (*resty.Response, error) {
		return c.http.R().
			SetContext(ctx).
			SetAuthToken(token).
			SetResult(&result).
			Get(path)
	})
	if err != nil {
		return nil, err
	}
	if upstreamErr := c.upstreamError(ctx, resp, "get query result"); upstreamErr != nil {
		return nil, upstreamErr
	}
	return result, nil
}

// execute runs one upstream call and records its latency metric.
func (c *Client) execute(ctx context.Context, operation string, call func() (*resty.Response, error)) (*resty.Response, error) {
	start := time.Now()
	resp, err := call()
	elapsed := time.Since(start).Seconds()

	if err != nil {
		metrics.ObserveGenieRequest(operation, "error", elapsed)
		c.log.Error().Err(err).Str("operation", operation).Msg("genie request failed")
		return nil, platformerrors.NewError(ctx, platformerrors.LayerInfrastructure,
			platformerrors.ErrorTypeExternal, "genie request failed", err,
			"5b9a3a89-03b7-4f76-8a3f-0f4df39cfc3f")
	}

	metrics.ObserveGenieRequest(operation, strconv.Itoa(resp.StatusCode()), elapsed)
	return resp, nil
}

// upstreamError maps a non-2xx Genie response to a platform error keeping
// the upstream status code intact.
func (c *Client) upstreamError(ctx context.Context, resp *resty.Response, message string) error {
	if !resp.IsError() {
		return nil
	}

	status := resp.StatusCode()
	c.log.Error().
		Int("status", status).
		Str("body", resp.String()).
		Msg(message + " failed")

	detail := fmt.Errorf("genie responded %d: %s", status, resp.String())
	if status == http.StatusNotFound {
		return platformerrors.NewUpstreamError(ctx, status, message+": not found", detail,
			"0d6fbd4f-8a0c-4f1f-9f57-2b5dc61f0a11")
	}
	return platformerrors.NewUpstreamError(ctx, status, message+" rejected by databricks", detail,
		"d9f6f7c1-4a25-4ce0-8a3c-6b5be8f2e7b2")
}
