package genie

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

// Service describes the business logic surface for Genie operations.
type Service interface {
	// QueryOnBehalfOf runs a query with a Databricks token exchanged from
	// the caller's own bearer token.
	QueryOnBehalfOf(ctx context.Context, userAssertion string, params QueryParams) (*QueryOutcome, error)
	// QueryAsApp runs a query with the gateway's service-principal token.
	QueryAsApp(ctx context.Context, params QueryParams) (*QueryOutcome, error)

	GetConversation(ctx context.Context, userAssertion, conversationID string) (*Conversation, error)
	ListMessages(ctx context.Context, userAssertion, conversationID string) ([]Message, error)
	GetMessage(ctx context.Context, userAssertion, conversationID, messageID string) (*Message, error)
	GetQueryResult(ctx context.Context, userAssertion, conversationID, messageID string) (map[string]any, error)
}

// Options carries the space addressing and polling knobs for the service.
type Options struct {
	SpaceID      string
	PollInterval time.Duration
	PollTimeout  time.Duration
}

type service struct {
	api    API
	tokens TokenSource
	opts   Options
	log    zerolog.Logger
}

// NewService wires the Genie service with its API client and token source.
func NewService(api API, tokens TokenSource, opts Options, log zerolog.Logger) Service {
	if opts.PollInterval <= 0 {
		opts.PollInterval = 2 * time.Second
	}
	if opts.PollTimeout <= 0 {
		opts.PollTimeout = 2 * time.Minute
	}
	return &service{
		api:    api,
		tokens: tokens,
		opts:   opts,
		log:    log.With().Str("component", "genie-service").Logger(),
	}
}

func (s *service) QueryOnBehalfOf(ctx context.Context, userAssertion string, params QueryParams) (*QueryOutcome, error) {
	token, err := s.tokens.OnBehalfOf(ctx, userAssertion)
	if err != nil {
		return nil, err
	}
	return s.query(ctx, token, params)
}

func (s *service) QueryAsApp(ctx context.Context, params QueryParams) (*QueryOutcome, error) {
	token, err := s.tokens.AppToken(ctx)
	if err != nil {
		return nil, err
	}
	return s.query(ctx, token, params)
}

// query posts the question, creating a conversation first when the caller
// did not supply one.
func (s *service) query(ctx context.Context, token string, params QueryParams) (*QueryOutcome, error) {
	conversationID := params.ConversationID
	if conversationID == "" {
		conversation, err := s.api.CreateConversation(ctx, token, s.opts.SpaceID)
		if err != nil {
			s.log.Error().Err(err).Msg("create conversation")
			return nil, err
		}
		conversationID = conversation.ID
		s.log.Info().Str("conversation_id", conversationID).Msg("created conversation")
	}

	message, err := s.api.CreateMessage(ctx, token, s.opts.SpaceID, conversationID, params.Query)
	if err != nil {
		s.log.Error().Err(err).Str("conversation_id", conversationID).Msg("create message")
		return nil, err
	}

	if params.Wait && !message.Status.IsTerminal() {
		message = s.waitForMessage(ctx, token, conversationID, message)
	}

	return &QueryOutcome{
		ConversationID: conversationID,
		MessageID:      message.ID,
		Status:         message.Status,
		Content:        message.Content,
		QueryResult:    message.QueryResult,
		Attachments:    message.Attachments,
	}, nil
}

// waitForMessage polls until the message settles or the timeout elapses.
// On timeout the last observed message is returned with its in-flight
// status; the caller keeps polling via the message endpoint.
func (s *service) waitForMessage(ctx context.Context, token, conversationID string, message *Message) *Message {
	deadline := time.Now().Add(s.opts.PollTimeout)
	ticker := time.NewTicker(s.opts.PollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return message
		case <-ticker.C:
		}

		latest, err := s.api.GetMessage(ctx, token, s.opts.SpaceID, conversationID, message.ID)
		if err != nil {
			s.log.Warn().Err(err).Str("message_id", message.ID).Msg("poll message status")
			return message
		}
		message = latest
		if message.Status.IsTerminal() {
			return message
		}
		if time.Now().After(deadline) {
			s.log.Warn().
				Str("message_id", message.ID).
				Str("status", string(message.Status)).
				Msg("poll timeout before terminal status")
			return message
		}
	}
}

func (s *service) GetConversation(ctx context.Context, userAssertion, conversationID string) (*Conversation, error) {
	token, err := s.tokens.OnBehalfOf(ctx, userAssertion)
	if err != nil {
		return nil, err
	}
	return s.api.GetConversation(ctx, token, s.opts.SpaceID, conversationID)
}

func (s *service) ListMessages(ctx context.Context, userAssertion, conversationID string) ([]Message, error) {
	token, err := s.tokens.OnBehalfOf(ctx, userAssertion)
	if err != nil {
		return nil, err
	}
	return s.api.ListMessages(ctx, token, s.opts.SpaceID, conversationID)
}

func (s *service) GetMessage(ctx context.Context, userAssertion, conversationID, messageID string) (*Message, error) {
	token, err := s.tokens.OnBehalfOf(ctx, userAssertion)
	if err != nil {
		return nil, err
	}
	return s.api.GetMessage(ctx, token, s.opts.SpaceID, conversationID, messageID)
}

func (s *service) GetQueryResult(ctx context.Context, userAssertion, conversationID, messageID string) (map[string]any, error) {
	token, err := s.tokens.OnBehalfOf(ctx, userAssertion)
	if err != nil {
		return nil, err
	}
	return s.api.GetQueryResult(ctx, token, s.opts.SpaceID, conversationID, messageID)
}
