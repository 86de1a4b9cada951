package handlers

import (
	"context"

	domain "genie-gateway/internal/domain/genie"
)

// GenieHandler invokes domain logic for the Genie routes.
type GenieHandler struct {
	service domain.Service
}

// NewGenieHandler wires dependencies for the Genie routes.
func NewGenieHandler(service domain.Service) *GenieHandler {
	return &GenieHandler{
		service: service,
	}
}

// QueryOnBehalfOf runs a query with a token exchanged from the caller's bearer.
func (h *GenieHandler) QueryOnBehalfOf(ctx context.Context, userAssertion string, params domain.QueryParams) (*domain.QueryOutcome, error) {
	return h.service.QueryOnBehalfOf(ctx, userAssertion, params)
}

// QueryAsApp runs a query with the gateway's service-principal token.
func (h *GenieHandler) QueryAsApp(ctx context.Context, params domain.QueryParams) (*domain.QueryOutcome, error) {
	return h.service.QueryAsApp(ctx, params)
}

// GetConversation fetches conversation details via the OBO flow.
func (h *GenieHandler) GetConversation(ctx context.Context, userAssertion, conversationID string) (*domain.Conversation, error) {
	return h.service.GetConversation(ctx, userAssertion, conversationID)
}

// ListMessages lists conversation messages via the OBO flow.
func (h *GenieHandler) ListMessages(ctx context.Context, userAssertion, conversationID string) ([]domain.Message, error) {
	return h.service.ListMessages(ctx, userAssertion, conversationID)
}

// GetMessage fetches one message, used by clients polling for status.
func (h *GenieHandler) GetMessage(ctx context.Context, userAssertion, conversationID, messageID string) (*domain.Message, error) {
	return h.service.GetMessage(ctx, userAssertion, conversationID, messageID)
}

// GetQueryResult fetches the SQL result of a completed message.
func (h *GenieHandler) GetQueryResult(ctx context.Context, userAssertion, conversationID, messageID string) (map[string]any, error) {
	return h.service.GetQueryResult(ctx, userAssertion, conversationID, messageID)
}
