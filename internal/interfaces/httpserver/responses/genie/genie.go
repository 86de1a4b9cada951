package genie

import (
	domain "genie-gateway/internal/domain/genie"
)

// QueryResponse is returned by both query endpoints.
type QueryResponse struct {
	ConversationID string           `json:"conversation_id"`
	MessageID      string           `json:"message_id"`
	Status         string           `json:"status"`
	Content        string           `json:"content"`
	QueryResult    map[string]any   `json:"query_result,omitempty"`
	Attachments    []map[string]any `json:"attachments,omitempty"`
}

// FromOutcome maps the domain query outcome to the response DTO.
func FromOutcome(outcome *domain.QueryOutcome) QueryResponse {
	return QueryResponse{
		ConversationID: outcome.ConversationID,
		MessageID:      outcome.MessageID,
		Status:         string(outcome.Status),
		Content:        outcome.Content,
		QueryResult:    outcome.QueryResult,
		Attachments:    outcome.Attachments,
	}
}

// ConversationResponse mirrors the Genie conversation resource.
type ConversationResponse struct {
	ID                   string  `json:"id"`
	SpaceID              string  `json:"space_id"`
	Title                *string `json:"title,omitempty"`
	CreatedTimestamp     int64   `json:"created_timestamp"`
	LastUpdatedTimestamp int64   `json:"last_updated_timestamp"`
}

// FromConversation maps the domain conversation to the response DTO.
func FromConversation(conversation *domain.Conversation) ConversationResponse {
	return ConversationResponse{
		ID:                   conversation.ID,
		SpaceID:              conversation.SpaceID,
		Title:                conversation.Title,
		CreatedTimestamp:     conversation.CreatedTimestamp,
		LastUpdatedTimestamp: conversation.LastUpdatedTimestamp,
	}
}

// MessageResponse mirrors a Genie message.
type MessageResponse struct {
	ID          string           `json:"id"`
	Content     string           `json:"content"`
	Status      string           `json:"status"`
	QueryResult map[string]any   `json:"query_result,omitempty"`
	Attachments []map[string]any `json:"attachments,omitempty"`
}

// FromMessage maps a domain message to the response DTO.
func FromMessage(message *domain.Message) MessageResponse {
	return MessageResponse{
		ID:          message.ID,
		Content:     message.Content,
		Status:      string(message.Status),
		QueryResult: message.QueryResult,
		Attachments: message.Attachments,
	}
}

// MessageListResponse wraps the messages of a conversation.
type MessageListResponse struct {
	Messages []MessageResponse `json:"messages"`
}

// FromMessages maps a message slice to the list response DTO.
func FromMessages(messages []domain.Message) MessageListResponse {
	out := MessageListResponse{Messages: make([]MessageResponse, 0, len(messages))}
	for i := range messages {
		out.Messages = append(out.Messages, FromMessage(&messages[i]))
	}
	return out
}
