package genie

import "context"

// TokenSource acquires Databricks-scoped Azure AD access tokens.
type TokenSource interface {
	// OnBehalfOf exchanges the inbound user assertion for a downstream
	// token via the OAuth2 On-Behalf-Of flow.
	OnBehalfOf(ctx context.Context, userAssertion string) (string, error)
	// AppToken returns a service-principal token acquired through the
	// client-credentials flow. Caching is the credential's concern.
	AppToken(ctx context.Context) (string, error)
}

// API is the Genie Conversation API surface the gateway depends on.
// The access token varies per request, so every call carries one.
type API interface {
	CreateConversation(ctx context.Context, token, spaceID string) (*Conversation, error)
	GetConversation(ctx context.Context, token, spaceID, conversationID string) (*Conversation, error)
	CreateMessage(ctx context.Context, token, spaceID, conversationID, content string) (*Message, error)
	GetMessage(ctx context.Context, token, spaceID, conversationID, messageID string) (*Message, error)
	ListMessages(ctx context.Context, token, spaceID, conversationID string) ([]Message, error)
	GetQueryResult(ctx context.Context, token, spaceID, conversationID, messageID string) (map[string]any, error)
}
