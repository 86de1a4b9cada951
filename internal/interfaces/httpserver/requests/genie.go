// Package requests provides request binding structs for the HTTP layer.
package requests

// QueryRequest is the body for both query endpoints.
type QueryRequest struct {
	Query          string `json:"query" binding:"required" example:"Top 10 opportunities by amount"`
	ConversationID string `json:"conversation_id,omitempty" example:"6a64adad2e664ee58de08488f986af3e"`
	// Wait blocks until the message reaches a terminal status or the
	// server-side poll timeout elapses.
	Wait bool `json:"wait,omitempty"`
}
