package genie

// MessageStatus is the lifecycle state Databricks reports for a Genie message.
type MessageStatus string

const (
	StatusSubmitted          MessageStatus = "SUBMITTED"
	StatusFetchingMetadata   MessageStatus = "FETCHING_METADATA"
	StatusFilteringContext   MessageStatus = "FILTERING_CONTEXT"
	StatusAskingAI           MessageStatus = "ASKING_AI"
	StatusPendingWarehouse   MessageStatus = "PENDING_WAREHOUSE"
	StatusExecutingQuery     MessageStatus = "EXECUTING_QUERY"
	StatusCompleted          MessageStatus = "COMPLETED"
	StatusFailed             MessageStatus = "FAILED"
	StatusCancelled          MessageStatus = "CANCELLED"
	StatusQueryResultExpired MessageStatus = "QUERY_RESULT_EXPIRED"
)

// IsTerminal reports whether no further status transitions are expected.
func (s MessageStatus) IsTerminal() bool {
	switch s {
	case StatusCompleted, StatusFailed, StatusCancelled, StatusQueryResultExpired:
		return true
	default:
		return false
	}
}

// Conversation mirrors the Genie conversation resource. The gateway only
// references it by ID; Databricks owns the entity.
type Conversation struct {
	ID                   string  `json:"id"`
	SpaceID              string  `json:"space_id"`
	Title                *string `json:"title,omitempty"`
	CreatedTimestamp     int64   `json:"created_timestamp"`
	LastUpdatedTimestamp int64   `json:"last_updated_timestamp"`
}

// Message mirrors a message within a Genie conversation. Query results and
// attachments are passed through untyped; their schema belongs to Databricks.
type Message struct {
	ID          string           `json:"id"`
	Content     string           `json:"content"`
	Status      MessageStatus    `json:"status"`
	QueryResult map[string]any   `json:"query_result,omitempty"`
	Attachments []map[string]any `json:"attachments,omitempty"`
}

// QueryParams describes one query against the Genie space.
type QueryParams struct {
	// Query is the natural language question sent to Genie.
	Query string
	// ConversationID reuses an existing conversation for follow-up
	// questions; empty starts a new conversation.
	ConversationID string
	// Wait blocks until the message reaches a terminal status or the poll
	// timeout elapses.
	Wait bool
}

// QueryOutcome is the gateway-level result of a query.
type QueryOutcome struct {
	ConversationID string           `json:"conversation_id"`
	MessageID      string           `json:"message_id"`
	Status         MessageStatus    `json:"status"`
	Content        string           `json:"content"`
	QueryResult    map[string]any   `json:"query_result,omitempty"`
	Attachments    []map[string]any `json:"attachments,omitempty"`
}
