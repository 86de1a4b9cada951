package genie_test

import (
	"testing"

	"genie-gateway/internal/domain/genie"
)

func TestMessageStatus_IsTerminal(t *testing.T) {
	tests := []struct {
		name     string
		status   genie.MessageStatus
		expected bool
	}{
		{"submitted is not terminal", genie.StatusSubmitted, false},
		{"fetching_metadata is not terminal", genie.StatusFetchingMetadata, false},
		{"filtering_context is not terminal", genie.StatusFilteringContext, false},
		{"asking_ai is not terminal", genie.StatusAskingAI, false},
		{"pending_warehouse is not terminal", genie.StatusPendingWarehouse, false},
		{"executing_query is not terminal", genie.StatusExecutingQuery, false},
		{"completed is terminal", genie.StatusCompleted, true},
		{"failed is terminal", genie.StatusFailed, true},
		{"cancelled is terminal", genie.StatusCancelled, true},
		{"query_result_expired is terminal", genie.StatusQueryResultExpired, true},
		{"unknown is not terminal", genie.MessageStatus("SOMETHING_NEW"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.status.IsTerminal(); got != tt.expected {
				t.Errorf("MessageStatus.IsTerminal() = %v, want %v", got, tt.expected)
			}
		})
	}
}
