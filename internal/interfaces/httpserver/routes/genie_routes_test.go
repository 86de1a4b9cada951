package routes_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	domain "genie-gateway/internal/domain/genie"
	"genie-gateway/internal/interfaces/httpserver/handlers"
	"genie-gateway/internal/interfaces/httpserver/routes"
	"genie-gateway/internal/utils/platformerrors"
)

// MockGenieService is a mock implementation of genie.Service for testing.
type MockGenieService struct {
	QueryOnBehalfOfFunc func(ctx context.Context, userAssertion string, params domain.QueryParams) (*domain.QueryOutcome, error)
	QueryAsAppFunc      func(ctx context.Context, params domain.QueryParams) (*domain.QueryOutcome, error)
	GetConversationFunc func(ctx context.Context, userAssertion, conversationID string) (*domain.Conversation, error)
	ListMessagesFunc    func(ctx context.Context, userAssertion, conversationID string) ([]domain.Message, error)
	GetMessageFunc      func(ctx context.Context, userAssertion, conversationID, messageID string) (*domain.Message, error)
	GetQueryResultFunc  func(ctx context.Context, userAssertion, conversationID, messageID string) (map[string]any, error)
}

func (m *MockGenieService) QueryOnBehalfOf(ctx context.Context, userAssertion string, params domain.QueryParams) (*domain.QueryOutcome, error) {
	if m.QueryOnBehalfOfFunc != nil {
		return m.QueryOnBehalfOfFunc(ctx, userAssertion, params)
	}
	return nil, nil
}

func (m *MockGenieService) QueryAsApp(ctx context.Context, params domain.QueryParams) (*domain.QueryOutcome, error) {
	if m.QueryAsAppFunc != nil {
		return m.QueryAsAppFunc(ctx, params)
	}
	return nil, nil
}

func (m *MockGenieService) GetConversation(ctx context.Context, userAssertion, conversationID string) (*domain.Conversation, error) {
	if m.GetConversationFunc != nil {
		return m.GetConversationFunc(ctx, userAssertion, conversationID)
	}
	return nil, nil
}

func (m *MockGenieService) ListMessages(ctx context.Context, userAssertion, conversationID string) ([]domain.Message, error) {
	if m.ListMessagesFunc != nil {
		return m.ListMessagesFunc(ctx, userAssertion, conversationID)
	}
	return nil, nil
}

func (m *MockGenieService) GetMessage(ctx context.Context, userAssertion, conversationID, messageID string) (*domain.Message, error) {
	if m.GetMessageFunc != nil {
		return m.GetMessageFunc(ctx, userAssertion, conversationID, messageID)
	}
	return nil, nil
}

func (m *MockGenieService) GetQueryResult(ctx context.Context, userAssertion, conversationID, messageID string) (map[string]any, error) {
	if m.GetQueryResultFunc != nil {
		return m.GetQueryResultFunc(ctx, userAssertion, conversationID, messageID)
	}
	return nil, nil
}

func setupRouter(service domain.Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	routes.NewRoutes(handlers.NewProvider(service)).Register(engine)
	return engine
}

func postJSON(t *testing.T, engine *gin.Engine, path, bearer string, body any) *httptest.ResponseRecorder {
	t.Helper()
	payload, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal body: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

func TestQueryOBO_MissingBearerReturns401(t *testing.T) {
	engine := setupRouter(&MockGenieService{})

	w := postJSON(t, engine, "/genie/query-obo", "", map[string]string{"query": "total revenue"})

	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", w.Code)
	}
}

func TestQueryOBO_Success(t *testing.T) {
	service := &MockGenieService{
		QueryOnBehalfOfFunc: func(ctx context.Context, userAssertion string, params domain.QueryParams) (*domain.QueryOutcome, error) {
			if userAssertion != "user-jwt" {
				t.Errorf("userAssertion = %q, want user-jwt", userAssertion)
			}
			if params.Query != "total revenue" {
				t.Errorf("params.Query = %q", params.Query)
			}
			return &domain.QueryOutcome{
				ConversationID: "conv-1",
				MessageID:      "msg-1",
				Status:         domain.StatusCompleted,
				Content:        "42",
			}, nil
		},
	}
	engine := setupRouter(service)

	w := postJSON(t, engine, "/genie/query-obo", "user-jwt", map[string]string{"query": "total revenue"})

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200, body %s", w.Code, w.Body.String())
	}

	var resp map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if resp["conversation_id"] != "conv-1" || resp["status"] != "COMPLETED" {
		t.Errorf("response = %v", resp)
	}
}

func TestQueryOBO_InvalidBodyReturns400(t *testing.T) {
	engine := setupRouter(&MockGenieService{})

	w := postJSON(t, engine, "/genie/query-obo", "user-jwt", map[string]string{"not_query": "x"})

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}

func TestQueryApp_NoBearerRequired(t *testing.T) {
	service := &MockGenieService{
		QueryAsAppFunc: func(ctx context.Context, params domain.QueryParams) (*domain.QueryOutcome, error) {
			return &domain.QueryOutcome{ConversationID: "conv-2", MessageID: "msg-2", Status: domain.StatusSubmitted}, nil
		},
	}
	engine := setupRouter(service)

	w := postJSON(t, engine, "/genie/query-app", "", map[string]string{"query": "q"})

	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want 200, body %s", w.Code, w.Body.String())
	}
}

func TestQueryOBO_TokenExchangeDeniedReturns403(t *testing.T) {
	service := &MockGenieService{
		QueryOnBehalfOfFunc: func(ctx context.Context, userAssertion string, params domain.QueryParams) (*domain.QueryOutcome, error) {
			return nil, platformerrors.NewError(ctx, platformerrors.LayerInfrastructure,
				platformerrors.ErrorTypeForbidden, "acquire on-behalf-of token", nil,
				"3d4e8f3a-31b5-42ff-9a41-8b1e2b8f9d30")
		},
	}
	engine := setupRouter(service)

	w := postJSON(t, engine, "/genie/query-obo", "user-jwt", map[string]string{"query": "q"})

	if w.Code != http.StatusForbidden {
		t.Errorf("status = %d, want 403", w.Code)
	}
}

func TestGetConversation_UpstreamStatusPassesThrough(t *testing.T) {
	service := &MockGenieService{
		GetConversationFunc: func(ctx context.Context, userAssertion, conversationID string) (*domain.Conversation, error) {
			return nil, platformerrors.NewUpstreamError(ctx, http.StatusNotFound,
				"get conversation: not found", nil,
				"0d6fbd4f-8a0c-4f1f-9f57-2b5dc61f0a11")
		},
	}
	engine := setupRouter(service)

	req := httptest.NewRequest(http.MethodGet, "/genie/conversation/conv-missing", nil)
	req.Header.Set("Authorization", "Bearer user-jwt")
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", w.Code)
	}
}

func TestListMessages_Success(t *testing.T) {
	service := &MockGenieService{
		ListMessagesFunc: func(ctx context.Context, userAssertion, conversationID string) ([]domain.Message, error) {
			if conversationID != "conv-1" {
				t.Errorf("conversationID = %q, want conv-1", conversationID)
			}
			return []domain.Message{
				{ID: "msg-1", Status: domain.StatusCompleted, Content: "42"},
			}, nil
		},
	}
	engine := setupRouter(service)

	req := httptest.NewRequest(http.MethodGet, "/genie/conversation/conv-1/messages", nil)
	req.Header.Set("Authorization", "Bearer user-jwt")
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}

	var resp struct {
		Messages []map[string]any `json:"messages"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if len(resp.Messages) != 1 || resp.Messages[0]["id"] != "msg-1" {
		t.Errorf("messages = %v", resp.Messages)
	}
}

func TestGetMessage_Success(t *testing.T) {
	service := &MockGenieService{
		GetMessageFunc: func(ctx context.Context, userAssertion, conversationID, messageID string) (*domain.Message, error) {
			return &domain.Message{ID: messageID, Status: domain.StatusExecutingQuery}, nil
		},
	}
	engine := setupRouter(service)

	req := httptest.NewRequest(http.MethodGet, "/genie/conversation/conv-1/messages/msg-1", nil)
	req.Header.Set("Authorization", "Bearer user-jwt")
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unmarshal response: %v", err)
	}
	if resp["status"] != "EXECUTING_QUERY" {
		t.Errorf("status field = %v, want EXECUTING_QUERY", resp["status"])
	}
}
