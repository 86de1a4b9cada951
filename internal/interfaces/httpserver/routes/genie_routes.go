package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	domain "genie-gateway/internal/domain/genie"
	"genie-gateway/internal/infrastructure/auth"
	"genie-gateway/internal/interfaces/httpserver/handlers"
	"genie-gateway/internal/interfaces/httpserver/requests"
	"genie-gateway/internal/interfaces/httpserver/responses"
	genieresponses "genie-gateway/internal/interfaces/httpserver/responses/genie"
	"genie-gateway/internal/utils/platformerrors"
)

func registerGenieRoutes(router gin.IRoutes, handler *handlers.GenieHandler, requireBearer gin.HandlerFunc) {
	router.POST("/query-obo", requireBearer, queryOnBehalfOf(handler))
	router.POST("/query-app", queryAsApp(handler))
	router.GET("/conversation/:conversation_id", requireBearer, getConversation(handler))
	router.GET("/conversation/:conversation_id/messages", requireBearer, listMessages(handler))
	router.GET("/conversation/:conversation_id/messages/:message_id", requireBearer, getMessage(handler))
	router.GET("/conversation/:conversation_id/messages/:message_id/query-result", requireBearer, getQueryResult(handler))
}

// queryOnBehalfOf godoc
// @Summary      Run a Genie query on behalf of the caller
// @Description  Exchanges the caller's bearer token for a Databricks token and submits the query to the Genie space.
// @Tags         genie
// @Accept       json
// @Produce      json
// @Param        request  body      requests.QueryRequest  true  "Query payload"
// @Success      200      {object}  genie.QueryResponse
// @Failure      400      {object}  responses.ErrorResponse
// @Failure      401      {object}  responses.ErrorResponse
// @Failure      403      {object}  responses.ErrorResponse
// @Security     BearerAuth
// @Router       /genie/query-obo [post]
func queryOnBehalfOf(handler *handlers.GenieHandler) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req requests.QueryRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			responses.HandleNewError(c, platformerrors.ErrorTypeValidation,
				"invalid request body", "2f1f30f6-9e2c-4f4a-9a06-2f2cf2b7cbe1")
			return
		}
		userAssertion, ok := auth.TokenFromContext(c)
		if !ok {
			responses.HandleNewError(c, platformerrors.ErrorTypeUnauthorized,
				"missing bearer token", "5f1b18bb-1d5e-41a4-b7db-9a4f9f3db7d9")
			return
		}

		outcome, err := handler.QueryOnBehalfOf(c.Request.Context(), userAssertion, toQueryParams(req))
		if err != nil {
			responses.HandleError(c, err, "failed to run query")
			return
		}
		c.JSON(http.StatusOK, genieresponses.FromOutcome(outcome))
	}
}

// queryAsApp godoc
// @Summary      Run a Genie query as the service principal
// @Description  Submits the query with the gateway's own client-credentials token. No caller token is required.
// @Tags         genie
// @Accept       json
// @Produce      json
// @Param        request  body      requests.QueryRequest  true  "Query payload"
// @Success      200      {object}  genie.QueryResponse
// @Failure      400      {object}  responses.ErrorResponse
// @Failure      401      {object}  responses.ErrorResponse
// @Router       /genie/query-app [post]
func queryAsApp(handler *handlers.GenieHandler) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req requests.QueryRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			responses.HandleNewError(c, platformerrors.ErrorTypeValidation,
				"invalid request body", "c24f5de4-9f7c-45ce-b0ad-3d0ce0f6de44")
			return
		}

		outcome, err := handler.QueryAsApp(c.Request.Context(), toQueryParams(req))
		if err != nil {
			responses.HandleError(c, err, "failed to run query")
			return
		}
		c.JSON(http.StatusOK, genieresponses.FromOutcome(outcome))
	}
}

// getConversation godoc
// @Summary      Fetch a Genie conversation
// @Tags         genie
// @Produce      json
// @Param        conversation_id  path      string  true  "Conversation ID"
// @Success      200              {object}  genie.ConversationResponse
// @Failure      401              {object}  responses.ErrorResponse
// @Failure      404              {object}  responses.ErrorResponse
// @Security     BearerAuth
// @Router       /genie/conversation/{conversation_id} [get]
func getConversation(handler *handlers.GenieHandler) gin.HandlerFunc {
	return func(c *gin.Context) {
		userAssertion, _ := auth.TokenFromContext(c)
		conversation, err := handler.GetConversation(c.Request.Context(), userAssertion, c.Param("conversation_id"))
		if err != nil {
			responses.HandleError(c, err, "failed to fetch conversation")
			return
		}
		c.JSON(http.StatusOK, genieresponses.FromConversation(conversation))
	}
}

// listMessages godoc
// @Summary      List the messages of a Genie conversation
// @Tags         genie
// @Produce      json
// @Param        conversation_id  path      string  true  "Conversation ID"
// @Success      200              {object}  genie.MessageListResponse
// @Failure      401              {object}  responses.ErrorResponse
// @Failure      404              {object}  responses.ErrorResponse
// @Security     BearerAuth
// @Router       /genie/conversation/{conversation_id}/messages [get]
func listMessages(handler *handlers.GenieHandler) gin.HandlerFunc {
	return func(c *gin.Context) {
		userAssertion, _ := auth.TokenFromContext(c)
		messages, err := handler.ListMessages(c.Request.Context(), userAssertion, c.Param("conversation_id"))
		if err != nil {
			responses.HandleError(c, err, "failed to list messages")
			return
		}
		c.JSON(http.StatusOK, genieresponses.FromMessages(messages))
	}
}

// getMessage godoc
// @Summary      Fetch a single Genie message
// @Description  Used by clients polling for the status of a submitted query.
// @Tags         genie
// @Produce      json
// @Param        conversation_id  path      string  true  "Conversation ID"
// @Param        message_id       path      string  true  "Message ID"
// @Success      200              {object}  genie.MessageResponse
// @Failure      401              {object}  responses.ErrorResponse
// @Failure      404              {object}  responses.ErrorResponse
// @Security     BearerAuth
// @Router       /genie/conversation/{conversation_id}/messages/{message_id} [get]
func getMessage(handler *handlers.GenieHandler) gin.HandlerFunc {
	return func(c *gin.Context) {
		userAssertion, _ := auth.TokenFromContext(c)
		message, err := handler.GetMessage(c.Request.Context(), userAssertion,
			c.Param("conversation_id"), c.Param("message_id"))
		if err != nil {
			responses.HandleError(c, err, "failed to fetch message")
			return
		}
		c.JSON(http.StatusOK, genieresponses.FromMessage(message))
	}
}

// getQueryResult godoc
// @Summary      Fetch the SQL result of a completed Genie message
// @Tags         genie
// @Produce      json
// @Param        conversation_id  path      string  true  "Conversation ID"
// @Param        message_id       path      string  true  "Message ID"
// @Success      200              {object}  map[string]any
// @Failure      401              {object}  responses.ErrorResponse
// @Failure      404              {object}  responses.ErrorResponse
// @Security     BearerAuth
// @Router       /genie/conversation/{conversation_id}/messages/{message_id}/query-result [get]
func getQueryResult(handler *handlers.GenieHandler) gin.HandlerFunc {
	return func(c *gin.Context) {
		userAssertion, _ := auth.TokenFromContext(c)
		result, err := handler.GetQueryResult(c.Request.Context(), userAssertion,
			c.Param("conversation_id"), c.Param("message_id"))
		if err != nil {
			responses.HandleError(c, err, "failed to fetch query result")
			return
		}
		c.JSON(http.StatusOK, result)
	}
}

func toQueryParams(req requests.QueryRequest) domain.QueryParams {
	return domain.QueryParams{
		Query:          req.Query,
		ConversationID: req.ConversationID,
		Wait:           req.Wait,
	}
}
