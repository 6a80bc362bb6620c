package handler

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/aws/aws-lambda-go/events"
	"github.com/google/uuid"

	"engagement-tracker/internal/domain"
	"engagement-tracker/internal/usecase"
)

const (
	correlationHeader  = "X-Correlation-Id"
	engagementIDParam  = "engagementId"
	refreshQueryParam  = "refresh"
	noChatSpaceMessage = "No chat space configured for this engagement"
)

var corsHeaders = map[string]string{
	"Content-Type":                 "application/json",
	"Access-Control-Allow-Origin":  "*",
	"Access-Control-Allow-Headers": "Content-Type,Authorization",
	"Access-Control-Allow-Methods": "GET,POST,PUT,DELETE,OPTIONS",
}

var reasonMessages = map[string]string{
	"missing_engagement_id":  "engagementId is required",
	"invalid_chat_space_url": "Could not extract space ID from chat space URL",
	"engagement_not_found":   "Engagement not found",
}

type ChatSummarizer interface {
	GetChatSummary(ctx context.Context, in usecase.ChatSummaryInput) (usecase.ChatSummaryOutput, error)
}

// Handler adapts API Gateway proxy events to the chat summary usecase.
type Handler struct {
	uc     ChatSummarizer
	logger *slog.Logger
}

type Option func(*Handler)

func WithLogger(logger *slog.Logger) Option {
	return func(h *Handler) {
		if logger != nil {
			h.logger = logger
		}
	}
}

func NewHandler(uc ChatSummarizer, opts ...Option) (*Handler, error) {
	if uc == nil {
		return nil, errors.New("handler: usecase must not be nil")
	}
	h := &Handler{
		uc:     uc,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h, nil
}

type chatSummaryResponse struct {
	EngagementID string                `json:"engagementId"`
	HasChatSpace bool                  `json:"hasChatSpace"`
	ChatSpaceURL string                `json:"chatSpaceUrl,omitempty"`
	Summary      *domain.SummaryResult `json:"summary"`
	CachedAt     string                `json:"cachedAt,omitempty"`
	FromCache    *bool                 `json:"fromCache,omitempty"`
	MessageCount *int                  `json:"messageCount,omitempty"`
	Message      string                `json:"message,omitempty"`
}

type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

func (h *Handler) Handle(ctx context.Context, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	correlationID := headerValue(req.Headers, correlationHeader)
	if correlationID == "" {
		correlationID = uuid.NewString()
	}

	switch strings.ToUpper(req.HTTPMethod) {
	case http.MethodOptions:
		return respond(http.StatusOK, "{}", correlationID), nil
	case http.MethodGet:
	default:
		return respondJSON(http.StatusMethodNotAllowed, errorResponse{Error: "Method not allowed"}, correlationID), nil
	}

	in := usecase.ChatSummaryInput{
		EngagementID: req.PathParameters[engagementIDParam],
		Refresh:      strings.EqualFold(strings.TrimSpace(req.QueryStringParameters[refreshQueryParam]), "true"),
	}
	out, err := h.uc.GetChatSummary(ctx, in)
	if err != nil {
		status, body := h.mapError(err)
		h.logFailure(correlationID, status, err)
		return respondJSON(status, body, correlationID), nil
	}

	return respondJSON(http.StatusOK, toResponse(out), correlationID), nil
}

func toResponse(out usecase.ChatSummaryOutput) chatSummaryResponse {
	if !out.HasChatSpace {
		return chatSummaryResponse{
			EngagementID: out.EngagementID,
			Message:      noChatSpaceMessage,
		}
	}
	fromCache := out.FromCache
	messageCount := out.MessageCount
	return chatSummaryResponse{
		EngagementID: out.EngagementID,
		HasChatSpace: true,
		ChatSpaceURL: out.ChatSpaceURL,
		Summary:      out.Summary,
		CachedAt:     out.CachedAt.UTC().Format(time.RFC3339),
		FromCache:    &fromCache,
		MessageCount: &messageCount,
	}
}

func (h *Handler) mapError(err error) (int, errorResponse) {
	var ucErr *usecase.Error
	if !errors.As(err, &ucErr) {
		return http.StatusInternalServerError, errorResponse{Error: err.Error(), Code: string(usecase.ErrorInternal)}
	}

	msg, ok := reasonMessages[ucErr.Reason]
	if !ok {
		msg = ucErr.Error()
	}
	switch ucErr.Code {
	case usecase.ErrorInvalidInput:
		return http.StatusBadRequest, errorResponse{Error: msg, Code: string(ucErr.Code)}
	case usecase.ErrorNotFound:
		return http.StatusNotFound, errorResponse{Error: msg, Code: string(ucErr.Code)}
	default:
		return http.StatusInternalServerError, errorResponse{Error: msg, Code: string(usecase.ErrorInternal)}
	}
}

func (h *Handler) logFailure(correlationID string, status int, err error) {
	attrs := []any{"correlation_id", correlationID, "status", status, "err", err}
	var ucErr *usecase.Error
	if errors.As(err, &ucErr) {
		attrs = append(attrs, "code", string(ucErr.Code), "reason", ucErr.Reason)
	}
	if status >= http.StatusInternalServerError {
		h.logger.Error("chat summary request failed", attrs...)
		return
	}
	h.logger.Info("chat summary request rejected", attrs...)
}

func headerValue(headers map[string]string, name string) string {
	for k, v := range headers {
		if strings.EqualFold(k, name) {
			return strings.TrimSpace(v)
		}
	}
	return ""
}

func respondJSON(status int, body any, correlationID string) events.APIGatewayProxyResponse {
	b, err := json.Marshal(body)
	if err != nil {
		return respond(http.StatusInternalServerError, `{"error":"failed to encode response","code":"INTERNAL_ERROR"}`, correlationID)
	}
	return respond(status, string(b), correlationID)
}

func respond(status int, body, correlationID string) events.APIGatewayProxyResponse {
	headers := make(map[string]string, len(corsHeaders)+1)
	for k, v := range corsHeaders {
		headers[k] = v
	}
	headers[correlationHeader] = correlationID
	return events.APIGatewayProxyResponse{
		StatusCode: status,
		Headers:    headers,
		Body:       body,
	}
}
