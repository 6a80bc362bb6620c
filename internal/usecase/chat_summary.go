package usecase

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/lightningnetwork/lnd/fn/v2"

	"engagement-tracker/internal/domain"
)

const (
	chatFetchLimit  = 100
	freshnessWindow = 24 * time.Hour
)

type ParamGetter interface {
	GetParameter(ctx context.Context, name string) (string, error)
}

type EngagementReader interface {
	GetEngagement(ctx context.Context, engagementID string) (fn.Option[domain.EngagementRef], error)
}

type SummaryCacheReadWriter interface {
	Read(ctx context.Context, engagementID string) (fn.Option[domain.CacheEntry], error)
	Write(ctx context.Context, entry domain.CacheEntry) error
}

type ChatLister interface {
	ListMessages(ctx context.Context, ep domain.ChatEndpoint, spaceID string, limit int) fn.Result[[]domain.ChatMessage]
}

type httpStatusCoder interface {
	HTTPStatusCode() int
}

type ChatSummaryInput struct {
	EngagementID string
	Refresh      bool
}

// ChatSummaryOutput is the outcome of GetChatSummary. Summary is nil only
// when the engagement has no chat space configured.
type ChatSummaryOutput struct {
	EngagementID string
	HasChatSpace bool
	ChatSpaceURL string
	Summary      *domain.SummaryResult
	CachedAt     time.Time
	FromCache    bool
	MessageCount int
}

// ChatSummaryService produces cached digests of an engagement's chat space.
type ChatSummaryService struct {
	engagements EngagementReader
	cache       SummaryCacheReadWriter
	params      ParamGetter
	chat        ChatLister
	llm         Completer
	paramPrefix string

	logger *slog.Logger
	now    func() time.Time
}

type ServiceOption func(*ChatSummaryService)

func WithLogger(logger *slog.Logger) ServiceOption {
	return func(s *ChatSummaryService) {
		if logger != nil {
			s.logger = logger
		}
	}
}

func WithClock(now func() time.Time) ServiceOption {
	return func(s *ChatSummaryService) {
		if now != nil {
			s.now = now
		}
	}
}

func NewChatSummaryService(e EngagementReader, c SummaryCacheReadWriter, p ParamGetter, chat ChatLister, llm Completer, paramPrefix string, opts ...ServiceOption) (*ChatSummaryService, error) {
	if e == nil {
		return nil, errors.New("usecase: engagement reader must not be nil")
	}
	if c == nil {
		return nil, errors.New("usecase: summary cache must not be nil")
	}
	if p == nil {
		return nil, errors.New("usecase: param getter must not be nil")
	}
	if chat == nil {
		return nil, errors.New("usecase: chat lister must not be nil")
	}
	if llm == nil {
		return nil, errors.New("usecase: llm client must not be nil")
	}
	paramPrefix = strings.TrimRight(strings.TrimSpace(paramPrefix), "/")
	if paramPrefix == "" {
		return nil, errors.New("usecase: parameter prefix must not be empty")
	}
	s := &ChatSummaryService{
		engagements: e,
		cache:       c,
		params:      p,
		chat:        chat,
		llm:         llm,
		paramPrefix: paramPrefix,
		logger:      slog.New(slog.NewTextHandler(io.Discard, nil)),
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// GetChatSummary returns the engagement's chat digest, serving a cached copy
// younger than 24 hours unless in.Refresh is set. Chat backend, model and
// cache failures degrade the result instead of failing the call.
func (s *ChatSummaryService) GetChatSummary(ctx context.Context, in ChatSummaryInput) (ChatSummaryOutput, error) {
	engagementID := strings.TrimSpace(in.EngagementID)
	if engagementID == "" {
		return ChatSummaryOutput{}, newError(ErrorInvalidInput, "missing_engagement_id", nil)
	}
	log := s.logger.With("engagement_id", engagementID)

	found, err := s.engagements.GetEngagement(ctx, engagementID)
	if err != nil {
		return ChatSummaryOutput{}, newError(ErrorInternal, "dynamodb_engagement_error", err)
	}
	if found.IsNone() {
		return ChatSummaryOutput{}, newError(ErrorNotFound, "engagement_not_found", nil)
	}
	engagement := found.UnwrapOr(domain.EngagementRef{})

	chatSpaceURL := strings.TrimSpace(engagement.ChatSpaceURL)
	if chatSpaceURL == "" {
		return ChatSummaryOutput{EngagementID: engagementID}, nil
	}
	spaceID, ok := extractSpaceID(chatSpaceURL)
	if !ok {
		return ChatSummaryOutput{}, newError(ErrorInvalidInput, "invalid_chat_space_url", nil)
	}

	out := ChatSummaryOutput{
		EngagementID: engagementID,
		HasChatSpace: true,
		ChatSpaceURL: chatSpaceURL,
	}

	if !in.Refresh {
		if entry, ok := s.freshEntry(ctx, log, engagementID); ok {
			summary := entry.Summary
			out.Summary = &summary
			out.CachedAt = time.Unix(entry.CachedAt, 0).UTC()
			out.FromCache = true
			out.MessageCount = entry.MessageCount
			return out, nil
		}
	}

	creds, err := s.loadCredentials(ctx)
	if err != nil {
		return ChatSummaryOutput{}, newError(ErrorInternal, "secret_load_error", err)
	}

	msgs := s.fetchMessages(ctx, log, creds.chat, spaceID)
	summary := s.summarize(ctx, log, msgs, creds.anthropicKey)

	generatedAt := s.now().UTC().Truncate(time.Second)
	entry := domain.CacheEntry{
		EngagementID: engagementID,
		Summary:      summary,
		CachedAt:     generatedAt.Unix(),
		MessageCount: len(msgs),
	}
	if err := s.cache.Write(ctx, entry); err != nil {
		log.Warn("chat summary cache write failed", "reason", "cache_write_error", "err", err)
	}

	out.Summary = &summary
	out.CachedAt = generatedAt
	out.MessageCount = len(msgs)
	return out, nil
}

// freshEntry reports a cached summary younger than the freshness window.
// Read errors are treated as a miss.
func (s *ChatSummaryService) freshEntry(ctx context.Context, log *slog.Logger, engagementID string) (domain.CacheEntry, bool) {
	cached, err := s.cache.Read(ctx, engagementID)
	if err != nil {
		log.Warn("chat summary cache read failed", "reason", "cache_read_error", "err", err)
		return domain.CacheEntry{}, false
	}
	if cached.IsNone() {
		return domain.CacheEntry{}, false
	}
	entry := cached.UnwrapOr(domain.CacheEntry{})
	age := s.now().Unix() - entry.CachedAt
	if age >= int64(freshnessWindow/time.Second) {
		log.Debug("chat summary cache stale", "age_seconds", age)
		return domain.CacheEntry{}, false
	}
	return entry, true
}

func (s *ChatSummaryService) fetchMessages(ctx context.Context, log *slog.Logger, ep domain.ChatEndpoint, spaceID string) []domain.ChatMessage {
	msgs, err := s.chat.ListMessages(ctx, ep, spaceID, chatFetchLimit).Unpack()
	if err != nil {
		attrs := []any{"reason", "chat_fetch_error", "space_id", spaceID, "err", err}
		if status, ok := upstreamStatusCode(err); ok {
			attrs = append(attrs, "status", status)
		}
		log.Warn("chat transcript fetch degraded", attrs...)
		return nil
	}
	return msgs
}

func (s *ChatSummaryService) summarize(ctx context.Context, log *slog.Logger, msgs []domain.ChatMessage, apiKey string) domain.SummaryResult {
	if len(msgs) == 0 {
		return cannedSummary(noActivityText, nil)
	}
	transcript, ok := normalizeMessages(msgs)
	if !ok {
		return cannedSummary(unreadableText, transcript.Participants)
	}

	summary, err := summarizeTranscript(ctx, s.llm, transcript, apiKey).Unpack()
	if err != nil {
		attrs := []any{"reason", "summarization_failed", "err", err}
		if status, ok := upstreamStatusCode(err); ok {
			attrs = append(attrs, "status", status)
		}
		log.Warn("chat summarization degraded", attrs...)
		return degradedSummary(err, transcript.Participants)
	}
	return summary
}

func upstreamStatusCode(err error) (int, bool) {
	var statusErr httpStatusCoder
	if !errors.As(err, &statusErr) {
		return 0, false
	}
	return statusErr.HTTPStatusCode(), true
}
