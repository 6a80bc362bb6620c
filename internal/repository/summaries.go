package repository

import (
	"context"
	"fmt"
	"strconv"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/lightningnetwork/lnd/fn/v2"

	"engagement-tracker/internal/domain"
)

// SummaryCache stores one chat summary per engagement, keyed by
// "engagementId". Each write replaces the previous entry wholesale.
type SummaryCache struct {
	table table
}

func NewSummaryCache(api dynamodbAPI, tableName string) (*SummaryCache, error) {
	t, err := newTable(api, tableName)
	if err != nil {
		return nil, err
	}
	return &SummaryCache{table: t}, nil
}

// Read returns None when no summary has been cached for engagementID.
func (c *SummaryCache) Read(ctx context.Context, engagementID string) (fn.Option[domain.CacheEntry], error) {
	out, err := c.table.api.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(c.table.name),
		Key:       stringKey("engagementId", engagementID),
	})
	if err != nil {
		return fn.None[domain.CacheEntry](), fmt.Errorf("repository: ReadSummary get item: %w", err)
	}
	if out == nil || len(out.Item) == 0 {
		return fn.None[domain.CacheEntry](), nil
	}

	entry, err := itemToCacheEntry(out.Item)
	if err != nil {
		return fn.None[domain.CacheEntry](), fmt.Errorf("repository: ReadSummary decode: %w", err)
	}
	return fn.Some(entry), nil
}

// Write upserts entry unconditionally.
func (c *SummaryCache) Write(ctx context.Context, entry domain.CacheEntry) error {
	if entry.EngagementID == "" {
		return fmt.Errorf("repository: WriteSummary: engagement id is required")
	}
	_, err := c.table.api.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(c.table.name),
		Item:      cacheEntryItem(entry),
	})
	if err != nil {
		return fmt.Errorf("repository: WriteSummary: %w", err)
	}
	return nil
}

func cacheEntryItem(entry domain.CacheEntry) map[string]types.AttributeValue {
	return map[string]types.AttributeValue{
		"engagementId": &types.AttributeValueMemberS{Value: entry.EngagementID},
		"summary":      summaryAttr(entry.Summary),
		"cachedAt":     &types.AttributeValueMemberN{Value: strconv.FormatInt(entry.CachedAt, 10)},
		"messageCount": &types.AttributeValueMemberN{Value: strconv.Itoa(entry.MessageCount)},
	}
}

func summaryAttr(s domain.SummaryResult) *types.AttributeValueMemberM {
	return &types.AttributeValueMemberM{Value: map[string]types.AttributeValue{
		"summary":       &types.AttributeValueMemberS{Value: s.Summary},
		"topics":        stringList(s.Topics),
		"sentiment":     &types.AttributeValueMemberS{Value: string(s.Sentiment)},
		"keyHighlights": stringList(s.KeyHighlights),
		"actionItems":   stringList(s.ActionItems),
		"participants":  stringList(s.Participants),
	}}
}

func itemToCacheEntry(item map[string]types.AttributeValue) (domain.CacheEntry, error) {
	id, err := strAttr(item, "engagementId")
	if err != nil {
		return domain.CacheEntry{}, err
	}
	cachedAt, err := int64Attr(item, "cachedAt")
	if err != nil {
		return domain.CacheEntry{}, err
	}
	m, ok := item["summary"].(*types.AttributeValueMemberM)
	if !ok {
		return domain.CacheEntry{}, fmt.Errorf("repository: attribute %q is not a map", "summary")
	}
	// messageCount is informational; older entries may lack it.
	count, _ := int64Attr(item, "messageCount")

	return domain.CacheEntry{
		EngagementID: id,
		CachedAt:     cachedAt,
		MessageCount: int(count),
		Summary: domain.SummaryResult{
			Summary:       optStrAttr(m.Value, "summary"),
			Topics:        stringListAttr(m.Value, "topics"),
			Sentiment:     domain.ParseSentiment(optStrAttr(m.Value, "sentiment")),
			KeyHighlights: stringListAttr(m.Value, "keyHighlights"),
			ActionItems:   stringListAttr(m.Value, "actionItems"),
			Participants:  stringListAttr(m.Value, "participants"),
		},
	}, nil
}
