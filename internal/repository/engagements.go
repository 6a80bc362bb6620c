package repository

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/lightningnetwork/lnd/fn/v2"

	"engagement-tracker/internal/domain"
)

// EngagementStore reads engagement records keyed by "id".
type EngagementStore struct {
	table table
}

func NewEngagementStore(api dynamodbAPI, tableName string) (*EngagementStore, error) {
	t, err := newTable(api, tableName)
	if err != nil {
		return nil, err
	}
	return &EngagementStore{table: t}, nil
}

// GetEngagement returns None when no record exists for engagementID.
func (s *EngagementStore) GetEngagement(ctx context.Context, engagementID string) (fn.Option[domain.EngagementRef], error) {
	out, err := s.table.api.GetItem(ctx, &dynamodb.GetItemInput{
		TableName:            aws.String(s.table.name),
		Key:                  stringKey("id", engagementID),
		ProjectionExpression: aws.String("#id, #name, chatSpace"),
		ExpressionAttributeNames: map[string]string{
			"#id":   "id",
			"#name": "name",
		},
	})
	if err != nil {
		return fn.None[domain.EngagementRef](), fmt.Errorf("repository: GetEngagement get item: %w", err)
	}
	if out == nil || len(out.Item) == 0 {
		return fn.None[domain.EngagementRef](), nil
	}

	id, err := strAttr(out.Item, "id")
	if err != nil {
		return fn.None[domain.EngagementRef](), fmt.Errorf("repository: GetEngagement decode: %w", err)
	}
	return fn.Some(domain.EngagementRef{
		ID:           id,
		Name:         optStrAttr(out.Item, "name"),
		ChatSpaceURL: optStrAttr(out.Item, "chatSpace"),
	}), nil
}
