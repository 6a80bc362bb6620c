package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/stretchr/testify/require"

	"engagement-tracker/internal/domain"
)

func mustEngagementStore(t *testing.T, db *fakeDynamo) *EngagementStore {
	t.Helper()
	s, err := NewEngagementStore(db, "engagements")
	require.NoError(t, err)
	return s
}

func TestNewEngagementStore_Validates(t *testing.T) {
	_, err := NewEngagementStore(nil, "engagements")
	require.ErrorContains(t, err, "must not be nil")

	_, err = NewEngagementStore(&fakeDynamo{}, " ")
	require.ErrorContains(t, err, "must not be empty")
}

func TestGetEngagement_HappyPath(t *testing.T) {
	db := &fakeDynamo{getOut: &dynamodb.GetItemOutput{Item: map[string]types.AttributeValue{
		"id":        &types.AttributeValueMemberS{Value: "eng-1"},
		"name":      &types.AttributeValueMemberS{Value: "Payments"},
		"chatSpace": &types.AttributeValueMemberS{Value: "https://chat.google.com/room/AAQA?cls=7"},
	}}}
	s := mustEngagementStore(t, db)

	opt, err := s.GetEngagement(context.Background(), "eng-1")
	require.NoError(t, err)
	require.True(t, opt.IsSome())
	require.Equal(t, domain.EngagementRef{
		ID:           "eng-1",
		Name:         "Payments",
		ChatSpaceURL: "https://chat.google.com/room/AAQA?cls=7",
	}, opt.UnwrapOr(domain.EngagementRef{}))

	require.Equal(t, "engagements", *db.lastGetInput.TableName)
	require.Equal(t, "eng-1", db.lastGetInput.Key["id"].(*types.AttributeValueMemberS).Value)
}

func TestGetEngagement_NoChatSpace(t *testing.T) {
	db := &fakeDynamo{getOut: &dynamodb.GetItemOutput{Item: map[string]types.AttributeValue{
		"id": &types.AttributeValueMemberS{Value: "eng-1"},
	}}}
	s := mustEngagementStore(t, db)

	opt, err := s.GetEngagement(context.Background(), "eng-1")
	require.NoError(t, err)
	require.Empty(t, opt.UnwrapOr(domain.EngagementRef{ChatSpaceURL: "sentinel"}).ChatSpaceURL)
}

func TestGetEngagement_Missing(t *testing.T) {
	s := mustEngagementStore(t, &fakeDynamo{getOut: &dynamodb.GetItemOutput{}})

	opt, err := s.GetEngagement(context.Background(), "nope")
	require.NoError(t, err)
	require.True(t, opt.IsNone())
}

func TestGetEngagement_Error(t *testing.T) {
	s := mustEngagementStore(t, &fakeDynamo{getErr: errors.New("ResourceNotFoundException")})

	_, err := s.GetEngagement(context.Background(), "eng-1")
	require.ErrorContains(t, err, "GetEngagement")
	require.ErrorContains(t, err, "ResourceNotFoundException")
}

func TestGetEngagement_MalformedID(t *testing.T) {
	db := &fakeDynamo{getOut: &dynamodb.GetItemOutput{Item: map[string]types.AttributeValue{
		"id": &types.AttributeValueMemberN{Value: "7"},
	}}}
	s := mustEngagementStore(t, db)

	_, err := s.GetEngagement(context.Background(), "eng-1")
	require.ErrorContains(t, err, "not a string")
}
