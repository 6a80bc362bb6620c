package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	awsdynamodb "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	awsssm "github.com/aws/aws-sdk-go-v2/service/ssm"

	"engagement-tracker/internal/integrations/anthropic"
	"engagement-tracker/internal/integrations/chatmcp"
	"engagement-tracker/internal/integrations/paramstore"
	"engagement-tracker/internal/repository"
	"engagement-tracker/internal/usecase"
)

// NewChatSummaryService loads the default AWS configuration and builds the
// orchestrator with all of its production dependencies.
func NewChatSummaryService(ctx context.Context, cfg Config, logger *slog.Logger) (*usecase.ChatSummaryService, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("app: load AWS config: %w", err)
	}
	return newChatSummaryService(awsCfg, cfg, logger)
}

func newChatSummaryService(awsCfg aws.Config, cfg Config, logger *slog.Logger) (*usecase.ChatSummaryService, error) {
	ssmClient, err := paramstore.New(awsssm.NewFromConfig(awsCfg))
	if err != nil {
		return nil, fmt.Errorf("app: SSM client: %w", err)
	}
	secrets, err := paramstore.NewCache(ssmClient)
	if err != nil {
		return nil, fmt.Errorf("app: secret cache: %w", err)
	}

	dynamoClient := awsdynamodb.NewFromConfig(awsCfg)
	engagements, err := repository.NewEngagementStore(dynamoClient, cfg.EngagementsTable)
	if err != nil {
		return nil, fmt.Errorf("app: engagement store: %w", err)
	}
	summaries, err := repository.NewSummaryCache(dynamoClient, cfg.ChatSummariesTable)
	if err != nil {
		return nil, fmt.Errorf("app: summary cache: %w", err)
	}

	var llmOpts []anthropic.Option
	if cfg.AnthropicBaseURL != "" {
		llmOpts = append(llmOpts, anthropic.WithBaseURL(cfg.AnthropicBaseURL))
	}
	llm, err := anthropic.NewClient(cfg.AnthropicModel, llmOpts...)
	if err != nil {
		return nil, fmt.Errorf("app: anthropic client: %w", err)
	}

	return usecase.NewChatSummaryService(
		engagements,
		summaries,
		secrets,
		chatmcp.NewClient(),
		llm,
		cfg.ParamPrefix,
		usecase.WithLogger(logger),
	)
}
