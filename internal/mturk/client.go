package mturk

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	sdk "github.com/aws/aws-sdk-go-v2/service/mturk"

	"mturkqa/internal/config"
	"mturkqa/internal/logger"
)

// ErrNotFound reports a response that omitted the requested resource.
var ErrNotFound = errors.New("not found")

// Client issues requester calls against one MTurk endpoint.
type Client struct {
	api API
	log *logger.Logger
}

// New builds a client for cfg. Static keys from the profile are used when
// present; otherwise the AWS default credential chain applies.
func New(ctx context.Context, cfg config.Config, log *logger.Logger) (*Client, error) {
	if strings.TrimSpace(cfg.Region) == "" {
		return nil, fmt.Errorf("region is required")
	}
	endpoint := cfg.EndpointURL()
	opts := []func(*awsconfig.LoadOptions) error{awsconfig.WithRegion(cfg.Region)}
	if cfg.HasStaticCredentials() {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, "")))
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	api := sdk.NewFromConfig(awsCfg, func(o *sdk.Options) {
		o.BaseEndpoint = aws.String(endpoint)
	})
	if log == nil {
		log = logger.Nop()
	}
	log.Debug("mturk client ready",
		"profile", cfg.ProfileName,
		"endpoint", endpoint,
		"sandbox", cfg.Sandbox,
		"static_credentials", cfg.HasStaticCredentials(),
	)
	return NewWithAPI(api, log), nil
}

// NewWithAPI wraps an existing API implementation.
func NewWithAPI(api API, log *logger.Logger) *Client {
	if log == nil {
		log = logger.Nop()
	}
	return &Client{api: api, log: log}
}

// GetAccountBalance returns the available balance as reported, a decimal string.
func (c *Client) GetAccountBalance(ctx context.Context) (string, error) {
	start := time.Now()
	out, err := c.api.GetAccountBalance(ctx, &sdk.GetAccountBalanceInput{})
	if err != nil {
		c.log.Debug("get account balance failed", "error", err, "duration", time.Since(start))
		return "", fmt.Errorf("get account balance: %w", err)
	}
	balance := aws.ToString(out.AvailableBalance)
	c.log.Debug("get account balance", "balance", balance, "duration", time.Since(start))
	return balance, nil
}

// GetAssignment fetches one assignment by id.
func (c *Client) GetAssignment(ctx context.Context, id string) (Assignment, error) {
	start := time.Now()
	out, err := c.api.GetAssignment(ctx, &sdk.GetAssignmentInput{AssignmentId: aws.String(id)})
	if err != nil {
		c.log.Debug("get assignment failed", "assignment_id", id, "error", err)
		return Assignment{}, fmt.Errorf("get assignment %s: %w", id, err)
	}
	if out.Assignment == nil {
		return Assignment{}, fmt.Errorf("get assignment %s: %w", id, ErrNotFound)
	}
	c.log.Debug("get assignment", "assignment_id", id, "duration", time.Since(start))
	return assignmentFromSDK(*out.Assignment), nil
}

// ListAssignmentsForHIT returns the first page of assignments for hitID.
func (c *Client) ListAssignmentsForHIT(ctx context.Context, hitID string) ([]Assignment, error) {
	start := time.Now()
	out, err := c.api.ListAssignmentsForHIT(ctx, &sdk.ListAssignmentsForHITInput{
		HITId:      aws.String(hitID),
		MaxResults: aws.Int32(PageSize),
	})
	if err != nil {
		c.log.Debug("list assignments failed", "hit_id", hitID, "error", err)
		return nil, fmt.Errorf("list assignments for hit %s: %w", hitID, err)
	}
	assignments := make([]Assignment, 0, len(out.Assignments))
	for _, item := range out.Assignments {
		assignments = append(assignments, assignmentFromSDK(item))
	}
	c.log.Debug("list assignments",
		"hit_id", hitID,
		"count", len(assignments),
		"truncated", aws.ToString(out.NextToken) != "",
		"duration", time.Since(start),
	)
	return assignments, nil
}

// ListWorkersWithQualificationType returns the first page of workers holding
// qualID, ordered by grant time with ties kept in response order.
func (c *Client) ListWorkersWithQualificationType(ctx context.Context, qualID string) ([]Qualification, error) {
	start := time.Now()
	out, err := c.api.ListWorkersWithQualificationType(ctx, &sdk.ListWorkersWithQualificationTypeInput{
		QualificationTypeId: aws.String(qualID),
		MaxResults:          aws.Int32(PageSize),
	})
	if err != nil {
		c.log.Debug("list workers failed", "qualification_type_id", qualID, "error", err)
		return nil, fmt.Errorf("list workers with qualification type %s: %w", qualID, err)
	}
	qualifications := make([]Qualification, 0, len(out.Qualifications))
	for _, item := range out.Qualifications {
		qualifications = append(qualifications, qualificationFromSDK(item))
	}
	sort.SliceStable(qualifications, func(i, j int) bool {
		return qualifications[i].GrantTime.Before(qualifications[j].GrantTime)
	})
	c.log.Debug("list workers",
		"qualification_type_id", qualID,
		"count", len(qualifications),
		"duration", time.Since(start),
	)
	return qualifications, nil
}
