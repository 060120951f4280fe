// Package mturk is a thin requester client for Amazon Mechanical Turk. It
// reads balances, assignments and qualified workers and aggregates the
// QuestionFormAnswers documents workers submit.
package mturk

import (
	"context"

	sdk "github.com/aws/aws-sdk-go-v2/service/mturk"
)

// PageSize is the MaxResults value sent on every list call. Only the first
// page is read.
const PageSize int32 = 100

// API is the subset of the MTurk service the client calls. The SDK client
// satisfies it; tests supply fakes.
type API interface {
	GetAccountBalance(ctx context.Context, params *sdk.GetAccountBalanceInput, optFns ...func(*sdk.Options)) (*sdk.GetAccountBalanceOutput, error)
	GetAssignment(ctx context.Context, params *sdk.GetAssignmentInput, optFns ...func(*sdk.Options)) (*sdk.GetAssignmentOutput, error)
	ListAssignmentsForHIT(ctx context.Context, params *sdk.ListAssignmentsForHITInput, optFns ...func(*sdk.Options)) (*sdk.ListAssignmentsForHITOutput, error)
	ListWorkersWithQualificationType(ctx context.Context, params *sdk.ListWorkersWithQualificationTypeInput, optFns ...func(*sdk.Options)) (*sdk.ListWorkersWithQualificationTypeOutput, error)
}

var _ API = (*sdk.Client)(nil)
