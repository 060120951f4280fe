package mturk

import (
	"context"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	sdk "github.com/aws/aws-sdk-go-v2/service/mturk"
	mturktypes "github.com/aws/aws-sdk-go-v2/service/mturk/types"
)

// fakeAPI records requests and returns canned responses.
type fakeAPI struct {
	balance        string
	assignments    map[string]mturktypes.Assignment
	hitAssignments []mturktypes.Assignment
	qualifications []mturktypes.Qualification
	err            error

	assignmentsInput *sdk.ListAssignmentsForHITInput
	workersInput     *sdk.ListWorkersWithQualificationTypeInput
}

func (f *fakeAPI) GetAccountBalance(ctx context.Context, params *sdk.GetAccountBalanceInput, optFns ...func(*sdk.Options)) (*sdk.GetAccountBalanceOutput, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &sdk.GetAccountBalanceOutput{AvailableBalance: aws.String(f.balance)}, nil
}

func (f *fakeAPI) GetAssignment(ctx context.Context, params *sdk.GetAssignmentInput, optFns ...func(*sdk.Options)) (*sdk.GetAssignmentOutput, error) {
	if f.err != nil {
		return nil, f.err
	}
	assignment, ok := f.assignments[aws.ToString(params.AssignmentId)]
	if !ok {
		return &sdk.GetAssignmentOutput{}, nil
	}
	return &sdk.GetAssignmentOutput{Assignment: &assignment}, nil
}

func (f *fakeAPI) ListAssignmentsForHIT(ctx context.Context, params *sdk.ListAssignmentsForHITInput, optFns ...func(*sdk.Options)) (*sdk.ListAssignmentsForHITOutput, error) {
	f.assignmentsInput = params
	if f.err != nil {
		return nil, f.err
	}
	return &sdk.ListAssignmentsForHITOutput{Assignments: f.hitAssignments}, nil
}

func (f *fakeAPI) ListWorkersWithQualificationType(ctx context.Context, params *sdk.ListWorkersWithQualificationTypeInput, optFns ...func(*sdk.Options)) (*sdk.ListWorkersWithQualificationTypeOutput, error) {
	f.workersInput = params
	if f.err != nil {
		return nil, f.err
	}
	return &sdk.ListWorkersWithQualificationTypeOutput{Qualifications: f.qualifications}, nil
}

func sdkAssignment(id, worker, answer string, submitted time.Time) mturktypes.Assignment {
	return mturktypes.Assignment{
		AssignmentId:     aws.String(id),
		WorkerId:         aws.String(worker),
		HITId:            aws.String("HIT1"),
		AssignmentStatus: mturktypes.AssignmentStatusSubmitted,
		SubmitTime:       aws.Time(submitted),
		Answer:           aws.String(answer),
	}
}

func sdkQualification(worker string, granted time.Time) mturktypes.Qualification {
	return mturktypes.Qualification{
		QualificationTypeId: aws.String("QUAL1"),
		WorkerId:            aws.String(worker),
		Status:              mturktypes.QualificationStatusGranted,
		GrantTime:           aws.Time(granted),
		IntegerValue:        aws.Int32(80),
	}
}
