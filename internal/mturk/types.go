package mturk

import (
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	mturktypes "github.com/aws/aws-sdk-go-v2/service/mturk/types"
)

// Assignment is one worker's submission for a HIT.
type Assignment struct {
	ID         string
	WorkerID   string
	HITID      string
	Status     string
	AcceptTime time.Time
	SubmitTime time.Time
	// Answer is the raw QuestionFormAnswers document.
	Answer string
}

// Qualification is a qualification granted to a worker.
type Qualification struct {
	TypeID       string
	WorkerID     string
	Status       string
	GrantTime    time.Time
	IntegerValue *int32
}

func assignmentFromSDK(in mturktypes.Assignment) Assignment {
	return Assignment{
		ID:         aws.ToString(in.AssignmentId),
		WorkerID:   aws.ToString(in.WorkerId),
		HITID:      aws.ToString(in.HITId),
		Status:     string(in.AssignmentStatus),
		AcceptTime: aws.ToTime(in.AcceptTime),
		SubmitTime: aws.ToTime(in.SubmitTime),
		Answer:     aws.ToString(in.Answer),
	}
}

func qualificationFromSDK(in mturktypes.Qualification) Qualification {
	return Qualification{
		TypeID:       aws.ToString(in.QualificationTypeId),
		WorkerID:     aws.ToString(in.WorkerId),
		Status:       string(in.Status),
		GrantTime:    aws.ToTime(in.GrantTime),
		IntegerValue: in.IntegerValue,
	}
}
