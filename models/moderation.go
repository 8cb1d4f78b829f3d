package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ModerationRecord is one entry in a submission's moderation history. The
// history is append-only; the submission itself only keeps the latest notes.
type ModerationRecord struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	SubmissionID  primitive.ObjectID `bson:"submissionId" json:"submissionId"`
	Kind          SubmissionKind     `bson:"kind" json:"kind"`
	OldStatus     SubmissionStatus   `bson:"oldStatus" json:"oldStatus"`
	NewStatus     SubmissionStatus   `bson:"newStatus" json:"newStatus"`
	ModeratorID   primitive.ObjectID `bson:"moderatorId" json:"moderatorId"`
	ModeratorName string             `bson:"moderatorName" json:"moderatorName"`
	Note          string             `bson:"note,omitempty" json:"note,omitempty"`
	CreatedAt     time.Time          `bson:"createdAt" json:"createdAt"`
}

// ModerationDecisionRequest carries the moderator input for reject and
// request-changes decisions.
type ModerationDecisionRequest struct {
	Note string `json:"note"`
}

// StatusEvent is the message published to the event stream when a
// submission changes state.
type StatusEvent struct {
	SubmissionID string           `json:"submissionId"`
	Kind         SubmissionKind   `json:"kind"`
	OldStatus    SubmissionStatus `json:"oldStatus"`
	NewStatus    SubmissionStatus `json:"newStatus"`
	ActorID      string           `json:"actorId"`
	OccurredAt   time.Time        `json:"occurredAt"`
}
