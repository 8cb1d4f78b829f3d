package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Known config types.
const (
	ConfigMembershipAutoExpire = "membership_auto_expire"
	ConfigWebinarReminder      = "webinar_reminder"
)

// SystemConfig is a stored configuration document read by the scheduler and
// admin surface.
type SystemConfig struct {
	ID         primitive.ObjectID     `bson:"_id,omitempty" json:"_id,omitempty"`
	ConfigType string                 `bson:"configType" json:"configType"`
	IsEnabled  bool                   `bson:"isEnabled" json:"isEnabled"`
	Config     map[string]interface{} `bson:"config,omitempty" json:"config,omitempty"`
	UpdatedAt  time.Time              `bson:"updatedAt" json:"updatedAt"`
}

// UpsertSystemConfigRequest is the admin payload for writing a config.
type UpsertSystemConfigRequest struct {
	ConfigType string                 `json:"configType" binding:"required"`
	IsEnabled  bool                   `json:"isEnabled"`
	Config     map[string]interface{} `json:"config,omitempty"`
}

// OperationLog is one audited mutating API call.
type OperationLog struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	UserID     string             `bson:"userId,omitempty" json:"userId,omitempty"`
	Username   string             `bson:"username,omitempty" json:"username,omitempty"`
	Method     string             `bson:"method" json:"method"`
	Path       string             `bson:"path" json:"path"`
	StatusCode int                `bson:"statusCode" json:"statusCode"`
	DurationMs int64              `bson:"durationMs" json:"durationMs"`
	Request    string             `bson:"request,omitempty" json:"request,omitempty"`
	CreatedAt  time.Time          `bson:"createdAt" json:"createdAt"`
}
