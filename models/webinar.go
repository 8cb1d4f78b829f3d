package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Webinar is a scheduled online session with limited capacity.
type Webinar struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	Title       string             `bson:"title" json:"title"`
	Speaker     string             `bson:"speaker" json:"speaker"`
	Description string             `bson:"description,omitempty" json:"description,omitempty"`
	StartsAt    time.Time          `bson:"startsAt" json:"startsAt"`
	DurationMin int                `bson:"durationMin" json:"durationMin"`
	Capacity    int                `bson:"capacity" json:"capacity"`
	SeatsLeft   int                `bson:"seatsLeft" json:"seatsLeft"`
	MeetingURL  string             `bson:"meetingUrl,omitempty" json:"meetingUrl,omitempty"`
	Active      bool               `bson:"active" json:"active"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// WebinarRegistration records a confirmed seat.
type WebinarRegistration struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	WebinarID  primitive.ObjectID `bson:"webinarId" json:"webinarId"`
	UserID     primitive.ObjectID `bson:"userId" json:"userId"`
	Username   string             `bson:"username" json:"username"`
	Email      string             `bson:"email" json:"email"`
	ReminderAt *time.Time         `bson:"reminderAt,omitempty" json:"reminderAt,omitempty"`
	CreatedAt  time.Time          `bson:"createdAt" json:"createdAt"`
}

// CreateWebinarRequest is the admin payload for scheduling a webinar.
type CreateWebinarRequest struct {
	Title       string    `json:"title" binding:"required"`
	Speaker     string    `json:"speaker" binding:"required"`
	Description string    `json:"description,omitempty"`
	StartsAt    time.Time `json:"startsAt" binding:"required"`
	DurationMin int       `json:"durationMin" binding:"required"`
	Capacity    int       `json:"capacity" binding:"required"`
	MeetingURL  string    `json:"meetingUrl,omitempty"`
}

// RegisterWebinarRequest confirms a registration with the emailed code.
type RegisterWebinarRequest struct {
	Code string `json:"code" binding:"required"`
}
