package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// SubmissionStatus enumerates the moderation lifecycle states.
type SubmissionStatus string

const (
	StatusPENDING           SubmissionStatus = "PENDING"
	StatusSUBMITTED         SubmissionStatus = "SUBMITTED"
	StatusAPPROVED          SubmissionStatus = "APPROVED"
	StatusFEATURED          SubmissionStatus = "FEATURED"
	StatusCHANGES_REQUESTED SubmissionStatus = "CHANGES_REQUESTED"
	StatusREJECTED          SubmissionStatus = "REJECTED"
)

// ValidStatus reports whether s is a known lifecycle state.
func ValidStatus(s SubmissionStatus) bool {
	switch s {
	case StatusPENDING, StatusSUBMITTED, StatusAPPROVED, StatusFEATURED,
		StatusCHANGES_REQUESTED, StatusREJECTED:
		return true
	}
	return false
}

// SubmissionKind distinguishes the two submission collections.
type SubmissionKind string

const (
	KindProject SubmissionKind = "project"
	KindStartup SubmissionKind = "startup"
)

// MediaType enumerates the supported media kinds.
type MediaType string

const (
	MediaIMAGE MediaType = "IMAGE"
	MediaVIDEO MediaType = "VIDEO"
)

// MaxMediaItems caps the media collection per submission (cover + 4 extra).
const MaxMediaItems = 5

// MediaItem is one entry in a submission's ordered media list.
type MediaItem struct {
	ID   string    `bson:"id" json:"id"`
	URL  string    `bson:"url" json:"url"`
	Type MediaType `bson:"type" json:"type"`
}

// TeamMember describes one person on a project team or founder list.
type TeamMember struct {
	Name string `bson:"name" json:"name"`
	Role string `bson:"role,omitempty" json:"role,omitempty"`
	Link string `bson:"link,omitempty" json:"link,omitempty"`
}

// Lifecycle holds the moderation fields shared by projects and startups.
// ModNotes is overwritten, never appended, on each reject / request-changes.
// FeaturedAt is a historical marker and survives unfeature.
type Lifecycle struct {
	Status      SubmissionStatus `bson:"status" json:"status"`
	ModNotes    string           `bson:"modNotes,omitempty" json:"modNotes,omitempty"`
	SubmittedAt *time.Time       `bson:"submittedAt,omitempty" json:"submittedAt,omitempty"`
	FeaturedAt  *time.Time       `bson:"featuredAt,omitempty" json:"featuredAt,omitempty"`
}

// Project is a user-submitted project.
type Project struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	Slug        string             `bson:"slug" json:"slug"`
	OwnerID     primitive.ObjectID `bson:"ownerId" json:"ownerId"`
	OwnerName   string             `bson:"ownerName" json:"ownerName"`
	Title       string             `bson:"title" json:"title"`
	Summary     string             `bson:"summary" json:"summary"`
	Description string             `bson:"description,omitempty" json:"description,omitempty"`
	Team        []TeamMember       `bson:"team,omitempty" json:"team,omitempty"`
	Links       []string           `bson:"links,omitempty" json:"links,omitempty"`
	Tags        []string           `bson:"tags,omitempty" json:"tags,omitempty"`
	Stack       []string           `bson:"stack,omitempty" json:"stack,omitempty"`
	Media       []MediaItem        `bson:"media,omitempty" json:"media,omitempty"`
	CoverID     string             `bson:"coverId,omitempty" json:"coverId,omitempty"`
	Lifecycle   `bson:",inline"`
	CreatedAt   time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time `bson:"updatedAt" json:"updatedAt"`
}

// Startup is a user-submitted startup profile.
type Startup struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	OwnerID     primitive.ObjectID `bson:"ownerId" json:"ownerId"`
	OwnerName   string             `bson:"ownerName" json:"ownerName"`
	Name        string             `bson:"name" json:"name"`
	Pitch       string             `bson:"pitch" json:"pitch"`
	Description string             `bson:"description,omitempty" json:"description,omitempty"`
	Founders    []TeamMember       `bson:"founders,omitempty" json:"founders,omitempty"`
	Website     string             `bson:"website,omitempty" json:"website,omitempty"`
	Links       []string           `bson:"links,omitempty" json:"links,omitempty"`
	Tags        []string           `bson:"tags,omitempty" json:"tags,omitempty"`
	Stack       []string           `bson:"stack,omitempty" json:"stack,omitempty"`
	Media       []MediaItem        `bson:"media,omitempty" json:"media,omitempty"`
	CoverID     string             `bson:"coverId,omitempty" json:"coverId,omitempty"`
	Lifecycle   `bson:",inline"`
	CreatedAt   time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time `bson:"updatedAt" json:"updatedAt"`
}

// SubmissionSummary is the flattened row served to moderation queues and
// owner dashboards, independent of the submission kind.
type SubmissionSummary struct {
	ID          string           `bson:"-" json:"_id"`
	Kind        SubmissionKind   `bson:"-" json:"kind"`
	Title       string           `bson:"-" json:"title"`
	OwnerName   string           `bson:"-" json:"ownerName"`
	Status      SubmissionStatus `bson:"-" json:"status"`
	ModNotes    string           `bson:"-" json:"modNotes,omitempty"`
	SubmittedAt *time.Time       `bson:"-" json:"submittedAt,omitempty"`
	FeaturedAt  *time.Time       `bson:"-" json:"featuredAt,omitempty"`
}

// CreateProjectRequest is the payload for creating a project draft.
type CreateProjectRequest struct {
	Title       string       `json:"title" binding:"required"`
	Summary     string       `json:"summary" binding:"required"`
	Description string       `json:"description,omitempty"`
	Team        []TeamMember `json:"team,omitempty"`
	Links       []string     `json:"links,omitempty"`
	Tags        []string     `json:"tags,omitempty"`
	Stack       []string     `json:"stack,omitempty"`
	Media       []MediaItem  `json:"media,omitempty"`
	CoverID     string       `json:"coverId,omitempty"`
}

// UpdateProjectRequest is the payload for editing a project draft. Empty
// fields are left untouched; slices replace the stored value when present.
type UpdateProjectRequest struct {
	Title       string       `json:"title,omitempty"`
	Summary     string       `json:"summary,omitempty"`
	Description *string      `json:"description,omitempty"`
	Team        []TeamMember `json:"team,omitempty"`
	Links       []string     `json:"links,omitempty"`
	Tags        []string     `json:"tags,omitempty"`
	Stack       []string     `json:"stack,omitempty"`
	Media       []MediaItem  `json:"media,omitempty"`
	CoverID     *string      `json:"coverId,omitempty"`
}

// CreateStartupRequest is the payload for creating a startup draft.
type CreateStartupRequest struct {
	Name        string       `json:"name" binding:"required"`
	Pitch       string       `json:"pitch" binding:"required"`
	Description string       `json:"description,omitempty"`
	Founders    []TeamMember `json:"founders,omitempty"`
	Website     string       `json:"website,omitempty"`
	Links       []string     `json:"links,omitempty"`
	Tags        []string     `json:"tags,omitempty"`
	Stack       []string     `json:"stack,omitempty"`
	Media       []MediaItem  `json:"media,omitempty"`
	CoverID     string       `json:"coverId,omitempty"`
}

// UpdateStartupRequest is the payload for editing a startup draft.
type UpdateStartupRequest struct {
	Name        string       `json:"name,omitempty"`
	Pitch       string       `json:"pitch,omitempty"`
	Description *string      `json:"description,omitempty"`
	Founders    []TeamMember `json:"founders,omitempty"`
	Website     *string      `json:"website,omitempty"`
	Links       []string     `json:"links,omitempty"`
	Tags        []string     `json:"tags,omitempty"`
	Stack       []string     `json:"stack,omitempty"`
	Media       []MediaItem  `json:"media,omitempty"`
	CoverID     *string      `json:"coverId,omitempty"`
}
