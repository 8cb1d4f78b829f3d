package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ApplicationStatus enumerates internship application outcomes.
type ApplicationStatus string

const (
	ApplicationAPPLIED  ApplicationStatus = "APPLIED"
	ApplicationACCEPTED ApplicationStatus = "ACCEPTED"
	ApplicationDECLINED ApplicationStatus = "DECLINED"
)

// Internship is a listing users can apply to.
type Internship struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	Title        string             `bson:"title" json:"title"`
	Company      string             `bson:"company" json:"company"`
	Location     string             `bson:"location,omitempty" json:"location,omitempty"`
	Remote       bool               `bson:"remote" json:"remote"`
	Description  string             `bson:"description" json:"description"`
	Requirements []string           `bson:"requirements,omitempty" json:"requirements,omitempty"`
	Active       bool               `bson:"active" json:"active"`
	CreatedBy    primitive.ObjectID `bson:"createdBy" json:"createdBy"`
	CreatedAt    time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// InternshipApplication is one user's application to a listing. A user can
// apply to a listing at most once.
type InternshipApplication struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	InternshipID  primitive.ObjectID `bson:"internshipId" json:"internshipId"`
	ApplicantID   primitive.ObjectID `bson:"applicantId" json:"applicantId"`
	ApplicantName string             `bson:"applicantName" json:"applicantName"`
	Email         string             `bson:"email" json:"email"`
	CoverLetter   string             `bson:"coverLetter,omitempty" json:"coverLetter,omitempty"`
	ResumeURL     string             `bson:"resumeUrl,omitempty" json:"resumeUrl,omitempty"`
	Status        ApplicationStatus  `bson:"status" json:"status"`
	ReviewNote    string             `bson:"reviewNote,omitempty" json:"reviewNote,omitempty"`
	CreatedAt     time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt     time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// CreateInternshipRequest is the admin payload for creating a listing.
type CreateInternshipRequest struct {
	Title        string   `json:"title" binding:"required"`
	Company      string   `json:"company" binding:"required"`
	Location     string   `json:"location,omitempty"`
	Remote       bool     `json:"remote"`
	Description  string   `json:"description" binding:"required"`
	Requirements []string `json:"requirements,omitempty"`
}

// ApplyInternshipRequest is the user payload for applying to a listing.
type ApplyInternshipRequest struct {
	CoverLetter string `json:"coverLetter,omitempty"`
	ResumeURL   string `json:"resumeUrl,omitempty"`
}

// ReviewApplicationRequest is the payload for accepting or declining an
// application.
type ReviewApplicationRequest struct {
	Accepted bool   `json:"accepted"`
	Note     string `json:"note,omitempty"`
}
