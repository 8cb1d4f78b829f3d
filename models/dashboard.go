package models

// StatusCount is one slice of the submissions-by-status breakdown.
type StatusCount struct {
	Status SubmissionStatus `bson:"_id" json:"status"`
	Count  int64            `bson:"count" json:"count"`
}

// WebinarFill summarizes how full a webinar is.
type WebinarFill struct {
	WebinarID string  `json:"webinarId"`
	Title     string  `json:"title"`
	Capacity  int     `json:"capacity"`
	SeatsLeft int     `json:"seatsLeft"`
	FillRate  float64 `json:"fillRate"`
}

// DashboardStats is the admin dashboard payload.
type DashboardStats struct {
	ProjectCounts     []StatusCount `json:"projectCounts"`
	StartupCounts     []StatusCount `json:"startupCounts"`
	PendingReview     int64         `json:"pendingReview"`
	NewUsers          int64         `json:"newUsers"`
	ActiveMemberships int64         `json:"activeMemberships"`
	WebinarFills      []WebinarFill `json:"webinarFills"`
}
