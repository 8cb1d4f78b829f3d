package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MembershipStatus enumerates the billing states of a membership.
type MembershipStatus string

const (
	MembershipPENDING  MembershipStatus = "PENDING_PAYMENT"
	MembershipACTIVE   MembershipStatus = "ACTIVE"
	MembershipEXPIRED  MembershipStatus = "EXPIRED"
	MembershipCANCELED MembershipStatus = "CANCELED"
)

// MembershipPlan is a purchasable tier.
type MembershipPlan struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	Code         string             `bson:"code" json:"code"`
	Name         string             `bson:"name" json:"name"`
	Price        int64              `bson:"price" json:"price"` // smallest currency unit
	DurationDays int                `bson:"durationDays" json:"durationDays"`
	Perks        []string           `bson:"perks,omitempty" json:"perks,omitempty"`
	Active       bool               `bson:"active" json:"active"`
	CreatedAt    time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// Membership is one user's subscription to a plan. OrderID ties the record
// to the payment-provider transaction.
type Membership struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	UserID    primitive.ObjectID `bson:"userId" json:"userId"`
	PlanCode  string             `bson:"planCode" json:"planCode"`
	Status    MembershipStatus   `bson:"status" json:"status"`
	OrderID   string             `bson:"orderId" json:"orderId"`
	StartsAt  *time.Time         `bson:"startsAt,omitempty" json:"startsAt,omitempty"`
	ExpiresAt *time.Time         `bson:"expiresAt,omitempty" json:"expiresAt,omitempty"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// SubscribeRequest is the payload for starting a subscription.
type SubscribeRequest struct {
	PlanCode string `json:"planCode" binding:"required"`
}

// SubscribeResponse carries the payment redirect issued by the provider.
type SubscribeResponse struct {
	OrderID     string `json:"orderId"`
	RedirectURL string `json:"redirectUrl"`
	Token       string `json:"token,omitempty"`
}
