package controllers

import (
	"net/http"
	"time"

	"github.com/launchhub/portal_end/models"
	"github.com/launchhub/portal_end/repository"
	"github.com/launchhub/portal_end/service"
	"github.com/launchhub/portal_end/utils"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// CreateMembershipPlanRequest is the admin payload for adding a tier.
type CreateMembershipPlanRequest struct {
	Code         string   `json:"code" binding:"required"`
	Name         string   `json:"name" binding:"required"`
	Price        int64    `json:"price" binding:"required"`
	DurationDays int      `json:"durationDays" binding:"required"`
	Perks        []string `json:"perks,omitempty"`
}

// CreateMembershipPlan adds a purchasable tier. Admin only.
func CreateMembershipPlan(c *gin.Context) {
	var req CreateMembershipPlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, "invalid request parameters: "+err.Error(), http.StatusBadRequest)
		return
	}

	if req.Price < 1 || req.DurationDays < 1 {
		utils.HandleError(c, utils.CreateValidationError("price and durationDays must be positive"))
		return
	}

	now := time.Now()
	plan := models.MembershipPlan{
		ID:           primitive.NewObjectID(),
		Code:         req.Code,
		Name:         req.Name,
		Price:        req.Price,
		DurationDays: req.DurationDays,
		Perks:        req.Perks,
		Active:       true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	collection := repository.Collection(repository.MembershipPlansCollection)
	if _, err := collection.InsertOne(repository.GetContext(), plan); err != nil {
		if repository.IsDuplicateKeyError(err) {
			utils.ErrorResponse(c, "a plan with this code already exists", http.StatusConflict)
			return
		}
		utils.HandleError(c, err)
		return
	}

	utils.SuccessResponse(c, plan, "plan created", http.StatusCreated)
}

// ListMembershipPlans returns active tiers, cheapest first.
func ListMembershipPlans(c *gin.Context) {
	collection := repository.Collection(repository.MembershipPlansCollection)
	cursor, err := collection.Find(
		repository.GetContext(),
		bson.M{"active": true},
		options.Find().SetSort(bson.M{"price": 1}),
	)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	plans := []models.MembershipPlan{}
	if err := cursor.All(repository.GetContext(), &plans); err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.SuccessResponse(c, plans, "")
}

// Subscribe opens a payment transaction for a plan and records a pending
// membership keyed by the provider order id. Payment settles via webhook.
func Subscribe(c *gin.Context) {
	user, err := utils.GetUser(c)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	var req models.SubscribeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, "invalid request parameters: "+err.Error(), http.StatusBadRequest)
		return
	}

	var plan models.MembershipPlan
	err = repository.Collection(repository.MembershipPlansCollection).
		FindOne(repository.GetContext(), bson.M{"code": req.PlanCode, "active": true}).
		Decode(&plan)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			utils.HandleError(c, utils.CreateNotFoundError("membership plan"))
			return
		}
		utils.HandleError(c, err)
		return
	}

	account, err := loadAccount(user.ID)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	orderID := service.NewOrderID(user.ID, plan.Code)
	token, redirectURL, err := service.CreateSubscriptionTransaction(orderID, plan, account)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	now := time.Now()
	membership := models.Membership{
		ID:        primitive.NewObjectID(),
		UserID:    account.ID,
		PlanCode:  plan.Code,
		Status:    models.MembershipPENDING,
		OrderID:   orderID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	_, err = repository.Collection(repository.MembershipsCollection).
		InsertOne(repository.GetContext(), membership)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.Logger.Info().Str("orderId", orderID).Str("plan", plan.Code).Msg("subscription started")
	utils.SuccessResponse(c, models.SubscribeResponse{
		OrderID:     orderID,
		RedirectURL: redirectURL,
		Token:       token,
	}, "payment transaction created", http.StatusCreated)
}

// paymentNotification is the relevant slice of the provider's webhook body.
type paymentNotification struct {
	OrderID           string `json:"order_id" binding:"required"`
	TransactionStatus string `json:"transaction_status" binding:"required"`
	FraudStatus       string `json:"fraud_status"`
}

// HandlePaymentNotification settles a pending membership from the payment
// provider's webhook. The endpoint is unauthenticated; it is idempotent and
// only ever moves memberships forward, so replays are harmless.
func HandlePaymentNotification(c *gin.Context) {
	var n paymentNotification
	if err := c.ShouldBindJSON(&n); err != nil {
		utils.ErrorResponse(c, "invalid notification payload", http.StatusBadRequest)
		return
	}

	var membership models.Membership
	err := repository.Collection(repository.MembershipsCollection).
		FindOne(repository.GetContext(), bson.M{"orderId": n.OrderID}).
		Decode(&membership)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			utils.HandleError(c, utils.CreateNotFoundError("membership order"))
			return
		}
		utils.HandleError(c, err)
		return
	}

	settled := (n.TransactionStatus == "capture" && n.FraudStatus == "accept") ||
		n.TransactionStatus == "settlement"
	failed := n.TransactionStatus == "deny" ||
		n.TransactionStatus == "cancel" ||
		n.TransactionStatus == "expire"

	switch {
	case settled:
		if err := activateMembership(membership); err != nil {
			utils.HandleError(c, err)
			return
		}
	case failed:
		_, err := repository.Collection(repository.MembershipsCollection).UpdateOne(
			repository.GetContext(),
			bson.M{"orderId": n.OrderID, "status": models.MembershipPENDING},
			bson.M{"$set": bson.M{"status": models.MembershipCANCELED, "updatedAt": time.Now()}},
		)
		if err != nil {
			utils.HandleError(c, err)
			return
		}
	default:
		// pending / challenge: nothing to do yet
	}

	utils.Logger.Info().
		Str("orderId", n.OrderID).
		Str("transactionStatus", n.TransactionStatus).
		Msg("payment notification processed")
	utils.SuccessResponse(c, gin.H{"orderId": n.OrderID}, "")
}

// activateMembership turns a pending membership active. If the user already
// holds an active membership, the new period extends the current expiry.
func activateMembership(membership models.Membership) error {
	if membership.Status == models.MembershipACTIVE {
		return nil
	}

	var plan models.MembershipPlan
	err := repository.Collection(repository.MembershipPlansCollection).
		FindOne(repository.GetContext(), bson.M{"code": membership.PlanCode}).
		Decode(&plan)
	if err != nil {
		return err
	}

	now := time.Now()
	start := now

	var current models.Membership
	err = repository.Collection(repository.MembershipsCollection).
		FindOne(repository.GetContext(), bson.M{
			"userId":    membership.UserID,
			"status":    models.MembershipACTIVE,
			"expiresAt": bson.M{"$gt": now},
		}).
		Decode(&current)
	if err == nil && current.ExpiresAt != nil {
		start = *current.ExpiresAt
	} else if err != nil && err != mongo.ErrNoDocuments {
		return err
	}

	expires := start.AddDate(0, 0, plan.DurationDays)

	_, err = repository.Collection(repository.MembershipsCollection).UpdateOne(
		repository.GetContext(),
		bson.M{"orderId": membership.OrderID, "status": models.MembershipPENDING},
		bson.M{"$set": bson.M{
			"status":    models.MembershipACTIVE,
			"startsAt":  start,
			"expiresAt": expires,
			"updatedAt": now,
		}},
	)
	return err
}

// GetMyMembership returns the caller's most relevant membership: the active
// one if any, otherwise the latest record.
func GetMyMembership(c *gin.Context) {
	user, err := utils.GetUser(c)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	userID, err := primitive.ObjectIDFromHex(user.ID)
	if err != nil {
		utils.ErrorResponse(c, "invalid user id", http.StatusBadRequest)
		return
	}

	collection := repository.Collection(repository.MembershipsCollection)

	var membership models.Membership
	err = collection.FindOne(
		repository.GetContext(),
		bson.M{"userId": userID, "status": models.MembershipACTIVE},
	).Decode(&membership)
	if err == mongo.ErrNoDocuments {
		err = collection.FindOne(
			repository.GetContext(),
			bson.M{"userId": userID},
			options.FindOne().SetSort(bson.M{"createdAt": -1}),
		).Decode(&membership)
	}
	if err != nil {
		if err == mongo.ErrNoDocuments {
			utils.SuccessResponse(c, nil, "no membership")
			return
		}
		utils.HandleError(c, err)
		return
	}

	utils.SuccessResponse(c, membership, "")
}
