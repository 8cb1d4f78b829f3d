package controllers

import (
	"net/http"
	"time"

	"github.com/launchhub/portal_end/models"
	"github.com/launchhub/portal_end/repository"
	"github.com/launchhub/portal_end/utils"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// GetSystemConfigs returns every stored configuration document. Admin only.
func GetSystemConfigs(c *gin.Context) {
	collection := repository.Collection(repository.SystemConfigsCollection)
	cursor, err := collection.Find(repository.GetContext(), bson.M{})
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	configs := []models.SystemConfig{}
	if err := cursor.All(repository.GetContext(), &configs); err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.SuccessResponse(c, configs, "")
}

// UpsertSystemConfig creates or replaces one configuration document keyed
// by its type. The scheduler reads these on every tick, so a toggle takes
// effect without a restart.
func UpsertSystemConfig(c *gin.Context) {
	var req models.UpsertSystemConfigRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, "invalid request parameters: "+err.Error(), http.StatusBadRequest)
		return
	}

	switch req.ConfigType {
	case models.ConfigMembershipAutoExpire, models.ConfigWebinarReminder:
	default:
		utils.HandleError(c, utils.CreateValidationError("unknown config type"))
		return
	}

	collection := repository.Collection(repository.SystemConfigsCollection)

	var saved models.SystemConfig
	err := collection.FindOneAndUpdate(
		repository.GetContext(),
		bson.M{"configType": req.ConfigType},
		bson.M{
			"$set": bson.M{
				"isEnabled": req.IsEnabled,
				"config":    req.Config,
				"updatedAt": time.Now(),
			},
			"$setOnInsert": bson.M{"_id": primitive.NewObjectID()},
		},
		options.FindOneAndUpdate().
			SetUpsert(true).
			SetReturnDocument(options.After),
	).Decode(&saved)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.Logger.Info().
		Str("configType", saved.ConfigType).
		Bool("enabled", saved.IsEnabled).
		Msg("system config updated")
	utils.SuccessResponse(c, saved, "config saved")
}

// GetOperationLogs pages through the audit trail of mutating API calls.
// Admin only.
func GetOperationLogs(c *gin.Context) {
	skip, limit := paging(c)

	collection := repository.Collection(repository.ApiOperationLogsCollection)
	total, err := collection.CountDocuments(repository.GetContext(), bson.M{})
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	cursor, err := collection.Find(
		repository.GetContext(),
		bson.M{},
		options.Find().
			SetSort(bson.M{"createdAt": -1}).
			SetSkip(skip).
			SetLimit(limit),
	)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	logs := []models.OperationLog{}
	if err := cursor.All(repository.GetContext(), &logs); err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{"items": logs, "total": total}, "")
}
