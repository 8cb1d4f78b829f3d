package controllers

import (
	"net/http"
	"time"

	"github.com/launchhub/portal_end/models"
	"github.com/launchhub/portal_end/repository"
	"github.com/launchhub/portal_end/utils"
	"github.com/launchhub/portal_end/workflow"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// CreateStartup creates a draft startup profile owned by the caller.
func CreateStartup(c *gin.Context) {
	user, err := utils.GetUser(c)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	var req models.CreateStartupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, "invalid request parameters: "+err.Error(), http.StatusBadRequest)
		return
	}

	if err := validateMedia(req.Media, req.CoverID); err != nil {
		utils.HandleError(c, err)
		return
	}

	ownerID, err := primitive.ObjectIDFromHex(user.ID)
	if err != nil {
		utils.ErrorResponse(c, "invalid user id", http.StatusBadRequest)
		return
	}

	now := time.Now()
	startup := models.Startup{
		ID:          primitive.NewObjectID(),
		OwnerID:     ownerID,
		OwnerName:   user.Username,
		Name:        req.Name,
		Pitch:       req.Pitch,
		Description: req.Description,
		Founders:    req.Founders,
		Website:     req.Website,
		Links:       req.Links,
		Tags:        req.Tags,
		Stack:       req.Stack,
		Media:       req.Media,
		CoverID:     req.CoverID,
		Lifecycle:   models.Lifecycle{Status: models.StatusPENDING},
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	collection := repository.Collection(repository.StartupsCollection)
	if _, err := collection.InsertOne(repository.GetContext(), startup); err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.Logger.Info().Str("name", req.Name).Str("owner", user.ID).Msg("startup created")
	utils.SuccessResponse(c, startup, "startup created", http.StatusCreated)
}

// GetMyStartups lists the caller's startups, most recently updated first.
func GetMyStartups(c *gin.Context) {
	user, err := utils.GetUser(c)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	ownerID, err := primitive.ObjectIDFromHex(user.ID)
	if err != nil {
		utils.ErrorResponse(c, "invalid user id", http.StatusBadRequest)
		return
	}

	collection := repository.Collection(repository.StartupsCollection)
	cursor, err := collection.Find(
		repository.GetContext(),
		bson.M{"ownerId": ownerID},
		options.Find().SetSort(bson.M{"updatedAt": -1}),
	)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	startups := []models.Startup{}
	if err := cursor.All(repository.GetContext(), &startups); err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.SuccessResponse(c, startups, "")
}

// GetStartup returns a single startup, gated like projects.
func GetStartup(c *gin.Context) {
	user, err := utils.GetUser(c)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		utils.ErrorResponse(c, "invalid id", http.StatusBadRequest)
		return
	}

	collection := repository.Collection(repository.StartupsCollection)
	var startup models.Startup
	if err := collection.FindOne(repository.GetContext(), bson.M{"_id": id}).Decode(&startup); err != nil {
		if err == mongo.ErrNoDocuments {
			utils.HandleError(c, utils.CreateNotFoundError("startup"))
			return
		}
		utils.HandleError(c, err)
		return
	}

	if !canViewSubmission(user, startup.OwnerID, startup.Status) {
		utils.HandleError(c, utils.CreateForbiddenError())
		return
	}

	utils.SuccessResponse(c, startup, "")
}

// UpdateStartup edits an owned startup's content fields.
func UpdateStartup(c *gin.Context) {
	user, err := utils.GetUser(c)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		utils.ErrorResponse(c, "invalid id", http.StatusBadRequest)
		return
	}

	var req models.UpdateStartupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, "invalid request parameters: "+err.Error(), http.StatusBadRequest)
		return
	}

	doc, err := loadSubmission(repository.StartupsCollection, id)
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	if err := checkContentEdit(doc, user); err != nil {
		utils.HandleError(c, err)
		return
	}

	set := bson.M{"updatedAt": time.Now()}
	if req.Name != "" {
		set["name"] = req.Name
	}
	if req.Pitch != "" {
		set["pitch"] = req.Pitch
	}
	if req.Description != nil {
		set["description"] = *req.Description
	}
	if req.Founders != nil {
		set["founders"] = req.Founders
	}
	if req.Website != nil {
		set["website"] = *req.Website
	}
	if req.Links != nil {
		set["links"] = req.Links
	}
	if req.Tags != nil {
		set["tags"] = req.Tags
	}
	if req.Stack != nil {
		set["stack"] = req.Stack
	}
	if req.Media != nil {
		if err := validateMedia(req.Media, stringOr(req.CoverID, "")); err != nil {
			utils.HandleError(c, err)
			return
		}
		set["media"] = req.Media
	}
	if req.CoverID != nil {
		set["coverId"] = *req.CoverID
	}

	collection := repository.Collection(repository.StartupsCollection)
	var updated models.Startup
	err = collection.FindOneAndUpdate(
		repository.GetContext(),
		bson.M{"_id": id},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&updated)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.SuccessResponse(c, updated, "startup updated")
}

// SubmitStartup moves an owned startup into review.
func SubmitStartup(c *gin.Context) {
	transitionHandler(c, models.KindStartup, repository.StartupsCollection, workflow.ActionSubmit)
}

// DeleteStartup removes a startup under the shared delete policy.
func DeleteStartup(c *gin.Context) {
	deleteSubmission(c, models.KindStartup, repository.StartupsCollection)
}
