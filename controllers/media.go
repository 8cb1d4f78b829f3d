package controllers

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/launchhub/portal_end/models"
	"github.com/launchhub/portal_end/repository"
	"github.com/launchhub/portal_end/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// RegisterMediaRequest declares a media asset before attaching it.
type RegisterMediaRequest struct {
	URL  string           `json:"url" binding:"required"`
	Type models.MediaType `json:"type" binding:"required"`
}

// RegisterMedia mints an id for an externally hosted media asset. The
// asset itself lives wherever the URL points; we only track the reference.
func RegisterMedia(c *gin.Context) {
	var req RegisterMediaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, "invalid request parameters: "+err.Error(), http.StatusBadRequest)
		return
	}

	if req.Type != models.MediaIMAGE && req.Type != models.MediaVIDEO {
		utils.HandleError(c, utils.CreateValidationError("media type must be IMAGE or VIDEO"))
		return
	}
	if !strings.HasPrefix(req.URL, "http://") && !strings.HasPrefix(req.URL, "https://") {
		utils.HandleError(c, utils.CreateValidationError("media url must be absolute"))
		return
	}

	item := models.MediaItem{
		ID:   uuid.NewString(),
		URL:  req.URL,
		Type: req.Type,
	}

	utils.SuccessResponse(c, item, "media registered", http.StatusCreated)
}

// AttachMedia appends a registered media item to an owned submission,
// enforcing the per-submission cap.
func AttachMedia(c *gin.Context) {
	user, err := utils.GetUser(c)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	_, collectionName, err := parseKind(c.Param("kind"))
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		utils.ErrorResponse(c, "invalid id", http.StatusBadRequest)
		return
	}

	var item models.MediaItem
	if err := c.ShouldBindJSON(&item); err != nil {
		utils.ErrorResponse(c, "invalid request parameters: "+err.Error(), http.StatusBadRequest)
		return
	}
	if item.ID == "" {
		item.ID = uuid.NewString()
	}

	doc, err := loadSubmission(collectionName, id)
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	if err := checkContentEdit(doc, user); err != nil {
		utils.HandleError(c, err)
		return
	}

	// The size guard lives in the update filter so two concurrent attaches
	// cannot push the list past the cap.
	collection := repository.Collection(collectionName)
	filter := bson.M{
		"_id": id,
		"$or": []bson.M{
			{"media": bson.M{"$exists": false}},
			{fmt.Sprintf("media.%d", models.MaxMediaItems-1): bson.M{"$exists": false}},
		},
	}
	result, err := collection.UpdateOne(
		repository.GetContext(),
		filter,
		bson.M{
			"$push": bson.M{"media": item},
			"$set":  bson.M{"updatedAt": time.Now()},
		},
	)
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	if result.MatchedCount == 0 {
		utils.HandleError(c, utils.CreateValidationError(
			fmt.Sprintf("at most %d media items are allowed", models.MaxMediaItems)))
		return
	}

	utils.SuccessResponse(c, item, "media attached")
}

// DetachMedia removes a media item from an owned submission. Removing the
// cover also clears the cover reference.
func DetachMedia(c *gin.Context) {
	user, err := utils.GetUser(c)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	_, collectionName, err := parseKind(c.Param("kind"))
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		utils.ErrorResponse(c, "invalid id", http.StatusBadRequest)
		return
	}
	mediaID := c.Param("mediaId")

	doc, err := loadSubmission(collectionName, id)
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	if err := checkContentEdit(doc, user); err != nil {
		utils.HandleError(c, err)
		return
	}

	update := bson.M{
		"$pull": bson.M{"media": bson.M{"id": mediaID}},
		"$set":  bson.M{"updatedAt": time.Now()},
	}

	collection := repository.Collection(collectionName)
	result, err := collection.UpdateOne(repository.GetContext(), bson.M{"_id": id}, update)
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	if result.ModifiedCount == 0 {
		utils.HandleError(c, utils.CreateNotFoundError("media item"))
		return
	}

	// Clearing a dangling cover is best effort on the same document.
	_, err = collection.UpdateOne(
		repository.GetContext(),
		bson.M{"_id": id, "coverId": mediaID},
		bson.M{"$set": bson.M{"coverId": ""}},
	)
	if err != nil {
		utils.Logger.Error().Err(err).Str("id", id.Hex()).Msg("failed to clear cover reference")
	}

	utils.SuccessResponse(c, gin.H{"mediaId": mediaID}, "media removed")
}

// SetCover points the cover at one of the attached media items.
func SetCover(c *gin.Context) {
	user, err := utils.GetUser(c)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	_, collectionName, err := parseKind(c.Param("kind"))
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		utils.ErrorResponse(c, "invalid id", http.StatusBadRequest)
		return
	}
	mediaID := c.Param("mediaId")

	doc, err := loadSubmission(collectionName, id)
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	if err := checkContentEdit(doc, user); err != nil {
		utils.HandleError(c, err)
		return
	}

	collection := repository.Collection(collectionName)
	var updated struct {
		CoverID string `bson:"coverId"`
	}
	err = collection.FindOneAndUpdate(
		repository.GetContext(),
		bson.M{"_id": id, "media.id": mediaID},
		bson.M{"$set": bson.M{"coverId": mediaID, "updatedAt": time.Now()}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&updated)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			utils.HandleError(c, utils.CreateValidationError(
				"coverId must reference an attached media item"))
			return
		}
		utils.HandleError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{"coverId": updated.CoverID}, "cover updated")
}
