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
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// CreateInternship publishes a new listing. Admin only, enforced in routes.
func CreateInternship(c *gin.Context) {
	user, err := utils.GetUser(c)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	var req models.CreateInternshipRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, "invalid request parameters: "+err.Error(), http.StatusBadRequest)
		return
	}

	creatorID, err := primitive.ObjectIDFromHex(user.ID)
	if err != nil {
		utils.ErrorResponse(c, "invalid user id", http.StatusBadRequest)
		return
	}

	now := time.Now()
	internship := models.Internship{
		ID:           primitive.NewObjectID(),
		Title:        req.Title,
		Company:      req.Company,
		Location:     req.Location,
		Remote:       req.Remote,
		Description:  req.Description,
		Requirements: req.Requirements,
		Active:       true,
		CreatedBy:    creatorID,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	collection := repository.Collection(repository.InternshipsCollection)
	if _, err := collection.InsertOne(repository.GetContext(), internship); err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.SuccessResponse(c, internship, "internship created", http.StatusCreated)
}

// ListInternships returns active listings, newest first. Admins can pass
// ?all=true to include deactivated ones.
func ListInternships(c *gin.Context) {
	filter := bson.M{"active": true}
	if c.Query("all") == "true" {
		user, err := utils.GetUser(c)
		if err == nil && user.UserRole() == models.UserRoleADMIN {
			filter = bson.M{}
		}
	}

	collection := repository.Collection(repository.InternshipsCollection)
	cursor, err := collection.Find(
		repository.GetContext(), filter,
		options.Find().SetSort(bson.M{"createdAt": -1}),
	)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	internships := []models.Internship{}
	if err := cursor.All(repository.GetContext(), &internships); err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.SuccessResponse(c, internships, "")
}

// DeactivateInternship closes a listing without deleting its applications.
func DeactivateInternship(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		utils.ErrorResponse(c, "invalid id", http.StatusBadRequest)
		return
	}

	collection := repository.Collection(repository.InternshipsCollection)
	result, err := collection.UpdateOne(
		repository.GetContext(),
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"active": false, "updatedAt": time.Now()}},
	)
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	if result.MatchedCount == 0 {
		utils.HandleError(c, utils.CreateNotFoundError("internship"))
		return
	}

	utils.SuccessResponse(c, gin.H{"id": id.Hex()}, "internship deactivated")
}

// ApplyToInternship files an application. The unique index on
// internshipId + applicantId keeps it to one application per user.
func ApplyToInternship(c *gin.Context) {
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

	var req models.ApplyInternshipRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, "invalid request parameters: "+err.Error(), http.StatusBadRequest)
		return
	}

	var internship models.Internship
	err = repository.Collection(repository.InternshipsCollection).
		FindOne(repository.GetContext(), bson.M{"_id": id, "active": true}).
		Decode(&internship)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			utils.HandleError(c, utils.CreateNotFoundError("internship"))
			return
		}
		utils.HandleError(c, err)
		return
	}

	applicantID, err := primitive.ObjectIDFromHex(user.ID)
	if err != nil {
		utils.ErrorResponse(c, "invalid user id", http.StatusBadRequest)
		return
	}

	var account models.User
	err = repository.Collection(repository.UsersCollection).
		FindOne(repository.GetContext(), bson.M{"_id": applicantID}).
		Decode(&account)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	now := time.Now()
	application := models.InternshipApplication{
		ID:            primitive.NewObjectID(),
		InternshipID:  id,
		ApplicantID:   applicantID,
		ApplicantName: user.Username,
		Email:         account.Email,
		CoverLetter:   req.CoverLetter,
		ResumeURL:     req.ResumeURL,
		Status:        models.ApplicationAPPLIED,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	collection := repository.Collection(repository.ApplicationsCollection)
	if _, err := collection.InsertOne(repository.GetContext(), application); err != nil {
		if repository.IsDuplicateKeyError(err) {
			utils.ErrorResponse(c, "you have already applied to this internship", http.StatusConflict)
			return
		}
		utils.HandleError(c, err)
		return
	}

	utils.SuccessResponse(c, application, "application submitted", http.StatusCreated)
}

// ListApplications returns the applications for one listing. Admin only.
func ListApplications(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		utils.ErrorResponse(c, "invalid id", http.StatusBadRequest)
		return
	}

	collection := repository.Collection(repository.ApplicationsCollection)
	cursor, err := collection.Find(
		repository.GetContext(),
		bson.M{"internshipId": id},
		options.Find().SetSort(bson.M{"createdAt": 1}),
	)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	applications := []models.InternshipApplication{}
	if err := cursor.All(repository.GetContext(), &applications); err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.SuccessResponse(c, applications, "")
}

// GetMyApplications returns the caller's applications across listings.
func GetMyApplications(c *gin.Context) {
	user, err := utils.GetUser(c)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	applicantID, err := primitive.ObjectIDFromHex(user.ID)
	if err != nil {
		utils.ErrorResponse(c, "invalid user id", http.StatusBadRequest)
		return
	}

	collection := repository.Collection(repository.ApplicationsCollection)
	cursor, err := collection.Find(
		repository.GetContext(),
		bson.M{"applicantId": applicantID},
		options.Find().SetSort(bson.M{"createdAt": -1}),
	)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	applications := []models.InternshipApplication{}
	if err := cursor.All(repository.GetContext(), &applications); err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.SuccessResponse(c, applications, "")
}

// ReviewApplication accepts or declines an application. Re-reviewing a
// settled application is a conflict.
func ReviewApplication(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("applicationId"))
	if err != nil {
		utils.ErrorResponse(c, "invalid id", http.StatusBadRequest)
		return
	}

	var req models.ReviewApplicationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, "invalid request parameters: "+err.Error(), http.StatusBadRequest)
		return
	}

	status := models.ApplicationDECLINED
	if req.Accepted {
		status = models.ApplicationACCEPTED
	}

	collection := repository.Collection(repository.ApplicationsCollection)
	var updated models.InternshipApplication
	err = collection.FindOneAndUpdate(
		repository.GetContext(),
		bson.M{"_id": id, "status": models.ApplicationAPPLIED},
		bson.M{"$set": bson.M{
			"status":     status,
			"reviewNote": req.Note,
			"updatedAt":  time.Now(),
		}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&updated)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			count, countErr := collection.CountDocuments(repository.GetContext(), bson.M{"_id": id})
			if countErr == nil && count > 0 {
				utils.HandleError(c, utils.CreateStateConflictError(
					"application has already been reviewed"))
				return
			}
			utils.HandleError(c, utils.CreateNotFoundError("application"))
			return
		}
		utils.HandleError(c, err)
		return
	}

	utils.SuccessResponse(c, updated, "application reviewed")
}
