package controllers

import (
	"fmt"
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

// uniqueSlug derives a slug from the title and appends a numeric suffix
// until it no longer collides with an existing project.
func uniqueSlug(title string) (string, error) {
	collection := repository.Collection(repository.ProjectsCollection)
	base := utils.Slugify(title)

	slug := base
	for i := 2; ; i++ {
		count, err := collection.CountDocuments(repository.GetContext(), bson.M{"slug": slug})
		if err != nil {
			return "", err
		}
		if count == 0 {
			return slug, nil
		}
		slug = fmt.Sprintf("%s-%d", base, i)
	}
}

// validateMedia enforces the per-submission media cap and checks that the
// chosen cover is one of the held media items.
func validateMedia(media []models.MediaItem, coverID string) error {
	if len(media) > models.MaxMediaItems {
		return utils.CreateValidationError(
			fmt.Sprintf("at most %d media items are allowed", models.MaxMediaItems))
	}
	if coverID == "" {
		return nil
	}
	for _, m := range media {
		if m.ID == coverID {
			return nil
		}
	}
	return utils.CreateValidationError("coverId must reference an attached media item")
}

// CreateProject creates a draft project owned by the caller. New projects
// always start pending, whatever the client sends.
func CreateProject(c *gin.Context) {
	user, err := utils.GetUser(c)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	var req models.CreateProjectRequest
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

	slug, err := uniqueSlug(req.Title)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	now := time.Now()
	project := models.Project{
		ID:          primitive.NewObjectID(),
		Slug:        slug,
		OwnerID:     ownerID,
		OwnerName:   user.Username,
		Title:       req.Title,
		Summary:     req.Summary,
		Description: req.Description,
		Team:        req.Team,
		Links:       req.Links,
		Tags:        req.Tags,
		Stack:       req.Stack,
		Media:       req.Media,
		CoverID:     req.CoverID,
		Lifecycle:   models.Lifecycle{Status: models.StatusPENDING},
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	collection := repository.Collection(repository.ProjectsCollection)
	if _, err := collection.InsertOne(repository.GetContext(), project); err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.Logger.Info().Str("slug", slug).Str("owner", user.ID).Msg("project created")
	utils.SuccessResponse(c, project, "project created", http.StatusCreated)
}

// GetMyProjects lists the caller's projects, most recently updated first.
func GetMyProjects(c *gin.Context) {
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

	collection := repository.Collection(repository.ProjectsCollection)
	cursor, err := collection.Find(
		repository.GetContext(),
		bson.M{"ownerId": ownerID},
		options.Find().SetSort(bson.M{"updatedAt": -1}),
	)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	projects := []models.Project{}
	if err := cursor.All(repository.GetContext(), &projects); err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.SuccessResponse(c, projects, "")
}

// GetProject returns a single project. Owners and moderators see every
// state; everyone else only published ones.
func GetProject(c *gin.Context) {
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

	collection := repository.Collection(repository.ProjectsCollection)
	var project models.Project
	if err := collection.FindOne(repository.GetContext(), bson.M{"_id": id}).Decode(&project); err != nil {
		if err == mongo.ErrNoDocuments {
			utils.HandleError(c, utils.CreateNotFoundError("project"))
			return
		}
		utils.HandleError(c, err)
		return
	}

	if !canViewSubmission(user, project.OwnerID, project.Status) {
		utils.HandleError(c, utils.CreateForbiddenError())
		return
	}

	utils.SuccessResponse(c, project, "")
}

// canViewSubmission gates read access on unpublished submissions.
func canViewSubmission(user *utils.LoginUser, ownerID primitive.ObjectID, status models.SubmissionStatus) bool {
	if user.IsModerator() || ownerID.Hex() == user.ID {
		return true
	}
	return status == models.StatusAPPROVED || status == models.StatusFEATURED
}

// UpdateProject edits an owned project's content fields. Status is not
// touched here; resubmitting after changes goes through the submit action.
func UpdateProject(c *gin.Context) {
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

	var req models.UpdateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, "invalid request parameters: "+err.Error(), http.StatusBadRequest)
		return
	}

	doc, err := loadSubmission(repository.ProjectsCollection, id)
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	if err := checkContentEdit(doc, user); err != nil {
		utils.HandleError(c, err)
		return
	}

	set := bson.M{"updatedAt": time.Now()}
	if req.Title != "" {
		set["title"] = req.Title
	}
	if req.Summary != "" {
		set["summary"] = req.Summary
	}
	if req.Description != nil {
		set["description"] = *req.Description
	}
	if req.Team != nil {
		set["team"] = req.Team
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

	collection := repository.Collection(repository.ProjectsCollection)
	var updated models.Project
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

	utils.SuccessResponse(c, updated, "project updated")
}

func stringOr(p *string, def string) string {
	if p != nil {
		return *p
	}
	return def
}

// SubmitProject moves an owned project into review.
func SubmitProject(c *gin.Context) {
	transitionHandler(c, models.KindProject, repository.ProjectsCollection, workflow.ActionSubmit)
}

// DeleteProject removes a project. Owners cannot withdraw published work;
// moderators can always delete.
func DeleteProject(c *gin.Context) {
	deleteSubmission(c, models.KindProject, repository.ProjectsCollection)
}

// transitionHandler is the shared entry point for single-action routes.
func transitionHandler(c *gin.Context, kind models.SubmissionKind, collectionName string, action workflow.Action) {
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

	updated, err := executeTransition(kind, collectionName, id, user, action, "")
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.SuccessResponse(c, updated.summary(kind), "status updated")
}

// deleteSubmission enforces the delete policy and removes the document.
func deleteSubmission(c *gin.Context, kind models.SubmissionKind, collectionName string) {
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

	doc, err := loadSubmission(collectionName, id)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	role := user.UserRole()
	if !role.IsModerator() {
		if doc.OwnerID.Hex() != user.ID {
			utils.HandleError(c, utils.CreateForbiddenError())
			return
		}
		if !workflow.CanDelete(doc.Status, role) {
			utils.HandleError(c, utils.CreateStateConflictError(
				"published submissions cannot be deleted by their owner"))
			return
		}
	}

	// The policy re-appears in the filter: an approval landing after the
	// check above makes the delete match nothing instead of removing
	// published work.
	collection := repository.Collection(collectionName)
	res, err := repository.ExecuteDbOperation(func() (interface{}, error) {
		return collection.DeleteOne(repository.GetContext(), deleteFilter(id, role))
	}, 3)
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	if res.(*mongo.DeleteResult).DeletedCount == 0 {
		if _, err := loadSubmission(collectionName, id); err == nil {
			utils.HandleError(c, utils.CreateStateConflictError(
				"submission status changed, reload and retry"))
			return
		}
		utils.HandleError(c, utils.CreateNotFoundError("submission"))
		return
	}

	utils.LogInfo(map[string]interface{}{
		"kind":  kind,
		"id":    id.Hex(),
		"actor": user.ID,
	}, "submission deleted")
	utils.SuccessResponse(c, gin.H{"id": id.Hex()}, "submission deleted")
}
