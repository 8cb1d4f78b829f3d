package controllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/launchhub/portal_end/models"
	"github.com/launchhub/portal_end/repository"
	"github.com/launchhub/portal_end/service"
	"github.com/launchhub/portal_end/utils"
	"github.com/launchhub/portal_end/workflow"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// submissionDoc is the kind-independent view of a project or startup used
// by the transition machinery. Projects carry a title, startups a name.
type submissionDoc struct {
	ID               primitive.ObjectID `bson:"_id"`
	Title            string             `bson:"title,omitempty"`
	Name             string             `bson:"name,omitempty"`
	OwnerID          primitive.ObjectID `bson:"ownerId"`
	OwnerName        string             `bson:"ownerName"`
	models.Lifecycle `bson:",inline"`
}

func (d submissionDoc) displayTitle() string {
	if d.Title != "" {
		return d.Title
	}
	return d.Name
}

func (d submissionDoc) summary(kind models.SubmissionKind) models.SubmissionSummary {
	return models.SubmissionSummary{
		ID:          d.ID.Hex(),
		Kind:        kind,
		Title:       d.displayTitle(),
		OwnerName:   d.OwnerName,
		Status:      d.Status,
		ModNotes:    d.ModNotes,
		SubmittedAt: d.SubmittedAt,
		FeaturedAt:  d.FeaturedAt,
	}
}

// parseKind maps the :kind URL segment onto a collection.
func parseKind(raw string) (models.SubmissionKind, string, error) {
	switch models.SubmissionKind(raw) {
	case models.KindProject:
		return models.KindProject, repository.ProjectsCollection, nil
	case models.KindStartup:
		return models.KindStartup, repository.StartupsCollection, nil
	}
	return "", "", utils.CreateBadRequestError("unknown submission kind")
}

// loadSubmission fetches the kind-independent view of a submission.
func loadSubmission(collectionName string, id primitive.ObjectID) (submissionDoc, error) {
	collection := repository.Collection(collectionName)

	var doc submissionDoc
	err := collection.FindOne(repository.GetContext(), bson.M{"_id": id}).Decode(&doc)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return submissionDoc{}, utils.CreateNotFoundError("submission")
		}
		return submissionDoc{}, err
	}
	return doc, nil
}

// contentEditable reports whether an owner may still change the content
// fields. Once a submission is under review or published, content is frozen
// until a moderator sends it back.
func contentEditable(status models.SubmissionStatus) bool {
	switch status {
	case models.StatusPENDING, models.StatusCHANGES_REQUESTED, models.StatusREJECTED:
		return true
	}
	return false
}

// checkContentEdit gates the content-mutation endpoints: owner only, and
// only while the submission is editable.
func checkContentEdit(doc submissionDoc, actor *utils.LoginUser) error {
	if doc.OwnerID.Hex() != actor.ID {
		return utils.CreateForbiddenError()
	}
	if !contentEditable(doc.Status) {
		return utils.CreateStateConflictError(
			"content cannot be edited while the submission is " + string(doc.Status))
	}
	return nil
}

// deleteFilter restates the delete policy inside the query. The policy is
// checked against a fresh read first, but an approval landing between that
// read and the delete must not let an owner remove published work.
func deleteFilter(id primitive.ObjectID, role models.UserRole) bson.M {
	filter := bson.M{"_id": id}
	if !role.IsModerator() {
		filter["status"] = bson.M{"$nin": []models.SubmissionStatus{
			models.StatusAPPROVED,
			models.StatusFEATURED,
		}}
	}
	return filter
}

// workflowToApiError maps policy errors onto the API error taxonomy.
func workflowToApiError(err error) error {
	switch {
	case errors.Is(err, workflow.ErrStateConflict):
		return utils.CreateStateConflictError(err.Error())
	case errors.Is(err, workflow.ErrEmptyNote):
		return utils.CreateValidationError(err.Error())
	case errors.Is(err, workflow.ErrForbidden):
		return utils.CreateForbiddenError()
	case errors.Is(err, workflow.ErrUnknownAction):
		return utils.CreateBadRequestError(err.Error())
	}
	return err
}

// executeTransition validates and persists a status transition. The update
// is conditional on the allowed from-set, so a concurrent transition on the
// same submission loses as a state conflict instead of overwriting. On
// success the moderation history gets a record and a status event is
// published.
func executeTransition(
	kind models.SubmissionKind,
	collectionName string,
	id primitive.ObjectID,
	actor *utils.LoginUser,
	action workflow.Action,
	note string,
) (submissionDoc, error) {
	doc, err := loadSubmission(collectionName, id)
	if err != nil {
		return submissionDoc{}, err
	}

	// Submit is an owner action: reject other users before consulting the
	// table so actor mismatch surfaces as forbidden, not a conflict.
	if action == workflow.ActionSubmit && doc.OwnerID.Hex() != actor.ID {
		return submissionDoc{}, utils.CreateForbiddenError()
	}

	outcome, err := workflow.Apply(doc.Status, actor.UserRole(), action, note)
	if err != nil {
		return submissionDoc{}, workflowToApiError(err)
	}

	now := time.Now()
	set := bson.M{
		"status":    outcome.Status,
		"updatedAt": now,
	}
	if outcome.SetSubmittedAt {
		set["submittedAt"] = now
	}
	if outcome.SetFeaturedAt {
		set["featuredAt"] = now
	}
	if outcome.ModNotes != nil {
		set["modNotes"] = *outcome.ModNotes
	}

	collection := repository.Collection(collectionName)
	filter := bson.M{
		"_id":    id,
		"status": bson.M{"$in": workflow.AllowedFrom(action)},
	}

	result, err := repository.ExecuteDbOperation(func() (interface{}, error) {
		var updated submissionDoc
		err := collection.FindOneAndUpdate(
			repository.GetContext(),
			filter,
			bson.M{"$set": set},
			options.FindOneAndUpdate().SetReturnDocument(options.After),
		).Decode(&updated)
		return updated, err
	}, 3)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			// The document moved out of the from-set between our read and
			// the update: a lost race, reported the same way as a plain
			// conflict.
			return submissionDoc{}, utils.CreateStateConflictError(
				"submission status changed, reload and retry")
		}
		return submissionDoc{}, err
	}
	updated := result.(submissionDoc)
	utils.LogDbOperation("findOneAndUpdate", collectionName, filter, updated.Status)

	if actor.IsModerator() && action != workflow.ActionSubmit {
		recordModeration(kind, updated, doc.Status, actor, note)
	}

	service.PublishStatusEvent(models.StatusEvent{
		SubmissionID: updated.ID.Hex(),
		Kind:         kind,
		OldStatus:    doc.Status,
		NewStatus:    updated.Status,
		ActorID:      actor.ID,
		OccurredAt:   now,
	})

	utils.Logger.Info().
		Str("kind", string(kind)).
		Str("id", updated.ID.Hex()).
		Str("action", string(action)).
		Str("from", string(doc.Status)).
		Str("to", string(updated.Status)).
		Msg("submission transition applied")

	return updated, nil
}

// recordModeration appends to the moderation history. History failures are
// logged only; the transition has already been persisted.
func recordModeration(kind models.SubmissionKind, doc submissionDoc, oldStatus models.SubmissionStatus, actor *utils.LoginUser, note string) {
	moderatorID, err := primitive.ObjectIDFromHex(actor.ID)
	if err != nil {
		utils.Logger.Error().Err(err).Msg("invalid moderator id in token")
		return
	}

	record := models.ModerationRecord{
		SubmissionID:  doc.ID,
		Kind:          kind,
		OldStatus:     oldStatus,
		NewStatus:     doc.Status,
		ModeratorID:   moderatorID,
		ModeratorName: actor.Username,
		Note:          note,
		CreatedAt:     time.Now(),
	}

	collection := repository.Collection(repository.ModerationLogCollection)
	_, err = repository.ExecuteDbOperation(func() (interface{}, error) {
		return collection.InsertOne(repository.GetContext(), record)
	}, 3)
	if err != nil {
		utils.Logger.Error().Err(err).Str("id", doc.ID.Hex()).Msg("failed to write moderation record")
		return
	}
	utils.LogDbOperation("insertOne", repository.ModerationLogCollection, record.SubmissionID, record.NewStatus)
}

// GetEligibleActions returns the action set for a submission as seen by the
// current actor. Derived from status on every call, never cached.
func GetEligibleActions(c *gin.Context) {
	actor, err := utils.GetUser(c)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	kind, collectionName, err := parseKind(c.Param("kind"))
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

	role := actor.UserRole()
	if !role.IsModerator() && doc.OwnerID.Hex() != actor.ID {
		// Non-owners get no actions on somebody else's submission.
		utils.SuccessResponse(c, gin.H{"status": doc.Status, "actions": []workflow.Action{}}, "")
		return
	}

	actions := workflow.EligibleActions(doc.Status, role)
	if actions == nil {
		actions = []workflow.Action{}
	}

	utils.SuccessResponse(c, gin.H{
		"kind":    kind,
		"status":  doc.Status,
		"actions": actions,
	}, "")
}
