package controllers

import (
	"context"
	"net/http"
	"sync"

	"github.com/launchhub/portal_end/models"
	"github.com/launchhub/portal_end/repository"
	"github.com/launchhub/portal_end/store"
	"github.com/launchhub/portal_end/utils"
	"github.com/launchhub/portal_end/workflow"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Each moderator holds an isolated working set, so one moderator's queue
// load never bleeds into another's response. Decisions patch the actor's
// own set in place between loads.
var (
	queueMu   sync.Mutex
	queueSets = map[string]*store.SubmissionSet{}
)

func queueFor(actorID string) *store.SubmissionSet {
	queueMu.Lock()
	defer queueMu.Unlock()
	set, ok := queueSets[actorID]
	if !ok {
		set = store.NewSubmissionSet(loadSummaries)
		queueSets[actorID] = set
	}
	return set
}

// loadSummaries pulls submission summaries across both collections. An
// empty kind in the filter means both.
func loadSummaries(ctx context.Context, f store.Filter) ([]models.SubmissionSummary, error) {
	kinds := []struct {
		kind       models.SubmissionKind
		collection string
	}{
		{models.KindProject, repository.ProjectsCollection},
		{models.KindStartup, repository.StartupsCollection},
	}

	query := bson.M{}
	if f.Status != "" {
		query["status"] = f.Status
	}

	summaries := []models.SubmissionSummary{}
	for _, k := range kinds {
		if f.Kind != "" && f.Kind != k.kind {
			continue
		}

		cursor, err := repository.Collection(k.collection).Find(
			ctx, query, options.Find().SetSort(bson.M{"submittedAt": 1}))
		if err != nil {
			return nil, err
		}

		var docs []submissionDoc
		if err := cursor.All(ctx, &docs); err != nil {
			return nil, err
		}
		for _, d := range docs {
			summaries = append(summaries, d.summary(k.kind))
		}
	}
	return summaries, nil
}

// GetModerationQueue lists submissions for review, oldest submitted first.
// Defaults to the SUBMITTED state; ?status= and ?kind= narrow or widen it.
func GetModerationQueue(c *gin.Context) {
	actor, err := utils.GetUser(c)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	filter := store.Filter{
		Kind:   models.SubmissionKind(c.Query("kind")),
		Status: models.StatusSUBMITTED,
	}
	if raw := c.Query("status"); raw != "" {
		status := models.SubmissionStatus(raw)
		if !models.ValidStatus(status) {
			utils.ErrorResponse(c, "unknown status", http.StatusBadRequest)
			return
		}
		filter.Status = status
	}
	if filter.Kind != "" && filter.Kind != models.KindProject && filter.Kind != models.KindStartup {
		utils.ErrorResponse(c, "unknown submission kind", http.StatusBadRequest)
		return
	}

	items, err := queueFor(actor.ID).Reload(c.Request.Context(), filter)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"items": items,
		"total": len(items),
	}, "")
}

// DecideSubmission applies a moderator action to a submission. The action
// name comes from the URL; reject and request_changes require a note.
func DecideSubmission(c *gin.Context) {
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

	action, err := workflow.ParseAction(c.Param("action"))
	if err != nil {
		utils.HandleError(c, workflowToApiError(err))
		return
	}

	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		utils.ErrorResponse(c, "invalid id", http.StatusBadRequest)
		return
	}

	var req models.ModerationDecisionRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			utils.ErrorResponse(c, "invalid request parameters: "+err.Error(), http.StatusBadRequest)
			return
		}
	}

	if action == workflow.ActionDelete {
		hex := id.Hex()
		err := queueFor(actor.ID).Remove(c.Request.Context(), hex, func() error {
			result, err := repository.Collection(collectionName).DeleteOne(
				repository.GetContext(), bson.M{"_id": id})
			if err != nil {
				return err
			}
			if result.DeletedCount == 0 {
				return utils.CreateNotFoundError("submission")
			}
			return nil
		})
		if err != nil {
			utils.HandleError(c, err)
			return
		}
		utils.Logger.Info().
			Str("kind", string(kind)).
			Str("id", hex).
			Str("moderator", actor.ID).
			Msg("submission removed by moderator")
		utils.SuccessResponse(c, gin.H{"id": hex}, "submission removed")
		return
	}

	updated, err := executeTransition(kind, collectionName, id, actor, action, req.Note)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	summary := updated.summary(kind)
	queueFor(actor.ID).ApplyTransition(summary.ID, summary)

	utils.SuccessResponse(c, summary, "decision applied")
}

// GetModerationHistory returns the decision trail for one submission,
// newest first.
func GetModerationHistory(c *gin.Context) {
	kind, _, err := parseKind(c.Param("kind"))
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		utils.ErrorResponse(c, "invalid id", http.StatusBadRequest)
		return
	}

	collection := repository.Collection(repository.ModerationLogCollection)
	cursor, err := collection.Find(
		repository.GetContext(),
		bson.M{"submissionId": id, "kind": kind},
		options.Find().SetSort(bson.M{"createdAt": -1}),
	)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	records := []models.ModerationRecord{}
	if err := cursor.All(repository.GetContext(), &records); err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.SuccessResponse(c, records, "")
}
