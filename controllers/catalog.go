package controllers

import (
	"net/http"
	"strconv"

	"github.com/launchhub/portal_end/models"
	"github.com/launchhub/portal_end/repository"
	"github.com/launchhub/portal_end/utils"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// publishedFilter matches the states visible on the public catalog,
// optionally narrowed by a ?tag= query.
func publishedFilter(c *gin.Context) bson.M {
	filter := bson.M{
		"status": bson.M{"$in": []models.SubmissionStatus{
			models.StatusAPPROVED,
			models.StatusFEATURED,
		}},
	}
	if tag := c.Query("tag"); tag != "" {
		filter["tags"] = tag
	}
	return filter
}

// catalogSort orders featured entries first, then newest submissions.
// Sorting on featuredAt would be wrong here: the stamp survives unfeature,
// so only the current status decides placement.
func catalogSort() *options.FindOptions {
	return options.Find().SetSort(bson.D{
		{Key: "status", Value: -1}, // FEATURED sorts above APPROVED
		{Key: "submittedAt", Value: -1},
	})
}

func paging(c *gin.Context) (int64, int64) {
	page, _ := strconv.ParseInt(c.DefaultQuery("page", "1"), 10, 64)
	if page < 1 {
		page = 1
	}
	limit, _ := strconv.ParseInt(c.DefaultQuery("limit", "20"), 10, 64)
	if limit < 1 || limit > 100 {
		limit = 20
	}
	return (page - 1) * limit, limit
}

// ListPublishedProjects serves the public project catalog.
func ListPublishedProjects(c *gin.Context) {
	filter := publishedFilter(c)
	skip, limit := paging(c)

	collection := repository.Collection(repository.ProjectsCollection)
	total, err := collection.CountDocuments(repository.GetContext(), filter)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	cursor, err := collection.Find(repository.GetContext(), filter,
		catalogSort().SetSkip(skip).SetLimit(limit))
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	projects := []models.Project{}
	if err := cursor.All(repository.GetContext(), &projects); err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{"items": projects, "total": total}, "")
}

// GetPublishedProjectBySlug serves a single public project page.
func GetPublishedProjectBySlug(c *gin.Context) {
	collection := repository.Collection(repository.ProjectsCollection)

	filter := bson.M{
		"slug": c.Param("slug"),
		"status": bson.M{"$in": []models.SubmissionStatus{
			models.StatusAPPROVED,
			models.StatusFEATURED,
		}},
	}

	var project models.Project
	if err := collection.FindOne(repository.GetContext(), filter).Decode(&project); err != nil {
		if err == mongo.ErrNoDocuments {
			utils.HandleError(c, utils.CreateNotFoundError("project"))
			return
		}
		utils.HandleError(c, err)
		return
	}

	utils.SuccessResponse(c, project, "")
}

// ListPublishedStartups serves the public startup directory.
func ListPublishedStartups(c *gin.Context) {
	filter := publishedFilter(c)
	skip, limit := paging(c)

	collection := repository.Collection(repository.StartupsCollection)
	total, err := collection.CountDocuments(repository.GetContext(), filter)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	cursor, err := collection.Find(repository.GetContext(), filter,
		catalogSort().SetSkip(skip).SetLimit(limit))
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	startups := []models.Startup{}
	if err := cursor.All(repository.GetContext(), &startups); err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{"items": startups, "total": total}, "")
}

// GetPublishedStartup serves a single public startup page.
func GetPublishedStartup(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		utils.ErrorResponse(c, "invalid id", http.StatusBadRequest)
		return
	}

	filter := bson.M{
		"_id": id,
		"status": bson.M{"$in": []models.SubmissionStatus{
			models.StatusAPPROVED,
			models.StatusFEATURED,
		}},
	}

	collection := repository.Collection(repository.StartupsCollection)
	var startup models.Startup
	if err := collection.FindOne(repository.GetContext(), filter).Decode(&startup); err != nil {
		if err == mongo.ErrNoDocuments {
			utils.HandleError(c, utils.CreateNotFoundError("startup"))
			return
		}
		utils.HandleError(c, err)
		return
	}

	utils.SuccessResponse(c, startup, "")
}
