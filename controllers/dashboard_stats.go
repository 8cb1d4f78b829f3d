package controllers

import (
	"strconv"
	"time"

	"github.com/launchhub/portal_end/models"
	"github.com/launchhub/portal_end/repository"
	"github.com/launchhub/portal_end/utils"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// GetDashboardStats aggregates the moderation and growth numbers for the
// admin dashboard. ?days= controls the new-user window (default 30).
func GetDashboardStats(c *gin.Context) {
	days, err := strconv.Atoi(c.DefaultQuery("days", "30"))
	if err != nil || days < 1 || days > 365 {
		days = 30
	}
	since := time.Now().AddDate(0, 0, -days)

	projectCounts, err := countByStatus(repository.ProjectsCollection)
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	startupCounts, err := countByStatus(repository.StartupsCollection)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	pending := int64(0)
	for _, counts := range [][]models.StatusCount{projectCounts, startupCounts} {
		for _, sc := range counts {
			if sc.Status == models.StatusSUBMITTED {
				pending += sc.Count
			}
		}
	}

	newUsers, err := repository.Collection(repository.UsersCollection).
		CountDocuments(repository.GetContext(), bson.M{"createdAt": bson.M{"$gte": since}})
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	activeMemberships, err := repository.Collection(repository.MembershipsCollection).
		CountDocuments(repository.GetContext(), bson.M{"status": models.MembershipACTIVE})
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	fills, err := upcomingWebinarFills()
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.SuccessResponse(c, models.DashboardStats{
		ProjectCounts:     projectCounts,
		StartupCounts:     startupCounts,
		PendingReview:     pending,
		NewUsers:          newUsers,
		ActiveMemberships: activeMemberships,
		WebinarFills:      fills,
	}, "")
}

// countByStatus groups one submission collection by lifecycle state.
func countByStatus(collectionName string) ([]models.StatusCount, error) {
	pipeline := []bson.M{
		{"$group": bson.M{
			"_id":   "$status",
			"count": bson.M{"$sum": 1},
		}},
		{"$sort": bson.M{"count": -1}},
	}

	cursor, err := repository.Collection(collectionName).
		Aggregate(repository.GetContext(), pipeline)
	if err != nil {
		return nil, err
	}

	counts := []models.StatusCount{}
	if err := cursor.All(repository.GetContext(), &counts); err != nil {
		return nil, err
	}
	return counts, nil
}

// upcomingWebinarFills reports seat usage for the next scheduled sessions.
func upcomingWebinarFills() ([]models.WebinarFill, error) {
	cursor, err := repository.Collection(repository.WebinarsCollection).Find(
		repository.GetContext(),
		bson.M{"active": true, "startsAt": bson.M{"$gt": time.Now()}},
		options.Find().SetSort(bson.M{"startsAt": 1}).SetLimit(10),
	)
	if err != nil {
		return nil, err
	}

	var webinars []models.Webinar
	if err := cursor.All(repository.GetContext(), &webinars); err != nil {
		return nil, err
	}

	fills := []models.WebinarFill{}
	for _, w := range webinars {
		fill := models.WebinarFill{
			WebinarID: w.ID.Hex(),
			Title:     w.Title,
			Capacity:  w.Capacity,
			SeatsLeft: w.SeatsLeft,
		}
		if w.Capacity > 0 {
			fill.FillRate = float64(w.Capacity-w.SeatsLeft) / float64(w.Capacity)
		}
		fills = append(fills, fill)
	}
	return fills, nil
}
