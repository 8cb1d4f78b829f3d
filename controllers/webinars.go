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

// mailer delivers verification and confirmation mail. Set once at startup.
var mailer *service.Mailer

// SetMailer wires the outbound mailer into the controllers.
func SetMailer(m *service.Mailer) {
	mailer = m
}

// CreateWebinar schedules a session. Admin only, enforced in routes.
func CreateWebinar(c *gin.Context) {
	var req models.CreateWebinarRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, "invalid request parameters: "+err.Error(), http.StatusBadRequest)
		return
	}

	if req.Capacity < 1 {
		utils.HandleError(c, utils.CreateValidationError("capacity must be at least 1"))
		return
	}
	if !req.StartsAt.After(time.Now()) {
		utils.HandleError(c, utils.CreateValidationError("startsAt must be in the future"))
		return
	}

	now := time.Now()
	webinar := models.Webinar{
		ID:          primitive.NewObjectID(),
		Title:       req.Title,
		Speaker:     req.Speaker,
		Description: req.Description,
		StartsAt:    req.StartsAt,
		DurationMin: req.DurationMin,
		Capacity:    req.Capacity,
		SeatsLeft:   req.Capacity,
		MeetingURL:  req.MeetingURL,
		Active:      true,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	collection := repository.Collection(repository.WebinarsCollection)
	if _, err := collection.InsertOne(repository.GetContext(), webinar); err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.SuccessResponse(c, webinar, "webinar created", http.StatusCreated)
}

// ListWebinars returns upcoming active sessions, soonest first. The meeting
// URL is stripped; registrants get it by mail.
func ListWebinars(c *gin.Context) {
	collection := repository.Collection(repository.WebinarsCollection)
	cursor, err := collection.Find(
		repository.GetContext(),
		bson.M{"active": true, "startsAt": bson.M{"$gt": time.Now()}},
		options.Find().
			SetSort(bson.M{"startsAt": 1}).
			SetProjection(bson.M{"meetingUrl": 0}),
	)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	webinars := []models.Webinar{}
	if err := cursor.All(repository.GetContext(), &webinars); err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.SuccessResponse(c, webinars, "")
}

// CancelWebinar deactivates a session. Admin only.
func CancelWebinar(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		utils.ErrorResponse(c, "invalid id", http.StatusBadRequest)
		return
	}

	collection := repository.Collection(repository.WebinarsCollection)
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
		utils.HandleError(c, utils.CreateNotFoundError("webinar"))
		return
	}

	utils.SuccessResponse(c, gin.H{"id": id.Hex()}, "webinar canceled")
}

// RequestWebinarRegistration starts the two-step signup: a short-lived code
// is mailed to the caller, who confirms it to claim a seat.
func RequestWebinarRegistration(c *gin.Context) {
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

	webinar, err := loadOpenWebinar(id)
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	if webinar.SeatsLeft < 1 {
		utils.HandleError(c, utils.CreateStateConflictError("webinar is fully booked"))
		return
	}

	account, err := loadAccount(user.ID)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	code, err := service.NewVerificationCode()
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	if err := service.StoreVerificationCode(c.Request.Context(), id.Hex(), user.ID, code); err != nil {
		utils.HandleError(c, err)
		return
	}

	if mailer.Enabled() {
		body := service.VerificationCodeHTML(webinar.Title, code, service.CodeTTL)
		if err := mailer.Send(account.Email, "Your webinar verification code", body); err != nil {
			utils.Logger.Error().Err(err).Str("to", account.Email).Msg("failed to send verification code")
			utils.HandleError(c, utils.CreateUncertainOperationError())
			return
		}
	}

	utils.SuccessResponse(c, gin.H{
		"webinarId": id.Hex(),
		"expiresIn": int(service.CodeTTL.Seconds()),
	}, "verification code sent")
}

// ConfirmWebinarRegistration redeems the emailed code and claims a seat.
// The code is single-use; the seat decrement is conditional on seatsLeft so
// the last seat cannot be double-booked.
func ConfirmWebinarRegistration(c *gin.Context) {
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

	var req models.RegisterWebinarRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, "invalid request parameters: "+err.Error(), http.StatusBadRequest)
		return
	}

	webinar, err := loadOpenWebinar(id)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	if err := service.ConsumeVerificationCode(c.Request.Context(), id.Hex(), user.ID, req.Code); err != nil {
		if err == service.ErrCodeMismatch {
			utils.HandleError(c, utils.CreateValidationError(err.Error()))
			return
		}
		utils.HandleError(c, err)
		return
	}

	userID, err := primitive.ObjectIDFromHex(user.ID)
	if err != nil {
		utils.ErrorResponse(c, "invalid user id", http.StatusBadRequest)
		return
	}

	account, err := loadAccount(user.ID)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	seatResult, err := repository.Collection(repository.WebinarsCollection).UpdateOne(
		repository.GetContext(),
		bson.M{"_id": id, "seatsLeft": bson.M{"$gt": 0}},
		bson.M{
			"$inc": bson.M{"seatsLeft": -1},
			"$set": bson.M{"updatedAt": time.Now()},
		},
	)
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	if seatResult.MatchedCount == 0 {
		utils.HandleError(c, utils.CreateStateConflictError("webinar is fully booked"))
		return
	}

	registration := models.WebinarRegistration{
		ID:        primitive.NewObjectID(),
		WebinarID: id,
		UserID:    userID,
		Username:  user.Username,
		Email:     account.Email,
		CreatedAt: time.Now(),
	}

	_, err = repository.Collection(repository.RegistrationsCollection).
		InsertOne(repository.GetContext(), registration)
	if err != nil {
		// Hand the seat back before reporting. Duplicate registrations hit
		// the unique index on webinarId + userId.
		if _, incErr := repository.Collection(repository.WebinarsCollection).UpdateOne(
			repository.GetContext(),
			bson.M{"_id": id},
			bson.M{"$inc": bson.M{"seatsLeft": 1}},
		); incErr != nil {
			utils.Logger.Error().Err(incErr).Str("id", id.Hex()).Msg("failed to release seat")
		}
		if repository.IsDuplicateKeyError(err) {
			utils.ErrorResponse(c, "you are already registered for this webinar", http.StatusConflict)
			return
		}
		utils.HandleError(c, err)
		return
	}

	if mailer.Enabled() {
		body := service.RegistrationConfirmedHTML(webinar.Title, webinar.StartsAt, webinar.MeetingURL)
		if err := mailer.Send(account.Email, "Registration confirmed: "+webinar.Title, body); err != nil {
			utils.Logger.Error().Err(err).Str("to", account.Email).Msg("failed to send confirmation mail")
		}
	}

	utils.SuccessResponse(c, registration, "registration confirmed", http.StatusCreated)
}

// GetMyWebinarRegistrations lists the caller's confirmed seats.
func GetMyWebinarRegistrations(c *gin.Context) {
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

	collection := repository.Collection(repository.RegistrationsCollection)
	cursor, err := collection.Find(
		repository.GetContext(),
		bson.M{"userId": userID},
		options.Find().SetSort(bson.M{"createdAt": -1}),
	)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	registrations := []models.WebinarRegistration{}
	if err := cursor.All(repository.GetContext(), &registrations); err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.SuccessResponse(c, registrations, "")
}

func loadOpenWebinar(id primitive.ObjectID) (models.Webinar, error) {
	var webinar models.Webinar
	err := repository.Collection(repository.WebinarsCollection).
		FindOne(repository.GetContext(), bson.M{
			"_id":      id,
			"active":   true,
			"startsAt": bson.M{"$gt": time.Now()},
		}).
		Decode(&webinar)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return models.Webinar{}, utils.CreateNotFoundError("webinar")
		}
		return models.Webinar{}, err
	}
	return webinar, nil
}

func loadAccount(id string) (models.User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return models.User{}, utils.CreateBadRequestError("invalid user id")
	}

	var account models.User
	err = repository.Collection(repository.UsersCollection).
		FindOne(repository.GetContext(), bson.M{"_id": oid}).
		Decode(&account)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return models.User{}, utils.CreateNotFoundError("user")
		}
		return models.User{}, err
	}
	return account, nil
}
