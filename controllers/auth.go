package controllers

import (
	"net/http"
	"strings"
	"time"

	"github.com/launchhub/portal_end/models"
	"github.com/launchhub/portal_end/repository"
	"github.com/launchhub/portal_end/utils"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// Register creates a new portal account with the USER role.
func Register(c *gin.Context) {
	var req models.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, "invalid request: "+err.Error(), http.StatusBadRequest)
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	if !utils.IsValidEmail(email) {
		utils.ErrorResponse(c, "invalid email address", http.StatusBadRequest)
		return
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	now := time.Now()
	user := models.User{
		Username:  strings.TrimSpace(req.Username),
		Email:     email,
		Password:  hash,
		Role:      models.UserRoleUSER,
		CreatedAt: now,
		UpdatedAt: now,
	}

	collection := repository.Collection(repository.UsersCollection)
	result, err := collection.InsertOne(repository.GetContext(), user)
	if err != nil {
		if repository.IsDuplicateKeyError(err) {
			utils.ErrorResponse(c, "username or email already taken", http.StatusConflict)
			return
		}
		utils.HandleError(c, err)
		return
	}

	user.ID = result.InsertedID.(primitive.ObjectID)
	token, err := utils.GenerateToken(user)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.Logger.Info().Str("username", user.Username).Msg("account registered")
	utils.SuccessResponse(c, models.LoginResponse{Token: token, User: user}, "account created", http.StatusCreated)
}

// Login verifies credentials and issues a token.
func Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, "invalid request: "+err.Error(), http.StatusBadRequest)
		return
	}

	collection := repository.Collection(repository.UsersCollection)

	var user models.User
	err := collection.FindOne(repository.GetContext(),
		bson.M{"email": strings.ToLower(strings.TrimSpace(req.Email))}).Decode(&user)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			utils.ErrorResponse(c, "invalid email or password", http.StatusUnauthorized)
			return
		}
		utils.HandleError(c, err)
		return
	}

	if !utils.VerifyPassword(req.Password, user.Password) {
		utils.Logger.Info().Str("email", req.Email).Msg("failed login attempt")
		utils.ErrorResponse(c, "invalid email or password", http.StatusUnauthorized)
		return
	}

	token, err := utils.GenerateToken(user)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.Logger.Info().Str("username", user.Username).Str("role", string(user.Role)).Msg("login succeeded")
	utils.SuccessResponse(c, models.LoginResponse{Token: token, User: user}, "")
}

// Validate confirms the presented token and returns the actor it encodes.
func Validate(c *gin.Context) {
	user, err := utils.GetUser(c)
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	utils.SuccessResponse(c, gin.H{"user": user}, "")
}
