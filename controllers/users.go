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

// GetAllUsers lists every account. Admin only.
func GetAllUsers(c *gin.Context) {
	collection := repository.Collection(repository.UsersCollection)

	findOptions := options.Find().SetProjection(bson.M{"password": 0})
	cursor, err := collection.Find(repository.GetContext(), bson.M{}, findOptions)
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	defer cursor.Close(repository.GetContext())

	var users []models.User
	if err := cursor.All(repository.GetContext(), &users); err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.Logger.Info().Int("count", len(users)).Msg("listed users")
	utils.SuccessResponse(c, gin.H{"users": users}, "")
}

// UpdateUserRole changes an account's role. Admin only.
func UpdateUserRole(c *gin.Context) {
	var req models.UpdateUserRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, "invalid request: "+err.Error(), http.StatusBadRequest)
		return
	}

	switch req.Role {
	case models.UserRoleUSER, models.UserRoleMODERATOR, models.UserRoleADMIN:
	default:
		utils.ErrorResponse(c, "unknown role", http.StatusBadRequest)
		return
	}

	objectID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		utils.ErrorResponse(c, "invalid id", http.StatusBadRequest)
		return
	}

	collection := repository.Collection(repository.UsersCollection)
	result, err := collection.UpdateOne(repository.GetContext(),
		bson.M{"_id": objectID},
		bson.M{"$set": bson.M{"role": req.Role, "updatedAt": time.Now()}},
	)
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	if result.MatchedCount == 0 {
		utils.HandleError(c, utils.CreateNotFoundError("user"))
		return
	}

	utils.Logger.Info().Str("id", c.Param("id")).Str("role", string(req.Role)).Msg("updated user role")
	utils.SuccessResponse(c, nil, "role updated")
}

// DeleteUser removes an account. Admin only.
func DeleteUser(c *gin.Context) {
	objectID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		utils.ErrorResponse(c, "invalid id", http.StatusBadRequest)
		return
	}

	actor, err := utils.GetUser(c)
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	if actor.ID == c.Param("id") {
		utils.ErrorResponse(c, "cannot delete your own account", http.StatusBadRequest)
		return
	}

	collection := repository.Collection(repository.UsersCollection)
	result, err := collection.DeleteOne(repository.GetContext(), bson.M{"_id": objectID})
	if err != nil {
		utils.HandleError(c, err)
		return
	}
	if result.DeletedCount == 0 {
		utils.HandleError(c, utils.CreateNotFoundError("user"))
		return
	}

	utils.Logger.Info().Str("id", c.Param("id")).Msg("deleted user")
	utils.SuccessResponse(c, nil, "user deleted")
}

// GetProfile returns the authenticated account.
func GetProfile(c *gin.Context) {
	actor, err := utils.GetUser(c)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	objectID, err := primitive.ObjectIDFromHex(actor.ID)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	collection := repository.Collection(repository.UsersCollection)

	var user models.User
	err = collection.FindOne(repository.GetContext(), bson.M{"_id": objectID}).Decode(&user)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			utils.HandleError(c, utils.CreateNotFoundError("user"))
			return
		}
		utils.HandleError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{"user": user}, "")
}

// UpdateProfile edits the authenticated account's profile fields.
func UpdateProfile(c *gin.Context) {
	var req models.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponse(c, "invalid request: "+err.Error(), http.StatusBadRequest)
		return
	}

	actor, err := utils.GetUser(c)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	objectID, err := primitive.ObjectIDFromHex(actor.ID)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	set := bson.M{"updatedAt": time.Now()}
	if req.Username != "" {
		set["username"] = req.Username
	}
	if req.Bio != "" {
		set["bio"] = req.Bio
	}
	if req.AvatarURL != "" {
		set["avatarUrl"] = req.AvatarURL
	}

	collection := repository.Collection(repository.UsersCollection)
	_, err = collection.UpdateOne(repository.GetContext(), bson.M{"_id": objectID}, bson.M{"$set": set})
	if err != nil {
		if repository.IsDuplicateKeyError(err) {
			utils.ErrorResponse(c, "username already taken", http.StatusConflict)
			return
		}
		utils.HandleError(c, err)
		return
	}

	utils.SuccessResponse(c, nil, "profile updated")
}
