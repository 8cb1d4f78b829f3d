package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/launchhub/portal_end/config"
	"github.com/launchhub/portal_end/models"
	"github.com/launchhub/portal_end/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const (
	UsersCollection            = "users"
	ProjectsCollection         = "projects"
	StartupsCollection         = "startups"
	ModerationLogCollection    = "moderationLog"
	InternshipsCollection      = "internships"
	ApplicationsCollection     = "internshipApplications"
	WebinarsCollection         = "webinars"
	RegistrationsCollection    = "webinarRegistrations"
	MembershipPlansCollection  = "membershipPlans"
	MembershipsCollection      = "memberships"
	SystemConfigsCollection    = "systemConfigs"
	ApiOperationLogsCollection = "apiOperationLogs"
)

var (
	client *mongo.Client
	db     *mongo.Database
	ctx    = context.Background()
)

// InitMongoDB connects to MongoDB and selects the database.
func InitMongoDB(uri, dbName string) error {
	connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	var err error
	clientOptions := options.Client().ApplyURI(uri)
	client, err = mongo.Connect(connectCtx, clientOptions)
	if err != nil {
		return fmt.Errorf("failed to connect to MongoDB: %w", err)
	}

	pingCtx, pingCancel := context.WithTimeout(ctx, 5*time.Second)
	defer pingCancel()

	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		return fmt.Errorf("failed to ping MongoDB: %w", err)
	}

	db = client.Database(dbName)
	utils.Logger.Info().Str("database", dbName).Msg("connected to MongoDB")

	return nil
}

// CloseMongoDB disconnects the client.
func CloseMongoDB() {
	if client != nil {
		if err := client.Disconnect(ctx); err != nil {
			utils.Logger.Error().Err(err).Msg("failed to disconnect from MongoDB")
			return
		}
		utils.Logger.Info().Msg("disconnected from MongoDB")
	}
}

// Collection returns a handle to the named collection.
func Collection(name string) *mongo.Collection {
	return db.Collection(name)
}

// GetContext returns the repository base context.
func GetContext() context.Context {
	return ctx
}

// GetDatabaseStatus reports connection health and collection counts.
func GetDatabaseStatus() (map[string]interface{}, error) {
	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		return nil, err
	}

	counts := map[string]int64{}
	for _, name := range []string{UsersCollection, ProjectsCollection, StartupsCollection} {
		n, err := db.Collection(name).EstimatedDocumentCount(ctx)
		if err != nil {
			return nil, err
		}
		counts[name] = n
	}

	return map[string]interface{}{
		"status": "ok",
		"counts": counts,
	}, nil
}

// ExecuteDbOperation runs operation with retries for transient failures.
func ExecuteDbOperation(operation func() (interface{}, error), retries int) (interface{}, error) {
	if retries <= 0 {
		retries = 3
	}

	var lastErr error
	for i := 0; i < retries; i++ {
		result, err := operation()
		if err == nil {
			return result, nil
		}

		lastErr = err
		utils.Logger.Error().Err(err).Msgf("database operation failed, retry (%d/%d)", i+1, retries)

		if !isRetryableError(err) {
			break
		}

		time.Sleep(time.Duration(500*(i+1)) * time.Millisecond)
	}

	return nil, lastErr
}

// isRetryableError reports whether the error is worth another attempt.
func isRetryableError(err error) bool {
	retryableCodes := map[int]bool{
		6:     true, // HostUnreachable
		7:     true, // HostNotFound
		89:    true, // NetworkTimeout
		91:    true, // ShutdownInProgress
		189:   true, // PrimarySteppedDown
		10107: true, // NotMaster
		13436: true, // NotMasterNoSlaveOk
		11600: true, // InterruptedAtShutdown
		11602: true, // InterruptedDueToReplStateChange
		10058: true, // ConnectionReset
	}

	if cmdErr, ok := err.(mongo.CommandError); ok {
		return retryableCodes[int(cmdErr.Code)]
	}

	return isNetworkError(err)
}

// isNetworkError checks for common transport failures.
func isNetworkError(err error) bool {
	errMsg := strings.ToLower(err.Error())
	networkErrors := []string{
		"connection refused",
		"connection reset",
		"connection closed",
		"no reachable servers",
		"timeout",
		"context deadline exceeded",
		"server selection error",
	}

	for _, ne := range networkErrors {
		if strings.Contains(errMsg, ne) {
			return true
		}
	}

	return false
}

// InitializeCollections creates the indexes the portal relies on.
func InitializeCollections() error {
	indexes := map[string][]mongo.IndexModel{
		UsersCollection: {
			{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
			{Keys: bson.D{{Key: "username", Value: 1}}, Options: options.Index().SetUnique(true)},
		},
		ProjectsCollection: {
			{Keys: bson.D{{Key: "slug", Value: 1}}, Options: options.Index().SetUnique(true)},
			{Keys: bson.D{{Key: "ownerId", Value: 1}}},
			{Keys: bson.D{{Key: "status", Value: 1}, {Key: "submittedAt", Value: 1}}},
		},
		StartupsCollection: {
			{Keys: bson.D{{Key: "ownerId", Value: 1}}},
			{Keys: bson.D{{Key: "status", Value: 1}, {Key: "submittedAt", Value: 1}}},
		},
		ModerationLogCollection: {
			{Keys: bson.D{{Key: "submissionId", Value: 1}, {Key: "createdAt", Value: -1}}},
		},
		ApplicationsCollection: {
			{Keys: bson.D{{Key: "internshipId", Value: 1}, {Key: "applicantId", Value: 1}},
				Options: options.Index().SetUnique(true)},
		},
		RegistrationsCollection: {
			{Keys: bson.D{{Key: "webinarId", Value: 1}, {Key: "userId", Value: 1}},
				Options: options.Index().SetUnique(true)},
		},
		MembershipPlansCollection: {
			{Keys: bson.D{{Key: "code", Value: 1}}, Options: options.Index().SetUnique(true)},
		},
		MembershipsCollection: {
			{Keys: bson.D{{Key: "orderId", Value: 1}}, Options: options.Index().SetUnique(true)},
			{Keys: bson.D{{Key: "userId", Value: 1}, {Key: "status", Value: 1}}},
		},
	}

	for name, idx := range indexes {
		if _, err := db.Collection(name).Indexes().CreateMany(ctx, idx); err != nil {
			return fmt.Errorf("failed to create indexes for %s: %w", name, err)
		}
	}

	utils.Logger.Info().Msg("collection indexes ensured")
	return nil
}

// InitializeAdminAccount seeds the admin user when it does not exist yet.
func InitializeAdminAccount() error {
	cfg := config.LoadConfig()
	users := Collection(UsersCollection)

	count, err := users.CountDocuments(ctx, bson.M{"role": models.UserRoleADMIN})
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	hash, err := utils.HashPassword(cfg.AdminPassword)
	if err != nil {
		return err
	}

	now := time.Now()
	_, err = users.InsertOne(ctx, models.User{
		Username:  "admin",
		Email:     cfg.AdminEmail,
		Password:  hash,
		Role:      models.UserRoleADMIN,
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		return err
	}

	utils.Logger.Info().Str("email", cfg.AdminEmail).Msg("seeded admin account")
	return nil
}

// IsDuplicateKeyError reports whether err is a unique index violation.
func IsDuplicateKeyError(err error) bool {
	return mongo.IsDuplicateKeyError(err)
}
