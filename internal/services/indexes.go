package services

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/remotehire/remotehire-backend/internal/database"
)

// EnsureIndexes configures indexes the auth and application paths rely on.
// Called on startup from main after Mongo has connected.
func EnsureIndexes(ctx context.Context) error {
	// Unique email per principal collection; refreshToken lookups back the
	// refresh flow's find-by-literal-token query.
	for _, name := range []string{CandidateCollection, EmployerCollection, AdminCollection} {
		col := database.DB.Collection(name)
		models := []mongo.IndexModel{
			{
				Keys:    bson.D{{Key: "email", Value: 1}},
				Options: options.Index().SetUnique(true).SetName("idx_email_unique"),
			},
			{
				Keys:    bson.D{{Key: "refreshToken", Value: 1}},
				Options: options.Index().SetName("idx_refresh_token"),
			},
		}
		for _, m := range models {
			if _, err := col.Indexes().CreateOne(ctx, m); err != nil {
				return err
			}
		}
	}

	// Application lookups are always scoped by candidate or job.
	jobApplies := database.DB.Collection("jobapplies")
	_, err := jobApplies.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{
			{Key: "candidateId", Value: 1},
			{Key: "jobId", Value: 1},
		},
		Options: options.Index().SetName("idx_candidate_job"),
	})
	return err
}
