package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/beka-birhanu/maze-runner/game"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var ErrDuplicateResult = errors.New("result already recorded")

// ResultRepo stores finished game results.
type ResultRepo struct {
	collection *mongo.Collection
}

// NewResultRepo creates a ResultRepo on the given database and collection.
func NewResultRepo(client *mongo.Client, dbName, collectionName string) *ResultRepo {
	return &ResultRepo{
		collection: client.Database(dbName).Collection(collectionName),
	}
}

// EnsureIndexes allows one result per session and speeds up player lookups.
func (r *ResultRepo) EnsureIndexes(ctx context.Context) error {
	_, err := r.collection.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "sessionId", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "playerId", Value: 1}, {Key: "finishedAt", Value: -1}},
		},
	})
	return err
}

// Save inserts a result.
func (r *ResultRepo) Save(ctx context.Context, res *game.Result) error {
	if _, err := r.collection.InsertOne(ctx, res); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrDuplicateResult
		}
		return fmt.Errorf("saving result: %w", err)
	}
	return nil
}

// ByPlayer returns up to limit results of the player, newest first.
func (r *ResultRepo) ByPlayer(ctx context.Context, playerID uuid.UUID, limit int64) ([]game.Result, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "finishedAt", Value: -1}}).
		SetLimit(limit)

	cursor, err := r.collection.Find(ctx, bson.M{"playerId": playerID}, opts)
	if err != nil {
		return nil, fmt.Errorf("finding results: %w", err)
	}
	defer cursor.Close(ctx)

	results := []game.Result{}
	if err := cursor.All(ctx, &results); err != nil {
		return nil, fmt.Errorf("decoding results: %w", err)
	}
	return results, nil
}
