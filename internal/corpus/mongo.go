package corpus

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"narrative-assembly/internal/config"
	"narrative-assembly/models"
)

// MongoRepository stores one document per video with its segments embedded.
type MongoRepository struct {
	collection *mongo.Collection
}

func NewMongoRepository(db *mongo.Database) *MongoRepository {
	return &MongoRepository{collection: db.Collection(config.TranscriptsCollection)}
}

// LoadAll returns every transcript ordered by publish date, then video ID.
func (r *MongoRepository) LoadAll(ctx context.Context) ([]models.TranscriptFile, error) {
	opts := options.Find().SetSort(bson.D{{Key: "published_at", Value: 1}, {Key: "video_id", Value: 1}})
	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query transcripts: %w", err)
	}
	defer cursor.Close(ctx)

	var transcripts []models.TranscriptFile
	if err := cursor.All(ctx, &transcripts); err != nil {
		return nil, fmt.Errorf("failed to decode transcripts: %w", err)
	}
	return transcripts, nil
}

// SaveAll upserts transcripts by video ID.
func (r *MongoRepository) SaveAll(ctx context.Context, transcripts []models.TranscriptFile) (int64, error) {
	if len(transcripts) == 0 {
		return 0, nil
	}

	writes := make([]mongo.WriteModel, 0, len(transcripts))
	for _, tr := range transcripts {
		writes = append(writes, mongo.NewReplaceOneModel().
			SetFilter(bson.M{"video_id": tr.VideoID}).
			SetReplacement(tr).
			SetUpsert(true))
	}

	res, err := r.collection.BulkWrite(ctx, writes, options.BulkWrite().SetOrdered(false))
	if err != nil {
		return 0, fmt.Errorf("failed to upsert transcripts: %w", err)
	}
	return res.UpsertedCount + res.ModifiedCount, nil
}
