package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/openalgo/auth-system/internal/core/domain"
)

// settingsDocID is the fixed _id of the AuthSettings singleton row.
const settingsDocID = int64(1)

type MongoSettingsRepository struct {
	db *mongo.Database
}

func NewSettingsRepository(db *mongo.Database) *MongoSettingsRepository {
	return &MongoSettingsRepository{db: db}
}

type mongoSettings struct {
	ID                 int64  `bson:"_id"`
	RegularAuthEnabled bool   `bson:"regular_auth_enabled"`
	GoogleAuthEnabled  bool   `bson:"google_auth_enabled"`
	GoogleClientID     string `bson:"google_client_id,omitempty"`
	GoogleClientSecret string `bson:"google_client_secret,omitempty"`
	UpdatedAt          int64  `bson:"updated_at"`
	UpdatedBy          int64  `bson:"updated_by"`
}

func (r *MongoSettingsRepository) coll() *mongo.Collection {
	return r.db.Collection(settingsCollection)
}

// GetOrCreate returns the singleton, persisting the defaults atomically on
// first access ($setOnInsert upsert, so concurrent callers converge on one row).
func (r *MongoSettingsRepository) GetOrCreate(ctx context.Context) (*domain.AuthSettings, error) {
	defaults := domain.DefaultAuthSettings()

	var ms mongoSettings
	err := r.coll().FindOneAndUpdate(
		ctx,
		bson.M{"_id": settingsDocID},
		bson.M{"$setOnInsert": bson.M{
			"regular_auth_enabled": defaults.RegularAuthEnabled,
			"google_auth_enabled":  defaults.GoogleAuthEnabled,
			"updated_at":           int64(0),
			"updated_by":           int64(0),
		}},
		options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After),
	).Decode(&ms)
	if err != nil {
		return nil, fmt.Errorf("load auth settings: %w", err)
	}

	return toDomainSettings(ms), nil
}

func (r *MongoSettingsRepository) Update(ctx context.Context, settings *domain.AuthSettings) (*domain.AuthSettings, error) {
	doc := mongoSettings{
		ID:                 settingsDocID,
		RegularAuthEnabled: settings.RegularAuthEnabled,
		GoogleAuthEnabled:  settings.GoogleAuthEnabled,
		GoogleClientID:     settings.GoogleClientID,
		GoogleClientSecret: settings.GoogleClientSecret,
		UpdatedAt:          settings.UpdatedAt.Unix(),
		UpdatedBy:          settings.UpdatedBy,
	}

	_, err := r.coll().ReplaceOne(ctx, bson.M{"_id": settingsDocID}, doc, options.Replace().SetUpsert(true))
	if err != nil {
		return nil, fmt.Errorf("update auth settings: %w", err)
	}

	var ms mongoSettings
	if err := r.coll().FindOne(ctx, bson.M{"_id": settingsDocID}).Decode(&ms); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, fmt.Errorf("auth settings row missing after update")
		}
		return nil, fmt.Errorf("reload auth settings: %w", err)
	}
	return toDomainSettings(ms), nil
}

func toDomainSettings(ms mongoSettings) *domain.AuthSettings {
	return &domain.AuthSettings{
		ID:                 ms.ID,
		RegularAuthEnabled: ms.RegularAuthEnabled,
		GoogleAuthEnabled:  ms.GoogleAuthEnabled,
		GoogleClientID:     ms.GoogleClientID,
		GoogleClientSecret: ms.GoogleClientSecret,
		UpdatedAt:          unixToTime(ms.UpdatedAt),
		UpdatedBy:          ms.UpdatedBy,
	}
}
