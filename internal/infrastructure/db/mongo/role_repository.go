package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/openalgo/auth-system/internal/core/domain"
)

type MongoRoleRepository struct {
	db *mongo.Database
}

func NewRoleRepository(db *mongo.Database) *MongoRoleRepository {
	return &MongoRoleRepository{db: db}
}

type mongoRole struct {
	ID   int64  `bson:"_id"`
	Name string `bson:"name"`
}

func (r *MongoRoleRepository) coll() *mongo.Collection {
	return r.db.Collection(rolesCollection)
}

func (r *MongoRoleRepository) FindByID(ctx context.Context, id int64) (*domain.Role, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

func (r *MongoRoleRepository) FindByName(ctx context.Context, name string) (*domain.Role, error) {
	return r.findOne(ctx, bson.M{"name": name})
}

func (r *MongoRoleRepository) List(ctx context.Context) ([]domain.Role, error) {
	cur, err := r.coll().Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("list roles: %w", err)
	}
	defer cur.Close(ctx)

	var roles []domain.Role
	for cur.Next(ctx) {
		var mr mongoRole
		if err := cur.Decode(&mr); err != nil {
			return nil, fmt.Errorf("decode role: %w", err)
		}
		roles = append(roles, domain.Role{ID: mr.ID, Name: mr.Name})
	}
	return roles, cur.Err()
}

// EnsureCanonical creates the three well-known roles when missing. The unique
// index on name absorbs races between concurrent callers.
func (r *MongoRoleRepository) EnsureCanonical(ctx context.Context) error {
	for _, name := range []string{domain.RoleSuperadmin, domain.RoleAdmin, domain.RoleUser} {
		err := r.coll().FindOne(ctx, bson.M{"name": name}).Err()
		if err == nil {
			continue
		}
		if err != mongo.ErrNoDocuments {
			return fmt.Errorf("find role: %w", err)
		}

		id, err := nextID(ctx, r.db, rolesCollection)
		if err != nil {
			return err
		}
		if _, err := r.coll().InsertOne(ctx, mongoRole{ID: id, Name: name}); err != nil {
			if mongo.IsDuplicateKeyError(err) {
				continue
			}
			return fmt.Errorf("insert role: %w", err)
		}
	}
	return nil
}

func (r *MongoRoleRepository) findOne(ctx context.Context, filter bson.M) (*domain.Role, error) {
	var mr mongoRole
	if err := r.coll().FindOne(ctx, filter).Decode(&mr); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrRoleNotFound
		}
		return nil, fmt.Errorf("find role: %w", err)
	}
	return &domain.Role{ID: mr.ID, Name: mr.Name}, nil
}
