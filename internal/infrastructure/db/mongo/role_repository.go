package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/termeloipiac/auth-service/internal/core/domain"
)

const roleCollection = "roles"

// RoleRepository is the Mongo-backed credential store for role records.
type RoleRepository struct {
	coll *mongo.Collection
}

func NewRoleRepository(db *mongo.Database) *RoleRepository {
	return &RoleRepository{coll: db.Collection(roleCollection)}
}

type mongoRole struct {
	Name string `bson:"name"`
}

// FindByName returns the stored role record for name. A missing record means
// the store was never seeded and is reported as domain.ErrRoleNotSeeded.
func (r *RoleRepository) FindByName(ctx context.Context, name domain.Role) (domain.Role, error) {
	var mr mongoRole
	if err := r.coll.FindOne(ctx, bson.M{"name": string(name)}).Decode(&mr); err != nil {
		if err == mongo.ErrNoDocuments {
			return "", fmt.Errorf("role %s: %w", name, domain.ErrRoleNotSeeded)
		}
		return "", fmt.Errorf("find role: %w", err)
	}
	return domain.Role(mr.Name), nil
}

// EnsureRoles upserts every role of the closed enumeration. Run once at
// startup so FindByName never hits an unseeded store in a healthy deployment.
func (r *RoleRepository) EnsureRoles(ctx context.Context) error {
	for _, role := range domain.AllRoles() {
		_, err := r.coll.UpdateOne(ctx,
			bson.M{"name": string(role)},
			bson.M{"$setOnInsert": bson.M{"name": string(role)}},
			options.Update().SetUpsert(true),
		)
		if err != nil {
			return fmt.Errorf("seed role %s: %w", role, err)
		}
	}
	return nil
}
