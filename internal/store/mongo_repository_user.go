package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/eagle-pass/internal/logger"
	"github.com/MKhiriev/eagle-pass/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// mongoUserRepository is the MongoDB implementation of [UserRepository].
type mongoUserRepository struct {
	users     *mongo.Collection
	passwords *mongo.Collection
	logger    *logger.Logger
}

// NewMongoUserRepository constructs a [UserRepository] over the users and
// passwords collections.
func NewMongoUserRepository(users, passwords *mongo.Collection, logger *logger.Logger) UserRepository {
	logger.Debug().Msg("creating mongo user repository")
	return &mongoUserRepository{
		users:     users,
		passwords: passwords,
		logger:    logger,
	}
}

func (r *mongoUserRepository) CreateUser(ctx context.Context, user models.User) (models.User, error) {
	log := logger.FromContext(ctx)

	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now().UTC()
	}

	if _, err := r.users.InsertOne(ctx, user); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return models.User{}, ErrUserAlreadyExists
		}
		log.Err(err).Str("func", "*mongoUserRepository.CreateUser").Msg("failed to insert user")
		return models.User{}, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return user, nil
}

func (r *mongoUserRepository) FindUserByID(ctx context.Context, id string) (models.User, error) {
	return r.findOne(ctx, bson.M{"id": id})
}

func (r *mongoUserRepository) FindUserByUsername(ctx context.Context, username string) (models.User, error) {
	return r.findOne(ctx, bson.M{"username": username})
}

func (r *mongoUserRepository) findOne(ctx context.Context, filter bson.M) (models.User, error) {
	var user models.User
	err := r.users.FindOne(ctx, filter).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.User{}, ErrNoUserWasFound
	}
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*mongoUserRepository.findOne").Msg("failed to find user")
		return models.User{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return user, nil
}

func (r *mongoUserRepository) UpdateAvatar(ctx context.Context, id, avatar string) error {
	return r.updateOne(ctx, id, bson.M{"avatar": avatar})
}

func (r *mongoUserRepository) UpdateTwoFactor(ctx context.Context, id string, enabled bool, sealedSecret string) error {
	return r.updateOne(ctx, id, bson.M{
		"two_factor_enabled": enabled,
		"two_factor_secret":  sealedSecret,
	})
}

func (r *mongoUserRepository) updateOne(ctx context.Context, id string, set bson.M) error {
	res, err := r.users.UpdateOne(ctx, bson.M{"id": id}, bson.M{"$set": set})
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*mongoUserRepository.updateOne").Str("user_id", id).Msg("failed to update user")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	if res.MatchedCount == 0 {
		return ErrNoUserWasFound
	}

	return nil
}

// DeleteUser removes every password entry of the user and then the user
// document. A failed first step leaves the user in place so the call can
// be repeated.
func (r *mongoUserRepository) DeleteUser(ctx context.Context, id string) error {
	log := logger.FromContext(ctx)

	if _, err := r.passwords.DeleteMany(ctx, bson.M{"user_id": id}); err != nil {
		log.Err(err).Str("func", "*mongoUserRepository.DeleteUser").Str("user_id", id).Msg("failed to delete user passwords")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	res, err := r.users.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		log.Err(err).Str("func", "*mongoUserRepository.DeleteUser").Str("user_id", id).Msg("failed to delete user")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	if res.DeletedCount == 0 {
		return ErrNoUserWasFound
	}

	return nil
}
