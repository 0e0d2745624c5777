package store

import (
	"context"
	"fmt"
	"time"

	"github.com/MKhiriev/eagle-pass/internal/logger"
	"github.com/MKhiriev/eagle-pass/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// mongoPasswordRepository is the MongoDB implementation of
// [PasswordRepository]. All users share one "passwords" collection keyed by
// user_id.
type mongoPasswordRepository struct {
	passwords *mongo.Collection
	logger    *logger.Logger
}

func NewMongoPasswordRepository(passwords *mongo.Collection, logger *logger.Logger) PasswordRepository {
	logger.Debug().Msg("creating mongo password repository")
	return &mongoPasswordRepository{
		passwords: passwords,
		logger:    logger,
	}
}

func (p *mongoPasswordRepository) SavePassword(ctx context.Context, entry models.PasswordEntry) error {
	if _, err := p.passwords.InsertOne(ctx, entry); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrPasswordAlreadyExists
		}
		logger.FromContext(ctx).Err(err).
			Str("func", "mongoPasswordRepository.SavePassword").
			Str("user_id", entry.UserID).
			Msg("failed to insert password entry")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return nil
}

func (p *mongoPasswordRepository) GetPasswords(ctx context.Context, userID string) ([]models.PasswordEntry, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}, {Key: "id", Value: 1}})
	return p.find(ctx, "mongoPasswordRepository.GetPasswords", bson.M{"user_id": userID}, opts)
}

func (p *mongoPasswordRepository) UpdatePassword(ctx context.Context, userID, id string, update models.PasswordUpdate) error {
	set := bson.M{"updated_at": time.Now().UTC()}
	for field, value := range update.Fields() {
		set[field] = value
	}

	res, err := p.passwords.UpdateOne(ctx, bson.M{"id": id, "user_id": userID}, bson.M{"$set": set})
	if err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "mongoPasswordRepository.UpdatePassword").
			Str("password_id", id).
			Msg("failed to update password entry")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	if res.MatchedCount == 0 {
		return ErrPasswordNotFound
	}

	return nil
}

// ResealPassword filters on the current value of every field it sets, so a
// concurrent edit makes it match nothing.
func (p *mongoPasswordRepository) ResealPassword(ctx context.Context, current models.PasswordEntry, update models.PasswordUpdate) error {
	fields := update.Fields()
	if len(fields) == 0 {
		return fmt.Errorf("%w: no fields to update", ErrBuildingSQLQuery)
	}

	expected := current.SecretColumns()
	filter := bson.M{"id": current.ID, "user_id": current.UserID}
	set := bson.M{}
	for field, value := range fields {
		filter[field] = expected[field]
		set[field] = value
	}

	res, err := p.passwords.UpdateOne(ctx, filter, bson.M{"$set": set})
	if err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "mongoPasswordRepository.ResealPassword").
			Str("password_id", current.ID).
			Msg("failed to reseal password entry")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	if res.MatchedCount == 0 {
		return ErrPasswordChanged
	}

	return nil
}

func (p *mongoPasswordRepository) DeletePassword(ctx context.Context, userID, id string) error {
	res, err := p.passwords.DeleteOne(ctx, bson.M{"id": id, "user_id": userID})
	if err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "mongoPasswordRepository.DeletePassword").
			Str("password_id", id).
			Msg("failed to delete password entry")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	if res.DeletedCount == 0 {
		return ErrPasswordNotFound
	}

	return nil
}

func (p *mongoPasswordRepository) ListPasswordsAfter(ctx context.Context, afterID string, limit int) ([]models.PasswordEntry, error) {
	if limit <= 0 {
		return nil, fmt.Errorf("%w: limit must be positive", ErrBuildingSQLQuery)
	}

	filter := bson.M{}
	if afterID != "" {
		filter["id"] = bson.M{"$gt": afterID}
	}
	opts := options.Find().SetSort(bson.D{{Key: "id", Value: 1}}).SetLimit(int64(limit))

	return p.find(ctx, "mongoPasswordRepository.ListPasswordsAfter", filter, opts)
}

func (p *mongoPasswordRepository) find(ctx context.Context, funcName string, filter bson.M, opts *options.FindOptions) ([]models.PasswordEntry, error) {
	cursor, err := p.passwords.Find(ctx, filter, opts)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", funcName).Msg("failed to query passwords")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	entries := make([]models.PasswordEntry, 0, 16)
	if err = cursor.All(ctx, &entries); err != nil {
		logger.FromContext(ctx).Err(err).Str("func", funcName).Msg("failed to decode passwords")
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return entries, nil
}
