package db

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/stakelabs-io/token-staking-ledger/internal/db/model"
)

// SavePendingClaim upserts the participant's pending claim. The ledger core
// guarantees at most one claim per participant; the upsert keeps re-persisting
// a snapshot idempotent.
func (db *Database) SavePendingClaim(
	ctx context.Context, claim *model.PendingClaimDocument,
) error {
	if claim == nil {
		return errors.New("nil pending claim")
	}

	filter := bson.M{"_id": claim.Participant}
	update := bson.M{"$set": claim}

	_, err := db.collection(model.PendingClaimCollection).
		UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("failed to save pending claim: %w", err)
	}
	return nil
}

func (db *Database) GetPendingClaim(
	ctx context.Context, participant string,
) (*model.PendingClaimDocument, error) {
	filter := bson.M{"_id": participant}

	var claim model.PendingClaimDocument
	err := db.collection(model.PendingClaimCollection).FindOne(ctx, filter).Decode(&claim)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, &NotFoundError{
				Key:     participant,
				Message: "pending claim not found",
			}
		}
		return nil, fmt.Errorf("failed to get pending claim: %w", err)
	}
	return &claim, nil
}

func (db *Database) GetAllPendingClaims(ctx context.Context) ([]model.PendingClaimDocument, error) {
	cursor, err := db.collection(model.PendingClaimCollection).Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("failed to find pending claims: %w", err)
	}
	defer cursor.Close(ctx)

	var claims []model.PendingClaimDocument
	if err := cursor.All(ctx, &claims); err != nil {
		return nil, fmt.Errorf("failed to decode pending claims: %w", err)
	}
	return claims, nil
}

func (db *Database) DeletePendingClaim(ctx context.Context, participant string) error {
	filter := bson.M{"_id": participant}

	res, err := db.collection(model.PendingClaimCollection).DeleteOne(ctx, filter)
	if err != nil {
		return fmt.Errorf("failed to delete pending claim: %w", err)
	}
	if res.DeletedCount == 0 {
		return &NotFoundError{
			Key:     participant,
			Message: "pending claim not found",
		}
	}
	return nil
}
