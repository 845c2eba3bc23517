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

func (db *Database) UpdateTotalStaked(ctx context.Context, totalStaked uint64) error {
	filter := bson.M{"_id": model.LedgerStateDocumentID}
	update := bson.M{"$set": bson.M{"total_staked": totalStaked}}

	_, err := db.collection(model.LedgerStateCollection).
		UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("failed to update total staked: %w", err)
	}
	return nil
}

// GetTotalStaked returns zero when no state document exists yet; a fresh
// ledger owes nothing.
func (db *Database) GetTotalStaked(ctx context.Context) (uint64, error) {
	filter := bson.M{"_id": model.LedgerStateDocumentID}

	var state model.LedgerStateDocument
	err := db.collection(model.LedgerStateCollection).FindOne(ctx, filter).Decode(&state)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return 0, nil
		}
		return 0, fmt.Errorf("failed to get total staked: %w", err)
	}
	return state.TotalStaked, nil
}
