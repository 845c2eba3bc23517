package db

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/stakelabs-io/token-staking-ledger/internal/db/model"
)

func (db *Database) SavePosition(
	ctx context.Context, position *model.PositionDocument,
) error {
	_, err := db.collection(model.PositionCollection).InsertOne(ctx, position)
	if err != nil {
		var writeErr mongo.WriteException
		if errors.As(err, &writeErr) {
			for _, e := range writeErr.WriteErrors {
				if mongo.IsDuplicateKeyError(e) {
					return &DuplicateKeyError{
						Key:     position.ID,
						Message: "position already exists",
					}
				}
			}
		}
		return err
	}
	return nil
}

func (db *Database) GetPositions(
	ctx context.Context, participant string,
) ([]model.PositionDocument, error) {
	filter := bson.M{"participant": participant}

	cursor, err := db.collection(model.PositionCollection).Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to find positions: %w", err)
	}
	defer cursor.Close(ctx)

	var positions []model.PositionDocument
	if err := cursor.All(ctx, &positions); err != nil {
		return nil, fmt.Errorf("failed to decode positions: %w", err)
	}
	return positions, nil
}

func (db *Database) GetAllPositions(ctx context.Context) ([]model.PositionDocument, error) {
	cursor, err := db.collection(model.PositionCollection).Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("failed to find positions: %w", err)
	}
	defer cursor.Close(ctx)

	var positions []model.PositionDocument
	if err := cursor.All(ctx, &positions); err != nil {
		return nil, fmt.Errorf("failed to decode positions: %w", err)
	}
	return positions, nil
}

// DeletePositions removes the participant's whole position sequence. Deleting
// an empty sequence is not an error.
func (db *Database) DeletePositions(ctx context.Context, participant string) error {
	filter := bson.M{"participant": participant}

	_, err := db.collection(model.PositionCollection).DeleteMany(ctx, filter)
	if err != nil {
		return fmt.Errorf("failed to delete positions: %w", err)
	}
	return nil
}
