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

const (
	// ledgerParamsVersion is hardcoded to 0; the versioning is kept for
	// future schema compatibility, matching the other global params.
	ledgerParamsVersion = 0
	ledgerParamsType    = "LEDGER"
)

func (db *Database) SaveLedgerParams(
	ctx context.Context, params *model.LedgerParamsDocument,
) error {
	if params == nil {
		return errors.New("nil ledger params")
	}
	params.Type = ledgerParamsType
	params.Version = ledgerParamsVersion

	filter := bson.M{
		"type":    ledgerParamsType,
		"version": ledgerParamsVersion,
	}
	update := bson.M{"$set": params}

	_, err := db.collection(model.GlobalParamsCollection).
		UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("failed to save ledger params: %w", err)
	}
	return nil
}

func (db *Database) GetLedgerParams(ctx context.Context) (*model.LedgerParamsDocument, error) {
	filter := bson.M{
		"type":    ledgerParamsType,
		"version": ledgerParamsVersion,
	}

	var params model.LedgerParamsDocument
	err := db.collection(model.GlobalParamsCollection).FindOne(ctx, filter).Decode(&params)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, &NotFoundError{
				Key:     ledgerParamsType,
				Message: "ledger params not found",
			}
		}
		return nil, fmt.Errorf("failed to get ledger params: %w", err)
	}
	return &params, nil
}
