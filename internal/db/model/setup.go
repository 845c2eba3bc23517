package model

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/stakelabs-io/token-staking-ledger/internal/config"
)

const setupTimeout = 30 * time.Second

var collections = []string{
	PositionCollection,
	PendingClaimCollection,
	GlobalParamsCollection,
	LedgerStateCollection,
}

// Setup creates the ledger collections and their indexes. Safe to run on
// every start.
func Setup(ctx context.Context, cfg *config.DbConfig) error {
	credential := options.Credential{
		Username: cfg.Username,
		Password: cfg.Password,
	}
	clientOps := options.Client().ApplyURI(cfg.Address).SetAuth(credential)
	client, err := mongo.Connect(ctx, clientOps)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, setupTimeout)
	defer cancel()
	defer func() {
		_ = client.Disconnect(ctx)
	}()

	database := client.Database(cfg.DbName)
	for _, name := range collections {
		if err := createCollection(ctx, database, name); err != nil {
			return err
		}
	}

	positionParticipantIdx := mongo.IndexModel{
		Keys: bson.D{{Key: "participant", Value: 1}},
	}
	if _, err := database.Collection(PositionCollection).Indexes().
		CreateOne(ctx, positionParticipantIdx); err != nil {
		return fmt.Errorf("failed to create position participant index: %w", err)
	}

	paramsTypeVersionIdx := mongo.IndexModel{
		Keys:    bson.D{{Key: "type", Value: 1}, {Key: "version", Value: -1}},
		Options: options.Index().SetUnique(true),
	}
	if _, err := database.Collection(GlobalParamsCollection).Indexes().
		CreateOne(ctx, paramsTypeVersionIdx); err != nil {
		return fmt.Errorf("failed to create global params index: %w", err)
	}

	return nil
}

func createCollection(ctx context.Context, database *mongo.Database, collectionName string) error {
	// CreateCollection errors if the collection already exists
	names, err := database.ListCollectionNames(ctx, bson.M{"name": collectionName})
	if err != nil {
		return fmt.Errorf("failed to list collection names: %w", err)
	}
	if len(names) > 0 {
		return nil
	}

	return database.CreateCollection(ctx, collectionName)
}
