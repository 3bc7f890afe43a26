package subaccounts

import (
	"context"
	"time"

	"medibook-service/internal/app/contracts"
	"medibook-service/internal/app/models"
	"medibook-service/internal/pkg/constvars"
	"medibook-service/internal/pkg/exceptions"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type SubaccountMongoRepository struct {
	Collection *mongo.Collection
}

func NewSubaccountMongoRepository(db *mongo.Client, dbName string) contracts.SubaccountRepository {
	return &SubaccountMongoRepository{
		Collection: db.Database(dbName).Collection(constvars.MongoCollectionSubaccounts),
	}
}

func (repo *SubaccountMongoRepository) CreateSubaccount(ctx context.Context, subaccount *models.Subaccount) (*models.Subaccount, error) {
	if subaccount.ID == "" {
		subaccount.ID = primitive.NewObjectID().Hex()
	}
	now := time.Now().UTC()
	subaccount.CreatedAt = now
	subaccount.UpdatedAt = now

	_, err := repo.Collection.InsertOne(ctx, subaccount)
	if err != nil {
		return nil, exceptions.ErrMongoDBInsertDocument(err)
	}
	return subaccount, nil
}

func (repo *SubaccountMongoRepository) FindByUserID(ctx context.Context, userID string) (*models.Subaccount, error) {
	var subaccount models.Subaccount
	err := repo.Collection.FindOne(ctx, bson.M{"userId": userID}).Decode(&subaccount)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	return &subaccount, nil
}
