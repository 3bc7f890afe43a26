package payments

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
	"go.mongodb.org/mongo-driver/mongo/options"
)

type PaymentMongoRepository struct {
	Collection *mongo.Collection
}

func NewPaymentMongoRepository(db *mongo.Client, dbName string) contracts.PaymentRepository {
	return &PaymentMongoRepository{
		Collection: db.Database(dbName).Collection(constvars.MongoCollectionPayments),
	}
}

// EnsureIndexes creates the unique index on reference. Everything the ledger
// guarantees hangs off this index existing.
func (repo *PaymentMongoRepository) EnsureIndexes(ctx context.Context) error {
	indexModel := mongo.IndexModel{
		Keys:    bson.D{{Key: "reference", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("uniq_reference"),
	}
	_, err := repo.Collection.Indexes().CreateOne(ctx, indexModel)
	if err != nil {
		return exceptions.ErrMongoDBEnsureIndexes(err)
	}
	return nil
}

// RecordIfAbsent is one InsertOne racing against the unique index. A
// duplicate-key error means some earlier observation of the reference won;
// the existing document is returned untouched.
func (repo *PaymentMongoRepository) RecordIfAbsent(ctx context.Context, payment *models.Payment) (bool, *models.Payment, error) {
	if payment.ID == "" {
		payment.ID = primitive.NewObjectID().Hex()
	}
	now := time.Now().UTC()
	payment.CreatedAt = now
	payment.UpdatedAt = now

	_, err := repo.Collection.InsertOne(ctx, payment)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			existing, findErr := repo.FindByReference(ctx, payment.Reference)
			if findErr != nil {
				return false, nil, findErr
			}
			if existing == nil {
				// The winning insert is not visible yet; report the write
				// failure so the sender retries.
				return false, nil, exceptions.ErrMongoDBInsertDocument(err)
			}
			return false, existing, nil
		}
		return false, nil, exceptions.ErrMongoDBInsertDocument(err)
	}
	return true, payment, nil
}

// MarkSuccessIfPending is the only write against an existing ledger document.
// The filter carries the pending status so terminal records stay immutable and
// a concurrent promotion makes this a no-op, reported as a nil document.
func (repo *PaymentMongoRepository) MarkSuccessIfPending(ctx context.Context, reference string) (*models.Payment, error) {
	filter := bson.M{"reference": reference, "status": models.PaymentPending}
	update := bson.M{"$set": bson.M{
		"status":    models.PaymentSuccess,
		"updatedAt": time.Now().UTC(),
	}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var payment models.Payment
	err := repo.Collection.FindOneAndUpdate(ctx, filter, update, opts).Decode(&payment)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, exceptions.ErrMongoDBUpdateDocument(err)
	}
	return &payment, nil
}

func (repo *PaymentMongoRepository) FindByReference(ctx context.Context, reference string) (*models.Payment, error) {
	var payment models.Payment
	err := repo.Collection.FindOne(ctx, bson.M{"reference": reference}).Decode(&payment)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	return &payment, nil
}
