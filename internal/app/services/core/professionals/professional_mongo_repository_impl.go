package professionals

import (
	"context"
	"time"

	"medibook-service/internal/app/contracts"
	"medibook-service/internal/app/models"
	"medibook-service/internal/pkg/constvars"
	"medibook-service/internal/pkg/dto/requests"
	"medibook-service/internal/pkg/exceptions"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type ProfessionalMongoRepository struct {
	Collection *mongo.Collection
}

func NewProfessionalMongoRepository(db *mongo.Client, dbName string) contracts.ProfessionalRepository {
	return &ProfessionalMongoRepository{
		Collection: db.Database(dbName).Collection(constvars.MongoCollectionProfessionals),
	}
}

func (repo *ProfessionalMongoRepository) CreateProfessional(ctx context.Context, professional *models.Professional) (*models.Professional, error) {
	if professional.ID == "" {
		professional.ID = primitive.NewObjectID().Hex()
	}
	now := time.Now().UTC()
	professional.CreatedAt = now
	professional.UpdatedAt = now

	_, err := repo.Collection.InsertOne(ctx, professional)
	if err != nil {
		return nil, exceptions.ErrMongoDBInsertDocument(err)
	}
	return professional, nil
}

func (repo *ProfessionalMongoRepository) FindByID(ctx context.Context, professionalID string) (*models.Professional, error) {
	if _, err := primitive.ObjectIDFromHex(professionalID); err != nil {
		return nil, exceptions.ErrMongoDBNotObjectID(err)
	}
	var professional models.Professional
	err := repo.Collection.FindOne(ctx, bson.M{"_id": professionalID}).Decode(&professional)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	return &professional, nil
}

func (repo *ProfessionalMongoRepository) FindByEmail(ctx context.Context, email string) (*models.Professional, error) {
	var professional models.Professional
	err := repo.Collection.FindOne(ctx, bson.M{"email": email}).Decode(&professional)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	return &professional, nil
}

func (repo *ProfessionalMongoRepository) Find(ctx context.Context, request *requests.ListProfessionals) ([]models.Professional, int, error) {
	filter := bson.M{}
	if request.Category != "" {
		filter["category"] = request.Category
	}
	if request.AvailableOnly {
		filter["availability"] = true
	}

	total, err := repo.Collection.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, exceptions.ErrMongoDBFindDocument(err)
	}

	findOptions := options.Find().SetSort(bson.D{{Key: "lastName", Value: 1}})
	if request.PageSize > 0 {
		page := request.Page
		if page < 1 {
			page = 1
		}
		findOptions.SetSkip(int64((page - 1) * request.PageSize))
		findOptions.SetLimit(int64(request.PageSize))
	}

	cursor, err := repo.Collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, 0, exceptions.ErrMongoDBFindDocument(err)
	}
	defer cursor.Close(ctx)

	professionals := make([]models.Professional, 0)
	if err := cursor.All(ctx, &professionals); err != nil {
		return nil, 0, exceptions.ErrMongoDBIterateDocuments(err)
	}
	return professionals, int(total), nil
}

func (repo *ProfessionalMongoRepository) UpdateProfessional(ctx context.Context, professional *models.Professional) error {
	professional.UpdatedAt = time.Now().UTC()
	filter := bson.M{"_id": professional.ID}
	update := bson.M{"$set": professional}

	_, err := repo.Collection.UpdateOne(ctx, filter, update, options.Update().SetUpsert(false))
	if err != nil {
		return exceptions.ErrMongoDBUpdateDocument(err)
	}
	return nil
}
