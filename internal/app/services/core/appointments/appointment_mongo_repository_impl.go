package appointments

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

type AppointmentMongoRepository struct {
	Collection *mongo.Collection
}

func NewAppointmentMongoRepository(db *mongo.Client, dbName string) contracts.AppointmentRepository {
	return &AppointmentMongoRepository{
		Collection: db.Database(dbName).Collection(constvars.MongoCollectionAppointments),
	}
}

func (repo *AppointmentMongoRepository) CreateAppointment(ctx context.Context, appointment *models.Appointment) (*models.Appointment, error) {
	if appointment.ID == "" {
		appointment.ID = primitive.NewObjectID().Hex()
	}
	now := time.Now().UTC()
	appointment.CreatedAt = now
	appointment.UpdatedAt = now

	_, err := repo.Collection.InsertOne(ctx, appointment)
	if err != nil {
		return nil, exceptions.ErrMongoDBInsertDocument(err)
	}
	return appointment, nil
}

func (repo *AppointmentMongoRepository) FindByID(ctx context.Context, appointmentID string) (*models.Appointment, error) {
	// A malformed id cannot match any document; report not found rather
	// than a validation error.
	if _, err := primitive.ObjectIDFromHex(appointmentID); err != nil {
		return nil, nil
	}
	var appointment models.Appointment
	err := repo.Collection.FindOne(ctx, bson.M{"_id": appointmentID}).Decode(&appointment)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	return &appointment, nil
}

func (repo *AppointmentMongoRepository) FindByUserID(ctx context.Context, userID string) ([]models.Appointment, error) {
	return repo.findAll(ctx, bson.M{"userId": userID})
}

func (repo *AppointmentMongoRepository) FindByProfessionalID(ctx context.Context, professionalID string) ([]models.Appointment, error) {
	return repo.findAll(ctx, bson.M{"professionalId": professionalID})
}

func (repo *AppointmentMongoRepository) findAll(ctx context.Context, filter bson.M) ([]models.Appointment, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "date", Value: 1}, {Key: "time", Value: 1}})
	cursor, err := repo.Collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	defer cursor.Close(ctx)

	appointments := make([]models.Appointment, 0)
	if err := cursor.All(ctx, &appointments); err != nil {
		return nil, exceptions.ErrMongoDBIterateDocuments(err)
	}
	return appointments, nil
}

// ConfirmPending is the single guarded transition out of pending. The filter
// carries the status so a concurrent confirm, cancel, or webhook activation
// makes this a no-op, reported as a nil document.
func (repo *AppointmentMongoRepository) ConfirmPending(ctx context.Context, appointmentID, paymentReference string) (*models.Appointment, error) {
	return repo.transitionPending(ctx, appointmentID, bson.M{
		"status":           models.AppointmentConfirmed,
		"paymentReference": paymentReference,
		"updatedAt":        time.Now().UTC(),
	})
}

func (repo *AppointmentMongoRepository) CancelPending(ctx context.Context, appointmentID string) (*models.Appointment, error) {
	return repo.transitionPending(ctx, appointmentID, bson.M{
		"status":    models.AppointmentCancelled,
		"updatedAt": time.Now().UTC(),
	})
}

func (repo *AppointmentMongoRepository) transitionPending(ctx context.Context, appointmentID string, set bson.M) (*models.Appointment, error) {
	if _, err := primitive.ObjectIDFromHex(appointmentID); err != nil {
		return nil, nil
	}

	filter := bson.M{"_id": appointmentID, "status": models.AppointmentPending}
	update := bson.M{"$set": set}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var appointment models.Appointment
	err := repo.Collection.FindOneAndUpdate(ctx, filter, update, opts).Decode(&appointment)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, exceptions.ErrMongoDBUpdateDocument(err)
	}
	return &appointment, nil
}

func (repo *AppointmentMongoRepository) CountByProfessional(ctx context.Context, professionalID string, status models.AppointmentStatus) (int, error) {
	count, err := repo.Collection.CountDocuments(ctx, bson.M{"professionalId": professionalID, "status": status})
	if err != nil {
		return 0, exceptions.ErrMongoDBFindDocument(err)
	}
	return int(count), nil
}
