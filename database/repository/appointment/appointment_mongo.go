package appointmentRepo

import (
	"go.mongodb.org/mongo-driver/mongo"

	"clinicport/config"
	"clinicport/database"
)

const queryTimeout = 5 // seconds, applied per store call

// MongoAppointmentRepo implements AppointmentRepository using MongoDB.
type MongoAppointmentRepo struct {
	coll *mongo.Collection
}

// NewMongoAppointmentRepo constructs a new instance of MongoAppointmentRepo.
func NewMongoAppointmentRepo() AppointmentRepository {
	db := database.MongoClient.Database(config.AppConfig.DatabaseName)
	return &MongoAppointmentRepo{
		coll: db.Collection("appointments"),
	}
}
