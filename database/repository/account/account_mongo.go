package accountRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"clinicport/config"
	"clinicport/database"
	"clinicport/models"
)

var (
	ErrNotFound       = errors.New("account not found")
	ErrDuplicateEmail = errors.New("email already registered")
)

// AccountRepository defines the data access methods for portal logins.
type AccountRepository interface {
	EnsureIndexes() error
	Insert(ctx context.Context, acct *models.Account) error
	GetByEmail(ctx context.Context, email string) (*models.Account, error)
	GetByID(ctx context.Context, id string) (*models.Account, error)
}

// MongoAccountRepo implements AccountRepository using MongoDB.
type MongoAccountRepo struct {
	coll *mongo.Collection
}

// NewMongoAccountRepo constructs a new instance of MongoAccountRepo.
func NewMongoAccountRepo() AccountRepository {
	db := database.MongoClient.Database(config.AppConfig.DatabaseName)
	return &MongoAccountRepo{coll: db.Collection("accounts")}
}

// EnsureIndexes creates the unique indexes on the accounts collection.
func (repo *MongoAccountRepo) EnsureIndexes() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "id", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("unique_id"),
		},
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("unique_email"),
		},
	}
	if _, err := repo.coll.Indexes().CreateMany(ctx, indexModels); err != nil {
		return fmt.Errorf("failed to create account indexes: %w", err)
	}
	return nil
}

// Insert persists a new account.
func (repo *MongoAccountRepo) Insert(ctx context.Context, acct *models.Account) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if _, err := repo.coll.InsertOne(ctx, acct); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrDuplicateEmail
		}
		return fmt.Errorf("error creating account: %w", err)
	}
	return nil
}

// GetByEmail retrieves an account by email.
func (repo *MongoAccountRepo) GetByEmail(ctx context.Context, email string) (*models.Account, error) {
	return repo.findOne(ctx, bson.M{"email": email})
}

// GetByID retrieves an account by its unique ID.
func (repo *MongoAccountRepo) GetByID(ctx context.Context, id string) (*models.Account, error) {
	return repo.findOne(ctx, bson.M{"id": id})
}

func (repo *MongoAccountRepo) findOne(ctx context.Context, filter bson.M) (*models.Account, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var acct models.Account
	if err := repo.coll.FindOne(ctx, filter).Decode(&acct); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("error fetching account: %w", err)
	}
	return &acct, nil
}
