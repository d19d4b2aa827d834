package repository

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/mkalinin/tasklight/internal/common/constants"
	"github.com/mkalinin/tasklight/internal/user/domain"
)

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailAlreadyExists = errors.New("email already exists")
)

type Repository interface {
	Create(ctx context.Context, email, passwordHash string) (domain.User, error)
	FindByEmail(ctx context.Context, email string) (domain.User, error)
}

type userDoc struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	Email        string             `bson:"email"`
	PasswordHash string             `bson:"password_hash"`
	CreatedAt    time.Time          `bson:"created_at"`
}

type MongoRepository struct {
	users *mongo.Collection
}

func NewMongoRepository(database *mongo.Database) *MongoRepository {
	return &MongoRepository{users: database.Collection(constants.UsersCollection)}
}

// Create inserts a new user. Email uniqueness is the store's unique
// index, not an application-level check.
func (r *MongoRepository) Create(ctx context.Context, email, passwordHash string) (domain.User, error) {
	doc := userDoc{
		ID:           primitive.NewObjectID(),
		Email:        email,
		PasswordHash: passwordHash,
		CreatedAt:    time.Now().UTC(),
	}

	_, err := r.users.InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.User{}, ErrEmailAlreadyExists
		}
		return domain.User{}, err
	}

	return toDomain(doc), nil
}

func (r *MongoRepository) FindByEmail(ctx context.Context, email string) (domain.User, error) {
	var doc userDoc
	err := r.users.FindOne(ctx, bson.M{"email": email}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return domain.User{}, ErrUserNotFound
		}
		return domain.User{}, err
	}

	return toDomain(doc), nil
}

func toDomain(doc userDoc) domain.User {
	return domain.User{
		ID:           domain.ID(doc.ID.Hex()),
		Email:        doc.Email,
		PasswordHash: doc.PasswordHash,
		CreatedAt:    doc.CreatedAt,
	}
}
