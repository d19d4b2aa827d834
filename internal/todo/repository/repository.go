package repository

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/mkalinin/tasklight/internal/common/constants"
	"github.com/mkalinin/tasklight/internal/todo/domain"
)

// ErrTodoNotFound covers both a nonexistent id and an id owned by a
// different user. The two causes are indistinguishable on purpose.
var ErrTodoNotFound = errors.New("todo not found")

// UpdatePatch is a partial update: nil fields are left untouched.
type UpdatePatch struct {
	Text      *string
	Completed *bool
}

// Repository is the owner-scoped access contract. Every method takes
// the owner id so an unscoped query is not expressible.
type Repository interface {
	ListByOwner(ctx context.Context, ownerID string) ([]domain.Todo, error)
	Create(ctx context.Context, ownerID, text string) (domain.Todo, error)
	Update(ctx context.Context, ownerID, id string, patch UpdatePatch) (domain.Todo, error)
	Delete(ctx context.Context, ownerID, id string) error
}

type todoDoc struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	OwnerID   primitive.ObjectID `bson:"owner_id"`
	Text      string             `bson:"text"`
	Completed bool               `bson:"completed"`
	CreatedAt time.Time          `bson:"created_at"`
	UpdatedAt time.Time          `bson:"updated_at"`
}

type MongoRepository struct {
	todos *mongo.Collection
}

func NewMongoRepository(database *mongo.Database) *MongoRepository {
	return &MongoRepository{todos: database.Collection(constants.TodosCollection)}
}

func (r *MongoRepository) ListByOwner(ctx context.Context, ownerID string) ([]domain.Todo, error) {
	owner, err := primitive.ObjectIDFromHex(ownerID)
	if err != nil {
		return nil, ErrTodoNotFound
	}

	cursor, err := r.todos.Find(ctx, bson.M{"owner_id": owner})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var docs []todoDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}

	result := make([]domain.Todo, 0, len(docs))
	for _, doc := range docs {
		result = append(result, toDomain(doc))
	}
	return result, nil
}

func (r *MongoRepository) Create(ctx context.Context, ownerID, text string) (domain.Todo, error) {
	owner, err := primitive.ObjectIDFromHex(ownerID)
	if err != nil {
		return domain.Todo{}, err
	}

	now := time.Now().UTC()
	doc := todoDoc{
		ID:        primitive.NewObjectID(),
		OwnerID:   owner,
		Text:      text,
		Completed: false,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if _, err := r.todos.InsertOne(ctx, doc); err != nil {
		return domain.Todo{}, err
	}

	return toDomain(doc), nil
}

func (r *MongoRepository) Update(ctx context.Context, ownerID, id string, patch UpdatePatch) (domain.Todo, error) {
	filter, err := ownerScopedFilter(ownerID, id)
	if err != nil {
		return domain.Todo{}, err
	}

	set := bson.M{}
	if patch.Text != nil {
		set["text"] = *patch.Text
	}
	if patch.Completed != nil {
		set["completed"] = *patch.Completed
	}

	update := bson.M{
		"$set":         set,
		"$currentDate": bson.M{"updated_at": true},
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var doc todoDoc
	err = r.todos.FindOneAndUpdate(ctx, filter, update, opts).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return domain.Todo{}, ErrTodoNotFound
		}
		return domain.Todo{}, err
	}

	return toDomain(doc), nil
}

func (r *MongoRepository) Delete(ctx context.Context, ownerID, id string) error {
	filter, err := ownerScopedFilter(ownerID, id)
	if err != nil {
		return err
	}

	result, err := r.todos.DeleteOne(ctx, filter)
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return ErrTodoNotFound
	}
	return nil
}

// ownerScopedFilter builds the {_id, owner_id} filter shared by update
// and delete. A malformed todo id cannot match anything, so it maps to
// the same not-found outcome as a wrong owner.
func ownerScopedFilter(ownerID, id string) (bson.M, error) {
	docID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrTodoNotFound
	}
	owner, err := primitive.ObjectIDFromHex(ownerID)
	if err != nil {
		return nil, ErrTodoNotFound
	}
	return bson.M{"_id": docID, "owner_id": owner}, nil
}

func toDomain(doc todoDoc) domain.Todo {
	return domain.Todo{
		ID:        doc.ID.Hex(),
		OwnerID:   doc.OwnerID.Hex(),
		Text:      doc.Text,
		Completed: doc.Completed,
		CreatedAt: doc.CreatedAt,
		UpdatedAt: doc.UpdatedAt,
	}
}
