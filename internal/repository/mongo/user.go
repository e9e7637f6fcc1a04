package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/dtroode/sessionauth/internal/model"
)

const (
	usersCollection = "users"
	emailIndexName  = "users_email_key"
)

var _ model.UserStore = (*UserRepository)(nil)

type userDocument struct {
	ID           string    `bson:"_id"`
	FirstName    string    `bson:"first_name"`
	LastName     string    `bson:"last_name"`
	Email        string    `bson:"email"`
	Age          int       `bson:"age"`
	PasswordHash string    `bson:"password"`
	Role         string    `bson:"role"`
	CartID       string    `bson:"cart,omitempty"`
	CreatedAt    time.Time `bson:"created_at"`
	UpdatedAt    time.Time `bson:"updated_at"`
}

func toDocument(u model.User) userDocument {
	doc := userDocument{
		ID:           u.ID.String(),
		FirstName:    u.FirstName,
		LastName:     u.LastName,
		Email:        u.Email,
		Age:          u.Age,
		PasswordHash: u.PasswordHash,
		Role:         u.Role,
		CreatedAt:    u.CreatedAt,
		UpdatedAt:    u.UpdatedAt,
	}
	if u.CartID != nil {
		doc.CartID = u.CartID.String()
	}
	return doc
}

func (d userDocument) toModel() (model.User, error) {
	id, err := uuid.Parse(d.ID)
	if err != nil {
		return model.User{}, fmt.Errorf("failed to parse user id %q: %w", d.ID, err)
	}

	u := model.User{
		ID:           id,
		FirstName:    d.FirstName,
		LastName:     d.LastName,
		Email:        d.Email,
		Age:          d.Age,
		PasswordHash: d.PasswordHash,
		Role:         d.Role,
		CreatedAt:    d.CreatedAt,
		UpdatedAt:    d.UpdatedAt,
	}
	if u.Role == "" {
		u.Role = model.DefaultRole
	}
	if d.CartID != "" {
		cart, err := uuid.Parse(d.CartID)
		if err != nil {
			return model.User{}, fmt.Errorf("failed to parse cart id %q: %w", d.CartID, err)
		}
		u.CartID = &cart
	}

	return u, nil
}

type UserRepository struct {
	users *mongo.Collection
}

func NewUserRepository(conn *Connection) *UserRepository {
	return &UserRepository{
		users: conn.Collection(usersCollection),
	}
}

// EnsureIndexes creates the unique email index if it is missing.
func (r *UserRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.users.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true).SetName(emailIndexName),
	})
	if err != nil {
		return fmt.Errorf("failed to create email index: %w", err)
	}
	return nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (model.User, error) {
	return r.findOne(ctx, bson.M{"email": email}, "email")
}

func (r *UserRepository) GetByID(ctx context.Context, id uuid.UUID) (model.User, error) {
	return r.findOne(ctx, bson.M{"_id": id.String()}, "id")
}

func (r *UserRepository) Create(ctx context.Context, user model.User) (model.User, error) {
	if _, err := r.users.InsertOne(ctx, toDocument(user)); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return model.User{}, fmt.Errorf("%w: %s", model.ErrDuplicateEmail, user.Email)
		}
		return model.User{}, fmt.Errorf("failed to create user: %w", err)
	}

	return user, nil
}

func (r *UserRepository) findOne(ctx context.Context, filter bson.M, by string) (model.User, error) {
	var doc userDocument
	if err := r.users.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return model.User{}, model.ErrNotFound
		}
		return model.User{}, fmt.Errorf("failed to get user by %s: %w", by, err)
	}

	return doc.toModel()
}
