package services

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/remotehire/remotehire-backend/internal/auth"
	"github.com/remotehire/remotehire-backend/internal/database"
)

// Names of the principal collections. These are the tagged variants the
// Verify middleware dispatches across.
const (
	CandidateCollection = "candidates"
	EmployerCollection  = "employers"
	AdminCollection     = auth.AdminCollection
)

// principalDoc is the slice of a principal document the auth subsystem
// reads. Admin documents simply decode with all gates false, which is fine
// because gates are skipped for the admin collection.
type principalDoc struct {
	ID            primitive.ObjectID `bson:"_id"`
	IsBlocked     bool               `bson:"isBlocked"`
	IsDeleted     bool               `bson:"isDeleted"`
	IsVerified    bool               `bson:"isverified"`
	RefreshTokens []string           `bson:"refreshToken"`
}

// mongoPrincipalStore adapts one MongoDB collection to auth.PrincipalStore.
type mongoPrincipalStore struct {
	name string
}

// NewPrincipalStore returns the store for the named collection.
func NewPrincipalStore(collectionName string) auth.PrincipalStore {
	return &mongoPrincipalStore{name: collectionName}
}

// Principals returns stores for the given collections in priority order,
// for routes that authorize against more than one principal kind.
func Principals(collectionNames ...string) []auth.PrincipalStore {
	stores := make([]auth.PrincipalStore, 0, len(collectionNames))
	for _, name := range collectionNames {
		stores = append(stores, NewPrincipalStore(name))
	}
	return stores
}

func (s *mongoPrincipalStore) Name() string { return s.name }

func (s *mongoPrincipalStore) FindByID(ctx context.Context, id string) (*auth.Principal, error) {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		// Not a valid document id, so it cannot match any principal.
		return nil, nil
	}

	var doc principalDoc
	err = database.DB.Collection(s.name).FindOne(ctx, bson.M{"_id": objectID}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return docToPrincipal(&doc), nil
}

func (s *mongoPrincipalStore) FindByRefreshToken(ctx context.Context, token string) (*auth.Principal, error) {
	var doc principalDoc
	err := database.DB.Collection(s.name).FindOne(ctx, bson.M{"refreshToken": token}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return docToPrincipal(&doc), nil
}

func (s *mongoPrincipalStore) UpdateSessionTokens(ctx context.Context, id string, tokens []string) error {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return err
	}
	if tokens == nil {
		tokens = []string{}
	}
	_, err = database.DB.Collection(s.name).UpdateOne(ctx,
		bson.M{"_id": objectID},
		bson.M{"$set": bson.M{"refreshToken": tokens}},
	)
	return err
}

// AppendSessionToken pushes a freshly issued refresh token onto the
// principal's registry. Sessions are additive: concurrent logins each
// append their own entry.
func AppendSessionToken(ctx context.Context, collectionName, id, token string) error {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return err
	}
	_, err = database.DB.Collection(collectionName).UpdateOne(ctx,
		bson.M{"_id": objectID},
		bson.M{"$push": bson.M{"refreshToken": token}},
	)
	return err
}

// RevokeAllSessions empties the principal's session registry, e.g. after a
// password reset or a soft delete.
func RevokeAllSessions(ctx context.Context, collectionName string, id primitive.ObjectID) error {
	_, err := database.DB.Collection(collectionName).UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"refreshToken": []string{}}},
	)
	return err
}

func docToPrincipal(doc *principalDoc) *auth.Principal {
	return &auth.Principal{
		ID:            doc.ID.Hex(),
		Blocked:       doc.IsBlocked,
		Deleted:       doc.IsDeleted,
		Verified:      doc.IsVerified,
		SessionTokens: doc.RefreshTokens,
	}
}
