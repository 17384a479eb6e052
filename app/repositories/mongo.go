package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"hootroost/app/models"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"go.mongodb.org/mongo-driver/v2/mongo/readpref"
)

const (
	HootCollection = "hoots"
	UserCollection = "users"
)

// MongoStore keeps hoots as documents with their comments embedded.
type MongoStore struct {
	client *mongo.Client
	db     *mongo.Database
}

// NewMongoStore connects to uri and pings the primary before returning.
func NewMongoStore(ctx context.Context, uri, database string) (*MongoStore, error) {
	opts := options.Client().
		ApplyURI(uri).
		SetServerAPIOptions(options.ServerAPI(options.ServerAPIVersion1))

	client, err := mongo.Connect(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongo: %w", err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("failed to ping mongo: %w", err)
	}
	return &MongoStore{client: client, db: client.Database(database)}, nil
}

// EnsureIndexes creates the index backing newest-first listing.
func (s *MongoStore) EnsureIndexes(ctx context.Context) error {
	_, err := s.db.Collection(HootCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "createdAt", Value: -1}},
		Options: options.Index().SetName("createdAt_desc"),
	})
	return err
}

func (s *MongoStore) Hoots() HootRepository {
	return &MongoHootRepository{col: s.db.Collection(HootCollection)}
}

func (s *MongoStore) Users() UserRepository {
	return &MongoUserRepository{col: s.db.Collection(UserCollection)}
}

// Drop removes both collections.
func (s *MongoStore) Drop(ctx context.Context) error {
	if err := s.db.Collection(HootCollection).Drop(ctx); err != nil {
		return err
	}
	return s.db.Collection(UserCollection).Drop(ctx)
}

func (s *MongoStore) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return s.client.Disconnect(ctx)
}

// MongoHootRepository implements HootRepository on a mongo collection.
type MongoHootRepository struct {
	col *mongo.Collection
}

func (r *MongoHootRepository) Create(ctx context.Context, hoot *models.Hoot) error {
	hoot.BeforeCreate()
	for _, c := range hoot.Comments {
		c.BeforeCreate()
	}
	_, err := r.col.InsertOne(ctx, hoot)
	return err
}

func (r *MongoHootRepository) GetByID(ctx context.Context, id string) (*models.Hoot, error) {
	var hoot models.Hoot
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&hoot)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	normalize(&hoot)
	return &hoot, nil
}

func (r *MongoHootRepository) List(ctx context.Context) ([]*models.Hoot, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cur, err := r.col.Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	hoots := []*models.Hoot{}
	if err := cur.All(ctx, &hoots); err != nil {
		return nil, err
	}
	for _, h := range hoots {
		normalize(h)
	}
	return hoots, nil
}

// Update replaces the stored document with hoot.
func (r *MongoHootRepository) Update(ctx context.Context, hoot *models.Hoot) error {
	for _, c := range hoot.Comments {
		if c.ID == "" {
			c.BeforeCreate()
		}
	}
	normalize(hoot)
	res, err := r.col.ReplaceOne(ctx, bson.M{"_id": hoot.ID}, hoot)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// UpdateFields sets the editable fields with $set so the comments array is
// never rewritten.
func (r *MongoHootRepository) UpdateFields(ctx context.Context, hoot *models.Hoot) error {
	res, err := r.col.UpdateOne(ctx,
		bson.M{"_id": hoot.ID},
		bson.M{"$set": bson.M{
			"title":     hoot.Title,
			"text":      hoot.Text,
			"category":  hoot.Category,
			"updatedAt": hoot.UpdatedAt,
		}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *MongoHootRepository) Delete(ctx context.Context, id string) error {
	res, err := r.col.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// AppendComment pushes comment onto the embedded array in one update and
// returns the document as it is after the push.
func (r *MongoHootRepository) AppendComment(ctx context.Context, hootID string, comment *models.Comment) (*models.Hoot, error) {
	comment.BeforeCreate()
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var hoot models.Hoot
	err := r.col.FindOneAndUpdate(ctx,
		bson.M{"_id": hootID},
		bson.M{"$push": bson.M{"comments": comment}},
		opts,
	).Decode(&hoot)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	normalize(&hoot)
	return &hoot, nil
}

// normalize keeps comments an array so $push never meets a null field.
func normalize(hoot *models.Hoot) {
	if hoot.Comments == nil {
		hoot.Comments = []*models.Comment{}
	}
}

// MongoUserRepository implements UserRepository on a mongo collection.
type MongoUserRepository struct {
	col *mongo.Collection
}

func (r *MongoUserRepository) Upsert(ctx context.Context, user *models.User) error {
	_, err := r.col.UpdateOne(ctx,
		bson.M{"_id": user.ID},
		bson.M{"$set": bson.M{"username": user.Username}},
		options.UpdateOne().SetUpsert(true),
	)
	return err
}

func (r *MongoUserRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	var user models.User
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&user)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *MongoUserRepository) GetByIDs(ctx context.Context, ids []string) (map[string]*models.User, error) {
	users := make(map[string]*models.User, len(ids))
	if len(ids) == 0 {
		return users, nil
	}
	cur, err := r.col.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var found []*models.User
	if err := cur.All(ctx, &found); err != nil {
		return nil, err
	}
	for _, u := range found {
		users[u.ID] = u
	}
	return users, nil
}
