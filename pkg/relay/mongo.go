package relay

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/matzehuels/bizcanvas/pkg/collab"
)

// MongoStore persists room snapshots in a MongoDB collection, one
// document per room. Snapshots are stored as raw JSON so the collection
// schema never chases the document's internal register layout.
type MongoStore struct {
	client     *mongo.Client
	collection *mongo.Collection
}

// MongoConfig configures the Mongo-backed room store.
type MongoConfig struct {
	URI        string
	Database   string
	Collection string
}

type mongoRoom struct {
	ID        string    `bson:"_id"`
	State     []byte    `bson:"state"`
	UpdatedAt time.Time `bson:"updated_at"`
}

// NewMongoStore connects to MongoDB and verifies the connection.
func NewMongoStore(ctx context.Context, cfg MongoConfig) (*MongoStore, error) {
	if cfg.Database == "" {
		cfg.Database = "bizcanvas"
	}
	if cfg.Collection == "" {
		cfg.Collection = "rooms"
	}

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		client.Disconnect(ctx)
		return nil, fmt.Errorf("ping mongo: %w", err)
	}

	return &MongoStore{
		client:     client,
		collection: client.Database(cfg.Database).Collection(cfg.Collection),
	}, nil
}

func (s *MongoStore) Load(ctx context.Context, roomID string) (*collab.State, error) {
	var room mongoRoom
	err := s.collection.FindOne(ctx, bson.M{"_id": roomID}).Decode(&room)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load room %s: %w", roomID, err)
	}

	var state collab.State
	if err := json.Unmarshal(room.State, &state); err != nil {
		return nil, fmt.Errorf("decode room %s: %w", roomID, err)
	}
	return &state, nil
}

func (s *MongoStore) Save(ctx context.Context, roomID string, state collab.State) error {
	data, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("encode room %s: %w", roomID, err)
	}

	_, err = s.collection.ReplaceOne(ctx,
		bson.M{"_id": roomID},
		mongoRoom{ID: roomID, State: data, UpdatedAt: time.Now()},
		options.Replace().SetUpsert(true),
	)
	if err != nil {
		return fmt.Errorf("save room %s: %w", roomID, err)
	}
	return nil
}

func (s *MongoStore) List(ctx context.Context) ([]RoomInfo, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "updated_at", Value: -1}}).
		SetProjection(bson.M{"state": 0})
	cursor, err := s.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("list rooms: %w", err)
	}
	defer cursor.Close(ctx)

	var out []RoomInfo
	for cursor.Next(ctx) {
		var room mongoRoom
		if err := cursor.Decode(&room); err != nil {
			return nil, fmt.Errorf("decode room: %w", err)
		}
		out = append(out, RoomInfo{ID: room.ID, UpdatedAt: room.UpdatedAt})
	}
	return out, cursor.Err()
}

func (s *MongoStore) Delete(ctx context.Context, roomID string) error {
	if _, err := s.collection.DeleteOne(ctx, bson.M{"_id": roomID}); err != nil {
		return fmt.Errorf("delete room %s: %w", roomID, err)
	}
	return nil
}

// Close disconnects from MongoDB.
func (s *MongoStore) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

var _ RoomStore = (*MongoStore)(nil)
