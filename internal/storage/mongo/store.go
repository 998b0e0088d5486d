// Package mongo stores trending counters in a MongoDB collection.
package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/mmcdole/reel/internal/domain"
)

const (
	DefaultDatabase   = "reel"
	DefaultCollection = "trending"
)

type trendingDoc struct {
	ID         string `bson:"_id"`
	SearchTerm string `bson:"searchTerm"`
	Count      int    `bson:"count"`
	PosterURL  string `bson:"posterUrl"`
	MovieID    int64  `bson:"movieId"`
	Title      string `bson:"title,omitempty"`
	UpdatedAt  int64  `bson:"updatedAt"`
}

// Store implements domain.TrendingStore on a MongoDB collection.
type Store struct {
	client     *mongo.Client
	collection *mongo.Collection
	owned      bool
}

// Connect dials uri and pings the server.
func Connect(ctx context.Context, uri string, extra ...*options.ClientOptions) (*mongo.Client, error) {
	opts := append([]*options.ClientOptions{options.Client().ApplyURI(uri)}, extra...)
	client, err := mongo.Connect(ctx, opts...)
	if err != nil {
		return nil, err
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, err
	}
	return client, nil
}

// NewStore wraps an existing client. Close does not disconnect it.
func NewStore(client *mongo.Client, dbName, collectionName string) *Store {
	if dbName == "" {
		dbName = DefaultDatabase
	}
	if collectionName == "" {
		collectionName = DefaultCollection
	}
	return &Store{
		client:     client,
		collection: client.Database(dbName).Collection(collectionName),
	}
}

// Open connects to uri and returns a Store that owns the client.
func Open(ctx context.Context, uri, dbName, collectionName string) (*Store, error) {
	client, err := Connect(ctx, uri)
	if err != nil {
		return nil, err
	}
	s := NewStore(client, dbName, collectionName)
	s.owned = true
	if err := s.EnsureIndexes(ctx); err != nil {
		_ = client.Disconnect(ctx)
		return nil, err
	}
	return s, nil
}

// EnsureIndexes creates the lookup and ranking indexes.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	models := []mongo.IndexModel{
		{Keys: bson.D{{Key: "searchTerm", Value: 1}}},
		{Keys: bson.D{{Key: "count", Value: -1}, {Key: "updatedAt", Value: -1}}},
	}
	_, err := s.collection.Indexes().CreateMany(ctx, models)
	return err
}

func (s *Store) TopByCount(ctx context.Context, limit int) ([]domain.TrendingEntry, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "count", Value: -1}, {Key: "updatedAt", Value: -1}, {Key: "searchTerm", Value: 1}})
	if limit > 0 {
		opts.SetLimit(int64(limit))
	}

	cursor, err := s.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var docs []trendingDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}

	entries := make([]domain.TrendingEntry, 0, len(docs))
	for _, doc := range docs {
		entries = append(entries, docToEntry(doc))
	}
	return entries, nil
}

func (s *Store) FindByTerm(ctx context.Context, term string) (domain.TrendingEntry, error) {
	var doc trendingDoc
	err := s.collection.FindOne(ctx, bson.M{"searchTerm": term}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return domain.TrendingEntry{}, domain.ErrEntryNotFound
		}
		return domain.TrendingEntry{}, err
	}
	return docToEntry(doc), nil
}

func (s *Store) Save(ctx context.Context, entry domain.TrendingEntry) error {
	doc := entryToDoc(entry)
	_, err := s.collection.ReplaceOne(
		ctx,
		bson.M{"_id": doc.ID},
		doc,
		options.Replace().SetUpsert(true),
	)
	return err
}

func (s *Store) Close() error {
	if !s.owned {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.client.Disconnect(ctx)
}

func entryToDoc(e domain.TrendingEntry) trendingDoc {
	var updated int64
	if !e.UpdatedAt.IsZero() {
		updated = e.UpdatedAt.Unix()
	}
	return trendingDoc{
		ID:         e.ID,
		SearchTerm: e.SearchTerm,
		Count:      e.Count,
		PosterURL:  e.PosterURL,
		MovieID:    e.MovieID,
		Title:      e.Title,
		UpdatedAt:  updated,
	}
}

func docToEntry(doc trendingDoc) domain.TrendingEntry {
	var updated time.Time
	if doc.UpdatedAt != 0 {
		updated = time.Unix(doc.UpdatedAt, 0).UTC()
	}
	return domain.TrendingEntry{
		ID:         doc.ID,
		SearchTerm: doc.SearchTerm,
		Count:      doc.Count,
		PosterURL:  doc.PosterURL,
		MovieID:    doc.MovieID,
		Title:      doc.Title,
		UpdatedAt:  updated,
	}
}
