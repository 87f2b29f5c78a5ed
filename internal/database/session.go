package repository

import (
	"MerchantBot/bot/flow"
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// SaveSession persists a user's session.
func (m *MongoDB) SaveSession(ctx context.Context, s *flow.Session) error {
	connection, err := m.connect()
	if err != nil {
		return err
	}
	defer m.disconnect(connection)

	collection := connection.Database(m.database).Collection(sessionsCollection)

	s.UpdatedAt = time.Now()

	filter := bson.D{{Key: "user_id", Value: s.UserID}}
	update := bson.D{{Key: "$set", Value: s}}
	opts := options.Update().SetUpsert(true)

	_, err = collection.UpdateOne(ctx, filter, update, opts)
	if err != nil {
		return err
	}

	return nil
}

// LoadSession retrieves a user's session, nil when none exists.
func (m *MongoDB) LoadSession(ctx context.Context, userID int64) (*flow.Session, error) {
	connection, err := m.connect()
	if err != nil {
		return nil, err
	}
	defer m.disconnect(connection)

	collection := connection.Database(m.database).Collection(sessionsCollection)

	filter := bson.D{{Key: "user_id", Value: userID}}

	var s flow.Session
	err = collection.FindOne(ctx, filter).Decode(&s)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}

	return &s, nil
}

// DeleteSession removes a user's session.
func (m *MongoDB) DeleteSession(ctx context.Context, userID int64) error {
	connection, err := m.connect()
	if err != nil {
		return err
	}
	defer m.disconnect(connection)

	collection := connection.Database(m.database).Collection(sessionsCollection)

	filter := bson.D{{Key: "user_id", Value: userID}}

	_, err = collection.DeleteOne(ctx, filter)
	return err
}
