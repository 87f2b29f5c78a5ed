package repository

import (
	"MerchantBot/entity"
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// AllocateCounter atomically increments and returns the counter for a tag.
// The increment happens server-side in a single findAndModify, so two
// concurrent callers can never observe the same value. A never-seen tag is
// created with counter 1.
func (m *MongoDB) AllocateCounter(ctx context.Context, tag string) (int64, error) {
	connection, err := m.connect()
	if err != nil {
		return 0, err
	}
	defer m.disconnect(connection)

	collection := connection.Database(m.database).Collection(countersCollection)

	filter := bson.D{{Key: "order_id_tag", Value: tag}}
	update := bson.M{"$inc": bson.M{"counter": 1}}
	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var record entity.OrderCounter
	err = collection.FindOneAndUpdate(ctx, filter, update, opts).Decode(&record)
	if err != nil {
		return 0, fmt.Errorf("mongodb counter update error: %w", err)
	}

	return record.Counter, nil
}
