package repository

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type infoBlock struct {
	ID      int    `bson:"_id"`
	Content string `bson:"content"`
}

// GetInfoContent returns the admin-editable info block content.
func (m *MongoDB) GetInfoContent(ctx context.Context) (string, error) {
	connection, err := m.connect()
	if err != nil {
		return "", err
	}
	defer m.disconnect(connection)

	collection := connection.Database(m.database).Collection(infoCollection)

	var block infoBlock
	err = collection.FindOne(ctx, bson.D{{Key: "_id", Value: 1}}).Decode(&block)
	if err != nil {
		if findErr := m.findError(err); findErr != nil {
			return "", findErr
		}
		return "", nil
	}
	return block.Content, nil
}

// UpdateInfoContent replaces the info block content.
func (m *MongoDB) UpdateInfoContent(ctx context.Context, content string) error {
	connection, err := m.connect()
	if err != nil {
		return err
	}
	defer m.disconnect(connection)

	collection := connection.Database(m.database).Collection(infoCollection)

	filter := bson.D{{Key: "_id", Value: 1}}
	update := bson.M{"$set": bson.M{"content": content}}

	_, err = collection.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("mongodb upsert error: %w", err)
	}
	return nil
}
