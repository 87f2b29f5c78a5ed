package repository

import (
	"MerchantBot/entity"
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// UpsertUser records a user seen by the bot, keeping any merchant settings
// already granted.
func (m *MongoDB) UpsertUser(ctx context.Context, userID int64, username string) error {
	connection, err := m.connect()
	if err != nil {
		return err
	}
	defer m.disconnect(connection)

	collection := connection.Database(m.database).Collection(usersCollection)
	filter := bson.D{{Key: "user_id", Value: userID}}
	update := bson.M{"$set": bson.M{
		"user_id":   userID,
		"username":  username,
		"last_seen": time.Now(),
	}}

	_, err = collection.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("mongodb upsert error: %w", err)
	}
	return nil
}

// GetMerchantSettings returns the merchant settings for a user, nil when the
// user has no merchant access.
func (m *MongoDB) GetMerchantSettings(ctx context.Context, userID int64) (*entity.MerchantSettings, error) {
	connection, err := m.connect()
	if err != nil {
		return nil, err
	}
	defer m.disconnect(connection)

	collection := connection.Database(m.database).Collection(usersCollection)
	filter := bson.D{{Key: "user_id", Value: userID}, {Key: "is_merchant", Value: true}}

	var merchant entity.Merchant
	err = collection.FindOne(ctx, filter).Decode(&merchant)
	if err != nil {
		return nil, m.findError(err)
	}

	settings := merchant.Settings()
	return &settings, nil
}

// GetMerchantByUsername returns a user record by username, nil when unknown.
func (m *MongoDB) GetMerchantByUsername(ctx context.Context, username string) (*entity.Merchant, error) {
	connection, err := m.connect()
	if err != nil {
		return nil, err
	}
	defer m.disconnect(connection)

	collection := connection.Database(m.database).Collection(usersCollection)
	filter := bson.D{{Key: "username", Value: username}}

	var merchant entity.Merchant
	err = collection.FindOne(ctx, filter).Decode(&merchant)
	if err != nil {
		return nil, m.findError(err)
	}

	return &merchant, nil
}

// IsMerchant reports whether the user has merchant access.
func (m *MongoDB) IsMerchant(ctx context.Context, userID int64) (bool, error) {
	connection, err := m.connect()
	if err != nil {
		return false, err
	}
	defer m.disconnect(connection)

	collection := connection.Database(m.database).Collection(usersCollection)
	filter := bson.D{{Key: "user_id", Value: userID}, {Key: "is_merchant", Value: true}}

	count, err := collection.CountDocuments(ctx, filter)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// GrantMerchantAccess marks a username as merchant and stores the provider
// credentials. The user record is created if the user has not talked to the
// bot yet.
func (m *MongoDB) GrantMerchantAccess(ctx context.Context, username, shopID, shopApiKey, orderIDTag string) error {
	connection, err := m.connect()
	if err != nil {
		return err
	}
	defer m.disconnect(connection)

	collection := connection.Database(m.database).Collection(usersCollection)
	filter := bson.D{{Key: "username", Value: username}}
	update := bson.M{"$set": bson.M{
		"username":     username,
		"is_merchant":  true,
		"shop_id":      shopID,
		"shop_api_key": shopApiKey,
		"order_id_tag": orderIDTag,
	}}

	_, err = collection.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("mongodb upsert error: %w", err)
	}
	return nil
}

// RevokeMerchantAccess drops merchant access and credentials for a user.
func (m *MongoDB) RevokeMerchantAccess(ctx context.Context, userID int64) error {
	connection, err := m.connect()
	if err != nil {
		return err
	}
	defer m.disconnect(connection)

	collection := connection.Database(m.database).Collection(usersCollection)
	filter := bson.D{{Key: "user_id", Value: userID}}
	update := bson.M{"$set": bson.M{
		"is_merchant":  false,
		"shop_id":      "",
		"shop_api_key": "",
		"order_id_tag": "",
	}}

	_, err = collection.UpdateOne(ctx, filter, update)
	return err
}

// DeleteMerchant removes a user record entirely.
func (m *MongoDB) DeleteMerchant(ctx context.Context, username string) error {
	connection, err := m.connect()
	if err != nil {
		return err
	}
	defer m.disconnect(connection)

	collection := connection.Database(m.database).Collection(usersCollection)
	filter := bson.D{{Key: "username", Value: username}}

	_, err = collection.DeleteOne(ctx, filter)
	return err
}

// ListMerchants returns all users with merchant access.
func (m *MongoDB) ListMerchants(ctx context.Context) ([]entity.Merchant, error) {
	connection, err := m.connect()
	if err != nil {
		return nil, err
	}
	defer m.disconnect(connection)

	collection := connection.Database(m.database).Collection(usersCollection)
	cursor, err := collection.Find(ctx, bson.D{{Key: "is_merchant", Value: true}})
	if err != nil {
		return nil, fmt.Errorf("mongodb find error: %w", err)
	}
	defer cursor.Close(ctx)

	var merchants []entity.Merchant
	if err := cursor.All(ctx, &merchants); err != nil {
		return nil, fmt.Errorf("mongodb cursor error: %w", err)
	}
	return merchants, nil
}

// AllUserIDs returns the ids of every user the bot has seen, for broadcast
// fan-out.
func (m *MongoDB) AllUserIDs(ctx context.Context) ([]int64, error) {
	connection, err := m.connect()
	if err != nil {
		return nil, err
	}
	defer m.disconnect(connection)

	collection := connection.Database(m.database).Collection(usersCollection)
	cursor, err := collection.Find(ctx, bson.D{{Key: "user_id", Value: bson.M{"$gt": 0}}})
	if err != nil {
		return nil, fmt.Errorf("mongodb find error: %w", err)
	}
	defer cursor.Close(ctx)

	var ids []int64
	for cursor.Next(ctx) {
		var user entity.Merchant
		if err := cursor.Decode(&user); err != nil {
			continue
		}
		ids = append(ids, user.UserID)
	}
	return ids, nil
}
