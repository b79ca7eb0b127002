package mongo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"veriface.io/infrastructure/logger"
)

func (repo *MongoRepository[T]) requestContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), 15*time.Second)
}

func (repo *MongoRepository[T]) CreateOne(ctx context.Context, payload T) (*T, error) {
	parsed := payload.ParseModel().(*T)
	_, err := repo.Model.InsertOne(ctx, parsed)
	if err != nil {
		logger.Error("mongo error occured while running CreateOne", logger.LoggerOptions{
			Key:  "error",
			Data: err,
		})
		return nil, err
	}
	return parsed, nil
}

func (repo *MongoRepository[T]) FindByID(id string, opts ...*options.FindOneOptions) (*T, error) {
	return repo.FindOneByFilter(map[string]any{"_id": id}, opts...)
}

func (repo *MongoRepository[T]) FindOneByFilter(filter map[string]any, opts ...*options.FindOneOptions) (*T, error) {
	ctx, cancel := repo.requestContext()
	defer cancel()

	var result T
	err := repo.Model.FindOne(ctx, normalizeFilter(filter), opts...).Decode(&result)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		logger.Error("mongo error occured while running FindOneByFilter", logger.LoggerOptions{
			Key:  "error",
			Data: err,
		}, logger.LoggerOptions{
			Key:  "filter",
			Data: filter,
		})
		return nil, err
	}
	return &result, nil
}

func (repo *MongoRepository[T]) FindManyByFilter(filter map[string]any, opts ...*options.FindOptions) (*[]T, error) {
	ctx, cancel := repo.requestContext()
	defer cancel()

	cursor, err := repo.Model.Find(ctx, normalizeFilter(filter), opts...)
	if err != nil {
		logger.Error("mongo error occured while running FindManyByFilter", logger.LoggerOptions{
			Key:  "error",
			Data: err,
		}, logger.LoggerOptions{
			Key:  "filter",
			Data: filter,
		})
		return nil, err
	}
	var results []T
	if err = cursor.All(ctx, &results); err != nil {
		logger.Error("mongo error occured while decoding FindManyByFilter results", logger.LoggerOptions{
			Key:  "error",
			Data: err,
		})
		return nil, err
	}
	return &results, nil
}

func (repo *MongoRepository[T]) CountDocs(filter map[string]any) (int64, error) {
	ctx, cancel := repo.requestContext()
	defer cancel()

	count, err := repo.Model.CountDocuments(ctx, normalizeFilter(filter))
	if err != nil {
		logger.Error("mongo error occured while running CountDocs", logger.LoggerOptions{
			Key:  "error",
			Data: err,
		}, logger.LoggerOptions{
			Key:  "filter",
			Data: filter,
		})
		return 0, err
	}
	return count, nil
}

func (repo *MongoRepository[T]) UpdatePartialByID(id string, payload map[string]any) (bool, error) {
	return repo.UpdatePartialByFilter(map[string]any{"_id": id}, payload)
}

func (repo *MongoRepository[T]) UpdatePartialByFilter(filter map[string]any, payload map[string]any) (bool, error) {
	ctx, cancel := repo.requestContext()
	defer cancel()

	payload["updatedAt"] = time.Now()
	result, err := repo.Model.UpdateOne(ctx, normalizeFilter(filter), bson.M{"$set": payload})
	if err != nil {
		logger.Error("mongo error occured while running UpdatePartialByFilter", logger.LoggerOptions{
			Key:  "error",
			Data: err,
		}, logger.LoggerOptions{
			Key:  "filter",
			Data: filter,
		})
		return false, err
	}
	return result.MatchedCount == 1, nil
}

func normalizeFilter(filter map[string]any) bson.M {
	normalized := bson.M{}
	for key, value := range filter {
		normalized[key] = value
	}
	return normalized
}
