package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"modelfetch/config"
	"modelfetch/internal/core"
	client "modelfetch/internal/database/client"
	"modelfetch/internal/database/mongodb/model"
	"modelfetch/internal/telemetry"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type ProviderRepository struct {
	trace      *telemetry.Trace
	collection *mongo.Collection
}

func NewProviderRepository(
	trace *telemetry.Trace,
	mongoClient *client.MongoClient,
	config *config.Configuration,
) *ProviderRepository {
	repository := &ProviderRepository{
		trace:      trace,
		collection: mongoClient.Client().Database(databaseName(config)).Collection(string(core.MongoCollectionProviders)),
	}
	_ = repository.ensureIndexes(context.Background())
	return repository
}

func (repository *ProviderRepository) ensureIndexes(contextValue context.Context) error {
	_, _ = repository.collection.Indexes().CreateMany(contextValue, model.ProviderIndexes)
	return nil
}

func providerFilter(appType core.AppType, providerID string) bson.M {
	return bson.M{"appType": appType, "providerId": providerID}
}

// Create：(providerId, appType) 重複時回傳 mongo duplicate key error
func (repository *ProviderRepository) Create(
	contextValue context.Context,
	provider *model.Provider,
) (_ *model.Provider, returnedError error) {

	contextValue, span, endSpan := repository.trace.WithSpan(contextValue)
	defer func() { endSpan(returnedError) }()
	repository.trace.ApplyTraceAttributes(span, core.TraceProviderMeta{
		Op:         "create",
		ProviderID: provider.ProviderID,
		AppType:    string(provider.AppType),
	})

	nowUTC := time.Now().UTC()
	if provider.ID.IsZero() {
		provider.ID = primitive.NewObjectID()
	}
	provider.CreatedAt = nowUTC
	provider.UpdatedAt = nowUTC

	insertResult, insertError := repository.collection.InsertOne(contextValue, provider)
	if insertError != nil {
		return nil, insertError
	}
	objectID, ok := insertResult.InsertedID.(primitive.ObjectID)
	if !ok {
		return nil, fmt.Errorf("unexpected InsertedID type: %T", insertResult.InsertedID)
	}
	provider.ID = objectID
	return provider, nil
}

// Get：找不到時回傳 nil, nil
func (repository *ProviderRepository) Get(
	contextValue context.Context,
	appType core.AppType,
	providerID string,
) (_ *model.Provider, returnedError error) {

	contextValue, span, endSpan := repository.trace.WithSpan(contextValue)
	defer func() { endSpan(returnedError) }()
	meta := core.TraceProviderMeta{Op: "get", ProviderID: providerID, AppType: string(appType)}

	var provider model.Provider
	decodeError := repository.collection.FindOne(contextValue, providerFilter(appType, providerID)).Decode(&provider)
	if errors.Is(decodeError, mongo.ErrNoDocuments) {
		repository.trace.ApplyTraceAttributes(span, meta)
		return nil, nil
	}
	if decodeError != nil {
		return nil, decodeError
	}
	meta.Found = true
	repository.trace.ApplyTraceAttributes(span, meta)
	return &provider, nil
}

// List：appType 為空時列出全部，依建立時間倒序
func (repository *ProviderRepository) List(
	contextValue context.Context,
	appType core.AppType,
	listOptions core.ListOptions,
) (_ []*model.Provider, returnedError error) {

	contextValue, span, endSpan := repository.trace.WithSpan(contextValue)
	defer func() { endSpan(returnedError) }()

	filter := bson.M{}
	for key, value := range listOptions.Filter {
		filter[key] = value
	}
	if appType != "" {
		filter["appType"] = appType
	}

	findOptions := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	if listOptions.Size > 0 {
		findOptions.SetSkip(listOptions.Page * listOptions.Size).SetLimit(listOptions.Size)
	}

	providers, returnedError := repository.find(contextValue, filter, findOptions)
	if returnedError != nil {
		return nil, returnedError
	}
	repository.trace.ApplyTraceAttributes(span, core.TraceProviderMeta{
		Op:      "list",
		AppType: string(appType),
		Count:   len(providers),
	})
	return providers, nil
}

// ListAutoRefresh：排程刷新用
func (repository *ProviderRepository) ListAutoRefresh(
	contextValue context.Context,
) (_ []*model.Provider, returnedError error) {

	contextValue, span, endSpan := repository.trace.WithSpan(contextValue)
	defer func() { endSpan(returnedError) }()

	providers, returnedError := repository.find(contextValue, bson.M{"autoRefresh": true}, options.Find())
	if returnedError != nil {
		return nil, returnedError
	}
	repository.trace.ApplyTraceAttributes(span, core.TraceProviderMeta{Op: "list_auto_refresh", Count: len(providers)})
	return providers, nil
}

// Update：將呼叫端給的欄位寫入 $set，找不到時回傳 mongo.ErrNoDocuments
func (repository *ProviderRepository) Update(
	contextValue context.Context,
	appType core.AppType,
	providerID string,
	setFields bson.M,
) (returnedError error) {

	contextValue, span, endSpan := repository.trace.WithSpan(contextValue)
	defer func() { endSpan(returnedError) }()
	meta := core.TraceProviderMeta{Op: "update", ProviderID: providerID, AppType: string(appType)}

	update := bson.M{"$set": setFields}
	result, updateError := repository.collection.UpdateOne(contextValue, providerFilter(appType, providerID), withUpdatedAt(update))
	if updateError != nil {
		return updateError
	}
	meta.Found = result.MatchedCount > 0
	repository.trace.ApplyTraceAttributes(span, meta)
	if result.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

// Delete：找不到時回傳 mongo.ErrNoDocuments
func (repository *ProviderRepository) Delete(
	contextValue context.Context,
	appType core.AppType,
	providerID string,
) (returnedError error) {

	contextValue, span, endSpan := repository.trace.WithSpan(contextValue)
	defer func() { endSpan(returnedError) }()
	meta := core.TraceProviderMeta{Op: "delete", ProviderID: providerID, AppType: string(appType)}

	result, deleteError := repository.collection.DeleteOne(contextValue, providerFilter(appType, providerID))
	if deleteError != nil {
		return deleteError
	}
	meta.Found = result.DeletedCount > 0
	repository.trace.ApplyTraceAttributes(span, meta)
	if result.DeletedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

func (repository *ProviderRepository) find(
	contextValue context.Context,
	filter bson.M,
	findOptions *options.FindOptions,
) ([]*model.Provider, error) {
	cursor, findError := repository.collection.Find(contextValue, filter, findOptions)
	if findError != nil {
		return nil, findError
	}
	defer cursor.Close(contextValue)

	providers := make([]*model.Provider, 0)
	for cursor.Next(contextValue) {
		var provider model.Provider
		if decodeError := cursor.Decode(&provider); decodeError != nil {
			return nil, decodeError
		}
		providers = append(providers, &provider)
	}
	if cursorError := cursor.Err(); cursorError != nil {
		return nil, cursorError
	}
	return providers, nil
}
