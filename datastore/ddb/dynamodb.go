/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package ddb

import (
	"context"
	stderrors "errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	sdk "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"go.uber.org/zap"

	"github.com/suparena/columnspace/datastore"
	"github.com/suparena/columnspace/errors"
	"github.com/suparena/columnspace/registry"
)

// EntityTypeAttribute holds the schema name on every stored item.
const EntityTypeAttribute = "EntityType"

// API is the subset of the DynamoDB client used by the store.
type API interface {
	GetItem(ctx context.Context, params *sdk.GetItemInput, optFns ...func(*sdk.Options)) (*sdk.GetItemOutput, error)
	PutItem(ctx context.Context, params *sdk.PutItemInput, optFns ...func(*sdk.Options)) (*sdk.PutItemOutput, error)
	DeleteItem(ctx context.Context, params *sdk.DeleteItemInput, optFns ...func(*sdk.Options)) (*sdk.DeleteItemOutput, error)
}

// DynamodbDataStore implements datastore.DataStore by using AWS DynamoDB as the underlying data store.
type DynamodbDataStore struct {
	client    API
	tableName string
	logger    *zap.Logger
}

var _ datastore.DataStore = (*DynamodbDataStore)(nil)

// Option configures a DynamodbDataStore.
type Option func(*DynamodbDataStore)

// WithLogger sets the store logger.
func WithLogger(l *zap.Logger) Option {
	return func(d *DynamodbDataStore) {
		d.logger = l
	}
}

var macroPattern = regexp.MustCompile(`{([^}]+)}`)

// expandMacros renders every index map template from the record fields. The
// second result lists, per attribute, the macros that rendered nothing because
// the field was missing, NULL or not a scalar.
func expandMacros(indexMap map[string]string, fields map[string]any) (map[string]string, map[string][]string, error) {
	av, err := attributevalue.MarshalMap(fields)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to marshal fields: %w", err)
	}

	res := make(map[string]string, len(indexMap))
	unresolved := make(map[string][]string)

	for attrName, template := range indexMap {
		expanded := macroPattern.ReplaceAllStringFunc(template, func(macro string) string {
			// macro is something like "{id}"
			key := strings.Trim(macro, "{}")

			switch tv := av[key].(type) {
			case *types.AttributeValueMemberS:
				if tv.Value != "" {
					return tv.Value
				}

			case *types.AttributeValueMemberN:
				return tv.Value

			case *types.AttributeValueMemberBOOL:
				return fmt.Sprintf("%v", tv.Value)
			}
			// missing, NULL, binary, sets, lists and maps do not render into keys
			unresolved[attrName] = append(unresolved[attrName], key)
			return ""
		})
		res[attrName] = expanded
	}

	return res, unresolved, nil
}

// NewDynamoDBClient initializes a DynamoDB client using static AWS credentials.
func NewDynamoDBClient(ctx context.Context, awsAccessKey, awsSecretKey, awsRegion string) (*sdk.Client, error) {
	cfg, err := config.LoadDefaultConfig(ctx,
		config.WithRegion(awsRegion),
		config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(awsAccessKey, awsSecretKey, ""),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS configuration: %w", err)
	}

	return sdk.NewFromConfig(cfg), nil
}

// NewDynamodbDataStore constructs a DynamodbDataStore backed by a new SDK client.
func NewDynamodbDataStore(ctx context.Context, awsAccessKey, awsSecretKey, awsRegion, awsDDBTableName string, opts ...Option) (*DynamodbDataStore, error) {
	client, err := NewDynamoDBClient(ctx, awsAccessKey, awsSecretKey, awsRegion)
	if err != nil {
		return nil, fmt.Errorf("failed to create DynamoDB client: %w", err)
	}

	d := NewWithClient(client, awsDDBTableName, opts...)
	d.logger.Info("DynamoDB client initialized",
		zap.String("table", awsDDBTableName),
		zap.String("region", awsRegion))
	return d, nil
}

// NewWithClient wraps an existing client.
func NewWithClient(client API, tableName string, opts ...Option) *DynamodbDataStore {
	d := &DynamodbDataStore{
		client:    client,
		tableName: tableName,
		logger:    zap.NewNop(),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// GetOne retrieves a record by the value of its key field. Numbers come back
// as float64, the attributevalue default for untyped targets.
func (d *DynamodbDataStore) GetOne(ctx context.Context, schema, key string) (*datastore.Item, error) {
	indexMap, err := indexMapFor(schema)
	if err != nil {
		return nil, err
	}

	keyMap, err := buildKeyFromExpanded(expandStringKey(indexMap, key))
	if err != nil {
		return nil, fmt.Errorf("failed to build key: %w", err)
	}

	out, err := d.client.GetItem(ctx, &sdk.GetItemInput{
		TableName: aws.String(d.tableName),
		Key:       keyMap,
	})
	if err != nil {
		return nil, fmt.Errorf("GetItem error: %w", err)
	}
	if out.Item == nil {
		return nil, errors.NewNotFoundError(schema, key)
	}

	var fields map[string]any
	if err := attributevalue.UnmarshalMap(out.Item, &fields); err != nil {
		return nil, fmt.Errorf("failed to unmarshal item: %w", err)
	}
	for attr := range indexMap {
		delete(fields, attr)
	}
	delete(fields, EntityTypeAttribute)

	return &datastore.Item{Schema: schema, Key: key, Fields: fields}, nil
}

// Put stores the record's flat fields, adding the key attributes expanded from
// the schema's index map and the EntityType attribute. PK and SK must render
// completely; other index attributes with a missing value are omitted.
func (d *DynamodbDataStore) Put(ctx context.Context, item datastore.Item) error {
	if item.Key == "" {
		return errors.NewValidationError("key", fmt.Sprintf("%s: record key is empty", item.Schema))
	}
	indexMap, err := indexMapFor(item.Schema)
	if err != nil {
		return err
	}

	av, err := attributevalue.MarshalMap(item.Fields)
	if err != nil {
		return fmt.Errorf("failed to marshal record: %w", err)
	}

	expanded, unresolved, err := expandMacros(indexMap, item.Fields)
	if err != nil {
		return err
	}
	for _, attr := range []string{"PK", "SK"} {
		if missing := unresolved[attr]; len(missing) > 0 {
			return errors.NewValidationError(attr, fmt.Sprintf("no value for %s in %q", strings.Join(missing, ", "), indexMap[attr]))
		}
	}
	if _, err := buildKeyFromExpanded(expanded); err != nil {
		return errors.NewValidationError("key", err.Error())
	}

	for k, v := range expanded {
		if len(unresolved[k]) > 0 {
			// leave the item out of indexes it has no value for
			continue
		}
		av[k] = &types.AttributeValueMemberS{Value: v}
	}
	av[EntityTypeAttribute] = &types.AttributeValueMemberS{Value: item.Schema}

	_, err = d.client.PutItem(ctx, &sdk.PutItemInput{
		TableName: aws.String(d.tableName),
		Item:      av,
	})
	if err != nil {
		return fmt.Errorf("PutItem failed: %w", err)
	}
	d.logger.Debug("stored record",
		zap.String("schema", item.Schema),
		zap.String("key", item.Key))
	return nil
}

// Delete removes a record by the value of its key field. Deleting a record
// that does not exist returns a NotFoundError.
func (d *DynamodbDataStore) Delete(ctx context.Context, schema, key string) error {
	indexMap, err := indexMapFor(schema)
	if err != nil {
		return err
	}

	keyMap, err := buildKeyFromExpanded(expandStringKey(indexMap, key))
	if err != nil {
		return fmt.Errorf("failed to build key for Delete: %w", err)
	}

	_, err = d.client.DeleteItem(ctx, &sdk.DeleteItemInput{
		TableName:           aws.String(d.tableName),
		Key:                 keyMap,
		ConditionExpression: aws.String("attribute_exists(PK)"),
	})
	if err != nil {
		var cfe *types.ConditionalCheckFailedException
		if stderrors.As(err, &cfe) {
			return errors.NewNotFoundError(schema, key)
		}
		return fmt.Errorf("failed to delete item in DynamoDB: %w", err)
	}
	return nil
}

func indexMapFor(schema string) (map[string]string, error) {
	indexMap, ok := registry.GetIndexMap(schema)
	if !ok {
		return nil, fmt.Errorf("%s: %w", schema, errors.ErrNoIndexMap)
	}
	return indexMap, nil
}

// buildKeyFromExpanded builds a DynamoDB key from the expanded index map.
// It requires non-empty values for "PK" and "SK".
func buildKeyFromExpanded(expanded map[string]string) (map[string]types.AttributeValue, error) {
	pk, okPK := expanded["PK"]
	sk, okSK := expanded["SK"]

	if !okPK || !okSK || pk == "" || sk == "" {
		return nil, fmt.Errorf("expanded index map missing valid PK or SK")
	}

	return map[string]types.AttributeValue{
		"PK": &types.AttributeValueMemberS{Value: pk},
		"SK": &types.AttributeValueMemberS{Value: sk},
	}, nil
}

// expandStringKey replaces every macro in the PK and SK templates with key.
func expandStringKey(indexMap map[string]string, key string) map[string]string {
	expanded := make(map[string]string, 2)
	for _, attr := range []string{"PK", "SK"} {
		if template, ok := indexMap[attr]; ok {
			expanded[attr] = macroPattern.ReplaceAllLiteralString(template, key)
		}
	}
	return expanded
}
