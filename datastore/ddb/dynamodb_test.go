/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package ddb

import (
	"context"
	stderrors "errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	sdk "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/suparena/columnspace/datastore"
	"github.com/suparena/columnspace/errors"
	"github.com/suparena/columnspace/registry"
)

// fakeAPI keeps items in memory keyed by PK|SK.
type fakeAPI struct {
	items   map[string]map[string]types.AttributeValue
	lastPut *sdk.PutItemInput
	err     error
}

func newFakeAPI() *fakeAPI {
	return &fakeAPI{items: make(map[string]map[string]types.AttributeValue)}
}

func itemKey(key map[string]types.AttributeValue) string {
	return key["PK"].(*types.AttributeValueMemberS).Value + "|" + key["SK"].(*types.AttributeValueMemberS).Value
}

func (f *fakeAPI) GetItem(ctx context.Context, in *sdk.GetItemInput, _ ...func(*sdk.Options)) (*sdk.GetItemOutput, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &sdk.GetItemOutput{Item: f.items[itemKey(in.Key)]}, nil
}

func (f *fakeAPI) PutItem(ctx context.Context, in *sdk.PutItemInput, _ ...func(*sdk.Options)) (*sdk.PutItemOutput, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.lastPut = in
	f.items[itemKey(in.Item)] = in.Item
	return &sdk.PutItemOutput{}, nil
}

func (f *fakeAPI) DeleteItem(ctx context.Context, in *sdk.DeleteItemInput, _ ...func(*sdk.Options)) (*sdk.DeleteItemOutput, error) {
	if f.err != nil {
		return nil, f.err
	}
	k := itemKey(in.Key)
	if _, ok := f.items[k]; !ok && in.ConditionExpression != nil {
		return nil, &types.ConditionalCheckFailedException{Message: aws.String("The conditional request failed")}
	}
	delete(f.items, k)
	return &sdk.DeleteItemOutput{}, nil
}

func init() {
	registry.RegisterIndexMap("ddb_test_products", map[string]string{
		"PK":     "PRODUCT#{id}",
		"SK":     "PRODUCT#{id}",
		"GSI1PK": "EXT#{external_product_id}",
		"GSI1SK": "VARIANT#{external_variant_id}",
	})
	registry.RegisterIndexMap("ddb_test_broken", map[string]string{
		"PK": "BROKEN#{id}",
	})
}

func TestExpandMacros(t *testing.T) {
	idx := map[string]string{
		"PK":   "PRODUCT#{id}",
		"SK":   "STATIC",
		"NUM":  "N#{count}",
		"FLAG": "{active}",
		"NIL":  "X{missing_value}",
		"GONE": "{not_a_field}",
	}
	fields := map[string]any{
		"id":            "p-1",
		"count":         42,
		"active":        true,
		"missing_value": nil,
	}

	got, unresolved, err := expandMacros(idx, fields)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{
		"PK":   "PRODUCT#p-1",
		"SK":   "STATIC",
		"NUM":  "N#42",
		"FLAG": "true",
		"NIL":  "X",
		"GONE": "",
	}, got)
	assert.Equal(t, map[string][]string{
		"NIL":  {"missing_value"},
		"GONE": {"not_a_field"},
	}, unresolved)
}

func TestExpandStringKey(t *testing.T) {
	got := expandStringKey(map[string]string{
		"PK":     "PRODUCT#{id}",
		"SK":     "PROFILE",
		"GSI1PK": "EXT#{external_product_id}",
	}, "p-$1")
	assert.Equal(t, map[string]string{"PK": "PRODUCT#p-$1", "SK": "PROFILE"}, got)
}

func TestBuildKeyFromExpanded(t *testing.T) {
	_, err := buildKeyFromExpanded(map[string]string{"PK": "A"})
	assert.Error(t, err)

	_, err = buildKeyFromExpanded(map[string]string{"PK": "A", "SK": ""})
	assert.Error(t, err)

	key, err := buildKeyFromExpanded(map[string]string{"PK": "A", "SK": "B"})
	require.NoError(t, err)
	assert.Equal(t, "A|B", itemKey(key))
}

func TestDynamodbDataStore(t *testing.T) {
	ctx := context.Background()

	t.Run("PutGetDelete", func(t *testing.T) {
		api := newFakeAPI()
		store := NewWithClient(api, "test-table")

		err := store.Put(ctx, datastore.Item{
			Schema: "ddb_test_products",
			Key:    "p-1",
			Fields: map[string]any{
				"id":                  "p-1",
				"external_product_id": 111,
				"external_variant_id": 222,
				"a":                   "11",
			},
		})
		require.NoError(t, err)

		require.NotNil(t, api.lastPut)
		assert.Equal(t, "test-table", *api.lastPut.TableName)
		put := api.lastPut.Item
		assert.Equal(t, &types.AttributeValueMemberS{Value: "PRODUCT#p-1"}, put["PK"])
		assert.Equal(t, &types.AttributeValueMemberS{Value: "EXT#111"}, put["GSI1PK"])
		assert.Equal(t, &types.AttributeValueMemberS{Value: "VARIANT#222"}, put["GSI1SK"])
		assert.Equal(t, &types.AttributeValueMemberS{Value: "ddb_test_products"}, put[EntityTypeAttribute])
		assert.Equal(t, &types.AttributeValueMemberN{Value: "111"}, put["external_product_id"])

		item, err := store.GetOne(ctx, "ddb_test_products", "p-1")
		require.NoError(t, err)
		assert.Equal(t, map[string]any{
			"id":                  "p-1",
			"external_product_id": float64(111),
			"external_variant_id": float64(222),
			"a":                   "11",
		}, item.Fields)

		require.NoError(t, store.Delete(ctx, "ddb_test_products", "p-1"))
		_, err = store.GetOne(ctx, "ddb_test_products", "p-1")
		assert.True(t, errors.IsNotFound(err), "got %v", err)

		err = store.Delete(ctx, "ddb_test_products", "p-1")
		assert.True(t, errors.IsNotFound(err), "got %v", err)
	})

	t.Run("NoIndexMap", func(t *testing.T) {
		store := NewWithClient(newFakeAPI(), "test-table")

		err := store.Put(ctx, datastore.Item{Schema: "ddb_test_unknown", Key: "1", Fields: map[string]any{"id": "1"}})
		assert.ErrorIs(t, err, errors.ErrNoIndexMap)

		_, err = store.GetOne(ctx, "ddb_test_unknown", "1")
		assert.ErrorIs(t, err, errors.ErrNoIndexMap)

		err = store.Delete(ctx, "ddb_test_unknown", "1")
		assert.ErrorIs(t, err, errors.ErrNoIndexMap)
	})

	t.Run("MissingSortKey", func(t *testing.T) {
		api := newFakeAPI()
		store := NewWithClient(api, "test-table")

		err := store.Put(ctx, datastore.Item{Schema: "ddb_test_broken", Key: "1", Fields: map[string]any{"id": "1"}})
		assert.True(t, errors.IsValidationError(err), "got %v", err)
		assert.Nil(t, api.lastPut)
	})

	t.Run("EmptyKeyField", func(t *testing.T) {
		api := newFakeAPI()
		store := NewWithClient(api, "test-table")
		err := store.Put(ctx, datastore.Item{Schema: "ddb_test_products", Fields: map[string]any{"id": nil}})
		assert.True(t, errors.IsValidationError(err), "got %v", err)

		err = store.Put(ctx, datastore.Item{Schema: "ddb_test_products", Key: "p-1", Fields: map[string]any{"id": nil}})
		assert.True(t, errors.IsValidationError(err), "got %v", err)
		assert.ErrorContains(t, err, "no value for id")

		err = store.Put(ctx, datastore.Item{Schema: "ddb_test_products", Key: "p-1", Fields: map[string]any{"id": ""}})
		assert.True(t, errors.IsValidationError(err), "got %v", err)
		assert.Nil(t, api.lastPut)
		assert.Empty(t, api.items)
	})

	t.Run("SparseIndexAttributes", func(t *testing.T) {
		api := newFakeAPI()
		store := NewWithClient(api, "test-table")
		err := store.Put(ctx, datastore.Item{
			Schema: "ddb_test_products",
			Key:    "p-2",
			Fields: map[string]any{"id": "p-2", "external_product_id": nil},
		})
		require.NoError(t, err)

		put := api.lastPut.Item
		assert.Equal(t, &types.AttributeValueMemberS{Value: "PRODUCT#p-2"}, put["PK"])
		assert.NotContains(t, put, "GSI1PK")
		assert.NotContains(t, put, "GSI1SK")
	})

	t.Run("ClientErrors", func(t *testing.T) {
		api := newFakeAPI()
		api.err = stderrors.New("throttled")
		store := NewWithClient(api, "test-table")

		err := store.Put(ctx, datastore.Item{Schema: "ddb_test_products", Key: "p-1", Fields: map[string]any{"id": "p-1"}})
		assert.ErrorContains(t, err, "throttled")

		_, err = store.GetOne(ctx, "ddb_test_products", "p-1")
		assert.ErrorContains(t, err, "throttled")

		err = store.Delete(ctx, "ddb_test_products", "p-1")
		assert.ErrorContains(t, err, "throttled")
	})
}
