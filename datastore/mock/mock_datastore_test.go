/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package mock_test

import (
	"context"
	"testing"

	"github.com/suparena/columnspace/datastore"
	"github.com/suparena/columnspace/datastore/mock"
	"github.com/suparena/columnspace/errors"
)

func TestMockDataStore(t *testing.T) {
	ctx := context.Background()

	t.Run("BasicOperations", func(t *testing.T) {
		mockStore := mock.New()

		item := datastore.Item{
			Schema: "products",
			Key:    "123",
			Fields: map[string]any{"id": "123", "external_product_id": 3},
		}
		err := mockStore.Put(ctx, item)
		if err != nil {
			t.Fatalf("Put failed: %v", err)
		}

		retrieved, err := mockStore.GetOne(ctx, "products", "123")
		if err != nil {
			t.Fatalf("GetOne failed: %v", err)
		}
		if retrieved.Fields["external_product_id"] != 3 {
			t.Fatalf("Retrieved record mismatch: %+v", retrieved)
		}

		// Stored data is isolated from the caller's map.
		item.Fields["external_product_id"] = 99
		retrieved.Fields["external_product_id"] = 100
		again, _ := mockStore.GetOne(ctx, "products", "123")
		if again.Fields["external_product_id"] != 3 {
			t.Fatalf("Stored record was mutated: %+v", again)
		}

		err = mockStore.Delete(ctx, "products", "123")
		if err != nil {
			t.Fatalf("Delete failed: %v", err)
		}

		_, err = mockStore.GetOne(ctx, "products", "123")
		if !errors.IsNotFound(err) {
			t.Fatalf("Expected not found error, got: %v", err)
		}
	})

	t.Run("SchemasAreSeparate", func(t *testing.T) {
		mockStore := mock.New()
		_ = mockStore.Put(ctx, datastore.Item{Schema: "products", Key: "1", Fields: map[string]any{"a": "p"}})
		_ = mockStore.Put(ctx, datastore.Item{Schema: "orders", Key: "1", Fields: map[string]any{"a": "o"}})

		if mockStore.Count() != 2 {
			t.Fatalf("Expected count 2, got %d", mockStore.Count())
		}
		got, err := mockStore.GetOne(ctx, "orders", "1")
		if err != nil || got.Fields["a"] != "o" {
			t.Fatalf("Unexpected orders record: %+v, %v", got, err)
		}
	})

	t.Run("MissingKey", func(t *testing.T) {
		mockStore := mock.New()
		err := mockStore.Put(ctx, datastore.Item{Schema: "products"})
		if !errors.IsValidationError(err) {
			t.Fatalf("Expected validation error, got: %v", err)
		}
	})

	t.Run("ErrorSimulation", func(t *testing.T) {
		mockStore := mock.New()

		putErr := errors.NewValidationError("name", "required")
		mockStore.WithPutError(putErr)

		err := mockStore.Put(ctx, datastore.Item{Schema: "products", Key: "123"})
		if err != putErr {
			t.Fatalf("Expected put error, got: %v", err)
		}

		getErr := errors.NewNotFoundError("products", "123")
		mockStore.WithGetError(getErr)
		if _, err := mockStore.GetOne(ctx, "products", "123"); err != getErr {
			t.Fatalf("Expected get error, got: %v", err)
		}

		deleteErr := errors.NewValidationError("", "locked")
		mockStore.WithDeleteError(deleteErr)

		err = mockStore.Delete(ctx, "products", "123")
		if err != deleteErr {
			t.Fatalf("Expected delete error, got: %v", err)
		}
	})

	t.Run("HelperMethods", func(t *testing.T) {
		mockStore := mock.New()
		_ = mockStore.Put(ctx, datastore.Item{Schema: "products", Key: "1", Fields: map[string]any{"a": "1"}})
		_ = mockStore.Put(ctx, datastore.Item{Schema: "products", Key: "2", Fields: map[string]any{"a": "2"}})

		data := mockStore.GetData()
		if len(data) != 2 || data["products|2"]["a"] != "2" {
			t.Fatalf("Unexpected data: %+v", data)
		}

		mockStore.Clear()
		if mockStore.Count() != 0 {
			t.Fatalf("Expected count 0 after clear, got %d", mockStore.Count())
		}
	})
}
