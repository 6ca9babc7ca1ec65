/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/suparena/columnspace/config"
	"github.com/suparena/columnspace/datastore"
	"github.com/suparena/columnspace/datastore/mock"
	"github.com/suparena/columnspace/errors"
)

const cliConfig = `
schemas:
  - name: cli_products
    fields: [id, external_product_id, external_variant_id, a, b]
    namespaces:
      - external_
      - {foo: [a, b]}
`

func writeConfig(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "columnspace.yaml")
	require.NoError(t, os.WriteFile(path, []byte(cliConfig), 0o600))
	return path
}

func run(t *testing.T, store datastore.DataStore, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	factory := func(ctx context.Context, aws config.AWS, logger *zap.Logger) (datastore.DataStore, error) {
		return store, nil
	}
	cmd := newRootCmd(&out, factory)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestNamespacesCommand(t *testing.T) {
	out, err := run(t, nil, "namespaces", "--config", writeConfig(t))
	require.NoError(t, err)

	assert.Equal(t, `cli_products
  external (CliProducts::External)
    external_product_id -> product_id
    external_variant_id -> variant_id
  foo (CliProducts::Foo)
    a -> a
    b -> b
`, out)
}

func TestNamespacesCommandMissingConfig(t *testing.T) {
	_, err := run(t, nil, "namespaces", "--config", filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestGetCommand(t *testing.T) {
	t.Setenv("AWS_REGION", "us-east-1")
	t.Setenv("AWS_DDB_TABLE", "products")

	store := mock.New()
	require.NoError(t, store.Put(context.Background(), datastore.Item{
		Schema: "cli_products",
		Key:    "p-1",
		Fields: map[string]any{"id": "p-1", "external_product_id": 111, "a": "11", "b": "22"},
	}))

	envFile := filepath.Join(t.TempDir(), "absent.env")
	out, err := run(t, store, "get", "cli_products", "p-1", "--config", writeConfig(t), "--env", envFile)
	require.NoError(t, err)
	assert.Equal(t, "external: #<CliProducts::External product_id=111 variant_id=<nil>>\n"+
		"foo: #<CliProducts::Foo a=11 b=22>\n", out)

	_, err = run(t, store, "get", "cli_products", "p-404", "--config", writeConfig(t), "--env", envFile)
	assert.True(t, errors.IsNotFound(err), "got %v", err)

	_, err = run(t, store, "get", "orders", "o-1", "--config", writeConfig(t), "--env", envFile)
	assert.ErrorContains(t, err, `schema "orders" is not declared`)
}

func TestVersionCommand(t *testing.T) {
	out, err := run(t, nil, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "columnspace nsinspect version 0.1.0")
	assert.Contains(t, out, "Go version: "+runtime.Version())
}
