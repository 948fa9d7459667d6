package commands

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"
)

const testIdentifiersJSON = `{
	"region": "us-east-1",
	"account": "123456789012",
	"policyTable": "policies"
}`

func TestRunCompileCatalog(t *testing.T) {
	logger := slog.Default()

	t.Run("text-output", func(t *testing.T) {
		path := writeCatalogFile(t, validCatalogJSON)

		var out bytes.Buffer
		err := RunCompileCatalog(logger, &out, path, testIdentifiersJSON, "text")

		require.NoError(t, err)
		require.Contains(t, out.String(), "READ document")
		require.Contains(t, out.String(), "WRITE document")
		require.Contains(t, out.String(), "DDBWrite01")
		require.Contains(t, out.String(), "EC2Read01")
		require.Contains(t, out.String(), "arn:aws:dynamodb:us-east-1:123456789012:table/policies")
	})

	t.Run("json-output", func(t *testing.T) {
		path := writeCatalogFile(t, validCatalogJSON)

		var out bytes.Buffer
		err := RunCompileCatalog(logger, &out, path, testIdentifiersJSON, "json")

		require.NoError(t, err)
		require.Contains(t, out.String(), `"read"`)
		require.Contains(t, out.String(), `"write"`)
		require.Contains(t, out.String(), "AwsSolutions-IAM5")
	})

	t.Run("missing-identifiers", func(t *testing.T) {
		path := writeCatalogFile(t, validCatalogJSON)

		var out bytes.Buffer
		err := RunCompileCatalog(logger, &out, path, "", "text")

		require.Error(t, err)
		require.Contains(t, err.Error(), "compilation failed")
		require.Contains(t, err.Error(), "region")
	})

	t.Run("invalid-catalog", func(t *testing.T) {
		path := writeCatalogFile(t, invalidCatalogJSON)

		var out bytes.Buffer
		err := RunCompileCatalog(logger, &out, path, testIdentifiersJSON, "text")

		require.Error(t, err)
		require.Contains(t, err.Error(), "catalog is invalid")
	})

	t.Run("malformed-identifiers-json", func(t *testing.T) {
		path := writeCatalogFile(t, validCatalogJSON)

		var out bytes.Buffer
		err := RunCompileCatalog(logger, &out, path, "{not json", "text")

		require.Error(t, err)
		require.Contains(t, err.Error(), "failed to parse identifiers JSON")
	})
}
