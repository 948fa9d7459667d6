package export

import (
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	policyDomain "github.com/allisson/policies/internal/policy/domain"
)

func testSet() *policyDomain.DocumentSet {
	return &policyDomain.DocumentSet{
		Read: &policyDomain.PolicyDocument{
			AccessClass: policyDomain.AccessClassRead,
			Statements: []policyDomain.Statement{
				{
					Sid:       "EC2Read01",
					Effect:    policyDomain.EffectAllow,
					Actions:   []string{"ec2:DescribeInstances"},
					Resources: []string{policyDomain.WildcardResource},
				},
			},
			Suppressions: []policyDomain.Suppression{},
		},
		Write: &policyDomain.PolicyDocument{
			AccessClass: policyDomain.AccessClassWrite,
			Statements: []policyDomain.Statement{
				{
					Sid:       "DDBWrite01",
					Effect:    policyDomain.EffectAllow,
					Actions:   []string{"dynamodb:PutItem"},
					Resources: []string{"arn:aws:dynamodb:us-east-1:123456789012:table/policies"},
				},
			},
			Suppressions: []policyDomain.Suppression{},
		},
	}
}

func TestBlobExporter_Export(t *testing.T) {
	t.Run("Success_WritesBothDocuments", func(t *testing.T) {
		dir := t.TempDir()
		exporter := NewBlobExporter("file://"+dir, slog.Default())

		err := exporter.Export(context.Background(), "payments-service", testSet())
		require.NoError(t, err)

		readData, err := os.ReadFile(filepath.Join(dir, "payments-service", "read.json"))
		require.NoError(t, err)
		writeData, err := os.ReadFile(filepath.Join(dir, "payments-service", "write.json"))
		require.NoError(t, err)

		var readDoc map[string]any
		require.NoError(t, json.Unmarshal(readData, &readDoc))
		assert.Equal(t, "2012-10-17", readDoc["Version"])

		assert.Contains(t, string(readData), "EC2Read01")
		assert.Contains(t, string(writeData), "DDBWrite01")
	})

	t.Run("Success_NilLogger", func(t *testing.T) {
		dir := t.TempDir()
		exporter := NewBlobExporter("file://"+dir, nil)

		err := exporter.Export(context.Background(), "payments-service", testSet())
		assert.NoError(t, err)
	})

	t.Run("Error_InvalidBucketURL", func(t *testing.T) {
		exporter := NewBlobExporter("bogus://nowhere", slog.Default())

		err := exporter.Export(context.Background(), "payments-service", testSet())
		assert.Error(t, err)
	})
}
