package dto

import (
	"testing"

	"github.com/stretchr/testify/assert"

	policyDomain "github.com/allisson/policies/internal/policy/domain"
)

func validGrantPayload() GrantPayload {
	return GrantPayload{
		ID:          "policy-table-write",
		AccessClass: "WRITE",
		Actions:     []string{"dynamodb:PutItem"},
		ResourcePatterns: []string{
			"arn:aws:dynamodb:{region}:{account}:table/{policyTable}",
		},
	}
}

func TestGrantPayload_Validate(t *testing.T) {
	t.Run("valid payload", func(t *testing.T) {
		payload := validGrantPayload()
		assert.NoError(t, payload.Validate())
	})

	t.Run("missing id", func(t *testing.T) {
		payload := validGrantPayload()
		payload.ID = ""
		assert.Error(t, payload.Validate())
	})

	t.Run("invalid access class", func(t *testing.T) {
		payload := validGrantPayload()
		payload.AccessClass = "ADMIN"
		assert.Error(t, payload.Validate())
	})

	t.Run("missing actions", func(t *testing.T) {
		payload := validGrantPayload()
		payload.Actions = nil
		assert.Error(t, payload.Validate())
	})

	t.Run("malformed action", func(t *testing.T) {
		payload := validGrantPayload()
		payload.Actions = []string{"PutItem"}
		assert.Error(t, payload.Validate())
	})

	t.Run("missing resource patterns", func(t *testing.T) {
		payload := validGrantPayload()
		payload.ResourcePatterns = nil
		assert.Error(t, payload.Validate())
	})

	t.Run("blank resource pattern", func(t *testing.T) {
		payload := validGrantPayload()
		payload.ResourcePatterns = []string{"   "}
		assert.Error(t, payload.Validate())
	})
}

func TestGrantPayload_ToDomain(t *testing.T) {
	payload := validGrantPayload()
	payload.Conditions = map[string]map[string][]string{
		"StringEquals": {"aws:RequestedRegion": {"us-east-1"}},
	}
	payload.Justification = "some reason"

	grant := payload.ToDomain()

	assert.Equal(t, payload.ID, grant.ID)
	assert.Equal(t, policyDomain.AccessClassWrite, grant.AccessClass)
	assert.Equal(t, payload.Actions, grant.Actions)
	assert.Equal(t, payload.ResourcePatterns, grant.ResourcePatterns)
	assert.Equal(t, payload.Conditions, grant.Conditions)
	assert.Equal(t, payload.Justification, grant.Justification)
}

func TestCreateCatalogRequest_Validate(t *testing.T) {
	t.Run("valid request", func(t *testing.T) {
		req := CreateCatalogRequest{
			Name:   "payments-service",
			Grants: []GrantPayload{validGrantPayload()},
		}
		assert.NoError(t, req.Validate())
	})

	t.Run("missing name", func(t *testing.T) {
		req := CreateCatalogRequest{
			Grants: []GrantPayload{validGrantPayload()},
		}
		assert.Error(t, req.Validate())
	})

	t.Run("missing grants", func(t *testing.T) {
		req := CreateCatalogRequest{Name: "payments-service"}
		assert.Error(t, req.Validate())
	})
}

func TestCompileRequest_Validate(t *testing.T) {
	t.Run("valid request", func(t *testing.T) {
		req := CompileRequest{
			Principal: "payments-service",
			Identifiers: map[string]string{
				"region":      "us-east-1",
				"policyTable": "policies",
			},
		}
		assert.NoError(t, req.Validate())
	})

	t.Run("missing principal", func(t *testing.T) {
		req := CompileRequest{
			Identifiers: map[string]string{"region": "us-east-1"},
		}
		assert.Error(t, req.Validate())
	})

	t.Run("invalid principal", func(t *testing.T) {
		req := CompileRequest{
			Principal:   "Payments Service",
			Identifiers: map[string]string{"region": "us-east-1"},
		}
		assert.Error(t, req.Validate())
	})

	t.Run("invalid identifier name", func(t *testing.T) {
		req := CompileRequest{
			Principal:   "payments-service",
			Identifiers: map[string]string{"policy-table": "policies"},
		}
		assert.Error(t, req.Validate())
	})

	t.Run("blank identifier value", func(t *testing.T) {
		req := CompileRequest{
			Principal:   "payments-service",
			Identifiers: map[string]string{"policyTable": "   "},
		}
		assert.Error(t, req.Validate())
	})

	t.Run("nil identifiers allowed", func(t *testing.T) {
		req := CompileRequest{Principal: "payments-service"}
		assert.NoError(t, req.Validate())
	})
}
