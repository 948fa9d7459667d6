package commands

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	policyDomain "github.com/allisson/policies/internal/policy/domain"
)

// RunValidateCatalog validates a grant catalog file without storing or
// compiling it. Every structural violation found is reported at once.
// Outputs the result in either text or JSON format and returns a non-nil
// error when the catalog is invalid so the process exits non-zero.
func RunValidateCatalog(
	logger *slog.Logger,
	writer io.Writer,
	catalogPath string,
	format string,
) error {
	logger.Info("validating catalog", slog.String("path", catalogPath))

	payload, err := readCatalogFile(catalogPath)
	if err != nil {
		return err
	}

	catalog, catalogErr := policyDomain.NewCatalog(payload.Grants)

	if format == "json" {
		outputValidationJSON(payload, catalog, catalogErr, writer)
	} else {
		outputValidationText(payload, catalog, catalogErr, writer)
	}

	if catalogErr != nil {
		return fmt.Errorf("catalog is invalid: %w", catalogErr)
	}

	logger.Info("catalog is valid",
		slog.String("name", payload.Name),
		slog.Int("grants", catalog.Len()),
	)

	return nil
}

// outputValidationText outputs the validation result in human-readable text format.
func outputValidationText(
	payload *catalogFile,
	catalog *policyDomain.Catalog,
	catalogErr error,
	writer io.Writer,
) {
	if catalogErr == nil {
		_, _ = fmt.Fprintln(writer, "Catalog is valid.")
		_, _ = fmt.Fprintf(writer, "Name: %s\n", payload.Name)
		_, _ = fmt.Fprintf(writer, "Grants: %d\n", catalog.Len())
		return
	}

	_, _ = fmt.Fprintln(writer, "Catalog is invalid.")

	var ce *policyDomain.CatalogError
	if errors.As(catalogErr, &ce) {
		for _, violation := range ce.Violations {
			_, _ = fmt.Fprintf(writer, "  - %s\n", violation)
		}
		return
	}

	_, _ = fmt.Fprintf(writer, "  - %s\n", catalogErr.Error())
}

// outputValidationJSON outputs the validation result in JSON format for machine consumption.
func outputValidationJSON(
	payload *catalogFile,
	catalog *policyDomain.Catalog,
	catalogErr error,
	writer io.Writer,
) {
	result := map[string]any{
		"name":  payload.Name,
		"valid": catalogErr == nil,
	}

	if catalogErr == nil {
		result["grants"] = catalog.Len()
	} else {
		var ce *policyDomain.CatalogError
		if errors.As(catalogErr, &ce) {
			result["violations"] = ce.Violations
		} else {
			result["violations"] = []string{catalogErr.Error()}
		}
	}

	jsonBytes, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "failed to marshal JSON: %v\n", err)
		return
	}

	_, _ = fmt.Fprintln(writer, string(jsonBytes))
}
