package commands

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"

	policyDomain "github.com/allisson/policies/internal/policy/domain"
	policyService "github.com/allisson/policies/internal/policy/service"
)

// RunCompileCatalog compiles a grant catalog file into the READ/WRITE policy
// document pair without touching the database. Useful for inspecting the
// documents a catalog produces before storing it, and for CI checks on
// catalog files kept in version control.
//
// identifiersJSON is a JSON object mapping placeholder names to resolved
// values (e.g. '{"region":"us-east-1","account":"123456789012"}').
func RunCompileCatalog(
	logger *slog.Logger,
	writer io.Writer,
	catalogPath string,
	identifiersJSON string,
	format string,
) error {
	logger.Info("compiling catalog", slog.String("path", catalogPath))

	payload, err := readCatalogFile(catalogPath)
	if err != nil {
		return err
	}

	catalog, err := policyDomain.NewCatalog(payload.Grants)
	if err != nil {
		return fmt.Errorf("catalog is invalid: %w", err)
	}

	identifiers := map[string]string{}
	if identifiersJSON != "" {
		if err := json.Unmarshal([]byte(identifiersJSON), &identifiers); err != nil {
			return fmt.Errorf("failed to parse identifiers JSON: %w", err)
		}
	}

	compiler := policyService.NewStatementCompiler()
	set, err := compiler.Compile(catalog, identifiers)
	if err != nil {
		return fmt.Errorf("compilation failed: %w", err)
	}

	if format == "json" {
		outputCompilationJSON(set, writer)
	} else {
		if err := outputCompilationText(set, writer); err != nil {
			return err
		}
	}

	logger.Info("catalog compiled successfully",
		slog.String("name", payload.Name),
		slog.Int("read_statements", len(set.Read.Statements)),
		slog.Int("write_statements", len(set.Write.Statements)),
	)

	return nil
}

// outputCompilationText outputs both documents in the attachable policy JSON shape.
func outputCompilationText(set *policyDomain.DocumentSet, writer io.Writer) error {
	for _, doc := range []*policyDomain.PolicyDocument{set.Read, set.Write} {
		iamJSON, err := doc.MarshalIAM()
		if err != nil {
			return fmt.Errorf("failed to render %s document: %w", doc.AccessClass, err)
		}

		_, _ = fmt.Fprintf(writer, "%s document (%d statements, %d suppressions):\n",
			doc.AccessClass, len(doc.Statements), len(doc.Suppressions))
		_, _ = fmt.Fprintln(writer, string(iamJSON))
		_, _ = fmt.Fprintln(writer)
	}

	return nil
}

// outputCompilationJSON outputs the full document set in JSON format for machine consumption.
func outputCompilationJSON(set *policyDomain.DocumentSet, writer io.Writer) {
	jsonBytes, err := json.MarshalIndent(set, "", "  ")
	if err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "failed to marshal JSON: %v\n", err)
		return
	}

	_, _ = fmt.Fprintln(writer, string(jsonBytes))
}
