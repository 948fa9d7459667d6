// Package export publishes compiled policy documents to object storage so the
// provisioning layer can fetch attachable documents without a database
// connection. Buckets are addressed by URL (file://, s3://).
package export

import (
	"context"
	"fmt"
	"log/slog"

	"gocloud.dev/blob"
	_ "gocloud.dev/blob/fileblob" // register file:// bucket scheme
	_ "gocloud.dev/blob/s3blob"   // register s3:// bucket scheme
	"golang.org/x/sync/errgroup"

	apperrors "github.com/allisson/policies/internal/errors"
	policyDomain "github.com/allisson/policies/internal/policy/domain"
)

// BlobExporter writes the READ/WRITE document pair of a principal to an
// object-storage bucket as attachable IAM JSON.
type BlobExporter struct {
	bucketURL string
	logger    *slog.Logger
}

// NewBlobExporter creates an exporter targeting the given bucket URL.
func NewBlobExporter(bucketURL string, logger *slog.Logger) *BlobExporter {
	return &BlobExporter{
		bucketURL: bucketURL,
		logger:    logger,
	}
}

// Export uploads both documents under <principal>/read.json and
// <principal>/write.json. The uploads run concurrently; any failure fails the
// whole export.
func (e *BlobExporter) Export(
	ctx context.Context,
	principal string,
	set *policyDomain.DocumentSet,
) error {
	bucket, err := blob.OpenBucket(ctx, e.bucketURL)
	if err != nil {
		return apperrors.Wrap(err, "failed to open export bucket")
	}
	defer func() { _ = bucket.Close() }()

	objects := map[string]*policyDomain.PolicyDocument{
		principal + "/read.json":  set.Read,
		principal + "/write.json": set.Write,
	}

	g, gctx := errgroup.WithContext(ctx)
	for key, doc := range objects {
		g.Go(func() error {
			data, err := doc.MarshalIAM()
			if err != nil {
				return apperrors.Wrap(err, fmt.Sprintf("failed to marshal %s", key))
			}

			opts := &blob.WriterOptions{ContentType: "application/json"}
			if err := bucket.WriteAll(gctx, key, data, opts); err != nil {
				return apperrors.Wrap(err, fmt.Sprintf("failed to upload %s", key))
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}

	if e.logger != nil {
		e.logger.Info("exported policy documents",
			slog.String("principal", principal),
			slog.String("bucket_url", e.bucketURL),
		)
	}
	return nil
}
