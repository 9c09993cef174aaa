// Package snapshots periodically exports the registry's profiles to an
// S3-compatible bucket as JSON documents.
package snapshots

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/dmitrijs2005/idregistry/internal/logging"
	sc "github.com/dmitrijs2005/idregistry/internal/server/config"
	"github.com/dmitrijs2005/idregistry/internal/server/models"
	"github.com/google/uuid"
)

var (
	loadDefaultAWSConfig = config.LoadDefaultConfig

	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		return s3.NewFromConfig(cfg, optFns...)
	}

	putObject = func(c *s3.Client, ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
		return c.PutObject(ctx, in, optFns...)
	}

	now           = time.Now
	newSnapshotID = func() string { return uuid.NewString() }
)

const finalExportTimeout = 10 * time.Second

type source interface {
	Owner() string
	Profiles() []models.Profile
}

// Document is the JSON body of one snapshot.
type Document struct {
	TakenAt  time.Time        `json:"taken_at"`
	Owner    string           `json:"owner"`
	Profiles []models.Profile `json:"profiles"`
}

type Exporter struct {
	source source
	config *sc.Config
	logger logging.Logger
}

func NewExporter(s source, c *sc.Config, l logging.Logger) *Exporter {
	return &Exporter{source: s, config: c, logger: l.With("module", "snapshots")}
}

// Key returns the object key for a snapshot taken at t.
func Key(t time.Time, id string) string {
	t = t.UTC()
	return fmt.Sprintf("snapshots/%04d/%02d/%02d/%s.json", t.Year(), t.Month(), t.Day(), id)
}

func (e *Exporter) client(ctx context.Context) (*s3.Client, error) {
	cfg, err := loadDefaultAWSConfig(ctx,
		config.WithRegion(e.config.S3Region),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			e.config.S3RootUser,
			e.config.S3RootPassword,
			"",
		)))
	if err != nil {
		return nil, err
	}

	return newS3ClientFromConfig(cfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(e.config.S3BaseEndpoint)
		o.UsePathStyle = true
	}), nil
}

// Export uploads one snapshot and returns its key.
func (e *Exporter) Export(ctx context.Context) (string, error) {
	taken := now().UTC()
	doc := Document{
		TakenAt:  taken,
		Owner:    e.source.Owner(),
		Profiles: e.source.Profiles(),
	}

	body, err := json.Marshal(doc)
	if err != nil {
		return "", fmt.Errorf("marshal snapshot: %w", err)
	}

	client, err := e.client(ctx)
	if err != nil {
		return "", fmt.Errorf("s3 client: %w", err)
	}

	key := Key(taken, newSnapshotID())
	_, err = putObject(client, ctx, &s3.PutObjectInput{
		Bucket:      aws.String(e.config.S3Bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(body),
		ContentType: aws.String("application/json"),
	})
	if err != nil {
		return "", fmt.Errorf("put snapshot: %w", err)
	}

	e.logger.Info(ctx, "snapshot exported", "key", key, "profiles", len(doc.Profiles))
	return key, nil
}

// Run exports every interval until ctx is done, then exports once more.
// A non-positive interval disables exporting.
func (e *Exporter) Run(ctx context.Context, interval time.Duration) error {
	if interval <= 0 {
		return nil
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if _, err := e.Export(ctx); err != nil {
				e.logger.Error(ctx, "snapshot export failed", "error", err)
			}
		case <-ctx.Done():
			finalCtx, cancel := context.WithTimeout(context.Background(), finalExportTimeout)
			_, err := e.Export(finalCtx)
			cancel()
			if err != nil {
				e.logger.Error(ctx, "final snapshot export failed", "error", err)
			}
			return nil
		}
	}
}
