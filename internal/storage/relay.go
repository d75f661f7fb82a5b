package storage

import (
	"context"
	"fmt"
	"io"
	"time"

	"talentdesk/internal/apperr"
	"talentdesk/internal/auth"
	appconfig "talentdesk/internal/config"
	"talentdesk/internal/models"

	"github.com/aws/aws-sdk-go-v2/aws"
	awscfg "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Relay proxies uploads and downloads to the object store. Workflow
// code only ever sees opaque keys; fetch access goes through the
// authorization queries below.
type Relay struct {
	client  *s3.Client
	presign *s3.PresignClient
	bucket  string
}

// NewRelay returns nil when storage is unconfigured; callers fail the
// affected operation instead of degrading silently.
func NewRelay(ctx context.Context, cfg appconfig.Storage) (*Relay, error) {
	if !cfg.Configured() {
		return nil, nil
	}
	awsConfig, err := awscfg.LoadDefaultConfig(ctx,
		awscfg.WithRegion(cfg.Region),
		awscfg.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, "")),
	)
	if err != nil {
		return nil, err
	}
	client := s3.NewFromConfig(awsConfig, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	})
	return &Relay{
		client:  client,
		presign: s3.NewPresignClient(client),
		bucket:  cfg.Bucket,
	}, nil
}

// Store uploads a file under a fresh key in the given prefix and
// returns the key.
func (r *Relay) Store(ctx context.Context, prefix, filename, contentType string, body io.Reader) (string, error) {
	if r == nil {
		return "", apperr.Dependencyf("storage_not_configured", nil, "file storage is not configured")
	}
	key := fmt.Sprintf("%s/%s-%s", prefix, uuid.NewString(), filename)
	_, err := r.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(r.bucket),
		Key:         aws.String(key),
		Body:        body,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", apperr.Dependencyf("storage_upload_failed", err, "could not store file")
	}
	return key, nil
}

// PresignFetch returns a short-lived download URL for a stored key.
func (r *Relay) PresignFetch(ctx context.Context, key string) (string, error) {
	if r == nil {
		return "", apperr.Dependencyf("storage_not_configured", nil, "file storage is not configured")
	}
	out, err := r.presign.PresignGetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(r.bucket),
		Key:    aws.String(key),
	}, s3.WithPresignExpires(15*time.Minute))
	if err != nil {
		return "", apperr.Dependencyf("storage_presign_failed", err, "could not authorize download")
	}
	return out.URL, nil
}

// AuthorizeResume decides whether the principal may fetch a resume.
// Recruiters and admins may fetch any; an applicant only resumes
// attached to their own applications, matched exactly on the stored
// key rather than by substring.
func AuthorizeResume(db *gorm.DB, claims auth.Claims, key string) (bool, error) {
	if claims.HasRole(models.RoleAdmin) || claims.HasRole(models.RoleRecruiter) {
		return true, nil
	}
	var count int64
	err := db.Model(&models.Application{}).
		Joins("JOIN applicants ON applicants.id = applications.applicant_id").
		Where("applications.resume_key = ? AND applicants.user_id = ?", key, claims.Subject).
		Count(&count).Error
	if err != nil {
		return false, apperr.Dependencyf("db_error", err, "could not check resume access")
	}
	return count > 0, nil
}
