package storage

import (
	"context"
	"fmt"

	"github.com/LeroySteding/medusajs-yn-railway/internal/config"
)

func FromConfig(ctx context.Context, cfg config.StorageConfig) (Storage, error) {
	switch cfg.Driver {
	case "local", "":
		return NewLocal(cfg.LocalDir, cfg.LocalURL), nil
	case "s3":
		if cfg.S3Region == "" || cfg.S3Bucket == "" {
			return nil, fmt.Errorf("s3 storage requires AWS_REGION and S3_BUCKET")
		}
		return NewS3(ctx, S3Config{
			Region:        cfg.S3Region,
			Bucket:        cfg.S3Bucket,
			Prefix:        cfg.S3Prefix,
			PublicBaseURL: cfg.S3PublicURL,
			PublicACL:     cfg.S3ACLPublic,
			CacheMaxAge:   cfg.S3CacheMaxAge,
		})
	default:
		return nil, fmt.Errorf("unknown STORAGE_DRIVER: %s", cfg.Driver)
	}
}
