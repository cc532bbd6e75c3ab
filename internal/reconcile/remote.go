package reconcile

import (
	"context"

	"assetsync/internal/assetindex"
	"assetsync/internal/transfer"
)

// Remote is the content API as seen by the engine.
type Remote interface {
	ListAssets(ctx context.Context, first, skip int) ([]assetindex.Asset, error)
	UpdateAssetMetadata(ctx context.Context, id, altText, position string) (string, error)
	UpdateAssetWithReupload(ctx context.Context, id, altText, position string) (transfer.Policy, error)
	PublishAsset(ctx context.Context, id string) (string, error)
}

// Files moves binaries to and from storage.
type Files interface {
	Download(ctx context.Context, url, dest string) (int64, error)
	Upload(ctx context.Context, policy transfer.Policy, path, fileName string) (string, error)
}
