package reconcile

import (
	"context"

	"assetsync/internal/zone"
)

// Pusher sends local edits back to the remote store: a metadata update for
// files in the metadata zone, a metadata update plus binary upload for files
// in the reupload zone.
type Pusher struct {
	remote Remote
	files  Files
	layout zone.Layout
	opts   []Option
}

// NewPusher constructs a Pusher. The default pacing delay is DefaultPushDelay.
func NewPusher(remote Remote, files Files, layout zone.Layout, opts ...Option) *Pusher {
	return &Pusher{remote: remote, files: files, layout: layout, opts: opts}
}

// Push walks the mirror once. It fails up front when no index exists.
func (p *Pusher) Push(ctx context.Context) (Result, error) {
	r := &run{settings: newSettings(DefaultPushDelay, p.opts), mode: ModePush, layout: p.layout}
	records, byID, err := loadIndex(p.layout.Root)
	if err != nil {
		return r.result, err
	}
	total := len(records)
	r.result.IndexSize = total

	done := 0
	err = r.eachMatch(ctx, byID, func(m matched) error {
		base := Event{AssetID: m.record.ID, Path: m.entry.Path, Name: m.record.FileName, Total: total}
		switch m.entry.Intent {
		case zone.Reupload:
			text, err := p.reupload(ctx, m)
			if err != nil {
				if ctx.Err() != nil {
					return ctx.Err()
				}
				base.Kind, base.Err, base.Detail, base.Done = EventFailed, err, text, done
				r.emit(base)
				break
			}
			done++
			base.Kind, base.Detail, base.Done = EventUploaded, text, done
			r.emit(base)
		case zone.MetadataUpdate:
			if _, err := p.remote.UpdateAssetMetadata(ctx, m.record.ID, m.record.AltText, m.record.Position); err != nil {
				if ctx.Err() != nil {
					return ctx.Err()
				}
				base.Kind, base.Err, base.Done = EventFailed, err, done
				r.emit(base)
				break
			}
			done++
			base.Kind, base.Done = EventUpdated, done
			r.emit(base)
		default:
			base.Kind, base.Done = EventUnclassified, done
			r.emit(base)
		}
		return r.pause(ctx)
	})
	return r.result, err
}

func (p *Pusher) reupload(ctx context.Context, m matched) (string, error) {
	policy, err := p.remote.UpdateAssetWithReupload(ctx, m.record.ID, m.record.AltText, m.record.Position)
	if err != nil {
		return "", err
	}
	return p.files.Upload(ctx, policy, m.entry.Path, m.record.FileName)
}
