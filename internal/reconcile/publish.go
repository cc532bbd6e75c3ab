package reconcile

import (
	"context"

	"assetsync/internal/zone"
)

// Publisher promotes every indexed file in the mirror outside the ignore zone.
type Publisher struct {
	remote Remote
	layout zone.Layout
	opts   []Option
}

// NewPublisher constructs a Publisher. The default pacing delay is
// DefaultPublishDelay.
func NewPublisher(remote Remote, layout zone.Layout, opts ...Option) *Publisher {
	return &Publisher{remote: remote, layout: layout, opts: opts}
}

// Publish walks the mirror once, issuing one publish call per matched file.
func (p *Publisher) Publish(ctx context.Context) (Result, error) {
	r := &run{settings: newSettings(DefaultPublishDelay, p.opts), mode: ModePublish, layout: p.layout}
	records, byID, err := loadIndex(p.layout.Root)
	if err != nil {
		return r.result, err
	}
	total := len(records)
	r.result.IndexSize = total

	done := 0
	err = r.eachMatch(ctx, byID, func(m matched) error {
		name, err := p.remote.PublishAsset(ctx, m.record.ID)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			r.emit(Event{Kind: EventFailed, AssetID: m.record.ID, Path: m.entry.Path, Name: m.record.FileName, Done: done, Total: total, Err: err})
		} else {
			if name == "" {
				name = m.record.FileName
			}
			done++
			r.emit(Event{Kind: EventPublished, AssetID: m.record.ID, Path: m.entry.Path, Name: name, Done: done, Total: total})
		}
		return r.pause(ctx)
	})
	return r.result, err
}
