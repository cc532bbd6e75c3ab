package reconcile

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"assetsync/internal/assetindex"
	"assetsync/internal/services"
	"assetsync/internal/testsupport"
)

func TestPublishEveryNonIgnoredMatch(t *testing.T) {
	layout := newLayout(t)
	saveIndex(t, layout,
		assetindex.Asset{ID: "1", FileName: "one.png"},
		assetindex.Asset{ID: "2", FileName: "two.png"},
		assetindex.Asset{ID: "3", FileName: "three.png"},
		assetindex.Asset{ID: "4", FileName: "four.png"},
	)
	testsupport.WriteText(t, filepath.Join(layout.Metadata, "one.png 1 one.png"), "x")
	testsupport.WriteText(t, filepath.Join(layout.Reupload, "two.png 2 two.png"), "x")
	testsupport.WriteText(t, filepath.Join(layout.Root, "three.png 3 three.png"), "x")
	testsupport.WriteText(t, filepath.Join(layout.Ignore, "four.png 4 four.png"), "x")
	remote := &fakeRemote{publish: map[string]string{"1": "one.png", "2": "two.png", "3": "three.png", "4": "four.png"}}
	rec := &recorder{}
	sleeps := &sleepCounter{}

	result, err := NewPublisher(remote, layout, WithObserver(rec), WithSleeper(sleeps.sleep)).Publish(context.Background())
	if err != nil {
		t.Fatalf("Publish: %v", err)
	}
	if result.Published != 3 || result.Ignored != 1 {
		t.Fatalf("unexpected result %+v", result)
	}
	for _, c := range remote.calls {
		if c.id == "4" {
			t.Fatal("ignored file must not be published")
		}
	}
	if sleeps.count != 3 || sleeps.total != 3*DefaultPublishDelay {
		t.Fatalf("expected 3 publish pauses of the default delay, got %d (%s)", sleeps.count, sleeps.total)
	}
	published := rec.ofKind(EventPublished)
	if line := progressLine(published[len(published)-1]); line != "75% 3 of 4" {
		t.Fatalf("unexpected progress %q", line)
	}
}

func TestPublishMissingPayloadContinues(t *testing.T) {
	layout := newLayout(t)
	saveIndex(t, layout, assetindex.Asset{ID: "1", FileName: "a.png"}, assetindex.Asset{ID: "2", FileName: "b.png"})
	testsupport.WriteText(t, filepath.Join(layout.Metadata, "a.png 1 a.png"), "x")
	testsupport.WriteText(t, filepath.Join(layout.Metadata, "b.png 2 b.png"), "x")
	remote := &fakeRemote{publish: map[string]string{"2": "b.png"}}
	rec := &recorder{}

	result, err := NewPublisher(remote, layout, WithObserver(rec), WithDelay(0)).Publish(context.Background())
	if err != nil {
		t.Fatalf("Publish: %v", err)
	}
	assertOps(t, remote, "publish", "publish")
	failed := rec.ofKind(EventFailed)
	if len(failed) != 1 || failed[0].AssetID != "1" || !errors.Is(failed[0].Err, services.ErrRemoteCall) {
		t.Fatalf("unexpected failures %+v", failed)
	}
	if result.Published != 1 {
		t.Fatalf("unexpected result %+v", result)
	}
}

func TestPublishRequiresIndex(t *testing.T) {
	_, err := NewPublisher(&fakeRemote{}, newLayout(t)).Publish(context.Background())
	if !errors.Is(err, services.ErrMissingIndex) {
		t.Fatalf("expected ErrMissingIndex, got %v", err)
	}
}
