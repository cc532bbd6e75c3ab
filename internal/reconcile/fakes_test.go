package reconcile

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"assetsync/internal/assetindex"
	"assetsync/internal/services"
	"assetsync/internal/transfer"
	"assetsync/internal/zone"
)

type call struct {
	op       string
	id       string
	altText  string
	position string
	first    int
	skip     int
}

type fakeRemote struct {
	calls     []call
	pages     map[int][]assetindex.Asset
	listErr   map[int]error
	updateErr map[string]error
	publish   map[string]string
	policyURL string
}

func (f *fakeRemote) ListAssets(_ context.Context, first, skip int) ([]assetindex.Asset, error) {
	f.calls = append(f.calls, call{op: "list", first: first, skip: skip})
	if err := f.listErr[skip]; err != nil {
		return nil, err
	}
	return f.pages[skip], nil
}

func (f *fakeRemote) UpdateAssetMetadata(_ context.Context, id, altText, position string) (string, error) {
	f.calls = append(f.calls, call{op: "update", id: id, altText: altText, position: position})
	if err := f.updateErr[id]; err != nil {
		return "", err
	}
	return "updated", nil
}

func (f *fakeRemote) UpdateAssetWithReupload(_ context.Context, id, altText, position string) (transfer.Policy, error) {
	f.calls = append(f.calls, call{op: "reupload", id: id, altText: altText, position: position})
	if err := f.updateErr[id]; err != nil {
		return transfer.Policy{}, err
	}
	return transfer.Policy{URL: f.policyURL, Key: "uploads/" + id, Date: "d", Signature: "s", Algorithm: "a", Policy: "p", Credential: "c", SecurityToken: "t"}, nil
}

func (f *fakeRemote) PublishAsset(_ context.Context, id string) (string, error) {
	f.calls = append(f.calls, call{op: "publish", id: id})
	name, ok := f.publish[id]
	if !ok {
		return "", services.Wrap(services.ErrRemoteCall, "publish asset", id, "response missing publishAsset", nil)
	}
	return name, nil
}

func (f *fakeRemote) ops() []string {
	out := make([]string, 0, len(f.calls))
	for _, c := range f.calls {
		out = append(out, c.op)
	}
	return out
}

type upload struct {
	policy   transfer.Policy
	path     string
	fileName string
}

type fakeFiles struct {
	content     map[string]string
	downloadErr map[string]error
	downloads   []string
	uploads     []upload
	uploadText  string
}

func (f *fakeFiles) Download(_ context.Context, url, dest string) (int64, error) {
	f.downloads = append(f.downloads, url)
	if err := f.downloadErr[url]; err != nil {
		return 0, err
	}
	data := f.content[url]
	if data == "" {
		data = "bytes:" + url
	}
	file, err := os.OpenFile(dest, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
	if err != nil {
		if errors.Is(err, os.ErrExist) {
			return 0, fmt.Errorf("%w: %s", transfer.ErrExists, dest)
		}
		return 0, err
	}
	defer file.Close()
	n, err := file.WriteString(data)
	return int64(n), err
}

func (f *fakeFiles) Upload(_ context.Context, policy transfer.Policy, path, fileName string) (string, error) {
	f.uploads = append(f.uploads, upload{policy: policy, path: path, fileName: fileName})
	return f.uploadText, nil
}

type recorder struct {
	events []Event
}

func (r *recorder) Observe(e Event) { r.events = append(r.events, e) }

func (r *recorder) kinds() []EventKind {
	out := make([]EventKind, 0, len(r.events))
	for _, e := range r.events {
		out = append(out, e.Kind)
	}
	return out
}

func (r *recorder) ofKind(kind EventKind) []Event {
	var out []Event
	for _, e := range r.events {
		if e.Kind == kind {
			out = append(out, e)
		}
	}
	return out
}

type sleepCounter struct {
	count int
	total time.Duration
}

func (s *sleepCounter) sleep(_ context.Context, d time.Duration) error {
	s.count++
	s.total += d
	return nil
}

func newLayout(t *testing.T) zone.Layout {
	t.Helper()
	layout := zone.NewLayout(filepath.Join(t.TempDir(), "Assets"))
	for _, dir := range layout.Dirs() {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			t.Fatalf("mkdir %s: %v", dir, err)
		}
	}
	return layout
}

func saveIndex(t *testing.T, layout zone.Layout, records ...assetindex.Asset) {
	t.Helper()
	if err := assetindex.Save(layout.Root, records); err != nil {
		t.Fatalf("save index: %v", err)
	}
}

func progressLine(e Event) string {
	return fmt.Sprintf("%d%% %d of %d", e.Percent(), e.Done, e.Total)
}

func assertOps(t *testing.T, remote *fakeRemote, want ...string) {
	t.Helper()
	got := remote.ops()
	if strings.Join(got, ",") != strings.Join(want, ",") {
		t.Fatalf("remote calls = %v, want %v", got, want)
	}
}
