package reconcile

import "assetsync/internal/zone"

// downloadSession is the set of file names already present anywhere under the
// mirror. It is listed on first use and extended after each download, so one
// pull never fetches the same name twice.
type downloadSession struct {
	layout    zone.Layout
	names     map[string]struct{}
	onListErr func(error)
}

func newDownloadSession(layout zone.Layout, onListErr func(error)) *downloadSession {
	return &downloadSession{layout: layout, onListErr: onListErr}
}

func (s *downloadSession) has(name string) bool {
	if s.names == nil {
		s.load()
	}
	_, ok := s.names[name]
	return ok
}

func (s *downloadSession) add(name string) {
	if s.names == nil {
		s.load()
	}
	s.names[name] = struct{}{}
}

func (s *downloadSession) load() {
	s.names = make(map[string]struct{})
	for entry, err := range s.layout.Walk() {
		if err != nil {
			if s.onListErr != nil {
				s.onListErr(err)
			}
			continue
		}
		s.names[entry.Name] = struct{}{}
	}
}
