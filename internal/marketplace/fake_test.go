package marketplace

import (
	"context"
	"errors"
	"sync"
)

var errFakeMissing = errors.New("fake: missing document")

// fakeSource serves documents from maps and counts calls.
type fakeSource struct {
	mu        sync.Mutex
	index     *CommunityIndex
	indexErr  error
	manifests map[string]*TeamManifest
	failTeams map[string]error
	raw       map[string]string
	calls     map[string]int
}

func newFakeSource(teams ...string) *fakeSource {
	return &fakeSource{
		index:     &CommunityIndex{Name: "community", Teams: teams},
		manifests: map[string]*TeamManifest{},
		failTeams: map[string]error{},
		raw:       map[string]string{},
		calls:     map[string]int{},
	}
}

func (f *fakeSource) count(key string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[key]
}

func (f *fakeSource) hit(key string) {
	f.mu.Lock()
	f.calls[key]++
	f.mu.Unlock()
}

func (f *fakeSource) FetchIndex(context.Context) (*CommunityIndex, error) {
	f.hit("index")
	if f.indexErr != nil {
		return nil, f.indexErr
	}
	return f.index, nil
}

func (f *fakeSource) FetchManifest(_ context.Context, team string) (*TeamManifest, error) {
	f.hit("manifest:" + team)
	if err, ok := f.failTeams[team]; ok {
		return nil, err
	}
	m, ok := f.manifests[team]
	if !ok {
		return nil, errFakeMissing
	}
	return m, nil
}

func (f *fakeSource) FetchRawContent(_ context.Context, p string) (string, error) {
	f.hit("raw:" + p)
	s, ok := f.raw[p]
	if !ok {
		return "", errFakeMissing
	}
	return s, nil
}

func names(entries ...string) EntryList {
	out := make(EntryList, len(entries))
	for i, n := range entries {
		out[i] = ComponentEntry{Name: n}
	}
	return out
}
