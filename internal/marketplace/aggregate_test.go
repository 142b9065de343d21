package marketplace

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAggregate_SingleTeamScenario(t *testing.T) {
	src := newFakeSource("acme")
	src.manifests["acme"] = &TeamManifest{
		Team:       "acme",
		Components: ManifestComponents{Agents: names("helper"), Skills: EntryList{}},
	}

	snap, err := NewAggregator(src, nil).Aggregate(context.Background())
	require.NoError(t, err)

	require.Len(t, snap.Components, 1)
	assert.Equal(t, FlatComponent{
		ID:       "plugins/community/online/acme/agents/helper.md",
		Name:     "helper",
		Type:     TypeAgent,
		TeamName: "acme",
		Path:     "plugins/community/online/acme/agents/helper.md",
		Labels:   []string{"general"},
	}, snap.Components[0])
}

func TestAggregate_AbsentBucketsContributeNothing(t *testing.T) {
	src := newFakeSource("empty", "sparse")
	src.manifests["empty"] = &TeamManifest{Team: "empty"}
	src.manifests["sparse"] = &TeamManifest{Team: "sparse", Components: ManifestComponents{Hooks: names("pre-commit")}}

	snap, err := NewAggregator(src, nil).Aggregate(context.Background())
	require.NoError(t, err)
	require.Len(t, snap.Components, 1)
	assert.Equal(t, TypeHook, snap.Components[0].Type)
	assert.Equal(t, "sparse", snap.Components[0].TeamName)
}

func TestAggregate_Ordering(t *testing.T) {
	src := newFakeSource("zeta", "alpha")
	src.manifests["alpha"] = &TeamManifest{Components: ManifestComponents{
		Workflows:     names("w1"),
		Agents:        names("a2", "a1"),
		Skills:        names("s1"),
		SlashCommands: names("c1"),
		MCPServers:    names("m1"),
		Hooks:         names("h1"),
	}}
	src.manifests["zeta"] = &TeamManifest{Components: ManifestComponents{Skills: names("zs")}}

	snap, err := NewAggregator(src, nil).Aggregate(context.Background())
	require.NoError(t, err)

	var got []string
	for _, c := range snap.Components {
		got = append(got, c.TeamName+":"+c.Name)
	}
	assert.Equal(t, []string{
		"zeta:zs",
		"alpha:a2", "alpha:a1",
		"alpha:c1",
		"alpha:s1",
		"alpha:h1",
		"alpha:m1",
		"alpha:w1",
	}, got)
}

func TestAggregate_PartialFailure(t *testing.T) {
	src := newFakeSource("one", "broken", "three")
	src.manifests["one"] = &TeamManifest{Components: ManifestComponents{Agents: names("a")}}
	src.manifests["three"] = &TeamManifest{Components: ManifestComponents{Skills: names("b", "c")}}
	src.failTeams["broken"] = errors.New("HTTP 500")

	snap, err := NewAggregator(src, nil).Aggregate(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []string{"one", "broken", "three"}, snap.Teams)
	assert.NotContains(t, snap.Manifests, "broken")
	assert.Contains(t, snap.Failed, "broken")
	assert.Equal(t, []string{"broken"}, snap.Missing())

	var paths []string
	for _, c := range snap.Components {
		paths = append(paths, c.Path)
	}
	assert.ElementsMatch(t, []string{
		BuildComponentPath("one", TypeAgent, "a"),
		BuildComponentPath("three", TypeSkill, "b"),
		BuildComponentPath("three", TypeSkill, "c"),
	}, paths)
}

func TestAggregate_IndexFailureIsFatal(t *testing.T) {
	src := newFakeSource()
	src.indexErr = errors.New("dns failure")

	_, err := NewAggregator(src, nil).Aggregate(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrIndexUnavailable)
	assert.ErrorIs(t, err, src.indexErr)
}

func TestAggregate_DuplicatePathLastWins(t *testing.T) {
	src := newFakeSource("acme", "acme")
	src.manifests["acme"] = &TeamManifest{Components: ManifestComponents{Agents: EntryList{
		{Name: "helper", Labels: []string{"first"}},
		{Name: "helper", Labels: []string{"second"}},
	}}}

	snap, err := NewAggregator(src, nil).Aggregate(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, src.count("manifest:acme"), "duplicate index teams are fetched once")
	assert.Len(t, snap.Components, 2)
	got, ok := snap.ByPath(BuildComponentPath("acme", TypeAgent, "helper"))
	require.True(t, ok)
	assert.Equal(t, []string{"second"}, got.Labels)
}

func TestAggregate_SkipsUnnamedEntries(t *testing.T) {
	src := newFakeSource("acme")
	src.manifests["acme"] = &TeamManifest{Components: ManifestComponents{Agents: EntryList{{}, {Name: "  "}, {Name: "ok"}}}}

	snap, err := NewAggregator(src, nil).Aggregate(context.Background())
	require.NoError(t, err)
	require.Len(t, snap.Components, 1)
	assert.Equal(t, "ok", snap.Components[0].Name)
}

func TestFlatten_IgnoresTeamsWithoutManifest(t *testing.T) {
	got := Flatten([]string{"a", "b"}, map[string]*TeamManifest{
		"b": {Components: ManifestComponents{Agents: names("x")}},
	})
	require.Len(t, got, 1)
	assert.Equal(t, "b", got[0].TeamName)
	assert.Empty(t, got[0].Description)
}

func TestComputeStats(t *testing.T) {
	src := newFakeSource("a", "b")
	src.manifests["a"] = &TeamManifest{Components: ManifestComponents{
		Agents: EntryList{{Name: "x", Labels: []string{"backend", "testing"}}},
		Skills: names("y"),
	}}
	src.manifests["b"] = &TeamManifest{Components: ManifestComponents{Agents: names("z")}}

	snap, err := NewAggregator(src, nil).Aggregate(context.Background())
	require.NoError(t, err)

	st := ComputeStats(snap)
	assert.Equal(t, 2, st.TotalTeams)
	assert.Equal(t, 3, st.TotalComponents)
	assert.Equal(t, 2, st.ByType[TypeAgent])
	assert.Equal(t, 1, st.ByType[TypeSkill])
	assert.Equal(t, 0, st.ByType[TypeWorkflow])
	assert.Len(t, st.ByType, len(ComponentTypes))
	assert.Equal(t, map[string]int{"a": 2, "b": 1}, st.ByTeam)
	assert.Equal(t, map[string]int{"backend": 1, "testing": 1, "general": 2}, st.ByLabel)
}
