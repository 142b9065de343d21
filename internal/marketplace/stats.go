package marketplace

// Stats summarizes a snapshot.
type Stats struct {
	TotalTeams      int                   `json:"totalTeams"`
	TotalComponents int                   `json:"totalComponents"`
	ByType          map[ComponentType]int `json:"byType"`
	ByTeam          map[string]int        `json:"byTeam"`
	ByLabel         map[string]int        `json:"byLabel"`
}

// ComputeStats counts the components of s by type, team and label. Every
// type is present in ByType, zero or not.
func ComputeStats(s *Snapshot) Stats {
	st := Stats{
		TotalTeams:      len(uniqueTeams(s.Teams)),
		TotalComponents: len(s.Components),
		ByType:          make(map[ComponentType]int, len(ComponentTypes)),
		ByTeam:          map[string]int{},
		ByLabel:         map[string]int{},
	}
	for _, t := range ComponentTypes {
		st.ByType[t] = 0
	}
	for _, c := range s.Components {
		st.ByType[c.Type]++
		st.ByTeam[c.TeamName]++
		for _, l := range c.Labels {
			st.ByLabel[l]++
		}
	}
	return st
}
