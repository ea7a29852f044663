package domain

import "fmt"

// Project represents a Toggl project in the domain layer.
type Project struct {
	ID          int64
	WorkspaceID int64
	Name        string
	Active      bool
}

// UnassignedLabel is the summary bucket for entries without a project.
const UnassignedLabel = "(no project)"

// ProjectIndex maps project IDs to display names.
type ProjectIndex map[int64]string

// NewProjectIndex builds an index from fetched projects.
func NewProjectIndex(projects []Project) ProjectIndex {
	idx := make(ProjectIndex, len(projects))
	for _, p := range projects {
		idx[p.ID] = p.Name
	}
	return idx
}

// Label resolves a project reference to a display name. Unknown IDs keep a
// recognizable numeric form; nil means the unassigned bucket.
func (idx ProjectIndex) Label(id *int64) string {
	if id == nil {
		return UnassignedLabel
	}
	if name, ok := idx[*id]; ok && name != "" {
		return name
	}
	return fmt.Sprintf("project %d", *id)
}
