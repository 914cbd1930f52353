package multibranch

import (
	"sort"

	"github.com/juju/errors"
)

// ProjectType is the descriptor of a multibranch project subtype. New
// subtypes are registered explicitly on a ProjectTypeRegistry rather
// than discovered, so a host always sees exactly the types it wired.
type ProjectType interface {
	Kind() string
	DisplayName() string
	NewProject(parent string, name string) *Project
	NewFactory(p *Project) ProjectFactory
}

type ProjectTypeRegistry struct {
	types map[string]ProjectType
}

func NewProjectTypeRegistry() *ProjectTypeRegistry {
	return &ProjectTypeRegistry{
		types: map[string]ProjectType{},
	}
}

func (r *ProjectTypeRegistry) Register(t ProjectType) {
	r.types[t.Kind()] = t
}

func (r *ProjectTypeRegistry) Find(kind string) (ProjectType, error) {
	t := r.types[kind]

	if t == nil {
		return nil, errors.Errorf("No project type exists for the kind `%s`", kind)
	}

	return t, nil
}

func (r *ProjectTypeRegistry) All() []ProjectType {
	kinds := []string{}
	for kind := range r.types {
		kinds = append(kinds, kind)
	}
	sort.Strings(kinds)

	all := make([]ProjectType, 0, len(kinds))
	for _, kind := range kinds {
		all = append(all, r.types[kind])
	}
	return all
}

// DefaultProjectTypeRegistry carries the project types shipped with
// the framework.
func DefaultProjectTypeRegistry() *ProjectTypeRegistry {
	r := NewProjectTypeRegistry()
	r.Register(BasicProjectType{})
	r.Register(HealthReportingProjectType{})
	return r
}

// BasicProjectType is the plain multibranch project.
type BasicProjectType struct {
}

func (t BasicProjectType) Kind() string {
	return "basic"
}

func (t BasicProjectType) DisplayName() string {
	return "Multibranch project"
}

func (t BasicProjectType) NewProject(parent string, name string) *Project {
	return &Project{
		Parent:  parent,
		Name:    name,
		JobType: FreestyleJobType{},
	}
}

func (t BasicProjectType) NewFactory(p *Project) ProjectFactory {
	return NewJobFactory(p)
}

// HealthReportingProjectType is a multibranch project whose factory
// also reports aggregate health over the materialized child jobs.
type HealthReportingProjectType struct {
}

func (t HealthReportingProjectType) Kind() string {
	return "health-reporting"
}

func (t HealthReportingProjectType) DisplayName() string {
	return "Health reporting multibranch project"
}

func (t HealthReportingProjectType) NewProject(parent string, name string) *Project {
	return &Project{
		Parent:  parent,
		Name:    name,
		JobType: FreestyleJobType{},
	}
}

func (t HealthReportingProjectType) NewFactory(p *Project) ProjectFactory {
	return NewHealthReportingJobFactory(p)
}
