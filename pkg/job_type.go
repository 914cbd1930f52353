package multibranch

import (
	"sort"

	"github.com/juju/errors"

	"github.com/mumoshu/multibranch/pkg/api/job"
)

// FreestyleJobType is the default child job type. Freestyle jobs carry
// job properties and accept build parameters.
type FreestyleJobType struct {
}

func (t FreestyleJobType) Kind() string {
	return "freestyle"
}

func (t FreestyleJobType) DisplayName() string {
	return "Freestyle job"
}

func (t FreestyleJobType) Parameterized() bool {
	return true
}

// ExternalJobType records runs executed outside the orchestrator. It
// carries job properties but takes no build parameters, so
// parameter-definition branch properties skip it.
type ExternalJobType struct {
}

func (t ExternalJobType) Kind() string {
	return "external"
}

func (t ExternalJobType) DisplayName() string {
	return "External job"
}

type JobTypeRegistry struct {
	types map[string]job.Type
}

func NewJobTypeRegistry() *JobTypeRegistry {
	return &JobTypeRegistry{
		types: map[string]job.Type{},
	}
}

func (r *JobTypeRegistry) Register(t job.Type) {
	r.types[t.Kind()] = t
}

func (r *JobTypeRegistry) Find(kind string) (job.Type, error) {
	t := r.types[kind]

	if t == nil {
		return nil, errors.Errorf("No job type exists for the kind `%s`", kind)
	}

	return t, nil
}

func (r *JobTypeRegistry) AllKinds() []string {
	allKinds := []string{}
	for kind := range r.types {
		allKinds = append(allKinds, kind)
	}
	sort.Strings(allKinds)
	return allKinds
}

// DefaultJobTypeRegistry carries the job types known to the framework
// itself.
func DefaultJobTypeRegistry() *JobTypeRegistry {
	r := NewJobTypeRegistry()
	r.Register(FreestyleJobType{})
	r.Register(ExternalJobType{})
	return r
}
