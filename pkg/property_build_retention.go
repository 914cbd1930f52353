package multibranch

import (
	"github.com/juju/errors"
	"github.com/mitchellh/mapstructure"

	"github.com/mumoshu/multibranch/pkg/api/job"
)

// BuildRetentionProperty is the log-rotation configuration attached to
// a child job. Zero values mean "keep forever"; enforcement is the
// host's business.
type BuildRetentionProperty struct {
	DaysToKeep int `yaml:"days-to-keep,omitempty"`
	NumToKeep  int `yaml:"num-to-keep,omitempty"`
}

func (p *BuildRetentionProperty) PropertyKind() string {
	return "build-retention"
}

// BuildRetentionBranchProperty configures build retention on every
// child job of the branch.
type BuildRetentionBranchProperty struct {
	DaysToKeep int `yaml:"days-to-keep,omitempty" mapstructure:"days-to-keep"`
	NumToKeep  int `yaml:"num-to-keep,omitempty" mapstructure:"num-to-keep"`
}

func (p *BuildRetentionBranchProperty) PropertyKind() string {
	return "build-retention"
}

func (p *BuildRetentionBranchProperty) Decorator(t job.Type) job.Decorator {
	return &buildRetentionDecorator{
		daysToKeep: p.DaysToKeep,
		numToKeep:  p.NumToKeep,
	}
}

type buildRetentionDecorator struct {
	daysToKeep int
	numToKeep  int
}

func (d *buildRetentionDecorator) Properties(properties []job.Property) []job.Property {
	result := make([]job.Property, 0, len(properties)+1)
	for _, p := range properties {
		if _, ok := p.(*BuildRetentionProperty); ok {
			continue
		}
		result = append(result, p)
	}
	return append(result, &BuildRetentionProperty{
		DaysToKeep: d.daysToKeep,
		NumToKeep:  d.numToKeep,
	})
}

func (d *buildRetentionDecorator) Job(j *job.Job) *job.Job {
	return j
}

type buildRetentionPropertyLoader struct {
}

func NewBuildRetentionPropertyLoader() PropertyLoader {
	return &buildRetentionPropertyLoader{
	}
}

func (l *buildRetentionPropertyLoader) LoadProperty(def PropertyDef) (BranchProperty, error) {
	if def.Kind() != "build-retention" {
		return nil, wrongKind(def.Kind(), "build-retention")
	}

	p := &BuildRetentionBranchProperty{}

	if err := mapstructure.Decode(def.Raw(), p); err != nil {
		return nil, errors.Annotatef(err, "failed binding the build-retention property def")
	}

	if p.DaysToKeep < 0 || p.NumToKeep < 0 {
		return nil, errors.Errorf("build-retention does not accept negative values: days-to-keep=%d, num-to-keep=%d", p.DaysToKeep, p.NumToKeep)
	}

	return p, nil
}
