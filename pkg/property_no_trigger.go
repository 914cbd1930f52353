package multibranch

import (
	"github.com/mumoshu/multibranch/pkg/api/job"
)

// NoTriggerProperty suppresses automatic build triggering for the job
// it is attached to. The host scheduler reads it; this library only
// attaches it.
type NoTriggerProperty struct {
}

func (p *NoTriggerProperty) PropertyKind() string {
	return "no-trigger"
}

// NoTriggerBranchProperty marks every child job of the branch as not
// automatically triggered. It applies to all job types.
type NoTriggerBranchProperty struct {
}

func (p *NoTriggerBranchProperty) PropertyKind() string {
	return "no-trigger"
}

func (p *NoTriggerBranchProperty) Decorator(t job.Type) job.Decorator {
	return &noTriggerDecorator{}
}

type noTriggerDecorator struct {
}

func (d *noTriggerDecorator) Properties(properties []job.Property) []job.Property {
	result := make([]job.Property, 0, len(properties)+1)
	for _, p := range properties {
		if _, ok := p.(*NoTriggerProperty); ok {
			continue
		}
		result = append(result, p)
	}
	return append(result, &NoTriggerProperty{})
}

func (d *noTriggerDecorator) Job(j *job.Job) *job.Job {
	return j
}

type noTriggerPropertyLoader struct {
}

func NewNoTriggerPropertyLoader() PropertyLoader {
	return &noTriggerPropertyLoader{
	}
}

func (l *noTriggerPropertyLoader) LoadProperty(def PropertyDef) (BranchProperty, error) {
	if def.Kind() != "no-trigger" {
		return nil, wrongKind(def.Kind(), "no-trigger")
	}

	return &NoTriggerBranchProperty{}, nil
}
