package multibranch

import (
	"fmt"

	log "github.com/sirupsen/logrus"

	"github.com/juju/errors"

	"github.com/mumoshu/multibranch/pkg/api/job"
)

// ProjectFactory materializes branch specific child jobs for a
// project. NewJob is called once per branch when the project is
// indexed by the host; DecorateJob is also run on its own when an
// existing job is reconfigured.
type ProjectFactory interface {
	NewJob(b Branch) (*job.Job, error)
	DecorateJob(j *job.Job, b Branch) (*job.Job, error)
}

type JobFactory struct {
	project *Project
}

func NewJobFactory(p *Project) *JobFactory {
	return &JobFactory{
		project: p,
	}
}

func (f *JobFactory) NewJob(b Branch) (*job.Job, error) {
	j := &job.Job{
		Name:       fmt.Sprintf("%s/%s", f.project.FullName(), b.Name),
		Branch:     b.Name,
		Type:       f.project.JobType,
		Properties: []job.Property{},
	}

	return f.DecorateJob(j, b)
}

// DecorateJob runs the decoration step: each branch property in order
// is asked for a decorator for the job type, and properties whose
// decorator is nil are skipped.
func (f *JobFactory) DecorateJob(j *job.Job, b Branch) (*job.Job, error) {
	ctx := log.WithFields(log.Fields{"project": f.project.FullName(), "job": j.Name})

	ds := job.Decorators{}

	for _, bp := range f.project.BranchProperties {
		d := bp.Decorator(j.Type)

		if d == nil {
			ctx.Debugf("property %s does not apply to the job type %s", bp.PropertyKind(), j.Type.Kind())
			continue
		}

		ds = append(ds, d)

		ctx.Debugf("property %s decorates the job", bp.PropertyKind())
	}

	j = ds.Decorate(j)

	if err := f.renderParameterDefaults(j, b); err != nil {
		return nil, errors.Annotatef(err, "failed materializing the job for branch `%s`", b.Name)
	}

	return j, nil
}

// renderParameterDefaults replaces each parameters-definition property
// with a rendered copy so that the project's own definitions are never
// mutated per branch.
func (f *JobFactory) renderParameterDefaults(j *job.Job, b Branch) error {
	for i, p := range j.Properties {
		pd, ok := p.(*ParametersDefinitionProperty)
		if !ok {
			continue
		}

		rendered := make([]*ParameterDefinition, 0, len(pd.Definitions))
		for _, d := range pd.Definitions {
			c := d.Copy()

			v, err := renderDefault(d.Name, d.Default, b)
			if err != nil {
				return errors.Annotatef(err, "failed rendering the default of parameter `%s`", d.Name)
			}
			c.Default = v

			rendered = append(rendered, c)
		}

		j.Properties[i] = NewParametersDefinitionProperty(rendered)
	}

	return nil
}
