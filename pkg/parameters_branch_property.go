package multibranch

import (
	"github.com/juju/errors"
	"github.com/mitchellh/mapstructure"

	"github.com/mumoshu/multibranch/pkg/api/job"
)

// ParameterDefinitionBranchProperty decorates each branch specific
// child job with the configured parameter definitions.
//
// The definition list may be nil or empty, meaning no parameters: the
// decorator then only strips whatever parameters-definition property
// the job carried before.
type ParameterDefinitionBranchProperty struct {
	ParameterDefinitions []*ParameterDefinition `yaml:"parameters,omitempty" mapstructure:"parameters"`
}

func (p *ParameterDefinitionBranchProperty) PropertyKind() string {
	return "parameters"
}

// isApplicable tests whether the branch specific child job type can be
// parameterized. Every job type carries job properties, so the only
// criterion is the parameterized capability.
func (p *ParameterDefinitionBranchProperty) isApplicable(t job.Type) bool {
	pt, ok := t.(job.ParameterizedType)
	return ok && pt.Parameterized()
}

func (p *ParameterDefinitionBranchProperty) Decorator(t job.Type) job.Decorator {
	if !p.isApplicable(t) {
		return nil
	}
	return &parametersDecorator{
		definitions: p.ParameterDefinitions,
	}
}

type parametersDecorator struct {
	definitions []*ParameterDefinition
}

// Properties strips every pre-existing parameters-definition property
// and appends a fresh one when the configured list is non-empty, so the
// result carries at most one and it reflects the current configuration.
func (d *parametersDecorator) Properties(properties []job.Property) []job.Property {
	result := make([]job.Property, 0, len(properties)+1)
	for _, p := range properties {
		if _, ok := p.(*ParametersDefinitionProperty); ok {
			continue
		}
		result = append(result, p)
	}
	if len(d.definitions) > 0 {
		result = append(result, NewParametersDefinitionProperty(d.definitions))
	}
	return result
}

func (d *parametersDecorator) Job(j *job.Job) *job.Job {
	return j
}

type parametersPropertyLoader struct {
}

func NewParametersPropertyLoader() PropertyLoader {
	return &parametersPropertyLoader{
	}
}

func (l *parametersPropertyLoader) LoadProperty(def PropertyDef) (BranchProperty, error) {
	if def.Kind() != "parameters" {
		return nil, wrongKind(def.Kind(), "parameters")
	}

	p := &ParameterDefinitionBranchProperty{}

	if err := mapstructure.Decode(def.Raw(), p); err != nil {
		return nil, errors.Annotatef(err, "failed binding the parameters property def")
	}

	if err := LintParameterDefinitions(p.ParameterDefinitions); err != nil {
		return nil, errors.Annotatef(err, "invalid parameters property def")
	}

	return p, nil
}
