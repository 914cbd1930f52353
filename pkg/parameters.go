package multibranch

// ParameterDefinition declares one build parameter a child job accepts:
// a name, a value type and an optional default. The default may be a Go
// template rendered against the branch when the job is materialized.
type ParameterDefinition struct {
	Name        string      `yaml:"name,omitempty" mapstructure:"name"`
	Type        string      `yaml:"type,omitempty" mapstructure:"type"`
	Default     interface{} `yaml:"default,omitempty" mapstructure:"default"`
	Description string      `yaml:"description,omitempty" mapstructure:"description"`
	Choices     []string    `yaml:"choices,omitempty" mapstructure:"choices"`
}

func (d *ParameterDefinition) Copy() *ParameterDefinition {
	c := *d
	if d.Choices != nil {
		c.Choices = append([]string{}, d.Choices...)
	}
	return &c
}

// ParametersDefinitionProperty is the job property holding the ordered
// parameter definitions of a child job. A job carries at most one of
// these after decoration.
type ParametersDefinitionProperty struct {
	Definitions []*ParameterDefinition `yaml:"definitions,omitempty"`
}

func NewParametersDefinitionProperty(definitions []*ParameterDefinition) *ParametersDefinitionProperty {
	return &ParametersDefinitionProperty{
		Definitions: definitions,
	}
}

func (p *ParametersDefinitionProperty) PropertyKind() string {
	return "parameters-definition"
}
