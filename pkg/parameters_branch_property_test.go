package multibranch

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/mumoshu/multibranch/pkg/api/job"
)

func TestParametersDecoratorAppendsDefinitions(t *testing.T) {
	p := &ParameterDefinitionBranchProperty{
		ParameterDefinitions: []*ParameterDefinition{
			{Name: "greeting", Type: "string", Default: "hello"},
		},
	}

	d := p.Decorator(FreestyleJobType{})
	if d == nil {
		t.Fatalf("Expected a decorator for a parameterized job type")
	}

	decorated := d.Properties([]job.Property{})

	if len(decorated) != 1 {
		t.Fatalf("Expected exactly one property, got %d", len(decorated))
	}

	pd, ok := decorated[0].(*ParametersDefinitionProperty)
	if !ok {
		t.Fatalf("Expected a parameters-definition property, got %T", decorated[0])
	}

	if diff := cmp.Diff(p.ParameterDefinitions, pd.Definitions); diff != "" {
		t.Errorf("Properties() mismatch (-want +got):\n%s", diff)
	}
}

func TestParametersDecoratorReplacesPriorDefinitions(t *testing.T) {
	stale := NewParametersDefinitionProperty([]*ParameterDefinition{
		{Name: "stale", Type: "string"},
	})
	other := &NoTriggerProperty{}

	p := &ParameterDefinitionBranchProperty{
		ParameterDefinitions: []*ParameterDefinition{
			{Name: "fresh", Type: "string"},
		},
	}

	decorated := p.Decorator(FreestyleJobType{}).Properties([]job.Property{stale, other})

	if len(decorated) != 2 {
		t.Fatalf("Expected two properties, got %d", len(decorated))
	}

	if decorated[0] != other {
		t.Errorf("Expected the unrelated property to survive in place, got %T", decorated[0])
	}

	pd, ok := decorated[1].(*ParametersDefinitionProperty)
	if !ok {
		t.Fatalf("Expected the fresh parameters-definition property last, got %T", decorated[1])
	}

	if len(pd.Definitions) != 1 || pd.Definitions[0].Name != "fresh" {
		t.Errorf("Expected only the configured definitions, got %v", pd.Definitions)
	}
}

func TestParametersDecoratorStripsWhenEmpty(t *testing.T) {
	stale := NewParametersDefinitionProperty([]*ParameterDefinition{
		{Name: "stale", Type: "string"},
	})

	p := &ParameterDefinitionBranchProperty{}

	decorated := p.Decorator(FreestyleJobType{}).Properties([]job.Property{stale})

	if len(decorated) != 0 {
		t.Errorf("Expected no properties when no parameters are configured, got %v", decorated)
	}
}

func TestParametersPropertyDoesNotApplyToUnparameterizedTypes(t *testing.T) {
	p := &ParameterDefinitionBranchProperty{
		ParameterDefinitions: []*ParameterDefinition{
			{Name: "greeting", Type: "string"},
		},
	}

	if d := p.Decorator(ExternalJobType{}); d != nil {
		t.Errorf("Expected no decorator for an unparameterized job type, got %T", d)
	}
}

func TestParametersPropertyLoader(t *testing.T) {
	def := NewPropertyDef(map[string]interface{}{
		"kind": "parameters",
		"parameters": []interface{}{
			map[string]interface{}{
				"name":    "env",
				"type":    "choice",
				"default": "dev",
				"choices": []interface{}{"dev", "prod"},
			},
		},
	})

	bp, err := NewParametersPropertyLoader().LoadProperty(def)
	if err != nil {
		t.Fatalf("Error: %v", err)
	}

	p, ok := bp.(*ParameterDefinitionBranchProperty)
	if !ok {
		t.Fatalf("Unexpected property type: %T", bp)
	}

	expected := []*ParameterDefinition{
		{Name: "env", Type: "choice", Default: "dev", Choices: []string{"dev", "prod"}},
	}

	if diff := cmp.Diff(expected, p.ParameterDefinitions); diff != "" {
		t.Errorf("LoadProperty() mismatch (-want +got):\n%s", diff)
	}
}

func TestParametersPropertyLoaderRejectsOtherKinds(t *testing.T) {
	def := NewPropertyDef(map[string]interface{}{"kind": "no-trigger"})

	if _, err := NewParametersPropertyLoader().LoadProperty(def); err == nil {
		t.Errorf("Expected an error for a non-parameters def")
	}
}
