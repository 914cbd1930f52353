package multibranch

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

const v1ProjectDefYaml = `
name: acme
parent: teams/payments
description: CI over every branch of acme
type: basic
job-type: freestyle
properties:
- kind: parameters
  parameters:
  - name: greeting
    default: hello
- kind: no-trigger
`

func TestV1ProjectDefParsing(t *testing.T) {
	expected := &ProjectDef{
		Name:        "acme",
		Parent:      "teams/payments",
		Description: "CI over every branch of acme",
		Type:        "basic",
		JobType:     "freestyle",
		PropertyDefs: []PropertyDef{
			NewPropertyDef(map[string]interface{}{
				"kind": "parameters",
				"parameters": []interface{}{
					map[string]interface{}{
						"name":    "greeting",
						"default": "hello",
					},
				},
			}),
			NewPropertyDef(map[string]interface{}{
				"kind": "no-trigger",
			}),
		},
	}

	actual, err := ReadProjectDefFromString(v1ProjectDefYaml)

	if err != nil {
		t.Errorf("Error: %v", err)
	}

	if diff := cmp.Diff(expected, actual, cmp.AllowUnexported(PropertyDef{})); diff != "" {
		t.Errorf("ReadProjectDefFromString() mismatch (-want +got):\n%s", diff)
	}
}

const v2ProjectDefYaml = `
name: acme
properties:
  parameters:
    parameters:
    - name: greeting
      default: hello
  no-trigger: {}
`

func TestV2ProjectDefParsing(t *testing.T) {
	actual, err := ReadProjectDefFromString(v2ProjectDefYaml)

	if err != nil {
		t.Fatalf("Error: %v", err)
	}

	if len(actual.PropertyDefs) != 2 {
		t.Fatalf("Expected two property defs, got %d", len(actual.PropertyDefs))
	}

	// The v2 form is a map, so the defs come out sorted by kind.
	if actual.PropertyDefs[0].Kind() != "no-trigger" || actual.PropertyDefs[1].Kind() != "parameters" {
		t.Errorf("Unexpected kinds: %s, %s", actual.PropertyDefs[0].Kind(), actual.PropertyDefs[1].Kind())
	}
}

func TestProjectDefRejectsPropertyWithoutKind(t *testing.T) {
	if _, err := ReadProjectDefFromString("properties:\n- name: foo\n"); err == nil {
		t.Errorf("Expected an error for a v1 property def missing `kind`")
	}
}

func TestConfigureResolvesJobTypeAndProperties(t *testing.T) {
	Register(NewParametersPropertyLoader())
	Register(NewNoTriggerPropertyLoader())

	d, err := ReadProjectDefFromString(v1ProjectDefYaml)
	if err != nil {
		t.Fatalf("Error: %v", err)
	}

	p := &Project{Name: d.Name, Parent: d.Parent}

	if err := d.Configure(p, DefaultJobTypeRegistry()); err != nil {
		t.Fatalf("Error: %v", err)
	}

	if p.JobType.Kind() != "freestyle" {
		t.Errorf("Unexpected job type: %s", p.JobType.Kind())
	}

	if len(p.BranchProperties) != 2 {
		t.Fatalf("Expected two branch properties, got %d", len(p.BranchProperties))
	}

	if _, ok := p.BranchProperties[0].(*ParameterDefinitionBranchProperty); !ok {
		t.Errorf("Unexpected property type: %T", p.BranchProperties[0])
	}

	if _, ok := p.BranchProperties[1].(*NoTriggerBranchProperty); !ok {
		t.Errorf("Unexpected property type: %T", p.BranchProperties[1])
	}
}

func TestConfigureRejectsUnknownJobType(t *testing.T) {
	d := &ProjectDef{Name: "acme", JobType: "pipeline"}

	if err := d.Configure(&Project{Name: "acme"}, DefaultJobTypeRegistry()); err == nil {
		t.Errorf("Expected an error for an unknown job type")
	}
}
