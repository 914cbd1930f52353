package multibranch

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/mumoshu/multibranch/pkg/api/job"
)

func testProject() *Project {
	return &Project{
		Parent:  "teams/payments",
		Name:    "acme",
		JobType: FreestyleJobType{},
		BranchProperties: []BranchProperty{
			&ParameterDefinitionBranchProperty{
				ParameterDefinitions: []*ParameterDefinition{
					{Name: "greeting", Type: "string", Default: "Hello {{ .branch.name }}!"},
				},
			},
			&NoTriggerBranchProperty{},
		},
	}
}

func TestNewJobDecoratesPerBranch(t *testing.T) {
	f := NewJobFactory(testProject())

	j, err := f.NewJob(Branch{Name: "master", Head: "deadbeef"})
	if err != nil {
		t.Fatalf("Error: %v", err)
	}

	if j.Name != "teams/payments/acme/master" {
		t.Errorf("Unexpected job name: %s", j.Name)
	}

	if len(j.Properties) != 2 {
		t.Fatalf("Expected two job properties, got %d", len(j.Properties))
	}

	pd, ok := j.Properties[0].(*ParametersDefinitionProperty)
	if !ok {
		t.Fatalf("Unexpected property type: %T", j.Properties[0])
	}

	expected := []*ParameterDefinition{
		{Name: "greeting", Type: "string", Default: "Hello master!"},
	}

	if diff := cmp.Diff(expected, pd.Definitions); diff != "" {
		t.Errorf("NewJob() mismatch (-want +got):\n%s", diff)
	}

	if _, ok := j.Properties[1].(*NoTriggerProperty); !ok {
		t.Errorf("Unexpected property type: %T", j.Properties[1])
	}
}

func TestDecorateJobIsIdempotent(t *testing.T) {
	f := NewJobFactory(testProject())
	b := Branch{Name: "master", Head: "deadbeef"}

	j, err := f.NewJob(b)
	if err != nil {
		t.Fatalf("Error: %v", err)
	}

	// Reconfiguring an existing job must not pile up properties.
	j, err = f.DecorateJob(j, b)
	if err != nil {
		t.Fatalf("Error: %v", err)
	}

	if len(j.Properties) != 2 {
		t.Errorf("Expected two job properties after re-decoration, got %d", len(j.Properties))
	}
}

func TestDecorationDoesNotMutateProjectDefinitions(t *testing.T) {
	p := testProject()
	f := NewJobFactory(p)

	if _, err := f.NewJob(Branch{Name: "master", Head: "deadbeef"}); err != nil {
		t.Fatalf("Error: %v", err)
	}

	d := p.BranchProperties[0].(*ParameterDefinitionBranchProperty).ParameterDefinitions[0]
	if d.Default != "Hello {{ .branch.name }}!" {
		t.Errorf("The project's own definition was mutated: %v", d.Default)
	}
}

func TestInapplicablePropertyIsSkipped(t *testing.T) {
	p := &Project{
		Name:    "acme",
		JobType: ExternalJobType{},
		BranchProperties: []BranchProperty{
			&ParameterDefinitionBranchProperty{
				ParameterDefinitions: []*ParameterDefinition{
					{Name: "greeting", Type: "string", Default: "hello"},
				},
			},
		},
	}

	j, err := NewJobFactory(p).NewJob(Branch{Name: "master", Head: "deadbeef"})
	if err != nil {
		t.Fatalf("Error: %v", err)
	}

	if len(j.Properties) != 0 {
		t.Errorf("Expected no properties on an unparameterized job, got %v", j.Properties)
	}
}

func TestDecorateJobKeepsForeignProperties(t *testing.T) {
	f := NewJobFactory(testProject())
	b := Branch{Name: "master", Head: "deadbeef"}

	j := &job.Job{
		Name:       "teams/payments/acme/master",
		Branch:     b.Name,
		Type:       FreestyleJobType{},
		Properties: []job.Property{&BuildRetentionProperty{NumToKeep: 10}},
	}

	j, err := f.DecorateJob(j, b)
	if err != nil {
		t.Fatalf("Error: %v", err)
	}

	if len(j.Properties) != 3 {
		t.Fatalf("Expected three job properties, got %d", len(j.Properties))
	}

	if _, ok := j.Properties[0].(*BuildRetentionProperty); !ok {
		t.Errorf("Expected the foreign property to survive in place, got %T", j.Properties[0])
	}
}
