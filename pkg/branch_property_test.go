package multibranch

import (
	"reflect"
	"strings"
	"testing"

	"github.com/davecgh/go-spew/spew"
	"github.com/kr/pretty"
)

func TestLoadPropertyTriesEveryLoader(t *testing.T) {
	Register(NewParametersPropertyLoader())
	Register(NewNoTriggerPropertyLoader())
	Register(NewBuildRetentionPropertyLoader())

	def := NewPropertyDef(map[string]interface{}{
		"kind":        "build-retention",
		"num-to-keep": 10,
	})

	actual, err := LoadProperty(def)
	if err != nil {
		t.Fatalf("Error: %v", err)
	}

	expected := &BuildRetentionBranchProperty{NumToKeep: 10}

	if !reflect.DeepEqual(actual, expected) {
		t.Errorf("actual value %s doesn't match expected value %s\ndiff=%s", spew.Sdump(actual), spew.Sdump(expected), strings.Join(pretty.Diff(actual, expected), "\n"))
	}
}

func TestLoadPropertyFailsForUnknownKinds(t *testing.T) {
	Register(NewParametersPropertyLoader())

	def := NewPropertyDef(map[string]interface{}{"kind": "folder-icon"})

	if _, err := LoadProperty(def); err == nil {
		t.Errorf("Expected an error for a kind no loader owns")
	}
}

func TestLoadPropertyReportsTheOwningLoaderError(t *testing.T) {
	Register(NewParametersPropertyLoader())
	Register(NewNoTriggerPropertyLoader())
	Register(NewBuildRetentionPropertyLoader())

	def := NewPropertyDef(map[string]interface{}{
		"kind": "parameters",
		"parameters": []interface{}{
			map[string]interface{}{"name": "env"},
			map[string]interface{}{"name": "env"},
		},
	})

	_, err := LoadProperty(def)
	if err == nil {
		t.Fatalf("Expected an error for a duplicate parameter name")
	}

	// The lint failure from the owning loader must not be shadowed by
	// the other loaders' kind mismatches.
	if !strings.Contains(err.Error(), "duplicate name `env`") {
		t.Errorf("Expected the lint failure to be reported, got: %v", err)
	}
}

func TestLoadPropertyRejectsNegativeRetention(t *testing.T) {
	Register(NewBuildRetentionPropertyLoader())

	def := NewPropertyDef(map[string]interface{}{
		"kind":         "build-retention",
		"days-to-keep": -1,
	})

	if _, err := LoadProperty(def); err == nil {
		t.Errorf("Expected an error for negative retention values")
	}
}
