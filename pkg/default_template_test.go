package multibranch

import (
	"testing"
)

func TestRenderDefault(t *testing.T) {
	b := Branch{Name: "master", Head: "deadbeef"}

	v, err := renderDefault("greeting", "Hello {{ .branch.name }} at {{ .branch.head }}!", b)
	if err != nil {
		t.Fatalf("Error: %v", err)
	}
	if v != "Hello master at deadbeef!" {
		t.Errorf("Unexpected rendering: %v", v)
	}

	v, err = renderDefault("tag", "{{ .branch.name | upper }}", b)
	if err != nil {
		t.Fatalf("Error: %v", err)
	}
	if v != "MASTER" {
		t.Errorf("Unexpected rendering: %v", v)
	}
}

func TestRenderDefaultPassesThroughNonStrings(t *testing.T) {
	v, err := renderDefault("count", 3, Branch{Name: "master"})
	if err != nil {
		t.Fatalf("Error: %v", err)
	}
	if v != 3 {
		t.Errorf("Unexpected value: %v", v)
	}
}

func TestRenderDefaultRejectsUnknownVars(t *testing.T) {
	if _, err := renderDefault("greeting", "{{ .branch.nam }}", Branch{Name: "master"}); err == nil {
		t.Errorf("Expected an error for an unknown variable")
	}
}
