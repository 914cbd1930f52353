package cmd

import (
	"testing"

	"github.com/sirupsen/logrus"

	multibranch "github.com/mumoshu/multibranch/pkg"
)

const projectDefYaml = `
name: acme
type: health-reporting
properties:
- kind: parameters
  parameters:
  - name: greeting
    default: Hello {{ .branch.name }}!
- kind: no-trigger
`

func TestRunValidate(t *testing.T) {
	def, err := multibranch.ReadProjectDefFromString(projectDefYaml)
	if err != nil {
		t.Fatalf("Error: %v", err)
	}

	err = Run(def, multibranch.Opts{
		CommandPath: "acme",
		Args:        []string{"validate"},
		Log:         logrus.StandardLogger(),
	})
	if err != nil {
		t.Errorf("Error: %v", err)
	}
}

func TestRunJobs(t *testing.T) {
	def, err := multibranch.ReadProjectDefFromString(projectDefYaml)
	if err != nil {
		t.Fatalf("Error: %v", err)
	}

	err = Run(def, multibranch.Opts{
		CommandPath: "acme",
		Args:        []string{"jobs", "master=deadbeef", "--output", "message"},
		Log:         logrus.StandardLogger(),
	})
	if err != nil {
		t.Errorf("Error: %v", err)
	}
}

func TestRunRejectsUnknownJobType(t *testing.T) {
	def, err := multibranch.ReadProjectDefFromString("name: acme\njob-type: pipeline\n")
	if err != nil {
		t.Fatalf("Error: %v", err)
	}

	err = Run(def, multibranch.Opts{
		CommandPath: "acme",
		Args:        []string{"validate"},
		Log:         logrus.StandardLogger(),
	})
	if err == nil {
		t.Errorf("Expected an error for an unknown job type")
	}
}
