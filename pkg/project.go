package multibranch

import (
	"fmt"

	"github.com/mumoshu/multibranch/pkg/api/job"
)

// Project is a multibranch project: the configuration entity owning
// the branch properties applied to every child job it materializes.
type Project struct {
	// Parent is the path of the item group the project lives in, e.g.
	// the folder path in the host orchestrator. May be empty.
	Parent string
	Name   string

	// JobType is the type of the branch specific child jobs.
	JobType job.Type

	// BranchProperties decorate child jobs in order at materialization
	// and reconfiguration time.
	BranchProperties []BranchProperty
}

func (p *Project) FullName() string {
	if p.Parent == "" {
		return p.Name
	}
	return fmt.Sprintf("%s/%s", p.Parent, p.Name)
}
