package multibranch

import (
	"fmt"

	"github.com/mumoshu/multibranch/pkg/api/job"
)

// HealthReport summarizes how healthy a multibranch project is, based
// on the last recorded results of its child jobs.
type HealthReport struct {
	Score       int    `yaml:"score"`
	Description string `yaml:"description"`
}

// HealthReportingJobFactory materializes jobs like JobFactory and
// additionally aggregates a health report over them.
type HealthReportingJobFactory struct {
	*JobFactory
}

func NewHealthReportingJobFactory(p *Project) *HealthReportingJobFactory {
	return &HealthReportingJobFactory{
		JobFactory: NewJobFactory(p),
	}
}

func (f *HealthReportingJobFactory) Health(jobs []*job.Job) HealthReport {
	completed := 0
	succeeded := 0

	for _, j := range jobs {
		if j.LastResult == job.ResultUnknown {
			continue
		}
		completed++
		if j.LastResult == job.ResultSuccess {
			succeeded++
		}
	}

	if completed == 0 {
		return HealthReport{
			Score:       100,
			Description: "No completed builds yet",
		}
	}

	return HealthReport{
		Score:       succeeded * 100 / completed,
		Description: fmt.Sprintf("%d of %d branch jobs succeeded", succeeded, completed),
	}
}
