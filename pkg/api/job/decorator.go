package job

// Decorator transforms a job at materialization or reconfiguration
// time. Implementations must be pure: Properties returns a new slice
// and leaves its input untouched, Job returns the replacement job.
type Decorator interface {
	Properties(properties []Property) []Property
	Job(j *Job) *Job
}

// Decorators applies each decorator in order.
type Decorators []Decorator

func (ds Decorators) Decorate(j *Job) *Job {
	for _, d := range ds {
		j.Properties = d.Properties(j.Properties)
		if replaced := d.Job(j); replaced != nil {
			j = replaced
		}
	}
	return j
}
