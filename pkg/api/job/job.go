package job

// Result is the outcome of the last completed build recorded on a job.
type Result string

const (
	ResultUnknown Result = ""
	ResultSuccess Result = "success"
	ResultFailure Result = "failure"
)

// Job is a branch specific child job materialized by a multibranch
// project. The decoration machinery treats its property list as an
// opaque, ordered set.
type Job struct {
	Name       string
	Branch     string
	Type       Type
	Properties []Property
	LastResult Result
}

// Property is a piece of configuration attached to a job. Concrete
// property types are opaque to the decoration machinery.
type Property interface {
	PropertyKind() string
}

// Type is a job-class token describing the kind of child job being
// materialized.
type Type interface {
	Kind() string
	DisplayName() string
}

// ParameterizedType marks a job type whose jobs accept build
// parameters. Checking for it is how a branch property decides whether
// parameter definitions apply to the child job type.
type ParameterizedType interface {
	Type
	Parameterized() bool
}
