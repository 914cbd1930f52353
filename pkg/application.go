package multibranch

import (
	"fmt"
	"os"
	"path"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/juju/errors"
	bunyan "github.com/mumoshu/logrus-bunyan-formatter"
	"github.com/spf13/viper"

	"github.com/mumoshu/multibranch/pkg/api/job"
)

type Application struct {
	Name        string
	ConfigFile  string
	Verbose     bool
	Output      string
	Colorize    bool
	LogToStderr bool
	Env         string

	ProjectDef   *ProjectDef
	ProjectTypes *ProjectTypeRegistry
	JobTypes     *JobTypeRegistry
	Viper        *viper.Viper
	Log          *log.Logger
}

func (p *Application) UpdateLoggingConfiguration() error {
	if p.Verbose {
		p.Log.SetLevel(log.DebugLevel)
	}

	if p.LogToStderr {
		p.Log.SetOutput(os.Stderr)
	}

	commandName := path.Base(os.Args[0])
	if p.Output == "bunyan" {
		p.Log.SetFormatter(&bunyan.Formatter{Name: commandName})
	} else if p.Output == "json" {
		p.Log.SetFormatter(&log.JSONFormatter{})
	} else if p.Output == "text" {
		if p.Colorize {
			p.Log.SetFormatter(newTextFormatter(p.Viper))
		} else {
			p.Log.SetFormatter(&log.TextFormatter{})
		}
	} else if p.Output == "message" {
		p.Log.SetFormatter(&MessageOnlyFormatter{})
	} else {
		return errors.Errorf("Unexpected output format specified: %s", p.Output)
	}

	return nil
}

// GetValueForConfigKey looks up a dotted key in the merged
// configuration: config files, environment config and MULTIBRANCH_*
// env vars all contribute through viper.
func (p Application) GetValueForConfigKey(k string) interface{} {
	ctx := p.Log.WithFields(log.Fields{"prefix": k})

	// The plain lookup keeps the value types the config declared and
	// lets a changed flag win over config files. GetStringMapString
	// would coerce a typed override to a string the schema then
	// rejects.
	if provided := p.Viper.Get(k); provided != nil && provided != "" {
		ctx.Debugf("viper.Get(\"%s\") #=> %v", k, provided)
		return provided
	}

	lastIndex := strings.LastIndex(k, ".")

	if lastIndex != -1 {
		a := []rune(k)
		k1 := string(a[:lastIndex])
		k2 := string(a[lastIndex+1:])

		ctx.Debugf("viper.Get(%v): %v", k1, p.Viper.Get(k1))

		if p.Viper.Get(k1) != nil {
			values := p.Viper.Sub(k1)

			if values != nil && values.Get(k2) != nil {
				provided := values.Get(k2)
				ctx.Debugf("app fetched %s[%s]: %v", k1, k2, provided)
				return provided
			}
		}
	}

	return nil
}

// Project binds the loaded project def against the registered project
// types, the way the host would reconstruct the project from its
// persisted configuration.
func (p *Application) Project() (*Project, ProjectFactory, error) {
	d := p.ProjectDef
	if d == nil {
		return nil, nil, errors.Errorf("no project def loaded")
	}

	kind := d.Type
	if kind == "" {
		kind = "basic"
	}

	t, err := p.ProjectTypes.Find(kind)
	if err != nil {
		return nil, nil, errors.Annotatef(err, "app failed binding project `%s`", d.Name)
	}

	proj := t.NewProject(d.Parent, d.Name)

	if err := d.Configure(proj, p.JobTypes); err != nil {
		return nil, nil, errors.Annotatef(err, "app failed binding project `%s`", d.Name)
	}

	return proj, t.NewFactory(proj), nil
}

// MaterializeJobs materializes one decorated child job per branch and
// applies configured parameter value overrides on top of the rendered
// defaults.
func (p *Application) MaterializeJobs(branches []Branch) ([]*job.Job, ProjectFactory, error) {
	_, factory, err := p.Project()
	if err != nil {
		return nil, nil, errors.Trace(err)
	}

	jobs := make([]*job.Job, 0, len(branches))

	for _, b := range branches {
		j, err := factory.NewJob(b)
		if err != nil {
			return nil, nil, errors.Annotatef(err, "app failed materializing the job for branch `%s`", b.Name)
		}

		if err := p.applyParameterOverrides(j); err != nil {
			return nil, nil, errors.Annotatef(err, "app failed reconfiguring the job for branch `%s`", b.Name)
		}

		if r, ok := p.GetValueForConfigKey(fmt.Sprintf("results.%s", b.Name)).(string); ok {
			j.LastResult = job.Result(r)
		}

		jobs = append(jobs, j)
	}

	return jobs, factory, nil
}

// applyParameterOverrides overrides rendered parameter defaults from
// the configuration: `branches.<branch>.<param>` wins over
// `parameters.<param>`. The final values are validated against the
// schema generated from the definitions.
func (p *Application) applyParameterOverrides(j *job.Job) error {
	for _, prop := range j.Properties {
		pd, ok := prop.(*ParametersDefinitionProperty)
		if !ok {
			continue
		}

		values := map[string]interface{}{}

		for _, d := range pd.Definitions {
			provided := p.GetValueForConfigKey(fmt.Sprintf("branches.%s.%s", j.Branch, d.Name))

			if provided == nil || provided == "" {
				provided = p.GetValueForConfigKey(fmt.Sprintf("parameters.%s", d.Name))
			}

			// Flags bound to viper report "" when left unset.
			if provided != nil && provided != "" {
				d.Default = provided
			}

			if d.Default != nil {
				values[d.Name] = d.Default
			}
		}

		if err := ValidateParameterValues(pd.Definitions, values); err != nil {
			return errors.Trace(err)
		}
	}

	return nil
}
