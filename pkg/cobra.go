package multibranch

import (
	"fmt"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/juju/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"gopkg.in/yaml.v2"

	"github.com/mumoshu/multibranch/pkg/api/job"
	"github.com/mumoshu/multibranch/pkg/util/stringutil"
)

type CobraAdapter struct {
	app *Application

	jobsCmd   *cobra.Command
	healthCmd *cobra.Command
}

func NewCobraAdapter(app *Application) *CobraAdapter {
	return &CobraAdapter{
		app: app,
	}
}

func (a *CobraAdapter) GenerateCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   a.app.Name,
		Short: "Materialize and inspect branch specific child jobs",
	}

	a.jobsCmd = a.generateJobsCommand()
	a.healthCmd = a.generateHealthCommand()

	rootCmd.AddCommand(
		a.jobsCmd,
		a.healthCmd,
		a.generateValidateCommand(),
		a.generateTypesCommand(),
	)

	return rootCmd
}

func (a *CobraAdapter) generateJobsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "jobs BRANCH [BRANCH ...]",
		Short: "Materialize the decorated child jobs for the given branches",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			jobs, _, err := a.app.MaterializeJobs(branchesFromArgs(args))
			if err != nil {
				return err
			}

			return printYAML(jobViews(jobs))
		},
	}
}

func (a *CobraAdapter) generateHealthCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "health BRANCH [BRANCH ...]",
		Short: "Materialize the child jobs and report aggregate project health",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			jobs, factory, err := a.app.MaterializeJobs(branchesFromArgs(args))
			if err != nil {
				return err
			}

			reporting, ok := factory.(*HealthReportingJobFactory)
			if !ok {
				return errors.Errorf("the project type `%s` does not report health", a.app.ProjectDef.Type)
			}

			return printYAML(reporting.Health(jobs))
		},
	}
}

func (a *CobraAdapter) generateValidateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Bind and validate the project definition",
		RunE: func(cmd *cobra.Command, args []string) error {
			proj, _, err := a.app.Project()
			if err != nil {
				return err
			}

			a.app.Log.WithFields(log.Fields{"app": a.app.Name, "project": proj.FullName()}).
				Infof("project is valid: job type %s, %d branch properties", proj.JobType.Kind(), len(proj.BranchProperties))
			return nil
		},
	}
}

func (a *CobraAdapter) generateTypesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "types",
		Short: "List the registered project and job types",
		RunE: func(cmd *cobra.Command, args []string) error {
			projectTypes := []map[string]string{}
			for _, t := range a.app.ProjectTypes.All() {
				projectTypes = append(projectTypes, map[string]string{
					"kind":         t.Kind(),
					"display-name": t.DisplayName(),
				})
			}

			return printYAML(map[string]interface{}{
				"project-types": projectTypes,
				"job-types":     a.app.JobTypes.AllKinds(),
			})
		},
	}
}

// GenerateParameterFlags derives one flag per configured parameter
// definition so that values can be provided on the command line as
// well as via config files and env vars. Each flag is bound to the
// viper key `parameters.<name>` the override step reads.
func (a *CobraAdapter) GenerateParameterFlags() {
	proj, _, err := a.app.Project()
	if err != nil {
		// A def the loaders reject still gets a CLI, so that
		// `validate` can explain the problem.
		a.app.Log.Debugf("skipping parameter flag generation: %v", err)
		return
	}

	for _, bp := range proj.BranchProperties {
		pd, ok := bp.(*ParameterDefinitionBranchProperty)
		if !ok {
			continue
		}

		for _, d := range pd.ParameterDefinitions {
			var description string
			if d.Description != "" {
				description = d.Description
			} else {
				description = d.Name
			}

			flagName := stringutil.ToArgumentName(d.Name)
			configKey := fmt.Sprintf("parameters.%s", d.Name)
			envName := stringutil.ToEnvironmentName(fmt.Sprintf("%s.%s", a.app.Name, configKey))
			description = fmt.Sprintf("%s (env %s)", description, envName)

			for _, cmd := range []*cobra.Command{a.jobsCmd, a.healthCmd} {
				var flagset *pflag.FlagSet = cmd.Flags()
				flagset.StringP(flagName, "", "", description)
				log.Debugf("Binding flag --%s of the command %s to the config key %s", flagName, cmd.Name(), configKey)
				a.app.Viper.BindPFlag(configKey, flagset.Lookup(flagName))
			}
		}
	}
}

func branchesFromArgs(args []string) []Branch {
	branches := make([]Branch, 0, len(args))
	for _, arg := range args {
		parts := strings.SplitN(arg, "=", 2)
		b := Branch{Name: parts[0]}
		if len(parts) == 2 {
			b.Head = parts[1]
		}
		branches = append(branches, b)
	}
	return branches
}

type propertyView struct {
	Kind   string      `yaml:"kind"`
	Config interface{} `yaml:"config,omitempty"`
}

type jobView struct {
	Name       string         `yaml:"name"`
	Branch     string         `yaml:"branch"`
	Type       string         `yaml:"type"`
	LastResult string         `yaml:"last-result,omitempty"`
	Properties []propertyView `yaml:"properties"`
}

func jobViews(jobs []*job.Job) []jobView {
	views := make([]jobView, 0, len(jobs))
	for _, j := range jobs {
		v := jobView{
			Name:       j.Name,
			Branch:     j.Branch,
			Type:       j.Type.Kind(),
			LastResult: string(j.LastResult),
			Properties: []propertyView{},
		}
		for _, p := range j.Properties {
			v.Properties = append(v.Properties, propertyView{
				Kind:   p.PropertyKind(),
				Config: p,
			})
		}
		views = append(views, v)
	}
	return views
}

func printYAML(v interface{}) error {
	bytes, err := yaml.Marshal(v)
	if err != nil {
		return errors.Trace(err)
	}
	fmt.Print(string(bytes))
	return nil
}
