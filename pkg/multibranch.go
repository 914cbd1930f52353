package multibranch

import (
	"fmt"
	"path"
	"strings"

	"github.com/juju/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mumoshu/multibranch/pkg/cli/env"
	"github.com/mumoshu/multibranch/pkg/util/fileutil"
)

type CobraApp struct {
	viperCfg *viper.Viper
	cobraCmd *cobra.Command

	App *Application
}

func (a *CobraApp) Run(args []string) error {
	a.cobraCmd.SetArgs(args)
	return a.cobraCmd.Execute()
}

type Opts struct {
	CommandPath string
	Args        []string
	Log         *logrus.Logger

	ExtraCmds []*cobra.Command
}

// Init binds the loaded project def into a runnable CLI app: the
// project and job type registries, the merged configuration and the
// generated commands.
func Init(projectDef *ProjectDef, opts ...Opts) (*CobraApp, error) {
	var o Opts
	if len(opts) == 0 {
		o = Opts{Args: []string{}}
	} else if len(opts) == 1 {
		o = opts[0]
	} else {
		return nil, fmt.Errorf("unexpected number of opts: %d", len(opts))
	}
	log := o.Log
	if log == nil {
		log = logrus.StandardLogger()
	}

	commandName := projectDef.Name
	if commandName == "" {
		commandName = path.Base(o.CommandPath)
	}
	if commandName == "" || commandName == "." {
		commandName = "multibranch"
	}

	envFromFile, err := env.New(commandName).GetOrDefault("dev")
	if err != nil {
		return nil, errors.Trace(err)
	}

	v := viper.GetViper()

	p := &Application{
		Name:         commandName,
		Verbose:      false,
		Output:       "text",
		Colorize:     true,
		Env:          envFromFile,
		ProjectDef:   projectDef,
		ProjectTypes: DefaultProjectTypeRegistry(),
		JobTypes:     DefaultJobTypeRegistry(),
		Viper:        v,
		Log:          log,
	}

	adapter := NewCobraAdapter(p)

	rootCmd := adapter.GenerateCommand()

	if len(o.ExtraCmds) > 0 {
		rootCmd.AddCommand(o.ExtraCmds...)
	}

	rootCmd.PersistentPostRunE = func(_ *cobra.Command, _ []string) error {
		return p.UpdateLoggingConfiguration()
	}

	adapter.GenerateParameterFlags()

	rootCmd.PersistentFlags().BoolVarP(&(p.Verbose), "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().StringVarP(&(p.Output), "output", "o", "text", "Output format. One of: json|text|bunyan|message")
	rootCmd.PersistentFlags().BoolVarP(&(p.Colorize), "color", "C", true, "Colorize output")
	rootCmd.PersistentFlags().StringVarP(&(p.ConfigFile), "config-file", "c", "", "Path to config file")
	rootCmd.PersistentFlags().BoolVar(&(p.LogToStderr), "logtostderr", true, "write log messages to stderr")

	// Set default log level.
	v.SetDefault("log_level", "info")

	// Set default colors for the logs.
	v.SetDefault("log_color_panic", "red")
	v.SetDefault("log_color_fatal", "red")
	v.SetDefault("log_color_error", "red")
	v.SetDefault("log_color_warn", "red")
	v.SetDefault("log_color_info", "cyan")
	v.SetDefault("log_color_debug", "dark_gray")

	rootCmd.ParseFlags(o.Args)

	if p.ConfigFile != "" {
		v.SetConfigFile(p.ConfigFile)

		if err := v.MergeInConfig(); err != nil {
			return nil, err
		}
	} else {
		v.SetConfigType("yaml")
		v.AddConfigPath(".")

		v.SetConfigName(commandName)
		commonConfigFile := fmt.Sprintf("%s.yaml", commandName)
		commonConfigMsg := fmt.Sprintf("loading config file %s...", commonConfigFile)
		if fileutil.Exists(commonConfigFile) {
			if err := v.MergeInConfig(); err != nil {
				log.Errorf("%serror", commonConfigMsg)
				return nil, err
			}
			log.Debugf("%sdone", commonConfigMsg)
		} else {
			log.Debugf("%smissing", commonConfigMsg)
		}
	}

	env.SetAppName(commandName)
	envMsg := fmt.Sprintf("loading env file %s...", env.GetPath())
	envName, err := env.Get()
	if err != nil {
		log.Debugf("%smissing", envMsg)
	} else {
		log.Debugf("%sdone", envMsg)

		envConfigName := fmt.Sprintf("config/environments/%s", envName)
		envConfigFile := fmt.Sprintf("%s.yaml", envConfigName)
		envConfigMsg := fmt.Sprintf("loading config file %s...", envConfigFile)
		v.SetConfigName(envConfigName)
		if fileutil.Exists(envConfigFile) {
			if err := v.MergeInConfig(); err != nil {
				log.Errorf("%serror", envConfigMsg)
				return nil, err
			}
			log.Debugf("%sdone", envConfigMsg)
		} else {
			log.Debugf("%smissing", envConfigMsg)
		}
	}

	v.SetEnvPrefix(strings.ToUpper(commandName))
	v.AutomaticEnv()

	replacer := strings.NewReplacer(".", "_", "-", "_")
	v.SetEnvKeyReplacer(replacer)

	// Respect the log level and format specified via command-line
	// options before any command is run.
	if err := p.UpdateLoggingConfiguration(); err != nil {
		return nil, err
	}

	return &CobraApp{
		viperCfg: v,
		cobraCmd: rootCmd,
		App:      p,
	}, nil
}
