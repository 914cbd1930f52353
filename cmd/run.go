package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	multibranch "github.com/mumoshu/multibranch/pkg"
	"github.com/mumoshu/multibranch/pkg/get"
	"github.com/mumoshu/multibranch/pkg/load"
	"github.com/mumoshu/multibranch/pkg/util/fileutil"
)

func init() {
	logrus.SetOutput(os.Stdout)

	verbose := false
	logtostderr := false
	for _, e := range os.Environ() {
		if strings.Contains(e, "VERBOSE=") {
			verbose = true
			break
		}
		if strings.Contains(e, "LOGTOSTDERR=") {
			logtostderr = true
			break
		}
	}

	if verbose {
		logrus.SetLevel(logrus.DebugLevel)
	}

	if logtostderr {
		logrus.SetOutput(os.Stderr)
	}

	multibranch.Register(multibranch.NewParametersPropertyLoader())
	multibranch.Register(multibranch.NewNoTriggerPropertyLoader())
	multibranch.Register(multibranch.NewBuildRetentionPropertyLoader())
}

func Run(projectDef *multibranch.ProjectDef, opts multibranch.Opts) error {
	if opts.Log == nil {
		panic("log must be set")
	}
	if opts.CommandPath == "" {
		panic("command path must be set")
	}
	if opts.Args == nil {
		panic("args must be set")
	}

	cobraApp, err := command(projectDef, opts)
	if err != nil {
		return err
	}

	return cobraApp.Run(opts.Args)
}

func command(projectDef *multibranch.ProjectDef, opts multibranch.Opts) (*multibranch.CobraApp, error) {
	if opts.Log == nil {
		opts.Log = logrus.StandardLogger()
	}
	if opts.ExtraCmds == nil || len(opts.ExtraCmds) == 0 {
		opts.ExtraCmds = []*cobra.Command{
			EnvCmd,
			InitCmd,
			VersionCmd(logrus.StandardLogger()),
		}
	}

	return multibranch.Init(projectDef, opts)
}

func MustRun() {
	opts, err := RunE()
	if err != nil {
		HandleErrorAndExit(err, opts)
	}
}

func RunE() (multibranch.Opts, error) {
	var projectDef *multibranch.ProjectDef
	var args []string

	var cmdName string
	var cmdPath string
	var deffile string

	if len(os.Args) > 1 && !strings.HasPrefix(os.Args[1], "-") && fileutil.Exists(os.Args[1]) {
		deffile = os.Args[1]
		args = os.Args[2:]
		cmdPath = deffile
		cmdName = filepath.Base(cmdPath)
	} else {
		cmdPath = os.Args[0]
		cmdName = filepath.Base(cmdPath)
		deffile = fmt.Sprintf("%s.definition.yaml", cmdName)
		args = os.Args[1:]
	}

	opts := multibranch.Opts{
		CommandPath: cmdPath,
		Args:        args,
		Log:         logrus.StandardLogger(),
	}

	additionalArgs, err := multibranch.ArgsFromEnvVars()
	if err != nil {
		return opts, err
	}
	args = append(args, additionalArgs...)

	opts.Args = args

	if f := os.Getenv("MULTIBRANCH_FILE"); f != "" {
		deffile = f
	}

	if strings.Contains(deffile, "//") {
		projectDef = multibranch.NewDefaultProjectDef()
		if err := get.Unmarshal(deffile, projectDef); err != nil {
			return opts, err
		}
	} else {
		if !fileutil.Exists(deffile) {
			deffile = "multibranch.yaml"
		}

		if fileutil.Exists(deffile) {
			defFromFile, err := load.File(deffile)
			if err != nil {
				return opts, err
			}
			projectDef = defFromFile
		} else {
			projectDef = multibranch.NewDefaultProjectDef()
		}
	}

	if projectDef.Name == "" {
		projectDef.Name = cmdName
	}

	return opts, Run(projectDef, opts)
}

func HandleErrorAndExit(err error, opts multibranch.Opts) {
	msg, status := HandleError(err, opts)
	LogAndExit(opts, msg, status)
}

func LogAndExit(opts multibranch.Opts, msg string, status int) {
	if msg != "" {
		opts.Log.Errorf("%s", msg)
	}
	os.Exit(status)
}

func HandleError(err error, opts multibranch.Opts) (string, int) {
	if err == nil {
		return "", 0
	}

	log := opts.Log

	if log.GetLevel() == logrus.DebugLevel {
		log.Errorf("Stack trace: %+v", err)
	}

	errs := strings.Split(err.Error(), ": ")
	msg := strings.Join(errs, "\n")

	return msg, 1
}
