package cmd

import (
	"os"

	"github.com/sirupsen/logrus"

	multibranch "github.com/mumoshu/multibranch/pkg"
)

func Def(projectDef *multibranch.ProjectDef, opts multibranch.Opts) {
	if opts.Log == nil {
		opts.Log = logrus.StandardLogger()
	}
	if opts.CommandPath == "" {
		opts.CommandPath = os.Args[0]
	}
	if opts.Args == nil {
		opts.Args = os.Args[1:]
	}

	if err := Run(projectDef, opts); err != nil {
		// The bare command with no args should just print the help.
		if len(opts.Args) == 0 {
			os.Exit(0)
		}
		HandleErrorAndExit(err, opts)
	}
}
