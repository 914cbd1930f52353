package cmd

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/mumoshu/multibranch/pkg/cli/version"
)

func VersionCmd(log *logrus.Logger) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number of this command",
		Run: func(cmd *cobra.Command, args []string) {
			v, err := version.Get()
			if err != nil {
				log.Errorf("%v", err)
				return
			}
			fmt.Println(v.FrameworkVersion)
		},
	}
}
