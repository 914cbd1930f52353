// Copyright © 2018 Yusuke KUOKA <ykuoka@gmail.com>
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"io/ioutil"
)

var InitCmd = &cobra.Command{
	Use:   "init NAME",
	Short: "Create a multibranch project definition",
	Long: `Create a multibranch project definition with the specified NAME

Example:
multibranch init myproject

multibranch myproject.definition.yaml jobs master=deadbeef
`,
	Run: func(cmd *cobra.Command, args []string) {
		name := args[0]
		def := fmt.Sprintf(`name: %s
type: basic
jobType: freestyle
properties:
- kind: parameters
  parameters:
  - name: greeting
    type: string
    default: Hello {{ .branch.name }}!
`, name)
		file := fmt.Sprintf("%s.definition.yaml", name)
		if err := ioutil.WriteFile(file, []byte(def), 0644); err != nil {
			panic(err)
		}
	},
}
