package load

import (
	"io/ioutil"
	"path/filepath"
	"strings"

	multibranch "github.com/mumoshu/multibranch/pkg"
)

func File(defPath string) (*multibranch.ProjectDef, error) {
	yaml, err := ioutil.ReadFile(defPath)
	if err != nil {
		return nil, err
	}

	projectDef, err := YAML(string(yaml))
	if err != nil {
		return nil, err
	}

	if projectDef.Name == "" {
		base := filepath.Base(defPath)
		projectDef.Name = strings.TrimSuffix(base, filepath.Ext(base))
	}

	return projectDef, nil
}

func YAML(yaml string) (*multibranch.ProjectDef, error) {
	return multibranch.ReadProjectDefFromBytes([]byte(yaml))
}
