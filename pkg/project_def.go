package multibranch

import (
	"fmt"
	"io/ioutil"
	"os"
	"sort"

	log "github.com/sirupsen/logrus"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v2"

	"github.com/mumoshu/multibranch/pkg/util/maputil"
)

// ProjectDef is the serializable form of a multibranch project. It is
// bound from a YAML document the same way the host's configuration
// form would bind it.
type ProjectDef struct {
	Name        string
	Parent      string
	Description string
	// Type selects the registered project type; empty means "basic".
	Type string
	// JobType selects the child job type; empty keeps the project
	// type's default.
	JobType      string
	PropertyDefs []PropertyDef
}

type projectDefV1 struct {
	Name        string                        `yaml:"name,omitempty"`
	Parent      string                        `yaml:"parent,omitempty"`
	Description string                        `yaml:"description,omitempty"`
	Type        string                        `yaml:"type,omitempty"`
	JobType     string                        `yaml:"job-type,omitempty"`
	Properties  []map[interface{}]interface{} `yaml:"properties,omitempty"`
}

type projectDefV2 struct {
	Name        string                                   `yaml:"name,omitempty"`
	Parent      string                                   `yaml:"parent,omitempty"`
	Description string                                   `yaml:"description,omitempty"`
	Type        string                                   `yaml:"type,omitempty"`
	JobType     string                                   `yaml:"job-type,omitempty"`
	Properties  map[string]map[interface{}]interface{}   `yaml:"properties,omitempty"`
}

// UnmarshalYAML accepts both definition formats: the v1 form where
// `properties` is a list of kind-discriminated maps, and the v2 form
// where `properties` is a map keyed by kind.
func (d *ProjectDef) UnmarshalYAML(unmarshal func(interface{}) error) error {
	log.Debugf("Trying to parse the v1 project def format")

	v1 := projectDefV1{
		Properties: []map[interface{}]interface{}{},
	}

	err := unmarshal(&v1)

	if err == nil {
		d.Name = v1.Name
		d.Parent = v1.Parent
		d.Description = v1.Description
		d.Type = v1.Type
		d.JobType = v1.JobType

		defs, err := propertyDefsFromList(v1.Properties)
		if err != nil {
			return errors.Wrapf(err, "Error while reading the v1 project def")
		}
		d.PropertyDefs = defs

		return nil
	}

	log.Debugf("Trying to parse the v2 project def format")

	v2 := projectDefV2{
		Properties: map[string]map[interface{}]interface{}{},
	}

	if err2 := unmarshal(&v2); err2 != nil {
		return errors.Wrapf(err, "Neither the v1 nor the v2 project def format matched")
	}

	d.Name = v2.Name
	d.Parent = v2.Parent
	d.Description = v2.Description
	d.Type = v2.Type
	d.JobType = v2.JobType

	defs, err := propertyDefsFromMap(v2.Properties)
	if err != nil {
		return errors.Wrapf(err, "Error while reading the v2 project def")
	}
	d.PropertyDefs = defs

	return nil
}

func propertyDefsFromList(raw []map[interface{}]interface{}) ([]PropertyDef, error) {
	defs := make([]PropertyDef, 0, len(raw))

	for i, m := range raw {
		stringified, err := maputil.RecursivelyStringifyKeys(m)
		if err != nil {
			return nil, errors.Wrapf(err, "Unexpected structure in properties[%d]", i)
		}

		def := NewPropertyDef(stringified)
		if def.Kind() == "" {
			return nil, fmt.Errorf("properties[%d] is missing `kind`", i)
		}

		defs = append(defs, def)
	}

	return defs, nil
}

func propertyDefsFromMap(raw map[string]map[interface{}]interface{}) ([]PropertyDef, error) {
	kinds := []string{}
	for kind := range raw {
		kinds = append(kinds, kind)
	}
	sort.Strings(kinds)

	defs := make([]PropertyDef, 0, len(kinds))

	for _, kind := range kinds {
		m := raw[kind]
		if m == nil {
			m = map[interface{}]interface{}{}
		}

		stringified, err := maputil.RecursivelyStringifyKeys(m)
		if err != nil {
			return nil, errors.Wrapf(err, "Unexpected structure in properties.%s", kind)
		}
		stringified["kind"] = kind

		defs = append(defs, NewPropertyDef(stringified))
	}

	return defs, nil
}

// Configure binds the def into the project: resolves the job type and
// loads each property def through the registered loaders, in order.
func (d *ProjectDef) Configure(p *Project, jobTypes *JobTypeRegistry) error {
	if d.JobType != "" {
		t, err := jobTypes.Find(d.JobType)
		if err != nil {
			return errors.Wrapf(err, "Error while configuring the project `%s`", d.Name)
		}
		p.JobType = t
	}

	properties := make([]BranchProperty, 0, len(d.PropertyDefs))

	for _, def := range d.PropertyDefs {
		bp, err := LoadProperty(def)
		if err != nil {
			return errors.Wrapf(err, "Error while configuring the project `%s`", d.Name)
		}
		properties = append(properties, bp)
	}

	p.BranchProperties = properties

	return nil
}

func NewDefaultProjectDef() *ProjectDef {
	return &ProjectDef{
		PropertyDefs: []PropertyDef{},
	}
}

func ReadProjectDefFromString(data string) (*ProjectDef, error) {
	return ReadProjectDefFromBytes([]byte(data))
}

func ReadProjectDefFromBytes(data []byte) (*ProjectDef, error) {
	d := NewDefaultProjectDef()
	if err := yaml.Unmarshal(data, d); err != nil {
		return nil, errors.Wrapf(err, "yaml.Unmarshal failed: %v", err)
	}
	return d, nil
}

func ReadProjectDefFromFile(path string) (*ProjectDef, error) {
	log.Debugf("Loading %s", path)

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("%s does not exist", path)
	}

	yamlBytes, err := ioutil.ReadFile(path)

	if err != nil {
		return nil, fmt.Errorf("Error while loading %s", path)
	}

	log.Debugf("%s", string(yamlBytes))

	d, err := ReadProjectDefFromBytes(yamlBytes)

	if err != nil {
		return nil, errors.Wrapf(err, "Error while loading %s", path)
	}

	return d, nil
}
