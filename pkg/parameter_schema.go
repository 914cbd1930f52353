package multibranch

import (
	"fmt"

	log "github.com/sirupsen/logrus"

	multierror "github.com/hashicorp/go-multierror"
	"github.com/juju/errors"
	"github.com/xeipuuv/gojsonschema"
)

var parameterTypes = map[string]string{
	"":        "string",
	"string":  "string",
	"choice":  "string",
	"integer": "integer",
	"number":  "number",
	"boolean": "boolean",
}

// LintParameterDefinitions checks a configured definition list for
// mistakes that data-binding alone cannot catch. All findings are
// reported at once.
func LintParameterDefinitions(definitions []*ParameterDefinition) error {
	var result *multierror.Error

	seen := map[string]bool{}

	for i, d := range definitions {
		if d.Name == "" {
			result = multierror.Append(result, fmt.Errorf("parameter[%d]: name is missing", i))
			continue
		}

		if seen[d.Name] {
			result = multierror.Append(result, fmt.Errorf("parameter[%d]: duplicate name `%s`", i, d.Name))
		}
		seen[d.Name] = true

		if _, ok := parameterTypes[d.Type]; !ok {
			result = multierror.Append(result, fmt.Errorf("parameter `%s`: unknown type `%s`", d.Name, d.Type))
			continue
		}

		if d.Type == "choice" {
			if len(d.Choices) == 0 {
				result = multierror.Append(result, fmt.Errorf("parameter `%s`: choice parameters require choices", d.Name))
			} else if s, ok := d.Default.(string); ok && s != "" && !isChoice(s, d.Choices) {
				result = multierror.Append(result, fmt.Errorf("parameter `%s`: default `%s` is not one of the choices %v", d.Name, s, d.Choices))
			}
		} else if len(d.Choices) > 0 {
			result = multierror.Append(result, fmt.Errorf("parameter `%s`: choices are only supported for choice parameters", d.Name))
		}
	}

	return result.ErrorOrNil()
}

func isChoice(value string, choices []string) bool {
	for _, c := range choices {
		if c == value {
			return true
		}
	}
	return false
}

func jsonschemaFromParameters(definitions []*ParameterDefinition) (*gojsonschema.Schema, error) {
	props := map[string]interface{}{}

	for _, d := range definitions {
		t, ok := parameterTypes[d.Type]
		if !ok {
			return nil, errors.Errorf("parameter `%s` has the unknown type `%s`", d.Name, d.Type)
		}

		prop := map[string]interface{}{
			"type": t,
		}
		if d.Description != "" {
			prop["description"] = d.Description
		}
		if d.Type == "choice" {
			prop["enum"] = d.Choices
		}
		props[d.Name] = prop
	}

	// Parameters without a bound value are legal at materialization
	// time; only the values that are present get type checked.
	goschema := map[string]interface{}{
		"type":       "object",
		"properties": props,
	}

	schema, err := gojsonschema.NewSchema(gojsonschema.NewGoLoader(goschema))
	if err != nil {
		return nil, errors.Annotatef(err, "failed generating the jsonschema from: %v", definitions)
	}

	return schema, nil
}

// ValidateParameterValues checks the bound parameter values of a job
// against the schema generated from its definitions.
func ValidateParameterValues(definitions []*ParameterDefinition, values map[string]interface{}) error {
	schema, err := jsonschemaFromParameters(definitions)
	if err != nil {
		return errors.Trace(err)
	}

	doc := gojsonschema.NewGoLoader(values)

	result, err := schema.Validate(doc)
	if err != nil {
		return errors.Annotatef(err, "failed validating parameter values: %v", values)
	}

	if result.Valid() {
		log.Debugf("all the parameter values are valid")
		return nil
	}

	var invalid *multierror.Error
	for _, err := range result.Errors() {
		invalid = multierror.Append(invalid, fmt.Errorf("%s", err))
	}

	return errors.Annotatef(invalid, "one or more parameter values are not valid in %v", values)
}
