package multibranch

import (
	"bytes"
	"text/template"

	"github.com/Masterminds/sprig"
	"github.com/pkg/errors"
)

// renderDefault renders a templated parameter default against the
// branch the job is being materialized for. Non-string defaults pass
// through untouched.
func renderDefault(name string, value interface{}, branch Branch) (interface{}, error) {
	expr, ok := value.(string)
	if !ok {
		return value, nil
	}

	tmpl, err := template.New(name).Funcs(sprig.TxtFuncMap()).Option("missingkey=error").Parse(expr)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	var buff bytes.Buffer
	if err := tmpl.Execute(&buff, branch.Vars()); err != nil {
		return nil, errors.WithStack(err)
	}

	return buff.String(), nil
}
