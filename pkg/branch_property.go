package multibranch

import (
	"fmt"

	log "github.com/sirupsen/logrus"

	"github.com/juju/errors"

	"github.com/mumoshu/multibranch/pkg/api/job"
)

// BranchProperty is per-branch configuration attached to a multibranch
// project, governing how its generated child jobs are configured.
//
// Decorator returns the decoration hook for the given child job type,
// or nil when the property does not apply to that type. A nil
// decorator means decoration is a no-op for this property.
type BranchProperty interface {
	PropertyKind() string
	Decorator(t job.Type) job.Decorator
}

// PropertyDef is the raw, kind-discriminated form a branch property
// takes in a project definition before data-binding.
type PropertyDef struct {
	raw map[string]interface{}
}

func NewPropertyDef(raw map[string]interface{}) PropertyDef {
	return PropertyDef{
		raw: raw,
	}
}

func (d PropertyDef) Kind() string {
	kind, ok := d.raw["kind"].(string)
	if !ok {
		return ""
	}
	return kind
}

func (d PropertyDef) Raw() map[string]interface{} {
	return d.raw
}

// PropertyLoader binds a raw property def into a concrete
// BranchProperty. A loader rejects defs of kinds it does not own by
// returning an error, so that the next registered loader is tried.
type PropertyLoader interface {
	LoadProperty(def PropertyDef) (BranchProperty, error)
}

var propertyLoaders []PropertyLoader

func init() {
	propertyLoaders = []PropertyLoader{}
}

// Register adds a loader consulted by LoadProperty. Project type and
// property registration is explicit; nothing is discovered by
// reflection.
func Register(loader PropertyLoader) {
	propertyLoaders = append(propertyLoaders, loader)
}

// errWrongKind is what a loader returns for a def of a kind it does
// not own, as opposed to a real binding or lint failure of its own
// kind.
type errWrongKind struct {
	kind string
	want string
}

func (e errWrongKind) Error() string {
	return fmt.Sprintf("`kind: %s` is not a %s property def", e.kind, e.want)
}

func wrongKind(kind string, want string) error {
	return errWrongKind{kind: kind, want: want}
}

func LoadProperty(def PropertyDef) (BranchProperty, error) {
	var loadError error
	var mismatchError error

	for _, loader := range propertyLoaders {
		p, err := loader.LoadProperty(def)

		if err == nil {
			log.WithField("property", p.PropertyKind()).Debugf("property loaded")
			return p, nil
		}

		// The owning loader's binding or lint error is the one worth
		// reporting; kind mismatches from the other loaders are noise.
		if _, ok := err.(errWrongKind); ok {
			mismatchError = err
		} else if loadError == nil {
			loadError = err
		}
	}

	if loadError == nil {
		loadError = mismatchError
	}
	if loadError == nil {
		loadError = errors.Errorf("no property loader registered")
	}

	return nil, errors.Annotatef(loadError, "all loaders failed to load the property def of kind `%s`", def.Kind())
}
