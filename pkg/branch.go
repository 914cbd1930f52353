package multibranch

// Branch identifies the source-control branch a child job is
// materialized for. Branches are provided by the caller; this library
// never scans repositories itself.
type Branch struct {
	Name string
	Head string
}

// Vars exposes the branch to parameter default templates as
// {{.branch.name}} and {{.branch.head}}.
func (b Branch) Vars() map[string]interface{} {
	return map[string]interface{}{
		"branch": map[string]interface{}{
			"name": b.Name,
			"head": b.Head,
		},
	}
}
