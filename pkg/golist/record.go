package golist

// PackageRecord is one package as reported by `go list -json`.
//
// Only ImportPath and Deps drive graph construction. The remaining fields are
// informational and used for logging.
type PackageRecord struct {
	// ImportPath identifies the package. Records without one are skipped
	// when building a graph.
	ImportPath string `json:"ImportPath,omitempty"`

	// Name is the package clause name (e.g. "main").
	Name string `json:"Name,omitempty"`

	// Standard is set by go list for standard library packages.
	Standard bool `json:"Standard,omitempty"`

	// Deps lists every package this one imports, directly or transitively,
	// in the order go list reports them.
	Deps []string `json:"Deps,omitempty"`

	// Module describes the module containing the package, if any.
	Module *Module `json:"Module,omitempty"`
}

// Module is the subset of go list's module description kept on a record.
type Module struct {
	Path    string `json:"Path,omitempty"`
	Version string `json:"Version,omitempty"`
	Main    bool   `json:"Main,omitempty"`
}

// ModulePath returns the record's module path, or "" when go list reported none.
func (r PackageRecord) ModulePath() string {
	if r.Module == nil {
		return ""
	}
	return r.Module.Path
}
