package depgraph

import "strings"

// Class is the category of a dependency edge.
type Class int

const (
	ClassInternal Class = iota
	ClassStdLib
	ClassThirdParty
)

// String returns the lower-case class name used in reports and exports.
func (c Class) String() string {
	switch c {
	case ClassInternal:
		return "internal"
	case ClassStdLib:
		return "stdlib"
	case ClassThirdParty:
		return "third-party"
	default:
		return "unknown"
	}
}

// Classifier assigns classes relative to one module path.
// The zero value has no module, so nothing is in scope.
type Classifier struct {
	module string
}

// NewClassifier returns a Classifier for module. A trailing "/" is ignored.
func NewClassifier(module string) Classifier {
	return Classifier{module: strings.TrimRight(module, "/")}
}

// Module returns the module path the classifier scopes to.
func (c Classifier) Module() string { return c.module }

// InScope reports whether id is the module itself or a package below it.
func (c Classifier) InScope(id string) bool {
	if c.module == "" || id == "" {
		return false
	}
	if id == c.module {
		return true
	}
	return strings.HasPrefix(id, c.module) && id[len(c.module)] == '/'
}

// Classify returns the class of the dependency id.
func (c Classifier) Classify(id string) Class {
	if c.InScope(id) {
		return ClassInternal
	}
	first, _, _ := strings.Cut(id, "/")
	if strings.Contains(first, ".") {
		return ClassThirdParty
	}
	return ClassStdLib
}

// Classify is shorthand for NewClassifier(module).Classify(id).
func Classify(module, id string) Class {
	return NewClassifier(module).Classify(id)
}

// InScope is shorthand for NewClassifier(module).InScope(id).
func InScope(module, id string) bool {
	return NewClassifier(module).InScope(id)
}
