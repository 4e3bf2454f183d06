package openrpc

import (
	"fmt"

	"github.com/erraggy/rpcdoc/internal/pathutil"
	"github.com/erraggy/rpcdoc/rpcerrors"
)

// Validator checks a raw decoded document for conformance before it is
// decoded into a Document. Every violation found is returned; an empty
// result means the document is accepted.
type Validator interface {
	Validate(raw map[string]any) []rpcerrors.Violation
}

// ValidatorFunc adapts a function to the Validator interface.
type ValidatorFunc func(raw map[string]any) []rpcerrors.Violation

// Validate implements Validator.
func (f ValidatorFunc) Validate(raw map[string]any) []rpcerrors.Violation {
	return f(raw)
}

// componentSections are the keys under "components" that hold named objects.
var componentSections = []string{
	"schemas",
	"contentDescriptors",
	"errors",
	"examples",
	"examplePairingObjects",
	"tags",
}

// StructuralValidator performs the structural checks every document must
// pass to be navigable: the required top-level fields are present with the
// right kinds, and each method entry is either a reference or carries a name
// and params.
//
// References are not checked here. A "$ref" that is external or dangling
// fails only where it is resolved, so one broken reference never rejects the
// whole document.
type StructuralValidator struct{}

var _ Validator = StructuralValidator{}

// Validate implements Validator.
func (StructuralValidator) Validate(raw map[string]any) []rpcerrors.Violation {
	v := &structuralCheck{path: pathutil.Get()}
	defer pathutil.Put(v.path)

	v.checkRoot(raw)
	return v.violations
}

type structuralCheck struct {
	path       *pathutil.PathBuilder
	violations []rpcerrors.Violation
}

func (v *structuralCheck) addf(format string, args ...any) {
	path := v.path.String()
	if path == "" {
		path = "(root)"
	}
	v.violations = append(v.violations, rpcerrors.Violation{
		Path:    path,
		Pointer: v.path.Pointer(),
		Message: fmt.Sprintf(format, args...),
	})
}

func (v *structuralCheck) checkRoot(raw map[string]any) {
	switch val, ok := raw["openrpc"]; {
	case !ok:
		v.addf("missing required field %q", "openrpc")
	case !isString(val):
		v.path.Push("openrpc")
		v.addf("must be a string, got %s", Describe(val))
		v.path.Pop()
	}

	if val, ok := raw["info"]; !ok {
		v.addf("missing required field %q", "info")
	} else {
		v.path.Push("info")
		v.checkInfo(val)
		v.path.Pop()
	}

	if val, ok := raw["methods"]; !ok {
		v.addf("missing required field %q", "methods")
	} else {
		v.path.Push("methods")
		v.checkMethods(val)
		v.path.Pop()
	}

	if val, ok := raw["components"]; ok {
		v.path.Push("components")
		v.checkComponents(val)
		v.path.Pop()
	}
}

func (v *structuralCheck) checkInfo(val any) {
	info, ok := val.(map[string]any)
	if !ok {
		v.addf("must be an object, got %s", Describe(val))
		return
	}
	for _, field := range []string{"title", "version"} {
		f, ok := info[field]
		if !ok {
			v.addf("missing required field %q", field)
			continue
		}
		if !isString(f) {
			v.path.Push(field)
			v.addf("must be a string, got %s", Describe(f))
			v.path.Pop()
		}
	}
}

func (v *structuralCheck) checkMethods(val any) {
	methods, ok := val.([]any)
	if !ok {
		v.addf("must be an array, got %s", Describe(val))
		return
	}
	for i, entry := range methods {
		v.path.PushIndex(i)
		v.checkMethod(entry)
		v.path.Pop()
	}
}

func (v *structuralCheck) checkMethod(entry any) {
	m, ok := entry.(map[string]any)
	if !ok {
		v.addf("must be an object, got %s", Describe(entry))
		return
	}
	if _, isRef := RefOf(m); isRef {
		return
	}
	name, ok := m["name"]
	switch {
	case !ok:
		v.addf("missing required field %q", "name")
	case !isString(name):
		v.path.Push("name")
		v.addf("must be a string, got %s", Describe(name))
		v.path.Pop()
	}
	params, ok := m["params"]
	if !ok {
		v.addf("missing required field %q", "params")
		return
	}
	if _, isList := params.([]any); !isList {
		v.path.Push("params")
		v.addf("must be an array, got %s", Describe(params))
		v.path.Pop()
	}
}

func (v *structuralCheck) checkComponents(val any) {
	components, ok := val.(map[string]any)
	if !ok {
		v.addf("must be an object, got %s", Describe(val))
		return
	}
	for _, section := range componentSections {
		s, ok := components[section]
		if !ok {
			continue
		}
		if _, isObj := s.(map[string]any); !isObj {
			v.path.Push(section)
			v.addf("must be an object, got %s", Describe(s))
			v.path.Pop()
		}
	}
}

func isString(v any) bool {
	_, ok := v.(string)
	return ok
}
