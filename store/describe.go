package store

import (
	"errors"
	"fmt"

	"github.com/erraggy/rpcdoc/openrpc"
	"github.com/erraggy/rpcdoc/rpcerrors"
)

// DescribedMethod is a method with every reference it carries resolved and
// every schema expanded, ready for display.
//
// Resolution failures are local: the entry is left out and a message is
// added to Problems, so the rest of the method still renders.
type DescribedMethod struct {
	Name           string                       `json:"name" yaml:"name"`
	Summary        string                       `json:"summary,omitempty" yaml:"summary,omitempty"`
	Description    string                       `json:"description,omitempty" yaml:"description,omitempty"`
	Deprecated     bool                         `json:"deprecated,omitempty" yaml:"deprecated,omitempty"`
	ParamStructure string                       `json:"paramStructure,omitempty" yaml:"paramStructure,omitempty"`
	Tags           []*openrpc.Tag               `json:"tags,omitempty" yaml:"tags,omitempty"`
	Params         []*openrpc.ContentDescriptor `json:"params" yaml:"params"`
	Result         *openrpc.ContentDescriptor   `json:"result,omitempty" yaml:"result,omitempty"`
	Errors         []*openrpc.ErrorDef          `json:"errors,omitempty" yaml:"errors,omitempty"`
	Examples       []*DescribedExample          `json:"examples,omitempty" yaml:"examples,omitempty"`
	Problems       []string                     `json:"problems,omitempty" yaml:"problems,omitempty"`
}

// DescribedExample is an example pairing with its example values resolved.
type DescribedExample struct {
	Name        string             `json:"name" yaml:"name"`
	Summary     string             `json:"summary,omitempty" yaml:"summary,omitempty"`
	Description string             `json:"description,omitempty" yaml:"description,omitempty"`
	Params      []*openrpc.Example `json:"params" yaml:"params"`
	Result      *openrpc.Example   `json:"result,omitempty" yaml:"result,omitempty"`
}

// DescribeMethod resolves the named method for display. An unknown name is
// a *rpcerrors.ResolutionError for the method's "/methods/<name>" path.
func (s *Store) DescribeMethod(name string) (*DescribedMethod, error) {
	m, ok := s.Method(name)
	if !ok {
		return nil, &rpcerrors.ResolutionError{
			Pointer: "/methods/" + name,
			Segment: name,
			Message: "no such method",
		}
	}
	return s.Describe(m), nil
}

// Describe resolves m for display.
func (s *Store) Describe(m *openrpc.Method) *DescribedMethod {
	d := &DescribedMethod{
		Name:           m.Name,
		Summary:        m.Summary,
		Description:    m.Description,
		Deprecated:     m.Deprecated,
		ParamStructure: m.ParamStructure,
		Params:         make([]*openrpc.ContentDescriptor, 0, len(m.Params)),
	}
	problem := func(where string, err error) {
		d.Problems = append(d.Problems, fmt.Sprintf("%s: %v", where, err))
	}

	for i, o := range m.Tags {
		tag, err := s.ResolveTag(o)
		if err != nil {
			problem(fmt.Sprintf("tags[%d]", i), err)
			continue
		}
		d.Tags = append(d.Tags, tag)
	}
	for i, o := range m.Params {
		cd, err := s.expandedDescriptor(o)
		if err != nil {
			problem(fmt.Sprintf("params[%d]", i), err)
			continue
		}
		d.Params = append(d.Params, cd)
	}
	if m.Result != nil {
		cd, err := s.expandedDescriptor(*m.Result)
		if err != nil {
			problem("result", err)
		} else {
			d.Result = cd
		}
	}
	for i, o := range m.Errors {
		e, err := s.ResolveError(o)
		if err != nil {
			problem(fmt.Sprintf("errors[%d]", i), err)
			continue
		}
		d.Errors = append(d.Errors, e)
	}
	for i, o := range m.Examples {
		where := fmt.Sprintf("examples[%d]", i)
		ep, err := s.ResolveExamplePairing(o)
		if err != nil {
			problem(where, err)
			continue
		}
		d.Examples = append(d.Examples, s.describeExample(where, ep, problem))
	}

	if len(d.Problems) > 0 {
		s.log.Debug("method described with problems", "method", m.Name, "problems", len(d.Problems))
	}
	return d
}

// expandedDescriptor resolves o and returns a copy whose schema is expanded.
// The resolver's cached descriptor is left untouched.
func (s *Store) expandedDescriptor(o openrpc.OrRef[openrpc.ContentDescriptor]) (*openrpc.ContentDescriptor, error) {
	cd, err := s.ResolveContentDescriptor(o)
	if err != nil {
		return nil, err
	}
	if cd == nil {
		return nil, errors.New("empty content descriptor")
	}
	out := *cd
	out.Schema = s.ResolveSchemaWithReferences(cd.Schema)
	return &out, nil
}

func (s *Store) describeExample(where string, ep *openrpc.ExamplePairing, problem func(string, error)) *DescribedExample {
	de := &DescribedExample{
		Name:        ep.Name,
		Summary:     ep.Summary,
		Description: ep.Description,
		Params:      make([]*openrpc.Example, 0, len(ep.Params)),
	}
	for j, o := range ep.Params {
		ex, err := s.ResolveExample(o)
		if err != nil {
			problem(fmt.Sprintf("%s.params[%d]", where, j), err)
			continue
		}
		de.Params = append(de.Params, ex)
	}
	if ep.Result != nil {
		ex, err := s.ResolveExample(*ep.Result)
		if err != nil {
			problem(where+".result", err)
		} else {
			de.Result = ex
		}
	}
	return de
}
