package stargraph

import (
	"io"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Document is the YAML layout of a graph file.
//
//	stars:
//	  - {name: Regina, q: 0, r: 0, wtn: 5}
//	edges:
//	  - {u: 0, v: 1, weight: 12.5, btn: 9}
//
// btn is optional; edges with btn > 0 feed the triaxial landmark scheme.
// Component ids are optional; unless every star carries one they are computed.
type Document struct {
	Stars []StarDoc `yaml:"stars" validate:"required,dive"`
	Edges []EdgeDoc `yaml:"edges" validate:"dive"`
}

// StarDoc is one star in a Document.
type StarDoc struct {
	Name      string  `yaml:"name"`
	Q         int     `yaml:"q"`
	R         int     `yaml:"r"`
	WTN       float64 `yaml:"wtn" validate:"gte=0"`
	Component *int    `yaml:"component,omitempty" validate:"omitempty,gte=0"`
}

// EdgeDoc is one jump link in a Document.
type EdgeDoc struct {
	U      int     `yaml:"u" validate:"gte=0"`
	V      int     `yaml:"v" validate:"gte=0,nefield=U"`
	Weight float64 `yaml:"weight" validate:"gte=0"`
	BTN    float64 `yaml:"btn,omitempty" validate:"gte=0"`
}

var validate = validator.New()

// Load decodes and validates a YAML graph document and builds a Graph from it.
// Components are taken from the document when every star carries one, and
// computed otherwise.
func Load(r io.Reader) (*Graph, error) {
	doc, err := Decode(r)
	if err != nil {
		return nil, err
	}
	return FromDocument(doc)
}

// Decode reads a Document without building a Graph.
func Decode(r io.Reader) (Document, error) {
	var doc Document
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		return Document{}, errors.Wrap(err, "stargraph: decode")
	}
	return doc, nil
}

// FromDocument builds a Graph from an already decoded Document.
func FromDocument(doc Document) (*Graph, error) {
	if err := validate.Struct(doc); err != nil {
		return nil, errors.Wrapf(ErrInvalidDocument, "%v", err)
	}

	g := NewGraph(WithCapacity(len(doc.Stars)))
	labelled := 0
	for _, s := range doc.Stars {
		g.AddStar(s.Name, Hex{Q: s.Q, R: s.R}, s.WTN)
		if s.Component != nil {
			labelled++
		}
	}
	for _, e := range doc.Edges {
		if err := g.AddEdge(e.U, e.V, e.Weight); err != nil {
			return nil, err
		}
	}

	if labelled != len(doc.Stars) {
		g.CalculateComponents()
		return g, nil
	}
	for i, s := range doc.Stars {
		if err := g.SetComponent(i, *s.Component); err != nil {
			return nil, err
		}
	}

	return g, nil
}
