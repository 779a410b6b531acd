package asdl

import "encoding/json"

type jsonModule struct {
	Name        string           `json:"name"`
	Span        *jsonSpan        `json:"span,omitempty"`
	Definitions []jsonDefinition `json:"definitions"`
}

type jsonDefinition struct {
	Name         string            `json:"name"`
	Kind         string            `json:"kind"`
	Span         *jsonSpan         `json:"span,omitempty"`
	Fields       []jsonField       `json:"fields,omitempty"`
	Constructors []jsonConstructor `json:"constructors,omitempty"`
	Attributes   []jsonField       `json:"attributes,omitempty"`
}

type jsonConstructor struct {
	Name   string      `json:"name"`
	Span   *jsonSpan   `json:"span,omitempty"`
	Fields []jsonField `json:"fields,omitempty"`
}

type jsonField struct {
	Type  string    `json:"type"`
	Count string    `json:"count,omitempty"`
	Name  string    `json:"name"`
	Span  *jsonSpan `json:"span,omitempty"`
}

type jsonSpan struct {
	Start jsonPosition `json:"start"`
	End   jsonPosition `json:"end"`
}

type jsonPosition struct {
	Line   int `json:"line"`
	Column int `json:"column"`
}

func (m *Module) MarshalJSON() ([]byte, error) {
	jm := jsonModule{
		Name:        m.Name,
		Span:        spanToJSON(m.Span),
		Definitions: make([]jsonDefinition, len(m.Definitions)),
	}
	for i, d := range m.Definitions {
		jm.Definitions[i] = d.toJSON()
	}
	return json.Marshal(jm)
}

func (d Definition) toJSON() jsonDefinition {
	jd := jsonDefinition{
		Name: d.Name,
		Span: spanToJSON(d.Span),
	}
	switch t := d.Type.(type) {
	case *Product:
		jd.Kind = "product"
		jd.Fields = fieldsToJSON(t.Fields)
	case *Sum:
		jd.Kind = "sum"
		for _, c := range t.Constructors {
			jd.Constructors = append(jd.Constructors, jsonConstructor{
				Name:   c.Name,
				Span:   spanToJSON(c.Span),
				Fields: fieldsToJSON(c.Fields),
			})
		}
	}
	if d.Type != nil {
		jd.Attributes = fieldsToJSON(d.Type.Attrs())
	}
	return jd
}

func fieldsToJSON(fields []Field) []jsonField {
	if len(fields) == 0 {
		return nil
	}
	out := make([]jsonField, len(fields))
	for i, f := range fields {
		out[i] = jsonField{
			Type:  f.Type,
			Count: f.Count.String(),
			Name:  f.Name,
			Span:  spanToJSON(f.Span),
		}
	}
	return out
}

func spanToJSON(s Span) *jsonSpan {
	if s.Start.Line == 0 && s.End.Line == 0 {
		return nil
	}
	return &jsonSpan{
		Start: jsonPosition{Line: s.Start.Line, Column: s.Start.Column},
		End:   jsonPosition{Line: s.End.Line, Column: s.End.Column},
	}
}
