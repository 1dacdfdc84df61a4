package render

import (
	"bytes"
	"fmt"
	"html/template"
	"net/url"

	"recruitment-form/internal/form"
)

// DefaultCompany appears in the page header and the success view.
const DefaultCompany = "ACC Group"

// PageState is what the page needs to know about the submission lifecycle.
type PageState struct {
	Submitting bool
	Submitted  bool
	// Notice is the failure message shown as a blocking alert, if any.
	Notice string
	Errors form.FieldErrors
}

type sectionView struct {
	ID     string
	Title  string
	Fields []template.HTML
}

type pageView struct {
	Title      string
	Company    string
	Submitting bool
	Submitted  bool
	Notice     string
	Sections   []sectionView
}

// Page composes the field renderers into the full application page.
type Page struct {
	schema    *form.Schema
	renderers map[string]FieldRenderer
	company   string
}

func NewPage(schema *form.Schema, company string) *Page {
	if company == "" {
		company = DefaultCompany
	}
	return &Page{
		schema:    schema,
		renderers: ForSchema(schema),
		company:   company,
	}
}

// Render writes the page for values. The submitted view replaces the form
// entirely.
func (p *Page) Render(values map[string]interface{}, state PageState) ([]byte, error) {
	view := pageView{
		Title:      "Job Application | " + p.company,
		Company:    p.company,
		Submitting: state.Submitting,
		Submitted:  state.Submitted,
		Notice:     state.Notice,
	}

	if !state.Submitted {
		for _, sec := range p.schema.Sections() {
			sv := sectionView{ID: sec.ID, Title: sec.Title}
			for _, name := range sec.Fields {
				html, err := p.renderers[name].Render(values[name], state.Errors[name])
				if err != nil {
					return nil, fmt.Errorf("render %s: %w", name, err)
				}
				sv.Fields = append(sv.Fields, html)
			}
			view.Sections = append(view.Sections, sv)
		}
	}

	var buf bytes.Buffer
	if err := pageTemplate.Execute(&buf, view); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Decode pulls every field present in a posted form. Checkbox fields are
// always present.
func (p *Page) Decode(values url.Values) map[string]interface{} {
	out := make(map[string]interface{})
	for _, f := range p.schema.Fields() {
		if v, ok := p.renderers[f.Name].Decode(values); ok {
			out[f.Name] = v
		}
	}
	return out
}
