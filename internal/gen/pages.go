package gen

import (
	"github.com/claimdesk/crudgen/internal/config"
)

// renderPages emits gen/views/<snake>_pages.go: chi route registration and
// handlers that drive the entity's pages through its sync client, plus the
// form-to-DTO parsers.
func renderPages(m *Model) ([]byte, error) {
	base := "/dashboard/" + m.PluralKebab
	needsTime := false
	needsStrconv := false
	for _, f := range m.ScalarFields() {
		switch f.Kind {
		case config.KindDate:
			needsTime = true
		case config.KindNumber, config.KindInteger:
			needsStrconv = true
		}
	}

	var buf cw
	buf.raw(header)
	buf.line("package views")
	buf.line("")
	buf.line("import (")
	if needsTime || needsStrconv {
		buf.line("\t\"fmt\"")
	}
	buf.line("\t\"net/http\"")
	if needsStrconv {
		buf.line("\t\"strconv\"")
	}
	if needsTime {
		buf.line("\t\"time\"")
	}
	buf.line("")
	buf.line("\t\"github.com/go-chi/chi/v5\"")
	buf.line("")
	buf.line("\t%q", m.GenImport+"/client")
	buf.line("\t%q", m.GenImport+"/types")
	buf.line("\t%q", m.GenImport+"/validation")
	buf.line(")")
	buf.line("")

	buf.line("// %sPages serves the %s dashboard pages.", m.Name, m.Human)
	buf.line("type %sPages struct {", m.Name)
	buf.line("\tsync *client.%sSync", m.Name)
	buf.line("}")
	buf.line("")
	buf.line("// New%sPages returns the page handlers backed by the given sync client.", m.Name)
	buf.line("func New%sPages(sync *client.%sSync) *%sPages {", m.Name, m.Name, m.Name)
	buf.line("\treturn &%sPages{sync: sync}", m.Name)
	buf.line("}")
	buf.line("")
	buf.line("// Register%sRoutes mounts the %s pages under %s.", m.Name, m.Human, base)
	buf.line("func Register%sRoutes(r chi.Router, p *%sPages) {", m.Name, m.Name)
	buf.line("\tr.Route(%q, func(r chi.Router) {", base)
	buf.line("\t\tr.Get(\"/\", p.List)")
	buf.line("\t\tr.Get(\"/create\", p.New)")
	buf.line("\t\tr.Post(\"/create\", p.Create)")
	buf.line("\t\tr.Get(\"/{uuid}\", p.Detail)")
	buf.line("\t\tr.Get(\"/{uuid}/edit\", p.Edit)")
	buf.line("\t\tr.Post(\"/{uuid}/edit\", p.Update)")
	buf.line("\t\tr.Post(\"/{uuid}/suspend\", p.Suspend)")
	buf.line("\t\tr.Post(\"/{uuid}/restore\", p.Restore)")
	buf.line("\t})")
	buf.line("}")
	buf.line("")

	buf.line("// List refreshes the collection and renders it, honoring the q filter.")
	buf.line("func (p *%sPages) List(w http.ResponseWriter, r *http.Request) {", m.Name)
	buf.line("\tst := p.sync.Store()")
	buf.line("\tst.SetSearchTerm(r.URL.Query().Get(\"q\"))")
	buf.line("\t// Refresh mirrors results and errors into the store either way.")
	buf.line("\t_ = p.sync.Refresh(r.Context())")
	buf.line("\titems := st.FilteredItems()")
	buf.line("\trows := make([]*types.%s, len(items))", m.Name)
	buf.line("\tfor i := range items {")
	buf.line("\t\trows[i] = &items[i]")
	buf.line("\t}")
	buf.line("\t_ = Render%sList(w, %sListData{", m.Name, m.Name)
	buf.line("\t\tItems:      rows,")
	buf.line("\t\tSearchTerm: st.SearchTerm(),")
	buf.line("\t\tError:      st.Error(),")
	buf.line("\t})")
	buf.line("}")
	buf.line("")

	buf.line("// Detail renders a single record.")
	buf.line("func (p *%sPages) Detail(w http.ResponseWriter, r *http.Request) {", m.Name)
	buf.line("\titem, err := p.sync.Get(r.Context(), chi.URLParam(r, \"uuid\"))")
	buf.line("\tif err != nil {")
	buf.line("\t\tw.WriteHeader(http.StatusNotFound)")
	buf.line("\t\t_ = Render%sDetail(w, %sDetailData{Error: err.Error()})", m.Name, m.Name)
	buf.line("\t\treturn")
	buf.line("\t}")
	buf.line("\t_ = Render%sDetail(w, %sDetailData{Item: item})", m.Name, m.Name)
	buf.line("}")
	buf.line("")

	buf.line("// New renders the empty create form.")
	buf.line("func (p *%sPages) New(w http.ResponseWriter, r *http.Request) {", m.Name)
	buf.line("\t_ = Render%sForm(w, %sFormData{Action: %q})", m.Name, m.Name, base+"/create")
	buf.line("}")
	buf.line("")

	buf.line("// Create validates the submitted form and stores a new record.")
	buf.line("func (p *%sPages) Create(w http.ResponseWriter, r *http.Request) {", m.Name)
	buf.line("\tdto, err := parse%sCreateForm(r)", m.Name)
	buf.line("\tif err == nil {")
	buf.line("\t\terr = validation.Validate%sCreate(dto)", m.Name)
	buf.line("\t}")
	buf.line("\tif err == nil {")
	buf.line("\t\t_, err = p.sync.Create(r.Context(), dto)")
	buf.line("\t}")
	buf.line("\tif err != nil {")
	buf.line("\t\tw.WriteHeader(http.StatusUnprocessableEntity)")
	buf.line("\t\t_ = Render%sForm(w, %sFormData{Action: %q, Error: err.Error()})", m.Name, m.Name, base+"/create")
	buf.line("\t\treturn")
	buf.line("\t}")
	buf.line("\thttp.Redirect(w, r, %q, http.StatusSeeOther)", base)
	buf.line("}")
	buf.line("")

	buf.line("// Edit renders the form prefilled with the record's current values.")
	buf.line("func (p *%sPages) Edit(w http.ResponseWriter, r *http.Request) {", m.Name)
	buf.line("\tuuid := chi.URLParam(r, \"uuid\")")
	buf.line("\titem, err := p.sync.Get(r.Context(), uuid)")
	buf.line("\tif err != nil {")
	buf.line("\t\tw.WriteHeader(http.StatusNotFound)")
	buf.line("\t\t_ = Render%sForm(w, %sFormData{Action: %q + uuid + \"/edit\", Error: err.Error()})", m.Name, m.Name, base+"/")
	buf.line("\t\treturn")
	buf.line("\t}")
	buf.line("\t_ = Render%sForm(w, %sFormData{Item: item, Action: %q + uuid + \"/edit\"})", m.Name, m.Name, base+"/")
	buf.line("}")
	buf.line("")

	buf.line("// Update validates the submitted form and applies the changes.")
	buf.line("func (p *%sPages) Update(w http.ResponseWriter, r *http.Request) {", m.Name)
	buf.line("\tuuid := chi.URLParam(r, \"uuid\")")
	buf.line("\tdto, err := parse%sUpdateForm(r)", m.Name)
	buf.line("\tif err == nil {")
	buf.line("\t\terr = validation.Validate%sUpdate(dto)", m.Name)
	buf.line("\t}")
	buf.line("\tif err == nil {")
	buf.line("\t\t_, err = p.sync.Update(r.Context(), uuid, dto)")
	buf.line("\t}")
	buf.line("\tif err != nil {")
	buf.line("\t\tw.WriteHeader(http.StatusUnprocessableEntity)")
	buf.line("\t\t_ = Render%sForm(w, %sFormData{Action: %q + uuid + \"/edit\", Error: err.Error()})", m.Name, m.Name, base+"/")
	buf.line("\t\treturn")
	buf.line("\t}")
	buf.line("\thttp.Redirect(w, r, %q, http.StatusSeeOther)", base)
	buf.line("}")
	buf.line("")

	buf.line("// Suspend soft-deletes the record and returns to the list.")
	buf.line("func (p *%sPages) Suspend(w http.ResponseWriter, r *http.Request) {", m.Name)
	buf.line("\t_ = p.sync.Delete(r.Context(), chi.URLParam(r, \"uuid\"))")
	buf.line("\thttp.Redirect(w, r, %q, http.StatusSeeOther)", base)
	buf.line("}")
	buf.line("")

	buf.line("// Restore clears the record's soft delete and returns to the list.")
	buf.line("func (p *%sPages) Restore(w http.ResponseWriter, r *http.Request) {", m.Name)
	buf.line("\t_, _ = p.sync.Restore(r.Context(), chi.URLParam(r, \"uuid\"))")
	buf.line("\thttp.Redirect(w, r, %q, http.StatusSeeOther)", base)
	buf.line("}")
	buf.line("")

	writeCreateParser(&buf, m)
	writeUpdateParser(&buf, m)

	return buf.finish("pages")
}

// writeCreateParser emits parse<Name>CreateForm, one decode per field.
func writeCreateParser(buf *cw, m *Model) {
	buf.line("// parse%sCreateForm builds the create payload from the submitted form.", m.Name)
	buf.line("func parse%sCreateForm(r *http.Request) (types.%sCreate, error) {", m.Name, m.Name)
	buf.line("\tvar dto types.%sCreate", m.Name)
	buf.line("\tif err := r.ParseForm(); err != nil {")
	buf.line("\t\treturn dto, err")
	buf.line("\t}")
	for _, f := range m.ScalarFields() {
		writeFieldDecode(buf, f, false)
	}
	buf.line("\treturn dto, nil")
	buf.line("}")
	buf.line("")
}

// writeUpdateParser emits parse<Name>UpdateForm. Every field is optional on
// update; blank inputs are left unset so the merge keeps existing values.
func writeUpdateParser(buf *cw, m *Model) {
	buf.line("// parse%sUpdateForm builds the partial-update payload from the submitted form.", m.Name)
	buf.line("func parse%sUpdateForm(r *http.Request) (types.%sUpdate, error) {", m.Name, m.Name)
	buf.line("\tvar dto types.%sUpdate", m.Name)
	buf.line("\tif err := r.ParseForm(); err != nil {")
	buf.line("\t\treturn dto, err")
	buf.line("\t}")
	for _, f := range m.ScalarFields() {
		writeFieldDecode(buf, f, true)
	}
	buf.line("\treturn dto, nil")
	buf.line("}")
	buf.line("")
}

// writeFieldDecode emits the decode for one form field. On update, and for
// optional fields on create, the target is a pointer and blank means unset.
func writeFieldDecode(buf *cw, f Field, update bool) {
	ptr := update || !f.Required
	switch f.Kind {
	case config.KindBoolean:
		// Checkbox: present means true.
		if ptr {
			buf.line("\t{")
			buf.line("\t\tv := r.FormValue(%q) != \"\"", f.Name)
			buf.line("\t\tdto.%s = &v", f.GoName)
			buf.line("\t}")
		} else {
			buf.line("\tdto.%s = r.FormValue(%q) != \"\"", f.GoName, f.Name)
		}
	case config.KindNumber:
		buf.line("\tif v := r.FormValue(%q); v != \"\" {", f.Name)
		buf.line("\t\tn, err := strconv.ParseFloat(v, 64)")
		buf.line("\t\tif err != nil {")
		buf.line("\t\t\treturn dto, fmt.Errorf(\"%s: %%w\", err)", f.Name)
		buf.line("\t\t}")
		if ptr {
			buf.line("\t\tdto.%s = &n", f.GoName)
		} else {
			buf.line("\t\tdto.%s = n", f.GoName)
		}
		buf.line("\t}")
	case config.KindInteger:
		buf.line("\tif v := r.FormValue(%q); v != \"\" {", f.Name)
		buf.line("\t\tn, err := strconv.ParseInt(v, 10, 64)")
		buf.line("\t\tif err != nil {")
		buf.line("\t\t\treturn dto, fmt.Errorf(\"%s: %%w\", err)", f.Name)
		buf.line("\t\t}")
		if ptr {
			buf.line("\t\tdto.%s = &n", f.GoName)
		} else {
			buf.line("\t\tdto.%s = n", f.GoName)
		}
		buf.line("\t}")
	case config.KindDate:
		buf.line("\tif v := r.FormValue(%q); v != \"\" {", f.Name)
		buf.line("\t\tt, err := time.Parse(\"2006-01-02\", v)")
		buf.line("\t\tif err != nil {")
		buf.line("\t\t\treturn dto, fmt.Errorf(\"%s: %%w\", err)", f.Name)
		buf.line("\t\t}")
		if ptr {
			buf.line("\t\tdto.%s = &t", f.GoName)
		} else {
			buf.line("\t\tdto.%s = t", f.GoName)
		}
		buf.line("\t}")
	default:
		// string, text, email, phone, url
		if ptr {
			buf.line("\tif v := r.FormValue(%q); v != \"\" {", f.Name)
			buf.line("\t\tdto.%s = &v", f.GoName)
			buf.line("\t}")
		} else {
			buf.line("\tdto.%s = r.FormValue(%q)", f.GoName, f.Name)
		}
	}
}
