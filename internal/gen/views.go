package gen

import (
	"fmt"
	"strings"

	"github.com/claimdesk/crudgen/internal/config"
)

// renderViews emits gen/views/<snake>.go: the entity's HTML templates and
// render helpers (the list and form components plus the detail block).
// Emitted with the line writer rather than a text template because the
// output itself contains template actions.
func renderViews(m *Model) ([]byte, error) {
	var buf cw
	buf.raw(header)
	buf.line("package views")
	buf.line("")
	buf.line("import (")
	buf.line("\t\"html/template\"")
	buf.line("\t\"io\"")
	buf.line("")
	buf.line("\t\"github.com/claimdesk/crudgen/pkg/crud\"")
	buf.line("")
	buf.line("\t%q", m.GenImport+"/types")
	buf.line(")")
	buf.line("")

	writeListHTML(&buf, m)
	writeDetailHTML(&buf, m)
	writeFormHTML(&buf, m)

	buf.line("var %sTemplates = template.Must(template.New(%q).Funcs(template.FuncMap{", m.Camel, m.Snake)
	buf.line("\t\"date\": crud.FormatDate,")
	buf.line("}).Parse(%sListHTML + %sDetailHTML + %sFormHTML))", m.Camel, m.Camel, m.Camel)
	buf.line("")

	// Page data shapes.
	buf.line("// %sListData feeds the %s list page.", m.Name, m.Human)
	buf.line("type %sListData struct {", m.Name)
	buf.line("\tItems      []*types.%s", m.Name)
	buf.line("\tSearchTerm string")
	buf.line("\tError      string")
	buf.line("}")
	buf.line("")
	buf.line("// %sDetailData feeds the %s detail page.", m.Name, m.Human)
	buf.line("type %sDetailData struct {", m.Name)
	buf.line("\tItem  *types.%s", m.Name)
	buf.line("\tError string")
	buf.line("}")
	buf.line("")
	buf.line("// %sFormData feeds the create and edit forms. Item is nil on create.", m.Name)
	buf.line("type %sFormData struct {", m.Name)
	buf.line("\tItem   *types.%s", m.Name)
	buf.line("\tAction string")
	buf.line("\tError  string")
	buf.line("}")
	buf.line("")

	buf.line("// Render%sList writes the %s list page.", m.Name, m.Human)
	buf.line("func Render%sList(w io.Writer, data %sListData) error {", m.Name, m.Name)
	buf.line("\treturn %sTemplates.ExecuteTemplate(w, %q, data)", m.Camel, m.Snake+"_list")
	buf.line("}")
	buf.line("")
	buf.line("// Render%sDetail writes the %s detail page.", m.Name, m.Human)
	buf.line("func Render%sDetail(w io.Writer, data %sDetailData) error {", m.Name, m.Name)
	buf.line("\treturn %sTemplates.ExecuteTemplate(w, %q, data)", m.Camel, m.Snake+"_detail")
	buf.line("}")
	buf.line("")
	buf.line("// Render%sForm writes the create/edit form page.", m.Name)
	buf.line("func Render%sForm(w io.Writer, data %sFormData) error {", m.Name, m.Name)
	buf.line("\treturn %sTemplates.ExecuteTemplate(w, %q, data)", m.Camel, m.Snake+"_form")
	buf.line("}")

	return buf.finish("views")
}

// writeListHTML emits the list template: search box, create button, one
// row per record with status and action buttons.
func writeListHTML(buf *cw, m *Model) {
	base := "/dashboard/" + m.PluralKebab
	var b strings.Builder
	b.WriteString(fmt.Sprintf("{{define %q}}<!DOCTYPE html>\n", m.Snake+"_list"))
	b.WriteString("<html><head><title>" + title(m.PluralHuman) + "</title></head><body>\n")
	b.WriteString("<h1>" + title(m.PluralHuman) + "</h1>\n")
	b.WriteString("{{if .Error}}<p class=\"error\">{{.Error}}</p>{{end}}\n")
	b.WriteString("<form method=\"get\" action=\"" + base + "\">\n")
	b.WriteString("  <input type=\"search\" name=\"q\" value=\"{{.SearchTerm}}\" placeholder=\"Search " + m.PluralHuman + "\">\n")
	b.WriteString("  <button type=\"submit\">Search</button>\n")
	b.WriteString("</form>\n")
	b.WriteString("<p><a href=\"" + base + "/create\">New " + m.Human + "</a></p>\n")
	b.WriteString("<table>\n")
	b.WriteString("<tr><th>Description</th><th>Status</th><th></th></tr>\n")
	b.WriteString("{{range .Items}}\n")
	b.WriteString("<tr>\n")
	b.WriteString("  <td><a href=\"" + base + "/{{.EntityUUID}}\">{{.DisplayValue}}</a></td>\n")
	b.WriteString("  <td>{{if .DeletedAt}}Suspended{{else}}Available{{end}}</td>\n")
	b.WriteString("  <td>\n")
	b.WriteString("    <a href=\"" + base + "/{{.EntityUUID}}/edit\">Edit</a>\n")
	b.WriteString("    {{if .DeletedAt}}\n")
	b.WriteString("    <form method=\"post\" action=\"" + base + "/{{.EntityUUID}}/restore\"><button>Restore</button></form>\n")
	b.WriteString("    {{else}}\n")
	b.WriteString("    <form method=\"post\" action=\"" + base + "/{{.EntityUUID}}/suspend\"><button>Suspend</button></form>\n")
	b.WriteString("    {{end}}\n")
	b.WriteString("  </td>\n")
	b.WriteString("</tr>\n")
	b.WriteString("{{end}}\n")
	b.WriteString("</table>\n")
	b.WriteString("</body></html>{{end}}\n")

	buf.line("const %sListHTML = `%s`", m.Camel, b.String())
	buf.line("")
}

// writeDetailHTML emits the detail template: every scalar field as a
// definition list entry.
func writeDetailHTML(buf *cw, m *Model) {
	base := "/dashboard/" + m.PluralKebab
	var b strings.Builder
	b.WriteString(fmt.Sprintf("{{define %q}}<!DOCTYPE html>\n", m.Snake+"_detail"))
	b.WriteString("<html><head><title>" + title(m.Human) + "</title></head><body>\n")
	b.WriteString("{{if .Error}}<p class=\"error\">{{.Error}}</p>{{else}}{{with .Item}}\n")
	b.WriteString("<h1>{{.DisplayValue}}</h1>\n")
	b.WriteString("<dl>\n")
	b.WriteString("<dt>UUID</dt><dd>{{.EntityUUID}}</dd>\n")
	for _, f := range m.ScalarFields() {
		label := title(strings.ReplaceAll(f.Name, "_", " "))
		b.WriteString("<dt>" + label + "</dt>")
		switch {
		case f.Kind == config.KindDate:
			b.WriteString("<dd>{{date ." + f.GoName + "}}</dd>\n")
		case f.Kind == config.KindBoolean && f.Required:
			b.WriteString("<dd>{{." + f.GoName + "}}</dd>\n")
		default:
			b.WriteString("<dd>{{if ." + f.GoName + "}}{{." + f.GoName + "}}{{end}}</dd>\n")
		}
	}
	b.WriteString("<dt>Created</dt><dd>{{date .CreatedAt}}</dd>\n")
	b.WriteString("<dt>Updated</dt><dd>{{date .UpdatedAt}}</dd>\n")
	b.WriteString("</dl>\n")
	b.WriteString("<p><a href=\"" + base + "/{{.EntityUUID}}/edit\">Edit</a> <a href=\"" + base + "\">Back</a></p>\n")
	b.WriteString("{{end}}{{end}}\n")
	b.WriteString("{{end}}\n")

	buf.line("const %sDetailHTML = `%s`", m.Camel, b.String())
	buf.line("")
}

// writeFormHTML emits the shared create/edit form template, one input per
// scalar field.
func writeFormHTML(buf *cw, m *Model) {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("{{define %q}}<!DOCTYPE html>\n", m.Snake+"_form"))
	b.WriteString("<html><head><title>" + title(m.Human) + "</title></head><body>\n")
	b.WriteString("<h1>{{if .Item}}Edit{{else}}New{{end}} " + m.Human + "</h1>\n")
	b.WriteString("{{if .Error}}<p class=\"error\">{{.Error}}</p>{{end}}\n")
	b.WriteString("<form method=\"post\" action=\"{{.Action}}\">\n")
	for _, f := range m.ScalarFields() {
		label := title(strings.ReplaceAll(f.Name, "_", " "))
		b.WriteString("  <label>" + label + "\n")
		switch f.Kind {
		case config.KindText:
			b.WriteString("    <textarea name=\"" + f.Name + "\">{{with .Item}}{{if ." + f.GoName + "}}{{." + f.GoName + "}}{{end}}{{end}}</textarea>\n")
		case config.KindBoolean:
			b.WriteString("    <input type=\"checkbox\" name=\"" + f.Name + "\" {{with .Item}}{{if ." + f.GoName + "}}checked{{end}}{{end}}>\n")
		case config.KindDate:
			b.WriteString("    <input type=\"date\" name=\"" + f.Name + "\" value=\"{{with .Item}}{{date ." + f.GoName + "}}{{end}}\">\n")
		default:
			b.WriteString("    <input type=\"" + f.InputType + "\" name=\"" + f.Name + "\" value=\"{{with .Item}}{{if ." + f.GoName + "}}{{." + f.GoName + "}}{{end}}{{end}}\">\n")
		}
		b.WriteString("  </label>\n")
	}
	b.WriteString("  <button type=\"submit\">Save</button>\n")
	b.WriteString("</form>\n")
	b.WriteString("</body></html>{{end}}\n")

	buf.line("const %sFormHTML = `%s`", m.Camel, b.String())
	buf.line("")
}

// title uppercases the first letter of a human-readable name.
func title(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
