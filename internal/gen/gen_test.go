package gen

import (
	"go/parser"
	"go/token"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/claimdesk/crudgen/internal/config"
)

const testGenImport = "example.com/app/gen"

func widgetConfig() *config.EntityConfig {
	return &config.EntityConfig{
		Name: "Widget",
		Fields: []config.Field{
			{Name: "widget_description", Type: config.KindString, Required: true},
			{Name: "contact_email", Type: config.KindEmail},
			{Name: "quantity", Type: config.KindInteger},
			{Name: "active", Type: config.KindBoolean, Required: true},
			{Name: "purchased_on", Type: config.KindDate},
			{Name: "generated_by", Type: config.KindString},
			{Name: "customer", Type: config.KindObject},
		},
	}
}

func widgetModel(t *testing.T) *Model {
	t.Helper()
	m, err := NewModel(widgetConfig(), testGenImport)
	require.NoError(t, err)
	return m
}

func TestNewModelNames(t *testing.T) {
	m := widgetModel(t)
	assert.Equal(t, "widget", m.Snake)
	assert.Equal(t, "widget", m.Kebab)
	assert.Equal(t, "widgets", m.PluralKebab)
	assert.Equal(t, "widget_description", m.DisplayField)
	assert.True(t, m.HasDisplay)
	assert.True(t, m.HasGeneratedBy)
	assert.True(t, m.NeedsTime())
}

func TestNewModelMultiWordNames(t *testing.T) {
	m, err := NewModel(&config.EntityConfig{Name: "ClaimAgreement"}, testGenImport)
	require.NoError(t, err)
	assert.Equal(t, "claim_agreement", m.Snake)
	assert.Equal(t, "claim-agreement", m.Kebab)
	assert.Equal(t, "claim-agreements", m.PluralKebab)
	assert.Equal(t, "claim agreement", m.Human)
	assert.False(t, m.HasDisplay)
}

func TestNewModelRejectsReservedFields(t *testing.T) {
	for _, name := range []string{"id", "uuid", "created_at", "updated_at", "deleted_at"} {
		cfg := &config.EntityConfig{
			Name:   "Widget",
			Fields: []config.Field{{Name: name, Type: config.KindString}},
		}
		_, err := NewModel(cfg, testGenImport)
		assert.Error(t, err, name)
	}
}

// parseSrc checks the rendered artifact is syntactically valid Go.
func parseSrc(t *testing.T, name string, src []byte) {
	t.Helper()
	_, err := parser.ParseFile(token.NewFileSet(), name, src, parser.ParseComments)
	require.NoError(t, err, string(src))
}

func TestRenderTypes(t *testing.T) {
	src, err := renderTypes(widgetModel(t))
	require.NoError(t, err)
	parseSrc(t, "types.go", src)
	out := string(src)

	assert.Contains(t, out, "// Code generated by crudgen. DO NOT EDIT.")
	assert.Contains(t, out, "type Widget struct {")
	assert.Contains(t, out, "crud.Meta")
	assert.Contains(t, out, "WidgetDescription string `json:\"widget_description\"`")
	assert.Contains(t, out, "ContactEmail *string `json:\"contact_email,omitempty\"`")
	assert.Contains(t, out, "Quantity *int64")
	assert.Contains(t, out, "PurchasedOn *time.Time")
	assert.Contains(t, out, "Customer *Customer `json:\"customer,omitempty\"`")

	// The create shape carries validate tags and never the server fields.
	assert.Contains(t, out, "type WidgetCreate struct {")
	assert.Contains(t, out, "validate:\"required,max=255\"")
	assert.Contains(t, out, "validate:\"omitempty,email\"")
	assert.Contains(t, out, "validate:\"omitempty,gte=0\"")
	create := out[strings.Index(out, "type WidgetCreate"):strings.Index(out, "type WidgetUpdate")]
	for _, banned := range []string{"Meta", "UUID", "CreatedAt", "UpdatedAt", "DeletedAt"} {
		assert.NotContains(t, create, banned)
	}

	// Every update field is an optional pointer.
	update := out[strings.Index(out, "type WidgetUpdate") : strings.Index(out, "// Apply")-1]
	assert.Contains(t, update, "WidgetDescription *string")
	assert.Contains(t, update, "validate:\"omitempty,max=255\"")
	assert.NotContains(t, update, "validate:\"required")

	// Required booleans carry no validate rule; "required" would reject
	// false, and presence of a non-pointer bool is structural.
	assert.Contains(t, create, "`json:\"active\"`")
	assert.NotContains(t, create, "`json:\"active\" validate")

	// The display field is required here, so no nil-guard.
	assert.Contains(t, out, "func (e *Widget) DisplayValue() string {")
	assert.Contains(t, out, "return e.WidgetDescription")
	assert.Contains(t, out, "func (e *Widget) SearchValues() []string {")
	assert.Contains(t, out, "e.GeneratedBy")
}

func TestRenderTypesOptionalDisplayField(t *testing.T) {
	cfg := &config.EntityConfig{
		Name:   "Gadget",
		Fields: []config.Field{{Name: "gadget_description", Type: config.KindString}},
	}
	m, err := NewModel(cfg, testGenImport)
	require.NoError(t, err)
	src, err := renderTypes(m)
	require.NoError(t, err)
	parseSrc(t, "types.go", src)
	out := string(src)
	assert.Contains(t, out, "if e.GadgetDescription == nil {")
	assert.Contains(t, out, "return *e.GadgetDescription")
}

func TestRenderTypesWithoutDisplayField(t *testing.T) {
	cfg := &config.EntityConfig{
		Name:   "Note",
		Fields: []config.Field{{Name: "body", Type: config.KindText, Required: true}},
	}
	m, err := NewModel(cfg, testGenImport)
	require.NoError(t, err)
	src, err := renderTypes(m)
	require.NoError(t, err)
	parseSrc(t, "types.go", src)
	assert.Contains(t, string(src), "return e.EntityUUID()")
}

func TestRenderStore(t *testing.T) {
	src, err := renderStore(widgetModel(t))
	require.NoError(t, err)
	parseSrc(t, "store.go", src)
	out := string(src)
	assert.Contains(t, out, "crud.Store[types.Widget, *types.Widget]")
	assert.Contains(t, out, "crud.WithSortKey[types.Widget]((*types.Widget).DisplayValue)")
	assert.Contains(t, out, "(*types.Widget).SearchValues")
}

func TestRenderActions(t *testing.T) {
	src, err := renderActions(widgetModel(t))
	require.NoError(t, err)
	parseSrc(t, "actions.go", src)
	out := string(src)
	// The kebab segment feeds crud.NewActions, which owns the /api prefix.
	assert.Contains(t, out, `(rq, "widget")`)
	assert.Contains(t, out, "GET /api/widget")
	assert.Contains(t, out, "crud.NewActions[types.Widget, types.WidgetCreate, types.WidgetUpdate]")
	assert.Contains(t, out, "func FetchWidgetData(")
	assert.Contains(t, out, "func RestoreWidgetData(")
}

func TestRenderClient(t *testing.T) {
	src, err := renderClient(widgetModel(t))
	require.NoError(t, err)
	parseSrc(t, "client.go", src)
	out := string(src)
	assert.Contains(t, out, "type WidgetClient = crud.Client[types.Widget, *types.Widget, types.WidgetCreate, types.WidgetUpdate]")
	assert.Contains(t, out, "func NewWidgetSync(")
}

func TestRenderValidation(t *testing.T) {
	src, err := renderValidation(widgetModel(t))
	require.NoError(t, err)
	parseSrc(t, "validation.go", src)
	out := string(src)
	assert.Contains(t, out, "func ValidateWidgetCreate(dto types.WidgetCreate) error {")
	assert.Contains(t, out, "func ValidateWidgetUpdate(dto types.WidgetUpdate) error {")
}

func TestRenderViews(t *testing.T) {
	src, err := renderViews(widgetModel(t))
	require.NoError(t, err)
	parseSrc(t, "views.go", src)
	out := string(src)
	assert.Contains(t, out, `{{define "widget_list"}}`)
	assert.Contains(t, out, `{{define "widget_form"}}`)
	assert.Contains(t, out, `name="widget_description"`)
	assert.Contains(t, out, `type="email" name="contact_email"`)
	assert.Contains(t, out, `type="checkbox" name="active"`)
	assert.Contains(t, out, "func RenderWidgetList(w io.Writer, data WidgetListData) error {")
	// Object fields never appear on forms.
	assert.NotContains(t, out, `name="customer"`)
}

func TestRenderPages(t *testing.T) {
	src, err := renderPages(widgetModel(t))
	require.NoError(t, err)
	parseSrc(t, "pages.go", src)
	out := string(src)
	assert.Contains(t, out, `r.Route("/dashboard/widgets"`)
	assert.Contains(t, out, `r.Post("/{uuid}/suspend", p.Suspend)`)
	assert.Contains(t, out, "func parseWidgetCreateForm(r *http.Request) (types.WidgetCreate, error) {")
	// The edit form posts back to its own route even when the lookup fails.
	editMiss := `WidgetFormData{Action: "/dashboard/widgets/" + uuid + "/edit", Error: err.Error()}`
	assert.Equal(t, 2, strings.Count(out, editMiss))
	assert.Contains(t, out, `strconv.ParseInt`)
	assert.Contains(t, out, `time.Parse("2006-01-02", v)`)
	assert.Contains(t, out, "validation.ValidateWidgetCreate(dto)")
	assert.Contains(t, out, `"example.com/app/gen/client"`)
}

func TestGenerateWritesAllArtifacts(t *testing.T) {
	dir := t.TempDir()
	var logged []string
	man, err := Generate(widgetConfig(), Options{
		OutDir: dir,
		Pkg:    testGenImport,
		Logf:   func(format string, args ...interface{}) { logged = append(logged, format) },
	})
	require.NoError(t, err)

	want := []string{
		filepath.Join("types", "widget.go"),
		filepath.Join("store", "widget.go"),
		filepath.Join("actions", "widget.go"),
		filepath.Join("client", "widget.go"),
		filepath.Join("validation", "widget.go"),
		filepath.Join("views", "widget.go"),
		filepath.Join("views", "widget_pages.go"),
	}
	assert.Equal(t, want, man.Files)
	assert.Len(t, logged, len(want))
	for _, rel := range want {
		src, err := os.ReadFile(filepath.Join(dir, rel))
		require.NoError(t, err, rel)
		parseSrc(t, rel, src)
		assert.True(t, strings.HasPrefix(string(src), "// Code generated by crudgen. DO NOT EDIT."), rel)
	}
}

func TestGenerateIsIdempotent(t *testing.T) {
	dir := t.TempDir()
	opts := Options{OutDir: dir, Pkg: testGenImport}
	_, err := Generate(widgetConfig(), opts)
	require.NoError(t, err)
	first, err := os.ReadFile(filepath.Join(dir, "types", "widget.go"))
	require.NoError(t, err)

	_, err = Generate(widgetConfig(), opts)
	require.NoError(t, err)
	second, err := os.ReadFile(filepath.Join(dir, "types", "widget.go"))
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestRouteBase(t *testing.T) {
	assert.Equal(t, "/dashboard/claim-agreements", RouteBase("ClaimAgreement"))
}
