package clientscan

import (
	"os"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/getmockd/seedmock/pkg/schema"
)

const fixtureDir = "testdata/petstore"

func scanFixture(t *testing.T) *Package {
	t.Helper()
	pkg, err := NewScanner().ScanFS(os.DirFS(fixtureDir))
	require.NoError(t, err)
	return pkg
}

func field(t *testing.T, m *schema.ModelSchema, name string) schema.Field {
	t.Helper()
	f, ok := m.Field(name)
	require.True(t, ok, "field %s not found on %s", name, m.Name)
	return f
}

func TestScanFS_Models(t *testing.T) {
	pkg := scanFixture(t)

	assert.Equal(t, []string{
		"Category", "Color", "Dog", "Order", "OrderStatus",
		"Pet", "PetStatusEnum", "Size", "Tag", "TreeNode",
	}, pkg.Models.Names())

	for _, m := range pkg.Models {
		assert.NoError(t, m.Validate())
	}
}

func TestScanFS_RecordFields(t *testing.T) {
	pet := scanFixture(t).Models.Lookup("Pet")
	require.NotNil(t, pet)
	require.False(t, pet.IsEnum())

	assert.Equal(t, []string{
		"id", "category", "name", "photo_urls", "tags", "status", "created_at", "ratings",
	}, pet.WireKeys())

	id := field(t, pet, "id")
	assert.Equal(t, schema.TypeNumber, id.Type)
	assert.False(t, id.Required)

	name := field(t, pet, "name")
	assert.Equal(t, schema.TypeString, name.Type)
	assert.True(t, name.Required)

	photos := field(t, pet, "photoUrls")
	assert.Equal(t, "photo_urls", photos.JSONKey)
	assert.Equal(t, schema.TypeString, photos.Type)
	assert.True(t, photos.IsArray)

	category := field(t, pet, "category")
	assert.Equal(t, schema.TypeObject, category.Type)
	assert.Equal(t, "Category", category.RefType)
	assert.False(t, category.IsArray)

	tags := field(t, pet, "tags")
	assert.Equal(t, "Tag", tags.RefType)
	assert.True(t, tags.IsArray)

	created := field(t, pet, "createdAt")
	assert.Equal(t, schema.TypeDate, created.Type)
	assert.Equal(t, "created_at", created.JSONKey)

	ratings := field(t, pet, "ratings")
	assert.Equal(t, schema.TypeObject, ratings.Type)
	assert.Empty(t, ratings.RefType)
}

func TestScanFS_EnumReferencesBecomeStrings(t *testing.T) {
	pkg := scanFixture(t)

	status := field(t, pkg.Models.Lookup("Pet"), "status")
	assert.Equal(t, schema.TypeString, status.Type)
	assert.Equal(t, "PetStatusEnum", status.RefType)

	orderStatus := field(t, pkg.Models.Lookup("Order"), "status")
	assert.Equal(t, schema.TypeString, orderStatus.Type)
	assert.Equal(t, "OrderStatus", orderStatus.RefType)

	channel := field(t, pkg.Models.Lookup("Order"), "channel")
	assert.Equal(t, schema.TypeString, channel.Type)
	assert.Empty(t, channel.RefType)
}

func TestScanFS_Enums(t *testing.T) {
	pkg := scanFixture(t)

	tests := []struct {
		model string
		want  []string
	}{
		{"PetStatusEnum", []string{"available", "pending", "sold"}},
		{"OrderStatus", []string{"placed", "approved", "delivered"}},
		{"Color", []string{"red", "green", "blue"}},
		{"Size", []string{"small", "medium", "large"}},
	}
	for _, tt := range tests {
		t.Run(tt.model, func(t *testing.T) {
			m := pkg.Models.Lookup(tt.model)
			require.NotNil(t, m)
			assert.True(t, m.IsEnum())
			assert.Empty(t, m.Fields)
			assert.Equal(t, tt.want, m.EnumValues)
		})
	}
}

func TestScanFS_FromJSONOnlyWireKeys(t *testing.T) {
	pkg := scanFixture(t)

	category := pkg.Models.Lookup("Category")
	require.NotNil(t, category)
	assert.Equal(t, []string{"id", "display_name"}, category.WireKeys())

	tag := pkg.Models.Lookup("Tag")
	require.NotNil(t, tag)
	assert.Equal(t, []string{"id", "name"}, tag.WireKeys())
	assert.Empty(t, field(t, tag, "name").JSONKey)
}

func TestScanFS_Inheritance(t *testing.T) {
	dog := scanFixture(t).Models.Lookup("Dog")
	require.NotNil(t, dog)

	assert.Equal(t, []string{
		"id", "category", "name", "photo_urls", "tags", "status", "created_at", "ratings",
		"breed", "good_boy",
	}, dog.WireKeys())

	// Accessor lines are skipped.
	_, ok := dog.Field("nickname")
	assert.False(t, ok)

	assert.True(t, field(t, dog, "goodBoy").Required)
	assert.Equal(t, schema.TypeString, field(t, dog, "status").Type)
}

func TestScanFS_SelfReference(t *testing.T) {
	node := scanFixture(t).Models.Lookup("TreeNode")
	require.NotNil(t, node)

	assert.Equal(t, []string{"label", "parent", "children"}, node.WireKeys())
	assert.Equal(t, "TreeNode", field(t, node, "parent").RefType)
	children := field(t, node, "children")
	assert.Equal(t, "TreeNode", children.RefType)
	assert.True(t, children.IsArray)
}

func TestScanFS_Endpoints(t *testing.T) {
	pkg := scanFixture(t)

	var ids []string
	for _, ep := range pkg.Endpoints {
		ids = append(ids, ep.OperationID)
	}
	assert.Equal(t, []string{
		"addPet", "findPetsByStatus", "getPetById",
		"deleteStoreOrder", "getInventory", "placeOrder",
	}, ids)

	t.Run("body from ToJSON", func(t *testing.T) {
		ep, ok := pkg.Endpoint("addPet")
		require.True(t, ok)
		assert.Equal(t, "POST", ep.Method)
		assert.Equal(t, "/pet", ep.Path)
		assert.Equal(t, "Pet", ep.RequestBodyType)
		assert.Equal(t, "Pet", ep.ResponseType)
		assert.False(t, ep.ResponseIsArray)
		assert.Empty(t, ep.PathParams)
	})

	t.Run("query params and array response", func(t *testing.T) {
		ep, ok := pkg.Endpoint("findPetsByStatus")
		require.True(t, ok)
		assert.Equal(t, "GET", ep.Method)
		assert.Equal(t, []schema.Param{
			{Name: "status", Type: "array", Required: true},
			{Name: "limit", Type: "number"},
		}, ep.QueryParams)
		assert.Equal(t, "Pet", ep.ResponseType)
		assert.True(t, ep.ResponseIsArray)
	})

	t.Run("inline path with dotted replace", func(t *testing.T) {
		ep, ok := pkg.Endpoint("getPetById")
		require.True(t, ok)
		assert.Equal(t, "/pet/{petId}", ep.Path)
		assert.Equal(t, []schema.Param{
			{Name: "petId", Type: "number", Required: true},
		}, ep.PathParams)
	})

	t.Run("urlPath variable with renamed placeholder", func(t *testing.T) {
		ep, ok := pkg.Endpoint("deleteStoreOrder")
		require.True(t, ok)
		assert.Equal(t, "DELETE", ep.Method)
		assert.Equal(t, "/stores/{storeId}/orders/{order_id}", ep.Path)
		assert.Equal(t, []schema.Param{
			{Name: "storeId", Type: "string", Required: true},
			{Name: "order_id", Type: "number", Required: true},
		}, ep.PathParams)
		assert.Empty(t, ep.ResponseType)
	})

	t.Run("renamed query and map response", func(t *testing.T) {
		ep, ok := pkg.Endpoint("getInventory")
		require.True(t, ok)
		assert.Equal(t, []schema.Param{
			{Name: "updated_since", Type: "date"},
		}, ep.QueryParams)
		assert.Equal(t, "object", ep.ResponseType)
	})

	t.Run("raw body parameter", func(t *testing.T) {
		ep, ok := pkg.Endpoint("placeOrder")
		require.True(t, ok)
		assert.Equal(t, "object", ep.RequestBodyType)
		assert.Equal(t, "Order", ep.ResponseType)
	})

	_, ok := pkg.Endpoint("watchPets")
	assert.False(t, ok)
}

func TestScanFS_NoSources(t *testing.T) {
	fsys := fstest.MapFS{
		"README.md":    {Data: []byte("# client")},
		"src/index.ts": {Data: []byte("export * from './runtime';")},
	}
	_, err := NewScanner().ScanFS(fsys)
	assert.ErrorIs(t, err, ErrNoSources)
}

func TestScanFS_SkipsDeclarationsAndNodeModules(t *testing.T) {
	fsys := fstest.MapFS{
		"models/User.ts":                      {Data: []byte("export interface User {\n  id: string;\n}\n")},
		"models/User.d.ts":                    {Data: []byte("export interface Ghost {\n  id: string;\n}\n")},
		"node_modules/lib/models/Vendored.ts": {Data: []byte("export interface Vendored {\n  id: string;\n}\n")},
	}
	pkg, err := NewScanner().ScanFS(fsys)
	require.NoError(t, err)
	assert.Equal(t, []string{"User"}, pkg.Models.Names())
}

func TestScanFS_CommentsAndStrings(t *testing.T) {
	src := "export interface Note {\n" +
		"    // title: number;\n" +
		"    /* hidden: string; */\n" +
		"    body: string;\n" +
		"}\n" +
		"export function NoteToJSON(value?: Note | null): any {\n" +
		"    return {\n" +
		"        'body_text': value['body'],\n" +
		"    };\n" +
		"}\n" +
		"const pattern = '/* not a comment */';\n"
	pkg, err := NewScanner().ScanFS(fstest.MapFS{"models/Note.ts": {Data: []byte(src)}})
	require.NoError(t, err)

	note := pkg.Models.Lookup("Note")
	require.NotNil(t, note)
	assert.Equal(t, []string{"body_text"}, note.WireKeys())
}

func TestScanFS_DuplicateModelKeepsFirst(t *testing.T) {
	fsys := fstest.MapFS{
		"models/A.ts": {Data: []byte("export interface Shared {\n  a: string;\n}\n")},
		"models/B.ts": {Data: []byte("export interface Shared {\n  b: number;\n}\n")},
	}
	pkg, err := NewScanner().ScanFS(fsys)
	require.NoError(t, err)
	assert.Equal(t, []string{"a"}, pkg.Models.Lookup("Shared").WireKeys())
}

func TestParseTSType(t *testing.T) {
	tests := []struct {
		in   string
		want tsType
	}{
		{"string", tsType{Type: schema.TypeString}},
		{"number | null", tsType{Type: schema.TypeNumber}},
		{"boolean | undefined", tsType{Type: schema.TypeBoolean}},
		{"Date", tsType{Type: schema.TypeDate}},
		{"Array<Pet>", tsType{Type: schema.TypeObject, IsArray: true, Ref: "Pet"}},
		{"string[]", tsType{Type: schema.TypeString, IsArray: true}},
		{"Set<string>", tsType{Type: schema.TypeString, IsArray: true}},
		{"{ [key: string]: number; }", tsType{Type: schema.TypeObject}},
		{"'a' | 'b'", tsType{Type: schema.TypeString}},
		{"Blob", tsType{Type: schema.TypeString}},
		{"any", tsType{Type: schema.TypeAny}},
		{"Promise<void>", tsType{Type: schema.TypeAny}},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, parseTSType(tt.in))
		})
	}
}

func TestCache_Load(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "models"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "models", "User.ts"),
		[]byte("export interface User {\n  id: string;\n  email?: string;\n}\n"), 0o644))

	c := NewCache()
	first, err := c.Load(dir)
	require.NoError(t, err)
	assert.Equal(t, 1, c.Len())

	second, err := c.Load(dir + string(filepath.Separator))
	require.NoError(t, err)
	assert.Same(t, first, second)

	c.Reset()
	assert.Equal(t, 0, c.Len())

	third, err := c.Load(dir)
	require.NoError(t, err)
	assert.NotSame(t, first, third)
	assert.Equal(t, first.Models.Names(), third.Models.Names())
}

func TestCache_LoadMissing(t *testing.T) {
	c := NewCache()
	_, err := c.Load(t.TempDir())
	assert.ErrorIs(t, err, ErrNoSources)
	assert.Equal(t, 0, c.Len())
}
