package openapi

import (
	"bytes"
	"encoding/json"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/getmockd/seedmock/internal/rng"
	"github.com/getmockd/seedmock/pkg/config"
	"github.com/getmockd/seedmock/pkg/provider"
	"github.com/getmockd/seedmock/pkg/schema"
)

func loadPetstore(t *testing.T) *Document {
	t.Helper()
	doc, err := LoadFile(filepath.Join("testdata", "petstore.yaml"))
	require.NoError(t, err)
	return doc
}

func component(t *testing.T, doc *Document, name string) *Provider {
	t.Helper()
	p, err := doc.Provider(name, NewGenerator(DefaultOptions()), nil)
	require.NoError(t, err)
	return p
}

// roundTrip converts generated values into the types encoding/json yields.
func roundTrip(t *testing.T, v any) any {
	t.Helper()
	data, err := json.Marshal(v)
	require.NoError(t, err)
	var out any
	require.NoError(t, json.Unmarshal(data, &out))
	return out
}

func TestLoadFile(t *testing.T) {
	doc := loadPetstore(t)
	assert.Equal(t, "Petstore", doc.Title())
	assert.Equal(t, "3.0.3", doc.Version)

	_, err := doc.Schema("Missing")
	assert.ErrorIs(t, err, ErrModelNotFound)
}

func TestLoadData_UnknownVersion(t *testing.T) {
	_, err := LoadData([]byte("info:\n  title: nothing\n"))
	assert.ErrorIs(t, err, ErrUnknownVersion)
}

func TestLoadFile_Swagger2(t *testing.T) {
	doc, err := LoadFile(filepath.Join("testdata", "swagger.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "2.0", doc.Version)

	models := doc.Models()
	require.NotNil(t, models.Lookup("User"))

	op, ok := doc.Operation("listUsers")
	require.True(t, ok)
	assert.True(t, op.IsList())
	assert.Equal(t, "User", op.ItemModelName())

	p := NewProvider("User", op.ItemSchema(), NewGenerator(DefaultOptions()), nil)
	assert.Equal(t, "userId", p.IDFieldName())
	for i := 0; i < 20; i++ {
		item := p.GenerateItem(i, "swagger")
		assert.Contains(t, item["email"], "@")
		if age, ok := item["age"].(int64); ok {
			assert.True(t, age >= 18 && age <= 99, "age %d", age)
		}
	}
}

func TestGenerate_Deterministic(t *testing.T) {
	p := component(t, loadPetstore(t), "Pet")
	assert.Equal(t, p.GenerateItem(3, "seed"), p.GenerateItem(3, "seed"))
}

func TestGenerate_DivergesAcrossSeeds(t *testing.T) {
	p := component(t, loadPetstore(t), "Pet")
	first := roundTrip(t, p.GenerateItem(0, "seed-0"))
	distinct := false
	for i := 1; i < 50; i++ {
		if !assert.ObjectsAreEqual(first, roundTrip(t, p.GenerateItem(0, fmt.Sprintf("seed-%d", i)))) {
			distinct = true
			break
		}
	}
	assert.True(t, distinct)
}

func TestGenerate_EnumContainment(t *testing.T) {
	p := component(t, loadPetstore(t), "Pet")
	allowed := []any{"available", "pending", "sold"}
	for i := 0; i < 50; i++ {
		item := p.GenerateItem(i, "enum")
		assert.Contains(t, allowed, item["status"])
	}
}

func TestGenerate_ValidatesAgainstSchema(t *testing.T) {
	doc := loadPetstore(t)
	ref, err := doc.Schema("Order")
	require.NoError(t, err)

	raw, err := json.Marshal(ref.Value)
	require.NoError(t, err)
	compiler := jsonschema.NewCompiler()
	require.NoError(t, compiler.AddResource("order.json", bytes.NewReader(raw)))
	validator, err := compiler.Compile("order.json")
	require.NoError(t, err)

	gen := NewGenerator(DefaultOptions())
	for i := uint32(0); i < 40; i++ {
		v := roundTrip(t, gen.Generate(ref, rng.Hash("order")+i))
		assert.NoError(t, validator.Validate(v), "seed %d: %v", i, v)

		obj := v.(map[string]any)
		assert.Zero(t, int(obj["quantity"].(float64))%2)
		if pw, ok := obj["password"]; ok {
			assert.Equal(t, "********", pw)
		}
	}
}

func TestGenerate_RecursionIsBounded(t *testing.T) {
	p := component(t, loadPetstore(t), "Node")
	item := p.GenerateItem(0, "tree")

	assert.Equal(t, map[string]any{}, item["parent"])
	children, ok := item["children"].([]any)
	require.True(t, ok)
	assert.GreaterOrEqual(t, len(children), 2)
	for _, c := range children {
		assert.Equal(t, map[string]any{}, c)
	}
}

func TestGenerate_DepthLimit(t *testing.T) {
	doc := loadPetstore(t)
	ref, err := doc.Schema("Pet")
	require.NoError(t, err)

	shallow := NewGenerator(Options{MaxDepth: 1, ArrayMin: 1, ArrayMax: 1})
	v := shallow.Generate(ref, 1).(map[string]any)
	assert.IsType(t, "", v["name"])
	assert.Equal(t, []any{}, v["photoUrls"])
	assert.Equal(t, map[string]any{}, v["category"])
}

func TestGenerate_OneOfPicksBothBranches(t *testing.T) {
	p := component(t, loadPetstore(t), "Shape")
	var circles, squares int
	for i := 0; i < 40; i++ {
		item := p.GenerateItem(i, "shape")
		_, isCircle := item["radius"]
		_, isSquare := item["side"]
		assert.NotEqual(t, isCircle, isSquare, "%v", item)
		if isCircle {
			circles++
		} else {
			squares++
		}
	}
	assert.Positive(t, circles)
	assert.Positive(t, squares)
}

func TestGenerate_AllOfMerges(t *testing.T) {
	p := component(t, loadPetstore(t), "Dog")
	item := p.GenerateItem(0, "dog")
	assert.Contains(t, item, "id")
	assert.Contains(t, item, "name")
	assert.Contains(t, item, "bark")
}

func TestGenerate_AdditionalProperties(t *testing.T) {
	p := component(t, loadPetstore(t), "Labels")
	item := p.GenerateItem(0, "labels")
	delete(item, "id")
	require.Len(t, item, 1)
	for _, v := range item {
		assert.IsType(t, "", v)
	}
}

func TestGenerate_ExampleIsCopied(t *testing.T) {
	p := component(t, loadPetstore(t), "Settings")
	a := p.GenerateItemWithID("x", 0, "s")
	assert.Equal(t, "dark", a["theme"])
	assert.Equal(t, "x", a["id"])

	b := p.GenerateItem(0, "s")
	assert.NotContains(t, b, "id")
}

func TestGenerate_ExampleBeyondDepthLimit(t *testing.T) {
	doc, err := LoadData([]byte(`
openapi: 3.0.3
info: {title: Limits, version: "1"}
paths: {}
components:
  schemas:
    Outer:
      type: object
      required: [meta, tags, plain]
      properties:
        meta:
          type: object
          example: {k: v}
          properties:
            k: {type: string}
        tags:
          type: array
          example: [a, b]
          items: {type: string}
        plain:
          type: object
          properties:
            k: {type: string}
`))
	require.NoError(t, err)
	ref, err := doc.Schema("Outer")
	require.NoError(t, err)

	v := NewGenerator(Options{MaxDepth: 1, ArrayMin: 1, ArrayMax: 1}).Generate(ref, 3).(map[string]any)
	assert.Equal(t, map[string]any{"k": "v"}, v["meta"])
	assert.Equal(t, []any{"a", "b"}, v["tags"])
	assert.Equal(t, map[string]any{}, v["plain"])
}

func TestGenerate_OmitRate(t *testing.T) {
	doc := loadPetstore(t)
	ref, err := doc.Schema("Pet")
	require.NoError(t, err)

	keepAll := NewGenerator(Options{OmitRate: 0, MaxDepth: 4, ArrayMin: 1, ArrayMax: 3})
	dropAll := NewGenerator(Options{OmitRate: 1, MaxDepth: 4, ArrayMin: 1, ArrayMax: 3})

	full := keepAll.Generate(ref, 5).(map[string]any)
	assert.Len(t, full, 6)

	sparse := dropAll.Generate(ref, 5).(map[string]any)
	assert.ElementsMatch(t, []string{"id", "name", "status"}, keys(sparse))
}

func keys(m map[string]any) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}

func TestOperations(t *testing.T) {
	doc := loadPetstore(t)

	list, ok := doc.Operation("listPets")
	require.True(t, ok)
	assert.Equal(t, "GET", list.Method)
	assert.True(t, list.Shape.IsPageBased)
	assert.False(t, list.Shape.IsCursorBased)
	assert.Equal(t, "data", list.Shape.ItemsFieldName)
	assert.Equal(t, "Pet", list.ItemModelName())

	events, ok := doc.Operation("listEvents")
	require.True(t, ok)
	assert.True(t, events.Shape.IsCursorBased)
	assert.Equal(t, "items", events.Shape.ItemsFieldName)
	assert.Equal(t, "Event", events.ItemModelName())

	create, ok := doc.Operation("createPet")
	require.True(t, ok)
	assert.Equal(t, 201, create.Status)
	assert.False(t, create.IsList())

	get, ok := doc.Operation("getPet")
	require.True(t, ok)
	assert.Equal(t, 200, get.Status)
}

func TestEndpoints(t *testing.T) {
	doc := loadPetstore(t)
	byID := map[string]schema.Endpoint{}
	for _, e := range doc.Endpoints() {
		byID[e.OperationID] = e
	}

	get := byID["getPet"]
	assert.Equal(t, "/pets/{petId}", get.Path)
	require.Len(t, get.PathParams, 1)
	assert.Equal(t, "petId", get.PathParams[0].Name)
	assert.True(t, get.PathParams[0].Required)
	assert.Equal(t, "Pet", get.ResponseType)

	assert.Equal(t, "Pet", byID["createPet"].RequestBodyType)
	assert.Len(t, byID["listPets"].QueryParams, 2)

	tags := byID["listTags"]
	assert.True(t, tags.ResponseIsArray)
	assert.Equal(t, "Tag", tags.ResponseType)
}

func TestModels(t *testing.T) {
	models := loadPetstore(t).Models()

	status := models.Lookup("PetStatus")
	require.NotNil(t, status)
	assert.True(t, status.IsEnum())
	assert.Equal(t, []string{"available", "pending", "sold"}, status.EnumValues)

	pet := models.Lookup("Pet")
	require.NotNil(t, pet)
	require.NoError(t, pet.Validate())

	f, ok := pet.Field("photoUrls")
	require.True(t, ok)
	assert.True(t, f.IsArray)
	assert.Equal(t, schema.TypeString, f.Type)

	f, ok = pet.Field("category")
	require.True(t, ok)
	assert.Equal(t, "Category", f.RefType)
	assert.Equal(t, schema.TypeObject, f.Type)

	f, ok = pet.Field("id")
	require.True(t, ok)
	assert.True(t, f.Required)
	assert.Equal(t, schema.TypeInteger, f.Type)

	dog := models.Lookup("Dog")
	require.NotNil(t, dog)
	assert.ElementsMatch(t, []string{"bark", "id", "name"}, dog.WireKeys())

	event, _ := models.Lookup("Event").Field("occurredAt")
	assert.Equal(t, schema.TypeDate, event.Type)
}

func TestProvider_IDField(t *testing.T) {
	doc := loadPetstore(t)
	assert.Equal(t, "eventId", component(t, doc, "Event").IDFieldName())
	assert.Equal(t, "key", component(t, doc, "Tag").IDFieldName())

	policy := provider.NewIDPolicy(config.IDConfig{Format: config.IDFormatSequential})
	p, err := doc.Provider("Pet", NewGenerator(DefaultOptions()), policy)
	require.NoError(t, err)
	item := p.GenerateItemWithID(p.GenerateID(4, "s"), 4, "s")
	assert.Equal(t, int64(5), item["id"])
}
