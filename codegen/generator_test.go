package codegen_test

import (
	"strings"
	"testing"

	gojson "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/schema-dl/schemadl/codegen"
	"github.com/schema-dl/schemadl/semantic"
	"github.com/schema-dl/schemadl/syntax"
)

func compile(t *testing.T, src string) syntax.Schema {
	t.Helper()
	p := syntax.NewParser(syntax.NewLexer(strings.NewReader(src)))
	schema := p.Parse()
	require.Empty(t, p.Errors())
	c := semantic.NewChecker(schema)
	require.True(t, c.Check(), "semantic errors: %v", c.Errors())
	return schema
}

func TestGenerateStruct(t *testing.T) {
	schema := compile(t, `Point: struct { x: i32, y: i32 }`)
	out, err := codegen.Generate(schema, codegen.DefaultOptions())
	require.NoError(t, err)

	assert.Contains(t, out, "#pragma once")
	assert.Contains(t, out, "namespace schema {")
	assert.Contains(t, out, "struct Point {")
	assert.Contains(t, out, "int32_t x;")
	assert.Contains(t, out, "int32_t y;")
	assert.Contains(t, out, `#include <cstdint>`)
}

func TestGenerateEnum(t *testing.T) {
	schema := compile(t, `Color: enum { red, green, blue }`)
	out, err := codegen.Generate(schema, codegen.DefaultOptions())
	require.NoError(t, err)
	assert.Contains(t, out, "enum class Color {")
	assert.Contains(t, out, "red,")
	assert.Contains(t, out, "blue")
}

func TestGenerateFieldNamesAreVerbatim(t *testing.T) {
	schema := compile(t, `Player: struct { current: u32, max_value: u32 }`)
	out, err := codegen.Generate(schema, codegen.DefaultOptions())
	require.NoError(t, err)
	assert.Contains(t, out, "uint32_t current;")
	assert.Contains(t, out, "uint32_t max_value;")
	assert.NotContains(t, out, "maxValue")
}

func TestGenerateVariant(t *testing.T) {
	schema := compile(t, `Shape: variant { circle: f64, empty }`)
	out, err := codegen.Generate(schema, codegen.DefaultOptions())
	require.NoError(t, err)
	assert.Contains(t, out, "#include <variant>")
	assert.Contains(t, out, "struct ShapeCircle {")
	assert.Contains(t, out, "double value;")
	assert.Contains(t, out, "struct ShapeEmpty {};")
	assert.Contains(t, out, "using Shape = std::variant<ShapeCircle, ShapeEmpty>;")
}

func TestGenerateEntityIDOnlyWhenRefUsed(t *testing.T) {
	withoutRef := compile(t, `Point: struct { x: i32 }`)
	out, err := codegen.Generate(withoutRef, codegen.DefaultOptions())
	require.NoError(t, err)
	assert.NotContains(t, out, "EntityID")

	withRef := compile(t, `Owner: struct { of: ref<entity> }`)
	out2, err := codegen.Generate(withRef, codegen.DefaultOptions())
	require.NoError(t, err)
	assert.Contains(t, out2, "using EntityID = uint64_t;")
}

func TestGenerateStrongEntityID(t *testing.T) {
	schema := compile(t, `Owner: struct { of: ref<entity> }`)
	opts := codegen.DefaultOptions()
	opts.UseStrongEntityID = true
	out, err := codegen.Generate(schema, opts)
	require.NoError(t, err)
	assert.Contains(t, out, "struct EntityID {")
	assert.Contains(t, out, "explicit EntityID(uint64_t value)")
	assert.Contains(t, out, "#include <cstdint>")
}

func TestGenerateHoistsAnonymousStructField(t *testing.T) {
	schema := compile(t, `Player: struct { position: struct { x: i32, y: i32 } }`)
	out, err := codegen.Generate(schema, codegen.DefaultOptions())
	require.NoError(t, err)
	assert.Contains(t, out, "struct PlayerPosition {")
	assert.Contains(t, out, "PlayerPosition position;")
}

func TestGenerateDoesNotMutateInputSchema(t *testing.T) {
	schema := compile(t, `Player: struct { position: struct { x: i32, y: i32 } }`)

	first, err := codegen.Generate(schema, codegen.DefaultOptions())
	require.NoError(t, err)

	second, err := codegen.Generate(schema, codegen.DefaultOptions())
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Contains(t, second, "struct PlayerPosition {")
	assert.Contains(t, second, "PlayerPosition position;")
}

func TestGenerateHeaderGuardFromBasename(t *testing.T) {
	schema := compile(t, `Foo: unit`)
	opts := codegen.DefaultOptions()
	opts.OutputBasename = "my-schema"
	out, err := codegen.Generate(schema, opts)
	require.NoError(t, err)
	assert.Contains(t, out, "#ifndef MY_SCHEMA_H")
	assert.Contains(t, out, "#endif  // MY_SCHEMA_H")
}

// goldenFixture mirrors a single row of a JSON-wrapped golden-file test:
// a source schema, the options it was rendered with, and substrings the
// output must contain. Kept inline here (rather than a testdata
// directory) since the fixture set is still small; grown fixtures should
// move to testdata/golden/*.json using the same shape.
type goldenFixture struct {
	Name        string   `json:"name"`
	Source      string   `json:"source"`
	Namespace   string   `json:"namespace"`
	MustContain []string `json:"must_contain"`
	MustNotHave []string `json:"must_not_contain"`
}

func TestGenerateGoldenFixtures(t *testing.T) {
	raw := `[
		{
			"name": "map-of-struct",
			"source": "Inventory: map<str, struct { count: u32 }>",
			"namespace": "game",
			"must_contain": ["#include <unordered_map>", "struct InventoryValue {", "uint32_t count;", "namespace game {"],
			"must_not_contain": ["EntityID"]
		},
		{
			"name": "optional-array",
			"source": "Tags: optional<array<str>>",
			"namespace": "game",
			"must_contain": ["#include <optional>", "#include <vector>", "using Tags = std::optional<std::vector<std::string>>;"],
			"must_not_contain": []
		}
	]`

	var fixtures []goldenFixture
	require.NoError(t, gojson.Unmarshal([]byte(raw), &fixtures))

	for _, f := range fixtures {
		t.Run(f.Name, func(t *testing.T) {
			schema := compile(t, f.Source)
			opts := codegen.DefaultOptions()
			opts.NamespaceName = f.Namespace
			out, err := codegen.Generate(schema, opts)
			require.NoError(t, err)
			for _, want := range f.MustContain {
				assert.Contains(t, out, want)
			}
			for _, notWant := range f.MustNotHave {
				assert.NotContains(t, out, notWant)
			}
		})
	}
}
