package pipeline_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/schema-dl/schemadl/codegen"
	"github.com/schema-dl/schemadl/pipeline"
)

func TestPipelineCompilesValidSchema(t *testing.T) {
	p := pipeline.New(codegen.DefaultOptions())
	res := p.Compile(`Point: struct { x: i32, y: i32 }`)
	require.True(t, res.OK(), "diagnostics: %v", res.Diagnostics())
	assert.Contains(t, res.Output, "struct Point {")
}

func TestPipelineStopsBeforeCodegenOnSemanticError(t *testing.T) {
	p := pipeline.New(codegen.DefaultOptions())
	res := p.Compile(`A: struct { a: A }`)
	assert.False(t, res.OK())
	assert.Empty(t, res.Output)
	assert.NotEmpty(t, res.SemanticErrors)
}

func TestPipelineStopsBeforeSemanticOnParseError(t *testing.T) {
	p := pipeline.New(codegen.DefaultOptions())
	res := p.Compile(`Foo: ,`)
	assert.False(t, res.OK())
	assert.NotEmpty(t, res.ParseErrors)
	assert.Empty(t, res.SemanticErrors)
}

func TestPipelineInstancesAreIndependent(t *testing.T) {
	p1 := pipeline.New(codegen.DefaultOptions())
	opts2 := codegen.DefaultOptions()
	opts2.NamespaceName = "other"
	p2 := pipeline.New(opts2)

	r1 := p1.Compile(`Foo: unit`)
	r2 := p2.Compile(`Foo: unit`)
	assert.Contains(t, r1.Output, "namespace schema {")
	assert.Contains(t, r2.Output, "namespace other {")
}
