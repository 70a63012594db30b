package analyze

import (
	"go/ast"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"entity-binder/internal/index"
	"entity-binder/internal/persistence"
)

func commentGroup(lines ...string) *ast.CommentGroup {
	cg := &ast.CommentGroup{}
	for _, l := range lines {
		cg.List = append(cg.List, &ast.Comment{Text: l})
	}

	return cg
}

func TestParseDirectives(t *testing.T) {
	doc := commentGroup(
		"// Customer is read through its accessors.",
		"//",
		"//orm:entity",
		"//orm:access property",
		"// orm:embeddable is prose, not a directive",
	)

	got, err := ParseDirectives(doc, index.TargetClass)
	require.NoError(t, err)
	assert.Equal(t, []Directive{
		{Name: persistence.Entity},
		{Name: persistence.Access, Value: "property"},
	}, got)
}

func TestParseDirectives_Errors(t *testing.T) {
	doc := commentGroup("//orm:id", "//orm:entity", "//orm:access")

	got, err := ParseDirectives(doc, index.TargetMethod)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown method directive "entity"`)
	assert.Contains(t, err.Error(), "requires a value")
	assert.Equal(t, []Directive{{Name: persistence.Id}}, got, "valid directives are kept")

	got, err = ParseDirectives(nil, index.TargetClass)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestParseTag(t *testing.T) {
	tests := []struct {
		tag     string
		want    []Directive
		wantErr string
	}{
		{tag: ""},
		{tag: "id", want: []Directive{{Name: persistence.Id}}},
		{tag: "-", want: []Directive{{Name: persistence.Transient}}},
		{
			tag: "embedded-id, access=property",
			want: []Directive{
				{Name: persistence.EmbeddedId},
				{Name: persistence.Access, Value: "property"},
			},
		},
		{tag: "transient=yes", wantErr: "takes no value"},
		{tag: "entity", wantErr: `unknown field directive "entity"`},
		{tag: "transiant", wantErr: `unknown field directive "transiant" (did you mean "transient"?)`},
	}

	for _, tt := range tests {
		t.Run(tt.tag, func(t *testing.T) {
			got, err := ParseTag(tt.tag)
			if tt.wantErr != "" {
				assert.ErrorContains(t, err, tt.wantErr)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestReceiverTypeName(t *testing.T) {
	ident := &ast.Ident{Name: "Model"}

	assert.Equal(t, "Model", receiverTypeName(ident))
	assert.Equal(t, "Model", receiverTypeName(&ast.StarExpr{X: ident}))
	assert.Equal(t, "Model", receiverTypeName(&ast.StarExpr{X: &ast.IndexExpr{X: ident, Index: &ast.Ident{Name: "K"}}}))
	assert.Equal(t, "Model", receiverTypeName(&ast.IndexListExpr{X: ident}))
	assert.Empty(t, receiverTypeName(&ast.SelectorExpr{X: ident, Sel: ident}))
}
