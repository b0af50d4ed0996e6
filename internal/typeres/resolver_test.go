package typeres

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sdkwire/sdkwire/internal/models"
)

func TestResolvePlainType(t *testing.T) {
	r := NewResolver("/project/src")

	deps, err := r.Resolve("string | null", "users/users.controller.ts")
	require.NoError(t, err)

	assert.Equal(t, "string | null", deps.ResolvedType)
	assert.Equal(t, "string | null", deps.RawType)
	assert.Empty(t, deps.Dependencies)
	assert.Empty(t, deps.LocalTypes)
}

func TestResolveStripsQualifiers(t *testing.T) {
	r := NewResolver("/project/src")

	raw := `Promise<import("/project/src/users/dto").UserDto[]>`
	deps, err := r.Resolve(raw, "users/users.controller.ts")
	require.NoError(t, err)

	assert.Equal(t, "Promise<UserDto[]>", deps.ResolvedType)
	require.Len(t, deps.Dependencies, 1)
	assert.Equal(t, models.TypeImport{File: "users/dto", Types: []string{"UserDto"}}, deps.Dependencies[0])
}

func TestResolveDeduplicatesPairs(t *testing.T) {
	r := NewResolver("/project/src")

	raw := `{ a: import("/project/src/users/dto").UserDto; b: import("/project/src/users/dto").UserDto; ` +
		`c: import("/project/src/users/dto").Role; d: import("/project/src/shared/page").Paginated<import("/project/src/users/dto").UserDto> }`
	deps, err := r.Resolve(raw, "users/users.controller.ts")
	require.NoError(t, err)

	assert.NotContains(t, deps.ResolvedType, "import(")
	require.Len(t, deps.Dependencies, 2)
	assert.Equal(t, "users/dto", deps.Dependencies[0].File)
	assert.Equal(t, []string{"UserDto", "Role"}, deps.Dependencies[0].Types)
	assert.Equal(t, "shared/page", deps.Dependencies[1].File)
	assert.Equal(t, []string{"Paginated"}, deps.Dependencies[1].Types)

	// distinct (file, type) pairs: 3 across both files
	total := 0
	for _, imp := range deps.Dependencies {
		total += len(imp.Types)
	}
	assert.Equal(t, 3, total)
}

func TestResolveRelativePathsPassThrough(t *testing.T) {
	r := NewResolver("/project/src")

	deps, err := r.Resolve(`import("users/dto").UserDto`, "users/users.controller.ts")
	require.NoError(t, err)
	require.Len(t, deps.Dependencies, 1)
	assert.Equal(t, "users/dto", deps.Dependencies[0].File)
}

func TestResolveRecordsLocalTypes(t *testing.T) {
	r := NewResolver("/project/src")

	deps, err := r.Resolve(`import("/project/src/users/dto").UserDto`, "/project/src/users/dto")
	require.NoError(t, err)

	assert.Equal(t, "users/dto", deps.OriginFile)
	assert.Equal(t, []string{"UserDto"}, deps.LocalTypes)
	// local qualifiers still appear exactly once in the dependency edges
	require.Len(t, deps.Dependencies, 1)
	assert.Equal(t, []string{"UserDto"}, deps.Dependencies[0].Types)
}

func TestResolveSingleQuotedQualifier(t *testing.T) {
	r := NewResolver("/project/src")

	deps, err := r.Resolve(`import('/project/src/shared/result').Result<void>`, "users/users.controller.ts")
	require.NoError(t, err)
	assert.Equal(t, "Result<void>", deps.ResolvedType)
	require.Len(t, deps.Dependencies, 1)
	assert.Equal(t, "shared/result", deps.Dependencies[0].File)
}

func TestResolvePathOutsideRoot(t *testing.T) {
	r := NewResolver("/project/src")

	deps, err := r.Resolve(`import("/project/sibling/common").Shared`, "users/users.controller.ts")
	require.NoError(t, err)
	require.Len(t, deps.Dependencies, 1)
	assert.Equal(t, "../sibling/common", deps.Dependencies[0].File)
}

func TestNormalizeExternalFilePath(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"users/dto", "users/dto"},
		{"./users/dto", "users/dto"},
		{"../shared/types", "_external1/shared/types"},
		{"../../x", "_external2/x"},
		{"../../../a/b/c", "_external3/a/b/c"},
		{"..", "_external1"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeExternalFilePath(tt.in))
		})
	}
}
