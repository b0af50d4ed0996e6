package analyzer

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sdkwire/sdkwire/internal/astx"
	"github.com/sdkwire/sdkwire/internal/errors"
	"github.com/sdkwire/sdkwire/internal/models"
	"github.com/sdkwire/sdkwire/internal/utils"
)

func quietDiag() *utils.DiagnosticSystem {
	return utils.NewWriterDiagnostics(utils.DiagnosticSilent, &bytes.Buffer{})
}

func literal(v string) astx.DecoratorArg {
	return astx.DecoratorArg{Value: v, Literal: true}
}

func usersSnapshot() *astx.Snapshot {
	return &astx.Snapshot{
		AnalysisRoot: "/project/src",
		ModuleDecls: []astx.ModuleDecl{{
			Name: "userModule",
			Classes: []astx.Class{{
				Name:       "UserController",
				SourcePath: "users/users.controller.ts",
				Decorators: []astx.Decorator{{Name: "Controller", Args: []astx.DecoratorArg{literal("users")}}},
				Methods: []astx.Method{
					{
						Name:       "list",
						Decorators: []astx.Decorator{{Name: "Get", Args: []astx.DecoratorArg{literal("list")}}},
						ReturnType: astx.TypeRef{Text: `Promise<import("/project/src/users/dto").UserDto[]>`},
					},
					{
						Name:       "create",
						Decorators: []astx.Decorator{{Name: "Post"}},
						Params: []astx.Param{{
							Name:       "payload",
							Decorators: []astx.Decorator{{Name: "Body"}},
							Type: astx.TypeRef{
								Text:       `import("/project/src/users/dto").CreateUserDto`,
								Object:     true,
								Properties: []string{"name", "role"},
							},
						}},
						ReturnType: astx.TypeRef{Text: `Promise<import("/project/src/users/dto").UserDto>`},
					},
					{
						// helper without a verb marker, not part of the surface
						Name:       "toDto",
						ReturnType: astx.TypeRef{Text: "unknown"},
					},
				},
			}},
		}},
		Types: map[string]map[string]string{
			"users/dto": {
				"UserDto":       `interface UserDto { id: string; role: import("/project/src/shared/roles").Role }`,
				"CreateUserDto": `interface CreateUserDto { name: string; role: import("/project/src/shared/roles").Role }`,
			},
			"shared/roles": {
				"Role": `type Role = 'admin' | 'member'`,
			},
		},
	}
}

func TestAnalyzeBuildsModel(t *testing.T) {
	content, err := New(usersSnapshot(), quietDiag()).Analyze()
	require.NoError(t, err)

	require.Len(t, content.Modules, 1)
	module := content.Modules[0]
	assert.Equal(t, "userModule", module.Name)

	require.Len(t, module.Controllers, 1)
	controller := module.Controllers[0]
	assert.Equal(t, "UserController", controller.ClassName)
	assert.Equal(t, "users", controller.RegistrationName)

	// toDto has no verb marker and is silently omitted
	require.Len(t, controller.Methods, 2)

	list := controller.Methods[0]
	assert.Equal(t, models.HTTPGet, list.HTTPMethod)
	assert.Equal(t, "/users/list", list.Route.Unparse())
	assert.Equal(t, "Promise<UserDto[]>", list.ReturnType.ResolvedType)

	create := controller.Methods[1]
	assert.Equal(t, models.HTTPPost, create.HTTPMethod)
	// empty verb argument: just the controller prefix
	assert.Equal(t, "/users", create.Route.Unparse())
	assert.Equal(t, models.SlotSingle, create.Params.BodyParams.Kind)
}

func TestAnalyzeResolvesTransitiveTypes(t *testing.T) {
	content, err := New(usersSnapshot(), quietDiag()).Analyze()
	require.NoError(t, err)

	// UserDto and CreateUserDto pull in Role transitively
	dtoFile, ok := content.Types.Lookup("users/dto")
	require.True(t, ok)
	names := make([]string, len(dtoFile.Decls))
	for i, d := range dtoFile.Decls {
		names[i] = d.Name
	}
	assert.Equal(t, []string{"UserDto", "CreateUserDto"}, names)
	assert.NotContains(t, dtoFile.Decls[0].Code, "import(")

	rolesFile, ok := content.Types.Lookup("shared/roles")
	require.True(t, ok)
	require.Len(t, rolesFile.Decls, 1)
	assert.Equal(t, "Role", rolesFile.Decls[0].Name)
}

func TestAnalyzeSkipsUnmarkedClasses(t *testing.T) {
	snap := usersSnapshot()
	snap.ModuleDecls[0].Classes = append(snap.ModuleDecls[0].Classes, astx.Class{
		Name:       "UserRepository",
		SourcePath: "users/users.repository.ts",
	})

	var out bytes.Buffer
	diag := utils.NewWriterDiagnostics(utils.DiagnosticWarn, &out)
	content, err := New(snap, diag).Analyze()
	require.NoError(t, err)

	require.Len(t, content.Modules[0].Controllers, 1)
	assert.Contains(t, out.String(), "UserRepository")
	assert.Contains(t, out.String(), "no @Controller marker")
}

func TestAnalyzeDefaultRegistrationName(t *testing.T) {
	snap := usersSnapshot()
	snap.ModuleDecls[0].Classes[0].Decorators = []astx.Decorator{{Name: "Controller"}}

	content, err := New(snap, quietDiag()).Analyze()
	require.NoError(t, err)

	controller := content.Modules[0].Controllers[0]
	assert.Equal(t, "userController", controller.RegistrationName)
	// default-named controllers do not prefix their routes
	assert.Equal(t, "/list", controller.Methods[0].Route.Unparse())
}

func TestAnalyzeRootTemplateMeansControllerPrefix(t *testing.T) {
	snap := usersSnapshot()
	snap.ModuleDecls[0].Classes[0].Methods[0].Decorators = []astx.Decorator{
		{Name: "Get", Args: []astx.DecoratorArg{literal("/")}},
	}

	content, err := New(snap, quietDiag()).Analyze()
	require.NoError(t, err)

	// "/" is just another spelling of the empty template
	list := content.Modules[0].Controllers[0].Methods[0]
	assert.Equal(t, "/users", list.Route.Unparse())
}

func TestAnalyzeStripsTrailingSlash(t *testing.T) {
	snap := usersSnapshot()
	snap.ModuleDecls[0].Classes[0].Methods[0].Decorators = []astx.Decorator{
		{Name: "Get", Args: []astx.DecoratorArg{literal("list/")}},
	}

	content, err := New(snap, quietDiag()).Analyze()
	require.NoError(t, err)

	list := content.Modules[0].Controllers[0].Methods[0]
	assert.Equal(t, "/users/list", list.Route.Unparse())
}

func TestAnalyzeRejectsMultipleRegistrationArgs(t *testing.T) {
	snap := usersSnapshot()
	snap.ModuleDecls[0].Classes[0].Decorators = []astx.Decorator{
		{Name: "Controller", Args: []astx.DecoratorArg{literal("users"), literal("extra")}},
	}

	_, err := New(snap, quietDiag()).Analyze()
	require.Error(t, err)
	we, ok := err.(errors.WireError)
	require.True(t, ok)
	assert.Equal(t, errors.MarkerArgumentErrorCode, we.ErrorCode())
}

func TestAnalyzeRejectsComputedRoute(t *testing.T) {
	snap := usersSnapshot()
	snap.ModuleDecls[0].Classes[0].Methods[0].Decorators = []astx.Decorator{
		{Name: "Get", Args: []astx.DecoratorArg{{Value: "routeVar", Literal: false}}},
	}

	_, err := New(snap, quietDiag()).Analyze()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cannot be statically rendered")
}

func TestAnalyzeRejectsAmbiguousVerbs(t *testing.T) {
	snap := usersSnapshot()
	snap.ModuleDecls[0].Classes[0].Methods[0].Decorators = []astx.Decorator{
		{Name: "Get", Args: []astx.DecoratorArg{literal("list")}},
		{Name: "Post"},
	}

	_, err := New(snap, quietDiag()).Analyze()
	require.Error(t, err)
	we, ok := err.(errors.WireError)
	require.True(t, ok)
	assert.Equal(t, errors.AmbiguousVerbErrorCode, we.ErrorCode())
}

func TestAnalyzeMissingTypeDeclarationFatal(t *testing.T) {
	snap := usersSnapshot()
	delete(snap.Types["shared/roles"], "Role")

	_, err := New(snap, quietDiag()).Analyze()
	require.Error(t, err)
	we, ok := err.(errors.WireError)
	require.True(t, ok)
	assert.Equal(t, errors.SnapshotErrorCode, we.ErrorCode())
}
