package cli

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sdkwire/sdkwire/internal/utils"
)

const usersSnapshotJSON = `{
  "root": "/src/app",
  "modules": [
    {
      "name": "userModule",
      "classes": [
        {
          "name": "UserController",
          "sourcePath": "users/user.controller.ts",
          "decorators": [
            {"name": "Controller", "args": [{"value": "users", "literal": true}]}
          ],
          "methods": [
            {
              "name": "list",
              "decorators": [{"name": "Get", "args": [{"value": "list", "literal": true}]}],
              "returnType": {"text": "import(\"/src/app/users/dto\").UserDto[]"}
            },
            {
              "name": "find",
              "decorators": [{"name": "Get", "args": [{"value": ":id", "literal": true}]}],
              "params": [
                {
                  "name": "id",
                  "decorators": [{"name": "Param", "args": [{"value": "id", "literal": true}]}],
                  "type": {"text": "string"}
                }
              ],
              "returnType": {"text": "import(\"/src/app/users/dto\").UserDto"}
            },
            {
              "name": "create",
              "decorators": [{"name": "Post", "args": [{"value": "create", "literal": true}]}],
              "params": [
                {
                  "name": "payload",
                  "decorators": [{"name": "Body"}],
                  "type": {"text": "import(\"/src/app/users/dto\").CreateUserDto", "object": true}
                }
              ],
              "returnType": {"text": "import(\"/src/app/users/dto\").UserDto"}
            }
          ]
        }
      ]
    }
  ],
  "types": {
    "users/dto": {
      "UserDto": "interface UserDto {\n  id: string;\n  name: string;\n}",
      "CreateUserDto": "interface CreateUserDto {\n  name: string;\n}"
    }
  }
}`

func runConfig(t *testing.T, snapshotJSON string, flavors ...string) *Config {
	t.Helper()
	dir := t.TempDir()
	snapshot := filepath.Join(dir, "snapshot.json")
	require.NoError(t, os.WriteFile(snapshot, []byte(snapshotJSON), 0o644))
	if len(flavors) == 0 {
		flavors = []string{"plain"}
	}
	return &Config{
		Snapshot: snapshot,
		Output:   filepath.Join(dir, "sdk"),
		Flavors:  flavors,
		Format:   FormatConfig{Skip: true, TimeoutSeconds: 60},
	}
}

func silentDiag() *utils.DiagnosticSystem {
	return utils.NewWriterDiagnostics(utils.DiagnosticSilent, os.Stderr)
}

func TestRunEndToEnd(t *testing.T) {
	cfg := runConfig(t, usersSnapshotJSON)
	require.NoError(t, Run(context.Background(), cfg, silentDiag()))

	plain := filepath.Join(cfg.Output, "plain")
	controller, err := os.ReadFile(filepath.Join(plain, "userModule", "userController.ts"))
	require.NoError(t, err)

	body := string(controller)
	assert.Contains(t, body, "return request('GET', '/users/list', null, {});")
	assert.Contains(t, body, "return request('GET', `/users/${id}`, null, rest);")
	assert.Contains(t, body, "return request('POST', '/users/create', rest, {});")
	assert.Contains(t, body, "import type { CreateUserDto, UserDto } from '../_types/users/dto';")

	dto, err := os.ReadFile(filepath.Join(plain, "_types", "users", "dto.ts"))
	require.NoError(t, err)
	assert.Contains(t, string(dto), "export interface UserDto {")

	assert.FileExists(t, filepath.Join(plain, "index.ts"))
	assert.FileExists(t, filepath.Join(plain, "central.ts"))
}

func TestRunWritesOneTreePerFlavor(t *testing.T) {
	cfg := runConfig(t, usersSnapshotJSON, "plain", "builder")
	require.NoError(t, Run(context.Background(), cfg, silentDiag()))

	plain, err := os.ReadFile(filepath.Join(cfg.Output, "plain", "userModule", "userController.ts"))
	require.NoError(t, err)
	assert.NotContains(t, string(plain), "usersBuilder")

	builder, err := os.ReadFile(filepath.Join(cfg.Output, "builder", "userModule", "userController.ts"))
	require.NoError(t, err)
	assert.Contains(t, string(builder), "export const usersBuilder = {")
}

func TestRunRegenerates(t *testing.T) {
	cfg := runConfig(t, usersSnapshotJSON)
	require.NoError(t, Run(context.Background(), cfg, silentDiag()))
	require.NoError(t, Run(context.Background(), cfg, silentDiag()))

	assert.FileExists(t, filepath.Join(cfg.Output, "plain", "index.ts"))
}

func TestRunLeavesEarlierFlavorsAloneWhenALaterTargetIsForeign(t *testing.T) {
	cfg := runConfig(t, usersSnapshotJSON, "plain", "builder")

	// plain holds a previous generation, builder's target holds foreign files
	plainCfg := *cfg
	plainCfg.Flavors = []string{"plain"}
	require.NoError(t, Run(context.Background(), &plainCfg, silentDiag()))
	sentinel := filepath.Join(cfg.Output, "plain", "userModule", "stale.ts")
	require.NoError(t, os.WriteFile(sentinel, []byte("// Generated by sdkwire. Do not edit.\n"), 0o644))

	builderDir := filepath.Join(cfg.Output, "builder")
	require.NoError(t, os.MkdirAll(builderDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(builderDir, "notes.txt"), []byte("hand-written"), 0o644))

	err := Run(context.Background(), cfg, silentDiag())
	require.Error(t, err)

	// the recognized plain tree was not torn down before the check failed
	assert.FileExists(t, sentinel)
}

func TestRunWritesNothingOnAnalysisFailure(t *testing.T) {
	broken := `{
  "root": "/src/app",
  "modules": [
    {
      "name": "userModule",
      "classes": [
        {
          "name": "UserController",
          "sourcePath": "users/user.controller.ts",
          "decorators": [{"name": "Controller"}],
          "methods": [
            {
              "name": "confused",
              "decorators": [
                {"name": "Get", "args": [{"value": "a", "literal": true}]},
                {"name": "Post", "args": [{"value": "b", "literal": true}]}
              ],
              "returnType": {"text": "void"}
            }
          ]
        }
      ]
    }
  ]
}`
	cfg := runConfig(t, broken)
	err := Run(context.Background(), cfg, silentDiag())
	require.Error(t, err)
	assert.NoDirExists(t, cfg.Output)
}

func TestRunFailsOnMissingSnapshot(t *testing.T) {
	cfg := runConfig(t, usersSnapshotJSON)
	cfg.Snapshot = filepath.Join(t.TempDir(), "missing.json")

	err := Run(context.Background(), cfg, silentDiag())
	require.Error(t, err)
	assert.NoDirExists(t, cfg.Output)
}
