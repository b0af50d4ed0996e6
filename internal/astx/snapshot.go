package astx

import (
	"encoding/json"
	"fmt"
	"os"
)

// Snapshot is a serialized view of the analyzed source tree, produced by
// an external analyzer and consumed here through the Service interface.
// It doubles as the fixture format for tests.
type Snapshot struct {
	// AnalysisRoot is the root all source paths are relative to
	AnalysisRoot string `json:"root"`

	// ModuleDecls lists modules with their owned classes, source order
	ModuleDecls []ModuleDecl `json:"modules"`

	// Types maps source file -> type name -> declaration text
	Types map[string]map[string]string `json:"types,omitempty"`
}

var _ Service = (*Snapshot)(nil)

// Root returns the analysis root
func (s *Snapshot) Root() string {
	return s.AnalysisRoot
}

// Modules enumerates module declarations
func (s *Snapshot) Modules() []ModuleDecl {
	return s.ModuleDecls
}

// TypeDeclaration returns the recorded declaration text for (file, name)
func (s *Snapshot) TypeDeclaration(file, name string) (string, error) {
	decls, ok := s.Types[file]
	if !ok {
		return "", fmt.Errorf("no type declarations recorded for file %q", file)
	}
	code, ok := decls[name]
	if !ok {
		return "", fmt.Errorf("type %q is not declared in file %q", name, file)
	}
	return code, nil
}

// Load reads a snapshot file written by the external analyzer
func Load(path string) (*Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read snapshot %s: %w", path, err)
	}
	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("decode snapshot %s: %w", path, err)
	}
	if snap.AnalysisRoot == "" {
		return nil, fmt.Errorf("snapshot %s does not declare an analysis root", path)
	}
	return &snap, nil
}
