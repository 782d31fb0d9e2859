package prefabs

import (
	"embed"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// Tuning files and input scripts ship inside the binary. When the binary
// runs from the repo root the copies under prefabs/ win, so edits apply
// without a rebuild.
var (
	//go:embed *.yaml
	tuningFiles embed.FS
	//go:embed scripts/*.tengo
	scriptFiles embed.FS
)

// Load reads a tuning file such as "camera.yaml" or "prefabs/camera.yaml".
func Load(name string) ([]byte, error) {
	return readOverride(tuningFiles, trimDirs(name, "prefabs"))
}

// LoadScript reads an input script. "idle", "idle.tengo", "scripts/idle"
// and "prefabs/scripts/idle.tengo" all name the same file.
func LoadScript(name string) ([]byte, error) {
	base := trimDirs(name, "prefabs", "scripts")
	if path.Ext(base) != ".tengo" {
		base += ".tengo"
	}
	return readOverride(scriptFiles, path.Join("scripts", base))
}

// trimDirs strips each leading directory in turn from a slash path.
func trimDirs(name string, dirs ...string) string {
	s := filepath.ToSlash(name)
	for _, dir := range dirs {
		s = strings.TrimPrefix(s, dir+"/")
	}
	return s
}

func readOverride(files embed.FS, rel string) ([]byte, error) {
	if data, err := os.ReadFile(filepath.Join("prefabs", filepath.FromSlash(rel))); err == nil {
		return data, nil
	}
	return files.ReadFile(rel)
}
