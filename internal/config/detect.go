package config

import (
	"encoding/json"
	"os"
	"path"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"golang.org/x/mod/modfile"
	"golang.org/x/mod/module"
)

// DetectProjectName names the project after the manifest of the language
// sources it holds: the last element of the go.mod module path (without a
// /vN suffix), else the package.json name, else the pyproject.toml name.
// Unreadable or malformed manifests are skipped. Falls back to the
// directory's base name.
func DetectProjectName(dir string) string {
	for _, detect := range []func(string) string{
		nameFromGoMod,
		nameFromPackageJSON,
		nameFromPyproject,
	} {
		if name := detect(dir); name != "" {
			return name
		}
	}
	return filepath.Base(dir)
}

func nameFromGoMod(dir string) string {
	data, err := os.ReadFile(filepath.Join(dir, "go.mod"))
	if err != nil {
		return ""
	}
	modPath := modfile.ModulePath(data)
	if modPath == "" {
		return ""
	}
	if prefix, _, ok := module.SplitPathVersion(modPath); ok && prefix != "" {
		modPath = prefix
	}
	return path.Base(modPath)
}

func nameFromPackageJSON(dir string) string {
	data, err := os.ReadFile(filepath.Join(dir, "package.json"))
	if err != nil {
		return ""
	}
	var pkg struct {
		Name string `json:"name"`
	}
	if json.Unmarshal(data, &pkg) != nil {
		return ""
	}
	return pkg.Name
}

func nameFromPyproject(dir string) string {
	var py struct {
		Project struct {
			Name string `toml:"name"`
		} `toml:"project"`
	}
	if _, err := toml.DecodeFile(filepath.Join(dir, "pyproject.toml"), &py); err != nil {
		return ""
	}
	return py.Project.Name
}
