package configloader

import (
	"cmp"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"slices"
)

// ConfigPaths holds the config file found for each layer. Empty means none.
type ConfigPaths struct {
	System   string
	User     string
	Project  string
	Explicit string
}

type layer struct {
	name string
	path string
}

// layers returns the file layers Load reads, lowest precedence first.
func (p *ConfigPaths) layers(opts LoadOptions) []layer {
	all := []struct {
		layer
		skip bool
	}{
		{layer{"system", p.System}, opts.IgnoreSystemConfig},
		{layer{"user", p.User}, opts.IgnoreUserConfig},
		{layer{"project", p.Project}, opts.IgnoreProjectConfig},
		{layer{"explicit", p.Explicit}, false},
	}

	var out []layer
	for _, l := range all {
		if !l.skip && l.path != "" {
			out = append(out, l.layer)
		}
	}
	return out
}

// projectConfigNames are searched in each directory, in order.
//
//nolint:gochecknoglobals // Read-only lookup table.
var projectConfigNames = []string{ProjectConfigName, ".wordfreq.yaml", "wordfreq.yml", "wordfreq.yaml"}

// vcsMarkers end the upward project config search.
//
//nolint:gochecknoglobals // Read-only lookup table.
var vcsMarkers = []string{".git", ".hg", ".svn"}

// DiscoverPaths locates the system, user, and project config files.
func DiscoverPaths(ctx context.Context, workDir string) (*ConfigPaths, error) {
	project, err := FindProjectConfig(ctx, workDir)
	if err != nil {
		return nil, err
	}

	return &ConfigPaths{
		System:  firstConfigIn(systemConfigDir()),
		User:    firstConfigIn(userConfigDir()),
		Project: project,
	}, nil
}

func systemConfigDir() string {
	if runtime.GOOS == "windows" {
		if programData := os.Getenv("ProgramData"); programData != "" {
			return filepath.Join(programData, "wordfreq")
		}
		return `C:\ProgramData\wordfreq`
	}
	return "/etc/wordfreq"
}

// userConfigDir honors XDG_CONFIG_HOME on every platform, then ~/.config.
func userConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "wordfreq")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "wordfreq")
}

func firstConfigIn(dir string) string {
	if dir == "" {
		return ""
	}
	for _, name := range []string{"config.yaml", "config.yml"} {
		if path := filepath.Join(dir, name); isFile(path) {
			return path
		}
	}
	return ""
}

// FindProjectConfig walks up from startDir (empty means the working
// directory) and returns the first project config file. The search stops
// after a directory holding a VCS marker, the home directory, or the
// filesystem root. It returns "" when nothing is found.
func FindProjectConfig(ctx context.Context, startDir string) (string, error) {
	dir, err := filepath.Abs(cmp.Or(startDir, "."))
	if err != nil {
		return "", fmt.Errorf("resolve %s: %w", startDir, err)
	}
	home, _ := os.UserHomeDir()

	for {
		if err := ctx.Err(); err != nil {
			return "", err
		}

		if i := slices.IndexFunc(projectConfigNames, func(name string) bool {
			return isFile(filepath.Join(dir, name))
		}); i >= 0 {
			return filepath.Join(dir, projectConfigNames[i]), nil
		}

		parent := filepath.Dir(dir)
		if parent == dir || dir == home || isVCSRoot(dir) {
			return "", nil
		}
		dir = parent
	}
}

func isVCSRoot(dir string) bool {
	return slices.ContainsFunc(vcsMarkers, func(marker string) bool {
		info, err := os.Stat(filepath.Join(dir, marker))
		return err == nil && info.IsDir()
	})
}

func isFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}
