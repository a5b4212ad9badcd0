package platform

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
)

// DefaultAppName names the per-user config and data directories.
const DefaultAppName = "sortboard"

const (
	configFileName  = "config.toml"
	journalFileName = "journal.db"
	logDirName      = "log"
	devSuffix       = "-dev"
)

var (
	ErrEmptyBaseDir = errors.New("empty base dir")
	ErrEmptyAppName = errors.New("empty app name")
)

// Paths holds the per-user locations for config, the drag journal, and logs.
type Paths struct {
	ConfigPath string
	DataDir    string
	DBPath     string
	LogDir     string
}

// Options selects the app directory name.
type Options struct {
	AppName string
	DevMode bool
}

// Bases are the OS-level config and data roots an app directory is placed under.
type Bases struct {
	Config string
	Data   string
}

// AppDirName returns the directory name for opts; dev mode appends "-dev".
func AppDirName(opts Options) string {
	name := strings.TrimSpace(opts.AppName)
	if name == "" {
		name = DefaultAppName
	}
	if opts.DevMode {
		name += devSuffix
	}
	return name
}

// DefaultPaths returns the production paths for the default app name.
func DefaultPaths() (Paths, error) {
	return DefaultPathsWithOptions(Options{})
}

// DefaultPathsWithOptions resolves paths for the running OS and user.
func DefaultPathsWithOptions(opts Options) (Paths, error) {
	bases, err := userBases(runtime.GOOS)
	if err != nil {
		return Paths{}, err
	}
	return Resolve(runtime.GOOS, os.Getenv, bases, AppDirName(opts))
}

func userBases(goos string) (Bases, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return Bases{}, fmt.Errorf("user config dir: %w", err)
	}
	bases := Bases{Config: configDir, Data: configDir}
	if goos == "linux" {
		home, err := os.UserHomeDir()
		if err != nil {
			return Bases{}, fmt.Errorf("user home dir: %w", err)
		}
		bases.Data = filepath.Join(home, ".local", "share")
	}
	return bases, nil
}

// Resolve places appDir under the OS bases. getenv supplies the XDG and
// AppData overrides; a nil getenv means no overrides.
func Resolve(goos string, getenv func(string) string, bases Bases, appDir string) (Paths, error) {
	if strings.TrimSpace(bases.Config) == "" || strings.TrimSpace(bases.Data) == "" {
		return Paths{}, ErrEmptyBaseDir
	}
	appDir = strings.TrimSpace(appDir)
	if appDir == "" {
		return Paths{}, ErrEmptyAppName
	}
	if getenv == nil {
		getenv = func(string) string { return "" }
	}

	var configEnv, dataEnv string
	switch goos {
	case "linux":
		configEnv, dataEnv = "XDG_CONFIG_HOME", "XDG_DATA_HOME"
	case "windows":
		configEnv, dataEnv = "APPDATA", "LOCALAPPDATA"
	}
	if configEnv != "" {
		if v := strings.TrimSpace(getenv(configEnv)); v != "" {
			bases.Config = v
		}
		if v := strings.TrimSpace(getenv(dataEnv)); v != "" {
			bases.Data = v
		}
	}

	dataDir := filepath.Join(bases.Data, appDir)
	return Paths{
		ConfigPath: filepath.Join(bases.Config, appDir, configFileName),
		DataDir:    dataDir,
		DBPath:     filepath.Join(dataDir, journalFileName),
		LogDir:     filepath.Join(dataDir, logDirName),
	}, nil
}
