package utils

import (
	"os"
	"path/filepath"
	"runtime"
)

// ConfigEnv overrides the config file location when set.
const ConfigEnv = "MOD_PROFILE_CONFIG"

const (
	DataFolder   = "data"
	TagsFolder   = "tags"
	snapshotDir  = "profiles"
	statusFile   = ".mod-profile.ini"
	historyFile  = ".mod-profile-history.db"
	archiveExt   = ".zip"
	configFolder = "mod-profile"
	configFile   = "config.ini"
)

// ModFolders lists the working-directory folders a profile captures.
var ModFolders = []string{DataFolder, TagsFolder}

// DefaultConfigPath returns the path to config.ini.
// It honours $MOD_PROFILE_CONFIG and otherwise uses the per-OS config location.
func DefaultConfigPath() string {
	if p := os.Getenv(ConfigEnv); p != "" {
		return p
	}

	var configDir string
	home, _ := os.UserHomeDir()

	switch runtime.GOOS {
	case "windows":
		configDir = os.Getenv("APPDATA")
	case "darwin":
		configDir = filepath.Join(home, "Library", "Application Support")
	default:
		configDir = os.Getenv("XDG_CONFIG_HOME")
		if configDir == "" {
			configDir = filepath.Join(home, ".config")
		}
	}

	return filepath.Join(configDir, configFolder, configFile)
}

// StatusPath is the hidden status file inside the working directory.
func StatusPath(workdir string) string {
	return filepath.Join(workdir, statusFile)
}

// HistoryPath is the sqlite history database inside the working directory.
func HistoryPath(workdir string) string {
	return filepath.Join(workdir, historyFile)
}

// SnapshotRoot holds one child directory per saved profile.
func SnapshotRoot(workdir string) string {
	return filepath.Join(workdir, snapshotDir)
}

// SnapshotPath returns the snapshot directory of profile name.
func SnapshotPath(workdir, name string) string {
	return filepath.Join(SnapshotRoot(workdir), name)
}

// ArchivePath returns the pristine archive for folder, e.g. <workdir>/data.zip.
func ArchivePath(workdir, folder string) string {
	return filepath.Join(workdir, folder+archiveExt)
}
