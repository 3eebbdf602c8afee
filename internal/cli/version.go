package cli

import (
	"runtime"
	"runtime/debug"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aidanlsb/project-cli/internal/buildinfo"
)

const defaultModulePath = "github.com/aidanlsb/project-cli"

type versionInfo struct {
	Version    string `json:"version"`
	ModulePath string `json:"module_path"`
	Commit     string `json:"commit,omitempty"`
	CommitTime string `json:"commit_time,omitempty"`
	Modified   bool   `json:"modified"`
	GoVersion  string `json:"go_version"`
	GOOS       string `json:"goos"`
	GOARCH     string `json:"goarch"`
}

var readBuildInfo = debug.ReadBuildInfo

func (a *app) versionCmd() *cobra.Command {
	cmd := a.command("version")
	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		info := currentVersionInfo()

		if a.jsonOutput {
			a.outputSuccess(info, nil)
			return nil
		}

		a.printf("project %s\n", info.Version)
		a.printf("module: %s\n", info.ModulePath)
		if info.Commit != "" {
			a.printf("commit: %s\n", info.Commit)
		}
		if info.CommitTime != "" {
			a.printf("commit_time: %s\n", info.CommitTime)
		}
		a.printf("go: %s\n", info.GoVersion)
		a.printf("platform: %s/%s\n", info.GOOS, info.GOARCH)
		a.printf("modified: %t\n", info.Modified)
		return nil
	}
	return cmd
}

func currentVersionInfo() versionInfo {
	info := versionInfo{
		Version:    "devel",
		ModulePath: defaultModulePath,
		GoVersion:  runtime.Version(),
		GOOS:       runtime.GOOS,
		GOARCH:     runtime.GOARCH,
	}

	buildInfo, ok := readBuildInfo()
	if !ok || buildInfo == nil {
		applyLdflagsFallback(&info)
		return info
	}

	if buildInfo.Main.Path != "" {
		info.ModulePath = buildInfo.Main.Path
	}
	info.Version = normalizeVersion(buildInfo.Main.Version)

	if buildInfo.GoVersion != "" {
		info.GoVersion = buildInfo.GoVersion
	}
	if val := buildSetting(buildInfo, "GOOS"); val != "" {
		info.GOOS = val
	}
	if val := buildSetting(buildInfo, "GOARCH"); val != "" {
		info.GOARCH = val
	}

	info.Commit = buildSetting(buildInfo, "vcs.revision")
	info.CommitTime = buildSetting(buildInfo, "vcs.time")
	info.Modified = strings.EqualFold(buildSetting(buildInfo, "vcs.modified"), "true")
	applyLdflagsFallback(&info)

	return info
}

func normalizeVersion(version string) string {
	if version == "" || version == "(devel)" {
		return "devel"
	}
	return version
}

func buildSetting(info *debug.BuildInfo, key string) string {
	if info == nil {
		return ""
	}
	for _, setting := range info.Settings {
		if setting.Key == key {
			return setting.Value
		}
	}
	return ""
}

func applyLdflagsFallback(info *versionInfo) {
	if info == nil {
		return
	}

	if info.Version == "devel" && buildinfo.Version != "" {
		info.Version = normalizeVersion(buildinfo.Version)
	}
	if info.Commit == "" && buildinfo.Commit != "" {
		info.Commit = buildinfo.Commit
	}
	if info.CommitTime == "" && buildinfo.Date != "" {
		info.CommitTime = buildinfo.Date
	}
}
