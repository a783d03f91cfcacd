package registry

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os/exec"
	"strings"

	"github.com/modctx/cli/internal/errors"
	"github.com/modctx/cli/internal/manifest"
	"github.com/modctx/cli/internal/output"
)

// editionHint is surfaced on registry misses; the most common cause of
// a missing module is an edition/tag filter on the gallery side.
const editionHint = "The module may exist but not for the current runtime edition. " +
	"Check the module's supported editions on the gallery."

// Gallery is a Client backed by the scripting runtime's own package
// manager, invoked through the runtime binary.
type Gallery struct {
	// Shell is the runtime binary to invoke.
	Shell string

	// Repository is the gallery modules are searched and installed from.
	Repository string
}

// NewGallery creates a gallery client for the given runtime binary and
// repository.
func NewGallery(shell, repository string) *Gallery {
	return &Gallery{Shell: shell, Repository: repository}
}

// galleryRecord is the wire shape of one module record from the runtime.
type galleryRecord struct {
	Name         string              `json:"Name"`
	Version      string              `json:"Version"`
	ModuleBase   string              `json:"ModuleBase"`
	Dependencies []galleryDependency `json:"Dependencies"`
}

// galleryDependency is one entry of a find result's dependency list.
type galleryDependency struct {
	CanonicalID string `json:"CanonicalId"`
}

// Find implements Client.
func (g *Gallery) Find(ctx context.Context, name, version string) (*ModuleData, error) {
	script := fmt.Sprintf(
		"Find-Module -Name %s -Repository %s", quote(name), quote(g.Repository))
	if version != "" {
		script += " -RequiredVersion " + quote(version)
	}
	script += " | Select-Object Name," +
		"@{n='Version';e={$_.Version.ToString()}}," +
		"@{n='Dependencies';e={@($_.Dependencies | ForEach-Object { @{CanonicalId=$_.CanonicalId} })}}" +
		" | ConvertTo-Json -Depth 4"

	raw, err := g.run(ctx, script)
	if err != nil {
		return nil, classify(err, name)
	}

	records, err := decodeRecords(raw)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, errors.NewNotFoundError("module "+name+" not found in "+g.Repository, editionHint)
	}

	r := records[0]
	data := &ModuleData{Name: r.Name, Version: r.Version}
	for _, d := range r.Dependencies {
		data.Dependencies = append(data.Dependencies, d.CanonicalID)
	}
	return data, nil
}

// Install implements Client. The structural condition selects which
// version parameter the package manager receives.
func (g *Gallery) Install(ctx context.Context, req InstallRequest) (*InstalledModuleRecord, error) {
	script := fmt.Sprintf(
		"Install-Module -Name %s -Repository %s -Force -Scope CurrentUser",
		quote(req.Name), quote(g.Repository))

	if req.Version != "" {
		switch req.Condition.OrDefault() {
		case manifest.ConditionMinimum:
			script += " -MinimumVersion " + quote(req.Version)
		case manifest.ConditionMaximum:
			script += " -MaximumVersion " + quote(req.Version)
		case manifest.ConditionRequired:
			script += " -RequiredVersion " + quote(req.Version)
		}
	}
	if req.SkipPublisherCheck {
		script += " -SkipPublisherCheck"
	}
	if !req.PassThru {
		if _, err := g.run(ctx, script); err != nil {
			return nil, classify(err, req.Name)
		}
		return nil, nil
	}

	script += " -PassThru | Select-Object Name," +
		"@{n='Version';e={$_.Version.ToString()}}," +
		"@{n='ModuleBase';e={$_.InstalledLocation}}" +
		" | ConvertTo-Json -Depth 4"

	raw, err := g.run(ctx, script)
	if err != nil {
		return nil, classify(err, req.Name)
	}

	records, err := decodeRecords(raw)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, nil
	}

	r := records[0]
	return &InstalledModuleRecord{Name: r.Name, Version: r.Version, BasePath: r.ModuleBase}, nil
}

// ListLocal implements Client.
func (g *Gallery) ListLocal(ctx context.Context, name string) ([]InstalledModuleRecord, error) {
	script := "Get-Module -ListAvailable"
	if name != "" {
		script += " -Name " + quote(name)
	}
	script += " | Select-Object Name," +
		"@{n='Version';e={$_.Version.ToString()}},ModuleBase" +
		" | ConvertTo-Json -Depth 4"

	raw, err := g.run(ctx, script)
	if err != nil {
		return nil, classify(err, name)
	}

	records, err := decodeRecords(raw)
	if err != nil {
		return nil, err
	}

	return toInstalledRecords(records), nil
}

// ListLoaded enumerates the modules loaded in the runtime session.
func (g *Gallery) ListLoaded(ctx context.Context) ([]InstalledModuleRecord, error) {
	script := "Get-Module | Select-Object Name," +
		"@{n='Version';e={$_.Version.ToString()}},ModuleBase" +
		" | ConvertTo-Json -Depth 4"

	raw, err := g.run(ctx, script)
	if err != nil {
		return nil, classify(err, "")
	}

	records, err := decodeRecords(raw)
	if err != nil {
		return nil, err
	}

	return toInstalledRecords(records), nil
}

// run executes a script through the runtime binary and returns stdout.
func (g *Gallery) run(ctx context.Context, script string) ([]byte, error) {
	output.Debug("runtime exec", "shell", g.Shell, "script", script)

	cmd := exec.CommandContext(ctx, g.Shell, "-NoProfile", "-NonInteractive", "-Command", script)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg == "" {
			msg = err.Error()
		}
		return nil, fmt.Errorf("runtime command failed: %s", msg)
	}

	return stdout.Bytes(), nil
}

// decodeRecords parses runtime JSON output. A single result is emitted
// as a bare object; normalize it to a one-element slice.
func decodeRecords(raw []byte) ([]galleryRecord, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return nil, nil
	}

	if trimmed[0] == '{' {
		var one galleryRecord
		if err := json.Unmarshal(trimmed, &one); err != nil {
			return nil, errors.NewParseError("malformed runtime output: "+err.Error(), string(trimmed))
		}
		return []galleryRecord{one}, nil
	}

	var many []galleryRecord
	if err := json.Unmarshal(trimmed, &many); err != nil {
		return nil, errors.NewParseError("malformed runtime output: "+err.Error(), string(trimmed))
	}
	return many, nil
}

func toInstalledRecords(records []galleryRecord) []InstalledModuleRecord {
	out := make([]InstalledModuleRecord, 0, len(records))
	for _, r := range records {
		out = append(out, InstalledModuleRecord{
			Name:     r.Name,
			Version:  r.Version,
			BasePath: r.ModuleBase,
		})
	}
	return out
}

// classify maps runtime command failures onto the error taxonomy.
func classify(err error, name string) error {
	msg := err.Error()
	if strings.Contains(msg, "No match was found") {
		what := "module"
		if name != "" {
			what = "module " + name
		}
		return errors.NewNotFoundError(what+" not found: "+msg, editionHint)
	}
	return err
}

// quote wraps a value in single quotes for the runtime command line.
func quote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}
