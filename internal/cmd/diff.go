package cmd

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/gonvenience/ytbx"
	"github.com/homeport/dyff/pkg/dyff"
	"github.com/spf13/cobra"

	"github.com/modctx/cli/internal/errors"
	"github.com/modctx/cli/internal/manifest"
	"github.com/modctx/cli/internal/output"
)

// NewDiffCmd creates the diff command.
func NewDiffCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "diff <rootA> <rootB>",
		Short: "Compare two context manifests",
		Long: `Compare the manifests of two contexts and report the differences
in their pinned module sets.`,
		Args: cobra.ExactArgs(2),
		RunE: func(c *cobra.Command, args []string) error {
			return runDiff(args[0], args[1])
		},
	}
}

func runDiff(rootA, rootB string) error {
	fromInput, err := manifestInput(rootA)
	if err != nil {
		return err
	}
	toInput, err := manifestInput(rootB)
	if err != nil {
		return err
	}

	report, err := dyff.CompareInputFiles(fromInput, toInput)
	if err != nil {
		return fmt.Errorf("comparing manifests: %w", err)
	}

	if len(report.Diffs) == 0 {
		output.Println("Contexts are identical")
		return nil
	}

	rendered, err := renderDyffReport(report, output.IsTTY())
	if err != nil {
		return err
	}
	output.Println(rendered)

	return nil
}

// manifestInput loads a context manifest as a dyff input file.
func manifestInput(root string) (ytbx.InputFile, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return ytbx.InputFile{}, err
	}

	path := manifest.PathFor(absRoot)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return ytbx.InputFile{}, errors.NewNotFoundError("no manifest at "+path, "")
		}
		return ytbx.InputFile{}, errors.NewIOError("reading manifest: "+err.Error(), path)
	}

	docs, err := ytbx.LoadYAMLDocuments(data)
	if err != nil {
		return ytbx.InputFile{}, errors.NewParseError("malformed manifest: "+err.Error(), path)
	}

	return ytbx.InputFile{
		Location:  path,
		Documents: docs,
	}, nil
}

// renderDyffReport renders a dyff report to a string.
func renderDyffReport(report dyff.Report, useColor bool) (string, error) {
	var buf bytes.Buffer

	reportWriter := &dyff.HumanReport{
		Report:            report,
		DoNotInspectCerts: true,
		NoTableStyle:      !useColor,
		OmitHeader:        true,
	}

	if err := reportWriter.WriteReport(io.Writer(&buf)); err != nil {
		return "", fmt.Errorf("writing report: %w", err)
	}

	lines := strings.Split(buf.String(), "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " \t")
	}

	return strings.TrimSpace(strings.Join(lines, "\n")), nil
}
