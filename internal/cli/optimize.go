package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/piwi3910/StickCut/internal/engine"
	"github.com/piwi3910/StickCut/internal/export"
	"github.com/piwi3910/StickCut/internal/importer"
	"github.com/piwi3910/StickCut/internal/model"
	"github.com/piwi3910/StickCut/internal/project"
)

// optimizeOpts holds the command-line flags for the optimize command.
type optimizeOpts struct {
	partsFile   string  // CSV or Excel part list, overrides project parts
	defaults    string  // TOML file with default cutting parameters
	output      string  // output base path (extension added per format)
	formats     []string
	timeout     time.Duration
	debugChecks bool

	kerf      float64
	tolerance float64
	minOffcut float64
	priority  string
	grain     bool
	resaw     bool
}

var knownFormats = map[string]bool{
	"json": true, "csv": true, "pdf": true, "svg": true,
	"xlsx": true, "dxf": true, "report": true, "labels": true,
}

// newOptimizeCmd creates the optimize command.
func newOptimizeCmd() *cobra.Command {
	var formatsStr string
	opts := optimizeOpts{
		timeout: 30 * time.Second,
	}

	cmd := &cobra.Command{
		Use:   "optimize [project.json]",
		Short: "Run the cutting plan optimizer",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.formats = parseFormats(formatsStr)
			for _, f := range opts.formats {
				if !knownFormats[f] {
					return fmt.Errorf("unknown format %q", f)
				}
			}
			projectPath := ""
			if len(args) == 1 {
				projectPath = args[0]
			}
			if projectPath == "" && opts.partsFile == "" {
				return fmt.Errorf("either a project file or --parts is required")
			}
			return runOptimize(cmd.Context(), projectPath, cmd, &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.partsFile, "parts", "p", "", "CSV or Excel part list (overrides project parts)")
	cmd.Flags().StringVar(&opts.defaults, "defaults", "", "TOML file with default cutting parameters")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "cutting-plan", "output base path, extension added per format")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): json (default), csv, pdf, svg, xlsx, dxf, report, labels (comma-separated)")
	cmd.Flags().DurationVar(&opts.timeout, "timeout", opts.timeout, "optimization time budget")
	cmd.Flags().BoolVar(&opts.debugChecks, "debug-checks", false, "enable internal consistency checks")

	cmd.Flags().Float64Var(&opts.kerf, "kerf", -1, "saw kerf in mm")
	cmd.Flags().Float64Var(&opts.tolerance, "tolerance", -1, "dimension tolerance in mm")
	cmd.Flags().Float64Var(&opts.minOffcut, "min-offcut", -1, "minimum reusable offcut length in mm")
	cmd.Flags().StringVar(&opts.priority, "priority", "", "optimization priority: efficiency, cost, speed")
	cmd.Flags().BoolVar(&opts.grain, "grain", false, "enforce grain direction along the stick length")
	cmd.Flags().BoolVar(&opts.resaw, "resaw", false, "allow resawing sticks into thinner layers")

	return cmd
}

func parseFormats(s string) []string {
	if s == "" {
		return []string{"json"}
	}
	parts := strings.Split(s, ",")
	for i := range parts {
		parts[i] = strings.ToLower(strings.TrimSpace(parts[i]))
	}
	return parts
}

func runOptimize(ctx context.Context, projectPath string, cmd *cobra.Command, opts *optimizeOpts) error {
	logger := loggerFromContext(ctx)

	proj, err := loadInputs(ctx, projectPath, opts)
	if err != nil {
		return err
	}

	params, err := resolveParams(proj.Parameters, cmd, opts)
	if err != nil {
		return err
	}

	engine.SetDebugChecks(opts.debugChecks)

	logger.Info("optimizing",
		"stocks", len(proj.Inventory),
		"parts", len(proj.Parts),
		"priority", params.Priority,
	)

	runCtx, cancel := context.WithTimeout(ctx, opts.timeout)
	defer cancel()

	result, err := engine.Optimize(runCtx, proj.Inventory, proj.Parts, params)
	if err != nil {
		return fmt.Errorf("optimization failed: %w", err)
	}

	logger.Info("done",
		"sticks", result.Summary.TotalSticks,
		"parts_cut", result.Summary.TotalPartsCut,
		"cuts", result.Summary.TotalCuts,
		"utilization", fmt.Sprintf("%.1f%%", result.Summary.OverallUtilization),
		"cost", fmt.Sprintf("%.2f", result.Summary.TotalCost),
	)
	if len(result.Unassigned) > 0 {
		for _, u := range result.Unassigned {
			logger.Warn("unassigned", "part", u.PartName, "quantity", u.Quantity, "reason", u.Reason)
		}
	}

	return writeOutputs(logger, opts, result, params)
}

// loadInputs assembles the project from a project file, an imported part
// list, or both. When no project file is given the default inventory is used.
func loadInputs(ctx context.Context, projectPath string, opts *optimizeOpts) (model.Project, error) {
	logger := loggerFromContext(ctx)

	proj := model.NewProject()
	if projectPath != "" {
		loaded, err := project.LoadProject(projectPath)
		if err != nil {
			return model.Project{}, err
		}
		proj = loaded
	} else {
		inv := model.DefaultInventory()
		for _, p := range inv.Stocks {
			proj.Inventory = append(proj.Inventory, p.ToLumberStock(100))
		}
		logger.Debug("using default inventory", "stocks", len(proj.Inventory))
	}

	if opts.partsFile != "" {
		var imported importer.ImportResult
		switch strings.ToLower(filepath.Ext(opts.partsFile)) {
		case ".xlsx", ".xls":
			imported = importer.ImportExcel(opts.partsFile)
		default:
			imported = importer.ImportCSV(opts.partsFile)
		}
		for _, w := range imported.Warnings {
			logger.Warn("import", "warning", w)
		}
		if len(imported.Errors) > 0 {
			return model.Project{}, fmt.Errorf("part list import failed: %s", strings.Join(imported.Errors, "; "))
		}
		proj.Parts = imported.Parts
		logger.Info("imported parts", "file", opts.partsFile, "count", len(proj.Parts))
	}

	return proj, nil
}

// resolveParams layers parameters: project values, then the TOML defaults
// file, then explicit command-line flags.
func resolveParams(base model.CuttingParameters, cmd *cobra.Command, opts *optimizeOpts) (model.CuttingParameters, error) {
	params := base
	if opts.defaults != "" {
		loaded, err := project.LoadRunDefaults(opts.defaults)
		if err != nil {
			return params, err
		}
		params = loaded
	}

	if opts.kerf >= 0 {
		params.Kerf = opts.kerf
	}
	if opts.tolerance >= 0 {
		params.Tolerance = opts.tolerance
	}
	if opts.minOffcut >= 0 {
		params.MinOffcut = opts.minOffcut
	}
	if opts.priority != "" {
		params.Priority = model.OptimizationPriority(opts.priority)
	}
	if cmd.Flags().Changed("grain") {
		params.EnforceGrain = opts.grain
	}
	if cmd.Flags().Changed("resaw") {
		params.AllowResaw = opts.resaw
	}

	return params, nil
}

// writeOutputs writes the result in every requested format.
func writeOutputs(logger *log.Logger, opts *optimizeOpts, result model.OptimizationResult, params model.CuttingParameters) error {
	for _, format := range opts.formats {
		path := opts.output + "." + extFor(format)
		var err error
		switch format {
		case "json":
			err = writeJSON(path, result)
		case "csv":
			err = export.ExportCSV(path, result)
		case "pdf":
			err = export.ExportPDF(path, result, params)
		case "svg":
			err = export.ExportSVG(path, result)
		case "xlsx":
			err = export.ExportXLSX(path, result)
		case "dxf":
			err = export.ExportDXF(path, result)
		case "report":
			err = export.ExportReport(path, result, params)
		case "labels":
			err = export.ExportLabels(path, result)
		}
		if err != nil {
			return fmt.Errorf("failed to write %s output: %w", format, err)
		}
		logger.Info("wrote", "format", format, "path", path)
	}
	return nil
}

func extFor(format string) string {
	switch format {
	case "report":
		return "txt"
	case "labels":
		return "labels.pdf"
	default:
		return format
	}
}

func writeJSON(path string, result model.OptimizationResult) error {
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(data, '\n'), 0o644)
}
