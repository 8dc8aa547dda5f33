package project

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"

	"github.com/piwi3910/StickCut/internal/model"
)

// RunDefaults mirrors the optional stickcut.toml file: cutting parameter
// defaults applied when a project does not override them.
type RunDefaults struct {
	Kerf         *float64 `toml:"kerf"`
	MinOffcut    *float64 `toml:"min_offcut"`
	Tolerance    *float64 `toml:"tolerance"`
	EnforceGrain *bool    `toml:"grain_direction_enforcement"`
	Priority     *string  `toml:"optimization_priority"`
	AllowResaw   *bool    `toml:"allow_resaw"`
	AllowPlaning *bool    `toml:"allow_planing"`
	MaxPlaning   *float64 `toml:"max_planing"`
}

// LoadRunDefaults parses a TOML defaults file and applies it over the
// built-in parameter defaults. A missing file is not an error. Unknown
// keys are rejected so typos do not silently change a run.
func LoadRunDefaults(path string) (model.CuttingParameters, error) {
	params := model.DefaultParameters()

	var defaults RunDefaults
	meta, err := toml.DecodeFile(path, &defaults)
	if err != nil {
		if os.IsNotExist(err) {
			return params, nil
		}
		return params, fmt.Errorf("failed to parse defaults file %s: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return params, fmt.Errorf("unknown key %q in defaults file %s", undecoded[0].String(), path)
	}

	if defaults.Kerf != nil {
		params.Kerf = *defaults.Kerf
	}
	if defaults.MinOffcut != nil {
		params.MinOffcut = *defaults.MinOffcut
	}
	if defaults.Tolerance != nil {
		params.Tolerance = *defaults.Tolerance
	}
	if defaults.EnforceGrain != nil {
		params.EnforceGrain = *defaults.EnforceGrain
	}
	if defaults.Priority != nil {
		params.Priority = model.OptimizationPriority(*defaults.Priority)
	}
	if defaults.AllowResaw != nil {
		params.AllowResaw = *defaults.AllowResaw
	}
	if defaults.AllowPlaning != nil {
		params.AllowPlaning = *defaults.AllowPlaning
	}
	if defaults.MaxPlaning != nil {
		params.MaxPlaning = *defaults.MaxPlaning
	}
	return params, nil
}
