// =================================================================================
//
//			fox-settings - https://www.foxhollow.cc/projects/fox-settings/
//
//		 Fox Settings is a simple terminal utility for managing system settings,
//	  starting with the mixer controls of the local audio devices
//
//		 Copyright (c) 2024 Steve Cross <flip@foxhollow.cc>
//
//			Licensed under the Apache License, Version 2.0 (the "License");
//			you may not use this file except in compliance with the License.
//			You may obtain a copy of the License at
//
//			     http://www.apache.org/licenses/LICENSE-2.0
//
//			Unless required by applicable law or agreed to in writing, software
//			distributed under the License is distributed on an "AS IS" BASIS,
//			WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
//			See the License for the specific language governing permissions and
//			limitations under the License.
//
// =================================================================================
package util

import (
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"fox-settings/model"
)

const (
	DefaultConfigFile     = "fox-settings.yaml"
	DefaultBackend        = "pulse"
	DefaultMasterControl  = "Master"
	DefaultTickIntervalMs = 50

	simulationBackend = "sim"
)

func ReadConfig(args *model.CommandLineArgs) (*model.Config, error) {
	outputTypes := make([]string, 0, len(model.OutputTypeMap))
	for key := range model.OutputTypeMap {
		outputTypes = append(outputTypes, strings.ToLower(key))
	}
	slices.Sort(outputTypes)

	if args.OutputType != "" && !slices.Contains(outputTypes, strings.ToLower(args.OutputType)) {
		return nil, fmt.Errorf("invalid output type specified: %s. Valid options: %s", args.OutputType, strings.Join(outputTypes, ", "))
	}

	config := &model.Config{
		Backend:        DefaultBackend,
		MasterControl:  DefaultMasterControl,
		MasterIndex:    0,
		TickIntervalMs: DefaultTickIntervalMs,
		LogLevel:       int(slog.LevelInfo),
		OutputType:     model.OutputTUI,
		SimulationOptions: &model.SimulationOptions{
			EnableSimulation: false,
			FreezeLevels:     false,
			IntervalMs:       150,
		},
	}

	configFile := args.ConfigFile
	if configFile == "" {
		configFile = DefaultConfigFile
	}

	if err := ReadYamlFile(config, configFile); err != nil {
		// the default file is optional, an explicitly named one is not
		if args.ConfigFile != "" || !errors.Is(err, ErrNoYamlFile) {
			return nil, err
		}
	}

	if config.SimulationOptions == nil {
		config.SimulationOptions = &model.SimulationOptions{IntervalMs: 150}
	}

	if config.Output != "" {
		outputType, ok := model.OutputTypeMap[strings.ToLower(config.Output)]
		if !ok {
			return nil, fmt.Errorf("invalid output_type in config: %s. Valid options: %s", config.Output, strings.Join(outputTypes, ", "))
		}
		config.OutputType = outputType
	}

	if args.OutputType != "" {
		config.OutputType = model.OutputTypeMap[strings.ToLower(args.OutputType)]
	}

	if args.Backend != "" {
		config.Backend = args.Backend
	}

	if args.LogFile != "" {
		config.LogFile = args.LogFile
	}

	if args.Simulate {
		config.SimulationOptions.EnableSimulation = true
	}

	if args.SimulateFreezeLevels {
		config.SimulationOptions.FreezeLevels = true
	}

	if config.SimulationOptions.EnableSimulation {
		config.Backend = simulationBackend
	}

	if config.MasterControl == "" {
		config.MasterControl = DefaultMasterControl
	}

	if config.TickIntervalMs <= 0 {
		config.TickIntervalMs = DefaultTickIntervalMs
	}

	if config.SimulationOptions.IntervalMs <= 0 {
		config.SimulationOptions.IntervalMs = 150
	}

	return config, nil
}
