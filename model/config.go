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
package model

type OutputType int

const (
	OutputTUI OutputType = iota
	OutputJSON
)

var OutputTypeMap = map[string]OutputType{
	"tui":  OutputTUI,
	"json": OutputJSON,
}

func (o OutputType) String() string {
	for name, outputType := range OutputTypeMap {
		if outputType == o {
			return name
		}
	}
	return "unknown"
}

type CommandLineArgs struct {
	Simulate             bool
	SimulateFreezeLevels bool

	ConfigFile string
	Backend    string
	OutputType string
	LogFile    string
}

type Config struct {
	Backend        string `yaml:"backend,omitempty"`
	MasterControl  string `yaml:"master_control,omitempty"`
	MasterIndex    int    `yaml:"master_index,omitempty"`
	TickIntervalMs int    `yaml:"tick_interval_ms,omitempty"`
	LogLevel       int    `yaml:"log_level,omitempty"`
	LogFile        string `yaml:"log_file,omitempty"`

	// read as a string so that the file can say "json" like the command line does
	Output     string     `yaml:"output_type,omitempty"`
	OutputType OutputType `yaml:"-"`

	// titles of the placeholder panels listed after Sound
	Panels []string `yaml:"panels,omitempty"`

	SimulationOptions *SimulationOptions `yaml:"simulation_options"`
}

type SimulationOptions struct {
	EnableSimulation bool `yaml:"enable,omitempty"`
	FreezeLevels     bool `yaml:"freeze_levels,omitempty"`
	IntervalMs       int  `yaml:"interval_ms,omitempty"`
}
