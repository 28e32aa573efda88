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
package app

import (
	"log/slog"
	"os"

	"fox-settings/model"
	"fox-settings/util"

	"github.com/spf13/cobra"
)

var (
	// arguments
	argSimulate             bool
	argSimulateFreezeLevels bool
	argConfigFile           string
	argBackend              string
	argOutputType           string
	argLogFile              string

	rootCmd = &cobra.Command{
		Use:   "fox-settings",
		Short: "Terminal system settings, starting with the audio mixer",

		Run: func(cmd *cobra.Command, args []string) {
			config := readConfig()

			if err := runEngine(config); err != nil {
				slog.Error(err.Error())
				os.Exit(1)
			}
		},
	}
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&argConfigFile, "config", "c", "", "Name or path of the yaml config file (default "+util.DefaultConfigFile+")")
	rootCmd.PersistentFlags().StringVarP(&argBackend, "backend", "b", "", "Mixer backend: pulse, pulse/<server>, alsa/<card> or sim")
	rootCmd.PersistentFlags().StringVarP(&argOutputType, "output", "o", "", "Output type: tui or json")
	rootCmd.PersistentFlags().BoolVar(&argSimulate, "simulate", false, "Use a simulated mixer instead of real hardware")

	rootCmd.Flags().StringVar(&argLogFile, "log-file", "", "Write logs to this file instead of the UI")
	rootCmd.Flags().BoolVar(&argSimulateFreezeLevels, "simulate-freeze-levels", false, "Freeze the simulated levels (don't randomly drift them)")

	rootCmd.AddCommand(controlsCmd)
}

func commandLineArgs() *model.CommandLineArgs {
	return &model.CommandLineArgs{
		Simulate:             argSimulate,
		SimulateFreezeLevels: argSimulateFreezeLevels,
		ConfigFile:           argConfigFile,
		Backend:              argBackend,
		OutputType:           argOutputType,
		LogFile:              argLogFile,
	}
}

func readConfig() *model.Config {
	config, err := util.ReadConfig(commandLineArgs())
	if err != nil {
		slog.Error("Failed to read configuration: " + err.Error())
		os.Exit(1)
	}

	return config
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()

	if err != nil {
		os.Exit(1)
	}
}
