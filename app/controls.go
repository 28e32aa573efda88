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
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"

	"fox-settings/audio"
	"fox-settings/model"

	"github.com/spf13/cobra"
)

var controlsCmd = &cobra.Command{
	Use:   "controls",
	Short: "List the mixer controls of the configured backend and exit",

	Run: func(cmd *cobra.Command, args []string) {
		config := readConfig()

		device, err := audio.Open(config.Backend)
		if err != nil {
			slog.Error(err.Error())
			os.Exit(1)
		}
		defer device.Close()

		if err := listControls(cmd.OutOrStdout(), device, config.OutputType); err != nil {
			slog.Error(err.Error())
			os.Exit(1)
		}
	},
}

func listControls(out io.Writer, device *audio.Device, outputType model.OutputType) error {
	descriptors, err := audio.Enumerate(device)
	if err != nil {
		return err
	}

	if outputType == model.OutputJSON {
		descriptions := make([]model.ControlDescription, len(descriptors))

		for i, desc := range descriptors {
			descriptions[i] = model.ControlDescription{
				Name:      desc.ID.Name,
				Index:     desc.ID.Index,
				Direction: desc.Direction.String(),
				Channel:   desc.Channel.String(),
				Min:       desc.Min,
				Max:       desc.Max,
			}
		}

		encoder := json.NewEncoder(out)
		encoder.SetIndent("", "  ")
		return encoder.Encode(descriptions)
	}

	fmt.Fprintf(out, "%-24s %-9s %-6s %8s %8s\n", "CONTROL", "DIRECTION", "CHAN", "MIN", "MAX")

	for _, desc := range descriptors {
		fmt.Fprintf(out, "%-24s %-9s %-6s %8d %8d\n", desc.ID, desc.Direction, desc.Channel, desc.Min, desc.Max)
	}

	return nil
}
