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
	"fmt"
	"log/slog"
	"os"
	"time"

	"fox-settings/audio"
	"fox-settings/display"
	"fox-settings/model"
	"fox-settings/panel"
	"fox-settings/reaper"
	"fox-settings/shared"
	"fox-settings/util"
)

type displayObj struct {
	ui display.UI
}

var (
	displayHandle displayObj
)

func configureFileLogger(logFile string, level slog.Level) (*os.File, error) {
	logPath, err := util.ResolveHomeDirPath(logFile)
	if err != nil {
		return nil, err
	}

	f, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("opening log file: %w", err)
	}

	handler := slog.NewTextHandler(f, &slog.HandlerOptions{
		Level: level,
	})
	logger := slog.New(handler)
	slog.SetDefault(logger)

	shared.HijackLogging()
	shared.EnableSlogLogging()

	return f, nil
}

func configureUiLogger(ui display.UI, level slog.Level) {
	handler := shared.NewUiLogHandler(ui, level, func(message string) {
		ui.IncrementErrorCount()
	})
	logger := slog.New(handler)
	slog.SetDefault(logger)

	shared.HijackLogging()
	shared.EnableSlogLogging()
}

func newUI(config *model.Config) display.UI {
	tickInterval := time.Duration(config.TickIntervalMs) * time.Millisecond

	if config.OutputType == model.OutputJSON {
		return display.NewJsonUI(os.Stdout, tickInterval)
	}

	return display.NewTui(tickInterval)
}

func buildPanels(sound *panel.SoundPanel, titles []string) []panel.Panel {
	if len(titles) == 0 {
		titles = panel.DefaultPlaceholders
	}

	panels := make([]panel.Panel, 0, len(titles)+1)
	panels = append(panels, sound)

	for _, title := range titles {
		panels = append(panels, panel.NewPlaceholder(title))
	}

	return panels
}

func runEngine(config *model.Config) error {
	var simulated *audio.SimulatedBackend

	opener := panel.BackendOpener(config.Backend)

	if config.SimulationOptions.EnableSimulation {
		simulated = audio.NewSimulatedBackend(audio.DefaultSimulatedControls()...)
		opener = func() (*audio.Device, error) {
			return audio.OpenBackend(simulated, "sim")
		}
	}

	sound := panel.NewSoundPanel(opener, config.MasterControl, config.MasterIndex)

	displayHandle.ui = newUI(config)
	displayHandle.ui.Initialize(buildPanels(sound, config.Panels))

	reaper.Callback("restore logging", shared.RestoreLogging)

	level := slog.Level(config.LogLevel)

	if config.LogFile != "" {
		logFile, err := configureFileLogger(config.LogFile, level)
		if err != nil {
			return err
		}
		reaper.Callback("close log file", func() { logFile.Close() })
	} else {
		configureUiLogger(displayHandle.ui, level)
	}

	shared.CatchSigint(func() {
		slog.Info("Caught signal, calling reaper")
		reaper.Reap()
	})

	if simulated != nil {
		simulationShutdownChan := startSimulation(simulated, config.SimulationOptions)
		reaper.Callback("simulation", func() { simulationShutdownChan <- true })
	}

	// an unavailable device leaves the panel in its disabled state, the
	// rest of the application keeps running
	if err := sound.Activate(); err != nil {
		slog.Warn("Sound panel disabled: " + err.Error())
	}

	// the panel must outlive the UI loop that drives it
	reaper.Callback("sound panel", sound.Deactivate)

	displayHandle.ui.Start()
	reaper.Callback("ui", displayHandle.ui.Shutdown)

	reaper.Wait()

	return nil
}
