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
package display

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"fox-settings/panel"
	"fox-settings/reaper"
)

const jsonReportInterval = 1 * time.Second

//
// types
//

// JsonUI is the headless host. It ticks every panel on its own loop and
// prints the control state of each panel once per report interval.
type JsonUI struct {
	shutdownChannel chan bool
	doneChannel     chan bool

	output       io.Writer
	outputLock   sync.Mutex
	tickInterval time.Duration

	panels []panel.Panel

	statusErrorCount int
	statusLock       sync.Mutex
}

//
// constructor
//

func NewJsonUI(output io.Writer, tickInterval time.Duration) *JsonUI {
	jsonUi := &JsonUI{
		shutdownChannel: make(chan bool, 1),
		doneChannel:     make(chan bool),

		output:       output,
		tickInterval: tickInterval,

		panels: make([]panel.Panel, 0),
	}

	return jsonUi
}

func (j *JsonUI) Initialize(panels []panel.Panel) {
	j.panels = panels
}

func (j *JsonUI) Start() {
	reaper.Register("json ui")

	go func() {
		j.excecuteLoop()
		reaper.Done("json ui")
	}()
}

func (j *JsonUI) excecuteLoop() {
	defer close(j.doneChannel)

	slog.Debug("JSON loop started")

	j.printJson(j.getStatus())

	lastReport := time.Time{}

	for {
		if len(j.shutdownChannel) > 0 {
			slog.Info("JSON UI shutting down")
			break
		}

		j.tick()

		if time.Since(lastReport) >= jsonReportInterval {
			j.report()
			lastReport = time.Now()
		}

		time.Sleep(j.tickInterval)
	}
}

func (j *JsonUI) Shutdown() {
	slog.Debug("Shutting down JSON UI")

	if len(j.shutdownChannel) == 0 {
		j.shutdownChannel <- true
	}

	slog.Debug("Waiting for JSON UI to shut down")
	j.WaitForShutdown()
}

func (j *JsonUI) IsShutdown() bool {
	return len(j.shutdownChannel) > 0
}

func (j *JsonUI) WaitForShutdown() {
	<-j.doneChannel
}

func (j *JsonUI) IncrementErrorCount() {
	j.statusLock.Lock()
	defer j.statusLock.Unlock()

	j.statusErrorCount += 1
}

func (j *JsonUI) WriteLevelLog(level slog.Level, message string) {
	logObj := JsonLog{
		MessageType: "log",

		Date:    time.Now().Format(time.RFC3339),
		Level:   level.String(),
		Message: message,
	}

	j.printJson(logObj)
}

//
// private functions
//

func (j *JsonUI) tick() {
	for _, p := range j.panels {
		p.HandleEvent(panel.TickEvent())
	}
}

func (j *JsonUI) report() {
	for _, controls := range j.getControls() {
		j.printJson(controls)
	}
}

func (j *JsonUI) printJson(v any) {
	jsonBytes, err := json.Marshal(v)

	if err != nil {
		slog.Error("Error marshalling to JSON: " + err.Error())
		return
	}

	j.outputLock.Lock()
	defer j.outputLock.Unlock()

	fmt.Fprintln(j.output, string(jsonBytes))
}

func (j *JsonUI) getStatus() *JsonStatus {
	j.statusLock.Lock()
	defer j.statusLock.Unlock()

	jsonStatus := &JsonStatus{
		MessageType: "status",

		Panels:     make([]string, len(j.panels)),
		ErrorCount: j.statusErrorCount,
	}

	for i, p := range j.panels {
		jsonStatus.Panels[i] = p.Title()
	}

	return jsonStatus
}

func (j *JsonUI) getControls() []*JsonControls {
	controls := make([]*JsonControls, 0)

	for _, p := range j.panels {
		snapshotter, ok := p.(panel.Snapshotter)
		if !ok {
			continue
		}

		controls = append(controls, &JsonControls{
			MessageType: "controls",

			Panel:    p.Title(),
			Controls: snapshotter.Snapshot(),
		})
	}

	return controls
}
