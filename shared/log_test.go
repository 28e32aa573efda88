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
package shared

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"syscall"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"fox-settings/panel"
)

type recordingUI struct {
	lock     sync.Mutex
	messages []string
	levels   []slog.Level
	errors   int
}

func (ui *recordingUI) Initialize(panels []panel.Panel) {}
func (ui *recordingUI) Start() {}
func (ui *recordingUI) Shutdown() {}
func (ui *recordingUI) IsShutdown() bool { return false }
func (ui *recordingUI) WaitForShutdown() {}

func (ui *recordingUI) IncrementErrorCount() {
	ui.lock.Lock()
	defer ui.lock.Unlock()

	ui.errors++
}

func (ui *recordingUI) WriteLevelLog(level slog.Level, message string) {
	ui.lock.Lock()
	defer ui.lock.Unlock()

	ui.levels = append(ui.levels, level)
	ui.messages = append(ui.messages, message)
}

func TestUiLogHandler(t *testing.T) {
	assert := assert.New(t)

	ui := &recordingUI{}
	handler := NewUiLogHandler(ui, slog.LevelInfo, func(string) { ui.IncrementErrorCount() })
	logger := slog.New(handler)

	logger.Debug("hidden")
	logger.Info("mixer opened", "device", "hw:0")
	logger.With("panel", "Sound").Error("device unavailable")

	assert.Equal([]string{"mixer opened device=hw:0", "device unavailable panel=Sound"}, ui.messages)
	assert.Equal([]slog.Level{slog.LevelInfo, slog.LevelError}, ui.levels)
	assert.Equal(1, ui.errors)

	assert.False(handler.Enabled(context.Background(), slog.LevelDebug))
	assert.True(handler.Enabled(context.Background(), slog.LevelWarn))
}

func TestLogProcessor(t *testing.T) {
	var lock sync.Mutex
	received := make([]string, 0)

	AddLogSink(func(level LogLevel, message string) {
		lock.Lock()
		defer lock.Unlock()

		received = append(received, level.String()+": "+message)
	})

	logProcessor(strings.NewReader("ALSA lib pcm.c: warning\n\nsecond line\n"), WARN)

	lock.Lock()
	defer lock.Unlock()

	assert.Equal(t, []string{"Warning: ALSA lib pcm.c: warning", "Warning: second line"}, received)
}

func TestRestoreWithoutHijack(t *testing.T) {
	assert.NotPanics(t, RestoreLogging)
}

func TestHijackCapturesNativeWrites(t *testing.T) {
	var lock sync.Mutex
	received := make([]string, 0)

	AddLogSink(func(level LogLevel, message string) {
		if !strings.Contains(message, "libasound says hello") {
			return
		}

		lock.Lock()
		defer lock.Unlock()

		received = append(received, level.String()+": "+message)
	})

	HijackLogging()
	t.Cleanup(RestoreLogging)

	// written to the descriptor directly, the way C code does
	_, err := syscall.Write(2, []byte("libasound says hello\n"))
	assert.NoError(t, err)

	assert.Eventually(t, func() bool {
		lock.Lock()
		defer lock.Unlock()

		return len(received) == 1
	}, time.Second, 5*time.Millisecond)

	lock.Lock()
	defer lock.Unlock()

	assert.Equal(t, []string{"Warning: libasound says hello"}, received)
}

func TestHijackTwiceThenRestore(t *testing.T) {
	HijackLogging()
	HijackLogging()

	RestoreLogging()
	RestoreLogging()

	assert.Nil(t, stockStdout)
	assert.Nil(t, stderrWriter)
}
