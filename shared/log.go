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
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync"

	"golang.org/x/sys/unix"
)

type LogHandler func(LogLevel, string)
type LogLevel int8

const (
	ERROR LogLevel = iota
	WARN
	INFO
	DEBUG
)

var (
	stockStderr  *os.File
	stockStdout  *os.File
	stderrWriter *os.File
	stdoutWriter *os.File
	captureLock  sync.Mutex

	logSinks  = make([]LogHandler, 0)
	sinksLock sync.RWMutex
)

const (
	stdoutFd = 1
	stderrFd = 2
)

func (s LogLevel) String() string {
	switch s {
	case ERROR:
		return "Error"
	case WARN:
		return "Warning"
	case INFO:
		return "Info"
	case DEBUG:
		return "Debug"
	}
	return "unknown"
}

//------------------------------------------------------------------
// public functions
//------------------------------------------------------------------

// HijackLogging points the process stdout and stderr descriptors at pipes
// read into the log sinks, so that C libraries printing to the terminal
// cannot corrupt the TUI. The original descriptors are kept for
// RestoreLogging.
func HijackLogging() {
	captureLock.Lock()
	defer captureLock.Unlock()

	if stockStdout != nil {
		return
	}

	stdout, stdoutPipe, err := capture(stdoutFd, "stdout", INFO)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return
	}

	stderr, stderrPipe, err := capture(stderrFd, "stderr", WARN)
	if err != nil {
		release(stdoutFd, stdout, stdoutPipe)
		fmt.Fprintln(os.Stderr, err)
		return
	}

	stockStdout, stdoutWriter = stdout, stdoutPipe
	stockStderr, stderrWriter = stderr, stderrPipe
}

// RestoreLogging puts the saved stdout and stderr descriptors back.
func RestoreLogging() {
	captureLock.Lock()
	defer captureLock.Unlock()

	if stockStdout == nil {
		return
	}

	release(stdoutFd, stockStdout, stdoutWriter)
	release(stderrFd, stockStderr, stderrWriter)

	stockStdout, stdoutWriter = nil, nil
	stockStderr, stderrWriter = nil, nil
}

func EnableSlogLogging() {
	AddLogSink(slogLogger)
}

func AddLogSink(fn LogHandler) {
	sinksLock.Lock()
	defer sinksLock.Unlock()

	logSinks = append(logSinks, fn)
}

//------------------------------------------------------------------
// private functions
//------------------------------------------------------------------

func slogLogger(level LogLevel, message string) {
	switch level {
	case ERROR:
		slog.Error(message, "source", "native")
	case WARN:
		slog.Warn(message, "source", "native")
	case INFO:
		slog.Info(message, "source", "native")
	default:
		slog.Debug(message, "source", "native")
	}
}

func logProcessor(pipe io.Reader, level LogLevel) {
	scanner := bufio.NewScanner(pipe)

	for scanner.Scan() {
		line := scanner.Text()

		if line == "" {
			continue
		}

		sinksLock.RLock()
		sinks := logSinks
		sinksLock.RUnlock()

		for _, logger := range sinks {
			logger(level, line)
		}
	}
}

// capture duplicates fd for later restoration and replaces it with the
// write end of a pipe whose lines are logged at level.
func capture(fd int, name string, level LogLevel) (*os.File, *os.File, error) {
	saved, err := unix.Dup(fd)
	if err != nil {
		return nil, nil, fmt.Errorf("saving %s: %w", name, err)
	}

	reader, writer, err := os.Pipe()
	if err != nil {
		unix.Close(saved)
		return nil, nil, fmt.Errorf("creating %s pipe: %w", name, err)
	}

	if err := unix.Dup2(int(writer.Fd()), fd); err != nil {
		unix.Close(saved)
		reader.Close()
		writer.Close()
		return nil, nil, fmt.Errorf("redirecting %s: %w", name, err)
	}

	go logProcessor(reader, level)

	return os.NewFile(uintptr(saved), name), writer, nil
}

// release points fd back at saved. Closing the last write end of the pipe
// ends its log processor.
func release(fd int, saved *os.File, writer *os.File) {
	if err := unix.Dup2(int(saved.Fd()), fd); err != nil {
		fmt.Fprintln(saved, "restoring descriptor:", err)
	}

	saved.Close()
	writer.Close()
}
