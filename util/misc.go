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
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v2"
)

const (
	LevelTrace = slog.Level(-10)

	configDirName = "fox-settings"
)

var ErrNoYamlFile = errors.New("no yaml file found")

func FileExists(path string) bool {
	// if an error occurred or its a directory, we throw up
	if stat, err := os.Stat(path); err != nil || stat.IsDir() {
		return false
	}

	return true
}

func DirectoryExists(testDir string) bool {
	if stat, err := os.Stat(testDir); err != nil || !stat.IsDir() {
		return false
	}

	return true
}

func ResolveHomeDirPath(testPath string) (string, error) {
	if strings.HasPrefix(testPath, "~/") {
		homeDir, err := os.UserHomeDir()

		if err != nil {
			return "", errors.New("could not find user home dir: " + err.Error())
		}

		return path.Join(homeDir, testPath[2:]), nil
	}

	return testPath, nil
}

// FindYamlFile resolves fileName the same way ReadYamlFile does: absolute,
// home relative, next to the executable, the working directory and finally
// ~/.config/fox-settings.
func FindYamlFile(fileName string) (string, error) {
	if path.IsAbs(fileName) {
		if !FileExists(fileName) {
			return "", fmt.Errorf("the specified yaml file does not exist: %s", fileName)
		}

		return fileName, nil
	}

	if strings.HasPrefix(fileName, "~/") {
		testFilePath, err := ResolveHomeDirPath(fileName)
		if err != nil {
			return "", err
		}

		if !FileExists(testFilePath) {
			return "", fmt.Errorf("the specified yaml file does not exist: %s", testFilePath)
		}

		return testFilePath, nil
	}

	// check path where ececutable lives
	if binPath, err := os.Executable(); err == nil {
		sidecarPath := path.Join(filepath.Dir(binPath), fileName)

		if FileExists(sidecarPath) {
			return sidecarPath, nil
		}
	}

	// check working directory
	if cwd, err := os.Getwd(); err == nil {
		cwdSidecarPath := path.Join(cwd, fileName)

		if FileExists(cwdSidecarPath) {
			return cwdSidecarPath, nil
		}
	}

	// check user config directory
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", errors.New("could not find user home dir: " + err.Error())
	}

	homeDotConfigPath := path.Join(homeDir, ".config", configDirName, fileName)

	if FileExists(homeDotConfigPath) {
		return homeDotConfigPath, nil
	}

	return "", fmt.Errorf("%w: %s", ErrNoYamlFile, fileName)
}

func ReadYamlFile(cfg interface{}, fileName string) error {
	filePath, err := FindYamlFile(fileName)
	if err != nil {
		return err
	}

	slog.Info("Reading yaml from " + filePath)

	f, err := os.Open(filePath)
	if err != nil {
		return err
	}
	defer f.Close()

	decoder := yaml.NewDecoder(f)
	err = decoder.Decode(cfg)
	if err != nil {
		return fmt.Errorf("decoding %s: %w", filePath, err)
	}

	return nil
}

func TraceLog(message string, args ...any) {
	slog.Log(context.Background(), LevelTrace, message, args...)
}
