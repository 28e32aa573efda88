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
	"fmt"
	"log/slog"
	"strings"

	"fox-settings/display"
)

type UiLogHandler struct {
	level         slog.Level
	ui            display.UI
	errorCallback func(string)
	attrs         []slog.Attr
}

func NewUiLogHandler(out display.UI, level slog.Level, errorCallback func(string)) *UiLogHandler {
	h := &UiLogHandler{
		level:         level,
		ui:            out,
		errorCallback: errorCallback,
	}

	return h
}

func (h *UiLogHandler) Handle(ctx context.Context, r slog.Record) error {
	message := r.Message

	if len(h.attrs) > 0 || r.NumAttrs() > 0 {
		parts := make([]string, 0, len(h.attrs)+r.NumAttrs()+1)
		parts = append(parts, message)

		for _, attr := range h.attrs {
			parts = append(parts, formatAttr(attr))
		}

		r.Attrs(func(attr slog.Attr) bool {
			parts = append(parts, formatAttr(attr))
			return true
		})

		message = strings.Join(parts, " ")
	}

	h.ui.WriteLevelLog(r.Level, message)

	if r.Level >= slog.LevelError && h.errorCallback != nil {
		h.errorCallback(message)
	}

	return nil
}

func (h *UiLogHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return level >= h.level
}

func (h *UiLogHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	clone := *h
	clone.attrs = append(append([]slog.Attr{}, h.attrs...), attrs...)

	return &clone
}

func (h *UiLogHandler) WithGroup(name string) slog.Handler {
	return h
}

func formatAttr(attr slog.Attr) string {
	return fmt.Sprintf("%s=%v", attr.Key, attr.Value.Any())
}
