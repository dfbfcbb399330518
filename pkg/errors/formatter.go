// Folio: catalog adapters for manga reader applications.
// Copyright (C) 2025 Luca M. Schmidt (LuMiSxh)
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program. If not, see <http://www.gnu.org/licenses/>.

package errors

import (
	"fmt"
	"sort"
	"strings"

	"github.com/fatih/color"
)

// CLIFormatter provides user-friendly error formatting for the command line
type CLIFormatter struct {
	// ShowFunctionChain controls whether to show the function call chain
	ShowFunctionChain bool

	HeaderStyle    *color.Color
	ErrorStyle     *color.Color
	NetworkStyle   *color.Color
	ParsingStyle   *color.Color
	NotFoundStyle  *color.Color
	LinkStyle      *color.Color
	ConfigStyle    *color.Color
	LabelStyle     *color.Color
	SecondaryStyle *color.Color
}

// NewCLIFormatter creates a new CLI error formatter with default settings
func NewCLIFormatter() *CLIFormatter {
	return &CLIFormatter{
		HeaderStyle:    color.New(color.Bold, color.FgCyan),
		ErrorStyle:     color.New(color.FgRed),
		NetworkStyle:   color.New(color.FgYellow),
		ParsingStyle:   color.New(color.FgMagenta),
		NotFoundStyle:  color.New(color.FgCyan),
		LinkStyle:      color.New(color.FgBlue),
		ConfigStyle:    color.New(color.FgHiRed),
		LabelStyle:     color.New(color.FgHiBlue),
		SecondaryStyle: color.New(color.FgHiBlack),
	}
}

// Format formats an error for CLI display
func (f *CLIFormatter) Format(err error) string {
	if err == nil {
		return ""
	}

	category := GetCategory(err)
	parts := []string{fmt.Sprintf("%s %s",
		f.HeaderStyle.Sprint(f.categoryPrefix(category)),
		f.categoryStyle(category).Sprint(err.Error()))}

	if guidance := categoryGuidance(category); guidance != "" {
		parts = append(parts, f.SecondaryStyle.Sprint("  "+guidance))
	}

	var tracked *TrackedError
	if As(err, &tracked) {
		keys := make([]string, 0, len(tracked.Context))
		for k := range tracked.Context {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			parts = append(parts, fmt.Sprintf("  %s %v", f.LabelStyle.Sprint(k+":"), tracked.Context[k]))
		}
		if f.ShowFunctionChain && len(tracked.CallChain) > 0 {
			parts = append(parts, fmt.Sprintf("  %s %s", f.LabelStyle.Sprint("chain:"), tracked.GetFunctionChain()))
		}
	}

	return strings.Join(parts, "\n")
}

func (f *CLIFormatter) categoryPrefix(category ErrorCategory) string {
	switch category {
	case CategoryNetwork:
		return "[NETWORK]"
	case CategoryProvider:
		return "[PROVIDER]"
	case CategoryParser:
		return "[PARSING]"
	case CategoryNotFound:
		return "[NOT FOUND]"
	case CategoryRateLimit:
		return "[RATE LIMIT]"
	case CategoryUnsupported:
		return "[UNSUPPORTED]"
	case CategoryConfig:
		return "[CONFIG]"
	case CategoryValidation:
		return "[INPUT]"
	default:
		return "[ERROR]"
	}
}

func (f *CLIFormatter) categoryStyle(category ErrorCategory) *color.Color {
	switch category {
	case CategoryNetwork, CategoryRateLimit:
		return f.NetworkStyle
	case CategoryParser:
		return f.ParsingStyle
	case CategoryNotFound:
		return f.NotFoundStyle
	case CategoryUnsupported:
		return f.LinkStyle
	case CategoryConfig:
		return f.ConfigStyle
	default:
		return f.ErrorStyle
	}
}

func categoryGuidance(category ErrorCategory) string {
	switch category {
	case CategoryNetwork:
		return "Check your connection or try again later."
	case CategoryRateLimit:
		return "The catalog is throttling requests; lower rate_limit.requests in the config."
	case CategoryNotFound:
		return "Double-check the identifier."
	case CategoryUnsupported:
		return "Only title and chapter links can be resolved."
	case CategoryConfig:
		return "Fix the configuration file or the FOLIO_* environment variables."
	default:
		return ""
	}
}

var (
	DefaultCLIFormatter = NewCLIFormatter()
	DebugCLIFormatter   = &CLIFormatter{
		ShowFunctionChain: true,
		HeaderStyle:       DefaultCLIFormatter.HeaderStyle,
		ErrorStyle:        DefaultCLIFormatter.ErrorStyle,
		NetworkStyle:      DefaultCLIFormatter.NetworkStyle,
		ParsingStyle:      DefaultCLIFormatter.ParsingStyle,
		NotFoundStyle:     DefaultCLIFormatter.NotFoundStyle,
		LinkStyle:         DefaultCLIFormatter.LinkStyle,
		ConfigStyle:       DefaultCLIFormatter.ConfigStyle,
		LabelStyle:        DefaultCLIFormatter.LabelStyle,
		SecondaryStyle:    DefaultCLIFormatter.SecondaryStyle,
	}
)

// FormatCLI formats an error for CLI display
func FormatCLI(err error) string {
	return DefaultCLIFormatter.Format(err)
}

// FormatCLIDebug formats an error including its call chain
func FormatCLIDebug(err error) string {
	return DebugCLIFormatter.Format(err)
}
