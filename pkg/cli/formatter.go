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

package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"Folio/pkg/core"
	pkgerrors "Folio/pkg/errors" // Use alias for package errors
	"Folio/pkg/provider"
	"Folio/pkg/util"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

const (
	OutputTypeText  = "text"
	OutputTypeTable = "table"
)

// Formatter handles all CLI output formatting
type Formatter struct {
	// Writer is where the formatted output will be written
	Writer io.Writer

	// DisableColor disables colorized output
	DisableColor bool

	// OutputType controls the type of output (text, table)
	OutputType string

	HeaderStyle      *color.Color
	TitleStyle       *color.Color
	SubtitleStyle    *color.Color
	SuccessStyle     *color.Color
	ErrorStyle       *color.Color
	WarningStyle     *color.Color
	InfoStyle        *color.Color
	HighlightStyle   *color.Color
	SecondaryStyle   *color.Color
	SectionStyle     *color.Color
	DetailLabelStyle *color.Color
	DetailValueStyle *color.Color
	IDStyle          *color.Color
	PathStyle        *color.Color
	DateStyle        *color.Color
	NumberStyle      *color.Color
}

// NewFormatter creates a new CLI formatter writing to stdout
func NewFormatter() *Formatter {
	return NewFormatterTo(os.Stdout, false)
}

// NewFormatterTo creates a formatter for an arbitrary writer
func NewFormatterTo(w io.Writer, disableColor bool) *Formatter {
	f := &Formatter{
		Writer:       w,
		DisableColor: disableColor,
		OutputType:   OutputTypeText,
	}
	f.initStyles()
	return f
}

// initStyles sets up all the color styles
func (f *Formatter) initStyles() {
	f.HeaderStyle = color.New(color.Bold, color.FgCyan)
	f.TitleStyle = color.New(color.Bold, color.FgWhite)
	f.SubtitleStyle = color.New(color.FgHiWhite)
	f.SuccessStyle = color.New(color.FgGreen)
	f.ErrorStyle = color.New(color.FgRed)
	f.WarningStyle = color.New(color.FgYellow)
	f.InfoStyle = color.New(color.FgBlue)
	f.HighlightStyle = color.New(color.FgMagenta)
	f.SecondaryStyle = color.New(color.FgHiBlack)
	f.SectionStyle = color.New(color.Underline, color.FgHiCyan)
	f.DetailLabelStyle = color.New(color.FgHiBlue)
	f.DetailValueStyle = color.New(color.FgWhite)
	f.IDStyle = color.New(color.FgHiMagenta)
	f.PathStyle = color.New(color.FgHiGreen)
	f.DateStyle = color.New(color.FgHiBlue)
	f.NumberStyle = color.New(color.FgHiYellow)

	// Leaves the global color.NoColor alone
	if f.DisableColor {
		for _, style := range []*color.Color{
			f.HeaderStyle, f.TitleStyle, f.SubtitleStyle, f.SuccessStyle,
			f.ErrorStyle, f.WarningStyle, f.InfoStyle, f.HighlightStyle,
			f.SecondaryStyle, f.SectionStyle, f.DetailLabelStyle, f.DetailValueStyle,
			f.IDStyle, f.PathStyle, f.DateStyle, f.NumberStyle,
		} {
			style.DisableColor()
		}
	}
}

// PrintHeader prints a header section
func (f *Formatter) PrintHeader(text string) {
	_, err := f.HeaderStyle.Fprintln(f.Writer, text)
	if err != nil {
		return
	}
	f.PrintDivider()
}

// PrintTitle prints a title
func (f *Formatter) PrintTitle(text string) {
	_, _ = f.TitleStyle.Fprintln(f.Writer, text)
}

// PrintSubtitle prints a subtitle
func (f *Formatter) PrintSubtitle(text string) {
	_, _ = f.SubtitleStyle.Fprintln(f.Writer, text)
}

// PrintSuccess prints a success message
func (f *Formatter) PrintSuccess(text string) {
	_, _ = f.SuccessStyle.Fprintln(f.Writer, text)
}

// PrintError prints an error message
func (f *Formatter) PrintError(text string) {
	_, _ = f.ErrorStyle.Fprintln(f.Writer, text)
}

// PrintWarning prints a warning message
func (f *Formatter) PrintWarning(text string) {
	_, _ = f.WarningStyle.Fprintln(f.Writer, text)
}

// PrintInfo prints an informational message
func (f *Formatter) PrintInfo(text string) {
	_, _ = f.InfoStyle.Fprintln(f.Writer, text)
}

// PrintDetail prints a labeled detail
func (f *Formatter) PrintDetail(label, value string) {
	_, err := f.DetailLabelStyle.Fprintf(f.Writer, "%s: ", label)
	if err != nil {
		return
	}
	_, _ = f.DetailValueStyle.Fprintln(f.Writer, value)
}

// PrintDivider prints a horizontal divider
func (f *Formatter) PrintDivider() {
	_, _ = fmt.Fprintln(f.Writer, strings.Repeat("-", 80))
}

// PrintSection prints a section header
func (f *Formatter) PrintSection(text string) {
	f.PrintNewLine()
	_, _ = f.SectionStyle.Fprintln(f.Writer, text)
	f.PrintNewLine()
}

// PrintNewLine prints a blank line
func (f *Formatter) PrintNewLine() {
	_, _ = fmt.Fprintln(f.Writer, "")
}

// FormatID formats an ID string
func (f *Formatter) FormatID(id string) string {
	return f.IDStyle.Sprint(id)
}

// FormatPath formats a file path
func (f *Formatter) FormatPath(path string) string {
	return f.PathStyle.Sprint(path)
}

// FormatDate formats epoch seconds with styling
func (f *Formatter) FormatDate(seconds float64) string {
	if seconds < 0 {
		return f.SecondaryStyle.Sprint("Not specified")
	}
	return f.DateStyle.Sprint(util.FormatEpoch(seconds))
}

// FormatNumber formats a chapter or volume number; -1 renders as "?"
func (f *Formatter) FormatNumber(num float64) string {
	if num < 0 {
		return f.SecondaryStyle.Sprint("?")
	}
	return f.NumberStyle.Sprintf("%g", num)
}

// FormatLanguage formats a language code with description
func (f *Formatter) FormatLanguage(code string) string {
	if code == "" {
		return f.SecondaryStyle.Sprint("Unknown")
	}
	if name := util.LanguageName(code); name != "" {
		return fmt.Sprintf("%s (%s)", f.DetailValueStyle.Sprint(name), f.SecondaryStyle.Sprint(code))
	}
	return f.DetailValueStyle.Sprint(code)
}

// PrintTable prints data in a table format
func (f *Formatter) PrintTable(headers []string, data [][]string) {
	table := tablewriter.NewTable(f.Writer)
	table.Configure(func(tableConfig *tablewriter.Config) {
		tableConfig.Header.Alignment.Global = tw.AlignLeft
		tableConfig.Row.Alignment.Global = tw.AlignLeft
		tableConfig.Header.Padding.Global = tw.Padding{
			Left:  " ",
			Right: " ",
		}
		tableConfig.Row.Padding.Global = tw.Padding{
			Left:  " ",
			Right: " ",
		}
	})

	table.Header(headers)
	if err := table.Bulk(data); err != nil {
		return
	}
	_ = table.Render()
}

// HandleError handles and formats any error, including regular Go errors.
// It returns true if an error was handled, false otherwise.
func (f *Formatter) HandleError(err error) bool {
	return f.HandleErrorDebug(err, false)
}

// HandleErrorDebug is HandleError with the function chain shown in debug mode
func (f *Formatter) HandleErrorDebug(err error, debug bool) bool {
	if err == nil {
		return false
	}

	var trackedError *pkgerrors.TrackedError
	switch {
	case errors.As(err, &trackedError) && debug:
		f.PrintError(pkgerrors.FormatCLIDebug(err))
	case errors.As(err, &trackedError):
		f.PrintError(pkgerrors.FormatCLI(err))
	default:
		f.PrintError(fmt.Sprintf("[ERROR] %s", err.Error()))
	}
	return true
}

// PrintProviderList formats and prints a list of providers
func (f *Formatter) PrintProviderList(provs []provider.Provider) {
	f.PrintHeader("Available Catalog Providers")

	if len(provs) == 0 {
		f.PrintWarning("No providers available.")
		return
	}

	sort.Slice(provs, func(i, j int) bool {
		return provs[i].Name() < provs[j].Name()
	})

	if f.OutputType == OutputTypeTable {
		data := make([][]string, len(provs))
		for i, prov := range provs {
			data[i] = []string{prov.ID(), prov.Name(), prov.SiteURL(), prov.Description()}
		}
		f.PrintTable([]string{"ID", "NAME", "SITE", "DESCRIPTION"}, data)
	} else {
		for _, prov := range provs {
			_, _ = f.TitleStyle.Fprintf(f.Writer, "%s ", prov.ID())
			_, _ = f.SecondaryStyle.Fprintf(f.Writer, "(%s, %s)\n", prov.Name(), prov.SiteURL())
			_, _ = fmt.Fprintf(f.Writer, "  %s\n\n", prov.Description())
		}
	}

	f.PrintInfo("Use the --provider flag to select a provider")
}

// PrintVersionInfo formats and prints version information
func (f *Formatter) PrintVersionInfo(version, goVersion, os, arch, logFile string) {
	f.PrintHeader("Folio Version Information")

	f.PrintDetail("Version", version)
	f.PrintDetail("Go version", goVersion)
	f.PrintDetail("OS/Arch", fmt.Sprintf("%s/%s", os, arch))

	if logFile != "" {
		f.PrintDetail("Log file", f.FormatPath(logFile))
	} else {
		f.PrintDetail("Logging to file", "disabled")
	}
}

// PrintSearchInfo prints the filters of a catalog query
func (f *Formatter) PrintSearchInfo(filters []core.Filter, page int) {
	f.PrintHeader("Search Parameters")

	if len(filters) == 0 {
		f.PrintDetail("Filters", "none")
	}
	for _, filter := range filters {
		f.PrintDetail(fmt.Sprintf("  %s (%s)", filter.Name, filter.Kind), describeFilterValue(filter))
	}
	f.PrintDetail("Page", fmt.Sprintf("%d", page))
}

func describeFilterValue(filter core.Filter) string {
	switch {
	case filter.Sort != nil:
		direction := "descending"
		if filter.Sort.Ascending {
			direction = "ascending"
		}
		return fmt.Sprintf("option %d, %s", filter.Sort.Index, direction)
	case filter.Text != nil:
		return fmt.Sprintf("%q", *filter.Text)
	}

	value, ok := filter.IntValue()
	if !ok {
		return "unset"
	}
	if filter.Kind == core.FilterToggle || filter.Kind == core.FilterTag {
		switch value {
		case core.StateIncluded:
			return "include"
		case core.StateExcluded:
			return "exclude"
		}
		return "ignore"
	}
	return fmt.Sprintf("%d", value)
}

// PrintMangaItem prints a single manga item in a formatted way
func (f *Formatter) PrintMangaItem(manga core.Manga, providerID string, number int) {
	itemPrefix := ""
	if number > 0 {
		itemPrefix = fmt.Sprintf("%d. ", number)
	}

	_, _ = f.TitleStyle.Fprintf(f.Writer, "%s%s ", itemPrefix, manga.Title)
	_, _ = f.IDStyle.Fprintf(f.Writer, "(ID: %s)\n", core.FormatMangaID(providerID, manga.ID))

	var details []string
	if manga.Author != "" {
		details = append(details, "Author: "+manga.Author)
	}
	if manga.Status != core.StatusUnknown {
		details = append(details, "Status: "+manga.Status.String())
	}
	if manga.Rating != core.RatingSafe {
		details = append(details, "Rating: "+manga.Rating.String())
	}
	if len(details) > 0 {
		_, _ = f.DetailLabelStyle.Fprintf(f.Writer, "  %s\n", strings.Join(details, " | "))
	}

	if len(manga.Categories) > 0 {
		limit := 5
		tags := manga.Categories
		suffix := ""
		if len(tags) > limit {
			tags = tags[:limit]
			suffix = fmt.Sprintf(" +%d more", len(manga.Categories)-limit)
		}
		_, _ = f.SecondaryStyle.Fprintf(f.Writer, "  Tags: %s%s\n", strings.Join(tags, ", "), suffix)
	}

	f.PrintNewLine()
}

// PrintMangaPage prints one page of listing or search results
func (f *Formatter) PrintMangaPage(result *core.MangaPage, prov provider.Provider, title string, page int) {
	if title != "" {
		f.PrintSection(title)
	}

	if result == nil || len(result.Manga) == 0 {
		f.PrintWarning("No manga found.")
		return
	}

	if f.OutputType == OutputTypeTable {
		data := make([][]string, len(result.Manga))
		for i, manga := range result.Manga {
			data[i] = []string{core.FormatMangaID(prov.ID(), manga.ID), manga.Title, manga.Author, manga.Status.String()}
		}
		f.PrintTable([]string{"ID", "TITLE", "AUTHOR", "STATUS"}, data)
	} else {
		f.PrintInfo(fmt.Sprintf("Found %d manga on page %d:", len(result.Manga), page))
		f.PrintNewLine()
		for i, manga := range result.Manga {
			f.PrintMangaItem(manga, prov.ID(), i+1)
		}
	}

	if result.HasMore {
		f.PrintInfo(fmt.Sprintf("More results available, use --page %d", page+1))
	}
}

// PrintChapterItem prints information about a single chapter
func (f *Formatter) PrintChapterItem(chapter core.Chapter, providerID string, number int) {
	itemPrefix := ""
	if number > 0 {
		itemPrefix = fmt.Sprintf("%d. ", number)
	}

	title := chapter.Title
	if title == "" {
		title = fmt.Sprintf("Chapter %g", chapter.Number)
		if chapter.Number < 0 {
			title = "Untitled"
		}
	}

	_, _ = f.TitleStyle.Fprintf(f.Writer, "%s%s ", itemPrefix, title)
	_, _ = f.IDStyle.Fprintf(f.Writer, "(ID: %s)\n", core.FormatMangaID(providerID, chapter.ID))

	_, _ = f.DetailLabelStyle.Fprintf(f.Writer, "  Vol. %s Ch. %s", f.FormatNumber(chapter.Volume), f.FormatNumber(chapter.Number))
	_, _ = f.SecondaryStyle.Fprintf(f.Writer, " | ")
	_, _ = f.DetailLabelStyle.Fprintf(f.Writer, "Released: %s", f.FormatDate(chapter.Date))
	_, _ = f.SecondaryStyle.Fprintf(f.Writer, " | ")
	_, _ = f.DetailLabelStyle.Fprintf(f.Writer, "Language: %s\n", f.FormatLanguage(chapter.Language))
	if chapter.Scanlator != "" {
		_, _ = f.SecondaryStyle.Fprintf(f.Writer, "  Scanlated by %s\n", chapter.Scanlator)
	}

	f.PrintNewLine()
}

// PrintMangaInfo prints detailed manga information, optionally with chapters
func (f *Formatter) PrintMangaInfo(manga *core.Manga, chapters []core.Chapter, prov provider.Provider) {
	if manga == nil {
		f.PrintError("No manga information available.")
		return
	}

	f.PrintHeader(manga.Title)

	f.PrintDetail("ID", core.FormatMangaID(prov.ID(), manga.ID))
	f.PrintDetail("Provider", fmt.Sprintf("%s (%s)", prov.ID(), prov.Name()))
	if manga.Author != "" {
		f.PrintDetail("Author", manga.Author)
	}
	if manga.Artist != "" && manga.Artist != manga.Author {
		f.PrintDetail("Artist", manga.Artist)
	}
	f.PrintDetail("Status", manga.Status.String())
	f.PrintDetail("Rating", manga.Rating.String())
	f.PrintDetail("Reading mode", manga.Viewer.String())
	if len(manga.Categories) > 0 {
		f.PrintDetail("Tags", strings.Join(manga.Categories, ", "))
	}
	if manga.Cover != "" {
		f.PrintDetail("Cover", f.FormatPath(manga.Cover))
	}
	f.PrintDetail("URL", f.FormatPath(manga.URL))

	if manga.Description != "" {
		f.PrintNewLine()
		_, _ = f.DetailLabelStyle.Fprintln(f.Writer, "Description:")
		_, _ = fmt.Fprintln(f.Writer, manga.Description)
	}

	if chapters == nil {
		return
	}
	if len(chapters) == 0 {
		f.PrintWarning("No chapters available.")
		return
	}

	// Chapters keep provider order
	f.PrintSection(fmt.Sprintf("Chapters (%d)", len(chapters)))
	for i, chapter := range chapters {
		f.PrintChapterItem(chapter, prov.ID(), i+1)
	}
}

// PrintPageList prints the image URLs of a chapter
func (f *Formatter) PrintPageList(chapterID string, pages []core.Page) {
	f.PrintHeader(fmt.Sprintf("Pages of %s", chapterID))
	if len(pages) == 0 {
		f.PrintWarning("No pages available.")
		return
	}
	for _, page := range pages {
		_, _ = f.NumberStyle.Fprintf(f.Writer, "%4d ", page.Index+1)
		_, _ = fmt.Fprintln(f.Writer, page.URL)
	}
}

// PrintDeepLink prints the outcome of resolving a link
func (f *Formatter) PrintDeepLink(link *core.DeepLink, prov provider.Provider) {
	if link == nil || link.Manga == nil {
		f.PrintWarning("Link did not resolve to a manga.")
		return
	}
	f.PrintMangaInfo(link.Manga, nil, prov)
	if link.Chapter != nil {
		f.PrintSection("Linked chapter")
		f.PrintChapterItem(*link.Chapter, prov.ID(), 0)
	}
}

// PrintFilterCatalog prints the filters a provider understands, grouped
func (f *Formatter) PrintFilterCatalog(defs []core.FilterDefinition) {
	f.PrintHeader("Available Filters")

	if f.OutputType == OutputTypeTable {
		data := make([][]string, len(defs))
		for i, def := range defs {
			data[i] = []string{def.Kind.String(), def.Group, def.Name, def.ID, strings.Join(def.Options, ", ")}
		}
		f.PrintTable([]string{"KIND", "GROUP", "NAME", "BINDING", "OPTIONS"}, data)
		return
	}

	group := "\x00"
	for _, def := range defs {
		if def.Group != group {
			group = def.Group
			if group != "" {
				f.PrintSection(group)
			}
		}
		line := fmt.Sprintf("  %-24s %s", def.Name, f.SecondaryStyle.Sprint(def.Kind.String()))
		if def.CanExclude {
			line += f.SecondaryStyle.Sprint(" (excludable)")
		}
		if len(def.Options) > 0 {
			line += ": " + strings.Join(def.Options, ", ")
		}
		_, _ = fmt.Fprintln(f.Writer, line)
	}
}

// DefaultFormatter Global instance for convenience
var DefaultFormatter = NewFormatter()
