// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package log

import (
	"fmt"
	"path/filepath"
	"strconv"
	"time"

	"github.com/pterm/pterm"
)

// 📊 Summary is printed once at the end of a run
type Summary struct {
	OutputDirs []string
	Archives   []string

	FilesCopied  int
	DirsCopied   int
	FilesWritten int
	FilesDeleted int
	Skipped      int
	Collisions   int

	Warnings []string
	Took     time.Duration
}

// 📋 PrintSummary renders the summary table in a box, followed by any warnings
func (l *Logger) PrintSummary(s Summary) error {
	rows := pterm.TableData{
		{"", "count"},
		{"files copied", strconv.Itoa(s.FilesCopied)},
		{"directories copied", strconv.Itoa(s.DirsCopied)},
		{"files written", strconv.Itoa(s.FilesWritten)},
		{"files deleted", strconv.Itoa(s.FilesDeleted)},
		{"optional files missing", strconv.Itoa(s.Skipped)},
		{"destination collisions", strconv.Itoa(s.Collisions)},
	}
	table, err := pterm.DefaultTable.WithHasHeader().WithData(rows).Srender()
	if err != nil {
		return err
	}

	body := table
	for _, d := range s.OutputDirs {
		body += "\n📁 " + filepath.Base(d)
	}
	for _, a := range s.Archives {
		body += "\n🗜️  " + filepath.Base(a)
	}

	title := "distribution"
	if s.Took > 0 {
		title = fmt.Sprintf("distribution (%s)", s.Took.Round(time.Millisecond))
	}

	l.mu.Lock()
	fmt.Fprintln(l.console, pterm.DefaultBox.WithTitle(title).Sprint(body))
	l.mu.Unlock()

	for _, w := range s.Warnings {
		pterm.Warning.WithWriter(l.console).Println(w)
	}
	return nil
}
