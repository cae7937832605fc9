// Package ranking orders and narrows scan reports.
package ranking

import (
	"sort"
	"strings"

	"github.com/phobologic/livetune/internal/model"
)

// Sort orders files by marker count, busiest first, breaking ties by path.
// The report is modified in place.
func Sort(rep *model.ScanReport) {
	sort.SliceStable(rep.Files, func(i, j int) bool {
		a, b := &rep.Files[i], &rep.Files[j]
		if a.Markers() != b.Markers() {
			return a.Markers() > b.Markers()
		}
		return a.Path < b.Path
	})
}

// SelectFiles returns a new report with only the first maxFiles files.
// If maxFiles is <= 0 or >= len(files), the report is returned unchanged.
func SelectFiles(rep *model.ScanReport, maxFiles int) *model.ScanReport {
	if maxFiles <= 0 || maxFiles >= len(rep.Files) {
		return rep
	}
	return &model.ScanReport{
		Root:   rep.Root,
		Marker: rep.Marker,
		Files:  rep.Files[:maxFiles],
	}
}

// FilterByFile returns a new report containing only files whose path
// contains substr (case-insensitive).
func FilterByFile(rep *model.ScanReport, substr string) *model.ScanReport {
	lower := strings.ToLower(substr)

	var files []model.FileInfo
	for i := range rep.Files {
		if strings.Contains(strings.ToLower(rep.Files[i].Path), lower) {
			files = append(files, rep.Files[i])
		}
	}
	return &model.ScanReport{
		Root:   rep.Root,
		Marker: rep.Marker,
		Files:  files,
	}
}

// Totals counts fragments and faulted files across a report.
func Totals(rep *model.ScanReport) (markers, faults int) {
	for i := range rep.Files {
		markers += rep.Files[i].Markers()
		if rep.Files[i].Fault != "" {
			faults++
		}
	}
	return markers, faults
}
