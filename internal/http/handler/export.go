package handler

import (
	"encoding/csv"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"jobseeker/internal/tracker"

	"github.com/xuri/excelize/v2"
)

var exportHeaders = []string{"ID", "Title", "Company", "Category", "Active", "Created", "Last modified", "Link", "Notes"}

func exportRow(j tracker.Job) []string {
	return []string{
		strconv.FormatUint(j.ID, 10),
		j.Title,
		j.Company,
		j.Category,
		strconv.FormatBool(j.Active),
		j.DateCreated,
		j.LastModified,
		j.Link,
		j.Notes,
	}
}

// Export streams every job of the caller as CSV (default) or XLSX.
func (h *JobHandler) Export(w http.ResponseWriter, r *http.Request) {
	req, ok := decodeJobReq(w, r)
	if !ok {
		return
	}

	format := strings.ToLower(strings.TrimSpace(req.Format))
	if format == "" {
		format = "csv"
	}
	if format != "csv" && format != "xlsx" {
		fail(w, req.Username, fmt.Sprintf("unsupported format %q", req.Format))
		return
	}

	jobs, err := h.Svc.ExportJobs(r.Context(), req.caller(r))
	if err != nil {
		fail(w, req.Username, errorDetail(err, req.Username))
		return
	}

	name := fmt.Sprintf("jobs_%s.%s", time.Now().Format("20060102"), format)
	if format == "xlsx" {
		writeXLSX(w, name, jobs)
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))

	cw := csv.NewWriter(w)
	_ = cw.Write(exportHeaders)
	for _, j := range jobs {
		_ = cw.Write(exportRow(j))
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		log.Printf("export csv: %v\n", err)
	}
}

func writeXLSX(w http.ResponseWriter, name string, jobs []tracker.Job) {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Jobs"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		http.Error(w, "server error", http.StatusInternalServerError)
		return
	}

	rows := make([][]string, 0, len(jobs)+1)
	rows = append(rows, exportHeaders)
	for _, j := range jobs {
		rows = append(rows, exportRow(j))
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			http.Error(w, "server error", http.StatusInternalServerError)
			return
		}
		vals := make([]any, len(row))
		for k, v := range row {
			vals[k] = v
		}
		if err := f.SetSheetRow(sheet, cell, &vals); err != nil {
			http.Error(w, "server error", http.StatusInternalServerError)
			return
		}
	}
	_ = f.SetColWidth(sheet, "B", "C", 25)
	_ = f.SetColWidth(sheet, "H", "I", 40)

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	if err := f.Write(w); err != nil {
		log.Printf("export xlsx: %v\n", err)
	}
}
