package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/alexiusacademia/gotimber/internal/batch"
	"github.com/alexiusacademia/gotimber/internal/connection"
	"github.com/alexiusacademia/gotimber/internal/ec5"
	"github.com/alexiusacademia/gotimber/internal/report"
	"github.com/gorilla/mux"
)

// maxBody bounds JSON request bodies and batch uploads
const maxBody = 8 << 20

// Handler serves the connection API. Meta supplies the report author and
// company when a request leaves them empty.
type Handler struct {
	Meta report.Meta
}

// FamilyResponse is either a family result or the error that prevented it
type FamilyResponse struct {
	*connection.Result
	Error string `json:"error,omitempty"`
	Kind  string `json:"kind,omitempty"`
	Field string `json:"field,omitempty"`
}

// CheckResponse is the JSON form of a connection.Summary
type CheckResponse struct {
	Applied   float64                       `json:"applied"`
	Compliant bool                          `json:"compliant"`
	Families  map[ec5.Family]FamilyResponse `json:"families"`
}

// NewCheckResponse converts a summary into its JSON form
func NewCheckResponse(s connection.Summary) CheckResponse {
	resp := CheckResponse{
		Applied:   s.Applied,
		Compliant: s.Compliant(),
		Families:  make(map[ec5.Family]FamilyResponse, 3),
	}
	for _, o := range s.Outcomes() {
		if o.OK() {
			resp.Families[o.Family] = FamilyResponse{Result: o.Result}
			continue
		}
		resp.Families[o.Family] = FamilyResponse{
			Error: o.Err.Error(),
			Kind:  ec5.KindOf(o.Err),
			Field: ec5.FieldOf(o.Err),
		}
	}
	return resp
}

// ReportRequest is the body of POST /api/report
type ReportRequest struct {
	Meta       report.Meta      `json:"meta"`
	Connection connection.Input `json:"connection"`
}

// Check evaluates the connection in the body. Omitted fields keep the
// default parameter set.
func (h *Handler) Check(w http.ResponseWriter, r *http.Request) {
	in := connection.DefaultInput()
	if err := decode(w, r, &in); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, NewCheckResponse(connection.EvaluateAll(in)))
}

// Report renders the PDF report of the connection in the body
func (h *Handler) Report(w http.ResponseWriter, r *http.Request) {
	req := ReportRequest{Connection: connection.DefaultInput()}
	if err := decode(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.Meta.Author == "" {
		req.Meta.Author = h.Meta.Author
	}
	if req.Meta.Company == "" {
		req.Meta.Company = h.Meta.Company
	}

	var buf bytes.Buffer
	if err := report.Write(&buf, req.Meta, req.Connection, connection.EvaluateAll(req.Connection)); err != nil {
		log.Printf("report generation: %v", err)
		writeError(w, http.StatusInternalServerError, "report generation error")
		return
	}
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", "attachment; filename=\"report.pdf\"")
	w.Write(buf.Bytes())
}

// Batch evaluates every row of an uploaded workbook (form field "file") and
// returns the summary workbook. Rows that fail to parse are listed in the
// X-Skipped-Rows header.
func (h *Handler) Batch(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBody)
	file, _, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "file required")
		return
	}
	defer file.Close()

	rows, readErr := batch.ReadInputs(file)
	var rowErr *batch.RowError
	if readErr != nil && !errors.As(readErr, &rowErr) {
		writeError(w, http.StatusBadRequest, readErr.Error())
		return
	}

	summaries := make([]connection.Summary, len(rows))
	for i, row := range rows {
		summaries[i] = connection.EvaluateAll(row.Input)
	}
	var buf bytes.Buffer
	if err := batch.WriteSummaries(&buf, rows, summaries); err != nil {
		log.Printf("batch summary: %v", err)
		writeError(w, http.StatusInternalServerError, "summary generation error")
		return
	}
	if readErr != nil {
		w.Header().Set("X-Skipped-Rows", skipped(readErr))
	}
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", "attachment; filename=\"summary.xlsx\"")
	w.Write(buf.Bytes())
}

// skipped lists the line numbers of the row errors joined in err
func skipped(err error) string {
	var lines []string
	for _, e := range unwrapAll(err) {
		var rowErr *batch.RowError
		if errors.As(e, &rowErr) {
			lines = append(lines, strconv.Itoa(rowErr.Line))
		}
	}
	return strings.Join(lines, ",")
}

func unwrapAll(err error) []error {
	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		return joined.Unwrap()
	}
	return []error{err}
}

// Tables serves a reference table: wood, bolts, kmod or spacing
func (h *Handler) Tables(w http.ResponseWriter, r *http.Request) {
	switch name := mux.Vars(r)["name"]; name {
	case "wood":
		writeJSON(w, http.StatusOK, ec5.WoodGrades())
	case "bolts":
		writeJSON(w, http.StatusOK, ec5.BoltGrades())
	case "kmod":
		writeJSON(w, http.StatusOK, kmodTable())
	case "spacing":
		out := make(map[ec5.Family]ec5.SpacingRequirement, 3)
		for _, f := range []ec5.Family{ec5.Screws, ec5.Nails, ec5.Bolts} {
			req, err := ec5.SpacingFor(f)
			if err != nil {
				writeError(w, http.StatusInternalServerError, err.Error())
				return
			}
			out[f] = req
		}
		writeJSON(w, http.StatusOK, out)
	default:
		writeError(w, http.StatusNotFound, "unknown table "+name)
	}
}

// KmodEntry is one cell of the kmod table
type KmodEntry struct {
	ServiceClass ec5.ServiceClass `json:"service_class"`
	Duration     ec5.LoadDuration `json:"duration"`
	Kmod         float64          `json:"kmod"`
}

func kmodTable() []KmodEntry {
	var out []KmodEntry
	for _, sc := range ec5.ServiceClasses() {
		for _, d := range ec5.LoadDurations() {
			k, err := ec5.LookupModificationFactor(sc, d)
			if err != nil {
				continue
			}
			out = append(out, KmodEntry{ServiceClass: sc, Duration: d, Kmod: k})
		}
	}
	return out
}

// Health reports that the server is up
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func decode(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBody))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return errors.New("invalid request payload: " + err.Error())
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("encoding response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
