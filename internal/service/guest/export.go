package guest

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/invitia/guestlist-backend-go/internal/domain/guest"
	"github.com/invitia/guestlist-backend-go/internal/pkg/validator"
)

// exportableFields is the closed set of columns the serializer understands,
// in output order.
var exportableFields = []string{
	"name",
	"phone",
	"email",
	"status",
	"companions",
	"invitation_code",
	"invitation_type",
	"date_invited",
	"date_responded",
	"notes",
	"contact_attempts",
	"last_contact_date",
}

var defaultExportFields = []string{
	"name", "phone", "email", "status", "companions", "invitation_code", "invitation_type",
}

func formatExportTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(time.RFC3339)
}

func exportFieldValue(g guest.Guest, field string) any {
	switch field {
	case "name":
		return g.Name
	case "phone":
		return g.Phone
	case "email":
		return g.Email
	case "status":
		return string(g.Status)
	case "companions":
		return g.Companions
	case "invitation_code":
		return g.InvitationCode
	case "invitation_type":
		return string(g.InvitationType)
	case "date_invited":
		return formatExportTime(g.DateInvited)
	case "date_responded":
		return formatExportTime(g.DateResponded)
	case "notes":
		return g.Notes
	case "contact_attempts":
		return g.ContactAttempts
	case "last_contact_date":
		return formatExportTime(g.LastContactDate)
	}
	return ""
}

func exportCellValue(g guest.Guest, field string) string {
	switch v := exportFieldValue(g, field).(type) {
	case string:
		return v
	case []string:
		return strings.Join(v, "; ")
	case int:
		return strconv.Itoa(v)
	default:
		return fmt.Sprintf("%v", v)
	}
}

func resolveExportFields(fields []string) ([]string, error) {
	if len(fields) == 0 {
		return defaultExportFields, nil
	}

	var errs validator.ValidationErrors
	for _, f := range fields {
		if !validator.IsInSlice(f, exportableFields) {
			errs = append(errs, validator.ValidationError{
				Field:   "fields",
				Message: "unknown export field: " + f,
			})
		}
	}
	if len(errs) > 0 {
		return nil, errs
	}
	return fields, nil
}

// ExportGuests implements guest.GuestService. The engine only commits to the
// tabular csv and structural json adapters; richer formats are presentation
// collaborators built on the same field projection.
func (s *GuestServiceImpl) ExportGuests(ctx context.Context, opts guest.ExportOptions) ([]byte, error) {
	fields, err := resolveExportFields(opts.Fields)
	if err != nil {
		return nil, err
	}

	view, err := s.GetFilteredGuests(ctx, opts.Filters, nil)
	if err != nil {
		return nil, err
	}

	switch opts.Format {
	case guest.FormatCSV:
		return exportCSV(view.Items, fields, opts.IncludeStats)
	case guest.FormatJSON:
		return exportJSON(view.Items, fields, opts.IncludeStats)
	}
	return nil, fmt.Errorf("%w: %q", guest.ErrUnknownExportFormat, opts.Format)
}

func exportCSV(guests []guest.Guest, fields []string, includeStats bool) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(fields); err != nil {
		return nil, fmt.Errorf("failed to write csv header: %w", err)
	}

	for _, g := range guests {
		row := make([]string, len(fields))
		for i, f := range fields {
			row[i] = exportCellValue(g, f)
		}
		if err := w.Write(row); err != nil {
			return nil, fmt.Errorf("failed to write csv row: %w", err)
		}
	}

	if includeStats {
		stats := computeStats(guests)
		rows := [][]string{
			{},
			{"total", strconv.Itoa(stats.Total)},
			{"confirmed", strconv.Itoa(stats.Confirmed)},
			{"declined", strconv.Itoa(stats.Declined)},
			{"pending", strconv.Itoa(stats.Pending)},
			{"not_invited", strconv.Itoa(stats.NotInvited)},
			{"total_confirmed_people", strconv.Itoa(stats.TotalConfirmedPeople)},
			{"response_rate", strconv.FormatFloat(stats.ResponseRate, 'f', -1, 64)},
			{"confirmation_rate", strconv.FormatFloat(stats.ConfirmationRate, 'f', -1, 64)},
		}
		for _, row := range rows {
			if err := w.Write(row); err != nil {
				return nil, fmt.Errorf("failed to write csv stats: %w", err)
			}
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("failed to flush csv: %w", err)
	}
	return buf.Bytes(), nil
}

func exportJSON(guests []guest.Guest, fields []string, includeStats bool) ([]byte, error) {
	rows := make([]map[string]any, 0, len(guests))
	for _, g := range guests {
		row := make(map[string]any, len(fields))
		for _, f := range fields {
			row[f] = exportFieldValue(g, f)
		}
		rows = append(rows, row)
	}

	if !includeStats {
		return json.MarshalIndent(rows, "", "  ")
	}

	payload := struct {
		Guests []map[string]any `json:"guests"`
		Stats  guest.GuestStats `json:"stats"`
	}{
		Guests: rows,
		Stats:  computeStats(guests),
	}
	return json.MarshalIndent(payload, "", "  ")
}

// importColumns maps the recognized CSV header names onto request fields.
var importColumns = []string{"name", "phone", "email", "invitation_type", "notes"}

// ImportGuests implements guest.GuestService: parse a header-addressed CSV
// into creation requests and hand the batch to BulkInvite. Unreadable rows
// become failed entries rather than aborting the import.
func (s *GuestServiceImpl) ImportGuests(ctx context.Context, r io.Reader, opts guest.BulkInviteOptions) (guest.BulkInviteResult, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		return guest.BulkInviteResult{}, fmt.Errorf("failed to read csv header: %w", err)
	}

	index := make(map[string]int)
	for i, col := range header {
		name := strings.ToLower(strings.TrimSpace(col))
		if validator.IsInSlice(name, importColumns) {
			index[name] = i
		}
	}

	if _, ok := index["name"]; !ok {
		return guest.BulkInviteResult{}, validator.ValidationErrors{{
			Field:   "file",
			Message: "csv header must contain a name column",
		}}
	}
	if _, ok := index["phone"]; !ok {
		return guest.BulkInviteResult{}, validator.ValidationErrors{{
			Field:   "file",
			Message: "csv header must contain a phone column",
		}}
	}

	cell := func(record []string, col string) string {
		i, ok := index[col]
		if !ok || i >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[i])
	}

	var reqs []guest.CreateGuestRequest
	var rowIndexes []int
	var parseFailures []guest.BulkInviteFailure
	row := 0
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			// A malformed row becomes a failed entry like any rejected
			// request; the reader resumes on the next line.
			var parseErr *csv.ParseError
			if errors.As(err, &parseErr) {
				parseFailures = append(parseFailures, guest.BulkInviteFailure{
					Index:  row,
					Reason: err.Error(),
				})
				row++
				continue
			}
			return guest.BulkInviteResult{}, fmt.Errorf("failed to read csv row: %w", err)
		}

		reqs = append(reqs, guest.CreateGuestRequest{
			Name:           cell(record, "name"),
			Phone:          cell(record, "phone"),
			Email:          cell(record, "email"),
			InvitationType: guest.InvitationType(strings.ToLower(cell(record, "invitation_type"))),
			Notes:          cell(record, "notes"),
		})
		rowIndexes = append(rowIndexes, row)
		row++
	}

	result, err := s.BulkInvite(ctx, reqs, opts)
	if err != nil {
		return result, err
	}

	// Failure indexes from the batch refer to positions in reqs; map them
	// back to the original row numbers before merging the parse failures.
	for i := range result.Failed {
		result.Failed[i].Index = rowIndexes[result.Failed[i].Index]
	}
	result.Failed = append(result.Failed, parseFailures...)
	result.Total += len(parseFailures)
	result.FailedCount = len(result.Failed)

	return result, nil
}
