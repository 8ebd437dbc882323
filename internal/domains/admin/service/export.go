package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/xuri/excelize/v2"

	"lagoon/infras/otel"
	"lagoon/internal/domains/admin/model/dto"
	bookingModel "lagoon/internal/domains/booking/model"
	bookingRepo "lagoon/internal/domains/booking/repository"
	contactModel "lagoon/internal/domains/contact/model"
	contactRepo "lagoon/internal/domains/contact/repository"
	"lagoon/shared/constant"
	gDto "lagoon/shared/dto"
	"lagoon/shared/failure"
	"lagoon/shared/timezone"
)

const exportSheetName = "Export"

type Export interface {
	Export(ctx context.Context, req dto.ExportRequest, filter gDto.FilterGroup) (dto.ExportFile, error)
}

type exportImpl struct {
	bookings bookingRepo.Booking
	contacts contactRepo.Contact
	otel     otel.Otel
}

func NewExport(bookings bookingRepo.Booking, contacts contactRepo.Contact, otel otel.Otel) Export {
	return &exportImpl{
		bookings: bookings,
		contacts: contacts,
		otel:     otel,
	}
}

// Export renders the full filtered result set of one resource, newest-first,
// in the requested format. The filter vocabulary is the same as the list
// endpoints; there is no pagination.
func (s *exportImpl) Export(ctx context.Context, req dto.ExportRequest, filter gDto.FilterGroup) (res dto.ExportFile, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelServiceScopeName, constant.OtelServiceScopeName+".Export")
	defer scope.End()
	defer scope.TraceIfError(err)

	params := gDto.QueryParams{
		SortBy:  constant.DefaultValueSortBy,
		SortDir: gDto.SortDirDesc,
	}

	var (
		headers []string
		rows    [][]any
	)

	switch req.Resource {
	case dto.ResourceBookings:
		models, err := s.bookings.GetAll(ctx, params, filter)
		if err != nil {
			log.Error().Err(err).Msg("failed to get bookings for export")

			return res, fmt.Errorf("failed to get bookings for export: %w", err)
		}

		headers, rows = bookingTable(models)
	case dto.ResourceContacts:
		models, err := s.contacts.GetAll(ctx, params, filter)
		if err != nil {
			log.Error().Err(err).Msg("failed to get contacts for export")

			return res, fmt.Errorf("failed to get contacts for export: %w", err)
		}

		headers, rows = contactTable(models)
	default:
		return res, failure.BadRequestFromString("unknown export resource") // nolint:wrapcheck
	}

	res.FileName = fmt.Sprintf("%s_export_%s.%s", req.Resource, timezone.Now().Format(constant.DateOnlyFormat), req.Format)

	switch req.Format {
	case dto.FormatJSON:
		res.ContentType = constant.ContentTypeJSON
		res.Data, err = renderJSON(headers, rows)
	case dto.FormatCSV:
		res.ContentType = constant.ContentTypeCSV
		res.Data, err = renderCSV(headers, rows)
	case dto.FormatXLSX:
		res.ContentType = constant.ContentTypeXLSX
		res.Data, err = renderXLSX(headers, rows)
	default:
		return res, failure.BadRequestFromString("unknown export format") // nolint:wrapcheck
	}

	if err != nil {
		log.Error().Err(err).Str("format", req.Format).Msg("failed to render export")

		return res, fmt.Errorf("failed to render export: %w", err)
	}

	return res, nil
}

func bookingTable(models []bookingModel.Booking) ([]string, [][]any) {
	headers := []string{
		"booking_code", "guest_name", "guest_email", "guest_phone",
		"check_in", "check_out", "guests", "accommodation_type", "addons",
		"total_amount", "status", "payment_status", "special_requests",
		"admin_notes", "created_at",
	}

	rows := make([][]any, len(models))
	for i, m := range models {
		checkOut := constant.Empty
		if m.CheckOut != nil {
			checkOut = timezone.Format(*m.CheckOut, constant.DateOnlyFormat)
		}

		rows[i] = []any{
			m.Code, m.GuestName, m.GuestEmail, m.GuestPhone,
			timezone.Format(m.CheckIn, constant.DateOnlyFormat), checkOut,
			m.Guests, m.AccommodationType, strings.Join([]string(m.Addons), ", "),
			m.TotalAmount, m.Status, m.PaymentStatus, m.SpecialRequests,
			m.AdminNotes, timezone.Format(m.CreatedAt, constant.DateFormat),
		}
	}

	return headers, rows
}

func contactTable(models []contactModel.Contact) ([]string, [][]any) {
	headers := []string{
		"contact_code", "name", "email", "phone", "subject", "message",
		"status", "priority", "admin_response", "responded_by",
		"responded_at", "created_at",
	}

	rows := make([][]any, len(models))
	for i, m := range models {
		respondedAt := constant.Empty
		if m.RespondedAt != nil {
			respondedAt = timezone.Format(*m.RespondedAt, constant.DateFormat)
		}

		rows[i] = []any{
			m.Code, m.Name, m.Email, m.Phone, m.Subject, m.Message,
			m.Status, m.Priority, m.Response, m.RespondedBy,
			respondedAt, timezone.Format(m.CreatedAt, constant.DateFormat),
		}
	}

	return headers, rows
}

func renderJSON(headers []string, rows [][]any) ([]byte, error) {
	records := make([]map[string]any, len(rows))

	for i, row := range rows {
		record := make(map[string]any, len(headers))
		for j, header := range headers {
			record[header] = row[j]
		}

		records[i] = record
	}

	data, err := json.Marshal(records)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal export: %w", err)
	}

	return data, nil
}

// freeTextColumns are always double-quoted in the delimited export, even when
// their value carries no delimiter.
var freeTextColumns = map[string]bool{
	"message":          true,
	"special_requests": true,
	"admin_notes":      true,
	"admin_response":   true,
}

func renderCSV(headers []string, rows [][]any) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString(strings.Join(headers, ","))
	buf.WriteString("\r\n")

	record := make([]string, len(headers))

	for _, row := range rows {
		for i, value := range row {
			record[i] = csvField(stringify(value), freeTextColumns[headers[i]])
		}

		buf.WriteString(strings.Join(record, ","))
		buf.WriteString("\r\n")
	}

	return buf.Bytes(), nil
}

func csvField(value string, forceQuote bool) string {
	if forceQuote || strings.ContainsAny(value, ",\"\r\n") {
		return `"` + strings.ReplaceAll(value, `"`, `""`) + `"`
	}

	return value
}

func renderXLSX(headers []string, rows [][]any) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	index, err := f.NewSheet(exportSheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to create export sheet: %w", err)
	}

	f.SetActiveSheet(index)

	headerRow := make([]any, len(headers))
	for i, header := range headers {
		headerRow[i] = header
	}

	if err := f.SetSheetRow(exportSheetName, "A1", &headerRow); err != nil {
		return nil, fmt.Errorf("failed to write xlsx header: %w", err)
	}

	style, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err == nil {
		lastCol, _ := excelize.CoordinatesToCellName(len(headers), 1)
		_ = f.SetCellStyle(exportSheetName, "A1", lastCol, style)
	}

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve xlsx cell: %w", err)
		}

		if err := f.SetSheetRow(exportSheetName, cell, &row); err != nil {
			return nil, fmt.Errorf("failed to write xlsx row: %w", err)
		}
	}

	_ = f.DeleteSheet("Sheet1")

	var buf bytes.Buffer
	if _, err := f.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("failed to write xlsx file: %w", err)
	}

	return buf.Bytes(), nil
}

func stringify(value any) string {
	switch v := value.(type) {
	case string:
		return v
	case int:
		return strconv.Itoa(v)
	case float64:
		return strconv.FormatFloat(v, 'f', 2, 64)
	default:
		return fmt.Sprint(v)
	}
}
