package usecase

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"strconv"
	"strings"
	"time"

	"go-hiring-assistant/internal/domain"

	"github.com/xuri/excelize/v2"
)

var exportColumns = []struct {
	key    string
	header string
}{
	{"id", "ID"},
	{"name_hash", "NAME HASH"},
	{"email_hash", "EMAIL HASH"},
	{"phone_hash", "PHONE HASH"},
	{"years_exp", "YEARS OF EXPERIENCE"},
	{"desired_positions", "DESIRED POSITIONS"},
	{"location", "LOCATION"},
	{"tech_stack", "TECH STACK"},
	{"degree", "DEGREE"},
	{"domain", "DOMAIN"},
	{"cgpa", "CGPA"},
	{"last_company", "LAST COMPANY"},
	{"years_in_company", "YEARS IN COMPANY"},
	{"position_in_company", "POSITION IN COMPANY"},
	{"created_at", "CREATED AT"},
}

type exportUsecase struct {
	candidates domain.CandidateLogRepository
	now        func() time.Time
}

func NewExportUsecase(candidates domain.CandidateLogRepository) domain.ExportUsecase {
	return &exportUsecase{candidates: candidates, now: time.Now}
}

// ExportCandidates renders the anonymized log as xlsx (default) or csv.
func (u *exportUsecase) ExportCandidates(ctx context.Context, format string) ([]byte, string, error) {
	records, err := u.candidates.List(ctx)
	if err != nil {
		return nil, "", err
	}

	switch strings.ToLower(format) {
	case "csv":
		return u.exportCSV(records)
	case "xlsx", "":
		return u.exportExcel(records)
	default:
		return nil, "", &domain.ValidationError{Messages: []string{fmt.Sprintf("Unsupported export format: %s", format)}}
	}
}

func (u *exportUsecase) exportExcel(records []domain.CandidateRecord) ([]byte, string, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheetName := "Candidates"
	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return nil, "", fmt.Errorf("failed to name sheet: %w", err)
	}

	for i, col := range exportColumns {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheetName, cell, col.header)
	}

	// Dark blue header with white text
	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "#FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#1E3A5F"}},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	endCell, _ := excelize.CoordinatesToCellName(len(exportColumns), 1)
	f.SetCellStyle(sheetName, "A1", endCell, headerStyle)

	for rowIdx, rec := range records {
		for colIdx, col := range exportColumns {
			cell, _ := excelize.CoordinatesToCellName(colIdx+1, rowIdx+2)
			f.SetCellValue(sheetName, cell, recordField(rec, col.key))
		}
	}

	for i := range exportColumns {
		colName, _ := excelize.ColumnNumberToName(i + 1)
		f.SetColWidth(sheetName, colName, colName, 20)
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, "", fmt.Errorf("failed to write Excel file: %w", err)
	}

	filename := fmt.Sprintf("candidates_%s.xlsx", u.now().Format("20060102_150405"))
	return buf.Bytes(), filename, nil
}

func (u *exportUsecase) exportCSV(records []domain.CandidateRecord) ([]byte, string, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	header := make([]string, len(exportColumns))
	for i, col := range exportColumns {
		header[i] = col.key
	}
	if err := w.Write(header); err != nil {
		return nil, "", err
	}

	for _, rec := range records {
		row := make([]string, len(exportColumns))
		for i, col := range exportColumns {
			row[i] = fmt.Sprint(recordField(rec, col.key))
		}
		if err := w.Write(row); err != nil {
			return nil, "", err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, "", fmt.Errorf("failed to write CSV file: %w", err)
	}

	filename := fmt.Sprintf("candidates_%s.csv", u.now().Format("20060102_150405"))
	return buf.Bytes(), filename, nil
}

// recordField extracts a column value; absent optional fields render empty.
func recordField(r domain.CandidateRecord, key string) interface{} {
	str := func(p *string) string {
		if p == nil {
			return ""
		}
		return *p
	}

	switch key {
	case "id":
		return r.ID
	case "name_hash":
		return r.NameHash
	case "email_hash":
		return r.EmailHash
	case "phone_hash":
		return r.PhoneHash
	case "years_exp":
		return r.YearsExp
	case "desired_positions":
		return strings.Join(r.DesiredPositions, ", ")
	case "location":
		return r.Location
	case "tech_stack":
		return strings.Join(r.TechStack, ", ")
	case "degree":
		return str(r.Degree)
	case "domain":
		return str(r.Domain)
	case "cgpa":
		return str(r.CGPA)
	case "last_company":
		return str(r.LastCompany)
	case "years_in_company":
		if r.YearsInCompany == nil {
			return ""
		}
		return strconv.Itoa(*r.YearsInCompany)
	case "position_in_company":
		return str(r.PositionInCompany)
	case "created_at":
		return r.CreatedAt
	default:
		return ""
	}
}
