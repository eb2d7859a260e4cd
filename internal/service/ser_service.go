package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	appErrors "github.com/plm-dev/enlistment-api/pkg/errors"
	"github.com/plm-dev/enlistment-api/pkg/export"
)

// SER export formats.
const (
	SERFormatPDF = "pdf"
	SERFormatCSV = "csv"
)

// SERService renders the printable Student Enlistment Record for a finalized
// enlistment.
type SERService struct {
	students    studentReader
	enlistments enlistmentRepository
	pdf         *export.PDFExporter
	csv         *export.CSVExporter
}

// NewSERService constructs SERService.
func NewSERService(students studentReader, enlistments enlistmentRepository) *SERService {
	return &SERService{
		students:    students,
		enlistments: enlistments,
		pdf:         export.NewPDFExporter(),
		csv:         export.NewCSVExporter(),
	}
}

// Export renders the student's SER in the requested format and returns the
// document bytes with their MIME type.
func (s *SERService) Export(ctx context.Context, studentID, format string) ([]byte, string, error) {
	if format != SERFormatPDF && format != SERFormatCSV {
		return nil, "", appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unsupported format %q", format))
	}

	student, err := s.students.FindByID(ctx, studentID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, "", appErrors.Clone(appErrors.ErrNotFound, "student not found")
		}
		return nil, "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load student")
	}

	enlistment, err := s.enlistments.FindLatestByStudent(ctx, studentID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, "", appErrors.Clone(appErrors.ErrNotEnlisted, "")
		}
		return nil, "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load enlistment")
	}
	subjects, err := s.enlistments.ListSubjects(ctx, enlistment.ID)
	if err != nil {
		return nil, "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load enlisted subjects")
	}

	headers := []string{"Subject Code", "Subject Name", "Day", "Time", "Room", "Units"}
	rows := make([]map[string]string, 0, len(subjects)+1)
	total := 0
	for _, subject := range subjects {
		total += subject.Units
		rows = append(rows, map[string]string{
			"Subject Code": subject.SubjectCode,
			"Subject Name": subject.SubjectName,
			"Day":          subject.Day,
			"Time":         fmt.Sprintf("%s-%s", subject.TimeStart, subject.TimeEnd),
			"Room":         subject.Room,
			"Units":        fmt.Sprintf("%d", subject.Units),
		})
	}
	rows = append(rows, map[string]string{
		"Subject Code": "TOTAL",
		"Units":        fmt.Sprintf("%d", total),
	})
	dataset := export.Dataset{Headers: headers, Rows: rows}

	if format == SERFormatCSV {
		payload, err := s.csv.Render(dataset)
		if err != nil {
			return nil, "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render csv")
		}
		return payload, "text/csv", nil
	}

	preamble := []string{
		fmt.Sprintf("Student: %s (%s)", student.FullName, student.ID),
		fmt.Sprintf("Program: %s / %s", student.Program, student.College),
		fmt.Sprintf("Semester: %s", enlistment.Semester),
		fmt.Sprintf("Date Submitted: %s", enlistment.SubmittedAt.Format("January 02, 2006 03:04 PM")),
	}
	payload, err := s.pdf.Render(dataset, "Student Enlistment Record", preamble)
	if err != nil {
		return nil, "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render pdf")
	}
	return payload, "application/pdf", nil
}
