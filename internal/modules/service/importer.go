package service

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	"github.com/youngpro718/nysc-facilities-sub003/internal/infra/blob"
	"github.com/youngpro718/nysc-facilities-sub003/internal/infra/extract"
	"github.com/youngpro718/nysc-facilities-sub003/internal/modules/model"
	"github.com/youngpro718/nysc-facilities-sub003/internal/modules/repo"
	"go.uber.org/zap"
	"gorm.io/datatypes"
)

var (
	ErrEmptyFile     = errors.New("file has no data rows")
	ErrMissingHeader = errors.New("missing header row")
)

// Archiver stores the raw uploaded file before it is processed.
type Archiver interface {
	ArchiveFormFile(ctx context.Context, keyPrefix string, fh *multipart.FileHeader) (*blob.UploadedMeta, error)
}

// TermExtractor turns a term schedule PDF into structured rows.
type TermExtractor interface {
	ExtractTermSchedule(ctx context.Context, filename string, pdf []byte) (*extract.TermScheduleResult, error)
}

// RowError reports why one CSV data row was rejected. Row is the
// 1-based index of the data row in the uploaded file.
type RowError struct {
	Row      int      `json:"row"`
	Messages []string `json:"messages"`
}

type ImportResult struct {
	Imported  int        `json:"imported"`
	Failed    int        `json:"failed"`
	RowErrors []RowError `json:"row_errors,omitempty"`
	SourceKey string     `json:"source_key,omitempty"`
}

type ImporterService interface {
	ImportOccupantsCSV(ctx context.Context, fh *multipart.FileHeader) (*ImportResult, error)
	ImportTermSchedule(ctx context.Context, fh *multipart.FileHeader) (*model.CourtTerm, error)
}

type importerService struct {
	occupants repo.OccupantRepo
	terms     repo.TermRepo
	archiver  Archiver
	extractor TermExtractor
	log       *zap.Logger
}

func NewImporterService(occupants repo.OccupantRepo, terms repo.TermRepo, archiver Archiver, extractor TermExtractor, log *zap.Logger) ImporterService {
	return &importerService{
		occupants: occupants,
		terms:     terms,
		archiver:  archiver,
		extractor: extractor,
		log:       log,
	}
}

// Recognized occupant CSV columns. "position" maps to the title field.
var occupantCSVColumns = map[string]bool{
	"first_name": true, "last_name": true, "email": true, "phone": true,
	"department": true, "position": true, "status": true,
	"emergency_contact_name": true, "emergency_contact_phone": true, "notes": true,
}

func (s *importerService) ImportOccupantsCSV(ctx context.Context, fh *multipart.FileHeader) (*ImportResult, error) {
	result := &ImportResult{}

	if s.archiver != nil {
		meta, err := s.archiver.ArchiveFormFile(ctx, "occupants_csv", fh)
		if err != nil {
			// The archive is an audit trail, not a precondition.
			s.log.Sugar().Warnw("archive occupant csv", "err", err)
		} else {
			result.SourceKey = meta.Key
		}
	}

	file, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, ErrMissingHeader
		}
		return nil, err
	}

	colIdx := make(map[string]int, len(header))
	for i, name := range header {
		name = strings.ToLower(strings.TrimSpace(name))
		if occupantCSVColumns[name] {
			colIdx[name] = i
		}
	}
	if _, ok := colIdx["first_name"]; !ok {
		return nil, fmt.Errorf("%w: first_name column not found", ErrMissingHeader)
	}

	rowNum := 0
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		rowNum++
		if err != nil {
			result.Failed++
			result.RowErrors = append(result.RowErrors, RowError{
				Row:      rowNum,
				Messages: []string{err.Error()},
			})
			continue
		}

		o, msgs := buildOccupantRow(colIdx, record)
		if len(msgs) > 0 {
			result.Failed++
			result.RowErrors = append(result.RowErrors, RowError{Row: rowNum, Messages: msgs})
			continue
		}

		if err := s.occupants.Create(ctx, o); err != nil {
			result.Failed++
			result.RowErrors = append(result.RowErrors, RowError{
				Row:      rowNum,
				Messages: []string{err.Error()},
			})
			continue
		}
		result.Imported++
	}

	if rowNum == 0 {
		return nil, ErrEmptyFile
	}
	s.log.Sugar().Infow("occupant csv imported",
		"imported", result.Imported, "failed", result.Failed)
	return result, nil
}

// buildOccupantRow validates one CSV record. Empty cells become nil
// before validation so "" and a missing column behave the same.
func buildOccupantRow(colIdx map[string]int, record []string) (*model.Occupant, []string) {
	cell := func(name string) *string {
		i, ok := colIdx[name]
		if !ok || i >= len(record) {
			return nil
		}
		v := strings.TrimSpace(record[i])
		if v == "" {
			return nil
		}
		return &v
	}

	var msgs []string

	first := cell("first_name")
	if first == nil {
		msgs = append(msgs, "first_name is required")
	}
	last := cell("last_name")
	if last == nil {
		msgs = append(msgs, "last_name is required")
	}
	email := cell("email")
	if email != nil && !strings.Contains(*email, "@") {
		msgs = append(msgs, "email is malformed")
	}

	status := model.OccupantStatusActive
	if v := cell("status"); v != nil {
		if !validOccupantStatus(*v) {
			msgs = append(msgs, fmt.Sprintf("status %q is not recognized", *v))
		} else {
			status = *v
		}
	}

	if len(msgs) > 0 {
		return nil, msgs
	}

	return &model.Occupant{
		FirstName:             *first,
		LastName:              *last,
		Email:                 email,
		Phone:                 cell("phone"),
		Department:            cell("department"),
		Title:                 cell("position"),
		Status:                status,
		AccessLevel:           model.AccessLevelStandard,
		EmergencyContactName:  cell("emergency_contact_name"),
		EmergencyContactPhone: cell("emergency_contact_phone"),
		Notes:                 cell("notes"),
	}, nil
}

func (s *importerService) ImportTermSchedule(ctx context.Context, fh *multipart.FileHeader) (*model.CourtTerm, error) {
	file, err := fh.Open()
	if err != nil {
		return nil, err
	}
	pdf, err := io.ReadAll(file)
	file.Close()
	if err != nil {
		return nil, err
	}

	var sourceKey *string
	if s.archiver != nil {
		meta, err := s.archiver.ArchiveFormFile(ctx, "term_pdf", fh)
		if err != nil {
			s.log.Sugar().Warnw("archive term pdf", "err", err)
		} else {
			sourceKey = &meta.Key
		}
	}

	extracted, err := s.extractor.ExtractTermSchedule(ctx, fh.Filename, pdf)
	if err != nil {
		return nil, fmt.Errorf("extract term schedule: %w", err)
	}
	if extracted.TermNumber == "" {
		return nil, errors.New("extracted schedule has no term number")
	}

	startDate, err := time.Parse("2006-01-02", extracted.StartDate)
	if err != nil {
		return nil, fmt.Errorf("parse term start date: %w", err)
	}
	endDate, err := time.Parse("2006-01-02", extracted.EndDate)
	if err != nil {
		return nil, fmt.Errorf("parse term end date: %w", err)
	}

	term := &model.CourtTerm{
		TermNumber: extracted.TermNumber,
		TermName:   extracted.TermName,
		StartDate:  startDate,
		EndDate:    endDate,
		Location:   extracted.Location,
		SourceKey:  sourceKey,
	}
	for _, a := range extracted.Assignments {
		clerks, err := sonic.Marshal(a.Clerks)
		if err != nil {
			return nil, err
		}
		term.Assignments = append(term.Assignments, model.TermAssignment{
			Part:       a.Part,
			Justice:    a.Justice,
			RoomNumber: a.Room,
			Clerks:     datatypes.JSON(clerks),
		})
	}

	if err := s.terms.Upsert(ctx, term); err != nil {
		return nil, err
	}
	s.log.Sugar().Infow("term schedule imported",
		"term_number", term.TermNumber, "assignments", len(term.Assignments))
	return term, nil
}
