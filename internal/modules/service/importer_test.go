package service

import (
	"bytes"
	"context"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/youngpro718/nysc-facilities-sub003/internal/infra/blob"
	"github.com/youngpro718/nysc-facilities-sub003/internal/infra/extract"
	"github.com/youngpro718/nysc-facilities-sub003/internal/modules/model"
	"go.uber.org/zap"
)

func uploadFileHeader(t *testing.T, filename, content string) *multipart.FileHeader {
	t.Helper()

	body := new(bytes.Buffer)
	w := multipart.NewWriter(body)
	fw, err := w.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = fw.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/", body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	require.NoError(t, req.ParseMultipartForm(1<<20))
	return req.MultipartForm.File["file"][0]
}

func TestImportOccupantsCSV_ValidAndInvalidRows(t *testing.T) {
	occupants := new(MockOccupantRepo)
	svc := NewImporterService(occupants, new(MockTermRepo), nil, new(MockTermExtractor), zap.NewNop())

	csv := "first_name,last_name,email,department,position,status\n" +
		"Dana,Reyes,dana@example.org,Clerks,Senior Clerk,active\n" +
		",Smith,,,,\n" + // missing first_name
		"Lee,Park,not-an-email,,,\n" + // malformed email
		"Ana,Cole,,,,on_leave\n" +
		"Bo,Vang,,,,retired\n" // unknown status

	occupants.On("Create", mock.Anything, mock.Anything).Return(nil)

	result, err := svc.ImportOccupantsCSV(context.Background(), uploadFileHeader(t, "people.csv", csv))
	require.NoError(t, err)

	assert.Equal(t, 2, result.Imported)
	assert.Equal(t, 3, result.Failed)
	require.Len(t, result.RowErrors, 3)
	assert.Equal(t, 2, result.RowErrors[0].Row)
	assert.Contains(t, result.RowErrors[0].Messages[0], "first_name")
	assert.Equal(t, 3, result.RowErrors[1].Row)
	assert.Equal(t, 5, result.RowErrors[2].Row)

	occupants.AssertNumberOfCalls(t, "Create", 2)
}

func TestImportOccupantsCSV_EmptyCellsBecomeNil(t *testing.T) {
	occupants := new(MockOccupantRepo)
	svc := NewImporterService(occupants, new(MockTermRepo), nil, new(MockTermExtractor), zap.NewNop())

	csv := "first_name,last_name,email,phone,department,position\n" +
		"Dana,Reyes,,,Clerks,\n"

	occupants.On("Create", mock.Anything, mock.MatchedBy(func(o *model.Occupant) bool {
		return o.Email == nil && o.Phone == nil && o.Title == nil &&
			o.Department != nil && *o.Department == "Clerks" &&
			o.Status == model.OccupantStatusActive
	})).Return(nil)

	result, err := svc.ImportOccupantsCSV(context.Background(), uploadFileHeader(t, "people.csv", csv))
	require.NoError(t, err)
	assert.Equal(t, 1, result.Imported)
	occupants.AssertExpectations(t)
}

func TestImportOccupantsCSV_NoDataRows(t *testing.T) {
	svc := NewImporterService(new(MockOccupantRepo), new(MockTermRepo), nil, new(MockTermExtractor), zap.NewNop())

	_, err := svc.ImportOccupantsCSV(context.Background(), uploadFileHeader(t, "people.csv", "first_name,last_name\n"))
	assert.ErrorIs(t, err, ErrEmptyFile)
}

func TestImportOccupantsCSV_HeaderRequired(t *testing.T) {
	svc := NewImporterService(new(MockOccupantRepo), new(MockTermRepo), nil, new(MockTermExtractor), zap.NewNop())

	_, err := svc.ImportOccupantsCSV(context.Background(), uploadFileHeader(t, "people.csv", ""))
	assert.ErrorIs(t, err, ErrMissingHeader)

	_, err = svc.ImportOccupantsCSV(context.Background(), uploadFileHeader(t, "people.csv", "name,email\nx,y\n"))
	assert.ErrorIs(t, err, ErrMissingHeader)
}

func TestImportTermSchedule(t *testing.T) {
	terms := new(MockTermRepo)
	archiver := new(MockArchiver)
	extractor := new(MockTermExtractor)
	svc := NewImporterService(new(MockOccupantRepo), terms, archiver, extractor, zap.NewNop())

	fh := uploadFileHeader(t, "term.pdf", "%PDF-1.7 fake")

	archiver.On("ArchiveFormFile", mock.Anything, "term_pdf", fh).
		Return(&blob.UploadedMeta{Key: "imports/term_pdf/2026-03-02/abc.pdf"}, nil)
	extractor.On("ExtractTermSchedule", mock.Anything, "term.pdf", []byte("%PDF-1.7 fake")).
		Return(&extract.TermScheduleResult{
			TermNumber: "4",
			TermName:   "Term IV",
			StartDate:  "2026-03-02",
			EndDate:    "2026-04-03",
			Location:   "100 Centre Street",
			Assignments: []extract.TermAssignmentResult{
				{Part: "Part 41", Justice: "M. Alvarez", Room: "1324", Clerks: []string{"R. Chu", "T. Boone"}},
			},
		}, nil)
	terms.On("Upsert", mock.Anything, mock.MatchedBy(func(term *model.CourtTerm) bool {
		return term.TermNumber == "4" &&
			term.SourceKey != nil &&
			len(term.Assignments) == 1 &&
			term.Assignments[0].Part == "Part 41"
	})).Return(nil)

	term, err := svc.ImportTermSchedule(context.Background(), fh)
	require.NoError(t, err)
	assert.Equal(t, "Term IV", term.TermName)
	assert.Equal(t, "2026-03-02", term.StartDate.Format("2006-01-02"))
	terms.AssertExpectations(t)
}

func TestImportTermSchedule_BadDates(t *testing.T) {
	extractor := new(MockTermExtractor)
	svc := NewImporterService(new(MockOccupantRepo), new(MockTermRepo), nil, extractor, zap.NewNop())

	fh := uploadFileHeader(t, "term.pdf", "%PDF")
	extractor.On("ExtractTermSchedule", mock.Anything, mock.Anything, mock.Anything).
		Return(&extract.TermScheduleResult{TermNumber: "4", StartDate: "03/02/2026", EndDate: "2026-04-03"}, nil)

	_, err := svc.ImportTermSchedule(context.Background(), fh)
	assert.Error(t, err)
}
