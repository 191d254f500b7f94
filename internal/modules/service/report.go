package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/xuri/excelize/v2"
	"github.com/youngpro718/nysc-facilities-sub003/internal/infra/blob"
	"github.com/youngpro718/nysc-facilities-sub003/internal/modules/repo"
)

var ErrNoExportStore = errors.New("export storage is not configured")

// Share is one category of a distribution report. Percentages are
// rounded to one decimal and sum to 100 (up to rounding) for non-empty
// populations; an empty population yields no rows at all, so there is
// no divide-by-zero path.
type Share struct {
	Label   string  `json:"label"`
	Count   int64   `json:"count"`
	Percent float64 `json:"percent"`
}

type BuildingOccupancy struct {
	Building      string  `json:"building"`
	TotalRooms    int64   `json:"total_rooms"`
	OccupiedRooms int64   `json:"occupied_rooms"`
	OccupancyRate float64 `json:"occupancy_rate"`
}

// ExportStore archives generated workbooks and hands out short-lived
// download links. *blob.S3Deps satisfies it.
type ExportStore interface {
	UploadBytes(ctx context.Context, key, contentType string, data []byte) (*blob.UploadedMeta, error)
	PresignGet(ctx context.Context, key string, expire time.Duration) (string, error)
}

type ExportLink struct {
	URL          string `json:"url"`
	Key          string `json:"key"`
	ExpiresInSec int    `json:"expires_in_sec"`
}

type ReportService interface {
	OccupancyByBuilding(ctx context.Context) ([]BuildingOccupancy, error)
	DepartmentDistribution(ctx context.Context) ([]Share, error)
	StatusDistribution(ctx context.Context) ([]Share, error)
	ExportXLSX(ctx context.Context) ([]byte, error)
	ExportDownloadLink(ctx context.Context) (*ExportLink, error)
}

type reportService struct {
	occupants     repo.OccupantRepo
	rooms         repo.RoomRepo
	store         ExportStore
	presignExpire time.Duration
}

func NewReportService(occupants repo.OccupantRepo, rooms repo.RoomRepo, store ExportStore, presignExpire time.Duration) ReportService {
	if presignExpire <= 0 {
		presignExpire = 15 * time.Minute
	}
	return &reportService{
		occupants:     occupants,
		rooms:         rooms,
		store:         store,
		presignExpire: presignExpire,
	}
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func toShares(rows []repo.CountRow) []Share {
	var total int64
	for _, r := range rows {
		total += r.Count
	}
	shares := make([]Share, 0, len(rows))
	for _, r := range rows {
		pct := 0.0
		if total > 0 {
			pct = round1(float64(r.Count) / float64(total) * 100)
		}
		shares = append(shares, Share{Label: r.Label, Count: r.Count, Percent: pct})
	}
	return shares
}

func (s *reportService) OccupancyByBuilding(ctx context.Context) ([]BuildingOccupancy, error) {
	totals, err := s.rooms.CountByBuilding(ctx)
	if err != nil {
		return nil, err
	}
	occupied, err := s.rooms.CountOccupiedByBuilding(ctx)
	if err != nil {
		return nil, err
	}

	occupiedBy := make(map[string]int64, len(occupied))
	for _, r := range occupied {
		occupiedBy[r.Label] = r.Count
	}

	out := make([]BuildingOccupancy, 0, len(totals))
	for _, t := range totals {
		rate := 0.0
		if t.Count > 0 {
			rate = round1(float64(occupiedBy[t.Label]) / float64(t.Count) * 100)
		}
		out = append(out, BuildingOccupancy{
			Building:      t.Label,
			TotalRooms:    t.Count,
			OccupiedRooms: occupiedBy[t.Label],
			OccupancyRate: rate,
		})
	}
	return out, nil
}

func (s *reportService) DepartmentDistribution(ctx context.Context) ([]Share, error) {
	rows, err := s.occupants.CountByDepartment(ctx)
	if err != nil {
		return nil, err
	}
	return toShares(rows), nil
}

func (s *reportService) StatusDistribution(ctx context.Context) ([]Share, error) {
	rows, err := s.occupants.CountByStatus(ctx)
	if err != nil {
		return nil, err
	}
	return toShares(rows), nil
}

// ExportXLSX renders the three reports into one workbook, one sheet
// each.
func (s *reportService) ExportXLSX(ctx context.Context) ([]byte, error) {
	occupancy, err := s.OccupancyByBuilding(ctx)
	if err != nil {
		return nil, err
	}
	departments, err := s.DepartmentDistribution(ctx)
	if err != nil {
		return nil, err
	}
	statuses, err := s.StatusDistribution(ctx)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	defer f.Close()

	const occSheet = "Occupancy"
	f.SetSheetName(f.GetSheetName(0), occSheet)
	_ = f.SetSheetRow(occSheet, "A1", &[]interface{}{"Building", "Total Rooms", "Occupied Rooms", "Occupancy %"})
	for i, row := range occupancy {
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		_ = f.SetSheetRow(occSheet, cell, &[]interface{}{row.Building, row.TotalRooms, row.OccupiedRooms, row.OccupancyRate})
	}

	writeShares := func(sheet string, shares []Share) error {
		if _, err := f.NewSheet(sheet); err != nil {
			return err
		}
		_ = f.SetSheetRow(sheet, "A1", &[]interface{}{"Category", "Count", "Percent"})
		for i, sh := range shares {
			cell, _ := excelize.CoordinatesToCellName(1, i+2)
			_ = f.SetSheetRow(sheet, cell, &[]interface{}{sh.Label, sh.Count, sh.Percent})
		}
		return nil
	}
	if err := writeShares("Departments", departments); err != nil {
		return nil, err
	}
	if err := writeShares("Statuses", statuses); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

const xlsxMIME = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ExportDownloadLink archives the workbook and returns a pre-signed
// download URL instead of streaming the bytes.
func (s *reportService) ExportDownloadLink(ctx context.Context) (*ExportLink, error) {
	if s.store == nil {
		return nil, ErrNoExportStore
	}

	data, err := s.ExportXLSX(ctx)
	if err != nil {
		return nil, err
	}

	key := fmt.Sprintf("exports/facility-report-%s.xlsx", time.Now().UTC().Format("20060102T150405Z"))
	if _, err := s.store.UploadBytes(ctx, key, xlsxMIME, data); err != nil {
		return nil, fmt.Errorf("archive export: %w", err)
	}

	url, err := s.store.PresignGet(ctx, key, s.presignExpire)
	if err != nil {
		return nil, fmt.Errorf("presign export: %w", err)
	}

	return &ExportLink{
		URL:          url,
		Key:          key,
		ExpiresInSec: int(s.presignExpire / time.Second),
	}, nil
}
