package service

import (
	"context"
	"mime/multipart"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/youngpro718/nysc-facilities-sub003/internal/infra/blob"
	"github.com/youngpro718/nysc-facilities-sub003/internal/infra/extract"
	"github.com/youngpro718/nysc-facilities-sub003/internal/modules/model"
	"github.com/youngpro718/nysc-facilities-sub003/internal/modules/repo"
)

// MockOccupantRepo is a mock implementation of repo.OccupantRepo
type MockOccupantRepo struct {
	mock.Mock
}

func (m *MockOccupantRepo) Create(ctx context.Context, o *model.Occupant) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOccupantRepo) Update(ctx context.Context, o *model.Occupant) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOccupantRepo) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockOccupantRepo) Get(ctx context.Context, id uuid.UUID) (*model.Occupant, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Occupant), args.Error(1)
}

func (m *MockOccupantRepo) ListWithCursor(ctx context.Context, afterCreatedAt time.Time, afterID uuid.UUID, limit int, timeDesc bool) ([]*model.Occupant, error) {
	args := m.Called(ctx, afterCreatedAt, afterID, limit, timeDesc)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Occupant), args.Error(1)
}

func (m *MockOccupantRepo) BulkUpdateStatus(ctx context.Context, ids []uuid.UUID, status string) (int64, error) {
	args := m.Called(ctx, ids, status)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockOccupantRepo) CountByDepartment(ctx context.Context) ([]repo.CountRow, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]repo.CountRow), args.Error(1)
}

func (m *MockOccupantRepo) CountByStatus(ctx context.Context) ([]repo.CountRow, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]repo.CountRow), args.Error(1)
}

func (m *MockOccupantRepo) UpdateWithReconcile(ctx context.Context, o *model.Occupant, removeRoomIDs []uuid.UUID, addRooms []model.RoomAssignment, returnKeyAssignmentIDs []uuid.UUID, addKeys []model.KeyAssignment) error {
	args := m.Called(ctx, o, removeRoomIDs, addRooms, returnKeyAssignmentIDs, addKeys)
	return args.Error(0)
}

// MockRoomRepo is a mock implementation of repo.RoomRepo
type MockRoomRepo struct {
	mock.Mock
}

func (m *MockRoomRepo) Get(ctx context.Context, id uuid.UUID) (*model.Room, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Room), args.Error(1)
}

func (m *MockRoomRepo) List(ctx context.Context, building string) ([]*model.Room, error) {
	args := m.Called(ctx, building)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Room), args.Error(1)
}

func (m *MockRoomRepo) CountByBuilding(ctx context.Context) ([]repo.CountRow, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]repo.CountRow), args.Error(1)
}

func (m *MockRoomRepo) CountOccupiedByBuilding(ctx context.Context) ([]repo.CountRow, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]repo.CountRow), args.Error(1)
}

// MockKeyRepo is a mock implementation of repo.KeyRepo
type MockKeyRepo struct {
	mock.Mock
}

func (m *MockKeyRepo) Create(ctx context.Context, k *model.Key) error {
	args := m.Called(ctx, k)
	return args.Error(0)
}

func (m *MockKeyRepo) Get(ctx context.Context, id uuid.UUID) (*model.Key, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Key), args.Error(1)
}

func (m *MockKeyRepo) List(ctx context.Context) ([]*model.Key, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Key), args.Error(1)
}

func (m *MockKeyRepo) ActiveAssignment(ctx context.Context, keyID, occupantID uuid.UUID) (*model.KeyAssignment, error) {
	args := m.Called(ctx, keyID, occupantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.KeyAssignment), args.Error(1)
}

func (m *MockKeyRepo) CountActiveSpares(ctx context.Context, occupantID uuid.UUID) (int64, error) {
	args := m.Called(ctx, occupantID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockKeyRepo) ListActiveByOccupant(ctx context.Context, occupantID uuid.UUID) ([]*model.KeyAssignment, error) {
	args := m.Called(ctx, occupantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.KeyAssignment), args.Error(1)
}

func (m *MockKeyRepo) ListByKey(ctx context.Context, keyID uuid.UUID) ([]*model.KeyAssignment, error) {
	args := m.Called(ctx, keyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.KeyAssignment), args.Error(1)
}

func (m *MockKeyRepo) Assign(ctx context.Context, ka *model.KeyAssignment) error {
	args := m.Called(ctx, ka)
	return args.Error(0)
}

func (m *MockKeyRepo) Return(ctx context.Context, assignmentID uuid.UUID, reason *string) (*model.KeyAssignment, error) {
	args := m.Called(ctx, assignmentID, reason)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.KeyAssignment), args.Error(1)
}

// MockRoomAssignmentRepo is a mock implementation of repo.RoomAssignmentRepo
type MockRoomAssignmentRepo struct {
	mock.Mock
}

func (m *MockRoomAssignmentRepo) Create(ctx context.Context, ra *model.RoomAssignment) error {
	args := m.Called(ctx, ra)
	return args.Error(0)
}

func (m *MockRoomAssignmentRepo) CreatePrimary(ctx context.Context, ra *model.RoomAssignment) error {
	args := m.Called(ctx, ra)
	return args.Error(0)
}

func (m *MockRoomAssignmentRepo) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockRoomAssignmentRepo) ListByOccupant(ctx context.Context, occupantID uuid.UUID) ([]*model.RoomAssignment, error) {
	args := m.Called(ctx, occupantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.RoomAssignment), args.Error(1)
}

func (m *MockRoomAssignmentRepo) ListByRoom(ctx context.Context, roomID uuid.UUID) ([]*model.RoomAssignment, error) {
	args := m.Called(ctx, roomID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.RoomAssignment), args.Error(1)
}

func (m *MockRoomAssignmentRepo) FindPrimary(ctx context.Context, occupantID uuid.UUID, assignmentType string) (*model.RoomAssignment, error) {
	args := m.Called(ctx, occupantID, assignmentType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.RoomAssignment), args.Error(1)
}

// MockRelocationRepo is a mock implementation of repo.RelocationRepo
type MockRelocationRepo struct {
	mock.Mock
}

func (m *MockRelocationRepo) Create(ctx context.Context, rel *model.RoomRelocation) error {
	args := m.Called(ctx, rel)
	return args.Error(0)
}

func (m *MockRelocationRepo) Get(ctx context.Context, id uuid.UUID) (*model.RoomRelocation, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.RoomRelocation), args.Error(1)
}

func (m *MockRelocationRepo) List(ctx context.Context, status string, limit, offset int) ([]*model.RoomRelocation, int64, error) {
	args := m.Called(ctx, status, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Get(1).(int64), args.Error(2)
	}
	return args.Get(0).([]*model.RoomRelocation), args.Get(1).(int64), args.Error(2)
}

func (m *MockRelocationRepo) Transition(ctx context.Context, id uuid.UUID, spec repo.CascadeSpec) (*model.RoomRelocation, error) {
	args := m.Called(ctx, id, spec)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.RoomRelocation), args.Error(1)
}

func (m *MockRelocationRepo) CreateWork(ctx context.Context, w *model.WorkAssignment) error {
	args := m.Called(ctx, w)
	return args.Error(0)
}

func (m *MockRelocationRepo) GetWork(ctx context.Context, id uuid.UUID) (*model.WorkAssignment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.WorkAssignment), args.Error(1)
}

func (m *MockRelocationRepo) UpdateWorkStatus(ctx context.Context, id uuid.UUID, from []string, to string, completionNotes *string) (*model.WorkAssignment, error) {
	args := m.Called(ctx, id, from, to, completionNotes)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.WorkAssignment), args.Error(1)
}

func (m *MockRelocationRepo) ListWorkByRelocation(ctx context.Context, relocationID uuid.UUID) ([]*model.WorkAssignment, error) {
	args := m.Called(ctx, relocationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.WorkAssignment), args.Error(1)
}

func (m *MockRelocationRepo) CreateSession(ctx context.Context, s *model.CourtSession) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

func (m *MockRelocationRepo) DeleteSession(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockRelocationRepo) ListSessionsByRelocation(ctx context.Context, relocationID uuid.UUID) ([]*model.CourtSession, error) {
	args := m.Called(ctx, relocationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.CourtSession), args.Error(1)
}

func (m *MockRelocationRepo) ListSessionsByRoomAndDate(ctx context.Context, roomID uuid.UUID, day time.Time) ([]model.CourtSession, error) {
	args := m.Called(ctx, roomID, day)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.CourtSession), args.Error(1)
}

func (m *MockRelocationRepo) ListOpenWorkByRoomAndDate(ctx context.Context, roomID uuid.UUID, day time.Time) ([]model.WorkAssignment, error) {
	args := m.Called(ctx, roomID, day)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.WorkAssignment), args.Error(1)
}

// MockNotificationRepo is a mock implementation of repo.NotificationRepo
type MockNotificationRepo struct {
	mock.Mock
}

func (m *MockNotificationRepo) Create(ctx context.Context, n *model.Notification) error {
	args := m.Called(ctx, n)
	return args.Error(0)
}

func (m *MockNotificationRepo) MarkSent(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockNotificationRepo) List(ctx context.Context, status string, limit int) ([]*model.Notification, error) {
	args := m.Called(ctx, status, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.Notification), args.Error(1)
}

// MockTermRepo is a mock implementation of repo.TermRepo
type MockTermRepo struct {
	mock.Mock
}

func (m *MockTermRepo) Upsert(ctx context.Context, term *model.CourtTerm) error {
	args := m.Called(ctx, term)
	return args.Error(0)
}

func (m *MockTermRepo) Get(ctx context.Context, id uuid.UUID) (*model.CourtTerm, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.CourtTerm), args.Error(1)
}

func (m *MockTermRepo) List(ctx context.Context) ([]*model.CourtTerm, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.CourtTerm), args.Error(1)
}

// MockNotifier is a mock implementation of Notifier
type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) RelocationStatusChanged(ctx context.Context, rel *model.RoomRelocation, fromStatus string) {
	m.Called(ctx, rel, fromStatus)
}

func (m *MockNotifier) ScheduleChangeRecorded(ctx context.Context, sc *model.ScheduleChange) {
	m.Called(ctx, sc)
}

// MockExportStore is a mock implementation of ExportStore
type MockExportStore struct {
	mock.Mock
}

func (m *MockExportStore) UploadBytes(ctx context.Context, key, contentType string, data []byte) (*blob.UploadedMeta, error) {
	args := m.Called(ctx, key, contentType, data)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*blob.UploadedMeta), args.Error(1)
}

func (m *MockExportStore) PresignGet(ctx context.Context, key string, expire time.Duration) (string, error) {
	args := m.Called(ctx, key, expire)
	return args.String(0), args.Error(1)
}

// MockArchiver is a mock implementation of Archiver
type MockArchiver struct {
	mock.Mock
}

func (m *MockArchiver) ArchiveFormFile(ctx context.Context, keyPrefix string, fh *multipart.FileHeader) (*blob.UploadedMeta, error) {
	args := m.Called(ctx, keyPrefix, fh)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*blob.UploadedMeta), args.Error(1)
}

// MockTermExtractor is a mock implementation of TermExtractor
type MockTermExtractor struct {
	mock.Mock
}

func (m *MockTermExtractor) ExtractTermSchedule(ctx context.Context, filename string, pdf []byte) (*extract.TermScheduleResult, error) {
	args := m.Called(ctx, filename, pdf)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*extract.TermScheduleResult), args.Error(1)
}
