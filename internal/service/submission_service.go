package service

import (
	"bytes"
	"context"
	"ery_cursos_backend/internal/model"
	"ery_cursos_backend/internal/repository"
	"ery_cursos_backend/internal/util"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/google/uuid"
)

type SubmissionService struct {
	SubmissionRepo *repository.SubmissionRepository
	AssignmentRepo *repository.AssignmentRepository
	Storage        *StorageService
}

func NewSubmissionService(
	submissionRepo *repository.SubmissionRepository,
	assignmentRepo *repository.AssignmentRepository,
	storage *StorageService,
) *SubmissionService {
	return &SubmissionService{
		SubmissionRepo: submissionRepo,
		AssignmentRepo: assignmentRepo,
		Storage:        storage,
	}
}

// Submit validates and stores an uploaded file, then records the submission
// against the assignment. Size and MIME checks reject the upload before any
// byte is written.
func (s *SubmissionService) Submit(ctx context.Context, userID uint, assignmentID, fileName string, size int64, reader io.Reader) (*model.Submission, error) {
	if size <= 0 {
		return nil, fmt.Errorf("%w: empty file", util.ErrInvalidInput)
	}
	if size > util.MaxUploadSize {
		return nil, util.ErrFileTooLarge
	}

	assignment, err := s.AssignmentRepo.FindByID(assignmentID)
	if err != nil {
		return nil, err
	}

	// Sniff the first 512 bytes, then stitch them back in front of the rest
	// of the stream for the actual upload.
	head := make([]byte, 512)
	n, err := io.ReadFull(reader, head)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return nil, err
	}
	contentType, err := util.DetectMimeType(bytes.NewReader(head[:n]), util.AllowedUploadTypes)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", util.ErrFileTypeNotAllowed, contentType)
	}
	full := io.MultiReader(bytes.NewReader(head[:n]), reader)

	storedName := fmt.Sprintf("submissions/%s/%s%s", assignment.UnitKey, uuid.New().String(), filepath.Ext(fileName))
	url, err := s.Storage.Provider.Upload(ctx, storedName, full, size, contentType)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", util.ErrStorageUnavailable, err)
	}

	submission := &model.Submission{
		UserID:       userID,
		AssignmentID: assignment.ID,
		UnitKey:      assignment.UnitKey,
		FileName:     fileName,
		FilePath:     url,
		FileSize:     size,
		ContentType:  contentType,
		Status:       model.SubmissionPending,
		SubmittedAt:  time.Now(),
	}
	if err := s.SubmissionRepo.Create(submission); err != nil {
		return nil, err
	}
	return submission, nil
}

func (s *SubmissionService) ListMine(userID uint) ([]model.Submission, error) {
	return s.SubmissionRepo.ListByUser(userID)
}

func (s *SubmissionService) ListPending(unitKey string) ([]model.Submission, error) {
	return s.SubmissionRepo.ListPending(unitKey)
}
