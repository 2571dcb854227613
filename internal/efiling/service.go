package efiling

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/advocate-diary/advocate-backend/internal/notifications"
)

// Service drives the simulated e-filing wizard. Submitting a draft only
// generates a mock receipt and a notification; no court system is contacted.
type Service struct {
	drafts *Repo
	notes  *notifications.Repo
	log    *slog.Logger
	now    func() time.Time
}

func NewService(drafts *Repo, notes *notifications.Repo, log *slog.Logger) *Service {
	return &Service{drafts: drafts, notes: notes, log: log, now: time.Now}
}

type CreateDraftRequest struct {
	CaseID     string `json:"case_id"`
	Court      string `json:"court"`
	FilingType string `json:"filing_type"`
	Plaintiff  string `json:"plaintiff"`
	Defendant  string `json:"defendant"`
}

type UpdateDraftRequest struct {
	Court      *string        `json:"court"`
	FilingType *string        `json:"filing_type"`
	Plaintiff  *string        `json:"plaintiff"`
	Defendant  *string        `json:"defendant"`
	Step       *int           `json:"step"`
	Payload    map[string]any `json:"payload"`
}

func (s *Service) Create(ctx context.Context, userID string, req CreateDraftRequest) (*Draft, error) {
	d := &Draft{
		UserID:     userID,
		CaseID:     req.CaseID,
		Court:      req.Court,
		FilingType: req.FilingType,
		Plaintiff:  req.Plaintiff,
		Defendant:  req.Defendant,
		Step:       1,
		Status:     StatusDraft,
	}
	if err := s.drafts.Create(ctx, d); err != nil {
		return nil, err
	}
	return d, nil
}

func (s *Service) Get(ctx context.Context, userID, draftID string) (*Draft, error) {
	d, err := s.drafts.Get(ctx, draftID)
	if err != nil {
		return nil, err
	}
	if d.UserID != userID {
		return nil, ErrDraftNotFound
	}
	return d, nil
}

func (s *Service) List(ctx context.Context, userID string) ([]Draft, error) {
	return s.drafts.ListByUser(ctx, userID)
}

func (s *Service) Update(ctx context.Context, userID, draftID string, req UpdateDraftRequest) (*Draft, error) {
	d, err := s.Get(ctx, userID, draftID)
	if err != nil {
		return nil, err
	}
	if d.Status == StatusSubmitted {
		return nil, ErrAlreadySubmitted
	}

	if req.Court != nil {
		d.Court = *req.Court
	}
	if req.FilingType != nil {
		d.FilingType = *req.FilingType
	}
	if req.Plaintiff != nil {
		d.Plaintiff = *req.Plaintiff
	}
	if req.Defendant != nil {
		d.Defendant = *req.Defendant
	}
	if req.Step != nil {
		d.Step = *req.Step
	}
	if len(req.Payload) > 0 {
		if d.Payload == nil {
			d.Payload = make(map[string]any)
		}
		for k, v := range req.Payload {
			d.Payload[k] = v
		}
	}

	if err := s.drafts.Update(ctx, d); err != nil {
		return nil, err
	}
	return d, nil
}

// Submit finalizes a draft with a generated receipt number. The notification
// insert is best-effort: a failure there does not undo the submission.
func (s *Service) Submit(ctx context.Context, userID, draftID string) (*Draft, error) {
	d, err := s.Get(ctx, userID, draftID)
	if err != nil {
		return nil, err
	}
	if d.Status == StatusSubmitted {
		return nil, ErrAlreadySubmitted
	}

	now := s.now()
	d.Status = StatusSubmitted
	d.ReceiptNumber = newReceiptNumber(now)
	d.SubmittedAt = &now

	if err := s.drafts.Update(ctx, d); err != nil {
		return nil, err
	}

	if _, err := s.notes.Create(ctx, notifications.NewNotification{
		UserID:  userID,
		Type:    notifications.TypeCase,
		Title:   "E-filing submitted",
		Message: fmt.Sprintf("Filing to %s accepted with receipt %s", d.Court, d.ReceiptNumber),
		LinkURL: "/efiling",
	}); err != nil {
		s.log.Warn("e-filing notification failed", "draft_id", d.DraftID, "error", err)
	}

	return d, nil
}

func (s *Service) Delete(ctx context.Context, userID, draftID string) error {
	if _, err := s.Get(ctx, userID, draftID); err != nil {
		return err
	}
	return s.drafts.Delete(ctx, draftID)
}

func newReceiptNumber(now time.Time) string {
	id := strings.ToUpper(strings.ReplaceAll(uuid.New().String(), "-", ""))
	return fmt.Sprintf("EF-%d-%s", now.Year(), id[:8])
}
