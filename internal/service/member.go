package service

import (
	"context"
	"errors"
	"time"

	"dues-tracker-backend/internal/domain"
	"dues-tracker-backend/internal/logger"
	"dues-tracker-backend/internal/repository"

	"golang.org/x/crypto/bcrypt"
)

type memberService struct {
	memberRepo repository.MemberRepository
	gateway    NotificationGateway
	notifier   *Notifier
}

func NewMemberService(memberRepo repository.MemberRepository, gateway NotificationGateway, notifier *Notifier) MemberService {
	return &memberService{
		memberRepo: memberRepo,
		gateway:    gateway,
		notifier:   notifier,
	}
}

func (s *memberService) CreateMember(ctx context.Context, name, email, phone string, duesAmountCents int64, role domain.MemberRole, password string, dueDate *time.Time) (*domain.Member, error) {
	if _, err := s.memberRepo.GetByEmail(ctx, email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, err
	}

	if role == "" {
		role = domain.MemberRoleMember
	}
	if duesAmountCents < 0 {
		duesAmountCents = 0
	}

	m := &domain.Member{
		Name:            name,
		Email:           email,
		Phone:           phone,
		DuesAmountCents: duesAmountCents,
		Role:            role,
		DueDate:         dueDate,
		PaymentStatus:   domain.ResolveStatus(0, duesAmountCents, dueDate, time.Now()),
	}
	if password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		m.PasswordHash = string(hash)
	}

	if err := s.memberRepo.Create(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}

func (s *memberService) GetMember(ctx context.Context, id int32) (*domain.Member, error) {
	m, err := s.memberRepo.GetByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrMemberNotFound
	}
	if err != nil {
		return nil, err
	}
	s.refreshStatus(ctx, m)
	return m, nil
}

func (s *memberService) ListMembers(ctx context.Context) ([]domain.Member, error) {
	members, err := s.memberRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range members {
		s.refreshStatus(ctx, &members[i])
	}
	return members, nil
}

func (s *memberService) UpdateMember(ctx context.Context, id int32, update MemberUpdate) (*domain.Member, error) {
	m, err := s.memberRepo.GetByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrMemberNotFound
	}
	if err != nil {
		return nil, err
	}
	oldStatus := m.PaymentStatus

	if update.Name != nil {
		m.Name = *update.Name
	}
	if update.Email != nil {
		m.Email = *update.Email
	}
	if update.Phone != nil {
		m.Phone = *update.Phone
	}
	if update.Role != nil {
		m.Role = *update.Role
	}
	if update.DuesAmountCents != nil {
		m.DuesAmountCents = *update.DuesAmountCents
	}
	if update.AmountPaidCents != nil {
		m.AmountPaidCents = *update.AmountPaidCents
	}
	if update.ClearDueDate {
		m.DueDate = nil
	} else if update.DueDate != nil {
		d := *update.DueDate
		m.DueDate = &d
	}

	// The status is always recomputed from the updated facts. Requests
	// carrying an explicit status are ignored here; the resolver is the
	// only writer.
	m.PaymentStatus = domain.ResolveStatus(m.AmountPaidCents, m.DuesAmountCents, m.DueDate, time.Now())

	if err := s.memberRepo.Update(ctx, m); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrMemberNotFound
		}
		return nil, err
	}

	if m.PaymentStatus != oldStatus {
		name, old, newStatus := m.Name, oldStatus, m.PaymentStatus
		s.notifier.Enqueue(func(ctx context.Context) {
			s.gateway.SendStatusUpdate(ctx, name, old, newStatus, "Admin")
		})
	}
	return m, nil
}

func (s *memberService) DeleteMember(ctx context.Context, id int32) error {
	err := s.memberRepo.Delete(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrMemberNotFound
	}
	return err
}

// refreshStatus recomputes the derived status against the current clock and
// persists it when it drifted. A member flips from Pending to Overdue purely
// by time passing, so reads must not trust the stored value. Persistence is
// best-effort: a failed write still returns the freshly resolved status.
func (s *memberService) refreshStatus(ctx context.Context, m *domain.Member) {
	resolved := domain.ResolveStatusOr(m.PaymentStatus, m.AmountPaidCents, m.DuesAmountCents, m.DueDate, time.Now())
	if resolved == m.PaymentStatus {
		return
	}
	m.PaymentStatus = resolved
	if err := s.memberRepo.Update(ctx, m); err != nil {
		logger.Error("Failed to persist refreshed payment status", "member_id", m.ID, "error", err)
	}
}
