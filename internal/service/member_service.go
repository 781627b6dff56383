package service

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/fssotc/website/internal/dto"
	"github.com/fssotc/website/internal/model"
	"github.com/fssotc/website/internal/notify"
	"github.com/fssotc/website/internal/repository"
)

// ── member errors ──

var (
	// ErrMemberNotFound reports no member with the given id.
	ErrMemberNotFound = errors.New("member not found")

	// ErrEmailTaken reports an email already used by another member.
	ErrEmailTaken = errors.New("email is already registered")

	// ErrUsernameTaken reports a username already used by another member.
	ErrUsernameTaken = errors.New("username is already used by another member")

	// ErrInvalidDate reports a birth date not in YYYY-MM-DD form.
	ErrInvalidDate = errors.New("invalid date, expected YYYY-MM-DD")
)

// MemberService member management and public registration.
type MemberService interface {
	// Register signs a visitor up for the current session, reusing the
	// member that already owns the email.
	Register(ctx context.Context, req *dto.RegisterRequest) (*dto.RegisterResponse, error)
	Create(ctx context.Context, req *dto.CreateMemberRequest) (*dto.MemberResponse, error)
	GetByID(ctx context.Context, id string) (*dto.MemberResponse, error)
	List(ctx context.Context, req *dto.MemberListRequest) ([]dto.MemberResponse, int64, error)
	Update(ctx context.Context, id string, req *dto.UpdateMemberRequest) (*dto.MemberResponse, error)
	// Delete removes the member together with every inscription.
	Delete(ctx context.Context, id string) error
}

type memberService struct {
	repo      *repository.Repository
	cal       Calendar
	publisher notify.Publisher
	logger    *zap.Logger
}

// NewMemberService creates a MemberService.
func NewMemberService(repo *repository.Repository, cal Calendar, publisher notify.Publisher, logger *zap.Logger) MemberService {
	return &memberService{repo: repo, cal: cal, publisher: publisher, logger: logger}
}

func (s *memberService) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.RegisterResponse, error) {
	session := s.cal.CurrentSession()

	var member *model.Member
	var ins *model.Inscription
	err := s.repo.Transaction(ctx, func(tx *repository.Repository) error {
		existing, err := tx.Member.GetByEmail(ctx, normalizeEmail(req.Email))
		switch {
		case err == nil:
			member = existing
		case errors.Is(err, gorm.ErrRecordNotFound):
			member, err = s.newMember(&req.CreateMemberRequest)
			if err != nil {
				return err
			}
			if err := s.insertMember(ctx, tx, member); err != nil {
				return err
			}
		default:
			return err
		}

		ins, err = buildInscription(member.MemberID, session, inscriptionFields{
			Num:        req.InscriptionNum,
			University: req.University,
			Education:  req.Education,
			Year:       req.Year,
		})
		if err != nil {
			return err
		}
		return insertInscription(ctx, tx, ins)
	})
	if err != nil {
		if !isMemberInputError(err) {
			s.logger.Error("register member failed", zap.String("email", req.Email), zap.Error(err))
		}
		return nil, err
	}
	publishCreated(s.publisher, ins, member, s.cal.Now())

	s.logger.Info("member registered",
		zap.String("member_id", member.MemberID),
		zap.String("session", session.Label()))

	member.Inscriptions = append(member.Inscriptions, *ins)
	today := s.cal.Today()
	return &dto.RegisterResponse{
		Member:      toMemberResponse(member, today),
		Inscription: toInscriptionResponse(ins, today),
	}, nil
}

func (s *memberService) Create(ctx context.Context, req *dto.CreateMemberRequest) (*dto.MemberResponse, error) {
	member, err := s.newMember(req)
	if err != nil {
		return nil, err
	}
	if err := s.insertMember(ctx, s.repo, member); err != nil {
		if !isMemberInputError(err) {
			s.logger.Error("create member failed", zap.String("email", member.Email), zap.Error(err))
		}
		return nil, err
	}
	resp := toMemberResponse(member, s.cal.Today())
	return &resp, nil
}

func (s *memberService) GetByID(ctx context.Context, id string) (*dto.MemberResponse, error) {
	member, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := toMemberResponse(member, s.cal.Today())
	return &resp, nil
}

func (s *memberService) List(ctx context.Context, req *dto.MemberListRequest) ([]dto.MemberResponse, int64, error) {
	members, total, err := s.repo.Member.List(ctx, repository.MemberFilter{
		Query:  req.Query,
		Offset: req.GetOffset(),
		Limit:  req.GetPageSize(),
	})
	if err != nil {
		s.logger.Error("list members failed", zap.Error(err))
		return nil, 0, err
	}

	today := s.cal.Today()
	result := make([]dto.MemberResponse, 0, len(members))
	for i := range members {
		result = append(result, toMemberResponse(&members[i], today))
	}
	return result, total, nil
}

func (s *memberService) Update(ctx context.Context, id string, req *dto.UpdateMemberRequest) (*dto.MemberResponse, error) {
	member, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		member.Name = strings.TrimSpace(*req.Name)
	}
	if req.FamilyName != nil {
		member.FamilyName = strings.TrimSpace(*req.FamilyName)
	}
	if req.Email != nil {
		email := normalizeEmail(*req.Email)
		if email != member.Email {
			other, err := s.repo.Member.GetByEmail(ctx, email)
			if err == nil && other.MemberID != member.MemberID {
				return nil, ErrEmailTaken
			}
			if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
				s.logger.Error("lookup member by email failed", zap.Error(err))
				return nil, err
			}
			member.Email = email
		}
	}
	if req.Phone != nil {
		member.Phone = emptyToNil(*req.Phone)
	}
	if req.Address != nil {
		member.Address = emptyToNil(*req.Address)
	}
	if req.Username != nil {
		username := strings.TrimSpace(*req.Username)
		if err := s.checkUsername(ctx, s.repo, username, member.MemberID); err != nil {
			return nil, err
		}
		member.Username = username
	}
	if req.Birthday != nil {
		birthday, err := dto.ParseDatePtr(req.Birthday)
		if err != nil {
			return nil, ErrInvalidDate
		}
		member.Birthday = birthday
	}

	if err := s.repo.Member.Update(ctx, member); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrEmailTaken
		}
		s.logger.Error("update member failed", zap.String("member_id", id), zap.Error(err))
		return nil, err
	}
	resp := toMemberResponse(member, s.cal.Today())
	return &resp, nil
}

func (s *memberService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Member.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrMemberNotFound
		}
		s.logger.Error("delete member failed", zap.String("member_id", id), zap.Error(err))
		return err
	}
	s.logger.Info("member deleted", zap.String("member_id", id))
	return nil
}

func (s *memberService) get(ctx context.Context, id string) (*model.Member, error) {
	member, err := s.repo.Member.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMemberNotFound
		}
		s.logger.Error("get member failed", zap.String("member_id", id), zap.Error(err))
		return nil, err
	}
	return member, nil
}

func (s *memberService) newMember(req *dto.CreateMemberRequest) (*model.Member, error) {
	birthday, err := dto.ParseDatePtr(req.Birthday)
	if err != nil {
		return nil, ErrInvalidDate
	}
	member := &model.Member{
		Name:       strings.TrimSpace(req.Name),
		FamilyName: strings.TrimSpace(req.FamilyName),
		Email:      normalizeEmail(req.Email),
		Username:   strings.TrimSpace(req.Username),
		Birthday:   birthday,
	}
	if req.Phone != nil {
		member.Phone = emptyToNil(*req.Phone)
	}
	if req.Address != nil {
		member.Address = emptyToNil(*req.Address)
	}
	return member, nil
}

// insertMember checks email and username uniqueness, then stores member.
func (s *memberService) insertMember(ctx context.Context, repo *repository.Repository, member *model.Member) error {
	_, err := repo.Member.GetByEmail(ctx, member.Email)
	if err == nil {
		return ErrEmailTaken
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}
	if err := s.checkUsername(ctx, repo, member.Username, ""); err != nil {
		return err
	}

	if err := repo.Member.Create(ctx, member); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrEmailTaken
		}
		return err
	}
	return nil
}

// checkUsername rejects a username another member holds, ignoring case.
// An empty username never collides.
func (s *memberService) checkUsername(ctx context.Context, repo *repository.Repository, username, excludeID string) error {
	if username == "" {
		return nil
	}
	taken, err := repo.Member.UsernameTaken(ctx, username, excludeID)
	if err != nil {
		s.logger.Error("check username failed", zap.String("username", username), zap.Error(err))
		return err
	}
	if taken {
		return ErrUsernameTaken
	}
	return nil
}

func isMemberInputError(err error) bool {
	return errors.Is(err, ErrEmailTaken) ||
		errors.Is(err, ErrUsernameTaken) ||
		errors.Is(err, ErrInvalidDate) ||
		errors.Is(err, ErrInvalidChoice) ||
		errors.Is(err, ErrInscriptionExists)
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func emptyToNil(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
