package users

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("user not found")
)

var emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{
		repo: repo,
		now:  time.Now,
	}
}

type CreateInput struct {
	UserName     string
	UserEmail    string
	ProfileImage string
}

func (s *Service) Create(ctx context.Context, in CreateInput) (User, error) {
	name := strings.TrimSpace(in.UserName)
	email := strings.TrimSpace(in.UserEmail)
	if name == "" || !emailRe.MatchString(email) {
		return User{}, ErrInvalidInput
	}

	now := s.now()
	u := User{
		ID:             uuid.NewString(),
		UserName:       name,
		UserEmail:      email,
		ProfileImage:   strings.TrimSpace(in.ProfileImage),
		AvatarInitials: AvatarInitials(name),
		MemberSince:    now.Format("2006-01-02"),
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := s.repo.Create(ctx, u); err != nil {
		return User{}, err
	}
	return u, nil
}

func (s *Service) Get(ctx context.Context) (User, error) {
	return s.repo.Get(ctx)
}

func (s *Service) Update(ctx context.Context, patch Patch) (User, error) {
	if patch.Empty() {
		return User{}, ErrInvalidInput
	}
	if patch.UserEmail != nil && !emailRe.MatchString(strings.TrimSpace(*patch.UserEmail)) {
		return User{}, ErrInvalidInput
	}

	current, err := s.repo.Get(ctx)
	if err != nil {
		return User{}, err
	}
	if err := s.repo.Update(ctx, current.ID, patch); err != nil {
		return User{}, err
	}
	return s.repo.Get(ctx)
}

// AvatarInitials toma la primera letra de hasta dos palabras del nombre.
func AvatarInitials(name string) string {
	var b strings.Builder
	for _, word := range strings.Fields(name) {
		r := []rune(word)
		b.WriteString(strings.ToUpper(string(r[0])))
		if len([]rune(b.String())) >= 2 {
			break
		}
	}
	return b.String()
}
