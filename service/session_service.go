package service

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"qaportal/pkg/logger"
	"qaportal/pkg/models"
	"qaportal/storage"
)

// Store keys. Registries are global; the session marker is scoped per
// client so several chats can be logged in independently.
const (
	usersKey         = "qa_users"
	questionsKey     = "qa_questions"
	sessionKeyPrefix = "qa_session:"
)

var (
	// ErrNoMatch means login found no user; the caller is expected to
	// offer registration next.
	ErrNoMatch = errors.New("no user matches this nickname or phone")

	// ErrConflict means the nickname or phone is already taken.
	ErrConflict = errors.New("nickname or phone number already taken")
)

// SessionService is the portal's whole logical core: the user registry,
// the question registry and the per-client session identity, all layered
// over a key-value store.
type SessionService interface {
	// Identity returns the current actor for clientID: anonymous, the
	// admin, or a registered user.
	Identity(ctx context.Context, clientID string) models.Identity

	// Login matches phone against the admin phone first, then a user's
	// phone exactly, then a user's nickname case-insensitively. A match
	// becomes the client's session identity; no match is ErrNoMatch.
	Login(ctx context.Context, clientID, nickname, phone string) (models.Identity, error)

	// Register creates a new user and logs the client in as them.
	// Duplicate nickname (case-insensitive) or phone (exact) is
	// ErrConflict. Field validation is the view's job.
	Register(ctx context.Context, clientID, nickname, phone string) (models.Identity, error)

	// Logout clears the client's session. Registries are untouched.
	Logout(ctx context.Context, clientID string)

	// AddQuestion records a new question authored by the client's
	// current user. A no-op when the client is anonymous or the admin.
	AddQuestion(ctx context.Context, clientID, text string)

	// DeleteQuestion soft-deletes the question with the given id, if
	// any. The record stays in the registry; the admin still sees it.
	DeleteQuestion(ctx context.Context, questionID string)

	// AnswerQuestion sets or overwrites the answer on the question with
	// the given id, if any. Last write wins.
	AnswerQuestion(ctx context.Context, questionID, answer string)

	GetUserByID(ctx context.Context, id string) (models.User, bool)
	Users(ctx context.Context) []models.User

	// AllQuestions returns every question, soft-deleted included,
	// newest first. The admin dashboard reads this.
	AllQuestions(ctx context.Context) []models.Question

	// UserQuestions returns the author's non-deleted questions, newest
	// first. The user dashboard reads this.
	UserQuestions(ctx context.Context, authorID string) []models.Question
}

type sessionService struct {
	stg        storage.IStore
	adminPhone string
	log        logger.ILogger

	// Guards read-modify-write sequences on the shared registries. The
	// store itself has no per-key transactions.
	mu sync.Mutex
}

func NewSessionService(stg storage.IStore, adminPhone string, log logger.ILogger) SessionService {
	return &sessionService{
		stg:        stg,
		adminPhone: adminPhone,
		log:        log,
	}
}

func (s *sessionService) Identity(ctx context.Context, clientID string) models.Identity {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.identity(ctx, clientID)
}

func (s *sessionService) Login(ctx context.Context, clientID, nickname, phone string) (models.Identity, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	// The reserved admin phone wins before any user lookup.
	if phone != "" && phone == s.adminPhone {
		identity := models.AsAdmin()
		s.setIdentity(ctx, clientID, identity)
		s.log.Info("admin logged in", logger.String("client", clientID))
		return identity, nil
	}

	users := s.users(ctx)

	// Phone is the stronger identifier, so it takes priority over the
	// nickname when both are given.
	if phone != "" {
		for _, u := range users {
			if u.Phone == phone {
				identity := models.AsUser(u)
				s.setIdentity(ctx, clientID, identity)
				return identity, nil
			}
		}
	}

	if nickname != "" {
		for _, u := range users {
			if strings.EqualFold(u.Nickname, nickname) {
				identity := models.AsUser(u)
				s.setIdentity(ctx, clientID, identity)
				return identity, nil
			}
		}
	}

	return models.Anonymous(), ErrNoMatch
}

func (s *sessionService) Register(ctx context.Context, clientID, nickname, phone string) (models.Identity, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	users := s.users(ctx)
	for _, u := range users {
		if strings.EqualFold(u.Nickname, nickname) || u.Phone == phone {
			return models.Anonymous(), ErrConflict
		}
	}

	user := models.User{
		ID:       uuid.NewString(),
		Nickname: nickname,
		Phone:    phone,
	}
	s.stg.Set(ctx, usersKey, append(users, user))

	// Registration is an implicit login.
	identity := models.AsUser(user)
	s.setIdentity(ctx, clientID, identity)
	s.log.Info("user registered", logger.String("nickname", nickname))
	return identity, nil
}

func (s *sessionService) Logout(ctx context.Context, clientID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.setIdentity(ctx, clientID, models.Anonymous())
}

func (s *sessionService) AddQuestion(ctx context.Context, clientID, text string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	identity := s.identity(ctx, clientID)
	if !identity.IsUser() {
		return
	}

	question := models.Question{
		ID:        uuid.NewString(),
		Text:      text,
		AuthorID:  identity.User.ID,
		Timestamp: time.Now().UnixMilli(),
	}

	// Newest first in storage; read views re-sort by timestamp anyway.
	questions := s.questions(ctx)
	s.stg.Set(ctx, questionsKey, append([]models.Question{question}, questions...))
}

// DeleteQuestion does not check that the caller authored the question.
// The view only offers delete buttons on the author's own items, but the
// operation itself trusts any id it is handed.
func (s *sessionService) DeleteQuestion(ctx context.Context, questionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	questions := s.questions(ctx)
	for i := range questions {
		if questions[i].ID == questionID {
			questions[i].DeletedByUser = true
			s.stg.Set(ctx, questionsKey, questions)
			return
		}
	}
	// Unknown id: registry stays as it was.
}

// AnswerQuestion likewise trusts the caller; only the admin view exposes
// an answer editor.
func (s *sessionService) AnswerQuestion(ctx context.Context, questionID, answer string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	questions := s.questions(ctx)
	for i := range questions {
		if questions[i].ID == questionID {
			questions[i].Answer = &answer
			s.stg.Set(ctx, questionsKey, questions)
			return
		}
	}
}

func (s *sessionService) GetUserByID(ctx context.Context, id string) (models.User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users(ctx) {
		if u.ID == id {
			return u, true
		}
	}
	return models.User{}, false
}

func (s *sessionService) Users(ctx context.Context) []models.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.users(ctx)
}

func (s *sessionService) AllQuestions(ctx context.Context) []models.Question {
	s.mu.Lock()
	defer s.mu.Unlock()
	return sortNewestFirst(s.questions(ctx))
}

func (s *sessionService) UserQuestions(ctx context.Context, authorID string) []models.Question {
	s.mu.Lock()
	defer s.mu.Unlock()

	var own []models.Question
	for _, q := range s.questions(ctx) {
		if q.AuthorID == authorID && !q.DeletedByUser {
			own = append(own, q)
		}
	}
	return sortNewestFirst(own)
}

// users loads the registry; a missing or unreadable key degrades to an
// empty registry. Callers hold s.mu.
func (s *sessionService) users(ctx context.Context) []models.User {
	var users []models.User
	s.stg.Get(ctx, usersKey, &users)
	return users
}

func (s *sessionService) questions(ctx context.Context) []models.Question {
	var questions []models.Question
	s.stg.Get(ctx, questionsKey, &questions)
	return questions
}

func (s *sessionService) identity(ctx context.Context, clientID string) models.Identity {
	var identity models.Identity
	if !s.stg.Get(ctx, sessionKeyPrefix+clientID, &identity) {
		return models.Anonymous()
	}
	if identity.IsUser() || identity.IsAdmin() {
		return identity
	}
	return models.Anonymous()
}

func (s *sessionService) setIdentity(ctx context.Context, clientID string, identity models.Identity) {
	s.stg.Set(ctx, sessionKeyPrefix+clientID, identity)
}

// sortNewestFirst sorts by timestamp descending. The sort is stable, so
// questions created in the same millisecond keep their storage order,
// which is already newest first.
func sortNewestFirst(questions []models.Question) []models.Question {
	sort.SliceStable(questions, func(i, j int) bool {
		return questions[i].Timestamp > questions[j].Timestamp
	})
	return questions
}
