package usecases

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/slashexp/experiences/internal/core/domain"
	"github.com/slashexp/experiences/internal/core/ports"
)

// sessionTTLSeconds keeps abandoned wizard runs around for half an hour.
const sessionTTLSeconds = 1800

// PersonalizerService drives the multi-step gift personalizer wizard.
// Session state lives in the cache under a generated ID; each step
// validates and stores one answer, and completing the wizard asks the
// recommendation service for suggestions.
type PersonalizerService struct {
	cache       ports.CacheService
	recommender ports.GiftRecommender
	experiences ports.ExperienceRepository
}

// NewPersonalizerService creates a new PersonalizerService.
func NewPersonalizerService(cache ports.CacheService, recommender ports.GiftRecommender, experiences ports.ExperienceRepository) *PersonalizerService {
	return &PersonalizerService{cache: cache, recommender: recommender, experiences: experiences}
}

// StepAnswers carries the answers submitted for one wizard step. Only the
// fields for the current step are read.
type StepAnswers struct {
	Occasion  string   `json:"occasion,omitempty"`
	Recipient string   `json:"recipient,omitempty"`
	Interests []string `json:"interests,omitempty"`
	BudgetMin int      `json:"budget_min,omitempty"`
	BudgetMax int      `json:"budget_max,omitempty"`
}

func sessionKey(id string) string { return "personalizer:session:" + id }

// Start creates a fresh session at the occasion step.
func (s *PersonalizerService) Start(ctx context.Context) (*domain.PersonalizerSession, error) {
	b := make([]byte, 8)
	if _, err := rand.Read(b); err != nil {
		return nil, fmt.Errorf("generate session id: %w", err)
	}

	now := time.Now()
	session := &domain.PersonalizerSession{
		ID:        hex.EncodeToString(b),
		Step:      domain.StepOccasion,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.save(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

// Get returns an active session.
func (s *PersonalizerService) Get(ctx context.Context, id string) (*domain.PersonalizerSession, error) {
	data, err := s.cache.Get(ctx, sessionKey(id))
	if err != nil {
		return nil, fmt.Errorf("session not found or expired")
	}
	var session domain.PersonalizerSession
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, fmt.Errorf("decode session: %w", err)
	}
	return &session, nil
}

// Advance records the answers for the current step and moves to the next.
func (s *PersonalizerService) Advance(ctx context.Context, id string, answers StepAnswers) (*domain.PersonalizerSession, error) {
	session, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	switch session.Step {
	case domain.StepOccasion:
		if strings.TrimSpace(answers.Occasion) == "" {
			return nil, fmt.Errorf("occasion is required")
		}
		session.Occasion = answers.Occasion
		session.Step = domain.StepRecipient

	case domain.StepRecipient:
		if strings.TrimSpace(answers.Recipient) == "" {
			return nil, fmt.Errorf("recipient is required")
		}
		session.Recipient = answers.Recipient
		session.Step = domain.StepInterests

	case domain.StepInterests:
		if len(answers.Interests) == 0 {
			return nil, fmt.Errorf("at least one interest is required")
		}
		session.Interests = answers.Interests
		session.Step = domain.StepBudget

	case domain.StepBudget:
		if answers.BudgetMax <= 0 || answers.BudgetMax < answers.BudgetMin {
			return nil, fmt.Errorf("budget range is invalid")
		}
		session.BudgetMin = answers.BudgetMin
		session.BudgetMax = answers.BudgetMax
		session.Step = domain.StepDone

	default:
		return nil, fmt.Errorf("session already complete")
	}

	session.UpdatedAt = time.Now()
	if err := s.save(ctx, session); err != nil {
		return nil, err
	}
	return session, nil
}

// Complete returns gift suggestions for a finished session. The remote
// recommender is tried first; when it fails, a tag-based catalog match
// stands in so the wizard always ends with results.
func (s *PersonalizerService) Complete(ctx context.Context, id string) ([]domain.GiftSuggestion, error) {
	session, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if session.Step != domain.StepDone {
		return nil, fmt.Errorf("wizard not finished: at step %s", session.Step)
	}

	if s.recommender != nil {
		if suggestions, err := s.recommender.Recommend(ctx, session); err == nil && len(suggestions) > 0 {
			return suggestions, nil
		}
	}

	return s.fallbackSuggestions(ctx, session)
}

// fallbackSuggestions scores the catalog against the session's interests
// and budget when the recommendation service is unavailable.
func (s *PersonalizerService) fallbackSuggestions(ctx context.Context, session *domain.PersonalizerSession) ([]domain.GiftSuggestion, error) {
	exps, err := s.experiences.List(ctx, domain.ExperienceFilter{
		MinPrice: session.BudgetMin,
		MaxPrice: session.BudgetMax,
	})
	if err != nil {
		return nil, fmt.Errorf("catalog fallback: %w", err)
	}

	var suggestions []domain.GiftSuggestion
	for _, e := range exps {
		score := tagScore(&e, session.Interests)
		if score == 0 {
			continue
		}
		suggestions = append(suggestions, domain.GiftSuggestion{
			ExperienceID: e.ID,
			Title:        e.Title,
			Price:        e.Price,
			Reason:       "matches interests: " + strings.Join(session.Interests, ", "),
			Score:        score,
		})
	}

	sort.SliceStable(suggestions, func(i, j int) bool {
		return suggestions[i].Score > suggestions[j].Score
	})
	if len(suggestions) > 10 {
		suggestions = suggestions[:10]
	}
	return suggestions, nil
}

func tagScore(e *domain.Experience, interests []string) float64 {
	var score float64
	for _, interest := range interests {
		switch strings.ToLower(strings.TrimSpace(interest)) {
		case "romantic":
			if e.Romantic {
				score++
			}
		case "adventure", "adventurous":
			if e.Adventurous {
				score++
			}
		case "group", "friends":
			if e.GroupActivity {
				score++
			}
		case "trending":
			if e.Trending {
				score++
			}
		default:
			if strings.EqualFold(e.Category, interest) || strings.EqualFold(e.NicheCategory, interest) {
				score++
			}
		}
	}
	return score
}

func (s *PersonalizerService) save(ctx context.Context, session *domain.PersonalizerSession) error {
	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	if err := s.cache.Set(ctx, sessionKey(session.ID), data, sessionTTLSeconds); err != nil {
		return fmt.Errorf("store session: %w", err)
	}
	return nil
}
