package study

import (
	"context"
	"errors"

	"github.com/rs/zerolog/log"

	"study-backend/internal/codec"
	"study-backend/internal/store"
)

// Backing document names. Each write-capable document gets a sibling
// ".backup" artifact holding the immediately prior content.
const (
	DocKnowledgeBase   = "knowledge_base.json"
	DocPrompts         = "prompts.json"
	DocPracticeHistory = "practice_history.json"
	DocDialoguePhrases = "dialogue_phrases.json"
)

// Service applies the per-resource policies on top of the validation engine
// and the document store. Callers receive validated, independent copies;
// persisting changes goes through the Replace methods, which validate fully
// before any store call.
type Service struct {
	store store.Store
}

// NewService creates a Service backed by the given store.
func NewService(s store.Store) *Service {
	return &Service{store: s}
}

func (s *Service) loadTree(ctx context.Context, name string) (interface{}, error) {
	data, err := s.store.Load(ctx, name)
	if err != nil {
		return nil, err
	}
	return codec.Parse(data)
}

func (s *Service) persist(ctx context.Context, name string, doc interface{}) error {
	data, err := codec.Serialize(doc)
	if err != nil {
		return err
	}
	if err := s.store.Replace(ctx, name, data); err != nil {
		return err
	}
	log.Info().Str("document", name).Msg("document replaced")
	return nil
}

// GetKnowledgeBase loads and validates the knowledge document.
func (s *Service) GetKnowledgeBase(ctx context.Context) (KnowledgeBase, error) {
	root, err := s.loadTree(ctx, DocKnowledgeBase)
	if err != nil {
		return nil, err
	}
	return ValidateKnowledgeBase(root)
}

// ReplaceKnowledgeBase validates raw replacement content (non-empty, unique
// ids) and persists it. Nothing is written when validation fails.
func (s *Service) ReplaceKnowledgeBase(ctx context.Context, raw []byte) (KnowledgeBase, error) {
	root, err := codec.Parse(raw)
	if err != nil {
		return nil, err
	}
	kb, err := ValidateKnowledgeBase(root)
	if err != nil {
		return nil, err
	}
	if err := s.persist(ctx, DocKnowledgeBase, kb); err != nil {
		return nil, err
	}
	return kb, nil
}

// GetPrompts loads and validates the prompt document.
func (s *Service) GetPrompts(ctx context.Context) (*PromptCollection, error) {
	root, err := s.loadTree(ctx, DocPrompts)
	if err != nil {
		return nil, err
	}
	return ValidatePromptCollection(root)
}

// ReplacePrompts validates raw replacement content (non-empty prompts,
// unique prompt_ids) and persists it.
func (s *Service) ReplacePrompts(ctx context.Context, raw []byte) (*PromptCollection, error) {
	root, err := codec.Parse(raw)
	if err != nil {
		return nil, err
	}
	pc, err := ValidatePromptCollection(root)
	if err != nil {
		return nil, err
	}
	if err := s.persist(ctx, DocPrompts, pc); err != nil {
		return nil, err
	}
	return pc, nil
}

// GetPracticeHistory loads and validates the history document. An absent
// backing file means "never practiced" and yields an empty history; a file
// that exists but holds an empty document is a validation failure.
func (s *Service) GetPracticeHistory(ctx context.Context) (*PracticeHistory, error) {
	root, err := s.loadTree(ctx, DocPracticeHistory)
	if errors.Is(err, store.ErrNotFound) {
		return &PracticeHistory{Exercises: []PracticeExercise{}}, nil
	}
	if err != nil {
		return nil, err
	}
	return ValidatePracticeHistory(root)
}

// GetDialoguePhrases loads and validates the dialogue document.
func (s *Service) GetDialoguePhrases(ctx context.Context) (*DialoguePhraseSet, error) {
	root, err := s.loadTree(ctx, DocDialoguePhrases)
	if err != nil {
		return nil, err
	}
	return ValidateDialoguePhrases(root)
}

// ReplaceDialoguePhrases validates raw replacement content (closed record,
// trimmed non-empty phrases) and persists it.
func (s *Service) ReplaceDialoguePhrases(ctx context.Context, raw []byte) (*DialoguePhraseSet, error) {
	root, err := codec.Parse(raw)
	if err != nil {
		return nil, err
	}
	dp, err := ValidateDialoguePhrases(root)
	if err != nil {
		return nil, err
	}
	if err := s.persist(ctx, DocDialoguePhrases, dp); err != nil {
		return nil, err
	}
	return dp, nil
}
