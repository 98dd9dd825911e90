// Package study holds the four study documents, their schemas, the
// validation engine and the resource service policies on top of the store.
package study

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/go-openapi/strfmt"
	"github.com/google/uuid"
)

// Language is a supported study language.
type Language string

const (
	LanguageGerman  Language = "german"
	LanguageEnglish Language = "english"
)

// KnowledgeKind distinguishes phrases from single words.
type KnowledgeKind string

const (
	KindPhrase KnowledgeKind = "phrase"
	KindWord   KnowledgeKind = "word"
)

// KnowledgeField names a KnowledgeRecord field usable in translation
// exercises.
type KnowledgeField string

const (
	FieldOriginalText          KnowledgeField = "original_text"
	FieldPhoneticTranscription KnowledgeField = "phonetic_transcription"
	FieldTranslation           KnowledgeField = "translation"
	FieldSyllableDivision      KnowledgeField = "syllable_division"
)

// KnowledgeRecord is one vocabulary or phrase entry.
type KnowledgeRecord struct {
	ID                    uuid.UUID       `json:"id"`
	Timestamp             strfmt.DateTime `json:"timestamp"`
	Language              Language        `json:"language"`
	Kind                  KnowledgeKind   `json:"kind"`
	OriginalText          string          `json:"original_text"`
	PhoneticTranscription *string         `json:"phonetic_transcription,omitempty"`
	Translation           string          `json:"translation"`
	SyllableDivision      *string         `json:"syllable_division,omitempty"`
}

// KnowledgeBase is the whole knowledge document, a non-empty array with
// globally unique record ids.
type KnowledgeBase []KnowledgeRecord

// PromptDefinition is a reusable prompt template.
type PromptDefinition struct {
	PromptID           string                 `json:"prompt_id"`
	Description        string                 `json:"description"`
	Template           string                 `json:"template"`
	Parameters         []string               `json:"parameters"`
	StructuredResponse bool                   `json:"structured_response"`
	ExpectedStructure  map[string]interface{} `json:"expected_structure,omitempty"`
	LastEdited         strfmt.DateTime        `json:"last_edited"`
}

// PromptCollection wraps the prompt document.
type PromptCollection struct {
	Description     string             `json:"description"`
	UpdatedAt       strfmt.DateTime    `json:"updated_at"`
	ParameterMarker string             `json:"parameter_marker"`
	Prompts         []PromptDefinition `json:"prompts"`
}

// PracticeKind selects the shape of a PracticeExercise result.
type PracticeKind string

const (
	PracticeTranslation         PracticeKind = "translation"
	PracticeListening           PracticeKind = "listening"
	PracticePronunciation       PracticeKind = "pronunciation"
	PracticeDialogue            PracticeKind = "dialogue"
	PracticeNumberPronunciation PracticeKind = "number-pronunciation"
)

// PracticeKinds lists every supported kind.
var PracticeKinds = []PracticeKind{
	PracticeTranslation,
	PracticeListening,
	PracticePronunciation,
	PracticeDialogue,
	PracticeNumberPronunciation,
}

// Correctness grades pronunciation and dialogue outcomes.
type Correctness string

const (
	CorrectnessYes     Correctness = "yes"
	CorrectnessPartial Correctness = "partial"
	CorrectnessNo      Correctness = "no"
)

// PlaybackSpeed is the audio speed used in a listening exercise.
type PlaybackSpeed string

const (
	SpeedNormal   PlaybackSpeed = "1.0"
	SpeedSlow     PlaybackSpeed = "0.75"
	SpeedVerySlow PlaybackSpeed = "0.5"
)

// PracticeResult is the tagged variant carried by a PracticeExercise.
// Exactly one implementation exists per PracticeKind; the interface is
// closed so no loose union can slip through.
type PracticeResult interface {
	practiceKind() PracticeKind
}

// TranslationResult records a translation exercise. The three list fields
// share one length (1-3) and the first two are internally unique.
type TranslationResult struct {
	ProvidedField KnowledgeField   `json:"provided_field"`
	FilledFields  []KnowledgeField `json:"filled_fields"`
	FilledValues  []string         `json:"filled_values"`
	FieldResults  []bool           `json:"field_results"`
}

func (TranslationResult) practiceKind() PracticeKind { return PracticeTranslation }

// ListeningResult records a listening exercise.
type ListeningResult struct {
	OriginalText      string        `json:"original_text"`
	UserTranscription string        `json:"user_transcription"`
	Correct           bool          `json:"correct"`
	PlaybackSpeed     PlaybackSpeed `json:"playback_speed"`
}

func (ListeningResult) practiceKind() PracticeKind { return PracticeListening }

// PronunciationResult records a pronunciation exercise graded via STT.
type PronunciationResult struct {
	OriginalText     string      `json:"original_text"`
	STTTranscription string      `json:"stt_transcription"`
	Correctness      Correctness `json:"correctness"`
	Comment          string      `json:"comment"`
}

func (PronunciationResult) practiceKind() PracticeKind { return PracticePronunciation }

// DialogueResult records a dialogue exercise outcome.
type DialogueResult struct {
	Correctness Correctness `json:"correctness"`
}

func (DialogueResult) practiceKind() PracticeKind { return PracticeDialogue }

// NumberPronunciationResult records a number-pronunciation exercise. The
// audio URI is an opaque reference; the core does not dereference it.
type NumberPronunciationResult struct {
	ReferenceNumber      string `json:"reference_number"`
	UserAudioURI         string `json:"user_audio_uri"`
	CorrectTranscription string `json:"correct_transcription"`
	IsCorrect            bool   `json:"is_correct"`
}

func (NumberPronunciationResult) practiceKind() PracticeKind { return PracticeNumberPronunciation }

// PracticeExercise is one completed exercise attempt.
type PracticeExercise struct {
	Timestamp    strfmt.DateTime `json:"timestamp"`
	ExerciseID   uuid.UUID       `json:"exercise_id"`
	KnowledgeID  uuid.UUID       `json:"knowledge_id"`
	Language     Language        `json:"language"`
	PracticeKind PracticeKind    `json:"practice_kind"`
	Result       PracticeResult  `json:"result"`
}

// practiceExerciseAlias avoids UnmarshalJSON recursion.
type practiceExerciseAlias struct {
	Timestamp    strfmt.DateTime `json:"timestamp"`
	ExerciseID   uuid.UUID       `json:"exercise_id"`
	KnowledgeID  uuid.UUID       `json:"knowledge_id"`
	Language     Language        `json:"language"`
	PracticeKind PracticeKind    `json:"practice_kind"`
	Result       json.RawMessage `json:"result"`
}

// UnmarshalJSON resolves the result variant from practice_kind and decodes
// it strictly: fields outside the selected shape are rejected.
func (e *PracticeExercise) UnmarshalJSON(data []byte) error {
	var alias practiceExerciseAlias
	if err := json.Unmarshal(data, &alias); err != nil {
		return err
	}
	result, err := decodeResult(alias.PracticeKind, alias.Result)
	if err != nil {
		return err
	}
	*e = PracticeExercise{
		Timestamp:    alias.Timestamp,
		ExerciseID:   alias.ExerciseID,
		KnowledgeID:  alias.KnowledgeID,
		Language:     alias.Language,
		PracticeKind: alias.PracticeKind,
		Result:       result,
	}
	return nil
}

func decodeResult(kind PracticeKind, raw json.RawMessage) (PracticeResult, error) {
	if len(raw) == 0 {
		return nil, fmt.Errorf("result is required for practice_kind %q", kind)
	}
	var result PracticeResult
	switch kind {
	case PracticeTranslation:
		result = &TranslationResult{}
	case PracticeListening:
		result = &ListeningResult{}
	case PracticePronunciation:
		result = &PronunciationResult{}
	case PracticeDialogue:
		result = &DialogueResult{}
	case PracticeNumberPronunciation:
		result = &NumberPronunciationResult{}
	default:
		return nil, fmt.Errorf("unknown practice_kind %q", kind)
	}
	if err := strictUnmarshal(raw, result); err != nil {
		return nil, fmt.Errorf("result for practice_kind %q: %w", kind, err)
	}
	return result, nil
}

func strictUnmarshal(data []byte, v interface{}) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}

// PracticeHistory wraps the ordered list of exercises. An absent backing
// file is resolved to an empty history by the resource service.
type PracticeHistory struct {
	Exercises []PracticeExercise `json:"exercises"`
}

// DialoguePhraseSet is a closed record: exactly greeting, farewell and
// middle_phrases, nothing else.
type DialoguePhraseSet struct {
	Greeting      string   `json:"greeting"`
	Farewell      string   `json:"farewell"`
	MiddlePhrases []string `json:"middle_phrases"`
}
