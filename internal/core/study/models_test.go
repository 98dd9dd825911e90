package study

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPracticeExercise_VariantDecode(t *testing.T) {
	data := []byte(`{
	  "timestamp": "2025-11-13T09:15:00Z",
	  "exercise_id": "a1b2c3d4-e5f6-4890-8234-567890abcdef",
	  "knowledge_id": "f0e9d8c7-b6a5-4321-9edc-ba9876543210",
	  "language": "german",
	  "practice_kind": "listening",
	  "result": {
	    "original_text": "Guten Tag",
	    "user_transcription": "guten tag",
	    "correct": true,
	    "playback_speed": "0.5"
	  }
	}`)

	var e PracticeExercise
	require.NoError(t, json.Unmarshal(data, &e))

	lr, ok := e.Result.(*ListeningResult)
	require.True(t, ok, "expected *ListeningResult, got %T", e.Result)
	assert.Equal(t, SpeedVerySlow, lr.PlaybackSpeed)
	assert.True(t, lr.Correct)
}

func TestPracticeExercise_UnknownKind(t *testing.T) {
	data := []byte(`{
	  "timestamp": "2025-11-13T09:15:00Z",
	  "exercise_id": "a1b2c3d4-e5f6-4890-8234-567890abcdef",
	  "knowledge_id": "f0e9d8c7-b6a5-4321-9edc-ba9876543210",
	  "language": "german",
	  "practice_kind": "reading",
	  "result": {}
	}`)
	var e PracticeExercise
	err := json.Unmarshal(data, &e)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reading")
}

func TestPracticeExercise_StrictResultDecode(t *testing.T) {
	// A field outside the dialogue shape must fail the decode even though
	// correctness itself is fine.
	data := []byte(`{
	  "timestamp": "2025-11-13T09:15:00Z",
	  "exercise_id": "a1b2c3d4-e5f6-4890-8234-567890abcdef",
	  "knowledge_id": "f0e9d8c7-b6a5-4321-9edc-ba9876543210",
	  "language": "english",
	  "practice_kind": "dialogue",
	  "result": {"correctness": "yes", "comment": "extra"}
	}`)
	var e PracticeExercise
	require.Error(t, json.Unmarshal(data, &e))
}

func TestPracticeExercise_MarshalRoundTrip(t *testing.T) {
	e := PracticeExercise{
		Language:     LanguageEnglish,
		PracticeKind: PracticeDialogue,
		Result:       &DialogueResult{Correctness: CorrectnessPartial},
	}
	data, err := json.Marshal(e)
	require.NoError(t, err)

	var back PracticeExercise
	require.NoError(t, json.Unmarshal(data, &back))
	dr, ok := back.Result.(*DialogueResult)
	require.True(t, ok)
	assert.Equal(t, CorrectnessPartial, dr.Correctness)
}
