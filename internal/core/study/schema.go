package study

import (
	"fmt"
	"sort"
	"strings"

	"github.com/go-openapi/strfmt"
	"github.com/google/uuid"
)

// The schema model is declarative: each document kind is an objectSpec (or a
// list of them) naming its fields, whether they are required, and the value
// check each field must pass. The validation engine in validate.go walks the
// parsed tree against these specs and accumulates every violation.

type checkFunc func(path string, v interface{}) Violations

type fieldSpec struct {
	name     string
	required bool
	check    checkFunc
}

type objectSpec struct {
	// closed rejects fields outside the declared list, matching
	// additionalProperties=false semantics.
	closed bool
	fields []fieldSpec
	// cross runs after all per-field checks pass structurally; it sees the
	// whole object for multi-field invariants.
	cross func(path string, obj map[string]interface{}) Violations
}

func joinPath(base, name string) string {
	if base == "" {
		return name
	}
	return base + "." + name
}

func indexPath(base string, i int) string {
	return fmt.Sprintf("%s[%d]", base, i)
}

func (s objectSpec) validate(path string, v interface{}) Violations {
	obj, ok := v.(map[string]interface{})
	if !ok {
		return Violations{{Path: path, Reason: "must be an object"}}
	}
	var out Violations
	known := make(map[string]bool, len(s.fields))
	for _, f := range s.fields {
		known[f.name] = true
		fieldPath := joinPath(path, f.name)
		val, present := obj[f.name]
		if !present {
			if f.required {
				out = append(out, Violation{Path: fieldPath, Reason: "is required"})
			}
			continue
		}
		if val == nil {
			if f.required {
				out = append(out, Violation{Path: fieldPath, Reason: "must not be null"})
			}
			continue
		}
		if f.check != nil {
			out = append(out, f.check(fieldPath, val)...)
		}
	}
	if s.closed {
		extras := make([]string, 0)
		for k := range obj {
			if !known[k] {
				extras = append(extras, k)
			}
		}
		sort.Strings(extras)
		for _, k := range extras {
			out = append(out, Violation{Path: joinPath(path, k), Reason: "unexpected field"})
		}
	}
	if len(out) == 0 && s.cross != nil {
		out = append(out, s.cross(path, obj)...)
	}
	return out
}

// ---- field checks ----------------------------------------------------------

func checkString(nonEmpty bool) checkFunc {
	return func(path string, v interface{}) Violations {
		s, ok := v.(string)
		if !ok {
			return Violations{{Path: path, Reason: "must be a string"}}
		}
		if nonEmpty && strings.TrimSpace(s) == "" {
			return Violations{{Path: path, Reason: "must not be empty"}}
		}
		return nil
	}
}

func checkBool(path string, v interface{}) Violations {
	if _, ok := v.(bool); !ok {
		return Violations{{Path: path, Reason: "must be a boolean"}}
	}
	return nil
}

func checkEnum(values ...string) checkFunc {
	return func(path string, v interface{}) Violations {
		s, ok := v.(string)
		if !ok {
			return Violations{{Path: path, Reason: "must be a string"}}
		}
		for _, allowed := range values {
			if s == allowed {
				return nil
			}
		}
		return Violations{{
			Path:   path,
			Reason: fmt.Sprintf("must be one of [%s], got %q", strings.Join(values, ", "), s),
		}}
	}
}

func checkTimestamp(path string, v interface{}) Violations {
	s, ok := v.(string)
	if !ok {
		return Violations{{Path: path, Reason: "must be an ISO-8601 timestamp string"}}
	}
	if _, err := strfmt.ParseDateTime(s); err != nil {
		return Violations{{Path: path, Reason: fmt.Sprintf("invalid ISO-8601 timestamp %q", s)}}
	}
	return nil
}

func checkUUID(path string, v interface{}) Violations {
	s, ok := v.(string)
	if !ok {
		return Violations{{Path: path, Reason: "must be a UUID string"}}
	}
	if _, err := uuid.Parse(s); err != nil {
		return Violations{{Path: path, Reason: fmt.Sprintf("invalid UUID %q", s)}}
	}
	return nil
}

func checkObject(path string, v interface{}) Violations {
	if _, ok := v.(map[string]interface{}); !ok {
		return Violations{{Path: path, Reason: "must be an object"}}
	}
	return nil
}

type listOpts struct {
	min, max     int // max 0 means unbounded
	unique       bool
	elemNonEmpty bool
}

// checkStringList validates a list of strings with optional bounds,
// uniqueness and per-element non-emptiness. An allowed-values set turns it
// into a list of enum members.
func checkStringList(opts listOpts, allowed ...string) checkFunc {
	elemCheck := checkString(opts.elemNonEmpty)
	if len(allowed) > 0 {
		elemCheck = checkEnum(allowed...)
	}
	return func(path string, v interface{}) Violations {
		items, ok := v.([]interface{})
		if !ok {
			return Violations{{Path: path, Reason: "must be an array"}}
		}
		var out Violations
		if len(items) < opts.min {
			out = append(out, Violation{Path: path, Reason: fmt.Sprintf("must contain at least %d item(s)", opts.min)})
		}
		if opts.max > 0 && len(items) > opts.max {
			out = append(out, Violation{Path: path, Reason: fmt.Sprintf("must contain at most %d item(s)", opts.max)})
		}
		seen := make(map[string]bool, len(items))
		for i, item := range items {
			elemPath := indexPath(path, i)
			vs := elemCheck(elemPath, item)
			out = append(out, vs...)
			if len(vs) > 0 {
				continue
			}
			s := item.(string)
			if opts.unique {
				if seen[s] {
					out = append(out, Violation{Path: elemPath, Reason: fmt.Sprintf("duplicate entry %q", s)})
				}
				seen[s] = true
			}
		}
		return out
	}
}

func checkBoolList(opts listOpts) checkFunc {
	return func(path string, v interface{}) Violations {
		items, ok := v.([]interface{})
		if !ok {
			return Violations{{Path: path, Reason: "must be an array"}}
		}
		var out Violations
		if len(items) < opts.min {
			out = append(out, Violation{Path: path, Reason: fmt.Sprintf("must contain at least %d item(s)", opts.min)})
		}
		if opts.max > 0 && len(items) > opts.max {
			out = append(out, Violation{Path: path, Reason: fmt.Sprintf("must contain at most %d item(s)", opts.max)})
		}
		for i, item := range items {
			out = append(out, checkBool(indexPath(path, i), item)...)
		}
		return out
	}
}

func checkObjectList(elem objectSpec, min int) checkFunc {
	return func(path string, v interface{}) Violations {
		items, ok := v.([]interface{})
		if !ok {
			return Violations{{Path: path, Reason: "must be an array"}}
		}
		var out Violations
		if len(items) < min {
			out = append(out, Violation{Path: path, Reason: fmt.Sprintf("must contain at least %d item(s)", min)})
		}
		for i, item := range items {
			out = append(out, elem.validate(indexPath(path, i), item)...)
		}
		return out
	}
}

// ---- document specs --------------------------------------------------------

var knowledgeFieldNames = []string{
	string(FieldOriginalText),
	string(FieldPhoneticTranscription),
	string(FieldTranslation),
	string(FieldSyllableDivision),
}

var knowledgeRecordSpec = objectSpec{
	fields: []fieldSpec{
		{name: "id", required: true, check: checkUUID},
		{name: "timestamp", required: true, check: checkTimestamp},
		{name: "language", required: true, check: checkEnum(string(LanguageGerman), string(LanguageEnglish))},
		{name: "kind", required: true, check: checkEnum(string(KindPhrase), string(KindWord))},
		{name: "original_text", required: true, check: checkString(true)},
		{name: "phonetic_transcription", required: false, check: checkString(false)},
		{name: "translation", required: true, check: checkString(true)},
		{name: "syllable_division", required: false, check: checkString(false)},
	},
}

var promptSpec = objectSpec{
	fields: []fieldSpec{
		{name: "prompt_id", required: true, check: checkString(true)},
		{name: "description", required: true, check: checkString(false)},
		{name: "template", required: true, check: checkString(false)},
		{name: "parameters", required: true, check: checkStringList(listOpts{})},
		{name: "structured_response", required: true, check: checkBool},
		{name: "expected_structure", required: false, check: checkObject},
		{name: "last_edited", required: true, check: checkTimestamp},
	},
}

var promptCollectionSpec = objectSpec{
	fields: []fieldSpec{
		{name: "description", required: true, check: checkString(false)},
		{name: "updated_at", required: true, check: checkTimestamp},
		{name: "parameter_marker", required: true, check: checkString(true)},
		{name: "prompts", required: true, check: checkObjectList(promptSpec, 1)},
	},
}

var exerciseSpec = objectSpec{
	fields: []fieldSpec{
		{name: "timestamp", required: true, check: checkTimestamp},
		{name: "exercise_id", required: true, check: checkUUID},
		{name: "knowledge_id", required: true, check: checkUUID},
		{name: "language", required: true, check: checkEnum(string(LanguageGerman), string(LanguageEnglish))},
		{name: "practice_kind", required: true, check: checkEnum(kindNames()...)},
		// result is resolved against the shape registry by the engine.
		{name: "result", required: true},
	},
}

var historySpec = objectSpec{
	fields: []fieldSpec{
		{name: "exercises", required: true, check: checkExerciseList},
	},
}

var dialogueSpec = objectSpec{
	closed: true,
	fields: []fieldSpec{
		{name: "greeting", required: true, check: checkString(true)},
		{name: "farewell", required: true, check: checkString(true)},
		{name: "middle_phrases", required: true, check: checkStringList(listOpts{min: 1, elemNonEmpty: true})},
	},
}

func kindNames() []string {
	names := make([]string, len(PracticeKinds))
	for i, k := range PracticeKinds {
		names[i] = string(k)
	}
	return names
}

// ---- result shape registry -------------------------------------------------

// resultShapes maps each practice kind to the one closed shape its result
// must match. Adding a practice kind means adding the enum constant and the
// shape entry together; init verifies they stay in sync.
var resultShapes = map[PracticeKind]objectSpec{
	PracticeTranslation: {
		closed: true,
		fields: []fieldSpec{
			{name: "provided_field", required: true, check: checkEnum(knowledgeFieldNames...)},
			{name: "filled_fields", required: true, check: checkStringList(listOpts{min: 1, max: 3, unique: true}, knowledgeFieldNames...)},
			{name: "filled_values", required: true, check: checkStringList(listOpts{min: 1, max: 3, unique: true, elemNonEmpty: true})},
			{name: "field_results", required: true, check: checkBoolList(listOpts{min: 1, max: 3})},
		},
		cross: translationListsAgree,
	},
	PracticeListening: {
		closed: true,
		fields: []fieldSpec{
			{name: "original_text", required: true, check: checkString(true)},
			{name: "user_transcription", required: true, check: checkString(false)},
			{name: "correct", required: true, check: checkBool},
			{name: "playback_speed", required: true, check: checkEnum(string(SpeedNormal), string(SpeedSlow), string(SpeedVerySlow))},
		},
	},
	PracticePronunciation: {
		closed: true,
		fields: []fieldSpec{
			{name: "original_text", required: true, check: checkString(true)},
			{name: "stt_transcription", required: true, check: checkString(false)},
			{name: "correctness", required: true, check: checkEnum(string(CorrectnessYes), string(CorrectnessPartial), string(CorrectnessNo))},
			{name: "comment", required: true, check: checkString(false)},
		},
	},
	PracticeDialogue: {
		closed: true,
		fields: []fieldSpec{
			{name: "correctness", required: true, check: checkEnum(string(CorrectnessYes), string(CorrectnessPartial), string(CorrectnessNo))},
		},
	},
	PracticeNumberPronunciation: {
		closed: true,
		fields: []fieldSpec{
			{name: "reference_number", required: true, check: checkString(true)},
			{name: "user_audio_uri", required: true, check: checkString(true)},
			{name: "correct_transcription", required: true, check: checkString(true)},
			{name: "is_correct", required: true, check: checkBool},
		},
	},
}

// translationListsAgree enforces the shared-length invariant across the
// three parallel lists. Per-list bounds and uniqueness already ran.
func translationListsAgree(path string, obj map[string]interface{}) Violations {
	fields, _ := obj["filled_fields"].([]interface{})
	values, _ := obj["filled_values"].([]interface{})
	results, _ := obj["field_results"].([]interface{})
	if len(values) == len(fields) && len(results) == len(fields) {
		return nil
	}
	return Violations{{
		Path: path,
		Reason: fmt.Sprintf(
			"filled_fields, filled_values and field_results must have the same length (got %d, %d, %d)",
			len(fields), len(values), len(results)),
	}}
}

// CheckResultRegistry verifies the discriminator and the shape registry are
// in sync: every practice kind has exactly one shape and no two kinds share
// a shape. An out-of-sync registry is a programming error, not input error.
func CheckResultRegistry() error {
	if len(resultShapes) != len(PracticeKinds) {
		return fmt.Errorf("result shape registry has %d entries for %d practice kinds", len(resultShapes), len(PracticeKinds))
	}
	signatures := make(map[string]PracticeKind, len(resultShapes))
	for _, kind := range PracticeKinds {
		shape, ok := resultShapes[kind]
		if !ok {
			return fmt.Errorf("practice kind %q has no result shape", kind)
		}
		names := make([]string, len(shape.fields))
		for i, f := range shape.fields {
			names[i] = f.name
		}
		sort.Strings(names)
		sig := strings.Join(names, ",")
		if other, dup := signatures[sig]; dup {
			return fmt.Errorf("practice kinds %q and %q share one result shape", other, kind)
		}
		signatures[sig] = kind
	}
	return nil
}

func init() {
	if err := CheckResultRegistry(); err != nil {
		panic(err)
	}
}
