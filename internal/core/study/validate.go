package study

import (
	"encoding/json"
	"fmt"
)

// The engine validates an already-parsed tree (see internal/codec) against
// the schema model and returns either a fully typed document or the complete
// list of field-scoped violations. It never returns a partially typed
// result, and collection-level uniqueness runs only once every item has
// individually validated.

// ValidateKnowledgeBase validates the knowledge document: a non-empty array
// of records with globally unique ids.
func ValidateKnowledgeBase(root interface{}) (KnowledgeBase, error) {
	if vs := checkNotEmpty(root); vs != nil {
		return nil, vs
	}
	items, ok := root.([]interface{})
	if !ok {
		return nil, Violations{{Path: "", Reason: "must be an array of knowledge records"}}
	}
	var out Violations
	for i, item := range items {
		out = append(out, knowledgeRecordSpec.validate(indexPath("", i), item)...)
	}
	if len(out) > 0 {
		return nil, out
	}
	if err := uniqueIdentifiers(items, "id"); err != nil {
		return nil, err
	}
	var kb KnowledgeBase
	if err := retype(root, &kb); err != nil {
		return nil, err
	}
	return kb, nil
}

// ValidatePromptCollection validates the prompt document: the wrapper plus a
// non-empty prompt list with unique prompt_ids.
func ValidatePromptCollection(root interface{}) (*PromptCollection, error) {
	if vs := checkNotEmpty(root); vs != nil {
		return nil, vs
	}
	if out := promptCollectionSpec.validate("", root); len(out) > 0 {
		return nil, out
	}
	obj := root.(map[string]interface{})
	if prompts, ok := obj["prompts"].([]interface{}); ok {
		if err := uniqueIdentifiers(prompts, "prompt_id"); err != nil {
			return nil, err
		}
	}
	var pc PromptCollection
	if err := retype(root, &pc); err != nil {
		return nil, err
	}
	return &pc, nil
}

// ValidatePracticeHistory validates the history document. An absent backing
// file never reaches this function (the resource service resolves it to an
// empty history); a present-but-null or empty document is rejected.
func ValidatePracticeHistory(root interface{}) (*PracticeHistory, error) {
	if vs := checkNotEmpty(root); vs != nil {
		return nil, vs
	}
	if out := historySpec.validate("", root); len(out) > 0 {
		return nil, out
	}
	obj := root.(map[string]interface{})
	if exercises, ok := obj["exercises"].([]interface{}); ok {
		if err := uniqueIdentifiers(exercises, "exercise_id"); err != nil {
			return nil, err
		}
	}
	var ph PracticeHistory
	if err := retype(root, &ph); err != nil {
		return nil, err
	}
	if ph.Exercises == nil {
		ph.Exercises = []PracticeExercise{}
	}
	return &ph, nil
}

// ValidateDialoguePhrases validates the dialogue document, a closed record.
func ValidateDialoguePhrases(root interface{}) (*DialoguePhraseSet, error) {
	if vs := checkNotEmpty(root); vs != nil {
		return nil, vs
	}
	if out := dialogueSpec.validate("", root); len(out) > 0 {
		return nil, out
	}
	var dp DialoguePhraseSet
	if err := retype(root, &dp); err != nil {
		return nil, err
	}
	return &dp, nil
}

// checkNotEmpty rejects null documents and present-but-empty content.
func checkNotEmpty(root interface{}) Violations {
	switch v := root.(type) {
	case nil:
		return Violations{{Path: "", Reason: "document must not be null"}}
	case []interface{}:
		if len(v) == 0 {
			return Violations{{Path: "", Reason: "document must not be empty"}}
		}
	case map[string]interface{}:
		if len(v) == 0 {
			return Violations{{Path: "", Reason: "document must not be empty"}}
		}
	}
	return nil
}

// validateExercise runs the structural pass over one exercise and then
// resolves the result variant: the result must match exactly the shape
// registered for the exercise's practice_kind, no other.
func validateExercise(path string, v interface{}) Violations {
	out := exerciseSpec.validate(path, v)
	obj, ok := v.(map[string]interface{})
	if !ok {
		return out
	}
	kindStr, ok := obj["practice_kind"].(string)
	if !ok {
		return out
	}
	shape, ok := resultShapes[PracticeKind(kindStr)]
	if !ok {
		// Invalid discriminator already reported by the enum check.
		return out
	}
	if result, present := obj["result"]; present && result != nil {
		out = append(out, shape.validate(joinPath(path, "result"), result)...)
	}
	return out
}

func checkExerciseList(path string, v interface{}) Violations {
	items, ok := v.([]interface{})
	if !ok {
		return Violations{{Path: path, Reason: "must be an array"}}
	}
	var out Violations
	for i, item := range items {
		out = append(out, validateExercise(indexPath(path, i), item)...)
	}
	return out
}

// uniqueIdentifiers checks the named identifier field across a collection
// whose items have already validated individually.
func uniqueIdentifiers(items []interface{}, field string) error {
	seen := make(map[string]bool, len(items))
	for _, item := range items {
		obj, ok := item.(map[string]interface{})
		if !ok {
			continue
		}
		id, ok := obj[field].(string)
		if !ok {
			continue
		}
		if seen[id] {
			return DuplicateIDError{Field: field, Value: id}
		}
		seen[id] = true
	}
	return nil
}

// retype converts a validated tree into its typed document. A failure here
// means the schema model and the typed model disagree, which is a bug.
func retype(root, target interface{}) error {
	data, err := json.Marshal(root)
	if err != nil {
		return fmt.Errorf("retype document: %w", err)
	}
	if err := json.Unmarshal(data, target); err != nil {
		return fmt.Errorf("retype document: %w", err)
	}
	return nil
}
