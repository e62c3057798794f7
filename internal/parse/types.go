// Package parse talks to the external text-understanding collaborator and
// reconciles its best-effort extraction into the same action records manual
// entry produces, so both paths obey identical engine invariants.
package parse

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
)

// Extraction is the collaborator's structured read of a free-text hand
// description. Every field is optional and every field may arrive malformed;
// decoding never fails on shape, only on invalid JSON.
type Extraction struct {
	Players []ExtractedPlayer `json:"players"`
	Preflop *ExtractedStreet  `json:"preflop,omitempty"`
	Flop    *ExtractedStreet  `json:"flop,omitempty"`
	Turn    *ExtractedStreet  `json:"turn,omitempty"`
	River   *ExtractedStreet  `json:"river,omitempty"`
}

type ExtractedPlayer struct {
	Position string    `json:"position"`
	Cards    FlexCards `json:"cards"`
}

type ExtractedStreet struct {
	Cards   FlexCards         `json:"cards"`
	Actions []ExtractedAction `json:"actions"`
}

type ExtractedAction struct {
	Position string     `json:"position"`
	Action   string     `json:"action"`
	Amount   FlexAmount `json:"amount"`
}

// FlexCards tolerates a card group encoded as a single compact string, an
// array of two-character tokens, or an array of single characters.
type FlexCards []string

func (f *FlexCards) UnmarshalJSON(data []byte) error {
	// json.Unmarshal leaves a *string untouched on null, so catch it first.
	if string(bytes.TrimSpace(data)) == "null" {
		*f = nil
		return nil
	}
	var one string
	if err := json.Unmarshal(data, &one); err == nil {
		*f = FlexCards{one}
		return nil
	}
	var many []string
	if err := json.Unmarshal(data, &many); err == nil {
		*f = FlexCards(many)
		return nil
	}
	// Wrong shape entirely: treat as absent.
	*f = nil
	return nil
}

// FlexAmount tolerates numbers, numeric strings with currency noise, and
// all-in phrasings. Anything else decodes as unknown.
type FlexAmount struct {
	Value int64
	Known bool
	AllIn bool
}

func (f *FlexAmount) UnmarshalJSON(data []byte) error {
	var num json.Number
	if err := json.Unmarshal(data, &num); err == nil {
		if v, err := num.Int64(); err == nil {
			*f = FlexAmount{Value: v, Known: true}
			return nil
		}
		if v, err := num.Float64(); err == nil {
			*f = FlexAmount{Value: int64(v), Known: true}
			return nil
		}
	}
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*f = amountFromText(s)
		return nil
	}
	*f = FlexAmount{}
	return nil
}

func amountFromText(s string) FlexAmount {
	if isAllInPhrase(s) {
		return FlexAmount{AllIn: true}
	}
	cleaned := strings.Map(func(r rune) rune {
		switch {
		case r >= '0' && r <= '9', r == '.', r == '-':
			return r
		}
		return -1
	}, s)
	if cleaned == "" {
		return FlexAmount{}
	}
	if v, err := strconv.ParseFloat(cleaned, 64); err == nil {
		return FlexAmount{Value: int64(v), Known: true}
	}
	return FlexAmount{}
}

// isAllInPhrase spots the usual all-in spellings inside free text.
func isAllInPhrase(s string) bool {
	t := strings.ToLower(s)
	for _, phrase := range []string{"all-in", "all in", "allin", "shove", "jam"} {
		if strings.Contains(t, phrase) {
			return true
		}
	}
	return false
}
