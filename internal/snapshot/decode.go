package snapshot

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"

	"github.com/mmynk/tripsheet/internal/models"
)

type object map[string]json.RawMessage

// Decode parses a snapshot leniently. Only a payload that is not a JSON
// object fails; every field that is missing or of the wrong type is left at
// its zero value.
func Decode(data []byte) (Snapshot, error) {
	var root object
	trimmed := bytes.TrimSpace(bytes.TrimPrefix(data, []byte("\uFEFF")))
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return Snapshot{}, fmt.Errorf("%w: expected a JSON object", ErrMalformedSnapshot)
	}
	if err := json.Unmarshal(trimmed, &root); err != nil {
		return Snapshot{}, fmt.Errorf("%w: %v", ErrMalformedSnapshot, err)
	}

	var snap Snapshot
	if trip, ok := asObject(root["trip"]); ok {
		snap.Trip = Trip{
			Date:     asString(trip["date"]),
			Location: asString(trip["location"]),
			Leader:   asString(trip["leader"]),
			Clerk:    asString(trip["clerk"]),
		}
	}

	if rates, ok := asObject(root["baseExpenseRates"]); ok {
		snap.BaseExpenseRates = make(map[string]models.Amount)
		for key, raw := range rates {
			if rate, ok := asRate(raw); ok {
				snap.BaseExpenseRates[key] = rate
			}
		}
	}

	for _, raw := range asArray(root["baseExpenses"]) {
		entry, ok := asObject(raw)
		if !ok {
			continue
		}
		snap.BaseExpenses = append(snap.BaseExpenses, BaseExpense{
			Key:       asString(entry["key"]),
			Name:      asString(entry["name"]),
			Enabled:   asBool(entry["enabled"]),
			Amounts:   asAmounts(entry["amounts"]),
			Consumers: asFlags(entry["consumers"]),
		})
	}

	for _, raw := range asArray(root["customExpenses"]) {
		entry, _ := asObject(raw)
		snap.CustomExpenses = append(snap.CustomExpenses, CustomExpense{
			Name:      asString(entry["name"]),
			Enabled:   asBool(entry["enabled"]),
			Amounts:   asAmounts(entry["amounts"]),
			Consumers: asFlags(entry["consumers"]),
		})
	}

	for _, raw := range asArray(root["participants"]) {
		entry, _ := asObject(raw)
		snap.Participants = append(snap.Participants, Participant{
			Name:  asString(entry["name"]),
			Bold:  truthy(entry["bold"]),
			Notes: asString(entry["notes"]),
		})
	}

	snap.SharedGearAllSelected = truthy(root["sharedGearAllSelected"])
	return snap, nil
}

func asObject(raw json.RawMessage) (object, bool) {
	if len(raw) == 0 {
		return nil, false
	}
	var o object
	if err := json.Unmarshal(raw, &o); err != nil || o == nil {
		return nil, false
	}
	return o, true
}

func asArray(raw json.RawMessage) []json.RawMessage {
	if len(raw) == 0 {
		return nil
	}
	var a []json.RawMessage
	if err := json.Unmarshal(raw, &a); err != nil {
		return nil
	}
	return a
}

func asString(raw json.RawMessage) string {
	var s string
	if len(raw) == 0 || json.Unmarshal(raw, &s) != nil {
		return ""
	}
	return s
}

func asBool(raw json.RawMessage) *bool {
	var b bool
	if len(raw) == 0 || json.Unmarshal(raw, &b) != nil {
		return nil
	}
	return &b
}

// truthy follows loose boolean conversion: false, 0, "", null and absent
// are false; anything else is true.
func truthy(raw json.RawMessage) bool {
	if len(raw) == 0 {
		return false
	}
	var v any
	if json.Unmarshal(raw, &v) != nil {
		return false
	}
	switch t := v.(type) {
	case nil:
		return false
	case bool:
		return t
	case float64:
		return t != 0 && !math.IsNaN(t)
	case string:
		return t != ""
	default:
		return true
	}
}

func asFlags(raw json.RawMessage) []bool {
	items := asArray(raw)
	if items == nil {
		return nil
	}
	out := make([]bool, len(items))
	for i, item := range items {
		out[i] = truthy(item)
	}
	return out
}

func asAmounts(raw json.RawMessage) []models.Amount {
	items := asArray(raw)
	if items == nil {
		return nil
	}
	out := make([]models.Amount, len(items))
	for i, item := range items {
		var a models.Amount
		if json.Unmarshal(item, &a) != nil {
			a = models.Empty()
		}
		out[i] = a
	}
	return out
}

// asRate accepts a number, a numeric string, "" or null (empty rate).
// ok is false for anything else so the prior rate is kept.
func asRate(raw json.RawMessage) (models.Amount, bool) {
	var v any
	if json.Unmarshal(raw, &v) != nil {
		return models.Amount{}, false
	}
	switch t := v.(type) {
	case nil:
		return models.Empty(), true
	case float64:
		return models.Some(t), true
	case string:
		return models.ParseAmount(t)
	default:
		return models.Amount{}, false
	}
}
