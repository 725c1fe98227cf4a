package bonus

import (
	"sort"

	"github.com/KirkDiggler/bonus-engine/internal/entities"
)

// flagPayload is the shape stored under the engine's scope inside a host
// document's flags bag: an id-keyed mapping of persisted records.
type flagPayload struct {
	Bonuses map[string]Data `json:"bonuses,omitempty"`
}

// ReadCollection hydrates every parseable bonus record stored on the host
// under the given flag scope, sorted by the explicit sort key then id.
// Records with an unknown type are skipped, not errors: host data may be
// newer than this engine.
func ReadCollection(host entities.Document, scope string) []*Bonus {
	if host == nil {
		return nil
	}
	var payload flagPayload
	if !host.Flags().Get(scope, &payload) || len(payload.Bonuses) == 0 {
		return nil
	}

	out := make([]*Bonus, 0, len(payload.Bonuses))
	for id, data := range payload.Bonuses {
		if data.ID == "" {
			data.ID = id
		}
		b, err := FromData(data, host)
		if err != nil {
			continue
		}
		out = append(out, b)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Sort != out[j].Sort {
			return out[i].Sort < out[j].Sort
		}
		return out[i].ID < out[j].ID
	})
	return out
}

// ReadBonus hydrates a single record by id, or nil.
func ReadBonus(host entities.Document, scope, id string) *Bonus {
	for _, b := range ReadCollection(host, scope) {
		if b.ID == id {
			return b
		}
	}
	return nil
}

// WriteBonus stores (or replaces) one record on the host. The caller
// persists the host document afterwards.
func WriteBonus(host entities.Document, scope string, data Data) error {
	var payload flagPayload
	host.Flags().Get(scope, &payload)
	if payload.Bonuses == nil {
		payload.Bonuses = make(map[string]Data)
	}
	payload.Bonuses[data.ID] = data
	return host.Flags().Set(scope, payload)
}

// RemoveBonus deletes one record from the host's collection. Reports
// whether the record existed.
func RemoveBonus(host entities.Document, scope, id string) (bool, error) {
	var payload flagPayload
	if !host.Flags().Get(scope, &payload) {
		return false, nil
	}
	if _, ok := payload.Bonuses[id]; !ok {
		return false, nil
	}
	delete(payload.Bonuses, id)
	return true, host.Flags().Set(scope, payload)
}
