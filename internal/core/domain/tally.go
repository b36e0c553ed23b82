package domain

import (
	"bytes"
	"encoding/json"
)

type PartyCount struct {
	PartyID int64
	Name    string
	Count   int64
}

// Tally holds one count per party in catalog order. It encodes as a JSON
// object keyed by party name, preserving that order.
type Tally []PartyCount

func (t Tally) Total() int64 {
	var total int64
	for _, pc := range t {
		total += pc.Count
	}
	return total
}

// Counts returns the tally as a name-keyed map.
func (t Tally) Counts() map[string]int64 {
	counts := make(map[string]int64, len(t))
	for _, pc := range t {
		counts[pc.Name] = pc.Count
	}
	return counts
}

func (t Tally) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, pc := range t {
		if i > 0 {
			buf.WriteByte(',')
		}
		name, err := json.Marshal(pc.Name)
		if err != nil {
			return nil, err
		}
		buf.Write(name)
		buf.WriteByte(':')
		count, err := json.Marshal(pc.Count)
		if err != nil {
			return nil, err
		}
		buf.Write(count)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
