package game

import (
	"encoding/json"
	"strings"
)

type boardJSON struct {
	Rows []string `json:"rows"` // top row first
}

func (b *Board) MarshalJSON() ([]byte, error) {
	lines := strings.Split(strings.TrimSuffix(b.String(), "\n"), "\n")
	return json.Marshal(boardJSON{Rows: lines})
}

func (b *Board) UnmarshalJSON(data []byte) error {
	var payload boardJSON
	if err := json.Unmarshal(data, &payload); err != nil {
		return err
	}
	parsed, err := ParseBoard(payload.Rows)
	if err != nil {
		return err
	}
	*b = *parsed
	return nil
}
