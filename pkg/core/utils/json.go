package utils

import (
	"encoding/json"
	"fmt"

	jsonrepair "github.com/RealAlexandreAI/json-repair"
)

// DecodeLenient decodes provider JSON, running a repair pass before giving
// up on malformed bodies. Quote and filing providers occasionally emit
// JS-style payloads (single quotes, trailing commas) that strict decoding
// rejects.
func DecodeLenient(body []byte, v interface{}) error {
	if err := json.Unmarshal(body, v); err == nil {
		return nil
	}
	repaired, err := jsonrepair.RepairJSON(string(body))
	if err != nil {
		return fmt.Errorf("unparseable body: %w", err)
	}
	return json.Unmarshal([]byte(repaired), v)
}
