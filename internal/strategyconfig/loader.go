package strategyconfig

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Load reads and validates a profile. KnownFields makes misspelled or
// stale keys a hard error. The raw bytes come back for audit storage.
func Load(path string) (*Profile, []byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, err
	}

	var profile Profile
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&profile); err != nil {
		return nil, nil, fmt.Errorf("parse profile %s: %w", path, err)
	}

	if err := Validate(&profile); err != nil {
		return nil, data, err
	}
	return &profile, data, nil
}

// Hash returns the SHA-256 of the profile's canonical JSON form. Equal
// profiles hash equal regardless of YAML formatting, so a run can be
// traced back to the exact configuration that produced it.
func Hash(profile *Profile) (string, error) {
	jsonBytes, err := json.Marshal(profile)
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(jsonBytes)
	return hex.EncodeToString(sum[:]), nil
}
