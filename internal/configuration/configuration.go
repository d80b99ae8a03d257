// Package configuration provides the tunable settings of the copier and their
// loading from generic Unix-type (key=value) configuration files.
package configuration

import (
	"fmt"
	"strconv"
)

const (
	// KeyChunkSize is the configuration key for [Settings.ChunkSize].
	KeyChunkSize = "CHUNK_SIZE"

	// KeyVerify is the configuration key for [Settings.Verify].
	KeyVerify = "VERIFY"

	// KeyPreserve is the configuration key for [Settings.Preserve].
	KeyPreserve = "PRESERVE"

	// KeyMinFree is the configuration key for [Settings.MinFree].
	KeyMinFree = "MIN_FREE"

	defaultChunkSize = 64 * 1024
)

// Settings holds the operational knobs of the copier.
type Settings struct {
	// ChunkSize is the fixed stream buffer size in bytes.
	ChunkSize int

	// Verify enables checksum verification of the transferred bytes.
	Verify bool

	// Preserve enables carrying over source permissions, ownership and
	// timestamps to the destination.
	Preserve bool

	// MinFree is the free space floor in bytes that must remain on the
	// destination filesystem after the copy.
	MinFree uint64
}

// DefaultSettings returns the [Settings] used when no configuration file is
// consulted: 64 KiB chunks, verification and preservation enabled, no free
// space floor.
func DefaultSettings() Settings {
	return Settings{
		ChunkSize: defaultChunkSize,
		Verify:    true,
		Preserve:  true,
		MinFree:   0,
	}
}

// genericConfigProvider defines reading methods for generic Unix-type
// configuration files.
type genericConfigProvider interface {
	Read(filenames ...string) (envMap map[string]string, err error)
}

// Handler is the principal implementation of the configuration handler.
type Handler struct {
	configReader genericConfigProvider
}

// NewHandler returns a pointer to a new configuration [Handler].
func NewHandler(configReader genericConfigProvider) *Handler {
	return &Handler{
		configReader: configReader,
	}
}

// LoadSettings reads the given configuration files and overlays their values
// onto [DefaultSettings]. Keys that are absent or unparseable keep their
// default value.
func (h *Handler) LoadSettings(filenames ...string) (Settings, error) {
	settings := DefaultSettings()

	envMap, err := h.configReader.Read(filenames...)
	if err != nil {
		return settings, fmt.Errorf("(config) failed to read: %w", err)
	}

	if v := h.MapKeyToInt64(envMap, KeyChunkSize); v > 0 {
		settings.ChunkSize = int(v)
	}

	if v, ok := h.MapKeyToBool(envMap, KeyVerify); ok {
		settings.Verify = v
	}

	if v, ok := h.MapKeyToBool(envMap, KeyPreserve); ok {
		settings.Preserve = v
	}

	if v := h.MapKeyToInt64(envMap, KeyMinFree); v > 0 {
		settings.MinFree = uint64(v)
	}

	return settings, nil
}

// MapKeyToString returns the string value of a key, or an empty string if the
// key does not exist in the map.
func (h *Handler) MapKeyToString(envMap map[string]string, key string) string {
	if value, exists := envMap[key]; exists {
		return value
	}

	return ""
}

// MapKeyToInt64 returns the int64 value of a key, or -1 if the key does not
// exist in the map or cannot be parsed.
func (h *Handler) MapKeyToInt64(envMap map[string]string, key string) int64 {
	value := h.MapKeyToString(envMap, key)
	if value == "" {
		return -1
	}

	intValue, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return -1
	}

	return intValue
}

// MapKeyToBool returns the boolean value of a key, with the second return
// value reporting whether the key existed and was parseable.
func (h *Handler) MapKeyToBool(envMap map[string]string, key string) (bool, bool) {
	value := h.MapKeyToString(envMap, key)
	if value == "" {
		return false, false
	}

	boolValue, err := strconv.ParseBool(value)
	if err != nil {
		return false, false
	}

	return boolValue, true
}
