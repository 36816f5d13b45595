// internal/compose/compose.go

// Package compose derives the marketing text fields (options, key features)
// from a record's selection state and parses them back when a record is
// loaded for editing. Every function here is a pure derivation: empty
// selections yield empty strings, never errors.
package compose

import (
	"strings"

	"github.com/lotkeeper/carstock-backend/internal/catalog"
	"github.com/lotkeeper/carstock-backend/internal/models"
)

// Selection marks which catalog features are checked.
type Selection map[string]bool

// phraseRule collapses a long power-accessory phrase to its canonical short
// form in key-features text. Rules apply in order; the short form is only
// appended when not already present.
type phraseRule struct {
	Long  string
	Short string
}

var phraseRules = []phraseRule{
	{"POWER WINDOWS, LOCKS AND SEAT", "POWER SEAT"},
	{"POWER WINDOWS, LOCKS, SEAT AND MOONROOF", "MOONROOF"},
	{"POWER WINDOWS, LOCKS, SEATS AND MOONROOF", "MOONROOF"},
	{"POWER WINDOWS, LOCKS, SEATS AND DUAL MOONROOF", "DUAL MOONROOF"},
	{"POWER WINDOWS, LOCKS, SEATS AND PANORAMIC MOONROOF", "PANORAMIC MOONROOF"},
}

// multiCommaPhrases are feature names that themselves contain commas, so
// parsing options text must match them as whole substrings before falling
// back to comma-splitting.
var multiCommaPhrases = []string{
	"POWER WINDOWS, LOCKS AND MIRRORS",
	"POWER WINDOWS, LOCKS AND SEAT",
	"POWER WINDOWS, LOCKS AND SEATS",
	"POWER WINDOWS, LOCKS, SEAT AND MOONROOF",
	"POWER WINDOWS, LOCKS, SEATS AND MOONROOF",
	"POWER WINDOWS, LOCKS, SEATS AND DUAL MOONROOF",
	"POWER WINDOWS, LOCKS, SEATS AND PANORAMIC MOONROOF",
}

// MultiCommaPhrases returns the fixed list of feature names containing
// commas, in rule order.
func MultiCommaPhrases() []string {
	return append([]string(nil), multiCommaPhrases...)
}

// IsMultiCommaPhrase reports whether name must be matched as a whole
// substring when parsing options text.
func IsMultiCommaPhrase(name string) bool {
	for _, p := range multiCommaPhrases {
		if p == name {
			return true
		}
	}
	return false
}

// WheelSelection is the wheel section of the edit screen.
type WheelSelection struct {
	Size         string               `json:"size"`
	Material     models.WheelMaterial `json:"material"`
	Custom       string               `json:"custom"`
	IsKeyFeature bool                 `json:"is_key_feature"`
}

// Description synthesizes the wheel description string: size, material and
// custom text joined by spaces, with the material omitted when none is
// selected. All parts blank yields "".
func (w WheelSelection) Description() string {
	parts := make([]string, 0, 3)
	for _, p := range []string{w.Size, materialLabel(w.Material), w.Custom} {
		if p = strings.TrimSpace(p); p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, " ")
}

func materialLabel(m models.WheelMaterial) string {
	if m == models.WheelMaterialNone || m == "" {
		return ""
	}
	return string(m)
}

// ComposeOptions joins the selected features in catalog order with ", ",
// appending the wheel description (when non-empty) as one more item.
func ComposeOptions(selected Selection, cat *catalog.Catalog, wheelDescription string) string {
	var items []string
	for _, feature := range cat.AllFeatures() {
		if selected[feature] {
			items = append(items, feature)
		}
	}
	if wheelDescription != "" {
		items = append(items, wheelDescription)
	}
	return strings.Join(items, ", ")
}

// ComposeKeyFeatures builds the key-features text: selected key-feature
// flags in catalog order, long power-accessory phrases collapsed to their
// canonical short forms (duplicates suppressed, the short form lands at the
// end), and the wheel description appended when the wheels are flagged as a
// key feature.
func ComposeKeyFeatures(selected Selection, cat *catalog.Catalog, wheelIsKeyFeature bool, wheelDescription string) string {
	var items []string
	for _, feature := range cat.AllFeatures() {
		if selected[feature] {
			items = append(items, feature)
		}
	}

	for _, rule := range phraseRules {
		if idx := indexOf(items, rule.Long); idx >= 0 {
			items = append(items[:idx], items[idx+1:]...)
			if indexOf(items, rule.Short) < 0 {
				items = append(items, rule.Short)
			}
		}
	}

	if wheelIsKeyFeature && wheelDescription != "" {
		items = append(items, wheelDescription)
	}
	return strings.Join(items, ", ")
}

// ParseOptionsIntoSelection marks a catalog feature selected when its exact
// name appears in the comma-separated options text. Features containing
// commas themselves are matched as whole substrings of the raw text instead
// of against the comma-split items.
func ParseOptionsIntoSelection(optionsText string, cat *catalog.Catalog) Selection {
	items := map[string]bool{}
	for _, part := range strings.Split(optionsText, ",") {
		if part = strings.TrimSpace(part); part != "" {
			items[part] = true
		}
	}

	selected := Selection{}
	for _, feature := range cat.AllFeatures() {
		if items[feature] {
			selected[feature] = true
			continue
		}
		if IsMultiCommaPhrase(feature) && strings.Contains(optionsText, feature) {
			selected[feature] = true
		}
	}
	return selected
}

// ParseKeyFeaturesIntoSelection marks key-feature flags from stored
// key-features text. Long phrases that were collapsed on compose are
// recognized through their short forms.
func ParseKeyFeaturesIntoSelection(keyFeaturesText string, cat *catalog.Catalog) Selection {
	selected := Selection{}
	for _, feature := range cat.AllFeatures() {
		if feature == "" {
			continue
		}
		if strings.Contains(keyFeaturesText, feature) {
			selected[feature] = true
			continue
		}
		if short, ok := shortForm(feature); ok && containsItem(keyFeaturesText, short) {
			selected[feature] = true
		}
	}
	return selected
}

// ParseWheelSection extracts the wheel section from a stored record. The
// material resolves through the flag priority (alloy, two-tone, chrome,
// plain), defaulting to none.
func ParseWheelSection(v *models.Vehicle) WheelSelection {
	return WheelSelection{
		Size:         v.WheelSize,
		Material:     v.Material(),
		Custom:       v.CustomWheels,
		IsKeyFeature: v.IsWheelKeyFeature,
	}
}

func shortForm(long string) (string, bool) {
	for _, rule := range phraseRules {
		if rule.Long == long {
			return rule.Short, true
		}
	}
	return "", false
}

// containsItem matches item against the exact comma-separated entries of
// text, so "MOONROOF" does not match inside "PANORAMIC MOONROOF".
func containsItem(text, item string) bool {
	for _, part := range strings.Split(text, ",") {
		if strings.TrimSpace(part) == item {
			return true
		}
	}
	return false
}

func indexOf(items []string, s string) int {
	for i, item := range items {
		if item == s {
			return i
		}
	}
	return -1
}
