// internal/compose/compose_test.go
package compose

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lotkeeper/carstock-backend/internal/catalog"
	"github.com/lotkeeper/carstock-backend/internal/models"
)

func testCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	c := catalog.New()
	require.NoError(t, c.UnmarshalJSON([]byte(`{
		"Comfort": [
			"HEATED SEATS",
			"POWER WINDOWS, LOCKS AND SEAT",
			"POWER WINDOWS, LOCKS, SEAT AND MOONROOF",
			"POWER WINDOWS, LOCKS, SEATS AND PANORAMIC MOONROOF"
		],
		"Audio": ["PREMIUM SOUND", "NAVIGATION"],
		"Safety": ["BACKUP CAMERA", "BLIND SPOT MONITOR"]
	}`)))
	return c
}

func TestComposeOptionsCatalogOrder(t *testing.T) {
	cat := testCatalog(t)
	selected := Selection{
		"BACKUP CAMERA": true,
		"HEATED SEATS":  true,
		"NAVIGATION":    true,
	}

	got := ComposeOptions(selected, cat, "")
	assert.Equal(t, "HEATED SEATS, NAVIGATION, BACKUP CAMERA", got)
}

func TestComposeOptionsAppendsWheelDescription(t *testing.T) {
	cat := testCatalog(t)
	got := ComposeOptions(Selection{"NAVIGATION": true}, cat, `18" ALLOY WHEELS`)
	assert.Equal(t, `NAVIGATION, 18" ALLOY WHEELS`, got)
}

func TestComposeOptionsEmptySelection(t *testing.T) {
	cat := testCatalog(t)
	assert.Equal(t, "", ComposeOptions(Selection{}, cat, ""))
	assert.Equal(t, "", ComposeOptions(nil, cat, ""))
}

func TestComposeKeyFeaturesCollapsesLongPhrases(t *testing.T) {
	cat := testCatalog(t)
	selected := Selection{
		"POWER WINDOWS, LOCKS, SEAT AND MOONROOF": true,
		"BACKUP CAMERA":                           true,
	}

	got := ComposeKeyFeatures(selected, cat, false, "")
	assert.Contains(t, got, "MOONROOF")
	assert.NotContains(t, got, "POWER WINDOWS, LOCKS, SEAT AND MOONROOF")
	assert.Equal(t, "BACKUP CAMERA, MOONROOF", got)
}

func TestComposeKeyFeaturesPanoramicVariant(t *testing.T) {
	cat := testCatalog(t)
	selected := Selection{"POWER WINDOWS, LOCKS, SEATS AND PANORAMIC MOONROOF": true}

	got := ComposeKeyFeatures(selected, cat, false, "")
	assert.Equal(t, "PANORAMIC MOONROOF", got)
}

func TestComposeKeyFeaturesNoDuplicateShortForm(t *testing.T) {
	c := catalog.New()
	require.NoError(t, c.UnmarshalJSON([]byte(`{
		"Comfort": ["POWER SEAT", "POWER WINDOWS, LOCKS AND SEAT"]
	}`)))

	selected := Selection{
		"POWER SEAT":                    true,
		"POWER WINDOWS, LOCKS AND SEAT": true,
	}

	got := ComposeKeyFeatures(selected, c, false, "")
	assert.Equal(t, "POWER SEAT", got)
}

func TestComposeKeyFeaturesWheelDescription(t *testing.T) {
	cat := testCatalog(t)
	selected := Selection{"BACKUP CAMERA": true}

	got := ComposeKeyFeatures(selected, cat, true, `20" CHROME WHEELS`)
	assert.Equal(t, `BACKUP CAMERA, 20" CHROME WHEELS`, got)

	// wheel flagged but no description: nothing appended
	got = ComposeKeyFeatures(selected, cat, true, "")
	assert.Equal(t, "BACKUP CAMERA", got)

	// description present but not flagged: nothing appended
	got = ComposeKeyFeatures(selected, cat, false, `20" CHROME WHEELS`)
	assert.Equal(t, "BACKUP CAMERA", got)
}

func TestWheelSelectionDescription(t *testing.T) {
	tests := []struct {
		name string
		sel  WheelSelection
		want string
	}{
		{"all parts", WheelSelection{Size: `18"`, Material: models.WheelMaterialAlloy, Custom: "BLACK"}, `18" ALLOY WHEELS BLACK`},
		{"material none omitted", WheelSelection{Size: `18"`, Material: models.WheelMaterialNone, Custom: "BLACK"}, `18" BLACK`},
		{"size only", WheelSelection{Size: `16"`}, `16"`},
		{"custom only", WheelSelection{Custom: "FORGED"}, "FORGED"},
		{"all blank", WheelSelection{}, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.sel.Description())
		})
	}
}

func TestParseOptionsRoundTrip(t *testing.T) {
	cat := testCatalog(t)
	selected := Selection{
		"HEATED SEATS":  true,
		"PREMIUM SOUND": true,
		"BACKUP CAMERA": true,
	}

	text := ComposeOptions(selected, cat, "")
	parsed := ParseOptionsIntoSelection(text, cat)
	assert.Equal(t, selected, parsed)
}

func TestParseOptionsMultiCommaPhrase(t *testing.T) {
	cat := testCatalog(t)
	text := "HEATED SEATS, POWER WINDOWS, LOCKS AND SEAT, NAVIGATION"

	parsed := ParseOptionsIntoSelection(text, cat)
	assert.True(t, parsed["HEATED SEATS"])
	assert.True(t, parsed["NAVIGATION"])
	// the comma-bearing phrase matched whole, not as split fragments
	assert.True(t, parsed["POWER WINDOWS, LOCKS AND SEAT"])
	assert.False(t, parsed["POWER WINDOWS, LOCKS, SEAT AND MOONROOF"])
}

func TestParseOptionsEmptyText(t *testing.T) {
	cat := testCatalog(t)
	assert.Empty(t, ParseOptionsIntoSelection("", cat))
}

func TestParseKeyFeaturesRecognizesShortForms(t *testing.T) {
	cat := testCatalog(t)
	// stored text uses the collapsed form
	parsed := ParseKeyFeaturesIntoSelection("BACKUP CAMERA, MOONROOF", cat)
	assert.True(t, parsed["BACKUP CAMERA"])
	assert.True(t, parsed["POWER WINDOWS, LOCKS, SEAT AND MOONROOF"])
	// short-form matching is per item: plain MOONROOF must not light up the
	// panoramic variant
	assert.False(t, parsed["POWER WINDOWS, LOCKS, SEATS AND PANORAMIC MOONROOF"])
}

func TestParseWheelSection(t *testing.T) {
	v := &models.Vehicle{
		WheelSize:         `18"`,
		ChromeWheels:      true,
		CustomWheels:      "STAGGERED",
		IsWheelKeyFeature: true,
	}

	sel := ParseWheelSection(v)
	assert.Equal(t, `18"`, sel.Size)
	assert.Equal(t, models.WheelMaterialChrome, sel.Material)
	assert.Equal(t, "STAGGERED", sel.Custom)
	assert.True(t, sel.IsKeyFeature)
}

func TestParseWheelSectionPriorityOrder(t *testing.T) {
	// two flags true resolves through the fixed priority
	v := &models.Vehicle{AlloyWheels: true, ChromeWheels: true}
	assert.Equal(t, models.WheelMaterialAlloy, ParseWheelSection(v).Material)

	v = &models.Vehicle{TwoToneWheels: true, Wheels: true}
	assert.Equal(t, models.WheelMaterialTwoTone, ParseWheelSection(v).Material)

	v = &models.Vehicle{}
	assert.Equal(t, models.WheelMaterialNone, ParseWheelSection(v).Material)
}
