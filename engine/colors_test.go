package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestColorHarmonySameColor(t *testing.T) {
	assert.Equal(t, 1.0, ColorHarmony("#FF0000", "#FF0000"))
	assert.Equal(t, 1.0, ColorHarmony("#ff0000", "#FF0000"))
	assert.Equal(t, 1.0, ColorHarmony("ff0000", "FF0000"))
}

func TestColorHarmonyNeutralGoesWithEverything(t *testing.T) {
	// white and black are fully desaturated
	assert.Equal(t, 0.9, ColorHarmony("#FFFFFF", "#FF0000"))
	assert.Equal(t, 0.9, ColorHarmony("#00FF00", "#000000"))
	assert.Equal(t, 0.9, ColorHarmony("#808080", "#1200FF"))
}

func TestColorHarmonyInvalidInput(t *testing.T) {
	assert.Equal(t, 0.5, ColorHarmony("red", "#FF0000"))
	assert.Equal(t, 0.5, ColorHarmony("#FF0000", "blue"))
	assert.Equal(t, 0.5, ColorHarmony("", ""))
	assert.Equal(t, 0.5, ColorHarmony("#F00", "#0F0"))
	assert.Equal(t, 0.5, ColorHarmony("#GGGGGG", "#FF0000"))
}

func TestColorHarmonyHueBuckets(t *testing.T) {
	// red vs cyan, 180 degrees apart
	assert.Equal(t, 0.8, ColorHarmony("#FF0000", "#00FFFF"))
	// red vs orange red, close hues
	assert.Equal(t, 0.9, ColorHarmony("#FF0000", "#FF4000"))
	// red vs green, triadic 120 degrees
	assert.Equal(t, 0.7, ColorHarmony("#FF0000", "#00FF00"))
	// red vs a ~80 degree hue, no bucket
	assert.Equal(t, 0.4, ColorHarmony("#FF0000", "#AAFF00"))
}

func TestIsNeutralColor(t *testing.T) {
	assert.True(t, IsNeutralColor("#FFFFFF"))
	assert.True(t, IsNeutralColor("#808080"))
	assert.False(t, IsNeutralColor("#FF0000"))
	assert.False(t, IsNeutralColor("not-a-color"))
}

func TestColorSetCompatibilityEmptySide(t *testing.T) {
	assert.Equal(t, 0.5, colorSetCompatibility(nil, []string{"#FF0000"}))
	assert.Equal(t, 0.5, colorSetCompatibility([]string{"#FF0000"}, nil))
	assert.Equal(t, 0.5, colorSetCompatibility(nil, nil))
}

func TestColorSetCompatibilityTakesBestPair(t *testing.T) {
	// clashing pair scores 0.4, but white matches anything at 0.9
	got := colorSetCompatibility([]string{"#FF0000", "#FFFFFF"}, []string{"#AAFF00"})
	assert.Equal(t, 0.9, got)
}
