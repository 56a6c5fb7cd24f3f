package proposal

// Color is a closed set of visual accent tokens. Stored documents may carry
// arbitrary strings; Normalize maps anything unknown to the context's
// fallback instead of failing the load.
type Color string

const (
	ColorRed          Color = "red"
	ColorOrange       Color = "orange"
	ColorYellow       Color = "yellow"
	ColorGreen        Color = "green"
	ColorBlue         Color = "blue"
	ColorPurple       Color = "purple"
	ColorIndigo       Color = "indigo"
	ColorIndigoPurple Color = "indigo-purple"
)

// challengeColors is the palette allowed on Challenge cards.
var challengeColors = map[Color]bool{
	ColorRed:    true,
	ColorOrange: true,
	ColorYellow: true,
}

// impactBoxColors is the palette allowed on the ProvenImpactBox.
var impactBoxColors = map[Color]bool{
	ColorIndigoPurple: true,
	ColorGreen:        true,
	ColorBlue:         true,
}

// recommendationColors is the palette allowed on RecommendationBoxes.
var recommendationColors = map[Color]bool{
	ColorGreen:  true,
	ColorBlue:   true,
	ColorPurple: true,
}

// featureColors is the palette allowed on Feature cards.
var featureColors = map[Color]bool{
	ColorIndigo: true,
	ColorGreen:  true,
	ColorBlue:   true,
	ColorPurple: true,
	ColorOrange: true,
}

// NormalizeChallengeColor returns c if it is a valid challenge color,
// otherwise the fallback ColorRed.
func NormalizeChallengeColor(c Color) Color {
	if challengeColors[c] {
		return c
	}
	return ColorRed
}

// NormalizeImpactBoxColor returns c if valid, otherwise ColorIndigoPurple.
func NormalizeImpactBoxColor(c Color) Color {
	if impactBoxColors[c] {
		return c
	}
	return ColorIndigoPurple
}

// NormalizeRecommendationColor returns c if valid, otherwise ColorGreen.
func NormalizeRecommendationColor(c Color) Color {
	if recommendationColors[c] {
		return c
	}
	return ColorGreen
}

// NormalizeFeatureColor returns c if valid, otherwise ColorIndigo.
func NormalizeFeatureColor(c Color) Color {
	if featureColors[c] {
		return c
	}
	return ColorIndigo
}

// Icon is a closed set of icon tokens resolvable by the renderer. Unknown
// values normalize to IconSparkles rather than erroring, so documents saved
// against an older or newer icon registry still render.
type Icon string

const (
	IconSparkles  Icon = "sparkles"
	IconAlert     Icon = "alert-triangle"
	IconClock     Icon = "clock"
	IconTrendDown Icon = "trending-down"
	IconTrendUp   Icon = "trending-up"
	IconTarget    Icon = "target"
	IconZap       Icon = "zap"
	IconShield    Icon = "shield"
	IconUsers     Icon = "users"
	IconDatabase  Icon = "database"
	IconCode      Icon = "code"
	IconGlobe     Icon = "globe"
	IconDollar    Icon = "dollar-sign"
	IconChart     Icon = "bar-chart"
	IconLightbulb Icon = "lightbulb"
	IconRocket    Icon = "rocket"
	IconCheck     Icon = "check-circle"
	IconSettings  Icon = "settings"
)

// knownIcons is the resolvable icon registry.
var knownIcons = map[Icon]bool{
	IconSparkles: true, IconAlert: true, IconClock: true,
	IconTrendDown: true, IconTrendUp: true, IconTarget: true,
	IconZap: true, IconShield: true, IconUsers: true,
	IconDatabase: true, IconCode: true, IconGlobe: true,
	IconDollar: true, IconChart: true, IconLightbulb: true,
	IconRocket: true, IconCheck: true, IconSettings: true,
}

// NormalizeIcon returns ic if it is a known icon, otherwise IconSparkles.
func NormalizeIcon(ic Icon) Icon {
	if knownIcons[ic] {
		return ic
	}
	return IconSparkles
}

// NormalizeUnit returns u if valid, otherwise UnitWeek.
func NormalizeUnit(u DurationUnit) DurationUnit {
	if u == UnitWeek || u == UnitMonth {
		return u
	}
	return UnitWeek
}
