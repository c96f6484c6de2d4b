package config

const (
	WindowWidth  = 1280
	WindowHeight = 720

	// Content box the fire rain is confined to, relative to the window.
	BoxWidthRatio  = 0.6
	BoxHeightRatio = 0.35

	TitleFontSize = 32
	StatusMargin  = 12
	LogoLineWidth = 3
	TerminalFPS   = 30

	// TerminalSpeed scales stream speed down once glyphs are a cell tall.
	TerminalSpeed = 0.25
)
