package ui

import "github.com/gdamore/tcell/v2"

// Colors - amber-on-charcoal terminal look
var (
	ColorBg      = tcell.NewRGBColor(24, 24, 32)    // Charcoal background
	ColorField   = tcell.NewRGBColor(40, 40, 56)    // Input field background
	ColorFg      = tcell.NewRGBColor(208, 208, 208) // Light gray text
	ColorBorder  = tcell.NewRGBColor(255, 170, 0)   // Amber borders
	ColorTitle   = tcell.NewRGBColor(255, 255, 255) // White titles
	ColorAccent  = tcell.NewRGBColor(255, 170, 0)   // Amber highlight
	ColorButton  = tcell.NewRGBColor(128, 85, 0)    // Button background
	ColorError   = tcell.ColorRed                   // Errors in the status bar
	ColorMine    = tcell.NewRGBColor(255, 220, 120) // Own chat lines
	ColorTheirs  = tcell.NewRGBColor(120, 200, 255) // Everyone else's chat lines
	ColorUnread  = tcell.NewRGBColor(0, 255, 128)   // Unread badges
	ColorMuted   = tcell.NewRGBColor(128, 128, 128) // Secondary text
	ColorLivePos = tcell.NewRGBColor(0, 255, 128)   // Live connection marker
)
