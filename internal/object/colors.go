package object

import "github.com/tomz197/spacecatcher/internal/draw"

// Palette shared by the game objects and the screens.
var (
	ColorBackground = draw.Hex("#0A0A1E")
	ColorWhite      = draw.White
	ColorBlack      = draw.Hex("#000000")
	ColorYellow     = draw.Hex("#FFD700")
	ColorRed        = draw.Hex("#FF3232")
	ColorBlue       = draw.Hex("#3296FF")
	ColorGray       = draw.Hex("#646464")
	ColorGreen      = draw.Hex("#00FF64")
	ColorOrange     = draw.Hex("#FF8000")
	ColorCyan       = draw.Hex("#00FFFF")
	ColorPurple     = draw.Hex("#9370DB")
)
