package model

// Avatar is a purchasable cosmetic identity marker sold by the store.
type Avatar struct {
	ID    int64  `json:"id"`
	Icon  string `json:"icon"`
	Glyph string `json:"glyph"`
	Title string `json:"title"`
	Price int    `json:"price"`
	Owned bool   `json:"owned"`
}

func (a Avatar) Affordable(balance int) bool {
	return !a.Owned && a.Price <= balance
}

var avatarGlyphs = map[string]string{
	"person":    "👤",
	"wizard":    "🧙",
	"crown":     "👑",
	"knight":    "⚔️",
	"shield":    "🛡️",
	"bow":       "🏹",
	"sword":     "🗡️",
	"crystal":   "🔮",
	"lion":      "🦁",
	"lightning": "⚡",
	"star":      "🌟",
	"dragon":    "🐉",
}

// AvatarGlyph resolves an avatar icon key to its glyph. Unknown keys fall
// back to the default person glyph, matching what the store renders for a
// fresh account.
func AvatarGlyph(icon string) string {
	if glyph, ok := avatarGlyphs[icon]; ok {
		return glyph
	}
	return "👤"
}
