// Package theme contiene los presets de tema del storefront y la generación
// de CSS custom properties para inyección server-side.
//
// Hay exactamente tres presets compilados en el binario: ocean, fire y forest.
// Nunca se crean ni destruyen presets en runtime.
package theme

// ID identifica uno de los tres presets conocidos.
type ID string

const (
	Ocean  ID = "ocean"
	Fire   ID = "fire"
	Forest ID = "forest"
)

// DefaultID es el preset usado cuando no se puede resolver ningún otro.
const DefaultID = Ocean

// Preset es un bundle inmutable de 8 tokens de color + 2 familias tipográficas.
type Preset struct {
	ID ID

	Primary    string
	PrimaryFg  string
	Secondary  string
	Accent     string
	Background string
	Surface    string
	Text       string
	TextMuted  string

	FontHeading string
	FontBody    string
}

var presets = map[ID]Preset{
	Ocean: {
		ID:          Ocean,
		Primary:     "#2563eb",
		PrimaryFg:   "#eff6ff",
		Secondary:   "#0ea5e9",
		Accent:      "#38bdf8",
		Background:  "#f8fafc",
		Surface:     "#ffffff",
		Text:        "#0f172a",
		TextMuted:   "#64748b",
		FontHeading: "'Inter', sans-serif",
		FontBody:    "'Inter', sans-serif",
	},
	Fire: {
		ID:          Fire,
		Primary:     "#dc2626",
		PrimaryFg:   "#fef2f2",
		Secondary:   "#ea580c",
		Accent:      "#f97316",
		Background:  "#fffbf5",
		Surface:     "#ffffff",
		Text:        "#1c1917",
		TextMuted:   "#78716c",
		FontHeading: "'Poppins', sans-serif",
		FontBody:    "'Inter', sans-serif",
	},
	Forest: {
		ID:          Forest,
		Primary:     "#059669",
		PrimaryFg:   "#ecfdf5",
		Secondary:   "#10b981",
		Accent:      "#34d399",
		Background:  "#f6fdf9",
		Surface:     "#ffffff",
		Text:        "#14201a",
		TextMuted:   "#6b7f75",
		FontHeading: "'Merriweather', serif",
		FontBody:    "'Inter', sans-serif",
	},
}

// Get retorna el preset para el ID dado y un flag de existencia.
func Get(id ID) (Preset, bool) {
	p, ok := presets[id]
	return p, ok
}

// GetOrDefault retorna el preset para el ID dado, o el default si no existe.
func GetOrDefault(id ID) Preset {
	if p, ok := presets[id]; ok {
		return p
	}
	return presets[DefaultID]
}

// Valid indica si el string corresponde a un preset conocido.
func Valid(s string) bool {
	_, ok := presets[ID(s)]
	return ok
}

// IDs retorna los IDs conocidos (orden fijo, para mensajes y CLI).
func IDs() []ID {
	return []ID{Ocean, Fire, Forest}
}
