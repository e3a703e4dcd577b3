package theme

import (
	"encoding/json"
	"fmt"
	"strings"
)

// RefKind distingue las dos formas en que un tenant puede declarar su tema.
type RefKind string

const (
	RefKindID     RefKind = "id"     // formato nuevo: string con el preset
	RefKindLegacy RefKind = "legacy" // formato viejo: objeto de 4 colores
)

// LegacyColors es el formato histórico de configuración: colores crudos en hex.
type LegacyColors struct {
	Primary    string `json:"primary"`
	Secondary  string `json:"secondary"`
	Accent     string `json:"accent"`
	Background string `json:"background"`
}

// Ref es la unión etiquetada "preset ID o objeto legacy".
// Se normaliza a un ID canónico con Resolve(); ningún otro código debe
// hacer type-switching sobre el formato.
type Ref struct {
	Kind   RefKind
	ID     ID
	Legacy LegacyColors
}

// UnmarshalJSON acepta un string ("ocean") o un objeto legacy de colores.
func (r *Ref) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		r.Kind = RefKindID
		r.ID = ID(strings.ToLower(strings.TrimSpace(s)))
		return nil
	}
	var lc LegacyColors
	if err := json.Unmarshal(b, &lc); err != nil {
		return fmt.Errorf("theme: ref must be a preset id or a legacy color object: %w", err)
	}
	r.Kind = RefKindLegacy
	r.Legacy = lc
	return nil
}

// MarshalJSON serializa siempre en el formato de origen.
func (r Ref) MarshalJSON() ([]byte, error) {
	if r.Kind == RefKindLegacy {
		return json.Marshal(r.Legacy)
	}
	return json.Marshal(string(r.ID))
}

// Validate verifica que la ref sea resoluble a un preset.
// Para IDs exige un preset conocido; los objetos legacy siempre resuelven
// (colores desconocidos caen en el default).
func (r Ref) Validate() error {
	switch r.Kind {
	case RefKindID:
		if !Valid(string(r.ID)) {
			return fmt.Errorf("theme: unknown preset %q (known: %v)", r.ID, IDs())
		}
		return nil
	case RefKindLegacy:
		if strings.TrimSpace(r.Legacy.Primary) == "" {
			return fmt.Errorf("theme: legacy color object requires primary")
		}
		return nil
	default:
		return fmt.Errorf("theme: empty theme ref")
	}
}

// Resolve normaliza la ref a un preset ID canónico.
//
// El mapeo legacy es por match exacto del color primario: #dc2626 => fire,
// #059669 => forest; cualquier otro valor cae en ocean. No hay fuzzy matching.
func Resolve(r Ref) ID {
	switch r.Kind {
	case RefKindID:
		if Valid(string(r.ID)) {
			return r.ID
		}
		return DefaultID
	case RefKindLegacy:
		switch strings.ToLower(strings.TrimSpace(r.Legacy.Primary)) {
		case "#dc2626":
			return Fire
		case "#059669":
			return Forest
		default:
			return DefaultID
		}
	default:
		return DefaultID
	}
}

// RefFromID construye una Ref de formato nuevo.
func RefFromID(id ID) Ref {
	return Ref{Kind: RefKindID, ID: id}
}
