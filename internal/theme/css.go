package theme

import (
	"fmt"
	"strings"
)

// GenerateCSS interpola los tokens del preset en el template fijo de CSS
// custom properties: bloque claro (:root), bloque oscuro (.dark) y aliases
// con los nombres de variable que espera el UI kit.
//
// Función pura: mismo ID => mismo string.
func GenerateCSS(id ID) string {
	p := GetOrDefault(id)

	var b strings.Builder
	b.Grow(1536)

	b.WriteString(":root {\n")
	writeVar(&b, "--sf-primary", p.Primary)
	writeVar(&b, "--sf-primary-foreground", p.PrimaryFg)
	writeVar(&b, "--sf-secondary", p.Secondary)
	writeVar(&b, "--sf-accent", p.Accent)
	writeVar(&b, "--sf-background", p.Background)
	writeVar(&b, "--sf-surface", p.Surface)
	writeVar(&b, "--sf-text", p.Text)
	writeVar(&b, "--sf-text-muted", p.TextMuted)
	writeVar(&b, "--sf-font-heading", p.FontHeading)
	writeVar(&b, "--sf-font-body", p.FontBody)
	b.WriteString("}\n")

	// Variante oscura: superficies invertidas, tokens de marca intactos.
	b.WriteString(".dark {\n")
	writeVar(&b, "--sf-background", p.Text)
	writeVar(&b, "--sf-surface", "#1e293b")
	writeVar(&b, "--sf-text", p.Background)
	writeVar(&b, "--sf-text-muted", "#94a3b8")
	b.WriteString("}\n")

	// Aliases para el UI kit (espera su propio namespace de variables).
	b.WriteString(":root {\n")
	writeVar(&b, "--primary", "var(--sf-primary)")
	writeVar(&b, "--primary-foreground", "var(--sf-primary-foreground)")
	writeVar(&b, "--secondary", "var(--sf-secondary)")
	writeVar(&b, "--accent", "var(--sf-accent)")
	writeVar(&b, "--background", "var(--sf-background)")
	writeVar(&b, "--card", "var(--sf-surface)")
	writeVar(&b, "--foreground", "var(--sf-text)")
	writeVar(&b, "--muted-foreground", "var(--sf-text-muted)")
	b.WriteString("}\n")

	return b.String()
}

// GenerateCSSForRef resuelve la ref (ID nuevo u objeto legacy) y genera el CSS.
func GenerateCSSForRef(r Ref) string {
	return GenerateCSS(Resolve(r))
}

func writeVar(b *strings.Builder, name, value string) {
	fmt.Fprintf(b, "  %s: %s;\n", name, value)
}
