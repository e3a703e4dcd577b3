package tenant

import (
	"regexp"
	"strings"
)

const (
	minIDLen = 2
	maxIDLen = 50
)

var idCharsetRe = regexp.MustCompile(`^[a-z0-9-]+$`)

// Sanitize normaliza y valida un candidato a tenant ID.
// Devuelve el ID normalizado, o "" si el candidato es inválido.
//
// Regla canónica (única en todo el código): lowercase + trim; charset
// [a-z0-9-]; largo en [2,50]; sin guión inicial/final; sin guiones
// consecutivos. Un candidato inválido se trata como "tenant no encontrado",
// nunca como error duro.
//
// Idempotente: Sanitize(Sanitize(x)) == Sanitize(x).
func Sanitize(raw string) string {
	id := strings.ToLower(strings.TrimSpace(raw))
	if !ValidID(id) {
		return ""
	}
	return id
}

// ValidID aplica la regla canónica sin normalizar.
func ValidID(id string) bool {
	if len(id) < minIDLen || len(id) > maxIDLen {
		return false
	}
	if !idCharsetRe.MatchString(id) {
		return false
	}
	if strings.HasPrefix(id, "-") || strings.HasSuffix(id, "-") {
		return false
	}
	// Guiones consecutivos prohibidos: "--" es ambiguo frente al separador
	// "---" del canal de preview deployments.
	if strings.Contains(id, "--") {
		return false
	}
	return true
}
