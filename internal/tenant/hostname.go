package tenant

import (
	"regexp"
	"strings"
)

// localhostURLRe matchea URLs completas de desarrollo: http://<id>.localhost[...]
var localhostURLRe = regexp.MustCompile(`^https?://([a-z0-9-]+)\.localhost`)

// ParseHost extrae el candidato a tenant ID desde el host header y la URL
// cruda del request. Prueba, en orden: desarrollo local, subdominio de
// producción y deployments de preview (patrón con "---").
//
// Un no-match en todas las etapas devuelve "": no es un error, significa
// "usar el tenant default".
func ParseHost(host, rawURL, rootDomain string) (string, Environment) {
	host = strings.ToLower(strings.TrimSpace(host))
	rootDomain = strings.ToLower(strings.TrimSpace(rootDomain))

	// 1) Desarrollo local: http://<id>.localhost o <id>.localhost[:port]
	if m := localhostURLRe.FindStringSubmatch(strings.ToLower(rawURL)); m != nil {
		if m[1] != "www" {
			return m[1], EnvLocal
		}
		return "", EnvLocal
	}
	if h := stripPort(host); strings.HasSuffix(h, ".localhost") {
		label := strings.TrimSuffix(h, ".localhost")
		if label != "" && label != "www" && !strings.Contains(label, ".") {
			return label, EnvLocal
		}
		return "", EnvLocal
	}

	if rootDomain == "" {
		return "", EnvUnknown
	}

	h := stripPort(host)

	// 2) Preview deployments: <id>---<deploy-hash>.<rootDomain>
	// Se chequea antes que producción: un host de preview también termina
	// en el root domain.
	if strings.Contains(h, "---") && strings.HasSuffix(h, "."+rootDomain) {
		if id := h[:strings.Index(h, "---")]; id != "" {
			return id, EnvPreview
		}
		return "", EnvPreview
	}

	// 3) Producción: subdominio directo del root domain.
	if h == rootDomain || h == "www."+rootDomain {
		return "", EnvProduction
	}
	if strings.HasSuffix(h, "."+rootDomain) {
		label := strings.TrimSuffix(h, "."+rootDomain)
		// sólo el label más a la izquierda; subdominios anidados no identifican tenant
		if label != "" && !strings.Contains(label, ".") {
			return label, EnvProduction
		}
		return "", EnvProduction
	}

	return "", EnvUnknown
}

func stripPort(host string) string {
	if i := strings.LastIndex(host, ":"); i > 0 {
		return host[:i]
	}
	return host
}
