package tenant

import "testing"

func TestParseHost(t *testing.T) {
	const root = "mystorefront.app"

	cases := []struct {
		name    string
		host    string
		rawURL  string
		wantID  string
		wantEnv Environment
	}{
		{"local con puerto", "abc-rental.localhost:3000", "", "abc-rental", EnvLocal},
		{"local sin puerto", "demo.localhost", "", "demo", EnvLocal},
		{"local via url", "whatever", "http://tienda.localhost:3000/products", "tienda", EnvLocal},
		{"local www", "www.localhost:3000", "", "", EnvLocal},
		{"local label anidado", "a.b.localhost", "", "", EnvLocal},
		{"produccion subdominio", "abc-rental.mystorefront.app", "", "abc-rental", EnvProduction},
		{"produccion subdominio con puerto", "abc-rental.mystorefront.app:443", "", "abc-rental", EnvProduction},
		{"produccion root", "mystorefront.app", "", "", EnvProduction},
		{"produccion www", "www.mystorefront.app", "", "", EnvProduction},
		{"produccion anidado", "x.y.mystorefront.app", "", "", EnvProduction},
		{"preview", "abc-rental---f00ba4.mystorefront.app", "", "abc-rental", EnvPreview},
		{"preview sin id", "---hash.mystorefront.app", "", "", EnvPreview},
		{"dominio ajeno", "otracosa.com", "", "", EnvUnknown},
		{"mayusculas", "ABC-RENTAL.MYSTOREFRONT.APP", "", "abc-rental", EnvProduction},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			id, env := ParseHost(tc.host, tc.rawURL, root)
			if id != tc.wantID || env != tc.wantEnv {
				t.Fatalf("ParseHost(%q, %q) = (%q, %q), want (%q, %q)",
					tc.host, tc.rawURL, id, env, tc.wantID, tc.wantEnv)
			}
		})
	}
}

func TestParseHost_SinRootDomain(t *testing.T) {
	id, env := ParseHost("abc.algo.com", "", "")
	if id != "" || env != EnvUnknown {
		t.Fatalf("got (%q, %q), want empty/unknown", id, env)
	}
}
