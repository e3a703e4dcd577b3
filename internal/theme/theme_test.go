package theme

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestResolve_LegacyMapping(t *testing.T) {
	cases := []struct {
		primary string
		want    ID
	}{
		{"#dc2626", Fire},
		{"#DC2626", Fire}, // case-insensitive
		{"#059669", Forest},
		{" #059669 ", Forest},
		{"#2563eb", Ocean},
		{"#ff00ff", Ocean}, // desconocido => default, sin fuzzy matching
		{"", Ocean},
	}
	for _, tc := range cases {
		r := Ref{Kind: RefKindLegacy, Legacy: LegacyColors{Primary: tc.primary}}
		if got := Resolve(r); got != tc.want {
			t.Fatalf("Resolve(legacy %q) = %q, want %q", tc.primary, got, tc.want)
		}
	}
}

func TestResolve_IDs(t *testing.T) {
	if got := Resolve(RefFromID(Forest)); got != Forest {
		t.Fatalf("got %q", got)
	}
	if got := Resolve(Ref{Kind: RefKindID, ID: "neon"}); got != Ocean {
		t.Fatalf("id desconocido debe resolver al default, got %q", got)
	}
	if got := Resolve(Ref{}); got != Ocean {
		t.Fatalf("ref vacía debe resolver al default, got %q", got)
	}
}

func TestRef_UnmarshalString(t *testing.T) {
	var r Ref
	if err := json.Unmarshal([]byte(`"fire"`), &r); err != nil {
		t.Fatal(err)
	}
	if r.Kind != RefKindID || r.ID != Fire {
		t.Fatalf("got %+v", r)
	}
}

func TestRef_UnmarshalLegacyObject(t *testing.T) {
	var r Ref
	raw := `{"primary":"#059669","secondary":"#10b981","accent":"#34d399","background":"#f0fdf4"}`
	if err := json.Unmarshal([]byte(raw), &r); err != nil {
		t.Fatal(err)
	}
	if r.Kind != RefKindLegacy {
		t.Fatalf("got kind %q", r.Kind)
	}
	if Resolve(r) != Forest {
		t.Fatalf("legacy verde debe resolver a forest")
	}
}

func TestRef_MarshalRoundtrip(t *testing.T) {
	b, err := json.Marshal(RefFromID(Fire))
	if err != nil {
		t.Fatal(err)
	}
	if string(b) != `"fire"` {
		t.Fatalf("got %s", b)
	}
}

func TestGenerateCSS_Contenido(t *testing.T) {
	css := GenerateCSS(Fire)

	for _, want := range []string{
		":root {",
		".dark {",
		"--sf-primary: #dc2626;",
		"--primary: var(--sf-primary);",
		"--sf-font-heading:",
	} {
		if !strings.Contains(css, want) {
			t.Fatalf("css sin %q:\n%s", want, css)
		}
	}
}

func TestGenerateCSS_Determinista(t *testing.T) {
	if GenerateCSS(Ocean) != GenerateCSS(Ocean) {
		t.Fatal("GenerateCSS no es determinista")
	}
	if GenerateCSS(Ocean) == GenerateCSS(Forest) {
		t.Fatal("presets distintos generaron el mismo css")
	}
}

func TestGenerateCSS_IDDesconocido(t *testing.T) {
	// Un ID inválido cae en el preset default en vez de emitir css vacío.
	if GenerateCSS(ID("neon")) != GenerateCSS(DefaultID) {
		t.Fatal("id desconocido no cayó al default")
	}
}

func TestIDs_Completo(t *testing.T) {
	ids := IDs()
	if len(ids) != 3 {
		t.Fatalf("got %v", ids)
	}
	for _, id := range ids {
		if _, ok := Get(id); !ok {
			t.Fatalf("preset %q sin definición", id)
		}
	}
}
