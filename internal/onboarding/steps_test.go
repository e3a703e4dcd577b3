package onboarding

import (
	"errors"
	"testing"
)

func TestDerive(t *testing.T) {
	full := &Profile{
		Name: "Ana", Email: "ana@example.com",
		IdentityVerified: true, HasDrivingLicense: true, HasInsurance: true,
	}

	cases := []struct {
		name string
		auth bool
		p    *Profile
		want Step
	}{
		{"sin autenticar", false, nil, StepMobile},
		{"sin autenticar con perfil", false, full, StepMobile},
		{"sin perfil", true, nil, StepProfile},
		{"sin nombre", true, &Profile{Email: "a@b.c"}, StepProfile},
		{"sin email", true, &Profile{Name: "Ana"}, StepProfile},
		{"sin identidad", true, &Profile{Name: "Ana", Email: "a@b.c"}, StepStripe},
		{"sin licencia", true, &Profile{Name: "Ana", Email: "a@b.c", IdentityVerified: true}, StepDrivingLicense},
		{"sin seguro", true, &Profile{Name: "Ana", Email: "a@b.c", IdentityVerified: true, HasDrivingLicense: true}, StepInsurance},
		{"completo", true, full, StepDone},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Derive(tc.auth, tc.p); got != tc.want {
				t.Fatalf("Derive(%v, %+v) = %q, want %q", tc.auth, tc.p, got, tc.want)
			}
		})
	}
}

func TestTransition_Adyacentes(t *testing.T) {
	for i := 0; i < len(order)-1; i++ {
		if err := Transition(order[i], order[i+1]); err != nil {
			t.Fatalf("avance %s -> %s rechazado: %v", order[i], order[i+1], err)
		}
		if err := Transition(order[i+1], order[i]); err != nil {
			t.Fatalf("retroceso %s -> %s rechazado: %v", order[i+1], order[i], err)
		}
	}
}

func TestTransition_Saltos(t *testing.T) {
	cases := [][2]Step{
		{StepMobile, StepProfile},       // salto de a dos
		{StepMobile, StepInsurance},     // salto largo
		{StepInsurance, StepMobile},     // retroceso largo
		{StepOTP, StepOTP},              // mismo paso
		{StepMobile, Step("teleport")},  // destino desconocido
		{Step("teleport"), StepProfile}, // origen desconocido
	}
	for _, tc := range cases {
		if err := Transition(tc[0], tc[1]); !errors.Is(err, ErrInvalidTransition) {
			t.Fatalf("Transition(%q, %q) = %v, want ErrInvalidTransition", tc[0], tc[1], err)
		}
	}
}

func TestNextPrev(t *testing.T) {
	if got := Next(StepMobile); got != StepOTP {
		t.Fatalf("Next(mobile) = %q", got)
	}
	if got := Next(StepInsurance); got != StepDone {
		t.Fatalf("Next(último) = %q, want done", got)
	}
	if got := Prev(StepOTP); got != StepMobile {
		t.Fatalf("Prev(otp) = %q", got)
	}
	if got := Prev(StepMobile); got != StepMobile {
		t.Fatalf("Prev(primero) = %q, want mobile", got)
	}
}

func TestValid(t *testing.T) {
	for _, s := range order {
		if !Valid(s) {
			t.Fatalf("paso %q debería ser válido", s)
		}
	}
	if Valid(Step("warp")) {
		t.Fatal("paso desconocido aceptado")
	}
}
