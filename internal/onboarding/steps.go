// Package onboarding implementa el flujo de alta de renters: pasos en orden
// lineal fijo, tabla de transiciones explícita y derivación del paso
// pendiente a partir del estado del perfil.
package onboarding

import (
	"fmt"
)

// Step es un paso del flujo de onboarding.
type Step string

const (
	StepMobile         Step = "mobile"
	StepOTP            Step = "otp"
	StepProfile        Step = "profile"
	StepLoading        Step = "loading"
	StepStripe         Step = "stripe"
	StepDrivingLicense Step = "driving-license"
	StepInsurance      Step = "insurance"

	// StepDone señala flujo completo (equivale al null del API).
	StepDone Step = ""
)

// order es el orden lineal fijo del flujo.
var order = []Step{
	StepMobile,
	StepOTP,
	StepProfile,
	StepLoading,
	StepStripe,
	StepDrivingLicense,
	StepInsurance,
}

var orderIndex = func() map[Step]int {
	m := make(map[Step]int, len(order))
	for i, s := range order {
		m[s] = i
	}
	return m
}()

// Valid indica si el string es un paso conocido.
func Valid(s Step) bool {
	_, ok := orderIndex[s]
	return ok
}

// ErrInvalidTransition se devuelve cuando un set externo de paso intenta
// saltarse el orden. Las asignaciones arbitrarias no conviven con la
// derivación: o avanzás/retrocedés un paso, o el paso lo dicta el perfil.
var ErrInvalidTransition = fmt.Errorf("onboarding: transition not allowed")

// Transition valida un cambio de paso solicitado externamente.
// Sólo se permiten movimientos adyacentes (un paso adelante o atrás).
func Transition(from, to Step) error {
	fi, ok := orderIndex[from]
	if !ok {
		return fmt.Errorf("%w: unknown step %q", ErrInvalidTransition, from)
	}
	ti, ok := orderIndex[to]
	if !ok {
		return fmt.Errorf("%w: unknown step %q", ErrInvalidTransition, to)
	}
	if ti == fi+1 || ti == fi-1 {
		return nil
	}
	return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, from, to)
}

// Next devuelve el paso siguiente, o StepDone al final del flujo.
func Next(s Step) Step {
	i, ok := orderIndex[s]
	if !ok || i == len(order)-1 {
		return StepDone
	}
	return order[i+1]
}

// Prev devuelve el paso anterior, o el mismo paso si ya es el primero.
func Prev(s Step) Step {
	i, ok := orderIndex[s]
	if !ok || i == 0 {
		return order[0]
	}
	return order[i-1]
}

// Derive determina el próximo paso requerido según el estado actual.
//
// Es una tabla de decisión en orden de prioridad fijo: autenticación ->
// nombre/email -> verificación de identidad -> documento de licencia ->
// documento de seguro. StepDone significa flujo completo. Tras recargar el
// perfil (fetch async), este derivado es la fuente de verdad del paso.
func Derive(authenticated bool, p *Profile) Step {
	if !authenticated {
		return StepMobile
	}
	if p == nil || p.Name == "" || p.Email == "" {
		return StepProfile
	}
	if !p.IdentityVerified {
		return StepStripe
	}
	if !p.HasDrivingLicense {
		return StepDrivingLicense
	}
	if !p.HasInsurance {
		return StepInsurance
	}
	return StepDone
}
