package domain

import "regexp"

// AnonymousCPF is the well-known value representing a guest customer. It is
// accepted as-is, bypassing the check-digit validation.
const AnonymousCPF = "000.000.000-00"

var cpfPattern = regexp.MustCompile(`^\d{3}\.\d{3}\.\d{3}-\d{2}$|^\d{11}$`)

// CPF holds a validated national customer id in digits-only form.
type CPF struct {
	value string
}

// NewCPF validates and canonicalizes a CPF. It accepts the formatted
// (000.000.000-00) and the bare 11-digit forms, fails with Empty for a blank
// value and with Invalid when the format or the check digits are wrong.
func NewCPF(codigo string) (CPF, error) {
	if codigo == "" {
		return CPF{}, ErrEmpty
	}
	if codigo == AnonymousCPF {
		return CPF{value: "00000000000"}, nil
	}
	if !cpfPattern.MatchString(codigo) {
		return CPF{}, Invalid("CPF")
	}
	digits := keepOnlyNumbers(codigo)
	if !validCheckDigits(digits) {
		return CPF{}, Invalid("CPF")
	}
	return CPF{value: digits}, nil
}

func keepOnlyNumbers(codigo string) string {
	out := make([]byte, 0, 11)
	for i := 0; i < len(codigo); i++ {
		if codigo[i] >= '0' && codigo[i] <= '9' {
			out = append(out, codigo[i])
		}
	}
	return string(out)
}

// validCheckDigits runs the standard CPF verification: two check digits
// computed from weighted sums of the preceding digits, modulo 11.
func validCheckDigits(digits string) bool {
	d := make([]int, 11)
	for i := 0; i < 11; i++ {
		d[i] = int(digits[i] - '0')
	}

	sum := 0
	for i := 0; i < 9; i++ {
		sum += d[i] * (10 - i)
	}
	dv1 := sum % 11
	if dv1 < 2 {
		dv1 = 0
	} else {
		dv1 = 11 - dv1
	}

	sum = 0
	for i := 0; i < 10; i++ {
		sum += d[i] * (11 - i)
	}
	dv2 := sum % 11
	if dv2 < 2 {
		dv2 = 0
	} else {
		dv2 = 11 - dv2
	}

	return dv1 == d[9] && dv2 == d[10]
}

// String returns the digits-only canonical form.
func (c CPF) String() string {
	return c.value
}

// IsAnonymous reports whether the CPF is the guest sentinel.
func (c CPF) IsAnonymous() bool {
	return c.value == "00000000000"
}

// MarshalText serializes the canonical form; with encoding/json this keeps
// the cliente field a plain string on the wire.
func (c CPF) MarshalText() ([]byte, error) {
	return []byte(c.value), nil
}

// UnmarshalText re-validates, so a CPF decoded from a request or a stored row
// carries the same guarantees as one built through NewCPF.
func (c *CPF) UnmarshalText(text []byte) error {
	parsed, err := NewCPF(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}
