package model

import "testing"

func TestTokenDeterministic(t *testing.T) {
	a := Token("BouncingBall")
	b := Token("BouncingBall")
	if a != b {
		t.Errorf("token must be deterministic: %s vs %s", a, b)
	}
	if len(a) != 32 {
		t.Errorf("expected 32 hex characters, got %d", len(a))
	}
	if Token("Decay") == a {
		t.Error("distinct model names must yield distinct tokens")
	}
}

func TestDescriptorVariableLookup(t *testing.T) {
	d := Descriptor{}
	if _, ok := d.Variable(1); ok {
		t.Error("empty descriptor must not resolve any reference")
	}
}
