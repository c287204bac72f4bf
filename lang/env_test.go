package lang

import (
	"slices"
	"testing"
)

func TestEnv_Order(t *testing.T) {
	var env Env

	env.Set("b", 1)
	env.Set("a", 2)
	env.Set("b", 3)

	if got := env.Names(); !slices.Equal(got, []string{"b", "a"}) {
		t.Errorf("Names() = %v", got)
	}

	if v, ok := env.Get("b"); !ok || v != 3 {
		t.Errorf("Get(b) = %v, %v", v, ok)
	}

	var seen []float64
	for _, v := range env.All() {
		seen = append(seen, v)
	}

	if !slices.Equal(seen, []float64{3, 2}) {
		t.Errorf("All() values = %v", seen)
	}
}

func TestEnv_CaseSensitive(t *testing.T) {
	env := NewEnv()
	env.Set("Tax", 1)

	if _, ok := env.Get("tax"); ok {
		t.Error("lookup ignored case")
	}
}

func TestEnv_Clone(t *testing.T) {
	env := NewEnv()
	env.Set("x", 1)

	c := env.Clone()
	c.Set("x", 2)
	c.Set("y", 3)

	if v, _ := env.Get("x"); v != 1 || env.Len() != 1 {
		t.Errorf("clone shares state: x = %v, len %d", v, env.Len())
	}

	if c.Len() != 2 {
		t.Errorf("clone len = %d", c.Len())
	}
}

func TestEnv_Nil(t *testing.T) {
	var env *Env

	if _, ok := env.Get("x"); ok {
		t.Error("nil env found a name")
	}

	if env.Len() != 0 || env.Names() != nil || env.Clone().Len() != 0 {
		t.Error("nil env is not empty")
	}
}
