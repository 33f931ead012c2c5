package shadergen

import (
	"testing"

	"github.com/soypat/geometry/ms3"
)

func TestAppendFloat(t *testing.T) {
	for _, tc := range []struct {
		v    float32
		want string
	}{
		{0, "0.0"},
		{1, "1.0"},
		{-2, "-2.0"},
		{0.5, "0.5"},
		{100, "100.0"},
	} {
		if got := FloatLiteral(tc.v); got != tc.want {
			t.Errorf("FloatLiteral(%g) = %q, want %q", tc.v, got, tc.want)
		}
	}
	if got := Vec3Literal(ms3.Vec{X: 1, Y: 0.5, Z: -1}); got != "vec3(1.0, 0.5, -1.0)" {
		t.Errorf("Vec3Literal: got %q", got)
	}
	if got := Vec4Literal(1, 1, 1, 1); got != "vec4(1.0, 1.0, 1.0, 1.0)" {
		t.Errorf("Vec4Literal: got %q", got)
	}
}

func TestRefersTo(t *testing.T) {
	for _, tc := range []struct {
		body, name string
		want       bool
	}{
		{"(_toLight0 + _ecPos)", "_ecPos", true},
		{"(_toLight0 + _ecPos)", "_toLight0", true},
		{"(_toLight01 + x)", "_toLight0", false},
		{"normalize(_ecNormal)", "_ecNorm", false},
		{"_a", "_a", true},
		{"a_a", "_a", false},
		{"", "_a", false},
		{"(_a)", "", false},
	} {
		if got := refersTo(tc.body, tc.name); got != tc.want {
			t.Errorf("refersTo(%q, %q) = %v, want %v", tc.body, tc.name, got, tc.want)
		}
	}
}

func TestTempTableOrdered(t *testing.T) {
	var tbl tempTable
	tbl.add("_c", TempInfo{Type: Float, Body: "(_a + _b)"})
	tbl.add("_a", TempInfo{Type: Float, Body: "1.0"})
	tbl.add("_b", TempInfo{Type: Float, Body: "(_a * 2.0)"})
	got := tbl.ordered()
	want := []string{"_a", "_b", "_c"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("ordered() = %v, want %v", got, want)
		}
	}
	// Independent temporaries keep registration order.
	tbl.reset()
	tbl.add("_z", TempInfo{Type: Float, Body: "1.0"})
	tbl.add("_y", TempInfo{Type: Float, Body: "2.0"})
	got = tbl.ordered()
	if got[0] != "_z" || got[1] != "_y" {
		t.Errorf("independent temps reordered: %v", got)
	}
	// A reference cycle is a caller bug but must still terminate.
	tbl.reset()
	tbl.add("_p", TempInfo{Type: Float, Body: "_q"})
	tbl.add("_q", TempInfo{Type: Float, Body: "_p"})
	if got = tbl.ordered(); len(got) != 2 {
		t.Errorf("cycle fallback lost entries: %v", got)
	}
}

func TestTempTableConflict(t *testing.T) {
	var tbl tempTable
	tbl.add("_t", TempInfo{Type: Float, Body: "1.0"})
	tbl.add("_t", TempInfo{Type: Float, Body: "1.0"}) // Identical is a no-op.
	if len(tbl.order) != 1 {
		t.Fatalf("idempotent re-add grew table: %v", tbl.order)
	}
	defer func() {
		if recover() == nil {
			t.Error("conflicting body must panic")
		}
	}()
	tbl.add("_t", TempInfo{Type: Float, Body: "2.0"})
}
