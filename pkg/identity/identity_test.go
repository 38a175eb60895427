package identity

import (
	"strings"
	"testing"

	"github.com/matzehuels/graphkit/pkg/errors"
)

func TestDenseRoundTrip(t *testing.T) {
	r := NewInt()
	ids := []int32{0, 5, -3, 1 << 30}
	for i, id := range ids {
		if err := r.Inject(id, i); err != nil {
			t.Fatalf("Inject(%d, %d): %v", id, i, err)
		}
	}
	if r.Len() != len(ids) {
		t.Errorf("Len() = %d, want %d", r.Len(), len(ids))
	}
	for i, id := range ids {
		got, err := r.TranslateIn(id)
		if err != nil || got != i {
			t.Errorf("TranslateIn(%d) = %d, %v; want %d", id, got, err, i)
		}
		if out := r.TranslateOut(i); out != id {
			t.Errorf("TranslateOut(%d) = %d, want %d", i, out, id)
		}
	}
}

func TestDenseErrors(t *testing.T) {
	r := NewLong()
	if err := r.Inject(10, 0); err != nil {
		t.Fatal(err)
	}

	if err := r.Inject(10, 1); !errors.Is(err, errors.ErrCodeInvalidArgument) {
		t.Errorf("duplicate Inject error = %v, want INVALID_ARGUMENT", err)
	}
	if err := r.Inject(11, 0); !errors.Is(err, errors.ErrCodeIndexOutOfBounds) {
		t.Errorf("Inject into live slot error = %v, want INDEX_OUT_OF_BOUNDS", err)
	}
	if _, err := r.TranslateIn(99); !errors.Is(err, errors.ErrCodeNoSuchElement) {
		t.Errorf("TranslateIn(missing) error = %v, want NO_SUCH_ELEMENT", err)
	}
}

func TestDenseRelease(t *testing.T) {
	r := NewInt()
	_ = r.Inject(3, 0)
	_ = r.Inject(4, 1)

	r.Release(0)
	r.Release(0) // no-op

	if r.Contains(3) {
		t.Error("Contains(3) = true after Release")
	}
	if r.Len() != 1 {
		t.Errorf("Len() = %d, want 1", r.Len())
	}
	if err := r.Inject(3, 0); err != nil {
		t.Errorf("re-Inject after Release: %v", err)
	}
	if r.Regime() != INT {
		t.Errorf("Regime() = %v, want INT", r.Regime())
	}
}

func TestRefCounting(t *testing.T) {
	r := NewRef[string]()
	if err := r.Inject("a", 0); err != nil {
		t.Fatal(err)
	}
	if n := r.RefCount("a"); n != 1 {
		t.Errorf("RefCount after Inject = %d, want 1", n)
	}

	r.IncRef("a")
	r.Release(0)

	if r.Contains("a") {
		t.Error("Contains(a) = true after Release")
	}
	if got := r.TranslateOut(0); got != "a" {
		t.Errorf("pinned TranslateOut(0) = %q, want %q", got, "a")
	}

	if n := r.DecRef("a"); n != 0 {
		t.Errorf("DecRef = %d, want 0", n)
	}
	if got := r.TranslateOut(0); got != "" {
		t.Errorf("TranslateOut(0) after last DecRef = %q, want empty", got)
	}
}

func TestRefReleaseWithoutPin(t *testing.T) {
	r := NewRef[any]()
	type handle struct{ name string }
	h := handle{"x"}
	_ = r.Inject(h, 2)

	idx, err := r.TranslateIn(handle{"x"})
	if err != nil || idx != 2 {
		t.Fatalf("TranslateIn = %d, %v; want 2", idx, err)
	}

	r.Release(2)
	if r.TranslateOut(2) != nil {
		t.Errorf("TranslateOut(2) = %v, want nil", r.TranslateOut(2))
	}
	if r.RefCount(h) != 0 {
		t.Errorf("RefCount = %d, want 0", r.RefCount(h))
	}
}

func TestRegimeString(t *testing.T) {
	tests := map[Regime]string{INT: "INT", LONG: "LONG", REF: "REF", Regime(9): "Regime(9)"}
	for r, want := range tests {
		if got := r.String(); got != want {
			t.Errorf("String() = %q, want %q", got, want)
		}
	}
}

func TestParseRegime(t *testing.T) {
	for _, r := range []Regime{INT, LONG, REF} {
		got, err := ParseRegime(strings.ToLower(r.String()))
		if err != nil || got != r {
			t.Errorf("ParseRegime(%q) = %v, %v", strings.ToLower(r.String()), got, err)
		}
	}
	if _, err := ParseRegime("uuid"); !errors.Is(err, errors.ErrCodeInvalidArgument) {
		t.Errorf("ParseRegime(uuid) err = %v", err)
	}
}
