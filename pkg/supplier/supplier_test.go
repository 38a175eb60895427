package supplier

import (
	"testing"

	"github.com/google/uuid"
)

func TestInt(t *testing.T) {
	s := NewInt[int64](5)
	for _, want := range []int64{5, 6, 7} {
		if got := s.Next(); got != want {
			t.Errorf("Next() = %d, want %d", got, want)
		}
	}
	if s.Peek() != 8 {
		t.Errorf("Peek() = %d, want 8", s.Peek())
	}
}

func TestString(t *testing.T) {
	s := NewString("v", 0)
	for _, want := range []string{"v0", "v1", "v2"} {
		if got := s.Next(); got != want {
			t.Errorf("Next() = %q, want %q", got, want)
		}
	}
}

func TestUUID(t *testing.T) {
	s := NewUUID()
	a, b := s.Next(), s.Next()
	if a == b {
		t.Errorf("UUID supplier repeated %q", a)
	}
	if _, err := uuid.Parse(a); err != nil {
		t.Errorf("uuid.Parse(%q): %v", a, err)
	}
}

func TestAnyAndFunc(t *testing.T) {
	n := 0
	f := Func[int](func() int { n++; return n * 10 })
	s := Any[int](f)
	if got := s.Next(); got != 10 {
		t.Errorf("Next() = %v, want 10", got)
	}
}
