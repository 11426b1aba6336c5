package interrupt

import "testing"

func TestDispatchInvokesInstalledHandler(t *testing.T) {
	table := NewTable()
	called := false
	table.Install(IRQTimer, func(v Number) {
		called = true
		if v != IRQTimer {
			t.Fatalf("handler got vector %v, want %v", v, IRQTimer)
		}
	})
	table.Dispatch(IRQTimer)
	if !called {
		t.Fatal("expected handler to be invoked")
	}
}

func TestDispatchUnhandledVectorIsNoop(t *testing.T) {
	table := NewTable()
	table.Dispatch(DivideByZero) // must not panic
}

func TestExceptionNamesAreDistinct(t *testing.T) {
	seen := map[string]bool{}
	for v, name := range exceptionNames {
		if seen[name] {
			t.Fatalf("duplicate exception name %q for vector %v", name, v)
		}
		seen[name] = true
	}
}
