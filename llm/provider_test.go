package llm

import (
	"testing"
)

func TestRegistry_RegisterAndLookup(t *testing.T) {
	r := NewRegistry()
	p := &fakeProvider{}
	r.Register("acme", p)

	got, err := r.Lookup("acme")
	if err != nil {
		t.Fatalf("Lookup() error = %v", err)
	}
	if got != p {
		t.Error("Lookup() returned a different provider")
	}
}

func TestRegistry_LookupUnknown(t *testing.T) {
	r := NewRegistry()

	_, err := r.Lookup("nope")
	if KindOf(err) != KindProviderUnsupported {
		t.Errorf("Lookup() error kind = %q, want provider_unsupported", KindOf(err))
	}
}

func TestRegistry_RegisterDuplicatePanics(t *testing.T) {
	r := NewRegistry()
	r.Register("acme", &fakeProvider{})

	defer func() {
		if recover() == nil {
			t.Error("duplicate Register did not panic")
		}
	}()
	r.Register("acme", &fakeProvider{})
}

func TestRegistry_RegisterEmptyNamePanics(t *testing.T) {
	r := NewRegistry()

	defer func() {
		if recover() == nil {
			t.Error("empty-name Register did not panic")
		}
	}()
	r.Register("", &fakeProvider{})
}

func TestRegistry_NamesSorted(t *testing.T) {
	r := NewRegistry()
	r.Register("zephyr", &fakeProvider{})
	r.Register("acme", &fakeProvider{})
	r.Register("nimbus", &fakeProvider{})

	got := r.Names()
	want := []string{"acme", "nimbus", "zephyr"}
	if len(got) != len(want) {
		t.Fatalf("Names() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Names()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}
