package avfilter

import (
	"testing"

	"github.com/matryer/is"
)

func dummyKind(name string) *FilterKind {
	return &FilterKind{Name: name}
}

func TestRegistryRegisterAndGetByName(t *testing.T) {
	is := is.New(t)
	r := NewRegistry()

	is.NoErr(r.Register(dummyKind("alpha")))
	is.NoErr(r.Register(dummyKind("beta")))

	is.Equal(r.GetByName("alpha").Name, "alpha")
	is.Equal(r.GetByName("beta").Name, "beta")
	is.True(r.GetByName("gamma") == nil)
}

func TestRegistryRejectsDuplicateName(t *testing.T) {
	is := is.New(t)
	r := NewRegistry()

	is.NoErr(r.Register(dummyKind("alpha")))
	err := r.Register(dummyKind("alpha"))
	is.True(err != nil)
	is.True(IsInvalidArgument(err))
}

func TestRegistryRejectsUnnamedKind(t *testing.T) {
	is := is.New(t)
	r := NewRegistry()

	err := r.Register(&FilterKind{})
	is.True(err != nil)
	is.True(IsInvalidArgument(err))
}

func TestRegistryIterNextWalksInsertionOrder(t *testing.T) {
	is := is.New(t)
	r := NewRegistry()
	is.NoErr(r.Register(dummyKind("alpha")))
	is.NoErr(r.Register(dummyKind("beta")))
	is.NoErr(r.Register(dummyKind("gamma")))

	name, ok := r.IterNext("")
	is.True(ok)
	is.Equal(name, "alpha")

	name, ok = r.IterNext(name)
	is.True(ok)
	is.Equal(name, "beta")

	name, ok = r.IterNext(name)
	is.True(ok)
	is.Equal(name, "gamma")

	_, ok = r.IterNext(name)
	is.True(!ok)
}

func TestRegistryCapacity(t *testing.T) {
	is := is.New(t)
	r := NewRegistry()
	for i := 0; i < registryCapacity; i++ {
		is.NoErr(r.Register(dummyKind(string(rune('a')) + itoa(i))))
	}
	err := r.Register(dummyKind("overflow"))
	is.True(err != nil)
	is.True(IsNoMemory(err))
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	digits := ""
	for n > 0 {
		digits = string(rune('0'+n%10)) + digits
		n /= 10
	}
	return digits
}

func TestRegistryResetAll(t *testing.T) {
	is := is.New(t)
	r := NewRegistry()
	is.NoErr(r.Register(dummyKind("alpha")))
	r.ResetAll()
	is.True(r.GetByName("alpha") == nil)
	_, ok := r.IterNext("")
	is.True(!ok)
}
