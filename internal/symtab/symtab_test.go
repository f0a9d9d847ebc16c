// Tests for the symbol table.
package symtab

import (
	"context"
	"errors"
	"testing"

	"github.com/dukaforge/conductor/pkg/types"
)

// nopExecutor satisfies types.Executor for registration tests.
type nopExecutor struct{}

func (nopExecutor) Start(ctx context.Context) error { return nil }
func (nopExecutor) Submit(ctx context.Context, task types.Task) error { return nil }
func (nopExecutor) Drain(ctx context.Context) error { return nil }
func (nopExecutor) Stop(ctx context.Context) error { return nil }

func nopFactory() (types.Executor, error) {
	return nopExecutor{}, nil
}

func TestRegisterAndLoad(t *testing.T) {
	Register("test.symtab.RegisterAndLoad", nopFactory)

	factory, err := Load("test.symtab.RegisterAndLoad")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	executor, err := factory()
	if err != nil {
		t.Fatalf("factory failed: %v", err)
	}
	if executor == nil {
		t.Fatal("factory returned nil executor")
	}
}

func TestLoadNotFound(t *testing.T) {
	_, err := Load("test.symtab.NoSuchSymbol")
	if !errors.Is(err, ErrSymbolNotFound) {
		t.Fatalf("expected ErrSymbolNotFound, got %v", err)
	}
}

func TestLoadCompositeNotFound(t *testing.T) {
	_, err := LoadComposite("test.symtab.NoSuchComposite")
	if !errors.Is(err, ErrSymbolNotFound) {
		t.Fatalf("expected ErrSymbolNotFound, got %v", err)
	}
}

func TestLoadCompositeIsSeparateNamespace(t *testing.T) {
	Register("test.symtab.SeparateNamespace", nopFactory)

	// A plain factory must not be loadable as a composite.
	_, err := LoadComposite("test.symtab.SeparateNamespace")
	if !errors.Is(err, ErrSymbolNotFound) {
		t.Fatalf("expected ErrSymbolNotFound, got %v", err)
	}
}

func TestRegistered(t *testing.T) {
	if Registered("test.symtab.NotRegistered") {
		t.Error("Registered reported an unknown location")
	}
	Register("test.symtab.Registered", nopFactory)
	if !Registered("test.symtab.Registered") {
		t.Error("Registered missed a known location")
	}
}

func TestRegisterDuplicatePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic on duplicate registration")
		}
	}()
	Register("test.symtab.Duplicate", nopFactory)
	Register("test.symtab.Duplicate", nopFactory)
}

func TestRegisterNilPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic on nil factory")
		}
	}()
	Register("test.symtab.NilFactory", nil)
}
