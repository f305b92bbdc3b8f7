//go:build !ios && !android && (amd64 || arm64)

package shim

import (
	"errors"
	"testing"
)

func TestRegisterDataAccessorWithoutSymbol(t *testing.T) {
	_, err := RegisterDataAccessor(0, "xpgo/test", 1, true, Accessors{}, 1, 1)
	if !errors.Is(err, ErrNoSymbol) {
		t.Fatalf("expected ErrNoSymbol, got %v", err)
	}
}

func TestRegisterDataAccessorRejectsNul(t *testing.T) {
	_, err := RegisterDataAccessor(1, "xpgo/\x00bad", 1, true, Accessors{}, 1, 1)
	if err == nil {
		t.Fatal("expected error for embedded NUL")
	}
}

func TestAccessorSlots(t *testing.T) {
	var a Accessors
	if len(a) != 12 {
		t.Errorf("expected 12 accessor slots, got %d", len(a))
	}
	if GetInt != 0 || SetBytes != 11 {
		t.Errorf("slot order changed: GetInt=%d SetBytes=%d", GetInt, SetBytes)
	}
}
