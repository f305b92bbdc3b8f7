//go:build !ios && !android && (amd64 || arm64)

package platform

import (
	"runtime"
	"testing"
)

func TestIs64Bit(t *testing.T) {
	// We only support 64-bit platforms
	if !Is64Bit {
		t.Error("Platform should be 64-bit")
	}
}

func TestLibraryExtension(t *testing.T) {
	switch runtime.GOOS {
	case "darwin":
		if LibraryExtension != ".dylib" {
			t.Errorf("expected .dylib, got %s", LibraryExtension)
		}
	case "windows":
		if LibraryExtension != ".dll" {
			t.Errorf("expected .dll, got %s", LibraryExtension)
		}
	default:
		if LibraryExtension != ".so" {
			t.Errorf("expected .so, got %s", LibraryExtension)
		}
	}
}

func TestFormatLibraryName(t *testing.T) {
	tests := []struct {
		name string
		goos string
		want string
	}{
		{"XPLM", "linux", "XPLM_64.so"},
		{"XPWidgets", "linux", "XPWidgets_64.so"},
		{"XPLM", "darwin", "XPLM.framework/XPLM"},
		{"XPLM", "windows", "XPLM_64.dll"},
	}

	for _, tt := range tests {
		t.Run(tt.name+"_"+tt.goos, func(t *testing.T) {
			if runtime.GOOS != tt.goos {
				t.Skipf("test only applies to %s", tt.goos)
			}
			got := FormatLibraryName(tt.name)
			if got != tt.want {
				t.Errorf("FormatLibraryName(%q) = %q, want %q", tt.name, got, tt.want)
			}
		})
	}
}
