package ui

import (
	"testing"
)

func TestInitTheme(t *testing.T) {
	orig := GetCurrentTheme()
	t.Cleanup(func() { SetCurrentTheme(orig) })

	InitTheme(true)
	if GetCurrentTheme().Name != "none" {
		t.Errorf("InitTheme(true) = %q, want none", GetCurrentTheme().Name)
	}

	t.Setenv("NO_COLOR", "1")
	InitTheme(false)
	if GetCurrentTheme().Name != "none" {
		t.Errorf("NO_COLOR should disable colors, got %q", GetCurrentTheme().Name)
	}
}

func TestSetTheme(t *testing.T) {
	orig := GetCurrentTheme()
	t.Cleanup(func() { SetCurrentTheme(orig) })

	for name, want := range map[string]string{"light": "light", "none": "none", "dark": "dark", "neon": "dark"} {
		SetTheme(name)
		if got := GetCurrentTheme().Name; got != want {
			t.Errorf("SetTheme(%q) -> %q, want %q", name, got, want)
		}
	}
}

func TestColorFunctions(t *testing.T) {
	orig := GetCurrentTheme()
	t.Cleanup(func() { SetCurrentTheme(orig) })

	SetCurrentTheme(NoColorTheme)
	for name, fn := range map[string]func() string{
		"ColorReset": ColorReset, "ColorRed": ColorRed, "ColorGreen": ColorGreen,
		"ColorYellow": ColorYellow, "ColorCyan": ColorCyan, "ColorGrey": ColorGrey,
		"ColorBold": ColorBold, "ColorUnderline": ColorUnderline,
	} {
		if got := fn(); got != "" {
			t.Errorf("%s() with no colors = %q, want empty", name, got)
		}
	}
	if got := LabelStyle().Render("Sum:"); got != "Sum:" {
		t.Errorf("LabelStyle without colors rendered %q", got)
	}

	SetCurrentTheme(DarkTheme)
	if ColorRed() != DarkTheme.Error || ColorReset() != "\033[0m" {
		t.Error("color functions should follow the active theme")
	}
}
