// Copyright (c) 2025 Arc Engineering
// SPDX-License-Identifier: MIT

package planner

import (
	"strings"
	"testing"
)

func TestEstimateDifficultyEmpty(t *testing.T) {
	if got := EstimateDifficulty("", nil); got != 0.0 {
		t.Fatalf("EstimateDifficulty(\"\") = %v, want 0.0", got)
	}
	if got := EstimateDifficulty("   \n\t ", nil); got != 0.0 {
		t.Fatalf("whitespace-only text scored %v, want 0.0", got)
	}
	if got := EstimateDifficulty("... !!! ???", nil); got != 0.0 {
		t.Fatalf("punctuation-only text scored %v, want 0.0", got)
	}
}

func TestEstimateDifficultyBounds(t *testing.T) {
	texts := []string{
		"Cat sat. Dog ran.",
		"The epistemological ramifications of transcendental phenomenology remain contested.",
		strings.Repeat("word ", 500),
		"Uma frase em português com acentuação e cedilha, çãõé.",
	}
	for _, text := range texts {
		got := EstimateDifficulty(text, nil)
		if got < 0.0 || got > 1.0 {
			t.Fatalf("EstimateDifficulty(%.30q...) = %v, out of [0,1]", text, got)
		}
	}
}

func TestEstimateDifficultyOrdering(t *testing.T) {
	simple := EstimateDifficulty("The cat sat. The cat ran. The cat sat.", nil)
	dense := EstimateDifficulty(
		"Transcendental phenomenology interrogates intentionality, intersubjectivity, "+
			"and the constitutive horizons of consciousness without punctuation pauses "+
			"across an unusually protracted sentence structure", nil)
	if simple >= dense {
		t.Fatalf("simple text scored %v, dense text %v; want simple < dense", simple, dense)
	}
}

func TestEstimateDifficultyMultiplier(t *testing.T) {
	text := "Hermeneutic circularity complicates interpretive methodology considerably."
	base := EstimateDifficulty(text, nil)
	scaled := EstimateDifficulty(text, map[string]any{"difficulty_multiplier": 0.7})
	if scaled >= base {
		t.Fatalf("multiplier 0.7 gave %v, base %v; want scaled < base", scaled, base)
	}
	boosted := EstimateDifficulty(text, map[string]any{"difficulty_multiplier": 1.4})
	if boosted < base {
		t.Fatalf("multiplier 1.4 gave %v, base %v; want boosted >= base", boosted, base)
	}
	if boosted > 1.0 {
		t.Fatalf("boosted score %v escaped the [0,1] clamp", boosted)
	}
}
