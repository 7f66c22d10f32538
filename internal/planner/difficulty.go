// Copyright (c) 2025 Arc Engineering
// SPDX-License-Identifier: MIT

package planner

import (
	"math"
	"regexp"
	"strings"
)

var (
	wordRe     = regexp.MustCompile(`[\p{L}\p{N}_]+`)
	sentenceRe = regexp.MustCompile(`[.!?]+`)
)

// Lexical score weights. avg word length is normalized against 10 characters,
// words-per-sentence against 40.
const (
	wordLengthWeight  = 0.45
	uniqueRatioWeight = 0.25
	sentenceLenWeight = 0.30
)

// EstimateDifficulty computes a [0,1] lexical difficulty score for a chunk of
// text, scaled by the learned difficulty_multiplier carried in userHistory.
// Empty or untokenizable text scores 0.0.
func EstimateDifficulty(text string, userHistory map[string]any) float64 {
	if strings.TrimSpace(text) == "" {
		return 0.0
	}

	words := wordRe.FindAllString(text, -1)
	if len(words) == 0 {
		return 0.0
	}

	totalLen := 0
	unique := make(map[string]struct{}, len(words))
	for _, w := range words {
		totalLen += len([]rune(w))
		unique[strings.ToLower(w)] = struct{}{}
	}
	avgWordLen := float64(totalLen) / float64(len(words))
	uniqueRatio := float64(len(unique)) / float64(len(words))

	sentences := len(sentenceRe.FindAllString(text, -1))
	if sentences < 1 {
		sentences = 1
	}
	wordsPerSentence := float64(len(words)) / float64(sentences)

	lexical := wordLengthWeight*(avgWordLen/10.0) +
		uniqueRatioWeight*uniqueRatio +
		sentenceLenWeight*(wordsPerSentence/40.0)
	if lexical > 1.0 {
		lexical = 1.0
	}

	factor := floatPref(userHistory, "difficulty_multiplier", 1.0)
	score := lexical * factor
	if score < 0.0 {
		score = 0.0
	}
	if score > 1.0 {
		score = 1.0
	}
	return math.Round(score*10000) / 10000
}
