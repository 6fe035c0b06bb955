package moderation

import (
	"log/slog"
	"testing"

	"github.com/mama165/sdk-go/logs"
	"github.com/stretchr/testify/require"
)

const replacementChar = '*'

// TestModerator_Censor
// The dictionary uses specific words to avoid partial collisions (e.g., "he" inside "The")
func TestModerator_Censor(t *testing.T) {
	req := require.New(t)
	log := logs.GetLoggerFromLevel(slog.LevelDebug)
	dictionary := []string{"idiot", "moron", "scumbag"}
	mod, err := NewModerator(dictionary, replacementChar, log)
	req.NoError(err)

	tests := []struct {
		name     string
		input    string
		expected string
		words    []string
	}{
		{
			name:     "Simple word and space preservation",
			input:    "What an idiot move",
			expected: "What an ***** move",
			words:    []string{"idiot"},
		},
		{
			name:     "Multiple occurrences and preserved spacing",
			input:    "moron moron moron",
			expected: "***** ***** *****",
			words:    []string{"moron", "moron", "moron"},
		},
		{
			name: "Leet speak and internal punctuation",
			// i (index 8) . d . 1 . 0 . t (index 16) -> 9 characters
			input:    "You are i.d.1.0.t !",
			expected: "You are ********* !",
			words:    []string{"idiot"},
		},
		{
			name:     "Uppercase and extreme noise",
			input:    "M-O-R-O-N talks to an I.D.I.O.T",
			expected: "********* talks to an *********",
			words:    []string{"moron", "idiot"},
		},
		{
			name:     "Accents and special characters (UTF-8)",
			input:    "Un été avec un moron",
			expected: "Un été avec un *****",
			words:    []string{"moron"},
		},
		{
			name:     "Word adjacent to trailing punctuation",
			input:    "He is a scumbag!",
			expected: "He is a *******!",
			words:    []string{"scumbag"},
		},
		{
			name:     "Nothing to censor",
			input:    "Welcome to the general room",
			expected: "Welcome to the general room",
			words:    nil,
		},
		{
			name:     "Empty string",
			input:    "",
			expected: "",
			words:    nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			content, words := mod.Censor(tt.input)
			req.Equal(tt.expected, content, "test=%s,", tt.name)
			req.Equal(tt.words, words, "expected=%s,words=%s", tt.expected, words)
		})
	}
}

func TestModerator_EmptyDictionary_Is_PassThrough(t *testing.T) {
	req := require.New(t)
	log := logs.GetLoggerFromLevel(slog.LevelDebug)

	// Given no censored words at all
	mod, err := NewModerator(nil, replacementChar, log)
	req.NoError(err)

	// Then any input goes through untouched
	input := "idiot moron scumbag"
	content, words := mod.Censor(input)
	req.Equal(input, content)
	req.Nil(words)
}

func TestModerator_CornerCases(t *testing.T) {
	req := require.New(t)
	log := logs.GetLoggerFromLevel(slog.LevelDebug)

	// Given real noise and not Leet Speak associated
	dictionary := []string{"...", ",,,", "", "idiot"}

	mod, err := NewModerator(dictionary, replacementChar, log)
	req.NoError(err)

	// Then the sentence is censored
	input := "The idiot is gone"
	expected := "The ***** is gone"
	content, words := mod.Censor(input)
	req.Equal(expected, content)
	req.Equal([]string{"idiot"}, words)

	// Then real noise is uncensored
	input = "Hello ..."
	expected = "Hello ..."
	content, words = mod.Censor(input)
	req.Equal(expected, content)
	req.Nil(words)
}
