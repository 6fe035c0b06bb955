package runtime

import (
	"chat-relay/errors"
	"embed"
	"log/slog"
	"testing"

	"github.com/mama165/sdk-go/logs"
	"github.com/stretchr/testify/require"
)

//go:embed censored/*
var testCensoredFolder embed.FS

//go:embed testdata/empty
var emptyFolder embed.FS

func TestCensoredLoader_LoadAll(t *testing.T) {
	req := require.New(t)
	loader := NewCensoredLoader(testCensoredFolder)

	// When loading the embedded dictionaries
	data, err := loader.LoadAll("censored")
	req.NoError(err)

	// Then one language per .txt file is reported
	req.ElementsMatch([]string{"en", "fr"}, data.Languages)

	// Then words from both files are present, comment lines are not
	req.Contains(data.Words, "idiot")
	req.Contains(data.Words, "abruti")
	for _, w := range data.Words {
		req.NotContains(w, "#")
	}
}

func TestCensoredLoader_No_Usable_Words_Is_An_Error(t *testing.T) {
	req := require.New(t)

	// Given a dictionary holding only comment lines
	loader := NewCensoredLoader(emptyFolder)

	_, err := loader.LoadAll("testdata/empty")

	req.ErrorIs(err, errors.ErrEmptyWords)
}

func TestPrepareModerator_Censors_Embedded_Words(t *testing.T) {
	req := require.New(t)
	log := logs.GetLoggerFromLevel(slog.LevelError)

	mod, err := PrepareModerator(log, '*')
	req.NoError(err)

	// Then a word from the English dictionary is censored
	content, words := mod.Censor("what an idiot")
	req.Equal("what an *****", content)
	req.Equal([]string{"idiot"}, words)

	// Then a word from the French dictionary is censored too
	content, words = mod.Censor("quel abruti")
	req.Equal("quel ******", content)
	req.Equal([]string{"abruti"}, words)
}
