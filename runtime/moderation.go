package runtime

import (
	"chat-relay/moderation"
	"embed"
	"fmt"
	"log/slog"
	"strings"
)

//go:embed censored/*
var censoredFolder embed.FS

// PrepareModerator loads the embedded censored dictionaries and builds the
// Aho-Corasick automaton. Done once at startup, before any lock exists.
func PrepareModerator(log *slog.Logger, charReplacement rune) (moderation.Moderator, error) {
	loader := NewCensoredLoader(censoredFolder)
	data, err := loader.LoadAll("censored")
	if err != nil {
		return moderation.Moderator{}, err
	}

	log.Info(fmt.Sprintf("%d censored files loaded [%s]",
		len(data.Languages), strings.Join(data.Languages, ",")))
	log.Info(fmt.Sprintf("%d unique censored words loaded", len(data.Words)))

	return moderation.NewModerator(data.Words, charReplacement, log)
}
