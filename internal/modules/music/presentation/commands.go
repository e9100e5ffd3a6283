package presentation

import "github.com/soracane/playme/internal/bot"

// Commands returns the command metadata for the music module.
func Commands() []bot.Command {
	return []bot.Command{
		{
			Name:        "playme",
			Usage:       "/playme <url>",
			Description: "Add a track to the queue and start playing",
		},
		{
			Name:        "stop",
			Usage:       "/stop",
			Description: "Stop playback and clear the queue",
		},
		{
			Name:        "leave",
			Usage:       "/leave",
			Description: "Disconnect from the voice channel",
		},
	}
}
