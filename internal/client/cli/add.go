package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/dmitrijs2005/noteeasy/internal/client/models"
	"github.com/dmitrijs2005/noteeasy/internal/client/services"
)

var videoExtensions = map[string]struct{}{
	".mp4": {}, ".mov": {}, ".avi": {}, ".mkv": {}, ".webm": {},
}

func pickFromPath(path string) services.MediaPick {
	t := models.MediaTypeImage
	if _, ok := videoExtensions[strings.ToLower(filepath.Ext(path))]; ok {
		t = models.MediaTypeVideo
	}
	return services.MediaPick{URI: path, Type: t}
}

// readPicks collects attachment paths, one per line, skipping unreadable ones.
func (a *App) readPicks() []services.MediaPick {
	lines, err := GetLines(a.reader, "Attachment file paths:", os.Stdout)
	if err != nil {
		fmt.Println(err.Error())
		return nil
	}
	picks := make([]services.MediaPick, 0, len(lines))
	for _, line := range lines {
		if _, err := os.Stat(line); err != nil {
			fmt.Printf("skipping %s: %v\n", line, err)
			continue
		}
		picks = append(picks, pickFromPath(line))
	}
	return picks
}

func (a *App) add(ctx context.Context) {
	title, err := GetSimpleText(a.reader, "Enter title:", os.Stdout)
	if err != nil {
		fmt.Println(err.Error())
		return
	}
	if title == "" {
		fmt.Println("Title must not be empty.")
		return
	}

	details, err := GetMultiline(a.reader, "Enter note details:", os.Stdout)
	if err != nil {
		fmt.Println(err.Error())
		return
	}

	picks := a.readPicks()

	note, err := a.noteService.Create(ctx, title, details, picks)
	if err != nil {
		fmt.Println(err.Error())
		return
	}

	fmt.Printf("Created note [%d] (queued for sync)\n", note.Key())
}
