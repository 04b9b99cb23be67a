package cli

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
)

func (a *App) edit(ctx context.Context, args []string) {
	key, ok := parseKey(args)
	if !ok {
		fmt.Println("Usage: edit <key>")
		return
	}
	current, err := a.noteService.Get(ctx, key)
	if err != nil {
		fmt.Println(err.Error())
		return
	}

	title, err := GetSimpleText(a.reader, fmt.Sprintf("Enter title [%s]:", current.Title), os.Stdout)
	if err != nil {
		fmt.Println(err.Error())
		return
	}
	if title == "" {
		title = current.Title
	}

	details, err := GetMultiline(a.reader, "Enter note details (empty keeps current):", os.Stdout)
	if err != nil {
		fmt.Println(err.Error())
		return
	}
	if details == "" {
		details = current.Details
	}

	picks := a.readPicks()

	var deleteMediaIDs []int64
	remoteIDs := make([]string, 0, len(current.Media))
	for _, m := range current.Media {
		if m.Remote {
			remoteIDs = append(remoteIDs, strconv.FormatInt(m.ID, 10))
		}
	}
	if len(remoteIDs) > 0 {
		line, err := GetSimpleText(a.reader,
			fmt.Sprintf("Remote media ids to delete (space-separated, available: %s):", strings.Join(remoteIDs, " ")),
			os.Stdout)
		if err != nil {
			fmt.Println(err.Error())
			return
		}
		for _, field := range strings.Fields(line) {
			id, err := strconv.ParseInt(field, 10, 64)
			if err != nil {
				fmt.Printf("skipping %q: not a media id\n", field)
				continue
			}
			deleteMediaIDs = append(deleteMediaIDs, id)
		}
	}

	note, err := a.noteService.Update(ctx, key, title, details, picks, deleteMediaIDs)
	if err != nil {
		fmt.Println(err.Error())
		return
	}

	fmt.Printf("Updated note [%d] (queued for sync)\n", note.Key())
}

func (a *App) delete(ctx context.Context, args []string) {
	key, ok := parseKey(args)
	if !ok {
		fmt.Println("Usage: delete <key>")
		return
	}
	if err := a.noteService.Delete(ctx, key); err != nil {
		fmt.Println(err.Error())
		return
	}
	fmt.Printf("Deleted note [%d] (queued for sync)\n", key)
}
