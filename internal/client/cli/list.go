package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/dmitrijs2005/noteeasy/internal/client/models"
)

func parseKey(args []string) (int64, bool) {
	if len(args) == 0 {
		return 0, false
	}
	key, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return 0, false
	}
	return key, true
}

func printNote(n *models.Note) {
	state := "synced"
	if !n.Synced {
		state = "unsynced"
	}
	fmt.Printf("[%d] %s (%s, %s)\n", n.Key(), n.Title, state, n.CreatedAt.Format("2006-01-02 15:04"))
	if n.Details != "" {
		fmt.Println(n.Details)
	}
	for _, m := range n.Media {
		where := "local"
		if m.Remote {
			where = "remote"
		}
		fmt.Printf("  - %s %s (%s, %d bytes, id=%d)\n", m.Type, m.FileName, where, m.Size, m.ID)
	}
}

func (a *App) list(ctx context.Context) {
	list, err := a.noteService.List(ctx)
	if err != nil {
		fmt.Println(err.Error())
		return
	}
	if len(list) == 0 {
		fmt.Println("No notes yet.")
		return
	}
	for i := range list {
		n := &list[i]
		state := " "
		if !n.Synced {
			state = "*"
		}
		fmt.Printf("%s [%d] %s\n", state, n.Key(), n.Title)
	}
}

func (a *App) show(ctx context.Context, args []string) {
	key, ok := parseKey(args)
	if !ok {
		fmt.Println("Usage: show <key>")
		return
	}
	note, err := a.noteService.Get(ctx, key)
	if err != nil {
		fmt.Println(err.Error())
		return
	}
	printNote(note)
}

func (a *App) fetch(ctx context.Context, args []string) {
	key, ok := parseKey(args)
	if !ok {
		fmt.Println("Usage: fetch <key>")
		return
	}
	note, err := a.noteService.Fetch(ctx, key)
	if err != nil {
		fmt.Println(err.Error())
		return
	}
	printNote(note)
}
