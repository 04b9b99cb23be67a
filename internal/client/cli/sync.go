package cli

import (
	"context"
	"fmt"
)

func (a *App) sync(ctx context.Context) {
	res, err := a.syncService.Sync(ctx)
	if err != nil {
		fmt.Println("Sync failed:", err.Error())
		if res != nil {
			for _, o := range res.Outcomes {
				if !o.Success {
					fmt.Printf("  %s [%d]: %s\n", o.Action, o.NoteKey, o.Err)
				}
			}
		}
		return
	}

	switch {
	case res.AlreadySyncing:
		fmt.Println("Already syncing.")
	case res.NoOp:
		fmt.Println("Nothing to sync.")
	default:
		ok, failed := 0, 0
		for _, o := range res.Outcomes {
			if o.Success {
				ok++
			} else {
				failed++
				fmt.Printf("  %s [%d]: %s\n", o.Action, o.NoteKey, o.Err)
			}
		}
		fmt.Printf("Sync finished: %d ok, %d failed.\n", ok, failed)
	}
}

func (a *App) status(ctx context.Context) {
	st, err := a.syncService.Status(ctx)
	if err != nil {
		fmt.Println(err.Error())
		return
	}

	state := "idle"
	if st.Syncing {
		state = "syncing"
	} else if st.Pending > 0 {
		state = "pending"
	}

	fmt.Printf("State: %s\n", state)
	fmt.Printf("Pending operations: %d\n", st.Pending)
	fmt.Printf("Unsynced notes: %d\n", st.Unsynced)
	if st.LastSync.IsZero() {
		fmt.Println("Last sync: never")
	} else {
		fmt.Printf("Last sync: %s\n", st.LastSync.Local().Format("2006-01-02 15:04:05"))
	}
}

func (a *App) token(ctx context.Context, args []string) {
	if len(args) == 0 {
		fmt.Println("Usage: token <value>")
		return
	}
	if err := a.tokens.Save(ctx, args[0]); err != nil {
		fmt.Println(err.Error())
		return
	}
	fmt.Println("Token saved.")
}
