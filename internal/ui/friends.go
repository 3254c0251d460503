package ui

import (
	"errors"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"github.com/ionutT77/PourPal/internal/friends"
	"github.com/ionutT77/PourPal/internal/models"
)

// showFriends is the social screen: current friends, incoming requests and
// a user search for sending new ones. Tab cycles between the panes.
func (a *App) showFriends() {
	friendsList := styledList(" Friends ")
	friendsList.ShowSecondaryText(false)

	pendingList := styledList(" Requests ")

	searchInput := tview.NewInputField()
	searchInput.SetLabel("Search: ")
	searchInput.SetLabelColor(ColorAccent)
	searchInput.SetBackgroundColor(ColorBg)
	searchInput.SetFieldBackgroundColor(ColorField)
	searchInput.SetFieldTextColor(ColorFg)

	resultsList := styledList(" People ")

	left := tview.NewFlex().SetDirection(tview.FlexRow)
	left.AddItem(friendsList, 0, 1, true)
	left.AddItem(pendingList, 0, 1, false)

	right := tview.NewFlex().SetDirection(tview.FlexRow)
	right.AddItem(searchInput, 1, 0, false)
	right.AddItem(resultsList, 0, 1, false)

	layout := tview.NewFlex()
	layout.AddItem(left, 0, 1, true)
	layout.AddItem(right, 0, 1, false)

	var (
		friendRows  []models.User
		pendingRows []pendingRow
		resultRows  []models.User
	)

	reloadFriends := func() {
		go func() {
			users, usersErr := a.api.ListFriends(a.ctx)
			pending, pendingErr := a.api.ListPending(a.ctx)
			a.app.QueueUpdateDraw(func() {
				if usersErr != nil {
					a.flashError(usersErr)
					return
				}
				if pendingErr != nil {
					a.flashError(pendingErr)
					return
				}
				friendRows = users
				friendsList.Clear()
				for _, u := range users {
					friendsList.AddItem(u.Username, "", 0, nil)
				}
				pendingRows = pendingRows[:0]
				pendingList.Clear()
				for _, req := range pending {
					pendingRows = append(pendingRows, pendingRow{from: req.From})
					pendingList.AddItem(req.From.Username, "wants to be friends", 0, nil)
				}
			})
		}()
	}

	focusOrder := []tview.Primitive{friendsList, pendingList, searchInput, resultsList}
	cycleFocus := func() {
		for i, p := range focusOrder {
			if p.HasFocus() {
				a.app.SetFocus(focusOrder[(i+1)%len(focusOrder)])
				return
			}
		}
		a.app.SetFocus(focusOrder[0])
	}

	layout.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		switch event.Key() {
		case tcell.KeyEscape:
			a.showHangouts()
			return nil
		case tcell.KeyTab:
			cycleFocus()
			return nil
		}
		return event
	})

	// Friends pane: Enter chats, d unfriends.
	friendsList.SetSelectedFunc(func(index int, _, _ string, _ rune) {
		if index >= 0 && index < len(friendRows) {
			u := friendRows[index]
			a.showPrivateChat(u.ID, u.Username)
		}
	})
	friendsList.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		if event.Rune() != 'd' {
			return event
		}
		index := friendsList.GetCurrentItem()
		if index < 0 || index >= len(friendRows) {
			return nil
		}
		u := friendRows[index]
		go func() {
			if _, err := a.tracker.Refresh(a.ctx, u.ID); err != nil {
				a.app.QueueUpdateDraw(func() { a.flashError(err) })
				return
			}
			err := a.tracker.Remove(a.ctx, u.ID)
			a.app.QueueUpdateDraw(func() {
				if err != nil {
					a.flashError(err)
					return
				}
				a.setStatus("Removed %s", u.Username)
				reloadFriends()
			})
		}()
		return nil
	})

	// Requests pane: Enter accepts, x rejects.
	decide := func(index int, accept bool) {
		if index < 0 || index >= len(pendingRows) {
			return
		}
		from := pendingRows[index].from
		go func() {
			if _, err := a.tracker.Refresh(a.ctx, from.ID); err != nil {
				a.app.QueueUpdateDraw(func() { a.flashError(err) })
				return
			}
			var err error
			if accept {
				err = a.tracker.Accept(a.ctx, from.ID)
			} else {
				err = a.tracker.Reject(a.ctx, from.ID)
			}
			a.app.QueueUpdateDraw(func() {
				if err != nil {
					a.flashError(err)
					return
				}
				if accept {
					a.setStatus("You and %s are now friends", from.Username)
				} else {
					a.setStatus("Declined %s", from.Username)
				}
				reloadFriends()
			})
		}()
	}
	pendingList.SetSelectedFunc(func(index int, _, _ string, _ rune) {
		decide(index, true)
	})
	pendingList.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		if event.Rune() == 'x' {
			decide(pendingList.GetCurrentItem(), false)
			return nil
		}
		return event
	})

	// Search pane.
	searchInput.SetDoneFunc(func(key tcell.Key) {
		if key != tcell.KeyEnter {
			return
		}
		query := searchInput.GetText()
		if query == "" {
			return
		}
		go func() {
			found, err := a.api.SearchUsers(a.ctx, query)
			a.app.QueueUpdateDraw(func() {
				if err != nil {
					a.flashError(err)
					return
				}
				resultRows = found
				resultsList.Clear()
				for _, u := range found {
					resultsList.AddItem(u.Username, u.FirstName, 0, nil)
				}
				if len(found) > 0 {
					a.app.SetFocus(resultsList)
				} else {
					a.setStatus("Nobody matches %q", query)
				}
			})
		}()
	})
	resultsList.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		if event.Rune() != 'v' {
			return event
		}
		index := resultsList.GetCurrentItem()
		if index >= 0 && index < len(resultRows) {
			a.showUserProfile(resultRows[index].ID)
		}
		return nil
	})
	resultsList.SetSelectedFunc(func(index int, _, _ string, _ rune) {
		if index < 0 || index >= len(resultRows) {
			return
		}
		u := resultRows[index]
		if u.ID == a.selfID() {
			a.setStatus("That's you")
			return
		}
		go func() {
			err := a.tracker.SendRequest(a.ctx, u.ID)
			a.app.QueueUpdateDraw(func() {
				var invalid *friends.ErrInvalidTransition
				switch {
				case err == nil:
					a.setStatus("Request sent to %s", u.Username)
				case errors.As(err, &invalid):
					a.setStatus("Cannot request %s: connection is already %s",
						u.Username, invalid.From)
				default:
					a.flashError(err)
				}
			})
		}()
	})

	a.show("friends", layout)
	a.setStatus("Tab switch pane · Enter chat/accept/request · v view · d unfriend · x decline · Esc back")
	reloadFriends()
}

// showUserProfile is a read-only card for someone found in search.
func (a *App) showUserProfile(userID int) {
	card := tview.NewTextView()
	card.SetDynamicColors(true)
	card.SetBackgroundColor(ColorBg)
	card.SetTextColor(ColorFg)
	card.SetBorder(true)
	card.SetBorderColor(ColorBorder)
	card.SetTitle(" Profile ")
	card.SetTitleColor(ColorTitle)
	card.SetText("Loading...")
	card.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		if event.Key() == tcell.KeyEscape {
			a.showFriends()
			return nil
		}
		return event
	})

	a.show("user-profile", centered(card, 56, 12))
	a.setStatus("Esc back")

	go func() {
		u, err := a.api.GetProfile(a.ctx, userID)
		conn, _ := a.tracker.Refresh(a.ctx, userID)
		a.app.QueueUpdateDraw(func() {
			if err != nil {
				a.flashError(err)
				return
			}
			text := "[::b]" + tview.Escape(u.Username) + "[-:-:-]\n\n" +
				tview.Escape(u.FirstName) + "\n\n" +
				tview.Escape(u.Profile.Bio) + "\n\n" +
				"Connection: " + string(conn.Status)
			card.SetText(text)
		})
	}()
}

type pendingRow struct {
	from models.User
}
