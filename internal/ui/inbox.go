package ui

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/ionutT77/PourPal/internal/models"
	chatsync "github.com/ionutT77/PourPal/internal/sync"
)

// showInbox lists private conversations with unread badges. The list refreshes
// on the inbox poll interval while the screen is open.
func (a *App) showInbox() {
	list := styledList(" Inbox ")

	var rows []models.ConversationSummary
	populate := func(summaries []models.ConversationSummary) {
		rows = summaries
		list.Clear()
		if len(rows) == 0 {
			list.AddItem("No conversations yet", "Message someone from the friends screen", 0, nil)
			return
		}
		for _, s := range rows {
			title := s.PeerName
			if s.UnreadCount > 0 {
				title = fmt.Sprintf("%s [#00ff80](%d new)[-]", s.PeerName, s.UnreadCount)
			}
			secondary := fmt.Sprintf("%s · %s",
				s.LastMessageTime.Local().Format("Jan 2 15:04"), s.LastMessage)
			list.AddItem(title, secondary, 0, nil)
		}
	}

	var inbox *chatsync.Inbox
	inbox = chatsync.NewInbox(a.api, a.cfg.InboxPollInterval, func() {
		a.app.QueueUpdateDraw(func() { populate(inbox.Summaries()) })
	})

	list.SetSelectedFunc(func(index int, _, _ string, _ rune) {
		if index < 0 || index >= len(rows) {
			return
		}
		peer := rows[index]
		go func() {
			// Opening marks the conversation read before the chat appears,
			// so the badge does not resurrect on the next poll.
			if err := inbox.Open(a.ctx, peer.PeerID); err != nil {
				a.app.QueueUpdateDraw(func() { a.flashError(err) })
				return
			}
			a.app.QueueUpdateDraw(func() {
				a.showPrivateChat(peer.PeerID, peer.PeerName)
			})
		}()
	})
	list.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		if event.Key() == tcell.KeyEscape {
			a.showHangouts()
			return nil
		}
		return event
	})

	a.show("inbox", list)
	a.setStatus("Enter open conversation · Esc back")
	a.holdResources(inbox.Stop)

	go func() {
		if err := inbox.Refresh(a.ctx); err != nil {
			a.app.QueueUpdateDraw(func() { a.flashError(err) })
		}
		inbox.Start(a.ctx)
	}()
}
