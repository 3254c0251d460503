package ui

import (
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"github.com/ionutT77/PourPal/internal/models"
	chatsync "github.com/ionutT77/PourPal/internal/sync"
	"github.com/ionutT77/PourPal/internal/ws"
)

// chatScreen is the shared chrome for group and private chat: a transcript,
// an input line and a mode line showing how messages are arriving.
type chatScreen struct {
	layout   *tview.Flex
	view     *tview.TextView
	input    *tview.InputField
	modeLine *tview.TextView
}

func newChatScreen(title string) *chatScreen {
	view := tview.NewTextView()
	view.SetDynamicColors(true)
	view.SetBackgroundColor(ColorBg)
	view.SetTextColor(ColorFg)
	view.SetBorder(true)
	view.SetBorderColor(ColorBorder)
	view.SetTitle(title)
	view.SetTitleColor(ColorTitle)

	input := tview.NewInputField()
	input.SetLabel("> ")
	input.SetLabelColor(ColorAccent)
	input.SetBackgroundColor(ColorBg)
	input.SetFieldBackgroundColor(ColorField)
	input.SetFieldTextColor(ColorFg)

	modeLine := tview.NewTextView()
	modeLine.SetDynamicColors(true)
	modeLine.SetBackgroundColor(ColorBg)

	layout := tview.NewFlex().SetDirection(tview.FlexRow)
	layout.AddItem(view, 0, 1, false)
	layout.AddItem(modeLine, 1, 0, false)
	layout.AddItem(input, 1, 0, true)

	return &chatScreen{layout: layout, view: view, input: input, modeLine: modeLine}
}

func (cs *chatScreen) render(msgs []models.Message, selfID int) {
	var b strings.Builder
	for _, m := range msgs {
		color := "[#78c8ff]"
		if m.SenderID == selfID {
			color = "[#ffdc78]"
		}
		fmt.Fprintf(&b, "[#808080]%s[-] %s%s[-]: %s\n",
			m.Timestamp.Local().Format("15:04"),
			color, tview.Escape(m.SenderName), tview.Escape(m.Text))
	}
	cs.view.SetText(b.String())
	cs.view.ScrollToEnd()
}

func (cs *chatScreen) renderMode(s *chatsync.Synchronizer) {
	switch s.Status() {
	case chatsync.StatusLive:
		cs.modeLine.SetText("[#00ff80]● live[-]")
	case chatsync.StatusPolling:
		cs.modeLine.SetText("[#808080]● polling[-]")
	case chatsync.StatusDisconnected:
		cs.modeLine.SetText("[red]● disconnected — messages are no longer arriving[-]")
	default:
		cs.modeLine.SetText("[#808080]● idle[-]")
	}
}

// wireSend hooks the input line to the synchronizer. Sends run off the event
// loop; while one is in flight further ones are refused, and the input is
// only cleared once the backend accepted the message.
func (a *App) wireSend(cs *chatScreen, s *chatsync.Synchronizer) {
	cs.input.SetDoneFunc(func(key tcell.Key) {
		if key != tcell.KeyEnter {
			return
		}
		text := cs.input.GetText()
		go func() {
			err := s.Send(a.ctx, text)
			a.app.QueueUpdateDraw(func() {
				switch {
				case err == nil:
					cs.input.SetText("")
				case err == chatsync.ErrEmptyMessage:
					// Nothing to say, nothing to do.
				case err == chatsync.ErrSendInFlight:
					a.setStatus("Still sending the previous message")
				default:
					a.flashError(err)
				}
			})
		}()
	})
}

// showGroupChat opens the hangout's room. It prefers the live websocket and
// falls back to polling when the dial fails, so the room works either way.
func (a *App) showGroupChat(hangout models.Hangout) {
	cs := newChatScreen(fmt.Sprintf(" %s — group chat ", hangout.Title))

	a.show("group-chat", cs.layout)
	a.setStatus("Enter send · Ctrl-R reconnect · Esc back")
	cs.modeLine.SetText("[#808080]connecting...[-]")

	go func() {
		target := ws.GroupChatURL(a.cfg.WSBaseURL, hangout.ID)
		channel, dialErr := ws.Dial(a.ctx, target, a.api.CookieHeader(target))

		var transport chatsync.Transport
		if dialErr != nil {
			transport = chatsync.NewGroupPullTransport(a.api, hangout.ID)
		} else {
			transport = chatsync.NewPushTransport(a.api, channel, hangout.ID)
		}

		var s *chatsync.Synchronizer
		s = chatsync.NewSynchronizer(transport,
			chatsync.WithKind("group"),
			chatsync.WithInterval(a.cfg.ChatPollInterval),
			chatsync.WithOnUpdate(func() {
				a.app.QueueUpdateDraw(func() {
					cs.render(s.Messages(), a.selfID())
					cs.renderMode(s)
				})
			}),
		)

		loadErr := s.Load(a.ctx)
		s.Start(a.ctx)

		a.app.QueueUpdateDraw(func() {
			// The user may have navigated away while we were dialing.
			if name, _ := a.pages.GetFrontPage(); name != "group-chat" {
				s.Stop()
				return
			}
			a.holdResources(s.Stop)
			a.wireSend(cs, s)
			cs.input.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
				switch event.Key() {
				case tcell.KeyEscape:
					a.showHangoutDetail(hangout.ID)
					return nil
				case tcell.KeyCtrlR:
					// Manual reconnect; tears this screen down and redials.
					a.showGroupChat(hangout)
					return nil
				}
				return event
			})
			cs.render(s.Messages(), a.selfID())
			cs.renderMode(s)
			if loadErr != nil {
				a.flashError(loadErr)
			} else if dialErr != nil {
				a.setStatus("Live connection failed, polling instead · Enter send · Ctrl-R reconnect · Esc back")
			}
		})
	}()
}

// showPrivateChat opens a one-on-one conversation, always over polling.
func (a *App) showPrivateChat(peerID int, peerName string) {
	cs := newChatScreen(fmt.Sprintf(" %s ", peerName))

	var s *chatsync.Synchronizer
	s = chatsync.NewSynchronizer(chatsync.NewPrivateTransport(a.api, peerID),
		chatsync.WithKind("private"),
		chatsync.WithInterval(a.cfg.ChatPollInterval),
		chatsync.WithOnUpdate(func() {
			a.app.QueueUpdateDraw(func() {
				cs.render(s.Messages(), a.selfID())
				cs.renderMode(s)
			})
		}),
	)

	a.holdResources(s.Stop)
	a.wireSend(cs, s)
	cs.input.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		if event.Key() == tcell.KeyEscape {
			a.showInbox()
			return nil
		}
		return event
	})

	a.show("private-chat", cs.layout)
	a.setStatus("Enter send · Esc back to inbox")

	go func() {
		loadErr := s.Load(a.ctx)
		s.Start(a.ctx)
		a.app.QueueUpdateDraw(func() {
			cs.renderMode(s)
			if loadErr != nil {
				a.flashError(loadErr)
			}
		})
	}()
}
