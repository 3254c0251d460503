package ui

import (
	"fmt"
	"strconv"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"github.com/ionutT77/PourPal/internal/models"
)

const hangoutTimeLayout = "2006-01-02 15:04"

func (a *App) showHangouts() {
	a.showHangoutsFiltered(models.HangoutFilters{})
}

func (a *App) showHangoutsFiltered(filters models.HangoutFilters) {
	list := styledList(" Upcoming hangouts ")
	list.SetSecondaryTextColor(ColorMuted)

	var hangouts []models.Hangout
	list.SetSelectedFunc(func(index int, _, _ string, _ rune) {
		if index >= 0 && index < len(hangouts) {
			a.showHangoutDetail(hangouts[index].ID)
		}
	})

	list.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		switch event.Rune() {
		case 'c':
			a.showCreateHangout()
			return nil
		case 's':
			a.showHangoutFilters(filters)
			return nil
		case 'i':
			a.showInbox()
			return nil
		case 'f':
			a.showFriends()
			return nil
		case 'p':
			a.showProfile()
			return nil
		case 'm':
			a.showMyHangouts()
			return nil
		case 'r':
			a.showHangoutsFiltered(filters)
			return nil
		case 'L':
			a.logout()
			return nil
		case 'q':
			a.quit()
			return nil
		}
		return event
	})

	a.show("hangouts", list)
	a.setStatus("Enter open · c create · s search · m mine · i inbox · f friends · p profile · r refresh · L logout · q quit")

	go func() {
		fetched, err := a.api.ListHangouts(a.ctx, filters)
		a.app.QueueUpdateDraw(func() {
			if err != nil {
				a.flashError(err)
				return
			}
			hangouts = fetched
			list.Clear()
			if len(hangouts) == 0 {
				list.AddItem("No hangouts match", "Press c to create one", 0, nil)
				return
			}
			for _, h := range hangouts {
				secondary := fmt.Sprintf("%s · %s · %d/%d going",
					h.DateTime.Local().Format(hangoutTimeLayout),
					h.VenueLocation, len(h.Participants), h.MaxGroupSize)
				list.AddItem(h.Title, secondary, 0, nil)
			}
		})
	}()
}

func (a *App) showHangoutFilters(current models.HangoutFilters) {
	form := styledForm(" Search hangouts ")
	form.AddInputField("Location", current.Location, 40, nil, nil)
	form.AddInputField("After (YYYY-MM-DD)", "", 40, nil, nil)
	form.AddInputField("Before (YYYY-MM-DD)", "", 40, nil, nil)

	field := func(label string) string {
		return form.GetFormItemByLabel(label).(*tview.InputField).GetText()
	}
	parseDay := func(raw string) time.Time {
		if raw == "" {
			return time.Time{}
		}
		day, err := time.ParseInLocation("2006-01-02", raw, time.Local)
		if err != nil {
			return time.Time{}
		}
		return day
	}

	form.AddButton("Search", func() {
		a.showHangoutsFiltered(models.HangoutFilters{
			Location: field("Location"),
			After:    parseDay(field("After (YYYY-MM-DD)")),
			Before:   parseDay(field("Before (YYYY-MM-DD)")),
		})
	})
	form.AddButton("Clear", func() { a.showHangouts() })
	form.AddButton("Back", func() { a.showHangoutsFiltered(current) })

	a.show("hangout-filters", centered(form, 56, 11))
}

func (a *App) showCreateHangout() {
	form := styledForm(" New hangout ")
	form.AddInputField("Title", "", 40, nil, nil)
	form.AddInputField("Venue", "", 40, nil, nil)
	form.AddInputField("When (YYYY-MM-DD HH:MM)", "", 40, nil, nil)
	form.AddInputField("Max group size", "4", 6, nil, nil)
	form.AddInputField("Description", "", 40, nil, nil)

	field := func(label string) string {
		return form.GetFormItemByLabel(label).(*tview.InputField).GetText()
	}

	form.AddButton("Create", func() {
		when, err := time.ParseInLocation(hangoutTimeLayout, field("When (YYYY-MM-DD HH:MM)"), time.Local)
		if err != nil {
			a.setStatus("When must look like 2026-09-05 19:30")
			return
		}
		size, err := strconv.Atoi(field("Max group size"))
		if err != nil || size < 2 {
			a.setStatus("Max group size must be a number of at least 2")
			return
		}
		draft := models.HangoutDraft{
			Title:         field("Title"),
			VenueLocation: field("Venue"),
			DateTime:      when,
			MaxGroupSize:  size,
			Description:   field("Description"),
		}
		a.setStatus("Creating hangout...")
		go func() {
			created, err := a.api.CreateHangout(a.ctx, draft)
			a.app.QueueUpdateDraw(func() {
				if err != nil {
					a.flashError(err)
					return
				}
				a.showHangoutDetail(created.ID)
			})
		}()
	})
	form.AddButton("Back", a.showHangouts)

	a.show("hangout-create", centered(form, 60, 15))
}

func (a *App) showMyHangouts() {
	list := styledList(" My hangouts ")

	type row struct{ hangoutID int }
	var rows []row
	list.SetSelectedFunc(func(index int, _, _ string, _ rune) {
		if index >= 0 && index < len(rows) && rows[index].hangoutID != 0 {
			a.showHangoutDetail(rows[index].hangoutID)
		}
	})
	list.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		if event.Key() == tcell.KeyEscape {
			a.showHangouts()
			return nil
		}
		return event
	})

	a.show("my-hangouts", list)
	a.setStatus("Enter open · Esc back")

	go func() {
		mine, err := a.api.MyHangouts(a.ctx)
		a.app.QueueUpdateDraw(func() {
			if err != nil {
				a.flashError(err)
				return
			}
			list.Clear()
			rows = rows[:0]
			add := func(section string, hangouts []models.Hangout) {
				list.AddItem(fmt.Sprintf("[::b]%s[-:-:-]", section), "", 0, nil)
				rows = append(rows, row{})
				for _, h := range hangouts {
					list.AddItem("  "+h.Title, "  "+h.DateTime.Local().Format(hangoutTimeLayout), 0, nil)
					rows = append(rows, row{hangoutID: h.ID})
				}
			}
			add("Upcoming", mine.Upcoming)
			add("Past", mine.Past)
		})
	}()
}

func (a *App) showHangoutDetail(id int) {
	detail := tview.NewTextView()
	detail.SetDynamicColors(true)
	detail.SetBackgroundColor(ColorBg)
	detail.SetTextColor(ColorFg)
	detail.SetBorder(true)
	detail.SetBorderColor(ColorBorder)
	detail.SetTitle(" Hangout ")
	detail.SetTitleColor(ColorTitle)
	detail.SetText("Loading...")

	var hangout models.Hangout
	render := func() {
		joined := false
		for _, p := range hangout.Participants {
			if p.ID == a.selfID() {
				joined = true
				break
			}
		}
		text := fmt.Sprintf("[::b]%s[-:-:-]\n\n%s\n\nWhere: %s\nWhen:  %s\nGroup: %d of %d\n\nGoing:\n",
			tview.Escape(hangout.Title), tview.Escape(hangout.Description),
			tview.Escape(hangout.VenueLocation),
			hangout.DateTime.Local().Format(hangoutTimeLayout),
			len(hangout.Participants), hangout.MaxGroupSize)
		for _, p := range hangout.Participants {
			marker := "  "
			if p.ID == hangout.CreatorID {
				marker = "★ "
			}
			text += marker + tview.Escape(p.Username) + "\n"
		}
		detail.SetText(text)

		hints := "g chat · m memory photo · Esc back"
		if joined {
			hints = "l leave · " + hints
		} else {
			hints = "j join · " + hints
		}
		if hangout.CreatorID == a.selfID() {
			hints = "e end · " + hints
		}
		a.setStatus(hints)
	}

	reload := func() {
		go func() {
			fetched, err := a.api.GetHangout(a.ctx, id)
			a.app.QueueUpdateDraw(func() {
				if err != nil {
					a.flashError(err)
					return
				}
				hangout = fetched
				render()
			})
		}()
	}

	detail.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		if event.Key() == tcell.KeyEscape {
			a.showHangouts()
			return nil
		}
		switch event.Rune() {
		case 'j':
			go func() {
				updated, err := a.api.JoinHangout(a.ctx, id)
				a.app.QueueUpdateDraw(func() {
					if err != nil {
						a.flashError(err)
						return
					}
					hangout = updated
					render()
					a.setStatus("Joined %q", hangout.Title)
				})
			}()
			return nil
		case 'l':
			go func() {
				updated, err := a.api.LeaveHangout(a.ctx, id)
				a.app.QueueUpdateDraw(func() {
					if err != nil {
						a.flashError(err)
						return
					}
					hangout = updated
					render()
					a.setStatus("Left %q", hangout.Title)
				})
			}()
			return nil
		case 'e':
			if hangout.CreatorID != a.selfID() {
				a.setStatus("Only the creator can end a hangout")
				return nil
			}
			go func() {
				err := a.api.EndHangout(a.ctx, id)
				a.app.QueueUpdateDraw(func() {
					if err != nil {
						a.flashError(err)
						return
					}
					a.showHangouts()
				})
			}()
			return nil
		case 'g':
			a.showGroupChat(hangout)
			return nil
		case 'm':
			a.showMemoryUpload(hangout)
			return nil
		case 'r':
			reload()
			return nil
		}
		return event
	})

	a.show("hangout-detail", detail)
	reload()
}
