package ui

import (
	"github.com/rivo/tview"

	"github.com/ionutT77/PourPal/internal/api"
)

func (a *App) showWelcome() {
	menu := styledList(" PourPal ")
	menu.ShowSecondaryText(false)
	menu.AddItem("Login", "", 'l', a.showLogin)
	menu.AddItem("Register", "", 'r', a.showRegister)
	menu.AddItem("Quit", "", 'q', a.quit)

	a.show("welcome", centered(menu, 40, 9))
	a.setStatus("Welcome to PourPal. Pick an option.")
}

func (a *App) showLogin() {
	form := styledForm(" Login ")
	form.AddInputField("Email", "", 40, nil, nil)
	form.AddPasswordField("Password", "", 40, '*', nil)

	form.AddButton("Login", func() {
		email := form.GetFormItemByLabel("Email").(*tview.InputField).GetText()
		password := form.GetFormItemByLabel("Password").(*tview.InputField).GetText()
		if email == "" || password == "" {
			a.setStatus("Email and password are required")
			return
		}
		a.setStatus("Logging in...")
		go func() {
			user, err := a.api.Login(a.ctx, email, password)
			a.app.QueueUpdateDraw(func() {
				if err != nil {
					a.flashError(err)
					return
				}
				if err := a.session.Login(user); err != nil {
					a.flashError(err)
					return
				}
				a.showHangouts()
			})
		}()
	})
	form.AddButton("Back", a.showWelcome)

	a.show("login", centered(form, 56, 11))
}

func (a *App) showRegister() {
	form := styledForm(" Register ")
	form.AddInputField("Email", "", 40, nil, nil)
	form.AddInputField("Username", "", 40, nil, nil)
	form.AddInputField("First name", "", 40, nil, nil)
	form.AddPasswordField("Password", "", 40, '*', nil)
	form.AddPasswordField("Confirm password", "", 40, '*', nil)
	form.AddCheckbox("I am 18 or older", false, nil)

	field := func(label string) string {
		return form.GetFormItemByLabel(label).(*tview.InputField).GetText()
	}

	form.AddButton("Register", func() {
		reg := api.Registration{
			Email:           field("Email"),
			Username:        field("Username"),
			FirstName:       field("First name"),
			Password:        field("Password"),
			PasswordConfirm: field("Confirm password"),
			Is18Plus:        form.GetFormItemByLabel("I am 18 or older").(*tview.Checkbox).IsChecked(),
		}
		if !reg.Is18Plus {
			a.setStatus("PourPal is 18+ only")
			return
		}
		a.setStatus("Creating account...")
		go func() {
			user, err := a.api.Register(a.ctx, reg)
			a.app.QueueUpdateDraw(func() {
				if err != nil {
					a.flashError(err)
					return
				}
				if err := a.session.Login(user); err != nil {
					a.flashError(err)
					return
				}
				a.showHangouts()
			})
		}()
	})
	form.AddButton("Back", a.showWelcome)

	a.show("register", centered(form, 56, 17))
}

// logout drops the server session best-effort, then clears the local one.
func (a *App) logout() {
	a.setStatus("Logging out...")
	go func() {
		_ = a.api.Logout(a.ctx)
		a.app.QueueUpdateDraw(func() {
			if err := a.session.Logout(); err != nil {
				a.flashError(err)
			}
			a.showWelcome()
		})
	}()
}
