package ui

import (
	"os"
	"path/filepath"

	"github.com/rivo/tview"

	"github.com/ionutT77/PourPal/internal/models"
)

// showProfile edits the account: names and bio, a profile photo upload and
// the age-verification document upload.
func (a *App) showProfile() {
	current, ok := a.session.Current()
	if !ok {
		a.showWelcome()
		return
	}
	user := current.User

	form := styledForm(" Profile ")
	form.AddInputField("Username", user.Username, 40, nil, nil)
	form.AddInputField("First name", user.FirstName, 40, nil, nil)
	form.AddInputField("Bio", user.Profile.Bio, 40, nil, nil)
	form.AddInputField("Photo path", "", 40, nil, nil)
	form.AddInputField("Photo caption", "", 40, nil, nil)
	form.AddInputField("Verification document path", "", 40, nil, nil)
	form.AddDropDown("Document type", []string{
		string(models.DocumentID), string(models.DocumentPassport), string(models.DocumentLicense),
	}, 0, nil)

	field := func(label string) string {
		return form.GetFormItemByLabel(label).(*tview.InputField).GetText()
	}

	form.AddButton("Save", func() {
		patch := models.UserPatch{}
		if v := field("Username"); v != user.Username {
			patch.Username = &v
		}
		if v := field("First name"); v != user.FirstName {
			patch.FirstName = &v
		}
		if v := field("Bio"); v != user.Profile.Bio {
			patch.Bio = &v
		}
		if patch == (models.UserPatch{}) {
			a.setStatus("Nothing changed")
			return
		}
		a.setStatus("Saving...")
		go func() {
			updated, err := a.api.UpdateProfile(a.ctx, patch)
			a.app.QueueUpdateDraw(func() {
				if err != nil {
					a.flashError(err)
					return
				}
				if err := a.session.UpdateUser(patch); err != nil {
					a.flashError(err)
					return
				}
				user = updated
				a.setStatus("Profile saved")
			})
		}()
	})

	form.AddButton("Upload photo", func() {
		path := field("Photo path")
		caption := field("Photo caption")
		if path == "" {
			a.setStatus("Enter the path of an image to upload")
			return
		}
		a.setStatus("Uploading photo...")
		go func() {
			file, err := os.Open(path)
			if err != nil {
				a.app.QueueUpdateDraw(func() { a.flashError(err) })
				return
			}
			defer file.Close()
			stored, err := a.api.UploadProfilePhoto(a.ctx, file, filepath.Base(path), caption, 1)
			a.app.QueueUpdateDraw(func() {
				if err != nil {
					a.flashError(err)
					return
				}
				a.setStatus("Photo uploaded: %s", stored.URL)
			})
		}()
	})

	form.AddButton("Verify age", func() {
		path := field("Verification document path")
		if path == "" {
			a.setStatus("Enter the path of the document to upload")
			return
		}
		_, choice := form.GetFormItemByLabel("Document type").(*tview.DropDown).GetCurrentOption()
		a.setStatus("Uploading document...")
		go func() {
			file, err := os.Open(path)
			if err != nil {
				a.app.QueueUpdateDraw(func() { a.flashError(err) })
				return
			}
			defer file.Close()
			_, err = a.api.UploadVerificationDocument(a.ctx, file,
				filepath.Base(path), models.DocumentType(choice))
			a.app.QueueUpdateDraw(func() {
				if err != nil {
					a.flashError(err)
					return
				}
				a.setStatus("Document submitted for review")
			})
		}()
	})

	form.AddButton("Back", a.showHangouts)

	a.show("profile", centered(form, 64, 21))
	a.setStatus("Editing profile for %s", user.Email)
}

// showMemoryUpload posts a photo to a hangout's shared memory board.
func (a *App) showMemoryUpload(hangout models.Hangout) {
	form := styledForm(" Add a memory ")
	form.AddInputField("Photo path", "", 40, nil, nil)
	form.AddInputField("Caption", "", 40, nil, nil)

	field := func(label string) string {
		return form.GetFormItemByLabel(label).(*tview.InputField).GetText()
	}

	form.AddButton("Upload", func() {
		path := field("Photo path")
		caption := field("Caption")
		if path == "" {
			a.setStatus("Enter the path of an image to upload")
			return
		}
		a.setStatus("Uploading...")
		go func() {
			file, err := os.Open(path)
			if err != nil {
				a.app.QueueUpdateDraw(func() { a.flashError(err) })
				return
			}
			defer file.Close()
			_, err = a.api.UploadMemoryPhoto(a.ctx, hangout.ID, file, filepath.Base(path), caption)
			a.app.QueueUpdateDraw(func() {
				if err != nil {
					a.flashError(err)
					return
				}
				a.showHangoutDetail(hangout.ID)
			})
		}()
	})
	form.AddButton("Back", func() { a.showHangoutDetail(hangout.ID) })

	a.show("memory-upload", centered(form, 56, 9))
}
