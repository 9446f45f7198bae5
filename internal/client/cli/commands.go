package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/diarykeeper/internal/client/models"
	"github.com/dmitrijs2005/diarykeeper/internal/common"
)

// defaultHeatmapDays is the window shown by a bare "heatmap".
const defaultHeatmapDays = 365

// clearValue typed at an edit prompt removes the mood or the tags.
const clearValue = "-"

var errUsageID = errors.New("usage: <command> <id>")

func (a *App) Login(ctx context.Context) error {
	account, err := GetSimpleText(a.reader, "Enter account", a.out)
	if err != nil {
		return err
	}

	password, err := GetPassword(a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	session, err := a.auth.Login(ctx, account, password)
	if err != nil {
		if errors.Is(err, common.ErrInvalidCredentials) {
			return fmt.Errorf("wrong password for %q", account)
		}
		return err
	}

	a.session = session
	a.setMode(ModeOnline)
	if session.Registered {
		a.printf("Account %s created, you are logged in\n", session.Account)
	} else {
		a.printf("Logged in as %s\n", session.Account)
	}
	return nil
}

func (a *App) Logout(ctx context.Context) error {
	if err := a.auth.Logout(ctx); err != nil {
		return err
	}
	a.session = nil
	a.printf("Logged out\n")
	return nil
}

func (a *App) Write(ctx context.Context) error {
	title, err := GetSimpleText(a.reader, "Title", a.out)
	if err != nil {
		return err
	}
	mood, err := GetSimpleText(a.reader, "Mood (optional, e.g. an emoji)", a.out)
	if err != nil {
		return err
	}
	tags, err := GetSimpleText(a.reader, fmt.Sprintf("Tags, comma separated (up to %d)", common.MaxTagsPerDiary), a.out)
	if err != nil {
		return err
	}
	content, err := GetMultiline(a.reader, "Content", a.out)
	if err != nil {
		return err
	}

	id, err := a.diaries.Save(ctx, a.session.Key, models.Draft{
		Title:   title,
		Content: content,
		Mood:    mood,
		Tags:    models.ParseTags(tags),
	})
	if err != nil {
		return err
	}
	a.printf("Saved %s\n", id)
	return nil
}

// Edit prompts for every field showing the current value. An empty answer
// keeps it; "-" clears mood or tags.
func (a *App) Edit(ctx context.Context, id string) error {
	if id == "" {
		return errUsageID
	}
	current, err := a.find(ctx, id)
	if err != nil {
		return err
	}

	draft := models.Draft{
		Title:   current.Title,
		Content: current.Content,
		Mood:    current.Mood,
		Tags:    current.Tags,
	}

	title, err := GetSimpleText(a.reader, fmt.Sprintf("Title [%s]", current.Title), a.out)
	if err != nil {
		return err
	}
	if title != "" {
		draft.Title = title
	}

	mood, err := GetSimpleText(a.reader, fmt.Sprintf("Mood [%s]", current.Mood), a.out)
	if err != nil {
		return err
	}
	switch mood {
	case "":
	case clearValue:
		draft.Mood = ""
	default:
		draft.Mood = mood
	}

	tags, err := GetSimpleText(a.reader, fmt.Sprintf("Tags [%s]", strings.Join(current.Tags, ", ")), a.out)
	if err != nil {
		return err
	}
	switch tags {
	case "":
	case clearValue:
		draft.Tags = nil
	default:
		draft.Tags = models.ParseTags(tags)
	}

	content, err := GetMultiline(a.reader, "Content (empty keeps the current text)", a.out)
	if err != nil {
		return err
	}
	if content != "" {
		draft.Content = content
	}

	if err := a.diaries.Update(ctx, a.session.Key, id, draft); err != nil {
		return err
	}
	a.printf("Updated %s\n", id)
	return nil
}

func (a *App) find(ctx context.Context, id string) (*models.Diary, error) {
	list, err := a.diaries.List(ctx, a.session.Key, "")
	if err != nil {
		return nil, err
	}
	for i := range list {
		if list[i].ID == id {
			return &list[i], nil
		}
	}
	return nil, common.ErrorNotFound
}

func (a *App) Delete(ctx context.Context, id string) error {
	if id == "" {
		return errUsageID
	}
	if err := a.diaries.Remove(ctx, id); err != nil {
		return err
	}
	a.printf("Deleted %s\n", id)
	return nil
}

func (a *App) List(ctx context.Context, tag string) error {
	list, err := a.diaries.List(ctx, a.session.Key, tag)
	if err != nil {
		return err
	}
	if len(list) == 0 {
		a.printf("No entries\n")
		return nil
	}
	for _, d := range list {
		a.printf("%s\n", formatDiary(d))
	}
	return nil
}

func (a *App) Tags(ctx context.Context) error {
	tags, err := a.diaries.Tags(ctx)
	if err != nil {
		return err
	}
	if len(tags) == 0 {
		a.printf("No tags yet\n")
		return nil
	}
	names := make([]string, 0, len(tags))
	for _, t := range tags {
		names = append(names, t.Name)
	}
	a.printf("%s\n", strings.Join(names, ", "))
	return nil
}

func (a *App) Heatmap(ctx context.Context, arg string) error {
	days := defaultHeatmapDays
	if arg != "" {
		n, err := strconv.Atoi(arg)
		if err != nil || n <= 0 {
			return fmt.Errorf("usage: heatmap [days], got %q", arg)
		}
		days = n
	}

	activity, err := a.diaries.Activity(ctx, days)
	if err != nil {
		return err
	}
	a.printf("%s", renderHeatmap(activity))
	return nil
}

func (a *App) Export(ctx context.Context) error {
	path, err := a.diaries.Export(ctx, a.config.ExportDir)
	if err != nil {
		return err
	}
	a.printf("Exported to %s (entries stay encrypted)\n", path)
	return nil
}
