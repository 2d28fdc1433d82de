package menu

import (
	"context"

	"github.com/nikbrunner/bark/internal/command"
	"github.com/nikbrunner/bark/internal/model"
	"github.com/nikbrunner/bark/internal/prompt"
)

func newBookmarkData(ctx context.Context, p prompt.Prompter) (model.NewBookmarkParams, error) {
	var params model.NewBookmarkParams
	var err error

	if params.Title, err = prompt.Input(ctx, p, "Title", true); err != nil {
		return params, err
	}
	if params.URL, err = prompt.Input(ctx, p, "URL", true); err != nil {
		return params, err
	}
	if params.Notes, err = prompt.Input(ctx, p, "Notes", false); err != nil {
		return params, err
	}
	return params, nil
}

func bookmarkIDForDeletion(ctx context.Context, p prompt.Prompter) (int64, error) {
	return prompt.ID(ctx, p, "Enter a bookmark ID to delete")
}

func bookmarkEdit(ctx context.Context, p prompt.Prompter) (command.EditInput, error) {
	var in command.EditInput
	var err error

	if in.ID, err = prompt.ID(ctx, p, "Enter a bookmark ID to edit"); err != nil {
		return in, err
	}

	for {
		answer, err := prompt.Input(ctx, p, "Choose a value to edit (title, URL, notes)", true)
		if err != nil {
			return in, err
		}
		if in.Field, err = model.ParseField(answer); err == nil {
			break
		}
	}

	in.Value, err = prompt.Input(ctx, p, "Enter the new value for "+string(in.Field), true)
	return in, err
}

func githubImportOptions(ctx context.Context, p prompt.Prompter) (command.ImportCriteria, error) {
	var criteria command.ImportCriteria
	var err error

	if criteria.Username, err = prompt.Input(ctx, p, "GitHub username", true); err != nil {
		return criteria, err
	}
	criteria.PreserveTimestamps, err = prompt.Confirm(ctx, p, "Preserve timestamps [Y/n]")
	return criteria, err
}

func searchQuery(ctx context.Context, p prompt.Prompter) (string, error) {
	return prompt.Input(ctx, p, "Search", true)
}

func importPath(ctx context.Context, p prompt.Prompter) (string, error) {
	return prompt.Input(ctx, p, "Bookmark HTML file", true)
}

func exportPath(ctx context.Context, p prompt.Prompter) (string, error) {
	return prompt.Input(ctx, p, "Export to (blank for ~/Downloads)", false)
}
