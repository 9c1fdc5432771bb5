package main

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/quizdesk/quizdesk/internal/models"
	"github.com/quizdesk/quizdesk/internal/quiz"
)

func (a *App) tests(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return errors.New("usage: tests list|show|create|delete|search")
	}

	switch args[0] {
	case "list":
		return a.testsList(ctx)
	case "show":
		if len(args) != 2 {
			return errors.New("usage: tests show <id>")
		}
		return a.testsShow(ctx, args[1])
	case "create":
		if len(args) != 2 {
			return errors.New("usage: tests create <file.json>")
		}
		return a.testsCreate(ctx, args[1])
	case "delete":
		if len(args) != 2 {
			return errors.New("usage: tests delete <id>")
		}
		return a.testsDelete(ctx, args[1])
	case "search":
		if len(args) != 2 {
			return errors.New("usage: tests search <query>")
		}
		return a.testsSearch(ctx, args[1])
	default:
		return fmt.Errorf("unknown tests subcommand: %q", args[0])
	}
}

func (a *App) testsList(ctx context.Context) error {
	if err := a.quizzes.Sync(ctx); err != nil {
		return err
	}

	tests := a.quizzes.Tests()
	if len(tests) == 0 {
		fmt.Fprintln(a.out, "No tests yet")
		return nil
	}

	for _, t := range tests {
		fmt.Fprintf(a.out, "%s  %s (%d questions)\n", t.ID, t.Title, len(t.Questions))
	}
	return nil
}

func (a *App) testsShow(ctx context.Context, id string) error {
	test, err := a.client.GetTest(ctx, id)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "%s\n", test.Title)
	for i, q := range test.Questions {
		fmt.Fprintf(a.out, "%d. %s\n", i+1, q.Text)
		for j, answer := range q.Answers {
			fmt.Fprintf(a.out, "   %s) %s\n", models.LabelAt(j), answer)
		}
	}
	return nil
}

// testsCreate reads {title, questions} from a JSON file and submits it
func (a *App) testsCreate(ctx context.Context, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("error while reading test file. Err: %w", err)
	}

	var draft struct {
		Title     string            `json:"title"`
		Questions []models.Question `json:"questions"`
	}
	if err := json.Unmarshal(data, &draft); err != nil {
		return fmt.Errorf("error while decoding test file. Err: %w", err)
	}

	test, err := a.quizzes.Create(ctx, draft.Title, draft.Questions)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Created test %s (%s)\n", test.Title, test.ID)
	return nil
}

func (a *App) testsDelete(ctx context.Context, id string) error {
	if err := a.quizzes.Sync(ctx); err != nil {
		return err
	}
	if err := a.quizzes.Delete(ctx, id); err != nil {
		return err
	}

	fmt.Fprintln(a.out, "Test deleted")
	return nil
}

func (a *App) testsSearch(ctx context.Context, query string) error {
	if err := a.quizzes.Sync(ctx); err != nil {
		return err
	}

	found := a.quizzes.Search(query)
	if len(found) == 0 {
		fmt.Fprintln(a.out, "No tests found")
		return nil
	}
	for _, t := range found {
		fmt.Fprintf(a.out, "%s  %s\n", t.ID, t.Title)
	}
	return nil
}

// take runs the interactive test-taking flow: every answer updates the
// running score right away, the final line is the submitted result.
func (a *App) take(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errors.New("usage: take <id>")
	}

	if err := a.quizzes.Sync(ctx); err != nil {
		return err
	}
	test, ok := a.quizzes.Get(args[0])
	if !ok {
		return fmt.Errorf("test %q not found in the catalog", args[0])
	}

	attempt := quiz.StartAttempt(test)
	scanner := bufio.NewScanner(a.in)

	fmt.Fprintf(a.out, "%s\n\n", test.Title)
	for i, q := range test.Questions {
		fmt.Fprintf(a.out, "%d. %s\n", i+1, q.Text)
		for j, answer := range q.Answers {
			fmt.Fprintf(a.out, "   %s) %s\n", models.LabelAt(j), answer)
		}

		label := readLabel(scanner, a)
		if label == "" {
			fmt.Fprintln(a.out, "Skipped")
		} else if err := attempt.Record(i, label); err != nil {
			return err
		}

		fmt.Fprintf(a.out, "Current score: %s\n\n", attempt.Score().StringFixed(2))
	}

	result := attempt.Submit()
	fmt.Fprintf(a.out, "You passed %s\n", result)
	return nil
}

// readLabel prompts until it gets A-D or a blank line (skip)
func readLabel(scanner *bufio.Scanner, a *App) string {
	for {
		fmt.Fprint(a.out, "Your answer (A-D, empty to skip): ")
		if !scanner.Scan() {
			return ""
		}
		label := strings.ToUpper(strings.TrimSpace(scanner.Text()))
		if label == "" || models.IsLabel(label) {
			return label
		}
		fmt.Fprintln(a.out, "Please answer with A, B, C or D")
	}
}
