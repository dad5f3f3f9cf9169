package main

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/kailas-cloud/brewdex/internal/app"
	"github.com/kailas-cloud/brewdex/internal/transport/openbrewerydb"
	"github.com/kailas-cloud/brewdex/internal/usecase/browse"
	"github.com/kailas-cloud/brewdex/internal/usecase/detail"
)

const dogResults = `[
  {"id":"b1","name":"Dog Days Brewing","brewery_type":"micro","city":"Portland","country":"United States","address_1":"1 Main St"},
  {"id":"b2","name":"Big Dog Ales","brewery_type":"regional","city":"Austin","country":"United States","address_1":null}
]`

const dogDetail = `{"id":"b1","name":"Dog Days Brewing","brewery_type":"micro","street":"1 Main St",
  "city":"Portland","state_province":"Oregon","postal_code":"97201","country":"United States",
  "website_url":null,"phone":"5035550100"}`

func directoryStub(t *testing.T) *openbrewerydb.Client {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/v1/breweries/search":
			if r.URL.Query().Get("query") == "dog" {
				_, _ = w.Write([]byte(dogResults))
				return
			}
			_, _ = w.Write([]byte(`[]`))
		case "/v1/breweries/b1":
			_, _ = w.Write([]byte(dogDetail))
		case "/v1/breweries/meta":
			_, _ = w.Write([]byte(`{"total":2}`))
		default:
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"message":"Couldn't find Brewery"}`))
		}
	}))
	t.Cleanup(srv.Close)
	return openbrewerydb.NewClient(&openbrewerydb.Config{BaseURL: srv.URL + "/v1"})
}

func newTestREPL(t *testing.T) (*repl, *bytes.Buffer) {
	t.Helper()
	client := directoryStub(t)
	var out bytes.Buffer
	cli := newREPL(&out)
	cli.session = app.New(browse.New(client), detail.New(client), zap.NewNop(), app.WithObserver(cli.observe))
	return cli, &out
}

func TestREPL_Session(t *testing.T) {
	cli, out := newTestREPL(t)

	input := strings.Join([]string{
		"search dog",
		"type micro",
		"open #1",
		"back",
		"chart pie",
		"city Portland",
		"type -",
		"bogus",
		"quit",
		"search never-reached",
	}, "\n")

	if err := cli.run(context.Background(), strings.NewReader(input), "/"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got := out.String()

	for _, want := range []string{
		"[ / ]",
		"[ /?search=dog ]",
		"Big Dog Ales",
		"[ /?search=dog&type=micro ]",
		"[ /brewery/b1 ]",
		"Phone: 5035550100",
		"Website: N/A",
		"(pie)",
		"[ /?search=dog&type=micro&city=Portland ]",
		"[ /?search=dog&city=Portland ]",
		`Error: unknown command "bogus" (type help)`,
		"Loading...",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("output missing %q", want)
		}
	}
	if strings.Contains(got, "never-reached") {
		t.Error("commands after quit must not run")
	}
}

func TestREPL_BackAtFirstPage(t *testing.T) {
	cli, out := newTestREPL(t)

	if err := cli.run(context.Background(), strings.NewReader("back\n"), "/?search=dog"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out.String(), "Already at the first page.") {
		t.Errorf("unexpected output:\n%s", out.String())
	}
}

func TestREPL_Usage(t *testing.T) {
	cli, _ := newTestREPL(t)
	ctx := context.Background()

	for _, line := range []string{"open", "go", "chart donut"} {
		if _, err := cli.exec(ctx, line); err == nil {
			t.Errorf("%q: expected error", line)
		}
	}
	if quit, err := cli.exec(ctx, "   "); quit || err != nil {
		t.Errorf("blank line: quit=%v err=%v", quit, err)
	}
}

func TestREPL_Help(t *testing.T) {
	cli, out := newTestREPL(t)
	if _, err := cli.exec(context.Background(), "help"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out.String(), "open <id|#row>") {
		t.Errorf("unexpected help:\n%s", out.String())
	}
}

func TestREPL_OpenByID(t *testing.T) {
	cli, out := newTestREPL(t)
	if _, err := cli.exec(context.Background(), "open b1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out.String(), "Dog Days Brewing") {
		t.Errorf("unexpected output:\n%s", out.String())
	}

	out.Reset()
	if _, err := cli.exec(context.Background(), "open 7"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out.String(), "Error: Failed to fetch brewery details.") {
		t.Errorf("a bare number is taken as an id:\n%s", out.String())
	}
}

func TestREPL_OpenNumericIDWithinRowRange(t *testing.T) {
	cli, out := newTestREPL(t)
	ctx := context.Background()

	if _, err := cli.exec(ctx, "search dog"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(cli.rows) != 2 {
		t.Fatalf("expected 2 rows, got %v", cli.rows)
	}

	out.Reset()
	if _, err := cli.exec(ctx, "open 2"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out.String(), "[ /brewery/2 ]") {
		t.Errorf("a numeric id must not be read as a row number:\n%s", out.String())
	}

	out.Reset()
	if _, err := cli.exec(ctx, "open #2"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out.String(), "[ /brewery/b2 ]") {
		t.Errorf("expected row 2 to resolve to b2:\n%s", out.String())
	}

	for _, bad := range []string{"open #0", "open #3", "open #x"} {
		if _, err := cli.exec(ctx, bad); err == nil {
			t.Errorf("%q: expected error", bad)
		}
	}
}

func TestREPL_Once(t *testing.T) {
	cli, out := newTestREPL(t)

	if err := cli.once(context.Background(), "/?search=dog&type=regional"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got := out.String()
	if !strings.Contains(got, "Big Dog Ales") || strings.Contains(got, "Dog Days Brewing") {
		t.Errorf("unexpected output:\n%s", got)
	}

	if err := cli.once(context.Background(), "%zz"); err == nil {
		t.Error("expected error for invalid location")
	}
}

func TestREPL_StopsOnCancel(t *testing.T) {
	cli, _ := newTestREPL(t)
	ctx, cancel := context.WithCancel(context.Background())

	pr, pw := io.Pipe()
	defer func() { _ = pw.Close() }()

	done := make(chan error, 1)
	go func() { done <- cli.run(ctx, pr, "/") }()
	cancel()

	if err := <-done; !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}
